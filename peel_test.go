package stream

import (
	"context"
	"testing"

	"github.com/matryer/is"
)

// peeled carries both a Peel result and its tail, fully drained, out of
// the Managed scope — the tail stream is only valid while that scope is
// open, so it must be consumed inside the Use body.
type peeled struct {
	result []int
	tail   []int
}

func TestPeelSplitsStreamOnceSinkCompletes(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()

	managed := Peel[streamTestErr, []int, int, []int](4, Of[streamTestErr](1, 2, 3, 4, 5), SinkCollectN[streamTestErr, int](3))
	out, err := Use[streamTestErr, PeelResult[streamTestErr, int, []int], peeled](managed, func(r PeelResult[streamTestErr, int, []int]) IO[streamTestErr, peeled] {
		return func(ctx context.Context) (peeled, error) {
			tail, err := RunCollect[streamTestErr, int](r.Tail)(ctx)
			if err != nil {
				return peeled{}, err
			}
			return peeled{result: r.Result, tail: tail}, nil
		}
	})(ctx)
	is.NoErr(err)
	is.Equal(out.result, []int{1, 2, 3})
	is.Equal(out.tail, []int{4, 5})
}

func TestPeelWhenSinkNeverCompletesDrainsWholeStream(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()

	managed := Peel[streamTestErr, []int, int, []int](4, Of[streamTestErr](1, 2, 3), SinkCollectAll[streamTestErr, int]())
	out, err := Use[streamTestErr, PeelResult[streamTestErr, int, []int], peeled](managed, func(r PeelResult[streamTestErr, int, []int]) IO[streamTestErr, peeled] {
		return func(ctx context.Context) (peeled, error) {
			tail, err := RunCollect[streamTestErr, int](r.Tail)(ctx)
			if err != nil {
				return peeled{}, err
			}
			return peeled{result: r.Result, tail: tail}, nil
		}
	})(ctx)
	is.NoErr(err)
	is.Equal(out.result, []int{1, 2, 3})
	is.Equal(out.tail, []int(nil))
}
