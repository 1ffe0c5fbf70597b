package stream

import (
	"context"
	"testing"

	"github.com/matryer/is"
)

func TestEmptyPointFromIterable(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()

	is.Equal(collect(ctx, is, Empty[streamTestErr, int]()), []int(nil))
	is.Equal(collect(ctx, is, Point[streamTestErr, int](5)), []int{5})
	is.Equal(collect(ctx, is, FromIterable[streamTestErr, int]([]int{1, 2, 3})), []int{1, 2, 3})
}

func TestFromChunk(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()

	out := collect(ctx, is, FromChunk[streamTestErr, int](NewChunk(1, 2, 3)))
	is.Equal(out, []int{1, 2, 3})
}

func TestLiftAndUnwrap(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()

	lifted := Lift[streamTestErr, int](Now[streamTestErr, int](7))
	is.Equal(collect(ctx, is, lifted), []int{7})

	unwrapped := Unwrap[streamTestErr, int](Now[streamTestErr, Stream[streamTestErr, int]](Of[streamTestErr](1, 2)))
	is.Equal(collect(ctx, is, unwrapped), []int{1, 2})
}

func TestFlatten(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()

	nested := Of[streamTestErr](Of[streamTestErr](1, 2), Of[streamTestErr](3))
	is.Equal(collect(ctx, is, Flatten[streamTestErr, int](nested)), []int{1, 2, 3})
}

func TestBracketReleasesOnEveryExit(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()

	released := false
	idx := 0
	items := []int{1, 2, 3}
	str := Bracket[streamTestErr, struct{}, int](
		Now[streamTestErr, struct{}](struct{}{}),
		func(struct{}) IO[streamTestErr, struct{}] {
			return Sync[streamTestErr, struct{}](func() struct{} { released = true; return struct{}{} })
		},
		func(struct{}) IO[streamTestErr, Option[int]] {
			return Sync[streamTestErr, Option[int]](func() Option[int] {
				if idx >= len(items) {
					return None[int]()
				}
				v := items[idx]
				idx++
				return Some(v)
			})
		},
	)
	is.Equal(collect(ctx, is, str), []int{1, 2, 3})
	is.True(released)
}

func TestUnfoldAndRange(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()

	countdown := Unfold[streamTestErr, int, int](3, func(s int) Option[unfoldPair[int, int]] {
		if s <= 0 {
			return None[unfoldPair[int, int]]()
		}
		return Some(UnfoldPair(s, s-1))
	})
	is.Equal(collect(ctx, is, countdown), []int{3, 2, 1})

	is.Equal(collect(ctx, is, Range[streamTestErr](1, 4)), []int{1, 2, 3, 4})
}

func TestUnfoldM(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()

	str := UnfoldM[streamTestErr, int, int](0, func(s int) IO[streamTestErr, Option[unfoldPair[int, int]]] {
		return Now[streamTestErr, Option[unfoldPair[int, int]]](func() Option[unfoldPair[int, int]] {
			if s >= 3 {
				return None[unfoldPair[int, int]]()
			}
			return Some(UnfoldPair(s, s+1))
		}())
	})
	is.Equal(collect(ctx, is, str), []int{0, 1, 2})
}

func TestFromQueueDrainsInOfferOrder(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()

	q := NewQueue[int](4)
	for _, v := range []int{1, 2, 3} {
		_, _ = q.Offer(v)(ctx)
	}
	str := FromQueue[streamTestErr, int](q)
	out := collect(ctx, is, Take[streamTestErr, int](str, 3))
	is.Equal(out, []int{1, 2, 3})
}
