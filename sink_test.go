package stream

import (
	"context"
	"testing"

	"github.com/matryer/is"
)

type sinkErr struct{ msg string }

func TestSinkFoldNeverCompletes(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()

	sink := SinkFold[sinkErr, int, int](0, func(acc, a int) int { return acc + a })
	s0, err := sink.Initial(ctx)
	is.NoErr(err)

	st, err := sink.Step(s0, NewChunk(1, 2, 3))(ctx)
	is.NoErr(err)
	is.True(st.IsCont())

	result, err := sink.Extract(st.State())(ctx)
	is.NoErr(err)
	is.Equal(result, 6)
}

func TestSinkFoldUntilCompletesWithNoLeftover(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()

	sink := SinkFoldUntil[sinkErr, int, int](0, func(acc int) bool { return acc < 5 }, func(acc, a int) int { return acc + a })
	s0, err := sink.Initial(ctx)
	is.NoErr(err)

	st, err := sink.Step(s0, NewChunk(2, 2, 2))(ctx)
	is.NoErr(err)
	is.True(!st.IsCont())
	is.Equal(st.State(), 6)
	is.True(st.Leftover().Empty())
}

func TestSinkCollectN(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()

	sink := SinkCollectN[sinkErr, int](3)
	s0, err := sink.Initial(ctx)
	is.NoErr(err)

	st, err := sink.Step(s0, NewChunk(1, 2, 3, 4))(ctx)
	is.NoErr(err)
	is.True(!st.IsCont())
	is.Equal(st.Leftover().ToSlice(), []int{4})

	result, err := sink.Extract(st.State())(ctx)
	is.NoErr(err)
	is.Equal(result, []int{1, 2, 3})
}

func TestSinkCollectAll(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()

	sink := SinkCollectAll[sinkErr, int]()
	s0, _ := sink.Initial(ctx)
	st, err := sink.Step(s0, NewChunk(1, 2, 3))(ctx)
	is.NoErr(err)
	result, err := sink.Extract(st.State())(ctx)
	is.NoErr(err)
	is.Equal(result, []int{1, 2, 3})
}
