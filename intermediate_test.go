package stream

import (
	"context"
	"testing"

	"github.com/matryer/is"
)

type streamTestErr struct{ msg string }

func collect[A any](ctx context.Context, is *is.I, str Stream[streamTestErr, A]) []A {
	out, err := RunCollect[streamTestErr, A](str)(ctx)
	is.NoErr(err)
	return out
}

func TestMapFilterCollect(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()

	ints := Of[streamTestErr](1, 2, 3, 4, 5)

	doubled := collect(ctx, is, Map[streamTestErr, int, int](ints, func(a int) int { return a * 2 }))
	is.Equal(doubled, []int{2, 4, 6, 8, 10})

	evens := collect(ctx, is, Filter[streamTestErr, int](ints, func(a int) bool { return a%2 == 0 }))
	is.Equal(evens, []int{2, 4})

	odds := collect(ctx, is, FilterNot[streamTestErr, int](ints, func(a int) bool { return a%2 == 0 }))
	is.Equal(odds, []int{1, 3, 5})

	strs := collect(ctx, is, Collect[streamTestErr, int, string](ints, func(a int) (string, bool) {
		if a%2 == 0 {
			return "", false
		}
		return "odd", true
	}))
	is.Equal(strs, []string{"odd", "odd", "odd"})
}

func TestMapConcatHonorsStop(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()

	ints := Of[streamTestErr](1, 2, 3)
	expanded := MapConcat[streamTestErr, int, int](ints, func(a int) []int { return []int{a, a} })
	taken := Take[streamTestErr, int](expanded, 3)
	is.Equal(collect(ctx, is, taken), []int{1, 1, 2})
}

func TestFlatMapConcatenatesInnerStreams(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()

	ints := Of[streamTestErr](1, 2, 3)
	flat := FlatMap[streamTestErr, int, int](ints, func(a int) Stream[streamTestErr, int] {
		return Of[streamTestErr](a, a*10)
	})
	is.Equal(collect(ctx, is, flat), []int{1, 10, 2, 20, 3, 30})
}

// TestFlatMapReportsStopToItsOwnCaller checks that FlatMap's fold tags its
// final return cont: false when the downstream step stopped mid-inner-stream,
// not just cont: true regardless of what happened. A caller further
// upstream (here, Concat) relies on that tag to decide whether it may still
// run its own lazily-evaluated continuation.
func TestFlatMapReportsStopToItsOwnCaller(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()

	evaluated := false
	flat := FlatMap[streamTestErr, int, int](Of[streamTestErr](1, 2, 3), func(a int) Stream[streamTestErr, int] {
		return Of[streamTestErr](a, a*10)
	})
	taken := Take[streamTestErr, int](flat, 2)
	stopped := Concat[streamTestErr, int](taken, func() Stream[streamTestErr, int] {
		evaluated = true
		return Of[streamTestErr](999)
	})
	is.Equal(collect(ctx, is, stopped), []int{1, 10})
	is.True(!evaluated)
}

func TestConcatIsLazyAndSkippedOnStop(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()

	evaluated := false
	str := Concat[streamTestErr, int](Of[streamTestErr](1, 2), func() Stream[streamTestErr, int] {
		evaluated = true
		return Of[streamTestErr](3, 4)
	})
	is.Equal(collect(ctx, is, str), []int{1, 2, 3, 4})
	is.True(evaluated)

	evaluated = false
	stopped := Take[streamTestErr, int](Concat[streamTestErr, int](Of[streamTestErr](1, 2), func() Stream[streamTestErr, int] {
		evaluated = true
		return Of[streamTestErr](3, 4)
	}), 2)
	is.Equal(collect(ctx, is, stopped), []int{1, 2})
	is.True(!evaluated)
}

func TestDropWhileAndTakeWhile(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()

	ints := Of[streamTestErr](1, 2, 3, 1, 2)
	dropped := collect(ctx, is, DropWhile[streamTestErr, int](ints, func(a int) bool { return a < 3 }))
	is.Equal(dropped, []int{3, 1, 2})

	taken := collect(ctx, is, TakeWhile[streamTestErr, int](ints, func(a int) bool { return a < 3 }))
	is.Equal(taken, []int{1, 2})
}

func TestDropAndTakeEdgeCases(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()

	ints := Of[streamTestErr](1, 2, 3, 4)

	is.Equal(collect(ctx, is, Drop[streamTestErr, int](ints, 0)), []int{1, 2, 3, 4})
	is.Equal(collect(ctx, is, Drop[streamTestErr, int](ints, -5)), []int{1, 2, 3, 4})
	is.Equal(collect(ctx, is, Drop[streamTestErr, int](ints, 2)), []int{3, 4})

	is.Equal(collect(ctx, is, Take[streamTestErr, int](ints, 0)), []int(nil))
	is.Equal(collect(ctx, is, Take[streamTestErr, int](ints, -3)), []int(nil))
	is.Equal(collect(ctx, is, Take[streamTestErr, int](ints, 2)), []int{1, 2})
	is.Equal(collect(ctx, is, Take[streamTestErr, int](ints, 100)), []int{1, 2, 3, 4})
}

func TestZipWithIndex(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()

	out := collect(ctx, is, ZipWithIndex[streamTestErr, string](Of[streamTestErr]("a", "b", "c")))
	is.Equal(out, []IndexedValue[string]{{Index: 0, Value: "a"}, {Index: 1, Value: "b"}, {Index: 2, Value: "c"}})
}

func TestScanAndScanM(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()

	ints := Of[streamTestErr](1, 2, 3)
	sums := collect(ctx, is, Scan[streamTestErr, int, int](ints, 0, func(acc, a int) int { return acc + a }))
	is.Equal(sums, []int{1, 3, 6})

	sumsM := collect(ctx, is, ScanM[streamTestErr, int, int](ints, 0, func(acc, a int) IO[streamTestErr, int] {
		return Now[streamTestErr, int](acc + a)
	}))
	is.Equal(sumsM, []int{1, 3, 6})
}

func TestForeverWithTakeTerminates(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()

	repeated := Forever[streamTestErr, int](Of[streamTestErr](1, 2))
	out := collect(ctx, is, Take[streamTestErr, int](repeated, 5))
	is.Equal(out, []int{1, 2, 1, 2, 1})
}

func TestWithEffectAndMapM(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()

	var seen []int
	withEff := WithEffect[streamTestErr, int](Of[streamTestErr](1, 2, 3), func(a int) IO[streamTestErr, struct{}] {
		return Sync[streamTestErr, struct{}](func() struct{} { seen = append(seen, a); return struct{}{} })
	})
	is.Equal(collect(ctx, is, withEff), []int{1, 2, 3})
	is.Equal(seen, []int{1, 2, 3})

	mapped := MapM[streamTestErr, int, int](Of[streamTestErr](1, 2, 3), func(a int) IO[streamTestErr, int] {
		return Now[streamTestErr, int](a * a)
	})
	is.Equal(collect(ctx, is, mapped), []int{1, 4, 9})
}

func TestTapIsSynonymOfWithEffect(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()

	var seen []int
	tapped := Tap[streamTestErr, int](Of[streamTestErr](1, 2), func(a int) IO[streamTestErr, struct{}] {
		return Sync[streamTestErr, struct{}](func() struct{} { seen = append(seen, a); return struct{}{} })
	})
	is.Equal(collect(ctx, is, tapped), []int{1, 2})
	is.Equal(seen, []int{1, 2})
}

func TestTapErrorObservesThenRethrows(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()

	var observed streamTestErr
	failing := Concat[streamTestErr, int](Of[streamTestErr](1, 2), func() Stream[streamTestErr, int] {
		return Lift[streamTestErr, int](Fail[streamTestErr, int](streamTestErr{msg: "boom"}))
	})
	tapped := TapError[streamTestErr, int](failing, func(e streamTestErr) IO[streamTestErr, struct{}] {
		return Sync[streamTestErr, struct{}](func() struct{} { observed = e; return struct{}{} })
	})
	_, err := RunCollect[streamTestErr, int](tapped)(ctx)
	is.True(err != nil)
	is.Equal(observed.msg, "boom")
}
