package stream

import "context"

// Foreach runs g for every element, in order, short-circuiting with g's own
// error the instant it fails rather than discarding it.
func Foreach[E, A any](str Stream[E, A], g func(A) IO[E, struct{}]) IO[E, struct{}] {
	return func(ctx context.Context) (struct{}, error) {
		_, err := FoldLazy[struct{}, E, A](str, struct{}{}, func(struct{}) bool { return true },
			func(_ struct{}, a A) IO[E, struct{}] { return g(a) })(ctx)
		return struct{}{}, err
	}
}

// Foreach0 is Foreach's pure-callback variant, for consumers with no need
// for the effect runtime. g runs once per element, in order; returning
// false stops the run immediately after that call, with no further
// elements processed.
func Foreach0[E, A any](str Stream[E, A], g func(A) bool) IO[E, struct{}] {
	return func(ctx context.Context) (struct{}, error) {
		stop := false
		_, err := FoldLazy[struct{}, E, A](str, struct{}{}, func(struct{}) bool { return !stop },
			func(_ struct{}, a A) IO[E, struct{}] {
				return Sync[E, struct{}](func() struct{} {
					if !g(a) {
						stop = true
					}
					return struct{}{}
				})
			})(ctx)
		return struct{}{}, err
	}
}

// Run drives str to completion through sink, one chunk at a time, and
// extracts the final result. Every element the stream produces is offered
// to the sink as a length-one Chunk; production stops the instant the sink
// reports Done.
func Run[E, S, A, B any](str Stream[E, A], sink Sink[E, S, A, B]) IO[E, B] {
	return func(ctx context.Context) (B, error) {
		var zero B
		s0, err := sink.Initial(ctx)
		if err != nil {
			return zero, err
		}
		sink0 := SinkCont[S, A](s0)
		final, err := FoldLazy[SinkStep[S, A], E, A](str, sink0, func(st SinkStep[S, A]) bool { return st.IsCont() },
			func(st SinkStep[S, A], a A) IO[E, SinkStep[S, A]] {
				return sink.Step(st.State(), NewChunk(a))
			})(ctx)
		if err != nil {
			return zero, err
		}
		return sink.Extract(final.State())(ctx)
	}
}

// RunCollect drains str into a slice, in emission order. Sugar over Run
// with SinkCollectAll.
func RunCollect[E, A any](str Stream[E, A]) IO[E, []A] {
	return Run[E, []A, A, []A](str, SinkCollectAll[E, A]())
}
