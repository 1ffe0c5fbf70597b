package stream

// SinkStep[S, A] is a Sink's per-chunk verdict: keep going with state s, or
// stop, keeping s but returning any unconsumed elements as leftover.
type SinkStep[S, A any] struct {
	done     bool
	s        S
	leftover Chunk[A]
}

// SinkCont continues sink processing with state s.
func SinkCont[S, A any](s S) SinkStep[S, A] { return SinkStep[S, A]{s: s} }

// SinkDone completes sink processing with state s, returning leftover as
// the unconsumed remainder of the chunk that was offered.
func SinkDone[S, A any](s S, leftover Chunk[A]) SinkStep[S, A] {
	return SinkStep[S, A]{done: true, s: s, leftover: leftover}
}

// IsCont reports whether the sink wants more input.
func (st SinkStep[S, A]) IsCont() bool { return !st.done }

// State returns the carried sink state regardless of Cont/Done.
func (st SinkStep[S, A]) State() S { return st.s }

// Leftover returns the unconsumed elements. Only meaningful when the sink
// is Done.
func (st SinkStep[S, A]) Leftover() Chunk[A] { return st.leftover }

// Sink[E, S, A, B] is an incremental consumer: Initial produces a starting
// state, Step folds one chunk of upstream elements into the state (or
// completes with leftovers), and Extract turns a final state into a
// result B.
type Sink[E, S, A, B any] struct {
	Initial IO[E, S]
	Step    func(S, Chunk[A]) IO[E, SinkStep[S, A]]
	Extract func(S) IO[E, B]
}

// SinkFold builds a Sink that folds every element into an accumulator with
// f, running until upstream is exhausted.
func SinkFold[E, A, B any](z B, f func(B, A) B) Sink[E, B, A, B] {
	return Sink[E, B, A, B]{
		Initial: Now[E, B](z),
		Step: func(acc B, chunk Chunk[A]) IO[E, SinkStep[B, A]] {
			for i := 0; i < chunk.Len(); i++ {
				acc = f(acc, chunk.Get(i))
			}
			return Now[E, SinkStep[B, A]](SinkCont[B, A](acc))
		},
		Extract: func(acc B) IO[E, B] { return Now[E, B](acc) },
	}
}

// SinkFoldUntil builds a Sink like SinkFold, but completes once cont(acc)
// becomes false, so it can be driven repeatedly by Transduce. The chunk's
// elements after the one that completed it are returned as leftover (none
// when it is fed one element at a time).
func SinkFoldUntil[E, A, B any](z B, cont func(B) bool, f func(B, A) B) Sink[E, B, A, B] {
	return Sink[E, B, A, B]{
		Initial: Now[E, B](z),
		Step: func(acc B, chunk Chunk[A]) IO[E, SinkStep[B, A]] {
			for i := 0; i < chunk.Len(); i++ {
				acc = f(acc, chunk.Get(i))
				if !cont(acc) {
					rest := make([]A, 0, chunk.Len()-i-1)
					for j := i + 1; j < chunk.Len(); j++ {
						rest = append(rest, chunk.Get(j))
					}
					return Now[E, SinkStep[B, A]](SinkDone[B, A](acc, ChunkFromSlice(rest)))
				}
			}
			return Now[E, SinkStep[B, A]](SinkCont[B, A](acc))
		},
		Extract: func(acc B) IO[E, B] { return Now[E, B](acc) },
	}
}

// SinkCollectAll builds a Sink that accumulates every element into a
// slice, completing only when upstream is exhausted.
func SinkCollectAll[E, A any]() Sink[E, []A, A, []A] {
	return SinkFold[E, A, []A](nil, func(acc []A, a A) []A { return append(acc, a) })
}

// SinkCollectN builds a Sink that completes as soon as it has accumulated
// exactly n elements, returning any further elements of the same chunk as
// leftover. Used with Transduce to chunk a stream into fixed-size groups.
func SinkCollectN[E, A any](n int) Sink[E, []A, A, []A] {
	return SinkFoldUntil[E, A, []A](nil, func(acc []A) bool { return len(acc) < n }, func(acc []A, a A) []A {
		return append(acc, a)
	})
}
