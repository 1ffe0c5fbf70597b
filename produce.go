package stream

import "context"

// Empty is a Stream that produces no elements.
func Empty[E, A any]() Stream[E, A] {
	return Stream[E, A]{
		fold: func(_ context.Context, s0 Erased, _ func(Erased, A) (Erased, error)) (Erased, error) {
			return stepBox{cont: true, s: s0}, nil
		},
	}
}

// EmptyPure is Empty's pure specialization, for consumers that want to
// drive it with FoldPure instead of suspending in the effect runtime.
func EmptyPure[A any]() StreamPure[A] {
	return StreamPure[A]{
		foldPure: func(s0 Erased, _ func(Erased, A) Erased) Erased {
			return stepBox{cont: true, s: s0}
		},
	}
}

// Point is a Stream that produces exactly one element, a.
func Point[E, A any](a A) Stream[E, A] {
	return Stream[E, A]{
		fold: func(_ context.Context, s0 Erased, step func(Erased, A) (Erased, error)) (Erased, error) {
			res, err := step(s0, a)
			if err != nil {
				return nil, err
			}
			return res, nil
		},
	}
}

// PointPure is Point's pure specialization.
func PointPure[A any](a A) StreamPure[A] {
	return StreamPure[A]{
		foldPure: func(s0 Erased, step func(Erased, A) Erased) Erased {
			return step(s0, a)
		},
	}
}

// FromIterable produces the elements of items, in order, synchronously.
func FromIterable[E, A any](items []A) Stream[E, A] {
	return Stream[E, A]{
		fold: func(ctx context.Context, s0 Erased, step func(Erased, A) (Erased, error)) (Erased, error) {
			cur := s0
			for _, a := range items {
				if contextDone(ctx) {
					return nil, ctx.Err()
				}
				res, err := step(cur, a)
				if err != nil {
					return nil, err
				}
				box := res.(stepBox)
				cur = box.s
				if !box.cont {
					return box, nil
				}
			}
			return stepBox{cont: true, s: cur}, nil
		},
	}
}

// Of is variadic sugar over FromIterable.
func Of[E, A any](items ...A) Stream[E, A] { return FromIterable[E, A](items) }

// FromIterablePure is FromIterable's pure specialization.
func FromIterablePure[A any](items []A) StreamPure[A] {
	return StreamPure[A]{
		foldPure: func(s0 Erased, step func(Erased, A) Erased) Erased {
			cur := s0
			for _, a := range items {
				res := step(cur, a)
				box := res.(stepBox)
				cur = box.s
				if !box.cont {
					return box
				}
			}
			return stepBox{cont: true, s: cur}
		},
	}
}

// OfPure is variadic sugar over FromIterablePure.
func OfPure[A any](items ...A) StreamPure[A] { return FromIterablePure[A](items) }

// FromChunk produces chunk's elements, in order, index by index.
func FromChunk[E, A any](chunk Chunk[A]) Stream[E, A] {
	return Stream[E, A]{
		fold: func(ctx context.Context, s0 Erased, step func(Erased, A) (Erased, error)) (Erased, error) {
			cur := s0
			for i := 0; i < chunk.Len(); i++ {
				if contextDone(ctx) {
					return nil, ctx.Err()
				}
				res, err := step(cur, chunk.Get(i))
				if err != nil {
					return nil, err
				}
				box := res.(stepBox)
				cur = box.s
				if !box.cont {
					return box, nil
				}
			}
			return stepBox{cont: true, s: cur}, nil
		},
	}
}

// FromChunkPure is FromChunk's pure specialization.
func FromChunkPure[A any](chunk Chunk[A]) StreamPure[A] {
	return StreamPure[A]{
		foldPure: func(s0 Erased, step func(Erased, A) Erased) Erased {
			cur := s0
			for i := 0; i < chunk.Len(); i++ {
				res := step(cur, chunk.Get(i))
				box := res.(stepBox)
				cur = box.s
				if !box.cont {
					return box
				}
			}
			return stepBox{cont: true, s: cur}
		},
	}
}

// Lift awaits io, then calls step once with its result.
func Lift[E, A any](io IO[E, A]) Stream[E, A] {
	return Stream[E, A]{
		fold: func(ctx context.Context, s0 Erased, step func(Erased, A) (Erased, error)) (Erased, error) {
			a, err := io(ctx)
			if err != nil {
				return nil, err
			}
			return step(s0, a)
		},
	}
}

// Unwrap awaits a Stream-producing IO, then delegates to it.
func Unwrap[E, A any](io IO[E, Stream[E, A]]) Stream[E, A] {
	return Stream[E, A]{
		fold: func(ctx context.Context, s0 Erased, step func(Erased, A) (Erased, error)) (Erased, error) {
			inner, err := io(ctx)
			if err != nil {
				return nil, err
			}
			return inner.fold(ctx, s0, step)
		},
	}
}

// Flatten is FlatMap with the identity function.
func Flatten[E, A any](streams Stream[E, Stream[E, A]]) Stream[E, A] {
	return FlatMap(streams, func(s Stream[E, A]) Stream[E, A] { return s })
}

// Bracket acquires a resource, drives read repeatedly — each call yielding
// the next element as Some, or None to end the stream — and guarantees
// release runs on every exit (Stop, exhaustion, failure, or
// interruption).
func Bracket[E, R, A any](acquire IO[E, R], release func(R) IO[E, struct{}], read func(R) IO[E, Option[A]]) Stream[E, A] {
	return Stream[E, A]{
		fold: func(ctx context.Context, s0 Erased, step func(Erased, A) (Erased, error)) (Erased, error) {
			r, err := acquire(ctx)
			if err != nil {
				return nil, err
			}
			defer func() { _, _ = release(r)(ctx) }()
			cur := s0
			for {
				opt, err := read(r)(ctx)
				if err != nil {
					return nil, err
				}
				a, ok := opt.Get()
				if !ok {
					return stepBox{cont: true, s: cur}, nil
				}
				res, err := step(cur, a)
				if err != nil {
					return nil, err
				}
				box := res.(stepBox)
				cur = box.s
				if !box.cont {
					return box, nil
				}
			}
		},
	}
}

// ManagedStream is Bracket generalized over an already-built Managed
// resource.
func ManagedStream[E, R, A any](m Managed[E, R], read func(R) IO[E, Option[A]]) Stream[E, A] {
	return Stream[E, A]{
		fold: func(ctx context.Context, s0 Erased, step func(Erased, A) (Erased, error)) (Erased, error) {
			r, release, err := m.acquire(ctx)
			if err != nil {
				return nil, err
			}
			defer release()
			cur := s0
			for {
				opt, err := read(r)(ctx)
				if err != nil {
					return nil, err
				}
				a, ok := opt.Get()
				if !ok {
					return stepBox{cont: true, s: cur}, nil
				}
				res, err := step(cur, a)
				if err != nil {
					return nil, err
				}
				box := res.(stepBox)
				cur = box.s
				if !box.cont {
					return box, nil
				}
			}
		},
	}
}

// FromQueue produces forever from a Queue, taking the next element on
// every pull. It never ends on its own — only ctx cancellation or a
// downstream Stop terminates it.
func FromQueue[E, A any](q *Queue[A]) Stream[E, A] {
	return UnfoldM[E, struct{}, A](struct{}{}, func(struct{}) IO[E, Option[unfoldPair[struct{}, A]]] {
		return func(ctx context.Context) (Option[unfoldPair[struct{}, A]], error) {
			a, err := liftNever[E, A](q.Take())(ctx)
			if err != nil {
				return None[unfoldPair[struct{}, A]](), err
			}
			return Some(UnfoldPair(a, struct{}{})), nil
		}
	})
}

// liftNever widens an IO that can only be interrupted, never fail on its
// own domain channel, into an IO[E, A]. Never never appears in the
// resulting error value — the underlying function is untouched, since E
// does not occur in IO's representation.
func liftNever[E, A any](io IO[Never, A]) IO[E, A] {
	return func(ctx context.Context) (A, error) { return io(ctx) }
}

// fromTakeQueue drains a Queue of Take values: Value(a) is emitted, End
// ends the stream with Cont, Fail(e) ends it with that failure. Used by
// ToQueue's consumers, the concurrent combinators, and Peel's tail.
func fromTakeQueue[E, A any](q *Queue[Take[E, A]]) Stream[E, A] {
	return Stream[E, A]{
		fold: func(ctx context.Context, s0 Erased, step func(Erased, A) (Erased, error)) (Erased, error) {
			cur := s0
			for {
				t, err := q.Take()(ctx)
				if err != nil {
					return nil, err
				}
				switch {
				case t.IsEnd():
					return stepBox{cont: true, s: cur}, nil
				case t.IsFail():
					return nil, Failure[E]{Err: t.Err()}
				default:
					res, err := step(cur, t.Value())
					if err != nil {
						return nil, err
					}
					box := res.(stepBox)
					cur = box.s
					if !box.cont {
						return box, nil
					}
				}
			}
		},
	}
}

// Unfold is standard corecursion: f(s) returns the next element and state,
// or None to end the stream.
func Unfold[E, S, A any](s0 S, f func(S) Option[unfoldPair[S, A]]) Stream[E, A] {
	return Stream[E, A]{
		fold: func(ctx context.Context, carrier Erased, step func(Erased, A) (Erased, error)) (Erased, error) {
			state := s0
			cur := carrier
			for {
				if contextDone(ctx) {
					return nil, ctx.Err()
				}
				opt, ok := f(state).Get()
				if !ok {
					return stepBox{cont: true, s: cur}, nil
				}
				res, err := step(cur, opt.a)
				if err != nil {
					return nil, err
				}
				box := res.(stepBox)
				cur = box.s
				if !box.cont {
					return box, nil
				}
				state = opt.s
			}
		},
	}
}

// UnfoldPure is Unfold's pure specialization.
func UnfoldPure[S, A any](s0 S, f func(S) Option[unfoldPair[S, A]]) StreamPure[A] {
	return StreamPure[A]{
		foldPure: func(carrier Erased, step func(Erased, A) Erased) Erased {
			state := s0
			cur := carrier
			for {
				opt, ok := f(state).Get()
				if !ok {
					return stepBox{cont: true, s: cur}
				}
				res := step(cur, opt.a)
				box := res.(stepBox)
				cur = box.s
				if !box.cont {
					return box
				}
				state = opt.s
			}
		},
	}
}

// unfoldPair is the (next element, next state) pair Unfold/UnfoldM corecur
// on.
type unfoldPair[S, A any] struct {
	a A
	s S
}

// UnfoldPair builds an (element, state) pair for Unfold/UnfoldM.
func UnfoldPair[S, A any](a A, s S) unfoldPair[S, A] { return unfoldPair[S, A]{a: a, s: s} }

// UnfoldM is Unfold's effectful variant.
func UnfoldM[E, S, A any](s0 S, f func(S) IO[E, Option[unfoldPair[S, A]]]) Stream[E, A] {
	return Stream[E, A]{
		fold: func(ctx context.Context, carrier Erased, step func(Erased, A) (Erased, error)) (Erased, error) {
			state := s0
			cur := carrier
			for {
				opt, err := f(state)(ctx)
				if err != nil {
					return nil, err
				}
				pair, ok := opt.Get()
				if !ok {
					return stepBox{cont: true, s: cur}, nil
				}
				res, err := step(cur, pair.a)
				if err != nil {
					return nil, err
				}
				box := res.(stepBox)
				cur = box.s
				if !box.cont {
					return box, nil
				}
				state = pair.s
			}
		},
	}
}

// Range produces the inclusive integer range [min, max].
func Range[E any](min, max int) Stream[E, int] {
	return Unfold[E, int, int](min, rangeStep(max))
}

// RangePure is Range's pure specialization.
func RangePure(min, max int) StreamPure[int] {
	return UnfoldPure[int, int](min, rangeStep(max))
}

func rangeStep(max int) func(int) Option[unfoldPair[int, int]] {
	return func(s int) Option[unfoldPair[int, int]] {
		if s > max {
			return None[unfoldPair[int, int]]()
		}
		return Some(UnfoldPair(s, s+1))
	}
}
