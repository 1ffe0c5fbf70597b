package stream

import "context"

// foldFn is a Stream's type-erased fold: given a start carrier and a step
// function that consumes one A and returns a new (possibly Stop) carrier,
// it drives production until Stop, upstream exhaustion, or failure.
//
// The carrier is Erased throughout every combinator; only Fold/FoldLazy,
// which know the concrete S a particular caller asked for, ever assert it
// back. See erased.go.
type foldFn[E, A any] func(ctx context.Context, s0 Erased, step func(Erased, A) (Erased, error)) (Erased, error)

// Stream[E, A] is a description of an effectful, pull-based sequence of A
// values whose failures are carried on E. It answers exactly one request:
// fold. Every combinator in this package is a function from Stream to
// Stream (or from Stream to a terminal IO) built by wrapping this closure.
type Stream[E, A any] struct {
	fold foldFn[E, A]
}

// Fold drives str with seed s0, calling step for every produced element in
// emission order. The moment step returns a Stop Step, production ceases
// and that Stop is returned; if the stream is exhausted without Stop, the
// final carrier is returned wrapped in Cont.
func Fold[S, E, A any](str Stream[E, A], s0 S, step func(S, A) IO[E, Step[S]]) IO[E, Step[S]] {
	return func(ctx context.Context) (Step[S], error) {
		erasedStep := func(sErased Erased, a A) (Erased, error) {
			s := sErased.(S)
			st, err := step(s, a)(ctx)
			if err != nil {
				return nil, err
			}
			return stepBox{cont: st.IsCont(), s: st.Extract()}, nil
		}
		res, err := str.fold(ctx, Erased(s0), erasedStep)
		if err != nil {
			var zero S
			return Stop(zero), err
		}
		box := res.(stepBox)
		return Step[S]{cont: box.cont, s: box.s.(S)}, nil
	}
}

// FoldLazy is Fold's early-exit variant: emission continues only while
// cont(current) holds. The instant cont reports false, emission stops and
// the current carrier is returned — without calling step again.
func FoldLazy[S, E, A any](str Stream[E, A], s0 S, cont func(S) bool, step func(S, A) IO[E, S]) IO[E, S] {
	wrapped := func(s S, a A) IO[E, Step[S]] {
		return func(ctx context.Context) (Step[S], error) {
			if !cont(s) {
				return Stop(s), nil
			}
			ns, err := step(s, a)(ctx)
			if err != nil {
				return Step[S]{}, err
			}
			if !cont(ns) {
				return Stop(ns), nil
			}
			return Cont(ns), nil
		}
	}
	return func(ctx context.Context) (S, error) {
		st, err := Fold[S, E, A](str, s0, wrapped)(ctx)
		return st.Extract(), err
	}
}

// FoldLeft is FoldLazy specialized to an unconditional, non-failing,
// pure combine — the "always continue, never fail" corner of the fold
// protocol.
func FoldLeft[S, E, A any](str Stream[E, A], s0 S, f func(S, A) S) IO[E, S] {
	return FoldLazy[S, E, A](str, s0, func(S) bool { return true }, func(s S, a A) IO[E, S] {
		return Now[E, S](f(s, a))
	})
}

// StreamPure additionally supplies a synchronous, non-failing fold
// variant, foldPure, for streams known to be side-effect-free. The pure
// constructors (EmptyPure, PointPure, FromIterablePure, OfPure,
// FromChunkPure, UnfoldPure, RangePure) build it; consumers that don't
// need the effect runtime may fast-path on it via FoldPure.
type StreamPure[A any] struct {
	foldPure func(s0 Erased, step func(Erased, A) Erased) Erased
}

// FoldPure drives a StreamPure synchronously, with no effect suspension
// and no possibility of failure.
func FoldPure[S, A any](str StreamPure[A], s0 S, step func(S, A) Step[S]) Step[S] {
	erasedStep := func(sErased Erased, a A) Erased {
		s := sErased.(S)
		st := step(s, a)
		return stepBox{cont: st.IsCont(), s: st.Extract()}
	}
	res := str.foldPure(Erased(s0), erasedStep)
	box := res.(stepBox)
	return Step[S]{cont: box.cont, s: box.s.(S)}
}

// AsStream widens a StreamPure into a Stream, deriving the effectful fold
// from the pure one by calling the effectful step synchronously inside
// foldPure. A step error turns that step into a Stop and is returned once
// foldPure finishes.
func AsStream[E, A any](p StreamPure[A]) Stream[E, A] {
	return Stream[E, A]{
		fold: func(ctx context.Context, s0 Erased, step func(Erased, A) (Erased, error)) (Erased, error) {
			var stopErr error
			res := p.foldPure(s0, func(s Erased, a A) Erased {
				box, err := step(s, a)
				if err != nil {
					stopErr = err
					return stepBox{cont: false, s: s}
				}
				return box
			})
			return res, stopErr
		},
	}
}
