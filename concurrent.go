package stream

import (
	"context"

	"code.hybscloud.com/kont"
)

// produceTake drains str into q: every element as Value, a single domain
// failure as Fail (then stops), or End once str is exhausted — reoffered
// forever when endForever, so a consumer that keeps reading a source that
// has already finished observes End instead of blocking.
func produceTake[E, A, C any](str Stream[E, A], toC func(A) C, q *Queue[Take[E, C]], endForever bool) IO[E, struct{}] {
	return func(ctx context.Context) (struct{}, error) {
		_, err := str.fold(ctx, struct{}{}, func(carrier Erased, a A) (Erased, error) {
			if !q.offerBlocking(ctx, ValueTake[E, C](toC(a))) {
				return nil, ctx.Err()
			}
			return stepBox{cont: true, s: carrier}, nil
		})
		if err != nil {
			if fe, ok := AsFailure[E](err); ok {
				q.offerBlocking(ctx, FailTake[E, C](fe))
			}
			return struct{}{}, nil
		}
		if !endForever {
			q.offerBlocking(ctx, EndTake[E, C]())
			return struct{}{}, nil
		}
		for {
			if !q.offerBlocking(ctx, EndTake[E, C]()) {
				return struct{}{}, nil
			}
		}
	}
}

// ToQueue forks a background fiber that drains str into a fresh Take
// queue of the given capacity, under Fork/Fiber's own interruption
// machinery. The fiber is interrupted when the Managed scope exits.
//
// Grounded on produce.go's producer-goroutine-plus-context-cancellation
// shape (ProduceChannel), generalized from an unbuffered channel to a
// capacity-bounded Queue carrying a Take envelope.
func ToQueue[E, A any](capacity int, str Stream[E, A]) Managed[E, *Queue[Take[E, A]]] {
	return NewManaged[E, *Queue[Take[E, A]]](func(ctx context.Context) (*Queue[Take[E, A]], func(), error) {
		q := NewQueue[Take[E, A]](capacity)
		fiber, _ := Fork[E, struct{}](produceTake[E, A, A](str, func(a A) A { return a }, q, true))(ctx)
		release := func() { _, _ = fiber.Interrupt()(ctx) }
		return q, release, nil
	})
}

// Buffer decouples str from a slower consumer with a capacity-bounded
// queue in between: a background fiber drains str into the queue at its
// own pace, the returned Stream reads from the queue at the consumer's
// pace. Sugar over ToQueue plus fromTakeQueue, exposing the queue-bridge
// machinery every concurrent combinator already forks as a first-class
// combinator in its own right.
func Buffer[E, A any](capacity int, str Stream[E, A]) Stream[E, A] {
	return Stream[E, A]{
		fold: func(ctx context.Context, s0 Erased, step func(Erased, A) (Erased, error)) (Erased, error) {
			q, release, err := ToQueue[E, A](capacity, str).acquire(ctx)
			if err != nil {
				return nil, err
			}
			defer release()
			return fromTakeQueue[E, A](q).fold(ctx, s0, step)
		},
	}
}

// drainMerged is the consumer side shared by Merge, MergeWith and
// MergeEither: it counts n Ends before finishing, and stops on the first
// Fail (first-failure-wins). The producer fibers themselves are
// interrupted by the enclosing Supervised scope, not by this loop.
func drainMerged[E, C any](ctx context.Context, n int, q *Queue[Take[E, C]], s0 Erased, step func(Erased, C) (Erased, error)) (Erased, error) {
	cur := s0
	remaining := n
	for {
		t, err := q.Take()(ctx)
		if err != nil {
			return nil, err
		}
		switch {
		case t.IsFail():
			return nil, Failure[E]{Err: t.Err()}
		case t.IsEnd():
			remaining--
			if remaining == 0 {
				return stepBox{cont: true, s: cur}, nil
			}
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
}

// Merge interleaves streams in the order their elements arrive, in a
// capacity-bounded shared queue. Ends when every source has ended; the
// first domain failure from any source wins. The whole operation is
// Supervised, so every source fiber is interrupted the instant the
// consumer loop exits for any reason, including an early Stop.
func Merge[E, A any](capacity int, streams ...Stream[E, A]) Stream[E, A] {
	return Stream[E, A]{
		fold: func(ctx context.Context, s0 Erased, step func(Erased, A) (Erased, error)) (Erased, error) {
			var result Erased
			var resultErr error
			_, supErr := Supervised[E, struct{}](func(sctx context.Context) (struct{}, error) {
				q := NewQueue[Take[E, A]](capacity)
				for _, s := range streams {
					if _, err := Fork[E, struct{}](produceTake[E, A, A](s, func(a A) A { return a }, q, false))(sctx); err != nil {
						return struct{}{}, err
					}
				}
				result, resultErr = drainMerged[E, A](sctx, len(streams), q, s0, step)
				return struct{}{}, nil
			})(ctx)
			if supErr != nil {
				return nil, supErr
			}
			return result, resultErr
		},
	}
}

// MergeWith interleaves l and r, converting each side's elements with
// onLeft/onRight into a common type C.
func MergeWith[E, A, B, C any](capacity int, l Stream[E, A], r Stream[E, B], onLeft func(A) C, onRight func(B) C) Stream[E, C] {
	return Stream[E, C]{
		fold: func(ctx context.Context, s0 Erased, step func(Erased, C) (Erased, error)) (Erased, error) {
			var result Erased
			var resultErr error
			_, supErr := Supervised[E, struct{}](func(sctx context.Context) (struct{}, error) {
				q := NewQueue[Take[E, C]](capacity)
				if _, err := Fork[E, struct{}](produceTake[E, A, C](l, onLeft, q, false))(sctx); err != nil {
					return struct{}{}, err
				}
				if _, err := Fork[E, struct{}](produceTake[E, B, C](r, onRight, q, false))(sctx); err != nil {
					return struct{}{}, err
				}
				result, resultErr = drainMerged[E, C](sctx, 2, q, s0, step)
				return struct{}{}, nil
			})(ctx)
			if supErr != nil {
				return nil, supErr
			}
			return result, resultErr
		},
	}
}

// MergeEither interleaves l and r without discarding which side an
// element came from, tagging it with kont.Either.
func MergeEither[E, A, B any](capacity int, l Stream[E, A], r Stream[E, B]) Stream[E, kont.Either[A, B]] {
	return MergeWith[E, A, B, kont.Either[A, B]](capacity, l, r,
		func(a A) kont.Either[A, B] { return kont.Left[A, B](a) },
		func(b B) kont.Either[A, B] { return kont.Right[A, B](b) },
	)
}

// zipSource forks str into its own bounded Take queue under sctx's
// supervision scope and returns a pull action yielding the next element
// as an Option: None once the source has ended, with a domain failure
// surfaced as an error from the pull itself. Shared by the whole zip
// family (zipWith/zip/zipWith3/zip3/joinWith), each source getting its
// own queue rather than the single shared queue merge/mergeWith use.
func zipSource[E, A any](sctx context.Context, capacity int, str Stream[E, A]) (IO[E, Option[A]], error) {
	q := NewQueue[Take[E, A]](capacity)
	if _, err := Fork[E, struct{}](produceTake[E, A, A](str, func(a A) A { return a }, q, true))(sctx); err != nil {
		return nil, err
	}
	return TakeOption[E, A](liftNever[E, Take[E, A]](q.Take())), nil
}

// ZipWith pulls one element from each of l's and r's own bounded queues
// per tick and combines them with f0; the zipped stream ends the moment
// f0 returns None, e.g. because one side has run out, letting the joiner
// see which side ended rather than ending unconditionally. lc/rc bound
// each side's buffering and are required, not defaulted.
func ZipWith[E, A, B, C any](lc, rc int, l Stream[E, A], r Stream[E, B], f0 func(Option[A], Option[B]) Option[C]) Stream[E, C] {
	return Stream[E, C]{
		fold: func(ctx context.Context, s0 Erased, step func(Erased, C) (Erased, error)) (Erased, error) {
			var result Erased
			var resultErr error
			_, supErr := Supervised[E, struct{}](func(sctx context.Context) (struct{}, error) {
				lPull, err := zipSource[E, A](sctx, lc, l)
				if err != nil {
					return struct{}{}, err
				}
				rPull, err := zipSource[E, B](sctx, rc, r)
				if err != nil {
					return struct{}{}, err
				}
				cur := s0
				for {
					a, err := lPull(sctx)
					if err != nil {
						resultErr = err
						return struct{}{}, nil
					}
					b, err := rPull(sctx)
					if err != nil {
						resultErr = err
						return struct{}{}, nil
					}
					c, ok := f0(a, b).Get()
					if !ok {
						result = stepBox{cont: true, s: cur}
						return struct{}{}, nil
					}
					res, err := step(cur, c)
					if err != nil {
						resultErr = err
						return struct{}{}, nil
					}
					box := res.(stepBox)
					cur = box.s
					if !box.cont {
						result = box
						return struct{}{}, nil
					}
				}
			})(ctx)
			if supErr != nil {
				return nil, supErr
			}
			return result, resultErr
		},
	}
}

// zipPair is the element type Zip emits.
type zipPair[A, B any] struct {
	A A
	B B
}

// zipBoth ends the pairing the instant either side is exhausted.
func zipBoth[A, B any](a Option[A], b Option[B]) Option[zipPair[A, B]] {
	av, aok := a.Get()
	bv, bok := b.Get()
	if !aok || !bok {
		return None[zipPair[A, B]]()
	}
	return Some(zipPair[A, B]{A: av, B: bv})
}

// Zip pairs up l and r element-by-element, ending when either ends.
func Zip[E, A, B any](lc, rc int, l Stream[E, A], r Stream[E, B]) Stream[E, zipPair[A, B]] {
	return ZipWith[E, A, B, zipPair[A, B]](lc, rc, l, r, zipBoth[A, B])
}

// zipTriple is the element type Zip3 emits.
type zipTriple[A, B, C any] struct {
	A A
	B B
	C C
}

// ZipWith3 is ZipWith generalized to three independently-bounded sources.
func ZipWith3[E, A, B, C, D any](xc, yc, zc int, x Stream[E, A], y Stream[E, B], z Stream[E, C], f0 func(Option[A], Option[B], Option[C]) Option[D]) Stream[E, D] {
	return Stream[E, D]{
		fold: func(ctx context.Context, s0 Erased, step func(Erased, D) (Erased, error)) (Erased, error) {
			var result Erased
			var resultErr error
			_, supErr := Supervised[E, struct{}](func(sctx context.Context) (struct{}, error) {
				xPull, err := zipSource[E, A](sctx, xc, x)
				if err != nil {
					return struct{}{}, err
				}
				yPull, err := zipSource[E, B](sctx, yc, y)
				if err != nil {
					return struct{}{}, err
				}
				zPull, err := zipSource[E, C](sctx, zc, z)
				if err != nil {
					return struct{}{}, err
				}
				cur := s0
				for {
					a, err := xPull(sctx)
					if err != nil {
						resultErr = err
						return struct{}{}, nil
					}
					b, err := yPull(sctx)
					if err != nil {
						resultErr = err
						return struct{}{}, nil
					}
					c, err := zPull(sctx)
					if err != nil {
						resultErr = err
						return struct{}{}, nil
					}
					d, ok := f0(a, b, c).Get()
					if !ok {
						result = stepBox{cont: true, s: cur}
						return struct{}{}, nil
					}
					res, err := step(cur, d)
					if err != nil {
						resultErr = err
						return struct{}{}, nil
					}
					box := res.(stepBox)
					cur = box.s
					if !box.cont {
						result = box
						return struct{}{}, nil
					}
				}
			})(ctx)
			if supErr != nil {
				return nil, supErr
			}
			return result, resultErr
		},
	}
}

// Zip3 pairs up three sources element-by-element, ending when any ends.
func Zip3[E, A, B, C any](xc, yc, zc int, x Stream[E, A], y Stream[E, B], z Stream[E, C]) Stream[E, zipTriple[A, B, C]] {
	return ZipWith3[E, A, B, C, zipTriple[A, B, C]](xc, yc, zc, x, y, z, func(a Option[A], b Option[B], c Option[C]) Option[zipTriple[A, B, C]] {
		av, aok := a.Get()
		bv, bok := b.Get()
		cv, cok := c.Get()
		if !aok || !bok || !cok {
			return None[zipTriple[A, B, C]]()
		}
		return Some(zipTriple[A, B, C]{A: av, B: bv, C: cv})
	})
}

// JoinWith is the zip family's variant that hands the joiner the two
// sides' pull actions directly, rather than a precomputed Option pair —
// f0 decides which side(s) to pull on a given tick, and can pull one side
// more than once before consulting the other. lc/rc bound each side's
// own queue the same way ZipWith's do.
func JoinWith[E, A, B, C any](lc, rc int, l Stream[E, A], r Stream[E, B], f0 func(IO[E, Option[A]], IO[E, Option[B]]) IO[E, Option[C]]) Stream[E, C] {
	return Stream[E, C]{
		fold: func(ctx context.Context, s0 Erased, step func(Erased, C) (Erased, error)) (Erased, error) {
			var result Erased
			var resultErr error
			_, supErr := Supervised[E, struct{}](func(sctx context.Context) (struct{}, error) {
				lPull, err := zipSource[E, A](sctx, lc, l)
				if err != nil {
					return struct{}{}, err
				}
				rPull, err := zipSource[E, B](sctx, rc, r)
				if err != nil {
					return struct{}{}, err
				}
				cur := s0
				for {
					opt, err := f0(lPull, rPull)(sctx)
					if err != nil {
						resultErr = err
						return struct{}{}, nil
					}
					c, ok := opt.Get()
					if !ok {
						result = stepBox{cont: true, s: cur}
						return struct{}{}, nil
					}
					res, err := step(cur, c)
					if err != nil {
						resultErr = err
						return struct{}{}, nil
					}
					box := res.(stepBox)
					cur = box.s
					if !box.cont {
						result = box
						return struct{}{}, nil
					}
				}
			})(ctx)
			if supErr != nil {
				return nil, supErr
			}
			return result, resultErr
		},
	}
}
