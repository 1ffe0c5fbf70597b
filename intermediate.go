package stream

import "context"

// IndexedValue pairs an element with its 0-based position in emission
// order, as produced by ZipWithIndex.
type IndexedValue[A any] struct {
	Index int64
	Value A
}

// Map emits f(a) for every upstream element, in order. Total.
func Map[E, A, B any](str Stream[E, A], f func(A) B) Stream[E, B] {
	return Stream[E, B]{
		fold: func(ctx context.Context, s0 Erased, step func(Erased, B) (Erased, error)) (Erased, error) {
			return str.fold(ctx, s0, func(s Erased, a A) (Erased, error) {
				return step(s, f(a))
			})
		},
	}
}

// Filter emits only upstream elements for which p holds.
func Filter[E, A any](str Stream[E, A], p func(A) bool) Stream[E, A] {
	return Stream[E, A]{
		fold: func(ctx context.Context, s0 Erased, step func(Erased, A) (Erased, error)) (Erased, error) {
			return str.fold(ctx, s0, func(s Erased, a A) (Erased, error) {
				if !p(a) {
					return stepBox{cont: true, s: s}, nil
				}
				return step(s, a)
			})
		},
	}
}

// FilterNot emits only upstream elements for which p does not hold.
func FilterNot[E, A any](str Stream[E, A], p func(A) bool) Stream[E, A] {
	return Filter(str, func(a A) bool { return !p(a) })
}

// Collect acts as a fused Filter+Map: pf returns (b, true) to keep and
// transform an element, or (zero, false) to drop it.
func Collect[E, A, B any](str Stream[E, A], pf func(A) (B, bool)) Stream[E, B] {
	return Stream[E, B]{
		fold: func(ctx context.Context, s0 Erased, step func(Erased, B) (Erased, error)) (Erased, error) {
			return str.fold(ctx, s0, func(s Erased, a A) (Erased, error) {
				b, ok := pf(a)
				if !ok {
					return stepBox{cont: true, s: s}, nil
				}
				return step(s, b)
			})
		},
	}
}

// MapConcat emits f(a), in order, for every upstream element a, honoring
// Stop between inner elements.
func MapConcat[E, A, B any](str Stream[E, A], f func(A) []B) Stream[E, B] {
	return Stream[E, B]{
		fold: func(ctx context.Context, s0 Erased, step func(Erased, B) (Erased, error)) (Erased, error) {
			return str.fold(ctx, s0, func(s Erased, a A) (Erased, error) {
				cur := s
				for _, b := range f(a) {
					res, err := step(cur, b)
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
			})
		},
	}
}

// FlatMap concatenates f(a) for every upstream element a, running each
// inner stream to completion or Stop.
func FlatMap[E, A, B any](str Stream[E, A], f func(A) Stream[E, B]) Stream[E, B] {
	return Stream[E, B]{
		fold: func(ctx context.Context, s0 Erased, step func(Erased, B) (Erased, error)) (Erased, error) {
			cur := s0
			stopped := false
			var innerErr error
			_, outerErr := str.fold(ctx, struct{}{}, func(_ Erased, a A) (Erased, error) {
				if stopped {
					return stepBox{cont: false, s: struct{}{}}, nil
				}
				res, err := f(a).fold(ctx, cur, step)
				if err != nil {
					innerErr = err
					stopped = true
					return nil, err
				}
				box := res.(stepBox)
				cur = box.s
				if !box.cont {
					stopped = true
					return stepBox{cont: false, s: struct{}{}}, nil
				}
				return stepBox{cont: true, s: struct{}{}}, nil
			})
			if innerErr != nil {
				return nil, innerErr
			}
			if outerErr != nil {
				return nil, outerErr
			}
			return stepBox{cont: !stopped, s: cur}, nil
		},
	}
}

// Concat emits str's elements, then thatFn()'s. thatFn is evaluated lazily
// — only if str's fold ends in Cont rather than Stop. A Stop from str
// short-circuits the whole concatenation.
func Concat[E, A any](str Stream[E, A], thatFn func() Stream[E, A]) Stream[E, A] {
	return Stream[E, A]{
		fold: func(ctx context.Context, s0 Erased, step func(Erased, A) (Erased, error)) (Erased, error) {
			res, err := str.fold(ctx, s0, step)
			if err != nil {
				return nil, err
			}
			box := res.(stepBox)
			if !box.cont {
				return box, nil
			}
			return thatFn().fold(ctx, box.s, step)
		},
	}
}

// DropWhile threads a "still dropping" flag: once p first fails, it never
// re-enables, and every subsequent element (including the one that failed
// p) is forwarded downstream.
func DropWhile[E, A any](str Stream[E, A], p func(A) bool) Stream[E, A] {
	return Stream[E, A]{
		fold: func(ctx context.Context, s0 Erased, step func(Erased, A) (Erased, error)) (Erased, error) {
			dropping := true
			return str.fold(ctx, s0, func(s Erased, a A) (Erased, error) {
				if dropping {
					if p(a) {
						return stepBox{cont: true, s: s}, nil
					}
					dropping = false
				}
				return step(s, a)
			})
		},
	}
}

// TakeWhile returns Stop as soon as an element fails p, without invoking
// step for that element.
func TakeWhile[E, A any](str Stream[E, A], p func(A) bool) Stream[E, A] {
	return Stream[E, A]{
		fold: func(ctx context.Context, s0 Erased, step func(Erased, A) (Erased, error)) (Erased, error) {
			return str.fold(ctx, s0, func(s Erased, a A) (Erased, error) {
				if !p(a) {
					return stepBox{cont: false, s: s}, nil
				}
				return step(s, a)
			})
		},
	}
}

// Drop skips the first n elements, then forwards the rest. n <= 0 drops
// nothing — this preserves the ">= n" reading rather than requiring n to
// be strictly positive.
func Drop[E, A any](str Stream[E, A], n int) Stream[E, A] {
	return Stream[E, A]{
		fold: func(ctx context.Context, s0 Erased, step func(Erased, A) (Erased, error)) (Erased, error) {
			idx := 0
			return str.fold(ctx, s0, func(s Erased, a A) (Erased, error) {
				i := idx
				idx++
				if i < n {
					return stepBox{cont: true, s: s}, nil
				}
				return step(s, a)
			})
		},
	}
}

// Take forwards the first n elements, then stops. n <= 0 yields an empty
// stream.
func Take[E, A any](str Stream[E, A], n int) Stream[E, A] {
	return Stream[E, A]{
		fold: func(ctx context.Context, s0 Erased, step func(Erased, A) (Erased, error)) (Erased, error) {
			if n <= 0 {
				return stepBox{cont: true, s: s0}, nil
			}
			count := 0
			return str.fold(ctx, s0, func(s Erased, a A) (Erased, error) {
				if count >= n {
					return stepBox{cont: false, s: s}, nil
				}
				count++
				res, err := step(s, a)
				if err != nil {
					return nil, err
				}
				box := res.(stepBox)
				if count >= n {
					return stepBox{cont: false, s: box.s}, nil
				}
				return box, nil
			})
		},
	}
}

// ZipWithIndex pairs each emitted element with its 0-based emission index.
func ZipWithIndex[E, A any](str Stream[E, A]) Stream[E, IndexedValue[A]] {
	return Stream[E, IndexedValue[A]]{
		fold: func(ctx context.Context, s0 Erased, step func(Erased, IndexedValue[A]) (Erased, error)) (Erased, error) {
			idx := int64(0)
			return str.fold(ctx, s0, func(s Erased, a A) (Erased, error) {
				res, err := step(s, IndexedValue[A]{Index: idx, Value: a})
				idx++
				return res, err
			})
		},
	}
}

// Scan is a stateful map: it carries its own accumulator b, seeded at z,
// and emits the accumulator's value after folding in each upstream
// element with f.
func Scan[E, A, B any](str Stream[E, A], z B, f func(B, A) B) Stream[E, B] {
	return Stream[E, B]{
		fold: func(ctx context.Context, s0 Erased, step func(Erased, B) (Erased, error)) (Erased, error) {
			acc := z
			return str.fold(ctx, s0, func(s Erased, a A) (Erased, error) {
				acc = f(acc, a)
				return step(s, acc)
			})
		},
	}
}

// ScanM is Scan's effectful variant.
func ScanM[E, A, B any](str Stream[E, A], z B, f func(B, A) IO[E, B]) Stream[E, B] {
	return Stream[E, B]{
		fold: func(ctx context.Context, s0 Erased, step func(Erased, B) (Erased, error)) (Erased, error) {
			acc := z
			return str.fold(ctx, s0, func(s Erased, a A) (Erased, error) {
				nb, err := f(acc, a)(ctx)
				if err != nil {
					return nil, err
				}
				acc = nb
				return step(s, acc)
			})
		},
	}
}

// Forever re-folds str from its returned Cont carrier indefinitely; a Stop
// from any iteration terminates the whole thing.
func Forever[E, A any](str Stream[E, A]) Stream[E, A] {
	return Stream[E, A]{
		fold: func(ctx context.Context, s0 Erased, step func(Erased, A) (Erased, error)) (Erased, error) {
			cur := s0
			for {
				res, err := str.fold(ctx, cur, step)
				if err != nil {
					return nil, err
				}
				box := res.(stepBox)
				if !box.cont {
					return box, nil
				}
				cur = box.s
				if contextDone(ctx) {
					return nil, ctx.Err()
				}
			}
		},
	}
}

// WithEffect runs g(a) for its side effect before a is passed downstream.
func WithEffect[E, A any](str Stream[E, A], g func(A) IO[E, struct{}]) Stream[E, A] {
	return Stream[E, A]{
		fold: func(ctx context.Context, s0 Erased, step func(Erased, A) (Erased, error)) (Erased, error) {
			return str.fold(ctx, s0, func(s Erased, a A) (Erased, error) {
				if _, err := g(a)(ctx); err != nil {
					return nil, err
				}
				return step(s, a)
			})
		},
	}
}

// MapM emits await f(a), preserving order.
func MapM[E, A, B any](str Stream[E, A], f func(A) IO[E, B]) Stream[E, B] {
	return Stream[E, B]{
		fold: func(ctx context.Context, s0 Erased, step func(Erased, B) (Erased, error)) (Erased, error) {
			return str.fold(ctx, s0, func(s Erased, a A) (Erased, error) {
				b, err := f(a)(ctx)
				if err != nil {
					return nil, err
				}
				return step(s, b)
			})
		},
	}
}

// Tap is a documented synonym of WithEffect, matching the corpus's habit
// (pipefn.Peek, some-streaming-with-go.Peek) of naming a side-effecting
// inspection combinator distinctly from Map.
func Tap[E, A any](str Stream[E, A], g func(A) IO[E, struct{}]) Stream[E, A] {
	return WithEffect(str, g)
}

// TapError is Tap's error-observing counterpart: g runs on a domain
// failure before it is rethrown untouched, built from the same
// observe-then-rethrow shape as io.go's OnError, generalized from an IO
// to a whole Stream's fold. Interruption passes through unobserved,
// matching OnError's own "interruption is not a domain error" rule.
func TapError[E, A any](str Stream[E, A], g func(E) IO[E, struct{}]) Stream[E, A] {
	return Stream[E, A]{
		fold: func(ctx context.Context, s0 Erased, step func(Erased, A) (Erased, error)) (Erased, error) {
			res, err := str.fold(ctx, s0, step)
			if err != nil {
				if e, ok := AsFailure[E](err); ok {
					_, _ = g(e)(ctx)
				}
				return nil, err
			}
			return res, nil
		},
	}
}
