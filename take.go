package stream

import "context"

// takeKind tags a Take's case.
type takeKind uint8

const (
	takeValue takeKind = iota
	takeFail
	takeEnd
)

// Take[E, A] shuttles a single per-element outcome through a queue: a
// produced value, a terminal failure, or end-of-stream. Producer fibers in
// the concurrent combinators translate their upstream Stream's fold into a
// sequence of Take values.
type Take[E, A any] struct {
	kind takeKind
	val  A
	err  E
}

// ValueTake wraps a produced element.
func ValueTake[E, A any](a A) Take[E, A] { return Take[E, A]{kind: takeValue, val: a} }

// FailTake wraps a terminal domain error.
func FailTake[E, A any](e E) Take[E, A] { return Take[E, A]{kind: takeFail, err: e} }

// EndTake signals end-of-stream.
func EndTake[E, A any]() Take[E, A] { return Take[E, A]{kind: takeEnd} }

// IsValue reports whether this Take carries a produced element.
func (t Take[E, A]) IsValue() bool { return t.kind == takeValue }

// IsFail reports whether this Take carries a terminal failure.
func (t Take[E, A]) IsFail() bool { return t.kind == takeFail }

// IsEnd reports whether this Take signals end-of-stream.
func (t Take[E, A]) IsEnd() bool { return t.kind == takeEnd }

// Value returns the carried element. Only meaningful when IsValue is true.
func (t Take[E, A]) Value() A { return t.val }

// Err returns the carried domain error. Only meaningful when IsFail is true.
func (t Take[E, A]) Err() E { return t.err }

// TakeOption translates a queue-take action into an Option-shaped IO: End
// becomes None, Value(a) becomes Some(a), Fail(e) propagates as a
// Failure[E].
func TakeOption[E, A any](take IO[E, Take[E, A]]) IO[E, Option[A]] {
	return func(ctx context.Context) (Option[A], error) {
		t, err := take(ctx)
		if err != nil {
			return None[A](), err
		}
		switch {
		case t.IsEnd():
			return None[A](), nil
		case t.IsFail():
			return None[A](), Failure[E]{Err: t.Err()}
		default:
			return Some(t.Value()), nil
		}
	}
}
