package stream

import "context"

// Managed[E, A] is a scoped resource: Use runs acquire, hands the acquired
// value to body, and guarantees release runs on every exit from body —
// normal return, domain failure, or interruption.
//
// Grounded on kont.Bracket's acquire/release/use shape (resource.go),
// reimplemented around context.Context because kont.Bracket has no
// provision for a background fiber that needs to be canceled on release;
// every Managed producer in this package (ToQueue, Peel) forks exactly
// such a fiber. Merge/MergeWith also fork producer fibers, but scope them
// with Supervised directly rather than through a Managed, since their
// queue never escapes the single fold call that creates it.
type Managed[E, A any] struct {
	acquire func(ctx context.Context) (A, func(), error)
}

// NewManaged builds a Managed from an acquire function returning the
// resource, a release closure, and an error.
func NewManaged[E, A any](acquire func(ctx context.Context) (A, func(), error)) Managed[E, A] {
	return Managed[E, A]{acquire: acquire}
}

// Use acquires the resource, runs body with it, and releases it
// unconditionally afterward — even if body panics.
func Use[E, A, B any](m Managed[E, A], body func(A) IO[E, B]) IO[E, B] {
	return func(ctx context.Context) (B, error) {
		a, release, err := m.acquire(ctx)
		if err != nil {
			var zero B
			return zero, err
		}
		defer release()
		return body(a)(ctx)
	}
}
