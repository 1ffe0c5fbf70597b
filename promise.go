package stream

import (
	"context"
	"sync/atomic"
)

// Promise[E, A] is a single-assignment cell: Succeed or Fail may complete
// it at most once (subsequent attempts are reported, not silently
// dropped), and any number of Awaiters suspend until it is completed.
//
// The one-shot guard mirrors kont.Affine's "resume at most once" pattern,
// adapted from a single-threaded continuation to a value shared safely
// across goroutines with sync/atomic and a close-once completion channel.
type Promise[E, A any] struct {
	done    chan struct{}
	settled atomic.Bool
	val     A
	err     error
}

// NewPromise allocates an unresolved Promise.
func NewPromise[E, A any]() *Promise[E, A] {
	return &Promise[E, A]{done: make(chan struct{})}
}

// Succeed completes the promise with a value. Returns false if the promise
// was already completed.
func (p *Promise[E, A]) Succeed(a A) IO[Never, bool] {
	return func(context.Context) (bool, error) {
		if !p.settled.CompareAndSwap(false, true) {
			return false, nil
		}
		p.val = a
		close(p.done)
		return true, nil
	}
}

// Fail completes the promise with a domain error. Returns false if the
// promise was already completed.
func (p *Promise[E, A]) Fail(e E) IO[Never, bool] {
	return func(context.Context) (bool, error) {
		if !p.settled.CompareAndSwap(false, true) {
			return false, nil
		}
		p.err = Failure[E]{Err: e}
		close(p.done)
		return true, nil
	}
}

// completeRaw resolves the promise with an arbitrary error rather than
// routing through Fail's typed E — err may be a Failure[E] or an
// interruption (ctx.Err()), either of which Await propagates as-is. Used
// internally by Fork, whose forked IO can end either way.
func (p *Promise[E, A]) completeRaw(a A, err error) bool {
	if !p.settled.CompareAndSwap(false, true) {
		return false
	}
	p.val = a
	p.err = err
	close(p.done)
	return true
}

// Await suspends until the promise is completed, returning its value or
// propagating its failure.
func (p *Promise[E, A]) Await() IO[E, A] {
	return func(ctx context.Context) (A, error) {
		select {
		case <-p.done:
			return p.val, p.err
		case <-ctx.Done():
			var zero A
			return zero, ctx.Err()
		}
	}
}
