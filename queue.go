package stream

import "context"

// Queue[A] is a bounded, asynchronous FIFO: Offer suspends on a full queue,
// Take suspends on an empty one. It is the transport concurrent combinators
// use to bridge a background producer fiber to the sequential consumer
// fold loop.
//
// lfq (referenced by code.hybscloud.com/sess's go.mod) would be the
// natural lock-free backing for this, but its source was not present in
// the retrieved corpus to ground an implementation on, so Queue is built
// directly on a buffered Go channel — see DESIGN.md.
type Queue[A any] struct {
	ch chan A
}

// NewQueue allocates a Queue with the given bounded capacity.
func NewQueue[A any](capacity int) *Queue[A] {
	if capacity < 1 {
		capacity = 1
	}
	return &Queue[A]{ch: make(chan A, capacity)}
}

// Offer enqueues a, suspending while the queue is full.
func (q *Queue[A]) Offer(a A) IO[Never, struct{}] {
	return func(ctx context.Context) (struct{}, error) {
		select {
		case q.ch <- a:
			return struct{}{}, nil
		case <-ctx.Done():
			return struct{}{}, ctx.Err()
		}
	}
}

// Take dequeues the next element, suspending while the queue is empty.
func (q *Queue[A]) Take() IO[Never, A] {
	return func(ctx context.Context) (A, error) {
		select {
		case a := <-q.ch:
			return a, nil
		case <-ctx.Done():
			var zero A
			return zero, ctx.Err()
		}
	}
}

// offerBlocking is a plain-context convenience for producer fibers that
// don't otherwise need the IO shape of Offer. It reports whether the offer
// completed (false means ctx was canceled first).
func (q *Queue[A]) offerBlocking(ctx context.Context, a A) bool {
	select {
	case q.ch <- a:
		return true
	case <-ctx.Done():
		return false
	}
}

// Never is the error type for effects that cannot themselves fail on their
// domain channel — only be interrupted via context cancellation.
type Never struct{}
