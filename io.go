package stream

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// IO[E, A] is an effectful computation that, run against a context.Context,
// either produces a value of type A, fails with a domain error of type E
// (wrapped as a Failure[E]), or is interrupted (surfaced as ctx.Err(), never
// as a Failure — interruption is cancellation, not a domain error).
//
// This stands in for spec's external effect runtime: the library above it
// only ever calls Now, Fail, Sync, FlatMap, MapIO, Fork, Interrupt,
// CatchAll, OnError, Supervised and Delay, never anything more.
type IO[E, A any] func(ctx context.Context) (A, error)

// Failure carries a stream's typed domain error through Go's error
// interface. Recovered with errors.As, never with a type switch on error
// values directly, matching the corpus's habit (some-streaming-with-go's
// DuplicateKeyError) of embedding domain data in a concrete error type.
type Failure[E any] struct{ Err E }

func (f Failure[E]) Error() string { return fmt.Sprintf("stream: failed with %v", f.Err) }

// AsFailure extracts the typed error from err, if err (or something it
// wraps) is a Failure[E]. Interruption errors (context.Canceled and
// friends) are never Failure[E] and so never match.
func AsFailure[E any](err error) (E, bool) {
	var f Failure[E]
	if errors.As(err, &f) {
		return f.Err, true
	}
	var zero E
	return zero, false
}

// Now lifts a pure value into IO. Never fails, never suspends.
func Now[E, A any](a A) IO[E, A] {
	return func(context.Context) (A, error) { return a, nil }
}

// Fail lifts a domain error into IO, wrapping it as a Failure[E].
func Fail[E, A any](e E) IO[E, A] {
	return func(context.Context) (A, error) {
		var zero A
		return zero, Failure[E]{Err: e}
	}
}

// Sync lifts a synchronous, non-failing side-effecting function into IO.
func Sync[E, A any](f func() A) IO[E, A] {
	return func(context.Context) (A, error) { return f(), nil }
}

// FlatMap sequences two IO computations, feeding the first's result to f.
func FlatMap[E, A, B any](m IO[E, A], f func(A) IO[E, B]) IO[E, B] {
	return func(ctx context.Context) (B, error) {
		a, err := m(ctx)
		if err != nil {
			var zero B
			return zero, err
		}
		return f(a)(ctx)
	}
}

// MapIO applies a pure function to an IO's result.
func MapIO[E, A, B any](m IO[E, A], f func(A) B) IO[E, B] {
	return func(ctx context.Context) (B, error) {
		a, err := m(ctx)
		if err != nil {
			var zero B
			return zero, err
		}
		return f(a), nil
	}
}

// Then sequences two IO computations, discarding the first's result.
func Then[E, A, B any](m IO[E, A], n IO[E, B]) IO[E, B] {
	return FlatMap(m, func(A) IO[E, B] { return n })
}

// CatchAll recovers from a domain failure, running h with the extracted
// error. Interruption is never caught: a canceled context passes through.
func CatchAll[E, A any](m IO[E, A], h func(E) IO[E, A]) IO[E, A] {
	return func(ctx context.Context) (A, error) {
		a, err := m(ctx)
		if err == nil {
			return a, nil
		}
		if e, ok := AsFailure[E](err); ok {
			return h(e)(ctx)
		}
		var zero A
		return zero, err
	}
}

// OnError runs cleanup only if m fails with a domain error, then re-raises
// the original error. Interruption does not trigger cleanup here; use
// Managed for guaranteed release on every exit including interruption.
func OnError[E, A any](m IO[E, A], cleanup func(E) IO[E, struct{}]) IO[E, A] {
	return func(ctx context.Context) (A, error) {
		a, err := m(ctx)
		if err == nil {
			return a, nil
		}
		if e, ok := AsFailure[E](err); ok {
			_, _ = cleanup(e)(ctx)
		}
		var zero A
		return zero, err
	}
}

// Fiber is a handle to a computation running on its own goroutine. Its
// completion is a Promise: Join is nothing but Await, and multiple
// observers (Join, Interrupt, a supervisor's cleanup) may all wait on the
// same one-shot result.
type Fiber[E, A any] struct {
	cancel  context.CancelFunc
	promise *Promise[E, A]
}

type supervisorKey struct{}

type supervisor struct {
	fibers []interface{ interruptQuiet() }
}

// Fork starts m on its own goroutine and returns a handle to it
// immediately. If the enclosing IO is running under Supervised, the fiber
// is registered with that scope and interrupted when the scope exits.
func Fork[E, A any](m IO[E, A]) IO[E, *Fiber[E, A]] {
	return func(ctx context.Context) (*Fiber[E, A], error) {
		fctx, cancel := context.WithCancel(ctx)
		f := &Fiber[E, A]{cancel: cancel, promise: NewPromise[E, A]()}
		go func() {
			a, err := m(fctx)
			f.promise.completeRaw(a, err)
		}()
		if sup, ok := ctx.Value(supervisorKey{}).(*supervisor); ok {
			sup.fibers = append(sup.fibers, f)
		}
		return f, nil
	}
}

// Join awaits the fiber's completion and returns its result.
func (f *Fiber[E, A]) Join() IO[E, A] {
	return f.promise.Await()
}

// Interrupt cancels the fiber and waits for it to observe cancellation.
// Wrapped in Uninterruptible: a caller's own context being canceled (e.g.
// during a Managed release) must never cut this wait short and leak the
// fiber's goroutine.
func (f *Fiber[E, A]) Interrupt() IO[E, struct{}] {
	return Uninterruptible[E, struct{}](func(context.Context) (struct{}, error) {
		f.cancel()
		<-f.promise.done
		return struct{}{}, nil
	})
}

func (f *Fiber[E, A]) interruptQuiet() {
	f.cancel()
	<-f.promise.done
}

// Supervised runs m with a fresh supervision scope: every fiber forked
// (directly or transitively) while m is running is interrupted when m
// returns, by any exit — normal completion, failure, or interruption.
func Supervised[E, A any](m IO[E, A]) IO[E, A] {
	return func(ctx context.Context) (A, error) {
		sup := &supervisor{}
		sctx := context.WithValue(ctx, supervisorKey{}, sup)
		defer func() {
			for _, f := range sup.fibers {
				f.interruptQuiet()
			}
		}()
		return m(sctx)
	}
}

// uninterruptibleCtx wraps a context so cancellation of the parent never
// surfaces to m: Done never fires and Err always reports nil, while Value
// lookups still delegate to the parent normally.
type uninterruptibleCtx struct{ context.Context }

func (uninterruptibleCtx) Done() <-chan struct{} { return nil }
func (uninterruptibleCtx) Err() error             { return nil }

// Uninterruptible runs m in a region immune to the caller's own
// cancellation, for cleanup and release actions that must run to
// completion regardless of why the enclosing scope is exiting. Mirrors
// kont.Bracket's guarantee language (release always runs) as an explicit,
// reusable IO combinator rather than leaving it implicit in each release
// closure.
func Uninterruptible[E, A any](m IO[E, A]) IO[E, A] {
	return func(ctx context.Context) (A, error) {
		return m(uninterruptibleCtx{ctx})
	}
}

// Interruptible is Uninterruptible's inverse: a documented no-op marking a
// region that responds normally to cancellation, for symmetry at call
// sites that would otherwise read ambiguously next to an Uninterruptible
// one.
func Interruptible[E, A any](m IO[E, A]) IO[E, A] {
	return m
}

// Delay suspends for d (honoring ctx cancellation) before running m.
func Delay[E, A any](clock Clock, d time.Duration, m IO[E, A]) IO[E, A] {
	return func(ctx context.Context) (A, error) {
		if err := clock.Sleep(ctx, d); err != nil {
			var zero A
			return zero, err
		}
		return m(ctx)
	}
}
