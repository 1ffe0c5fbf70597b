// Package stream provides an effectful, pull-based stream combinator
// library. A Stream[E, A] describes a finite or infinite, possibly
// asynchronous, possibly failing sequence of values of type A whose errors
// are carried on the typed channel E.
//
// Every combinator — Map, Filter, FlatMap, Concat, Merge, Zip, Transduce,
// Repeat, Take, Drop, Scan, and the rest — is implemented in terms of a
// single primitive, Fold, which drives the stream against a caller-chosen
// carrier with early-exit ("Stop") semantics. Streams are pull-based: a
// producer only does work in response to a consumer asking for the next
// element, and Stop is authoritative — no element is ever produced or
// forwarded after a downstream step has returned Stop.
//
// Streams are values, not effects: building a Stream never runs anything.
// Running one — via Run, Foreach, or FoldLeft — returns an IO[E, B], an
// effect description that itself does no work until invoked with a
// context.Context.
//
// Concurrent combinators (Merge, Zip, JoinWith, Peel, ToQueue) bridge the
// sequential pull protocol to background producers through bounded queues:
// each source is folded on its own goroutine, offering elements onto a
// Queue that the consumer loop reads from. Every such background fiber is
// interrupted on every exit from its enclosing scope — early Stop, upstream
// failure, or external cancellation — which is this package's central
// resource-safety guarantee.
package stream
