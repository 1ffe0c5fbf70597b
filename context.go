package stream

import "context"

// contextDone reports whether ctx has been canceled or deadline-exceeded.
// Used by the synchronous producers (FromIterable, FromChunk, Unfold) to
// check for cancellation between elements without allocating a select
// for the common, not-yet-canceled case.
func contextDone(ctx context.Context) bool {
	return ctx.Err() != nil
}
