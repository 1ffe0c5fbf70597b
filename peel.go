package stream

import "context"

// PeelResult is Peel's outcome: sink's result over the elements it
// consumed before completing, plus a Tail stream continuing from exactly
// where sink left off — the sink's own leftover first, then whatever
// upstream had left to produce.
type PeelResult[E, A, B any] struct {
	Result B
	Tail   Stream[E, A]
}

// Peel runs sink against str's elements until sink completes (or str is
// exhausted, whichever comes first), then hands back both sink's result
// and a Tail stream that continues str exactly once more, with no
// duplication or dropped elements.
//
// Rather than the fiber-plus-resume-promise handoff a literal
// continuation-passing peel would need, this drains str into a Take
// queue via ToQueue's producer shape (reused directly through
// fromTakeQueue), feeds sink from that queue synchronously, and builds
// Tail as sink's leftover concatenated with whatever the queue still has
// left to deliver. The queue guarantees exactly one consumer ever reads
// any given element, which is the invariant a handoff design would also
// have to provide.
func Peel[E, S, A, B any](capacity int, str Stream[E, A], sink Sink[E, S, A, B]) Managed[E, PeelResult[E, A, B]] {
	return NewManaged[E, PeelResult[E, A, B]](func(ctx context.Context) (PeelResult[E, A, B], func(), error) {
		var zero PeelResult[E, A, B]
		qManaged := ToQueue[E, A](capacity, str)
		q, release, err := qManaged.acquire(ctx)
		if err != nil {
			return zero, nil, err
		}

		sinkState, err := sink.Initial(ctx)
		if err != nil {
			release()
			return zero, nil, err
		}

		var leftover Chunk[A]
		done := false
		for !done {
			t, err := q.Take()(ctx)
			if err != nil {
				release()
				return zero, nil, err
			}
			switch {
			case t.IsFail():
				release()
				return zero, nil, Failure[E]{Err: t.Err()}
			case t.IsEnd():
				done = true
			default:
				st, err := sink.Step(sinkState, NewChunk(t.Value()))(ctx)
				if err != nil {
					release()
					return zero, nil, err
				}
				sinkState = st.State()
				if !st.IsCont() {
					leftover = st.Leftover()
					done = true
				}
			}
		}

		result, err := sink.Extract(sinkState)(ctx)
		if err != nil {
			release()
			return zero, nil, err
		}

		tail := Concat(FromChunk[E, A](leftover), func() Stream[E, A] { return fromTakeQueue[E, A](q) })
		return PeelResult[E, A, B]{Result: result, Tail: tail}, release, nil
	})
}
