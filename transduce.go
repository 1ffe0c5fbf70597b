package stream

import "context"

// Transduce re-chunks str through repeated runs of sink: elements are fed
// into sink.Step until it reports Done, sink.Extract's result is emitted
// downstream, and a fresh sink.Initial begins for the remainder (leftover
// first). If str is exhausted with the sink mid-run (Cont, having seen at
// least one element since the last Extract), that partial result is
// discarded rather than flushed — matching a fold-driven transducer that
// only ever emits on an explicit sink boundary. Use TransduceFlush for the
// alternative, flush-on-exhaustion behavior.
func Transduce[E, S, A, B any](str Stream[E, A], sink Sink[E, S, A, B]) Stream[E, B] {
	return transduceImpl[E, S, A, B](str, sink, false)
}

// TransduceFlush is Transduce, but a sink left mid-run when str is
// exhausted is extracted and emitted rather than discarded.
func TransduceFlush[E, S, A, B any](str Stream[E, A], sink Sink[E, S, A, B]) Stream[E, B] {
	return transduceImpl[E, S, A, B](str, sink, true)
}

func transduceImpl[E, S, A, B any](str Stream[E, A], sink Sink[E, S, A, B], flush bool) Stream[E, B] {
	return Stream[E, B]{
		fold: func(ctx context.Context, s0 Erased, step func(Erased, B) (Erased, error)) (Erased, error) {
			sinkState, err := sink.Initial(ctx)
			if err != nil {
				return nil, err
			}
			cur := s0
			started := false
			var stopped *stepBox

			// feed drives a through the current sink, looping through any
			// chain of boundaries a re-fed leftover element may itself
			// trigger (a freshly-initialized sink completing again on the
			// very next element), emitting once per boundary instead of
			// dropping all but the first.
			feed := func(a A) error {
				pending := []A{a}
				for len(pending) > 0 {
					next := pending[0]
					pending = pending[1:]
					started = true
					st, err := sink.Step(sinkState, NewChunk(next))(ctx)
					if err != nil {
						return err
					}
					sinkState = st.State()
					if st.IsCont() {
						continue
					}
					b, err := sink.Extract(sinkState)(ctx)
					if err != nil {
						return err
					}
					res, err := step(cur, b)
					if err != nil {
						return err
					}
					box := res.(stepBox)
					cur = box.s
					fresh, err := sink.Initial(ctx)
					if err != nil {
						return err
					}
					sinkState = fresh
					started = false
					leftover := st.Leftover()
					rest := make([]A, 0, leftover.Len()+len(pending))
					for i := 0; i < leftover.Len(); i++ {
						rest = append(rest, leftover.Get(i))
					}
					pending = append(rest, pending...)
					if !box.cont {
						stopped = &box
						return nil
					}
				}
				return nil
			}

			_, upErr := str.fold(ctx, struct{}{}, func(_ Erased, a A) (Erased, error) {
				if err := feed(a); err != nil {
					return nil, err
				}
				if stopped != nil {
					return *stopped, nil
				}
				return stepBox{cont: true, s: struct{}{}}, nil
			})
			if upErr != nil {
				return nil, upErr
			}
			if stopped != nil {
				return *stopped, nil
			}
			if flush && started {
				b, err := sink.Extract(sinkState)(ctx)
				if err != nil {
					return nil, err
				}
				return step(cur, b)
			}
			return stepBox{cont: true, s: cur}, nil
		},
	}
}
