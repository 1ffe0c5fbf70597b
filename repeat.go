package stream

import "context"

// Repeat re-runs str from scratch each time it completes with Cont, per
// sched's verdict: sched.Update is called with struct{}{} after every full
// run, and while it continues, Repeat sleeps its reported delay on clock
// and runs str again. A Stop from any run of str stops Repeat outright.
func Repeat[E, A any](clock Clock, sched Schedule[struct{}], str Stream[E, A]) Stream[E, A] {
	return Stream[E, A]{
		fold: func(ctx context.Context, s0 Erased, step func(Erased, A) (Erased, error)) (Erased, error) {
			cur := s0
			schedState := sched.Initial()
			for {
				res, err := str.fold(ctx, cur, step)
				if err != nil {
					return nil, err
				}
				box := res.(stepBox)
				cur = box.s
				if !box.cont {
					return box, nil
				}
				var decision ScheduleDecision
				schedState, decision = sched.Update(schedState, struct{}{})
				if !decision.Continue {
					return stepBox{cont: true, s: cur}, nil
				}
				if decision.Delay > 0 {
					if err := clock.Sleep(ctx, decision.Delay); err != nil {
						return nil, err
					}
				}
			}
		},
	}
}

// RepeatElems re-emits each upstream element per sched: after step first
// consumes a, sched.Update(state, a) decides whether to re-offer the same
// a again (after sleeping its reported delay), and how many more times.
// Schedule state is independent per element.
func RepeatElems[E, A any](clock Clock, sched Schedule[A], str Stream[E, A]) Stream[E, A] {
	return Stream[E, A]{
		fold: func(ctx context.Context, s0 Erased, step func(Erased, A) (Erased, error)) (Erased, error) {
			return str.fold(ctx, s0, func(s Erased, a A) (Erased, error) {
				cur := s
				schedState := sched.Initial()
				for {
					res, err := step(cur, a)
					if err != nil {
						return nil, err
					}
					box := res.(stepBox)
					cur = box.s
					if !box.cont {
						return box, nil
					}
					var decision ScheduleDecision
					schedState, decision = sched.Update(schedState, a)
					if !decision.Continue {
						return stepBox{cont: true, s: cur}, nil
					}
					if decision.Delay > 0 {
						if err := clock.Sleep(ctx, decision.Delay); err != nil {
							return nil, err
						}
					}
				}
			})
		},
	}
}
