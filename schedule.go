package stream

import "time"

// ScheduleDecision is a Schedule's per-tick verdict: whether to continue,
// and after what delay.
type ScheduleDecision struct {
	Continue bool
	Delay    time.Duration
}

// Schedule[A] is a recurrence/decision generator: given its own
// (type-erased) state and the most recent input a, it decides whether to
// continue and, if so, what the next state is and how long to wait.
//
// The state is Erased for the same reason Stream's carrier is: Go cannot
// express an existential "some state type S" as a struct field, so it is
// erased at construction and recovered only by Update's own closure.
type Schedule[A any] struct {
	initial Erased
	update  func(state Erased, a A) (Erased, ScheduleDecision)
}

// Initial returns the schedule's starting state.
func (s Schedule[A]) Initial() Erased { return s.initial }

// Update advances the schedule by one tick.
func (s Schedule[A]) Update(state Erased, a A) (Erased, ScheduleDecision) {
	return s.update(state, a)
}

// ScheduleForever recurs unconditionally with no delay.
func ScheduleForever[A any]() Schedule[A] {
	return Schedule[A]{
		initial: struct{}{},
		update: func(state Erased, _ A) (Erased, ScheduleDecision) {
			return state, ScheduleDecision{Continue: true}
		},
	}
}

// Recurs recurs exactly n more times after the first run, then stops.
func Recurs[A any](n int) Schedule[A] {
	return Schedule[A]{
		initial: 0,
		update: func(state Erased, _ A) (Erased, ScheduleDecision) {
			count := state.(int)
			if count >= n {
				return count, ScheduleDecision{Continue: false}
			}
			return count + 1, ScheduleDecision{Continue: true}
		},
	}
}

// Spaced recurs forever, waiting d between each run.
func Spaced[A any](d time.Duration) Schedule[A] {
	return Schedule[A]{
		initial: struct{}{},
		update: func(state Erased, _ A) (Erased, ScheduleDecision) {
			return state, ScheduleDecision{Continue: true, Delay: d}
		},
	}
}

// SpacedRecurs recurs n more times, waiting d between each run.
func SpacedRecurs[A any](n int, d time.Duration) Schedule[A] {
	type st struct{ count int }
	return Schedule[A]{
		initial: st{},
		update: func(state Erased, _ A) (Erased, ScheduleDecision) {
			s := state.(st)
			if s.count >= n {
				return s, ScheduleDecision{Continue: false}
			}
			return st{count: s.count + 1}, ScheduleDecision{Continue: true, Delay: d}
		},
	}
}
