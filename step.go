package stream

// Step[S] threads a fold carrier s together with an early-exit signal.
// Cont(s) means folding should continue with carrier s; Stop(s) means
// folding should terminate early, returning carrier s. Map preserves the
// tag; only Fold eliminates it.
type Step[S any] struct {
	cont bool
	s    S
}

// Cont builds a continuing Step around carrier s.
func Cont[S any](s S) Step[S] { return Step[S]{cont: true, s: s} }

// Stop builds an early-exit Step around carrier s.
func Stop[S any](s S) Step[S] { return Step[S]{cont: false, s: s} }

// IsCont reports whether this Step signals continuation.
func (st Step[S]) IsCont() bool { return st.cont }

// IsStop reports whether this Step signals early exit.
func (st Step[S]) IsStop() bool { return !st.cont }

// Extract projects the carrier, ignoring the Cont/Stop tag.
func (st Step[S]) Extract() S { return st.s }

// Map applies f to the carrier, preserving the tag.
func (st Step[S]) Map(f func(S) S) Step[S] {
	return Step[S]{cont: st.cont, s: f(st.s)}
}

// Fold eliminates the Step, calling onCont or onStop depending on the tag.
func (st Step[S]) Fold(onCont, onStop func(S) S) S {
	if st.cont {
		return onCont(st.s)
	}
	return onStop(st.s)
}

// stepBox is the type-erased shape of a Step[S] threaded through a fold
// closure whose carrier type is fixed by the caller of Fold and not known
// to any intermediate combinator. See erased.go.
type stepBox struct {
	cont bool
	s    Erased
}
