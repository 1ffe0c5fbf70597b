package stream

// Option[A] is present/absent, used by the zip family (Zip, ZipWith,
// JoinWith) where either side may have run out of elements.
type Option[A any] struct {
	value A
	ok    bool
}

// Some wraps a present value.
func Some[A any](a A) Option[A] { return Option[A]{value: a, ok: true} }

// None is the absent value.
func None[A any]() Option[A] { var zero A; return Option[A]{value: zero, ok: false} }

// IsSome reports whether the option holds a value.
func (o Option[A]) IsSome() bool { return o.ok }

// Get returns the held value and true, or zero and false.
func (o Option[A]) Get() (A, bool) { return o.value, o.ok }
