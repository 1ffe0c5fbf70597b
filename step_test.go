package stream

import (
	"testing"

	"github.com/matryer/is"
)

func TestStepContStop(t *testing.T) {
	is := is.New(t)

	c := Cont(3)
	is.True(c.IsCont())
	is.True(!c.IsStop())
	is.Equal(c.Extract(), 3)

	s := Stop(4)
	is.True(s.IsStop())
	is.True(!s.IsCont())
	is.Equal(s.Extract(), 4)
}

func TestStepMap(t *testing.T) {
	is := is.New(t)

	c := Cont(3).Map(func(n int) int { return n * 2 })
	is.True(c.IsCont())
	is.Equal(c.Extract(), 6)

	s := Stop(3).Map(func(n int) int { return n * 2 })
	is.True(s.IsStop())
	is.Equal(s.Extract(), 6)
}

func TestStepFold(t *testing.T) {
	is := is.New(t)

	onCont := func(n int) int { return n + 1 }
	onStop := func(n int) int { return n - 1 }

	is.Equal(Cont(5).Fold(onCont, onStop), 6)
	is.Equal(Stop(5).Fold(onCont, onStop), 4)
}
