package stream

import (
	"testing"

	"github.com/matryer/is"
)

func TestChunkBasics(t *testing.T) {
	is := is.New(t)

	c := NewChunk(1, 2, 3)
	is.Equal(c.Len(), 3)
	is.Equal(c.Get(1), 2)
	is.True(!c.Empty())

	is.True(NewChunk[int]().Empty())
}

func TestChunkAppendConcat(t *testing.T) {
	is := is.New(t)

	c := NewChunk(1, 2)
	appended := c.Append(3)
	is.Equal(c.Len(), 2)
	is.Equal(appended.ToSlice(), []int{1, 2, 3})

	other := NewChunk(4, 5)
	joined := appended.Concat(other)
	is.Equal(joined.ToSlice(), []int{1, 2, 3, 4, 5})
}

func TestChunkFromSliceIsDefensiveCopy(t *testing.T) {
	is := is.New(t)

	backing := []int{1, 2, 3}
	c := ChunkFromSlice(backing)
	backing[0] = 99
	is.Equal(c.Get(0), 1)
}
