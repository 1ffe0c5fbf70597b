package stream

import "golang.org/x/exp/slices"

// Chunk[A] is a small indexed buffer, used to shuttle leftovers between a
// Sink and the stream that fed it (Run, Transduce, Peel).
type Chunk[A any] struct {
	elems []A
}

// NewChunk builds a Chunk from the given elements.
func NewChunk[A any](as ...A) Chunk[A] {
	return Chunk[A]{elems: slices.Clone(as)}
}

// ChunkFromSlice builds a Chunk that owns a clone of s.
func ChunkFromSlice[A any](s []A) Chunk[A] {
	return Chunk[A]{elems: slices.Clone(s)}
}

// Empty reports whether the chunk has no elements.
func (c Chunk[A]) Empty() bool { return len(c.elems) == 0 }

// Len returns the number of elements in the chunk.
func (c Chunk[A]) Len() int { return len(c.elems) }

// Get returns the element at index i.
func (c Chunk[A]) Get(i int) A { return c.elems[i] }

// Append returns a new chunk with a appended, leaving c untouched.
func (c Chunk[A]) Append(a A) Chunk[A] {
	return Chunk[A]{elems: append(slices.Clone(c.elems), a)}
}

// Concat returns a new chunk holding c's elements followed by other's.
func (c Chunk[A]) Concat(other Chunk[A]) Chunk[A] {
	out := make([]A, 0, len(c.elems)+len(other.elems))
	out = append(out, c.elems...)
	out = append(out, other.elems...)
	return Chunk[A]{elems: out}
}

// ToSlice returns a defensive copy of the chunk's elements.
func (c Chunk[A]) ToSlice() []A { return slices.Clone(c.elems) }
