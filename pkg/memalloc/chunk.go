package memalloc

import "github.com/flier/memalloc/internal/debug"

// Chunk owns a raw byte buffer acquired from the terminal heap. Construction
// takes a byte count and records exactly that many bytes as the chunk's size
// (the terminal heap may reserve more behind it, rounded up to its own
// granularity, but that slack is not part of the chunk); destruction
// releases them exactly once. A Chunk has no mutation operations of its own: higher
// allocators layer a cursor or free list on top.
type Chunk struct {
	base Addr
	size Size
	freed bool
}

// NewChunk acquires size bytes from the terminal heap.
func NewChunk(size Size) *Chunk {
	base, _, ok := globalAlloc(size)
	if !ok {
		return nil
	}

	return &Chunk{base: base, size: size}
}

// Base returns the address of the first byte of the chunk.
func (c *Chunk) Base() Addr { return c.base }

// Size returns the byte count of the chunk.
func (c *Chunk) Size() Size { return c.size }

// End returns the address one past the last byte of the chunk.
func (c *Chunk) End() Addr { return c.base.Add(int(c.size)) }

// Owns reports whether addr lies within [Base, End).
func (c *Chunk) Owns(addr Addr) bool {
	return Size(addr)-Size(c.base) < c.size
}

// Free releases the chunk's backing bytes. Calling Free more than once is a
// contract violation caught by a debug assertion.
func (c *Chunk) Free() {
	debug.Assert(!c.freed, "double free of chunk at %v", c.base)

	if c.freed {
		return
	}

	globalFree(c.base, c.size)
	c.freed = true
}
