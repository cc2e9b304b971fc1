package memalloc

import "github.com/flier/memalloc/internal/debug"

// StackAllocator serves byte-addressed allocations by bumping a cursor
// forward over a single fixed backing [Chunk], and requires release in
// strict LIFO order. This is the cheapest allocator in this package for
// strictly scoped regions — per-frame scratch space, recursive-descent
// working buffers — where the complexity of tracking holes belongs to
// [InlineAllocator] or [PageAllocator] instead.
type StackAllocator struct {
	chunk *Chunk
	top   Addr
}

var _ Policy = (*StackAllocator)(nil)

// NewStackAllocator acquires size bytes from the terminal heap to serve as
// the stack's backing storage.
func NewStackAllocator(size Size) *StackAllocator {
	chunk := NewChunk(size)
	if chunk == nil {
		return nil
	}

	return &StackAllocator{chunk: chunk, top: chunk.Base()}
}

// Allocate advances top by n bytes and returns the prior top, or the nil
// Addr if n exceeds FreeSize.
func (s *StackAllocator) Allocate(n Size) Addr {
	if n > s.FreeSize() {
		return 0
	}

	p := s.top
	s.top = s.top.Add(int(n))

	debug.Log(nil, "Allocate", "%v:%d -> %v", p, n, s.top)

	return p
}

// Deallocate releases the region [addr, addr+n) back to the stack. Valid
// only when addr == top-n, i.e. this is the most recently allocated region
// still outstanding; violating LIFO order is a contract violation caught
// by a debug assertion only — release builds trust the caller and perform
// no validation.
func (s *StackAllocator) Deallocate(addr Addr, n Size) {
	debug.Assert(addr == s.top.Add(-int(n)), "deallocate %v:%d violates LIFO order, top is %v", addr, n, s.top)

	s.top = addr

	debug.Log(nil, "Deallocate", "%v:%d -> %v", addr, n, s.top)
}

// Top returns the address the next Allocate call would hand out, absent
// growth.
func (s *StackAllocator) Top() Addr { return s.top }

// End returns the address one past the backing chunk's capacity.
func (s *StackAllocator) End() Addr { return s.chunk.End() }

// Owns reports whether addr lies within the stack's backing chunk.
func (s *StackAllocator) Owns(addr Addr) bool { return s.chunk.Owns(addr) }

// IsFull reports whether the stack has no remaining capacity.
func (s *StackAllocator) IsFull() bool { return s.top == s.chunk.End() }

// FreeSize reports the byte distance between top and the end of the chunk.
func (s *StackAllocator) FreeSize() Size {
	return Size(s.chunk.End()) - Size(s.top)
}

// Free releases the stack's backing chunk back to the terminal heap.
func (s *StackAllocator) Free() { s.chunk.Free() }

// Reset rewinds top back to the base of the chunk, reclaiming every
// outstanding allocation at once. Unlike Deallocate, this bypasses LIFO
// bookkeeping entirely: it is the caller's responsibility to ensure
// nothing still references memory handed out by this stack.
func (s *StackAllocator) Reset() { s.top = s.chunk.Base() }
