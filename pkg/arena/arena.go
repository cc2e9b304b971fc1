//go:build go1.22

// Package arena provides ergonomic, generic sugar over the allocator
// policies in [github.com/flier/memalloc/pkg/memalloc]: a growable
// sequence of fixed-capacity bump regions ([Arena]) and a free-list-backed
// variant that recycles same-size releases ([Recycled]).
//
// # Key concepts
//
// Arena: a sequence of [github.com/flier/memalloc/pkg/memalloc.StackAllocator]
// blocks. Allocation is O(1) bump-pointer; individual blocks are released
// together by [Arena.Reset] or [Arena.Free], never one at a time.
//
// Recycled: an [Arena] paired with an intrusive free list per size class,
// so that [Recycled.Release] makes freed memory available again instead of
// only growing.
//
// # Memory safety
//
// Arena-allocated data should not hold pointers to memory outside the
// arena, and must not be accessed after [Arena.Reset] or [Arena.Free].
package arena

import (
	"unsafe"

	"github.com/flier/memalloc/internal/debug"
	"github.com/flier/memalloc/pkg/memalloc"
	"github.com/flier/memalloc/pkg/xunsafe"
	"github.com/flier/memalloc/pkg/xunsafe/layout"
)

// Allocator is the interface wrapping the basic allocate/release
// operations. [Arena] and [Recycled] both implement it.
type Allocator interface {
	// Alloc allocates size bytes and returns a pointer to the block. The
	// contents are uninitialized.
	Alloc(size int) *byte

	// Release returns a previously allocated block back to the allocator.
	// p must have been returned by Alloc with the same size.
	Release(p *byte, size int)
}

// AllocatorExt extends Allocator with the bookkeeping [Slice.Grow] needs to
// attempt an in-place growth before falling back to copying.
type AllocatorExt interface {
	Allocator

	// Next returns the address the next Alloc call would hand out, absent
	// growth.
	Next() xunsafe.Addr[byte]

	// End returns the address one past the active block's capacity.
	End() xunsafe.Addr[byte]

	// Advance moves Next forward by n bytes without going through Alloc.
	// Used to grow the most recent allocation in place.
	Advance(n int)

	// Log logs a message tagged with this allocator's identity.
	Log(op, format string, args ...any)
}

// Align is the alignment every allocation from this package respects: the
// pointer width, which is the smallest block able to hold the intrusive
// free-list link [Recycled] threads through released blocks.
const Align = int(unsafe.Sizeof(uintptr(0)))

const minBlockSize = 4096

// Arena is a growable sequence of bump-pointer blocks, each a
// [memalloc.StackAllocator]. A zero Arena is empty and ready to use; its
// first block is acquired lazily on the first Alloc.
type Arena struct {
	_ xunsafe.NoCopy

	blocks []*memalloc.StackAllocator
	cap    int
}

var (
	_ Allocator    = (*Arena)(nil)
	_ AllocatorExt = (*Arena)(nil)
)

func alignUp(size int) int {
	return (size + Align - 1) &^ (Align - 1)
}

// New allocates a new value of type T on an arena.
func New[T any](a Allocator, value T) *T {
	l := layout.Of[T]()
	if l.Align > Align {
		panic("over-aligned object")
	}

	p := xunsafe.Cast[T](a.Alloc(l.Size))
	*p = value

	return p
}

// Free releases a value of type T previously allocated from the given
// allocator back to its free list, when one exists.
func Free[T any](a Allocator, p *T) {
	size := layout.Of[T]().Size

	a.Release(xunsafe.Cast[byte](p), size)
}

func (a *Arena) active() *memalloc.StackAllocator {
	if len(a.blocks) == 0 {
		return nil
	}

	return a.blocks[len(a.blocks)-1]
}

// Alloc allocates size bytes, pointer-aligned, growing onto a fresh block
// if the active one cannot satisfy the request.
//
// Do not call this directly; use [New] instead.
func (a *Arena) Alloc(size int) *byte {
	aligned := alignUp(size)

	if block := a.active(); block != nil {
		if addr := block.Allocate(memalloc.Size(aligned)); addr != 0 {
			p := addr.AssertValid()
			a.Log("alloc", "%v, %d:%d", addr, aligned, Align)

			return p
		}
	}

	a.Grow(aligned)

	addr := a.active().Allocate(memalloc.Size(aligned))
	p := addr.AssertValid()
	a.Log("alloc", "%v, %d:%d", addr, aligned, Align)

	return p
}

// Release is a no-op for Arena: individual blocks are never released one
// allocation at a time, only wholesale via Reset or Free.
//
// Do not call this directly; use [Free] instead.
func (a *Arena) Release(p *byte, size int) {}

// Reserve ensures that at least size bytes can be allocated without
// growing onto a new block.
func (a *Arena) Reserve(size int) {
	block := a.active()
	if block == nil || memalloc.Size(size) > block.FreeSize() {
		a.Grow(size)
	}
}

// Reset rewinds the most recent block to empty and discards every earlier
// one, releasing their memory back to the terminal heap. Any pointer into
// memory allocated by this arena must not be used after Reset.
func (a *Arena) Reset() {
	if len(a.blocks) == 0 {
		return
	}

	last := len(a.blocks) - 1
	for _, block := range a.blocks[:last] {
		block.Free()
	}

	a.blocks[last].Reset()
	a.blocks[0] = a.blocks[last]
	a.blocks = a.blocks[:1]
	a.cap = int(a.blocks[0].FreeSize())
}

// Free releases every block this arena has ever grown onto, back to the
// terminal heap.
func (a *Arena) Free() {
	for _, block := range a.blocks {
		block.Free()
	}

	a.blocks = nil
	a.cap = 0
}

// Grow appends a fresh block of at least the given size.
func (a *Arena) Grow(size int) {
	n := max(size, a.cap*2, minBlockSize)

	block := memalloc.NewStackAllocator(memalloc.Size(n))
	a.blocks = append(a.blocks, block)
	a.cap = n

	a.Log("grow", "%d", n)
}

// Next returns the address the next Alloc call would hand out, absent
// growth onto a new block.
func (a *Arena) Next() xunsafe.Addr[byte] {
	block := a.active()
	if block == nil {
		return 0
	}

	return block.Top()
}

// End returns the address one past the active block's capacity.
func (a *Arena) End() xunsafe.Addr[byte] {
	block := a.active()
	if block == nil {
		return 0
	}

	return block.End()
}

// Cap returns the active block's total capacity.
func (a *Arena) Cap() int { return a.cap }

// Empty reports whether nothing has been allocated from the active block.
func (a *Arena) Empty() bool {
	block := a.active()

	return block == nil || int(block.FreeSize()) == a.cap
}

// Advance moves the active block's cursor forward by n bytes without going
// through Alloc; used by [Slice.Grow] to extend the most recent allocation
// in place.
func (a *Arena) Advance(n int) {
	block := a.active()
	if block == nil {
		return
	}

	block.Allocate(memalloc.Size(n))
}

// Log logs a message tagged with this arena's identity.
func (a *Arena) Log(op, format string, args ...any) {
	debug.Log([]any{"%p %v:%v", a, a.Next(), a.End()}, op, format, args...)
}
