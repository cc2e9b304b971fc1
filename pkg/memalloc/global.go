package memalloc

import "github.com/flier/memalloc/pkg/xunsafe/layout"

// GlobalAllocator is a stateless policy over the host process's
// general-purpose heap. It is the universal terminal fallback: its Owns
// accepts any non-nil address, on the assumption that it only ever appears
// at the innermost position of a [FallbackAllocator] chain, behind every
// more specific allocator.
type GlobalAllocator[T any] struct{}

var _ Policy = GlobalAllocator[byte]{}

func (GlobalAllocator[T]) elemSize() Size { return Size(layout.Size[T]()) }

// Allocate reserves n elements of T from the terminal heap.
func (a GlobalAllocator[T]) Allocate(n Size) Addr {
	addr, _, ok := globalAlloc(n * a.elemSize())
	if !ok {
		return 0
	}

	return addr
}

// Deallocate releases the n elements of T at addr back to the terminal heap.
func (a GlobalAllocator[T]) Deallocate(addr Addr, n Size) {
	globalFree(addr, n*a.elemSize())
}

// Owns reports whether addr is non-nil. This is deliberately permissive:
// the global allocator is meant to be used only as the terminal fallback,
// where "not claimed by anything more specific" is the correct answer.
func (GlobalAllocator[T]) Owns(addr Addr) bool { return addr != 0 }

// IsFull always reports false: the terminal heap's capacity is not modeled.
func (GlobalAllocator[T]) IsFull() bool { return false }

// FreeSize reports the maximum representable Size, since the terminal
// heap's remaining capacity is not modeled.
func (GlobalAllocator[T]) FreeSize() Size { return ^Size(0) }
