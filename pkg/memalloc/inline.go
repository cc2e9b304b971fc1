package memalloc

import (
	"math/bits"

	"github.com/flier/memalloc/internal/debug"
	"github.com/flier/memalloc/pkg/xunsafe/layout"
)

// InlineAllocator is an N-slot bitmap pool. Go has no non-type generic
// parameter the way C++ templates do, so N is a runtime field set at
// construction rather than a compile-time constant; this trades away the
// "no external allocation at construction" property of the source library
// for idiomatic Go generics (see DESIGN.md).
//
// allocate(n) performs a first-fit scan over the bitmap with a specific
// skip rule: on finding a set bit at position j while checking a candidate
// run starting at i, the next candidate run starts at j+1 (not i+1). This is a
// documented, testable behaviour of the source library and is preserved
// here rather than simplified away.
type InlineAllocator[T any] struct {
	n      int
	arena  []byte
	bitmap []uint64
}

var _ Policy = (*InlineAllocator[byte])(nil)

// NewInlineAllocator constructs a pool of n slots, each sized to hold one T.
func NewInlineAllocator[T any](n int) *InlineAllocator[T] {
	elemSize := layout.Size[T]()

	return &InlineAllocator[T]{
		n:      n,
		arena:  make([]byte, n*elemSize),
		bitmap: make([]uint64, (n+63)/64),
	}
}

func (a *InlineAllocator[T]) elemSize() int { return layout.Size[T]() }

func (a *InlineAllocator[T]) base() Addr {
	if len(a.arena) == 0 {
		return 0
	}

	return AddrOfSlice(a.arena)
}

func (a *InlineAllocator[T]) bitSet(i int) bool {
	return a.bitmap[i/64]&(uint64(1)<<(uint(i)%64)) != 0
}

func (a *InlineAllocator[T]) setBits(start, n int) {
	for i := start; i < start+n; i++ {
		debug.Assert(!a.bitSet(i), "double allocation of slot %d", i)
		a.bitmap[i/64] |= uint64(1) << (uint(i) % 64)
	}
}

func (a *InlineAllocator[T]) clearBits(start, n int) {
	for i := start; i < start+n; i++ {
		debug.Assert(a.bitSet(i), "double free of slot %d", i)
		a.bitmap[i/64] &^= uint64(1) << (uint(i) % 64)
	}
}

func (a *InlineAllocator[T]) popcount() int {
	count := 0
	for _, w := range a.bitmap {
		count += bits.OnesCount64(w)
	}

	return count
}

// Allocate finds a run of n consecutive clear bits via first-fit scan,
// starting from index 0, and returns the address of the first slot in the
// run. Returns the nil Addr if no such run exists.
func (a *InlineAllocator[T]) Allocate(n Size) Addr {
	count := int(n)
	if count <= 0 || count > a.n {
		return 0
	}

	for i := 0; i <= a.n-count; {
		conflict := -1

		for j := i; j < i+count; j++ {
			if a.bitSet(j) {
				conflict = j

				break
			}
		}

		if conflict < 0 {
			a.setBits(i, count)

			addr := a.base().Add(i * a.elemSize())

			debug.Log(nil, "Allocate", "%v:%d at slot %d", addr, n, i)

			return addr
		}

		i = conflict + 1
	}

	return 0
}

// Deallocate clears the n bits starting at the slot index addr was
// allocated at. Each cleared bit must have been set; clearing an
// already-clear bit (a double free) is a contract violation caught by a
// debug assertion.
func (a *InlineAllocator[T]) Deallocate(addr Addr, n Size) {
	i := a.slotIndex(addr)

	a.clearBits(i, int(n))

	debug.Log(nil, "Deallocate", "%v:%d at slot %d", addr, n, i)
}

func (a *InlineAllocator[T]) slotIndex(addr Addr) int {
	return int(Size(addr)-Size(a.base())) / a.elemSize()
}

// Owns reports whether addr lies within the pool's arena and is aligned on
// an element boundary.
func (a *InlineAllocator[T]) Owns(addr Addr) bool {
	base := a.base()
	if base == 0 {
		return false
	}

	offset := Size(addr) - Size(base)

	return offset < Size(len(a.arena)) && offset%Size(a.elemSize()) == 0
}

// IsFull reports whether every slot in the pool is live.
func (a *InlineAllocator[T]) IsFull() bool { return a.popcount() == a.n }

// FreeSize reports the byte count of unallocated slots.
func (a *InlineAllocator[T]) FreeSize() Size {
	return Size(a.n-a.popcount()) * Size(a.elemSize())
}

// Rebind produces a fresh, empty pool with the same slot count N but a
// different element type U. It never aliases the memory of the receiver.
func Rebind[U, T any](a *InlineAllocator[T]) *InlineAllocator[U] {
	return NewInlineAllocator[U](a.n)
}
