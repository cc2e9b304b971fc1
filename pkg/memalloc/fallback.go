package memalloc

import "github.com/flier/memalloc/internal/debug"

// FallbackAllocator sequences two policies: Allocate tries Primary first
// and only calls Fallback when Primary returns the nil Addr. It owns
// nothing of its own — every address it returns is routed to and from
// whichever child actually produced it.
//
// Fallback[A, Fallback[B, C]] and Fallback[Fallback[A, B], C] behave
// identically at the public contract, as long as at most one leaf's Owns
// claims a given address. Because GlobalAllocator's Owns accepts any
// non-nil address, it must only ever appear at the innermost (rightmost)
// position of a fallback chain.
type FallbackAllocator[Primary, Fallback Policy] struct {
	Primary  Primary
	Fallback Fallback
}

var _ Policy = FallbackAllocator[*StackAllocator, *StackAllocator]{}

// Allocate tries Primary, then Fallback.
func (a FallbackAllocator[P, F]) Allocate(n Size) Addr {
	if addr := a.Primary.Allocate(n); addr != 0 {
		return addr
	}

	return a.Fallback.Allocate(n)
}

// Deallocate routes to whichever child owns addr. If neither does, this is
// a contract violation caught by a debug assertion.
func (a FallbackAllocator[P, F]) Deallocate(addr Addr, n Size) {
	if a.Primary.Owns(addr) {
		a.Primary.Deallocate(addr, n)

		return
	}

	debug.Assert(a.Fallback.Owns(addr), "deallocate of address %v owned by neither child", addr)

	a.Fallback.Deallocate(addr, n)
}

// Owns reports whether either child owns addr.
func (a FallbackAllocator[P, F]) Owns(addr Addr) bool {
	return a.Primary.Owns(addr) || a.Fallback.Owns(addr)
}

// IsFull reports whether both children are full.
func (a FallbackAllocator[P, F]) IsFull() bool {
	return a.Primary.IsFull() && a.Fallback.IsFull()
}

// FreeSize reports the larger of the two children's FreeSize. This is
// informational only: a caller cannot rely on it for contiguous-region
// planning when one child is a pool allocator.
func (a FallbackAllocator[P, F]) FreeSize() Size {
	return max(a.Primary.FreeSize(), a.Fallback.FreeSize())
}
