// Package memalloc provides composable, policy-oriented memory allocators
// for applications that want to opt out of the general-purpose heap on hot
// paths: short-lived scratch objects, pooled fixed-size nodes, stack-scoped
// regions.
//
// Every allocator in this package satisfies [Policy]: Allocate, Deallocate,
// Owns, IsFull, FreeSize. Leaf policies ([GlobalAllocator], [StackAllocator],
// [InlineAllocator], [PageAllocator]) own the memory they hand out.
// [FallbackAllocator] is the one combinator: it owns nothing itself, it only
// routes between a Primary and a Fallback policy.
//
// None of these allocators synchronize internally. A single instance must
// not be used from more than one goroutine at a time.
package memalloc

// Size is the unsigned integer type used for every byte count and slot count
// in this package, sized to the platform's address space.
type Size = uintptr

// KilobyteToByte converts a count of kilobytes to bytes.
func KilobyteToByte(n Size) Size { return n * 1024 }

// MegabyteToByte converts a count of megabytes to bytes.
func MegabyteToByte(n Size) Size { return n * 1024 * 1024 }

// Policy is the contract every allocator in this package implements.
//
// A combinator owns nothing of its own: it routes. A leaf owns every address
// it returns from Allocate for the interval up to the matching Deallocate.
type Policy interface {
	// Allocate returns the address of at least n units of the policy's
	// element type, or the nil Addr on local failure.
	Allocate(n Size) Addr

	// Deallocate releases a region previously returned by Allocate.
	// Precondition: Owns(addr).
	Deallocate(addr Addr, n Size)

	// Owns reports whether addr was returned by a live call to Allocate and
	// has not yet been released.
	Owns(addr Addr) bool

	// IsFull reports whether the policy has no more local capacity.
	IsFull() bool

	// FreeSize reports the byte count of the policy's remaining local
	// capacity.
	FreeSize() Size
}
