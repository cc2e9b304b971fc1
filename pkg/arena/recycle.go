//go:build go1.22

package arena

import (
	"math/bits"
	"unsafe"

	"github.com/flier/memalloc/pkg/xunsafe"
)

// Recycled is an [Arena] that also maintains a free list per size class, so
// that [Recycled.Release] makes memory available for reuse instead of only
// ever growing.
//
// Size classes are indexed by log2 of the request size rounded up to Align
// and then to a power of two; a block the arena hands out for class k is
// 1<<k bytes, so any released block of a class can serve any request of
// that class.
// Released blocks are threaded into a singly linked list using the first
// machine word of the block itself as the "next" pointer — the same
// intrusive free-list idiom [github.com/flier/memalloc/pkg/memalloc.PageAllocator]
// uses for its own slots, applied here to arbitrary same-class arena
// blocks rather than to one allocator's own pages. Blocks smaller than
// Align are too small to carry a link and are left for the arena to
// reclaim wholesale on Reset.
type Recycled struct {
	Arena

	free []xunsafe.Addr[byte]
}

var _ Allocator = (*Recycled)(nil)

const freeListCapacity = 64

func (a *Recycled) ensureFreeList() {
	if a.free == nil {
		a.free = make([]xunsafe.Addr[byte], freeListCapacity)
	}
}

// Release returns a previously allocated block to the free list for its
// size class.
func (a *Recycled) Release(p *byte, size int) {
	if size < Align {
		return
	}

	class := sizeClassIndex(alignUp(size))

	a.ensureFreeList()

	link := (*xunsafe.Addr[byte])(unsafe.Pointer(p))
	*link = a.free[class]
	a.free[class] = xunsafe.AddrOf(p)
}

// Alloc returns size bytes, preferring a recycled block from the matching
// size class (zeroed before being handed back) and falling back to the
// embedded Arena when none is available. Alloc(0) returns nil.
func (a *Recycled) Alloc(size int) *byte {
	if size == 0 {
		return nil
	}

	a.ensureFreeList()

	class := sizeClassIndex(alignUp(size))

	if head := a.free[class]; head != 0 {
		p := head.AssertValid()
		link := (*xunsafe.Addr[byte])(unsafe.Pointer(p))
		a.free[class] = *link

		xunsafe.Clear(p, 1<<class)

		return p
	}

	return a.Arena.Alloc(1 << class)
}

// Reset clears every size-class free list, then resets the embedded Arena.
// Pointers into memory managed by this allocator must not be used after
// Reset.
func (a *Recycled) Reset() {
	for i := range a.free {
		a.free[i] = 0
	}

	a.Arena.Reset()
}

func sizeClassIndex(size int) int {
	return bits.Len(uint(size) - 1)
}
