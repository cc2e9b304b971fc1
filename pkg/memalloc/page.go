package memalloc

import (
	"unsafe"

	"github.com/flier/memalloc/internal/debug"
)

// pointerWidth is the minimum slot size: the intrusive free list threads its
// link through the first machine word of a free slot.
const pointerWidth = Size(unsafe.Sizeof(uintptr(0)))

// pageTailSentinel marks a page header's next field as "not yet linked into
// the page list", distinguishing a freshly allocated page from both a page
// linked to another page and the Go nil address. The source library does
// not zero a fresh page's next pointer before threading its slots onto the
// free list; this sentinel preserves that ordering literally rather than
// redesigning it away (spec open question, see DESIGN.md).
const pageTailSentinel = ^Addr(0)

// page is the header prefixed to every page's payload bytes. It is followed
// immediately in memory by slotsPerPage*slotSize bytes of slot storage.
type page struct {
	next Addr
}

const pageHeaderSize = Size(unsafe.Sizeof(page{}))

// PageAllocator is a grow-only pool of fixed-size slots, served from a
// linked list of pages (newest at head) and recycled through an intrusive
// free list: a freed slot's first machine word is overwritten with the
// address of the next free slot, avoiding any per-slot metadata.
type PageAllocator struct {
	slotSize     Size
	slotsPerPage Size
	pageSize     Size

	pages    Addr // head of the page list, or nil
	freeList Addr // head of the free list, or nil
}

var _ Policy = (*PageAllocator)(nil)

// NewPageAllocator constructs a pool whose slots are at least slotSize
// bytes (rounded up to pointer width, since the free-list link must fit)
// and which grows by slotsPerPage slots at a time. If preallocate is true,
// the first page is acquired immediately rather than on first Allocate.
func NewPageAllocator(slotSize, slotsPerPage Size, preallocate bool) *PageAllocator {
	if slotSize < pointerWidth {
		slotSize = pointerWidth
	}

	a := &PageAllocator{
		slotSize:     slotSize,
		slotsPerPage: slotsPerPage,
		pageSize:     pageHeaderSize + slotSize*slotsPerPage,
	}

	if preallocate {
		a.growPage()
	}

	return a
}

func (a *PageAllocator) pageHeader(p Addr) *page {
	return (*page)(unsafe.Pointer(uintptr(p)))
}

func (a *PageAllocator) payload(p Addr) Addr {
	return p.Add(int(pageHeaderSize))
}

// growPage acquires a new page from the terminal heap, links it at the
// head of the page list, and pushes each of its slots onto the free list
// in ascending address order — so the slot at the highest address is
// pushed last, and is therefore the first one Allocate hands back.
func (a *PageAllocator) growPage() bool {
	base, _, ok := globalAlloc(a.pageSize)
	if !ok {
		return false
	}

	hdr := a.pageHeader(base)
	hdr.next = pageTailSentinel

	payload := a.payload(base)

	for i := Size(0); i < a.slotsPerPage; i++ {
		slot := payload.Add(int(i * a.slotSize))
		a.pushFree(slot)
	}

	hdr.next = a.pages
	a.pages = base

	debug.Log(nil, "growPage", "%v, %d slots of %d bytes", base, a.slotsPerPage, a.slotSize)

	return true
}

func (a *PageAllocator) pushFree(slot Addr) {
	link := (*Addr)(unsafe.Pointer(uintptr(slot)))
	*link = a.freeList
	a.freeList = slot
}

func (a *PageAllocator) popFree() Addr {
	slot := a.freeList
	if slot == 0 {
		return 0
	}

	link := (*Addr)(unsafe.Pointer(uintptr(slot)))
	a.freeList = *link

	return slot
}

// Allocate returns the address of one free slot, growing the pool by one
// page first if the free list is empty. n is ignored: the page allocator
// only ever serves exactly one slot at a time, not general-size allocation.
func (a *PageAllocator) Allocate(n Size) Addr {
	if a.freeList == 0 && !a.growPage() {
		return 0
	}

	addr := a.popFree()

	debug.Log(nil, "Allocate", "%v", addr)

	return addr
}

// Deallocate pushes addr back onto the head of the free list. Precondition:
// Owns(addr).
func (a *PageAllocator) Deallocate(addr Addr, n Size) {
	debug.Assert(a.Owns(addr), "deallocate of unowned address %v", addr)

	a.pushFree(addr)

	debug.Log(nil, "Deallocate", "%v", addr)
}

// Owns reports whether addr lies within some page's payload region, on a
// slot boundary.
func (a *PageAllocator) Owns(addr Addr) bool {
	for p := a.pages; p != 0; p = a.pageHeader(p).next {
		payload := a.payload(p)
		offset := Size(addr) - Size(payload)

		if offset < a.slotsPerPage*a.slotSize && offset%a.slotSize == 0 {
			return true
		}
	}

	return false
}

// IsFull reports whether every page's slots are currently live, i.e. the
// free list is empty while at least one page exists.
func (a *PageAllocator) IsFull() bool {
	return a.pages != 0 && a.freeList == 0
}

// FreeSize reports the byte count of slots currently on the free list.
func (a *PageAllocator) FreeSize() Size {
	count := Size(0)

	for slot := a.freeList; slot != 0; {
		count++

		link := (*Addr)(unsafe.Pointer(uintptr(slot)))
		slot = *link
	}

	return count * a.slotSize
}

// Free clears the free list without any per-page bookkeeping and returns
// every page to the terminal heap.
func (a *PageAllocator) Free() {
	a.freeList = 0

	for p := a.pages; p != 0; {
		next := a.pageHeader(p).next
		globalFree(p, a.pageSize)
		p = next
	}

	a.pages = 0
}
