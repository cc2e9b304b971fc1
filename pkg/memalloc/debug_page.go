package memalloc

// DebugPageAllocator is a drop-in decorator around [PageAllocator]: same
// contract, plus pattern stamping at every lifecycle transition and a
// [PageStats] record observable through Stats.
type DebugPageAllocator struct {
	*PageAllocator

	stats PageStats
}

var _ Policy = (*DebugPageAllocator)(nil)

// NewDebugPageAllocator wraps a freshly constructed PageAllocator with the
// given parameters.
func NewDebugPageAllocator(slotSize, slotsPerPage Size, preallocate bool) *DebugPageAllocator {
	d := &DebugPageAllocator{PageAllocator: NewPageAllocator(slotSize, slotsPerPage, false)}

	if preallocate {
		d.growPageTracked()
	}

	return d
}

func (d *DebugPageAllocator) growPageTracked() bool {
	if !d.growPage() {
		return false
	}

	d.stats.AllocatedPages++
	d.stats.FreeObjects += int(d.slotsPerPage)

	stamp(d.payload(d.pages), d.slotsPerPage*d.slotSize, PatternAcquired)

	return true
}

// Allocate grows the pool (tracked in Stats) if needed, then stamps and
// records the returned slot.
func (d *DebugPageAllocator) Allocate(n Size) Addr {
	if d.freeList == 0 && !d.growPageTracked() {
		return 0
	}

	addr := d.popFree()

	stamp(addr, d.slotSize, PatternAllocated)

	d.stats.AllocatedObjects++
	d.stats.FreeObjects--

	return addr
}

// Deallocate stamps and records the released slot.
func (d *DebugPageAllocator) Deallocate(addr Addr, n Size) {
	d.PageAllocator.Deallocate(addr, n)

	stamp(addr, d.slotSize, PatternDeallocated)

	d.stats.AllocatedObjects--
	d.stats.FreeObjects++
}

// Stats returns the accumulated statistics for this instance.
func (d *DebugPageAllocator) Stats() *PageStats { return &d.stats }

// Free stamps every page PatternReleased before returning it to the
// terminal heap.
func (d *DebugPageAllocator) Free() {
	for p := d.pages; p != 0; p = d.pageHeader(p).next {
		stamp(d.payload(p), d.slotsPerPage*d.slotSize, PatternReleased)
	}

	d.PageAllocator.Free()
}
