package memalloc

// DebugStackAllocator is a drop-in decorator around [StackAllocator]: same
// contract, plus pattern stamping at every lifecycle transition and a
// [StackStats] record observable through Stats.
type DebugStackAllocator struct {
	*StackAllocator

	stats StackStats
}

var _ Policy = (*DebugStackAllocator)(nil)

// NewDebugStackAllocator wraps a freshly constructed StackAllocator of the
// given size.
func NewDebugStackAllocator(size Size) *DebugStackAllocator {
	inner := NewStackAllocator(size)
	if inner == nil {
		return nil
	}

	d := &DebugStackAllocator{StackAllocator: inner}
	stamp(inner.chunk.Base(), size, PatternAcquired)

	return d
}

// Stats returns the accumulated statistics for this instance.
func (d *DebugStackAllocator) Stats() *StackStats { return &d.stats }

// Allocate stamps the returned region PatternAllocated and records the
// allocation in Stats.
func (d *DebugStackAllocator) Allocate(n Size) Addr {
	offset := Size(d.top) - Size(d.chunk.Base())

	addr := d.StackAllocator.Allocate(n)
	if addr == 0 {
		d.stats.Failures++

		return 0
	}

	stamp(addr, n, PatternAllocated)

	d.stats.Allocations++
	d.stats.PerAllocation = append(d.stats.PerAllocation, AllocationRecord{Size: n, Offset: offset})

	return addr
}

// Deallocate stamps the released region PatternDeallocated and records the
// deallocation in Stats.
func (d *DebugStackAllocator) Deallocate(addr Addr, n Size) {
	d.StackAllocator.Deallocate(addr, n)

	stamp(addr, n, PatternDeallocated)

	d.stats.Deallocations++
}

// Free stamps the whole backing chunk PatternReleased before releasing it.
func (d *DebugStackAllocator) Free() {
	stamp(d.chunk.Base(), d.chunk.Size(), PatternReleased)

	d.StackAllocator.Free()
}
