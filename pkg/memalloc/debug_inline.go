package memalloc

// DebugInlineAllocator decorates [InlineAllocator], publishing its
// statistics to an externally injected [InlineStats] record rather than
// keeping its own — so that multiple lifetimes constructed at the same
// call site (e.g. one per request) aggregate into a single record.
type DebugInlineAllocator[T any] struct {
	*InlineAllocator[T]

	stats *InlineStats
}

var _ Policy = (*DebugInlineAllocator[byte])(nil)

// NewDebugInlineAllocator constructs a pool of n slots, stamping its arena
// PatternAcquired and recording one more use against stats.
func NewDebugInlineAllocator[T any](n int, stats *InlineStats) *DebugInlineAllocator[T] {
	inner := NewInlineAllocator[T](n)

	stats.use()

	if base := inner.base(); base != 0 {
		stamp(base, Size(len(inner.arena)), PatternAcquired)
	}

	return &DebugInlineAllocator[T]{InlineAllocator: inner, stats: stats}
}

// Allocate stamps the returned region PatternAllocated. A local failure
// (the nil Addr) is recorded against stats as a fall-through: this pool
// could not satisfy the request, and a composing [FallbackAllocator] is
// expected to route it to the fallback policy instead.
func (d *DebugInlineAllocator[T]) Allocate(n Size) Addr {
	addr := d.InlineAllocator.Allocate(n)
	if addr != 0 {
		stamp(addr, n*Size(d.elemSize()), PatternAllocated)
	}

	d.stats.recordAllocate(int(n), addr == 0)

	return addr
}

// Deallocate stamps the released region PatternDeallocated.
func (d *DebugInlineAllocator[T]) Deallocate(addr Addr, n Size) {
	d.InlineAllocator.Deallocate(addr, n)

	stamp(addr, n*Size(d.elemSize()), PatternDeallocated)
}
