package memalloc

// Pattern bytes stamped into memory at each lifecycle transition. Which
// pattern applies depends only on the transition, not on which allocator
// performs it. Stamping itself is a build-time toggle (see patterns_on.go /
// patterns_off.go); these constants exist regardless so the decorators
// compile either way.
const (
	// PatternAcquired marks a region acquired by an allocator from
	// upstream, not yet handed out to a caller.
	PatternAcquired byte = 0xCC

	// PatternAllocated marks a region returned to a caller by Allocate.
	PatternAllocated byte = 0xAA

	// PatternDeallocated marks a region handed back via Deallocate.
	PatternDeallocated byte = 0xDD

	// PatternReleased marks a region returned by an allocator to upstream,
	// or falling out of scope entirely.
	PatternReleased byte = 0xFF

	// PatternPadding marks reserved padding between allocations.
	PatternPadding byte = 0xBB
)
