package memalloc

import (
	"fmt"
	"os"
	"sync/atomic"

	"github.com/flier/memalloc/internal/debug"
	"github.com/flier/memalloc/internal/sysmem"
)

// defaultOutOfMemoryCallback reports the failure and halts the process,
// matching the source library's default behaviour.
func defaultOutOfMemoryCallback() {
	fmt.Fprintln(os.Stderr, "memalloc: out of memory")
	os.Exit(1)
}

var oomCallback atomic.Pointer[func()]

func init() {
	fn := func() { defaultOutOfMemoryCallback() }
	oomCallback.Store(&fn)
}

// GetOutOfMemoryCallback returns the callback currently invoked when the
// terminal heap fails to satisfy a request.
func GetOutOfMemoryCallback() func() {
	return *oomCallback.Load()
}

// SetOutOfMemoryCallback replaces the process-wide out-of-memory callback.
// Passing nil reinstalls the default callback, which reports to stderr and
// halts the process.
func SetOutOfMemoryCallback(callback func()) {
	if callback == nil {
		callback = defaultOutOfMemoryCallback
	}

	oomCallback.Store(&callback)
}

// globalAlloc reserves size bytes from the host process's general-purpose
// heap, by way of an anonymous OS memory mapping (internal/sysmem) rather
// than Go's garbage-collected heap.
//
// Every allocator in this package threads raw addresses through free
// storage and reconstitutes pointers from uintptrs on demand (the
// intrusive free-list link, the page header). Go's collector cannot trace
// a uintptr, so backing this package with ordinary make([]byte, n) memory
// would leave the collector free to reclaim a chunk the moment no []byte
// or pointer value referencing it remained reachable, even while some
// allocator still considered that memory "owned". Reserving memory outside
// the Go heap sidesteps the problem: this is exactly the opaque terminal
// heap collaborator the allocator policies are specified against.
//
// On failure, the out-of-memory callback is invoked and the reservation is
// retried exactly once; if the retry also fails, the failure is returned to
// the caller, who is expected to propagate it as a fatal condition.
func globalAlloc(size Size) (Addr, Size, bool) {
	addr, n, err := sysmem.Reserve(int(size))
	if err == nil {
		return Addr(addr), Size(n), true
	}

	debug.Log(nil, "globalAlloc", "reservation of %d bytes failed: %v", size, err)

	GetOutOfMemoryCallback()()

	addr, n, err = sysmem.Reserve(int(size))
	if err != nil {
		return 0, 0, false
	}

	return Addr(addr), Size(n), true
}

// globalFree releases a region previously returned by globalAlloc.
func globalFree(addr Addr, size Size) {
	if err := sysmem.Release(uintptr(addr), int(size)); err != nil {
		debug.Log(nil, "globalFree", "release of %d bytes at %v failed: %v", size, addr, err)
	}
}
