// Package sysmem is the one collaborator this module treats as external: the
// host process's general-purpose heap, reached through anonymous memory
// mappings rather than Go's garbage-collected heap.
//
// Every allocator policy in pkg/memalloc ultimately threads pointers through
// free storage (a free-list "next" link overwritten into the first machine
// word of a free slot) and reinterprets raw addresses as typed pointers on
// demand. Go's garbage collector has no way to know that such a uintptr is
// still "in use", so backing every allocator with ordinary make([]byte, n)
// would leave the collector free to reclaim or move memory out from under a
// live allocation. Reserving memory outside the Go heap via mmap sidesteps
// the problem entirely by treating the host's virtual memory as the terminal
// backing store, the same approach github.com/cznic/memory takes for the
// same reason.
package sysmem

import "os"

// PageSize is the host's native page size; mmap requests are granted in
// multiples of it.
var PageSize = os.Getpagesize()

// roundToPage rounds n up to the next multiple of PageSize.
func roundToPage(n int) int {
	mask := PageSize - 1
	return (n + mask) &^ mask
}
