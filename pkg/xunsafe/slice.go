package xunsafe

import (
	"unsafe"

	"github.com/flier/memalloc/pkg/xunsafe/layout"
)

// Bytes converts a pointer into a writable []byte view of the sizeof(E)
// bytes it points to.
func Bytes[P ~*E, E any](p P) []byte {
	size := layout.Size[E]()
	return unsafe.Slice(Cast[byte](p), size)
}
