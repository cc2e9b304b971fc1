package memalloc

import "github.com/flier/memalloc/pkg/xunsafe"

// Addr is an untyped byte address into memory owned by one of this
// package's allocators. The nil Addr is the universal "allocation failed"
// sentinel returned by Policy.Allocate.
type Addr = xunsafe.Addr[byte]

// AddrOfSlice returns the address of a byte slice's backing storage.
func AddrOfSlice(b []byte) Addr {
	return xunsafe.AddrOf(&b[0])
}
