// Copyright 2011 Evan Shaw. All rights reserved.
// Use of this source code is governed by a BSD-style license.

//go:build windows

package sysmem

import (
	"os"
	"sync"
	"syscall"
)

var (
	handleMu sync.Mutex
	handles  = map[uintptr]syscall.Handle{}
)

// Reserve asks the OS for a fresh, zeroed anonymous mapping of at least size
// bytes and returns its base address and actual length (rounded up to a
// whole number of pages).
func Reserve(size int) (uintptr, int, error) {
	n := roundToPage(size)

	flProtect := uint32(syscall.PAGE_READWRITE)
	dwDesiredAccess := uint32(syscall.FILE_MAP_WRITE)
	maxSizeHigh := uint32(int64(n) >> 32)
	maxSizeLow := uint32(int64(n) & 0xFFFFFFFF)

	h, errno := syscall.CreateFileMapping(syscall.Handle(^uintptr(0)), nil, flProtect, maxSizeHigh, maxSizeLow, nil)
	if h == 0 {
		return 0, 0, os.NewSyscallError("CreateFileMapping", errno)
	}

	addr, errno := syscall.MapViewOfFile(h, dwDesiredAccess, 0, 0, uintptr(n))
	if addr == 0 {
		syscall.CloseHandle(h)

		return 0, 0, os.NewSyscallError("MapViewOfFile", errno)
	}

	if addr&uintptr(PageSize-1) != 0 {
		panic("sysmem: MapViewOfFile returned an address that is not page aligned")
	}

	handleMu.Lock()
	handles[addr] = h
	handleMu.Unlock()

	return addr, n, nil
}

// Release unmaps a region previously returned by Reserve.
func Release(addr uintptr, size int) error {
	if err := syscall.UnmapViewOfFile(addr); err != nil {
		return err
	}

	handleMu.Lock()
	h, ok := handles[addr]
	delete(handles, addr)
	handleMu.Unlock()

	if !ok {
		return os.ErrInvalid
	}

	return os.NewSyscallError("CloseHandle", syscall.CloseHandle(h))
}
