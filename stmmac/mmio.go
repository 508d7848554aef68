package stmmac

import (
	"sync/atomic"
	"unsafe"
)

// readWord and writeWord perform volatile 32-bit accesses at a virtual
// address. Go has no volatile qualifier; atomic load/store is the idiom
// the teacher's internal/reg package (reg32.go) uses for the same purpose,
// and is what keeps the compiler from eliding or reordering accesses to
// memory that an autonomous DMA engine also touches.
//
// They are package variables, not plain functions, so that tests can
// substitute an in-memory register/descriptor simulator without needing a
// real MMIO-backed address space.
var (
	readWord = func(va uintptr) uint32 {
		return atomic.LoadUint32((*uint32)(unsafe.Pointer(va))) //nolint:govet
	}
	writeWord = func(va uintptr, v uint32) {
		atomic.StoreUint32((*uint32)(unsafe.Pointer(va)), v) //nolint:govet
	}
)
