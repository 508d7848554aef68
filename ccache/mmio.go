package ccache

import (
	"sync/atomic"
	"unsafe"
)

// writeWord performs a volatile write of a 32-bit register at virtual
// address va. Go has no volatile qualifier, atomic store is the idiom the
// teacher's internal/reg package uses to keep the compiler from eliding or
// reordering the access.
//
// It is a package variable, rather than a plain function, so that tests can
// observe the sequence of addresses written to the flush64 register without
// needing a real cache controller behind PhysToVirt.
var writeWord = func(va uintptr, v uint32) {
	atomic.StoreUint32((*uint32)(unsafe.Pointer(va)), v) //nolint:govet
}
