package stmmac

import (
	"unsafe"

	"github.com/yuoo655/visionfive-eth-driver/ccache"
	"github.com/yuoo655/visionfive-eth-driver/pal"
)

// testPAL is a software MMIO + DMA simulator standing in for real hardware
// in unit tests: it backs the MAC register block and the outer cache
// controller with ordinary Go byte slices, and serves DMAAllocPages from a
// bump-allocated arena, assigning each region a synthetic physical address
// disjoint from the fixed MMIO windows.
type testPAL struct {
	mac   []byte
	cache []byte
	arena []byte

	arenaPA  uint32
	arenaOff int

	fences  int
	mdelays int
}

const testArenaPA = 0x8000_0000

func newTestPAL() *testPAL {
	return &testPAL{
		mac:     make([]byte, 0x1050),
		cache:   make([]byte, ccache.Flush64Offset+8),
		arena:   make([]byte, 4*1024*1024),
		arenaPA: testArenaPA,
	}
}

func (p *testPAL) PhysToVirt(pa uint32) uintptr {
	switch {
	case pa == MACBasePA:
		return uintptr(unsafe.Pointer(&p.mac[0]))
	case pa == ccache.ControlBasePA:
		return uintptr(unsafe.Pointer(&p.cache[0]))
	case pa >= p.arenaPA && pa < p.arenaPA+uint32(len(p.arena)):
		return uintptr(unsafe.Pointer(&p.arena[pa-p.arenaPA]))
	default:
		panic("testPAL: unmapped physical address")
	}
}

func (p *testPAL) VirtToPhys(va uintptr) uint32 {
	if off, ok := within(va, &p.mac); ok {
		return MACBasePA + uint32(off)
	}
	if off, ok := within(va, &p.cache); ok {
		return ccache.ControlBasePA + uint32(off)
	}
	if off, ok := within(va, &p.arena); ok {
		return p.arenaPA + uint32(off)
	}
	panic("testPAL: unmapped virtual address")
}

func within(va uintptr, buf *[]byte) (int, bool) {
	if len(*buf) == 0 {
		return 0, false
	}
	start := uintptr(unsafe.Pointer(&(*buf)[0]))
	end := start + uintptr(len(*buf))
	if va < start || va >= end {
		return 0, false
	}
	return int(va - start), true
}

func (p *testPAL) DMAAllocPages(n int) (uintptr, uint32) {
	size := n * pal.PageSize
	if p.arenaOff+size > len(p.arena) {
		panic("testPAL: arena exhausted")
	}
	va := uintptr(unsafe.Pointer(&p.arena[p.arenaOff]))
	pa := p.arenaPA + uint32(p.arenaOff)
	p.arenaOff += size
	return va, pa
}

func (p *testPAL) DMAFreePages(va uintptr, n int) {}

func (p *testPAL) MDelay(ms int) { p.mdelays++ }

func (p *testPAL) Fence() { p.fences++ }

// regWrite is one recorded register write, offset relative to some base.
type regWrite struct {
	off uint32
	val uint32
}

// installRegTrace intercepts writeWord so that every write landing inside
// [base, base+size) is appended to *trace before being carried out for
// real, letting a test assert the exact ordered register-write sequence a
// driver operation produces.
func installRegTrace(base uintptr, size int, trace *[]regWrite) func() {
	orig := writeWord
	writeWord = func(va uintptr, v uint32) {
		if va >= base && va < base+uintptr(size) {
			*trace = append(*trace, regWrite{off: uint32(va - base), val: v})
		}
		orig(va, v)
	}
	return func() { writeWord = orig }
}

// installBusyClear intercepts readWord so that the n-th time a read at
// addr observes mask set, mask is cleared in memory before the value is
// returned — simulating a device that finishes a pending operation after
// being polled n times, so busy-wait loops in tests terminate instead of
// spinning forever.
func installBusyClear(addr uintptr, mask uint32, n int) func() {
	origRead, origWrite := readWord, writeWord
	remaining := n
	readWord = func(va uintptr) uint32 {
		v := origRead(va)
		if va == addr && v&mask != 0 {
			if remaining > 0 {
				remaining--
			}
			if remaining == 0 {
				v &^= mask
				origWrite(va, v)
			}
		}
		return v
	}
	return func() { readWord = origRead }
}
