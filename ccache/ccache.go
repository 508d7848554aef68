// SiFive composable L2 cache outer-flush primitive
//
// Package ccache implements the range-flush operation for the SiFive
// composable cache controller (the outer, last-level cache sitting outside
// a RISC-V core's inner coherence domain). On platforms like the StarFive
// JH7100/JH7110, a DMA-capable bus master reads and writes main memory
// without participating in this domain, so any descriptor or buffer handed
// to such a device must have its lines evicted from the outer cache first.
package ccache

import (
	"github.com/yuoo655/visionfive-eth-driver/pal"
)

// ControlBasePA is the physical base address of the SiFive composable cache
// controller's control block.
const ControlBasePA uint32 = 0x0201_0000

// Flush64Offset is the offset, within the control block, of the flush64
// register: writing a physical address into it flushes the containing
// 64-byte line.
const Flush64Offset = 0x200

// LineSize is the outer cache line size in bytes.
const LineSize = 64

// FlushRange flushes every LineSize-byte line that intersects
// [startPA, endPA). The call is bracketed by platform fences on both sides
// so that it is safe to issue immediately before ringing a DMA doorbell:
//
//  1. A full memory fence orders all prior host stores (including the
//     descriptor/buffer writes being flushed) ahead of the flush writes.
//  2. One 32-bit write per intersecting cache line is issued to the flush64
//     register.
//  3. The platform fence is issued again, standing in for the PAL-provided
//     guarantee that the writes have been accepted by the cache controller.
//  4. A final fence orders the flush ahead of whatever the caller does
//     next (typically ringing a doorbell register).
//
// FlushRange(p, x, x) writes nothing to flush64: no line is ever written
// for an empty range, regardless of x's alignment. The three fences are
// still issued.
func FlushRange(p pal.PAL, startPA, endPA uint32) {
	p.Fence()

	if startPA < endPA {
		flush := p.PhysToVirt(ControlBasePA) + Flush64Offset
		addr := startPA &^ (LineSize - 1)

		for addr < endPA {
			writeWord(flush, addr)
			addr += LineSize
		}
	}

	// The hardware fence that guarantees the cache controller has
	// accepted the writes above.
	p.Fence()

	// Orders the flush ahead of the caller's next action (the doorbell).
	p.Fence()
}
