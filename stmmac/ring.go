package stmmac

import "github.com/yuoo655/visionfive-eth-driver/pal"

// descriptorSize is the fixed on-the-wire size of any descriptor: four
// 32-bit words, no padding.
const descriptorSize = 16

// bufferAlign matches the teacher's soc/nxp/enet bufferAlign constant: DMA
// buffers are aligned to the outer cache line size so that a flush range
// never has to touch a neighbour's line.
const bufferAlign = 64

// rawRing is the untyped descriptor-array engine shared by RX and TX
// rings: a fixed-count array of 16-byte hardware descriptors in
// DMA-coherent memory, a parallel per-slot host buffer pointer array, and a
// monotonically advancing software index. It mirrors the structure (if not
// the legacy 8/16-bit packed fields) of the teacher's bufferDescriptorRing
// in soc/nxp/enet/dma.go.
type rawRing struct {
	baseVA uintptr
	basePA uint32
	count  int
	idx    int
	slots  []uintptr
}

// newRawRing allocates ring memory for count descriptors via the PAL,
// computing pages = ceil(count*16/pageSize) as specified.
func newRawRing(p pal.PAL, count int) rawRing {
	pages := pal.Pages(count * descriptorSize)
	if pages == 0 {
		pages = 1
	}

	va, pa := p.DMAAllocPages(pages)

	return rawRing{
		baseVA: va,
		basePA: pa,
		count:  count,
		slots:  make([]uintptr, count),
	}
}

// read performs a volatile read of descriptor i. ok is false if i is out
// of range; no coherence action is taken, the caller decides.
func (r *rawRing) read(i int) (w Words, ok bool) {
	if i < 0 || i >= r.count {
		return Words{}, false
	}

	base := r.baseVA + uintptr(i*descriptorSize)

	w[0] = readWord(base)
	w[1] = readWord(base + 4)
	w[2] = readWord(base + 8)
	w[3] = readWord(base + 12)

	return w, true
}

// write performs a volatile write of all four words of descriptor i. Word
// 0 (which carries the OWN bit for both descriptor variants) is always
// written last, so that control fields are committed to memory before
// ownership can be handed to the DMA engine — this single rule satisfies
// both the "RX word0 set last when arming OWN=1" and "TX OWN written in a
// final store" requirements, since OWN lives in word 0 either way.
func (r *rawRing) write(i int, w Words) bool {
	if i < 0 || i >= r.count {
		return false
	}

	base := r.baseVA + uintptr(i*descriptorSize)

	writeWord(base+12, w[3])
	writeWord(base+8, w[2])
	writeWord(base+4, w[1])
	writeWord(base, w[0])

	return true
}

// advance returns the current index, then advances it modulo count.
func (r *rawRing) advance() int {
	i := r.idx
	r.idx = (r.idx + 1) % r.count
	return i
}

// Ring is a fixed-count ring of descriptors of type D, shared with an
// autonomous DMA engine. Two instantiations are used: Ring[RxDes] and
// Ring[TxDes]. It generalizes the teacher's bufferDescriptorRing (which
// hardcodes one descriptor format) the way the original Rust source's
// generic Dma<T> struct does.
type Ring[D Descriptor] struct {
	raw    rawRing
	decode func(Words) D
}

// newRing constructs a ring of count descriptors, with decode converting
// the raw word layout back into a typed D on Read.
func newRing[D Descriptor](p pal.PAL, count int, decode func(Words) D) *Ring[D] {
	return &Ring[D]{raw: newRawRing(p, count), decode: decode}
}

// Count returns the number of descriptors in the ring.
func (r *Ring[D]) Count() int { return r.raw.count }

// BasePA returns the ring's physical base address, as programmed into the
// DMA_RX_BASE/DMA_TX_BASE registers.
func (r *Ring[D]) BasePA() uint32 { return r.raw.basePA }

// Idx returns the next slot the host will inspect or fill, without
// advancing it.
func (r *Ring[D]) Idx() int { return r.raw.idx }

// Advance returns the current index, then advances it modulo Count().
func (r *Ring[D]) Advance() int { return r.raw.advance() }

// Read returns descriptor i by value. ok is false if i is out of range;
// the ring never panics on a bad index, callers that know i is in range
// (the Device layer) treat ok as infallible.
func (r *Ring[D]) Read(i int) (d D, ok bool) {
	w, ok := r.raw.read(i)
	if !ok {
		return d, false
	}
	return r.decode(w), true
}

// Write writes descriptor d to slot i. It returns false without effect if
// i is out of range.
func (r *Ring[D]) Write(i int, d D) bool {
	return r.raw.write(i, d.Encode())
}

// SlotVA returns the host virtual address of the buffer bound to slot i.
func (r *Ring[D]) SlotVA(i int) uintptr { return r.raw.slots[i] }

// SetSlotVA binds slot i's buffer virtual address.
func (r *Ring[D]) SetSlotVA(i int, va uintptr) { r.raw.slots[i] = va }
