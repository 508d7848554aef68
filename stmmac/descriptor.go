package stmmac

// Words is the raw 16-byte, four-32-bit-word, little-endian on-the-wire
// layout shared by both descriptor variants. The hardware reads and writes
// these words directly; the host must treat them as volatile shared
// memory, never as an ordinary Go value.
type Words [4]uint32

// Descriptor is implemented by RxDes and TxDes. Encode converts the typed
// view used by driver code into the raw word layout the ring actually
// stores; the reverse direction is the decode function each Ring is built
// with (decodeRxDes, decodeTxDes), mirroring the bufferDescriptor.Bytes() round trip
// in the teacher's soc/nxp/enet/dma.go.
type Descriptor interface {
	Encode() Words
}

// RX descriptor bit positions, word 0 (status).
const (
	rxOwn     = 1 << 31 // bit 31: 1 = owned by DMA
	rxLenPos  = 16       // bits 30..16: received frame length
	rxLenMask = 0x7fff    // 15 bits
)

// RxDes is the 16-byte receive descriptor.
//
//   Word 0 (status): bit 31 = OWN; bits 30..16 = received frame length
//                     (valid only when the host owns the descriptor);
//                     lower bits carry error flags, reported but not
//                     policy-interpreted here.
//   Word 1 (control): bits 10..0 = RX buffer size.
//   Word 2: physical address of the RX data buffer.
//   Word 3: reserved, always zero.
type RxDes struct {
	Status  uint32
	Control uint32
	BufAddr uint32
	_       uint32
}

// Own reports whether the descriptor is currently owned by the DMA engine.
func (d RxDes) Own() bool { return d.Status&rxOwn != 0 }

// Len extracts the received frame length (bits 30..16 of word 0). Only
// meaningful when the host owns the descriptor.
func (d RxDes) Len() int { return int((d.Status >> rxLenPos) & rxLenMask) }

// SetOwn sets or clears the OWN bit.
func (d *RxDes) SetOwn(own bool) {
	if own {
		d.Status |= rxOwn
	} else {
		d.Status &^= rxOwn
	}
}

// SetBufSize programs the RX buffer size field (bits 10..0 of word 1).
func (d *RxDes) SetBufSize(size uint32) {
	d.Control = (d.Control &^ 0x7ff) | (size & 0x7ff)
}

// Encode returns the descriptor as its raw four-word layout.
func (d RxDes) Encode() Words { return Words{d.Status, d.Control, d.BufAddr, 0} }

// decodeRxDes builds an RxDes from its raw word layout.
func decodeRxDes(w Words) RxDes {
	return RxDes{Status: w[0], Control: w[1], BufAddr: w[2]}
}

// TX descriptor bit positions, word 0 (status/control).
const (
	txOwn = 1 << 31 // OWN
	txFS  = 1 << 29 // First Segment
	txLS  = 1 << 28 // Last Segment
	txTER = 1 << 21 // ring-end / wrap marker
)

// TxDes is the 16-byte transmit descriptor.
//
//   Word 0 (status/control): bit 31 = OWN; bit 29 = FS; bit 28 = LS;
//                             bit 21 = TER (set only on the final
//                             descriptor of the ring).
//   Word 1: low bits = transmit length in bytes.
//   Word 2: physical address of the TX data buffer.
//   Word 3: zero.
type TxDes struct {
	Status  uint32
	Length  uint32
	BufAddr uint32
	_       uint32
}

// Own reports whether the descriptor is currently owned by the DMA engine.
func (d TxDes) Own() bool { return d.Status&txOwn != 0 }

// SetTER sets or clears the ring-end (wrap) marker. It is the caller's
// responsibility to set this only on the final descriptor of the ring and
// to restore it after any full re-initialization of the ring.
func (d *TxDes) SetTER(ter bool) {
	if ter {
		d.Status |= txTER
	} else {
		d.Status &^= txTER
	}
}

// SetFrame programs a single-fragment frame: buffer physical address,
// length, and FS|LS|OWN. TER, if already set, is preserved.
func (d *TxDes) SetFrame(bufPA uint32, length int) {
	d.BufAddr = bufPA
	d.Length = uint32(length)
	d.Status |= txFS | txLS | txOwn
}

// Encode returns the descriptor as its raw four-word layout.
func (d TxDes) Encode() Words { return Words{d.Status, d.Length, d.BufAddr, 0} }

// decodeTxDes builds a TxDes from its raw word layout.
func decodeTxDes(w Words) TxDes {
	return TxDes{Status: w[0], Length: w[1], BufAddr: w[2]}
}
