package stmmac

import "github.com/yuoo655/visionfive-eth-driver/pal"

// Ring sizing: the specification's source carried two incompatible
// revisions (128 RX / 16 TX entries against a fixed buffer region, vs.
// 512/512 with dynamically allocated buffers). This driver resolves the
// inconsistency by taking the recommended configuration directly as the
// ring count, rather than over-allocating and only using a prefix of it.
const (
	// RxRingSize is the number of RX descriptors.
	RxRingSize = 128
	// TxRingSize is the number of TX descriptors.
	TxRingSize = 16

	// rxBufferSize is the RX buffer size programmed into each
	// descriptor's control word (0x600 = 1536 bytes).
	rxBufferSize = 0x600
)

// Config holds the host-supplied construction-time parameters for a
// Device, mirroring the teacher's field-based configuration of ENET
// (Base, RMII, MAC, RingSize, ...) rather than a long positional
// constructor.
type Config struct {
	// MAC is the station address programmed into MAC_ADDR_HI/LO. The
	// zero value selects the documented test/default address
	// (hi=0x0605, lo=0xDDCCBBAA).
	MAC [6]byte
}

// Device owns both descriptor rings and the MAC/DMA register block. It
// performs bring-up (soft-reset, bus-mode program, base-address program,
// MAC address, core init), the link-up transition, and the runtime
// Transmit/Receive operations.
//
// Device is single-owner and not safe for concurrent use; the host must
// serialize all entry points, exactly as documented for the teacher's own
// ENET controller.
type Device struct {
	pal   pal.PAL
	macVA uintptr
	mac   [6]byte
	rx    *Ring[RxDes]
	tx    *Ring[TxDes]
}

// New allocates both descriptor rings, fills the RX slots with buffers,
// and prepares the TX ring (including the permanent wrap marker on the
// final descriptor), but does not touch the MAC/DMA registers. Call
// Bringup (which includes SetMAC(true)), or the individual bring-up
// primitives in the same order, before using Receive/Transmit.
func New(p pal.PAL, cfg Config) *Device {
	d := &Device{
		pal:   p,
		macVA: p.PhysToVirt(MACBasePA),
		mac:   cfg.MAC,
		rx:    newRing[RxDes](p, RxRingSize, decodeRxDes),
		tx:    newRing[TxDes](p, TxRingSize, decodeTxDes),
	}

	if d.mac == ([6]byte{}) {
		d.mac = defaultMAC
	}

	d.allocRxBuffers()
	d.reinitRxDescriptors()
	d.initTxRing()

	return d
}

// allocRxBuffers reserves one contiguous, buffer-aligned region sized for
// every RX slot, the way the teacher's bufferDescriptorRing.init avoids
// fragmenting the DMA region with one allocation per slot.
func (d *Device) allocRxBuffers() {
	stride := rxBufferSize + (bufferAlign - rxBufferSize%bufferAlign)
	pages := pal.Pages(d.rx.Count() * stride)
	if pages == 0 {
		pages = 1
	}

	va, _ := d.pal.DMAAllocPages(pages)

	for i := 0; i < d.rx.Count(); i++ {
		d.rx.SetSlotVA(i, va+uintptr(i*stride))
	}
}

// reinitRxDescriptors re-arms every RX descriptor: OWN=1, buffer size
// restored, buffer physical address restored. Used both at construction
// and whenever the ring has been fully traversed (see RxClean).
func (d *Device) reinitRxDescriptors() {
	for i := 0; i < d.rx.Count(); i++ {
		pa := d.pal.VirtToPhys(d.rx.SlotVA(i))

		var rd RxDes
		rd.SetBufSize(rxBufferSize)
		rd.BufAddr = pa
		rd.SetOwn(true)

		d.rx.Write(i, rd)
	}
}

// initTxRing zeroes every TX descriptor and sets the permanent wrap marker
// on the final one.
func (d *Device) initTxRing() {
	for i := 0; i < d.tx.Count(); i++ {
		var td TxDes
		if i == d.tx.Count()-1 {
			td.SetTER(true)
		}
		d.tx.Write(i, td)
	}
}

func (d *Device) readReg(off uint32) uint32 {
	return readWord(d.macVA + uintptr(off))
}

func (d *Device) writeReg(off uint32, v uint32) {
	writeWord(d.macVA+uintptr(off), v)
}

// Bringup runs the full power-on sequence in the order required by the
// hardware: DMAReset, CoreInit, SetMACAddr, DMASetBusMode, SetRxTxBase,
// DMARxTxEnable, SetMAC(true), MACLinkUp. Each step may also be invoked
// independently for diagnostics.
func (d *Device) Bringup() {
	d.DMAReset()
	d.CoreInit()
	d.SetMACAddr(d.mac)
	d.DMASetBusMode()
	d.SetRxTxBase()
	d.DMARxTxEnable()
	d.SetMAC(true)
	d.MACLinkUp()
}

// DMAReset issues a DMA software reset: read-modify-write the soft reset
// bit of DMA_BUS_MODE, wait at least 100ms, then busy-poll the register
// until the bit self-clears.
func (d *Device) DMAReset() {
	v := d.readReg(regDMABusMode)
	v |= dmaBusModeSftReset
	d.writeReg(regDMABusMode, v)

	d.pal.MDelay(100)

	for d.readReg(regDMABusMode)&dmaBusModeSftReset != 0 {
	}
}

// CoreInit writes the duplex/speed/jabber defaults to MAC_CONFIG.
func (d *Device) CoreInit() {
	d.writeReg(regMACConfig, coreInitValue)
}

// SetMACAddr programs the station address: high word first, then low
// word, matching the required write order.
func (d *Device) SetMACAddr(mac [6]byte) {
	d.mac = mac

	hi := uint32(mac[4]) | uint32(mac[5])<<8
	lo := uint32(mac[0]) | uint32(mac[1])<<8 | uint32(mac[2])<<16 | uint32(mac[3])<<24

	d.writeReg(regMACAddrHi, hi)
	d.writeReg(regMACAddrLo, lo)
}

// DMASetBusMode programs burst length, programmable-burst-length, 8xPBL
// and descriptor skip 0 into DMA_BUS_MODE.
func (d *Device) DMASetBusMode() {
	d.writeReg(regDMABusMode, busModeValue)
}

// SetRxTxBase programs the ring physical bases: TX base (DMA_TX_BASE)
// first, then RX base (DMA_RX_BASE).
func (d *Device) SetRxTxBase() {
	d.writeReg(regDMATxBase, d.tx.BasePA())
	d.writeReg(regDMARxBase, d.rx.BasePA())
}

// DMARxTxEnable sets the SR and ST bits of DMA_CONTROL via
// read-modify-write.
func (d *Device) DMARxTxEnable() {
	v := d.readReg(regDMAControl)
	v |= dmaControlSR | dmaControlST
	d.writeReg(regDMAControl, v)
}

// SetMAC enables or disables the MAC transmitter and receiver (TE/RE bits
// of MAC_CONFIG), writing back only if the value actually changes.
func (d *Device) SetMAC(enable bool) {
	v := d.readReg(regMACConfig)
	nv := v

	if enable {
		nv |= macConfigTE | macConfigRE
	} else {
		nv &^= macConfigTE | macConfigRE
	}

	if nv != v {
		d.writeReg(regMACConfig, nv)
	}
}

// MACLinkUp commits the link-up MAC configuration: speed=1Gb, full
// duplex, TE+RE latched.
func (d *Device) MACLinkUp() {
	d.writeReg(regMACConfig, linkUpValue)
}

// CurrentTxDescPA returns the hardware's own current TX descriptor
// pointer (DMA_CUR_TX_DESC). Diagnostic only; the driver uses its own
// software index for all ring bookkeeping.
func (d *Device) CurrentTxDescPA() uint32 { return d.readReg(regDMACurTx) }

// CurrentRxDescPA returns the hardware's own current RX descriptor
// pointer (DMA_CUR_RX_DESC). Diagnostic only.
func (d *Device) CurrentRxDescPA() uint32 { return d.readReg(regDMACurRx) }
