package stmmac

import "github.com/yuoo655/visionfive-eth-driver/pal"

// MDIOWrite transmits a pre-encoded PHY register write over the MAC's
// MII address/data register pair at mmioBaseVA (the MAC's own virtual
// base, so this can be used standalone against any MAC sharing this
// register layout, not just through a Device):
//
//  1. busy-wait while BUSY (bit 0 of the address register) is set
//  2. write data to the data register
//  3. write cmd (BUSY=1, WRITE=1, PHY address, register, clock range) to
//     the address register
//  4. busy-wait again until BUSY clears
//
// There is no timeout; a wedged PHY blocks forever. The busy predicate is
// "BUSY bit == 0", correcting the source's degenerate "BUSY bit != 1"
// (true for any value other than exactly 1, including 0), which would
// wait only when no other address-register bit happened to be set.
func MDIOWrite(p pal.PAL, mmioBaseVA uintptr, data uint32, cmd uint32) {
	addrReg := mmioBaseVA + regMIIAddr
	dataReg := mmioBaseVA + regMIIData

	for readWord(addrReg)&miiBusy != 0 {
		p.MDelay(10)
	}

	writeWord(dataReg, data)
	writeWord(addrReg, cmd)

	for readWord(addrReg)&miiBusy != 0 {
		p.MDelay(10)
	}
}

// MDIOWrite is the Device-bound convenience wrapper, using the MAC's own
// register base.
func (d *Device) MDIOWrite(data uint32, cmd uint32) {
	MDIOWrite(d.pal, d.macVA, data, cmd)
}

// EncodeMDIOCommand builds the address/command word for an MDIO write:
// BUSY=1, WRITE=1, PHY address in bits 15..11, register in bits 10..6,
// clock range in bits 4..2. The PHY register semantics themselves are the
// host's responsibility; this only encodes the MAC-side command word.
func EncodeMDIOCommand(phyAddr, reg int, clockRange uint32) uint32 {
	cmd := uint32(miiBusy) | miiWrite
	cmd |= uint32(phyAddr&miiPHYAddrMask) << miiPHYAddrPos
	cmd |= uint32(reg&miiRegMask) << miiRegPos
	cmd |= (clockRange & miiClockMask) << miiClockPos
	return cmd
}
