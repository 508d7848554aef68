package stmmac

import "github.com/yuoo655/visionfive-eth-driver/ccache"

// Transmit sends a single, already-DMA-resident frame: buf (physical
// address, host-owned) and length bytes. It blocks until the device has
// DMAed the frame out; there is no timeout, no retry, and TX status bits
// are not inspected in this revision (a wedged link blocks forever).
func (d *Device) Transmit(bufPA uint32, length int) {
	i := d.tx.Idx()

	td, _ := d.tx.Read(i)
	td.SetFrame(bufPA, length)
	d.tx.Write(i, td)

	// The descriptor and buffer pages must be evicted from the outer
	// cache before the DMA engine is rung; ccache.FlushRange brackets
	// its writes with the platform fences this requires.
	descPA := d.tx.BasePA() + uint32(i*descriptorSize)
	ccache.FlushRange(d.pal, descPA, descPA+descriptorSize)
	ccache.FlushRange(d.pal, bufPA, bufPA+uint32(length))

	d.writeReg(regDMATxPoll, 1)

	for {
		td, _ = d.tx.Read(i)
		if !td.Own() {
			break
		}
	}

	d.tx.Advance()
}
