package stmmac

// Receive polls the next RX descriptor. If the DMA engine still owns it,
// ok is false and no packet is available. Otherwise it returns the host
// virtual address of the bound buffer and the reported frame length.
//
// Receive does not recycle the descriptor; the host must call RxClean
// after it is done with the returned buffer.
func (d *Device) Receive() (buf uintptr, length int, ok bool) {
	i := d.rx.Idx()

	rd, _ := d.rx.Read(i)
	if rd.Own() {
		return 0, 0, false
	}

	return d.rx.SlotVA(i), rd.Len(), true
}

// RxClean advances the software index past the just-consumed descriptor.
// That descriptor is not re-armed on its own: only once the ring has been
// fully traversed (the index wraps back to 0) is every descriptor
// re-initialized: OWN=1, buffer size and physical address restored.
//
// The hardware's own current-descriptor pointer (CurrentRxDescPA) is never
// consulted; a single software index is authoritative.
func (d *Device) RxClean() {
	d.rx.Advance()

	if d.rx.Idx() == 0 {
		d.reinitRxDescriptors()
	}
}
