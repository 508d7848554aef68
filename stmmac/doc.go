// Package stmmac implements a polled-mode driver for the Synopsys
// DesignWare/STMMAC-family gigabit Ethernet MAC as integrated in the
// StarFive JH7100/JH7110 SoC.
//
// The driver programs the MAC's memory-mapped registers, manages receive
// and transmit DMA descriptor rings shared with the device, maintains
// cache/memory-barrier coherence with the DMA engine on this weakly
// ordered platform, and exposes single-fragment packet send/receive
// primitives to a host.
//
// Scheduling model: single-threaded, cooperative. Transmit(), DMAReset()
// (and therefore Bringup()) and the MDIO write primitive wait or spin-poll
// until the device completes; nothing else blocks. Device is not safe for concurrent use, the host must serialize
// all entry points, same as the teacher's ENET controller
// (github.com/usbarmory/tamago/soc/nxp/enet).
//
// Non-goals: no IP/TCP stack, no scatter-gather (single-fragment frames
// only), no checksum offload configuration, no interrupt-driven operation,
// no multi-queue, no PHY register semantics (only the MDIO write primitive
// is provided), no hotplug/suspend.
package stmmac
