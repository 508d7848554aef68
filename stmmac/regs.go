package stmmac

// MAC/DMA register map, physical offsets from MACBasePA.
//
// p4.4/p6 of the specification (register map table).
const (
	regMACConfig  = 0x0000 // MAC_CONFIG: TE, RE, speed, duplex
	regMIIAddr    = 0x0010 // MII_ADDR: PHY register access command + BUSY
	regMIIData    = 0x0014 // MII_DATA: PHY register data
	regMACAddrHi  = 0x0040 // MAC_ADDR_HI: bits 47..32
	regMACAddrLo  = 0x0044 // MAC_ADDR_LO: bits 31..0
	regDMABusMode = 0x1000 // DMA_BUS_MODE: soft reset, burst config
	regDMATxPoll  = 0x1004 // DMA_TX_POLL: doorbell
	regDMARxPoll  = 0x1008 // DMA_RX_POLL: doorbell
	regDMARxBase  = 0x100C // DMA_RX_BASE: RX ring physical base
	regDMATxBase  = 0x1010 // DMA_TX_BASE: TX ring physical base
	regDMAControl = 0x1018 // DMA_CONTROL: SR (bit 1), ST (bit 13)
	regDMACurTx   = 0x1048 // DMA_CUR_TX_DESC: diagnostic
	regDMACurRx   = 0x104C // DMA_CUR_RX_DESC: diagnostic
)

// MACBasePA is the physical base address of the MAC/DMA register block.
const MACBasePA uint32 = 0x1002_0000

// Bit positions and fixed programming values used by the bring-up sequence.
const (
	dmaBusModeSftReset = 1 << 0

	dmaControlSR = 1 << 1
	dmaControlST = 1 << 13

	macConfigTE = 1 << 3
	macConfigRE = 1 << 2

	// coreInitValue programs duplex + speed + jabber defaults.
	coreInitValue = 0x00618000

	// busModeValue programs burst length, programmable-burst-length,
	// 8xPBL, descriptor skip 0.
	busModeValue = 0x00910880

	// linkUpValue commits speed=1Gb, full duplex, TE+RE latched.
	linkUpValue = 0x0061080C
)

// MII/MDIO bit positions (offset 0x10 command word).
const (
	miiBusy       = 1 << 0
	miiWrite      = 1 << 1
	miiPHYAddrPos = 11
	miiRegPos     = 6
	miiClockPos   = 2

	miiPHYAddrMask = 0x1f
	miiRegMask     = 0x1f
	miiClockMask   = 0x7
)

// defaultMAC is the documented test/default MAC address (high word 0x0605,
// low word 0xDDCCBBAA), used when Config.MAC is the zero value.
var defaultMAC = [6]byte{0xAA, 0xBB, 0xCC, 0xDD, 0x05, 0x06}
