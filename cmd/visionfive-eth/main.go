// Command visionfive-eth brings up the StarFive JH7100/JH7110 gigabit MAC
// over UIO and runs a minimal receive/transmit loop: every inbound frame
// is logged and echoed back out.
package main

import (
	"flag"
	"log"

	"github.com/yuoo655/visionfive-eth-driver/hostpal"
	"github.com/yuoo655/visionfive-eth-driver/stmmac"
)

func main() {
	macDev := flag.String("mac-uio", "/dev/uio0", "UIO device node for the MAC register block")
	cacheDev := flag.String("cache-uio", "/dev/uio1", "UIO device node for the outer cache controller")
	dmaDev := flag.String("dma-uio", "/dev/uio2", "UIO device node for the DMA-coherent region")
	flag.Parse()

	host, err := hostpal.Open(hostpal.Config{
		MACPath:   *macDev,
		MACBasePA: stmmac.MACBasePA,
		MACSize:   0x2000,

		CachePath:   *cacheDev,
		CacheBasePA: 0x0201_0000,
		CacheSize:   0x1000,

		DMAPath:   *dmaDev,
		DMABasePA: 0x8000_0000,
		DMASize:   4 << 20,
	})
	if err != nil {
		log.Fatalf("visionfive-eth: %v", err)
	}
	defer host.Close()

	dev := stmmac.New(host, stmmac.Config{})

	log.Print("bringing up MAC")
	dev.Bringup()

	log.Print("entering receive/transmit loop")
	for {
		buf, length, ok := dev.Receive()
		if !ok {
			continue
		}

		log.Printf("received %d bytes", length)

		pa := host.VirtToPhys(buf)
		dev.Transmit(pa, length)

		dev.RxClean()
	}
}
