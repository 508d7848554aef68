// Package hostpal implements pal.PAL for a Linux host talking to the MAC
// over UIO (userspace I/O): the MAC register block, the outer cache
// controller's register block, and a DMA-coherent memory region are each
// mapped from their own device node, mirroring the teacher's
// dma.Region.Reserve model (a flat, known physical-to-virtual mapping)
// but backed by mmap instead of a static bare-metal address range.
package hostpal

import (
	"fmt"
	"os"
	"sync/atomic"
	"time"
	"unsafe"

	"golang.org/x/sys/unix"

	"github.com/yuoo655/visionfive-eth-driver/pal"
)

var _ pal.PAL = (*Host)(nil)

// window is one mmap'd physical memory range: a MAC register block, the
// cache controller's register block, or the DMA-coherent region.
type window struct {
	file *os.File
	mem  []byte
	pa   uint32
}

func (w window) contains(pa uint32) bool {
	return pa >= w.pa && pa < w.pa+uint32(len(w.mem))
}

func (w window) va() uintptr { return uintptr(unsafe.Pointer(&w.mem[0])) }

// Host is a pal.PAL backed by one or more mmap'd UIO windows plus a
// bump allocator over the DMA window.
type Host struct {
	windows []window

	dma       *window
	dmaOffset int
}

// Config describes the device nodes and physical addresses of the three
// windows a Host needs. Path fields name a UIO device node (e.g.
// "/dev/uio0"); for boards where the outer cache controller is exposed
// through the same UIO device as the MAC (a second "map" region), pass
// the same path for both and rely on the kernel's per-map mmap offset
// convention (N * getpagesize() for mapN) via MACMapIndex/CacheMapIndex.
type Config struct {
	MACPath     string
	MACBasePA   uint32
	MACSize     int
	MACMapIndex int

	CachePath     string
	CacheBasePA   uint32
	CacheSize     int
	CacheMapIndex int

	DMAPath   string
	DMABasePA uint32
	DMASize   int
}

// Open maps all three windows described by cfg. The returned Host must be
// closed with Close once the device is no longer in use.
func Open(cfg Config) (*Host, error) {
	mac, err := mapWindow(cfg.MACPath, cfg.MACMapIndex, cfg.MACBasePA, cfg.MACSize)
	if err != nil {
		return nil, fmt.Errorf("hostpal: mac window: %w", err)
	}

	cache, err := mapWindow(cfg.CachePath, cfg.CacheMapIndex, cfg.CacheBasePA, cfg.CacheSize)
	if err != nil {
		mac.close()
		return nil, fmt.Errorf("hostpal: cache window: %w", err)
	}

	dma, err := mapWindow(cfg.DMAPath, 0, cfg.DMABasePA, cfg.DMASize)
	if err != nil {
		mac.close()
		cache.close()
		return nil, fmt.Errorf("hostpal: dma window: %w", err)
	}

	return &Host{windows: []window{mac, cache}, dma: &dma}, nil
}

func mapWindow(path string, mapIndex int, basePA uint32, size int) (window, error) {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_SYNC, 0)
	if err != nil {
		return window{}, err
	}

	mem, err := unix.Mmap(int(f.Fd()), int64(mapIndex*os.Getpagesize()), size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		f.Close()
		return window{}, err
	}

	return window{file: f, mem: mem, pa: basePA}, nil
}

func (w window) close() {
	if w.mem != nil {
		unix.Munmap(w.mem)
	}
	if w.file != nil {
		w.file.Close()
	}
}

// Close unmaps every window.
func (h *Host) Close() {
	for _, w := range h.windows {
		w.close()
	}
	if h.dma != nil {
		h.dma.close()
	}
}

// PhysToVirt translates a physical address within any mapped window to
// its virtual address in this process.
func (h *Host) PhysToVirt(pa uint32) uintptr {
	for _, w := range h.windows {
		if w.contains(pa) {
			return w.va() + uintptr(pa-w.pa)
		}
	}
	if h.dma != nil && h.dma.contains(pa) {
		return h.dma.va() + uintptr(pa-h.dma.pa)
	}
	panic(fmt.Sprintf("hostpal: unmapped physical address %#x", pa))
}

// VirtToPhys is the inverse of PhysToVirt, restricted to addresses this
// Host itself handed out.
func (h *Host) VirtToPhys(va uintptr) uint32 {
	for _, w := range h.windows {
		if start := w.va(); va >= start && va < start+uintptr(len(w.mem)) {
			return w.pa + uint32(va-start)
		}
	}
	if h.dma != nil {
		if start := h.dma.va(); va >= start && va < start+uintptr(len(h.dma.mem)) {
			return h.dma.pa + uint32(va-start)
		}
	}
	panic(fmt.Sprintf("hostpal: unmapped virtual address %#x", va))
}

// DMAAllocPages bump-allocates n pages from the DMA window. There is no
// Free counterpart in this revision: the window is sized once at Open
// time for the lifetime of the ring and buffer allocations a Device
// makes during New, and nothing in this driver frees DMA memory before
// the device itself is torn down.
func (h *Host) DMAAllocPages(n int) (uintptr, uint32) {
	size := n * os.Getpagesize()
	if h.dmaOffset+size > len(h.dma.mem) {
		panic("hostpal: dma window exhausted")
	}

	region := h.dma.mem[h.dmaOffset : h.dmaOffset+size]
	for i := range region {
		region[i] = 0
	}

	va := h.dma.va() + uintptr(h.dmaOffset)
	pa := h.dma.pa + uint32(h.dmaOffset)
	h.dmaOffset += size

	return va, pa
}

// DMAFreePages is a no-op; see DMAAllocPages.
func (h *Host) DMAFreePages(va uintptr, n int) {}

// MDelay sleeps for ms milliseconds, matching the teacher's own
// time.Sleep-based delay idiom (e.g. soc/nxp/usdhc).
func (h *Host) MDelay(ms int) {
	time.Sleep(time.Duration(ms) * time.Millisecond)
}

// fenceWord is touched by Fence purely to force a real atomic
// read-modify-write through the memory subsystem; its value is never
// otherwise observed.
var fenceWord int32

// Fence issues a full memory barrier. Go has no volatile/fence builtin;
// an atomic read-modify-write is the portable way to force one, the same
// trade-off the PAL-internal register access already makes in ccache and
// stmmac.
func (h *Host) Fence() {
	atomic.AddInt32(&fenceWord, 1)
}
