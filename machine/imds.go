package machine

import (
	"io/fs"
	"log"

	"github.com/ezrec/ehbc/bus"
	eio "github.com/ezrec/ehbc/io"
	"github.com/ezrec/ehbc/rom"
)

const IMDS_NAME = "imds"

const (
	IMDS_CPU_CLOCK = 4_000_000 // i8080, not verified on hardware.

	IMDS_ROM_BASE = 0x0000
	IMDS_ROM_END  = 0x1FFF
	IMDS_RAM_BASE = 0x2000
	IMDS_RAM_END  = 0xFFFF
	IMDS_IO_MASK  = 0xFF
)

// ImdsRoms is the monitor ROM region.
var ImdsRoms = rom.Region{
	Name: "maincpu",
	Size: 0x10000,
	Fill: 0xff,
	Entries: []rom.Entry{
		rom.Crc("a62_2716.bin", 0x0000, 0x0800, 0x86a55b2f, "21033f7abb2c3e08028613e0c35ffecb703ff4f1"),
		rom.Crc("a51_2716.bin", 0x0800, 0x0800, 0xee55c448, "16c2f7e3b5baeb398adcc59603943910813e6a9b"),
		rom.Crc("a52_2716.bin", 0x1000, 0x0800, 0x8db1b33e, "6fc5e438009636dd6d7185071b152b0491d3baeb"),
		rom.Crc("a53_2716.bin", 0x1800, 0x0800, 0x01690f4f, "eadef30a3797f41e08d28e7691f8de44c0f3b8ea"),
	},
}

// Imds is the Intel Intellec MDS prototyping machine. Only the memory map
// and the terminal latch are modelled.
type Imds struct {
	Verbose bool

	Program  *bus.Bus[uint8]
	Io       *bus.Bus[uint8]
	Rom      *bus.Rom[uint8]
	Ram      *bus.Ram[uint8]
	Terminal eio.Terminal
}

// NewImds builds an Intellec MDS, and resets it.
func NewImds() (m *Imds) {
	m = &Imds{
		Program: bus.NewBus[uint8](IMDS_NAME),
		Io:      bus.NewBus[uint8](IMDS_NAME + ":io"),
		Rom:     &bus.Rom[uint8]{Data: make([]uint8, IMDS_ROM_END-IMDS_ROM_BASE+1)},
		Ram:     bus.NewRam[uint8](IMDS_RAM_END - IMDS_RAM_BASE + 1),
	}

	m.Program.Unmapped = 0xff
	m.Io.Unmapped = 0xff
	m.Io.GlobalMask = IMDS_IO_MASK

	m.Program.Map("rom", IMDS_ROM_BASE, IMDS_ROM_END, m.Rom)
	m.Program.Map("ram", IMDS_RAM_BASE, IMDS_RAM_END, m.Ram)

	m.Reset()

	return
}

// LoadRoms fills the monitor ROM from a ROM image directory.
func (m *Imds) LoadRoms(filesys fs.FS) (err error) {
	data, err := rom.Load(filesys, &ImdsRoms)
	if err != nil {
		return
	}

	copy(m.Rom.Data, data)

	return
}

// Reset the machine.
func (m *Imds) Reset() {
	if m.Verbose {
		log.Printf("%v: reset", IMDS_NAME)
	}

	m.Terminal.Reset()
}

// Clock returns the frequency the CPU core must be run at, in Hz.
func (m *Imds) Clock() uint32 {
	return IMDS_CPU_CLOCK
}

// KeyPut is called by the terminal keyboard.
func (m *Imds) KeyPut(data uint8) {
	m.Terminal.Put(data)
}
