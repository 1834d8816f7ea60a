package machine

import (
	"io/fs"

	"github.com/ezrec/ehbc/bus"
	"github.com/ezrec/ehbc/rom"
)

const NS5652_NAME = "ns5652"

const (
	NS5652_CPU_CLOCK = 1_843_200 // INS8900, the only crystal on the card.

	NS5652_ROM_BASE   = 0x0000
	NS5652_ROM_END    = 0x0BFF
	NS5652_ROM_MIRROR = 0xD000
	NS5652_RAM_BASE   = 0xE800
	NS5652_RAM_END    = 0xEBFF // 4x MM2114J-3
)

// Ns5652Program is the program ROM region, six MM2708Q in byte pairs.
var Ns5652Program = rom.Region{
	Name: "program",
	Size: 0x1800,
	Entries: []rom.Entry{
		interleaved(rom.Crc("5652_001b.bin", 0x0000, 0x0400, 0x03acf738, "e512ccf64473e0b7291d8cc14f44858cac2048e6")),
		interleaved(rom.Crc("5652_004b.bin", 0x0001, 0x0400, 0xb238b1ba, "90735194cc7f111fc7c1cdde1a9aab4945b00a7e")),
		interleaved(rom.Crc("5652_002b.bin", 0x0800, 0x0400, 0x2fd33c25, "5f1bab6c149c19b8c57f9f014d7aecd5d287fae0")),
		interleaved(rom.Crc("5652_005b.bin", 0x0801, 0x0400, 0xe1d559ed, "3093d28b661275c00de8145f8424f584a4854072")),
		interleaved(rom.Crc("5652_003b.bin", 0x1000, 0x0400, 0x24abf1f8, "ef22ca58e59d8301aab9175ef7ac9dc97feae9ec")),
		interleaved(rom.Crc("5652_006b.bin", 0x1001, 0x0400, 0xdb1dca74, "05149e85237a742850446c01249c83ba373e66b3")),
	},
}

// Ns5652Prom is the MM5203Q PROM, never dumped.
var Ns5652Prom = rom.Region{
	Name: "prom",
	Size: 0x100,
	Entries: []rom.Entry{
		{Name: "5930_001a.bin", Length: 0x100, NoDump: true},
	},
}

func interleaved(entry rom.Entry) rom.Entry {
	entry.Interleave16 = true
	return entry
}

// Ns5652 is the National Semiconductor INS8900 Multibus card 980305652.
// The program space is 16-bit word addressed.
type Ns5652 struct {
	Program *bus.Bus[uint16]
	Rom     *bus.Rom[uint16]
	Ram     *bus.Ram[uint16]
	Prom    []uint8
}

// NewNs5652 builds the card.
func NewNs5652() (m *Ns5652) {
	m = &Ns5652{
		Program: bus.NewBus[uint16](NS5652_NAME),
		Rom:     &bus.Rom[uint16]{Data: make([]uint16, NS5652_ROM_END-NS5652_ROM_BASE+1)},
		Ram:     bus.NewRam[uint16](NS5652_RAM_END - NS5652_RAM_BASE + 1),
	}

	m.Program.MapMirror("rom", NS5652_ROM_BASE, NS5652_ROM_END, NS5652_ROM_MIRROR, m.Rom)
	m.Program.Map("ram", NS5652_RAM_BASE, NS5652_RAM_END, m.Ram)

	return
}

// Clock returns the frequency the CPU core must be run at, in Hz.
func (m *Ns5652) Clock() uint32 {
	return NS5652_CPU_CLOCK
}

// LoadRoms fills the program ROM and PROM from a ROM image directory.
func (m *Ns5652) LoadRoms(filesys fs.FS) (err error) {
	data, err := rom.Load(filesys, &Ns5652Program)
	if err != nil {
		return
	}

	m.Rom.Data = rom.Words16LE(data)

	m.Prom, err = rom.Load(filesys, &Ns5652Prom)
	return
}
