// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package machine

import (
	"fmt"
	"io/fs"
	"iter"
	"log"
	"maps"

	"github.com/ezrec/ehbc/bus"
	"github.com/ezrec/ehbc/internal"
	eio "github.com/ezrec/ehbc/io"
	"github.com/ezrec/ehbc/rom"
	"github.com/ezrec/ehbc/scu"
)

const PROTO1_NAME = "proto1"

const (
	PROTO1_CPU_CLOCK = scu.DEFAULT_CLOCK // MC68030 clock at power on.

	PROTO1_RAM_BASE      = 0x0000_0000
	PROTO1_FLASH_BASE    = 0xFD00_0000
	PROTO1_FLASH_SIZE    = 0x0100_0000
	PROTO1_FIRMWARE_SIZE = 0x0010_0000
	PROTO1_CONSOLE       = 0xFE00_00E9 // Debug console write port.
	PROTO1_SCU_BASE      = 0xFF00_0000
	PROTO1_SCU_END       = 0xFF00_00FF

	PROTO1_RESET_SSP = 0x0000_0000
	PROTO1_RESET_PC  = PROTO1_FLASH_BASE
)

// Window is an address range reserved for an external peripheral.
type Window struct {
	Start uint32
	End   uint32
}

// Proto1Windows are the peripheral windows of the proto1 address map.
var Proto1Windows = map[string]Window{
	"kbdc":       {0xFE00_0060, 0xFE00_0064},
	"rtc_addr":   {0xFE00_0070, 0xFE00_0070},
	"rtc_data":   {0xFE00_0071, 0xFE00_0071},
	"ide_cs0":    {0xFE00_01F0, 0xFE00_01F7},
	"vga_io":     {0xFE00_03B0, 0xFE00_03DF},
	"ide_cs1":    {0xFE00_03F0, 0xFE00_03F7},
	"fdc":        {0xFE00_03F0, 0xFE00_03F7},
	"vga_mem":    {0xFE0A_0000, 0xFE0B_FFFF},
	"vga_linear": {0xFE10_0000, 0xFE1F_FFFF},
	"mfp0":       {0xFF00_0100, 0xFF00_010F},
	"mfp1":       {0xFF00_0110, 0xFF00_011F},
	"duart":      {0xFF00_0200, 0xFF00_020F},
	"dmac0":      {0xFF00_0300, 0xFF00_03FF},
	"dmac1":      {0xFF00_0400, 0xFF00_04FF},
	"snd":        {0xFF00_0500, 0xFF00_0503},
}

// Proto1Peripherals maps peripheral interrupt outputs to SCU sources.
var Proto1Peripherals = map[string]scu.Source{
	"kbdc":  scu.SOURCE_IRQ1,
	"fdc":   scu.SOURCE_IRQ6,
	"rtc":   scu.SOURCE_IRQ8,
	"mouse": scu.SOURCE_IRQ12,
	"ide":   scu.SOURCE_IRQ15,
	"duart": scu.SOURCE_DUART,
	"mfp0":  scu.SOURCE_MFP0,
	"mfp1":  scu.SOURCE_MFP1,
	"snd":   scu.SOURCE_AUDIO,
	"dmac0": scu.SOURCE_DMAC0,
	"dmac1": scu.SOURCE_DMAC1,
}

// Proto1Firmware is the flash ROM region.
var Proto1Firmware = rom.Region{
	Name: "flash",
	Size: PROTO1_FLASH_SIZE,
	Entries: []rom.Entry{
		{Name: "proto1_firmware.bin", Offset: 0, Length: PROTO1_FIRMWARE_SIZE},
	},
}

var _proto1_defines = map[string]string{
	"RAM_BASE":   fmt.Sprintf("0x%x", PROTO1_RAM_BASE),
	"FLASH_BASE": fmt.Sprintf("0x%x", PROTO1_FLASH_BASE),
	"CONSOLE":    fmt.Sprintf("0x%x", PROTO1_CONSOLE),
	"SCU_BASE":   fmt.Sprintf("0x%x", PROTO1_SCU_BASE),
}

// Proto1 is the EHBC proto1 board: MC68030, SCU, RAM and flash.
type Proto1 struct {
	Verbose  bool    // If set, enables verbose logging.
	Cpu      scu.Cpu // Reference to the CPU collaborator.
	Config   Config
	Switches uint8 // DIP switches.

	Scu     *scu.Scu
	Bus     *bus.Bus[uint8]
	Ram     *bus.Ram[uint8]
	Flash   *bus.Rom[uint8]
	Console eio.Console   // Port 0xE9 debug output.
	Printer eio.Bitbanger // Host image behind the debug console.
}

// NewProto1 builds a proto1 board around a CPU, and resets it.
func NewProto1(cpu scu.Cpu, cfg Config) (m *Proto1, err error) {
	err = cfg.Validate()
	if err != nil {
		return
	}

	ramSize, _ := cfg.RamSize()
	switches, _ := cfg.SwitchBits()

	m = &Proto1{
		Verbose:  cfg.Verbose,
		Cpu:      cpu,
		Config:   cfg,
		Switches: switches,
		Scu:      scu.NewScu(cpu),
		Bus:      bus.NewBus[uint8](PROTO1_NAME),
		Ram:      bus.NewRam[uint8](int(ramSize)),
		Flash:    &bus.Rom[uint8]{Data: make([]uint8, PROTO1_FLASH_SIZE)},
	}

	m.Scu.Verbose = m.Verbose
	m.Bus.Verbose = m.Verbose
	m.Printer.Verbose = m.Verbose
	m.Console.Output = &m.Printer

	m.Bus.Map("ram", PROTO1_RAM_BASE, PROTO1_RAM_BASE+ramSize-1, m.Ram)
	m.Bus.Map("flash", PROTO1_FLASH_BASE, PROTO1_FLASH_BASE+PROTO1_FLASH_SIZE-1, m.Flash)
	m.Bus.Map("console", PROTO1_CONSOLE, PROTO1_CONSOLE, &m.Console)
	m.Bus.Map("scu", PROTO1_SCU_BASE, PROTO1_SCU_END, m.Scu)

	if cpu != nil {
		cpu.SetClock(PROTO1_CPU_CLOCK)
	}

	m.Reset()

	return
}

// LoadFirmware fills the flash from a ROM image directory.
func (m *Proto1) LoadFirmware(filesys fs.FS) (err error) {
	data, err := rom.Load(filesys, &Proto1Firmware)
	if err != nil {
		return
	}

	m.Flash.Data = data

	return
}

// Reset the board.
// - Clears the SCU registers.
// - Installs the reset vectors at the bottom of RAM.
func (m *Proto1) Reset() {
	if m.Verbose {
		log.Printf("%v: reset", PROTO1_NAME)
	}

	m.Scu.Reset()

	bus.Write32BE(m.Bus, PROTO1_RAM_BASE+0, PROTO1_RESET_SSP)
	bus.Write32BE(m.Bus, PROTO1_RAM_BASE+4, PROTO1_RESET_PC)
}

// Attach an external peripheral to one of the named windows. A later
// attachment shadows an earlier one in an overlapping window.
func (m *Proto1) Attach(name string, dev bus.Device[uint8]) (err error) {
	window, ok := Proto1Windows[name]
	if !ok {
		err = &ErrName{Name: name, Err: ErrWindowUnknown}
		return
	}

	m.Bus.Map(name, window.Start, window.End, dev)

	if m.Verbose {
		log.Printf("%v: attach %v at 0x%08x", PROTO1_NAME, name, window.Start)
	}

	return
}

// Irq returns the interrupt line for a SCU source.
func (m *Proto1) Irq(source scu.Source) scu.Line {
	return m.Scu.Line(source)
}

// Peripheral returns the interrupt line a named peripheral is wired to.
func (m *Proto1) Peripheral(name string) (line scu.Line, err error) {
	source, ok := Proto1Peripherals[name]
	if !ok {
		err = &ErrName{Name: name, Err: ErrPeripheralUnknown}
		return
	}

	line = m.Irq(source)
	return
}

// Defines returns the SCU registers and board address map, sorted by name.
func (m *Proto1) Defines() iter.Seq2[string, string] {
	return internal.Sorted2(internal.Concat2(maps.All(_proto1_defines), m.Scu.Defines()))
}

// Read a byte from the board address space.
func (m *Proto1) Read(addr uint32) uint8 {
	return m.Bus.Read(addr)
}

// Write a byte to the board address space.
func (m *Proto1) Write(addr uint32, value uint8) {
	m.Bus.Write(addr, value)
}
