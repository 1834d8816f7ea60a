// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package scu

import (
	"fmt"
	"iter"
	"log"
	"maps"
)

const (
	REGISTER_SIZE = 32 // Size of the register window, in bytes.
	ABR_COUNT     = 8  // Address boundary registers.
	SOURCE_COUNT  = 24 // Logical interrupt sources.
	LINE_COUNT    = 8  // Physical CPU interrupt lines.
)

// Register offsets.
const (
	REG_CCR   = 0  // Clock control.
	REG_DCR   = 1  // Placeholder.
	REG_FCR   = 2  // Placeholder.
	REG_PCR   = 3  // Placeholder.
	REG_IDER0 = 4  // Placeholder.
	REG_IDER1 = 5  // Placeholder.
	REG_ISAR  = 6  // Placeholder.
	REG_ABR0  = 8  // ABR0-7 at 8..15.
	REG_ICR0  = 16 // ICR0-11 (write) at 16..27, two sources per byte.
	REG_ISR0  = 16 // ISR bits 23..16 (read).
	REG_ISR1  = 17 // ISR bits 15..8 (read).
	REG_ISR2  = 18 // ISR bits 7..0 (read).
	REG_ACK1  = 19 // Acknowledge line 1 (read). ACK2-7 follow.
	REG_ACK7  = 25 // Acknowledge line 7 (read).
	REG_ICR11 = 27 // Last ICR byte.
)

// CCR and ICR fields.
const (
	CCR_DEFAULT     = 0x80 // Run from the default clock.
	CCR_SPEED_MASK  = 0x70 // Clock table index.
	CCR_SPEED_SHIFT = 4

	ICR_ENABLE    = 0x8 // Source enabled.
	ICR_LINE_MASK = 0x7 // Physical CPU line.
)

// DEFAULT_CLOCK is the frequency selected when CCR bit 7 is set.
const DEFAULT_CLOCK = 8_000_000

// ClockTable is indexed by CCR bits 6..4.
var ClockTable = [8]uint32{
	33_000_000, 80_000_000, 66_000_000, 50_000_000,
	40_000_000, 60_000_000, 25_000_000, 20_000_000,
}

var _scu_defines = map[string]string{
	"CCR":             fmt.Sprintf("%v", REG_CCR),
	"DCR":             fmt.Sprintf("%v", REG_DCR),
	"FCR":             fmt.Sprintf("%v", REG_FCR),
	"PCR":             fmt.Sprintf("%v", REG_PCR),
	"IDER0":           fmt.Sprintf("%v", REG_IDER0),
	"IDER1":           fmt.Sprintf("%v", REG_IDER1),
	"ISAR":            fmt.Sprintf("%v", REG_ISAR),
	"ISR0":            fmt.Sprintf("%v", REG_ISR0),
	"ISR1":            fmt.Sprintf("%v", REG_ISR1),
	"ISR2":            fmt.Sprintf("%v", REG_ISR2),
	"CCR_DEFAULT":     fmt.Sprintf("0x%x", CCR_DEFAULT),
	"CCR_SPEED_MASK":  fmt.Sprintf("0x%x", CCR_SPEED_MASK),
	"CCR_SPEED_SHIFT": fmt.Sprintf("%v", CCR_SPEED_SHIFT),
	"ICR_ENABLE":      fmt.Sprintf("0x%x", ICR_ENABLE),
	"ICR_LINE_MASK":   fmt.Sprintf("0x%x", ICR_LINE_MASK),
}

func init() {
	for n := range ABR_COUNT {
		_scu_defines[fmt.Sprintf("ABR%d", n)] = fmt.Sprintf("%v", REG_ABR0+n)
	}
	for n := range (REG_ICR11 - REG_ICR0) + 1 {
		_scu_defines[fmt.Sprintf("ICR%d", n)] = fmt.Sprintf("%v", REG_ICR0+n)
	}
	for line := 1; line < LINE_COUNT; line++ {
		_scu_defines[fmt.Sprintf("ACK%d", line)] = fmt.Sprintf("%v", REG_ISR2+line)
	}
	for source := range Sources() {
		_scu_defines["SRC_"+source.Name()] = fmt.Sprintf("%v", int(source))
	}
}

//go:generate go tool stringer -type=LineState -trimprefix=LINE_

// LineState is the level driven onto a CPU interrupt input.
type LineState int

const (
	LINE_CLEAR  = LineState(0) // Deassert the line.
	LINE_ASSERT = LineState(1) // Assert the line.
)

// Cpu is the part of the processor the SCU drives.
type Cpu interface {
	// SetClock changes the CPU clock, in Hz.
	SetClock(hz uint32)
	// SetInputLine drives one of the numbered interrupt inputs.
	SetInputLine(line int, state LineState)
}

// Scu is the System Control Unit register model.
type Scu struct {
	Verbose bool // If set, enables verbose logging.
	Cpu     Cpu  // CPU driven by the SCU. May be nil.

	ccr uint8
	abr [ABR_COUNT]uint8
	icr [SOURCE_COUNT]uint8
	isr uint32
}

var _ Sink = (*Scu)(nil)

// NewScu creates a SCU driving a CPU.
func NewScu(cpu Cpu) (scu *Scu) {
	scu = &Scu{
		Cpu: cpu,
	}

	return
}

// Defines returns the register offsets and field masks by name.
func (scu *Scu) Defines() iter.Seq2[string, string] {
	return maps.All(_scu_defines)
}

// Reset zeroes every register. The CPU clock is left alone.
func (scu *Scu) Reset() {
	if scu.Verbose {
		log.Printf("scu: reset")
	}

	scu.ccr = 0
	scu.isr = 0
	clear(scu.abr[:])
	clear(scu.icr[:])
}

// Clock returns the frequency selected by a CCR value.
func Clock(ccr uint8) uint32 {
	if (ccr & CCR_DEFAULT) != 0 {
		return DEFAULT_CLOCK
	}

	return ClockTable[(ccr&CCR_SPEED_MASK)>>CCR_SPEED_SHIFT]
}

// Clock returns the frequency selected by the current CCR.
func (scu *Scu) Clock() uint32 {
	return Clock(scu.ccr)
}

// Ccr returns the clock control register.
func (scu *Scu) Ccr() uint8 {
	return scu.ccr
}

// Abr returns an address boundary register, or zero if there is no such
// register.
func (scu *Scu) Abr(index int) (abr uint8) {
	if index >= 0 && index < ABR_COUNT {
		abr = scu.abr[index]
	}
	return
}

// Icr returns the control nibble of a source, or zero if there is no such
// source.
func (scu *Scu) Icr(source Source) (icr uint8) {
	if source >= 0 && source < SOURCE_COUNT {
		icr = scu.icr[source]
	}
	return
}

// Isr returns the 24-bit interrupt status register.
func (scu *Scu) Isr() uint32 {
	return scu.isr
}

func (scu *Scu) setClock(ccr uint8) {
	hz := Clock(ccr)
	if scu.Verbose {
		log.Printf("scu: ccr 0x%02x clock %v Hz", ccr, hz)
	}
	if scu.Cpu != nil {
		scu.Cpu.SetClock(hz)
	}
}

func (scu *Scu) setInputLine(line int, state LineState) {
	if scu.Cpu != nil {
		scu.Cpu.SetInputLine(line, state)
	}
}

// Write a register. Offsets outside the window are ignored.
func (scu *Scu) Write(offset uint32, value uint8) {
	if offset >= REGISTER_SIZE {
		return
	}

	if scu.Verbose {
		log.Printf("scu: write %02x <= 0x%02x", offset, value)
	}

	switch {
	case offset == REG_CCR:
		scu.ccr = value
		scu.setClock(value)
	case offset >= REG_ABR0 && offset < REG_ABR0+ABR_COUNT:
		scu.abr[offset-REG_ABR0] = value
	case offset >= REG_ICR0 && offset <= REG_ICR11:
		index := (offset - REG_ICR0) << 1
		scu.icr[index] = (value >> 4) & 0xf
		scu.icr[index+1] = value & 0xf
	default:
		// DCR, FCR, PCR, IDER0, IDER1, ISAR and 28..31 are not modelled.
	}
}

// Read a register. Reading ACK1-7 acknowledges every source routed to
// that line. Offsets outside the window read as zero.
func (scu *Scu) Read(offset uint32) (value uint8) {
	switch {
	case offset == REG_CCR:
		value = scu.ccr
	case offset >= REG_ABR0 && offset < REG_ABR0+ABR_COUNT:
		value = scu.abr[offset-REG_ABR0]
	case offset == REG_ISR0:
		value = uint8(scu.isr >> 16)
	case offset == REG_ISR1:
		value = uint8(scu.isr >> 8)
	case offset == REG_ISR2:
		value = uint8(scu.isr)
	case offset >= REG_ACK1 && offset <= REG_ACK7:
		value = uint8(scu.Acknowledge(int(offset - REG_ISR2)))
	}

	return
}

// Acknowledge clears the ISR bit of every source routed to a CPU line,
// deasserts the line, and returns the number of sources cleared.
func (scu *Scu) Acknowledge(line int) (count int) {
	for n, icr := range scu.icr {
		if int(icr&ICR_LINE_MASK) == line {
			scu.isr &^= 1 << n
			count++
		}
	}

	if scu.Verbose {
		log.Printf("scu: ack line %v (%v sources)", line, count)
	}

	scu.setInputLine(line, LINE_CLEAR)

	return
}

// SetSourceLevel records the level of a logical interrupt source, and
// pulses its CPU line. Disabled and unknown sources are ignored.
func (scu *Scu) SetSourceLevel(source Source, level bool) {
	if source < 0 || int(source) >= SOURCE_COUNT {
		return
	}

	icr := scu.icr[source]
	if (icr & ICR_ENABLE) == 0 {
		return
	}

	if level {
		scu.isr |= 1 << source
	} else {
		scu.isr &^= 1 << source
	}

	line := int(icr & ICR_LINE_MASK)

	if scu.Verbose {
		log.Printf("scu: %v level %v line %v", source, level, line)
	}

	// Always clear first, so a shared line sees a fresh edge.
	scu.setInputLine(line, LINE_CLEAR)
	if level {
		scu.setInputLine(line, LINE_ASSERT)
	}
}

// String returns the register state as a string.
func (scu *Scu) String() (text string) {
	text += fmt.Sprintf("% 5s: %02X (%v Hz)\n", "ccr", scu.ccr, scu.Clock())
	text += fmt.Sprintf("% 5s: %02X_%04X\n", "isr", scu.isr>>16, scu.isr&0xffff)
	text += fmt.Sprintf("% 5s:", "abr")
	for _, abr := range scu.abr {
		text += fmt.Sprintf(" %02X", abr)
	}
	text += "\n"
	text += fmt.Sprintf("% 5s:", "icr")
	for _, icr := range scu.icr {
		text += fmt.Sprintf(" %X", icr)
	}
	text += "\n"

	return
}
