package scu

import (
	"iter"
	"strconv"
)

// Source is a logical interrupt source index, 0..23.
type Source int

// Sources wired on the proto1 board.
const (
	SOURCE_IRQ1  = Source(1)  // Keyboard.
	SOURCE_IRQ3  = Source(3)  // ISA.
	SOURCE_IRQ4  = Source(4)  // ISA.
	SOURCE_IRQ5  = Source(5)  // ISA.
	SOURCE_IRQ6  = Source(6)  // Floppy controller.
	SOURCE_IRQ7  = Source(7)  // ISA.
	SOURCE_IRQ8  = Source(8)  // RTC.
	SOURCE_IRQ9  = Source(9)  // ISA.
	SOURCE_IRQ10 = Source(10) // ISA.
	SOURCE_IRQ11 = Source(11) // ISA.
	SOURCE_IRQ12 = Source(12) // Mouse.
	SOURCE_IRQ14 = Source(14) // ISA.
	SOURCE_IRQ15 = Source(15) // IDE controller.
	SOURCE_DUART = Source(16) // MC68681 DUART.
	SOURCE_MFP0  = Source(17) // MC68901 MFP 0.
	SOURCE_MFP1  = Source(18) // MC68901 MFP 1.
	SOURCE_AUDIO = Source(19) // AD1848 codec.
	SOURCE_DMAC0 = Source(20) // HD63450 DMAC 0.
	SOURCE_DMAC1 = Source(21) // HD63450 DMAC 1.
)

var _source_name = map[Source]string{
	SOURCE_IRQ1:  "IRQ1",
	SOURCE_IRQ3:  "IRQ3",
	SOURCE_IRQ4:  "IRQ4",
	SOURCE_IRQ5:  "IRQ5",
	SOURCE_IRQ6:  "IRQ6",
	SOURCE_IRQ7:  "IRQ7",
	SOURCE_IRQ8:  "IRQ8",
	SOURCE_IRQ9:  "IRQ9",
	SOURCE_IRQ10: "IRQ10",
	SOURCE_IRQ11: "IRQ11",
	SOURCE_IRQ12: "IRQ12",
	SOURCE_IRQ14: "IRQ14",
	SOURCE_IRQ15: "IRQ15",
	SOURCE_DUART: "DUART",
	SOURCE_MFP0:  "MFP0",
	SOURCE_MFP1:  "MFP1",
	SOURCE_AUDIO: "AUDIO",
	SOURCE_DMAC0: "DMAC0",
	SOURCE_DMAC1: "DMAC1",
}

// Sources iterates over the wired sources, in index order.
func Sources() iter.Seq[Source] {
	return func(yield func(Source) bool) {
		for source := range Source(SOURCE_COUNT) {
			if _, ok := _source_name[source]; !ok {
				continue
			}
			if !yield(source) {
				return
			}
		}
	}
}

// Name of a source, or its index if unwired.
func (source Source) Name() string {
	name, ok := _source_name[source]
	if !ok {
		name = "SOURCE" + strconv.Itoa(int(source))
	}
	return name
}

func (source Source) String() string {
	return source.Name()
}
