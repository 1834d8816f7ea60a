package bus

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBusMap(t *testing.T) {
	assert := assert.New(t)

	bus := NewBus[uint8]("test")
	ram := NewRam[uint8](0x100)
	bus.Map("ram", 0x1000, 0x10ff, ram)

	bus.Write(0x1000, 0x11)
	bus.Write(0x10ff, 0x22)
	bus.Write(0x1100, 0x33)

	assert.Equal(uint8(0x11), ram.Data[0])
	assert.Equal(uint8(0x22), ram.Data[0xff])
	assert.Equal(uint8(0x11), bus.Read(0x1000))
	assert.Equal(uint8(0x22), bus.Read(0x10ff))
	assert.Equal(uint8(0), bus.Read(0x1100))
	assert.Equal(uint8(0), bus.Read(0x0fff))
}

func TestBusUnmapped(t *testing.T) {
	assert := assert.New(t)

	bus := NewBus[uint8]("test")
	bus.Unmapped = 0xff

	assert.Equal(uint8(0xff), bus.Read(0x1234))
	bus.Write(0x1234, 0)
	assert.Equal(uint8(0xff), bus.Read(0x1234))

	_, _, ok := bus.Find(0x1234)
	assert.False(ok)
}

func TestBusShadow(t *testing.T) {
	assert := assert.New(t)

	bus := NewBus[uint8]("test")

	var writes []uint32
	low := NewRam[uint8](8)
	high := &Port[uint8]{
		OnRead:  func(offset uint32) uint8 { return 0xa0 | uint8(offset) },
		OnWrite: func(offset uint32, value uint8) { writes = append(writes, offset) },
	}

	bus.Map("low", 0x00, 0x07, low)
	bus.Map("high", 0x04, 0x07, high)

	bus.Write(0x02, 0x42)
	bus.Write(0x05, 0x43)

	assert.Equal(uint8(0x42), bus.Read(0x02))
	assert.Equal(uint8(0xa1), bus.Read(0x05))
	assert.Equal([]uint32{1}, writes)
	assert.Equal(uint8(0), low.Data[5])

	region, offset, ok := bus.Find(0x06)
	assert.True(ok)
	assert.Equal("high", region.Name)
	assert.Equal(uint32(2), offset)
}

func TestBusMirror(t *testing.T) {
	assert := assert.New(t)

	bus := NewBus[uint16]("words")
	rom := &Rom[uint16]{Data: make([]uint16, 0xc00)}
	rom.Data[0x123] = 0xbeef
	bus.MapMirror("rom", 0x0000, 0x0bff, 0xd000, rom)

	for _, base := range []uint32{0x0000, 0x1000, 0x4000, 0x5000, 0x8000, 0x9000, 0xc000, 0xd000} {
		assert.Equal(uint16(0xbeef), bus.Read(base+0x123), base)
	}

	// Not mirrored.
	assert.Equal(uint16(0), bus.Read(0x2123))

	// Rom ignores writes.
	bus.Write(0x123, 0)
	assert.Equal(uint16(0xbeef), bus.Read(0x123))
}

func TestBusGlobalMask(t *testing.T) {
	assert := assert.New(t)

	bus := NewBus[uint8]("io")
	bus.GlobalMask = 0xff
	ram := NewRam[uint8](0x100)
	bus.Map("ports", 0x00, 0xff, ram)

	bus.Write(0x1234, 0x56)
	assert.Equal(uint8(0x56), ram.Data[0x34])
	assert.Equal(uint8(0x56), bus.Read(0x34))
}

func TestBusEndian(t *testing.T) {
	assert := assert.New(t)

	bus := NewBus[uint8]("be")
	ram := NewRam[uint8](8)
	bus.Map("ram", 0, 7, ram)

	Write32BE(bus, 0, 0x12345678)
	assert.Equal([]uint8{0x12, 0x34, 0x56, 0x78}, ram.Data[:4])
	assert.Equal(uint32(0x12345678), Read32BE(bus, 0))

	Write16BE(bus, 6, 0xabcd)
	assert.Equal(uint16(0xabcd), Read16BE(bus, 6))
	assert.Equal(uint8(0xab), ram.Data[6])
}

func TestBusRegions(t *testing.T) {
	assert := assert.New(t)

	bus := NewBus[uint8]("test")
	bus.Map("a", 0, 1, NewRam[uint8](2))
	bus.Map("b", 2, 3, &Port[uint8]{})

	var names []string
	for region := range bus.Regions() {
		names = append(names, region.Name)
	}
	assert.Equal([]string{"a", "b"}, names)
	assert.Equal("00000000-00000001 a\n00000002-00000003 b\n", bus.String())

	// Empty port.
	assert.Equal(uint8(0), bus.Read(2))
	bus.Write(3, 1)

	assert.Panics(func() { bus.Map("bad", 4, 3, nil) })
}

func TestRamReset(t *testing.T) {
	assert := assert.New(t)

	ram := NewRam[uint16](4)
	ram.Write(1, 0x1234)
	ram.Write(4, 0x5678) // out of range
	assert.Equal(uint16(0x1234), ram.Read(1))
	assert.Equal(uint16(0), ram.Read(4))

	ram.Reset()
	assert.Equal(uint16(0), ram.Read(1))
}
