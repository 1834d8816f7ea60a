package bus

// Read16BE reads a big-endian 16-bit value from a byte bus.
func Read16BE(bus *Bus[uint8], addr uint32) uint16 {
	return uint16(bus.Read(addr))<<8 | uint16(bus.Read(addr+1))
}

// Write16BE writes a big-endian 16-bit value to a byte bus.
func Write16BE(bus *Bus[uint8], addr uint32, value uint16) {
	bus.Write(addr, uint8(value>>8))
	bus.Write(addr+1, uint8(value))
}

// Read32BE reads a big-endian 32-bit value from a byte bus.
func Read32BE(bus *Bus[uint8], addr uint32) uint32 {
	return uint32(Read16BE(bus, addr))<<16 | uint32(Read16BE(bus, addr+2))
}

// Write32BE writes a big-endian 32-bit value to a byte bus.
func Write32BE(bus *Bus[uint8], addr uint32, value uint32) {
	Write16BE(bus, addr, uint16(value>>16))
	Write16BE(bus, addr+2, uint16(value))
}
