package bus

// Ram is read/write storage.
type Ram[D Data] struct {
	Data []D
}

var _ Device[uint8] = (*Ram[uint8])(nil)

// NewRam creates zeroed storage of size elements.
func NewRam[D Data](size int) *Ram[D] {
	return &Ram[D]{Data: make([]D, size)}
}

// Reset zeroes the storage.
func (ram *Ram[D]) Reset() {
	clear(ram.Data)
}

func (ram *Ram[D]) Read(offset uint32) (value D) {
	if int(offset) < len(ram.Data) {
		value = ram.Data[offset]
	}
	return
}

func (ram *Ram[D]) Write(offset uint32, value D) {
	if int(offset) < len(ram.Data) {
		ram.Data[offset] = value
	}
}

// Rom is read-only storage. Writes are dropped.
type Rom[D Data] struct {
	Data []D
}

var _ Device[uint8] = (*Rom[uint8])(nil)

func (rom *Rom[D]) Read(offset uint32) (value D) {
	if int(offset) < len(rom.Data) {
		value = rom.Data[offset]
	}
	return
}

func (rom *Rom[D]) Write(offset uint32, value D) {
}

// Port is a device built from callbacks. A nil callback reads as zero, or
// drops the write.
type Port[D Data] struct {
	OnRead  func(offset uint32) D
	OnWrite func(offset uint32, value D)
}

var _ Device[uint8] = (*Port[uint8])(nil)

func (port *Port[D]) Read(offset uint32) (value D) {
	if port.OnRead != nil {
		value = port.OnRead(offset)
	}
	return
}

func (port *Port[D]) Write(offset uint32, value D) {
	if port.OnWrite != nil {
		port.OnWrite(offset, value)
	}
}
