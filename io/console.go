package io

import (
	"io"
)

// Console is a write-only debug port. Each byte written is passed to the
// output; reads return zero.
type Console struct {
	Output io.Writer
}

// Read returns zero.
func (con *Console) Read(offset uint32) uint8 {
	return 0
}

// Write sends a byte to the output, if any.
func (con *Console) Write(offset uint32, value uint8) {
	if con.Output == nil {
		return
	}
	con.Output.Write([]byte{value})
}
