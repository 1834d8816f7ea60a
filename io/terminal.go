package io

const (
	TERMINAL_STATUS_IDLE  = 0x20 // No key waiting.
	TERMINAL_STATUS_READY = 0x21 // Key waiting.
)

// Terminal latches the last key sent by a generic serial terminal.
type Terminal struct {
	data uint8
}

// Reset clears the latch.
func (term *Terminal) Reset() {
	term.data = 0
}

// Put latches a key from the terminal keyboard.
func (term *Terminal) Put(data uint8) {
	term.data = data
}

// Status reports if a key is waiting.
func (term *Terminal) Status() uint8 {
	if term.data != 0 {
		return TERMINAL_STATUS_READY
	}
	return TERMINAL_STATUS_IDLE
}

// Data returns the latched key, and clears the latch.
func (term *Terminal) Data() (data uint8) {
	data = term.data
	term.data = 0
	return
}
