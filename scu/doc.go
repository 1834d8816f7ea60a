// Package scu implements the System Control Unit of the EHBC proto1 board.
//
// The SCU is a 32 byte memory-mapped peripheral that selects the CPU clock
// and routes 24 logical interrupt sources onto the 8 interrupt input lines of
// the CPU. Each source has a 4-bit Interrupt Control Register (ICR) holding an
// enable bit and a physical line number. The Interrupt Status Register (ISR)
// records asserted, enabled sources. Reading one of the acknowledge registers
// clears every source routed to that line and deasserts the line.
//
// All entry points are synchronous and expect to be serialized by the host.
package scu
