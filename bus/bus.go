// Package bus provides address space dispatch for the emulated machines.
//
// A Bus maps inclusive address ranges onto Devices. Each Device sees the
// offset of the access from the start of its range, after mirror bits have
// been removed. Later mappings shadow earlier ones.
package bus

import (
	"fmt"
	"iter"
	"log"
	"slices"
)

// Data is the width of a bus access.
type Data interface {
	~uint8 | ~uint16
}

// Device is a memory-mapped peripheral.
type Device[D Data] interface {
	Read(offset uint32) D
	Write(offset uint32, value D)
}

// Region is a range of the address space claimed by a device.
type Region[D Data] struct {
	Name   string
	Start  uint32
	End    uint32 // Inclusive.
	Mirror uint32 // Address bits ignored when decoding.
	Device Device[D]
}

// Contains checks if an address decodes into the region.
func (region *Region[D]) Contains(addr uint32) bool {
	addr &^= region.Mirror
	return addr >= region.Start && addr <= region.End
}

func (region *Region[D]) String() string {
	return fmt.Sprintf("%08X-%08X %v", region.Start, region.End, region.Name)
}

// Bus is an address space.
type Bus[D Data] struct {
	Verbose    bool   // If set, log unmapped accesses.
	Name       string // Name of the address space.
	Unmapped   D      // Value of reads from unmapped addresses.
	GlobalMask uint32 // If non-zero, addresses are masked before decoding.

	regions []*Region[D]
}

// NewBus creates an empty address space.
func NewBus[D Data](name string) (bus *Bus[D]) {
	bus = &Bus[D]{
		Name: name,
	}

	return
}

// Map a device over the inclusive range start..end.
func (bus *Bus[D]) Map(name string, start, end uint32, dev Device[D]) *Region[D] {
	return bus.MapMirror(name, start, end, 0, dev)
}

// MapMirror maps a device, ignoring the mirror address bits.
func (bus *Bus[D]) MapMirror(name string, start, end, mirror uint32, dev Device[D]) (region *Region[D]) {
	if end < start {
		panic(fmt.Sprintf("bus %v: %v: end 0x%x before start 0x%x", bus.Name, name, end, start))
	}

	region = &Region[D]{
		Name:   name,
		Start:  start,
		End:    end,
		Mirror: mirror,
		Device: dev,
	}

	bus.regions = append(bus.regions, region)

	return
}

// Regions iterates over the mapped regions, in mapping order.
func (bus *Bus[D]) Regions() iter.Seq[*Region[D]] {
	return slices.Values(bus.regions)
}

// Find the region an address decodes to.
func (bus *Bus[D]) Find(addr uint32) (region *Region[D], offset uint32, ok bool) {
	if bus.GlobalMask != 0 {
		addr &= bus.GlobalMask
	}

	for n := len(bus.regions) - 1; n >= 0; n-- {
		if bus.regions[n].Contains(addr) {
			region = bus.regions[n]
			offset = (addr &^ region.Mirror) - region.Start
			ok = true
			return
		}
	}

	return
}

// Read from the address space.
func (bus *Bus[D]) Read(addr uint32) (value D) {
	region, offset, ok := bus.Find(addr)
	if !ok {
		if bus.Verbose {
			log.Printf("%v: unmapped read 0x%08x", bus.Name, addr)
		}
		value = bus.Unmapped
		return
	}

	value = region.Device.Read(offset)
	return
}

// Write to the address space.
func (bus *Bus[D]) Write(addr uint32, value D) {
	region, offset, ok := bus.Find(addr)
	if !ok {
		if bus.Verbose {
			log.Printf("%v: unmapped write 0x%08x <= 0x%x", bus.Name, addr, value)
		}
		return
	}

	region.Device.Write(offset, value)
}

// String returns the address map.
func (bus *Bus[D]) String() (text string) {
	for _, region := range bus.regions {
		text += region.String() + "\n"
	}

	return
}
