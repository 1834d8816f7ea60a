package scu

// State is a snapshot of the SCU registers.
type State struct {
	Ccr uint8               `yaml:"ccr"`
	Abr [ABR_COUNT]uint8    `yaml:"abr,flow"`
	Icr [SOURCE_COUNT]uint8 `yaml:"icr,flow"`
	Isr uint32              `yaml:"isr"`
}

// Snapshot returns the current register state.
func (scu *Scu) Snapshot() (state State) {
	state = State{
		Ccr: scu.ccr,
		Abr: scu.abr,
		Icr: scu.icr,
		Isr: scu.isr & ((1 << SOURCE_COUNT) - 1),
	}

	return
}

// Restore replaces the register state, and reapplies the clock selection.
// CPU lines are not touched; they belong to the CPU's own snapshot.
func (scu *Scu) Restore(state State) {
	scu.ccr = state.Ccr
	scu.abr = state.Abr
	for n, icr := range state.Icr {
		scu.icr[n] = icr & 0xf
	}
	scu.isr = state.Isr & ((1 << SOURCE_COUNT) - 1)

	scu.setClock(scu.ccr)
}
