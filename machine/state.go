package machine

import (
	"io"

	"gopkg.in/yaml.v3"

	"github.com/ezrec/ehbc/scu"
)

// Proto1State is the saved state of a proto1 board.
type Proto1State struct {
	Machine  string    `yaml:"machine"`
	Switches uint8     `yaml:"switches"`
	Scu      scu.State `yaml:"scu"`
}

// SaveState writes the board state as YAML.
func (m *Proto1) SaveState(w io.Writer) (err error) {
	state := Proto1State{
		Machine:  PROTO1_NAME,
		Switches: m.Switches,
		Scu:      m.Scu.Snapshot(),
	}

	encoder := yaml.NewEncoder(w)
	defer encoder.Close()

	err = encoder.Encode(&state)
	return
}

// LoadState restores the board state from YAML.
func (m *Proto1) LoadState(r io.Reader) (err error) {
	var state Proto1State

	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	err = decoder.Decode(&state)
	if err != nil {
		return
	}

	if state.Machine != PROTO1_NAME {
		err = &ErrName{Name: state.Machine, Err: ErrStateMachine}
		return
	}

	m.Switches = state.Switches
	m.Scu.Restore(state.Scu)

	return
}
