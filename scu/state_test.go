package scu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gopkg.in/yaml.v3"
)

func TestScuSnapshot(t *testing.T) {
	assert := assert.New(t)

	scu, _ := newTestScu()
	scu.Write(REG_CCR, 0x50)
	scu.Write(REG_ABR0+2, 0xee)
	scu.Write(REG_ICR0+4, 0xc9) // ICR8 = line 4, ICR9 = line 1
	scu.SetSourceLevel(SOURCE_IRQ8, true)

	state := scu.Snapshot()
	assert.Equal(uint8(0x50), state.Ccr)
	assert.Equal(uint8(0xee), state.Abr[2])
	assert.Equal(uint8(0xc), state.Icr[8])
	assert.Equal(uint8(0x9), state.Icr[9])
	assert.Equal(uint32(1<<8), state.Isr)

	other, cpu := newTestScu()
	other.Restore(state)

	assert.Equal(state, other.Snapshot())
	assert.Equal(ClockTable[5], cpu.clock)
	assert.Empty(cpu.events)
}

func TestScuRestoreMasks(t *testing.T) {
	assert := assert.New(t)

	scu, _ := newTestScu()

	state := State{Ccr: 0x80, Isr: 0xff00_0001}
	state.Icr[0] = 0xf9

	scu.Restore(state)

	assert.Equal(uint32(1), scu.Isr())
	assert.Equal(uint8(0x9), scu.Icr(0))
	assert.Equal(uint32(DEFAULT_CLOCK), scu.Clock())
}

func TestScuStateYaml(t *testing.T) {
	assert := assert.New(t)

	scu, _ := newTestScu()
	scu.Write(REG_CCR, 0x30)
	scu.Write(REG_ABR0, 0x01)
	scu.Write(REG_ICR0+8, 0xf0)
	scu.SetSourceLevel(SOURCE_DUART, true)

	data, err := yaml.Marshal(scu.Snapshot())
	assert.NoError(err)

	var state State
	err = yaml.Unmarshal(data, &state)
	assert.NoError(err)
	assert.Equal(scu.Snapshot(), state)
}
