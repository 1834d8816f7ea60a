package script

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.starlark.net/starlark"

	"github.com/ezrec/ehbc/machine"
	"github.com/ezrec/ehbc/scu"
)

type mockCpu struct {
	clock uint32
	lines [scu.LINE_COUNT]scu.LineState
}

func (mc *mockCpu) SetClock(hz uint32) {
	mc.clock = hz
}

func (mc *mockCpu) SetInputLine(line int, state scu.LineState) {
	mc.lines[line] = state
}

func asUint64(t *testing.T, value starlark.Value) (u uint64) {
	i, ok := value.(starlark.Int)
	if !assert.True(t, ok, "%v is not an int", value) {
		return
	}
	u, ok = i.Uint64()
	assert.True(t, ok, "%v out of range", i)
	return
}

func newTestMachine(t *testing.T) (m *machine.Proto1, cpu *mockCpu) {
	cpu = &mockCpu{}
	m, err := machine.NewProto1(cpu, machine.DefaultConfig())
	assert.NoError(t, err)
	return
}

func TestRunAcknowledge(t *testing.T) {
	assert := assert.New(t)

	m, cpu := newTestMachine(t)

	src := `
scu_write(ICR8, 0xdd)
irq(SRC_DUART)
irq(SRC_MFP0, True)
pending = scu_read(ISR0)
count = scu_read(ACK5)
after = scu_read(ISR0)
`
	globals, err := Run(m, "ack.star", src)
	assert.NoError(err)

	assert.Equal(uint64(3), asUint64(t, globals["pending"]))
	assert.Equal(uint64(2), asUint64(t, globals["count"]))
	assert.Equal(uint64(0), asUint64(t, globals["after"]))
	assert.Equal(scu.LINE_CLEAR, cpu.lines[5])
}

func TestRunClock(t *testing.T) {
	assert := assert.New(t)

	m, cpu := newTestMachine(t)

	_, err := Run(m, "clock.star", "scu_write(CCR, 3 << CCR_SPEED_SHIFT)\n")
	assert.NoError(err)
	assert.Equal(uint32(50_000_000), cpu.clock)

	_, err = Run(m, "clock.star", "scu_write(CCR, CCR_DEFAULT)\n")
	assert.NoError(err)
	assert.Equal(uint32(scu.DEFAULT_CLOCK), cpu.clock)
}

func TestRunIrqLevel(t *testing.T) {
	assert := assert.New(t)

	m, cpu := newTestMachine(t)

	src := `
scu_write(ICR1, 0x0b)
irq(SRC_IRQ3, 1)
high = scu_read(ISR2)
irq(SRC_IRQ3, False)
low = scu_read(ISR2)
irq(99)
`
	globals, err := Run(m, "level.star", src)
	assert.NoError(err)
	assert.Equal(uint64(1<<3), asUint64(t, globals["high"]))
	assert.Equal(uint64(0), asUint64(t, globals["low"]))
	assert.Equal(scu.LINE_CLEAR, cpu.lines[3])
}

func TestRunMemory(t *testing.T) {
	assert := assert.New(t)

	m, _ := newTestMachine(t)

	src := `
pc = peek32(RAM_BASE + 4)
poke32(0x100, 0xdeadbeef)
hi = peek8(0x100)
poke8(0x103, 0x42)
word = peek32(0x100)
`
	globals, err := Run(m, "mem.star", src)
	assert.NoError(err)
	assert.Equal(uint64(machine.PROTO1_FLASH_BASE), asUint64(t, globals["pc"]))
	assert.Equal(uint64(0xde), asUint64(t, globals["hi"]))
	assert.Equal(uint64(0xdeadbe42), asUint64(t, globals["word"]))
}

func TestRunReset(t *testing.T) {
	assert := assert.New(t)

	m, _ := newTestMachine(t)

	_, err := Run(m, "reset.star", "scu_write(ABR3, 0x7f)\npoke32(4, 0)\nreset()\n")
	assert.NoError(err)
	assert.Equal(uint8(0), m.Scu.Abr(3))
	assert.Equal(uint8(0xfd), m.Ram.Data[4])
}

func TestRunPrint(t *testing.T) {
	assert := assert.New(t)

	m, _ := newTestMachine(t)

	out := &bytes.Buffer{}
	assert.NoError(m.Printer.Load(out))

	_, err := Run(m, "print.star", "print('isr', scu_read(ISR2))\n")
	assert.NoError(err)
	assert.Equal("isr 0\n", out.String())
}

func TestRunErrors(t *testing.T) {
	assert := assert.New(t)

	m, _ := newTestMachine(t)

	tests := []struct {
		name string
		src  string
		err  error
	}{
		{"scu offset", "scu_read(0x100)\n", ErrScriptRange},
		{"scu value", "scu_write(CCR, 0x100)\n", ErrScriptRange},
		{"negative", "peek8(-1)\n", ErrScriptRange},
		{"wide", "poke32(0, 1 << 32)\n", ErrScriptRange},
		{"syntax", "scu_read(\n", nil},
		{"arguments", "scu_write(CCR)\n", nil},
		{"undefined", "scu_read(ICR99)\n", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Run(m, tt.name, tt.src)
			var err_script *ErrScript
			assert.True(errors.As(err, &err_script))
			assert.Equal(tt.name, err_script.Filename)
			if tt.err != nil {
				assert.True(errors.Is(err, tt.err), err)
			}
		})
	}
}

func TestPredeclared(t *testing.T) {
	assert := assert.New(t)

	m, _ := newTestMachine(t)

	sc := &Script{Machine: m}
	pred, err := sc.Predeclared()
	assert.NoError(err)

	assert.Equal(uint64(scu.REG_ACK1), asUint64(t, pred["ACK1"]))
	assert.Equal(uint64(int(scu.SOURCE_DMAC1)), asUint64(t, pred["SRC_DMAC1"]))
	assert.Equal(uint64(machine.PROTO1_SCU_BASE), asUint64(t, pred["SCU_BASE"]))
	assert.Contains(pred, "poke32")
}
