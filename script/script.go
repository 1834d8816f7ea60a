// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package script runs Starlark bring-up scripts against a proto1 board.
//
// Every SCU register offset, source index and board address from
// Proto1.Defines is predeclared as an integer, so a script can be written
// the way the firmware would poke the hardware:
//
//	scu_write(ICR8, 0xdd)
//	irq(SRC_DUART, True)
//	n = scu_read(ACK5)
package script

import (
	"log"
	"math"
	"strconv"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/ezrec/ehbc/bus"
	"github.com/ezrec/ehbc/machine"
	"github.com/ezrec/ehbc/scu"
)

const SCU_WINDOW = machine.PROTO1_SCU_END - machine.PROTO1_SCU_BASE

// Script binds a proto1 board to the Starlark builtins.
type Script struct {
	Verbose bool
	Machine *machine.Proto1
}

type builtinFunc func(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error)

// Run executes a script against a board, and returns its globals.
// src may be a string, a []byte, an io.Reader or nil (read filename).
func Run(m *machine.Proto1, filename string, src any) (globals starlark.StringDict, err error) {
	sc := &Script{Verbose: m.Verbose, Machine: m}
	return sc.Run(filename, src)
}

// Predeclared returns the constants and builtins visible to a script.
func (sc *Script) Predeclared() (pred starlark.StringDict, err error) {
	pred = starlark.StringDict{}

	for key, str := range sc.Machine.Defines() {
		var value uint64
		value, err = strconv.ParseUint(str, 0, 32)
		if err != nil {
			err = &ErrArgument{Builtin: key, Value: str, Err: ErrScriptDefine}
			return
		}
		pred[key] = starlark.MakeUint64(value)
	}

	for name, fn := range map[string]builtinFunc{
		"scu_read":  sc.scuRead,
		"scu_write": sc.scuWrite,
		"irq":       sc.irq,
		"reset":     sc.reset,
		"peek8":     sc.peek8,
		"poke8":     sc.poke8,
		"peek32":    sc.peek32,
		"poke32":    sc.poke32,
	} {
		pred[name] = starlark.NewBuiltin(name, fn)
	}

	return
}

// Run executes a script, and returns its globals.
func (sc *Script) Run(filename string, src any) (globals starlark.StringDict, err error) {
	pred, err := sc.Predeclared()
	if err != nil {
		err = &ErrScript{Filename: filename, Err: err}
		return
	}

	thread := starlark.Thread{
		Name: filename,
		Print: func(thread *starlark.Thread, msg string) {
			sc.Machine.Printer.Send([]byte(msg + "\n"))
		},
	}

	if sc.Verbose {
		log.Printf("script: run %v", filename)
	}

	opts := syntax.FileOptions{}
	globals, err = starlark.ExecFileOptions(&opts, &thread, filename, src, pred)
	if err != nil {
		err = &ErrScript{Filename: filename, Err: err}
		return
	}

	return
}

func toUint32(name string, value starlark.Int) (u32 uint32, err error) {
	u64, ok := value.Uint64()
	if !ok || u64 > math.MaxUint32 {
		err = &ErrArgument{Builtin: name, Value: value.String(), Err: ErrScriptRange}
		return
	}

	u32 = uint32(u64)
	return
}

func toUint8(name string, value starlark.Int) (u8 uint8, err error) {
	u32, err := toUint32(name, value)
	if err != nil {
		return
	}
	if u32 > math.MaxUint8 {
		err = &ErrArgument{Builtin: name, Value: value.String(), Err: ErrScriptRange}
		return
	}

	u8 = uint8(u32)
	return
}

func (sc *Script) scuOffset(name string, value starlark.Int) (addr uint32, err error) {
	offset, err := toUint32(name, value)
	if err != nil {
		return
	}
	if offset > SCU_WINDOW {
		err = &ErrArgument{Builtin: name, Value: value.String(), Err: ErrScriptRange}
		return
	}

	addr = machine.PROTO1_SCU_BASE + offset
	return
}

func (sc *Script) scuRead(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var off starlark.Int
	if err := starlark.UnpackArgs(b.Name(), args, kwargs, "offset", &off); err != nil {
		return nil, err
	}

	addr, err := sc.scuOffset(b.Name(), off)
	if err != nil {
		return nil, err
	}

	return starlark.MakeUint(uint(sc.Machine.Read(addr))), nil
}

func (sc *Script) scuWrite(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var off, value starlark.Int
	if err := starlark.UnpackArgs(b.Name(), args, kwargs, "offset", &off, "value", &value); err != nil {
		return nil, err
	}

	addr, err := sc.scuOffset(b.Name(), off)
	if err != nil {
		return nil, err
	}

	u8, err := toUint8(b.Name(), value)
	if err != nil {
		return nil, err
	}

	sc.Machine.Write(addr, u8)

	return starlark.None, nil
}

func (sc *Script) irq(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var source starlark.Int
	var level starlark.Value = starlark.True
	if err := starlark.UnpackArgs(b.Name(), args, kwargs, "source", &source, "level?", &level); err != nil {
		return nil, err
	}

	index, err := toUint32(b.Name(), source)
	if err != nil {
		return nil, err
	}

	// Out of range sources reach the SCU, which ignores them.
	sc.Machine.Irq(scu.Source(min(index, math.MaxInt32))).Set(bool(level.Truth()))

	return starlark.None, nil
}

func (sc *Script) reset(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	if err := starlark.UnpackArgs(b.Name(), args, kwargs); err != nil {
		return nil, err
	}

	sc.Machine.Reset()

	return starlark.None, nil
}

func (sc *Script) peek8(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var addr starlark.Int
	if err := starlark.UnpackArgs(b.Name(), args, kwargs, "addr", &addr); err != nil {
		return nil, err
	}

	a32, err := toUint32(b.Name(), addr)
	if err != nil {
		return nil, err
	}

	return starlark.MakeUint(uint(sc.Machine.Read(a32))), nil
}

func (sc *Script) poke8(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var addr, value starlark.Int
	if err := starlark.UnpackArgs(b.Name(), args, kwargs, "addr", &addr, "value", &value); err != nil {
		return nil, err
	}

	a32, err := toUint32(b.Name(), addr)
	if err != nil {
		return nil, err
	}

	u8, err := toUint8(b.Name(), value)
	if err != nil {
		return nil, err
	}

	sc.Machine.Write(a32, u8)

	return starlark.None, nil
}

func (sc *Script) peek32(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var addr starlark.Int
	if err := starlark.UnpackArgs(b.Name(), args, kwargs, "addr", &addr); err != nil {
		return nil, err
	}

	a32, err := toUint32(b.Name(), addr)
	if err != nil {
		return nil, err
	}

	return starlark.MakeUint64(uint64(bus.Read32BE(sc.Machine.Bus, a32))), nil
}

func (sc *Script) poke32(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var addr, value starlark.Int
	if err := starlark.UnpackArgs(b.Name(), args, kwargs, "addr", &addr, "value", &value); err != nil {
		return nil, err
	}

	a32, err := toUint32(b.Name(), addr)
	if err != nil {
		return nil, err
	}

	v32, err := toUint32(b.Name(), value)
	if err != nil {
		return nil, err
	}

	bus.Write32BE(sc.Machine.Bus, a32, v32)

	return starlark.None, nil
}
