package script

import (
	"errors"

	"github.com/ezrec/ehbc/translate"
)

var f = translate.From

var (
	ErrScriptRange  = errors.New(f("value out of range"))
	ErrScriptDefine = errors.New(f("define not an integer"))
)

// ErrScript indicates the script that failed, and why.
type ErrScript struct {
	Filename string
	Err      error
}

func (err *ErrScript) Error() string {
	return f("%v: %v", err.Filename, err.Err)
}

func (err *ErrScript) Unwrap() error {
	return err.Err
}

// ErrArgument indicates a builtin argument that could not be used.
type ErrArgument struct {
	Builtin string
	Value   string
	Err     error
}

func (err *ErrArgument) Error() string {
	return f("%v(%v): %v", err.Builtin, err.Value, err.Err)
}

func (err *ErrArgument) Unwrap() error {
	return err.Err
}
