package machine

import (
	"errors"

	"github.com/ezrec/ehbc/translate"
)

var f = translate.From

var (
	// Configuration errors
	ErrConfigRam     = errors.New(f("ram size invalid"))
	ErrConfigIoMode  = errors.New(f("io mode invalid"))
	ErrConfigColumns = errors.New(f("columns invalid"))

	// Wiring errors
	ErrWindowUnknown     = errors.New(f("window unknown"))
	ErrPeripheralUnknown = errors.New(f("peripheral unknown"))

	// State errors
	ErrStateMachine = errors.New(f("state is for another machine"))
)

// ErrConfig indicates the configuration key that failed to validate.
type ErrConfig struct {
	Key string
	Err error
}

func (err *ErrConfig) Error() string {
	return f("config %v: %v", err.Key, err.Err)
}

func (err *ErrConfig) Unwrap() error {
	return err.Err
}

// ErrName indicates a window or peripheral name that is not wired.
type ErrName struct {
	Name string
	Err  error
}

func (err *ErrName) Error() string {
	return f("%v: %v", err.Name, err.Err)
}

func (err *ErrName) Unwrap() error {
	return err.Err
}
