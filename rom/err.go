package rom

import (
	"errors"

	"github.com/ezrec/ehbc/translate"
)

var f = translate.From

var (
	ErrRomMissing  = errors.New(f("image missing"))
	ErrRomLength   = errors.New(f("image length mismatch"))
	ErrRomChecksum = errors.New(f("image checksum mismatch"))
	ErrRomRegion   = errors.New(f("image outside region"))
)

// ErrRom indicates which image failed to load.
type ErrRom struct {
	Name string
	Err  error
}

func (err *ErrRom) Error() string {
	return f("rom %v: %v", err.Name, err.Err)
}

func (err *ErrRom) Unwrap() error {
	return err.Err
}
