package io

import (
	"errors"

	"github.com/ezrec/ehbc/translate"
)

var f = translate.From

var (
	// Image errors
	ErrImageReadOnly = errors.New(f("image is read-only"))
)
