package io

import (
	"errors"

	"github.com/ezrec/hv1/translate"
)

var f = translate.From

var (
	ErrNoInput  = errors.New(f("no input attached"))
	ErrNoOutput = errors.New(f("no output attached"))
	ErrRomSize  = errors.New(f("rom size not a multiple of 4"))
)

// ErrNumber is an input word that does not parse as a 16-bit decimal number.
type ErrNumber string

func (err ErrNumber) Error() string {
	return f("'%v' is not a number", string(err))
}
