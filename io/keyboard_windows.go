package io

import (
	"os"

	"github.com/pkg/errors"
)

// Keyboard reads single characters from standard input. Raw terminal mode is
// not available on this platform, so input is still echoed and line buffered.
type Keyboard struct {
	Device string // Unused.
}

var _ KeyReader = (*Keyboard)(nil)

func (kb *Keyboard) ReadKey() (key rune, err error) {
	var one [1]byte
	_, err = os.Stdin.Read(one[:])
	if err != nil {
		err = errors.Wrap(err, "stdin")
		return
	}

	key = rune(one[0])
	return
}
