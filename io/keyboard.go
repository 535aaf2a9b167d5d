//go:build !windows

package io

import (
	"github.com/pkg/errors"
	"github.com/pkg/term"
)

// Keyboard reads single keypresses from a terminal device, in raw mode and
// without echo. The terminal is restored after every key.
type Keyboard struct {
	Device string // Terminal device, /dev/tty if empty.
}

var _ KeyReader = (*Keyboard)(nil)

func (kb *Keyboard) ReadKey() (key rune, err error) {
	device := kb.Device
	if device == "" {
		device = "/dev/tty"
	}

	tty, err := term.Open(device, term.RawMode)
	if err != nil {
		err = errors.Wrap(err, device)
		return
	}
	defer func() {
		tty.Restore()
		tty.Close()
	}()

	var one [1]byte
	_, err = tty.Read(one[:])
	if err != nil {
		err = errors.Wrap(err, device)
		return
	}

	key = rune(one[0])
	return
}
