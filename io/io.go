// Package io provides the console collaborators of the HV1 machine and the
// on-disk format of assembled programs.
//
// Input and Output are the capabilities the machine needs: a blocking numeric
// reader, a blocking single keypress reader, and numeric and character
// writers. Console implements them over an io.Reader and io.Writer, Keyboard
// reads raw keypresses from a terminal, and Script replays canned input.
package io

// Input is the machine's source of values.
type Input interface {
	// ReadNumber blocks until a decimal number is available.
	ReadNumber() (value uint16, err error)
	// ReadKey blocks until a single keypress is available.
	ReadKey() (key rune, err error)
}

// Output is the machine's sink of values.
type Output interface {
	// WriteNumber writes a decimal number, newline terminated.
	WriteNumber(value uint16) error
	// WriteChar writes a single character, with no terminator.
	WriteChar(char uint16) error
}

// KeyReader reads single keypresses.
type KeyReader interface {
	ReadKey() (key rune, err error)
}
