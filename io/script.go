package io

import (
	"io"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Script is a canned Input, and a recording Output.
type Script struct {
	Numbers []uint16 // Values returned by ReadNumber, in order.
	Keys    []rune   // Values returned by ReadKey, in order.

	Written strings.Builder // Everything written.
}

var _ Input = (*Script)(nil)
var _ Output = (*Script)(nil)

// ReadNumber returns the next canned number, or io.EOF.
func (sc *Script) ReadNumber() (value uint16, err error) {
	if len(sc.Numbers) == 0 {
		err = io.EOF
		return
	}

	value = sc.Numbers[0]
	sc.Numbers = sc.Numbers[1:]
	return
}

// ReadKey returns the next canned key, or io.EOF.
func (sc *Script) ReadKey() (key rune, err error) {
	if len(sc.Keys) == 0 {
		err = io.EOF
		return
	}

	key = sc.Keys[0]
	sc.Keys = sc.Keys[1:]
	return
}

func (sc *Script) WriteNumber(value uint16) error {
	sc.Written.WriteString(strconv.FormatUint(uint64(value), 10))
	sc.Written.WriteByte('\n')
	return nil
}

func (sc *Script) WriteChar(char uint16) error {
	sc.Written.WriteString(string(utf8.AppendRune(nil, rune(char))))
	return nil
}

// String returns everything written so far.
func (sc *Script) String() string {
	return sc.Written.String()
}
