package io

import (
	"bufio"
	"io"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Console reads whitespace separated numbers and raw characters from an
// io.Reader, and writes numbers and characters to an io.Writer.
type Console struct {
	Input  io.Reader
	Output io.Writer
	Keys   KeyReader // If set, keypresses come from here instead of Input.

	reader     *bufio.Reader
	readerFrom io.Reader
}

var _ Input = (*Console)(nil)
var _ Output = (*Console)(nil)

// buffered returns a buffered reader over Input, rebuilt if Input changed.
func (con *Console) buffered() (rd *bufio.Reader, err error) {
	if con.Input == nil {
		err = ErrNoInput
		return
	}

	if con.reader == nil || con.readerFrom != con.Input {
		con.reader = bufio.NewReader(con.Input)
		con.readerFrom = con.Input
	}

	rd = con.reader
	return
}

// ReadNumber skips leading whitespace, then reads one word and parses it as
// an unsigned decimal number.
func (con *Console) ReadNumber() (value uint16, err error) {
	rd, err := con.buffered()
	if err != nil {
		return
	}

	var word strings.Builder
	for {
		var r rune
		r, _, err = rd.ReadRune()
		if err == io.EOF && word.Len() > 0 {
			err = nil
			break
		}
		if err != nil {
			return
		}
		if unicode.IsSpace(r) {
			if word.Len() == 0 {
				continue
			}
			break
		}
		word.WriteRune(r)
	}

	v64, err := strconv.ParseUint(word.String(), 10, 16)
	if err != nil {
		err = ErrNumber(word.String())
		return
	}

	value = uint16(v64)
	return
}

// ReadKey reads a single character.
func (con *Console) ReadKey() (key rune, err error) {
	if con.Keys != nil {
		return con.Keys.ReadKey()
	}

	rd, err := con.buffered()
	if err != nil {
		return
	}

	key, _, err = rd.ReadRune()
	return
}

// WriteNumber writes the decimal value, and a newline.
func (con *Console) WriteNumber(value uint16) (err error) {
	if con.Output == nil {
		err = ErrNoOutput
		return
	}

	buf := strconv.AppendUint(nil, uint64(value), 10)
	buf = append(buf, '\n')
	_, err = con.Output.Write(buf)
	return
}

// WriteChar writes the character, UTF-8 encoded.
func (con *Console) WriteChar(char uint16) (err error) {
	if con.Output == nil {
		err = ErrNoOutput
		return
	}

	buf := utf8.AppendRune(nil, rune(char))
	_, err = con.Output.Write(buf)
	return
}
