package io

import (
	"encoding/binary"
	"io"
	"os"

	"github.com/pkg/errors"
)

// Rom is an assembled program image: raw 32-bit words, little-endian, with no
// header, length prefix or checksum.
type Rom struct {
	Data []uint32
}

// ReadFrom replaces the image with the words read from r.
func (rom *Rom) ReadFrom(r io.Reader) (n int64, err error) {
	buf, err := io.ReadAll(r)
	n = int64(len(buf))
	if err != nil {
		err = errors.Wrap(err, "rom")
		return
	}

	if len(buf)%4 != 0 {
		err = errors.Wrapf(ErrRomSize, "rom %d bytes", len(buf))
		return
	}

	rom.Data = make([]uint32, len(buf)/4)
	for i := range rom.Data {
		rom.Data[i] = binary.LittleEndian.Uint32(buf[i*4:])
	}

	return
}

// WriteTo writes the image to w.
func (rom *Rom) WriteTo(w io.Writer) (n int64, err error) {
	buf := make([]byte, 0, len(rom.Data)*4)
	for _, word := range rom.Data {
		buf = binary.LittleEndian.AppendUint32(buf, word)
	}

	written, err := w.Write(buf)
	n = int64(written)
	if err != nil {
		err = errors.Wrap(err, "rom")
	}
	return
}

// LoadRom reads a program image from a file.
func LoadRom(fileName string) (rom *Rom, err error) {
	inf, err := os.Open(fileName)
	if err != nil {
		err = errors.Wrap(err, "LoadRom")
		return
	}
	defer inf.Close()

	rom = &Rom{}
	_, err = rom.ReadFrom(inf)
	if err != nil {
		rom = nil
		err = errors.Wrapf(err, "LoadRom %v", fileName)
	}
	return
}

// Save writes the program image to a file, replacing any existing file.
func (rom *Rom) Save(fileName string) (err error) {
	ouf, err := os.Create(fileName)
	if err != nil {
		return errors.Wrap(err, "Save")
	}

	_, err = rom.WriteTo(ouf)
	if err != nil {
		ouf.Close()
		return errors.Wrapf(err, "Save %v", fileName)
	}

	return errors.Wrapf(ouf.Close(), "Save %v", fileName)
}
