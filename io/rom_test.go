package io

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRom_WriteTo(t *testing.T) {
	assert := assert.New(t)

	rom := &Rom{Data: []uint32{0x00050083, 0x0000000e, 0x00000000}}

	buf := &bytes.Buffer{}
	n, err := rom.WriteTo(buf)
	assert.NoError(err)
	assert.Equal(int64(12), n)
	assert.Equal([]byte{
		0x83, 0x00, 0x05, 0x00,
		0x0e, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x00,
	}, buf.Bytes())
}

func TestRom_ReadFrom(t *testing.T) {
	assert := assert.New(t)

	rom := &Rom{}
	n, err := rom.ReadFrom(bytes.NewReader([]byte{0x83, 0x00, 0x05, 0x00, 0x0e, 0x00, 0x00, 0x00}))
	assert.NoError(err)
	assert.Equal(int64(8), n)
	assert.Equal([]uint32{0x00050083, 0x0000000e}, rom.Data)

	_, err = rom.ReadFrom(bytes.NewReader([]byte{1, 2, 3}))
	assert.ErrorIs(err, ErrRomSize)
}

func TestRom_SaveLoad(t *testing.T) {
	assert := assert.New(t)

	path := filepath.Join(t.TempDir(), "prog.bin")

	rom := &Rom{Data: []uint32{0xdeadbeef, 0x12345678}}
	assert.NoError(rom.Save(path))

	loaded, err := LoadRom(path)
	assert.NoError(err)
	assert.Equal(rom.Data, loaded.Data)

	_, err = LoadRom(filepath.Join(t.TempDir(), "missing.bin"))
	assert.Error(err)
}
