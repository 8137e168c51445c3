package io

import (
	"io"
)

const (
	ROM_LIMIT = 0x1000 - 0x200 // Largest image that fits above the interpreter area.
)

// Rom is a CHIP-8 program image, loaded verbatim at the program start address.
type Rom struct {
	Data []byte
}

var _ io.ReaderFrom = (*Rom)(nil)

// ReadFrom replaces the image with the contents of the reader.
func (rom *Rom) ReadFrom(r io.Reader) (n int64, err error) {
	data, err := io.ReadAll(io.LimitReader(r, ROM_LIMIT+1))
	n = int64(len(data))
	if err != nil {
		return
	}

	switch {
	case len(data) == 0:
		err = ErrRomEmpty
		return
	case len(data) > ROM_LIMIT:
		err = ErrRomTooLarge
		return
	}

	rom.Data = data

	return
}

// Len returns the image size in bytes.
func (rom *Rom) Len() int {
	return len(rom.Data)
}
