package io

import (
	"errors"

	"github.com/ezrec/chip8/translate"
)

var f = translate.From

var (
	// Input errors
	ErrKeyInvalid = errors.New(f("key invalid"))

	// Program image errors
	ErrRomEmpty    = errors.New(f("rom empty"))
	ErrRomTooLarge = errors.New(f("rom too large"))
)
