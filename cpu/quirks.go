package cpu

// KeyLatch selects when instructions empty the keypad latch.
type KeyLatch int

//go:generate go tool stringer -linecomment -type=KeyLatch
const (
	KEY_LATCH_CONSUME_WAIT = KeyLatch(0) // wait
	KEY_LATCH_PERSIST      = KeyLatch(1) // persist
	KEY_LATCH_CONSUME_ALL  = KeyLatch(2) // all
)

// ParseKeyLatch returns the KeyLatch for its String() name.
func ParseKeyLatch(name string) (mode KeyLatch, err error) {
	for mode = range KEY_LATCH_CONSUME_ALL + 1 {
		if mode.String() == name {
			return
		}
	}

	err = ErrKeyLatchInvalid
	return
}

// Quirks selects between the behaviours of historical interpreters.
// The zero value is the default compatibility mode.
type Quirks struct {
	// ShiftSourceY makes SHR and SHL shift Vy into Vx, instead of
	// shifting Vx in place.
	ShiftSourceY bool
	// IndexStatic leaves I unchanged after LD [I], Vx and LD Vx, [I],
	// instead of advancing it by x+1.
	IndexStatic bool
	// KeyLatch selects which key instructions empty the latch.
	KeyLatch KeyLatch
}
