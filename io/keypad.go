package io

const (
	KEY_COUNT = 16 // Keys on the hexadecimal keypad, 0x0 to 0xF.
)

// Keypad is a single-slot latch of the most recently observed key.
type Keypad struct {
	key     uint8
	latched bool
}

// Set replaces the latched key.
func (kp *Keypad) Set(key uint8) (err error) {
	if key >= KEY_COUNT {
		err = ErrKeyInvalid
		return
	}

	kp.key = key
	kp.latched = true

	return
}

// Clear empties the latch.
func (kp *Keypad) Clear() {
	kp.key = 0
	kp.latched = false
}

// Get returns the latched key, if any.
func (kp *Keypad) Get() (key uint8, ok bool) {
	return kp.key, kp.latched
}

// Pressed returns true if the latch holds the given key.
func (kp *Keypad) Pressed(key uint8) bool {
	return kp.latched && kp.key == key
}

// Take returns the latched key, if any, and empties the latch.
func (kp *Keypad) Take() (key uint8, ok bool) {
	key, ok = kp.Get()
	kp.Clear()
	return
}
