package console

// KeyMap maps the left side of a QWERTY keyboard onto the hexadecimal keypad.
//
//	1 2 3 4      1 2 3 C
//	q w e r  ->  4 5 6 D
//	a s d f      7 8 9 E
//	z x c v      A 0 B F
var KeyMap = map[rune]uint8{
	'1': 0x1, '2': 0x2, '3': 0x3, '4': 0xC,
	'q': 0x4, 'w': 0x5, 'e': 0x6, 'r': 0xD,
	'a': 0x7, 's': 0x8, 'd': 0x9, 'f': 0xE,
	'z': 0xA, 'x': 0x0, 'c': 0xB, 'v': 0xF,
}

// Key returns the keypad key for a keyboard rune. Upper case letters map
// like their lower case.
func Key(ch rune) (key uint8, ok bool) {
	if ch >= 'A' && ch <= 'Z' {
		ch += 'a' - 'A'
	}

	key, ok = KeyMap[ch]
	return
}
