package console

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/chip8/display"
)

func TestKeyMap(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(16, len(KeyMap))

	seen := map[uint8]rune{}
	for ch, key := range KeyMap {
		assert.True(key < 16, "%c", ch)
		_, dup := seen[key]
		assert.False(dup, "%c", ch)
		seen[key] = ch
	}

	key, ok := Key('x')
	assert.True(ok)
	assert.Equal(uint8(0x0), key)

	key, ok = Key('V')
	assert.True(ok)
	assert.Equal(uint8(0xF), key)

	_, ok = Key('p')
	assert.False(ok)
}

func TestCanvas(t *testing.T) {
	assert := assert.New(t)

	con := &Console{}
	con.apply([]display.Pixel{
		{X: 0, Y: 0, Set: true},
		{X: 63, Y: 31, Set: true},
		{X: 5, Y: 1, Set: true},
	})
	con.apply([]display.Pixel{
		{X: 0, Y: 0, Set: false},
	})

	lines := strings.Split(strings.TrimSuffix(con.text(), "\n"), "\n")
	assert.Equal(display.HEIGHT, len(lines))
	for _, line := range lines {
		assert.Equal(2*display.WIDTH, len([]rune(line)))
	}

	assert.Equal("  ", string([]rune(lines[0])[0:2]))
	assert.Equal("██", string([]rune(lines[1])[10:12]))
	assert.Equal("██", string([]rune(lines[31])[126:128]))
}
