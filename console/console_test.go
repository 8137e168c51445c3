package console

import (
	"testing"

	"github.com/jroimartin/gocui"
	"github.com/stretchr/testify/assert"
)

func TestUpdater(t *testing.T) {
	assert := assert.New(t)

	var queued int
	up := &updater{update: func(f func(*gocui.Gui) error) {
		queued++
	}}

	assert.True(up.Update(quitLoop))
	assert.Equal(1, queued)

	// After the main loop exits, nothing more is sent to the gui.
	up.Close()
	assert.False(up.Update(quitLoop))
	assert.False(up.Update(func(g *gocui.Gui) error { return nil }))
	assert.Equal(1, queued)
}

func TestQuitLoop(t *testing.T) {
	assert := assert.New(t)

	assert.ErrorIs(quitLoop(nil), gocui.ErrQuit)
	assert.ErrorIs(quit(nil, nil), gocui.ErrQuit)
}
