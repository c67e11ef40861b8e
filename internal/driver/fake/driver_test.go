package fake

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/coreman2200/xyshades/internal/render"
)

func TestDriverCaptures(t *testing.T) {
	d := &Driver{Frames: make(chan []render.Color, 1)}
	frame := []render.Color{{R: 10}, {G: 20}}
	assert.NoError(t, d.Write(frame))
	frame[0].R = 99

	assert.Equal(t, 1, d.Count())
	assert.Equal(t, uint8(10), d.Last()[0].R)
	got := <-d.Frames
	assert.Equal(t, uint8(20), got[1].G)

	// channel full: dropped, not blocked
	assert.NoError(t, d.Write(frame))
	assert.NoError(t, d.Write(frame))
	assert.Equal(t, 3, d.Count())
}

func TestDriverError(t *testing.T) {
	d := &Driver{Err: errors.New("unplugged")}
	assert.Error(t, d.Write(nil))
	assert.Equal(t, 0, d.Count())
}
