// Package fake provides a capturing render.Driver for headless tests.
package fake

import (
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/coreman2200/xyshades/internal/render"
)

// Driver records presented frames and logs a compact summary of each
// (first cell and average) at debug level.
type Driver struct {
	mu    sync.Mutex
	count int
	last  []render.Color

	// Err, when set, is returned from every Write.
	Err error
	// Frames, when non-nil, receives a copy of every frame; full channels drop.
	Frames chan []render.Color
}

func (d *Driver) Write(buf []render.Color) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.Err != nil {
		return d.Err
	}
	d.count++
	d.last = append(d.last[:0], buf...)

	var r, g, b int
	for _, c := range buf {
		r += int(c.R)
		g += int(c.G)
		b += int(c.B)
	}
	n := len(buf)
	if n == 0 {
		n = 1
	}
	ev := log.Debug().Int("frame", d.count).Ints("avg", []int{r / n, g / n, b / n})
	if len(buf) > 0 {
		ev = ev.Ints("first", []int{int(buf[0].R), int(buf[0].G), int(buf[0].B)})
	}
	ev.Msg("fake frame")

	if d.Frames != nil {
		select {
		case d.Frames <- append([]render.Color(nil), buf...):
		default:
		}
	}
	return nil
}

// Count is the number of frames written.
func (d *Driver) Count() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.count
}

// Last returns a copy of the most recent frame.
func (d *Driver) Last() []render.Color {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]render.Color(nil), d.last...)
}
