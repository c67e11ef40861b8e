package render

import (
	"github.com/coreman2200/xyshades/internal/layout"
	"github.com/coreman2200/xyshades/internal/palette"
	"github.com/coreman2200/xyshades/internal/rng"
)

// Canvas is what a routine sees during Setup and Step. It is only valid
// for the duration of the call.
type Canvas struct {
	Buf  FrameBuffer
	Map  *layout.Mapper
	Rand *rng.RNG

	// Now is the tick time in milliseconds.
	Now int64
	// Hue is the shared slowly rotating hue.
	Hue uint8
	// Palette is the current palette; routines may replace it in Setup.
	Palette palette.Palette

	cycle func()
}

func (c *Canvas) W() int { return c.Map.Dim().W }
func (c *Canvas) H() int { return c.Map.Dim().H }

// XY maps a logical coordinate; off-grid lands on the sentinel.
func (c *Canvas) XY(x, y int) int { return c.Map.Map(x, y) }

func (c *Canvas) Set(x, y int, col Color) { c.Buf[c.Map.Map(x, y)] = col }
func (c *Canvas) At(x, y int) Color       { return c.Buf[c.Map.Map(x, y)] }
func (c *Canvas) Add(x, y int, col Color) { c.Buf.Add(c.Map.Map(x, y), col) }

// Cycle asks the scheduler to move to the next routine once this step
// returns. Routines call it when a bounded task is complete.
func (c *Canvas) Cycle() {
	if c.cycle != nil {
		c.cycle()
	}
}

// NewCanvas builds a canvas with its own buffer, for driving routines
// outside a Scheduler. onCycle may be nil.
func NewCanvas(m *layout.Mapper, r *rng.RNG, onCycle func()) *Canvas {
	return &Canvas{
		Buf:     NewFrameBuffer(m.Count()),
		Map:     m,
		Rand:    r,
		Palette: palette.Rainbow,
		cycle:   onCycle,
	}
}
