// Package calib holds wiring checks. Each plan runs a bounded number of
// passes and then asks the scheduler to move on.
package calib

import (
	"github.com/coreman2200/xyshades/internal/palette"
	"github.com/coreman2200/xyshades/internal/render"
)

type Kind string

const (
	// IndexSweep lights one LED at a time in wiring order.
	IndexSweep Kind = "index_sweep"
	// RowSweep lights one logical row at a time through the mapper, so a
	// wrong table shows as a broken line.
	RowSweep Kind = "row_sweep"
	// RGBChannels flashes the whole grid red, green, blue.
	RGBChannels Kind = "rgb_channels"
)

type Runner struct {
	render.Base
	kind    Kind
	repeats int

	step int
	pass int
}

// New returns a runner that completes after repeats passes (minimum 1).
func New(kind Kind, repeats int) *Runner {
	if repeats < 1 {
		repeats = 1
	}
	return &Runner{kind: kind, repeats: repeats}
}

func (r *Runner) Name() string { return "calib_" + string(r.kind) }
func (r *Runner) Kind() Kind   { return r.kind }
func (r *Runner) Pass() int    { return r.pass }

func (r *Runner) Setup(c *render.Canvas) {
	r.step, r.pass = 0, 0
	switch r.kind {
	case RGBChannels:
		r.SetDelay(500)
	case RowSweep:
		r.SetDelay(150)
	default:
		r.SetDelay(20)
	}
}

func (r *Runner) Step(c *render.Canvas) {
	c.Buf.Clear()
	var frames int
	switch r.kind {
	case IndexSweep:
		frames = c.Map.Count()
		c.Buf.Set(r.step, palette.White)
	case RowSweep:
		frames = c.H()
		for x := 0; x < c.W(); x++ {
			c.Set(x, r.step, palette.RGB{G: 255, B: 255})
		}
	case RGBChannels:
		frames = 3
		col := [3]render.Color{{R: 255}, {G: 255}, {B: 255}}[r.step]
		c.Buf.Fill(col)
	default:
		c.Cycle()
		return
	}

	r.step++
	if r.step < frames {
		return
	}
	r.step = 0
	r.pass++
	if r.pass >= r.repeats {
		c.Cycle()
	}
}
