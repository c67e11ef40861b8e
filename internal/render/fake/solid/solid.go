// Package solid is a single-color routine used to exercise the scheduler
// and transports.
package solid

import (
	"github.com/coreman2200/xyshades/internal/math8"
	"github.com/coreman2200/xyshades/internal/render"
)

// Solid fills every visible cell with one color. With PulseBPM > 0 the
// brightness follows a sine beat.
type Solid struct {
	render.Base
	name string
	C    render.Color

	PulseBPM uint16

	Setups, Steps int
}

func New(name string, c render.Color, delayMS int) *Solid {
	s := &Solid{name: name, C: c}
	s.SetDelay(delayMS)
	return s
}

func (s *Solid) Name() string { return s.name }

func (s *Solid) Setup(*render.Canvas) { s.Setups++ }

func (s *Solid) Step(c *render.Canvas) {
	s.Steps++
	col := s.C
	if s.PulseBPM > 0 {
		col = col.Scale(math8.Beatsin8(s.PulseBPM, 64, 255, c.Now))
	}
	c.Buf.Fill(col)
}

// Presets are the named colors New accepts through Preset.
var Presets = map[string]render.Color{
	"red":   {R: 255},
	"green": {G: 255},
	"blue":  {B: 255},
	"white": {R: 255, G: 255, B: 255},
	"black": {},
}

// Preset returns a Solid named after a preset color.
func Preset(name string, delayMS int) (*Solid, bool) {
	c, ok := Presets[name]
	if !ok {
		return nil, false
	}
	return New("solid_"+name, c, delayMS), true
}
