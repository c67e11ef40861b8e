// Package waves holds the full-frame periodic routines: every cell is
// recomputed each step from a phase counter, so they never depend on the
// previous frame.
package waves

import (
	"math"

	"github.com/coreman2200/xyshades/internal/math8"
	"github.com/coreman2200/xyshades/internal/palette"
	"github.com/coreman2200/xyshades/internal/render"
)

// All returns one of each routine in cycle order.
func All() []render.Routine {
	return []render.Routine{
		NewThreeSine(), NewPlasma(), NewRider(), NewSlantBars(),
		NewSpinPlasma(), NewCandycane(), NewSpiral(),
	}
}

// ThreeSine draws three sine bands, one per channel, at different speeds.
type ThreeSine struct {
	render.Base
	offset uint8
}

func NewThreeSine() *ThreeSine { return &ThreeSine{} }

func (r *ThreeSine) Name() string { return "threesine" }

func (r *ThreeSine) Setup(c *render.Canvas) {
	r.SetDelay(20)
	r.offset = 0
}

func (r *ThreeSine) Step(c *render.Canvas) {
	rowStep := 255 / c.H()
	for x := 0; x < c.W(); x++ {
		for y := 0; y < c.H(); y++ {
			yy := y * rowStep
			dist := func(mul uint8) uint8 {
				return math8.QMul8(math8.Abs8(yy-int(math8.Sin8(r.offset*mul+uint8(x*16)))), 2)
			}
			c.Set(x, y, render.Color{R: 255 - dist(9), G: 255 - dist(10), B: 255 - dist(11)})
		}
	}
	r.offset++
}

// Plasma is a radial hue wave around a slowly orbiting center.
type Plasma struct {
	render.Base
	offset uint8
	vector uint16
}

func NewPlasma() *Plasma { return &Plasma{} }

func (r *Plasma) Name() string { return "plasma" }

func (r *Plasma) Setup(c *render.Canvas) {
	r.SetDelay(10)
	r.offset, r.vector = 0, 0
}

func (r *Plasma) Step(c *render.Canvas) {
	xo := float64(math8.Cos8(uint8(r.vector/256))) - 127
	yo := float64(math8.Sin8(uint8(r.vector/256))) - 127
	cx, cy := center(c)
	for x := 0; x < c.W(); x++ {
		for y := 0; y < c.H(); y++ {
			d := math.Hypot((float64(x)-cx)*10+xo, (float64(y)-cy)*10+yo)
			c.Set(x, y, palette.HSV(math8.Sin8(uint8(int(d)+int(r.offset))), 255, 255))
		}
	}
	r.offset++
	r.vector += 16
}

// SpinPlasma is Plasma drawn from the current palette with a tighter orbit.
type SpinPlasma struct {
	render.Base
	offset uint8
	vector uint16
}

func NewSpinPlasma() *SpinPlasma { return &SpinPlasma{} }

func (r *SpinPlasma) Name() string { return "spinplasma" }

func (r *SpinPlasma) Setup(c *render.Canvas) {
	r.SetDelay(10)
	r.offset, r.vector = 0, 0
	c.Palette = palette.Random(c.Rand)
}

func (r *SpinPlasma) Step(c *render.Canvas) {
	xo := (float64(math8.Cos8(uint8(r.vector))) - 127) / 2
	yo := (float64(math8.Sin8(uint8(r.vector))) - 127) / 2
	cx, cy := center(c)
	for x := 0; x < c.W(); x++ {
		for y := 0; y < c.H(); y++ {
			d := math.Hypot((float64(x)-cx)*12+xo, (float64(y)-cy)*12+yo)
			c.Set(x, y, c.Palette.At(math8.Sin8(uint8(int(d)+int(r.offset))), 255))
		}
	}
	r.offset++
	r.vector++
}

func center(c *render.Canvas) (float64, float64) {
	return float64(c.W()-1) / 2, float64(c.H()-1) / 2
}

// Rider scans a bright column left and right in the shared hue.
type Rider struct {
	render.Base
	pos uint8
}

func NewRider() *Rider { return &Rider{} }

func (r *Rider) Name() string { return "rider" }

func (r *Rider) Setup(c *render.Canvas) {
	r.SetDelay(5)
	r.pos = 0
}

func (r *Rider) Step(c *render.Canvas) {
	colStep := 256 / c.W()
	for x := 0; x < c.W(); x++ {
		b := (x*colStep - int(math8.Triwave8(r.pos))*2 + 127)
		if b < 0 {
			b = -b
		}
		b *= 3
		if b > 255 {
			b = 255
		}
		col := palette.HSV(c.Hue, 255, uint8(255-b))
		for y := 0; y < c.H(); y++ {
			c.Set(x, y, col)
		}
	}
	r.pos++
}

// SlantBars scrolls diagonal bars in the shared hue.
type SlantBars struct {
	render.Base
	pos uint8
}

func NewSlantBars() *SlantBars { return &SlantBars{} }

func (r *SlantBars) Name() string { return "slantbars" }

func (r *SlantBars) Setup(c *render.Canvas) {
	r.SetDelay(5)
	r.pos = 0
}

func (r *SlantBars) Step(c *render.Canvas) {
	for x := 0; x < c.W(); x++ {
		for y := 0; y < c.H(); y++ {
			c.Set(x, y, palette.HSV(c.Hue, 255, math8.Quadwave8(uint8(x*16+y*16)+r.pos)))
		}
	}
	r.pos -= 4
}

// Candycane is SlantBars blended between red and white.
type Candycane struct {
	render.Base
	pos uint8
}

func NewCandycane() *Candycane { return &Candycane{} }

func (r *Candycane) Name() string { return "candycane" }

func (r *Candycane) Setup(c *render.Canvas) {
	r.SetDelay(5)
	r.pos = 0
}

func (r *Candycane) Step(c *render.Canvas) {
	for x := 0; x < c.W(); x++ {
		for y := 0; y < c.H(); y++ {
			c.Set(x, y, palette.Red.Blend(palette.White, math8.Cubicwave8(uint8(x*32+y*32)+r.pos)))
		}
	}
	r.pos -= 4
}

// Spiral draws rising sine bands whose hue drifts with time.
type Spiral struct {
	render.Base
	tick uint8

	Wavelength, HFreq, RFreq int
}

func NewSpiral() *Spiral { return &Spiral{Wavelength: 8, HFreq: 7, RFreq: 4} }

func (r *Spiral) Name() string { return "spiral" }

func (r *Spiral) Setup(c *render.Canvas) {
	r.SetDelay(5)
	r.tick = 0
}

func (r *Spiral) Step(c *render.Canvas) {
	ms := uint16(c.Now)
	for x := 0; x < c.W(); x++ {
		for y := 0; y < c.H(); y++ {
			v := math8.Sin8(uint8(y*r.Wavelength*r.RFreq + int(r.tick) + x*r.Wavelength*r.HFreq))
			// low values flicker on real LEDs
			if v < 15 {
				v = 0
			}
			c.Set(x, y, palette.HSV(uint8(ms/37)+uint8(x*5), 255, v))
		}
	}
	r.tick += 8
}
