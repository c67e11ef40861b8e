// Package fill holds routines that paint whole regions in flat colors.
package fill

import (
	"github.com/coreman2200/xyshades/internal/palette"
	"github.com/coreman2200/xyshades/internal/render"
)

func All() []render.Routine {
	return []render.Routine{
		NewColorFill(), NewThreeDee(), NewXmasThreeDee(),
		NewCheckerboard(), NewGlitter(), NewFlash(),
	}
}

// ColorFill wipes palette colors across the grid, turning a quarter each
// time a wipe completes.
type ColorFill struct {
	render.Base
	color uint8
	row   int
	dir   int
}

func NewColorFill() *ColorFill { return &ColorFill{} }

func (r *ColorFill) Name() string { return "colorfill" }

func (r *ColorFill) Setup(c *render.Canvas) {
	r.SetDelay(45)
	r.color, r.row, r.dir = 0, 0, 0
	c.Palette = palette.Rainbow
}

func (r *ColorFill) Step(c *render.Canvas) {
	col := c.Palette[r.color]
	span := c.H()
	if r.dir&1 == 0 {
		// vertical wipes have fewer rows, go slower
		r.SetDelay(45)
		y := r.row
		if r.dir == 2 {
			y = c.H() - 1 - r.row
		}
		for x := 0; x < c.W(); x++ {
			c.Set(x, y, col)
		}
	} else {
		r.SetDelay(20)
		span = c.W()
		x := r.row
		if r.dir == 3 {
			x = c.W() - 1 - r.row
		}
		for y := 0; y < c.H(); y++ {
			c.Set(x, y, col)
		}
	}

	r.row++
	if r.row >= span {
		r.row = 0
		r.color = (r.color + uint8(c.Rand.Range(3, 6))) % uint8(len(c.Palette))
		r.dir = (r.dir + 1) % 4
		r.SetDelay(300)
	}
}

// ThreeDee imitates anaglyph glasses: blue left, red right, dark bridge.
type ThreeDee struct{ render.Base }

func NewThreeDee() *ThreeDee { return &ThreeDee{} }

func (r *ThreeDee) Name() string           { return "threedee" }
func (r *ThreeDee) Setup(c *render.Canvas) { r.SetDelay(50) }

func (r *ThreeDee) Step(c *render.Canvas) {
	lenses(c, palette.Blue, palette.Red)
	mid := c.W() / 2
	c.Set(mid-2, 0, palette.Black)
	c.Set(mid+1, 0, palette.Black)
}

// XmasThreeDee swaps red and green lenses every step.
type XmasThreeDee struct {
	render.Base
	swap bool
}

func NewXmasThreeDee() *XmasThreeDee { return &XmasThreeDee{} }

func (r *XmasThreeDee) Name() string { return "xmasthreedee" }

func (r *XmasThreeDee) Setup(c *render.Canvas) {
	r.SetDelay(250)
	r.swap = false
}

func (r *XmasThreeDee) Step(c *render.Canvas) {
	r.swap = !r.swap
	if r.swap {
		lenses(c, palette.Red, palette.Green)
	} else {
		lenses(c, palette.Green, palette.Red)
	}
}

func lenses(c *render.Canvas, left, right render.Color) {
	mid := c.W() / 2
	for x := 0; x < c.W(); x++ {
		col := palette.Black
		switch {
		case x < mid-1:
			col = left
		case x > mid:
			col = right
		}
		for y := 0; y < c.H(); y++ {
			c.Set(x, y, col)
		}
	}
}

// checker alternates red and green through black.
var checker = palette.Gradient(
	palette.Stop{Pos: 0, Color: palette.Black},
	palette.Stop{Pos: 63, Color: palette.RGB{R: 255}},
	palette.Stop{Pos: 127, Color: palette.Black},
	palette.Stop{Pos: 191, Color: palette.RGB{G: 255}},
	palette.Stop{Pos: 255, Color: palette.Black},
)

// Checkerboard crossfades two interleaved color phases.
type Checkerboard struct {
	render.Base
	fader uint8
}

func NewCheckerboard() *Checkerboard { return &Checkerboard{} }

func (r *Checkerboard) Name() string { return "checkerboard" }

func (r *Checkerboard) Setup(c *render.Canvas) {
	r.SetDelay(10)
	r.fader = 0
	c.Palette = checker
}

func (r *Checkerboard) Step(c *render.Canvas) {
	r.fader += 2
	one := c.Palette.At(r.fader, 255)
	two := c.Palette.At(r.fader+64, 255)
	for x := 0; x < c.W(); x++ {
		for y := 0; y < c.H(); y++ {
			if (x%2+y)%2 == 1 {
				c.Set(x, y, one)
			} else {
				c.Set(x, y, two)
			}
		}
	}
}

// Glitter is shimmering noise in the shared hue.
type Glitter struct{ render.Base }

func NewGlitter() *Glitter { return &Glitter{} }

func (r *Glitter) Name() string           { return "glitter" }
func (r *Glitter) Setup(c *render.Canvas) { r.SetDelay(15) }

func (r *Glitter) Step(c *render.Canvas) {
	for x := 0; x < c.W(); x++ {
		for y := 0; y < c.H(); y++ {
			c.Set(x, y, palette.HSV(c.Hue, 255, c.Rand.Uint8n(5)*63))
		}
	}
}

// Flash lights one random cell per step in wiring order.
type Flash struct{ render.Base }

func NewFlash() *Flash { return &Flash{} }

func (r *Flash) Name() string           { return "flash" }
func (r *Flash) Setup(c *render.Canvas) { r.SetDelay(50) }

func (r *Flash) Step(c *render.Canvas) {
	c.Buf.FadeToBlackBy(255)
	c.Buf.Set(c.Rand.Intn(c.Map.Count()), palette.White)
}
