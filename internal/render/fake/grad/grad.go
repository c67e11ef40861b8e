// Package grad draws a coordinate gradient for checking a layout: red
// rises left to right, green top to bottom.
package grad

import "github.com/coreman2200/xyshades/internal/render"

type Grad struct {
	render.Base
	name string
	// Blue, when set, sweeps the blue channel with the shared hue.
	Blue bool
}

func New(name string) *Grad {
	g := &Grad{name: name}
	g.SetDelay(50)
	return g
}

func (g *Grad) Name() string { return g.name }

func (g *Grad) Setup(c *render.Canvas) { c.Buf.Clear() }

func (g *Grad) Step(c *render.Canvas) {
	w, h := c.W(), c.H()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			col := render.Color{R: ramp(x, w), G: ramp(y, h)}
			if g.Blue {
				col.B = c.Hue
			}
			c.Set(x, y, col)
		}
	}
}

// Expect is the color Step writes at (x, y) with Blue unset.
func Expect(x, y, w, h int) render.Color {
	return render.Color{R: ramp(x, w), G: ramp(y, h)}
}

func ramp(i, n int) uint8 {
	if n <= 1 {
		return 0
	}
	return uint8(i * 255 / (n - 1))
}
