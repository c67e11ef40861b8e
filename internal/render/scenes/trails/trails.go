// Package trails holds the accumulating routines. They never clear the
// frame; old content decays through fading or lossy blurring, so the
// previous frame is part of their input.
package trails

import (
	"github.com/coreman2200/xyshades/internal/math8"
	"github.com/coreman2200/xyshades/internal/palette"
	"github.com/coreman2200/xyshades/internal/render"
)

func All() []render.Routine {
	return []render.Routine{
		NewSideRain(), NewConfetti(), NewSnow(), NewBlur(),
		NewBlur2(), NewWaves(), NewMatrixConsole(),
	}
}

// SideRain scrolls the frame and drops one new pixel in the entry column.
type SideRain struct {
	render.Base
	Dir int
}

func NewSideRain() *SideRain { return &SideRain{Dir: render.ScrollRight} }

func (r *SideRain) Name() string           { return "siderain" }
func (r *SideRain) Setup(c *render.Canvas) { r.SetDelay(30) }

func (r *SideRain) Step(c *render.Canvas) {
	c.Buf.Scroll(c.Map, r.Dir)
	x := (c.W() - 1) * r.Dir
	for y := 0; y < c.H(); y++ {
		c.Set(x, y, palette.Black)
	}
	c.Set(x, c.Rand.Intn(c.H()), palette.HSV(c.Hue, 255, 255))
}

// Confetti scatters palette colors over a fading frame.
type Confetti struct {
	render.Base
	Fade uint8
}

func NewConfetti() *Confetti { return &Confetti{Fade: 8} }

func (r *Confetti) Name() string { return "confetti" }

func (r *Confetti) Setup(c *render.Canvas) {
	r.SetDelay(10)
	c.Palette = palette.Random(c.Rand)
}

func (r *Confetti) Step(c *render.Canvas) {
	c.Buf.FadeAll(r.Fade)
	for i := 0; i < 4; i++ {
		c.Set(c.Rand.Intn(c.W()), c.Rand.Intn(c.H()), c.Palette.At(c.Rand.Uint8(), 255))
	}
}

// Snow drops white flakes down each column with sub-cell smoothing. It
// draws in the rotated orientation.
type Snow struct {
	render.Base
	cols []int
}

func NewSnow() *Snow { return &Snow{} }

func (r *Snow) NeedsRotate() bool { return true }

func (r *Snow) Name() string { return "snow" }

func (r *Snow) Setup(c *render.Canvas) {
	r.SetDelay(20)
	r.cols = make([]int, c.W())
}

func (r *Snow) Step(c *render.Canvas) {
	c.Buf.Clear()
	h := c.H()
	for i := range r.cols {
		if r.cols[i] > 0 {
			r.cols[i] += c.Rand.Range(4, 16)
		} else if c.Rand.Intn(100) == 0 {
			r.cols[i] = 1
		}
		y := r.cols[i] >> 8
		rem := uint8(r.cols[i])
		// y-1 is off grid for y == 0 and lands on the sentinel
		if y <= h {
			c.Buf.Set(c.Map.Rotate(c.XY(i, y-1)), palette.White.Scale(math8.Dim8Raw(255-rem)))
		}
		if y < h {
			c.Buf.Set(c.Map.Rotate(c.XY(i, y)), palette.White.Scale(math8.Dim8Raw(rem)))
		}
		if y > h {
			r.cols[i] = 0
		}
	}
}

// Blur draws six mirrored Lissajous points into a constantly blurred frame.
type Blur struct{ render.Base }

func NewBlur() *Blur { return &Blur{} }

func (r *Blur) Name() string           { return "blur" }
func (r *Blur) Setup(c *render.Canvas) { r.SetDelay(10) }

func (r *Blur) Step(c *render.Canvas) {
	c.Buf.Blur2D(c.Map, math8.Beatsin8(2, 10, 255, c.Now))

	// beatsin can reach W or H; those writes land on the sentinel
	i := int(math8.Beatsin8(27, 0, uint8(c.H()), c.Now))
	j := int(math8.Beatsin8(41, 0, uint8(c.W()), c.Now))
	ni := c.W() - 1 - i
	nj := c.W() - 1 - j

	ms := uint16(c.Now)
	c.Add(i, j, palette.HSV(uint8(ms/11), 200, 255))
	c.Add(j, i, palette.HSV(uint8(ms/13), 200, 255))
	c.Add(ni, nj, palette.HSV(uint8(ms/17), 200, 255))
	c.Add(nj, ni, palette.HSV(uint8(ms/29), 200, 255))
	c.Add(i, nj, palette.HSV(uint8(ms/37), 200, 255))
	c.Add(ni, j, palette.HSV(uint8(ms/41), 200, 255))
}

// Blur2 is Blur with three points on a fixed light blur.
type Blur2 struct{ render.Base }

func NewBlur2() *Blur2 { return &Blur2{} }

func (r *Blur2) Name() string           { return "blur2" }
func (r *Blur2) Setup(c *render.Canvas) { r.SetDelay(10) }

func (r *Blur2) Step(c *render.Canvas) {
	c.Buf.Blur2D(c.Map, math8.Dim8Raw(math8.Beatsin8(3, 64, 64, c.Now)))

	side := uint16(min(c.W(), c.H()))
	i := int(math8.Beatsin16(91/2, 0, side, c.Now))
	j := int(math8.Beatsin16(109/2, 0, side, c.Now))
	k := int(math8.Beatsin16(73/2, 0, side, c.Now))

	ms := uint16(c.Now)
	c.Add(i, j, palette.HSV(uint8(ms/29), 200, 255))
	c.Add(j, k, palette.HSV(uint8(ms/41), 200, 255))
	c.Add(k, i, palette.HSV(uint8(ms/73), 200, 255))
}

// Waves treats the grid as one strip: 1D blur plus four points wandering
// along the wiring order, drawn rotated.
type Waves struct{ render.Base }

func NewWaves() *Waves { return &Waves{} }

func (r *Waves) NeedsRotate() bool { return true }

func (r *Waves) Name() string           { return "waves" }
func (r *Waves) Setup(c *render.Canvas) { r.SetDelay(5) }

func (r *Waves) Step(c *render.Canvas) {
	c.Buf.Blur1D(math8.Dim8Raw(math8.Beatsin8(3, 64, 192, c.Now)))

	n := uint16(c.Map.Count())
	i := int(math8.Beatsin16(9, 0, n, c.Now))
	j := int(math8.Beatsin16(7, 0, n, c.Now))
	k := int(math8.Beatsin16(5, 0, n, c.Now))

	ms := uint16(c.Now)
	rot := c.Map.Rotate
	c.Buf.Set(rot((i+j)/2), palette.HSV(uint8(ms/29), 200, 255))
	c.Buf.Set(rot((j+k)/2), palette.HSV(uint8(ms/41), 200, 255))
	c.Buf.Set(rot((k+i)/2), palette.HSV(uint8(ms/73), 200, 255))
	c.Buf.Set(rot((k+i+j)/3), palette.HSV(uint8(ms/53), 200, 255))
}

var (
	codeHead  = render.Color{R: 175, G: 255, B: 175}
	codeTrail = render.Color{R: 27, G: 130, B: 39}
)

// MatrixConsole drops falling code heads that leave green trails.
type MatrixConsole struct{ render.Base }

func NewMatrixConsole() *MatrixConsole { return &MatrixConsole{} }

func (r *MatrixConsole) NeedsRotate() bool { return true }

func (r *MatrixConsole) Name() string           { return "matrix" }
func (r *MatrixConsole) Setup(c *render.Canvas) { r.SetDelay(75) }

func (r *MatrixConsole) Step(c *render.Canvas) {
	at := func(x, y int) int { return c.Map.Rotate(c.XY(x, y)) }

	// bottom row first so a head moves at most once per step
	for y := c.H() - 1; y >= 0; y-- {
		for x := 0; x < c.W(); x++ {
			if c.Buf[at(x, y)] != codeHead {
				continue
			}
			c.Buf[at(x, y)] = codeTrail
			if y < c.H()-1 {
				c.Buf[at(x, y+1)] = codeHead
			}
		}
	}

	empty := true
	v := c.Buf.Visible()
	for i := range v {
		if v[i].G != 255 {
			v[i] = v[i].Scale(192)
		}
		if !v[i].IsBlack() {
			empty = false
		}
	}

	if empty || c.Rand.Intn(3) == 0 {
		c.Buf[at(c.Rand.Intn(c.W()), 0)] = codeHead
	}
}
