package render

import (
	"github.com/coreman2200/xyshades/internal/layout"
)

// Scroll directions for Scroll.
const (
	ScrollRight = 0
	ScrollLeft  = 1
)

func (b FrameBuffer) Clear() { b.Fill(Color{}) }

func (b FrameBuffer) Fill(c Color) {
	for i := range b {
		b[i] = c
	}
}

// FadeToBlackBy dims every visible cell by amount/256.
func (b FrameBuffer) FadeToBlackBy(amount uint8) {
	keep := 255 - amount
	v := b.Visible()
	for i := range v {
		v[i] = v[i].Scale(keep)
	}
}

// ScaleAll multiplies every visible cell by s/256.
func (b FrameBuffer) ScaleAll(s uint8) {
	v := b.Visible()
	for i := range v {
		v[i] = v[i].Scale(s)
	}
}

// Add is a saturating add into cell i.
func (b FrameBuffer) Add(i int, c Color) { b[i] = b[i].Add(c) }

// Blur1D smears every visible cell into its neighbours in wiring order.
// Lossy: repeated application decays toward black.
func (b FrameBuffer) Blur1D(amount uint8) {
	keep := 255 - amount
	seep := amount >> 1
	var carry Color
	v := b.Visible()
	for i := range v {
		cur := v[i]
		part := cur.Scale(seep)
		cur = cur.Scale(keep).Add(carry)
		if i > 0 {
			v[i-1] = v[i-1].Add(part)
		}
		v[i] = cur
		carry = part
	}
}

// Blur2D blurs rows then columns in logical coordinates.
func (b FrameBuffer) Blur2D(m *layout.Mapper, amount uint8) {
	d := m.Dim()
	keep := 255 - amount
	seep := amount >> 1
	for y := 0; y < d.H; y++ {
		var carry Color
		for x := 0; x < d.W; x++ {
			i := m.Map(x, y)
			cur := b[i]
			part := cur.Scale(seep)
			cur = cur.Scale(keep).Add(carry)
			if x > 0 {
				b.Add(m.Map(x-1, y), part)
			}
			b[i] = cur
			carry = part
		}
	}
	for x := 0; x < d.W; x++ {
		var carry Color
		for y := 0; y < d.H; y++ {
			i := m.Map(x, y)
			cur := b[i]
			part := cur.Scale(seep)
			cur = cur.Scale(keep).Add(carry)
			if y > 0 {
				b.Add(m.Map(x, y-1), part)
			}
			b[i] = cur
			carry = part
		}
	}
}

// Scroll shifts every row one column in dir; the vacated column keeps its
// old content.
func (b FrameBuffer) Scroll(m *layout.Mapper, dir int) {
	d := m.Dim()
	for y := 0; y < d.H; y++ {
		if dir == ScrollRight {
			for x := d.W - 1; x > 0; x-- {
				b[m.Map(x, y)] = b[m.Map(x-1, y)]
			}
		} else {
			for x := 0; x < d.W-1; x++ {
				b[m.Map(x, y)] = b[m.Map(x+1, y)]
			}
		}
	}
}

// FadeAll is FadeToBlackBy under the name the trail routines use.
func (b FrameBuffer) FadeAll(amount uint8) { b.FadeToBlackBy(amount) }

func (b FrameBuffer) Set(i int, c Color) { b[i] = c }
func (b FrameBuffer) Get(i int) Color    { return b[i] }
