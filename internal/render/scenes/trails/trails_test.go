package trails

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coreman2200/xyshades/internal/layout"
	"github.com/coreman2200/xyshades/internal/palette"
	"github.com/coreman2200/xyshades/internal/render"
	"github.com/coreman2200/xyshades/internal/rng"
)

func canvas(seed uint64) *render.Canvas {
	return render.NewCanvas(layout.Default(), rng.New(seed), nil)
}

func TestAllRunWithoutPanics(t *testing.T) {
	for _, r := range All() {
		t.Run(r.Name(), func(t *testing.T) {
			c := canvas(9)
			r.Setup(c)
			for i := 0; i < 500; i++ {
				c.Now = int64(i * 7)
				r.Step(c)
			}
		})
	}
}

func TestRotatingRoutinesNeedRotation(t *testing.T) {
	d := layout.Dim{W: 16, H: 16}
	flat := layout.Must(d, layout.Identity(d), false)
	for _, r := range All() {
		switch r.(type) {
		case *Snow, *Waves, *MatrixConsole:
			assert.False(t, render.Usable(r, flat), r.Name())
		default:
			assert.True(t, render.Usable(r, flat), r.Name())
		}
	}
}

func TestSideRainEntersFromLeft(t *testing.T) {
	c := canvas(1)
	r := NewSideRain()
	r.Setup(c)
	r.Step(c)
	lit := 0
	for y := 0; y < c.H(); y++ {
		if !c.At(0, y).IsBlack() {
			lit++
		}
	}
	assert.Equal(t, 1, lit)
	r.Step(c)
	r.Step(c)
	// earlier drops moved right
	moved := 0
	for y := 0; y < c.H(); y++ {
		if !c.At(2, y).IsBlack() {
			moved++
		}
	}
	assert.Equal(t, 1, moved)
}

func TestConfettiDecays(t *testing.T) {
	c := canvas(2)
	r := NewConfetti()
	r.Setup(c)
	r.Step(c)
	c.Buf.Clear()
	c.Buf.Set(0, palette.White)
	r.Fade = 128
	r.Step(c)
	assert.Less(t, c.Buf.Get(0).R, uint8(255))
}

func TestMatrixHeadFalls(t *testing.T) {
	c := canvas(4)
	r := NewMatrixConsole()
	r.Setup(c)
	c.Buf[c.Map.Rotate(c.XY(3, 0))] = codeHead
	r.Step(c)
	require.Equal(t, codeHead, c.Buf[c.Map.Rotate(c.XY(3, 1))])
	for y := 2; y < c.H(); y++ {
		assert.NotEqual(t, codeHead, c.Buf[c.Map.Rotate(c.XY(3, y))], "row %d", y)
	}
}

func TestSnowClearsEachFrame(t *testing.T) {
	c := canvas(5)
	r := NewSnow()
	r.Setup(c)
	c.Buf.Fill(palette.Red)
	r.Step(c)
	for i, col := range c.Buf.Visible() {
		assert.NotEqual(t, palette.Red, col, "cell %d", i)
	}
}
