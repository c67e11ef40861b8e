package grad

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coreman2200/xyshades/internal/layout"
	"github.com/coreman2200/xyshades/internal/render"
	"github.com/coreman2200/xyshades/internal/rng"
)

func TestGradFollowsMapper(t *testing.T) {
	dim := layout.Dim{W: 4, H: 3}
	m, err := layout.New(dim, layout.BuildSerpentine(dim, layout.Serpentine{FlipEveryRow: true}), false)
	require.NoError(t, err)
	c := render.NewCanvas(m, rng.New(1), nil)

	g := New("probe")
	g.Setup(c)
	g.Step(c)

	assert.Equal(t, render.Color{R: 255, G: 0}, c.Buf[m.Map(3, 0)])
	assert.Equal(t, render.Color{R: 0, G: 255}, c.Buf[m.Map(0, 2)])
	for y := 0; y < dim.H; y++ {
		for x := 0; x < dim.W; x++ {
			assert.Equal(t, Expect(x, y, dim.W, dim.H), c.At(x, y))
		}
	}
	assert.True(t, c.Buf[m.Sentinel()].IsBlack())
}
