package palette

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type fixed int

func (f fixed) Intn(n int) int { return int(f) % n }

func TestPackedRoundTrip(t *testing.T) {
	c := RGB{0x12, 0x34, 0x56}
	assert.Equal(t, uint32(0x123456), c.Packed())
	assert.Equal(t, c, FromPacked(0x123456))
}

func TestHSVPrimaries(t *testing.T) {
	assert.Equal(t, RGB{255, 0, 0}, HSV(0, 255, 255))
	assert.Equal(t, RGB{0, 0, 0}, HSV(100, 255, 0))
	assert.Equal(t, RGB{255, 255, 255}, HSV(40, 0, 255))
}

func TestAddSaturates(t *testing.T) {
	assert.Equal(t, RGB{255, 130, 0}, RGB{200, 100, 0}.Add(RGB{100, 30, 0}))
}

func TestPaletteAtAnchorsAndBrightness(t *testing.T) {
	assert.Equal(t, Heat[0], Heat.At(0, 255))
	assert.Equal(t, Heat[15], Heat.At(240, 255))
	assert.Equal(t, Black, Heat.At(0, 128))
	mid := Heat.At(8, 255)
	assert.True(t, mid.R > Heat[0].R && mid.R < Heat[1].R, "blended %v", mid)
	assert.Equal(t, Black, Heat.At(240, 0))
}

func TestGradientCheckerMap(t *testing.T) {
	p := Gradient(
		Stop{0, Black},
		Stop{63, Red},
		Stop{127, Black},
		Stop{191, RGB{0, 255, 0}},
		Stop{255, Black},
	)
	assert.Equal(t, Black, p[0])
	assert.Equal(t, Black, p[15])
	assert.True(t, p[4].R > 200, "expected red near 63, got %v", p[4])
}

func TestRandomIsStockPalette(t *testing.T) {
	assert.Equal(t, Rainbow, Random(fixed(0)))
	assert.Equal(t, Heat, Random(fixed(6)))
}
