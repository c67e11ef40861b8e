package fireworks

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coreman2200/xyshades/internal/layout"
	"github.com/coreman2200/xyshades/internal/palette"
	"github.com/coreman2200/xyshades/internal/render"
	"github.com/coreman2200/xyshades/internal/rng"
	"github.com/coreman2200/xyshades/internal/spark"
)

func TestBurstFlashThenClear(t *testing.T) {
	c := render.NewCanvas(layout.Default(), rng.New(11), nil)
	r := New(spark.DefaultConfig())
	r.Setup(c)

	r.Step(c)
	require.Equal(t, 1, r.Bursts)
	assert.Equal(t, palette.Gray, c.Buf.Get(0))
	assert.Equal(t, r.System().Capacity(), r.System().Alive())

	r.Step(c)
	lit := 0
	for _, col := range c.Buf.Visible() {
		if !col.IsBlack() {
			lit++
		}
	}
	// only spark cells survive the clear after the flash
	assert.Positive(t, lit)
	assert.LessOrEqual(t, lit, r.System().Capacity())
}

func TestBurstsRepeat(t *testing.T) {
	cfg := spark.DefaultConfig()
	c := render.NewCanvas(layout.Default(), rng.New(12), nil)
	r := New(cfg)
	r.Setup(c)
	for i := 0; i < cfg.MaxLife*3+3; i++ {
		r.Step(c)
	}
	assert.GreaterOrEqual(t, r.Bursts, 3)
}

func TestSetupResets(t *testing.T) {
	c := render.NewCanvas(layout.Default(), rng.New(13), nil)
	r := New(spark.DefaultConfig())
	r.Setup(c)
	r.Step(c)
	r.Setup(c)
	assert.Zero(t, r.Bursts)
	assert.Zero(t, r.System().Alive())
}
