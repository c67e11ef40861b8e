package waves

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/coreman2200/xyshades/internal/layout"
	"github.com/coreman2200/xyshades/internal/palette"
	"github.com/coreman2200/xyshades/internal/render"
	"github.com/coreman2200/xyshades/internal/rng"
)

func run(r render.Routine, prefill render.Color, steps int) []render.Color {
	c := render.NewCanvas(layout.Default(), rng.New(1), nil)
	c.Buf.Fill(prefill)
	r.Setup(c)
	for i := 0; i < steps; i++ {
		c.Now = int64(i * 10)
		c.Hue = uint8(i)
		r.Step(c)
	}
	return append([]render.Color(nil), c.Buf.Visible()...)
}

// Full-frame routines ignore what was in the buffer before.
func TestIndependentOfPreviousFrame(t *testing.T) {
	for _, r := range All() {
		t.Run(r.Name(), func(t *testing.T) {
			a := run(r, palette.Black, 5)
			b := run(r, palette.Magenta, 5)
			assert.Equal(t, a, b)
		})
	}
}

func TestDelaysArePositive(t *testing.T) {
	for _, r := range All() {
		run(r, palette.Black, 1)
		assert.Positive(t, r.Delay(), r.Name())
	}
}

func TestThreeSineIsLit(t *testing.T) {
	out := run(NewThreeSine(), palette.Black, 1)
	lit := 0
	for _, c := range out {
		if !c.IsBlack() {
			lit++
		}
	}
	assert.Greater(t, lit, len(out)/2)
}

func TestUniqueNames(t *testing.T) {
	seen := map[string]bool{}
	for _, r := range All() {
		assert.False(t, seen[r.Name()], r.Name())
		seen[r.Name()] = true
	}
}

// Re-entering a routine replays its first frames exactly, including the
// ones that read the shared hue.
func TestReentryReplaysFirstFrames(t *testing.T) {
	s, err := render.NewScheduler(layout.Default(), nil, nil, rng.New(9))
	assert.NoError(t, err)
	s.Reseed = true
	s.Register(NewSlantBars())
	s.Register(NewThreeSine())

	frame := func(base int64) []render.Color {
		s.Select(0)
		s.Tick(base)
		s.Tick(base + 5)
		s.Tick(base + 97)
		return s.Snapshot(nil)
	}
	first := frame(0)
	s.Select(1)
	s.Tick(1000)
	second := frame(1000)

	lit := 0
	for _, c := range first {
		if !c.IsBlack() {
			lit++
		}
	}
	assert.Positive(t, lit)
	assert.Equal(t, first, second)
}
