package rng

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReseedReplays(t *testing.T) {
	g := New(42)
	first := []int{g.Intn(100), g.Range(16, 150), int(g.Uint8())}
	g.Reseed(42)
	again := []int{g.Intn(100), g.Range(16, 150), int(g.Uint8())}
	assert.Equal(t, first, again)
	assert.Equal(t, uint64(42), g.Seed())
}

func TestBounds(t *testing.T) {
	g := New(1)
	assert.Equal(t, 0, g.Intn(0))
	assert.Equal(t, 5, g.Range(5, 5))
	assert.Equal(t, uint8(0), g.Uint8n(0))
	for i := 0; i < 1000; i++ {
		v := g.Range(-64, 64)
		if v < -64 || v >= 64 {
			t.Fatalf("Range out of bounds: %d", v)
		}
	}
}
