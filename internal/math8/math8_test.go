package math8

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSaturatingArithmetic(t *testing.T) {
	assert.Equal(t, uint8(255), QAdd8(200, 100))
	assert.Equal(t, uint8(150), QAdd8(100, 50))
	assert.Equal(t, uint8(0), QSub8(10, 20))
	assert.Equal(t, uint8(255), QMul8(16, 16))
	assert.Equal(t, uint8(30), QMul8(15, 2))
}

func TestScale8(t *testing.T) {
	assert.Equal(t, uint8(255), Scale8(255, 255))
	assert.Equal(t, uint8(0), Scale8(255, 0))
	assert.Equal(t, uint8(127), Scale8(255, 127))
	assert.Equal(t, uint8(1), Scale8Video(1, 1))
	assert.Equal(t, uint8(0), Scale8Video(0, 200))
}

func TestWaveShapes(t *testing.T) {
	assert.Equal(t, uint8(128), Sin8(0))
	assert.Equal(t, uint8(255), Sin8(64))
	assert.Equal(t, uint8(1), Sin8(192))
	assert.Equal(t, Sin8(64), Cos8(0))

	assert.Equal(t, uint8(0), Triwave8(0))
	assert.Equal(t, uint8(254), Triwave8(127))
	assert.Equal(t, uint8(0), Triwave8(255))

	assert.Equal(t, uint8(0), Quadwave8(0))
	assert.Equal(t, uint8(0), Cubicwave8(0))
	assert.True(t, Quadwave8(128) > 250)
}

func TestBlend8Endpoints(t *testing.T) {
	for _, a := range []uint8{0, 1, 100, 255} {
		assert.Equal(t, a, Blend8(a, a, 77))
	}
	assert.Equal(t, uint8(255), Blend8(0, 255, 255))
}

func TestBeatsinStaysInRange(t *testing.T) {
	for ms := int64(0); ms < 20000; ms += 7 {
		v := Beatsin8(27, 0, 16, ms)
		if v > 16 {
			t.Fatalf("Beatsin8 at %d = %d", ms, v)
		}
		w := Beatsin16(9, 0, 256, ms)
		if w > 256 {
			t.Fatalf("Beatsin16 at %d = %d", ms, w)
		}
	}
}
