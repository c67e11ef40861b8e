// Package math8 is fixed-width 8/16-bit integer math for LED animation:
// saturating arithmetic, scaling, and periodic wave shapes over a 0..255
// phase. Everything here is deterministic and float-free at call time.
package math8

import "math"

var sinLUT [256]uint8

func init() {
	for i := 0; i < 256; i++ {
		v := 128 + 127*math.Sin(float64(i)*2*math.Pi/256)
		sinLUT[i] = uint8(math.Round(v))
	}
}

// Sin8 is a sine over one 0..255 period, centered at 128.
func Sin8(theta uint8) uint8 { return sinLUT[theta] }

// Cos8 is Sin8 shifted a quarter period.
func Cos8(theta uint8) uint8 { return sinLUT[theta+64] }

// Sin16 returns a signed sine over one 0..65535 period.
func Sin16(theta uint16) int16 {
	return int16(32767 * math.Sin(float64(theta)*2*math.Pi/65536))
}

// Scale8 scales i by scale/256, where scale 255 leaves i unchanged.
func Scale8(i, scale uint8) uint8 {
	return uint8((uint16(i) * (1 + uint16(scale))) >> 8)
}

// Scale8Video is Scale8 that never scales a non-zero value to zero.
func Scale8Video(i, scale uint8) uint8 {
	j := uint8((uint16(i) * uint16(scale)) >> 8)
	if i != 0 && scale != 0 {
		j++
	}
	return j
}

func Scale16(i, scale uint16) uint16 {
	return uint16((uint32(i) * (1 + uint32(scale))) >> 16)
}

// QAdd8 adds with saturation at 255.
func QAdd8(a, b uint8) uint8 {
	s := uint16(a) + uint16(b)
	if s > 255 {
		return 255
	}
	return uint8(s)
}

// QSub8 subtracts with saturation at 0.
func QSub8(a, b uint8) uint8 {
	if b > a {
		return 0
	}
	return a - b
}

// QMul8 multiplies with saturation at 255.
func QMul8(a, b uint8) uint8 {
	p := uint16(a) * uint16(b)
	if p > 255 {
		return 255
	}
	return uint8(p)
}

// Abs8 is the absolute value of a signed byte, returned unsigned.
func Abs8(i int) uint8 {
	if i < 0 {
		i = -i
	}
	if i > 255 {
		return 255
	}
	return uint8(i)
}

// Dim8Raw is a cheap gamma-ish curve, x*x/256.
func Dim8Raw(x uint8) uint8 { return Scale8(x, x) }

// Triwave8 rises 0..254 over the first half period and falls back.
func Triwave8(in uint8) uint8 {
	if in&0x80 != 0 {
		in = 255 - in
	}
	return in << 1
}

// Ease8InOutQuad is quadratic ease-in/out over 0..255.
func Ease8InOutQuad(i uint8) uint8 {
	j := i
	if j&0x80 != 0 {
		j = 255 - j
	}
	jj := Scale8(j, j)
	jj2 := jj << 1
	if i&0x80 != 0 {
		jj2 = 255 - jj2
	}
	return jj2
}

// Ease8InOutCubic is smoothstep over 0..255.
func Ease8InOutCubic(i uint8) uint8 {
	ii := Scale8(i, i)
	iii := Scale8(ii, i)
	r1 := 3*uint16(ii) - 2*uint16(iii)
	if r1&0x100 != 0 {
		return 255
	}
	return uint8(r1)
}

// Quadwave8 is a triangle wave with quadratic easing, close to a sine.
func Quadwave8(in uint8) uint8 { return Ease8InOutQuad(Triwave8(in)) }

// Cubicwave8 is a triangle wave with cubic easing; flatter peaks.
func Cubicwave8(in uint8) uint8 { return Ease8InOutCubic(Triwave8(in)) }

// Blend8 mixes a toward b by amount/255.
func Blend8(a, b, amount uint8) uint8 {
	return uint8((uint16(a)*uint16(255-amount) + uint16(b)*uint16(amount) + 255) >> 8)
}

// Beat16 is a sawtooth that completes bpm cycles per minute at time ms.
// bpm values of 256 and above are read as 8.8 fixed point.
func Beat16(bpm uint16, ms int64) uint16 {
	b := uint64(bpm)
	if b < 256 {
		b <<= 8
	}
	return uint16((uint64(ms) * b * 280) >> 16)
}

func Beat8(bpm uint16, ms int64) uint8 { return uint8(Beat16(bpm, ms) >> 8) }

// Beatsin8 oscillates between low and high at bpm.
func Beatsin8(bpm uint16, low, high uint8, ms int64) uint8 {
	s := Sin8(Beat8(bpm, ms))
	return low + Scale8(s, high-low)
}

// Beatsin16 oscillates between low and high at bpm.
func Beatsin16(bpm uint16, low, high uint16, ms int64) uint16 {
	s := uint16(int32(Sin16(Beat16(bpm, ms))) + 32768)
	return low + Scale16(s, high-low)
}
