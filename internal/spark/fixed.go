package spark

// Accum88 is an unsigned 8.8 fixed-point position: the high byte is the grid
// cell, the low byte the fraction. Arithmetic wraps at 256 cells, so a
// particle moving left of 0 lands at a large coordinate and fails the next
// bounds check instead of corrupting anything.
type Accum88 uint16

// SAccum88 is a signed 8.8 velocity in cells per frame.
type SAccum88 int16

const One88 = 1 << 8

// Cell returns the 8.8 position of the center of cell i.
func Cell(i int) Accum88 { return Accum88(uint16(i)<<8 | 0x80) }

// Add integrates one frame of velocity, wrapping.
func (a Accum88) Add(v SAccum88) Accum88 { return a + Accum88(uint16(v)) }

// Int truncates to the containing cell.
func (a Accum88) Int() int { return int(a >> 8) }

// Round returns the nearest cell; 255.5 and above round to 256.
func (a Accum88) Round() int { return int((uint32(a) + 0x80) >> 8) }

// Scale multiplies v by s/256, the drag step. It truncates toward zero so
// drag settles both directions at rest.
func (v SAccum88) Scale(s uint8) SAccum88 {
	if s == 255 {
		return v
	}
	return SAccum88((int32(v) * int32(s)) / 256)
}
