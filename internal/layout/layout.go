// Package layout maps logical (col,row) grid coordinates onto the physical
// LED wiring order.
//
// Every lookup is total: coordinates outside the grid resolve to the sentinel
// slot, one past the last visible LED. The sentinel is a real buffer cell, so
// callers can write through Map without bounds checks.
package layout

import (
	"errors"
	"fmt"
)

// Grid dimensions of the shades matrix.
const (
	Width  = 16
	Height = 16
	N      = Width * Height
)

var (
	ErrTableLength = errors.New("layout: table length does not match grid")
	ErrTableEntry  = errors.New("layout: table entry out of range")
	ErrNotSquare   = errors.New("layout: rotation requires a square grid")
	ErrBadDim      = errors.New("layout: invalid dimensions")
)

type Dim struct{ W, H int }

// Count is the number of visible cells.
func (d Dim) Count() int { return d.W * d.H }

// Mapper holds an immutable permutation table. Entries need not form a
// bijection: "holes" (logical cells without a visible LED) still land on a
// valid slot.
type Mapper struct {
	dim    Dim
	table  []int
	rotate bool
}

// New validates table and returns a Mapper. When rotate is set the grid must
// be square, since Rotate swaps the axes of a row-major index.
func New(dim Dim, table []int, rotate bool) (*Mapper, error) {
	if dim.W <= 0 || dim.H <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrBadDim, dim.W, dim.H)
	}
	n := dim.Count()
	if len(table) != n {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrTableLength, len(table), n)
	}
	for i, v := range table {
		if v < 0 || v >= n {
			return nil, fmt.Errorf("%w: table[%d]=%d not in [0,%d)", ErrTableEntry, i, v, n)
		}
	}
	if rotate && dim.W != dim.H {
		return nil, fmt.Errorf("%w: %dx%d", ErrNotSquare, dim.W, dim.H)
	}
	t := make([]int, n)
	copy(t, table)
	return &Mapper{dim: dim, table: t, rotate: rotate}, nil
}

// Must is New that panics on a malformed table.
func Must(dim Dim, table []int, rotate bool) *Mapper {
	m, err := New(dim, table, rotate)
	if err != nil {
		panic(err)
	}
	return m
}

// Default is the 16x16 shades grid with an identity table.
func Default() *Mapper {
	d := Dim{W: Width, H: Height}
	return Must(d, Identity(d), true)
}

func (m *Mapper) Dim() Dim { return m.dim }

// Count is the number of visible cells (excluding the sentinel).
func (m *Mapper) Count() int { return len(m.table) }

// Sentinel is the hidden slot that absorbs out-of-range lookups.
func (m *Mapper) Sentinel() int { return len(m.table) }

// Map returns the physical index for (col,row), or Sentinel() when the
// coordinate is off the grid.
func (m *Mapper) Map(col, row int) int {
	if col < 0 || col >= m.dim.W || row < 0 || row >= m.dim.H {
		return len(m.table)
	}
	return m.table[row*m.dim.W+col]
}

// CanRotate reports whether Rotate may be called.
func (m *Mapper) CanRotate() bool { return m.rotate }

// Rotate reinterprets a row-major index as column-major, i.e. a 90 degree
// transpose of the traversal order. Only valid on square grids; the mapper
// must have been built with rotate enabled. The sentinel and any index
// outside [0,N) map to the sentinel.
func (m *Mapper) Rotate(i int) int {
	if !m.rotate {
		panic("layout: Rotate called on a mapper built without rotation")
	}
	n := len(m.table)
	if i < 0 || i >= n {
		return n
	}
	w := m.dim.W
	return i/w + (i%w)*w
}

// Table returns a copy of the permutation table.
func (m *Mapper) Table() []int {
	out := make([]int, len(m.table))
	copy(out, m.table)
	return out
}
