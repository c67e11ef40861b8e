package layout

import "fmt"

// Serpentine holds row flip behavior for zig-zag wired panels.
type Serpentine struct {
	FlipEveryRow bool
	// FlipFirst starts the flip on row 0 instead of row 1.
	FlipFirst bool
}

// Identity is the plain row-major table, table[i] = i.
func Identity(d Dim) []int {
	out := make([]int, d.Count())
	for i := range out {
		out[i] = i
	}
	return out
}

// Transposed wires the strip down each column: logical (x,y) sits at x*H+y.
// This is the stock 16x16 shades table.
func Transposed(d Dim) []int {
	out := make([]int, d.Count())
	for y := 0; y < d.H; y++ {
		for x := 0; x < d.W; x++ {
			out[y*d.W+x] = x*d.H + y
		}
	}
	return out
}

// BuildSerpentine produces a row-major table where alternate rows run
// right to left.
func BuildSerpentine(d Dim, s Serpentine) []int {
	out := make([]int, d.Count())
	for y := 0; y < d.H; y++ {
		flip := s.FlipEveryRow && (y%2 == 1) != s.FlipFirst
		for x := 0; x < d.W; x++ {
			xx := x
			if flip {
				xx = d.W - 1 - x
			}
			out[y*d.W+x] = y*d.W + xx
		}
	}
	return out
}

// Build resolves a table by name. "table" requires an explicit table.
func Build(kind string, d Dim, explicit []int) ([]int, error) {
	switch kind {
	case "", "identity":
		return Identity(d), nil
	case "transposed":
		return Transposed(d), nil
	case "serpentine":
		return BuildSerpentine(d, Serpentine{FlipEveryRow: true}), nil
	case "table":
		if len(explicit) == 0 {
			return nil, fmt.Errorf("layout: kind %q needs an explicit table", kind)
		}
		return explicit, nil
	default:
		return nil, fmt.Errorf("layout: unknown kind %q", kind)
	}
}
