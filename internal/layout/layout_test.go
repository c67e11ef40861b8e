package layout

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var grid = Dim{W: Width, H: Height}

func TestIdentityCorners(t *testing.T) {
	m := Default()
	assert.Equal(t, 0, m.Map(0, 0))
	assert.Equal(t, 255, m.Map(15, 15))
	assert.Equal(t, 256, m.Map(16, 0))
	assert.Equal(t, 256, m.Map(0, 16))
	assert.Equal(t, 256, m.Sentinel())
}

func TestMapInRangeIsStableAndValid(t *testing.T) {
	for _, kind := range []string{"identity", "transposed", "serpentine"} {
		table, err := Build(kind, grid, nil)
		require.NoError(t, err)
		m := Must(grid, table, true)
		for y := 0; y < Height; y++ {
			for x := 0; x < Width; x++ {
				i := m.Map(x, y)
				if i < 0 || i >= N {
					t.Fatalf("%s: Map(%d,%d)=%d out of range", kind, x, y, i)
				}
				if j := m.Map(x, y); j != i {
					t.Fatalf("%s: Map(%d,%d) not stable: %d vs %d", kind, x, y, i, j)
				}
			}
		}
	}
}

func TestMapOutOfRangeIsSentinel(t *testing.T) {
	m := Must(grid, Transposed(grid), true)
	for _, c := range [][2]int{
		{-1, 0}, {0, -1}, {Width, 0}, {0, Height}, {-100, 500}, {1 << 20, 3},
	} {
		assert.Equal(t, m.Sentinel(), m.Map(c[0], c[1]), "Map(%d,%d)", c[0], c[1])
	}
}

func TestEveryPhysicalIndexReachable(t *testing.T) {
	for _, kind := range []string{"identity", "transposed", "serpentine"} {
		table, err := Build(kind, grid, nil)
		require.NoError(t, err)
		m := Must(grid, table, false)
		seen := make([]bool, N)
		for y := 0; y < Height; y++ {
			for x := 0; x < Width; x++ {
				seen[m.Map(x, y)] = true
			}
		}
		for i, ok := range seen {
			assert.True(t, ok, "%s: physical index %d unreachable", kind, i)
		}
	}
}

func TestTransposedMatchesShadesTable(t *testing.T) {
	m := Must(grid, Transposed(grid), false)
	assert.Equal(t, 16, m.Map(1, 0))
	assert.Equal(t, 1, m.Map(0, 1))
	assert.Equal(t, 241, m.Map(15, 1))
}

func TestSerpentineFlipsOddRows(t *testing.T) {
	d := Dim{W: 4, H: 2}
	m := Must(d, BuildSerpentine(d, Serpentine{FlipEveryRow: true}), false)
	assert.Equal(t, []int{0, 1, 2, 3, 7, 6, 5, 4}, m.Table())
}

func TestNewRejectsMalformedTables(t *testing.T) {
	tests := []struct {
		name   string
		dim    Dim
		table  []int
		rotate bool
		want   error
	}{
		{"short", grid, make([]int, N-1), false, ErrTableLength},
		{"long", grid, make([]int, N+1), false, ErrTableLength},
		{"negative", Dim{W: 2, H: 1}, []int{0, -1}, false, ErrTableEntry},
		{"too big", Dim{W: 2, H: 1}, []int{0, 2}, false, ErrTableEntry},
		{"rotate non-square", Dim{W: 16, H: 5}, Identity(Dim{W: 16, H: 5}), true, ErrNotSquare},
		{"zero dim", Dim{W: 0, H: 5}, nil, false, ErrBadDim},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.dim, tt.table, tt.rotate)
			if !errors.Is(err, tt.want) {
				t.Fatalf("want %v, got %v", tt.want, err)
			}
		})
	}
}

func TestHolesAreAllowed(t *testing.T) {
	d := Dim{W: 2, H: 2}
	m, err := New(d, []int{0, 0, 3, 3}, false)
	require.NoError(t, err)
	assert.Equal(t, 0, m.Map(1, 0))
	assert.Equal(t, 4, m.Map(2, 0))
}

func TestRotateIsBijection(t *testing.T) {
	m := Default()
	seen := make(map[int]bool, N)
	for i := 0; i < N; i++ {
		r := m.Rotate(i)
		require.True(t, r >= 0 && r < N, "Rotate(%d)=%d", i, r)
		seen[r] = true
		assert.Equal(t, i, m.Rotate(r), "rotate twice should be identity")
	}
	assert.Len(t, seen, N)
	assert.Equal(t, m.Sentinel(), m.Rotate(m.Sentinel()))
	assert.Equal(t, 16, m.Rotate(1))
}

func TestRotateWithoutSupportPanics(t *testing.T) {
	m := Must(grid, Identity(grid), false)
	assert.Panics(t, func() { m.Rotate(3) })
}

func TestNewCopiesTable(t *testing.T) {
	table := Identity(grid)
	m := Must(grid, table, false)
	table[0] = 99
	assert.Equal(t, 0, m.Map(0, 0))
}

func TestBuildUnknownKind(t *testing.T) {
	_, err := Build("spiral", grid, nil)
	assert.Error(t, err)
	_, err = Build("table", grid, nil)
	assert.Error(t, err)
}
