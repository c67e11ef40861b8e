package render

import (
	"github.com/coreman2200/xyshades/internal/layout"
	"github.com/coreman2200/xyshades/internal/palette"
)

// Color is one 8-bit RGB cell.
type Color = palette.RGB

// FrameBuffer holds every visible cell plus one trailing sentinel cell that
// absorbs off-grid writes and is never presented.
type FrameBuffer []Color

// NewFrameBuffer allocates n visible cells and the sentinel.
func NewFrameBuffer(n int) FrameBuffer { return make(FrameBuffer, n+1) }

// Visible is the buffer without the sentinel.
func (b FrameBuffer) Visible() []Color { return b[:len(b)-1] }

// Sentinel is the index of the hidden cell.
func (b FrameBuffer) Sentinel() int { return len(b) - 1 }

// Driver is the output transport for presented frames.
type Driver interface {
	Write([]Color) error
}

// Routine is one animation. Setup runs once per activation, before the first
// Step; Step draws exactly one frame and must return promptly. Delay is the
// number of milliseconds to wait before the next Step and may be changed by
// Step itself.
type Routine interface {
	Name() string
	Setup(c *Canvas)
	Step(c *Canvas)
	Delay() int
	Initialized() bool
	SetInitialized(bool)
}

// Base carries the init flag and delay every routine needs. Embed it.
type Base struct {
	initd bool
	delay int
}

func (b *Base) Delay() int            { return b.delay }
func (b *Base) SetDelay(ms int)       { b.delay = ms }
func (b *Base) Initialized() bool     { return b.initd }
func (b *Base) SetInitialized(v bool) { b.initd = v }

// Registry keeps routines in registration order; the order is the cycle
// order.
type Registry struct {
	list   []Routine
	byName map[string]int
}

func NewRegistry() *Registry { return &Registry{byName: map[string]int{}} }

// Register appends rr and returns its index. Registering a name twice
// replaces the routine in place.
func (r *Registry) Register(rr Routine) int {
	if rr == nil {
		return -1
	}
	if i, ok := r.byName[rr.Name()]; ok {
		r.list[i] = rr
		return i
	}
	r.list = append(r.list, rr)
	r.byName[rr.Name()] = len(r.list) - 1
	return len(r.list) - 1
}

func (r *Registry) Get(name string) (Routine, bool) {
	i, ok := r.byName[name]
	if !ok {
		return nil, false
	}
	return r.list[i], true
}

func (r *Registry) Index(name string) (int, bool) { i, ok := r.byName[name]; return i, ok }
func (r *Registry) At(i int) Routine              { return r.list[i] }
func (r *Registry) Len() int                      { return len(r.list) }

func (r *Registry) List() []string {
	out := make([]string, len(r.list))
	for i, rr := range r.list {
		out[i] = rr.Name()
	}
	return out
}

// Rotating is implemented by routines that address cells through
// Mapper.Rotate and so need a mapper built with rotation.
type Rotating interface {
	NeedsRotate() bool
}

// Usable reports whether r can run on m.
func Usable(r Routine, m *layout.Mapper) bool {
	if rr, ok := r.(Rotating); ok && rr.NeedsRotate() {
		return m.CanRotate()
	}
	return true
}
