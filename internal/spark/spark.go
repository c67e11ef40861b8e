// Package spark is the burst particle system: a fixed pool of sparks moving
// in 8.8 fixed point, sharing one lifetime counter per burst.
package spark

import (
	"github.com/coreman2200/xyshades/internal/layout"
	"github.com/coreman2200/xyshades/internal/palette"
	"github.com/coreman2200/xyshades/internal/render"
	"github.com/coreman2200/xyshades/internal/rng"
)

// Config holds the burst tunables. Velocities and gravity are in 1/256
// cells per frame; positive y is down the grid.
type Config struct {
	Capacity int `yaml:"capacity"`
	MinLife  int `yaml:"min_life"`
	MaxLife  int `yaml:"max_life"`

	VXMin SAccum88 `yaml:"vx_min"`
	VXMax SAccum88 `yaml:"vx_max"`
	VYMin SAccum88 `yaml:"vy_min"`
	VYMax SAccum88 `yaml:"vy_max"`

	Gravity SAccum88 `yaml:"gravity"`
	// Drag scales velocity by Drag/256 every frame; 255 disables it.
	Drag uint8 `yaml:"drag"`
}

func DefaultConfig() Config {
	return Config{
		Capacity: 20,
		MinLife:  16,
		MaxLife:  150,
		VXMin:    -64,
		VXMax:    64,
		VYMin:    -80,
		VYMax:    32,
		Gravity:  3,
		Drag:     250,
	}
}

func (c Config) normalized() Config {
	d := DefaultConfig()
	if c.Capacity <= 0 {
		c.Capacity = d.Capacity
	}
	if c.MaxLife <= 0 {
		c.MaxLife = d.MaxLife
	}
	if c.MinLife <= 0 || c.MinLife > c.MaxLife {
		c.MinLife = min(d.MinLife, c.MaxLife)
	}
	if c.VXMax < c.VXMin {
		c.VXMin, c.VXMax = c.VXMax, c.VXMin
	}
	if c.VYMax < c.VYMin {
		c.VYMin, c.VYMax = c.VYMax, c.VYMin
	}
	if c.Drag == 0 {
		c.Drag = 255
	}
	return c
}

// Spark is one particle.
type Spark struct {
	X, Y   Accum88
	VX, VY SAccum88
	Color  palette.RGB
	Alive  bool
}

// System is a bounded spark pool. It is owned by one routine and is not
// safe for concurrent use.
type System struct {
	cfg    Config
	dim    layout.Dim
	rand   *rng.RNG
	sparks []Spark

	life  int // remaining frames for the current burst
	start int // life at burst start, for the brightness fade
}

func New(cfg Config, dim layout.Dim, r *rng.RNG) *System {
	cfg = cfg.normalized()
	if r == nil {
		r = rng.New(0)
	}
	return &System{cfg: cfg, dim: dim, rand: r, sparks: make([]Spark, cfg.Capacity)}
}

func (s *System) Config() Config  { return s.cfg }
func (s *System) Sparks() []Spark { return s.sparks }
func (s *System) Life() int       { return s.life }
func (s *System) Capacity() int   { return len(s.sparks) }

// Trigger starts a burst: every slot is respawned at the center of cell
// (x,y) with a random velocity and the shared color, and the lifetime
// counter is drawn from [MinLife, MaxLife].
func (s *System) Trigger(x, y int, c palette.RGB) {
	s.TriggerAt(Cell(x), Cell(y), c)
}

// TriggerAt is Trigger with a fixed-point origin.
func (s *System) TriggerAt(x, y Accum88, c palette.RGB) {
	s.newLife()
	for i := range s.sparks {
		s.sparks[i] = Spark{X: x, Y: y, VX: s.randVX(), VY: s.randVY(), Color: c, Alive: true}
	}
}

// Spawn adds one spark to a free slot. It reports false, and does nothing,
// when the pool is full. A spawn into an empty pool starts a new lifetime
// counter, even if the previous burst's counter has not run out.
func (s *System) Spawn(x, y Accum88, vx, vy SAccum88, c palette.RGB) bool {
	fresh := s.life <= 0 || s.Alive() == 0
	for i := range s.sparks {
		if s.sparks[i].Alive {
			continue
		}
		if fresh {
			s.newLife()
		}
		s.sparks[i] = Spark{X: x, Y: y, VX: vx, VY: vy, Color: c, Alive: true}
		return true
	}
	return false
}

func (s *System) newLife() {
	s.life = s.rand.Range(s.cfg.MinLife, s.cfg.MaxLife+1)
	s.start = s.life
}

func (s *System) randVX() SAccum88 {
	return SAccum88(s.rand.Range(int(s.cfg.VXMin), int(s.cfg.VXMax)+1))
}

func (s *System) randVY() SAccum88 {
	return SAccum88(s.rand.Range(int(s.cfg.VYMin), int(s.cfg.VYMax)+1))
}

// Advance runs one physics frame: position += velocity, gravity is added to
// VY, drag is applied, and the shared counter is decremented. Sparks die
// when the counter reaches zero or they leave the grid.
func (s *System) Advance() {
	if s.life <= 0 {
		s.kill()
		return
	}
	s.life--
	if s.life == 0 {
		s.kill()
		return
	}
	for i := range s.sparks {
		p := &s.sparks[i]
		if !p.Alive {
			continue
		}
		p.X = p.X.Add(p.VX)
		p.Y = p.Y.Add(p.VY)
		p.VY += s.cfg.Gravity
		p.VX = p.VX.Scale(s.cfg.Drag)
		p.VY = p.VY.Scale(s.cfg.Drag)
		if p.X.Int() >= s.dim.W || p.Y.Int() >= s.dim.H {
			p.Alive = false
		}
	}
}

func (s *System) kill() {
	for i := range s.sparks {
		s.sparks[i].Alive = false
	}
}

// Render adds every live spark into buf at its nearest cell, faded by the
// remaining lifetime. Overlapping sparks brighten.
func (s *System) Render(buf render.FrameBuffer, m *layout.Mapper) {
	if s.life <= 0 || s.start <= 0 {
		return
	}
	fade := uint8(s.life * 255 / s.start)
	for _, p := range s.sparks {
		if !p.Alive {
			continue
		}
		buf.Add(m.Map(p.X.Round(), p.Y.Round()), p.Color.Scale(fade))
	}
}

// Alive counts live sparks.
func (s *System) Alive() int {
	n := 0
	for _, p := range s.sparks {
		if p.Alive {
			n++
		}
	}
	return n
}
