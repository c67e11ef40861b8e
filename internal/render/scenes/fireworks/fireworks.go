// Package fireworks drives the spark system: a gray flash at each burst,
// then sparks falling through a fading frame until the burst dies and the
// next one starts.
package fireworks

import (
	"github.com/coreman2200/xyshades/internal/palette"
	"github.com/coreman2200/xyshades/internal/render"
	"github.com/coreman2200/xyshades/internal/spark"
)

type Routine struct {
	render.Base
	cfg  spark.Config
	sys  *spark.System
	boom bool

	// Bursts counts triggered bursts since Setup.
	Bursts int
}

func New(cfg spark.Config) *Routine { return &Routine{cfg: cfg} }

func (r *Routine) Name() string { return "fireworks" }

// System exposes the spark pool of the current activation.
func (r *Routine) System() *spark.System { return r.sys }

func (r *Routine) Setup(c *render.Canvas) {
	r.SetDelay(5)
	r.sys = spark.New(r.cfg, c.Map.Dim(), c.Rand)
	r.boom = false
	r.Bursts = 0
}

func (r *Routine) Step(c *render.Canvas) {
	if r.boom {
		c.Buf.Clear()
		r.boom = false
	} else {
		c.Buf.FadeAll(40)
	}

	r.sys.Advance()
	r.sys.Render(c.Buf, c.Map)

	if r.sys.Alive() == 0 {
		r.burst(c)
	}
}

func (r *Routine) burst(c *render.Canvas) {
	col := palette.HSV(c.Rand.Uint8(), 255, 255)
	x := c.Rand.Range(c.W()/4, c.W()*3/4)
	y := c.Rand.Range(c.H()/3, c.H()/2)
	r.sys.Trigger(x, y, col)
	c.Buf.Fill(palette.Gray)
	r.boom = true
	r.Bursts++
}
