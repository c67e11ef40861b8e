package app

import (
	"fmt"

	"github.com/coreman2200/xyshades/internal/config"
	"github.com/coreman2200/xyshades/internal/render"
	"github.com/coreman2200/xyshades/internal/sequence"
)

// The methods below are the control surface shared by the websocket
// handler, the terminal keys and the hardware buttons.

// Select activates routine i, rejecting out-of-range indexes.
func (c *Core) Select(i int) error {
	if n := c.Sched.Reg.Len(); i < 0 || i >= n {
		return fmt.Errorf("routine index %d out of range [0,%d)", i, n)
	}
	c.Sched.Select(i)
	return nil
}

// SelectName activates a routine by name.
func (c *Core) SelectName(name string) error { return c.Sched.SelectName(name) }

// Next is the cycle event.
func (c *Core) Next() { c.Sched.Next() }

func (c *Core) Brightness() uint8 { return c.Sched.Brightness() }

func (c *Core) SetBrightness(b uint8) {
	c.Sched.SetBrightness(b)
	c.mu.Lock()
	c.Cfg.Brightness = float64(b) / 255
	c.mu.Unlock()
}

// StepBrightness moves to the next brightness step, wrapping.
func (c *Core) StepBrightness() {
	c.SetBrightness(render.NextBrightness(c.Brightness()))
}

func (c *Core) Autocycle() bool {
	on := false
	c.Seq.With(func(p *sequence.Player) { on = p.State == sequence.Running })
	return on
}

// SetAutocycle pauses or resumes the rotation. Resuming keeps the active
// routine and restarts its hold.
func (c *Core) SetAutocycle(on bool) {
	_, name := c.Sched.Active()
	c.Seq.With(func(p *sequence.Player) {
		switch {
		case !on:
			p.Pause()
		case p.State == sequence.Paused:
			p.Follow(name)
			p.Resume()
		default:
			p.Start()
		}
	})
	c.mu.Lock()
	c.Cfg.Autocycle.Enabled = on
	c.mu.Unlock()
}

func (c *Core) Routines() []string { return c.Sched.Reg.List() }

func (c *Core) Active() (int, string) { return c.Sched.Active() }

// Snapshot returns a copy of the current config for saving.
func (c *Core) Snapshot() config.Config {
	c.mu.Lock()
	defer c.mu.Unlock()
	return *c.Cfg
}
