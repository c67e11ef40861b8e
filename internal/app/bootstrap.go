package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/coreman2200/xyshades/internal/config"
	"github.com/coreman2200/xyshades/internal/layout"
	"github.com/coreman2200/xyshades/internal/render"
	"github.com/coreman2200/xyshades/internal/render/fake/grad"
	"github.com/coreman2200/xyshades/internal/render/post"
	"github.com/coreman2200/xyshades/internal/render/scenes/calib"
	"github.com/coreman2200/xyshades/internal/render/scenes/fill"
	"github.com/coreman2200/xyshades/internal/render/scenes/fireworks"
	"github.com/coreman2200/xyshades/internal/render/scenes/trails"
	"github.com/coreman2200/xyshades/internal/render/scenes/waves"
	"github.com/coreman2200/xyshades/internal/rng"
	"github.com/coreman2200/xyshades/internal/sequence"
)

// Core is the running effects engine: one scheduler, its routines and the
// auto-rotation player.
type Core struct {
	Cfg   *config.Config
	Map   *layout.Mapper
	Sched *render.Scheduler
	Seq   *sequence.SafePlayer

	// OnFrame receives every presented frame from the loop goroutine. out
	// is reused; copy it to keep it.
	OnFrame func(routine string, out []render.Color)
	// OnSwitch is told about every activation, outside the scheduler lock.
	OnSwitch func(index int, name string)
	// OnError receives transport failures.
	OnError func(frame uint64, err error)

	mu       sync.Mutex // guards Cfg fields changed at runtime
	switches chan switchEvent
	out      []render.Color

	cancel context.CancelFunc
	done   chan struct{}
}

type switchEvent struct {
	index int
	name  string
}

// Routines is every routine this build ships, in cycle order, filtered to
// those that can run on m.
func Routines(m *layout.Mapper, cfg *config.Config) []render.Routine {
	var all []render.Routine
	all = append(all, waves.All()...)
	all = append(all, fill.All()...)
	all = append(all, trails.All()...)
	all = append(all, fireworks.New(cfg.Sparks))
	all = append(all,
		calib.New(calib.IndexSweep, 1),
		calib.New(calib.RowSweep, 2),
		calib.New(calib.RGBChannels, 2),
		grad.New("probe"),
	)

	out := all[:0]
	for _, r := range all {
		if !render.Usable(r, m) {
			log.Info().Str("routine", r.Name()).Msg("skipped: layout cannot rotate")
			continue
		}
		out = append(out, r)
	}
	return out
}

// showRoutine reports whether name belongs in the default rotation. Wiring
// checks only run when picked explicitly.
func showRoutine(name string) bool {
	return !strings.HasPrefix(name, "calib_") && name != "probe"
}

// New builds the core without starting the loop. drv may be nil.
func New(cfg *config.Config, drv render.Driver) (*Core, error) {
	m, err := cfg.Mapper()
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	sched, err := render.NewScheduler(m, nil, drv, rng.New(cfg.Seed))
	if err != nil {
		return nil, err
	}
	sched.Post = post.LED(cfg.BrightnessByte(), cfg.Power)
	sched.HueStepMS = int64(cfg.HueStepMS)
	sched.Reseed = cfg.Reseed

	c := &Core{
		Cfg:      cfg,
		Map:      m,
		Sched:    sched,
		switches: make(chan switchEvent, 16),
	}
	sched.OnSwitch = func(i int, name string) {
		select {
		case c.switches <- switchEvent{i, name}:
		default:
			log.Debug().Str("routine", name).Msg("switch queue full")
		}
	}

	var show []string
	for _, r := range Routines(m, cfg) {
		sched.Register(r)
		if showRoutine(r.Name()) {
			show = append(show, r.Name())
		}
	}
	if sched.Reg.Len() == 0 {
		return nil, errors.New("no routines registered")
	}

	c.Seq = sequence.NewSafePlayer(sequence.Hooks{
		Select:        sched.SelectName,
		SetBrightness: sched.SetBrightness,
	})
	prog := sequence.Program{Loop: cfg.Autocycle.Loop, Clips: cfg.Autocycle.Program}
	if len(prog.Clips) == 0 {
		prog = sequence.Uniform(cfg.Autocycle.HoldS, show...)
		prog.Loop = cfg.Autocycle.Loop
	}

	start := cfg.Start
	if err := sched.SelectName(start); err != nil {
		start = sched.Reg.At(0).Name()
		log.Warn().Err(err).Str("fallback", start).Msg("start routine")
		sched.Select(0)
	}

	var loadErr error
	c.Seq.With(func(p *sequence.Player) {
		if loadErr = p.Load(prog); loadErr != nil {
			return
		}
		p.Follow(start)
		if cfg.Autocycle.Enabled {
			p.Start()
		}
	})
	if loadErr != nil && cfg.Autocycle.Enabled {
		return nil, fmt.Errorf("autocycle: %w", loadErr)
	}
	return c, nil
}

// InitCore builds the core and starts its loop; cancel ctx or call Close to
// stop it.
func InitCore(ctx context.Context, cfg *config.Config, drv render.Driver) (*Core, error) {
	c, err := New(cfg, drv)
	if err != nil {
		return nil, err
	}
	ctx, c.cancel = context.WithCancel(ctx)
	c.done = make(chan struct{})
	go func() {
		defer close(c.done)
		c.Run(ctx, cfg.FPS)
	}()
	return c, nil
}

// Close stops a loop started by InitCore and waits for it.
func (c *Core) Close() {
	if c.cancel == nil {
		return
	}
	c.cancel()
	<-c.done
}

// Run polls the scheduler until ctx is done. The poll period is one frame
// at fps, never under 1 ms; routines pace themselves through Delay.
func (c *Core) Run(ctx context.Context, fps int) {
	period := time.Millisecond
	if fps > 0 && time.Second/time.Duration(fps) > period {
		period = time.Second / time.Duration(fps)
	}
	tick := time.NewTicker(period)
	defer tick.Stop()

	start := time.Now()
	last := start
	for {
		select {
		case <-ctx.Done():
			return
		case t := <-tick.C:
			c.Step(t.Sub(start).Milliseconds(), t.Sub(last).Seconds())
			last = t
		}
	}
}

// Step runs one loop iteration at now (ms) with dt seconds since the
// previous one.
func (c *Core) Step(now int64, dt float64) {
	c.drainSwitches()
	c.Seq.With(func(p *sequence.Player) { p.Tick(dt) })

	stepped, err := c.Sched.Tick(now)
	if err != nil {
		frame := c.Sched.Frames()
		log.Warn().Err(err).Uint64("frame", frame).Msg("present failed")
		if c.OnError != nil {
			c.OnError(frame, err)
		}
	}
	if stepped && c.OnFrame != nil {
		c.out = c.Sched.Output(c.out)
		_, name := c.Sched.Active()
		c.OnFrame(name, c.out)
	}
	c.drainSwitches()
}

// drainSwitches keeps the player in step with activations it did not make.
func (c *Core) drainSwitches() {
	for {
		select {
		case ev := <-c.switches:
			c.Seq.With(func(p *sequence.Player) { p.Follow(ev.name) })
			if c.OnSwitch != nil {
				c.OnSwitch(ev.index, ev.name)
			}
		default:
			return
		}
	}
}
