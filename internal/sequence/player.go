package sequence

import (
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"
)

var ErrEmptyProgram = errors.New("program has no clips")

// NewPlayer constructs a Player with provided hooks.
func NewPlayer(h Hooks) *Player {
	return &Player{State: Idle, hooks: h, lastB: -1}
}

// Load replaces the current program. Resets time and state to Idle.
func (p *Player) Load(prog Program) error {
	if len(prog.Clips) == 0 {
		return ErrEmptyProgram
	}
	for i, c := range prog.Clips {
		if c.Routine == "" {
			return fmt.Errorf("clip %d: no routine", i)
		}
		if c.HoldS <= 0 {
			return fmt.Errorf("clip %d (%s): hold must be positive, got %v", i, c.Routine, c.HoldS)
		}
	}
	p.prog = prog
	p.idx = 0
	p.localS = 0
	p.State = Idle
	p.lastB = -1
	return nil
}

func (p *Player) Program() Program { return p.prog }

// Index is the current clip index.
func (p *Player) Index() int { return p.idx }

// Remaining is the hold time left on the current clip.
func (p *Player) Remaining() float64 {
	if len(p.prog.Clips) == 0 {
		return 0
	}
	return p.prog.Clips[p.idx].HoldS - p.localS
}

// Start moves to Running and selects the current clip.
func (p *Player) Start() {
	if p.State == Running || len(p.prog.Clips) == 0 {
		return
	}
	p.State = Running
	p.enter()
}

// Pause pauses playback.
func (p *Player) Pause() {
	if p.State == Running {
		p.State = Paused
	}
}

// Resume resumes playback.
func (p *Player) Resume() {
	if p.State == Paused {
		p.State = Running
	}
}

// Stop stops and rewinds to the first clip. The active routine is left alone.
func (p *Player) Stop() {
	p.State = Idle
	p.idx = 0
	p.localS = 0
}

// Seek jumps to absolute program time t, clamped into the program.
func (p *Player) Seek(t float64) {
	if len(p.prog.Clips) == 0 {
		return
	}
	if t < 0 {
		t = 0
	}
	idx := len(p.prog.Clips) - 1
	acc := 0.0
	for i, c := range p.prog.Clips {
		if t < acc+c.HoldS {
			idx = i
			break
		}
		acc += c.HoldS
	}
	local := t - acc
	if hold := p.prog.Clips[idx].HoldS; local >= hold {
		local = hold
	}
	p.idx = idx
	p.localS = local
	if p.State != Idle {
		p.enter()
	}
}

// Follow resyncs the timer after something other than the player switched
// routines (a cycle request, a button, a control message). If the routine
// is in the program the player jumps to its first clip; either way the hold
// restarts so the new routine gets a full hold.
func (p *Player) Follow(routine string) {
	if len(p.prog.Clips) == 0 {
		return
	}
	if p.prog.Clips[p.idx].Routine == routine {
		return
	}
	for i, c := range p.prog.Clips {
		if c.Routine == routine {
			p.idx = i
			break
		}
	}
	p.localS = 0
}

// Tick advances the hold timer by dt seconds.
func (p *Player) Tick(dt float64) {
	if p.State != Running || len(p.prog.Clips) == 0 || dt <= 0 {
		return
	}
	p.localS += dt
	clip := p.prog.Clips[p.idx]
	p.automate(clip)
	if p.localS >= clip.HoldS {
		p.advanceClip()
	}
}

func (p *Player) automate(clip Clip) {
	if clip.Brightness.Empty() || p.hooks.SetBrightness == nil {
		return
	}
	b := clip.Brightness.At(int64(p.localS * 1000))
	if int(b) != p.lastB {
		p.hooks.SetBrightness(b)
		p.lastB = int(b)
	}
}

func (p *Player) nextIndex() int {
	ni := p.idx + 1
	if ni >= len(p.prog.Clips) {
		if p.prog.Loop {
			return 0
		}
		return -1
	}
	return ni
}

func (p *Player) advanceClip() {
	next := p.nextIndex()
	if next == -1 {
		// end of program: the last routine stays on
		p.State = Idle
		return
	}
	p.idx = next
	p.localS = 0
	p.enter()
}

func (p *Player) enter() {
	clip := p.prog.Clips[p.idx]
	if p.hooks.Select == nil {
		return
	}
	if err := p.hooks.Select(clip.Routine); err != nil {
		log.Warn().Err(err).Str("routine", clip.Routine).Int("clip", p.idx).Msg("sequence: select failed")
	}
}

// SafePlayer serializes access to a Player shared between the render loop
// and control surfaces.
type SafePlayer struct {
	mu sync.Mutex
	P  *Player
}

func NewSafePlayer(h Hooks) *SafePlayer {
	return &SafePlayer{P: NewPlayer(h)}
}

func (s *SafePlayer) With(f func(p *Player)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	f(s.P)
}
