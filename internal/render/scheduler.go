package render

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/coreman2200/xyshades/internal/layout"
	"github.com/coreman2200/xyshades/internal/palette"
	"github.com/coreman2200/xyshades/internal/rng"
)

// ErrUnknownRoutine is returned by SelectName for unregistered names.
var ErrUnknownRoutine = errors.New("unknown routine")

// Scheduler owns the shared frame buffer and runs at most one routine at a
// time. Tick is driven by an external clock in milliseconds.
//
// The scheduler is Inactive until the first Select. Selecting a routine
// clears the init flag of both the outgoing and the incoming routine, so a
// routine always runs Setup again when it is re-entered.
type Scheduler struct {
	mu sync.Mutex

	Map  *layout.Mapper
	Reg  *Registry
	Drv  Driver
	Post Post

	// HueStepMS is how often Canvas.Hue advances; 0 freezes it. The hue
	// restarts at 0 on every activation.
	HueStepMS int64
	// Reseed restores the random source to its seed on every activation,
	// making a routine's output replayable.
	Reseed bool

	// OnSwitch is called with the lock held after every activation.
	// It must not call back into the scheduler.
	OnSwitch func(index int, name string)

	buf    FrameBuffer
	out    []Color
	rand   *rng.RNG
	canvas Canvas

	active   int
	lastRun  int64
	now      int64
	hueBase  int64
	cycleReq bool

	// metrics of the last stepped frame
	Last struct {
		Frames    uint64
		StepMS    float64
		PostMS    float64
		WriteErrs uint64
	}
}

// NewScheduler allocates the frame buffer for m. drv may be nil.
func NewScheduler(m *layout.Mapper, reg *Registry, drv Driver, r *rng.RNG) (*Scheduler, error) {
	if m == nil {
		return nil, errors.New("mapper is nil")
	}
	if reg == nil {
		reg = NewRegistry()
	}
	if r == nil {
		r = rng.New(0)
	}
	s := &Scheduler{
		Map:       m,
		Reg:       reg,
		Drv:       drv,
		Post:      DefaultPost(),
		HueStepMS: 30,
		buf:       NewFrameBuffer(m.Count()),
		out:       make([]Color, m.Count()),
		rand:      r,
		active:    -1,
	}
	s.canvas = Canvas{
		Buf:     s.buf,
		Map:     m,
		Rand:    r,
		Palette: palette.Rainbow,
		cycle:   func() { s.cycleReq = true },
	}
	return s, nil
}

// Register appends a routine to the cycle order.
func (s *Scheduler) Register(r Routine) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Reg.Register(r)
}

// Select activates routine i. An index outside the registry is a
// programming error and panics.
func (s *Scheduler) Select(i int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selectLocked(i)
}

// SelectName activates a routine by name.
func (s *Scheduler) SelectName(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i, ok := s.Reg.Index(name)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownRoutine, name)
	}
	s.selectLocked(i)
	return nil
}

// Next is the cycle event: advance to the following routine, wrapping.
// From Inactive it activates routine 0.
func (s *Scheduler) Next() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextLocked()
}

func (s *Scheduler) nextLocked() {
	n := s.Reg.Len()
	if n == 0 {
		panic("render: cycle with no routines registered")
	}
	s.selectLocked((s.active + 1) % n)
}

func (s *Scheduler) selectLocked(i int) {
	n := s.Reg.Len()
	if i < 0 || i >= n {
		panic(fmt.Sprintf("render: routine index %d out of range [0,%d)", i, n))
	}
	if s.active >= 0 {
		s.Reg.At(s.active).SetInitialized(false)
	}
	next := s.Reg.At(i)
	next.SetInitialized(false)
	s.active = i
	s.lastRun = s.now
	s.cycleReq = false
	log.Debug().Int("index", i).Str("routine", next.Name()).Msg("routine activated")
	if s.OnSwitch != nil {
		s.OnSwitch(i, next.Name())
	}
}

// Deactivate returns to the Inactive state.
func (s *Scheduler) Deactivate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active >= 0 {
		s.Reg.At(s.active).SetInitialized(false)
	}
	s.active = -1
}

// Active reports the active index and name; -1 when inactive.
func (s *Scheduler) Active() (int, string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active < 0 {
		return -1, ""
	}
	return s.active, s.Reg.At(s.active).Name()
}

// Tick advances the scheduler clock to now. A routine that is not yet
// initialized runs Setup first; Step runs when now >= lastRun+Delay().
// It reports whether a frame was stepped. A non-nil error is a transport
// failure; the frame itself was still stepped.
func (s *Scheduler) Tick(now int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.now = now
	if s.active < 0 {
		return false, nil
	}
	r := s.Reg.At(s.active)
	c := &s.canvas
	c.Now = now
	if !r.Initialized() {
		if s.Reseed {
			s.rand.Reseed(s.rand.Seed())
		}
		s.hueBase = now
		c.Hue = 0
		s.buf.Clear()
		c.Palette = palette.Rainbow
		r.Setup(c)
		r.SetInitialized(true)
	}
	c.Hue = s.hueAt(now)
	if now < s.lastRun+int64(r.Delay()) {
		return false, nil
	}
	s.lastRun = now

	start := time.Now()
	r.Step(c)
	s.Last.StepMS = float64(time.Since(start).Microseconds()) / 1000.0
	s.Last.Frames++

	if s.cycleReq {
		s.cycleReq = false
		s.nextLocked()
	}
	return true, s.presentLocked()
}

// hueAt derives the hue from time since activation, so it neither drifts
// with the poll period nor carries over from the previous routine.
func (s *Scheduler) hueAt(now int64) uint8 {
	if s.HueStepMS <= 0 || now <= s.hueBase {
		return 0
	}
	return uint8((now - s.hueBase) / s.HueStepMS)
}

func (s *Scheduler) presentLocked() error {
	start := time.Now()
	copy(s.out, s.buf.Visible())
	s.Post.Apply(s.out)
	s.Last.PostMS = float64(time.Since(start).Microseconds()) / 1000.0
	if s.Drv == nil {
		return nil
	}
	if err := s.Drv.Write(s.out); err != nil {
		s.Last.WriteErrs++
		return fmt.Errorf("present frame %d: %w", s.Last.Frames, err)
	}
	return nil
}

// Snapshot copies the visible cells of the raw frame into dst (grown as
// needed) without the output stage.
func (s *Scheduler) Snapshot(dst []Color) []Color {
	s.mu.Lock()
	defer s.mu.Unlock()
	v := s.buf.Visible()
	if cap(dst) < len(v) {
		dst = make([]Color, len(v))
	}
	dst = dst[:len(v)]
	copy(dst, v)
	return dst
}

// Output copies the last presented frame into dst.
func (s *Scheduler) Output(dst []Color) []Color {
	s.mu.Lock()
	defer s.mu.Unlock()
	if cap(dst) < len(s.out) {
		dst = make([]Color, len(s.out))
	}
	dst = dst[:len(s.out)]
	copy(dst, s.out)
	return dst
}

// Sentinel returns the hidden cell, for diagnostics.
func (s *Scheduler) Sentinel() Color {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf[s.buf.Sentinel()]
}

func (s *Scheduler) Brightness() uint8 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Post.Brightness
}

func (s *Scheduler) SetBrightness(b uint8) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Post.Brightness = b
}

// Frames is the number of stepped frames since start.
func (s *Scheduler) Frames() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Last.Frames
}
