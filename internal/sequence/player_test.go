package sequence

import (
	"errors"
	"testing"
)

func TestEnvelopeAt(t *testing.T) {
	env := Envelope{Keys: []Keyframe{
		{MS: 0, Level: 0},
		{MS: 1000, Level: 255},
	}}
	cases := []struct {
		ms   int64
		want uint8
	}{
		{-5, 0},
		{0, 0},
		{500, 127},
		{1000, 255},
		{2000, 255},
	}
	for _, tc := range cases {
		if got := env.At(tc.ms); got != tc.want {
			t.Fatalf("At(%d) = %d, want %d", tc.ms, got, tc.want)
		}
	}
	if (Envelope{}).At(10) != 0 || !(Envelope{}).Empty() {
		t.Fatalf("empty envelope should be 0")
	}
}

func TestEnvelopeEasing(t *testing.T) {
	lin := Envelope{Keys: []Keyframe{{MS: 0, Level: 0}, {MS: 1000, Level: 255}}}
	quad := Envelope{Keys: []Keyframe{{MS: 0, Level: 0, Ease: "quad"}, {MS: 1000, Level: 255}}}
	cubic := Envelope{Keys: []Keyframe{{MS: 0, Level: 0, Ease: "cubic"}, {MS: 1000, Level: 255}}}
	// eased curves start slower and still meet the end points
	if q, l := quad.At(200), lin.At(200); q >= l {
		t.Fatalf("quad %d should trail linear %d early", q, l)
	}
	if c, l := cubic.At(200), lin.At(200); c >= l {
		t.Fatalf("cubic %d should trail linear %d early", c, l)
	}
	if quad.At(1000) != 255 || cubic.At(0) != 0 {
		t.Fatalf("eased end points moved")
	}
}

func TestEnvelopeFalling(t *testing.T) {
	env := Envelope{Keys: []Keyframe{{MS: 0, Level: 200}, {MS: 100, Level: 200}, {MS: 300, Level: 0}}}
	if got := env.At(50); got != 200 {
		t.Fatalf("flat segment: %d", got)
	}
	if got := env.At(200); got < 95 || got > 105 {
		t.Fatalf("midpoint of 200->0: %d", got)
	}
}

func recorder() (*[]string, Hooks) {
	log := &[]string{}
	return log, Hooks{
		Select: func(name string) error {
			*log = append(*log, name)
			return nil
		},
	}
}

func TestHoldAdvancesAndLoops(t *testing.T) {
	log, h := recorder()
	p := NewPlayer(h)
	if err := p.Load(Uniform(2, "plasma", "snow")); err != nil {
		t.Fatalf("load: %v", err)
	}
	p.Start()
	p.Tick(1.9) // still plasma
	p.Tick(0.2) // 2.1 -> snow
	p.Tick(1.0)
	p.Tick(1.0) // -> plasma again (loop)

	want := []string{"plasma", "snow", "plasma"}
	if len(*log) != len(want) {
		t.Fatalf("selects %v, want %v", *log, want)
	}
	for i := range want {
		if (*log)[i] != want[i] {
			t.Fatalf("selects %v, want %v", *log, want)
		}
	}
}

func TestProgramEndsWithoutLoop(t *testing.T) {
	log, h := recorder()
	p := NewPlayer(h)
	prog := Uniform(1, "a", "b")
	prog.Loop = false
	if err := p.Load(prog); err != nil {
		t.Fatalf("load: %v", err)
	}
	p.Start()
	p.Tick(1)
	p.Tick(1)
	if p.State != Idle {
		t.Fatalf("expected idle at end, got %s", p.State)
	}
	p.Tick(5)
	if len(*log) != 2 {
		t.Fatalf("selects %v", *log)
	}
}

func TestPauseHoldsTimer(t *testing.T) {
	log, h := recorder()
	p := NewPlayer(h)
	_ = p.Load(Uniform(1, "a", "b"))
	p.Start()
	p.Pause()
	p.Tick(10)
	p.Resume()
	p.Tick(0.5)
	if len(*log) != 1 || p.Remaining() != 0.5 {
		t.Fatalf("selects %v remaining %v", *log, p.Remaining())
	}
}

func TestFollowRestartsHold(t *testing.T) {
	log, h := recorder()
	p := NewPlayer(h)
	_ = p.Load(Uniform(2, "a", "b", "c"))
	p.Start()
	p.Tick(1.5)
	// switched elsewhere to c
	p.Follow("c")
	if p.Index() != 2 || p.Remaining() != 2 {
		t.Fatalf("index %d remaining %v", p.Index(), p.Remaining())
	}
	p.Tick(2)
	if got := (*log)[len(*log)-1]; got != "a" {
		t.Fatalf("expected wrap to a, got %s", got)
	}
	// unknown routine keeps position but restarts the hold
	p.Tick(1)
	p.Follow("calib")
	if p.Index() != 0 || p.Remaining() != 2 {
		t.Fatalf("index %d remaining %v", p.Index(), p.Remaining())
	}
}

func TestSeek(t *testing.T) {
	log, h := recorder()
	p := NewPlayer(h)
	_ = p.Load(Uniform(3, "a", "b", "c"))
	p.Start()
	p.Seek(7)
	if p.Index() != 2 || p.Remaining() != 2 {
		t.Fatalf("index %d remaining %v", p.Index(), p.Remaining())
	}
	if got := (*log)[len(*log)-1]; got != "c" {
		t.Fatalf("seek did not select c: %v", *log)
	}
}

func TestBrightnessAutomation(t *testing.T) {
	var got []uint8
	p := NewPlayer(Hooks{SetBrightness: func(b uint8) { got = append(got, b) }})
	prog := Program{Loop: true, Clips: []Clip{{
		Routine:    "a",
		HoldS:      10,
		Brightness: Envelope{Keys: []Keyframe{{MS: 0, Level: 0}, {MS: 4000, Level: 255}}},
	}}}
	if err := p.Load(prog); err != nil {
		t.Fatalf("load: %v", err)
	}
	p.Start()
	p.Tick(2)
	p.Tick(2)
	p.Tick(1)
	if len(got) != 2 || got[0] != 127 || got[1] != 255 {
		t.Fatalf("brightness calls %v", got)
	}
}

func TestLoadRejectsBadPrograms(t *testing.T) {
	p := NewPlayer(Hooks{})
	if err := p.Load(Program{}); !errors.Is(err, ErrEmptyProgram) {
		t.Fatalf("expected ErrEmptyProgram, got %v", err)
	}
	if err := p.Load(Program{Clips: []Clip{{Routine: "a"}}}); err == nil {
		t.Fatalf("expected error for zero hold")
	}
	if err := p.Load(Program{Clips: []Clip{{HoldS: 1}}}); err == nil {
		t.Fatalf("expected error for missing routine")
	}
}
