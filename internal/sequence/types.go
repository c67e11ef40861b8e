package sequence

// Keyframe is a brightness level at MS milliseconds into the clip. Ease
// shapes the segment that starts here: "linear" (default), "quad" or
// "cubic".
type Keyframe struct {
	MS    int64  `json:"ms" yaml:"ms"`
	Level uint8  `json:"level" yaml:"level"`
	Ease  string `json:"ease,omitempty" yaml:"ease,omitempty"`
}

// Envelope is a list of keyframes sorted by MS.
type Envelope struct {
	Keys []Keyframe `json:"keys,omitempty" yaml:"keys,omitempty"`
}

// Clip holds one routine on screen for HoldS seconds. Brightness, when it
// has keys, drives global brightness over the clip.
type Clip struct {
	Routine    string   `json:"routine" yaml:"routine"`
	HoldS      float64  `json:"hold_s" yaml:"hold_s"`
	Brightness Envelope `json:"brightness,omitempty" yaml:"brightness,omitempty"`
}

// Program is the auto-rotation order.
type Program struct {
	Loop  bool   `json:"loop" yaml:"loop"`
	Clips []Clip `json:"clips" yaml:"clips"`
}

// Uniform builds a looping program holding each routine for holdS.
func Uniform(holdS float64, routines ...string) Program {
	p := Program{Loop: true, Clips: make([]Clip, len(routines))}
	for i, r := range routines {
		p.Clips[i] = Clip{Routine: r, HoldS: holdS}
	}
	return p
}

// PlayerState enumerates sequencer states.
type PlayerState string

const (
	Idle    PlayerState = "idle"
	Running PlayerState = "running"
	Paused  PlayerState = "paused"
)

// Hooks are callbacks into the scheduler.
type Hooks struct {
	// Select activates a routine by name.
	Select func(name string) error
	// SetBrightness sets global output brightness.
	SetBrightness func(b uint8)
}

// Player owns the hold timer for the current Program and uses Hooks to
// switch routines when a clip's hold elapses.
type Player struct {
	State PlayerState

	prog   Program
	idx    int     // current clip index
	localS float64 // time spent in the current clip

	hooks Hooks
	// last brightness sent, to avoid redundant hook calls
	lastB int
}
