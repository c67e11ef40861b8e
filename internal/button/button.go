// Package button maps the two front-panel buttons to actions: A advances
// to the next routine, B steps the brightness.
package button

import (
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// ErrUnsupported is returned by Watch where GPIO character devices are
// unavailable.
var ErrUnsupported = errors.New("button: gpio not supported on this platform")

type ID int

const (
	A ID = iota // next routine
	B           // brightness step
)

func (id ID) String() string {
	if id == A {
		return "A"
	}
	return "B"
}

// Dispatcher debounces presses and runs the matching action. Timestamps
// come from the event source, so presses are ordered by the kernel's clock.
type Dispatcher struct {
	mu       sync.Mutex
	debounce time.Duration
	last     map[ID]time.Duration
	seen     map[ID]bool

	Next       func()
	Brightness func()
	// OnPress, when set, is told about every accepted press.
	OnPress func(ID)
}

func NewDispatcher(debounce time.Duration) *Dispatcher {
	return &Dispatcher{
		debounce: debounce,
		last:     map[ID]time.Duration{},
		seen:     map[ID]bool{},
	}
}

// Press handles a falling edge on id at ts. It reports whether the press
// was accepted.
func (d *Dispatcher) Press(id ID, ts time.Duration) bool {
	d.mu.Lock()
	if d.seen[id] && ts-d.last[id] < d.debounce {
		d.mu.Unlock()
		return false
	}
	d.seen[id] = true
	d.last[id] = ts
	d.mu.Unlock()

	log.Debug().Stringer("button", id).Dur("ts", ts).Msg("button press")
	switch id {
	case A:
		if d.Next != nil {
			d.Next()
		}
	case B:
		if d.Brightness != nil {
			d.Brightness()
		}
	}
	if d.OnPress != nil {
		d.OnPress(id)
	}
	return true
}
