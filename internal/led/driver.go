// Package led holds the output transports. A transport takes packed RGB
// bytes in wiring order; Output adapts one to the scheduler's frame type.
package led

import (
	"fmt"
	"sync"

	"github.com/coreman2200/xyshades/internal/render"
)

// Driver abstracts an LED output sink.
type Driver interface {
	// Write pushes an RGB frame to hardware. len(rgb) must be 3*N.
	Write(rgb []byte) error
	// Close releases resources.
	Close() error
}

// Output packs scheduler frames for a Driver.
type Output struct {
	Drv Driver
	rgb []byte
}

func NewOutput(d Driver) *Output { return &Output{Drv: d} }

func (o *Output) Write(frame []render.Color) error {
	if cap(o.rgb) < len(frame)*3 {
		o.rgb = make([]byte, len(frame)*3)
	}
	o.rgb = o.rgb[:len(frame)*3]
	for i, c := range frame {
		o.rgb[i*3+0] = c.R
		o.rgb[i*3+1] = c.G
		o.rgb[i*3+2] = c.B
	}
	return o.Drv.Write(o.rgb)
}

func (o *Output) Close() error { return o.Drv.Close() }

// Sim keeps the last frame in memory and writes nowhere.
type Sim struct {
	mu     sync.Mutex
	n      int
	last   []byte
	frames uint64
}

func NewSim(n int) *Sim { return &Sim{n: n, last: make([]byte, n*3)} }

func (s *Sim) Write(rgb []byte) error {
	if len(rgb) != s.n*3 {
		return fmt.Errorf("sim: frame is %d bytes, want %d", len(rgb), s.n*3)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	copy(s.last, rgb)
	s.frames++
	return nil
}

func (s *Sim) Close() error { return nil }

// Last copies the last frame written.
func (s *Sim) Last() []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]byte(nil), s.last...)
}

func (s *Sim) Frames() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.frames
}
