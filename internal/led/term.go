package led

import (
	"context"
	"fmt"
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/coreman2200/xyshades/internal/layout"
)

// Term previews frames in a terminal, two character cells per LED, laid
// out in logical grid order.
type Term struct {
	mu  sync.Mutex
	s   tcell.Screen
	n   int
	pos [][2]int // physical index -> logical (x,y); -1 for unmapped
}

// NewTerm takes over s, or the controlling terminal when s is nil.
func NewTerm(s tcell.Screen, m *layout.Mapper) (*Term, error) {
	if s == nil {
		var err error
		if s, err = tcell.NewScreen(); err != nil {
			return nil, fmt.Errorf("term: %w", err)
		}
	}
	if err := s.Init(); err != nil {
		return nil, fmt.Errorf("term init: %w", err)
	}
	s.Clear()

	n := m.Count()
	pos := make([][2]int, n)
	for i := range pos {
		pos[i] = [2]int{-1, -1}
	}
	d := m.Dim()
	for y := 0; y < d.H; y++ {
		for x := 0; x < d.W; x++ {
			pos[m.Map(x, y)] = [2]int{x, y}
		}
	}
	return &Term{s: s, n: n, pos: pos}, nil
}

func (t *Term) Write(rgb []byte) error {
	if len(rgb) != t.n*3 {
		return fmt.Errorf("term: frame is %d bytes, want %d", len(rgb), t.n*3)
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	for i, p := range t.pos {
		if p[0] < 0 {
			continue
		}
		c := tcell.NewRGBColor(int32(rgb[i*3]), int32(rgb[i*3+1]), int32(rgb[i*3+2]))
		st := tcell.StyleDefault.Background(c)
		t.s.SetContent(p[0]*2, p[1], ' ', nil, st)
		t.s.SetContent(p[0]*2+1, p[1], ' ', nil, st)
	}
	t.s.Show()
	return nil
}

// Keys delivers key presses to fn until ctx is done or the screen closes.
func (t *Term) Keys(ctx context.Context, fn func(key tcell.Key, r rune)) {
	go func() {
		<-ctx.Done()
		t.s.PostEvent(tcell.NewEventInterrupt(nil))
	}()
	for {
		ev := t.s.PollEvent()
		if ev == nil || ctx.Err() != nil {
			return
		}
		if k, ok := ev.(*tcell.EventKey); ok {
			fn(k.Key(), k.Rune())
		}
	}
}

func (t *Term) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.s.Fini()
	return nil
}
