//go:build linux

package button

import (
	"fmt"
	"io"
	"time"

	"github.com/warthog618/go-gpiocdev"

	"github.com/coreman2200/xyshades/internal/config"
)

type lines []*gpiocdev.Line

func (ls lines) Close() error {
	var first error
	for _, l := range ls {
		if err := l.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// Watch requests both button lines as pulled-up inputs and feeds falling
// edges to d. Close the result to release the lines.
func Watch(cfg config.Buttons, d *Dispatcher) (io.Closer, error) {
	var ls lines
	for _, b := range []struct {
		id   ID
		line int
	}{{A, cfg.Next}, {B, cfg.Brightness}} {
		id := b.id
		l, err := gpiocdev.RequestLine(cfg.Chip, b.line,
			gpiocdev.AsInput,
			gpiocdev.WithPullUp,
			gpiocdev.WithFallingEdge,
			gpiocdev.WithDebounce(time.Duration(cfg.DebounceMS)*time.Millisecond),
			gpiocdev.WithEventHandler(func(evt gpiocdev.LineEvent) {
				d.Press(id, evt.Timestamp)
			}),
		)
		if err != nil {
			ls.Close()
			return nil, fmt.Errorf("button %s on %s:%d: %w", id, cfg.Chip, b.line, err)
		}
		ls = append(ls, l)
	}
	return ls, nil
}
