//go:build !linux

package button

import (
	"io"

	"github.com/coreman2200/xyshades/internal/config"
)

func Watch(config.Buttons, *Dispatcher) (io.Closer, error) {
	return nil, ErrUnsupported
}
