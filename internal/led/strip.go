package led

import (
	"errors"
	"fmt"
	"image"
	"io"
	"sync"

	"github.com/rs/zerolog/log"
	"periph.io/x/conn/v3/display"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/devices/v3/nrzled"
	"periph.io/x/extra/devices/screen"
	"periph.io/x/host/v3"
)

// ErrNoSPI is returned by NewSPI when no SPI port can be opened.
var ErrNoSPI = errors.New("no SPI port")

// Strip draws frames onto a one-row periph display: an NRZ LED string on
// SPI, or the ANSI console screen.
type Strip struct {
	mu     sync.Mutex
	d      display.Drawer
	img    *image.NRGBA
	n      int
	closer io.Closer
}

func newStrip(d display.Drawer, n int, closer io.Closer) *Strip {
	return &Strip{d: d, img: image.NewNRGBA(image.Rect(0, 0, n, 1)), n: n, closer: closer}
}

// NewSPI opens dev ("" for the first port) and drives n WS2812 pixels at
// speedHz.
func NewSPI(dev string, n int, speedHz int) (*Strip, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("periph host init: %w", err)
	}
	p, err := spireg.Open(dev)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoSPI, err)
	}
	s, err := NewSPIPort(p, n, speedHz)
	if err != nil {
		_ = p.Close()
		return nil, err
	}
	s.closer = p
	return s, nil
}

// NewSPIPort drives n pixels over an already opened port.
func NewSPIPort(p spi.Port, n int, speedHz int) (*Strip, error) {
	if n <= 0 {
		return nil, fmt.Errorf("invalid LED count: %d", n)
	}
	if speedHz <= 0 {
		speedHz = 2400000
	}
	d, err := nrzled.NewSPI(p, &nrzled.Opts{
		NumPixels: n,
		Channels:  3,
		Freq:      physic.Frequency(speedHz) * physic.Hertz,
	})
	if err != nil {
		return nil, fmt.Errorf("nrzled: %w", err)
	}
	if err := d.Halt(); err != nil {
		return nil, fmt.Errorf("nrzled halt: %w", err)
	}
	return newStrip(d, n, nil), nil
}

// NewScreen prints frames to the console as a row of colored blocks.
func NewScreen(n int) *Strip {
	return newStrip(screen.New(n), n, nil)
}

// Open picks SPI and falls back to the console when no port is present.
func Open(dev string, n int, speedHz int) (*Strip, error) {
	s, err := NewSPI(dev, n, speedHz)
	if errors.Is(err, ErrNoSPI) {
		log.Warn().Err(err).Msg("led: no SPI port, printing at the console")
		return NewScreen(n), nil
	}
	return s, err
}

func (s *Strip) String() string { return s.d.String() }

func (s *Strip) Write(rgb []byte) error {
	if len(rgb) != s.n*3 {
		return fmt.Errorf("strip: frame is %d bytes, want %d", len(rgb), s.n*3)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := 0; i < s.n; i++ {
		o := i * 4
		s.img.Pix[o+0] = rgb[i*3+0]
		s.img.Pix[o+1] = rgb[i*3+1]
		s.img.Pix[o+2] = rgb[i*3+2]
		s.img.Pix[o+3] = 0xff
	}
	return s.d.Draw(s.d.Bounds(), s.img, image.Point{})
}

// Close blanks the strip and releases the port.
func (s *Strip) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	err := s.d.Halt()
	if s.closer != nil {
		if cerr := s.closer.Close(); err == nil {
			err = cerr
		}
		s.closer = nil
	}
	return err
}
