package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/coreman2200/xyshades/internal/layout"
	"github.com/coreman2200/xyshades/internal/sequence"
	"github.com/coreman2200/xyshades/internal/spark"
)

type Power struct {
	BudgetMA float64 `yaml:"budget_ma"` // 0 disables the global budget
	ChanMA   float64 `yaml:"chan_ma"`   // mA per channel at full scale
	WhiteCap float64 `yaml:"white_cap"` // cap on R+G+B per LED, 0..3
	Knee     float64 `yaml:"knee"`
}

type SPI struct {
	Dev     string `yaml:"dev"`      // e.g. /dev/spidev0.0, empty = first port
	SpeedHz int    `yaml:"speed_hz"` // e.g. 2400000
}

type Layout struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Kind   string `yaml:"kind"` // identity | transposed | serpentine | table
	// FlipFirst starts serpentine reversal on row 0.
	FlipFirst bool  `yaml:"flip_first"`
	Table     []int `yaml:"table,omitempty"`
	// Rotate enables the 90 degree index transform; needs a square grid.
	Rotate bool `yaml:"rotate"`
}

type Autocycle struct {
	Enabled bool    `yaml:"enabled"`
	HoldS   float64 `yaml:"hold_s"`
	Loop    bool    `yaml:"loop"`
	// Program overrides the default order (every routine, HoldS each).
	Program []sequence.Clip `yaml:"program,omitempty"`
}

type Buttons struct {
	Enabled    bool   `yaml:"enabled"`
	Chip       string `yaml:"chip"`       // e.g. gpiochip0
	Next       int    `yaml:"next"`       // line offset
	Brightness int    `yaml:"brightness"` // line offset
	DebounceMS int    `yaml:"debounce_ms"`
}

type Config struct {
	Driver     string  `yaml:"driver"` // "sim" | "spi" | "screen" | "term"
	FPS        int     `yaml:"fps"`
	Brightness float64 `yaml:"brightness"` // 0..1
	HueStepMS  int     `yaml:"hue_step_ms"`
	Seed       uint64  `yaml:"seed"`
	// Reseed restarts the random source on every activation, so a routine
	// replays the same frames each time it is selected.
	Reseed   bool   `yaml:"reseed"`
	Start    string `yaml:"start"` // routine selected at boot
	HTTPAddr string `yaml:"http_addr"`
	LogLevel string `yaml:"log_level"`

	Layout    Layout       `yaml:"layout"`
	Power     Power        `yaml:"power"`
	SPI       SPI          `yaml:"spi,omitempty"`
	Autocycle Autocycle    `yaml:"autocycle"`
	Sparks    spark.Config `yaml:"sparks"`
	Buttons   Buttons      `yaml:"buttons"`
}

// Default is the stock 16x16 shades setup on the simulator.
func Default() *Config {
	return &Config{
		Driver:     "sim",
		FPS:        200,
		Brightness: 0.5,
		HueStepMS:  30,
		Seed:       1,
		Reseed:     true,
		Start:      "threesine",
		HTTPAddr:   ":8080",
		LogLevel:   "info",
		Layout: Layout{
			Width:  layout.Width,
			Height: layout.Height,
			Kind:   "identity",
			Rotate: true,
		},
		Power: Power{ChanMA: 20, WhiteCap: 3, Knee: 0.9},
		SPI:   SPI{SpeedHz: 2400000},
		Autocycle: Autocycle{
			Enabled: true,
			HoldS:   15,
			Loop:    true,
		},
		Sparks: spark.DefaultConfig(),
		Buttons: Buttons{
			Chip:       "gpiochip0",
			Next:       17,
			Brightness: 27,
			DebounceMS: 30,
		},
	}
}

var drivers = map[string]bool{"sim": true, "spi": true, "screen": true, "term": true}

// Validate reports the first configuration fault.
func (c *Config) Validate() error {
	if !drivers[c.Driver] {
		return fmt.Errorf("driver %q: want sim, spi, screen or term", c.Driver)
	}
	if c.FPS <= 0 || c.FPS > 1000 {
		return fmt.Errorf("fps %d out of range (1..1000)", c.FPS)
	}
	if c.Brightness < 0 || c.Brightness > 1 {
		return fmt.Errorf("brightness %v out of range (0..1)", c.Brightness)
	}
	if c.Layout.Width <= 0 || c.Layout.Height <= 0 {
		return fmt.Errorf("layout %dx%d: %w", c.Layout.Width, c.Layout.Height, layout.ErrBadDim)
	}
	if c.Autocycle.Enabled && c.Autocycle.HoldS <= 0 && len(c.Autocycle.Program) == 0 {
		return errors.New("autocycle enabled with no hold time")
	}
	if c.Power.WhiteCap < 0 || c.Power.BudgetMA < 0 {
		return errors.New("power limits must not be negative")
	}
	return nil
}

// Dim is the grid size.
func (c *Config) Dim() layout.Dim { return layout.Dim{W: c.Layout.Width, H: c.Layout.Height} }

// Mapper builds the coordinate mapper described by Layout.
func (c *Config) Mapper() (*layout.Mapper, error) {
	d := c.Dim()
	var table []int
	var err error
	if c.Layout.Kind == "serpentine" {
		table = layout.BuildSerpentine(d, layout.Serpentine{FlipEveryRow: true, FlipFirst: c.Layout.FlipFirst})
	} else {
		table, err = layout.Build(c.Layout.Kind, d, c.Layout.Table)
		if err != nil {
			return nil, err
		}
	}
	return layout.New(d, table, c.Layout.Rotate)
}

// BrightnessByte is Brightness scaled to 0..255.
func (c *Config) BrightnessByte() uint8 {
	return uint8(c.Brightness*255 + 0.5)
}

// Load reads path over Default, so omitted keys keep their defaults.
func Load(path string) (*Config, error) {
	c := Default()
	if err := LoadInto(path, c); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadInto overlays path onto c and validates the result. Keys absent from
// the file keep c's values.
func LoadInto(path string, c *Config) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(b, c); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	if err := c.Validate(); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

func Save(path string, c *Config) error {
	b, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0644)
}
