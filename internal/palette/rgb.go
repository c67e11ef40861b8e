// Package palette holds the LED color type, 16-entry palettes and
// HSV conversion.
package palette

import (
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/coreman2200/xyshades/internal/math8"
)

// Channel offsets of a packed 0xRRGGBB value.
const (
	RedOffset   = 16
	GreenOffset = 8
	BlueOffset  = 0
)

// RGB is one LED cell, 8 bits per channel.
type RGB struct{ R, G, B uint8 }

var (
	Black   = RGB{}
	White   = RGB{255, 255, 255}
	Red     = RGB{255, 0, 0}
	Green   = RGB{0, 128, 0}
	Blue    = RGB{0, 0, 255}
	Gray    = RGB{128, 128, 128}
	Magenta = RGB{255, 0, 255}
)

// FromPacked unpacks 0xRRGGBB.
func FromPacked(v uint32) RGB {
	return RGB{
		R: uint8(v >> RedOffset),
		G: uint8(v >> GreenOffset),
		B: uint8(v >> BlueOffset),
	}
}

func (c RGB) Packed() uint32 {
	return uint32(c.R)<<RedOffset | uint32(c.G)<<GreenOffset | uint32(c.B)<<BlueOffset
}

func (c RGB) IsBlack() bool { return c.R == 0 && c.G == 0 && c.B == 0 }

// Scale multiplies each channel by s/256 (255 keeps the color).
func (c RGB) Scale(s uint8) RGB {
	return RGB{math8.Scale8(c.R, s), math8.Scale8(c.G, s), math8.Scale8(c.B, s)}
}

// ScaleVideo is Scale that keeps lit channels lit.
func (c RGB) ScaleVideo(s uint8) RGB {
	return RGB{math8.Scale8Video(c.R, s), math8.Scale8Video(c.G, s), math8.Scale8Video(c.B, s)}
}

// Add is a saturating per-channel add.
func (c RGB) Add(o RGB) RGB {
	return RGB{math8.QAdd8(c.R, o.R), math8.QAdd8(c.G, o.G), math8.QAdd8(c.B, o.B)}
}

// Blend mixes c toward o by amount/255.
func (c RGB) Blend(o RGB, amount uint8) RGB {
	return RGB{
		math8.Blend8(c.R, o.R, amount),
		math8.Blend8(c.G, o.G, amount),
		math8.Blend8(c.B, o.B, amount),
	}
}

// Colorful converts to a go-colorful color for float-space math.
func (c RGB) Colorful() colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}

func fromColorful(c colorful.Color) RGB {
	r, g, b := c.Clamped().RGB255()
	return RGB{r, g, b}
}

// HSV converts an 8-bit hue/saturation/value triple; hue 0..255 spans the
// full color wheel.
func HSV(h, s, v uint8) RGB {
	return fromColorful(colorful.Hsv(float64(h)*360.0/256.0, float64(s)/255, float64(v)/255))
}
