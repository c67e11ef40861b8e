// Package post builds the output stages for the two kinds of consumer: the
// physical strip and on-screen previews.
package post

import (
	"math"

	"github.com/coreman2200/xyshades/internal/config"
	"github.com/coreman2200/xyshades/internal/render"
)

// LED is brightness followed by the white cap and current budget from pw.
func LED(brightness uint8, pw config.Power) render.Post {
	p := render.DefaultPost()
	p.Brightness = brightness
	if pw.WhiteCap > 0 {
		p.WhiteCap = pw.WhiteCap
	}
	if pw.ChanMA > 0 {
		p.ChanMA = pw.ChanMA
	}
	if pw.Knee > 0 {
		p.Knee = pw.Knee
	}
	p.BudgetMA = pw.BudgetMA
	return p
}

// Preview keeps brightness but skips limiting; a screen draws no current.
func Preview(p render.Post) render.Post {
	p.Bypass = true
	return p
}

var encode [256]uint8

func init() {
	for i := range encode {
		encode[i] = uint8(math.Round(math.Pow(float64(i)/255, 1/2.2) * 255))
	}
}

// ApplyPreview gamma-encodes LED drive levels for display on a monitor, so
// dim pixels look the way they do on the strip.
func ApplyPreview(buf []render.Color) {
	for i := range buf {
		buf[i] = render.Color{R: encode[buf[i].R], G: encode[buf[i].G], B: encode[buf[i].B]}
	}
}

// PreviewRGB packs buf into dst (grown as needed) gamma-encoded.
func PreviewRGB(dst []byte, buf []render.Color) []byte {
	n := len(buf) * 3
	if cap(dst) < n {
		dst = make([]byte, n)
	}
	dst = dst[:n]
	for i, c := range buf {
		dst[i*3] = encode[c.R]
		dst[i*3+1] = encode[c.G]
		dst[i*3+2] = encode[c.B]
	}
	return dst
}
