package palette

import (
	"fmt"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Palette is 16 anchor colors; lookups interpolate between neighbours.
type Palette [16]RGB

// Intn is the random source used to pick palettes.
type Intn interface {
	Intn(n int) int
}

func mustHex(s string) RGB {
	c, err := colorful.Hex(s)
	if err != nil {
		panic(fmt.Sprintf("palette: bad hex %q: %v", s, err))
	}
	return fromColorful(c)
}

func fromHex(hex ...string) Palette {
	var p Palette
	for i := range p {
		p[i] = mustHex(hex[i])
	}
	return p
}

var (
	Rainbow = func() Palette {
		var p Palette
		for i := range p {
			p[i] = HSV(uint8(i*16), 255, 255)
		}
		return p
	}()

	Cloud = fromHex(
		"#0000ff", "#00008b", "#00008b", "#00008b", "#00008b", "#00008b", "#00008b", "#00008b",
		"#0000ff", "#00008b", "#87ceeb", "#87ceeb", "#add8e6", "#ffffff", "#add8e6", "#87ceeb")

	Lava = fromHex(
		"#000000", "#800000", "#000000", "#800000", "#8b0000", "#800000", "#8b0000", "#8b0000",
		"#8b0000", "#ff0000", "#ffa500", "#ffffff", "#ffa500", "#ff0000", "#8b0000", "#000000")

	Ocean = fromHex(
		"#191970", "#00008b", "#191970", "#000080", "#00008b", "#0000cd", "#2e8b57", "#008080",
		"#5f9ea0", "#0000ff", "#008b8b", "#6495ed", "#7fffd4", "#2e8b57", "#00ffff", "#87cefa")

	Forest = fromHex(
		"#006400", "#006400", "#556b2f", "#006400", "#008000", "#228b22", "#6b8e23", "#008000",
		"#2e8b57", "#66cdaa", "#32cd32", "#9acd32", "#90ee90", "#7cfc00", "#66cdaa", "#228b22")

	Party = fromHex(
		"#5500ab", "#84007c", "#b5004b", "#e5001b", "#e81700", "#b84700", "#ab7700", "#abab00",
		"#ab5500", "#dd2200", "#f2000e", "#c2003e", "#8f0071", "#5f00a1", "#2f00d0", "#0007f9")

	Heat = fromHex(
		"#000000", "#330000", "#660000", "#990000", "#cc0000", "#ff0000", "#ff3300", "#ff6600",
		"#ff9900", "#ffcc00", "#ffff00", "#ffff33", "#ffff66", "#ffff99", "#ffffcc", "#ffffff")
)

// Named lists the palettes Random draws from.
var Named = map[string]Palette{
	"rainbow": Rainbow,
	"cloud":   Cloud,
	"lava":    Lava,
	"ocean":   Ocean,
	"forest":  Forest,
	"party":   Party,
	"heat":    Heat,
}

var randomOrder = []Palette{Rainbow, Cloud, Lava, Ocean, Forest, Party, Heat}

// Random picks one of the stock palettes.
func Random(r Intn) Palette {
	return randomOrder[r.Intn(len(randomOrder))]
}

// At returns the color at index (0..255) with linear blending between
// anchors, scaled by brightness.
func (p Palette) At(index, brightness uint8) RGB {
	hi := index >> 4
	lo := index & 0x0F
	c := p[hi]
	if lo != 0 {
		next := p[(hi+1)&0x0F]
		c = fromColorful(c.Colorful().BlendRgb(next.Colorful(), float64(lo)/16))
	}
	if brightness != 255 {
		c = c.ScaleVideo(brightness)
	}
	return c
}

// ColorFromPalette is p.At(index, brightness).
func ColorFromPalette(p Palette, index, brightness uint8) RGB {
	return p.At(index, brightness)
}

// Stop is a gradient anchor at Pos in 0..255.
type Stop struct {
	Pos   uint8
	Color RGB
}

// Gradient samples a piecewise-linear gradient into a 16-entry palette.
// Stops must be sorted by Pos.
func Gradient(stops ...Stop) Palette {
	var p Palette
	if len(stops) == 0 {
		return p
	}
	for i := range p {
		pos := uint8(i * 255 / 15)
		p[i] = sampleGradient(stops, pos)
	}
	return p
}

func sampleGradient(stops []Stop, pos uint8) RGB {
	if pos <= stops[0].Pos {
		return stops[0].Color
	}
	for i := 0; i < len(stops)-1; i++ {
		a, b := stops[i], stops[i+1]
		if pos >= a.Pos && pos <= b.Pos {
			span := float64(b.Pos) - float64(a.Pos)
			if span <= 0 {
				return b.Color
			}
			t := (float64(pos) - float64(a.Pos)) / span
			return fromColorful(a.Color.Colorful().BlendRgb(b.Color.Colorful(), t))
		}
	}
	return stops[len(stops)-1].Color
}
