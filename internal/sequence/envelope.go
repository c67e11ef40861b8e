package sequence

import "github.com/coreman2200/xyshades/internal/math8"

// Empty reports whether the envelope has no keys.
func (e Envelope) Empty() bool { return len(e.Keys) == 0 }

// At returns the level at ms. It holds the first level before the first key
// and the last level after the last key.
func (e Envelope) At(ms int64) uint8 {
	n := len(e.Keys)
	switch {
	case n == 0:
		return 0
	case ms <= e.Keys[0].MS:
		return e.Keys[0].Level
	case ms >= e.Keys[n-1].MS:
		return e.Keys[n-1].Level
	}
	i := 1
	for e.Keys[i].MS < ms {
		i++
	}
	a, b := e.Keys[i-1], e.Keys[i]
	span := b.MS - a.MS
	if span <= 0 {
		return b.Level
	}
	return math8.Blend8(a.Level, b.Level, ease(a.Ease, uint8((ms-a.MS)*255/span)))
}

func ease(kind string, frac uint8) uint8 {
	switch kind {
	case "quad":
		return math8.Ease8InOutQuad(frac)
	case "cubic":
		return math8.Ease8InOutCubic(frac)
	default:
		return frac
	}
}
