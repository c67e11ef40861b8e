package render

// Post is the output stage applied to the presented copy of the frame:
// global brightness, then a per-LED white cap, then a global current budget.
//
// Fields:
//   - Brightness: 0..255 global scale (255 = unscaled)
//   - WhiteCap: cap on R+G+B per LED as a fraction of full channel scale, 0..3 (3 or 0 = no cap)
//   - ChanMA: mA per channel at full scale; WS2812 ≈ 20
//   - BudgetMA: global budget in mA; 0 disables the budget stage
//   - Knee: fraction of budget where soft limiting begins; default 0.9
type Post struct {
	Brightness uint8
	WhiteCap   float64
	ChanMA     float64
	BudgetMA   float64
	Knee       float64
	// Bypass skips the limiter stages, for previews.
	Bypass bool
}

// DefaultPost is full brightness with no limiting.
func DefaultPost() Post {
	return Post{Brightness: 255, WhiteCap: 3, ChanMA: 20, Knee: 0.9}
}

// Apply runs every stage over buf in place.
func (p Post) Apply(buf []Color) {
	if p.Brightness != 255 {
		for i := range buf {
			buf[i] = buf[i].ScaleVideo(p.Brightness)
		}
	}
	if p.Bypass {
		return
	}
	p.whiteCap(buf)
	p.budget(buf)
}

func (p Post) whiteCap(buf []Color) {
	if p.WhiteCap <= 0 || p.WhiteCap >= 3 {
		return
	}
	limit := int(p.WhiteCap * 255)
	for i := range buf {
		s := int(buf[i].R) + int(buf[i].G) + int(buf[i].B)
		if s > limit {
			buf[i] = scaleColor(buf[i], float64(limit)/float64(s))
		}
	}
}

// EstimateMA is the current model used by the budget stage.
func EstimateMA(buf []Color, chanMA float64) float64 {
	var sum int
	for _, c := range buf {
		sum += int(c.R) + int(c.G) + int(c.B)
	}
	return float64(sum) / 255 * chanMA
}

func (p Post) budget(buf []Color) {
	if p.BudgetMA <= 0 {
		return
	}
	chanMA := p.ChanMA
	if chanMA <= 0 {
		chanMA = 20
	}
	knee := p.Knee
	if knee <= 0 || knee >= 1 {
		knee = 0.9
	}
	total := EstimateMA(buf, chanMA)
	if total <= 0 {
		return
	}
	ratio := total / p.BudgetMA
	if ratio <= knee {
		return
	}
	minS := p.BudgetMA / total
	if ratio <= 1 {
		// map ratio in [knee,1] to scale in [1, budget/total]
		t := (ratio - knee) / (1 - knee)
		applyGlobalScale(buf, 1-t*(1-minS))
		return
	}
	applyGlobalScale(buf, minS)
}

func applyGlobalScale(buf []Color, s float64) {
	if s >= 1 {
		return
	}
	for i := range buf {
		buf[i] = scaleColor(buf[i], s)
	}
}

// scaleColor truncates so the result never exceeds the requested scale.
func scaleColor(c Color, s float64) Color {
	if s <= 0 {
		return Color{}
	}
	return Color{R: uint8(float64(c.R) * s), G: uint8(float64(c.G) * s), B: uint8(float64(c.B) * s)}
}

// Brightness steps cycled by the hardware brightness button.
var BrightnessSteps = []uint8{255, 192, 128, 64, 16}

// NextBrightness returns the step after cur, wrapping.
func NextBrightness(cur uint8) uint8 {
	for i, b := range BrightnessSteps {
		if b == cur {
			return BrightnessSteps[(i+1)%len(BrightnessSteps)]
		}
	}
	// off-step values snap to the nearest lower step
	for _, b := range BrightnessSteps {
		if cur >= b {
			return b
		}
	}
	return BrightnessSteps[0]
}
