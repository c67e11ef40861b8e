package render

import "testing"

func TestBudgetClamp(t *testing.T) {
	// 10 LEDs all white: 600 mA before the limiter
	buf := make([]Color, 10)
	for i := range buf {
		buf[i] = Color{R: 255, G: 255, B: 255}
	}
	p := DefaultPost()
	p.BudgetMA = 300
	p.Apply(buf)
	if cur := EstimateMA(buf, 20); cur > 300.1 {
		t.Fatalf("expected <= 300mA after limit, got %.2f mA", cur)
	}
}

func TestBudgetUnderKneeUntouched(t *testing.T) {
	buf := []Color{{R: 100}}
	p := DefaultPost()
	p.BudgetMA = 1000
	p.Apply(buf)
	if buf[0].R != 100 {
		t.Fatalf("expected untouched, got %v", buf[0])
	}
}

func TestWhiteCap(t *testing.T) {
	buf := []Color{{R: 255, G: 255, B: 255}}
	p := DefaultPost()
	p.WhiteCap = 1.5
	p.Apply(buf)
	if sum := int(buf[0].R) + int(buf[0].G) + int(buf[0].B); sum > 383 {
		t.Fatalf("expected sum <= 382, got %d", sum)
	}
}

func TestBypassKeepsBrightness(t *testing.T) {
	buf := []Color{{R: 255, G: 255, B: 255}}
	p := Post{Brightness: 64, WhiteCap: 0.5, Bypass: true}
	p.Apply(buf)
	if buf[0].G != 64 {
		t.Fatalf("got %v", buf[0])
	}
}

func TestNextBrightness(t *testing.T) {
	cases := []struct{ in, want uint8 }{
		{255, 192}, {16, 255}, {200, 192}, {0, 255},
	}
	for _, c := range cases {
		if got := NextBrightness(c.in); got != c.want {
			t.Errorf("NextBrightness(%d)=%d want %d", c.in, got, c.want)
		}
	}
}
