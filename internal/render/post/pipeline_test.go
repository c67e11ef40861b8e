package post

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/coreman2200/xyshades/internal/config"
	"github.com/coreman2200/xyshades/internal/render"
)

func TestLEDFromPower(t *testing.T) {
	p := LED(128, config.Power{BudgetMA: 2000, WhiteCap: 1.5})
	assert.Equal(t, uint8(128), p.Brightness)
	assert.Equal(t, 2000.0, p.BudgetMA)
	assert.Equal(t, 1.5, p.WhiteCap)
	assert.Equal(t, 20.0, p.ChanMA)
	assert.False(t, p.Bypass)

	frame := make([]render.Color, 256)
	for i := range frame {
		frame[i] = render.Color{R: 255, G: 255, B: 255}
	}
	p.Apply(frame)
	assert.LessOrEqual(t, render.EstimateMA(frame, 20), 2000.0)
}

func TestPreviewBypasses(t *testing.T) {
	p := Preview(LED(255, config.Power{BudgetMA: 10}))
	frame := []render.Color{{R: 255, G: 255, B: 255}}
	p.Apply(frame)
	assert.Equal(t, render.Color{R: 255, G: 255, B: 255}, frame[0])
}

func TestApplyPreviewGamma(t *testing.T) {
	buf := []render.Color{{R: 0, G: 64, B: 255}}
	ApplyPreview(buf)
	assert.Equal(t, uint8(0), buf[0].R)
	assert.Greater(t, buf[0].G, uint8(64))
	assert.Equal(t, uint8(255), buf[0].B)

	rgb := PreviewRGB(nil, []render.Color{{R: 64}})
	assert.Equal(t, []byte{buf[0].G, 0, 0}, rgb)
}
