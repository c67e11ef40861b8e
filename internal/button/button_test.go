package button

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDispatchDebounces(t *testing.T) {
	var next, bright int
	var pressed []ID
	d := NewDispatcher(30 * time.Millisecond)
	d.Next = func() { next++ }
	d.Brightness = func() { bright++ }
	d.OnPress = func(id ID) { pressed = append(pressed, id) }

	ms := time.Millisecond
	assert.True(t, d.Press(A, 100*ms))
	assert.False(t, d.Press(A, 110*ms)) // bounce
	assert.True(t, d.Press(B, 115*ms))  // other button is independent
	assert.True(t, d.Press(A, 130*ms))
	assert.False(t, d.Press(B, 140*ms))

	assert.Equal(t, 2, next)
	assert.Equal(t, 1, bright)
	assert.Equal(t, []ID{A, B, A}, pressed)
}

func TestFirstPressAtZero(t *testing.T) {
	d := NewDispatcher(time.Second)
	assert.True(t, d.Press(A, 0))
	assert.False(t, d.Press(A, 0))
}
