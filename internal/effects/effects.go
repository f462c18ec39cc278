package effects

import (
	"github.com/tanema/gween/ease"
)

// Easing reshapes the blend factor between two keyframes.
// Ease receives t in [0, 1] and must return 0 for 0 and 1 for 1.
type Easing interface {
	Name() string
	Ease(t float64) float64
}

// LinearEasing leaves the blend factor untouched.
type LinearEasing struct{}

func (LinearEasing) Name() string { return "linear" }

func (LinearEasing) Ease(t float64) float64 {
	if t <= 0 {
		return 0
	}
	if t >= 1 {
		return 1
	}
	return t
}

// TweenEasing adapts a gween tween curve to a unit blend factor.
type TweenEasing struct {
	name string
	fn   ease.TweenFunc
}

func NewTweenEasing(name string, fn ease.TweenFunc) *TweenEasing {
	return &TweenEasing{name: name, fn: fn}
}

func (e *TweenEasing) Name() string { return e.name }

func (e *TweenEasing) Ease(t float64) float64 {
	// gween works in float32, pin the endpoints so keyframe hits stay exact
	if t <= 0 {
		return 0
	}
	if t >= 1 {
		return 1
	}
	return float64(e.fn(float32(t), 0, 1, 1))
}
