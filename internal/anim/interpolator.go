package anim

import "sort"

// Easer reshapes the blend factor between two keyframes. See internal/effects.
type Easer interface {
	Ease(t float64) float64
}

// Interpolator evaluates tracks. The zero value blends linearly.
type Interpolator struct {
	Easing Easer
}

// Evaluate returns the pose of track at time at. An empty track yields fallback.
func (ip Interpolator) Evaluate(track *Track, at float64, fallback Transform) Transform {
	if track == nil {
		return fallback
	}
	return ip.Interpolate(track.keys, at, fallback)
}

// Interpolate calculates the pose at a given time from keyframes sorted ascending and
// unique by time.
//
// With a single keyframe the result is that keyframe whatever the time. Before the first
// and after the last keyframe the nearest end is held; there is no extrapolation.
func (ip Interpolator) Interpolate(keys []Keyframe, at float64, fallback Transform) Transform {
	switch len(keys) {
	case 0:
		return fallback
	case 1:
		return keys[0].Transform
	}

	// next is the first keyframe at or after the query time
	i := sort.Search(len(keys), func(i int) bool {
		return keys[i].Time >= at
	})
	if i == len(keys) {
		return keys[len(keys)-1].Transform
	}
	if i == 0 || keys[i].Time == at {
		return keys[i].Transform
	}

	prev, next := keys[i-1], keys[i]
	t := (at - prev.Time) / (next.Time - prev.Time)
	t = clamp01(t)
	if ip.Easing != nil {
		t = ip.Easing.Ease(t)
	}
	return Lerp(prev.Transform, next.Transform, t)
}

func clamp01(t float64) float64 {
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}
