package engine

import (
	"math"

	"github.com/ivlev/sceneanim/internal/anim"
)

// DefaultBufferMs keeps playback from cutting off exactly on the last keyframe.
const DefaultBufferMs = 500

// TimelineDurations are the lengths offered by the editing timeline.
var TimelineDurations = []float64{3000, 5000, 10000, 30000, 60000}

// SceneDuration returns max(minMs, last keyframe time over all tracks) + bufferMs.
// Non-finite keyframe times are ignored; the rest of their track still counts.
func SceneDuration(tracks []*anim.Track, bufferMs, minMs float64) float64 {
	last := minMs
	for _, tr := range tracks {
		if tr == nil {
			continue
		}
		for _, k := range tr.Keyframes() {
			// NaN fails both comparisons, +Inf the second
			if k.Time > last && k.Time <= math.MaxFloat64 {
				last = k.Time
			}
		}
	}
	return last + bufferMs
}
