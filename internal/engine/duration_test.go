package engine

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ivlev/sceneanim/internal/anim"
)

func track(times ...float64) *anim.Track {
	tr := anim.NewTrack()
	for _, t := range times {
		tr.Upsert(anim.Keyframe{Time: t, Transform: anim.Identity()})
	}
	return tr
}

func TestSceneDuration(t *testing.T) {
	tests := []struct {
		name   string
		tracks []*anim.Track
		buffer float64
		min    float64
		want   float64
	}{
		{"empty scene", nil, 500, 0, 500},
		{"empty tracks", []*anim.Track{track(), nil}, 500, 0, 500},
		{"last keyframe plus buffer", []*anim.Track{track(0, 1000), track(200, 3000)}, 500, 0, 3500},
		{"floor raises short scenes", []*anim.Track{track(0, 1000)}, 500, 5000, 5500},
		{"long scene passes the floor", []*anim.Track{track(0, 8000)}, 500, 5000, 8500},
		{"no buffer", []*anim.Track{track(2500)}, 0, 0, 2500},
		{"nan keyframe keeps the rest of its track", []*anim.Track{track(0, 2000, math.NaN())}, 500, 0, 2500},
		{"non-finite end ignored", []*anim.Track{track(1000), track(0, math.NaN()), track(math.Inf(1))}, 500, 0, 1500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SceneDuration(tt.tracks, tt.buffer, tt.min))
		})
	}
}

func TestTimelineDurations(t *testing.T) {
	assert.Equal(t, []float64{3000, 5000, 10000, 30000, 60000}, TimelineDurations)
}
