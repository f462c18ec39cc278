package anim

import (
	"math"
	"math/rand"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func kf(time, x float64) Keyframe {
	tr := Identity()
	tr.Position = mgl64.Vec3{x, 0, 0}
	return Keyframe{Time: time, Transform: tr}
}

func times(tr *Track) []float64 {
	var out []float64
	for _, k := range tr.Keyframes() {
		out = append(out, k.Time)
	}
	return out
}

func TestTrackUpsertKeepsOrder(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	tr := NewTrack()

	for i := 0; i < 200; i++ {
		// coarse grid so duplicates happen
		tr.Upsert(kf(float64(r.Intn(50))*100, float64(i)))

		keys := tr.Keyframes()
		for j := 1; j < len(keys); j++ {
			require.Less(t, keys[j-1].Time, keys[j].Time, "track must stay strictly ascending")
		}
	}
	assert.LessOrEqual(t, tr.Len(), 50)
}

func TestTrackUpsertReplaces(t *testing.T) {
	tr := NewTrack(kf(0, 0), kf(1000, 10))
	tr.Upsert(kf(1000, 42))

	require.Equal(t, 2, tr.Len())
	k, ok := tr.At(1000)
	require.True(t, ok)
	assert.Equal(t, 42.0, k.Transform.Position.X())
}

func TestTrackUpsertIdempotent(t *testing.T) {
	tr := NewTrack(kf(0, 0), kf(500, 5), kf(1000, 10))
	k := kf(500, 7)

	tr.Upsert(k)
	once := tr.Keyframes()
	tr.Upsert(k)

	assert.Equal(t, once, tr.Keyframes())
}

func TestTrackRemove(t *testing.T) {
	tr := NewTrack(kf(1000, 10), kf(0, 0), kf(500, 5))
	assert.Equal(t, []float64{0, 500, 1000}, times(tr))

	assert.True(t, tr.Remove(500))
	assert.Equal(t, []float64{0, 1000}, times(tr))

	// missing time is a no-op
	assert.False(t, tr.Remove(250))
	assert.Equal(t, []float64{0, 1000}, times(tr))
}

func TestTrackUpdate(t *testing.T) {
	tr := NewTrack(kf(0, 0), kf(1000, 10))

	ok := tr.Update(1000, func(tf *Transform) { tf.Scale = mgl64.Vec3{2, 2, 2} })
	require.True(t, ok)
	k, _ := tr.At(1000)
	assert.Equal(t, mgl64.Vec3{2, 2, 2}, k.Transform.Scale)

	assert.False(t, tr.Update(999, func(*Transform) { t.Fatal("must not be called") }))
}

func TestTrackKeyframesIsCopy(t *testing.T) {
	tr := NewTrack(kf(0, 0))
	keys := tr.Keyframes()
	keys[0].Time = 99

	assert.Equal(t, []float64{0}, times(tr))
}

func TestTrackEnd(t *testing.T) {
	assert.Equal(t, 0.0, NewTrack().End())
	assert.Equal(t, 1500.0, NewTrack(kf(1500, 0), kf(20, 0)).End())
}

func TestTrackValidate(t *testing.T) {
	assert.NoError(t, NewTrack(kf(0, 0), kf(10, 1)).Validate())
	assert.Error(t, NewTrack(kf(0, 0), kf(math.NaN(), 1)).Validate())
	assert.Error(t, NewTrack(kf(-5, 0)).Validate())
	assert.Error(t, NewTrack(kf(math.Inf(1), 0)).Validate())
}
