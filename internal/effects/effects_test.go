package effects

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEasingRegistry(t *testing.T) {
	tests := []struct {
		name    string
		wantErr bool
	}{
		{"linear", false},
		{"", false}, // default
		{"in-out-cubic", false},
		{"out-bounce", false},
		{"slerp", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, err := NewEasing(tt.name)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrUnknownEasing))
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, e)
		})
	}
}

func TestEasingEndpoints(t *testing.T) {
	for _, name := range Names() {
		e, err := NewEasing(name)
		require.NoError(t, err, name)

		assert.Equal(t, 0.0, e.Ease(0), name)
		assert.Equal(t, 1.0, e.Ease(1), name)
		assert.Equal(t, 0.0, e.Ease(-0.5), name)
		assert.Equal(t, 1.0, e.Ease(2), name)
	}
}

func TestLinearIsIdentity(t *testing.T) {
	e := LinearEasing{}
	for _, v := range []float64{0.1, 0.25, 0.5, 0.9} {
		assert.Equal(t, v, e.Ease(v))
	}
}

func TestInOutCubicIsSymmetric(t *testing.T) {
	e, err := NewEasing("in-out-cubic")
	require.NoError(t, err)

	assert.InDelta(t, 0.5, e.Ease(0.5), 1e-6)
	assert.Less(t, e.Ease(0.25), 0.25)
	assert.Greater(t, e.Ease(0.75), 0.75)
}
