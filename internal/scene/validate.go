package scene

import (
	"errors"
	"fmt"
	"math"
)

// ErrMalformed marks a scene record that must not be loaded.
var ErrMalformed = errors.New("malformed scene")

// Validate rejects records the engine should not partially trust: a missing assets array,
// keyframes without a usable time, and assets without a unique id.
func (s *Scene) Validate() error {
	if s == nil {
		return fmt.Errorf("%w: no scene data", ErrMalformed)
	}
	if s.Assets == nil {
		return fmt.Errorf("%w: missing assets array", ErrMalformed)
	}

	seen := make(map[string]bool, len(s.Assets))
	for i, a := range s.Assets {
		if a.ID == "" {
			return fmt.Errorf("%w: asset %d has no id", ErrMalformed, i)
		}
		if seen[a.ID] {
			return fmt.Errorf("%w: duplicate asset id %q", ErrMalformed, a.ID)
		}
		seen[a.ID] = true

		for j, k := range a.Keyframes {
			if err := checkTime(k.Time); err != nil {
				return fmt.Errorf("%w: asset %q keyframe %d: %v", ErrMalformed, a.ID, j, err)
			}
		}
	}

	for j, k := range s.CameraKeyframes {
		if err := checkTime(k.Time); err != nil {
			return fmt.Errorf("%w: camera keyframe %d: %v", ErrMalformed, j, err)
		}
	}
	return nil
}

func checkTime(t *float64) error {
	switch {
	case t == nil:
		return errors.New("missing time")
	case math.IsNaN(*t) || math.IsInf(*t, 0):
		return fmt.Errorf("time %v is not finite", *t)
	case *t < 0:
		return fmt.Errorf("negative time %v", *t)
	}
	return nil
}
