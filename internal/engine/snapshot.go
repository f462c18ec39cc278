package engine

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/ivlev/sceneanim/internal/anim"
	"github.com/ivlev/sceneanim/internal/scene"
)

// LoadScene replaces every target with the contents of s and resets playback.
// A record that fails validation leaves the engine with an empty scene and returns an
// error wrapping scene.ErrMalformed; the caller should report it and keep going.
func (e *Engine) LoadScene(s *scene.Scene) error {
	e.clear()
	if err := s.Validate(); err != nil {
		return fmt.Errorf("load scene: %w", err)
	}

	for _, a := range s.Assets {
		rest := anim.Transform{
			Position: toVec(a.Position),
			Rotation: toVec(a.Rotation),
			Scale:    toVec(a.Scale),
		}
		t, err := e.AddAsset(TargetID(a.ID), a.URL, rest)
		if err != nil {
			e.clear()
			return fmt.Errorf("load scene: %w: %v", scene.ErrMalformed, err)
		}
		for _, k := range a.Keyframes {
			t.Track.Upsert(anim.Keyframe{
				Time: k.TimeOf(),
				Transform: anim.Transform{
					Position: toVec(k.Position),
					Rotation: toVec(k.Rotation),
					Scale:    toVec(k.Scale),
				},
			})
		}
	}

	// the camera record carries no scale
	for _, k := range s.CameraKeyframes {
		e.camera.Track.Upsert(anim.Keyframe{
			Time: k.TimeOf(),
			Transform: anim.Transform{
				Position: toVec(k.Position),
				Rotation: toVec(k.Rotation),
				Scale:    mgl64.Vec3{1, 1, 1},
			},
		})
	}

	e.refit()
	e.Evaluate()
	e.log.Debug("scene loaded", "assets", len(s.Assets), "camera_keyframes", e.camera.Track.Len(),
		"duration_ms", e.clock.State().Duration)
	return nil
}

// Snapshot exports the current targets in the persisted record format. Assets carry
// their rest pose; keyframes are in ascending time order.
func (e *Engine) Snapshot() *scene.Scene {
	s := &scene.Scene{
		Assets:          make([]scene.Asset, 0, len(e.order)),
		CameraKeyframes: make([]scene.CameraKeyframe, 0, e.camera.Track.Len()),
	}
	for _, id := range e.order {
		t := e.assets[id]
		a := scene.Asset{
			ID:        string(t.ID),
			URL:       t.URL,
			Position:  fromVec(t.Rest.Position),
			Rotation:  fromVec(t.Rest.Rotation),
			Scale:     fromVec(t.Rest.Scale),
			Keyframes: make([]scene.Keyframe, 0, t.Track.Len()),
		}
		for _, k := range t.Track.Keyframes() {
			a.Keyframes = append(a.Keyframes, scene.Keyframe{
				Time:     scene.Ms(k.Time),
				Position: fromVec(k.Transform.Position),
				Rotation: fromVec(k.Transform.Rotation),
				Scale:    fromVec(k.Transform.Scale),
			})
		}
		s.Assets = append(s.Assets, a)
	}
	for _, k := range e.camera.Track.Keyframes() {
		s.CameraKeyframes = append(s.CameraKeyframes, scene.CameraKeyframe{
			Time:     scene.Ms(k.Time),
			Position: fromVec(k.Transform.Position),
			Rotation: fromVec(k.Transform.Rotation),
		})
	}
	return s
}

func toVec(v scene.Vec3) mgl64.Vec3 { return mgl64.Vec3{v.X, v.Y, v.Z} }

func fromVec(v mgl64.Vec3) scene.Vec3 { return scene.Vec3{X: v[0], Y: v[1], Z: v[2]} }
