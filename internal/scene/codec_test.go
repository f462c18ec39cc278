package scene

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sample() *Scene {
	return &Scene{
		Assets: []Asset{
			{
				ID:       "wasp",
				URL:      "blob:wasp.glb",
				Position: Vec3{X: 0.5, Y: 1, Z: -2},
				Rotation: Vec3{Y: 0.3},
				Scale:    Vec3{X: 1, Y: 1, Z: 1},
				Keyframes: []Keyframe{
					{Time: Ms(0), Position: Vec3{}, Scale: Vec3{X: 1, Y: 1, Z: 1}},
					{Time: Ms(833.35), Position: Vec3{X: 3.3333333333333335}, Rotation: Vec3{Z: 1.2}, Scale: Vec3{X: 1, Y: 1, Z: 1}},
					{Time: Ms(2000), Position: Vec3{X: 10, Y: 0.1}, Scale: Vec3{X: 2, Y: 2, Z: 2}},
				},
			},
			{ID: "hive", URL: "blob:hive.glb", Scale: Vec3{X: 1, Y: 1, Z: 1}},
		},
		CameraKeyframes: []CameraKeyframe{
			{Time: Ms(0), Position: Vec3{Y: 2, Z: 5}, Rotation: Vec3{X: -0.1}},
			{Time: Ms(2500), Position: Vec3{X: 1, Y: 2, Z: 4}, Rotation: Vec3{X: -0.2}},
		},
	}
}

func TestSceneWriteRead(t *testing.T) {
	for _, ext := range []string{".json", ".yaml"} {
		t.Run(ext, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "scene"+ext)
			want := sample()

			require.NoError(t, WriteScene(want, path))
			got, err := ReadScene(path)
			require.NoError(t, err)

			// the asset without keyframes comes back with an empty list
			want.Assets[1].Keyframes = []Keyframe{}
			assert.Equal(t, want, got)
		})
	}
}

func TestUnmarshalEditorJSON(t *testing.T) {
	data := []byte(`{
		"assets": [{"id": "a1", "url": "blob:x", "position": {"x": 1, "y": 2, "z": 3},
			"rotation": {"x": 0, "y": 0, "z": 0}, "scale": {"x": 1, "y": 1, "z": 1},
			"keyframes": [{"time": 16.67, "position": {"x": 1, "y": 2, "z": 3},
				"rotation": {"x": 0, "y": 0, "z": 0}, "scale": {"x": 1, "y": 1, "z": 1}}]}],
		"cameraKeyframes": [{"time": 0, "position": {"x": 0, "y": 2, "z": 5}, "rotation": {"x": -0.1, "y": 0, "z": 0}}]
	}`)

	s, err := Unmarshal(data, JSON)
	require.NoError(t, err)
	require.Len(t, s.Assets, 1)
	assert.Equal(t, 16.67, s.Assets[0].Keyframes[0].TimeOf())
	assert.Equal(t, -0.1, s.CameraKeyframes[0].Rotation.X)
}

func TestUnmarshalMalformed(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"missing assets", `{"cameraKeyframes": []}`},
		{"null assets", `{"assets": null}`},
		{"assets not an array", `{"assets": "wasp"}`},
		{"keyframe without time", `{"assets": [{"id": "a", "keyframes": [{"position": {"x": 1, "y": 0, "z": 0}}]}]}`},
		{"camera keyframe without time", `{"assets": [], "cameraKeyframes": [{"position": {"x": 0, "y": 0, "z": 0}}]}`},
		{"negative time", `{"assets": [{"id": "a", "keyframes": [{"time": -1}]}]}`},
		{"asset without id", `{"assets": [{"url": "x"}]}`},
		{"duplicate ids", `{"assets": [{"id": "a"}, {"id": "a"}]}`},
		{"not json", `<html>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Unmarshal([]byte(tt.data), JSON)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrMalformed), "got %v", err)
		})
	}
}

func TestUnmarshalYAMLNaN(t *testing.T) {
	data := []byte("assets:\n  - id: a\n    keyframes:\n      - time: .nan\n")
	_, err := Unmarshal(data, YAML)
	assert.True(t, errors.Is(err, ErrMalformed), "got %v", err)
}

func TestMarshalEmptyScene(t *testing.T) {
	data, err := Marshal(&Scene{}, JSON)
	require.NoError(t, err)

	s, err := Unmarshal(data, JSON)
	require.NoError(t, err)
	assert.Empty(t, s.Assets)
	assert.Empty(t, s.CameraKeyframes)
}

func TestFormatFromPath(t *testing.T) {
	assert.Equal(t, YAML, FormatFromPath("a/b.yml"))
	assert.Equal(t, YAML, FormatFromPath("B.YAML"))
	assert.Equal(t, JSON, FormatFromPath("scene.json"))
	assert.Equal(t, JSON, FormatFromPath("saved-scene"))
}
