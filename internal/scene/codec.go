package scene

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format selects the encoding of a scene record.
type Format int

const (
	JSON Format = iota
	YAML
)

func (f Format) String() string {
	if f == YAML {
		return "yaml"
	}
	return "json"
}

// FormatFromPath picks the format from a file extension. Unknown extensions are JSON,
// which is what the editor writes to local storage.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return YAML
	}
	return JSON
}

// Marshal encodes a scene. Nil slices are written as empty arrays so the record
// passes Validate when read back.
func Marshal(s *Scene, f Format) ([]byte, error) {
	out := normalize(s)
	if f == YAML {
		return yaml.Marshal(out)
	}
	return json.MarshalIndent(out, "", "  ")
}

// Unmarshal decodes and validates a scene record.
func Unmarshal(data []byte, f Format) (*Scene, error) {
	var s Scene
	var err error
	if f == YAML {
		err = yaml.Unmarshal(data, &s)
	} else {
		err = json.Unmarshal(data, &s)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// WriteScene writes a scene to a JSON or YAML file
func WriteScene(s *Scene, path string) error {
	data, err := Marshal(s, FormatFromPath(path))
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// ReadScene reads a scene from a JSON or YAML file
func ReadScene(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	s, err := Unmarshal(data, FormatFromPath(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

func normalize(s *Scene) *Scene {
	out := &Scene{Assets: []Asset{}, CameraKeyframes: []CameraKeyframe{}}
	if s == nil {
		return out
	}
	for _, a := range s.Assets {
		if a.Keyframes == nil {
			a.Keyframes = []Keyframe{}
		}
		out.Assets = append(out.Assets, a)
	}
	out.CameraKeyframes = append(out.CameraKeyframes, s.CameraKeyframes...)
	return out
}
