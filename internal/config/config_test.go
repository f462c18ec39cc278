package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 16.67, cfg.TickMs)
	assert.Equal(t, "loop", cfg.OnEnd)
	assert.Equal(t, 500.0, cfg.BufferMs)
	assert.Equal(t, "saved-scene", cfg.StoreKey)
}

func TestPreset(t *testing.T) {
	preview, err := Preset(ModePreview)
	require.NoError(t, err)
	assert.Equal(t, "loop", preview.OnEnd)
	assert.Equal(t, 5000.0, preview.MinDurationMs)

	timeline, err := Preset(ModeTimeline)
	require.NoError(t, err)
	assert.Equal(t, "stop", timeline.OnEnd)
	assert.Zero(t, timeline.MinDurationMs)

	_, err = Preset("landing")
	assert.Error(t, err)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	yamlPath := filepath.Join(dir, "sceneanim.yaml")
	require.NoError(t, os.WriteFile(yamlPath, []byte("tick_ms: 33.3\non_end: stop\neasing: in-out-cubic\n"), 0644))

	cfg, err := Load(yamlPath)
	require.NoError(t, err)
	assert.Equal(t, 33.3, cfg.TickMs)
	assert.Equal(t, "stop", cfg.OnEnd)
	assert.Equal(t, "in-out-cubic", cfg.Easing)
	// untouched fields keep their defaults
	assert.Equal(t, 500.0, cfg.BufferMs)

	tomlPath := filepath.Join(dir, "sceneanim.toml")
	require.NoError(t, os.WriteFile(tomlPath, []byte("buffer_ms = 250.0\nbake_fps = 24\nstore_key = \"landing\"\n"), 0644))

	cfg, err = Load(tomlPath)
	require.NoError(t, err)
	assert.Equal(t, 250.0, cfg.BufferMs)
	assert.Equal(t, 24, cfg.BakeFPS)
	assert.Equal(t, "landing", cfg.StoreKey)
}

func TestLoadModeThenOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "timeline.yaml")
	require.NoError(t, os.WriteFile(path, []byte("mode: timeline\nmin_duration_ms: 3000\n"), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ModeTimeline, cfg.Mode)
	assert.Equal(t, "stop", cfg.OnEnd)
	assert.Equal(t, 3000.0, cfg.MinDurationMs)
}

func TestLoadRejects(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name, file, body string
	}{
		{"bad end policy", "a.yaml", "on_end: bounce\n"},
		{"zero tick", "b.yaml", "tick_ms: 0\n"},
		{"bad syntax", "c.toml", "tick_ms = = 1\n"},
		{"unknown format", "d.ini", "tick_ms=1\n"},
		{"unknown mode", "e.yaml", "mode: landing\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.file)
			require.NoError(t, os.WriteFile(path, []byte(tt.body), 0644))
			_, err := Load(path)
			assert.Error(t, err)
		})
	}
}
