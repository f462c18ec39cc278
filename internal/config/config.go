package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Config drives one animation session and the CLI tools around it.
// Times are milliseconds.
type Config struct {
	Mode          string  `yaml:"mode" toml:"mode"`           // preview | timeline
	TickMs        float64 `yaml:"tick_ms" toml:"tick_ms"`     // clock step, ~60 Hz
	OnEnd         string  `yaml:"on_end" toml:"on_end"`       // loop | stop
	BufferMs      float64 `yaml:"buffer_ms" toml:"buffer_ms"` // trailing margin after the last keyframe
	MinDurationMs float64 `yaml:"min_duration_ms" toml:"min_duration_ms"`
	Easing        string  `yaml:"easing" toml:"easing"`
	AppName       string  `yaml:"app_name" toml:"app_name"` // local storage namespace
	StoreKey      string  `yaml:"store_key" toml:"store_key"`
	ShareBaseURL  string  `yaml:"share_base_url" toml:"share_base_url"`
	Workers       int     `yaml:"workers" toml:"workers"`
	BakeFPS       int     `yaml:"bake_fps" toml:"bake_fps"`
	TimelineWidth int     `yaml:"timeline_width" toml:"timeline_width"`
	RowHeight     int     `yaml:"row_height" toml:"row_height"`
	ShowStats     bool    `yaml:"show_stats" toml:"show_stats"`
	BuildVersion  string  `yaml:"-" toml:"-"`
}

const (
	ModePreview  = "preview"
	ModeTimeline = "timeline"
)

// Default returns settings with no mode applied: looping playback without a duration floor.
func Default() *Config {
	return &Config{
		TickMs:        16.67,
		OnEnd:         "loop",
		BufferMs:      500,
		Easing:        "linear",
		AppName:       "sceneanim",
		StoreKey:      "saved-scene",
		ShareBaseURL:  "http://localhost:8080/",
		Workers:       runtime.NumCPU(),
		BakeFPS:       60,
		TimelineWidth: 1200,
		RowHeight:     28,
	}
}

// Preset returns Default adjusted for a named playback context. The preview loops
// and never runs shorter than 5s; the editing timeline stops at the end.
func Preset(mode string) (*Config, error) {
	cfg := Default()
	if err := cfg.ApplyMode(mode); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyMode switches the end policy and duration floor to those of mode.
func (c *Config) ApplyMode(mode string) error {
	switch mode {
	case ModePreview, "":
		c.Mode = ModePreview
		c.OnEnd = "loop"
		c.MinDurationMs = 5000
	case ModeTimeline:
		c.Mode = ModeTimeline
		c.OnEnd = "stop"
		c.MinDurationMs = 0
	default:
		return fmt.Errorf("unknown mode %q (want %s or %s)", mode, ModePreview, ModeTimeline)
	}
	return nil
}

// Load reads a YAML or TOML file over the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var unmarshal func([]byte, any) error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		unmarshal = toml.Unmarshal
	case ".yaml", ".yml":
		unmarshal = yaml.Unmarshal
	default:
		return nil, fmt.Errorf("unsupported config format: %s", path)
	}

	// the mode picks the base values, explicit keys in the file override them
	var probe struct {
		Mode string `yaml:"mode" toml:"mode"`
	}
	if err := unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	cfg := Default()
	if probe.Mode != "" {
		if err := cfg.ApplyMode(probe.Mode); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
	}
	if err := unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.TickMs <= 0 {
		return fmt.Errorf("tick_ms must be positive, got %v", c.TickMs)
	}
	if c.OnEnd != "loop" && c.OnEnd != "stop" {
		return fmt.Errorf("on_end must be loop or stop, got %q", c.OnEnd)
	}
	if c.BufferMs < 0 || c.MinDurationMs < 0 {
		return fmt.Errorf("durations must not be negative")
	}
	if c.Workers < 1 {
		c.Workers = 1
	}
	if c.BakeFPS <= 0 {
		return fmt.Errorf("bake_fps must be positive, got %d", c.BakeFPS)
	}
	return nil
}
