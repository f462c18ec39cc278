package engine

import (
	"fmt"
	"math"
	"time"
)

// EndPolicy decides what the clock does when playback reaches the duration.
type EndPolicy int

const (
	// Loop wraps to zero and keeps playing (preview and landing page playback).
	Loop EndPolicy = iota
	// Stop halts and rewinds to zero (editing timeline).
	Stop
)

func (p EndPolicy) String() string {
	if p == Stop {
		return "stop"
	}
	return "loop"
}

func ParseEndPolicy(s string) (EndPolicy, error) {
	switch s {
	case "loop", "":
		return Loop, nil
	case "stop":
		return Stop, nil
	}
	return Loop, fmt.Errorf("unknown end policy %q", s)
}

// DefaultTickMs is one ~60 Hz frame.
const DefaultTickMs = 16.67

// PlaybackState is the time cursor shared by every target of a session.
type PlaybackState struct {
	CurrentTime float64
	Playing     bool
	Duration    float64
}

// Clock advances the playback cursor by a fixed step per tick. It does not schedule
// itself, see Runner.
type Clock struct {
	tickMs float64
	onEnd  EndPolicy
	state  PlaybackState
}

func NewClock(tickMs float64, onEnd EndPolicy) *Clock {
	if !(tickMs > 0) || math.IsInf(tickMs, 1) {
		tickMs = DefaultTickMs
	}
	return &Clock{tickMs: tickMs, onEnd: onEnd}
}

// PreviewClock loops, like the preview overlay and the landing page.
func PreviewClock() *Clock { return NewClock(DefaultTickMs, Loop) }

// TimelineClock stops at the end so the editor can inspect the last pose.
func TimelineClock() *Clock { return NewClock(DefaultTickMs, Stop) }

func (c *Clock) State() PlaybackState { return c.state }

func (c *Clock) TickMs() float64 { return c.tickMs }

// Interval is the wall-clock period between ticks.
func (c *Clock) Interval() time.Duration {
	return time.Duration(math.Round(c.tickMs * float64(time.Millisecond)))
}

func (c *Clock) OnEnd() EndPolicy { return c.onEnd }

func (c *Clock) Play() { c.state.Playing = true }

// Pause stops playback and keeps the current time.
func (c *Clock) Pause() { c.state.Playing = false }

// Seek moves the cursor, clamped to [0, duration], without changing the play state.
// NaN is ignored.
func (c *Clock) Seek(t float64) {
	if math.IsNaN(t) {
		return
	}
	c.state.CurrentTime = clamp(t, 0, c.state.Duration)
}

// SetDuration changes the duration and pulls the cursor back inside it. NaN and
// +Inf are ignored, the cursor could never reach them.
func (c *Clock) SetDuration(ms float64) {
	if math.IsNaN(ms) || math.IsInf(ms, 1) {
		return
	}
	if ms < 0 {
		ms = 0
	}
	c.state.Duration = ms
	if c.state.CurrentTime > ms {
		c.state.CurrentTime = ms
	}
}

// Reset stops playback at zero, keeping the duration.
func (c *Clock) Reset() {
	c.state.CurrentTime = 0
	c.state.Playing = false
}

// Tick advances one step. It reports false, changing nothing, while stopped.
func (c *Clock) Tick() bool {
	if !c.state.Playing {
		return false
	}

	next := c.state.CurrentTime + c.tickMs
	if next >= c.state.Duration {
		next = 0
		if c.onEnd == Stop {
			c.state.Playing = false
		}
	}
	c.state.CurrentTime = next
	return true
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
