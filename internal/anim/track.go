package anim

import (
	"fmt"
	"math"
	"sort"
)

// Keyframe is a pose sample at a time offset in milliseconds.
type Keyframe struct {
	Time      float64
	Transform Transform
}

// Track keeps the keyframes of one target sorted ascending by time, at most one per time.
// A Track is not safe for concurrent use.
type Track struct {
	keys []Keyframe
}

// NewTrack builds a track from keyframes in any order. Later duplicates win.
func NewTrack(keys ...Keyframe) *Track {
	t := &Track{}
	for _, k := range keys {
		t.Upsert(k)
	}
	return t
}

// search returns the first index whose time is >= at.
func (t *Track) search(at float64) int {
	return sort.Search(len(t.keys), func(i int) bool {
		return t.keys[i].Time >= at
	})
}

// Upsert inserts k, replacing any keyframe at exactly the same time.
func (t *Track) Upsert(k Keyframe) {
	i := t.search(k.Time)
	if i < len(t.keys) && t.keys[i].Time == k.Time {
		t.keys[i] = k
		return
	}
	t.keys = append(t.keys, Keyframe{})
	copy(t.keys[i+1:], t.keys[i:])
	t.keys[i] = k
}

// Remove deletes the keyframe at exactly time. It reports whether one was removed.
func (t *Track) Remove(time float64) bool {
	i := t.search(time)
	if i >= len(t.keys) || t.keys[i].Time != time {
		return false
	}
	t.keys = append(t.keys[:i], t.keys[i+1:]...)
	return true
}

// Update applies fn to the transform of the keyframe at exactly time.
func (t *Track) Update(time float64, fn func(*Transform)) bool {
	i := t.search(time)
	if i >= len(t.keys) || t.keys[i].Time != time {
		return false
	}
	fn(&t.keys[i].Transform)
	return true
}

// At returns the keyframe at exactly time.
func (t *Track) At(time float64) (Keyframe, bool) {
	i := t.search(time)
	if i >= len(t.keys) || t.keys[i].Time != time {
		return Keyframe{}, false
	}
	return t.keys[i], true
}

// Keyframes returns a copy of the keyframes in ascending time order.
func (t *Track) Keyframes() []Keyframe {
	out := make([]Keyframe, len(t.keys))
	copy(out, t.keys)
	return out
}

func (t *Track) Len() int { return len(t.keys) }

// End is the time of the last keyframe, 0 for an empty track.
func (t *Track) End() float64 {
	if len(t.keys) == 0 {
		return 0
	}
	return t.keys[len(t.keys)-1].Time
}

// Clear drops every keyframe.
func (t *Track) Clear() { t.keys = t.keys[:0] }

// Validate checks that every time is finite and non-negative.
func (t *Track) Validate() error {
	for i, k := range t.keys {
		if math.IsNaN(k.Time) || math.IsInf(k.Time, 0) || k.Time < 0 {
			return fmt.Errorf("keyframe %d: invalid time %v", i, k.Time)
		}
	}
	return nil
}
