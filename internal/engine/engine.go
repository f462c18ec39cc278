package engine

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/ivlev/sceneanim/internal/anim"
	"github.com/ivlev/sceneanim/internal/config"
	"github.com/ivlev/sceneanim/internal/effects"
)

var (
	ErrUnknownTarget   = errors.New("unknown target")
	ErrDuplicateTarget = errors.New("duplicate target")
	errNonFinitePose   = errors.New("interpolated pose is not finite")
)

// TargetID names an animated target. The camera has the reserved id CameraID.
type TargetID string

const CameraID TargetID = "camera"

// Target is an animated asset or the camera.
type Target struct {
	ID      TargetID
	URL     string
	Visible bool
	Track   *anim.Track
	// Rest is the last manual pose, used while the track is empty.
	Rest anim.Transform
	// Live is the published pose: Rest after a manual edit, the interpolated pose after
	// an evaluation.
	Live anim.Transform

	skipped bool
}

// Frame is what subscribers receive after every evaluation.
type Frame struct {
	State PlaybackState
	Poses map[TargetID]anim.Transform
}

type subscriber struct {
	id int
	fn func(Frame)
}

// Engine evaluates every target of one scene against a shared clock.
//
// An Engine is not safe for concurrent use; drive it from one goroutine, for example
// through Runner.
type Engine struct {
	clock  *Clock
	interp anim.Interpolator
	log    *slog.Logger

	bufferMs     float64
	minMs        float64
	autoDuration bool

	camera *Target
	assets map[TargetID]*Target
	order  []TargetID

	subs   []subscriber
	nextID int
}

type Option func(*Engine)

func WithClock(c *Clock) Option { return func(e *Engine) { e.clock = c } }

func WithEasing(ez anim.Easer) Option { return func(e *Engine) { e.interp.Easing = ez } }

func WithBuffer(ms float64) Option { return func(e *Engine) { e.bufferMs = ms } }

// WithMinDuration sets the floor the last keyframe time is raised to before the buffer
// is added.
func WithMinDuration(ms float64) Option { return func(e *Engine) { e.minMs = ms } }

func WithLogger(l *slog.Logger) Option { return func(e *Engine) { e.log = l } }

// New creates an engine with an empty scene: a camera at its default pose and no assets.
func New(opts ...Option) *Engine {
	e := &Engine{
		clock:        PreviewClock(),
		log:          slog.Default(),
		bufferMs:     DefaultBufferMs,
		autoDuration: true,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.clear()
	return e
}

// NewFromConfig builds an engine from session settings.
func NewFromConfig(cfg *config.Config, opts ...Option) (*Engine, error) {
	onEnd, err := ParseEndPolicy(cfg.OnEnd)
	if err != nil {
		return nil, err
	}
	ez, err := effects.NewEasing(cfg.Easing)
	if err != nil {
		return nil, err
	}

	base := []Option{
		WithClock(NewClock(cfg.TickMs, onEnd)),
		WithBuffer(cfg.BufferMs),
		WithMinDuration(cfg.MinDurationMs),
	}
	// linear is the interpolator's own path, keep it exact
	if _, linear := ez.(effects.LinearEasing); !linear {
		base = append(base, WithEasing(ez))
	}
	return New(append(base, opts...)...), nil
}

// NewEditor creates the engine of a fresh editor session, whose camera track starts
// with one keyframe at the default pose.
func NewEditor(opts ...Option) *Engine {
	e := New(opts...)
	e.camera.Track.Upsert(anim.Keyframe{Time: 0, Transform: anim.DefaultCameraPose()})
	e.refit()
	return e
}

func (e *Engine) clear() {
	pose := anim.DefaultCameraPose()
	e.camera = &Target{ID: CameraID, Visible: true, Track: anim.NewTrack(), Rest: pose, Live: pose}
	e.assets = make(map[TargetID]*Target)
	e.order = nil
	e.clock.Reset()
	e.refit()
}

func (e *Engine) Camera() *Target { return e.camera }

// Asset returns the asset target with id.
func (e *Engine) Asset(id TargetID) (*Target, bool) {
	t, ok := e.assets[id]
	return t, ok
}

// Targets lists the camera followed by the assets in insertion order.
func (e *Engine) Targets() []*Target {
	out := make([]*Target, 0, len(e.order)+1)
	out = append(out, e.camera)
	for _, id := range e.order {
		out = append(out, e.assets[id])
	}
	return out
}

func (e *Engine) target(id TargetID) (*Target, error) {
	if id == CameraID {
		return e.camera, nil
	}
	if t, ok := e.assets[id]; ok {
		return t, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownTarget, id)
}

// AddAsset places a new asset at pose with an empty track.
func (e *Engine) AddAsset(id TargetID, url string, pose anim.Transform) (*Target, error) {
	if id == CameraID || e.assets[id] != nil {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateTarget, id)
	}
	t := &Target{ID: id, URL: url, Visible: true, Track: anim.NewTrack(), Rest: pose, Live: pose}
	e.assets[id] = t
	e.order = append(e.order, id)
	return t, nil
}

// RemoveAsset destroys an asset together with its track.
func (e *Engine) RemoveAsset(id TargetID) error {
	if _, ok := e.assets[id]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownTarget, id)
	}
	delete(e.assets, id)
	for i, o := range e.order {
		if o == id {
			e.order = append(e.order[:i], e.order[i+1:]...)
			break
		}
	}
	e.refit()
	return nil
}

func (e *Engine) SetVisible(id TargetID, visible bool) error {
	t, err := e.target(id)
	if err != nil {
		return err
	}
	t.Visible = visible
	return nil
}

func (e *Engine) ToggleVisibility(id TargetID) (bool, error) {
	t, err := e.target(id)
	if err != nil {
		return false, err
	}
	t.Visible = !t.Visible
	return t.Visible, nil
}

// SetPose records a manual edit: the pose becomes both the rest and the live pose.
// The next evaluation overrides it if the target has keyframes.
func (e *Engine) SetPose(id TargetID, pose anim.Transform) error {
	t, err := e.target(id)
	if err != nil {
		return err
	}
	t.Rest = pose
	t.Live = pose
	return nil
}

func (e *Engine) UpsertKeyframe(id TargetID, time float64, pose anim.Transform) error {
	t, err := e.target(id)
	if err != nil {
		return err
	}
	t.Track.Upsert(anim.Keyframe{Time: time, Transform: pose})
	e.refit()
	return nil
}

// RemoveKeyframe deletes the keyframe at exactly time. A missing keyframe is not an error.
func (e *Engine) RemoveKeyframe(id TargetID, time float64) error {
	t, err := e.target(id)
	if err != nil {
		return err
	}
	if t.Track.Remove(time) {
		e.refit()
	}
	return nil
}

// UpdateKeyframe edits the pose of the keyframe at exactly time.
func (e *Engine) UpdateKeyframe(id TargetID, time float64, fn func(*anim.Transform)) (bool, error) {
	t, err := e.target(id)
	if err != nil {
		return false, err
	}
	return t.Track.Update(time, fn), nil
}

func (e *Engine) Play()  { e.clock.Play() }
func (e *Engine) Pause() { e.clock.Pause() }

func (e *Engine) Playing() bool { return e.clock.State().Playing }

func (e *Engine) State() PlaybackState { return e.clock.State() }

func (e *Engine) Clock() *Clock { return e.clock }

// Seek moves the cursor and evaluates once, playing or not.
func (e *Engine) Seek(t float64) {
	e.clock.Seek(t)
	e.Evaluate()
}

// SetDuration pins the duration; track edits no longer change it.
func (e *Engine) SetDuration(ms float64) {
	e.autoDuration = false
	e.clock.SetDuration(ms)
}

// FitDuration derives the duration from the keyframes again and keeps doing so.
func (e *Engine) FitDuration() float64 {
	e.autoDuration = true
	e.refit()
	return e.clock.State().Duration
}

func (e *Engine) refit() {
	if !e.autoDuration {
		return
	}
	tracks := make([]*anim.Track, 0, len(e.order)+1)
	for _, t := range e.Targets() {
		tracks = append(tracks, t.Track)
	}
	e.clock.SetDuration(SceneDuration(tracks, e.bufferMs, e.minMs))
}

// Tick advances the clock one step and evaluates. It reports false while paused.
func (e *Engine) Tick() bool {
	if !e.clock.Tick() {
		return false
	}
	e.Evaluate()
	return true
}

// Evaluate computes every target's pose at the current time and publishes the frame.
// A target with a broken track or a non-finite result keeps its previous pose.
func (e *Engine) Evaluate() {
	e.evaluate()
	e.publish()
}

func (e *Engine) evaluate() {
	now := e.clock.State().CurrentTime
	for _, t := range e.Targets() {
		if err := t.Track.Validate(); err != nil {
			e.skip(t, err)
			continue
		}
		pose := e.interp.Evaluate(t.Track, now, t.Rest)
		if !pose.Finite() {
			e.skip(t, errNonFinitePose)
			continue
		}
		if t.skipped {
			t.skipped = false
			e.log.Info("target animating again", "target", t.ID)
		}
		t.Live = pose
	}
}

func (e *Engine) skip(t *Target, err error) {
	if t.skipped {
		return
	}
	t.skipped = true
	e.log.Warn("skipping target, keeping previous pose", "target", t.ID, "err", err)
}

// LivePose returns the pose last published for id.
func (e *Engine) LivePose(id TargetID) (anim.Transform, bool) {
	t, err := e.target(id)
	if err != nil {
		return anim.Transform{}, false
	}
	return t.Live, true
}

// Poses copies the live pose of every target.
func (e *Engine) Poses() map[TargetID]anim.Transform {
	out := make(map[TargetID]anim.Transform, len(e.assets)+1)
	for _, t := range e.Targets() {
		out[t.ID] = t.Live
	}
	return out
}

// Subscribe registers fn to receive every published frame. The returned func
// unsubscribes.
func (e *Engine) Subscribe(fn func(Frame)) func() {
	e.nextID++
	id := e.nextID
	e.subs = append(e.subs, subscriber{id: id, fn: fn})
	return func() {
		for i, s := range e.subs {
			if s.id == id {
				e.subs = append(e.subs[:i], e.subs[i+1:]...)
				return
			}
		}
	}
}

func (e *Engine) publish() {
	if len(e.subs) == 0 {
		return
	}
	frame := Frame{State: e.clock.State(), Poses: e.Poses()}
	for _, s := range e.subs {
		s.fn(frame)
	}
}
