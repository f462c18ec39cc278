package engine

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/ivlev/sceneanim/internal/anim"
	"github.com/ivlev/sceneanim/internal/scene"
)

// Baked holds the poses of every target sampled at a fixed frame rate.
type Baked struct {
	Name       string       `yaml:"name"`
	FPS        int          `yaml:"fps"`
	DurationMs float64      `yaml:"duration_ms"`
	Targets    []string     `yaml:"targets"`
	Frames     []BakedFrame `yaml:"frames"`
}

type BakedFrame struct {
	TimeMs float64              `yaml:"time_ms"`
	Poses  map[string]BakedPose `yaml:"poses"`
}

type BakedPose struct {
	Position [3]float64 `yaml:"position,flow"`
	Rotation [3]float64 `yaml:"rotation,flow"`
	Scale    [3]float64 `yaml:"scale,flow"`
}

// BakeJob names one scene to bake.
type BakeJob struct {
	Name  string
	Scene *scene.Scene
}

// Bake samples e at every 1000/fps ms from 0 up to (excluding) the duration. The
// playback cursor and live poses are restored afterwards. Subscribers are not notified.
func Bake(ctx context.Context, e *Engine, fps int) (*Baked, error) {
	if fps <= 0 {
		return nil, fmt.Errorf("fps must be positive, got %d", fps)
	}

	st := e.State()
	defer func() {
		e.clock.Seek(st.CurrentTime)
		e.evaluate()
	}()

	b := &Baked{FPS: fps, DurationMs: st.Duration}
	for _, t := range e.Targets() {
		b.Targets = append(b.Targets, string(t.ID))
	}

	step := 1000 / float64(fps)
	for i := 0; ; i++ {
		at := float64(i) * step
		if i > 0 && at >= st.Duration {
			break
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		e.clock.Seek(at)
		e.evaluate()
		frame := BakedFrame{TimeMs: at, Poses: make(map[string]BakedPose, len(b.Targets))}
		for id, pose := range e.Poses() {
			frame.Poses[string(id)] = bakePose(pose)
		}
		b.Frames = append(b.Frames, frame)
	}
	return b, nil
}

// BakeAll bakes each job on its own engine, at most workers at a time. Results keep the
// order of jobs. The first failure cancels the rest.
func BakeAll(ctx context.Context, jobs []BakeJob, workers, fps int, newEngine func() *Engine) ([]*Baked, error) {
	if workers < 1 {
		workers = 1
	}
	results := make([]*Baked, len(jobs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, job := range jobs {
		i, job := i, job
		g.Go(func() error {
			e := newEngine()
			if err := e.LoadScene(job.Scene); err != nil {
				return fmt.Errorf("%s: %w", job.Name, err)
			}
			b, err := Bake(ctx, e, fps)
			if err != nil {
				return fmt.Errorf("%s: %w", job.Name, err)
			}
			b.Name = job.Name
			results[i] = b
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// WriteBaked saves b as YAML, creating the parent directory.
func WriteBaked(b *Baked, path string) error {
	data, err := yaml.Marshal(b)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func bakePose(t anim.Transform) BakedPose {
	return BakedPose{Position: t.Position, Rotation: t.Rotation, Scale: t.Scale}
}
