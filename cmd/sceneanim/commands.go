package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"slices"
	"time"

	"github.com/ivlev/sceneanim/internal/director"
	"github.com/ivlev/sceneanim/internal/engine"
	"github.com/ivlev/sceneanim/internal/renderer"
	"github.com/ivlev/sceneanim/internal/scene"
	"github.com/ivlev/sceneanim/internal/source"
	"github.com/ivlev/sceneanim/internal/store"
	"github.com/ivlev/sceneanim/internal/system"
)

func runPlay(args []string) error {
	var c common
	fs := newFlagSet("play", &c)
	scenePtr := fs.String("scene", "", "scene file or store:<key> (default: newest file in "+scene.DefaultDir+")")
	forPtr := fs.Duration("for", 0, "stop after this long (0: one pass, or until Ctrl-C when looping)")
	everyPtr := fs.Duration("every", 500*time.Millisecond, "how often to print poses")
	watchPtr := fs.Bool("watch", false, "reload the scene file when it changes")
	fs.Parse(args)

	cfg, err := c.settings()
	if err != nil {
		return err
	}
	src, err := resolveScene(*scenePtr, cfg)
	if err != nil {
		return err
	}
	e, err := engine.NewFromConfig(cfg)
	if err != nil {
		return err
	}

	s, err := src.Load()
	if err == nil {
		err = e.LoadScene(s)
	}
	if err != nil {
		// an unreadable scene plays as an empty one
		fmt.Printf("[!] Scene not loaded, playing an empty scene: %v\n", err)
	}

	st := e.State()
	fmt.Printf("[*] %s: %d targets, %.0fms, on end: %s\n", src.Name(), len(e.Targets()), st.Duration, e.Clock().OnEnd())

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()
	if *forPtr > 0 {
		ctx, cancel = context.WithTimeout(ctx, *forPtr)
		defer cancel()
	}

	runner := engine.NewRunner(e)
	var (
		lastPrint time.Time
		reloading bool
	)
	e.Subscribe(func(f engine.Frame) {
		if reloading {
			return
		}
		if !f.State.Playing {
			printFrame(f)
			if *forPtr == 0 {
				cancel()
			}
			return
		}
		if time.Since(lastPrint) >= *everyPtr {
			lastPrint = time.Now()
			printFrame(f)
		}
	})

	if *watchPtr {
		fsrc, ok := src.(*source.FileSource)
		if !ok {
			return fmt.Errorf("-watch needs a scene file, not %s", src.Name())
		}
		go func() {
			err := source.Watch(ctx, fsrc.Path(), func(s *scene.Scene, err error) {
				if err != nil {
					fmt.Printf("[!] Reload failed, keeping the current scene: %v\n", err)
					return
				}
				runner.Do(func(e *engine.Engine) {
					reloading = true
					err := e.LoadScene(s)
					reloading = false
					if err != nil {
						fmt.Printf("[!] Reload rejected: %v\n", err)
					}
					e.Play()
					fmt.Printf("[*] Reloaded %s (%.0fms)\n", fsrc.Path(), e.State().Duration)
				})
			})
			if err != nil {
				fmt.Printf("[!] Watch stopped: %v\n", err)
			}
		}()
		fmt.Printf("[*] Watching %s\n", fsrc.Path())
	}

	if err := runner.Do(func(e *engine.Engine) { e.Play() }); err != nil {
		return err
	}
	err = runner.Run(ctx)
	if err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded) {
		return err
	}

	fmt.Printf("[+++] Playback finished at %.0fms\n", e.State().CurrentTime)
	return nil
}

func printFrame(f engine.Frame) {
	ids := make([]string, 0, len(f.Poses))
	for id := range f.Poses {
		ids = append(ids, string(id))
	}
	slices.Sort(ids)

	fmt.Printf("t=%7.1fms\n", f.State.CurrentTime)
	for _, id := range ids {
		p := f.Poses[engine.TargetID(id)]
		fmt.Printf("  %-12s pos=(%.2f, %.2f, %.2f) rot=(%.2f, %.2f, %.2f) scale=(%.2f, %.2f, %.2f)\n", id,
			p.Position[0], p.Position[1], p.Position[2],
			p.Rotation[0], p.Rotation[1], p.Rotation[2],
			p.Scale[0], p.Scale[1], p.Scale[2])
	}
}

func runBake(args []string) error {
	var c common
	fs := newFlagSet("bake", &c)
	fpsPtr := fs.Int("fps", 0, "samples per second (default from settings)")
	outPtr := fs.String("out", filepath.Join("output", "baked"), "output directory")
	workersPtr := fs.Int("workers", 0, "scenes baked in parallel (default from settings)")
	statsPtr := fs.Bool("stats", false, "print a performance report and append it to benchmark.log")
	fs.Parse(args)

	cfg, err := c.settings()
	if err != nil {
		return err
	}
	if *fpsPtr > 0 {
		cfg.BakeFPS = *fpsPtr
	}
	if *workersPtr > 0 {
		cfg.Workers = *workersPtr
	}
	if *statsPtr {
		cfg.ShowStats = true
	}
	system.InitResourceLimits()

	targets := fs.Args()
	if len(targets) == 0 {
		targets = []string{scene.DefaultDir}
	}
	srcs, err := source.Expand(targets, storeOpener(cfg))
	if err != nil {
		return err
	}
	if len(srcs) == 0 {
		return fmt.Errorf("no scenes found in %v", targets)
	}

	jobs := make([]engine.BakeJob, 0, len(srcs))
	for _, src := range srcs {
		s, err := src.Load()
		if err != nil {
			return err
		}
		jobs = append(jobs, engine.BakeJob{Name: source.BaseName(src), Scene: s})
	}
	// settings are validated, so every engine builds
	if _, err := engine.NewFromConfig(cfg); err != nil {
		return err
	}
	newEngine := func() *engine.Engine {
		e, _ := engine.NewFromConfig(cfg)
		return e
	}

	fmt.Printf("[*] Baking %d scenes at %d fps with %d workers\n", len(jobs), cfg.BakeFPS, cfg.Workers)
	start := time.Now()
	baked, err := engine.BakeAll(context.Background(), jobs, cfg.Workers, cfg.BakeFPS, newEngine)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	frames := 0
	for _, b := range baked {
		path := filepath.Join(*outPtr, b.Name+".yaml")
		if err := engine.WriteBaked(b, path); err != nil {
			return err
		}
		frames += len(b.Frames)
		fmt.Printf("[*] %s: %d frames -> %s\n", b.Name, len(b.Frames), path)
	}

	if cfg.ShowStats {
		report := system.BakeReport{
			Build:   cfg.BuildVersion,
			Scenes:  len(baked),
			Frames:  frames,
			Workers: cfg.Workers,
			Elapsed: elapsed,
			Host:    system.GetHostInfo(),
		}
		report.Write(os.Stdout)
		if err := report.AppendLog("benchmark.log", time.Now()); err != nil {
			fmt.Printf("[!] Could not write benchmark.log: %v\n", err)
		}
	}

	fmt.Printf("[+++] Done! %d frames in %s\n", frames, *outPtr)
	return nil
}

func runTimeline(args []string) error {
	var c common
	fs := newFlagSet("timeline", &c)
	scenePtr := fs.String("scene", "", "scene file or store:<key>")
	outPtr := fs.String("out", filepath.Join("output", "timeline.png"), "PNG path")
	durationPtr := fs.Float64("duration", 0, "timeline length in seconds: 3, 5, 10, 30 or 60 (0: fit the keyframes)")
	atPtr := fs.Float64("at", 0, "playhead position in ms")
	fs.Parse(args)
	if c.mode == "" {
		c.mode = "timeline"
	}

	cfg, err := c.settings()
	if err != nil {
		return err
	}
	src, err := resolveScene(*scenePtr, cfg)
	if err != nil {
		return err
	}
	s, err := src.Load()
	if err != nil {
		return err
	}
	e, err := engine.NewFromConfig(cfg)
	if err != nil {
		return err
	}
	if err := e.LoadScene(s); err != nil {
		return err
	}

	if *durationPtr > 0 {
		ms := *durationPtr * 1000
		if !slices.Contains(engine.TimelineDurations, ms) {
			return fmt.Errorf("duration %gs is not one of %v ms", *durationPtr, engine.TimelineDurations)
		}
		e.SetDuration(ms)
	}
	e.Seek(*atPtr)

	tl := renderer.Timeline{
		Width:      cfg.TimelineWidth,
		RowHeight:  cfg.RowHeight,
		DurationMs: e.State().Duration,
		PlayheadMs: e.State().CurrentTime,
	}
	img, err := tl.Render(renderer.RowsFromEngine(e))
	if err != nil {
		return err
	}
	if err := renderer.WritePNG(img, *outPtr); err != nil {
		return err
	}

	fmt.Printf("[+++] Timeline: %s\n", *outPtr)
	return nil
}

func runShare(args []string) error {
	var c common
	fs := newFlagSet("share", &c)
	keyPtr := fs.String("key", "", "store key of the scene (default from settings)")
	basePtr := fs.String("base", "", "playback page URL (default from settings)")
	outPtr := fs.String("out", filepath.Join("output", "share.png"), "PNG path")
	sizePtr := fs.Int("size", 256, "QR code size in pixels")
	fs.Parse(args)

	cfg, err := c.settings()
	if err != nil {
		return err
	}
	key := *keyPtr
	if key == "" {
		key = cfg.StoreKey
	}
	base := *basePtr
	if base == "" {
		base = cfg.ShareBaseURL
	}

	st, err := store.Open(cfg.AppName)
	if err != nil {
		return err
	}
	if !st.Exists(key) {
		fmt.Printf("[!] Nothing is saved under %q yet, the link will show an empty scene\n", key)
	}

	link, err := renderer.ShareURL(base, key)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(*outPtr), 0755); err != nil {
		return err
	}
	if err := renderer.WriteShareQR(link, *sizePtr, *outPtr); err != nil {
		return err
	}

	fmt.Printf("[*] Link: %s\n", link)
	fmt.Printf("[+++] QR code: %s\n", *outPtr)
	return nil
}

func runSave(args []string) error {
	var c common
	fs := newFlagSet("save", &c)
	scenePtr := fs.String("scene", "", "scene file (default: newest file in "+scene.DefaultDir+")")
	keyPtr := fs.String("key", "", "store key (default from settings)")
	fs.Parse(args)

	cfg, err := c.settings()
	if err != nil {
		return err
	}
	src, err := resolveScene(*scenePtr, cfg)
	if err != nil {
		return err
	}
	s, err := src.Load()
	if err != nil {
		return err
	}

	key := *keyPtr
	if key == "" {
		key = cfg.StoreKey
	}
	st, err := store.Open(cfg.AppName)
	if err != nil {
		return err
	}
	if err := st.Save(key, s); err != nil {
		return err
	}

	fmt.Printf("[+++] Saved %s as %s%s\n", src.Name(), source.StorePrefix, key)
	return nil
}

func runLoad(args []string) error {
	var c common
	fs := newFlagSet("load", &c)
	keyPtr := fs.String("key", "", "store key (default from settings)")
	outPtr := fs.String("out", "", "scene file (default: timestamped JSON in "+scene.DefaultDir+")")
	fs.Parse(args)

	cfg, err := c.settings()
	if err != nil {
		return err
	}
	key := *keyPtr
	if key == "" {
		key = cfg.StoreKey
	}

	st, err := store.Open(cfg.AppName)
	if err != nil {
		return err
	}
	s, err := st.Load(key)
	if err != nil {
		return err
	}

	out := *outPtr
	if out == "" {
		out = scene.GenerateScenePath(scene.DefaultDir, scene.JSON)
	}
	if err := os.MkdirAll(filepath.Dir(out), 0755); err != nil {
		return err
	}
	if err := scene.WriteScene(s, out); err != nil {
		return err
	}

	fmt.Printf("[+++] Exported %s%s to %s\n", source.StorePrefix, key, out)
	return nil
}

func runAutocam(args []string) error {
	var c common
	fs := newFlagSet("autocam", &c)
	scenePtr := fs.String("scene", "", "scene file or store:<key>")
	outPtr := fs.String("out", "", "scene file to write (default: timestamped file in "+scene.DefaultDir+")")
	totalPtr := fs.Float64("total", 8000, "target path length in ms")
	dwellPtr := fs.Float64("max-dwell", 0, "longest stay on one asset in ms (default 3000)")
	fs.Parse(args)

	cfg, err := c.settings()
	if err != nil {
		return err
	}
	src, err := resolveScene(*scenePtr, cfg)
	if err != nil {
		return err
	}
	s, err := src.Load()
	if err != nil {
		return err
	}

	d := director.NewDirector()
	if *dwellPtr > 0 {
		d.MaxDwellMs = *dwellPtr
	}
	if err := d.Apply(s, *totalPtr); err != nil {
		return err
	}

	out := *outPtr
	if out == "" {
		out = scene.GenerateScenePath(scene.DefaultDir, scene.JSON)
	}
	if err := os.MkdirAll(filepath.Dir(out), 0755); err != nil {
		return err
	}
	if err := scene.WriteScene(s, out); err != nil {
		return err
	}

	last := s.CameraKeyframes[len(s.CameraKeyframes)-1].TimeOf()
	fmt.Printf("[*] Camera path: %d keyframes over %.0fms\n", len(s.CameraKeyframes), last)
	fmt.Printf("[+++] Scene: %s\n", out)
	return nil
}

func runValidate(args []string) error {
	var c common
	fs := newFlagSet("validate", &c)
	fs.Parse(args)

	cfg, err := c.settings()
	if err != nil {
		return err
	}
	targets := fs.Args()
	if len(targets) == 0 {
		targets = []string{scene.DefaultDir}
	}
	srcs, err := source.Expand(targets, storeOpener(cfg))
	if err != nil {
		return err
	}

	failed := 0
	for _, src := range srcs {
		s, err := src.Load()
		if err != nil {
			failed++
			fmt.Printf("[!] %s: %v\n", src.Name(), err)
			continue
		}
		e, err := engine.NewFromConfig(cfg)
		if err != nil {
			return err
		}
		if err := e.LoadScene(s); err != nil {
			failed++
			fmt.Printf("[!] %s: %v\n", src.Name(), err)
			continue
		}
		keys := 0
		for _, t := range e.Targets() {
			keys += t.Track.Len()
		}
		fmt.Printf("[*] %s: %d assets, %d keyframes, %.0fms\n", src.Name(), len(s.Assets), keys, e.State().Duration)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d scenes failed", failed, len(srcs))
	}
	fmt.Printf("[+++] %d scenes OK\n", len(srcs))
	return nil
}
