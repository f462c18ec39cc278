package system

import (
	"fmt"
	"io"
	"os"
	"time"
)

// BakeReport summarizes one batch bake.
type BakeReport struct {
	Build   string
	Scenes  int
	Frames  int
	Workers int
	Elapsed time.Duration
	Host    HostInfo
}

// FramesPerSecond is the sampling throughput over the whole batch.
func (r BakeReport) FramesPerSecond() float64 {
	if r.Elapsed <= 0 {
		return 0
	}
	return float64(r.Frames) / r.Elapsed.Seconds()
}

func (r BakeReport) Write(w io.Writer) error {
	_, err := fmt.Fprintf(w,
		"--- [PERFORMANCE REPORT] ---\n"+
			"Build: %s\n"+
			"Host: %s\n"+
			"Scenes: %d (workers: %d)\n"+
			"Frames: %d\n"+
			"Total Time: %.2fs\n"+
			"Effective FPS: %.2f\n"+
			"----------------------------\n",
		r.Build, r.Host, r.Scenes, r.Workers, r.Frames, r.Elapsed.Seconds(), r.FramesPerSecond(),
	)
	return err
}

// AppendLog adds a one-line entry for r to the benchmark log at path.
func (r BakeReport) AppendLog(path string, now time.Time) error {
	entry := fmt.Sprintf("[%s] Build: %s | Scenes: %d | Frames: %d | Workers: %d | Total: %.2fs | FPS: %.2f\n",
		now.Format("2006-01-02 15:04:05"),
		r.Build,
		r.Scenes,
		r.Frames,
		r.Workers,
		r.Elapsed.Seconds(),
		r.FramesPerSecond(),
	)

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	if _, err := f.WriteString(entry); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
