package system

import (
	"bytes"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetHostInfo(t *testing.T) {
	h := GetHostInfo()
	assert.Equal(t, runtime.GOOS, h.OS)
	assert.Equal(t, runtime.Version(), h.GoVersion)
	assert.Positive(t, h.LogicalCores)
	t.Logf("host: %s", h)
}

func TestBakeReport(t *testing.T) {
	r := BakeReport{
		Build:   "dev",
		Scenes:  3,
		Frames:  600,
		Workers: 2,
		Elapsed: 2 * time.Second,
		Host:    HostInfo{CPUModel: "Test CPU", PhysicalCores: 2, LogicalCores: 4},
	}
	assert.Equal(t, 300.0, r.FramesPerSecond())
	assert.Zero(t, BakeReport{Frames: 10}.FramesPerSecond())

	var buf bytes.Buffer
	require.NoError(t, r.Write(&buf))
	out := buf.String()
	assert.Contains(t, out, "Scenes: 3 (workers: 2)")
	assert.Contains(t, out, "Effective FPS: 300.00")
	assert.Contains(t, out, "Test CPU (2/4 cores)")

	path := filepath.Join(t.TempDir(), "benchmark.log")
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, r.AppendLog(path, now))
	require.NoError(t, r.AppendLog(path, now))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "[2026-03-01 12:00:00] Build: dev"))
}
