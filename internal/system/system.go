package system

import (
	"fmt"
	"log/slog"
	"runtime"
	"syscall"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
)

// InitResourceLimits raises the open file limit for batch runs that write many outputs.
func InitResourceLimits() {
	var rLimit syscall.Rlimit
	err := syscall.Getrlimit(syscall.RLIMIT_NOFILE, &rLimit)
	if err != nil {
		slog.Warn("could not read the open file limit", "err", err)
		return
	}

	rLimit.Cur = 2048
	if rLimit.Cur > rLimit.Max {
		rLimit.Cur = rLimit.Max
	}

	if err := syscall.Setrlimit(syscall.RLIMIT_NOFILE, &rLimit); err != nil {
		slog.Warn("could not raise the open file limit", "err", err)
		return
	}
	slog.Debug("open file limit raised", "limit", rLimit.Cur)
}

// HostInfo describes the machine a bake ran on.
type HostInfo struct {
	CPUModel      string
	PhysicalCores int
	LogicalCores  int
	TotalMemMB    uint64
	AvailMemMB    uint64
	GoVersion     string
	OS            string
	Arch          string
}

// GetHostInfo fills what gopsutil can read. Missing values are left zero rather than
// failing the run.
func GetHostInfo() HostInfo {
	h := HostInfo{
		LogicalCores: runtime.NumCPU(),
		GoVersion:    runtime.Version(),
		OS:           runtime.GOOS,
		Arch:         runtime.GOARCH,
	}

	if infos, err := cpu.Info(); err == nil && len(infos) > 0 {
		h.CPUModel = infos[0].ModelName
	} else if err != nil {
		slog.Debug("cpu info unavailable", "err", err)
	}
	if n, err := cpu.Counts(false); err == nil {
		h.PhysicalCores = n
	}
	if n, err := cpu.Counts(true); err == nil && n > 0 {
		h.LogicalCores = n
	}
	if vm, err := mem.VirtualMemory(); err == nil {
		h.TotalMemMB = vm.Total / (1 << 20)
		h.AvailMemMB = vm.Available / (1 << 20)
	} else {
		slog.Debug("memory info unavailable", "err", err)
	}
	return h
}

func (h HostInfo) String() string {
	model := h.CPUModel
	if model == "" {
		model = "unknown CPU"
	}
	return fmt.Sprintf("%s (%d/%d cores), %d/%d MB free, %s %s/%s",
		model, h.PhysicalCores, h.LogicalCores, h.AvailMemMB, h.TotalMemMB, h.GoVersion, h.OS, h.Arch)
}
