package system

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
	"gocv.io/x/gocv"
)

// HostInfo describes the machine a benchmark ran on.
type HostInfo struct {
	CPUModel      string
	LogicalCores  int
	PhysicalCores int
	TotalMemoryMB uint64
	GoVersion     string
	GoMaxProcs    int
	GocvVersion   string
	OpenCVVersion string
	CUDADevices   int
}

// Describe collects HostInfo. gopsutil failures leave the affected fields
// zero and are returned joined, so callers can log and carry on.
func Describe(ctx context.Context, cudaDevices int) (HostInfo, error) {
	info := HostInfo{
		GoVersion:     runtime.Version(),
		GoMaxProcs:    runtime.GOMAXPROCS(0),
		GocvVersion:   gocv.Version(),
		OpenCVVersion: gocv.OpenCVVersion(),
		CUDADevices:   cudaDevices,
	}

	var errs []error

	if logical, err := cpu.CountsWithContext(ctx, true); err == nil {
		info.LogicalCores = logical
	} else {
		errs = append(errs, fmt.Errorf("logical cores: %w", err))
	}

	if physical, err := cpu.CountsWithContext(ctx, false); err == nil {
		info.PhysicalCores = physical
	} else {
		errs = append(errs, fmt.Errorf("physical cores: %w", err))
	}

	if stats, err := cpu.InfoWithContext(ctx); err == nil && len(stats) > 0 {
		info.CPUModel = stats[0].ModelName
	} else if err != nil {
		errs = append(errs, fmt.Errorf("cpu info: %w", err))
	}

	if vm, err := mem.VirtualMemoryWithContext(ctx); err == nil {
		info.TotalMemoryMB = vm.Total / 1024 / 1024
	} else {
		errs = append(errs, fmt.Errorf("virtual memory: %w", err))
	}

	if info.LogicalCores == 0 {
		info.LogicalCores = runtime.NumCPU()
	}

	return info, errors.Join(errs...)
}

// Fields flattens HostInfo for structured logging.
func (h HostInfo) Fields() map[string]interface{} {
	return map[string]interface{}{
		"cpu_model":      h.CPUModel,
		"logical_cores":  h.LogicalCores,
		"physical_cores": h.PhysicalCores,
		"memory_mb":      h.TotalMemoryMB,
		"go_version":     h.GoVersion,
		"gomaxprocs":     h.GoMaxProcs,
		"gocv_version":   h.GocvVersion,
		"opencv_version": h.OpenCVVersion,
		"cuda_devices":   h.CUDADevices,
	}
}
