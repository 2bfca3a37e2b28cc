package experiment

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/load"
)

// HostInfo describes the machine a sweep ran on.
type HostInfo struct {
	CPUModel      string
	PhysicalCores int
	LogicalCores  int
	GOMAXPROCS    int
	Load1         float64
	Load5         float64
	Load15        float64
	GoVersion     string
	OS            string
	Arch          string
}

// CollectHostInfo gathers whatever it can about the host. Fields it could
// not read are left zero and the failures are returned joined.
func CollectHostInfo(ctx context.Context) (HostInfo, error) {
	info := HostInfo{
		LogicalCores: runtime.NumCPU(),
		GOMAXPROCS:   runtime.GOMAXPROCS(0),
		GoVersion:    runtime.Version(),
		OS:           runtime.GOOS,
		Arch:         runtime.GOARCH,
	}

	var errs []error

	if n, err := cpu.CountsWithContext(ctx, false); err != nil {
		errs = append(errs, fmt.Errorf("physical cores: %w", err))
	} else {
		info.PhysicalCores = n
	}

	if stats, err := cpu.InfoWithContext(ctx); err != nil {
		errs = append(errs, fmt.Errorf("cpu info: %w", err))
	} else if len(stats) > 0 {
		info.CPUModel = stats[0].ModelName
	}

	if avg, err := load.AvgWithContext(ctx); err != nil {
		errs = append(errs, fmt.Errorf("load average: %w", err))
	} else {
		info.Load1, info.Load5, info.Load15 = avg.Load1, avg.Load5, avg.Load15
	}

	return info, errors.Join(errs...)
}
