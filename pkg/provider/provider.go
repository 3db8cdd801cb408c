// Package provider reads raw host metrics from the operating system.
package provider

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/comfortablynick/sysinfo/pkg/memory"
	"github.com/comfortablynick/sysinfo/pkg/models"
)

// Provider names accepted by New.
const (
	NameAuto     = "auto"
	NameProcfs   = "procfs"
	NameGopsutil = "gopsutil"
)

// DefaultSampleInterval is the CPU sampling window when none is given.
const DefaultSampleInterval = time.Second

// Provider supplies raw readings. Every failure is a ReadError.
type Provider interface {
	// Memory returns the raw memory counters.
	Memory(ctx context.Context) (memory.Reading, error)
	// Uptime returns whole seconds since boot.
	Uptime(ctx context.Context) (uint64, error)
	// LoadAverage returns the 1, 5 and 15 minute load averages.
	LoadAverage(ctx context.Context) (models.LoadAverages, error)
	// CPUTemperature returns the CPU temperature in degrees Celsius.
	CPUTemperature(ctx context.Context) (float64, error)
	// CPUTimes returns cumulative CPU state counters.
	CPUTimes(ctx context.Context) (models.CPUTimes, error)
}

// Options configures the providers built by New.
type Options struct {
	ProcRoot string
	SysRoot  string
}

// New returns the provider registered under name. NameAuto picks procfs
// on Linux and gopsutil everywhere else.
func New(name string, opts Options) (Provider, error) {
	if name == "" || name == NameAuto {
		name = NameGopsutil
		if runtime.GOOS == "linux" {
			name = NameProcfs
		}
	}

	switch name {
	case NameProcfs:
		return NewProcfs(opts.ProcRoot, opts.SysRoot), nil
	case NameGopsutil:
		return NewGopsutil(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, name)
	}
}

// SampleCPU measures CPU load over interval by taking two CPUTimes
// samples. It returns early with ctx.Err() when ctx is done.
func SampleCPU(ctx context.Context, p Provider, interval time.Duration) (models.CPULoad, error) {
	if interval <= 0 {
		interval = DefaultSampleInterval
	}

	first, err := p.CPUTimes(ctx)
	if err != nil {
		return models.CPULoad{}, err
	}

	timer := time.NewTimer(interval)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return models.CPULoad{}, ctx.Err()
	case <-timer.C:
	}

	second, err := p.CPUTimes(ctx)
	if err != nil {
		return models.CPULoad{}, err
	}

	return models.CPULoadFromTimes(first, second), nil
}
