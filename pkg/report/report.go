// Package report reads a metric through a provider and renders it.
package report

import (
	"context"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/comfortablynick/sysinfo/pkg/format"
	"github.com/comfortablynick/sysinfo/pkg/log"
	"github.com/comfortablynick/sysinfo/pkg/memory"
	"github.com/comfortablynick/sysinfo/pkg/models"
	"github.com/comfortablynick/sysinfo/pkg/provider"
	"github.com/comfortablynick/sysinfo/pkg/uptime"
)

// Options carries the rendering choices NodeInfo applies.
type Options struct {
	Decimal bool
	Celsius bool
	Uptime  uptime.Policy

	// LoadCount is the number of load averages rendered; zero means all.
	LoadCount int
}

// Reporter turns provider readings into output lines.
type Reporter struct {
	provider provider.Provider
}

// New returns a Reporter reading from p.
func New(p provider.Provider) *Reporter {
	return &Reporter{provider: p}
}

// Memory renders used memory.
func (r *Reporter) Memory(ctx context.Context, opts memory.Options) (string, error) {
	stats, err := r.memoryStats(ctx)
	if err != nil {
		return "", err
	}
	return memory.Format(stats, opts), nil
}

// CPU samples the CPU for interval and renders the busy share. With
// breakdown set the per-state line is returned first.
func (r *Reporter) CPU(ctx context.Context, interval time.Duration, breakdown bool) ([]string, error) {
	log.Debug().Dur("interval", interval).Msg("Sampling CPU")

	load, err := provider.SampleCPU(ctx, r.provider, interval)
	if err != nil {
		return nil, err
	}

	lines := make([]string, 0, 2)
	if breakdown {
		lines = append(lines, format.CPUBreakdown(load))
	}
	return append(lines, format.CPUBusy(load)), nil
}

// Load renders the first n load averages.
func (r *Reporter) Load(ctx context.Context, n int) (string, error) {
	avg, err := r.provider.LoadAverage(ctx)
	if err != nil {
		return "", err
	}
	log.Debug().Float64("load1", avg.Load1).Float64("load5", avg.Load5).Float64("load15", avg.Load15).Msg("Load averages")
	return format.Load(avg, n)
}

// Temperature renders the CPU temperature.
func (r *Reporter) Temperature(ctx context.Context, celsius bool) (string, error) {
	temp, err := r.provider.CPUTemperature(ctx)
	if err != nil {
		return "", err
	}
	log.Debug().Float64("celsius", temp).Msg("CPU temperature")
	return format.Temperature(temp, celsius), nil
}

// Uptime renders time since boot.
func (r *Reporter) Uptime(ctx context.Context, policy uptime.Policy) (string, error) {
	seconds, err := r.provider.Uptime(ctx)
	if err != nil {
		return "", err
	}
	log.Debug().Uint64("seconds", seconds).Msg("Uptime")
	return uptime.Format(seconds, policy), nil
}

// NodeInfo collects every metric except CPU load, which needs a sampling
// window. Failed metrics are listed in Errors instead of failing the call.
func (r *Reporter) NodeInfo(ctx context.Context, opts Options) models.NodeInfo {
	info := models.NodeInfo{}
	fail := func(name string, err error) {
		if info.Errors == nil {
			info.Errors = make(map[string]string)
		}
		info.Errors[name] = err.Error()
		log.Warn().Err(err).Str("metric", name).Msg("Failed to collect metric")
	}

	if stats, err := r.memoryStats(ctx); err != nil {
		fail("memory", err)
	} else {
		info.Memory = models.MemoryInfo{
			Total:   stats.Total,
			Used:    stats.Used,
			Clamped: stats.Clamped,
			Display: memory.Format(stats, memory.Options{Decimal: opts.Decimal}),
			Percent: memory.Format(stats, memory.Options{Percent: true}),
		}
	}

	if avg, err := r.provider.LoadAverage(ctx); err != nil {
		fail("load", err)
	} else {
		info.LoadAverages = avg

		n := opts.LoadCount
		if n == 0 {
			n = format.MaxLoadAverages
		}
		if info.Load, err = format.Load(avg, n); err != nil {
			fail("load", err)
		}
	}

	if temp, err := r.provider.CPUTemperature(ctx); err != nil {
		fail("temperature", err)
	} else {
		info.TemperatureC = temp
		info.Temperature = format.Temperature(temp, opts.Celsius)
	}

	if seconds, err := r.provider.Uptime(ctx); err != nil {
		fail("uptime", err)
	} else {
		info.UptimeSeconds = seconds
		info.Uptime = uptime.Format(seconds, opts.Uptime)
	}

	return info
}

func (r *Reporter) memoryStats(ctx context.Context) (memory.Stats, error) {
	reading, err := r.provider.Memory(ctx)
	if err != nil {
		return memory.Stats{}, err
	}

	stats := memory.ComputeUsed(reading)

	log.Debug().
		Str("total", humanize.IBytes(reading.Total)).
		Str("free", humanize.IBytes(reading.Free)).
		Str("cached", humanize.IBytes(reading.Cached)).
		Str("buffers", humanize.IBytes(reading.Buffers)).
		Str("shmem", humanize.IBytes(reading.Shared)).
		Str("sreclaimable", humanize.IBytes(reading.SReclaimable)).
		Msg("Memory details")
	event := log.Debug()
	if stats.Clamped {
		event = log.Warn()
	}
	event.
		Str("used", humanize.IBytes(stats.Used)).
		Bool("clamped", stats.Clamped).
		Msg("Used memory")

	return stats, nil
}
