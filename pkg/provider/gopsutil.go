package provider

import (
	"context"
	"strings"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/host"
	"github.com/shirou/gopsutil/v4/load"
	"github.com/shirou/gopsutil/v4/mem"
	"github.com/shirou/gopsutil/v4/sensors"

	"github.com/comfortablynick/sysinfo/pkg/log"
	"github.com/comfortablynick/sysinfo/pkg/memory"
	"github.com/comfortablynick/sysinfo/pkg/models"
)

// cpuSensorHints are sensor key fragments that identify the CPU package.
var cpuSensorHints = []string{"coretemp", "k10temp", "package", "tctl", "tdie", "cpu"}

// Gopsutil reads metrics through gopsutil and works on every platform
// gopsutil supports.
type Gopsutil struct{}

// NewGopsutil returns a gopsutil backed provider.
func NewGopsutil() *Gopsutil {
	return &Gopsutil{}
}

// Memory reads virtual memory counters.
func (g *Gopsutil) Memory(ctx context.Context) (memory.Reading, error) {
	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return memory.Reading{}, readError("memory", err)
	}
	return readingFromVirtualMemory(vm), nil
}

// Uptime reads seconds since boot.
func (g *Gopsutil) Uptime(ctx context.Context) (uint64, error) {
	seconds, err := host.UptimeWithContext(ctx)
	if err != nil {
		return 0, readError("uptime", err)
	}
	return seconds, nil
}

// LoadAverage reads the load averages.
func (g *Gopsutil) LoadAverage(ctx context.Context) (models.LoadAverages, error) {
	avg, err := load.AvgWithContext(ctx)
	if err != nil {
		return models.LoadAverages{}, readError("load", err)
	}
	return models.LoadAverages{
		Load1:  avg.Load1,
		Load5:  avg.Load5,
		Load15: avg.Load15,
	}, nil
}

// CPUTimes reads aggregate CPU times.
func (g *Gopsutil) CPUTimes(ctx context.Context) (models.CPUTimes, error) {
	times, err := cpu.TimesWithContext(ctx, false)
	if err != nil {
		return models.CPUTimes{}, readError("cpu", err)
	}
	if len(times) == 0 {
		return models.CPUTimes{}, readError("cpu", ErrMalformed)
	}
	return cpuTimesFromStat(times[0]), nil
}

// CPUTemperature picks the CPU package sensor among all reported sensors.
func (g *Gopsutil) CPUTemperature(ctx context.Context) (float64, error) {
	temps, err := sensors.TemperaturesWithContext(ctx)
	if err != nil {
		// Partial results come with a warnings error.
		log.Debug().Err(err).Int("sensors", len(temps)).Msg("Sensor enumeration reported problems")
		if len(temps) == 0 {
			return 0, readError("temperature", err)
		}
	}

	celsius, ok := pickCPUTemperature(temps)
	if !ok {
		return 0, readError("temperature", ErrNoSensor)
	}
	return celsius, nil
}

func readingFromVirtualMemory(vm *mem.VirtualMemoryStat) memory.Reading {
	return memory.Reading{
		Total:        vm.Total,
		Free:         vm.Free,
		Shared:       vm.Shared,
		Buffers:      vm.Buffers,
		Cached:       vm.Cached,
		SReclaimable: vm.Sreclaimable,
	}
}

func cpuTimesFromStat(t cpu.TimesStat) models.CPUTimes {
	return models.CPUTimes{
		User:    t.User,
		Nice:    t.Nice,
		System:  t.System,
		Idle:    t.Idle,
		IOWait:  t.Iowait,
		IRQ:     t.Irq,
		SoftIRQ: t.Softirq,
		Steal:   t.Steal,
	}
}

// pickCPUTemperature prefers sensors whose key names the CPU and falls
// back to the first positive reading.
func pickCPUTemperature(temps []sensors.TemperatureStat) (float64, bool) {
	for _, hint := range cpuSensorHints {
		for _, t := range temps {
			if t.Temperature > 0 && strings.Contains(strings.ToLower(t.SensorKey), hint) {
				return t.Temperature, true
			}
		}
	}

	for _, t := range temps {
		if t.Temperature > 0 {
			return t.Temperature, true
		}
	}
	return 0, false
}
