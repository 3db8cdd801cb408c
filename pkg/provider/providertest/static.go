// Package providertest offers a canned provider.Provider for tests.
package providertest

import (
	"context"

	"github.com/comfortablynick/sysinfo/pkg/memory"
	"github.com/comfortablynick/sysinfo/pkg/models"
)

// Static returns fixed readings, or the configured error per metric.
// CPU samples are served in order and the last one repeats.
type Static struct {
	Reading    memory.Reading
	Seconds    uint64
	Averages   models.LoadAverages
	Celsius    float64
	CPUSamples []models.CPUTimes
	MemoryErr  error
	UptimeErr  error
	LoadErr    error
	TempErr    error
	CPUErr     error
	cpuCalls   int
}

func (s *Static) Memory(context.Context) (memory.Reading, error) {
	return s.Reading, s.MemoryErr
}

func (s *Static) Uptime(context.Context) (uint64, error) {
	return s.Seconds, s.UptimeErr
}

func (s *Static) LoadAverage(context.Context) (models.LoadAverages, error) {
	return s.Averages, s.LoadErr
}

func (s *Static) CPUTemperature(context.Context) (float64, error) {
	return s.Celsius, s.TempErr
}

func (s *Static) CPUTimes(context.Context) (models.CPUTimes, error) {
	if s.CPUErr != nil {
		return models.CPUTimes{}, s.CPUErr
	}
	if len(s.CPUSamples) == 0 {
		return models.CPUTimes{}, nil
	}

	i := s.cpuCalls
	if i >= len(s.CPUSamples) {
		i = len(s.CPUSamples) - 1
	}
	s.cpuCalls++
	return s.CPUSamples[i], nil
}
