package provider

import (
	"context"
	"errors"
	"runtime"
	"testing"
	"time"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"
	"github.com/shirou/gopsutil/v4/sensors"
	"github.com/stretchr/testify/suite"

	"github.com/comfortablynick/sysinfo/pkg/memory"
	"github.com/comfortablynick/sysinfo/pkg/models"
)

// fakeProvider returns queued CPU samples
type fakeProvider struct {
	samples []models.CPUTimes
	calls   int
	err     error
}

func (f *fakeProvider) Memory(context.Context) (memory.Reading, error) { return memory.Reading{}, nil }
func (f *fakeProvider) Uptime(context.Context) (uint64, error)         { return 0, nil }
func (f *fakeProvider) LoadAverage(context.Context) (models.LoadAverages, error) {
	return models.LoadAverages{}, nil
}
func (f *fakeProvider) CPUTemperature(context.Context) (float64, error) { return 0, nil }

func (f *fakeProvider) CPUTimes(context.Context) (models.CPUTimes, error) {
	if f.err != nil {
		return models.CPUTimes{}, f.err
	}
	sample := f.samples[f.calls]
	f.calls++
	return sample, nil
}

// ProviderTestSuite tests provider selection, sampling and errors
type ProviderTestSuite struct {
	suite.Suite
}

// TestNew tests provider selection by name
func (s *ProviderTestSuite) TestNew() {
	p, err := New(NameProcfs, Options{ProcRoot: "/tmp/proc"})
	s.Require().NoError(err)
	s.IsType(&Procfs{}, p)
	s.Equal("/tmp/proc", p.(*Procfs).procRoot)

	p, err = New(NameGopsutil, Options{})
	s.Require().NoError(err)
	s.IsType(&Gopsutil{}, p)
}

// TestNewAuto tests the platform default
func (s *ProviderTestSuite) TestNewAuto() {
	for _, name := range []string{"", NameAuto} {
		p, err := New(name, Options{})
		s.Require().NoError(err)

		if runtime.GOOS == "linux" {
			s.IsType(&Procfs{}, p)
		} else {
			s.IsType(&Gopsutil{}, p)
		}
	}
}

// TestNewUnknown tests an unknown provider name
func (s *ProviderTestSuite) TestNewUnknown() {
	p, err := New("wmi", Options{})
	s.Nil(p)
	s.ErrorIs(err, ErrUnknownProvider)
	s.Contains(err.Error(), "wmi")
}

// TestSampleCPU tests load between two samples
func (s *ProviderTestSuite) TestSampleCPU() {
	fake := &fakeProvider{samples: []models.CPUTimes{
		{User: 10, Idle: 10},
		{User: 40, Idle: 20, System: 10},
	}}

	load, err := SampleCPU(context.Background(), fake, time.Millisecond)
	s.Require().NoError(err)
	s.Equal(2, fake.calls)
	s.InDelta(0.6, load.User, 1e-9)
	s.InDelta(0.2, load.System, 1e-9)
	s.InDelta(0.2, load.Idle, 1e-9)
}

// TestSampleCPUCancelled tests that a done context stops the sample
func (s *ProviderTestSuite) TestSampleCPUCancelled() {
	fake := &fakeProvider{samples: []models.CPUTimes{{}, {}}}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := SampleCPU(ctx, fake, time.Hour)
	s.ErrorIs(err, context.Canceled)
	s.Equal(1, fake.calls)
}

// TestSampleCPUReadFailure tests that read errors surface unchanged
func (s *ProviderTestSuite) TestSampleCPUReadFailure() {
	fake := &fakeProvider{err: readError("stat", errors.New("permission denied"))}

	_, err := SampleCPU(context.Background(), fake, 0)
	s.ErrorIs(err, ErrRead)
	s.Equal("read stat: permission denied", err.Error())
}

// TestReadError tests the error contract
func (s *ProviderTestSuite) TestReadError() {
	cause := errors.New("boom")
	err := readError("meminfo", cause)

	s.ErrorIs(err, ErrRead)
	s.ErrorIs(err, cause)
	s.NotErrorIs(err, ErrNoSensor)
	s.Equal("read meminfo: boom", err.Error())
}

// TestReadingFromVirtualMemory tests gopsutil field mapping
func (s *ProviderTestSuite) TestReadingFromVirtualMemory() {
	vm := &mem.VirtualMemoryStat{Total: 100, Free: 10, Shared: 5, Buffers: 3, Cached: 20, Sreclaimable: 2, Used: 99}

	s.Equal(memory.Reading{Total: 100, Free: 10, Shared: 5, Buffers: 3, Cached: 20, SReclaimable: 2}, readingFromVirtualMemory(vm))
}

// TestCPUTimesFromStat tests gopsutil field mapping
func (s *ProviderTestSuite) TestCPUTimesFromStat() {
	stat := cpu.TimesStat{CPU: "cpu-total", User: 1, Nice: 2, System: 3, Idle: 4, Iowait: 5, Irq: 6, Softirq: 7, Steal: 8}

	s.Equal(models.CPUTimes{User: 1, Nice: 2, System: 3, Idle: 4, IOWait: 5, IRQ: 6, SoftIRQ: 7, Steal: 8}, cpuTimesFromStat(stat))
}

// TestPickCPUTemperature tests sensor selection
func (s *ProviderTestSuite) TestPickCPUTemperature() {
	temps := []sensors.TemperatureStat{
		{SensorKey: "nvme_composite", Temperature: 38},
		{SensorKey: "acpitz", Temperature: 0},
		{SensorKey: "coretemp_package_id_0", Temperature: 55},
	}

	celsius, ok := pickCPUTemperature(temps)
	s.True(ok)
	s.Equal(55.0, celsius)

	celsius, ok = pickCPUTemperature(temps[:2])
	s.True(ok)
	s.Equal(38.0, celsius)

	_, ok = pickCPUTemperature([]sensors.TemperatureStat{{SensorKey: "acpitz"}})
	s.False(ok)

	_, ok = pickCPUTemperature(nil)
	s.False(ok)
}

// TestProviderSuite runs the provider test suite
func TestProviderSuite(t *testing.T) {
	suite.Run(t, new(ProviderTestSuite))
}
