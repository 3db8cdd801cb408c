package format

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/comfortablynick/sysinfo/pkg/models"
)

// FormatTestSuite tests load, temperature and CPU rendering
type FormatTestSuite struct {
	suite.Suite
	avg models.LoadAverages
}

// SetupTest runs before each test
func (s *FormatTestSuite) SetupTest() {
	s.avg = models.LoadAverages{Load1: 0.5, Load5: 1.234, Load15: 12}
}

// TestLoad tests every supported count
func (s *FormatTestSuite) TestLoad() {
	cases := map[int]string{
		1: "0.50",
		2: "0.50 1.23",
		3: "0.50 1.23 12.00",
	}

	for n, expected := range cases {
		out, err := Load(s.avg, n)
		s.Require().NoError(err)
		s.Equal(expected, out)
	}
}

// TestLoadInvalidCount tests counts outside 1..3
func (s *FormatTestSuite) TestLoadInvalidCount() {
	for _, n := range []int{-1, 0, 4, 100} {
		out, err := Load(s.avg, n)
		s.ErrorIs(err, ErrInvalidLoadCount)
		s.Empty(out)
	}
}

// TestTemperature tests both scales
func (s *FormatTestSuite) TestTemperature() {
	s.Equal("45º", Temperature(45.2, true))
	s.Equal("113º", Temperature(45, false))
	s.Equal("32º", Temperature(0, false))
	s.Equal("-40º", Temperature(-40, false))
	s.Equal("212º", Temperature(100, false))
}

// TestCelsiusToFahrenheit tests the conversion
func (s *FormatTestSuite) TestCelsiusToFahrenheit() {
	s.InDelta(98.6, CelsiusToFahrenheit(37), 1e-9)
}

// TestCPUBusy tests the busy share
func (s *FormatTestSuite) TestCPUBusy() {
	load := models.CPULoad{User: 0.2, Nice: 0.01, System: 0.05, Interrupt: 0.004, Idle: 0.736}

	s.Equal("26.4%", CPUBusy(load))
	s.Equal("0.0%", CPUBusy(models.CPULoad{}))
}

// TestCPUBreakdown tests the per-state line
func (s *FormatTestSuite) TestCPUBreakdown() {
	load := models.CPULoad{User: 0.25, Nice: 0, System: 0.125, Interrupt: 0.025, Idle: 0.6}

	s.Equal("CPU load: 25.0% user, 0.0% nice, 12.5% system, 2.5% intr, 60.0% idle", CPUBreakdown(load))
}

// TestFormatSuite runs the format test suite
func TestFormatSuite(t *testing.T) {
	suite.Run(t, new(FormatTestSuite))
}
