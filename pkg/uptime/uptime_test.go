package uptime

import (
	"testing"

	"github.com/stretchr/testify/suite"
)

// UptimeTestSuite tests duration decomposition and rendering
type UptimeTestSuite struct {
	suite.Suite
}

// TestDecompose tests splitting seconds into units
func (s *UptimeTestSuite) TestDecompose() {
	c := Decompose(694861)

	s.Equal(Components{Weeks: 1, Days: 1, Hours: 1, Minutes: 1, TotalSeconds: 694861}, c)
	s.Equal(Components{}, Decompose(0))
	s.Equal(Components{Weeks: 1, TotalSeconds: secondsPerWeek}, Decompose(secondsPerWeek))
}

// TestDecomposeReconstructs tests that components add back up to the minute
func (s *UptimeTestSuite) TestDecomposeReconstructs() {
	for _, total := range []uint64{0, 59, 60, 3599, 3600, 86399, 86400, 604799, 604800, 694861, 31_536_000, 123_456_789} {
		c := Decompose(total)
		rebuilt := c.Weeks*secondsPerWeek + c.Days*secondsPerDay + c.Hours*secondsPerHour + c.Minutes*secondsPerMinute

		s.LessOrEqual(rebuilt, total)
		s.Less(total-rebuilt, uint64(secondsPerMinute), "total %d", total)
		s.Less(c.Days, uint64(7))
		s.Less(c.Hours, uint64(24))
		s.Less(c.Minutes, uint64(60))
	}
}

// TestRenderWeekAndDay tests the example duration under every policy
func (s *UptimeTestSuite) TestRenderWeekAndDay() {
	const total = 694861 // 1w 1d 1h 1m 1s

	s.Equal("↑1w1d1h", Format(total, Policy{WeekAware: true}))
	s.Equal("↑1w1d1h", Format(total, Policy{WeekAware: true, Precise: true}))
	s.Equal("↑8d1h", Format(total, Policy{Precise: true}))
	s.Equal("↑8d1h", Format(total, Policy{}))
}

// TestRenderExactWeek tests the week boundary
func (s *UptimeTestSuite) TestRenderExactWeek() {
	s.Equal("↑1w", Format(secondsPerWeek, Policy{WeekAware: true}))
	s.Equal("↑1w", Format(secondsPerWeek, Policy{WeekAware: true, Precise: true}))
	s.Equal("↑7d", Format(secondsPerWeek, Policy{}))
	s.Equal("↑1w1h", Format(secondsPerWeek+secondsPerHour+59, Policy{WeekAware: true}))
	s.Equal("↑6d23h", Format(secondsPerWeek-1, Policy{WeekAware: true, Precise: true}))
}

// TestRenderWeeksAndDays tests that weeks never leak into days
func (s *UptimeTestSuite) TestRenderWeeksAndDays() {
	total := uint64(2*secondsPerWeek + 3*secondsPerDay)

	s.Equal("↑2w3d", Format(total, Policy{WeekAware: true}))
	s.Equal("↑17d", Format(total, Policy{}))
}

// TestRenderDays tests durations of at least one day without weeks
func (s *UptimeTestSuite) TestRenderDays() {
	s.Equal("↑1d", Format(secondsPerDay, Policy{}))
	s.Equal("↑1d", Format(secondsPerDay, Policy{Precise: true}))

	total := uint64(secondsPerDay + 5*secondsPerHour + 30*secondsPerMinute)
	s.Equal("↑1d5h", Format(total, Policy{}))
	s.Equal("↑1d5h", Format(total, Policy{Precise: true}))
	s.Equal("↑1d5h", Format(total, Policy{Precise: true, WeekAware: true}))
}

// TestRenderSubDay tests durations under one day
func (s *UptimeTestSuite) TestRenderSubDay() {
	fiveAndHalf := uint64(5*secondsPerHour + 30*secondsPerMinute)

	s.Equal("↑5h", Format(fiveAndHalf, Policy{}))
	s.Equal("↑5h30m", Format(fiveAndHalf, Policy{Precise: true}))
	s.Equal("↑5h", Format(5*secondsPerHour, Policy{}))
	s.Equal("↑5h0m", Format(5*secondsPerHour, Policy{Precise: true}))
	s.Equal("↑23h", Format(secondsPerDay-1, Policy{}))
	s.Equal("↑23h59m", Format(secondsPerDay-1, Policy{Precise: true}))
}

// TestRenderSubHour tests that minutes are shown under one hour
func (s *UptimeTestSuite) TestRenderSubHour() {
	s.Equal("↑42m", Format(42*secondsPerMinute, Policy{}))
	s.Equal("↑42m", Format(42*secondsPerMinute+59, Policy{Precise: true}))
	s.Equal("↑0m", Format(59, Policy{}))
	s.Equal("↑0m", Format(0, Policy{WeekAware: true, Precise: true}))
}

// TestRenderPrefix tests that the glyph leads every string
func (s *UptimeTestSuite) TestRenderPrefix() {
	for _, total := range []uint64{0, 3600, 86400, 694861} {
		s.Contains(Format(total, Policy{}), Glyph)
		s.Equal(Glyph, Format(total, Policy{})[:len(Glyph)])
	}
}

// TestUptimeSuite runs the uptime test suite
func TestUptimeSuite(t *testing.T) {
	suite.Run(t, new(UptimeTestSuite))
}
