package memory

import (
	"testing"

	"github.com/stretchr/testify/suite"
)

const gib = 1024 * 1024 * 1024

// MemoryTestSuite tests used memory accounting and rendering
type MemoryTestSuite struct {
	suite.Suite
}

// TestComputeUsed tests the accounting formula
func (s *MemoryTestSuite) TestComputeUsed() {
	stats := ComputeUsed(Reading{Total: 1000, Free: 400, Buffers: 100, Cached: 100})

	s.Equal(uint64(1000), stats.Total)
	s.Equal(uint64(400), stats.Used)
	s.False(stats.Clamped)
}

// TestComputeUsedAddsShared tests that shared memory counts as used
func (s *MemoryTestSuite) TestComputeUsedAddsShared() {
	stats := ComputeUsed(Reading{
		Total:        8 * gib,
		Free:         2 * gib,
		Shared:       gib / 2,
		Buffers:      gib / 4,
		Cached:       gib,
		SReclaimable: gib / 4,
	})

	s.Equal(uint64(5*gib), stats.Used)
	s.False(stats.Clamped)
}

// TestComputeUsedMissingCounters tests that absent counters read as zero
func (s *MemoryTestSuite) TestComputeUsedMissingCounters() {
	stats := ComputeUsed(Reading{Total: 4096, Free: 1024})

	s.Equal(uint64(3072), stats.Used)
	s.False(stats.Clamped)

	s.Equal(Stats{}, ComputeUsed(Reading{}))
}

// TestComputeUsedClampsUnderflow tests that caches larger than usage clamp to zero
func (s *MemoryTestSuite) TestComputeUsedClampsUnderflow() {
	stats := ComputeUsed(Reading{Total: 1000, Free: 600, Buffers: 300, Cached: 200, SReclaimable: 50})

	s.Equal(uint64(0), stats.Used)
	s.True(stats.Clamped)
}

// TestComputeUsedClampsOverflow tests that used never exceeds total
func (s *MemoryTestSuite) TestComputeUsedClampsOverflow() {
	stats := ComputeUsed(Reading{Total: 1000, Free: 100, Shared: 500})

	s.Equal(uint64(1000), stats.Used)
	s.True(stats.Clamped)
}

// TestComputeUsedExactZero tests the boundary where usage is exactly zero
func (s *MemoryTestSuite) TestComputeUsedExactZero() {
	stats := ComputeUsed(Reading{Total: 1000, Free: 500, Cached: 500})

	s.Equal(uint64(0), stats.Used)
	s.False(stats.Clamped)
}

// TestFormat tests the rendering modes
func (s *MemoryTestSuite) TestFormat() {
	stats := Stats{Total: 8 * gib, Used: 3 * gib}

	s.Equal("3.00GB/8.00GB", Format(stats, Options{}))
	s.Equal("3.00GB", Format(stats, Options{UsedOnly: true}))
	s.Equal("37.5%", Format(stats, Options{Percent: true}))
	s.Equal("37.5%", Format(stats, Options{Percent: true, UsedOnly: true}))
	s.Equal("3.22GB/8.59GB", Format(stats, Options{Decimal: true}))
}

// TestFormatZeroTotal tests rendering when no memory was reported
func (s *MemoryTestSuite) TestFormatZeroTotal() {
	s.Equal("0.0%", Format(Stats{}, Options{Percent: true}))
	s.Equal("0B/0B", Format(Stats{}, Options{}))
}

// TestMemorySuite runs the memory test suite
func TestMemorySuite(t *testing.T) {
	suite.Run(t, new(MemoryTestSuite))
}
