// Package memory derives used memory from raw kernel counters.
package memory

import (
	"github.com/comfortablynick/sysinfo/pkg/units"
)

// Reading holds raw memory counters in bytes. Counters the platform
// does not report stay zero.
type Reading struct {
	Total        uint64 `json:"total"`
	Free         uint64 `json:"free"`
	Shared       uint64 `json:"shared"`
	Buffers      uint64 `json:"buffers"`
	Cached       uint64 `json:"cached"`
	SReclaimable uint64 `json:"sreclaimable"`
}

// Stats is the accounted memory usage of a host.
type Stats struct {
	Total uint64 `json:"total"`
	Used  uint64 `json:"used"`
	// Clamped is set when the counters did not add up and Used was
	// pinned to zero or to Total.
	Clamped bool `json:"clamped"`
}

// Options selects how Format renders Stats.
type Options struct {
	Percent  bool
	UsedOnly bool
	Decimal  bool
}

// ComputeUsed applies total - free + shared - buffers - cached - sreclaimable.
// A result below zero is clamped to zero and a result above total is
// clamped to total.
func ComputeUsed(r Reading) Stats {
	added := r.Total + r.Shared
	removed := r.Free + r.Buffers + r.Cached + r.SReclaimable

	stats := Stats{Total: r.Total}
	switch {
	case removed > added:
		stats.Clamped = true
	case added-removed > r.Total:
		stats.Used = r.Total
		stats.Clamped = true
	default:
		stats.Used = added - removed
	}

	return stats
}

// Format renders s as "used/total", the used amount alone, or a percentage.
func Format(s Stats, opts Options) string {
	if opts.Percent {
		return units.Percentage(float64(s.Used), float64(s.Total))
	}

	binary := !opts.Decimal
	used := units.Humanize(float64(s.Used), binary, true)
	if opts.UsedOnly {
		return used
	}

	return used + "/" + units.Humanize(float64(s.Total), binary, true)
}
