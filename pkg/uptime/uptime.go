// Package uptime renders an elapsed duration as a compact w/d/h/m string.
package uptime

import (
	"strconv"
	"strings"
)

// Glyph prefixes every rendered uptime.
const Glyph = "↑"

const (
	secondsPerMinute = 60
	secondsPerHour   = 60 * secondsPerMinute
	secondsPerDay    = 24 * secondsPerHour
	secondsPerWeek   = 7 * secondsPerDay
)

// Components is an elapsed duration split into calendar units.
// Days excludes whole weeks; seconds are dropped.
type Components struct {
	Weeks        uint64
	Days         uint64
	Hours        uint64
	Minutes      uint64
	TotalSeconds uint64
}

// Policy controls which components Render prints.
type Policy struct {
	// WeekAware prints whole weeks instead of folding them into days.
	WeekAware bool `yaml:"weeks"`
	// Precise prints minutes below one day even when hours are shown.
	Precise bool `yaml:"precise"`
}

// Decompose splits totalSeconds into weeks, days, hours and minutes.
func Decompose(totalSeconds uint64) Components {
	rest := totalSeconds
	c := Components{TotalSeconds: totalSeconds}

	c.Weeks, rest = rest/secondsPerWeek, rest%secondsPerWeek
	c.Days, rest = rest/secondsPerDay, rest%secondsPerDay
	c.Hours, rest = rest/secondsPerHour, rest%secondsPerHour
	c.Minutes = rest / secondsPerMinute

	return c
}

// Render prints c under policy p, e.g. "↑2w3d", "↑5h" or "↑42m".
func Render(c Components, p Policy) string {
	var b strings.Builder
	b.WriteString(Glyph)

	days := c.Weeks*7 + c.Days
	if p.WeekAware && c.Weeks > 0 {
		writeUnit(&b, c.Weeks, 'w')
		days = c.Days
	}

	if days > 0 {
		writeUnit(&b, days, 'd')
	}

	if c.Hours > 0 {
		writeUnit(&b, c.Hours, 'h')
	}

	// Minutes never follow a day. Under one hour they are the only unit left.
	if c.TotalSeconds < secondsPerDay && (p.Precise || c.Hours == 0) {
		writeUnit(&b, c.Minutes, 'm')
	}

	return b.String()
}

// Format decomposes totalSeconds and renders it under p.
func Format(totalSeconds uint64, p Policy) string {
	return Render(Decompose(totalSeconds), p)
}

func writeUnit(b *strings.Builder, n uint64, unit byte) {
	b.WriteString(strconv.FormatUint(n, 10))
	b.WriteByte(unit)
}
