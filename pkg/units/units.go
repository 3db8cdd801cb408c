// Package units renders byte magnitudes and ratios as short strings.
package units

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

const (
	binaryBase  = 1024
	decimalBase = 1000
	byteSuffix  = "B"
)

// prefixes is the unit ladder shared by both bases. Index 1 is rendered
// as "K" for the binary base.
var prefixes = []string{"", "k", "M", "G", "T", "P", "E", "Z", "Y"}

var humanizedPattern = regexp.MustCompile(`^(-?)(\d+(?:\.\d+)?)([kKMGTPEZY]?)(B?)$`)

func base(binary bool) float64 {
	if binary {
		return binaryBase
	}
	return decimalBase
}

func prefix(exp int, binary bool) string {
	if binary && exp == 1 {
		return "K"
	}
	return prefixes[exp]
}

// exponent picks the ladder index for a magnitude >= 1.
func exponent(abs, div float64) int {
	last := len(prefixes) - 1
	exp := int(math.Floor(math.Log(abs) / math.Log(div)))
	if exp < 0 {
		exp = 0
	}
	if exp > last {
		exp = last
	}
	// Log ratios are not exact at powers of the base.
	for exp < last && abs >= math.Pow(div, float64(exp+1)) {
		exp++
	}
	for exp > 0 && abs < math.Pow(div, float64(exp)) {
		exp--
	}
	return exp
}

// Humanize renders value as "<n.nn><prefix>[B]", scaling by 1024 when
// binary is set and by 1000 otherwise. Magnitudes below one and
// non-finite values are returned as-is.
func Humanize(value float64, binary, suffix bool) string {
	unit := ""
	if suffix {
		unit = byteSuffix
	}

	abs := math.Abs(value)
	if abs < 1 || math.IsNaN(value) || math.IsInf(value, 0) {
		return strconv.FormatFloat(value, 'f', -1, 64) + unit
	}

	sign := ""
	if value < 0 {
		sign = "-"
	}

	div := base(binary)
	exp := exponent(abs, div)
	scaled := abs / math.Pow(div, float64(exp))

	return sign + strconv.FormatFloat(scaled, 'f', 2, 64) + prefix(exp, binary) + unit
}

// Percentage renders used/total as a percentage with one decimal.
// A zero total renders as "0.0%".
func Percentage(used, total float64) string {
	if total == 0 {
		return "0.0%"
	}
	return fmt.Sprintf("%.1f%%", used/total*100)
}

// ParseHumanized reads back a string produced by Humanize. The result is
// only as precise as the two decimals that were rendered.
func ParseHumanized(s string, binary bool) (float64, error) {
	m := humanizedPattern.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return 0, fmt.Errorf("%w: %q", ErrParse, s)
	}

	n, err := strconv.ParseFloat(m[2], 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %w", ErrParse, s, err)
	}

	if m[3] != "" {
		exp := prefixIndex(m[3])
		if exp <= 0 {
			return 0, fmt.Errorf("%w: %q: unknown prefix %q", ErrParse, s, m[3])
		}
		n *= math.Pow(base(binary), float64(exp))
	}

	if m[1] == "-" {
		n = -n
	}
	return n, nil
}

func prefixIndex(p string) int {
	if p == "K" {
		return 1
	}
	for i, candidate := range prefixes {
		if candidate == p {
			return i
		}
	}
	return -1
}
