// Package format renders load, temperature and CPU readings as one-line strings.
package format

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/comfortablynick/sysinfo/pkg/models"
)

// DegreeSign follows every rendered temperature.
const DegreeSign = "º"

// MaxLoadAverages is the number of load averages the kernel reports.
const MaxLoadAverages = 3

// Load renders the first n load averages with two decimals.
func Load(avg models.LoadAverages, n int) (string, error) {
	if n < 1 || n > MaxLoadAverages {
		return "", fmt.Errorf("%w: got %d", ErrInvalidLoadCount, n)
	}

	values := []float64{avg.Load1, avg.Load5, avg.Load15}
	parts := make([]string, 0, n)
	for _, v := range values[:n] {
		parts = append(parts, strconv.FormatFloat(v, 'f', 2, 64))
	}

	return strings.Join(parts, " "), nil
}

// CelsiusToFahrenheit converts a temperature reading.
func CelsiusToFahrenheit(c float64) float64 {
	return c*9/5 + 32
}

// Temperature renders a whole-degree reading, in Fahrenheit unless
// celsius is set.
func Temperature(celsius float64, useCelsius bool) string {
	if !useCelsius {
		celsius = CelsiusToFahrenheit(celsius)
	}
	return strconv.FormatFloat(celsius, 'f', 0, 64) + DegreeSign
}

// CPUBusy renders the non-idle share of a CPU sample.
func CPUBusy(l models.CPULoad) string {
	return fmt.Sprintf("%.1f%%", l.Busy()*100)
}

// CPUBreakdown renders every state of a CPU sample.
func CPUBreakdown(l models.CPULoad) string {
	return fmt.Sprintf("CPU load: %.1f%% user, %.1f%% nice, %.1f%% system, %.1f%% intr, %.1f%% idle",
		l.User*100, l.Nice*100, l.System*100, l.Interrupt*100, l.Idle*100)
}
