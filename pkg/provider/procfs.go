package provider

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/comfortablynick/sysinfo/pkg/log"
	"github.com/comfortablynick/sysinfo/pkg/memory"
	"github.com/comfortablynick/sysinfo/pkg/models"
)

const (
	defaultProcRoot = "/proc"
	defaultSysRoot  = "/sys"

	kbToBytes         = 1024
	milliDegrees      = 1000
	minMemFields      = 2
	minLoadFields     = 3
	minCPUFields      = 5
	thermalZoneGlob   = "class/thermal/thermal_zone*/temp"
	hwmonSensorGlob   = "class/hwmon/hwmon*/temp1_input"
	aggregateCPULabel = "cpu"
)

// Procfs reads metrics from the Linux proc and sys pseudo filesystems.
type Procfs struct {
	procRoot string
	sysRoot  string
}

// NewProcfs returns a Procfs rooted at procRoot and sysRoot; empty roots
// default to /proc and /sys.
func NewProcfs(procRoot, sysRoot string) *Procfs {
	if procRoot == "" {
		procRoot = defaultProcRoot
	}
	if sysRoot == "" {
		sysRoot = defaultSysRoot
	}
	return &Procfs{procRoot: procRoot, sysRoot: sysRoot}
}

// Memory reads <proc>/meminfo.
func (p *Procfs) Memory(_ context.Context) (memory.Reading, error) {
	path := filepath.Join(p.procRoot, "meminfo")
	file, err := os.Open(path)
	if err != nil {
		return memory.Reading{}, readError(path, err)
	}
	defer closeFile(file, path)

	reading, found, err := parseMemInfo(file)
	if err != nil {
		return memory.Reading{}, readError(path, err)
	}
	if !found {
		return memory.Reading{}, readError(path, fmt.Errorf("%w: no MemTotal line", ErrMalformed))
	}

	log.Trace().Str("path", path).Interface("reading", reading).Msg("Parsed meminfo")
	return reading, nil
}

// Uptime reads the first field of <proc>/uptime.
func (p *Procfs) Uptime(_ context.Context) (uint64, error) {
	path := filepath.Join(p.procRoot, "uptime")
	fields, err := readFields(path)
	if err != nil {
		return 0, readError(path, err)
	}
	if len(fields) < 1 {
		return 0, readError(path, fmt.Errorf("%w: empty file", ErrMalformed))
	}

	seconds, err := strconv.ParseFloat(fields[0], 64)
	if err != nil || seconds < 0 {
		return 0, readError(path, fmt.Errorf("%w: uptime %q", ErrMalformed, fields[0]))
	}

	return uint64(seconds), nil
}

// LoadAverage reads the first three fields of <proc>/loadavg.
func (p *Procfs) LoadAverage(_ context.Context) (models.LoadAverages, error) {
	path := filepath.Join(p.procRoot, "loadavg")
	fields, err := readFields(path)
	if err != nil {
		return models.LoadAverages{}, readError(path, err)
	}
	if len(fields) < minLoadFields {
		return models.LoadAverages{}, readError(path, fmt.Errorf("%w: %d fields", ErrMalformed, len(fields)))
	}

	var values [minLoadFields]float64
	for i := range values {
		values[i], err = strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return models.LoadAverages{}, readError(path, fmt.Errorf("%w: load %q", ErrMalformed, fields[i]))
		}
	}

	return models.LoadAverages{
		Load1:  values[0],
		Load5:  values[1],
		Load15: values[2],
	}, nil
}

// CPUTimes reads the aggregate "cpu" line of <proc>/stat.
func (p *Procfs) CPUTimes(_ context.Context) (models.CPUTimes, error) {
	path := filepath.Join(p.procRoot, "stat")
	file, err := os.Open(path)
	if err != nil {
		return models.CPUTimes{}, readError(path, err)
	}
	defer closeFile(file, path)

	times, err := parseCPUStat(file)
	if err != nil {
		return models.CPUTimes{}, readError(path, err)
	}
	return times, nil
}

// CPUTemperature reads the first usable thermal zone, falling back to
// hwmon sensors.
func (p *Procfs) CPUTemperature(_ context.Context) (float64, error) {
	for _, pattern := range []string{thermalZoneGlob, hwmonSensorGlob} {
		matches, err := filepath.Glob(filepath.Join(p.sysRoot, pattern))
		if err != nil {
			return 0, readError(pattern, err)
		}
		sort.Strings(matches)

		for _, path := range matches {
			celsius, err := readMilliCelsius(path)
			if err != nil {
				log.Debug().Err(err).Str("path", path).Msg("Skipping temperature sensor")
				continue
			}
			return celsius, nil
		}
	}

	return 0, readError(filepath.Join(p.sysRoot, "class"), ErrNoSensor)
}

func parseMemInfo(r io.Reader) (memory.Reading, bool, error) {
	var reading memory.Reading
	found := false

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) < minMemFields {
			continue
		}

		key := strings.TrimSuffix(fields[0], ":")
		value, err := strconv.ParseUint(fields[1], 10, 64)
		if err != nil {
			continue
		}
		// Values are in kB unless the line carries no unit.
		if len(fields) > minMemFields && fields[2] == "kB" {
			value *= kbToBytes
		}

		if parseMemValue(key, value, &reading) && key == "MemTotal" {
			found = true
		}
	}

	return reading, found, scanner.Err()
}

func parseMemValue(key string, value uint64, reading *memory.Reading) bool {
	switch key {
	case "MemTotal":
		reading.Total = value
	case "MemFree":
		reading.Free = value
	case "Shmem":
		reading.Shared = value
	case "Buffers":
		reading.Buffers = value
	case "Cached":
		reading.Cached = value
	case "SReclaimable":
		reading.SReclaimable = value
	default:
		return false
	}
	return true
}

func parseCPUStat(r io.Reader) (models.CPUTimes, error) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 || fields[0] != aggregateCPULabel {
			continue
		}
		if len(fields) < minCPUFields {
			return models.CPUTimes{}, fmt.Errorf("%w: %d cpu fields", ErrMalformed, len(fields))
		}

		// user nice system idle iowait irq softirq steal; older kernels stop early.
		var values [8]float64
		for i := range values {
			if i+1 >= len(fields) {
				break
			}
			v, err := strconv.ParseUint(fields[i+1], 10, 64)
			if err != nil {
				return models.CPUTimes{}, fmt.Errorf("%w: cpu field %q", ErrMalformed, fields[i+1])
			}
			values[i] = float64(v)
		}

		return models.CPUTimes{
			User:    values[0],
			Nice:    values[1],
			System:  values[2],
			Idle:    values[3],
			IOWait:  values[4],
			IRQ:     values[5],
			SoftIRQ: values[6],
			Steal:   values[7],
		}, nil
	}
	if err := scanner.Err(); err != nil {
		return models.CPUTimes{}, err
	}

	return models.CPUTimes{}, fmt.Errorf("%w: no aggregate cpu line", ErrMalformed)
}

func readMilliCelsius(path string) (float64, error) {
	fields, err := readFields(path)
	if err != nil {
		return 0, err
	}
	if len(fields) < 1 {
		return 0, fmt.Errorf("%w: empty sensor", ErrMalformed)
	}

	milli, err := strconv.ParseInt(fields[0], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: sensor value %q", ErrMalformed, fields[0])
	}
	return float64(milli) / milliDegrees, nil
}

func readFields(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return strings.Fields(string(data)), nil
}

func closeFile(file *os.File, path string) {
	if closeErr := file.Close(); closeErr != nil {
		log.Warn().Err(closeErr).Str("path", path).Msg("Failed to close file")
	}
}
