package models

// NodeInfo is a snapshot of every host metric, raw and rendered.
type NodeInfo struct {
	Uptime        string            `json:"uptime"`
	UptimeSeconds uint64            `json:"uptime_seconds"`
	LoadAverages  LoadAverages      `json:"load_averages"`
	Load          string            `json:"load"`
	Memory        MemoryInfo        `json:"memory"`
	Temperature   string            `json:"temperature,omitempty"`
	TemperatureC  float64           `json:"temperature_celsius,omitempty"`
	Errors        map[string]string `json:"errors,omitempty"`
}

// LoadAverages represents system load information.
type LoadAverages struct {
	Load1  float64 `json:"load_1"`
	Load5  float64 `json:"load_5"`
	Load15 float64 `json:"load_15"`
}

// MemoryInfo represents accounted memory usage.
type MemoryInfo struct {
	Total   uint64 `json:"total"`
	Used    uint64 `json:"used"`
	Clamped bool   `json:"clamped,omitempty"`
	Display string `json:"display"`
	Percent string `json:"percent"`
}
