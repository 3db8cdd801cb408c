package models

// CPUTimes holds cumulative time spent in each CPU state, in the units
// the platform reports (USER_HZ ticks on Linux, seconds via gopsutil).
type CPUTimes struct {
	User    float64 `json:"user"`
	Nice    float64 `json:"nice"`
	System  float64 `json:"system"`
	Idle    float64 `json:"idle"`
	IOWait  float64 `json:"iowait"`
	IRQ     float64 `json:"irq"`
	SoftIRQ float64 `json:"softirq"`
	Steal   float64 `json:"steal"`
}

// CPULoad is the share of time, between 0 and 1, spent in each state
// over a sampling interval.
type CPULoad struct {
	User      float64 `json:"user"`
	Nice      float64 `json:"nice"`
	System    float64 `json:"system"`
	Interrupt float64 `json:"interrupt"`
	Idle      float64 `json:"idle"`
}

// Busy is the share of time not spent idle.
func (l CPULoad) Busy() float64 {
	return l.User + l.Nice + l.System + l.Interrupt
}

// CPULoadFromTimes computes the load between two samples. Counters that
// went backwards count as zero; an empty interval yields a zero load.
func CPULoadFromTimes(prev, cur CPUTimes) CPULoad {
	user := delta(prev.User, cur.User)
	nice := delta(prev.Nice, cur.Nice)
	system := delta(prev.System, cur.System)
	interrupt := delta(prev.IRQ, cur.IRQ) + delta(prev.SoftIRQ, cur.SoftIRQ)
	idle := delta(prev.Idle, cur.Idle) + delta(prev.IOWait, cur.IOWait)
	steal := delta(prev.Steal, cur.Steal)

	total := user + nice + system + interrupt + idle + steal
	if total <= 0 {
		return CPULoad{}
	}

	return CPULoad{
		User:      user / total,
		Nice:      nice / total,
		System:    system / total,
		Interrupt: interrupt / total,
		Idle:      idle / total,
	}
}

func delta(prev, cur float64) float64 {
	if cur < prev {
		return 0
	}
	return cur - prev
}
