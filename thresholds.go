package main

import "fmt"

// Thresholds are the alert limits, fixed for the process lifetime.
type Thresholds struct {
	TempLimit int
	DiskLimit int
	RAMLimit  int
}

// EvaluateSnapshot compares a snapshot against the limits and returns one
// line per violated metric, temperature before RAM so the combined alert
// text is deterministic. A temperature of 0 means the sensor is
// unavailable and never counts as a violation. Load average is
// intentionally informational only and never alerts.
func EvaluateSnapshot(snap MetricSnapshot, limits Thresholds) []string {
	var issues []string
	if snap.TempC >= float64(limits.TempLimit) && snap.TempC > 0 {
		issues = append(issues, fmt.Sprintf("CPU Overheat: %gC", snap.TempC))
	}
	if snap.RAMUsedPercent >= float64(limits.RAMLimit) {
		issues = append(issues, fmt.Sprintf("High RAM Usage: %g%%", snap.RAMUsedPercent))
	}
	return issues
}
