// Package metrics defines the sink interface validation runs are recorded
// through. Implementations live in infra/metrics.
package metrics

import "time"

// RunSummary is the per-run record handed to sinks: issue counts by kind
// plus the headline KPIs.
type RunSummary struct {
	RunID       string
	Time        time.Time
	IssueCounts map[string]int

	VehiclesUsed     int
	DeadheadMinutes  float64
	TotalEnergyKWh   float64
	LowestBatteryKWh float64
}

// TotalIssues sums the per-kind counts.
func (s RunSummary) TotalIssues() int {
	n := 0
	for _, c := range s.IssueCounts {
		n += c
	}
	return n
}

// ValidationSink records validation run summaries for observability.
type ValidationSink interface {
	RecordRun(summary RunSummary) error
}

// NopSink discards everything.
type NopSink struct{}

func (NopSink) RecordRun(RunSummary) error { return nil }
