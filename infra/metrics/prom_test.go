package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	coremetrics "github.com/kilianp07/buscheck/core/metrics"
)

func summary() coremetrics.RunSummary {
	return coremetrics.RunSummary{
		RunID: "run-1",
		Time:  time.Now(),
		IssueCounts: map[string]int{
			"battery_low":      2,
			"continuity_break": 1,
		},
		VehiclesUsed:     9,
		DeadheadMinutes:  120,
		TotalEnergyKWh:   1500,
		LowestBatteryKWh: 42,
	}
}

func TestPromSinkRecordsRun(t *testing.T) {
	reg := prometheus.NewRegistry()
	sink, err := NewPromSinkWithRegistry(reg)
	if err != nil {
		t.Fatalf("sink: %v", err)
	}
	if err := sink.RecordRun(summary()); err != nil {
		t.Fatalf("record: %v", err)
	}
	if got := testutil.ToFloat64(sink.issues.WithLabelValues("battery_low")); got != 2 {
		t.Fatalf("battery_low counter = %v, want 2", got)
	}
	if got := testutil.ToFloat64(sink.vehicles); got != 9 {
		t.Fatalf("vehicles gauge = %v, want 9", got)
	}
	if got := testutil.ToFloat64(sink.runs); got != 1 {
		t.Fatalf("runs counter = %v, want 1", got)
	}
}

func TestPromSinkDoubleRegister(t *testing.T) {
	reg := prometheus.NewRegistry()
	first, err := NewPromSinkWithRegistry(reg)
	if err != nil {
		t.Fatalf("first register: %v", err)
	}
	second, err := NewPromSinkWithRegistry(reg)
	if err != nil {
		t.Fatalf("second register must reuse collectors: %v", err)
	}
	// A run recorded through the second sink must land in the registered
	// series, not in orphaned duplicates.
	if err := second.RecordRun(summary()); err != nil {
		t.Fatalf("record: %v", err)
	}
	if got := testutil.ToFloat64(first.runs); got != 1 {
		t.Fatalf("registered runs counter = %v after a recorded run, want 1", got)
	}
	if got := testutil.ToFloat64(first.issues.WithLabelValues("battery_low")); got != 2 {
		t.Fatalf("registered battery_low counter = %v, want 2", got)
	}
	if got := testutil.ToFloat64(second.vehicles); got != 9 {
		t.Fatalf("vehicles gauge = %v, want 9", got)
	}
}

type failingSink struct{}

func (failingSink) RecordRun(coremetrics.RunSummary) error { return errors.New("boom") }

type countingSink struct{ calls int }

func (c *countingSink) RecordRun(coremetrics.RunSummary) error {
	c.calls++
	return nil
}

func TestMultiSinkContinuesOnError(t *testing.T) {
	counting := &countingSink{}
	multi := NewMultiSink(failingSink{}, counting)
	err := multi.RecordRun(summary())
	if err == nil {
		t.Fatalf("expected joined error")
	}
	if counting.calls != 1 {
		t.Fatalf("second sink must still run, got %d calls", counting.calls)
	}
}

func TestFromConfigNop(t *testing.T) {
	sink, err := FromConfig(coremetrics.Config{})
	if err != nil {
		t.Fatalf("from config: %v", err)
	}
	if _, ok := sink.(coremetrics.NopSink); !ok {
		t.Fatalf("expected nop sink, got %T", sink)
	}
}
