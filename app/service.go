// Package app wires ingestion, normalization, the checkers, and the
// reporting sinks into one validation service.
package app

import (
	"fmt"
	"sort"

	"github.com/kilianp07/buscheck/config"
	"github.com/kilianp07/buscheck/core/battery"
	"github.com/kilianp07/buscheck/core/check"
	coremetrics "github.com/kilianp07/buscheck/core/metrics"
	"github.com/kilianp07/buscheck/core/model"
	"github.com/kilianp07/buscheck/core/normalize"
	"github.com/kilianp07/buscheck/core/report"
	"github.com/kilianp07/buscheck/infra/ingest"
	"github.com/kilianp07/buscheck/infra/logger"
	"github.com/kilianp07/buscheck/infra/metrics"
	"github.com/kilianp07/buscheck/infra/store"
)

// Service runs plan validations against the configured sinks and store.
type Service struct {
	cfg   *config.Config
	log   logger.Logger
	sink  coremetrics.ValidationSink
	store *store.SQLiteStore
}

// New creates a Service from the configuration.
func New(cfg *config.Config) (*Service, error) {
	logg := logger.New("service")
	sink, err := metrics.FromConfig(cfg.Metrics)
	if err != nil {
		return nil, fmt.Errorf("metrics sink: %w", err)
	}
	svc := &Service{cfg: cfg, log: logg, sink: sink}
	if cfg.Store.Enabled {
		st, err := store.New(cfg.Store.Path)
		if err != nil {
			return nil, fmt.Errorf("issue store: %w", err)
		}
		svc.store = st
	}
	return svc, nil
}

// ValidateFiles loads the three CSV tables and validates the plan.
func (s *Service) ValidateFiles(planPath, distancePath, timetablePath string) (report.Report, error) {
	planRows, err := ingest.ReadPlanFile(planPath)
	if err != nil {
		return report.Report{}, fmt.Errorf("plan: %w", err)
	}
	distRows, err := ingest.ReadDistanceFile(distancePath)
	if err != nil {
		return report.Report{}, fmt.Errorf("distance reference: %w", err)
	}
	ttRows, err := ingest.ReadTimetableFile(timetablePath)
	if err != nil {
		return report.Report{}, fmt.Errorf("timetable: %w", err)
	}
	return s.Validate(planRows, distRows, ttRows)
}

// Validate normalizes the raw tables, runs every checker, and aggregates the
// result into one report. Structural errors abort; plan violations never do.
func (s *Service) Validate(planRows []normalize.RawPlanRow, distRows []normalize.RawDistanceRow, ttRows []normalize.RawTimetableRow) (report.Report, error) {
	plan, planIssues := normalize.Plan(planRows)
	refs, refIssues := normalize.DistanceTable(distRows, s.cfg.Normalize)
	timetable, ttIssues := normalize.Timetable(ttRows)
	plan = normalize.DropZeroDuration(plan)

	s.log.Debugw("normalized inputs", map[string]any{
		"activities": len(plan),
		"segments":   len(refs),
		"timetable":  len(timetable),
	})

	// The simulator requires (vehicle, start time) order; sorting happens
	// here, explicitly, on our own copy of the plan.
	sorted := make([]model.Activity, len(plan))
	copy(sorted, plan)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Vehicle != sorted[j].Vehicle {
			return sorted[i].Vehicle < sorted[j].Vehicle
		}
		return sorted[i].Start < sorted[j].Start
	})

	day := battery.DayWindowFromTimetable(timetable, refs)
	sim := battery.New(s.cfg.Battery, refs, day)
	batteryIssues, traces, err := sim.Run(sorted)
	if err != nil {
		return report.Report{}, fmt.Errorf("battery simulation: %w", err)
	}

	r := report.New(
		planIssues,
		refIssues,
		ttIssues,
		batteryIssues,
		check.Continuity(sorted),
		check.Coverage(plan, timetable, s.cfg.Checks),
		check.TravelTime(plan, refs),
	)
	r.KPI = report.ComputeKPI(plan, refs, s.cfg.Battery, traces)

	s.log.Infof("validation run %s: %d issues (%d violations), %d vehicles",
		r.RunID, len(r.Issues), r.Violations(), r.KPI.VehiclesUsed)

	if err := s.record(r); err != nil {
		// Observability failures must not fail the validation itself.
		s.log.Errorf("record run: %v", err)
	}
	return r, nil
}

func (s *Service) record(r report.Report) error {
	counts := make(map[string]int)
	for kind, n := range r.Counts() {
		counts[string(kind)] = n
	}
	if err := s.sink.RecordRun(coremetrics.RunSummary{
		RunID:            r.RunID,
		Time:             r.GeneratedAt,
		IssueCounts:      counts,
		VehiclesUsed:     r.KPI.VehiclesUsed,
		DeadheadMinutes:  r.KPI.DeadheadMinutes,
		TotalEnergyKWh:   r.KPI.TotalEnergyKWh,
		LowestBatteryKWh: r.KPI.LowestBatteryKWh,
	}); err != nil {
		return err
	}
	if s.store != nil {
		return s.store.SaveReport(r)
	}
	return nil
}

// Store exposes the issue store, nil when persistence is disabled.
func (s *Service) Store() *store.SQLiteStore { return s.store }

// Close releases resources held by the service.
func (s *Service) Close() error {
	if s.store != nil {
		return s.store.Close()
	}
	return nil
}
