package scenarios

import (
	"fmt"

	"github.com/kilianp07/buscheck/app"
	"github.com/kilianp07/buscheck/config"
	"github.com/kilianp07/buscheck/core/model"
	"github.com/kilianp07/buscheck/core/normalize"
	"github.com/kilianp07/buscheck/core/report"
)

// Run executes the scenario through the full validation pipeline and returns
// the report.
func (s Scenario) Run() (report.Report, error) {
	cfg := config.Default()
	if s.Granularity != "" {
		cfg.Checks.CoverageGranularity = s.Granularity
	}
	cfg.Battery.StrictHalt = s.StrictHalt
	if err := cfg.Validate(); err != nil {
		return report.Report{}, err
	}

	svc, err := app.New(cfg)
	if err != nil {
		return report.Report{}, err
	}
	defer func() { _ = svc.Close() }()

	plan := make([]normalize.RawPlanRow, len(s.Plan))
	for i, d := range s.Plan {
		plan[i] = d.toRaw(i + 1)
	}
	dist := make([]normalize.RawDistanceRow, len(s.Distance))
	for i, d := range s.Distance {
		dist[i] = d.toRaw(i + 1)
	}
	tt := make([]normalize.RawTimetableRow, len(s.Timetable))
	for i, d := range s.Timetable {
		tt[i] = d.toRaw(i + 1)
	}
	return svc.Validate(plan, dist, tt)
}

// Check runs the scenario and compares issue counts against Expect.
func (s Scenario) Check() error {
	rep, err := s.Run()
	if err != nil {
		return err
	}
	counts := rep.Counts()
	for kind, want := range s.Expect {
		if got := counts[model.IssueKind(kind)]; got != want {
			return fmt.Errorf("scenario %s: expected %d %s issue(s), got %d", s.Name, want, kind, got)
		}
	}
	for kind, got := range counts {
		if _, ok := s.Expect[string(kind)]; !ok && got > 0 {
			return fmt.Errorf("scenario %s: unexpected %s issue(s): %d", s.Name, kind, got)
		}
	}
	return nil
}
