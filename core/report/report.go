// Package report aggregates checker output into one validation report.
package report

import (
	"time"

	"github.com/google/uuid"

	"github.com/kilianp07/buscheck/core/model"
)

// Report is the result of one validation run. Issues keep the order their
// checkers produced them in; nothing is filtered or deduplicated.
type Report struct {
	RunID       string        `json:"run_id"`
	GeneratedAt time.Time     `json:"generated_at"`
	Issues      []model.Issue `json:"issues"`
	KPI         KPI           `json:"kpi"`
}

// New merges the issue slices of all checkers, in the order given, into a
// report tagged with a fresh run id.
func New(issueSets ...[]model.Issue) Report {
	var all []model.Issue
	for _, set := range issueSets {
		all = append(all, set...)
	}
	return Report{
		RunID:       uuid.NewString(),
		GeneratedAt: time.Now().UTC(),
		Issues:      all,
	}
}

// Counts returns the number of issues per kind.
func (r Report) Counts() map[model.IssueKind]int {
	counts := make(map[model.IssueKind]int)
	for _, is := range r.Issues {
		counts[is.Kind]++
	}
	return counts
}

// Violations counts the plan violations proper, excluding data-quality
// concerns. A run with zero violations may still carry data-quality issues.
func (r Report) Violations() int {
	n := 0
	for _, is := range r.Issues {
		if is.IsPlanViolation() {
			n++
		}
	}
	return n
}
