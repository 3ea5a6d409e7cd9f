package model

// IssueKind tags one class of reported defect.
type IssueKind string

const (
	// Plan violations: the expected outputs of a validation run.
	IssueBatteryLow           IssueKind = "battery_low"
	IssueChargingTooShort     IssueKind = "charging_too_short"
	IssueContinuityBreak      IssueKind = "continuity_break"
	IssueCoverageMismatch     IssueKind = "coverage_mismatch"
	IssueTravelTimeOutOfRange IssueKind = "travel_time_out_of_range"

	// Data-quality concerns: the input is suspect, not the plan.
	IssueUnmatchedSegment IssueKind = "unmatched_segment"
	IssueUnparsableTime   IssueKind = "unparsable_time"
	IssueDataQuality      IssueKind = "data_quality"
)

// CoverageDirection distinguishes the two sides of a coverage mismatch.
type CoverageDirection string

const (
	CoverageExtra   CoverageDirection = "extra"   // in the plan, not the timetable
	CoverageMissing CoverageDirection = "missing" // in the timetable, not the plan
)

// Issue is one reported defect. Checkers create issues and never mutate
// them afterwards; the aggregator collects them as-is.
type Issue struct {
	Kind     IssueKind `json:"kind"`
	Vehicle  string    `json:"vehicle,omitempty"`
	Location string    `json:"location,omitempty"`
	Time     TimeOfDay `json:"time"`
	Message  string    `json:"message"`

	// Measured and the allowed range, for range-style violations.
	Measured   float64 `json:"measured,omitempty"`
	MinAllowed float64 `json:"min_allowed,omitempty"`
	MaxAllowed float64 `json:"max_allowed,omitempty"`

	// Direction is set for coverage mismatches only.
	Direction CoverageDirection `json:"direction,omitempty"`
}

// IsPlanViolation reports whether the issue is a defect of the plan itself
// rather than a data-quality concern about the inputs.
func (i Issue) IsPlanViolation() bool {
	switch i.Kind {
	case IssueBatteryLow, IssueChargingTooShort, IssueContinuityBreak,
		IssueCoverageMismatch, IssueTravelTimeOutOfRange:
		return true
	}
	return false
}
