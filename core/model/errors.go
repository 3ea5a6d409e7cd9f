package model

import (
	"fmt"
	"strings"
)

// MissingColumnsError reports required columns absent from an input table.
// Checkers must not run on structurally invalid input.
type MissingColumnsError struct {
	Table   string
	Columns []string
}

func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("table %s is missing required column(s): %s", e.Table, strings.Join(e.Columns, ", "))
}

// UnsortedPlanError reports a plan handed to the battery simulator out of
// (vehicle, start time) order. Sorting is the caller's responsibility; a
// simulation over an unsorted plan would produce meaningless trajectories.
type UnsortedPlanError struct {
	Index   int
	Vehicle string
}

func (e *UnsortedPlanError) Error() string {
	return fmt.Sprintf("plan is not sorted by vehicle and start time at row %d (vehicle %s)", e.Index, e.Vehicle)
}

// ParseError reports a cell value that could not be parsed into its typed
// form. The offending row is excluded from numeric computations and the
// error is surfaced, never coerced to a default.
type ParseError struct {
	Table  string
	Row    int
	Column string
	Value  string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("table %s row %d column %s: cannot parse %q: %v", e.Table, e.Row, e.Column, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }
