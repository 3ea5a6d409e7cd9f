// Package normalize turns raw, stringly-typed plan tables into the validated
// records the checkers consume. It never mutates its inputs; every function
// returns freshly built slices so checkers can run against the same data
// independently.
package normalize

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/kilianp07/buscheck/core/model"
)

// Config holds the per-km consumption bounds used to derive the energy
// columns of the distance reference.
type Config struct {
	MinConsumptionPerKm float64 `json:"min_consumption_per_km"`
	MaxConsumptionPerKm float64 `json:"max_consumption_per_km"`
}

// SetDefaults applies the standard consumption envelope.
func (c *Config) SetDefaults() {
	if c.MinConsumptionPerKm == 0 {
		c.MinConsumptionPerKm = 0.7
	}
	if c.MaxConsumptionPerKm == 0 {
		c.MaxConsumptionPerKm = 2.5
	}
}

// Validate checks the envelope is usable.
func (c Config) Validate() error {
	if c.MinConsumptionPerKm <= 0 || c.MaxConsumptionPerKm <= 0 {
		return fmt.Errorf("consumption rates must be positive")
	}
	if c.MinConsumptionPerKm > c.MaxConsumptionPerKm {
		return fmt.Errorf("min consumption rate %.2f exceeds max %.2f", c.MinConsumptionPerKm, c.MaxConsumptionPerKm)
	}
	return nil
}

// RawPlanRow is one unparsed plan row. Row is the 1-based source row number
// used in issue messages.
type RawPlanRow struct {
	Row           int
	Vehicle       string
	Activity      string
	StartLocation string
	StartTime     string
	EndLocation   string
	EndTime       string
	Line          string
	DistanceM     string
	EnergyKWh     string
}

// RawDistanceRow is one unparsed distance-reference row.
type RawDistanceRow struct {
	Row           int
	StartLocation string
	EndLocation   string
	Line          string
	DistanceM     string
	MinTravelMin  string
	MaxTravelMin  string
}

// RawTimetableRow is one unparsed timetable row.
type RawTimetableRow struct {
	Row           int
	StartLocation string
	Departure     string
	EndLocation   string
	Line          string
}

// activityKind maps raw activity labels onto canonical kinds. The Dutch
// labels from the planning exports are accepted alongside the canonical
// names.
func activityKind(raw string) (model.ActivityKind, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "dienst rit", "service_trip":
		return model.ServiceTrip, true
	case "materiaal rit", "deadhead_trip":
		return model.DeadheadTrip, true
	case "opladen", "charging":
		return model.Charging, true
	case "idle":
		return model.Idle, true
	}
	return "", false
}

// Plan parses raw plan rows into activities. Rows with unparseable times or
// unknown activity kinds are reported as issues and excluded from the
// result, never silently defaulted.
func Plan(rows []RawPlanRow) ([]model.Activity, []model.Issue) {
	acts := make([]model.Activity, 0, len(rows))
	var issues []model.Issue
	for _, r := range rows {
		kind, ok := activityKind(r.Activity)
		if !ok {
			issues = append(issues, model.Issue{
				Kind:     model.IssueDataQuality,
				Vehicle:  r.Vehicle,
				Location: r.StartLocation,
				Message:  fmt.Sprintf("plan row %d: unknown activity %q", r.Row, r.Activity),
			})
			continue
		}
		start, err := model.ParseTimeOfDay(r.StartTime)
		if err != nil {
			issues = append(issues, timeIssue("plan", r.Row, r.Vehicle, r.StartLocation, r.StartTime, err))
			continue
		}
		end, err := model.ParseTimeOfDay(r.EndTime)
		if err != nil {
			issues = append(issues, timeIssue("plan", r.Row, r.Vehicle, r.StartLocation, r.EndTime, err))
			continue
		}
		line := strings.TrimSpace(r.Line)
		if line == "" {
			line = model.DeadheadLine
		}
		a := model.Activity{
			Vehicle:       strings.TrimSpace(r.Vehicle),
			Kind:          kind,
			StartLocation: strings.TrimSpace(r.StartLocation),
			EndLocation:   strings.TrimSpace(r.EndLocation),
			Start:         start,
			End:           end,
			Line:          line,
		}
		if v, ok, iss := optionalFloat("plan", r.Row, r.Vehicle, "distance_m", r.DistanceM); iss != nil {
			issues = append(issues, *iss)
		} else if ok {
			a.DistanceM = v
		}
		if v, ok, iss := optionalFloat("plan", r.Row, r.Vehicle, "energy_kwh", r.EnergyKWh); iss != nil {
			issues = append(issues, *iss)
		} else if ok {
			a.EnergyKWh = v
		}
		if err := a.Validate(); err != nil {
			issues = append(issues, model.Issue{
				Kind:     model.IssueDataQuality,
				Vehicle:  a.Vehicle,
				Location: a.StartLocation,
				Time:     a.Start,
				Message:  fmt.Sprintf("plan row %d: %v", r.Row, err),
			})
			continue
		}
		acts = append(acts, a)
	}
	return acts, issues
}

// DistanceTable parses reference rows and derives km-based energy bounds.
// Semantic defects (negative distance, inverted travel range) are reported
// as data-quality issues and the row is excluded.
func DistanceTable(rows []RawDistanceRow, cfg Config) ([]model.DistanceRef, []model.Issue) {
	refs := make([]model.DistanceRef, 0, len(rows))
	var issues []model.Issue
	for _, r := range rows {
		dist, perr := parseFloatCell("distance", r.Row, "distance_m", r.DistanceM)
		if perr != nil {
			issues = append(issues, refIssue(r, perr.Error()))
			continue
		}
		minT, perr := parseFloatCell("distance", r.Row, "min_travel_min", r.MinTravelMin)
		if perr != nil {
			issues = append(issues, refIssue(r, perr.Error()))
			continue
		}
		maxT, perr := parseFloatCell("distance", r.Row, "max_travel_min", r.MaxTravelMin)
		if perr != nil {
			issues = append(issues, refIssue(r, perr.Error()))
			continue
		}
		if dist < 0 {
			issues = append(issues, refIssue(r, fmt.Sprintf("distance row %d: negative distance %.0f m", r.Row, dist)))
			continue
		}
		if minT > maxT {
			issues = append(issues, refIssue(r, fmt.Sprintf("distance row %d: min travel time %.0f exceeds max %.0f", r.Row, minT, maxT)))
			continue
		}
		line := strings.TrimSpace(r.Line)
		if line == "" {
			line = model.DeadheadLine
		}
		ref := model.DistanceRef{
			StartLocation: strings.TrimSpace(r.StartLocation),
			EndLocation:   strings.TrimSpace(r.EndLocation),
			Line:          line,
			DistanceM:     dist,
			MinTravelMin:  minT,
			MaxTravelMin:  maxT,
		}
		ref.MinEnergyKWh = ref.DistanceKM() * cfg.MinConsumptionPerKm
		ref.MaxEnergyKWh = ref.DistanceKM() * cfg.MaxConsumptionPerKm
		refs = append(refs, ref)
	}
	return refs, issues
}

// Timetable parses reference timetable rows.
func Timetable(rows []RawTimetableRow) ([]model.TimetableEntry, []model.Issue) {
	entries := make([]model.TimetableEntry, 0, len(rows))
	var issues []model.Issue
	for _, r := range rows {
		dep, err := model.ParseTimeOfDay(r.Departure)
		if err != nil {
			issues = append(issues, timeIssue("timetable", r.Row, "", r.StartLocation, r.Departure, err))
			continue
		}
		entries = append(entries, model.TimetableEntry{
			StartLocation: strings.TrimSpace(r.StartLocation),
			Departure:     dep,
			EndLocation:   strings.TrimSpace(r.EndLocation),
			Line:          strings.TrimSpace(r.Line),
		})
	}
	return entries, issues
}

// DropZeroDuration removes rows whose start and end times coincide. Such
// rows are export artifacts and would otherwise trip the travel-time check.
func DropZeroDuration(plan []model.Activity) []model.Activity {
	out := make([]model.Activity, 0, len(plan))
	for _, a := range plan {
		if a.Start == a.End {
			continue
		}
		out = append(out, a)
	}
	return out
}

func timeIssue(table string, row int, vehicle, location, value string, err error) model.Issue {
	return model.Issue{
		Kind:     model.IssueUnparsableTime,
		Vehicle:  vehicle,
		Location: location,
		Message:  fmt.Sprintf("%s row %d: unparseable time %q: %v", table, row, value, err),
	}
}

func refIssue(r RawDistanceRow, msg string) model.Issue {
	return model.Issue{
		Kind:     model.IssueDataQuality,
		Location: strings.TrimSpace(r.StartLocation),
		Message:  msg,
	}
}

func parseFloatCell(table string, row int, column, value string) (float64, *model.ParseError) {
	s := strings.TrimSpace(value)
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, &model.ParseError{Table: table, Row: row, Column: column, Value: s, Err: err}
	}
	return v, nil
}

func optionalFloat(table string, row int, vehicle, column, value string) (float64, bool, *model.Issue) {
	s := strings.TrimSpace(value)
	if s == "" {
		return 0, false, nil
	}
	v, perr := parseFloatCell(table, row, column, s)
	if perr != nil {
		return 0, false, &model.Issue{
			Kind:    model.IssueDataQuality,
			Vehicle: vehicle,
			Message: perr.Error(),
		}
	}
	return v, true, nil
}
