// Package scenarios loads YAML validation scenarios: small inline plans with
// the issue counts they are expected to produce. They double as executable
// fixtures for the full pipeline.
package scenarios

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/kilianp07/buscheck/core/normalize"
)

// PlanRowDef is one plan row of a scenario.
type PlanRowDef struct {
	Vehicle   string `yaml:"vehicle"`
	Activity  string `yaml:"activity"`
	From      string `yaml:"from"`
	Start     string `yaml:"start"`
	To        string `yaml:"to"`
	End       string `yaml:"end"`
	Line      string `yaml:"line"`
	DistanceM string `yaml:"distance_m"`
	EnergyKWh string `yaml:"energy_kwh"`
}

func (d PlanRowDef) toRaw(row int) normalize.RawPlanRow {
	return normalize.RawPlanRow{
		Row:           row,
		Vehicle:       d.Vehicle,
		Activity:      d.Activity,
		StartLocation: d.From,
		StartTime:     d.Start,
		EndLocation:   d.To,
		EndTime:       d.End,
		Line:          d.Line,
		DistanceM:     d.DistanceM,
		EnergyKWh:     d.EnergyKWh,
	}
}

// DistanceRowDef is one distance-reference row of a scenario.
type DistanceRowDef struct {
	From         string `yaml:"from"`
	To           string `yaml:"to"`
	Line         string `yaml:"line"`
	DistanceM    string `yaml:"distance_m"`
	MinTravelMin string `yaml:"min_travel_min"`
	MaxTravelMin string `yaml:"max_travel_min"`
}

func (d DistanceRowDef) toRaw(row int) normalize.RawDistanceRow {
	return normalize.RawDistanceRow{
		Row:           row,
		StartLocation: d.From,
		EndLocation:   d.To,
		Line:          d.Line,
		DistanceM:     d.DistanceM,
		MinTravelMin:  d.MinTravelMin,
		MaxTravelMin:  d.MaxTravelMin,
	}
}

// TimetableRowDef is one timetable ride of a scenario.
type TimetableRowDef struct {
	From      string `yaml:"from"`
	Departure string `yaml:"departure"`
	To        string `yaml:"to"`
	Line      string `yaml:"line"`
}

func (d TimetableRowDef) toRaw(row int) normalize.RawTimetableRow {
	return normalize.RawTimetableRow{
		Row:           row,
		StartLocation: d.From,
		Departure:     d.Departure,
		EndLocation:   d.To,
		Line:          d.Line,
	}
}

// Scenario is one self-contained validation case.
type Scenario struct {
	Name        string            `yaml:"name"`
	Granularity string            `yaml:"granularity"`
	StrictHalt  bool              `yaml:"strict_halt"`
	Plan        []PlanRowDef      `yaml:"plan"`
	Distance    []DistanceRowDef  `yaml:"distance"`
	Timetable   []TimetableRowDef `yaml:"timetable"`
	// Expect maps issue kind to the exact count the run must produce.
	Expect map[string]int `yaml:"expect"`
}

// Load reads a scenario definition from a YAML file.
func Load(path string) (Scenario, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Scenario{}, err
	}
	var s Scenario
	if err := yaml.Unmarshal(b, &s); err != nil {
		return Scenario{}, fmt.Errorf("parse scenario %s: %w", path, err)
	}
	if s.Name == "" {
		return Scenario{}, fmt.Errorf("scenario %s has no name", path)
	}
	return s, nil
}
