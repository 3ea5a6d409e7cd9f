package model

import "fmt"

// ActivityKind classifies one scheduled unit of work in a circulation plan.
type ActivityKind string

const (
	ServiceTrip  ActivityKind = "service_trip"
	DeadheadTrip ActivityKind = "deadhead_trip"
	Idle         ActivityKind = "idle"
	Charging     ActivityKind = "charging"
)

// DeadheadLine is the sentinel route label filled in for rows without a bus
// line: deadhead trips carry no revenue line but still need to join against
// the distance reference.
const DeadheadLine = "deadhead trip"

// Activity is one scheduled unit of work for one vehicle: a service or
// deadhead trip, a charging period, or an idle gap.
type Activity struct {
	Vehicle       string       `json:"vehicle"`
	Kind          ActivityKind `json:"kind"`
	StartLocation string       `json:"start_location"`
	EndLocation   string       `json:"end_location"`
	Start         TimeOfDay    `json:"start"`
	End           TimeOfDay    `json:"end"`
	// Line is the route label; DeadheadLine for rows without one.
	Line string `json:"line"`
	// DistanceM is the planned distance in meters, 0 when the plan row
	// does not carry one and it must come from the distance reference.
	DistanceM float64 `json:"distance_m,omitempty"`
	// EnergyKWh is the plan-provided consumption for this activity, 0 when
	// it must be derived from distance.
	EnergyKWh float64 `json:"energy_kwh,omitempty"`
}

// IsTrip reports whether the activity moves the vehicle between locations.
func (a Activity) IsTrip() bool {
	return a.Kind == ServiceTrip || a.Kind == DeadheadTrip
}

// DurationMinutes returns the scheduled duration in minutes.
func (a Activity) DurationMinutes() float64 {
	return a.End.Sub(a.Start)
}

// Validate checks the per-record invariants.
func (a Activity) Validate() error {
	if a.Vehicle == "" {
		return fmt.Errorf("activity missing vehicle id")
	}
	if a.Start > a.End {
		return fmt.Errorf("activity for vehicle %s starts at %s after its end %s", a.Vehicle, a.Start, a.End)
	}
	return nil
}
