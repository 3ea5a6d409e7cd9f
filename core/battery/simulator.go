// Package battery replays a vehicle's ordered activity sequence against a
// charge model and reports every point where the plan would strand a bus.
package battery

import (
	"fmt"
	"math"

	"github.com/kilianp07/buscheck/core/model"
)

// Trace summarizes one vehicle's simulated battery trajectory.
type Trace struct {
	Vehicle       string  `json:"vehicle"`
	MinLevelKWh   float64 `json:"min_level_kwh"`
	FinalLevelKWh float64 `json:"final_level_kwh"`
	Activities    int     `json:"activities"`
}

// Simulator replays activities in plan order, tracking one battery level at
// a time. It is a pure function of its inputs; construct once and Run as
// often as needed.
type Simulator struct {
	cfg  Config
	refs map[model.SegmentKey]model.DistanceRef
	day  DayWindow
}

// New builds a simulator over the given reference table and service-hour
// window.
func New(cfg Config, refs []model.DistanceRef, day DayWindow) *Simulator {
	return &Simulator{cfg: cfg, refs: model.IndexRefs(refs), day: day}
}

// Run simulates the plan and returns the violations found plus one trace per
// vehicle. The plan must already be sorted by vehicle id then start time;
// an unsorted plan is a structural error, not a violation.
func (s *Simulator) Run(plan []model.Activity) ([]model.Issue, []Trace, error) {
	if err := checkSorted(plan); err != nil {
		return nil, nil, err
	}

	var (
		issues  []model.Issue
		traces  []Trace
		level   float64
		trace   *Trace
		halted  bool
		prevVeh string
	)
	flush := func() {
		if trace != nil {
			trace.FinalLevelKWh = level
			traces = append(traces, *trace)
		}
	}
	for _, a := range plan {
		if a.Vehicle != prevVeh {
			flush()
			level = s.cfg.StartChargeKWh()
			trace = &Trace{Vehicle: a.Vehicle, MinLevelKWh: level}
			halted = false
			prevVeh = a.Vehicle
		}
		if halted {
			continue
		}
		trace.Activities++

		switch a.Kind {
		case model.Charging:
			dur := a.DurationMinutes()
			if dur < s.cfg.MinChargingMinutes {
				issues = append(issues, model.Issue{
					Kind:       model.IssueChargingTooShort,
					Vehicle:    a.Vehicle,
					Location:   a.StartLocation,
					Time:       a.Start,
					Measured:   dur,
					MinAllowed: s.cfg.MinChargingMinutes,
					Message: fmt.Sprintf("charging period of %.0f min between %s and %s is below the %.0f min minimum",
						dur, a.Start, a.End, s.cfg.MinChargingMinutes),
				})
				break
			}
			level = s.charge(level, dur, a.Start)
		case model.Idle:
			level -= s.cfg.IdleConsumptionKWh
		default:
			cons, iss := s.consumption(a)
			if iss != nil {
				issues = append(issues, *iss)
			}
			level -= cons
		}

		if level < 0 {
			level = 0
		}
		if level < trace.MinLevelKWh {
			trace.MinLevelKWh = level
		}
		if level < s.cfg.MinChargeKWh() {
			issues = append(issues, model.Issue{
				Kind:       model.IssueBatteryLow,
				Vehicle:    a.Vehicle,
				Location:   a.StartLocation,
				Time:       a.Start,
				Measured:   level,
				MinAllowed: s.cfg.MinChargeKWh(),
				Message: fmt.Sprintf("battery of bus %s down to %.1f kWh at %s, below the %.1f kWh minimum",
					a.Vehicle, level, a.Start, s.cfg.MinChargeKWh()),
			})
			if s.cfg.StrictHalt {
				halted = true
			}
		}
	}
	flush()
	return issues, traces, nil
}

// charge applies the two-rate curve for dur minutes starting at t. The fast
// rate applies up to the day-cap threshold, the slow rate above it; the
// result is clamped to the daytime ceiling during service hours and to full
// actual capacity at night.
func (s *Simulator) charge(level, dur float64, t model.TimeOfDay) float64 {
	fastPerMin := s.cfg.FastChargeKWhPerHour / 60
	slowPerMin := s.cfg.SlowChargeKWhPerHour / 60
	threshold := s.cfg.DayCapKWh()

	remaining := dur
	if level <= threshold {
		fastMin := (threshold - level) / fastPerMin
		m := math.Min(remaining, fastMin)
		level += m * fastPerMin
		remaining -= m
	}
	level += remaining * slowPerMin

	ceiling := s.cfg.ActualCapacityKWh()
	if s.day.Contains(t) {
		ceiling = threshold
	}
	return math.Min(level, ceiling)
}

// consumption derives the energy drawn by a trip: the plan-provided figure
// when present, otherwise distance times the configured rate. A trip with
// neither a distance nor a reference segment cannot be costed and is
// surfaced as a data-quality issue.
func (s *Simulator) consumption(a model.Activity) (float64, *model.Issue) {
	if a.EnergyKWh > 0 {
		return a.EnergyKWh, nil
	}
	dist := a.DistanceM
	if dist == 0 {
		if ref, ok := s.refs[model.SegmentKey{StartLocation: a.StartLocation, EndLocation: a.EndLocation, Line: a.Line}]; ok {
			dist = ref.DistanceM
		}
	}
	if dist == 0 {
		return 0, &model.Issue{
			Kind:     model.IssueDataQuality,
			Vehicle:  a.Vehicle,
			Location: a.StartLocation,
			Time:     a.Start,
			Message: fmt.Sprintf("no distance known for trip %s-%s (line %s), consumption not simulated",
				a.StartLocation, a.EndLocation, a.Line),
		}
	}
	return dist / 1000 * s.cfg.ConsumptionKWhPerKm, nil
}

// checkSorted enforces the (vehicle, start time) ordering precondition:
// activities of one vehicle must be contiguous and in nondecreasing start
// order.
func checkSorted(plan []model.Activity) error {
	seen := make(map[string]bool)
	for i, a := range plan {
		if i == 0 || a.Vehicle != plan[i-1].Vehicle {
			if seen[a.Vehicle] {
				return &model.UnsortedPlanError{Index: i, Vehicle: a.Vehicle}
			}
			seen[a.Vehicle] = true
			continue
		}
		if a.Start < plan[i-1].Start {
			return &model.UnsortedPlanError{Index: i, Vehicle: a.Vehicle}
		}
	}
	return nil
}
