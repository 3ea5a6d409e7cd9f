package check

import (
	"fmt"
	"sort"

	"github.com/kilianp07/buscheck/core/model"
)

// rideKey is the composite key a ride is matched on.
type rideKey struct {
	StartLocation string
	Start         model.TimeOfDay
	EndLocation   string
	Line          string
}

func (k rideKey) String() string {
	return fmt.Sprintf("%s %s -> %s (line %s)", k.Start, k.StartLocation, k.EndLocation, k.Line)
}

// DrivenRides extracts the revenue rides from a plan: service trips carrying
// a real route label.
func DrivenRides(plan []model.Activity) []model.Activity {
	var rides []model.Activity
	for _, a := range plan {
		if a.Line == "" || a.Line == model.DeadheadLine {
			continue
		}
		if !a.IsTrip() {
			continue
		}
		rides = append(rides, a)
	}
	return rides
}

// Coverage computes the symmetric difference between the driven rides of the
// plan and the timetable, matched on (start location, start time, end
// location, line). Rides only in the plan are reported as "extra", rides
// only in the timetable as "missing". Times on both sides are truncated to
// the configured granularity before matching.
func Coverage(plan []model.Activity, timetable []model.TimetableEntry, cfg Config) []model.Issue {
	g := cfg.granularity()

	counts := make(map[rideKey]int)
	vehicles := make(map[rideKey]string)
	for _, a := range DrivenRides(plan) {
		k := rideKey{StartLocation: a.StartLocation, Start: a.Start.Truncate(g), EndLocation: a.EndLocation, Line: a.Line}
		counts[k]++
		if _, ok := vehicles[k]; !ok {
			vehicles[k] = a.Vehicle
		}
	}
	for _, e := range timetable {
		k := rideKey{StartLocation: e.StartLocation, Start: e.Departure.Truncate(g), EndLocation: e.EndLocation, Line: e.Line}
		counts[k]--
	}

	keys := make([]rideKey, 0, len(counts))
	for k, n := range counts {
		if n != 0 {
			keys = append(keys, k)
		}
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Start != keys[j].Start {
			return keys[i].Start < keys[j].Start
		}
		if keys[i].StartLocation != keys[j].StartLocation {
			return keys[i].StartLocation < keys[j].StartLocation
		}
		return keys[i].Line < keys[j].Line
	})

	var issues []model.Issue
	for _, k := range keys {
		n := counts[k]
		dir := model.CoverageExtra
		src := "bus planning"
		// A timetable ride nobody drives has no vehicle to point at.
		vehicle := vehicles[k]
		if n < 0 {
			dir = model.CoverageMissing
			src = "timetable"
			vehicle = ""
			n = -n
		}
		for i := 0; i < n; i++ {
			issues = append(issues, model.Issue{
				Kind:      model.IssueCoverageMismatch,
				Vehicle:   vehicle,
				Location:  k.StartLocation,
				Time:      k.Start,
				Direction: dir,
				Message:   fmt.Sprintf("ride %s only appears in the %s", k, src),
			})
		}
	}
	return issues
}
