// Package check holds the stateless plan checkers: route continuity, ride
// coverage against the timetable, and travel-time range validation. Every
// checker is a pure function of its input and returns its own issue slice;
// aggregation happens once at the top level.
package check

import (
	"fmt"
	"sort"

	"github.com/kilianp07/buscheck/core/model"
)

// Continuity verifies that each vehicle's consecutive activities chain end
// location to next start location. A vehicle with a single activity has no
// adjacency and trivially passes.
func Continuity(plan []model.Activity) []model.Issue {
	sorted := sortedPlan(plan)
	var issues []model.Issue
	for i := 0; i+1 < len(sorted); i++ {
		cur, next := sorted[i], sorted[i+1]
		if cur.Vehicle != next.Vehicle {
			continue
		}
		if cur.EndLocation == next.StartLocation {
			continue
		}
		issues = append(issues, model.Issue{
			Kind:     model.IssueContinuityBreak,
			Vehicle:  cur.Vehicle,
			Location: cur.EndLocation,
			Time:     next.Start,
			Message: fmt.Sprintf("bus %s ends at %s but its next activity starts at %s (%s)",
				cur.Vehicle, cur.EndLocation, next.StartLocation, next.Start),
		})
	}
	return issues
}

// sortedPlan returns a copy ordered by (vehicle, start time). The input is
// never reordered in place so checkers stay composable over shared data.
func sortedPlan(plan []model.Activity) []model.Activity {
	out := make([]model.Activity, len(plan))
	copy(out, plan)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Vehicle != out[j].Vehicle {
			return out[i].Vehicle < out[j].Vehicle
		}
		return out[i].Start < out[j].Start
	})
	return out
}
