package check

import (
	"fmt"

	"github.com/kilianp07/buscheck/core/model"
)

// TravelTime checks every trip's elapsed minutes against the reference
// min/max for its segment, inclusive at both ends. Trips without a matching
// reference segment cannot be judged; they are surfaced as unmatched_segment
// issues rather than silently skipped.
func TravelTime(plan []model.Activity, refs []model.DistanceRef) []model.Issue {
	idx := model.IndexRefs(refs)
	var issues []model.Issue
	for _, a := range plan {
		if !a.IsTrip() {
			continue
		}
		ref, ok := idx[model.SegmentKey{StartLocation: a.StartLocation, EndLocation: a.EndLocation, Line: a.Line}]
		if !ok {
			issues = append(issues, model.Issue{
				Kind:     model.IssueUnmatchedSegment,
				Vehicle:  a.Vehicle,
				Location: a.StartLocation,
				Time:     a.Start,
				Message: fmt.Sprintf("no reference segment for %s-%s (line %s), travel time not checked",
					a.StartLocation, a.EndLocation, a.Line),
			})
			continue
		}
		elapsed := a.DurationMinutes()
		if elapsed >= ref.MinTravelMin && elapsed <= ref.MaxTravelMin {
			continue
		}
		issues = append(issues, model.Issue{
			Kind:       model.IssueTravelTimeOutOfRange,
			Vehicle:    a.Vehicle,
			Location:   a.StartLocation,
			Time:       a.Start,
			Measured:   elapsed,
			MinAllowed: ref.MinTravelMin,
			MaxAllowed: ref.MaxTravelMin,
			Message: fmt.Sprintf("trip %s-%s takes %.0f min, outside the allowed %.0f-%.0f min",
				a.StartLocation, a.EndLocation, elapsed, ref.MinTravelMin, ref.MaxTravelMin),
		})
	}
	return issues
}
