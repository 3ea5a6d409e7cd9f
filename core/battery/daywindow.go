package battery

import "github.com/kilianp07/buscheck/core/model"

// DayWindow is the span of daytime service hours, from the earliest
// scheduled departure to the latest scheduled arrival of the reference
// timetable. Charging inside the window is capped at the daytime ceiling,
// outside it at full actual capacity.
type DayWindow struct {
	Start model.TimeOfDay
	End   model.TimeOfDay
}

// Contains reports whether t falls within daytime service hours.
func (w DayWindow) Contains(t model.TimeOfDay) bool {
	if w.Start == 0 && w.End == 0 {
		return false
	}
	return t >= w.Start && t <= w.End
}

// DayWindowFromTimetable derives the service-hour window. Arrival times are
// estimated by adding the mean reference travel time to each departure;
// entries without a matching reference segment contribute their departure
// only.
func DayWindowFromTimetable(entries []model.TimetableEntry, refs []model.DistanceRef) DayWindow {
	if len(entries) == 0 {
		return DayWindow{}
	}
	idx := model.IndexRefs(refs)
	var w DayWindow
	for i, e := range entries {
		arrival := e.Departure
		if ref, ok := idx[model.SegmentKey{StartLocation: e.StartLocation, EndLocation: e.EndLocation, Line: e.Line}]; ok {
			arrival = e.Departure + model.TimeOfDay(ref.MeanTravelMin()*60)
		}
		if i == 0 {
			w = DayWindow{Start: e.Departure, End: arrival}
			continue
		}
		if e.Departure < w.Start {
			w.Start = e.Departure
		}
		if arrival > w.End {
			w.End = arrival
		}
	}
	return w
}
