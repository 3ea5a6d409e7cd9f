package model

// SegmentKey identifies one route segment in the distance reference.
type SegmentKey struct {
	StartLocation string
	EndLocation   string
	Line          string
}

// DistanceRef is one row of the distance/travel-time reference table. The
// energy bounds are derived by the normalizer from distance and the
// configured consumption rates.
type DistanceRef struct {
	StartLocation string  `json:"start_location"`
	EndLocation   string  `json:"end_location"`
	Line          string  `json:"line"`
	DistanceM     float64 `json:"distance_m"`
	MinTravelMin  float64 `json:"min_travel_min"`
	MaxTravelMin  float64 `json:"max_travel_min"`
	MinEnergyKWh  float64 `json:"min_energy_kwh"`
	MaxEnergyKWh  float64 `json:"max_energy_kwh"`
}

func (r DistanceRef) Key() SegmentKey {
	return SegmentKey{StartLocation: r.StartLocation, EndLocation: r.EndLocation, Line: r.Line}
}

func (r DistanceRef) DistanceKM() float64 { return r.DistanceM / 1000 }

// MeanTravelMin is the midpoint of the allowed travel-time range, used to
// estimate arrival times for timetable entries.
func (r DistanceRef) MeanTravelMin() float64 {
	return (r.MinTravelMin + r.MaxTravelMin) / 2
}

// IndexRefs builds a lookup map over reference rows. Later duplicates of a
// key win, matching a plain upsert of the source table.
func IndexRefs(refs []DistanceRef) map[SegmentKey]DistanceRef {
	idx := make(map[SegmentKey]DistanceRef, len(refs))
	for _, r := range refs {
		idx[r.Key()] = r
	}
	return idx
}

// TimetableEntry is one reference ride the plan must cover.
type TimetableEntry struct {
	StartLocation string    `json:"start_location"`
	Departure     TimeOfDay `json:"departure"`
	EndLocation   string    `json:"end_location"`
	Line          string    `json:"line"`
}
