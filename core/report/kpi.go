package report

import (
	"gonum.org/v1/gonum/stat"

	"github.com/kilianp07/buscheck/core/battery"
	"github.com/kilianp07/buscheck/core/model"
)

// KPI carries the summary figures of a validated plan. Each field is
// independently computable from the normalized inputs.
type KPI struct {
	VehiclesUsed    int     `json:"vehicles_used"`
	DeadheadMinutes float64 `json:"deadhead_minutes"`
	TotalEnergyKWh  float64 `json:"total_energy_kwh"`

	// Travel-time deviation from the reference mean, over trips with a
	// matching segment.
	TravelDeviationMeanMin float64 `json:"travel_deviation_mean_min"`
	TravelDeviationStdMin  float64 `json:"travel_deviation_std_min"`

	// LowestBatteryKWh is the lowest simulated level across all vehicles.
	LowestBatteryKWh float64 `json:"lowest_battery_kwh"`
}

// ComputeKPI derives the KPIs from a normalized plan, the distance
// reference, the battery configuration, and the simulation traces.
func ComputeKPI(plan []model.Activity, refs []model.DistanceRef, cfg battery.Config, traces []battery.Trace) KPI {
	idx := model.IndexRefs(refs)
	kpi := KPI{}

	vehicles := make(map[string]bool)
	var deviations []float64
	for _, a := range plan {
		if a.Vehicle != "" {
			vehicles[a.Vehicle] = true
		}
		switch a.Kind {
		case model.Idle:
			kpi.TotalEnergyKWh += cfg.IdleConsumptionKWh
		case model.DeadheadTrip:
			kpi.DeadheadMinutes += a.DurationMinutes()
			fallthrough
		case model.ServiceTrip:
			ref, ok := idx[model.SegmentKey{StartLocation: a.StartLocation, EndLocation: a.EndLocation, Line: a.Line}]
			if a.EnergyKWh > 0 {
				kpi.TotalEnergyKWh += a.EnergyKWh
			} else if a.DistanceM > 0 {
				kpi.TotalEnergyKWh += a.DistanceM / 1000 * cfg.ConsumptionKWhPerKm
			} else if ok {
				kpi.TotalEnergyKWh += ref.DistanceKM() * cfg.ConsumptionKWhPerKm
			}
			if ok {
				deviations = append(deviations, a.DurationMinutes()-ref.MeanTravelMin())
			}
		}
	}
	kpi.VehiclesUsed = len(vehicles)

	if len(deviations) > 0 {
		kpi.TravelDeviationMeanMin = stat.Mean(deviations, nil)
	}
	if len(deviations) > 1 {
		kpi.TravelDeviationStdMin = stat.StdDev(deviations, nil)
	}

	for i, tr := range traces {
		if i == 0 || tr.MinLevelKWh < kpi.LowestBatteryKWh {
			kpi.LowestBatteryKWh = tr.MinLevelKWh
		}
	}
	return kpi
}
