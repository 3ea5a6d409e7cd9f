package battery

import "fmt"

// Config holds every tunable of the battery simulation. All thresholds from
// the charging model live here rather than in the simulator itself.
type Config struct {
	// RatedCapacityKWh is the nameplate battery capacity.
	RatedCapacityKWh float64 `json:"rated_capacity_kwh"`
	// SOH is the state-of-health fraction still usable.
	SOH float64 `json:"soh"`
	// MinSOC is the state-of-charge fraction below which a battery_low
	// violation is emitted.
	MinSOC float64 `json:"min_soc"`
	// StartSOC is the fraction of actual capacity a vehicle starts its
	// circulation with, and the fraction it resets to on a vehicle change.
	StartSOC float64 `json:"start_soc"`
	// DayCapSOC caps charging during daytime service hours; at night the
	// cap is the full actual capacity. It doubles as the fast/slow
	// charging threshold.
	DayCapSOC float64 `json:"day_cap_soc"`

	FastChargeKWhPerHour float64 `json:"fast_charge_kwh_per_hour"`
	SlowChargeKWhPerHour float64 `json:"slow_charge_kwh_per_hour"`
	MinChargingMinutes   float64 `json:"min_charging_minutes"`

	// ConsumptionKWhPerKm is the single rate used to derive trip
	// consumption when the plan row carries no energy figure.
	ConsumptionKWhPerKm float64 `json:"consumption_kwh_per_km"`
	// IdleConsumptionKWh is the fixed auxiliary draw of an idle period.
	IdleConsumptionKWh float64 `json:"idle_consumption_kwh"`

	// StrictHalt stops simulating a vehicle after its first battery_low
	// violation instead of continuing through the rest of its day.
	StrictHalt bool `json:"strict_halt"`
}

// SetDefaults applies the standard fleet parameters.
func (c *Config) SetDefaults() {
	if c.RatedCapacityKWh == 0 {
		c.RatedCapacityKWh = 300
	}
	if c.SOH == 0 {
		c.SOH = 0.90
	}
	if c.MinSOC == 0 {
		c.MinSOC = 0.10
	}
	if c.StartSOC == 0 {
		c.StartSOC = 0.90
	}
	if c.DayCapSOC == 0 {
		c.DayCapSOC = 0.90
	}
	if c.FastChargeKWhPerHour == 0 {
		c.FastChargeKWhPerHour = 450
	}
	if c.SlowChargeKWhPerHour == 0 {
		c.SlowChargeKWhPerHour = 60
	}
	if c.MinChargingMinutes == 0 {
		c.MinChargingMinutes = 15
	}
	if c.ConsumptionKWhPerKm == 0 {
		c.ConsumptionKWhPerKm = 1.6
	}
	if c.IdleConsumptionKWh == 0 {
		c.IdleConsumptionKWh = 0.01
	}
}

// Validate checks the configuration is physically meaningful.
func (c Config) Validate() error {
	if c.RatedCapacityKWh <= 0 {
		return fmt.Errorf("rated capacity must be positive")
	}
	for name, f := range map[string]float64{
		"soh": c.SOH, "min_soc": c.MinSOC, "start_soc": c.StartSOC, "day_cap_soc": c.DayCapSOC,
	} {
		if f <= 0 || f > 1 {
			return fmt.Errorf("%s must be in (0,1], got %v", name, f)
		}
	}
	if c.MinSOC >= c.StartSOC {
		return fmt.Errorf("min_soc %v must be below start_soc %v", c.MinSOC, c.StartSOC)
	}
	if c.FastChargeKWhPerHour <= 0 || c.SlowChargeKWhPerHour <= 0 {
		return fmt.Errorf("charging rates must be positive")
	}
	if c.MinChargingMinutes < 0 {
		return fmt.Errorf("min charging minutes must not be negative")
	}
	if c.ConsumptionKWhPerKm <= 0 {
		return fmt.Errorf("consumption rate must be positive")
	}
	return nil
}

// ActualCapacityKWh is the SOH-adjusted usable capacity.
func (c Config) ActualCapacityKWh() float64 { return c.RatedCapacityKWh * c.SOH }

// StartChargeKWh is the level a vehicle begins its circulation with.
func (c Config) StartChargeKWh() float64 { return c.ActualCapacityKWh() * c.StartSOC }

// MinChargeKWh is the level below which a battery_low violation fires.
func (c Config) MinChargeKWh() float64 { return c.ActualCapacityKWh() * c.MinSOC }

// DayCapKWh is the daytime charging ceiling and the fast/slow threshold.
func (c Config) DayCapKWh() float64 { return c.ActualCapacityKWh() * c.DayCapSOC }
