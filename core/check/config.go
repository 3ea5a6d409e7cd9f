package check

import (
	"fmt"

	"github.com/kilianp07/buscheck/core/model"
)

// Config holds checker settings.
type Config struct {
	// CoverageGranularity selects the time precision at which plan rides
	// and timetable rides are matched: "minute" or "second". Timetables
	// are published at minute resolution while plan exports often carry
	// seconds, so the two sides must be truncated consistently before
	// reconciliation.
	CoverageGranularity string `json:"coverage_granularity"`
}

// SetDefaults applies minute-level matching.
func (c *Config) SetDefaults() {
	if c.CoverageGranularity == "" {
		c.CoverageGranularity = string(model.GranularityMinute)
	}
}

// Validate checks the granularity value.
func (c Config) Validate() error {
	switch model.Granularity(c.CoverageGranularity) {
	case model.GranularityMinute, model.GranularitySecond:
		return nil
	}
	return fmt.Errorf("unknown coverage granularity %q", c.CoverageGranularity)
}

func (c Config) granularity() model.Granularity {
	return model.Granularity(c.CoverageGranularity)
}
