package metrics

import (
	"errors"

	coremetrics "github.com/kilianp07/buscheck/core/metrics"
)

// MultiSink fans a run summary out to several sinks. Every sink is invoked
// even when an earlier one fails; the errors are joined.
type MultiSink struct {
	sinks []coremetrics.ValidationSink
}

// NewMultiSink combines the given sinks.
func NewMultiSink(sinks ...coremetrics.ValidationSink) *MultiSink {
	return &MultiSink{sinks: sinks}
}

func (m *MultiSink) RecordRun(sum coremetrics.RunSummary) error {
	var errs []error
	for _, s := range m.sinks {
		if err := s.RecordRun(sum); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// FromConfig builds the sink stack described by the configuration: nop when
// nothing is enabled, a single sink, or a multi sink.
func FromConfig(cfg coremetrics.Config) (coremetrics.ValidationSink, error) {
	var sinks []coremetrics.ValidationSink
	if cfg.PrometheusEnabled {
		sink, err := NewPromSink()
		if err != nil {
			return nil, err
		}
		sinks = append(sinks, sink)
	}
	if cfg.InfluxEnabled {
		sinks = append(sinks, NewInfluxSinkWithFallback(cfg.InfluxURL, cfg.InfluxToken, cfg.InfluxOrg, cfg.InfluxBucket))
	}
	switch len(sinks) {
	case 0:
		return coremetrics.NopSink{}, nil
	case 1:
		return sinks[0], nil
	default:
		return NewMultiSink(sinks...), nil
	}
}
