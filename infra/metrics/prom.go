package metrics

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	coremetrics "github.com/kilianp07/buscheck/core/metrics"
)

// PromSink records validation runs in Prometheus metrics.
type PromSink struct {
	runs     prometheus.Counter
	issues   *prometheus.CounterVec
	vehicles prometheus.Gauge
	deadhead prometheus.Gauge
	energy   prometheus.Gauge
	battery  prometheus.Gauge
}

// NewPromSink registers validation metrics on the default Prometheus
// registerer.
func NewPromSink() (*PromSink, error) {
	return NewPromSinkWithRegistry(prometheus.DefaultRegisterer)
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global Prometheus registerer. When a
// collector is already registered, the existing one is reused so every sink
// built against the same registry records into the scraped series.
func NewPromSinkWithRegistry(reg prometheus.Registerer) (*PromSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	runs, err := register(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "validation_runs_total",
		Help: "Total number of plan validation runs",
	}))
	if err != nil {
		return nil, err
	}
	issues, err := register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "validation_issues_total",
		Help: "Total number of issues found, by kind",
	}, []string{"kind"}))
	if err != nil {
		return nil, err
	}
	vehicles, err := register(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "plan_vehicles_used",
		Help: "Vehicles used by the last validated plan",
	}))
	if err != nil {
		return nil, err
	}
	deadhead, err := register(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "plan_deadhead_minutes",
		Help: "Total deadhead minutes of the last validated plan",
	}))
	if err != nil {
		return nil, err
	}
	energy, err := register(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "plan_energy_kwh",
		Help: "Total energy consumption of the last validated plan",
	}))
	if err != nil {
		return nil, err
	}
	battery, err := register(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "plan_lowest_battery_kwh",
		Help: "Lowest simulated battery level of the last validated plan",
	}))
	if err != nil {
		return nil, err
	}
	return &PromSink{
		runs:     runs,
		issues:   issues,
		vehicles: vehicles,
		deadhead: deadhead,
		energy:   energy,
		battery:  battery,
	}, nil
}

// register adds c to reg, handing back the already-registered collector when
// one with the same descriptor exists.
func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			return are.ExistingCollector.(C), nil
		}
		return c, err
	}
	return c, nil
}

// RecordRun updates the counters and gauges from a run summary.
func (s *PromSink) RecordRun(sum coremetrics.RunSummary) error {
	s.runs.Inc()
	for kind, n := range sum.IssueCounts {
		s.issues.WithLabelValues(kind).Add(float64(n))
	}
	s.vehicles.Set(float64(sum.VehiclesUsed))
	s.deadhead.Set(sum.DeadheadMinutes)
	s.energy.Set(sum.TotalEnergyKWh)
	s.battery.Set(sum.LowestBatteryKWh)
	return nil
}

// StartPromServer serves /metrics on the given port until ctx is cancelled.
func StartPromServer(ctx context.Context, port string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{Addr: ":" + port, Handler: mux}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}
