package metrics

import (
	"context"
	"net/http"
	"strings"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"

	coremetrics "github.com/kilianp07/buscheck/core/metrics"
	"github.com/kilianp07/buscheck/infra/logger"
)

// InfluxSink writes validation run summaries to an InfluxDB bucket using the
// official client.
type InfluxSink struct {
	client   influxdb2.Client
	writeAPI api.WriteAPIBlocking
	log      logger.Logger
}

// NewInfluxSink creates a sink for the given InfluxDB endpoint.
func NewInfluxSink(url, token, org, bucket string) *InfluxSink {
	base := strings.TrimSuffix(url, "/api/v2/write")
	client := influxdb2.NewClientWithOptions(base, token,
		influxdb2.DefaultOptions().SetHTTPClient(&http.Client{Timeout: 5 * time.Second}))
	return &InfluxSink{
		client:   client,
		writeAPI: client.WriteAPIBlocking(org, bucket),
		log:      logger.New("influx-sink"),
	}
}

// NewInfluxSinkWithFallback pings the InfluxDB instance and returns a
// NopSink if the health check fails, so a validation run never fails on an
// unreachable metrics backend.
func NewInfluxSinkWithFallback(url, token, org, bucket string) coremetrics.ValidationSink {
	sink := NewInfluxSink(url, token, org, bucket)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	health, err := sink.client.Health(ctx)
	if err != nil || health.Status != "pass" {
		if err != nil {
			sink.log.Errorf("influx health check error: %v", err)
		} else {
			sink.log.Errorf("influx health status: %s", health.Status)
		}
		sink.client.Close()
		return coremetrics.NopSink{}
	}
	return sink
}

// RecordRun writes one point per issue kind plus a run-level KPI point.
func (s *InfluxSink) RecordRun(sum coremetrics.RunSummary) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	points := make([]*write.Point, 0, len(sum.IssueCounts)+1)
	for kind, n := range sum.IssueCounts {
		points = append(points, write.NewPointWithMeasurement("validation_issue").
			AddTag("run_id", sum.RunID).
			AddTag("kind", kind).
			AddField("count", n).
			SetTime(sum.Time))
	}
	points = append(points, write.NewPointWithMeasurement("validation_run").
		AddTag("run_id", sum.RunID).
		AddField("issues", sum.TotalIssues()).
		AddField("vehicles_used", sum.VehiclesUsed).
		AddField("deadhead_minutes", sum.DeadheadMinutes).
		AddField("energy_kwh", sum.TotalEnergyKWh).
		AddField("lowest_battery_kwh", sum.LowestBatteryKWh).
		SetTime(sum.Time))

	return s.writeAPI.WritePoint(ctx, points...)
}

// Close releases the underlying client.
func (s *InfluxSink) Close() { s.client.Close() }
