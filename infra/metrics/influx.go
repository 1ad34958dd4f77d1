package metrics

import (
	"context"
	"math"
	"net/http"
	"strings"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"

	"github.com/dkastrati/windlink/config"
	coremetrics "github.com/dkastrati/windlink/core/metrics"
	"github.com/dkastrati/windlink/core/model"
	"github.com/dkastrati/windlink/infra/logger"
)

// InfluxSink writes allocation rows and run summaries to an InfluxDB
// instance using the official client.
type InfluxSink struct {
	client   influxdb2.Client
	writeAPI api.WriteAPIBlocking
	log      logger.Logger
}

// NewInfluxSink creates a new sink configured for the given InfluxDB endpoint.
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

// NewInfluxSinkWithFallback tries to ping the InfluxDB instance and
// returns a NopSink if the health check fails.
func NewInfluxSinkWithFallback(cfg config.MetricsConfig) coremetrics.Sink {
	sink := NewInfluxSink(cfg.InfluxURL, cfg.InfluxToken, cfg.InfluxOrg, cfg.InfluxBucket)
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

// RecordAllocations writes one point per timestamp with both export values.
func (s *InfluxSink) RecordAllocations(runID string, rows []model.ResultRow) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	for _, r := range rows {
		p := write.NewPointWithMeasurement("allocation").
			AddTag("run_id", runID).
			AddField("export_ab_mwh", round3(r.ExportAB)).
			AddField("export_ba_mwh", round3(r.ExportBA)).
			SetTime(r.Time)
		if err := s.writeAPI.WritePoint(ctx, p); err != nil {
			return err
		}
	}
	return nil
}

// RecordRun writes the run summary as a single point.
func (s *InfluxSink) RecordRun(summary model.RunSummary) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	p := write.NewPointWithMeasurement("allocation_run").
		AddTag("run_id", summary.RunID).
		AddTag("status", summary.Status).
		AddField("objective_mwh", round3(summary.Objective)).
		AddField("total_ab_mwh", round3(summary.TotalAB)).
		AddField("total_ba_mwh", round3(summary.TotalBA)).
		AddField("timesteps", summary.Timesteps).
		AddField("duration_ms", summary.Duration.Milliseconds()).
		SetTime(summary.Solved)
	return s.writeAPI.WritePoint(ctx, p)
}

// Close releases the underlying client.
func (s *InfluxSink) Close() {
	s.client.Close()
}

func round3(f float64) float64 {
	return math.Round(f*1000) / 1000
}
