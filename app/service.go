// Package app wires the allocation pipeline: load both production series,
// build the export model, solve it, extract the allocations and hand them to
// the configured outputs.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dkastrati/windlink/config"
	"github.com/dkastrati/windlink/core/allocation"
	coremetrics "github.com/dkastrati/windlink/core/metrics"
	"github.com/dkastrati/windlink/core/model"
	"github.com/dkastrati/windlink/core/solver"
	"github.com/dkastrati/windlink/infra/loader"
	"github.com/dkastrati/windlink/infra/logger"
	"github.com/dkastrati/windlink/infra/metrics"
	"github.com/dkastrati/windlink/infra/mqtt"
	_ "github.com/dkastrati/windlink/infra/solver" // register the default backend
	"github.com/dkastrati/windlink/pkg/export"
)

// Service runs optimization runs from a loaded configuration.
type Service struct {
	cfg       *config.Config
	log       logger.Logger
	sink      coremetrics.Sink
	publisher mqtt.SummaryPublisher
	backend   solver.Solver
}

// New creates a Service from the configuration.
func New(cfg *config.Config) (*Service, error) {
	logg := logger.New("service")

	var sinks []coremetrics.Sink
	if cfg.Metrics.PrometheusEnabled {
		sink, err := metrics.NewPromSink(nil)
		if err != nil {
			return nil, fmt.Errorf("prom sink: %w", err)
		}
		sinks = append(sinks, sink)
	}
	if cfg.Metrics.InfluxEnabled {
		sinks = append(sinks, metrics.NewInfluxSinkWithFallback(cfg.Metrics))
	}
	var sink coremetrics.Sink = coremetrics.NopSink{}
	if len(sinks) == 1 {
		sink = sinks[0]
	} else if len(sinks) > 1 {
		sink = metrics.NewMultiSink(sinks...)
	}

	var publisher mqtt.SummaryPublisher
	if cfg.MQTT.Enabled {
		pub, err := mqtt.NewPahoPublisher(cfg.MQTT)
		if err != nil {
			return nil, fmt.Errorf("mqtt publisher: %w", err)
		}
		publisher = pub
	}

	backend, err := solver.New(cfg.Solver.Backend)
	if err != nil {
		return nil, err
	}

	return &Service{cfg: cfg, log: logg, sink: sink, publisher: publisher, backend: backend}, nil
}

// Run executes one optimization run and returns its summary. The returned
// error is non-nil for every non-optimal outcome; the summary still carries
// the terminal status so callers can report it.
func (s *Service) Run(ctx context.Context) (model.RunSummary, error) {
	runID := uuid.NewString()
	log := s.log

	if s.cfg.Metrics.PrometheusEnabled && s.cfg.Metrics.PrometheusAddr != "" {
		go func() {
			if err := metrics.StartPromServer(ctx, s.cfg.Metrics.PrometheusAddr); err != nil {
				log.Errorf("prom server: %v", err)
			}
		}()
	}

	prodA, err := loader.LoadSeries(s.cfg.Input.RegionA, s.cfg.Input.FromYear, s.cfg.Input.ToYear)
	if err != nil {
		return model.RunSummary{RunID: runID}, err
	}
	prodB, err := loader.LoadSeries(s.cfg.Input.RegionB, s.cfg.Input.FromYear, s.cfg.Input.ToYear)
	if err != nil {
		return model.RunSummary{RunID: runID}, err
	}
	log.Infof("loaded %d timesteps for %s, %d for %s", prodA.Len(), prodA.Region(), prodB.Len(), prodB.Region())

	m, err := allocation.Build(prodA, prodB, s.cfg.Solver.BigM)
	if err != nil {
		return model.RunSummary{RunID: runID}, err
	}

	opts := solver.Options{TimeLimit: s.cfg.Solver.TimeLimit()}
	if pr, ok := s.sink.(coremetrics.ProgressRecorder); ok {
		opts.Progress = pr.RecordProgress
	}

	start := time.Now()
	status, solveErr := m.Solve(ctx, s.backend, opts)
	elapsed := time.Since(start)

	if status != solver.StatusOptimal {
		summary := model.Summarize(runID, status.String(), nil, elapsed)
		s.finish(summary)
		return summary, solveErr
	}

	rows, err := m.Extract()
	if err != nil {
		summary := model.Summarize(runID, status.String(), nil, elapsed)
		return summary, err
	}

	summary := model.Summarize(runID, status.String(), rows, elapsed)
	log.Debugw("run solved", map[string]any{
		"run_id":    runID,
		"timesteps": summary.Timesteps,
		"objective": summary.Objective,
		"duration":  elapsed.String(),
	})

	if s.cfg.Output.Path != "" {
		if err := export.WriteFile(s.cfg.Output.Path, s.cfg.Output.Format, rows); err != nil {
			return summary, fmt.Errorf("write output: %w", err)
		}
		log.Infof("allocations written to %s", s.cfg.Output.Path)
	}
	if err := s.sink.RecordAllocations(runID, rows); err != nil {
		log.Errorf("record allocations: %v", err)
	}
	s.finish(summary)
	return summary, nil
}

// finish records the summary in the sinks and publishes it.
func (s *Service) finish(summary model.RunSummary) {
	if err := s.sink.RecordRun(summary); err != nil {
		s.log.Errorf("record run: %v", err)
	}
	if s.publisher != nil {
		if err := s.publisher.PublishSummary(summary); err != nil {
			s.log.Errorf("publish summary: %v", err)
		}
	}
}

// Close releases the service's external connections.
func (s *Service) Close() error {
	if s.publisher != nil {
		s.publisher.Close()
	}
	return nil
}
