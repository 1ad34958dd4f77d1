package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	coremetrics "github.com/dkastrati/windlink/core/metrics"
	"github.com/dkastrati/windlink/core/model"
)

// PromSink records run outcomes in Prometheus metrics. Progress updates are
// safe to call while a solve is in flight, so a scrape during a long
// multi-year run reflects the current position.
type PromSink struct {
	runs      *prometheus.CounterVec
	timesteps prometheus.Gauge
	objective prometheus.Gauge
	exported  *prometheus.GaugeVec
	duration  prometheus.Histogram
}

// NewPromSink registers run metrics on the provided Prometheus registerer.
// If reg is nil, the default registerer is used. If the collectors are
// already registered, the existing ones are reused.
func NewPromSink(reg prometheus.Registerer) (*PromSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	s := &PromSink{
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "allocation_runs_total",
			Help: "Total number of optimization runs by terminal status",
		}, []string{"status"}),
		timesteps: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "allocation_timesteps_solved",
			Help: "Timesteps solved so far in the current run",
		}),
		objective: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "allocation_objective_mwh",
			Help: "Objective value of the last optimal run",
		}),
		exported: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "allocation_exported_mwh",
			Help: "Total exported energy of the last optimal run per direction",
		}, []string{"direction"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "allocation_solve_duration_seconds",
			Help:    "Wall-clock duration of one solve attempt",
			Buckets: prometheus.ExponentialBuckets(0.01, 4, 10),
		}),
	}

	if err := reg.Register(s.runs); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			s.runs = are.ExistingCollector.(*prometheus.CounterVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(s.timesteps); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			s.timesteps = are.ExistingCollector.(prometheus.Gauge)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(s.objective); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			s.objective = are.ExistingCollector.(prometheus.Gauge)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(s.exported); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			s.exported = are.ExistingCollector.(*prometheus.GaugeVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(s.duration); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			s.duration = are.ExistingCollector.(prometheus.Histogram)
		} else {
			return nil, err
		}
	}
	return s, nil
}

// RecordProgress updates the in-flight timestep gauge.
func (s *PromSink) RecordProgress(solved int) {
	s.timesteps.Set(float64(solved))
}

// RecordAllocations is a no-op for Prometheus; totals come with the summary.
func (s *PromSink) RecordAllocations(string, []model.ResultRow) error { return nil }

// RecordRun records the terminal status and, for optimal runs, the
// objective, direction totals and duration.
func (s *PromSink) RecordRun(summary model.RunSummary) error {
	s.runs.WithLabelValues(summary.Status).Inc()
	s.duration.Observe(summary.Duration.Seconds())
	if summary.Status != "optimal" {
		return nil
	}
	s.objective.Set(summary.Objective)
	s.exported.WithLabelValues("ab").Set(summary.TotalAB)
	s.exported.WithLabelValues("ba").Set(summary.TotalBA)
	s.timesteps.Set(float64(summary.Timesteps))
	return nil
}

var _ coremetrics.Sink = (*PromSink)(nil)
var _ coremetrics.ProgressRecorder = (*PromSink)(nil)
