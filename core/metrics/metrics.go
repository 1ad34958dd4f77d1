// Package metrics defines the observability seam of the allocation pipeline.
// Sinks receive the extracted allocations and the run summary; backends live
// under infra/metrics.
package metrics

import (
	"github.com/dkastrati/windlink/core/model"
)

// Sink records the outcome of an optimization run.
type Sink interface {
	// RecordAllocations receives the extracted rows of one run.
	RecordAllocations(runID string, rows []model.ResultRow) error
	// RecordRun receives the run summary.
	RecordRun(summary model.RunSummary) error
}

// ProgressRecorder is implemented by sinks that can track solve progress
// while a run is still in flight.
type ProgressRecorder interface {
	RecordProgress(solved int)
}

// NopSink discards everything.
type NopSink struct{}

func (NopSink) RecordAllocations(string, []model.ResultRow) error { return nil }
func (NopSink) RecordRun(model.RunSummary) error                  { return nil }
