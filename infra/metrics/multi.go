package metrics

import (
	coremetrics "github.com/dkastrati/windlink/core/metrics"
	"github.com/dkastrati/windlink/core/model"
)

// MultiSink fans run records out to multiple sinks.
type MultiSink struct {
	Sinks []coremetrics.Sink
}

// NewMultiSink creates a MultiSink with the provided sinks.
func NewMultiSink(sinks ...coremetrics.Sink) *MultiSink {
	return &MultiSink{Sinks: sinks}
}

// RecordAllocations forwards the rows to all sinks, returning the first error encountered.
func (m *MultiSink) RecordAllocations(runID string, rows []model.ResultRow) error {
	for _, s := range m.Sinks {
		if err := s.RecordAllocations(runID, rows); err != nil {
			return err
		}
	}
	return nil
}

// RecordRun forwards the summary to all sinks, returning the first error encountered.
func (m *MultiSink) RecordRun(summary model.RunSummary) error {
	for _, s := range m.Sinks {
		if err := s.RecordRun(summary); err != nil {
			return err
		}
	}
	return nil
}

// RecordProgress forwards progress to sinks that support it.
func (m *MultiSink) RecordProgress(solved int) {
	for _, s := range m.Sinks {
		if pr, ok := s.(coremetrics.ProgressRecorder); ok {
			pr.RecordProgress(solved)
		}
	}
}
