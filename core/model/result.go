package model

import (
	"time"
)

// ResultRow is the allocation decided for one timestamp: how much energy
// region A exports to region B and vice versa. At most one of the two is
// nonzero in a valid solution.
type ResultRow struct {
	Time     time.Time
	ExportAB float64 // MWh exported from region A to region B
	ExportBA float64 // MWh exported from region B to region A
}

// RunSummary describes one completed optimization run.
type RunSummary struct {
	RunID     string        `json:"run_id"`
	Status    string        `json:"status"`
	Timesteps int           `json:"timesteps"`
	Objective float64       `json:"objective"`
	TotalAB   float64       `json:"total_ab"`
	TotalBA   float64       `json:"total_ba"`
	Duration  time.Duration `json:"duration_ns"`
	Solved    time.Time     `json:"solved"`
}

// Summarize computes direction totals and the objective from extracted rows.
func Summarize(runID, status string, rows []ResultRow, d time.Duration) RunSummary {
	s := RunSummary{RunID: runID, Status: status, Timesteps: len(rows), Duration: d, Solved: time.Now()}
	for _, r := range rows {
		s.TotalAB += r.ExportAB
		s.TotalBA += r.ExportBA
	}
	s.Objective = s.TotalAB + s.TotalBA
	return s
}
