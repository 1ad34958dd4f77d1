// Package solver defines the interface between the allocation model and the
// underlying mathematical-programming backends. Backends register themselves
// by name so the active one can be selected from configuration.
package solver

import (
	"context"
	"time"
)

// Status is the terminal outcome reported by a backend after one solve
// attempt. Only StatusOptimal carries a well-defined variable assignment.
type Status int

const (
	StatusNotSolved Status = iota
	StatusOptimal
	StatusInfeasible
	StatusUnbounded
	StatusError
)

// String returns a human-readable status name.
func (s Status) String() string {
	switch s {
	case StatusNotSolved:
		return "not_solved"
	case StatusOptimal:
		return "optimal"
	case StatusInfeasible:
		return "infeasible"
	case StatusUnbounded:
		return "unbounded"
	case StatusError:
		return "error"
	default:
		return "unknown"
	}
}

// Problem is the export-allocation program in aligned-array form. Index i is
// one timestep; ProdA[i] and ProdB[i] cap the two export directions and BigM
// couples each direction to the timestep's binary flag.
type Problem struct {
	ProdA []float64
	ProdB []float64
	BigM  float64
}

// Len returns the number of timesteps in the problem.
func (p Problem) Len() int { return len(p.ProdA) }

// Result carries the assignment found by a backend. ExportAB, ExportBA and
// Flags are aligned with the problem's timestep index. The slices are only
// meaningful when Status is StatusOptimal.
type Result struct {
	Status    Status
	Objective float64
	ExportAB  []float64
	ExportBA  []float64
	Flags     []float64
}

// Options tunes a single solve attempt.
type Options struct {
	// TimeLimit bounds the wall-clock time of one solve. Zero means no
	// limit. A solve cut short reports StatusNotSolved.
	TimeLimit time.Duration
	// Progress, if set, is called after each solved timestep.
	Progress func(solved int)
}

// Solver runs one solve attempt over the whole problem. Implementations make
// no retries; the caller decides whether to re-run with other parameters.
type Solver interface {
	Solve(ctx context.Context, p Problem, opts Options) (Result, error)
}
