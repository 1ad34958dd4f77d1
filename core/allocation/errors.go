package allocation

import (
	"errors"
	"fmt"
	"time"
)

// Solve outcomes surfaced to the caller. No automatic retry is attempted;
// re-running with adjusted parameters is the caller's decision.
var (
	ErrInfeasible = errors.New("model infeasible")
	ErrUnbounded  = errors.New("model unbounded")
	ErrNotSolved  = errors.New("solve did not complete")
	ErrSolver     = errors.New("solver failure")
)

// ErrNoSolution is returned when extraction is attempted without an optimal
// solved state.
var ErrNoSolution = errors.New("no solution available")

// MissingTimestampError reports a timestamp present in one region's series
// but absent from the other.
type MissingTimestampError struct {
	Time   time.Time
	Region string // region whose series lacks the timestamp
}

func (e MissingTimestampError) Error() string {
	return fmt.Sprintf("timestamp %s missing from region %s series", e.Time.Format(time.RFC3339), e.Region)
}

// BigMTooSmallError reports a big-M constant that does not dominate the
// production values, which would silently break the exclusivity coupling.
type BigMTooSmallError struct {
	BigM          float64
	MaxProduction float64
	Region        string
}

func (e BigMTooSmallError) Error() string {
	return fmt.Sprintf("big-M %.3f must exceed max production %.3f of region %s", e.BigM, e.MaxProduction, e.Region)
}

// ExtractionError reports a solved variable whose value cannot be read back
// as a finite non-negative export.
type ExtractionError struct {
	Time   time.Time
	Value  float64
	Reason string
}

func (e ExtractionError) Error() string {
	return fmt.Sprintf("extraction failed at %s: %s (value %v)", e.Time.Format(time.RFC3339), e.Reason, e.Value)
}
