package allocation

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/dkastrati/windlink/core/model"
	"github.com/dkastrati/windlink/core/solver"
	simplex "github.com/dkastrati/windlink/infra/solver"
)

func hour(h int) time.Time {
	return time.Date(2020, 1, 1, h, 0, 0, 0, time.UTC)
}

func series(t *testing.T, region string, values map[int]float64) *model.ProductionSeries {
	t.Helper()
	pts := make([]model.Point, 0, len(values))
	for h, v := range values {
		pts = append(pts, model.Point{Time: hour(h), Value: v})
	}
	s, err := model.NewProductionSeries(region, pts)
	if err != nil {
		t.Fatalf("series %s: %v", region, err)
	}
	return s
}

func TestBuildMissingTimestamp(t *testing.T) {
	a := series(t, "XK", map[int]float64{0: 1, 1: 2})
	b := series(t, "MK", map[int]float64{0: 1})
	_, err := Build(a, b, 1000)
	var missing MissingTimestampError
	if !errors.As(err, &missing) {
		t.Fatalf("expected MissingTimestampError, got %v", err)
	}
	if missing.Region != "MK" || !missing.Time.Equal(hour(1)) {
		t.Fatalf("bad error context %+v", missing)
	}
}

func TestBuildMissingTimestampOtherSide(t *testing.T) {
	a := series(t, "XK", map[int]float64{1: 2})
	b := series(t, "MK", map[int]float64{0: 1, 1: 1})
	_, err := Build(a, b, 1000)
	var missing MissingTimestampError
	if !errors.As(err, &missing) {
		t.Fatalf("expected MissingTimestampError, got %v", err)
	}
	if missing.Region != "XK" || !missing.Time.Equal(hour(0)) {
		t.Fatalf("bad error context %+v", missing)
	}
}

func TestBuildBigMTooSmall(t *testing.T) {
	a := series(t, "XK", map[int]float64{0: 10})
	b := series(t, "MK", map[int]float64{0: 4})
	for _, bigM := range []float64{10, 5, 0} {
		_, err := Build(a, b, bigM)
		var small BigMTooSmallError
		if !errors.As(err, &small) {
			t.Fatalf("bigM=%.0f: expected BigMTooSmallError, got %v", bigM, err)
		}
		if small.MaxProduction != 10 || small.Region != "XK" {
			t.Fatalf("bad error context %+v", small)
		}
	}
	if _, err := Build(a, b, 10.5); err != nil {
		t.Fatalf("bigM just above max should build: %v", err)
	}
}

func TestSolveAndExtractSingleTimestep(t *testing.T) {
	a := series(t, "XK", map[int]float64{0: 10})
	b := series(t, "MK", map[int]float64{0: 4})
	m, err := Build(a, b, 1000)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	st, err := m.Solve(context.Background(), &simplex.Solver{}, solver.Options{})
	if err != nil {
		t.Fatalf("solve: %v", err)
	}
	if st != solver.StatusOptimal {
		t.Fatalf("status %s", st)
	}
	if math.Abs(m.Objective()-10) > 1e-6 {
		t.Fatalf("objective %.6f, want 10", m.Objective())
	}
	rows, err := m.Extract()
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("rows %d", len(rows))
	}
	if rows[0].ExportAB > 0 && rows[0].ExportBA > 0 {
		t.Fatalf("both directions active: %+v", rows[0])
	}
}

func TestObjectiveMatchesRows(t *testing.T) {
	a := series(t, "XK", map[int]float64{0: 5, 1: 0, 2: 7, 3: 3})
	b := series(t, "MK", map[int]float64{0: 3, 1: 9, 2: 0, 3: 3})
	m, err := Build(a, b, 100)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if _, err := m.Solve(context.Background(), &simplex.Solver{}, solver.Options{}); err != nil {
		t.Fatalf("solve: %v", err)
	}
	rows, err := m.Extract()
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	sum := 0.0
	for i, r := range rows {
		sum += r.ExportAB + r.ExportBA
		ta, prodA := a.At(i)
		_, prodB := b.At(i)
		if !r.Time.Equal(ta) {
			t.Fatalf("row %d out of order", i)
		}
		if r.ExportAB < 0 || r.ExportAB > prodA || r.ExportBA < 0 || r.ExportBA > prodB {
			t.Fatalf("row %d out of bounds: %+v", i, r)
		}
	}
	if math.Abs(sum-m.Objective()) > 1e-6 {
		t.Fatalf("rows sum to %.6f, objective %.6f", sum, m.Objective())
	}
}

func TestEmptyDomain(t *testing.T) {
	a := series(t, "XK", nil)
	b := series(t, "MK", nil)
	m, err := Build(a, b, 1000)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	st, err := m.Solve(context.Background(), &simplex.Solver{}, solver.Options{})
	if err != nil {
		t.Fatalf("solve: %v", err)
	}
	if st != solver.StatusOptimal || m.Objective() != 0 {
		t.Fatalf("status %s objective %.3f", st, m.Objective())
	}
	rows, err := m.Extract()
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if len(rows) != 0 {
		t.Fatalf("expected empty result, got %d rows", len(rows))
	}
}

func TestExtractBeforeSolve(t *testing.T) {
	a := series(t, "XK", map[int]float64{0: 1})
	b := series(t, "MK", map[int]float64{0: 1})
	m, err := Build(a, b, 10)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if _, err := m.Extract(); !errors.Is(err, ErrNoSolution) {
		t.Fatalf("expected ErrNoSolution, got %v", err)
	}
}

type fixedSolver struct {
	res solver.Result
	err error
}

func (f fixedSolver) Solve(context.Context, solver.Problem, solver.Options) (solver.Result, error) {
	return f.res, f.err
}

func TestSolveStatusMapping(t *testing.T) {
	a := series(t, "XK", map[int]float64{0: 1})
	b := series(t, "MK", map[int]float64{0: 1})

	cases := []struct {
		status solver.Status
		want   error
	}{
		{solver.StatusInfeasible, ErrInfeasible},
		{solver.StatusUnbounded, ErrUnbounded},
		{solver.StatusNotSolved, ErrNotSolved},
		{solver.StatusError, ErrSolver},
	}
	for _, c := range cases {
		m, err := Build(a, b, 10)
		if err != nil {
			t.Fatalf("build: %v", err)
		}
		st, err := m.Solve(context.Background(), fixedSolver{res: solver.Result{Status: c.status}}, solver.Options{})
		if st != c.status || !errors.Is(err, c.want) {
			t.Fatalf("status %s: got (%s, %v), want %v", c.status, st, err, c.want)
		}
		if _, err := m.Extract(); !errors.Is(err, ErrNoSolution) {
			t.Fatalf("extraction after %s should fail", c.status)
		}
	}
}

func TestExtractBadAssignment(t *testing.T) {
	a := series(t, "XK", map[int]float64{0: 5})
	b := series(t, "MK", map[int]float64{0: 5})
	m, err := Build(a, b, 10)
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	bad := []solver.Result{
		{Status: solver.StatusOptimal, ExportAB: []float64{math.NaN()}, ExportBA: []float64{0}},
		{Status: solver.StatusOptimal, ExportAB: []float64{-1}, ExportBA: []float64{0}},
		{Status: solver.StatusOptimal, ExportAB: []float64{6}, ExportBA: []float64{0}},
	}
	for i, res := range bad {
		if _, err := m.Solve(context.Background(), fixedSolver{res: res}, solver.Options{}); err != nil {
			t.Fatalf("case %d solve: %v", i, err)
		}
		var extr ExtractionError
		if _, err := m.Extract(); !errors.As(err, &extr) {
			t.Fatalf("case %d: expected ExtractionError, got %v", i, err)
		}
	}

	// Short assignment is a missing-value condition.
	short := solver.Result{Status: solver.StatusOptimal, ExportAB: []float64{}, ExportBA: []float64{}}
	if _, err := m.Solve(context.Background(), fixedSolver{res: short}, solver.Options{}); err != nil {
		t.Fatalf("solve: %v", err)
	}
	if _, err := m.Extract(); !errors.Is(err, ErrNoSolution) {
		t.Fatalf("expected ErrNoSolution for short assignment, got %v", err)
	}
}

func TestSolveIdempotentObjective(t *testing.T) {
	a := series(t, "XK", map[int]float64{0: 6, 1: 2})
	b := series(t, "MK", map[int]float64{0: 6, 1: 8})
	m, err := Build(a, b, 50)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	s := &simplex.Solver{}
	if _, err := m.Solve(context.Background(), s, solver.Options{}); err != nil {
		t.Fatalf("solve: %v", err)
	}
	first := m.Objective()
	if _, err := m.Solve(context.Background(), s, solver.Options{}); err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if m.Objective() != first {
		t.Fatalf("objective drifted: %.9f vs %.9f", first, m.Objective())
	}
}
