// Package allocation builds and solves the cross-border export program: for
// every timestamp of two aligned production series it decides how much
// surplus each region exports to the other. A binary flag per timestamp
// couples the two directions so that at most one is active, and a validated
// big-M constant keeps the coupling exact.
package allocation

import (
	"context"
	"fmt"
	"time"

	"github.com/dkastrati/windlink/core/model"
	"github.com/dkastrati/windlink/core/solver"
)

// DefaultBigM matches the historical formulation. It is only safe while
// every production value stays strictly below it; Build enforces that.
const DefaultBigM = 1000

// Model is the assembled export program over the shared timestamp domain.
// Series values are kept in aligned arrays so every constraint lookup is by
// index and the solver's variable ordering is reproducible.
type Model struct {
	times  []time.Time
	prodA  []float64
	prodB  []float64
	bigM   float64
	labelA string
	labelB string

	res solver.Result
}

// Build assembles the model from two production series sharing an identical
// timestamp domain. Region A's domain is authoritative; any mismatch fails
// with MissingTimestampError before a single variable is created. bigM must
// strictly exceed every production value of both regions.
func Build(prodA, prodB *model.ProductionSeries, bigM float64) (*Model, error) {
	if err := checkAligned(prodA, prodB); err != nil {
		return nil, err
	}
	if bigM <= prodA.Max() {
		return nil, BigMTooSmallError{BigM: bigM, MaxProduction: prodA.Max(), Region: prodA.Region()}
	}
	if bigM <= prodB.Max() {
		return nil, BigMTooSmallError{BigM: bigM, MaxProduction: prodB.Max(), Region: prodB.Region()}
	}

	n := prodA.Len()
	m := &Model{
		times:  make([]time.Time, n),
		prodA:  make([]float64, n),
		prodB:  make([]float64, n),
		bigM:   bigM,
		labelA: prodA.Region(),
		labelB: prodB.Region(),
	}
	for i := 0; i < n; i++ {
		t, a := prodA.At(i)
		_, b := prodB.At(i)
		m.times[i] = t
		m.prodA[i] = a
		m.prodB[i] = b
	}
	return m, nil
}

func checkAligned(a, b *model.ProductionSeries) error {
	i, j := 0, 0
	for i < a.Len() && j < b.Len() {
		ta, _ := a.At(i)
		tb, _ := b.At(j)
		switch {
		case ta.Before(tb):
			return MissingTimestampError{Time: ta, Region: b.Region()}
		case tb.Before(ta):
			return MissingTimestampError{Time: tb, Region: a.Region()}
		default:
			i++
			j++
		}
	}
	if i < a.Len() {
		ta, _ := a.At(i)
		return MissingTimestampError{Time: ta, Region: b.Region()}
	}
	if j < b.Len() {
		tb, _ := b.At(j)
		return MissingTimestampError{Time: tb, Region: a.Region()}
	}
	return nil
}

// Len returns the number of timesteps in the model.
func (m *Model) Len() int { return len(m.times) }

// BigM returns the validated big-M constant the model was built with.
func (m *Model) BigM() float64 { return m.bigM }

// Solve submits the model to the backend. A single attempt is made; the
// returned status is terminal and only StatusOptimal permits Extract.
func (m *Model) Solve(ctx context.Context, s solver.Solver, opts solver.Options) (solver.Status, error) {
	res, err := s.Solve(ctx, solver.Problem{ProdA: m.prodA, ProdB: m.prodB, BigM: m.bigM}, opts)
	m.res = res
	switch res.Status {
	case solver.StatusOptimal:
		return res.Status, nil
	case solver.StatusInfeasible:
		return res.Status, ErrInfeasible
	case solver.StatusUnbounded:
		return res.Status, ErrUnbounded
	case solver.StatusNotSolved:
		if err != nil {
			return res.Status, fmt.Errorf("%w: %v", ErrNotSolved, err)
		}
		return res.Status, ErrNotSolved
	default:
		if err != nil {
			return res.Status, fmt.Errorf("%w: %v", ErrSolver, err)
		}
		return res.Status, ErrSolver
	}
}

// Objective returns the solved objective value.
func (m *Model) Objective() float64 { return m.res.Objective }

// Status returns the status of the last solve attempt.
func (m *Model) Status() solver.Status { return m.res.Status }
