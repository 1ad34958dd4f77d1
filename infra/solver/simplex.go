// Package simplex provides the default solver backend. The binary direction
// flags do not couple timesteps, so the mixed-integer program is solved
// exactly by branching once per timestep: each branch fixes the flag and the
// remaining linear program is handed to gonum's simplex implementation.
package simplex

import (
	"context"
	"errors"
	"time"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize/convex/lp"

	"github.com/dkastrati/windlink/core/solver"
)

// Name is the registry identifier of this backend.
const Name = "simplex"

const simplexTol = 1e-7

func init() {
	solver.Register(Name, func() solver.Solver { return &Solver{} })
}

// Solver implements solver.Solver via per-timestep branch evaluation.
type Solver struct{}

// lpSolve points to the LP routine so tests can simulate solver failures.
var lpSolve = solveBranch

// Solve runs one exact solve over the whole problem. The evaluation order is
// fixed (timesteps ascending, A->B branch first), so repeated solves of the
// same problem return the identical assignment.
func (s *Solver) Solve(ctx context.Context, p solver.Problem, opts solver.Options) (solver.Result, error) {
	n := p.Len()
	res := solver.Result{
		Status:   solver.StatusOptimal,
		ExportAB: make([]float64, n),
		ExportBA: make([]float64, n),
		Flags:    make([]float64, n),
	}

	start := time.Now()
	for i := 0; i < n; i++ {
		if err := ctx.Err(); err != nil {
			return solver.Result{Status: solver.StatusNotSolved}, err
		}
		if opts.TimeLimit > 0 && time.Since(start) > opts.TimeLimit {
			return solver.Result{Status: solver.StatusNotSolved}, nil
		}

		// Branch flag=1: the A->B channel is open, B->A is forced to zero.
		abVal, _, abObj, err := lpSolve(p.ProdA[i], p.ProdB[i], p.BigM, 1)
		if err != nil {
			return branchFailure(err), err
		}
		// Branch flag=0: the opposite direction.
		_, baVal, baObj, err := lpSolve(p.ProdA[i], p.ProdB[i], p.BigM, 0)
		if err != nil {
			return branchFailure(err), err
		}

		// Keep the A->B branch on ties so the assignment is deterministic.
		if baObj > abObj+simplexTol {
			res.ExportBA[i] = baVal
			res.Flags[i] = 0
			res.Objective += baObj
		} else {
			res.ExportAB[i] = abVal
			res.Flags[i] = 1
			res.Objective += abObj
		}
		if opts.Progress != nil {
			opts.Progress(i + 1)
		}
	}
	return res, nil
}

// solveBranch solves the two-variable export LP of one timestep with the
// direction flag fixed to z. Variables are [exportAB, exportBA]; the
// constraint rows mirror the model definition: big-M coupling rows, the
// production caps and nonnegativity.
func solveBranch(prodA, prodB, bigM, z float64) (ab, ba, obj float64, err error) {
	c := []float64{-1, -1}

	g := mat.NewDense(6, 2, []float64{
		1, 0,
		0, 1,
		1, 0,
		0, 1,
		-1, 0,
		0, -1,
	})
	h := []float64{z * bigM, (1 - z) * bigM, prodA, prodB, 0, 0}

	cStd, aStd, bStd := lp.Convert(c, g, h, nil, nil)
	opt, sol, err := lp.Simplex(cStd, aStd, bStd, simplexTol, nil)
	if err != nil {
		return 0, 0, 0, err
	}

	ab = clamp(sol[0], min(z*bigM, prodA))
	ba = clamp(sol[1], min((1-z)*bigM, prodB))
	return ab, ba, -opt, nil
}

func branchFailure(err error) solver.Result {
	switch {
	case errors.Is(err, lp.ErrInfeasible):
		return solver.Result{Status: solver.StatusInfeasible}
	case errors.Is(err, lp.ErrUnbounded):
		return solver.Result{Status: solver.StatusUnbounded}
	default:
		return solver.Result{Status: solver.StatusError}
	}
}

func clamp(v, cap float64) float64 {
	if v < 0 {
		return 0
	}
	if v > cap {
		return cap
	}
	return v
}
