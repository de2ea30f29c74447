// Package mock provides a POC milp.Solver with no real optimization, for
// local development and tests where wiring a real backend is overkill.
package mock

import (
	"context"
	"math"

	"github.com/andrescamacho/egg-planner/internal/domain/milp"
)

// Solver is a POC implementation that round-trips each constraint's RHS
// onto its first term's variable, ignoring the objective entirely. It
// never reports infeasibility, so it is only suitable for exercising the
// plumbing around milp.Solver, not for realistic plans.
type Solver struct{}

// New creates a new mock solver.
func New() *Solver {
	return &Solver{}
}

// Solve satisfies every constraint's flow row by routing its RHS onto
// the first variable in the row (for this builder, always the
// item's unmet-demand slack), leaving every craft/launch variable at
// zero. This is enough to keep the planning pipeline's progress and
// decode steps exercised without a real LP/ILP dependency.
func (s *Solver) Solve(ctx context.Context, problem *milp.Problem) (*milp.Solution, error) {
	select {
	case <-ctx.Done():
		return &milp.Solution{Status: milp.StatusError, Message: ctx.Err().Error()}, nil
	default:
	}

	columns := make(map[string]float64, len(problem.Variables))
	for _, v := range problem.Variables {
		columns[v.Name] = 0
	}

	for _, c := range problem.Constraints {
		if len(c.Terms) == 0 {
			continue
		}
		rhs := math.Max(0, c.RHS)
		columns[c.Terms[0].Var] = rhs
	}

	var objective float64
	for _, t := range problem.Objective {
		objective += t.Coef * columns[t.Var]
	}

	return &milp.Solution{Status: milp.StatusOptimal, Columns: columns, ObjectiveValue: objective}, nil
}
