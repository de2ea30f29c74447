package milp

import "context"

// Status is the outcome of one solve attempt.
type Status int

const (
	StatusOptimal Status = iota
	StatusInfeasible
	StatusError
)

// Solution is a solver's result: a status and the primal value of every
// named column. Non-optimal statuses trigger the per-candidate recoverable
// error path (spec §4.5 "Solver status").
type Solution struct {
	Status  Status
	Columns map[string]float64
	Message string

	// ObjectiveValue is the achieved value of Problem's objective
	// (including the MIN_TIME_WEIGHT-floored time term and the BIG
	// unmet-demand penalty). Backends populate it from their own solve.
	ObjectiveValue float64
}

// Solver is the core's MILP abstraction (spec §9 "Solver abstraction").
// The default implementation delegates to an in-process branch-and-bound
// over an LP relaxation; tests inject a mock, and a gRPC-backed remote
// implementation is also available.
type Solver interface {
	Solve(ctx context.Context, problem *Problem) (*Solution, error)
}
