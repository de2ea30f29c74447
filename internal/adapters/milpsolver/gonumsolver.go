// Package milpsolver provides in-process and remote implementations of
// the milp.Solver port (spec §4.5, §9 "Solver abstraction").
package milpsolver

import (
	"context"
	"errors"
	"math"
	"sort"
	"time"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize/convex/lp"

	"github.com/andrescamacho/egg-planner/internal/application/common"
	"github.com/andrescamacho/egg-planner/internal/domain/milp"
)

// GonumSolver implements milp.Solver as a branch-and-bound search over
// the LP relaxation solved by gonum's simplex implementation. Bounds and
// sense constraints are compiled once into standard form by standardize;
// each branch-and-bound node only tightens a single variable's bracket.
type GonumSolver struct {
	// NodeLimit caps the number of branch-and-bound nodes explored; the
	// search returns its best incumbent (or infeasible) once exhausted.
	NodeLimit int
	// IntegerTolerance is how close a relaxed value must be to the
	// nearest integer to be accepted without branching.
	IntegerTolerance float64
	Timeout          time.Duration
}

// NewGonumSolver builds a GonumSolver with the defaults used in
// production (spec §9): a generous node budget, tight integer tolerance.
func NewGonumSolver(timeout time.Duration) *GonumSolver {
	return &GonumSolver{NodeLimit: 20000, IntegerTolerance: 1e-6, Timeout: timeout}
}

// Solve runs branch-and-bound, returning the best integer-feasible
// solution found, or milp.StatusInfeasible if the relaxation itself is
// infeasible or the node budget is exhausted with no incumbent. A timeout
// or cancellation with no incumbent returns milp.StatusError.
func (g *GonumSolver) Solve(ctx context.Context, problem *milp.Problem) (*milp.Solution, error) {
	logger := common.LoggerFromContext(ctx)

	if g.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.Timeout)
		defer cancel()
	}

	std, err := standardize(problem)
	if err != nil {
		return nil, err
	}

	root := std.rootNode()
	best := &incumbent{objective: math.Inf(1)}
	nodesExplored := 0
	stack := []*node{root}

	for len(stack) > 0 {
		if nodesExplored >= g.NodeLimit {
			logger.Log("DEBUG", "milp branch-and-bound node limit reached", map[string]interface{}{"nodes": nodesExplored})
			break
		}
		select {
		case <-ctx.Done():
			logger.Log("DEBUG", "milp branch-and-bound cancelled or timed out", nil)
			if best.objective == math.Inf(1) {
				return &milp.Solution{Status: milp.StatusError, Message: ctx.Err().Error()}, nil
			}
			return best.toSolution(std, problem), nil
		default:
		}

		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		nodesExplored++

		objective, x, ok := std.solveRelaxation(n)
		if !ok {
			continue // infeasible branch
		}
		if objective >= best.objective {
			continue // bound-and-prune
		}

		branchVar, fracValue, isIntegral := std.mostFractional(x, g.IntegerTolerance)
		if isIntegral {
			best.objective = objective
			best.values = append([]float64{}, x...)
			continue
		}

		floorNode, ceilNode := n.branch(branchVar, fracValue)
		stack = append(stack, floorNode, ceilNode)
	}

	if best.objective == math.Inf(1) {
		return &milp.Solution{Status: milp.StatusInfeasible, Message: "no integer-feasible solution found"}, nil
	}
	return best.toSolution(std, problem), nil
}

type incumbent struct {
	objective float64
	values    []float64
}

func (inc *incumbent) toSolution(std *standardForm, problem *milp.Problem) *milp.Solution {
	columns := make(map[string]float64, len(problem.Variables))
	for i, v := range problem.Variables {
		columns[v.Name] = std.originalValue(i, inc.values)
	}
	return &milp.Solution{Status: milp.StatusOptimal, Columns: columns, ObjectiveValue: inc.objective}
}

// standardForm is problem compiled into gonum lp.Simplex's expected
// shape: minimize c^T x subject to A x = b, x >= 0. Upper-bounded
// variables get a slack row; inequality constraints get a slack or
// surplus column. varIndex[i] is the standard-form column for original
// variable i (all our variables have Lower == 0).
type standardForm struct {
	c        []float64
	a        [][]float64
	b        []float64
	varIndex []int
	upper    []float64 // per standard-form column, +Inf if unbounded
	integer  []bool    // per original variable index
	nCols    int
}

func standardize(problem *milp.Problem) (*standardForm, error) {
	nVars := len(problem.Variables)
	std := &standardForm{
		varIndex: make([]int, nVars),
		integer:  make([]bool, nVars),
	}

	colOf := make(map[string]int, nVars)
	for i, v := range problem.Variables {
		if v.Lower != 0 {
			return nil, errors.New("milpsolver: nonzero variable lower bounds are not supported")
		}
		col := std.nCols
		std.nCols++
		colOf[v.Name] = col
		std.varIndex[i] = col
		std.upper = append(std.upper, v.Upper)
		std.integer[i] = v.Kind != milp.Continuous
	}

	std.c = make([]float64, std.nCols)
	for _, t := range problem.Objective {
		col, ok := colOf[t.Var]
		if !ok {
			continue
		}
		std.c[col] += t.Coef
	}

	for _, cons := range problem.Constraints {
		row := make([]float64, std.nCols)
		for _, t := range cons.Terms {
			col, ok := colOf[t.Var]
			if !ok {
				continue
			}
			row[col] += t.Coef
		}

		switch cons.Sense {
		case milp.Equal:
			std.addRow(row, cons.RHS)
		case milp.LessEq:
			row = appendSlackColumn(&std.c, row, std, 1)
			std.addRow(row, cons.RHS)
		case milp.GreaterEq:
			row = appendSlackColumn(&std.c, row, std, -1)
			std.addRow(row, cons.RHS)
		}
	}

	return std, nil
}

// appendSlackColumn grows every existing row (and the objective vector)
// by one column for a slack/surplus variable with the given sign, and
// returns the (now-wider) row under construction with its own slack set.
func appendSlackColumn(c *[]float64, row []float64, std *standardForm, sign float64) []float64 {
	col := std.nCols
	std.nCols++
	std.upper = append(std.upper, math.Inf(1))
	*c = append(*c, 0)

	for i := range std.a {
		std.a[i] = append(std.a[i], 0)
	}
	row = append(row, 0)
	row[col] = sign
	return row
}

func (std *standardForm) addRow(row []float64, rhs float64) {
	for len(row) < std.nCols {
		row = append(row, 0)
	}
	std.a = append(std.a, row)
	std.b = append(std.b, rhs)
}

// node is one branch-and-bound subproblem: extra per-column bounds on
// top of standardForm's base upper bounds (and an implicit lower bound
// of 0, tightened by ceil branches via an extra >= row).
type node struct {
	extraUpper map[int]float64
	extraLower map[int]float64
}

func (std *standardForm) rootNode() *node {
	return &node{extraUpper: map[int]float64{}, extraLower: map[int]float64{}}
}

func (n *node) branch(col int, fracValue float64) (*node, *node) {
	floorVal := math.Floor(fracValue)
	ceilVal := math.Ceil(fracValue)

	floorNode := &node{extraUpper: cloneFloatMap(n.extraUpper), extraLower: cloneFloatMap(n.extraLower)}
	floorNode.extraUpper[col] = floorVal

	ceilNode := &node{extraUpper: cloneFloatMap(n.extraUpper), extraLower: cloneFloatMap(n.extraLower)}
	ceilNode.extraLower[col] = ceilVal

	return floorNode, ceilNode
}

func cloneFloatMap(in map[int]float64) map[int]float64 {
	out := make(map[int]float64, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

// solveRelaxation solves the LP relaxation for n by adding one
// upper-bound row and one lower-bound row per tightened column, then
// calling gonum's simplex.
func (std *standardForm) solveRelaxation(n *node) (objective float64, x []float64, feasible bool) {
	a := make([][]float64, len(std.a), len(std.a)+2*len(n.extraUpper))
	copy(a, std.a)
	b := append([]float64{}, std.b...)

	nCols := std.nCols
	addBoundRow := func(col int, bound float64, upperBound bool) {
		row := make([]float64, nCols)
		row[col] = 1
		if !upperBound {
			row[col] = -1
			bound = -bound
		}
		a = append(a, row)
		b = append(b, bound)
	}

	bounded := std.boundedColumns()
	for _, col := range sortedKeys(bounded) {
		bound := bounded[col]
		if !math.IsInf(bound, 1) {
			addBoundRow(col, bound, true)
		}
	}
	for _, col := range sortedKeys(n.extraUpper) {
		addBoundRow(col, n.extraUpper[col], true)
	}
	for _, col := range sortedKeys(n.extraLower) {
		addBoundRow(col, n.extraLower[col], false)
	}

	// lp.Simplex expects Ax = b; finite bounds above are expressed as
	// <= rows, so widen every such row with its own slack column.
	a, nCols = widenForSlack(a, nCols, len(std.a))

	rows := len(a)
	flatA := make([]float64, 0, rows*nCols)
	for _, row := range a {
		flatA = append(flatA, row...)
	}
	matA := mat.NewDense(rows, nCols, flatA)

	c := make([]float64, nCols)
	copy(c, std.c)

	obj, xFull, err := lp.Simplex(c, matA, b, 0, nil)
	if err != nil {
		return 0, nil, false
	}
	return obj, xFull[:std.nCols], true
}

// boundedColumns returns the finite base upper bounds declared on the
// problem's own variables (not branch-and-bound tightenings).
func (std *standardForm) boundedColumns() map[int]float64 {
	out := make(map[int]float64)
	for col, u := range std.upper {
		if !math.IsInf(u, 1) {
			out[col] = u
		}
	}
	return out
}

// widenForSlack appends one slack column per bound row (every row from
// index equalRows onward) so that each becomes an equality, matching
// lp.Simplex's standard-form contract.
func widenForSlack(a [][]float64, nCols, equalRows int) ([][]float64, int) {
	extraCols := len(a) - equalRows
	if extraCols <= 0 {
		return a, nCols
	}
	widened := make([][]float64, len(a))
	newCols := nCols + extraCols
	for i, row := range a {
		wide := make([]float64, newCols)
		copy(wide, row)
		if i >= equalRows {
			wide[nCols+(i-equalRows)] = 1
		}
		widened[i] = wide
	}
	return widened, newCols
}

// mostFractional finds the integer/binary column whose relaxed value is
// furthest from an integer, for branching (a simple, deterministic
// strategy in place of pseudo-cost branching).
func (std *standardForm) mostFractional(x []float64, tol float64) (col int, value float64, integral bool) {
	worstCol := -1
	worstFrac := tol
	for varIdx, isInt := range std.integer {
		if !isInt {
			continue
		}
		col := std.varIndex[varIdx]
		v := x[col]
		frac := math.Abs(v - math.Round(v))
		if frac > worstFrac {
			worstFrac = frac
			worstCol = col
		}
	}
	if worstCol == -1 {
		return 0, 0, true
	}
	return worstCol, x[worstCol], false
}

func (std *standardForm) originalValue(varIdx int, x []float64) float64 {
	col := std.varIndex[varIdx]
	if col >= len(x) {
		return 0
	}
	return x[col]
}

// sortedKeys fixes the row order in which bound constraints are appended
// in solveRelaxation (base upper bounds and both branch-and-bound extra
// bound sets); without it, Go's randomized map iteration would vary which
// tied-optimal simplex vertex comes back across otherwise identical
// calls, violating spec §5's determinism guarantee.
func sortedKeys(m map[int]float64) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}
