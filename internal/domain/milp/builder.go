package milp

import (
	"fmt"
	"math"

	"github.com/andrescamacho/egg-planner/internal/domain/cost"
	"github.com/andrescamacho/egg-planner/internal/domain/mission"
	"github.com/andrescamacho/egg-planner/internal/domain/recipe"
	"github.com/andrescamacho/egg-planner/internal/domain/ship"
)

// unmetUpperBound caps the unmet-demand slack variable; it only needs to
// be larger than any plausible demand figure, since BIG makes it strictly
// dominated in any feasible alternative.
const unmetUpperBound = 1e9

// launchUpperBound caps a single action's launch count; horizon-search
// candidates are expected to need far fewer launches than this in any
// reasonable plan.
const launchUpperBound = 1e7

// BuildInput collects everything BuildProblem needs for one candidate.
type BuildInput struct {
	Table         *recipe.Table
	Closure       *recipe.Closure
	CraftCounts   map[string]int
	Inventory     map[string]int
	Actions       []mission.Action
	TargetKey     string
	Quantity      int
	PriorityTime  float64
	GRef          float64
	TRef          float64
	MinTimeWeight float64
}

func craftVar(item string) string      { return "c:" + item }
func unmetVar(item string) string      { return "u:" + item }
func tailVar(item string) string       { return "t:" + item }
func slotVar(item string, k int) string { return fmt.Sprintf("y:%s:%d", item, k) }
func actionVar(key string) string      { return "m:" + key }

// BuildProblem constructs the unified MILP for one candidate mission-
// option set (spec §4.5): flow conservation, discount-slot linking, and
// the normalized bi-objective with unmet-demand penalty.
func BuildProblem(in BuildInput) *Problem {
	p := &Problem{}

	wGE := 1 - in.PriorityTime
	wT := math.Max(in.PriorityTime, in.MinTimeWeight)

	consumers := buildConsumerIndex(in.Table, in.Closure)

	for _, item := range in.Closure.Items {
		p.AddVariable(Variable{Name: unmetVar(item), Kind: Continuous, Lower: 0, Upper: unmetUpperBound})

		terms := []Term{{Var: unmetVar(item), Coef: 1}}
		if in.Table.IsCraftable(item) {
			terms = append(terms, Term{Var: craftVar(item), Coef: 1})
		}
		for _, a := range in.Actions {
			if yield, ok := a.Yields[item]; ok && yield != 0 {
				terms = append(terms, Term{Var: actionVar(a.Key), Coef: yield})
			}
		}
		for _, c := range consumers[item] {
			terms = append(terms, Term{Var: craftVar(c.item), Coef: -c.multiplicity})
		}

		// The requested quantity is additional demand on top of whatever
		// is already in inventory (spec §8 "inventory excess": Q is not
		// reduced by existing stock of the target item itself), so the
		// target's own inventory is added back into demand before the
		// generic inventory subtraction below cancels it out.
		demand := 0.0
		if item == in.TargetKey {
			demand = float64(in.Quantity) + float64(in.Inventory[item])
		}
		p.AddConstraint(Constraint{
			Name:  "flow:" + item,
			Terms: terms,
			Sense: GreaterEq,
			RHS:   demand - float64(in.Inventory[item]),
		})
	}

	for _, item := range in.Closure.Items {
		r, ok := in.Table.Recipe(item)
		if !ok {
			continue
		}
		addCraftableVariables(p, item, r, in.Closure.UpperBound[item], in.CraftCounts[item], wGE, in.GRef)
	}

	for _, a := range in.Actions {
		p.AddVariable(Variable{Name: actionVar(a.Key), Kind: Integer, Lower: 0, Upper: launchUpperBound})
		timeMult := ship.DurationWeights[a.DurationType]
		coef := wT / in.TRef * (float64(a.DurationSeconds) / 3) * timeMult
		p.AddObjectiveTerm(actionVar(a.Key), coef)
	}

	big := 1e6 * maxObjectiveCoefficient(p)
	if big == 0 {
		big = 1e6
	}
	for _, item := range in.Closure.Items {
		p.AddObjectiveTerm(unmetVar(item), big)
	}

	return p
}

type consumption struct {
	item         string
	multiplicity float64
}

// buildConsumerIndex maps itemKey -> the craftable items (and per-unit
// multiplicity) that consume it as an ingredient.
func buildConsumerIndex(table *recipe.Table, closure *recipe.Closure) map[string][]consumption {
	index := make(map[string][]consumption)
	for _, item := range closure.Items {
		r, ok := table.Recipe(item)
		if !ok {
			continue
		}
		for ingredient, mult := range r.Ingredients {
			index[ingredient] = append(index[ingredient], consumption{item: item, multiplicity: float64(mult)})
		}
	}
	return index
}

// addCraftableVariables declares c[i], the discount-slot binaries y[i,k],
// and the tail variable t[i], wiring the discount-slot linking
// constraints and the GE objective contribution (spec §4.5).
func addCraftableVariables(p *Problem, item string, r *recipe.Recipe, bound, startCount int, wGE, gRef float64) {
	p.AddVariable(Variable{Name: craftVar(item), Kind: Integer, Lower: 0, Upper: float64(bound)})

	preSlots := bound
	if remaining := cost.DiscountCap - startCount; remaining < preSlots {
		preSlots = remaining
	}
	if preSlots < 0 {
		preSlots = 0
	}
	tailCap := bound - preSlots

	p.AddVariable(Variable{Name: tailVar(item), Kind: Integer, Lower: 0, Upper: float64(tailCap)})
	tailUnitCost := cost.Discount(r.Cost, startCount+preSlots)
	p.AddObjectiveTerm(tailVar(item), wGE/gRef*tailUnitCost)

	if preSlots == 0 {
		p.AddConstraint(Constraint{
			Name:  "slotlink:" + item,
			Terms: []Term{{Var: craftVar(item), Coef: 1}, {Var: tailVar(item), Coef: -1}},
			Sense: Equal,
			RHS:   0,
		})
		return
	}

	for k := 0; k < preSlots; k++ {
		p.AddVariable(Variable{Name: slotVar(item, k), Kind: Binary, Lower: 0, Upper: 1})
		unitCost := cost.Discount(r.Cost, startCount+k)
		p.AddObjectiveTerm(slotVar(item, k), wGE/gRef*unitCost)
	}

	linkTerms := make([]Term, 0, preSlots+2)
	linkTerms = append(linkTerms, Term{Var: craftVar(item), Coef: 1})
	for k := 0; k < preSlots; k++ {
		linkTerms = append(linkTerms, Term{Var: slotVar(item, k), Coef: -1})
	}
	linkTerms = append(linkTerms, Term{Var: tailVar(item), Coef: -1})
	p.AddConstraint(Constraint{Name: "slotlink:" + item, Terms: linkTerms, Sense: Equal, RHS: 0})

	for k := 0; k < preSlots-1; k++ {
		p.AddConstraint(Constraint{
			Name:  fmt.Sprintf("slotorder:%s:%d", item, k),
			Terms: []Term{{Var: slotVar(item, k), Coef: 1}, {Var: slotVar(item, k+1), Coef: -1}},
			Sense: GreaterEq,
			RHS:   0,
		})
	}

	p.AddConstraint(Constraint{
		Name:  "tailcap:" + item,
		Terms: []Term{{Var: tailVar(item), Coef: 1}, {Var: slotVar(item, preSlots-1), Coef: -float64(tailCap)}},
		Sense: LessEq,
		RHS:   0,
	})
}

func maxObjectiveCoefficient(p *Problem) float64 {
	max := 0.0
	for _, t := range p.Objective {
		if c := math.Abs(t.Coef); c > max {
			max = c
		}
	}
	return max
}
