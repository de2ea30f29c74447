package cost

import (
	"math"

	"github.com/andrescamacho/egg-planner/internal/domain/mission"
	"github.com/andrescamacho/egg-planner/internal/domain/recipe"
)

// GRef computes the GE objective-normalization reference: the sum, over
// every craftable closure item, of the batch cost of crafting it from its
// current craft count up to its craft upper bound. Floored at 1 and at
// the target's own base cost (spec §4.4).
func GRef(table *recipe.Table, closure *recipe.Closure, craftCounts map[string]int, targetKey string) float64 {
	var sum float64
	for _, itemKey := range closure.Items {
		r, ok := table.Recipe(itemKey)
		if !ok {
			continue
		}
		sum += BatchCost(r.Cost, craftCounts[itemKey], closure.UpperBound[itemKey])
	}

	if targetRecipe, ok := table.Recipe(targetKey); ok && sum < targetRecipe.Cost {
		sum = targetRecipe.Cost
	}
	if sum < 1 {
		sum = 1
	}
	return sum
}

// TRef computes the time objective-normalization reference. If any action
// yields the target directly, it is the fastest per-unit time (duration /
// (3 · yield)) scaled by quantity; otherwise it falls back to the fastest
// available action's duration / 3 as a coarse lower bound (spec §4.4).
func TRef(actions []mission.Action, targetKey string, quantity int) float64 {
	bestPerUnit := math.Inf(1)
	fastestAny := math.Inf(1)

	for _, a := range actions {
		perSlotDuration := float64(a.DurationSeconds) / 3
		if perSlotDuration < fastestAny {
			fastestAny = perSlotDuration
		}
		if yield, ok := a.Yields[targetKey]; ok && yield > 0 {
			perUnit := float64(a.DurationSeconds) / (3 * yield)
			if perUnit < bestPerUnit {
				bestPerUnit = perUnit
			}
		}
	}

	if !math.IsInf(bestPerUnit, 1) {
		return bestPerUnit * float64(quantity)
	}
	if !math.IsInf(fastestAny, 1) {
		return fastestAny
	}
	return 1
}

// NormalizedScore is the bi-objective value w_ge·(ge/gRef) + w_t·(time/tRef)
// (spec §4.4). Callers building the MILP objective itself apply the
// MIN_TIME_WEIGHT floor to w_t separately (milp.BuildProblem); this helper
// computes the reported weightedScore on both the MILP and the fallback
// path. Horizon candidates are ranked by the solver's objective value
// plus their prep-time term, not by this helper.
func NormalizedScore(ge, time, priorityTime, gRef, tRef float64) float64 {
	wGE := 1 - priorityTime
	wT := priorityTime
	return wGE*(ge/gRef) + wT*(time/tRef)
}
