// Package fallback implements the heuristic recursive-fulfillment and
// greedy mission-packing pathway used when every horizon-search
// candidate's MILP solve fails (spec §4.8).
package fallback

import (
	"math"

	"github.com/andrescamacho/egg-planner/internal/domain/cost"
	"github.com/andrescamacho/egg-planner/internal/domain/mission"
	"github.com/andrescamacho/egg-planner/internal/domain/planner"
	"github.com/andrescamacho/egg-planner/internal/domain/recipe"
	"github.com/andrescamacho/egg-planner/internal/domain/ship"
)

// MaxGreedyIterations bounds the mission-packing loop (spec §4.8).
const MaxGreedyIterations = 3000

// Epsilon is the residual-demand threshold below which packing stops.
const Epsilon = 1e-6

// Solve runs the heuristic fallback: recursive craft-vs-farm fulfillment
// followed by greedy mission packing, and assembles a Result in the same
// shape the MILP pathway produces (spec §4.8).
func Solve(
	table *recipe.Table,
	closure *recipe.Closure,
	actions []mission.Action,
	inventory map[string]int,
	craftCounts map[string]int,
	targetKey string,
	quantity int,
	priorityTime, gRef, tRef float64,
) *planner.Result {
	f := &fulfiller{
		table:       table,
		actions:     actions,
		inventory:   cloneInts(inventory),
		craftCounts: craftCounts,
		crafts:      make(map[string]float64),
		demand:      make(map[string]float64),
		wGE:         1 - priorityTime,
		wT:          priorityTime,
		gRef:        gRef,
		tRef:        tRef,
	}

	breakdown := f.fulfillTarget(targetKey, float64(quantity))

	crafts := roundCrafts(f.crafts)
	_, launches, unmet := greedyPack(actions, f.demand)

	result := &planner.Result{
		TargetItemID:    recipe.ToItemID(targetKey),
		Quantity:        quantity,
		PriorityTime:    priorityTime,
		TargetBreakdown: breakdown,
		Notes:           []string{"solved via heuristic fallback: MILP pathway failed for every horizon-search candidate"},
	}

	result.GECost = geCostFromCrafts(table, craftCounts, crafts)
	for item, n := range crafts {
		if n > 0 {
			result.Crafts = append(result.Crafts, planner.CraftRow{ItemID: recipe.ToItemID(item), Count: n})
		}
	}

	result.Missions, result.TotalSlotSeconds = mission.BuildRows(actions, launches)
	result.ExpectedHours = result.TotalSlotSeconds / 3 / 3600

	result.UnmetItems = make(map[string]float64)
	for item, n := range unmet {
		if n > Epsilon {
			result.UnmetItems[recipe.ToItemID(item)] = n
		}
	}

	result.WeightedScore = cost.NormalizedScore(result.GECost, result.TotalSlotSeconds, priorityTime, gRef, tRef)

	return result
}

type fulfiller struct {
	table       *recipe.Table
	actions     []mission.Action
	inventory   map[string]int
	craftCounts map[string]int

	crafts map[string]float64 // itemKey -> quantity chosen to craft
	demand map[string]float64 // itemKey -> quantity left to farm

	wGE, wT, gRef, tRef float64
}

// fulfillTarget runs fulfill for the top-level target item and reports
// the resulting coverage breakdown (spec §8 targetBreakdown).
func (f *fulfiller) fulfillTarget(item string, qty float64) planner.TargetBreakdown {
	// qty is additional demand beyond whatever is already in inventory
	// (spec §8 "inventory excess"), so unlike fulfill/choose for
	// ingredients, the target's own stock is never drawn down here.
	var fromCraft, fromMissions float64
	if qty > Epsilon {
		fromCraft, fromMissions = f.choose(item, qty)
	}

	shortfall := qty - fromCraft - fromMissions
	if shortfall < 0 {
		shortfall = 0
	}

	return planner.TargetBreakdown{
		Requested:            int(qty),
		FromInventory:        0,
		FromCraft:            int(fromCraft),
		FromMissionsExpected: fromMissions,
		Shortfall:            shortfall,
	}
}

// fulfill recursively assigns qty units of item to inventory, craft, or
// farm demand (spec §4.8 step 1).
func (f *fulfiller) fulfill(item string, qty float64) {
	fromInventory := math.Min(float64(f.inventory[item]), qty)
	remaining := qty - fromInventory
	f.inventory[item] -= int(fromInventory)

	if remaining > Epsilon {
		f.choose(item, remaining)
	}
}

// choose applies the craft-vs-farm comparison to exactly one item and
// returns how much was assigned to crafting vs. farming (spec §4.8).
func (f *fulfiller) choose(item string, qty float64) (craftQty, farmQty float64) {
	r, craftable := f.table.Recipe(item)

	craftScore := math.Inf(1)
	if craftable {
		craftScore = f.wGE * cost.Discount(r.Cost, f.craftCounts[item]) / f.gRef
	}

	farmScore, hasFarm := f.bestFarmScore(item)

	if craftable && (!hasFarm || craftScore <= farmScore) {
		f.crafts[item] += qty
		for ingredient, mult := range r.Ingredients {
			f.fulfill(ingredient, qty*float64(mult))
		}
		return qty, 0
	}

	if hasFarm {
		f.demand[item] += qty
		return 0, qty
	}

	// Neither craftable nor farmable: still recorded as demand so it
	// surfaces as unmet after greedy packing finds nothing to cover it.
	f.demand[item] += qty
	return 0, 0
}

// bestFarmScore returns the smallest normalized per-unit time score
// across every action yielding item directly (spec §4.8
// "farmScore = w_t · bestTimePerUnit(item) · timeMult / T_ref").
func (f *fulfiller) bestFarmScore(item string) (float64, bool) {
	best := math.Inf(1)
	found := false
	for _, a := range f.actions {
		yield, ok := a.Yields[item]
		if !ok || yield <= 0 {
			continue
		}
		timeMult := ship.DurationWeights[a.DurationType]
		perUnit := float64(a.DurationSeconds) / (3 * yield) * timeMult
		if perUnit < best {
			best = perUnit
			found = true
		}
	}
	if !found {
		return math.Inf(1), false
	}
	return f.wT * best / f.tRef, true
}

func roundCrafts(crafts map[string]float64) map[string]int {
	out := make(map[string]int, len(crafts))
	for item, qty := range crafts {
		out[item] = int(math.Round(qty))
	}
	return out
}

// greedyPack runs the greedy mission-packing loop of spec §4.8 step 2:
// at each iteration launch the action maximizing coverage of residual
// demand per second, until demand is exhausted or the iteration cap is
// hit.
func greedyPack(actions []mission.Action, demand map[string]float64) (unused map[string]float64, launches map[string]int, unmet map[string]float64) {
	residual := make(map[string]float64, len(demand))
	for item, qty := range demand {
		residual[item] = qty
	}
	launches = make(map[string]int)

	for iter := 0; iter < MaxGreedyIterations; iter++ {
		if residualExhausted(residual) {
			break
		}

		bestIdx := -1
		bestRate := 0.0
		for i, a := range actions {
			coverage := 0.0
			for item, yield := range a.Yields {
				need := residual[item]
				if need <= 0 {
					continue
				}
				coverage += math.Min(yield, need)
			}
			if coverage <= Epsilon {
				continue
			}
			rate := coverage / float64(a.DurationSeconds)
			if rate > bestRate {
				bestRate = rate
				bestIdx = i
			}
		}

		if bestIdx == -1 {
			break // no action can make further progress
		}

		a := actions[bestIdx]
		launches[a.Key]++
		for item, yield := range a.Yields {
			residual[item] -= yield
			if residual[item] < 0 {
				residual[item] = 0
			}
		}
	}

	unmet = make(map[string]float64, len(residual))
	for item, n := range residual {
		if n > Epsilon {
			unmet[item] = n
		}
	}
	return nil, launches, unmet
}

func residualExhausted(residual map[string]float64) bool {
	for _, n := range residual {
		if n > Epsilon {
			return false
		}
	}
	return true
}

func geCostFromCrafts(table *recipe.Table, craftCounts map[string]int, crafts map[string]int) float64 {
	var total float64
	for item, n := range crafts {
		r, ok := table.Recipe(item)
		if !ok || n <= 0 {
			continue
		}
		total += cost.BatchCost(r.Cost, craftCounts[item], n)
	}
	return total
}

func cloneInts(in map[string]int) map[string]int {
	out := make(map[string]int, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
