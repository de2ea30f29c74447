package horizon

import (
	"context"
	"fmt"
	"math"

	"github.com/andrescamacho/egg-planner/internal/application/common"
	"github.com/andrescamacho/egg-planner/internal/domain/cost"
	"github.com/andrescamacho/egg-planner/internal/domain/milp"
	"github.com/andrescamacho/egg-planner/internal/domain/mission"
	"github.com/andrescamacho/egg-planner/internal/domain/planner"
	"github.com/andrescamacho/egg-planner/internal/domain/recipe"
	"github.com/andrescamacho/egg-planner/internal/domain/ship"
)

// Params configures one horizon search. It mirrors, without importing,
// the solver/horizon sections of infrastructure/config so this package
// stays independent of the configuration layer.
type Params struct {
	MaxDepth              int
	BeamWidth             int
	MaxLaunchesPerAction  int
	FastMode              bool
	FastModeMaxCandidates int
	MinTimeWeight         float64
	YieldMultiplier       float64
}

// CandidateSolution is one candidate's solved MILP, decoded and scored.
type CandidateSolution struct {
	State    *State
	Actions  []mission.Action
	Decoded  *milp.Decoded
	GECost   float64
	FarmSlotSeconds float64
	Score    float64
}

// Result is the outcome of a full horizon search: either a best
// candidate, or every candidate failed to solve.
type Result struct {
	Best            *CandidateSolution
	GRef            float64
	TRef            float64
	CandidateErrors []*planner.SolverError
}

// Search runs the beam search, solves the MILP for each surviving
// candidate, and selects the minimizer of total_score (spec §4.6). It
// returns *planner.AllCandidatesFailedError if every candidate's solve
// failed, or *planner.MissionCoverageError if the best solution leaves an
// item with no coverage at all (spec §4.7).
func Search(
	ctx context.Context,
	solver milp.Solver,
	fleet ship.Fleet,
	table *recipe.Table,
	profile *planner.Profile,
	targetKey string,
	quantity int,
	priorityTime float64,
	loot mission.LootData,
	params Params,
	onProgress func(planner.Event),
) (*Result, error) {
	logger := common.LoggerFromContext(ctx)

	closure, err := recipe.ComputeClosure(table, targetKey, quantity)
	if err != nil {
		return nil, fmt.Errorf("computing closure: %w", err)
	}

	gRef := cost.GRef(table, closure, profile.CraftCounts, targetKey)

	initial := InitialState(profile)
	baselineActions := mission.BuildMissionActions(initial.MissionOptions, loot, closure, params.YieldMultiplier)
	tRef := cost.TRef(baselineActions, targetKey, quantity)

	emit(onProgress, planner.PhaseCandidates, "expanding ship-progression states")
	raw := RunBeamSearch(fleet, profile.Research, initial, params.MaxDepth, params.BeamWidth, params.MaxLaunchesPerAction)
	deduped := DedupByMissionOptions(raw)
	if params.FastMode {
		deduped = ApplyFastMode(deduped, params.FastModeMaxCandidates)
	}

	wT := math.Max(priorityTime, params.MinTimeWeight)

	result := &Result{GRef: gRef, TRef: tRef}
	best := math.Inf(1)

	for i, state := range deduped {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		lowerBound := wT * (state.PrepWeightedSlotSeconds / 3) / tRef
		if best <= lowerBound+1e-9 {
			logger.Log("DEBUG", "pruning dominated candidate", map[string]interface{}{
				"candidate_index": i,
				"prep_slot_seconds": state.PrepSlotSeconds,
			})
			continue
		}

		emit(onProgress, planner.PhaseCandidate, fmt.Sprintf("solving candidate %d/%d", i+1, len(deduped)))

		actions := mission.BuildMissionActions(state.MissionOptions, loot, closure, params.YieldMultiplier)
		problem := milp.BuildProblem(milp.BuildInput{
			Table:         table,
			Closure:       closure,
			CraftCounts:   profile.CraftCounts,
			Inventory:     profile.Inventory,
			Actions:       actions,
			TargetKey:     targetKey,
			Quantity:      quantity,
			PriorityTime:  priorityTime,
			GRef:          gRef,
			TRef:          tRef,
			MinTimeWeight: params.MinTimeWeight,
		})

		solution, err := solver.Solve(ctx, problem)
		if err != nil || solution.Status != milp.StatusOptimal {
			message := solverFailureMessage(err, solution)
			solverErr := &planner.SolverError{CandidateIndex: i, Message: message}
			result.CandidateErrors = append(result.CandidateErrors, solverErr)
			logger.Log("INFO", "candidate solver failed", map[string]interface{}{
				"candidate_index": i,
				"solver_status":   message,
			})
			continue
		}

		decoded := milp.DecodeSolution(problem, solution)
		ge := recomputeGECost(table, profile.CraftCounts, decoded.Crafts)
		farmSlotSeconds := totalSlotSeconds(actions, decoded.Launches)
		totalSeconds := state.PrepSlotSeconds + farmSlotSeconds
		score := solution.ObjectiveValue + wT*(state.PrepWeightedSlotSeconds/3)/tRef

		// Ties on the objective break toward the smaller total slot time
		// (spec §5 "Determinism").
		better := score < best-1e-9
		tie := math.Abs(score-best) <= 1e-9
		if better || (tie && result.Best != nil && totalSeconds < result.Best.State.PrepSlotSeconds+result.Best.FarmSlotSeconds) {
			best = score
			result.Best = &CandidateSolution{
				State:           state,
				Actions:         actions,
				Decoded:         decoded,
				GECost:          ge,
				FarmSlotSeconds: farmSlotSeconds,
				Score:           score,
			}
		}
	}

	if result.Best == nil {
		return result, &planner.AllCandidatesFailedError{CandidateErrors: result.CandidateErrors}
	}

	if itemIDs := uncoveredItems(table, result.Best); len(itemIDs) > 0 {
		return result, &planner.MissionCoverageError{ItemIDs: itemIDs}
	}

	return result, nil
}

func emit(onProgress func(planner.Event), phase planner.Phase, message string) {
	if onProgress == nil {
		return
	}
	onProgress(planner.Event{
		Type:     planner.EventProgress,
		Progress: &planner.Progress{Phase: phase, Message: message},
	})
}

func solverFailureMessage(err error, solution *milp.Solution) string {
	if err != nil {
		return err.Error()
	}
	if solution != nil && solution.Message != "" {
		return solution.Message
	}
	return "non-optimal status"
}

func recomputeGECost(table *recipe.Table, craftCounts map[string]int, crafts map[string]int) float64 {
	var total float64
	for item, count := range crafts {
		r, ok := table.Recipe(item)
		if !ok || count == 0 {
			continue
		}
		total += cost.BatchCost(r.Cost, craftCounts[item], count)
	}
	return total
}

func totalSlotSeconds(actions []mission.Action, launches map[string]int) float64 {
	var total float64
	for _, a := range actions {
		total += float64(launches[a.Key] * a.DurationSeconds)
	}
	return total
}

// uncoveredItems implements spec §4.7's mission coverage error. It only
// considers terminal (non-craftable) closure items: a craftable item
// always has an alternate path through its ingredients, so the "no
// recipe path" condition in spec §8 scenario 4 can only be true of a
// terminal item with strictly positive unmet demand, no action yielding
// it at all, and a plan that launched no missions and crafted nothing.
func uncoveredItems(table *recipe.Table, best *CandidateSolution) []string {
	hasAnyMissionOrCraft := false
	for _, n := range best.Decoded.Launches {
		if n > 0 {
			hasAnyMissionOrCraft = true
		}
	}
	for _, n := range best.Decoded.Crafts {
		if n > 0 {
			hasAnyMissionOrCraft = true
		}
	}
	if hasAnyMissionOrCraft {
		return nil
	}

	yieldedItems := make(map[string]bool)
	for _, a := range best.Actions {
		for item := range a.Yields {
			yieldedItems[item] = true
		}
	}

	var uncovered []string
	for item, unmet := range best.Decoded.Unmet {
		if unmet > 0 && !table.IsCraftable(item) && !yieldedItems[item] {
			uncovered = append(uncovered, recipe.ToItemID(item))
		}
	}
	return uncovered
}
