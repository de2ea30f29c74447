package planservice

import (
	"context"
	"math"

	"github.com/andrescamacho/egg-planner/internal/application/fallback"
	"github.com/andrescamacho/egg-planner/internal/application/horizon"
	"github.com/andrescamacho/egg-planner/internal/domain/cost"
	"github.com/andrescamacho/egg-planner/internal/domain/milp"
	"github.com/andrescamacho/egg-planner/internal/domain/mission"
	"github.com/andrescamacho/egg-planner/internal/domain/planner"
	"github.com/andrescamacho/egg-planner/internal/domain/recipe"
)

// Options customizes one PlanForTarget call beyond its required
// arguments (spec §6.1).
type Options struct {
	FastMode bool
	// OnProgress, if set, receives every progress/result/error event on
	// this request (spec §6.2). It must not block for long: the service
	// calls it synchronously between solver invocations.
	OnProgress func(planner.Event)
	// LootData overrides the service's shared cache, primarily for tests.
	LootData *mission.LootData
}

// PlanForTarget runs the full planning pipeline for one (targetItemId,
// quantity) request: horizon search over ship-progression states, MILP
// solve per candidate, and a heuristic fallback if every candidate's
// solve fails (spec §6.1).
func (s *Service) PlanForTarget(ctx context.Context, profile *planner.Profile, targetItemID string, quantity int, priorityTime float64, opts Options) (*planner.Result, error) {
	emit := opts.OnProgress
	if emit == nil {
		emit = func(planner.Event) {}
	}

	quantity = int(math.Max(1, math.Round(float64(quantity))))
	priorityTime = math.Min(1, math.Max(0, priorityTime))
	targetKey := recipe.ToItemKey(targetItemID)

	emit(planner.Event{Type: planner.EventProgress, Progress: &planner.Progress{Phase: planner.PhaseInit, Message: "loading loot data"}})

	loot, err := s.resolveLootData(ctx, opts)
	if err != nil {
		lootErr := &planner.LootDataError{Reason: err.Error()}
		emit(planner.Event{Type: planner.EventError, Err: lootErr})
		return nil, lootErr
	}

	params := horizon.Params{
		MaxDepth:              s.Config.Horizon.MaxDepth,
		BeamWidth:             s.Config.Horizon.BeamWidth,
		MaxLaunchesPerAction:  s.Config.Horizon.MaxLaunchesPerAction,
		FastMode:              opts.FastMode,
		FastModeMaxCandidates: s.Config.Horizon.FastModeMaxCandidates,
		MinTimeWeight:         s.Config.Solver.MinTimeWeight,
		YieldMultiplier:       1,
	}

	searchResult, err := horizon.Search(ctx, s.Solver, s.Fleet, s.Table, profile, targetKey, quantity, priorityTime, loot, params, emit)

	var allFailed *planner.AllCandidatesFailedError
	if err != nil {
		var coverageErr *planner.MissionCoverageError
		switch {
		case asError(err, &coverageErr):
			emit(planner.Event{Type: planner.EventError, Err: coverageErr})
			return nil, coverageErr
		case asError(err, &allFailed):
			return s.runFallback(ctx, profile, targetKey, quantity, priorityTime, loot, searchResult, emit)
		default:
			emit(planner.Event{Type: planner.EventError, Err: err})
			return nil, err
		}
	}

	emit(planner.Event{Type: planner.EventProgress, Progress: &planner.Progress{Phase: planner.PhaseRefinement, Message: "finalizing best candidate"}})
	result := buildResult(s.Table, profile, targetKey, quantity, priorityTime, searchResult)
	emit(planner.Event{Type: planner.EventProgress, Progress: &planner.Progress{Phase: planner.PhaseFinalize, Message: "done"}})
	emit(planner.Event{Type: planner.EventResult, Result: result})

	return result, nil
}

func (s *Service) runFallback(ctx context.Context, profile *planner.Profile, targetKey string, quantity int, priorityTime float64, loot mission.LootData, searchResult *horizon.Result, emit func(planner.Event)) (*planner.Result, error) {
	emit(planner.Event{Type: planner.EventProgress, Progress: &planner.Progress{Phase: planner.PhaseFallback, Message: "MILP pathway failed for every candidate; falling back to heuristic"}})

	closure, err := recipe.ComputeClosure(s.Table, targetKey, quantity)
	if err != nil {
		emit(planner.Event{Type: planner.EventError, Err: err})
		return nil, err
	}
	actions := mission.BuildMissionActions(profile.MissionOptions, loot, closure, 1)

	gRef, tRef := 1.0, 1.0
	if searchResult != nil {
		gRef, tRef = searchResult.GRef, searchResult.TRef
	}

	result := fallback.Solve(s.Table, closure, actions, profile.Inventory, profile.CraftCounts, targetKey, quantity, priorityTime, gRef, tRef)

	emit(planner.Event{Type: planner.EventProgress, Progress: &planner.Progress{Phase: planner.PhaseFinalize, Message: "done"}})
	emit(planner.Event{Type: planner.EventResult, Result: result})
	return result, nil
}

func (s *Service) resolveLootData(ctx context.Context, opts Options) (mission.LootData, error) {
	if opts.LootData != nil {
		return *opts.LootData, nil
	}
	return s.Loot.Fetch(ctx)
}

// asError is a small generic helper mirroring errors.As for the
// two distinguished sentinel types this package branches on.
func asError[T error](err error, target *T) bool {
	for err != nil {
		if v, ok := err.(T); ok {
			*target = v
			return true
		}
		unwrapper, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = unwrapper.Unwrap()
	}
	return false
}

func buildResult(table *recipe.Table, profile *planner.Profile, targetKey string, quantity int, priorityTime float64, sr *horizon.Result) *planner.Result {
	best := sr.Best
	decoded := best.Decoded

	result := &planner.Result{
		TargetItemID:     recipe.ToItemID(targetKey),
		Quantity:         quantity,
		PriorityTime:     priorityTime,
		GECost:           best.GECost,
		TotalSlotSeconds: best.State.PrepSlotSeconds + best.FarmSlotSeconds,
	}
	result.ExpectedHours = result.TotalSlotSeconds / 3 / 3600
	result.WeightedScore = cost.NormalizedScore(best.GECost, result.TotalSlotSeconds, priorityTime, sr.GRef, sr.TRef)

	for item, n := range decoded.Crafts {
		if n > 0 {
			result.Crafts = append(result.Crafts, planner.CraftRow{ItemID: recipe.ToItemID(item), Count: n})
		}
	}
	result.Missions, _ = mission.BuildRows(best.Actions, decoded.Launches)

	result.UnmetItems = make(map[string]float64)
	for item, n := range decoded.Unmet {
		if n > fallback.Epsilon {
			result.UnmetItems[recipe.ToItemID(item)] = n
		}
	}

	result.TargetBreakdown = buildTargetBreakdown(profile, targetKey, quantity, decoded, best.Actions)

	var prepLaunches int
	prepReasons := make([]string, 0, len(best.State.PrepSteps))
	for _, step := range best.State.PrepSteps {
		prepLaunches += step.Launches
		prepReasons = append(prepReasons, step.Reason)
	}
	result.Progression = planner.Progression{
		PrepHours:           best.State.PrepSlotSeconds / 3 / 3600,
		PrepLaunches:        prepLaunches,
		ProjectedShipLevels: best.State.ShipLevels,
		PrepReasons:         prepReasons,
	}

	return result
}

// buildTargetBreakdown reports how the requested quantity of the target
// was covered: the decoded craft count, then the expected mission
// yield, then the target's unmet slack as shortfall; FromInventory is
// always 0 (spec §8 targetBreakdown).
func buildTargetBreakdown(profile *planner.Profile, targetKey string, quantity int, decoded *milp.Decoded, actions []mission.Action) planner.TargetBreakdown {
	// Requested quantity is additional demand beyond whatever is already
	// in inventory (spec §8 "inventory excess"), so none of it is ever
	// reported as coming from the target's own pre-existing stock.
	fromCraft := decoded.Crafts[targetKey]

	var fromMissions float64
	for _, a := range actions {
		if yield, ok := a.Yields[targetKey]; ok {
			fromMissions += yield * float64(decoded.Launches[a.Key])
		}
	}

	shortfall := decoded.Unmet[targetKey]

	return planner.TargetBreakdown{
		Requested:            quantity,
		FromInventory:        0,
		FromCraft:            fromCraft,
		FromMissionsExpected: fromMissions,
		Shortfall:            shortfall,
	}
}
