// Package steps holds the godog step-definition registrations for the
// planning feature suite (spec §8 "Testable Properties").
package steps

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/cucumber/godog"

	"github.com/andrescamacho/egg-planner/internal/application/planservice"
	"github.com/andrescamacho/egg-planner/internal/domain/milp"
	"github.com/andrescamacho/egg-planner/internal/domain/mission"
	"github.com/andrescamacho/egg-planner/internal/domain/planner"
	"github.com/andrescamacho/egg-planner/internal/domain/recipe"
	"github.com/andrescamacho/egg-planner/internal/domain/ship"
	"github.com/andrescamacho/egg-planner/internal/infrastructure/config"
)

// planningContext holds the fixture and outcome for one scenario. Every
// scenario gets its own fresh instance via reset().
type planningContext struct {
	fleet   ship.Fleet
	loot    mission.LootData
	table   *recipe.Table
	profile *planner.Profile

	result *planner.Result
	err    error

	fastResult *planner.Result
	fastErr    error
}

func (pc *planningContext) reset() {
	*pc = planningContext{
		table:   recipe.NewTable(map[string]*recipe.Recipe{}),
		profile: &planner.Profile{Inventory: map[string]int{}, CraftCounts: map[string]int{}, LaunchCounts: map[string]ship.LaunchCounts{}},
	}
}

func (pc *planningContext) service() *planservice.Service {
	cfg := &config.Config{}
	config.SetDefaults(cfg)
	return planservice.New(pc.fleet, pc.table, &fixedLootProvider{data: pc.loot}, fakeMILPSolver{}, cfg)
}

// fixedLootProvider satisfies planservice.LootDataProvider with a fixed,
// scenario-built snapshot instead of the process-wide cache.
type fixedLootProvider struct{ data mission.LootData }

func (f *fixedLootProvider) Fetch(ctx context.Context) (mission.LootData, error) {
	return f.data, nil
}

// fakeMILPSolver is a deterministic stand-in for the branch-and-bound
// backend: for every flow constraint it greedily satisfies demand from
// mission-action variables (in the order the builder emitted them)
// before falling back to the constraint's own slack variable. It always
// reports StatusOptimal, so a scenario that wants the heuristic-fallback
// pathway instead must inject a different solver directly against
// planservice (covered by the application package's own unit tests).
type fakeMILPSolver struct{}

func (fakeMILPSolver) Solve(_ context.Context, p *milp.Problem) (*milp.Solution, error) {
	columns := make(map[string]float64)
	for _, c := range p.Constraints {
		if c.Sense != milp.GreaterEq || len(c.Terms) == 0 {
			continue
		}
		need := c.RHS
		for _, t := range c.Terms {
			if need <= 1e-9 {
				break
			}
			if t.Coef <= 0 || !strings.HasPrefix(t.Var, "m:") {
				continue
			}
			assign := need / t.Coef
			columns[t.Var] += assign
			need -= assign * t.Coef
		}
		if need > 1e-9 {
			columns[c.Terms[0].Var] += need
		}
	}

	var objective float64
	for _, t := range p.Objective {
		objective += t.Coef * columns[t.Var]
	}
	return &milp.Solution{Status: milp.StatusOptimal, Columns: columns, ObjectiveValue: objective}, nil
}

func simpleShip(id, missionID string, durationType ship.DurationType, durationSeconds int) ship.Config {
	return ship.Config{
		ID: id,
		Missions: []ship.MissionTemplate{
			{MissionID: missionID, DurationType: durationType, BaseDurationSeconds: durationSeconds, BaseCapacity: 1},
		},
	}
}

// lootForYield builds a loot-table mission record engineered so a single
// launch yields exactly perLaunch units of itemID: one drop tier, one
// target, total drops of 1.
func lootForYield(missionID, itemID string, perLaunch float64) mission.LootMission {
	return mission.LootMission{
		MissionID: missionID,
		Levels: []mission.LootLevel{{
			Level: 0,
			Targets: []mission.LootTarget{{
				TotalDrops:  1,
				TargetAfxID: missionID + "-afx",
				Items:       []mission.LootItem{{ItemID: itemID, Counts: []float64{perLaunch}}},
			}},
		}},
	}
}

func (pc *planningContext) aFleetWithOneShipMissionYields(shipID, durationType, missionID string, yieldN int, itemID string, durationSeconds int) error {
	pc.fleet = ship.Fleet{simpleShip(shipID, missionID, ship.DurationType(durationType), durationSeconds)}
	pc.loot = mission.LootData{Missions: []mission.LootMission{lootForYield(missionID, itemID, float64(yieldN))}}
	return nil
}

func (pc *planningContext) aFleetWithOneShipWithNoMissions(shipID string) error {
	pc.fleet = ship.Fleet{{ID: shipID}}
	pc.loot = mission.LootData{}
	return nil
}

func (pc *planningContext) aFleetWhereShipUnlocksAfterLaunches(laterShip string, threshold int, durationType, earlierShip string) error {
	pc.fleet = ship.Fleet{
		simpleShip(earlierShip, earlierShip+"-mission", ship.DurationType(durationType), 1200),
		{ID: laterShip, UnlockThreshold: threshold},
	}
	pc.loot = mission.LootData{}
	return nil
}

func (pc *planningContext) shipsMissionYields(shipID, durationType, missionID string, yieldN int, itemID string, durationSeconds int) error {
	found := false
	for i := range pc.fleet {
		if pc.fleet[i].ID == shipID {
			pc.fleet[i].Missions = append(pc.fleet[i].Missions, ship.MissionTemplate{
				MissionID: missionID, DurationType: ship.DurationType(durationType),
				BaseDurationSeconds: durationSeconds, BaseCapacity: 1,
			})
			found = true
		}
	}
	if !found {
		return fmt.Errorf("no ship %q in the fleet yet", shipID)
	}
	pc.loot.Missions = append(pc.loot.Missions, lootForYield(missionID, itemID, float64(yieldN)))
	return nil
}

func (pc *planningContext) anEmptyPlayerProfile() error {
	pc.profile = &planner.Profile{Inventory: map[string]int{}, CraftCounts: map[string]int{}, LaunchCounts: map[string]ship.LaunchCounts{}}
	pc.profile.Recompute(pc.fleet)
	return nil
}

func (pc *planningContext) aPlayerProfileWithInventory(itemID string, qty int) error {
	pc.profile = &planner.Profile{
		Inventory:    map[string]int{recipe.ToItemKey(itemID): qty},
		CraftCounts:  map[string]int{},
		LaunchCounts: map[string]ship.LaunchCounts{},
	}
	pc.profile.Recompute(pc.fleet)
	return nil
}

func (pc *planningContext) aPlayerProfileWithLaunchesRecorded(n int, durationType, shipID string) error {
	pc.profile = &planner.Profile{
		Inventory:   map[string]int{},
		CraftCounts: map[string]int{},
		LaunchCounts: map[string]ship.LaunchCounts{
			shipID: {ship.DurationType(durationType): n},
		},
	}
	pc.profile.Recompute(pc.fleet)
	return nil
}

func (pc *planningContext) iPlanForTarget(targetID string, quantity int, priorityTime float64) error {
	pc.result, pc.err = pc.service().PlanForTarget(context.Background(), pc.profile, targetID, quantity, priorityTime, planservice.Options{})
	return nil
}

func (pc *planningContext) iPlanForTargetBothModes(targetID string, quantity int, priorityTime float64) error {
	svc := pc.service()
	pc.result, pc.err = svc.PlanForTarget(context.Background(), pc.profile.Clone(), targetID, quantity, priorityTime, planservice.Options{})
	pc.fastResult, pc.fastErr = svc.PlanForTarget(context.Background(), pc.profile.Clone(), targetID, quantity, priorityTime, planservice.Options{FastMode: true})
	return nil
}

func (pc *planningContext) thePlanHasNoError() error {
	if pc.err != nil {
		return fmt.Errorf("expected no error, got: %v", pc.err)
	}
	if pc.result == nil {
		return fmt.Errorf("expected a result, got nil")
	}
	return nil
}

func (pc *planningContext) bothPlansHaveNoError() error {
	if pc.err != nil {
		return fmt.Errorf("normal-mode plan: expected no error, got: %v", pc.err)
	}
	if pc.fastErr != nil {
		return fmt.Errorf("fast-mode plan: expected no error, got: %v", pc.fastErr)
	}
	return nil
}

func (pc *planningContext) thePlanFailsWithAMissionCoverageError(itemID string) error {
	var coverageErr *planner.MissionCoverageError
	if !asError(pc.err, &coverageErr) {
		return fmt.Errorf("expected a mission coverage error, got: %v", pc.err)
	}
	for _, id := range coverageErr.ItemIDs {
		if id == itemID {
			return nil
		}
	}
	return fmt.Errorf("expected coverage error to name %q, got %v", itemID, coverageErr.ItemIDs)
}

func (pc *planningContext) theTargetBreakdownRequestedIs(want int) error {
	if got := pc.result.TargetBreakdown.Requested; got != want {
		return fmt.Errorf("expected requested %d, got %d", want, got)
	}
	return nil
}

func (pc *planningContext) theTargetBreakdownFromInventoryIs(want int) error {
	if got := pc.result.TargetBreakdown.FromInventory; got != want {
		return fmt.Errorf("expected fromInventory %d, got %d", want, got)
	}
	return nil
}

func (pc *planningContext) theTargetBreakdownFromMissionsExpectedIs(want float64) error {
	if got := pc.result.TargetBreakdown.FromMissionsExpected; math.Abs(got-want) > 1e-6 {
		return fmt.Errorf("expected fromMissionsExpected %v, got %v", want, got)
	}
	return nil
}

func (pc *planningContext) theTargetBreakdownShortfallIs(want float64) error {
	if got := pc.result.TargetBreakdown.Shortfall; math.Abs(got-want) > 1e-6 {
		return fmt.Errorf("expected shortfall %v, got %v", want, got)
	}
	return nil
}

func (pc *planningContext) thePlanHasOneMissionRowWithLaunches(missionID string, launches int) error {
	for _, row := range pc.result.Missions {
		if row.MissionID == missionID {
			if row.Launches != launches {
				return fmt.Errorf("expected %d launches for %s, got %d", launches, missionID, row.Launches)
			}
			return nil
		}
	}
	return fmt.Errorf("no mission row for %s in %v", missionID, pc.result.Missions)
}

func (pc *planningContext) theTotalSlotSecondsIs(want float64) error {
	if got := pc.result.TotalSlotSeconds; math.Abs(got-want) > 1e-6 {
		return fmt.Errorf("expected totalSlotSeconds %v, got %v", want, got)
	}
	return nil
}

func (pc *planningContext) theExpectedHoursFollowTheThreeSlotFormula() error {
	want := pc.result.TotalSlotSeconds / 3 / 3600
	if got := pc.result.ExpectedHours; math.Abs(got-want) > 1e-9 {
		return fmt.Errorf("expected expectedHours = totalSlotSeconds/(3*3600) = %v, got %v", want, got)
	}
	return nil
}

func (pc *planningContext) thePlanHasAPrepStepWhoseReasonContains(substr string) error {
	if pc.result.Progression.PrepLaunches <= 0 {
		return fmt.Errorf("expected at least one prep launch, got %d", pc.result.Progression.PrepLaunches)
	}
	for _, reason := range pc.result.Progression.PrepReasons {
		if strings.Contains(reason, substr) {
			return nil
		}
	}
	return fmt.Errorf("expected a prep reason containing %q, got %v", substr, pc.result.Progression.PrepReasons)
}

func (pc *planningContext) theFastModeScoreIsAtLeastTheNormalModeScore() error {
	if pc.fastResult.WeightedScore < pc.result.WeightedScore-1e-9 {
		return fmt.Errorf("fast-mode score %v is worse than normal-mode score %v", pc.fastResult.WeightedScore, pc.result.WeightedScore)
	}
	return nil
}

// asError mirrors errors.As without importing it twice across packages;
// kept local since *planner.MissionCoverageError never wraps further.
func asError[T error](err error, target *T) bool {
	if err == nil {
		return false
	}
	if t, ok := err.(T); ok {
		*target = t
		return true
	}
	return false
}

// InitializePlanningScenario registers every step definition used by the
// planning feature suite.
func InitializePlanningScenario(ctx *godog.ScenarioContext) {
	pc := &planningContext{}

	ctx.Before(func(c context.Context, _ *godog.Scenario) (context.Context, error) {
		pc.reset()
		return c, nil
	})

	ctx.Step(`^a fleet with one ship "([^"]*)" whose "([^"]*)" mission "([^"]*)" yields (\d+) "([^"]*)" per launch over (\d+) seconds$`,
		pc.aFleetWithOneShipMissionYields)
	ctx.Step(`^a fleet with one ship "([^"]*)" with no missions$`, pc.aFleetWithOneShipWithNoMissions)
	ctx.Step(`^a fleet where "([^"]*)" unlocks after (\d+) "([^"]*)" launches on "([^"]*)"$`, pc.aFleetWhereShipUnlocksAfterLaunches)
	ctx.Step(`^"([^"]*)"'s "([^"]*)" mission "([^"]*)" yields (\d+) "([^"]*)" per launch over (\d+) seconds$`, pc.shipsMissionYields)

	ctx.Step(`^an empty player profile$`, pc.anEmptyPlayerProfile)
	ctx.Step(`^a player profile with inventory "([^"]*)" = (\d+)$`, pc.aPlayerProfileWithInventory)
	ctx.Step(`^a player profile with (\d+) "([^"]*)" launches already recorded on "([^"]*)"$`, pc.aPlayerProfileWithLaunchesRecorded)

	ctx.Step(`^I plan for target "([^"]*)" quantity (\d+) at priority time ([0-9.]+)$`, pc.iPlanForTarget)
	ctx.Step(`^I plan for target "([^"]*)" quantity (\d+) at priority time ([0-9.]+) in both normal and fast mode$`, pc.iPlanForTargetBothModes)

	ctx.Step(`^the plan has no error$`, pc.thePlanHasNoError)
	ctx.Step(`^both plans have no error$`, pc.bothPlansHaveNoError)
	ctx.Step(`^the plan fails with a mission coverage error for "([^"]*)"$`, pc.thePlanFailsWithAMissionCoverageError)
	ctx.Step(`^the target breakdown requested is (\d+)$`, pc.theTargetBreakdownRequestedIs)
	ctx.Step(`^the target breakdown from inventory is (\d+)$`, pc.theTargetBreakdownFromInventoryIs)
	ctx.Step(`^the target breakdown from missions expected is ([0-9.]+)$`, pc.theTargetBreakdownFromMissionsExpectedIs)
	ctx.Step(`^the target breakdown shortfall is ([0-9.]+)$`, pc.theTargetBreakdownShortfallIs)
	ctx.Step(`^the plan has one mission row for "([^"]*)" with (\d+) launches$`, pc.thePlanHasOneMissionRowWithLaunches)
	ctx.Step(`^the total slot seconds is ([0-9.]+)$`, pc.theTotalSlotSecondsIs)
	ctx.Step(`^the expected hours follow the three-slot formula$`, pc.theExpectedHoursFollowTheThreeSlotFormula)
	ctx.Step(`^the plan has a prep step whose reason contains "([^"]*)"$`, pc.thePlanHasAPrepStepWhoseReasonContains)
	ctx.Step(`^the fast-mode weighted score is at least the normal-mode weighted score$`, pc.theFastModeScoreIsAtLeastTheNormalModeScore)
}
