package horizon

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/egg-planner/internal/domain/milp"
	"github.com/andrescamacho/egg-planner/internal/domain/mission"
	"github.com/andrescamacho/egg-planner/internal/domain/planner"
	"github.com/andrescamacho/egg-planner/internal/domain/recipe"
	"github.com/andrescamacho/egg-planner/internal/domain/ship"
)

// roundTripSolver is a minimal in-memory solver that satisfies every flow
// constraint exactly via its RHS, used to exercise Search without a real
// MILP backend.
type roundTripSolver struct {
	failFirstN int
	calls      int
}

func (s *roundTripSolver) Solve(ctx context.Context, p *milp.Problem) (*milp.Solution, error) {
	s.calls++
	if s.calls <= s.failFirstN {
		return &milp.Solution{Status: milp.StatusInfeasible, Message: "forced failure"}, nil
	}

	columns := make(map[string]float64)
	var objective float64
	for _, c := range p.Constraints {
		if len(c.Terms) == 0 {
			continue
		}
		// Satisfy flow constraints by routing demand entirely through the
		// first term's variable (always the unmet slack for flow: rows).
		columns[c.Terms[0].Var] = maxFloat(0, c.RHS)
	}
	for _, t := range p.Objective {
		objective += t.Coef * columns[t.Var]
	}
	return &milp.Solution{Status: milp.StatusOptimal, Columns: columns, ObjectiveValue: objective}, nil
}

func maxFloat(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

func testFleet() ship.Fleet {
	return ship.Fleet{
		{
			ID:                "CHICKEN_ONE",
			UnlockThreshold:   0,
			MaxLevel:          2,
			LevelRequirements: []float64{3, 5},
			Missions: []ship.MissionTemplate{
				{MissionID: "m1", DurationType: ship.Short, BaseDurationSeconds: 1200, BaseCapacity: 4, LevelCapacityBump: 0},
			},
		},
	}
}

func testTable() *recipe.Table {
	return recipe.NewTable(map[string]*recipe.Recipe{
		"soul_stone_2": {Ingredients: map[string]int{"soul_stone_1": 2}, Cost: 100},
	})
}

func testLoot() mission.LootData {
	return mission.LootData{
		Missions: []mission.LootMission{
			{
				MissionID: "m1",
				Levels: []mission.LootLevel{
					{Level: 0, Targets: []mission.LootTarget{
						{TotalDrops: 10, TargetAfxID: "afx1", Items: []mission.LootItem{
							{ItemID: "soul-stone-1", Counts: []float64{5}},
						}},
					}},
				},
			},
		},
	}
}

func testProfile() *planner.Profile {
	p := &planner.Profile{
		EID:          "test",
		Inventory:    map[string]int{},
		CraftCounts:  map[string]int{},
		LaunchCounts: map[string]ship.LaunchCounts{},
	}
	p.Recompute(testFleet())
	return p
}

func TestSearchProducesBestCandidate(t *testing.T) {
	solver := &roundTripSolver{}
	result, err := Search(
		context.Background(),
		solver,
		testFleet(),
		testTable(),
		testProfile(),
		"soul_stone_2",
		4,
		0.5,
		testLoot(),
		Params{MaxDepth: 1, BeamWidth: 4, MaxLaunchesPerAction: 5, MinTimeWeight: 1e-5, YieldMultiplier: 1},
		nil,
	)

	require.NoError(t, err)
	require.NotNil(t, result.Best)
	assert.Greater(t, result.GRef, 0.0)
	assert.Greater(t, result.TRef, 0.0)
}

func TestSearchReportsAllCandidatesFailed(t *testing.T) {
	solver := &roundTripSolver{failFirstN: 1000}
	_, err := Search(
		context.Background(),
		solver,
		testFleet(),
		testTable(),
		testProfile(),
		"soul_stone_2",
		4,
		0.5,
		testLoot(),
		Params{MaxDepth: 0, BeamWidth: 4, MaxLaunchesPerAction: 5, MinTimeWeight: 1e-5, YieldMultiplier: 1},
		nil,
	)

	require.Error(t, err)
	var allFailed *planner.AllCandidatesFailedError
	require.ErrorAs(t, err, &allFailed)
	assert.NotEmpty(t, allFailed.CandidateErrors)
}

func TestSearchReportsMissionCoverageError(t *testing.T) {
	solver := &roundTripSolver{}
	table := recipe.NewTable(map[string]*recipe.Recipe{})
	profile := &planner.Profile{
		EID:          "test",
		Inventory:    map[string]int{},
		CraftCounts:  map[string]int{},
		LaunchCounts: map[string]ship.LaunchCounts{},
	}
	profile.Recompute(testFleet())

	_, err := Search(
		context.Background(),
		solver,
		testFleet(),
		table,
		profile,
		"puzzle_cube_1",
		1,
		0.5,
		mission.LootData{},
		Params{MaxDepth: 0, BeamWidth: 4, MaxLaunchesPerAction: 5, MinTimeWeight: 1e-5, YieldMultiplier: 1},
		nil,
	)

	require.Error(t, err)
	var coverageErr *planner.MissionCoverageError
	require.ErrorAs(t, err, &coverageErr)
	assert.Contains(t, coverageErr.ItemIDs, "puzzle-cube-1")
}

func TestSearchEmitsProgressEvents(t *testing.T) {
	solver := &roundTripSolver{}
	var events []planner.Event
	_, err := Search(
		context.Background(),
		solver,
		testFleet(),
		testTable(),
		testProfile(),
		"soul_stone_2",
		4,
		0.5,
		testLoot(),
		Params{MaxDepth: 0, BeamWidth: 4, MaxLaunchesPerAction: 5, MinTimeWeight: 1e-5, YieldMultiplier: 1},
		func(e planner.Event) { events = append(events, e) },
	)

	require.NoError(t, err)
	require.NotEmpty(t, events)
	assert.Equal(t, planner.PhaseCandidates, events[0].Progress.Phase)
}
