package planservice

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/egg-planner/internal/domain/milp"
	"github.com/andrescamacho/egg-planner/internal/domain/mission"
	"github.com/andrescamacho/egg-planner/internal/domain/planner"
	"github.com/andrescamacho/egg-planner/internal/domain/recipe"
	"github.com/andrescamacho/egg-planner/internal/domain/shared"
	"github.com/andrescamacho/egg-planner/internal/domain/ship"
	"github.com/andrescamacho/egg-planner/internal/infrastructure/config"
)

type stubLoot struct{ data mission.LootData }

func (s *stubLoot) Fetch(ctx context.Context) (mission.LootData, error) { return s.data, nil }

type stubSolver struct{ fail bool }

func (s *stubSolver) Solve(ctx context.Context, p *milp.Problem) (*milp.Solution, error) {
	if s.fail {
		return &milp.Solution{Status: milp.StatusInfeasible, Message: "stubbed failure"}, nil
	}
	columns := make(map[string]float64)
	var objective float64
	for _, c := range p.Constraints {
		if len(c.Terms) == 0 {
			continue
		}
		v := c.RHS
		if v < 0 {
			v = 0
		}
		columns[c.Terms[0].Var] = v
	}
	for _, t := range p.Objective {
		objective += t.Coef * columns[t.Var]
	}
	return &milp.Solution{Status: milp.StatusOptimal, Columns: columns, ObjectiveValue: objective}, nil
}

func testFleet() ship.Fleet {
	return ship.Fleet{
		{ID: "CHICKEN_ONE", UnlockThreshold: 0, MaxLevel: 2, LevelRequirements: []float64{3, 5},
			Missions: []ship.MissionTemplate{{MissionID: "m1", DurationType: ship.Short, BaseDurationSeconds: 1200, BaseCapacity: 4}}},
	}
}

func testService(solver milp.Solver) *Service {
	cfg := &config.Config{}
	config.SetDefaults(cfg)
	loot := &stubLoot{data: mission.LootData{
		Missions: []mission.LootMission{{
			MissionID: "m1",
			Levels: []mission.LootLevel{{Level: 0, Targets: []mission.LootTarget{
				{TotalDrops: 10, TargetAfxID: "afx1", Items: []mission.LootItem{{ItemID: "soul-stone-1", Counts: []float64{5}}}},
			}}},
		}},
	}}
	table := recipe.NewTable(map[string]*recipe.Recipe{
		"soul_stone_2": {Ingredients: map[string]int{"soul_stone_1": 2}, Cost: 100},
	})
	return New(testFleet(), table, loot, solver, cfg)
}

func testProfile() *planner.Profile {
	p := &planner.Profile{Inventory: map[string]int{}, CraftCounts: map[string]int{}, LaunchCounts: map[string]ship.LaunchCounts{}}
	p.Recompute(testFleet())
	return p
}

func TestPlanForTargetReturnsBestCandidate(t *testing.T) {
	svc := testService(&stubSolver{})
	result, err := svc.PlanForTarget(context.Background(), testProfile(), "soul-stone-2", 4, 0.5, Options{})

	require.NoError(t, err)
	assert.Equal(t, "soul-stone-2", result.TargetItemID)
	assert.Equal(t, 4, result.Quantity)
}

func TestPlanForTargetFallsBackWhenSolverFails(t *testing.T) {
	svc := testService(&stubSolver{fail: true})
	result, err := svc.PlanForTarget(context.Background(), testProfile(), "soul-stone-2", 4, 0.5, Options{})

	require.NoError(t, err)
	require.NotEmpty(t, result.Notes)
}

func TestPlanForTargetClampsQuantity(t *testing.T) {
	svc := testService(&stubSolver{})
	result, err := svc.PlanForTarget(context.Background(), testProfile(), "soul-stone-2", -5, 0.5, Options{})

	require.NoError(t, err)
	assert.Equal(t, 1, result.Quantity)
}

func TestStreamPlanForTargetEmitsResultThenCloses(t *testing.T) {
	svc := testService(&stubSolver{})
	stream := svc.StreamPlanForTarget(context.Background(), testProfile(), "soul-stone-2", 4, 0.5, Options{})

	var sawResult bool
	for e := range stream.Events {
		if e.Type == planner.EventResult {
			sawResult = true
		}
	}
	assert.True(t, sawResult)
	assert.Equal(t, shared.LifecycleStatusCompleted, stream.Status())
}

func TestStreamPlanForTargetHonorsCancellation(t *testing.T) {
	svc := testService(&stubSolver{})
	ctx, cancel := context.WithCancel(context.Background())
	stream := svc.StreamPlanForTarget(ctx, testProfile(), "soul-stone-2", 4, 0.5, Options{})
	cancel()

	for range stream.Events {
		// drain until the producer observes cancellation and closes.
	}

	assert.NotEqual(t, shared.LifecycleStatusPending, stream.Status())
	assert.NotEqual(t, shared.LifecycleStatusRunning, stream.Status())
}
