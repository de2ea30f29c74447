package fallback

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/egg-planner/internal/domain/mission"
	"github.com/andrescamacho/egg-planner/internal/domain/recipe"
	"github.com/andrescamacho/egg-planner/internal/domain/ship"
)

func testTable() *recipe.Table {
	return recipe.NewTable(map[string]*recipe.Recipe{
		"soul_stone_2": {Ingredients: map[string]int{"soul_stone_1": 2}, Cost: 100},
	})
}

func TestSolveTargetInventoryDoesNotOffsetRequestedQuantity(t *testing.T) {
	table := testTable()
	closure, err := recipe.ComputeClosure(table, "soul_stone_2", 2)
	require.NoError(t, err)

	// Quantity is additional demand on top of whatever soul_stone_2 is
	// already on hand, so the 5 in inventory must not reduce the 2
	// requested; it still has to be crafted from ingredient inventory.
	result := Solve(table, closure, nil, map[string]int{"soul_stone_2": 5, "soul_stone_1": 100}, map[string]int{}, "soul_stone_2", 2, 0.5, 1, 1)

	assert.Equal(t, 0, result.TargetBreakdown.FromInventory)
	assert.Equal(t, 2, result.TargetBreakdown.FromCraft)
	require.Len(t, result.Crafts, 1)
	assert.Equal(t, 2, result.Crafts[0].Count)
	assert.Empty(t, result.Missions)
}

func TestSolveCraftsWhenCraftScoreWins(t *testing.T) {
	table := testTable()
	closure, err := recipe.ComputeClosure(table, "soul_stone_2", 1)
	require.NoError(t, err)

	actions := []mission.Action{
		{Key: "m1|a1", MissionID: "m1", Ship: "CHICKEN_ONE", DurationType: ship.Short, DurationSeconds: 3_600_000,
			Yields: map[string]float64{"soul_stone_1": 0.001}},
	}

	result := Solve(table, closure, actions, map[string]int{}, map[string]int{}, "soul_stone_2", 1, 0.5, 100, 1_000_000)

	require.Len(t, result.Crafts, 1)
	assert.Equal(t, "soul-stone-2", result.Crafts[0].ItemID)
	assert.Equal(t, 1, result.Crafts[0].Count)
}

func TestSolveFarmsWhenFarmScoreWins(t *testing.T) {
	table := testTable()
	closure, err := recipe.ComputeClosure(table, "soul_stone_2", 1)
	require.NoError(t, err)

	actions := []mission.Action{
		{Key: "m1|a1", MissionID: "m1", Ship: "CHICKEN_ONE", DurationType: ship.Short, DurationSeconds: 60,
			Yields: map[string]float64{"soul_stone_2": 10}},
	}

	result := Solve(table, closure, actions, map[string]int{}, map[string]int{}, "soul_stone_2", 1, 0.5, 1, 1_000_000)

	require.Len(t, result.Missions, 1)
	assert.Equal(t, "m1", result.Missions[0].MissionID)
	assert.Equal(t, 1, result.Missions[0].Launches)
}

func TestSolveLeavesUnmetWhenNoCoverage(t *testing.T) {
	table := recipe.NewTable(map[string]*recipe.Recipe{})
	closure, err := recipe.ComputeClosure(table, "puzzle_cube_1", 1)
	require.NoError(t, err)

	result := Solve(table, closure, nil, map[string]int{}, map[string]int{}, "puzzle_cube_1", 1, 0.5, 1, 1)

	assert.Equal(t, 1.0, result.UnmetItems["puzzle-cube-1"])
	assert.Equal(t, 1.0, result.TargetBreakdown.Shortfall)
}

func TestGreedyPackStopsAtIterationCap(t *testing.T) {
	actions := []mission.Action{
		{Key: "m1|a1", MissionID: "m1", DurationSeconds: 60, Yields: map[string]float64{"x": 1}},
	}
	demand := map[string]float64{"x": float64(MaxGreedyIterations) * 2}

	_, launches, unmet := greedyPack(actions, demand)

	assert.LessOrEqual(t, launches["m1|a1"], MaxGreedyIterations)
	assert.Greater(t, unmet["x"], 0.0)
}
