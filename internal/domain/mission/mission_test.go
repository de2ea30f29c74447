package mission

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/egg-planner/internal/domain/recipe"
	"github.com/andrescamacho/egg-planner/internal/domain/ship"
)

func TestBuildMissionActionsSingleMissionYieldsTarget(t *testing.T) {
	closure, err := recipe.ComputeClosure(recipe.NewTable(nil), "puzzle_cube_1", 2)
	require.NoError(t, err)

	loot := LootData{Missions: []LootMission{
		{MissionID: "m1", Levels: []LootLevel{
			{Level: 0, Targets: []LootTarget{
				{TotalDrops: 1, TargetAfxID: "tgt", Items: []LootItem{
					{ItemID: "puzzle-cube-1", Counts: []float64{1, 0, 0, 0}},
				}},
			}},
		}},
	}}

	options := []ship.Option{
		{Ship: "CHICKEN_ONE", MissionID: "m1", DurationType: ship.Short, Level: 0, DurationSeconds: 1200, Capacity: 1},
	}

	actions := BuildMissionActions(options, loot, closure, 1.0)
	require.Len(t, actions, 1)
	assert.Equal(t, "m1|tgt", actions[0].Key)
	assert.InDelta(t, 1.0, actions[0].Yields["puzzle_cube_1"], 1e-9)
}

func TestBuildMissionActionsDropsOutOfClosureOnlyYields(t *testing.T) {
	closure, err := recipe.ComputeClosure(recipe.NewTable(nil), "puzzle_cube_1", 1)
	require.NoError(t, err)

	loot := LootData{Missions: []LootMission{
		{MissionID: "m1", Levels: []LootLevel{
			{Level: 0, Targets: []LootTarget{
				{TotalDrops: 1, TargetAfxID: "tgt", Items: []LootItem{
					{ItemID: "unrelated-item", Counts: []float64{1}},
				}},
			}},
		}},
	}}

	options := []ship.Option{
		{Ship: "CHICKEN_ONE", MissionID: "m1", DurationType: ship.Short, Level: 0, DurationSeconds: 1200, Capacity: 1},
	}

	actions := BuildMissionActions(options, loot, closure, 1.0)
	assert.Empty(t, actions)
}

func TestBuildMissionActionsZeroTotalDropsYieldsNothing(t *testing.T) {
	closure, err := recipe.ComputeClosure(recipe.NewTable(nil), "puzzle_cube_1", 1)
	require.NoError(t, err)

	loot := LootData{Missions: []LootMission{
		{MissionID: "m1", Levels: []LootLevel{
			{Level: 0, Targets: []LootTarget{
				{TotalDrops: 0, TargetAfxID: "tgt", Items: []LootItem{
					{ItemID: "puzzle-cube-1", Counts: []float64{5}},
				}},
			}},
		}},
	}}

	options := []ship.Option{
		{Ship: "CHICKEN_ONE", MissionID: "m1", DurationType: ship.Short, Level: 0, DurationSeconds: 1200, Capacity: 1},
	}

	actions := BuildMissionActions(options, loot, closure, 1.0)
	assert.Empty(t, actions)
}
