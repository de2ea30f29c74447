package replan

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/andrescamacho/egg-planner/internal/domain/planner"
	"github.com/andrescamacho/egg-planner/internal/domain/ship"
)

func testFleet() ship.Fleet {
	return ship.Fleet{
		{ID: "CHICKEN_ONE", UnlockThreshold: 0, MaxLevel: 2, LevelRequirements: []float64{3, 5},
			Missions: []ship.MissionTemplate{{MissionID: "m1", DurationType: ship.Short, BaseDurationSeconds: 1200, BaseCapacity: 1}}},
	}
}

func testProfile() *planner.Profile {
	p := &planner.Profile{
		Inventory:    map[string]int{"soul_stone_1": 2},
		CraftCounts:  map[string]int{},
		LaunchCounts: map[string]ship.LaunchCounts{},
	}
	p.Recompute(testFleet())
	return p
}

func TestApplyAddsObservedReturnsToInventory(t *testing.T) {
	next := Apply(testProfile(), testFleet(), []ObservedReturn{{ItemKey: "soul_stone_1", Quantity: 3.4}}, nil)
	assert.Equal(t, 5, next.Inventory["soul_stone_1"]) // 2 + round(3.4)=3
}

func TestApplyAddsLaunchesAndRecomputesLevels(t *testing.T) {
	before := testProfile()
	next := Apply(before, testFleet(), nil, []MissionLaunch{{Ship: "CHICKEN_ONE", DurationType: ship.Short, Launches: 3}})

	assert.Equal(t, 3, next.LaunchCounts["CHICKEN_ONE"][ship.Short])
	assert.Equal(t, 1, next.ShipLevels[0].Level)
	assert.Equal(t, 0, before.LaunchCounts["CHICKEN_ONE"].Total()) // original untouched
}

func TestApplyIgnoresUnknownShip(t *testing.T) {
	next := Apply(testProfile(), testFleet(), nil, []MissionLaunch{{Ship: "GHOST_SHIP", DurationType: ship.Short, Launches: 5}})
	_, exists := next.LaunchCounts["GHOST_SHIP"]
	assert.False(t, exists)
}

func TestApplyIgnoresNegativeOrZeroQuantities(t *testing.T) {
	next := Apply(testProfile(), testFleet(), []ObservedReturn{{ItemKey: "soul_stone_1", Quantity: -5}}, nil)
	assert.Equal(t, 2, next.Inventory["soul_stone_1"])
}
