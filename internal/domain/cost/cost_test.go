package cost

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/egg-planner/internal/domain/mission"
	"github.com/andrescamacho/egg-planner/internal/domain/recipe"
	"github.com/andrescamacho/egg-planner/internal/domain/ship"
)

func TestDiscountMonotonicAndFlatAtCap(t *testing.T) {
	base := 1000.0
	prev := Discount(base, 0)
	for n := 1; n <= 300; n++ {
		d := Discount(base, n)
		assert.LessOrEqual(t, d, prev)
		prev = d
	}
	assert.InDelta(t, 100.0, Discount(base, 300), 1e-9)
	assert.InDelta(t, 100.0, Discount(base, 1000), 1e-9)
}

func TestBatchCostSumsDiscountSteps(t *testing.T) {
	base := 500.0
	expected := Discount(base, 10) + Discount(base, 11) + Discount(base, 12)
	assert.Equal(t, expected, BatchCost(base, 10, 3))
}

func TestGRefFloorsAtOneAndTargetBaseCost(t *testing.T) {
	table := recipe.NewTable(map[string]*recipe.Recipe{
		"widget": {Cost: 50},
	})
	closure, err := recipe.ComputeClosure(table, "widget", 1)
	require.NoError(t, err)

	ref := GRef(table, closure, map[string]int{}, "widget")
	assert.GreaterOrEqual(t, ref, 50.0)
}

func TestTRefUsesDirectYieldWhenAvailable(t *testing.T) {
	actions := []mission.Action{
		{DurationSeconds: 1200, DurationType: ship.Short, Yields: map[string]float64{"puzzle_cube_1": 1}},
	}
	ref := TRef(actions, "puzzle_cube_1", 2)
	assert.InDelta(t, 1200.0/3*2, ref, 1e-9)
}

func TestTRefFallsBackToFastestAction(t *testing.T) {
	actions := []mission.Action{
		{DurationSeconds: 600, Yields: map[string]float64{"other_item": 1}},
		{DurationSeconds: 1200, Yields: map[string]float64{"other_item": 1}},
	}
	ref := TRef(actions, "puzzle_cube_1", 2)
	assert.InDelta(t, 600.0/3, ref, 1e-9)
}
