package milp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/egg-planner/internal/domain/mission"
	"github.com/andrescamacho/egg-planner/internal/domain/recipe"
	"github.com/andrescamacho/egg-planner/internal/domain/ship"
)

func TestBuildProblemFlowConstraintCoversTargetDemand(t *testing.T) {
	table := recipe.NewTable(map[string]*recipe.Recipe{})
	closure, err := recipe.ComputeClosure(table, "puzzle_cube_1", 2)
	require.NoError(t, err)

	actions := []mission.Action{
		{Key: "m1|tgt", DurationSeconds: 1200, DurationType: ship.Short, Yields: map[string]float64{"puzzle_cube_1": 1}},
	}

	p := BuildProblem(BuildInput{
		Table:         table,
		Closure:       closure,
		CraftCounts:   map[string]int{},
		Inventory:     map[string]int{},
		Actions:       actions,
		TargetKey:     "puzzle_cube_1",
		Quantity:      2,
		PriorityTime:  0.5,
		GRef:          1,
		TRef:          400,
		MinTimeWeight: 1e-5,
	})

	var flow *Constraint
	for i := range p.Constraints {
		if p.Constraints[i].Name == "flow:puzzle_cube_1" {
			flow = &p.Constraints[i]
		}
	}
	require.NotNil(t, flow)
	assert.Equal(t, 2.0, flow.RHS)
	assert.Equal(t, GreaterEq, flow.Sense)

	foundAction := false
	for _, term := range flow.Terms {
		if term.Var == "m:m1|tgt" {
			foundAction = true
			assert.Equal(t, 1.0, term.Coef)
		}
	}
	assert.True(t, foundAction)
}

func TestBuildProblemDiscountSlotsForCraftableItem(t *testing.T) {
	table := recipe.NewTable(map[string]*recipe.Recipe{
		"widget": {Cost: 100},
	})
	closure, err := recipe.ComputeClosure(table, "widget", 5)
	require.NoError(t, err)

	p := BuildProblem(BuildInput{
		Table:         table,
		Closure:       closure,
		CraftCounts:   map[string]int{"widget": 0},
		Inventory:     map[string]int{},
		TargetKey:     "widget",
		Quantity:      5,
		PriorityTime:  0,
		GRef:          500,
		TRef:          1,
		MinTimeWeight: 1e-5,
	})

	slotCount := 0
	for _, v := range p.Variables {
		if v.Kind == Binary {
			slotCount++
		}
	}
	assert.Equal(t, 5, slotCount) // preSlots = min(bound=5, 300-0) = 5
}

func TestDecodeSolutionRoundsAndGroups(t *testing.T) {
	p := &Problem{Variables: []Variable{
		{Name: "c:widget", Kind: Integer},
		{Name: "m:m1|tgt", Kind: Integer},
		{Name: "u:widget", Kind: Continuous},
	}}
	sol := &Solution{
		Status: StatusOptimal,
		Columns: map[string]float64{
			"c:widget": 4.6,
			"m:m1|tgt": 1.2,
			"u:widget": 0.3,
		},
	}

	decoded := DecodeSolution(p, sol)
	assert.Equal(t, 5, decoded.Crafts["widget"])
	assert.Equal(t, 1, decoded.Launches["m1|tgt"])
	assert.InDelta(t, 0.3, decoded.Unmet["widget"], 1e-9)
}
