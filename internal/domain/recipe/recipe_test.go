package recipe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestItemKeyIDRoundTrip(t *testing.T) {
	assert.Equal(t, "soul_stone_2", ToItemKey("soul-stone-2"))
	assert.Equal(t, "soul-stone-2", ToItemID("soul_stone_2"))
	assert.Equal(t, "puzzle-cube-1", ToItemID(ToItemKey("puzzle-cube-1")))
}

func TestComputeClosureExpandsIngredients(t *testing.T) {
	table := NewTable(map[string]*Recipe{
		"gadget": {Ingredients: map[string]int{"gear": 2, "bolt": 1}, Cost: 10},
		"gear":   {Ingredients: map[string]int{"bolt": 3}, Cost: 4},
	})

	closure, err := ComputeClosure(table, "gadget", 5)
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"gadget", "gear", "bolt"}, closure.Items)
	assert.Equal(t, 5, closure.UpperBound["gadget"])
	assert.Equal(t, 10, closure.UpperBound["gear"])
	// bolt demand accumulates along every path: 5 directly from gadget,
	// plus 10*3 from gear's own bolt requirement.
	assert.Equal(t, 5+30, closure.UpperBound["bolt"])
}

func TestComputeClosureTerminalItem(t *testing.T) {
	table := NewTable(map[string]*Recipe{})

	closure, err := ComputeClosure(table, "raw-ore", 3)
	require.NoError(t, err)
	assert.Equal(t, []string{"raw-ore"}, closure.Items)
	assert.Equal(t, 3, closure.UpperBound["raw-ore"])
	assert.False(t, table.IsCraftable("raw-ore"))
}

func TestComputeClosureDetectsCycle(t *testing.T) {
	table := NewTable(map[string]*Recipe{
		"a": {Ingredients: map[string]int{"b": 1}},
		"b": {Ingredients: map[string]int{"a": 1}},
	})

	_, err := ComputeClosure(table, "a", 1)
	require.Error(t, err)
	var circular *ErrCircularRecipe
	require.ErrorAs(t, err, &circular)
}
