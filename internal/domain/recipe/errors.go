package recipe

import "fmt"

// ErrCircularRecipe indicates the recipe table contains a cycle reachable
// from the item being expanded. The recipe graph is required to be a DAG;
// a cycle is a data error, not a recoverable planning condition.
type ErrCircularRecipe struct {
	ItemKey string
	Chain   []string
}

func (e *ErrCircularRecipe) Error() string {
	return fmt.Sprintf("circular recipe detected for %s: %v", e.ItemKey, e.Chain)
}

// ErrUnknownItem indicates an itemKey was referenced (as a target or an
// ingredient) that has no entry in the item table at all — not even as a
// terminal item.
type ErrUnknownItem struct {
	ItemKey string
}

func (e *ErrUnknownItem) Error() string {
	return fmt.Sprintf("unknown item: %s", e.ItemKey)
}
