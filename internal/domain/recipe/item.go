// Package recipe models the static, read-only recipe graph: the DAG of
// craftable items, their ingredient multiplicities, and the transitive
// closure/upper-bound computations the rest of the planner builds on.
package recipe

import "strings"

// ToItemKey converts a kebab-case external itemId (e.g. "soul-stone-2") to
// its underscore-cased internal itemKey ("soul_stone_2").
func ToItemKey(itemID string) string {
	return strings.ReplaceAll(itemID, "-", "_")
}

// ToItemID converts an internal itemKey back to its external kebab-case
// itemId. ToItemKey and ToItemID are exact inverses for well-formed keys.
func ToItemID(itemKey string) string {
	return strings.ReplaceAll(itemKey, "_", "-")
}

// Recipe describes how to craft one unit of a craftable item.
type Recipe struct {
	Ingredients map[string]int // itemKey -> positive integer multiplicity
	XP          float64
	Cost        float64
}

// Table is the static, read-only recipe graph keyed by itemKey. Items with
// no entry are terminal: they must come from inventory or mission drops.
type Table struct {
	recipes map[string]*Recipe
}

// NewTable builds a Table from a recipe-keyed map. The map is copied so the
// caller's map may be mutated afterward without affecting the table.
func NewTable(recipes map[string]*Recipe) *Table {
	t := &Table{recipes: make(map[string]*Recipe, len(recipes))}
	for k, r := range recipes {
		t.recipes[k] = r
	}
	return t
}

// Recipe returns the recipe for itemKey and whether it is craftable. A
// terminal item (ok == false) must be sourced from inventory or missions.
func (t *Table) Recipe(itemKey string) (*Recipe, bool) {
	r, ok := t.recipes[itemKey]
	return r, ok
}

// IsCraftable reports whether itemKey has a recipe entry.
func (t *Table) IsCraftable(itemKey string) bool {
	_, ok := t.recipes[itemKey]
	return ok
}

// CraftableItems returns the itemKeys of every craftable item, in no
// particular order.
func (t *Table) CraftableItems() []string {
	keys := make([]string, 0, len(t.recipes))
	for k := range t.recipes {
		keys = append(keys, k)
	}
	return keys
}
