// Package recipedata loads the static recipe graph (spec §3 "Recipe",
// §5 "Recipe table ... static and read-only") from YAML, the same way
// shipconfig loads the static fleet definition.
package recipedata

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/andrescamacho/egg-planner/internal/domain/recipe"
)

// Load reads the recipe graph at path.
func Load(path string) (*recipe.Table, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("recipedata: read %s: %w", path, err)
	}
	return Parse(raw)
}

// Parse decodes a recipe graph from an in-memory YAML document.
func Parse(raw []byte) (*recipe.Table, error) {
	var doc wireRecipes
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("recipedata: decode: %w", err)
	}

	recipes := make(map[string]*recipe.Recipe, len(doc.Items))
	for itemID, r := range doc.Items {
		recipes[recipe.ToItemKey(itemID)] = &recipe.Recipe{
			Ingredients: r.Ingredients,
			XP:          r.XP,
			Cost:        r.Cost,
		}
	}
	return recipe.NewTable(recipes), nil
}

type wireRecipes struct {
	Items map[string]wireRecipe `yaml:"items"`
}

type wireRecipe struct {
	Ingredients map[string]int `yaml:"ingredients"`
	XP          float64        `yaml:"xp"`
	Cost        float64        `yaml:"cost"`
}
