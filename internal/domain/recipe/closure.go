package recipe

// MaxClosureDepth bounds the recursive ingredient-expansion used to compute
// closure and craft upper bounds. It exists purely as a guard against
// malformed recipe data (an accidental near-cycle); well-formed recipe
// trees in this game are a handful of levels deep.
const MaxClosureDepth = 60

// Closure is the transitive-expansion result for a single (target,
// quantity) planning request: every itemKey reachable from the target by
// ingredient expansion, plus a per-item craft upper bound.
type Closure struct {
	// Items lists every itemKey in the closure, target first, in
	// discovery order.
	Items []string

	// UpperBound[itemKey] is the cumulative integer demand on that item if
	// every level of the tree were crafted rather than farmed, starting
	// from the target's requested quantity.
	UpperBound map[string]int
}

// Contains reports whether itemKey is part of the closure.
func (c *Closure) Contains(itemKey string) bool {
	_, ok := c.UpperBound[itemKey]
	return ok
}

// ComputeClosure expands targetKey through table's recipe graph to
// quantity units, returning every reachable itemKey and each one's craft
// upper bound. It returns ErrCircularRecipe if the graph is not a DAG.
func ComputeClosure(table *Table, targetKey string, quantity int) (*Closure, error) {
	c := &Closure{
		Items:      make([]string, 0, 8),
		UpperBound: make(map[string]int, 8),
	}
	seen := make(map[string]bool, 8)
	onPath := make(map[string]bool, 8)
	var chain []string

	var visit func(key string, qty, depth int) error
	visit = func(key string, qty, depth int) error {
		if !seen[key] {
			seen[key] = true
			c.Items = append(c.Items, key)
		}
		c.UpperBound[key] += qty

		if depth >= MaxClosureDepth {
			return nil
		}

		r, ok := table.Recipe(key)
		if !ok {
			return nil
		}

		if onPath[key] {
			return &ErrCircularRecipe{ItemKey: key, Chain: append(append([]string{}, chain...), key)}
		}
		onPath[key] = true
		chain = append(chain, key)
		defer func() {
			onPath[key] = false
			chain = chain[:len(chain)-1]
		}()

		for ingredient, multiplicity := range r.Ingredients {
			if err := visit(ingredient, qty*multiplicity, depth+1); err != nil {
				return err
			}
		}
		return nil
	}

	if err := visit(targetKey, quantity, 0); err != nil {
		return nil, err
	}
	return c, nil
}
