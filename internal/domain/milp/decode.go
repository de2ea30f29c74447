package milp

import "math"

// Decoded is a solution's values regrouped by meaning, rounded per
// spec §4.5 ("round c[i], m[a], t[i] to nearest nonneg integer; record
// u[i] as continuous unmet quantity").
type Decoded struct {
	Crafts   map[string]int     // itemKey -> craft count
	Launches map[string]int     // action key -> launch count
	Unmet    map[string]float64 // itemKey -> unmet quantity
}

// DecodeSolution extracts craft counts, launch counts, and unmet-demand
// slack from a solved Problem's columns.
func DecodeSolution(problem *Problem, solution *Solution) *Decoded {
	decoded := &Decoded{
		Crafts:   make(map[string]int),
		Launches: make(map[string]int),
		Unmet:    make(map[string]float64),
	}

	for _, v := range problem.Variables {
		value, ok := solution.Columns[v.Name]
		if !ok {
			continue
		}
		switch {
		case hasPrefix(v.Name, "c:"):
			decoded.Crafts[v.Name[2:]] = roundNonneg(value)
		case hasPrefix(v.Name, "m:"):
			decoded.Launches[v.Name[2:]] += roundNonneg(value)
		case hasPrefix(v.Name, "u:"):
			decoded.Unmet[v.Name[2:]] = math.Max(0, value)
		}
	}
	return decoded
}

func hasPrefix(s, prefix string) bool {
	return len(s) >= len(prefix) && s[:len(prefix)] == prefix
}

func roundNonneg(v float64) int {
	rounded := math.Round(v)
	if rounded < 0 {
		return 0
	}
	return int(rounded)
}
