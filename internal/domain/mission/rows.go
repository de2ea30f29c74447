package mission

import (
	"sort"

	"github.com/andrescamacho/egg-planner/internal/domain/planner"
	"github.com/andrescamacho/egg-planner/internal/domain/recipe"
)

// BuildRows groups decoded launch counts by action into display rows,
// shared by the MILP and heuristic-fallback result builders (spec §8
// "missions" schedule). It returns the rows and the total slot-seconds
// they represent.
func BuildRows(actions []Action, launches map[string]int) ([]planner.MissionRow, float64) {
	byKey := make(map[string]Action, len(actions))
	for _, a := range actions {
		byKey[a.Key] = a
	}

	var rows []planner.MissionRow
	var totalSeconds float64
	for key, n := range launches {
		if n <= 0 {
			continue
		}
		a, ok := byKey[key]
		if !ok {
			continue
		}
		totalSeconds += float64(n * a.DurationSeconds)

		yields := make([]planner.YieldRow, 0, len(a.Yields))
		for item, perLaunch := range a.Yields {
			yields = append(yields, planner.YieldRow{ItemID: recipe.ToItemID(item), Expected: perLaunch * float64(n)})
		}
		sort.Slice(yields, func(i, j int) bool { return yields[i].Expected > yields[j].Expected })
		if len(yields) > 3 {
			yields = yields[:3]
		}

		rows = append(rows, planner.MissionRow{
			MissionID:       a.MissionID,
			Ship:            a.Ship,
			DurationType:    a.DurationType,
			DurationSeconds: a.DurationSeconds,
			Launches:        n,
			TopYields:       yields,
		})
	}
	return rows, totalSeconds
}
