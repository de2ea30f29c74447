// Package replan implements the profile-update operator applied after a
// plan has been partially executed: observed mission returns and launch
// counts are folded back into the player's profile (spec §4.9).
package replan

import (
	"math"

	"github.com/andrescamacho/egg-planner/internal/domain/planner"
	"github.com/andrescamacho/egg-planner/internal/domain/ship"
)

// ObservedReturn is one reported mission-return event: itemKey and the
// (possibly fractional, e.g. averaged across multiple returns) quantity
// received.
type ObservedReturn struct {
	ItemKey  string
	Quantity float64
}

// MissionLaunch is one reported launch event against a specific ship and
// duration type.
type MissionLaunch struct {
	Ship         string
	DurationType ship.DurationType
	Launches     float64
}

// Apply folds observedReturns and missionLaunches into a copy of profile
// and recomputes derived ship levels and mission options against fleet
// (spec §4.9). The input profile is never mutated.
func Apply(profile *planner.Profile, fleet ship.Fleet, observedReturns []ObservedReturn, missionLaunches []MissionLaunch) *planner.Profile {
	next := profile.Clone()

	for _, r := range observedReturns {
		qty := roundNonneg(r.Quantity)
		if qty <= 0 {
			continue
		}
		next.Inventory[r.ItemKey] += qty
	}

	knownShips := make(map[string]bool, len(fleet))
	for _, cfg := range fleet {
		knownShips[cfg.ID] = true
	}

	for _, l := range missionLaunches {
		if !knownShips[l.Ship] {
			continue
		}
		n := roundNonneg(l.Launches)
		if n <= 0 {
			continue
		}
		lc := next.LaunchCounts[l.Ship]
		if lc == nil {
			lc = ship.LaunchCounts{}
		}
		lc[l.DurationType] += n
		next.LaunchCounts[l.Ship] = lc
	}

	next.Recompute(fleet)
	return next
}

func roundNonneg(v float64) int {
	rounded := math.Round(v)
	if rounded < 0 {
		return 0
	}
	return int(rounded)
}
