package mission

import (
	"github.com/andrescamacho/egg-planner/internal/domain/recipe"
	"github.com/andrescamacho/egg-planner/internal/domain/ship"
)

// BuildMissionActions joins options against loot to produce the set of
// mission actions usable for closure, restricting yields to items in
// closure and dropping actions that would contribute nothing to it
// (spec §4.2). yieldMultiplier is an externally supplied scaling factor
// (e.g. an active yield-boost consumable); pass 1.0 when none applies.
func BuildMissionActions(options []ship.Option, loot LootData, closure *recipe.Closure, yieldMultiplier float64) []Action {
	actions := make([]Action, 0, len(options))

	for _, opt := range options {
		lootMission, ok := loot.MissionByID(opt.MissionID)
		if !ok {
			continue
		}
		level, ok := lootMission.LevelFor(opt.Level)
		if !ok {
			continue
		}

		for _, target := range level.Targets {
			if target.TotalDrops <= 0 {
				continue
			}

			yields := make(map[string]float64)
			for _, item := range target.Items {
				itemKey := recipe.ToItemKey(item.ItemID)
				if !closure.Contains(itemKey) {
					continue
				}
				perLaunch := item.TotalCount() / target.TotalDrops * float64(opt.Capacity) * yieldMultiplier
				if perLaunch > 0 {
					yields[itemKey] = perLaunch
				}
			}
			if len(yields) == 0 {
				continue
			}

			actions = append(actions, Action{
				Key:             actionKey(opt.MissionID, target.TargetAfxID),
				MissionID:       opt.MissionID,
				Ship:            opt.Ship,
				DurationType:    opt.DurationType,
				DurationSeconds: opt.DurationSeconds,
				TargetAfxID:     target.TargetAfxID,
				Yields:          yields,
			})
		}
	}

	return actions
}
