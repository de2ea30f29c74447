package mission

import "github.com/andrescamacho/egg-planner/internal/domain/ship"

// Action is a concrete, priceable (mission, target) launch option: one
// launch yields, in expectation, Yields[itemKey] units of each closure
// item (spec §3).
type Action struct {
	Key             string // missionId|targetAfxId
	MissionID       string
	Ship            string
	DurationType    ship.DurationType
	DurationSeconds int
	TargetAfxID     string
	Yields          map[string]float64
}

func actionKey(missionID, targetAfxID string) string {
	return missionID + "|" + targetAfxID
}
