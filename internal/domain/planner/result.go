package planner

import "github.com/andrescamacho/egg-planner/internal/domain/ship"

// CraftRow is one line of the plan's craft schedule.
type CraftRow struct {
	ItemID string
	Count  int
}

// YieldRow names an item and the expected quantity a mission row
// contributes toward it.
type YieldRow struct {
	ItemID   string
	Expected float64
}

// MissionRow is one line of the plan's mission schedule: launch a given
// (ship, mission, duration-type) this many times.
type MissionRow struct {
	MissionID       string
	Ship            string
	DurationType    ship.DurationType
	DurationSeconds int
	Launches        int

	// TopYields carries the top expected yields (per launch × launches)
	// for display, largest first.
	TopYields []YieldRow
}

// TargetBreakdown reports, for the requested quantity, how much of the
// target's coverage came from which source. Requested always equals the
// sum of the other four fields (spec §8).
type TargetBreakdown struct {
	Requested            int
	FromInventory        int
	FromCraft            int
	FromMissionsExpected float64
	Shortfall            float64
}

// Progression reports the prep cost of unlocking/leveling ships in the
// chosen candidate and the resulting projected ship levels.
type Progression struct {
	PrepHours           float64
	PrepLaunches        int
	ProjectedShipLevels []ship.Snapshot

	// PrepReasons lists why each prep step was taken (e.g. "Unlock
	// CHICKEN_NINE", "Level up CHICKEN_ONE"), in the order launched.
	PrepReasons []string
}

// Result is the planner's output for one request (spec §3).
type Result struct {
	TargetItemID string
	Quantity     int
	PriorityTime float64

	GECost           float64
	TotalSlotSeconds float64
	ExpectedHours    float64
	WeightedScore    float64

	Crafts   []CraftRow
	Missions []MissionRow

	// UnmetItems maps itemKey -> residual unmet quantity, for items with
	// strictly positive unmet demand in the final solution.
	UnmetItems map[string]float64

	TargetBreakdown TargetBreakdown
	Progression     Progression

	Notes []string
}
