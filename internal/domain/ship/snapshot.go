package ship

import "math"

// MissionTemplate is a static (ship, duration-type) mission slot as
// supplied by ship configuration: base duration and capacity before
// research-level and ship-level adjustments are applied.
type MissionTemplate struct {
	MissionID            string
	DurationType         DurationType
	BaseDurationSeconds  int
	BaseCapacity         int
	LevelCapacityBump    float64
}

// Config is the static, read-only definition of one ship in the fixed
// ordered fleet list.
type Config struct {
	ID string

	// UnlockThreshold is the cumulative launch count the *previous* ship
	// in the fleet must reach before this ship unlocks. Ignored for the
	// first ship, which is always unlocked.
	UnlockThreshold int

	MaxLevel int

	// LevelRequirements has MaxLevel entries; reaching level k requires
	// launchPoints ≥ Σ LevelRequirements[0:k].
	LevelRequirements []float64

	// FTLSegment marks ships whose mission durations are reduced by the
	// player's FTL research level (spec §3: "from a designated ship
	// onward").
	FTLSegment bool

	Missions []MissionTemplate
}

// Fleet is the static, ordered list of every ship in the game.
type Fleet []Config

// Snapshot is the derived level/unlock state of one ship given its launch
// counts.
type Snapshot struct {
	ShipID       string
	Unlocked     bool
	LaunchCounts LaunchCounts
	Launches     int
	LaunchPoints float64
	Level        int
	MaxLevel     int
}

// ComputeSnapshots derives a Snapshot for every ship in fleet from the
// given per-ship launch counts. launchCounts may omit ships with no
// launches yet; a nil LaunchCounts is treated as all-zero.
func ComputeSnapshots(fleet Fleet, launchCounts map[string]LaunchCounts) []Snapshot {
	snapshots := make([]Snapshot, len(fleet))
	prevLaunches := 0

	for i, cfg := range fleet {
		lc := launchCounts[cfg.ID]
		unlocked := i == 0 || prevLaunches >= cfg.UnlockThreshold

		snap := Snapshot{
			ShipID:       cfg.ID,
			Unlocked:     unlocked,
			LaunchCounts: lc,
			Launches:     lc.Total(),
			LaunchPoints: lc.Points(),
			MaxLevel:     cfg.MaxLevel,
		}
		if unlocked {
			snap.Level = levelForPoints(snap.LaunchPoints, cfg.LevelRequirements, cfg.MaxLevel)
		}
		snapshots[i] = snap
		prevLaunches = snap.Launches
	}
	return snapshots
}

// levelForPoints returns the largest k ≤ maxLevel such that
// points ≥ Σ requirements[0:k].
func levelForPoints(points float64, requirements []float64, maxLevel int) int {
	level := 0
	cumulative := 0.0
	for k := 0; k < maxLevel && k < len(requirements); k++ {
		cumulative += requirements[k]
		if points+1e-9 < cumulative {
			break
		}
		level = k + 1
	}
	return int(math.Min(float64(level), float64(maxLevel)))
}
