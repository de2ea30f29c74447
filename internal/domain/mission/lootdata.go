// Package mission joins a mission-option set with loot-table data to
// produce mission actions: the expected per-launch yield of every
// closure item a mission can drop.
package mission

// LootData is the consumer contract for the external loot-table loader
// (spec §6.3). All numeric fields are finite and nonnegative.
type LootData struct {
	Missions []LootMission
}

type LootMission struct {
	MissionID string
	Levels    []LootLevel
}

type LootLevel struct {
	Level   int
	Targets []LootTarget
}

type LootTarget struct {
	// TotalDrops is the denominator of the expected-yield fraction; zero
	// means the target yields nothing.
	TotalDrops float64
	TargetAfxID string
	Items       []LootItem
}

type LootItem struct {
	ItemID string
	// Counts holds one entry per rarity tier; rarity itself is fungible
	// (spec Non-goals), so the planner only needs Σ counts.
	Counts []float64
}

// TotalCount sums the per-tier drop counts for one item record.
func (li LootItem) TotalCount() float64 {
	var total float64
	for _, c := range li.Counts {
		total += c
	}
	return total
}

// MissionByID returns the loot record for missionID, if present.
func (ld LootData) MissionByID(missionID string) (LootMission, bool) {
	for _, m := range ld.Missions {
		if m.MissionID == missionID {
			return m, true
		}
	}
	return LootMission{}, false
}

// LevelFor picks the loot level to use for a mission option at the given
// ship level: the highest levels[].level ≤ optionLevel; if none qualifies,
// fall back to the first record (spec §4.2).
func (lm LootMission) LevelFor(optionLevel int) (LootLevel, bool) {
	if len(lm.Levels) == 0 {
		return LootLevel{}, false
	}
	best := -1
	for i, lvl := range lm.Levels {
		if lvl.Level <= optionLevel && (best == -1 || lvl.Level > lm.Levels[best].Level) {
			best = i
		}
	}
	if best == -1 {
		return lm.Levels[0], true
	}
	return lm.Levels[best], true
}
