package ship

import (
	"math"
	"sort"
	"strconv"
)

// Research holds the two research levels that adjust mission duration and
// capacity (spec §3, §6.4).
type Research struct {
	FTL   int
	ZeroG int
}

// Option is a concrete (ship, duration type) mission slot derived from a
// ship's level snapshot and the player's research levels.
type Option struct {
	Ship            string
	MissionID       string
	DurationType    DurationType
	Level           int
	DurationSeconds int
	Capacity        int
}

// DeriveOptions computes the mission options available across fleet given
// its current snapshots and the player's research levels. Locked ships
// contribute no options.
func DeriveOptions(fleet Fleet, snapshots []Snapshot, research Research) []Option {
	var options []Option
	for i, cfg := range fleet {
		if i >= len(snapshots) || !snapshots[i].Unlocked {
			continue
		}
		snap := snapshots[i]
		for _, mt := range cfg.Missions {
			options = append(options, Option{
				Ship:            cfg.ID,
				MissionID:       mt.MissionID,
				DurationType:    mt.DurationType,
				Level:           snap.Level,
				DurationSeconds: derivedDuration(mt, cfg.FTLSegment, research.FTL),
				Capacity:        derivedCapacity(mt, snap.Level, research.ZeroG),
			})
		}
	}
	return options
}

// DurationSecondsFor returns the adjusted duration of cfg's mission with
// the given duration type, if one exists. Used by the horizon search to
// price prep launches without deriving a full Option.
func DurationSecondsFor(cfg Config, dt DurationType, research Research) (int, bool) {
	for _, mt := range cfg.Missions {
		if mt.DurationType == dt {
			return derivedDuration(mt, cfg.FTLSegment, research.FTL), true
		}
	}
	return 0, false
}

func derivedDuration(mt MissionTemplate, ftlSegment bool, ftlLevel int) int {
	if !ftlSegment {
		return mt.BaseDurationSeconds
	}
	reduced := math.Round(float64(mt.BaseDurationSeconds) * (1 - 0.01*float64(ftlLevel)))
	return int(math.Max(1, reduced))
}

func derivedCapacity(mt MissionTemplate, level int, zeroGLevel int) int {
	raw := (float64(mt.BaseCapacity) + mt.LevelCapacityBump*float64(level)) * (1 + 0.05*float64(zeroGLevel))
	return int(math.Floor(raw))
}

// Fingerprint returns a stable string identifying the set of options,
// ignoring order — used by the horizon search to dedup progression states
// that arrive at identical mission-option sets (spec §4.6).
func Fingerprint(options []Option) string {
	// A simple content hash built from a canonical textual form; two
	// option sets fingerprint identically iff every field matches.
	keys := make([]string, len(options))
	for i, o := range options {
		keys[i] = canonicalKey(o)
	}
	sort.Strings(keys)
	out := ""
	for _, k := range keys {
		out += k + ";"
	}
	return out
}

func canonicalKey(o Option) string {
	return o.Ship + "|" + o.MissionID + "|" + string(o.DurationType) + "|" +
		strconv.Itoa(o.Level) + "|" + strconv.Itoa(o.DurationSeconds) + "|" + strconv.Itoa(o.Capacity)
}
