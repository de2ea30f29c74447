// Package horizon implements the bounded beam search over ship-
// progression states (spec §4.6): it enumerates alternative mission-
// option sets reachable by spending prep launches, re-solves the MILP
// per survivor, and selects the globally best total plan.
package horizon

import (
	"sort"
	"strconv"
	"strings"

	"github.com/andrescamacho/egg-planner/internal/domain/planner"
	"github.com/andrescamacho/egg-planner/internal/domain/ship"
)

// PrepStep is one recommended launch whose sole purpose is to raise a
// ship's level or unlock a later ship (spec §4.6, GLOSSARY "Prep launch").
type PrepStep struct {
	Ship            string
	DurationType    ship.DurationType
	Launches        int
	DurationSeconds int
	Reason          string
}

// State is one projected ship-progression candidate.
type State struct {
	LaunchCounts   map[string]ship.LaunchCounts
	ShipLevels     []ship.Snapshot
	MissionOptions []ship.Option
	PrepSteps      []PrepStep
	// PrepSlotSeconds is the raw (unweighted) sum of launches*durationSeconds
	// across prep steps (spec §4.6), used for reporting total slot-seconds
	// and prep hours.
	PrepSlotSeconds float64
	// PrepWeightedSlotSeconds additionally weights each prep step's
	// contribution by its duration type's ship.DurationWeights multiplier,
	// matching how farm time is weighted per-action in the MILP objective
	// (spec §4.6 total_score, §4.4 timeMult). Used only for scoring and
	// pruning, never for reported slot-second/hour figures.
	PrepWeightedSlotSeconds float64
}

// InitialState builds the zero-prep state directly from a profile's
// already-derived ship levels and mission options.
func InitialState(profile *planner.Profile) *State {
	return &State{
		LaunchCounts:   cloneLaunchCounts(profile.LaunchCounts),
		ShipLevels:     append([]ship.Snapshot{}, profile.ShipLevels...),
		MissionOptions: append([]ship.Option{}, profile.MissionOptions...),
	}
}

// Fingerprint identifies a state by its raw launch counts, used by the
// beam search's visited set (spec §4.6 "launchCountsFingerprint").
func (s *State) Fingerprint() string {
	ships := make([]string, 0, len(s.LaunchCounts))
	for id := range s.LaunchCounts {
		ships = append(ships, id)
	}
	sort.Strings(ships)

	var b strings.Builder
	for _, id := range ships {
		b.WriteString(id)
		b.WriteByte(':')
		durations := make([]string, 0, 4)
		for d := range s.LaunchCounts[id] {
			durations = append(durations, string(d))
		}
		sort.Strings(durations)
		for _, d := range durations {
			b.WriteString(d)
			b.WriteByte('=')
			b.WriteString(strconv.Itoa(s.LaunchCounts[id][ship.DurationType(d)]))
			b.WriteByte(',')
		}
		b.WriteByte(';')
	}
	return b.String()
}

func cloneLaunchCounts(in map[string]ship.LaunchCounts) map[string]ship.LaunchCounts {
	out := make(map[string]ship.LaunchCounts, len(in))
	for k, v := range in {
		out[k] = v.Clone()
	}
	return out
}
