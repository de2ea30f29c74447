// Package ship computes ship-progression state (levels, unlocks) from
// launch counts, and derives the mission options available at that state
// under the player's research levels.
package ship

// DurationType classifies a mission by how long it occupies a slot.
type DurationType string

const (
	Tutorial DurationType = "TUTORIAL"
	Short    DurationType = "SHORT"
	Long     DurationType = "LONG"
	Epic     DurationType = "EPIC"
)

// DurationWeights are the fixed per-duration-type weights used to convert
// launch counts into launchPoints (spec §3, bit-exact).
var DurationWeights = map[DurationType]float64{
	Tutorial: 1,
	Short:    1,
	Long:     1.4,
	Epic:     1.8,
}

// LaunchCounts tallies launches of each duration type for one ship.
type LaunchCounts map[DurationType]int

// Total returns the sum of all launches regardless of duration type.
func (lc LaunchCounts) Total() int {
	total := 0
	for _, n := range lc {
		total += n
	}
	return total
}

// Points returns Σ launchesByDuration[d]·weight[d].
func (lc LaunchCounts) Points() float64 {
	var points float64
	for d, n := range lc {
		points += float64(n) * DurationWeights[d]
	}
	return points
}

// Clone returns an independent copy of lc.
func (lc LaunchCounts) Clone() LaunchCounts {
	out := make(LaunchCounts, len(lc))
	for d, n := range lc {
		out[d] = n
	}
	return out
}
