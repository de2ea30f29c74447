// Package planner holds the request-scoped types the planning pipeline
// passes between its stages: the player profile, the final result, its
// distinguished errors, and the progress/stream contract.
package planner

import "github.com/andrescamacho/egg-planner/internal/domain/ship"

// Profile is the player state a planning request operates over (spec
// §3, §6.4). It is read by the planner, never mutated in place — every
// stage works on a copy, and only Replan (internal/application/replan)
// produces a new Profile value.
type Profile struct {
	EID string

	// Inventory maps itemKey -> nonneg integer on-hand quantity.
	Inventory map[string]int

	// CraftCounts maps itemKey -> lifetime crafts, indexing the discount
	// curve.
	CraftCounts map[string]int

	Research ship.Research

	// LaunchCounts is the source of truth for ship progression; ShipLevels
	// and MissionOptions below are derived from it and must be refreshed
	// with Recompute after any change.
	LaunchCounts map[string]ship.LaunchCounts

	ShipLevels     []ship.Snapshot
	MissionOptions []ship.Option
}

// Recompute refreshes ShipLevels and MissionOptions from LaunchCounts and
// Research against the given static fleet configuration (spec §4.9).
func (p *Profile) Recompute(fleet ship.Fleet) {
	p.ShipLevels = ship.ComputeSnapshots(fleet, p.LaunchCounts)
	p.MissionOptions = ship.DeriveOptions(fleet, p.ShipLevels, p.Research)
}

// Clone returns a deep copy safe for a stage to mutate independently of
// the caller's profile.
func (p *Profile) Clone() *Profile {
	clone := &Profile{
		EID:         p.EID,
		Inventory:   make(map[string]int, len(p.Inventory)),
		CraftCounts: make(map[string]int, len(p.CraftCounts)),
		Research:    p.Research,
		LaunchCounts: make(map[string]ship.LaunchCounts, len(p.LaunchCounts)),
	}
	for k, v := range p.Inventory {
		clone.Inventory[k] = v
	}
	for k, v := range p.CraftCounts {
		clone.CraftCounts[k] = v
	}
	for k, v := range p.LaunchCounts {
		clone.LaunchCounts[k] = v.Clone()
	}
	clone.ShipLevels = append([]ship.Snapshot{}, p.ShipLevels...)
	clone.MissionOptions = append([]ship.Option{}, p.MissionOptions...)
	return clone
}
