package horizon

import (
	"sort"

	"github.com/andrescamacho/egg-planner/internal/domain/ship"
)

// RunBeamSearch expands initial for up to maxDepth rounds, deduplicating
// by launch-count fingerprint and keeping only the beamWidth cheapest
// successors at each depth (spec §4.6). The zero-prep initial state is
// always included in the result.
func RunBeamSearch(fleet ship.Fleet, research ship.Research, initial *State, maxDepth, beamWidth, maxLaunchesPerAction int) []*State {
	visited := map[string]bool{initial.Fingerprint(): true}
	candidates := []*State{initial}
	frontier := []*State{initial}

	for depth := 0; depth < maxDepth && len(frontier) > 0; depth++ {
		var successors []*State
		for _, state := range frontier {
			for _, succ := range EnumerateActions(fleet, research, state, maxLaunchesPerAction) {
				fp := succ.Fingerprint()
				if visited[fp] {
					continue
				}
				visited[fp] = true
				successors = append(successors, succ)
			}
		}

		sort.Slice(successors, func(i, j int) bool {
			return successors[i].PrepSlotSeconds < successors[j].PrepSlotSeconds
		})
		if len(successors) > beamWidth {
			successors = successors[:beamWidth]
		}

		candidates = append(candidates, successors...)
		frontier = successors
	}

	return candidates
}

// DedupByMissionOptions keeps, for each distinct mission-option
// fingerprint, the single candidate with the smallest PrepSlotSeconds
// (spec §4.6 "Deduplication by mission-option fingerprint").
func DedupByMissionOptions(candidates []*State) []*State {
	best := make(map[string]*State, len(candidates))
	var order []string

	for _, c := range candidates {
		fp := ship.Fingerprint(c.MissionOptions)
		existing, ok := best[fp]
		if !ok {
			order = append(order, fp)
			best[fp] = c
			continue
		}
		if c.PrepSlotSeconds < existing.PrepSlotSeconds {
			best[fp] = c
		}
	}

	deduped := make([]*State, 0, len(order))
	for _, fp := range order {
		deduped = append(deduped, best[fp])
	}
	sort.Slice(deduped, func(i, j int) bool {
		return deduped[i].PrepSlotSeconds < deduped[j].PrepSlotSeconds
	})
	return deduped
}

// ApplyFastMode truncates candidates to at most maxCandidates, keeping
// the cheapest-to-prep candidates (spec §4.6 "Fast mode").
func ApplyFastMode(candidates []*State, maxCandidates int) []*State {
	if len(candidates) <= maxCandidates {
		return candidates
	}
	return candidates[:maxCandidates]
}
