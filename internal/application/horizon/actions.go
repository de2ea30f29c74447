package horizon

import (
	"fmt"

	"github.com/andrescamacho/egg-planner/internal/domain/ship"
)

// EnumerateActions expands base into its successor states: one per
// (ship, durationType) level-up action, and one per (ship, durationType)
// unlock action for the next locked ship (spec §4.6).
func EnumerateActions(fleet ship.Fleet, research ship.Research, base *State, maxLaunchesPerAction int) []*State {
	var successors []*State

	for i, cfg := range fleet {
		if i >= len(base.ShipLevels) {
			continue
		}
		snap := base.ShipLevels[i]

		if snap.Unlocked {
			for _, dt := range distinctDurationTypes(cfg) {
				if succ := tryLevelUp(fleet, research, base, i, dt, maxLaunchesPerAction); succ != nil {
					successors = append(successors, succ)
				}
			}
			continue
		}

		if i == 0 {
			continue // first ship is always unlocked
		}
		predIdx := i - 1
		predSnap := base.ShipLevels[predIdx]
		if !predSnap.Unlocked {
			continue
		}
		predCfg := fleet[predIdx]
		for _, dt := range distinctDurationTypes(predCfg) {
			if succ := tryUnlock(fleet, research, base, i, predIdx, dt, maxLaunchesPerAction); succ != nil {
				successors = append(successors, succ)
			}
		}
	}

	return successors
}

func distinctDurationTypes(cfg ship.Config) []ship.DurationType {
	seen := make(map[ship.DurationType]bool)
	var out []ship.DurationType
	for _, mt := range cfg.Missions {
		if !seen[mt.DurationType] {
			seen[mt.DurationType] = true
			out = append(out, mt.DurationType)
		}
	}
	return out
}

func tryLevelUp(fleet ship.Fleet, research ship.Research, base *State, shipIdx int, dt ship.DurationType, maxLaunches int) *State {
	cfg := fleet[shipIdx]
	durationSeconds, ok := ship.DurationSecondsFor(cfg, dt, research)
	if !ok {
		return nil
	}
	currentLevel := base.ShipLevels[shipIdx].Level

	for l := 1; l <= maxLaunches; l++ {
		counts := cloneLaunchCounts(base.LaunchCounts)
		lc := counts[cfg.ID]
		if lc == nil {
			lc = ship.LaunchCounts{}
		}
		lc[dt] += l
		counts[cfg.ID] = lc

		snapshots := ship.ComputeSnapshots(fleet, counts)
		if snapshots[shipIdx].Level > currentLevel {
			return buildSuccessor(fleet, research, base, counts, snapshots, PrepStep{
				Ship:            cfg.ID,
				DurationType:    dt,
				Launches:        l,
				DurationSeconds: durationSeconds,
				Reason:          fmt.Sprintf("Level up %s", cfg.ID),
			})
		}
	}
	return nil
}

func tryUnlock(fleet ship.Fleet, research ship.Research, base *State, shipIdx, predIdx int, dt ship.DurationType, maxLaunches int) *State {
	cfg := fleet[shipIdx]
	predCfg := fleet[predIdx]
	durationSeconds, ok := ship.DurationSecondsFor(predCfg, dt, research)
	if !ok {
		return nil
	}
	threshold := cfg.UnlockThreshold
	currentPredLaunches := base.ShipLevels[predIdx].Launches
	if currentPredLaunches >= threshold {
		return nil
	}

	for l := 1; l <= maxLaunches; l++ {
		if currentPredLaunches+l < threshold {
			continue
		}
		counts := cloneLaunchCounts(base.LaunchCounts)
		lc := counts[predCfg.ID]
		if lc == nil {
			lc = ship.LaunchCounts{}
		}
		lc[dt] += l
		counts[predCfg.ID] = lc

		snapshots := ship.ComputeSnapshots(fleet, counts)
		return buildSuccessor(fleet, research, base, counts, snapshots, PrepStep{
			Ship:            predCfg.ID,
			DurationType:    dt,
			Launches:        l,
			DurationSeconds: durationSeconds,
			Reason:          fmt.Sprintf("Unlock %s", cfg.ID),
		})
	}
	return nil
}

func buildSuccessor(fleet ship.Fleet, research ship.Research, base *State, counts map[string]ship.LaunchCounts, snapshots []ship.Snapshot, step PrepStep) *State {
	options := ship.DeriveOptions(fleet, snapshots, research)
	steps := append(append([]PrepStep{}, base.PrepSteps...), step)
	stepSeconds := float64(step.Launches * step.DurationSeconds)
	timeMult := ship.DurationWeights[step.DurationType]
	return &State{
		LaunchCounts:            counts,
		ShipLevels:              snapshots,
		MissionOptions:          options,
		PrepSteps:               steps,
		PrepSlotSeconds:         base.PrepSlotSeconds + stepSeconds,
		PrepWeightedSlotSeconds: base.PrepWeightedSlotSeconds + stepSeconds*timeMult,
	}
}
