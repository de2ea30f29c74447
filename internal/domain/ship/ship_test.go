package ship

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func testFleet() Fleet {
	return Fleet{
		{
			ID:                "CHICKEN_ONE",
			UnlockThreshold:   0,
			MaxLevel:          2,
			LevelRequirements: []float64{3, 5},
			FTLSegment:        false,
			Missions: []MissionTemplate{
				{MissionID: "m1", DurationType: Short, BaseDurationSeconds: 1200, BaseCapacity: 1, LevelCapacityBump: 0.5},
			},
		},
		{
			ID:                "CHICKEN_NINE",
			UnlockThreshold:   3,
			MaxLevel:          2,
			LevelRequirements: []float64{4, 6},
			FTLSegment:        true,
			Missions: []MissionTemplate{
				{MissionID: "m2", DurationType: Long, BaseDurationSeconds: 138240, BaseCapacity: 2, LevelCapacityBump: 1},
			},
		},
	}
}

func TestComputeSnapshotsUnlockAndLevel(t *testing.T) {
	fleet := testFleet()
	counts := map[string]LaunchCounts{
		"CHICKEN_ONE": {Short: 3},
	}

	snapshots := ComputeSnapshots(fleet, counts)

	require := assert.New(t)
	require.True(snapshots[0].Unlocked)
	require.Equal(1, snapshots[0].Level) // 3 points >= requirements[0]=3, < 3+5=8

	require.True(snapshots[1].Unlocked) // ship one reached unlock threshold of 3
	require.Equal(0, snapshots[1].Level)
}

func TestComputeSnapshotsLockedWhenBelowThreshold(t *testing.T) {
	fleet := testFleet()
	counts := map[string]LaunchCounts{"CHICKEN_ONE": {Short: 1}}

	snapshots := ComputeSnapshots(fleet, counts)
	assert.False(t, snapshots[1].Unlocked)
}

func TestShipLevelMonotonicity(t *testing.T) {
	fleet := testFleet()
	before := ComputeSnapshots(fleet, map[string]LaunchCounts{"CHICKEN_ONE": {Short: 2}})
	after := ComputeSnapshots(fleet, map[string]LaunchCounts{"CHICKEN_ONE": {Short: 4}})

	assert.GreaterOrEqual(t, after[0].Level, before[0].Level)
	assert.GreaterOrEqual(t, after[0].Launches, before[0].Launches)
}

func TestDeriveOptionsAppliesFTLAndZeroG(t *testing.T) {
	fleet := testFleet()
	counts := map[string]LaunchCounts{"CHICKEN_ONE": {Short: 10}}
	snapshots := ComputeSnapshots(fleet, counts)

	options := DeriveOptions(fleet, snapshots, Research{FTL: 10, ZeroG: 20})

	var chickenNine *Option
	for i := range options {
		if options[i].Ship == "CHICKEN_NINE" {
			chickenNine = &options[i]
		}
	}
	assert := assert.New(t)
	assert.NotNil(chickenNine)
	// base 138240 reduced by 10% FTL = 124416
	assert.Equal(124416, chickenNine.DurationSeconds)
	// level 0 capacity: floor((2 + 1*0) * 1.20) = 2
	assert.Equal(2, chickenNine.Capacity)
}

func TestFingerprintIgnoresOrder(t *testing.T) {
	a := []Option{{Ship: "A", MissionID: "m1"}, {Ship: "B", MissionID: "m2"}}
	b := []Option{{Ship: "B", MissionID: "m2"}, {Ship: "A", MissionID: "m1"}}
	assert.Equal(t, Fingerprint(a), Fingerprint(b))
}
