package shipconfig

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/egg-planner/internal/domain/ship"
)

const fixture = `
ships:
  - id: CHICKEN_ONE
    unlockThreshold: 0
    maxLevel: 2
    levelRequirements: [3, 5]
    ftlSegment: false
    missions:
      - missionId: m1
        durationType: short
        baseDurationSeconds: 1200
        baseCapacity: 4
        levelCapacityBump: 0.1
  - id: CHICKEN_TWO
    unlockThreshold: 10
    maxLevel: 1
    levelRequirements: [5]
    ftlSegment: true
    missions:
      - missionId: m2
        durationType: epic
        baseDurationSeconds: 7200
        baseCapacity: 10
        levelCapacityBump: 0.2
`

func TestParsePreservesOrderAndFields(t *testing.T) {
	fleet, err := Parse([]byte(fixture))
	require.NoError(t, err)
	require.Len(t, fleet, 2)

	assert.Equal(t, "CHICKEN_ONE", fleet[0].ID)
	assert.Equal(t, 0, fleet[0].UnlockThreshold)
	assert.Equal(t, []float64{3, 5}, fleet[0].LevelRequirements)
	require.Len(t, fleet[0].Missions, 1)
	assert.Equal(t, ship.Short, fleet[0].Missions[0].DurationType)

	assert.Equal(t, "CHICKEN_TWO", fleet[1].ID)
	assert.True(t, fleet[1].FTLSegment)
	assert.Equal(t, ship.Epic, fleet[1].Missions[0].DurationType)
}

func TestParseRejectsMismatchedLevelRequirements(t *testing.T) {
	bad := `
ships:
  - id: CHICKEN_ONE
    unlockThreshold: 0
    maxLevel: 2
    levelRequirements: [3]
`
	_, err := Parse([]byte(bad))
	assert.Error(t, err)
}
