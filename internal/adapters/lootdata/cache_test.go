package lootdata

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/egg-planner/internal/domain/mission"
)

type countingFetcher struct {
	mu    sync.Mutex
	calls int
	data  mission.LootData
}

func (f *countingFetcher) Fetch(ctx context.Context) (mission.LootData, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	return f.data, nil
}

func TestCacheFetchesOnlyOnce(t *testing.T) {
	fetcher := &countingFetcher{data: mission.LootData{Missions: []mission.LootMission{{MissionID: "m1"}}}}
	cache := NewCache(fetcher)

	first, err := cache.Fetch(context.Background())
	require.NoError(t, err)
	second, err := cache.Fetch(context.Background())
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, fetcher.calls)
}

func TestCacheDeduplicatesConcurrentFirstUse(t *testing.T) {
	fetcher := &countingFetcher{data: mission.LootData{Missions: []mission.LootMission{{MissionID: "m1"}}}}
	cache := NewCache(fetcher)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = cache.Fetch(context.Background())
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, fetcher.calls)
}

func TestCacheInvalidateForcesRefetch(t *testing.T) {
	fetcher := &countingFetcher{data: mission.LootData{Missions: []mission.LootMission{{MissionID: "m1"}}}}
	cache := NewCache(fetcher)

	_, err := cache.Fetch(context.Background())
	require.NoError(t, err)
	cache.Invalidate()
	_, err = cache.Fetch(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, fetcher.calls)
}
