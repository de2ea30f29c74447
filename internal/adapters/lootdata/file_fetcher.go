package lootdata

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/andrescamacho/egg-planner/internal/domain/mission"
)

// FileFetcher reads the loot-table document from a local JSON file,
// useful for local development and offline tests against a snapshot of
// the real endpoint's response.
type FileFetcher struct {
	path string
}

// NewFileFetcher builds a fetcher reading from path on every Fetch call
// (the Cache above is what makes repeated calls cheap).
func NewFileFetcher(path string) *FileFetcher {
	return &FileFetcher{path: path}
}

// Fetch implements Fetcher.
func (f *FileFetcher) Fetch(ctx context.Context) (mission.LootData, error) {
	raw, err := os.ReadFile(f.path)
	if err != nil {
		return mission.LootData{}, fmt.Errorf("lootdata: read %s: %w", f.path, err)
	}

	var wire wireLootData
	if err := json.Unmarshal(raw, &wire); err != nil {
		return mission.LootData{}, fmt.Errorf("lootdata: decode %s: %w", f.path, err)
	}
	return wire.toDomain(), nil
}
