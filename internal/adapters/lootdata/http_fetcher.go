package lootdata

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/andrescamacho/egg-planner/internal/domain/mission"
)

const (
	defaultTimeout = 30 * time.Second
)

// HTTPFetcher retrieves the loot-table document (spec §6.3) from a JSON
// HTTP endpoint. Requests are rate limited the way the teacher's API
// client throttles its own upstream.
type HTTPFetcher struct {
	httpClient  *http.Client
	rateLimiter *rate.Limiter
	url         string
}

// NewHTTPFetcher builds a fetcher for url, limited to ratePerSecond
// requests per second (a loot-table refresh is rare, so a small burst is
// enough headroom).
func NewHTTPFetcher(url string, ratePerSecond float64) *HTTPFetcher {
	return &HTTPFetcher{
		httpClient:  &http.Client{Timeout: defaultTimeout},
		rateLimiter: rate.NewLimiter(rate.Limit(ratePerSecond), 1),
		url:         url,
	}
}

// Fetch implements Fetcher.
func (f *HTTPFetcher) Fetch(ctx context.Context) (mission.LootData, error) {
	if err := f.rateLimiter.Wait(ctx); err != nil {
		return mission.LootData{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.url, nil)
	if err != nil {
		return mission.LootData{}, fmt.Errorf("lootdata: build request: %w", err)
	}

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return mission.LootData{}, fmt.Errorf("lootdata: fetch %s: %w", f.url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return mission.LootData{}, fmt.Errorf("lootdata: unexpected status %d from %s: %s", resp.StatusCode, f.url, body)
	}

	var wire wireLootData
	if err := json.NewDecoder(resp.Body).Decode(&wire); err != nil {
		return mission.LootData{}, fmt.Errorf("lootdata: decode response: %w", err)
	}

	return wire.toDomain(), nil
}

// wireLootData mirrors spec §6.3's JSON shape exactly so the decode step
// stays a straight field-for-field copy.
type wireLootData struct {
	Missions []wireMission `json:"missions"`
}

type wireMission struct {
	MissionID string      `json:"missionId"`
	Levels    []wireLevel `json:"levels"`
}

type wireLevel struct {
	Level   int          `json:"level"`
	Targets []wireTarget `json:"targets"`
}

type wireTarget struct {
	TotalDrops  float64    `json:"totalDrops"`
	TargetAfxID string     `json:"targetAfxId"`
	Items       []wireItem `json:"items"`
}

type wireItem struct {
	ItemID string    `json:"itemId"`
	Counts []float64 `json:"counts"`
}

func (w wireLootData) toDomain() mission.LootData {
	out := mission.LootData{Missions: make([]mission.LootMission, 0, len(w.Missions))}
	for _, m := range w.Missions {
		lm := mission.LootMission{MissionID: m.MissionID, Levels: make([]mission.LootLevel, 0, len(m.Levels))}
		for _, l := range m.Levels {
			ll := mission.LootLevel{Level: l.Level, Targets: make([]mission.LootTarget, 0, len(l.Targets))}
			for _, t := range l.Targets {
				lt := mission.LootTarget{TotalDrops: t.TotalDrops, TargetAfxID: t.TargetAfxID, Items: make([]mission.LootItem, 0, len(t.Items))}
				for _, i := range t.Items {
					lt.Items = append(lt.Items, mission.LootItem{ItemID: i.ItemID, Counts: i.Counts})
				}
				ll.Targets = append(ll.Targets, lt)
			}
			lm.Levels = append(lm.Levels, ll)
		}
		out.Missions = append(out.Missions, lm)
	}
	return out
}
