package streamserver

import (
	"github.com/andrescamacho/egg-planner/internal/domain/planner"
	"github.com/andrescamacho/egg-planner/internal/domain/ship"
)

// planRequest is the wire shape of a plan request body, mirroring the
// player-profile consumer contract (spec §6.4) plus the per-request
// arguments of §6.1.
type planRequest struct {
	TargetItemID string  `json:"targetItemId"`
	Quantity     int     `json:"quantity"`
	PriorityTime float64 `json:"priorityTime"`
	FastMode     bool    `json:"fastMode"`
	Profile      struct {
		EID                    string                      `json:"eid"`
		Inventory              map[string]int              `json:"inventory"`
		CraftCounts            map[string]int              `json:"craftCounts"`
		EpicResearchFTLLevel   int                         `json:"epicResearchFTLLevel"`
		EpicResearchZerogLevel int                         `json:"epicResearchZerogLevel"`
		LaunchCounts           map[string]map[string]int   `json:"launchCounts"`
	} `json:"profile"`
}

func (r *planRequest) toProfile(fleet ship.Fleet) *planner.Profile {
	p := &planner.Profile{
		EID:         r.Profile.EID,
		Inventory:   r.Profile.Inventory,
		CraftCounts: r.Profile.CraftCounts,
		Research:    ship.Research{FTL: r.Profile.EpicResearchFTLLevel, ZeroG: r.Profile.EpicResearchZerogLevel},
	}
	if p.Inventory == nil {
		p.Inventory = map[string]int{}
	}
	if p.CraftCounts == nil {
		p.CraftCounts = map[string]int{}
	}
	p.LaunchCounts = make(map[string]ship.LaunchCounts, len(r.Profile.LaunchCounts))
	for shipID, counts := range r.Profile.LaunchCounts {
		lc := make(ship.LaunchCounts, len(counts))
		for durationType, n := range counts {
			lc[ship.DurationType(durationType)] = n
		}
		p.LaunchCounts[shipID] = lc
	}
	p.Recompute(fleet)
	return p
}

// eventDTO is the NDJSON/websocket wire shape of one planner.Event; it
// exists so the wire format stays camelCase and stable even if the
// domain Event's Go field names change.
type eventDTO struct {
	Type     planner.EventType `json:"type"`
	Progress *progressDTO      `json:"progress,omitempty"`
	Result   *planner.Result   `json:"result,omitempty"`
	Error    string            `json:"error,omitempty"`
}

type progressDTO struct {
	Phase     planner.Phase `json:"phase"`
	Message   string        `json:"message,omitempty"`
	ElapsedMs int64         `json:"elapsedMs"`
	Completed *int          `json:"completed,omitempty"`
	Total     *int          `json:"total,omitempty"`
	EtaMs     *int64        `json:"etaMs,omitempty"`
}

func toEventDTO(e planner.Event) eventDTO {
	dto := eventDTO{Type: e.Type, Result: e.Result}
	if e.Progress != nil {
		dto.Progress = &progressDTO{
			Phase:     e.Progress.Phase,
			Message:   e.Progress.Message,
			ElapsedMs: e.Progress.ElapsedMs,
			Completed: e.Progress.Completed,
			Total:     e.Progress.Total,
			EtaMs:     e.Progress.EtaMs,
		}
	}
	if e.Err != nil {
		dto.Error = e.Err.Error()
	}
	return dto
}
