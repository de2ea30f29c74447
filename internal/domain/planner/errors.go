package planner

import (
	"fmt"
	"strings"
)

// MissionCoverageError is raised when a closure item has strictly
// positive unmet demand, no action in the candidate yields it at all, and
// the resulting plan has no missions or crafts (spec §4.7). The API
// layer translates this to an HTTP 422.
type MissionCoverageError struct {
	ItemIDs []string
}

func (e *MissionCoverageError) Error() string {
	return fmt.Sprintf("mission coverage impossible for: %s", strings.Join(e.ItemIDs, ", "))
}

// LootDataError wraps a failure to obtain or parse loot-table data. The
// core only ever returns it through its usual failure channel; recovery
// (retry, alternate source) is the API layer's responsibility.
type LootDataError struct {
	Reason string
}

func (e *LootDataError) Error() string {
	return fmt.Sprintf("loot data unavailable: %s", e.Reason)
}

// SolverError records why a single candidate's MILP solve failed
// (non-optimal status or solver exception). Per-candidate SolverErrors
// are collected and do not themselves stop the search (spec §4.6); they
// surface to the caller only inside an AllCandidatesFailedError.
type SolverError struct {
	CandidateIndex int
	Message        string
}

func (e *SolverError) Error() string {
	return fmt.Sprintf("candidate %d: solver failed: %s", e.CandidateIndex, e.Message)
}

// AllCandidatesFailedError is raised internally when every horizon-search
// candidate's MILP solve failed; it triggers the heuristic fallback and
// is never itself surfaced to the caller (the fallback never throws).
type AllCandidatesFailedError struct {
	CandidateErrors []*SolverError
}

func (e *AllCandidatesFailedError) Error() string {
	return fmt.Sprintf("all %d candidates failed to solve", len(e.CandidateErrors))
}
