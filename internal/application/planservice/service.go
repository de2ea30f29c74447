// Package planservice is the library entrypoint that ties the horizon
// search, the heuristic fallback, and the streaming progress contract
// together into one request-scoped operation (spec §6.1, §6.2).
package planservice

import (
	"context"

	"github.com/andrescamacho/egg-planner/internal/application/common"
	"github.com/andrescamacho/egg-planner/internal/domain/milp"
	"github.com/andrescamacho/egg-planner/internal/domain/mission"
	"github.com/andrescamacho/egg-planner/internal/domain/recipe"
	"github.com/andrescamacho/egg-planner/internal/domain/ship"
	"github.com/andrescamacho/egg-planner/internal/infrastructure/config"
)

// LootDataProvider is the port through which the service obtains the
// shared, process-wide loot-table cache (spec §5 "Shared resources").
// Adapters/lootdata implements this with a singleflight-backed cache.
type LootDataProvider interface {
	Fetch(ctx context.Context) (mission.LootData, error)
}

// Service bundles the static, read-only game data and the MILP solver a
// planning request needs. One Service is built at process startup and
// shared across concurrent requests (spec §5 "Shared resources").
type Service struct {
	Fleet  ship.Fleet
	Table  *recipe.Table
	Loot   LootDataProvider
	Solver milp.Solver
	Config *config.Config
}

// New constructs a Service from its static dependencies.
func New(fleet ship.Fleet, table *recipe.Table, loot LootDataProvider, solver milp.Solver, cfg *config.Config) *Service {
	return &Service{Fleet: fleet, Table: table, Loot: loot, Solver: solver, Config: cfg}
}

func (s *Service) logger(ctx context.Context) common.ContainerLogger {
	return common.LoggerFromContext(ctx)
}
