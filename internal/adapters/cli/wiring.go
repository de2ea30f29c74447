package cli

import (
	"fmt"

	"github.com/andrescamacho/egg-planner/internal/adapters/lootdata"
	"github.com/andrescamacho/egg-planner/internal/adapters/milpsolver"
	"github.com/andrescamacho/egg-planner/internal/adapters/milpsolver/remote"
	"github.com/andrescamacho/egg-planner/internal/adapters/recipedata"
	"github.com/andrescamacho/egg-planner/internal/adapters/shipconfig"
	"github.com/andrescamacho/egg-planner/internal/application/planservice"
	"github.com/andrescamacho/egg-planner/internal/domain/milp"
	"github.com/andrescamacho/egg-planner/internal/domain/ship"
	"github.com/andrescamacho/egg-planner/internal/infrastructure/config"
)

// buildService loads static game data and config, picks a solver backend,
// and returns a ready-to-use planservice.Service. It is shared by the
// plan, replan, and serve subcommands.
func buildService(lootFile string) (*planservice.Service, ship.Fleet, *config.Config, error) {
	cfg := config.MustLoadConfig(configPath)

	fleet, err := shipconfig.Load(fleetPath)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("loading fleet: %w", err)
	}

	table, err := recipedata.Load(recipesPath)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("loading recipes: %w", err)
	}

	solver, err := buildSolver(cfg)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("building solver: %w", err)
	}

	loot := buildLootProvider(lootFile)

	return planservice.New(fleet, table, loot, solver, cfg), fleet, cfg, nil
}

func buildSolver(cfg *config.Config) (milp.Solver, error) {
	switch cfg.Solver.Backend {
	case "remote":
		client, err := remote.NewClient(cfg.Solver.RemoteAddress)
		if err != nil {
			return nil, err
		}
		return client, nil
	default:
		return milpsolver.NewGonumSolver(cfg.Solver.Timeout), nil
	}
}

func buildLootProvider(lootFile string) planservice.LootDataProvider {
	var fetcher lootdata.Fetcher
	switch {
	case lootURL != "":
		fetcher = lootdata.NewHTTPFetcher(lootURL, 1)
	default:
		fetcher = lootdata.NewFileFetcher(lootFile)
	}
	return lootdata.NewCache(fetcher)
}
