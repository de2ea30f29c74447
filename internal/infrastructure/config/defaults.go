package config

import "time"

// SetDefaults sets default values for all configuration fields
func SetDefaults(cfg *Config) {
	// Horizon defaults (spec §4.6)
	if cfg.Horizon.MaxDepth == 0 {
		cfg.Horizon.MaxDepth = 2
	}
	if cfg.Horizon.BeamWidth == 0 {
		cfg.Horizon.BeamWidth = 6
	}
	if cfg.Horizon.MaxLaunchesPerAction == 0 {
		cfg.Horizon.MaxLaunchesPerAction = 600
	}
	if cfg.Horizon.FastModeMaxCandidates == 0 {
		cfg.Horizon.FastModeMaxCandidates = 8
	}

	// Solver defaults (spec §4.5, §4.8, §9)
	if cfg.Solver.Backend == "" {
		cfg.Solver.Backend = "gonum"
	}
	if cfg.Solver.RemoteAddress == "" {
		cfg.Solver.RemoteAddress = "localhost:50061"
	}
	if cfg.Solver.Timeout == 0 {
		cfg.Solver.Timeout = 10 * time.Second
	}
	if cfg.Solver.MinTimeWeight == 0 {
		cfg.Solver.MinTimeWeight = 1e-5
	}
	if cfg.Solver.MaxGreedyIterations == 0 {
		cfg.Solver.MaxGreedyIterations = 3000
	}
	if cfg.Solver.FulfillDepthCap == 0 {
		cfg.Solver.FulfillDepthCap = 30
	}

	// Server defaults
	if cfg.Server.Address == "" {
		cfg.Server.Address = "localhost:8090"
	}

	// Logging defaults
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}
}
