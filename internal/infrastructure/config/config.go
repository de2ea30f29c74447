package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config is the main configuration struct combining all sub-configs
type Config struct {
	Horizon HorizonConfig `mapstructure:"horizon"`
	Solver  SolverConfig  `mapstructure:"solver"`
	Server  ServerConfig  `mapstructure:"server"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// HorizonConfig controls the beam search over ship-progression states (spec §4.6).
type HorizonConfig struct {
	MaxDepth               int `mapstructure:"max_depth" validate:"required,min=1"`
	BeamWidth              int `mapstructure:"beam_width" validate:"required,min=1"`
	MaxLaunchesPerAction   int `mapstructure:"max_launches_per_action" validate:"required,min=1"`
	FastModeMaxCandidates  int `mapstructure:"fast_mode_max_candidates" validate:"required,min=1"`
}

// SolverConfig controls the unified MILP solve (spec §4.5) and its fallback.
type SolverConfig struct {
	// Backend selects the MILP solver implementation: "gonum" (in-process
	// branch-and-bound over a simplex relaxation) or "remote" (gRPC).
	Backend             string        `mapstructure:"backend" validate:"required,oneof=gonum remote"`
	RemoteAddress       string        `mapstructure:"remote_address"`
	Timeout             time.Duration `mapstructure:"timeout" validate:"required"`
	MinTimeWeight       float64       `mapstructure:"min_time_weight" validate:"required,gt=0"`
	MaxGreedyIterations int           `mapstructure:"max_greedy_iterations" validate:"required,min=1"`
	FulfillDepthCap     int           `mapstructure:"fulfill_depth_cap" validate:"required,min=1"`
}

// ServerConfig controls the reference NDJSON streaming transport (SPEC_FULL §AMBIENT).
type ServerConfig struct {
	Address string `mapstructure:"address" validate:"required"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level" validate:"required,oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"required,oneof=json text"`
}

// LoadConfig loads configuration from multiple sources with priority:
// 1. Environment variables (highest priority)
// 2. Config file (planner.yaml)
// 3. Defaults (lowest priority)
func LoadConfig(configPath string) (*Config, error) {
	// Load .env file if it exists (doesn't error if missing)
	_ = godotenv.Load()

	v := viper.New()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("planner")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		v.AddConfigPath("/etc/egg-planner")
	}

	v.SetEnvPrefix("PLANNER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	SetDefaults(&cfg)

	if err := ValidateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// LoadConfigOrDefault loads configuration or returns a default config on error
func LoadConfigOrDefault(configPath string) *Config {
	cfg, err := LoadConfig(configPath)
	if err != nil {
		defaultCfg := &Config{}
		SetDefaults(defaultCfg)
		return defaultCfg
	}
	return cfg
}

// MustLoadConfig loads configuration and panics on error (for use in main.go)
func MustLoadConfig(configPath string) *Config {
	cfg, err := LoadConfig(configPath)
	if err != nil {
		panic(fmt.Sprintf("failed to load configuration: %v", err))
	}
	return cfg
}
