// Package shipconfig loads the static, externally-supplied per-ship
// fleet definition (spec §6.5: "unlock thresholds and per-ship level-up
// requirements are externally supplied as static config; the planner
// reads them verbatim").
package shipconfig

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/andrescamacho/egg-planner/internal/domain/ship"
)

// Load reads the fleet definition at path and returns it in the order
// it appears in the file; that order is load-bearing, since a ship's
// UnlockThreshold is evaluated against the *previous* ship's cumulative
// launches.
func Load(path string) (ship.Fleet, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("shipconfig: read %s: %w", path, err)
	}
	return Parse(raw)
}

// Parse decodes a fleet definition from an in-memory YAML document.
func Parse(raw []byte) (ship.Fleet, error) {
	var doc wireFleet
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("shipconfig: decode: %w", err)
	}

	fleet := make(ship.Fleet, 0, len(doc.Ships))
	for _, s := range doc.Ships {
		cfg := ship.Config{
			ID:                s.ID,
			UnlockThreshold:   s.UnlockThreshold,
			MaxLevel:          s.MaxLevel,
			LevelRequirements: s.LevelRequirements,
			FTLSegment:        s.FTLSegment,
		}
		for _, m := range s.Missions {
			cfg.Missions = append(cfg.Missions, ship.MissionTemplate{
				MissionID:           m.MissionID,
				DurationType:        durationTypeFromWire(m.DurationType),
				BaseDurationSeconds: m.BaseDurationSeconds,
				BaseCapacity:        m.BaseCapacity,
				LevelCapacityBump:   m.LevelCapacityBump,
			})
		}
		if len(cfg.LevelRequirements) != cfg.MaxLevel {
			return nil, fmt.Errorf("shipconfig: ship %q has %d level requirements, want %d (maxLevel)", cfg.ID, len(cfg.LevelRequirements), cfg.MaxLevel)
		}
		fleet = append(fleet, cfg)
	}
	return fleet, nil
}

type wireFleet struct {
	Ships []wireShip `yaml:"ships"`
}

type wireShip struct {
	ID                string        `yaml:"id"`
	UnlockThreshold   int           `yaml:"unlockThreshold"`
	MaxLevel          int           `yaml:"maxLevel"`
	LevelRequirements []float64     `yaml:"levelRequirements"`
	FTLSegment        bool          `yaml:"ftlSegment"`
	Missions          []wireMission `yaml:"missions"`
}

type wireMission struct {
	MissionID           string  `yaml:"missionId"`
	DurationType        string  `yaml:"durationType"`
	BaseDurationSeconds int     `yaml:"baseDurationSeconds"`
	BaseCapacity        int     `yaml:"baseCapacity"`
	LevelCapacityBump   float64 `yaml:"levelCapacityBump"`
}

func durationTypeFromWire(s string) ship.DurationType {
	switch s {
	case "tutorial":
		return ship.Tutorial
	case "long":
		return ship.Long
	case "epic":
		return ship.Epic
	default:
		return ship.Short
	}
}
