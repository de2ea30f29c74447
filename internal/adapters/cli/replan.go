package cli

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/egg-planner/internal/application/replan"
	"github.com/andrescamacho/egg-planner/internal/domain/ship"
)

// newReplanCommand creates the replan subcommand (spec §4.9): fold
// observed mission returns and launches into a profile and print the
// updated profile as JSON.
func newReplanCommand() *cobra.Command {
	var (
		profilePath string
		returnsPath string
		launchFile  string
	)

	cmd := &cobra.Command{
		Use:   "replan",
		Short: "Fold observed mission returns/launches into a player profile",
		Long: `Reads a player profile and a batch of observed returns/launches,
applies them, recomputes derived ship levels and mission options, and
prints the updated profile as JSON (spec §4.9).

Examples:
  egg-planner replan --profile profile.json --returns returns.json --launches launches.json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, fleet, _, err := buildService("")
			if err != nil {
				return err
			}

			profile, err := loadProfile(profilePath, fleet)
			if err != nil {
				return err
			}

			returns, err := loadReturns(returnsPath)
			if err != nil {
				return err
			}

			var launches []replan.MissionLaunch
			if launchFile != "" {
				launches, err = loadLaunches(launchFile)
				if err != nil {
					return err
				}
			}

			next := replan.Apply(profile, fleet, returns, launches)
			return json.NewEncoder(os.Stdout).Encode(next)
		},
	}

	cmd.Flags().StringVar(&profilePath, "profile", "", "path to the current player profile JSON file")
	cmd.Flags().StringVar(&returnsPath, "returns", "", "path to observed mission returns JSON file")
	cmd.Flags().StringVar(&launchFile, "launches", "", "path to observed mission launches JSON file (optional)")
	_ = cmd.MarkFlagRequired("profile")
	_ = cmd.MarkFlagRequired("returns")

	return cmd
}

type wireObservedReturn struct {
	ItemKey  string  `json:"itemKey"`
	Quantity float64 `json:"quantity"`
}

func loadReturns(path string) ([]replan.ObservedReturn, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var wire []wireObservedReturn
	if err := json.Unmarshal(raw, &wire); err != nil {
		return nil, err
	}
	out := make([]replan.ObservedReturn, len(wire))
	for i, r := range wire {
		out[i] = replan.ObservedReturn{ItemKey: r.ItemKey, Quantity: r.Quantity}
	}
	return out, nil
}

type wireMissionLaunch struct {
	Ship         string  `json:"ship"`
	DurationType string  `json:"durationType"`
	Launches     float64 `json:"launches"`
}

func loadLaunches(path string) ([]replan.MissionLaunch, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var wire []wireMissionLaunch
	if err := json.Unmarshal(raw, &wire); err != nil {
		return nil, err
	}
	out := make([]replan.MissionLaunch, len(wire))
	for i, l := range wire {
		out[i] = replan.MissionLaunch{Ship: l.Ship, DurationType: ship.DurationType(l.DurationType), Launches: l.Launches}
	}
	return out, nil
}
