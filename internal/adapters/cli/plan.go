package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/egg-planner/internal/application/planservice"
	"github.com/andrescamacho/egg-planner/internal/domain/planner"
	"github.com/andrescamacho/egg-planner/internal/domain/ship"
)

// newPlanCommand creates the plan subcommand (spec §6.1).
func newPlanCommand() *cobra.Command {
	var (
		targetItemID string
		quantity     int
		priorityTime float64
		fastMode     bool
		profilePath  string
		lootFile     string
	)

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Plan missions and crafts to obtain a target item",
		Long: `Runs the full planning pipeline for one (targetItemId, quantity)
request and prints progress events followed by the final result as
newline-delimited JSON, the same wire shape the streaming server uses.

Examples:
  egg-planner plan --profile profile.json --target puzzle-cube-1 --quantity 5 --priority-time 0.5
  egg-planner plan --profile profile.json --target soul-stone-2 --quantity 10 --fast-mode`,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, fleet, _, err := buildService(lootFile)
			if err != nil {
				return err
			}

			profile, err := loadProfile(profilePath, fleet)
			if err != nil {
				return fmt.Errorf("loading profile: %w", err)
			}

			encoder := json.NewEncoder(os.Stdout)
			opts := planservice.Options{
				FastMode: fastMode,
				OnProgress: func(e planner.Event) {
					_ = encoder.Encode(e)
				},
			}

			result, err := svc.PlanForTarget(context.Background(), profile, targetItemID, quantity, priorityTime, opts)
			if err != nil {
				return err
			}
			return encoder.Encode(result)
		},
	}

	cmd.Flags().StringVar(&targetItemID, "target", "", "target item id, e.g. puzzle-cube-1")
	cmd.Flags().IntVar(&quantity, "quantity", 1, "quantity of the target item to obtain")
	cmd.Flags().Float64Var(&priorityTime, "priority-time", 0.5, "0 = minimize GE cost, 1 = minimize wall-clock time")
	cmd.Flags().BoolVar(&fastMode, "fast-mode", false, "truncate the candidate set for a faster, less thorough plan")
	cmd.Flags().StringVar(&profilePath, "profile", "", "path to a player profile JSON file (spec §6.4)")
	cmd.Flags().StringVar(&lootFile, "loot-file", "configs/lootdata.json", "path to a loot-table JSON snapshot (used when --loot-url is unset)")
	_ = cmd.MarkFlagRequired("target")
	_ = cmd.MarkFlagRequired("profile")

	return cmd
}

type wireProfile struct {
	EID                    string                    `json:"eid"`
	Inventory              map[string]int            `json:"inventory"`
	CraftCounts            map[string]int            `json:"craftCounts"`
	EpicResearchFTLLevel   int                       `json:"epicResearchFTLLevel"`
	EpicResearchZerogLevel int                       `json:"epicResearchZerogLevel"`
	LaunchCounts           map[string]map[string]int `json:"launchCounts"`
}

func loadProfile(path string, fleet ship.Fleet) (*planner.Profile, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var wire wireProfile
	if err := json.Unmarshal(raw, &wire); err != nil {
		return nil, err
	}

	p := &planner.Profile{
		EID:         wire.EID,
		Inventory:   wire.Inventory,
		CraftCounts: wire.CraftCounts,
		Research:    ship.Research{FTL: wire.EpicResearchFTLLevel, ZeroG: wire.EpicResearchZerogLevel},
	}
	if p.Inventory == nil {
		p.Inventory = map[string]int{}
	}
	if p.CraftCounts == nil {
		p.CraftCounts = map[string]int{}
	}
	p.LaunchCounts = make(map[string]ship.LaunchCounts, len(wire.LaunchCounts))
	for shipID, counts := range wire.LaunchCounts {
		lc := make(ship.LaunchCounts, len(counts))
		for durationType, n := range counts {
			lc[ship.DurationType(durationType)] = n
		}
		p.LaunchCounts[shipID] = lc
	}
	p.Recompute(fleet)
	return p, nil
}
