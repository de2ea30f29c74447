// Package cli provides the egg-planner command-line interface: plan,
// replan, and serve subcommands wired to planservice.Service (spec §6.1,
// §6.2, §4.9).
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	recipesPath string
	fleetPath   string
	configPath  string
	lootURL     string
)

// NewRootCommand creates the root command for the CLI.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "egg-planner",
		Short: "egg-planner - mission-and-craft planning for a ship-progression game",
		Long: `egg-planner plans how to obtain a target item: which missions to
launch, which intermediate items to craft, and whether it is worth
spending extra prep launches on ship progression first.

Examples:
  egg-planner plan --profile profile.json --target puzzle-cube-1 --quantity 5 --priority-time 0.5
  egg-planner replan --profile profile.json --returns returns.json
  egg-planner serve --address localhost:8090`,
		CompletionOptions: cobra.CompletionOptions{DisableDefaultCmd: true},
	}

	rootCmd.PersistentFlags().StringVar(&recipesPath, "recipes", "configs/recipes.yaml", "path to the recipe graph YAML file")
	rootCmd.PersistentFlags().StringVar(&fleetPath, "fleet", "configs/fleet.yaml", "path to the ship fleet YAML file")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to planner.yaml (empty searches default paths)")
	rootCmd.PersistentFlags().StringVar(&lootURL, "loot-url", "", "loot-table HTTP endpoint (empty uses --loot-file)")

	rootCmd.AddCommand(newPlanCommand())
	rootCmd.AddCommand(newReplanCommand())
	rootCmd.AddCommand(newServeCommand())

	return rootCmd
}

// Execute runs the root command and exits nonzero on failure.
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
