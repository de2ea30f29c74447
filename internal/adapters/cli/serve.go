package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/egg-planner/internal/adapters/streamserver"
)

// newServeCommand creates the serve subcommand: binds planservice.Service
// to the NDJSON/websocket streaming transport (SPEC_FULL §AMBIENT).
func newServeCommand() *cobra.Command {
	var (
		address  string
		lootFile string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the planning pipeline over HTTP (NDJSON + websocket)",
		Long: `Starts a long-running HTTP server exposing POST /v1/plan (NDJSON
streaming) and GET /v1/plan/ws (websocket), both carrying the same
progress/result/error event stream (spec §6.2).

Examples:
  egg-planner serve --address localhost:8090`,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, fleet, cfg, err := buildService(lootFile)
			if err != nil {
				return err
			}
			if address == "" {
				address = cfg.Server.Address
			}

			server := streamserver.New(address, svc, fleet)

			shutdown := make(chan os.Signal, 1)
			signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

			errCh := make(chan error, 1)
			go func() {
				fmt.Printf("egg-planner listening on %s\n", address)
				errCh <- server.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				return err
			case <-shutdown:
				ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()
				return server.Shutdown(ctx)
			}
		},
	}

	cmd.Flags().StringVar(&address, "address", "", "HTTP bind address (empty uses config default)")
	cmd.Flags().StringVar(&lootFile, "loot-file", "configs/lootdata.json", "path to a loot-table JSON snapshot (used when --loot-url is unset)")

	return cmd
}
