// Command planner-cli is the egg-planner CLI: plan, replan, and serve
// subcommands over the request-scoped planning pipeline (spec §6.1).
package main

import "github.com/andrescamacho/egg-planner/internal/adapters/cli"

func main() {
	cli.Execute()
}
