package bdd

import (
	"testing"

	"github.com/cucumber/godog"

	"github.com/andrescamacho/egg-planner/test/bdd/steps"
)

// TestFeatures runs every .feature file against its step definitions
// (spec §8 "Testable Properties").
func TestFeatures(t *testing.T) {
	suite := godog.TestSuite{
		ScenarioInitializer: InitializeScenario,
		Options: &godog.Options{
			Format:    "pretty",
			Paths:     []string{"features"},
			TestingT:  t,
			Randomize: 0,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}

// InitializeScenario wires every step-definition group into one shared
// godog.ScenarioContext. Kept as a single dispatcher (rather than one
// TestSuite per package) so future feature files can mix steps from more
// than one group within a single scenario.
func InitializeScenario(ctx *godog.ScenarioContext) {
	steps.InitializePlanningScenario(ctx)
}
