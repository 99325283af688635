package cmd

import (
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	sim "github.com/stratus-sim/stratus-sim/sim"
	"github.com/stratus-sim/stratus-sim/sim/policy"
)

var (
	// CLI flags for the scenario run
	configPath string  // Path to the YAML scenario file
	seed       int64   // Override for the scenario seed (jitter reproducibility)
	horizon    float64 // Override for the simulation horizon (in seconds)
	placement  string  // Placement policy name
	logLevel   string  // Log verbosity level
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "stratus-sim",
	Short: "Discrete-event simulator core for cloud infrastructure capacity accounting",
}

// runCmd executes a scenario using parameters from CLI flags
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a simulation scenario",
	Run: func(cmd *cobra.Command, args []string) {
		// Set up logging
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)

		if configPath == "" {
			logrus.Fatalf("Scenario file not provided. Exiting simulation.")
		}

		spec, err := sim.LoadScenario(configPath)
		if err != nil {
			logrus.Fatalf("unable to read scenario: %v", err)
		}
		if cmd.Flags().Changed("seed") {
			spec.Seed = seed
		}
		if cmd.Flags().Changed("horizon") {
			spec.Horizon = horizon
		}

		logrus.Infof("Starting simulation with %d devices, %d compute units, horizon=%.1fs, seed=%d",
			len(spec.Devices), len(spec.ComputeUnits), spec.Horizon, spec.Seed)

		startTime := time.Now()

		simulator, err := spec.BuildSimulator(policy.NewPlacementPolicy(placement))
		if err != nil {
			logrus.Fatalf("unable to build simulator: %v", err)
		}
		simulator.Run()
		simulator.Metrics.Print()

		logrus.Infof("Simulation complete in %v.", time.Since(startTime))
	},
}

func init() {
	runCmd.Flags().StringVar(&configPath, "config", "", "path to YAML scenario file")
	runCmd.Flags().Int64Var(&seed, "seed", 0, "override scenario seed")
	runCmd.Flags().Float64Var(&horizon, "horizon", 0, "override simulation horizon in seconds (0 = unbounded)")
	runCmd.Flags().StringVar(&placement, "placement", "first-fit", "placement policy: first-fit, best-fit, none")
	runCmd.Flags().StringVar(&logLevel, "log-level", "info", "log level: debug, info, warn, error")
	rootCmd.AddCommand(runCmd)
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
