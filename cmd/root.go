package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/racesim/skill-ranker/sim"

	// Registers the simulation kernels behind sim.NewKernel.
	_ "github.com/racesim/skill-ranker/sim/kernel"
)

var (
	// CLI flags for the run command
	configPath    string  // Path to the YAML run config
	logLevel      string  // Log verbosity level
	seed          int64   // Base seed for deterministic runs
	deterministic bool    // Derive every dispatch seed from --seed
	concurrency   int     // Max workers in flight
	ciPercent     float64 // Confidence level for CILower/CIUpper
	increment     int     // Samples added per candidate per phase
	traceLevel    string  // Decision trace verbosity
	outputFormat  string  // table or json
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "skill-ranker",
	Short: "Rank candidate skills by simulated length gained per skill-point cost",
}

// runCmd ranks the candidates of a run config and prints the final table
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a successive-elimination ranking",
	Run: func(cmd *cobra.Command, args []string) {
		setLogLevel(logLevel)

		cfg, err := LoadRunConfig(configPath)
		if err != nil {
			logrus.Fatalf("Unable to load run config: %v", err)
		}
		if err := applyRunFlags(cmd, cfg); err != nil {
			logrus.Fatalf("Invalid flags: %v", err)
		}

		run, err := newRankRun(cfg, nil)
		if err != nil {
			logrus.Fatalf("Unable to start ranking: %v", err)
		}

		logrus.Infof("Ranking %d candidates on %d course(s), concurrency=%d, deterministic=%v",
			len(cfg.Candidates), len(cfg.Courses), run.scheduler.Concurrency(), cfg.Scheduler.Deterministic)
		startTime := time.Now()

		results, err := run.scheduler.Run(logEvents)
		if err != nil {
			logrus.Fatalf("Ranking failed: %v", err)
		}

		switch outputFormat {
		case "json":
			err = printJSON(os.Stdout, results)
		default:
			err = printResults(os.Stdout, results)
		}
		if err != nil {
			logrus.Fatalf("Unable to print results: %v", err)
		}
		printTraceSummary(os.Stdout, run.trace)

		logrus.Infof("Ranking complete in %v.", time.Since(startTime).Round(time.Millisecond))
	},
}

// setLogLevel parses level or exits.
func setLogLevel(level string) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		logrus.Fatalf("Invalid log level: %s", level)
	}
	logrus.SetLevel(lvl)
}

// applyRunFlags overrides config values with the flags set on the command line.
func applyRunFlags(cmd *cobra.Command, cfg *RunConfig) error {
	flags := cmd.Flags()
	if flags.Changed("seed") {
		cfg.Scheduler.Seed = seed
	}
	if flags.Changed("deterministic") {
		cfg.Scheduler.Deterministic = deterministic
	}
	if flags.Changed("concurrency") {
		cfg.Scheduler.Concurrency = concurrency
	}
	if flags.Changed("ci") {
		cfg.Scheduler.CIPercent = ciPercent
	}
	if flags.Changed("increment") {
		cfg.Scheduler.Increment = increment
	}
	if flags.Changed("trace-level") {
		cfg.Scheduler.TraceLevel = traceLevel
	}
	if outputFormat != "table" && outputFormat != "json" {
		return fmt.Errorf("unknown output format %q (valid: table, json)", outputFormat)
	}
	if err := validate.Struct(cfg); err != nil {
		return toConfigurationError(err)
	}
	return nil
}

// logEvents mirrors scheduler progress into the log.
func logEvents(e sim.Event) {
	switch e.Type {
	case sim.EventResult:
		logrus.Debugf("%s: %d samples, mean %.3f", e.Result.SkillID, e.Result.NumSimulations, e.Result.MeanLength)
	case sim.EventInfo:
		logrus.Info(e.Info)
	case sim.EventError:
		logrus.Error(e.Error)
	}
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	runCmd.Flags().StringVar(&configPath, "config", "", "Path to the YAML run config")
	_ = runCmd.MarkFlagRequired("config")
	runCmd.Flags().StringVar(&logLevel, "log", "warn", "Log level (trace, debug, info, warn, error, fatal, panic)")
	runCmd.Flags().Int64Var(&seed, "seed", 0, "Base seed for deterministic runs")
	runCmd.Flags().BoolVar(&deterministic, "deterministic", false, "Derive every dispatch seed from --seed")
	runCmd.Flags().IntVar(&concurrency, "concurrency", 0, "Max concurrent workers (0 = number of CPUs)")
	runCmd.Flags().Float64Var(&ciPercent, "ci", 95, "Confidence level in percent for the reported interval")
	runCmd.Flags().IntVar(&increment, "increment", 100, "Samples added per candidate in each phase")
	runCmd.Flags().StringVar(&traceLevel, "trace-level", "none", "Elimination trace level (none, phases, decisions)")
	runCmd.Flags().StringVar(&outputFormat, "output", "table", "Output format (table, json)")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(serveCmd)
}
