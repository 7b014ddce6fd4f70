package main

import (
	"flag"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/xyproto/randomstring"

	"github.com/dgbarclay/elevator-algorithm/src/building"
	"github.com/dgbarclay/elevator-algorithm/src/config"
	"github.com/dgbarclay/elevator-algorithm/src/dispatch"
	"github.com/dgbarclay/elevator-algorithm/src/logger"
	"github.com/dgbarclay/elevator-algorithm/src/report"
	"github.com/dgbarclay/elevator-algorithm/src/runner"
	"github.com/dgbarclay/elevator-algorithm/src/types"
)

func main() {
	configPath := flag.String("config", "", "YAML config file")
	envFile := flag.String("env", ".env", "env file with LIFTSIM_* overrides")
	floors := flag.Int("floors", config.DefaultFloors, "number of floors")
	seed := flag.Int64("seed", 0, "demand generator seed (default: current time)")
	parallel := flag.Bool("parallel", false, "run the policies concurrently")
	delay := flag.Duration("delay", config.StepDelay, "pause after every floor-stop, 0 to disable")
	step := flag.Bool("step", false, "wait for a key press after every floor-stop")
	verbose := flag.Bool("v", false, "log every floor-stop")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err == nil {
		cfg, err = config.ApplyEnv(cfg, *envFile)
	}
	if err != nil {
		fail(err)
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "floors":
			cfg.Floors = *floors
		case "seed":
			cfg.Seed = *seed
		case "parallel":
			cfg.Parallel = *parallel
		case "delay":
			cfg.StepDelay = *delay
		case "v":
			if *verbose {
				cfg.LogLevel = "debug"
			}
		}
	})
	if err := cfg.Validate(); err != nil {
		fail(err)
	}
	if err := logger.Configure(logger.ParseLevel(cfg.LogLevel), cfg.LogFile); err != nil {
		fail(err)
	}
	randomstring.Seed()

	if err := run(cfg, *step); err != nil {
		fail(err)
	}
	logger.Close()
}

// run compares the configured policies on one generated building and prints the summary.
func run(cfg config.Config, step bool) error {
	log := logger.Get()
	policies, err := dispatch.PoliciesByName(cfg.Policies)
	if err != nil {
		return err
	}

	board := report.StartBoard(os.Stdout)
	defer board.Close()
	var sink report.Sink = report.Multi{report.LogSink{Log: log}, board}
	if step {
		keys, err := report.OpenKeyStep(sink)
		if err != nil {
			return fmt.Errorf("open keyboard: %w", err)
		}
		defer keys.Close()
		sink = keys
	} else if cfg.StepDelay > 0 {
		sink = &report.Paced{Next: sink, Delay: cfg.StepDelay}
	}

	log.Info().
		Int64("seed", cfg.Seed).
		Int("floors", cfg.Floors).
		Int("capacity", cfg.Capacity).
		Strs("policies", cfg.Policies).
		Bool("parallel", cfg.Parallel).
		Msg("Starting comparison")

	start := time.Now()
	initial, results, err := runner.CompareGenerated(
		building.NewGenerator(cfg.Seed, cfg.MaxArrivals),
		cfg.Floors,
		policies,
		sink,
		runner.Options{Capacity: cfg.Capacity, MaxSteps: cfg.MaxSteps, Parallel: cfg.Parallel},
	)
	if err != nil {
		return err
	}
	log.Info().Dur("elapsed", time.Since(start)).Int("passengers", initial.Waiting()).Msg("Comparison finished")
	printSummary(results)
	return nil
}

func printSummary(results []types.Result) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "POLICY\tRUN\tCAPACITY\tMOVES\tDELIVERED\tSTOPS\tREVERSALS")
	for _, res := range results {
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%d\t%d\t%d\n",
			res.Policy, res.RunID, res.Capacity, res.Lift.TotalMoves, res.Delivered, res.Stops, res.Reversals)
	}
	w.Flush()
}

func fail(err error) {
	logger.Get().Error().Err(err).Msg("Lift simulation failed")
	logger.Close()
	os.Exit(1)
}
