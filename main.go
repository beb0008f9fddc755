package main

import (
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/pthm-cable/roost/config"
	"github.com/pthm-cable/roost/sim"
	"github.com/pthm-cable/roost/telemetry"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	steps := flag.Int("steps", 0, "Run length in steps (0 = use config)")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	snapshotDir := flag.String("snapshot-dir", "", "Directory for JSON step snapshots")
	snapshotEvery := flag.Int("snapshot-every", 0, "Steps between snapshots (0 = disabled)")
	snapshotField := flag.Bool("snapshot-field", false, "Include the prey field grid in snapshots")
	logStats := flag.Bool("log-stats", false, "Log window stats via slog")

	flag.Parse()

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	maxSteps := cfg.Sim.Steps
	if *steps > 0 {
		maxSteps = *steps
	}

	output, err := telemetry.NewOutputManager(*outputDir)
	if err != nil {
		slog.Error("failed to create output manager", "error", err)
		os.Exit(1)
	}
	defer output.Close()

	if err := output.WriteConfig(cfg); err != nil {
		slog.Error("failed to write config snapshot", "error", err)
		os.Exit(1)
	}

	s := sim.New(sim.Options{Seed: rngSeed})

	slog.Info("starting simulation",
		"seed", rngSeed,
		"steps", maxSteps,
		"population", cfg.Population.Initial,
		"patches", cfg.Patches.Count,
		"cycle_length", cfg.Clock.CycleLength,
	)

	for s.Tick() < maxSteps {
		s.Step()

		if s.Collector().ShouldFlush(s.Tick()) {
			stats := s.FlushStats()
			if err := output.WriteStats(stats); err != nil {
				slog.Error("failed to write stats", "error", err)
				os.Exit(1)
			}
			if *logStats {
				slog.Info("window",
					"step", stats.WindowEnd,
					"day", stats.Day,
					"living", stats.Living,
					"deaths", stats.Deaths,
					"forage_events", stats.ForageEvents,
					"prey_consumed", stats.PreyConsumed,
					"cal_mean", stats.CalorieMean,
				)
			}
		}

		if *snapshotEvery > 0 && *snapshotDir != "" && s.Tick()%*snapshotEvery == 0 {
			snap := s.Snapshot(*snapshotField)
			if _, err := telemetry.SaveSnapshot(snap, *snapshotDir); err != nil {
				slog.Error("failed to save snapshot", "error", err)
				os.Exit(1)
			}
		}

		if s.Living() == 0 {
			slog.Warn("population extinct", "step", s.Tick(), "day", s.Day())
			break
		}
	}

	slog.Info("simulation finished",
		"steps", s.Tick(),
		"days", s.Day(),
		"living", s.Living(),
		"deaths", s.Deaths(),
	)
}
