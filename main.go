package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/pthm-cable/veil/config"
	"github.com/pthm-cable/veil/renderer"
	"github.com/pthm-cable/veil/renderer/window"
	"github.com/pthm-cable/veil/scene"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run without graphics")
	logStats := flag.Bool("log-stats", false, "Output stats via slog")
	statsWindow := flag.Float64("stats-window", 0, "Stats window size in seconds (0 = use config)")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	seed := flag.Int64("seed", 0, "Particle seed (0 = use config, -1 = time-based)")
	maxTicks := flag.Int64("max-ticks", 0, "Stop after N ticks (0 = unlimited)")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	particleSeed := *seed
	if particleSeed < 0 {
		particleSeed = time.Now().UnixNano()
	}

	opts := scene.Options{
		Seed:           particleSeed,
		LogStats:       *logStats,
		StatsWindowSec: *statsWindow,
		OutputDir:      *outputDir,
	}

	var backend renderer.Backend
	if *headless {
		backend = renderer.NewHeadless()
	} else {
		backend = window.New(cfg.Screen.TargetFPS)
	}

	s, err := scene.New(cfg, backend, opts)
	if err != nil {
		slog.Error("failed to mount scene", "error", err)
		os.Exit(1)
	}
	defer s.Unload()

	slog.Info("starting",
		"headless", *headless,
		"seed", particleSeed,
		"max_ticks", *maxTicks,
		"preset", s.Preset().Name,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	loop := scene.Loop{Scene: s, MaxTicks: *maxTicks}
	if err := loop.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		slog.Error("render loop failed", "error", err)
	}
	if *logStats {
		s.PerfStats().LogStats()
	}
}
