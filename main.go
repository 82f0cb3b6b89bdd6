package main

import (
	"flag"
	"log/slog"
	"os"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/sporefield/config"
	"github.com/pthm-cable/sporefield/game"
	"github.com/pthm-cable/sporefield/systems"
	"github.com/pthm-cable/sporefield/ui"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run without graphics")
	logStats := flag.Bool("log-stats", false, "Output stats via slog")
	statsWindow := flag.Float64("stats-window", 0, "Stats window size in seconds (0 = use config)")
	snapshotDir := flag.String("snapshot-dir", "", "Directory for bookmark snapshots")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	maxTicks := flag.Int("max-ticks", 0, "Stop after N ticks (0 = unlimited)")
	stepsPerUpdate := flag.Int("steps-per-update", 1, "Simulation ticks per update call (higher = faster headless runs)")
	levelPath := flag.String("level", "", "Level file (YAML or JSON) with the starting portals")
	loadPath := flag.String("load", "", "Saved field to start from")
	restorePath := flag.String("restore", "", "Snapshot JSON to resume from")
	savePath := flag.String("save", "field.sav", "Field file used by the debug panel Save and Load buttons")
	verbose := flag.Bool("v", false, "Debug logging")

	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	// JSON to stdout for structured logging
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	statsWindowSec := cfg.Telemetry.StatsWindow
	if *statsWindow > 0 {
		statsWindowSec = *statsWindow
	}

	opts := game.Options{
		Seed:           rngSeed,
		LogStats:       *logStats,
		StatsWindowSec: statsWindowSec,
		SnapshotDir:    *snapshotDir,
		OutputDir:      *outputDir,
		Headless:       *headless,
		StepsPerUpdate: *stepsPerUpdate,
		LoadPath:       *loadPath,
	}

	if *levelPath != "" {
		lvl, err := systems.LoadLevelFile(*levelPath)
		if err != nil {
			slog.Error("failed to load level", "path", *levelPath, "error", err)
			os.Exit(1)
		}
		opts.Level = lvl
	}

	if *headless {
		// Pure CPU simulation, no raylib window
		g := newGame(opts, *restorePath)
		defer g.Unload()

		slog.Info("starting headless simulation",
			"seed", rngSeed,
			"stats_window", statsWindowSec,
			"max_ticks", *maxTicks,
			"steps_per_update", *stepsPerUpdate,
		)

		for {
			g.UpdateHeadless()

			if *maxTicks > 0 && int(g.Tick()) >= *maxTicks {
				slog.Info("max ticks reached", "tick", g.Tick())
				return
			}
		}
	}

	rl.SetConfigFlags(rl.FlagWindowResizable)
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), "Spore Field")
	defer rl.CloseWindow()

	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))
	rl.SetExitKey(0)

	g := newGame(opts, *restorePath)
	defer g.Unload()

	app := ui.NewApp(g, ui.AppOptions{
		SavePath:    *savePath,
		SnapshotDir: *snapshotDir,
		MaxTicks:    int32(*maxTicks),
	})
	app.Run()
}

// newGame creates the game and resumes from a snapshot when one is given.
// Exits on failure.
func newGame(opts game.Options, restorePath string) *game.Game {
	g, err := game.NewGameWithOptions(opts)
	if err != nil {
		slog.Error("failed to create game", "error", err)
		os.Exit(1)
	}
	if restorePath != "" {
		if err := g.RestoreSnapshot(restorePath); err != nil {
			g.Unload()
			slog.Error("failed to restore snapshot", "path", restorePath, "error", err)
			os.Exit(1)
		}
	}
	return g
}
