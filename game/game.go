// Package game runs a spore match: the day/night cycle, portal spawners,
// the player and the playing field, plus telemetry. It has no graphics
// dependency so matches can run headless.
package game

import (
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/sporefield/components"
	"github.com/pthm-cable/sporefield/config"
	"github.com/pthm-cable/sporefield/systems"
	"github.com/pthm-cable/sporefield/telemetry"
)

// Options configures a game instance.
type Options struct {
	Seed           int64   // RNG seed (0 = time based)
	LogStats       bool    // Log stats and bookmarks via slog
	StatsWindowSec float64 // Stats window in seconds (0 = use config)
	SnapshotDir    string  // Save a snapshot on every bookmark when set
	OutputDir      string  // CSV logs and config snapshot when set
	Headless       bool
	StepsPerUpdate int // Simulation ticks per update call

	Config   *config.Config // nil = config.Cfg()
	Level    *systems.Level // Starting layout instead of the default portals
	LoadPath string         // Saved field to start from

	StatsCallback func(telemetry.FieldStats)
}

// Game holds the complete match state.
type Game struct {
	cfg     *config.Config
	world   *ecs.World
	rng     *rand.Rand
	rngSeed int64

	state       *GameState
	field       *systems.PlayingField
	projectiles *systems.ProjectileSystem
	player      Player

	tick           int32
	paused         bool
	headless       bool
	stepsPerUpdate int

	// Telemetry
	collector        *telemetry.Collector
	perfCollector    *telemetry.PerfCollector
	bookmarkDetector *telemetry.BookmarkDetector
	outputManager    *telemetry.OutputManager
	sample           telemetry.FieldSample
	logStats         bool
	snapshotDir      string
	statsCallback    func(telemetry.FieldStats)

	lights []components.LightSource
}

// NewGameWithOptions creates a game, generates the playing field and sets up
// telemetry output.
func NewGameWithOptions(opts Options) (*Game, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Cfg()
	}

	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	steps := opts.StepsPerUpdate
	if steps < 1 {
		steps = 1
	}
	statsWindow := opts.StatsWindowSec
	if statsWindow <= 0 {
		statsWindow = cfg.Telemetry.StatsWindow
	}

	g := &Game{
		cfg:              cfg,
		world:            ecs.NewWorld(),
		rng:              rand.New(rand.NewSource(seed)),
		rngSeed:          seed,
		state:            NewGameState(cfg.Values),
		headless:         opts.Headless,
		stepsPerUpdate:   steps,
		collector:        telemetry.NewCollector(statsWindow, cfg.Derived.DT32),
		perfCollector:    telemetry.NewPerfCollector(cfg.Telemetry.PerfCollectorWindow),
		bookmarkDetector: telemetry.NewBookmarkDetector(cfg.Telemetry.BookmarkHistorySize, cfg.Bookmarks),
		logStats:         opts.LogStats,
		snapshotDir:      opts.SnapshotDir,
		statsCallback:    opts.StatsCallback,
	}

	// The field reads the live values so debug edits apply on the next tick
	g.field = systems.NewPlayingField(cfg.Field, &g.state.Values, g.rng)
	if err := g.field.Generate(cfg.Field.Width, cfg.Field.Height); err != nil {
		return nil, fmt.Errorf("generating field: %w", err)
	}
	g.projectiles = systems.NewProjectileSystem(g.world, g.field)

	if opts.Level != nil {
		if err := g.field.ApplyLevel(opts.Level); err != nil {
			return nil, fmt.Errorf("applying level: %w", err)
		}
	}
	if opts.LoadPath != "" {
		if err := g.field.LoadFile(opts.LoadPath); err != nil {
			return nil, fmt.Errorf("loading field: %w", err)
		}
	}

	om, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, err
	}
	g.outputManager = om
	if err := om.WriteConfig(cfg); err != nil {
		slog.Error("failed to write config", "error", err)
	}

	slog.Info("game created",
		"seed", seed,
		"width", g.field.Width(),
		"height", g.field.Height(),
		"deadzone", g.field.CountType(systems.SporeDeadzone),
	)

	return g, nil
}

// Update advances the simulation unless paused. Called once per frame in
// graphical mode.
func (g *Game) Update() {
	g.perfCollector.RecordFrame()
	if g.paused {
		return
	}
	for i := 0; i < g.stepsPerUpdate; i++ {
		g.simulationStep()
	}
}

// UpdateHeadless runs stepsPerUpdate ticks regardless of pause state.
func (g *Game) UpdateHeadless() {
	for i := 0; i < g.stepsPerUpdate; i++ {
		g.simulationStep()
	}
}

// Step runs exactly one tick. Used to single-step while paused.
func (g *Game) Step() {
	g.simulationStep()
}

// simulationStep runs one fixed tick: projectiles and player, spawn trigger,
// phase cycle, playing field, then telemetry.
func (g *Game) simulationStep() {
	dt := g.cfg.Derived.DT32
	g.perfCollector.StartTick()

	g.perfCollector.StartPhase(telemetry.PhaseProjectiles)
	g.player.Update(dt, g.field.Bounds())
	g.collector.RecordProjectiles(g.projectiles.Update(dt))

	g.perfCollector.StartPhase(telemetry.PhaseSpawning)
	if g.state.AdvanceSpawnTimer(dt) {
		g.spawnTrigger()
	}

	g.perfCollector.StartPhase(telemetry.PhaseCycle)
	if g.state.AdvancePhase(dt) {
		g.collector.RecordPhaseChange()
		slog.Debug("phase changed", "phase", g.state.Phase.String(), "tick", g.tick)
	}

	g.perfCollector.StartPhase(telemetry.PhaseField)
	g.collector.RecordUpdate(g.field.Update(dt, g.state.Phase))

	g.tick++

	g.perfCollector.StartPhase(telemetry.PhaseTelemetry)
	g.flushTelemetry()

	g.perfCollector.EndTick()
}

// Unload releases resources and closes telemetry output.
func (g *Game) Unload() {
	if err := g.outputManager.Close(); err != nil {
		slog.Error("failed to close output", "error", err)
	}
}

// Tick returns the current simulation tick.
func (g *Game) Tick() int32 { return g.tick }

// Seed returns the RNG seed the game was created with.
func (g *Game) Seed() int64 { return g.rngSeed }

// Config returns the configuration the game was created with.
func (g *Game) Config() *config.Config { return g.cfg }

// Field returns the playing field.
func (g *Game) Field() *systems.PlayingField { return g.field }

// Projectiles returns the projectile system.
func (g *Game) Projectiles() *systems.ProjectileSystem { return g.projectiles }

// State returns the live game state. Edits to its values apply on the next tick.
func (g *Game) State() *GameState { return g.state }

// Player returns the player.
func (g *Game) Player() *Player { return &g.player }

// Headless reports whether the game runs without graphics.
func (g *Game) Headless() bool { return g.headless }

// Paused reports whether Update is currently a no-op.
func (g *Game) Paused() bool { return g.paused }

// TogglePause pauses or resumes the simulation.
func (g *Game) TogglePause() { g.paused = !g.paused }

// PerfStats returns the rolling timing averages.
func (g *Game) PerfStats() telemetry.PerfStats { return g.perfCollector.Stats() }
