// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	Field     FieldConfig     `yaml:"field"`
	Values    Values          `yaml:"values"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
	Bookmarks BookmarksConfig `yaml:"bookmarks"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// FieldConfig holds playing field geometry and growth search parameters.
type FieldConfig struct {
	Width             int     `yaml:"width"`               // Cells along X
	Height            int     `yaml:"height"`              // Cells along Y
	CellSpacing       float64 `yaml:"cell_spacing"`        // World units between cell centres
	Jitter            float64 `yaml:"jitter"`              // Max random offset of a cell's visual position (0 = grid aligned)
	MaxRingDistance   int     `yaml:"max_ring_distance"`   // Outermost ring searched by portal growth
	GrowthChanceStep  float64 `yaml:"growth_chance_step"`  // Percent lost per ring beyond the first
	GrowthChanceFloor float64 `yaml:"growth_chance_floor"` // Minimum growth percent at any ring
}

// Values holds the tunable game state values. These can be changed live by
// the debug panel; the playing field reads them every tick.
type Values struct {
	MaxNumProjectiles              int     `yaml:"max_num_projectiles"`
	PlayingFieldDeadzone           float64 `yaml:"playing_field_deadzone"`
	MaxSporeSize                   float64 `yaml:"max_spore_size"`
	MaxGrowthDistanceToPortal      float64 `yaml:"max_growth_distance_to_portal"` // Legacy, not used by ring growth
	MaxNumGoodPortalSpawners       int     `yaml:"max_num_good_portal_spawners"`
	MaxNumEvilPortalSpawners       int     `yaml:"max_num_evil_portal_spawners"`
	GrowthSpeedFast                float64 `yaml:"growth_speed_fast"`
	GrowthSpeedSlow                float64 `yaml:"growth_speed_slow"`
	PhaseDuration                  float64 `yaml:"phase_duration"`
	PhaseSpeed                     float64 `yaml:"phase_speed"` // Phase timer drain per simulated second
	SpawnTimer                     float64 `yaml:"spawn_timer"`
	GoodSpawnerProjectileSize      float64 `yaml:"good_spawner_projectile_size"`
	EvilPortalSpawnerSpawnChance   float64 `yaml:"evil_portal_spawner_spawn_chance"`
	EvilPortalSpawnerSpeed         float64 `yaml:"evil_portal_spawner_speed"`
	EvilSpawnerProjectileSize      float64 `yaml:"evil_spawner_projectile_size"`
	EvilDeadSporeLife              float64 `yaml:"evil_dead_spore_life"`
	EvilDeadSporeRessurectionSpeed float64 `yaml:"evil_dead_spore_ressurection_speed"`
	PlayerFiringCooldown           float64 `yaml:"player_firing_cooldown"`
	PlayerProjectileSpeed          float64 `yaml:"player_projectile_speed"`
	PortalGrowthSpeedFast          float64 `yaml:"portal_growth_speed_fast"`
	PortalGrowthSpeedSlow          float64 `yaml:"portal_growth_speed_slow"`
	PortalGrowTimer                float64 `yaml:"portal_grow_timer"`
	PortalGrowthFactorGood         float64 `yaml:"portal_growth_factor_good"` // Difficulty knob
	PortalGrowthFactorEvil         float64 `yaml:"portal_growth_factor_evil"` // Difficulty knob
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	DT                  float64 `yaml:"dt"` // Fixed seconds per tick
	StatsWindow         float64 `yaml:"stats_window"`
	BookmarkHistorySize int     `yaml:"bookmark_history_size"`
	PerfCollectorWindow int     `yaml:"perf_collector_window"`
}

// BookmarksConfig holds bookmark detection thresholds.
type BookmarksConfig struct {
	LeadChange      LeadChangeConfig      `yaml:"lead_change"`
	FactionCollapse FactionCollapseConfig `yaml:"faction_collapse"`
}

// LeadChangeConfig holds lead change detection parameters.
type LeadChangeConfig struct {
	MinMargin int `yaml:"min_margin"` // Cells the new leader must be ahead by
}

// FactionCollapseConfig holds faction collapse detection parameters.
type FactionCollapseConfig struct {
	DropPercent float64 `yaml:"drop_percent"`
	MinDrop     int     `yaml:"min_drop"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	DT32                 float32 // Telemetry.DT as float32
	WorldW32             float32 // Field width in world units
	WorldH32             float32 // Field height in world units
	ScreenW32, ScreenH32 float32
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Default returns a fresh copy of the embedded defaults.
func Default() *Config {
	cfg, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("config: embedded defaults are invalid: %v", err))
	}
	return cfg
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	cfg.computeDerived()

	return cfg, nil
}

// Clone returns a deep copy of the configuration.
func (c *Config) Clone() *Config {
	cp := *c
	return &cp
}

func (c *Config) validate() error {
	if c.Field.Width <= 0 || c.Field.Height <= 0 {
		return fmt.Errorf("field dimensions must be positive, got %dx%d", c.Field.Width, c.Field.Height)
	}
	if c.Field.CellSpacing <= 0 {
		return fmt.Errorf("field cell_spacing must be positive, got %v", c.Field.CellSpacing)
	}
	if c.Field.MaxRingDistance < 1 {
		return fmt.Errorf("field max_ring_distance must be at least 1, got %d", c.Field.MaxRingDistance)
	}
	if c.Telemetry.DT <= 0 {
		return fmt.Errorf("telemetry dt must be positive, got %v", c.Telemetry.DT)
	}
	return nil
}

// Refresh recomputes derived values after fields were changed in code.
func (c *Config) Refresh() {
	c.computeDerived()
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.DT32 = float32(c.Telemetry.DT)
	c.Derived.ScreenW32 = float32(c.Screen.Width)
	c.Derived.ScreenH32 = float32(c.Screen.Height)

	spacing := float32(c.Field.CellSpacing)
	c.Derived.WorldW32 = float32(c.Field.Width) * spacing
	c.Derived.WorldH32 = float32(c.Field.Height) * spacing
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
