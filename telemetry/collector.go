// Package telemetry provides match statistics, bookmarking, and snapshots.
package telemetry

import "github.com/pthm-cable/sporefield/systems"

// Collector accumulates events within time windows and produces FieldStats.
type Collector struct {
	windowDurationSec   float64
	windowDurationTicks int32
	dt                  float32

	// Current window tracking
	windowStartTick int32

	// Event counters for current window
	growth       systems.UpdateReport
	projectiles  systems.ProjectileReport
	phaseChanges int
}

// NewCollector creates a new stats collector.
// windowDurationSec: how long each stats window lasts in simulation seconds
// dt: seconds per tick (used for tick-to-time conversion)
func NewCollector(windowDurationSec float64, dt float32) *Collector {
	ticksPerWindow := int32(windowDurationSec / float64(dt))
	if ticksPerWindow < 1 {
		ticksPerWindow = 1
	}

	return &Collector{
		windowDurationSec:   windowDurationSec,
		windowDurationTicks: ticksPerWindow,
		dt:                  dt,
	}
}

// RecordUpdate records the growth events of one field update.
func (c *Collector) RecordUpdate(r systems.UpdateReport) {
	c.growth.Add(r)
}

// RecordProjectiles records the outcome of one projectile update.
func (c *Collector) RecordProjectiles(r systems.ProjectileReport) {
	c.projectiles.SporesKilled += r.SporesKilled
	c.projectiles.SpawnersShot += r.SpawnersShot
	c.projectiles.PortalsSpawned += r.PortalsSpawned
	c.projectiles.Expired += r.Expired
	c.projectiles.SpawnerBounces += r.SpawnerBounces
}

// RecordPortalSpawned records a portal created outside the projectile system,
// such as a dropped good spawner.
func (c *Collector) RecordPortalSpawned() {
	c.projectiles.PortalsSpawned++
}

// RecordPhaseChange records a day/night flip.
func (c *Collector) RecordPhaseChange() {
	c.phaseChanges++
}

// ShouldFlush returns true if enough ticks have passed to flush the window.
func (c *Collector) ShouldFlush(currentTick int32) bool {
	return currentTick-c.windowStartTick >= c.windowDurationTicks
}

// Flush produces a FieldStats and resets counters for the next window.
func (c *Collector) Flush(currentTick int32, phase systems.Phase, sample FieldSample) FieldStats {
	stats := FieldStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,
		SimTimeSec:      float64(currentTick) * float64(c.dt),
		Phase:           phase.String(),

		Empty:       sample.Counts[systems.SporeEmpty],
		Good:        sample.Counts[systems.SporeGood],
		GoodPortals: sample.Counts[systems.SporeGoodPortal],
		Evil:        sample.Counts[systems.SporeEvil],
		EvilPortals: sample.Counts[systems.SporeEvilPortal],
		EvilDead:    sample.Counts[systems.SporeEvilDead],
		Deadzone:    sample.Counts[systems.SporeDeadzone],

		GoodCoverage: sample.Coverage(systems.SporeGood),
		EvilCoverage: sample.Coverage(systems.SporeEvil),

		Spawned:     c.growth.Spawned,
		Grown:       c.growth.Grown,
		TakenOver:   c.growth.TakenOver,
		Resurrected: c.growth.Resurrected,
		Converted:   c.growth.Converted,

		SporesKilled:   c.projectiles.SporesKilled,
		SpawnersShot:   c.projectiles.SpawnersShot,
		PortalsSpawned: c.projectiles.PortalsSpawned,
		PhaseChanges:   c.phaseChanges,

		GoodBiomass: TotalSize(sample.GoodSizes),
		EvilBiomass: TotalSize(sample.EvilSizes),
	}
	stats.GoodSizeMean, stats.GoodSizeStd, stats.GoodSizeP50 = ComputeSizeStats(sample.GoodSizes)
	stats.EvilSizeMean, stats.EvilSizeStd, stats.EvilSizeP50 = ComputeSizeStats(sample.EvilSizes)

	// Reset for next window
	c.windowStartTick = currentTick
	c.growth = systems.UpdateReport{}
	c.projectiles = systems.ProjectileReport{}
	c.phaseChanges = 0

	return stats
}

// WindowDurationTicks returns the number of ticks per window.
func (c *Collector) WindowDurationTicks() int32 {
	return c.windowDurationTicks
}
