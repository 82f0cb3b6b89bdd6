package game

import (
	"github.com/pthm-cable/sporefield/components"
	"github.com/pthm-cable/sporefield/systems"
)

// spawnTrigger lets the portals of the favoured faction emit portal spawners.
// By day good portals drop stationary spawners the player can carry; by
// night evil portals launch spawners that bounce around the field.
// Returns the number of spawners created.
func (g *Game) spawnTrigger() int {
	v := &g.state.Values
	chance := float32(v.EvilPortalSpawnerSpawnChance)
	spawned := 0

	cells := g.field.Cells()
	for i := range cells {
		c := &cells[i]
		switch {
		case g.state.Phase == systems.PhaseDay && c.Type == systems.SporeGoodPortal:
			if g.projectiles.CountByType(components.ProjectileGoodPortalSpawn) >= v.MaxNumGoodPortalSpawners {
				continue
			}
			if g.rng.Float32() >= chance {
				continue
			}
			if _, ok := g.projectiles.Spawn(components.ProjectileGoodPortalSpawn, c.World, components.Velocity{}); ok {
				spawned++
			}

		case g.state.Phase == systems.PhaseNight && c.Type == systems.SporeEvilPortal:
			if g.projectiles.CountByType(components.ProjectileEvilPortalSpawn) >= v.MaxNumEvilPortalSpawners {
				continue
			}
			if g.rng.Float32() >= chance {
				continue
			}
			dir := components.Velocity{X: g.randomSign(), Y: g.randomSign()}
			if _, ok := g.projectiles.Spawn(components.ProjectileEvilPortalSpawn, c.World, dir); ok {
				spawned++
			}
		}
	}
	return spawned
}

func (g *Game) randomSign() float32 {
	if g.rng.Float32() < 0.5 {
		return -1
	}
	return 1
}
