package game

import (
	"fmt"
	"log/slog"

	"github.com/pthm-cable/sporefield/components"
	"github.com/pthm-cable/sporefield/systems"
)

// MovePlayer sets the direction the player accelerates in. A zero vector
// lets the player drift to a stop.
func (g *Game) MovePlayer(dir components.Velocity) {
	g.player.Input = dir
}

// FireProjectile launches a player shot from `from` along dir. Returns false
// while the firing cooldown runs, for a zero direction, or when the
// projectile cap is reached.
func (g *Game) FireProjectile(from components.Position, dir components.Velocity) bool {
	if g.player.FiringCooldown > 0 {
		return false
	}
	l := length(dir.X, dir.Y)
	if l == 0 {
		return false
	}
	dir.X /= l
	dir.Y /= l
	if _, ok := g.projectiles.Spawn(components.ProjectilePlayer, from, dir); !ok {
		return false
	}
	g.player.FiringCooldown = float32(g.state.Values.PlayerFiringCooldown)
	return true
}

// Fire shoots from the player towards target.
func (g *Game) Fire(target components.Position) bool {
	from := g.player.Position
	return g.FireProjectile(from, components.Velocity{X: target.X - from.X, Y: target.Y - from.Y})
}

// DropPortalSpawner turns the fully grown good spore under pos into a good
// portal. The spawner carried by the player is used first, otherwise the
// nearest good spawner within reach of pos is consumed.
func (g *Game) DropPortalSpawner(pos components.Position) bool {
	c := g.field.CellAtWorldPosition(pos)
	if c == nil || c.Type != systems.SporeGood || c.Size < float32(g.state.Values.MaxSporeSize) {
		return false
	}

	if g.player.Carrying {
		g.player.Carrying = false
	} else if !g.projectiles.PickupNearest(components.ProjectileGoodPortalSpawn, pos, float32(g.state.Values.GoodSpawnerProjectileSize)) {
		return false
	}

	g.field.ConvertToPortal(c)
	g.collector.RecordPortalSpawned()
	slog.Info("good portal placed", "x", c.X, "y", c.Y, "tick", g.tick)
	return true
}

// Interact picks up a good portal spawner next to the player, or drops the
// carried one onto the spore the player stands on.
func (g *Game) Interact() bool {
	if g.player.Carrying {
		return g.DropPortalSpawner(g.player.Position)
	}
	reach := float32(g.state.Values.GoodSpawnerProjectileSize)
	if !g.projectiles.PickupNearest(components.ProjectileGoodPortalSpawn, g.player.Position, reach) {
		return false
	}
	g.player.Carrying = true
	return true
}

// PlaceSpore is the debug spawn tool.
func (g *Game) PlaceSpore(pos components.Position, t systems.SporeType) error {
	_, err := g.field.SetCellAtWorldPosition(pos, t)
	return err
}

// SetPhase forces the day/night phase.
func (g *Game) SetPhase(p systems.Phase) {
	if g.state.Phase != p {
		g.collector.RecordPhaseChange()
	}
	g.state.SetPhase(p)
}

// ClearField empties the field, removes all projectiles and restarts the
// cycle at dawn.
func (g *Game) ClearField() {
	g.field.Clear()
	g.projectiles.Clear()
	g.state.Clear()
	g.player.Carrying = false
}

// SaveField writes the grid to path.
func (g *Game) SaveField(path string) error {
	if err := g.field.SaveFile(path); err != nil {
		return err
	}
	slog.Info("field saved", "path", path, "tick", g.tick)
	return nil
}

// LoadField replaces the grid with the one at path. Projectiles are dropped
// since the field may have changed size.
func (g *Game) LoadField(path string) error {
	if err := g.field.LoadFile(path); err != nil {
		return err
	}
	g.projectiles.Clear()
	g.player.Carrying = false
	g.clampPlayer()
	slog.Info("field loaded", "path", path, "width", g.field.Width(), "height", g.field.Height())
	return nil
}

// ApplyLevel resets the field to a level layout.
func (g *Game) ApplyLevel(lvl *systems.Level) error {
	if err := g.field.ApplyLevel(lvl); err != nil {
		return fmt.Errorf("applying level: %w", err)
	}
	g.projectiles.Clear()
	g.player.Carrying = false
	return nil
}

func (g *Game) clampPlayer() {
	b := g.field.Bounds()
	g.player.Position.X = clampf(g.player.Position.X, b.Left, b.Right)
	g.player.Position.Y = clampf(g.player.Position.Y, b.Top, b.Bottom)
}

// PhaseLight returns the ambient light of the current phase.
func (g *Game) PhaseLight() components.LightSource {
	light := components.LightSource{Radius: 30}
	if g.state.Phase == systems.PhaseDay {
		light.Color = components.Color{R: 1, G: 0.7, B: 0.3}
	} else {
		light.Color = components.Color{R: 0, G: 0, B: 1}
	}
	return light
}

// Lights collects every light source for the current frame. The returned
// slice is reused by the next call.
func (g *Game) Lights() []components.LightSource {
	g.lights = append(g.lights[:0], g.PhaseLight(), g.player.LightSource())
	g.lights = g.field.Lights(g.lights)
	g.lights = g.projectiles.Lights(g.lights)
	return g.lights
}
