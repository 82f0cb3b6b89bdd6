package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/sporefield/camera"
	"github.com/pthm-cable/sporefield/components"
	"github.com/pthm-cable/sporefield/systems"
)

// World radius of a player shot.
const shotRadius = 0.12

// ProjectileRenderer draws projectiles and the player.
type ProjectileRenderer struct {
	Palette Palette
}

// NewProjectileRenderer creates a projectile renderer with the default palette.
func NewProjectileRenderer() *ProjectileRenderer {
	return &ProjectileRenderer{Palette: DefaultPalette()}
}

// Draw renders every live projectile. Spawners are drawn at their pickup or
// hit radius.
func (r *ProjectileRenderer) Draw(ps *systems.ProjectileSystem, goodSize, evilSize float32, cam *camera.Camera) {
	ps.Each(func(pos components.Position, proj components.Projectile) {
		radius := float32(shotRadius)
		switch proj.Type {
		case components.ProjectileGoodPortalSpawn:
			radius = goodSize
		case components.ProjectileEvilPortalSpawn:
			radius = evilSize
		}
		if !cam.IsVisible(pos.X, pos.Y, radius) {
			return
		}
		sx, sy := cam.WorldToScreen(pos.X, pos.Y)
		px := max(radius*cam.Zoom, 2)
		color := r.Palette.ProjectileColor(proj.Type)

		rl.DrawCircle(int32(sx), int32(sy), px, color)
		if proj.Type == components.ProjectileGoodPortalSpawn {
			// Ring marks pickups
			rl.DrawCircleLines(int32(sx), int32(sy), px*1.6, rl.Fade(color, 0.6))
		}
	})
}

// DrawPlayer renders the player, with the carried spawner on top.
func (r *ProjectileRenderer) DrawPlayer(pos components.Position, carrying bool, cam *camera.Camera) {
	sx, sy := cam.WorldToScreen(pos.X, pos.Y)
	px := max(0.3*cam.Zoom, 4)
	rl.DrawCircle(int32(sx), int32(sy), px, r.Palette.Player)
	rl.DrawCircleLines(int32(sx), int32(sy), px, rl.RayWhite)
	if carrying {
		rl.DrawCircle(int32(sx), int32(sy-px*1.4), px*0.4, r.Palette.GoodPortal)
	}
}

// DrawAim draws a line from the player towards the aim point.
func (r *ProjectileRenderer) DrawAim(from, to components.Position, ready bool, cam *camera.Camera) {
	x0, y0 := cam.WorldToScreen(from.X, from.Y)
	x1, y1 := cam.WorldToScreen(to.X, to.Y)
	color := rl.Fade(r.Palette.Shot, 0.15)
	if ready {
		color = rl.Fade(r.Palette.Shot, 0.4)
	}
	rl.DrawLineV(rl.Vector2{X: x0, Y: y0}, rl.Vector2{X: x1, Y: y1}, color)
}
