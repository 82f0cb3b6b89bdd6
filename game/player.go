package game

import (
	"math"

	"github.com/pthm-cable/sporefield/components"
)

// Player movement, in world units per tick.
const (
	playerAccel = 0.2 * 0.05
	playerDrag  = 0.02
)

// Player is the avatar that shoots evil spores and carries good portal
// spawners.
type Player struct {
	Position       components.Position
	Velocity       components.Velocity
	Input          components.Velocity // Desired direction, set by input each frame
	FiringCooldown float32
	Carrying       bool // Holds a good portal spawner
}

// Update applies input, moves the player and keeps it on the field.
func (p *Player) Update(dt float32, bounds components.BoundingBox) {
	if p.FiringCooldown > 0 {
		p.FiringCooldown = max(p.FiringCooldown-dt, 0)
	}

	if l := length(p.Input.X, p.Input.Y); l > 0 {
		p.Velocity.X += p.Input.X / l * playerAccel
		p.Velocity.Y += p.Input.Y / l * playerAccel
	}

	p.Position.X = clampf(p.Position.X+p.Velocity.X, bounds.Left, bounds.Right)
	p.Position.Y = clampf(p.Position.Y+p.Velocity.Y, bounds.Top, bounds.Bottom)

	p.Velocity.X -= p.Velocity.X * playerDrag
	p.Velocity.Y -= p.Velocity.Y * playerDrag
}

// LightSource returns the warm glow around the player.
func (p *Player) LightSource() components.LightSource {
	return components.LightSource{
		Position: p.Position,
		Height:   1.4,
		Color:    components.Color{R: 1, G: 0.7, B: 0.3},
		Radius:   3,
	}
}

func length(x, y float32) float32 {
	return float32(math.Hypot(float64(x), float64(y)))
}

func clampf(v, lo, hi float32) float32 {
	return min(max(v, lo), hi)
}
