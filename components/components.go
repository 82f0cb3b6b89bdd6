// Package components defines ECS components and plain value types shared by
// the simulation, the game loop and the renderer.
package components

// Position represents a world position on the field plane.
// The field is centred on the origin; Y grows towards the bottom of the screen.
type Position struct {
	X, Y float32
}

// Velocity represents a direction of travel. Speed is applied by the system
// that moves the entity, so this is usually a unit or diagonal vector.
type Velocity struct {
	X, Y float32
}

// ProjectileType identifies what a projectile does on contact.
type ProjectileType uint8

const (
	ProjectilePlayer          ProjectileType = iota // Kills evil spores
	ProjectileGuardian                              // Reserved for the antagonist, never spawned by the field
	ProjectileGoodPortalSpawn                       // Stationary pickup that seeds a good portal
	ProjectileEvilPortalSpawn                       // Bounces around and turns an evil spore into a portal
)

// String returns the projectile type name.
func (t ProjectileType) String() string {
	switch t {
	case ProjectilePlayer:
		return "player"
	case ProjectileGuardian:
		return "guardian"
	case ProjectileGoodPortalSpawn:
		return "good_portal_spawn"
	case ProjectileEvilPortalSpawn:
		return "evil_portal_spawn"
	default:
		return "unknown"
	}
}

// Projectile holds per-projectile state.
type Projectile struct {
	Type    ProjectileType
	Bounces int32 // Border bounces so far
	Alive   bool  // Cleared when the projectile hits something; removed at end of update
}

// Color is a linear RGB colour in [0, 1].
type Color struct {
	R, G, B float32
}

// Scale returns the colour multiplied by f.
func (c Color) Scale(f float32) Color {
	return Color{R: c.R * f, G: c.G * f, B: c.B * f}
}

// LightSource is a point light emitted by portals, projectiles and the phase.
type LightSource struct {
	Position Position
	Height   float32 // Distance above the field plane
	Color    Color
	Radius   float32
}
