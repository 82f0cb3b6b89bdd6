// Package renderer draws the playing field, its lights and projectiles with
// raylib primitives.
package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/sporefield/components"
	"github.com/pthm-cable/sporefield/systems"
)

// Stack index at which fresh growth reaches full highlight.
const stackBrightSpan = 10

// Palette holds the colors for each spore type.
type Palette struct {
	Background rl.Color
	Grid       rl.Color
	Deadzone   rl.Color
	Good       rl.Color
	GoodPortal rl.Color
	Evil       rl.Color
	EvilPortal rl.Color
	EvilDead   rl.Color
	Player     rl.Color
	Shot       rl.Color
}

// DefaultPalette returns the standard colors.
func DefaultPalette() Palette {
	return Palette{
		Background: rl.Color{R: 12, G: 14, B: 20, A: 255},
		Grid:       rl.Color{R: 40, G: 46, B: 58, A: 255},
		Deadzone:   rl.Color{R: 24, G: 24, B: 28, A: 255},
		Good:       rl.Color{R: 120, G: 200, B: 90, A: 255},
		GoodPortal: rl.Color{R: 255, G: 210, B: 110, A: 255},
		Evil:       rl.Color{R: 150, G: 60, B: 190, A: 255},
		EvilPortal: rl.Color{R: 90, G: 70, B: 255, A: 255},
		EvilDead:   rl.Color{R: 90, G: 80, B: 90, A: 255},
		Player:     rl.Color{R: 255, G: 180, B: 80, A: 255},
		Shot:       rl.Color{R: 255, G: 240, B: 200, A: 255},
	}
}

// SporeColor returns the fill color of a spore. Higher stack indices are
// drawn slightly brighter so fresh growth stands out.
func (p Palette) SporeColor(t systems.SporeType, stackIndex float32) rl.Color {
	var c rl.Color
	switch t {
	case systems.SporeGood:
		c = p.Good
	case systems.SporeGoodPortal:
		return p.GoodPortal
	case systems.SporeEvil:
		c = p.Evil
	case systems.SporeEvilPortal:
		return p.EvilPortal
	case systems.SporeEvilDead:
		return p.EvilDead
	case systems.SporeDeadzone:
		return p.Deadzone
	default:
		return p.Grid
	}
	return rl.ColorBrightness(c, min(stackIndex/stackBrightSpan, 1)*0.3)
}

// ProjectileColor returns the color of a projectile type.
func (p Palette) ProjectileColor(t components.ProjectileType) rl.Color {
	switch t {
	case components.ProjectileGoodPortalSpawn:
		return p.GoodPortal
	case components.ProjectileEvilPortalSpawn:
		return p.EvilPortal
	}
	return p.Shot
}

// LightColor converts a light color to raylib with the given alpha.
func LightColor(c components.Color, alpha float32) rl.Color {
	return rl.Color{
		R: channel(c.R),
		G: channel(c.G),
		B: channel(c.B),
		A: channel(alpha),
	}
}

func channel(v float32) uint8 {
	return uint8(min(max(v, 0), 1) * 255)
}
