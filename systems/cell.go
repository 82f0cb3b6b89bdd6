// Package systems holds the playing field simulation and the ECS systems
// that act on it.
package systems

import (
	"github.com/pthm-cable/sporefield/components"
)

// SporeType identifies what occupies a cell. The ordinal values are part of
// the save file format and must not be reordered.
type SporeType uint32

const (
	SporeEmpty SporeType = iota
	SporeGood
	SporeGoodPortal
	SporeEvil
	SporeEvilPortal
	SporeEvilDead
	SporeDeadzone

	numSporeTypes
)

// NumSporeTypes is the number of valid spore types.
const NumSporeTypes = int(numSporeTypes)

var sporeTypeNames = [...]string{
	SporeEmpty:      "empty",
	SporeGood:       "good",
	SporeGoodPortal: "good_portal",
	SporeEvil:       "evil",
	SporeEvilPortal: "evil_portal",
	SporeEvilDead:   "evil_dead",
	SporeDeadzone:   "deadzone",
}

// String returns the spore type name.
func (t SporeType) String() string {
	if t < numSporeTypes {
		return sporeTypeNames[t]
	}
	return "unknown"
}

// Valid reports whether t is a known spore type.
func (t SporeType) Valid() bool {
	return t < numSporeTypes
}

// IsPortal reports whether t is a portal of either faction.
func (t SporeType) IsPortal() bool {
	return t == SporeGoodPortal || t == SporeEvilPortal
}

// Faction returns the living spore type a portal grows, or the type itself
// for spores. Dead evil spores belong to no faction.
func (t SporeType) Faction() SporeType {
	switch t {
	case SporeGood, SporeGoodPortal:
		return SporeGood
	case SporeEvil, SporeEvilPortal:
		return SporeEvil
	default:
		return SporeEmpty
	}
}

// Growth stage thresholds.
const (
	SporeSizeNone   float32 = 0.0
	SporeSizeSmall  float32 = 0.5
	SporeSizeMedium float32 = 0.75
	SporeSizeMax    float32 = 0.95

	// PortalSize is the fixed size of portal cells.
	PortalSize float32 = 1.0

	// grownThreshold is the size a neighbour needs to count towards a faction.
	grownThreshold float32 = 0.75

	// MaxStackIndex caps the draw order of a cell.
	MaxStackIndex float32 = 256
	stackStep     float32 = 0.1
)

// noCell marks an absent neighbour or owner.
const noCell = -1

// Cell is a single grid location on the playing field.
type Cell struct {
	X, Y   int                 // Grid coordinate, fixed after generation
	World  components.Position // Cell centre in world units
	Offset components.Position // Cosmetic jitter applied by the renderer

	Type            SporeType
	Size            float32
	DecayTimer      float32 // Evil dead only: time until the spore revives or is taken over
	PortalGrowTimer float32 // Portals only: countdown to the next growth attempt
	StackIndex      float32 // Draw order, newer growth stacks above older growth

	idx        int
	owner      int // Flat index of the portal that spawned this spore
	neighbours [8]int
}

// IsEmpty reports whether the cell is unoccupied.
func (c *Cell) IsEmpty() bool {
	return c.Type == SporeEmpty
}

// HasLightSource reports whether the cell emits light.
func (c *Cell) HasLightSource() bool {
	return c.Type.IsPortal()
}

// LightSource returns the light emitted by a portal cell.
// Callers should check HasLightSource first.
func (c *Cell) LightSource() components.LightSource {
	light := components.LightSource{
		Position: components.Position{X: c.World.X + c.Offset.X, Y: c.World.Y + c.Offset.Y},
		Height:   0.5,
		Radius:   4,
	}
	switch c.Type {
	case SporeGoodPortal:
		light.Color = components.Color{R: 1, G: 0.7, B: 0.3}
	case SporeEvilPortal:
		light.Color = components.Color{R: 0, G: 0, B: 1}
	}
	return light
}

// Grow advances the cell one growth stage. Cells at or above Max are left alone.
func (c *Cell) Grow() {
	switch {
	case c.Size < SporeSizeSmall:
		c.Size = SporeSizeSmall
	case c.Size < SporeSizeMedium:
		c.Size = SporeSizeMedium
	case c.Size < SporeSizeMax:
		c.Size = SporeSizeMax
	}
}

// CanGrow reports whether Grow would change the cell.
func (c *Cell) CanGrow() bool {
	return c.Size < SporeSizeMax
}

// Index returns the flat grid index of the cell.
func (c *Cell) Index() int {
	return c.idx
}

// reset empties the cell, keeping geometry and neighbour links.
func (c *Cell) reset() {
	c.Type = SporeEmpty
	c.Size = SporeSizeNone
	c.DecayTimer = 0
	c.PortalGrowTimer = 0
	c.StackIndex = 0
	c.owner = noCell
}

// occupy turns the cell into a fresh small spore of the given faction.
func (c *Cell) occupy(t SporeType, owner int) {
	c.Type = t
	c.Size = SporeSizeSmall
	c.DecayTimer = 0
	c.owner = owner
}
