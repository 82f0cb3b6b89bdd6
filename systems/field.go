package systems

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/pthm-cable/sporefield/components"
	"github.com/pthm-cable/sporefield/config"
)

var (
	ErrInvalidDimensions = errors.New("invalid field dimensions")
	ErrOutOfBounds       = errors.New("position out of bounds")
	ErrDeadzone          = errors.New("position is in the deadzone")
	ErrInvalidSporeType  = errors.New("invalid spore type")
	ErrShortRead         = errors.New("short read")
)

// maxFieldCells bounds the grid size accepted from save files.
const maxFieldCells = 1 << 20

// Rand is the random source used by the simulation. *math/rand.Rand satisfies it.
type Rand interface {
	Float32() float32
	Intn(n int) int
}

// Phase is the day/night phase.
type Phase uint8

const (
	PhaseDay Phase = iota
	PhaseNight
)

// String returns the phase name.
func (p Phase) String() string {
	if p == PhaseNight {
		return "night"
	}
	return "day"
}

// Favours reports whether the phase is the fast growth phase for a faction.
// Good grows fast by day, evil by night.
func (p Phase) Favours(faction SporeType) bool {
	switch faction.Faction() {
	case SporeGood:
		return p == PhaseDay
	case SporeEvil:
		return p == PhaseNight
	}
	return false
}

// neighbourOffsets lists the Moore neighbourhood, clockwise from north.
var neighbourOffsets = [8][2]int{
	{0, -1}, {1, -1}, {1, 0}, {1, 1}, {0, 1}, {-1, 1}, {-1, 0}, {-1, -1},
}

// PlayingField owns the cell grid and runs the spore simulation.
// Cells are stored column-major: index = x*height + y.
type PlayingField struct {
	width, height int
	cells         []Cell

	field  config.FieldConfig
	values *config.Values // Shared with the game state; edited live by the debug panel
	rng    Rand

	// Scratch buffers reused by portal growth
	ring       []int
	candidates []int

	instances []InstanceData
}

// NewPlayingField creates an empty field. Call Generate before use.
func NewPlayingField(field config.FieldConfig, values *config.Values, rng Rand) *PlayingField {
	return &PlayingField{
		field:      field,
		values:     values,
		rng:        rng,
		ring:       make([]int, 0, 32),
		candidates: make([]int, 0, 32),
	}
}

// Width returns the number of columns.
func (f *PlayingField) Width() int { return f.width }

// Height returns the number of rows.
func (f *PlayingField) Height() int { return f.height }

// Spacing returns the world distance between cell centres.
func (f *PlayingField) Spacing() float32 { return float32(f.field.CellSpacing) }

// Values returns the game values the field reads every tick.
func (f *PlayingField) Values() *config.Values { return f.values }

// Cells returns the backing cell slice in storage order.
func (f *PlayingField) Cells() []Cell { return f.cells }

// Bounds returns the world rectangle covered by the field.
func (f *PlayingField) Bounds() components.BoundingBox {
	halfW := float32(f.width) * f.Spacing() / 2
	halfH := float32(f.height) * f.Spacing() / 2
	return components.NewBoundingBox(-halfW, halfW, -halfH, halfH)
}

// Generate allocates a width x height grid, marks the deadzone and places one
// portal per faction.
func (f *PlayingField) Generate(width, height int) error {
	if !validDimensions(width, height) {
		return fmt.Errorf("generate %dx%d: %w", width, height, ErrInvalidDimensions)
	}

	f.cells = f.buildGrid(width, height)
	f.width = width
	f.height = height
	f.instances = nil

	f.placeStartPortals()
	return nil
}

// validDimensions bounds each side before multiplying so huge values cannot
// overflow past the cell limit.
func validDimensions(width, height int) bool {
	return width > 0 && height > 0 && width <= maxFieldCells && height <= maxFieldCells/width
}

// buildGrid creates a fresh grid with geometry, jitter, deadzone and neighbour
// links. It does not touch the field's current cells.
func (f *PlayingField) buildGrid(width, height int) []Cell {
	cells := make([]Cell, width*height)
	spacing := float32(f.field.CellSpacing)
	jitter := float32(f.field.Jitter)
	originX := -float32(width) * spacing / 2
	originY := -float32(height) * spacing / 2

	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			idx := x*height + y
			c := &cells[idx]
			c.X, c.Y = x, y
			c.idx = idx
			c.World = components.Position{
				X: originX + float32(x)*spacing + spacing/2,
				Y: originY + float32(y)*spacing + spacing/2,
			}
			if jitter > 0 {
				c.Offset = components.Position{
					X: (f.rng.Float32()*2 - 1) * jitter,
					Y: (f.rng.Float32()*2 - 1) * jitter,
				}
			}
			c.reset()
			if deadzoneAt(x, y, width, height, f.values.PlayingFieldDeadzone) {
				c.Type = SporeDeadzone
			}

			for i, off := range neighbourOffsets {
				nx, ny := x+off[0], y+off[1]
				if nx < 0 || nx >= width || ny < 0 || ny >= height {
					c.neighbours[i] = noCell
					continue
				}
				c.neighbours[i] = nx*height + ny
			}
		}
	}
	return cells
}

// placeStartPortals puts a good portal a quarter in from the left and an evil
// portal a quarter in from the right, both at mid height.
func (f *PlayingField) placeStartPortals() {
	y := f.height / 2
	goodX := f.width / 4
	evilX := f.width - 1 - f.width/4
	if goodX == evilX {
		slog.Warn("field too narrow for two portals", "width", f.width)
		return
	}
	if err := f.PlacePortal(goodX, y, SporeGoodPortal); err != nil {
		slog.Warn("good portal not placed", "x", goodX, "y", y, "error", err)
	}
	if err := f.PlacePortal(evilX, y, SporeEvilPortal); err != nil {
		slog.Warn("evil portal not placed", "x", evilX, "y", y, "error", err)
	}
}

// Clear empties every cell except the deadzone. Portals are removed too.
func (f *PlayingField) Clear() {
	for i := range f.cells {
		if f.cells[i].Type == SporeDeadzone {
			continue
		}
		f.cells[i].reset()
	}
}

// Owner returns the portal that spawned c, or nil if there is none or the
// portal has since been destroyed.
func (f *PlayingField) Owner(c *Cell) *Cell {
	if c == nil || c.owner == noCell {
		return nil
	}
	o := &f.cells[c.owner]
	if !o.Type.IsPortal() {
		return nil
	}
	return o
}

// PlacePortal turns the cell at (x, y) into a portal of type t.
func (f *PlayingField) PlacePortal(x, y int, t SporeType) error {
	if !t.IsPortal() {
		return fmt.Errorf("place portal %s: %w", t, ErrInvalidSporeType)
	}
	c := f.CellAtGridPosition(x, y)
	if c == nil {
		return fmt.Errorf("place portal at (%d, %d): %w", x, y, ErrOutOfBounds)
	}
	if c.Type == SporeDeadzone {
		return fmt.Errorf("place portal at (%d, %d): %w", x, y, ErrDeadzone)
	}
	f.makePortal(c, t)
	return nil
}

func (f *PlayingField) makePortal(c *Cell, t SporeType) {
	c.Type = t
	c.Size = PortalSize
	c.DecayTimer = 0
	c.PortalGrowTimer = float32(f.values.PortalGrowTimer)
	c.owner = noCell
	c.StackIndex = f.StackIndexFromNeighbours(c)
}

// KillSpore turns a living evil spore into a dead one. Dead spores revive
// after EvilDeadSporeLife unless good growth takes them over.
func (f *PlayingField) KillSpore(c *Cell) bool {
	if c == nil || c.Type != SporeEvil {
		return false
	}
	c.Type = SporeEvilDead
	c.Size = PortalSize
	c.DecayTimer = float32(f.values.EvilDeadSporeLife)
	c.owner = noCell
	return true
}

// ConvertToPortal turns a spore into a portal of its own faction. Evil spores
// convert at any size; good spores must be fully grown.
func (f *PlayingField) ConvertToPortal(c *Cell) bool {
	if c == nil {
		return false
	}
	switch c.Type {
	case SporeEvil:
		f.makePortal(c, SporeEvilPortal)
		return true
	case SporeGood:
		if c.Size < float32(f.values.MaxSporeSize) {
			return false
		}
		f.makePortal(c, SporeGoodPortal)
		return true
	}
	return false
}

// SetCellAtWorldPosition force-sets the cell under pos. Portals get full size,
// spores get the configured maximum, evil dead spores a fresh decay timer.
// Deadzone cells cannot be changed and cells cannot be turned into deadzone.
func (f *PlayingField) SetCellAtWorldPosition(pos components.Position, t SporeType) (*Cell, error) {
	if !t.Valid() || t == SporeDeadzone {
		return nil, fmt.Errorf("set cell to %s: %w", t, ErrInvalidSporeType)
	}
	c := f.CellAtWorldPosition(pos)
	if c == nil {
		return nil, fmt.Errorf("set cell at (%.2f, %.2f): %w", pos.X, pos.Y, ErrOutOfBounds)
	}
	if c.Type == SporeDeadzone {
		return nil, fmt.Errorf("set cell at (%d, %d): %w", c.X, c.Y, ErrDeadzone)
	}

	switch t {
	case SporeEmpty:
		c.reset()
	case SporeGoodPortal, SporeEvilPortal:
		f.makePortal(c, t)
	case SporeEvilDead:
		c.Type = SporeEvil
		f.KillSpore(c)
	default:
		c.Type = t
		c.Size = float32(f.values.MaxSporeSize)
		c.DecayTimer = 0
		c.owner = noCell
		c.StackIndex = f.StackIndexFromNeighbours(c)
	}
	return c, nil
}

// CountType returns how many cells currently hold type t.
func (f *PlayingField) CountType(t SporeType) int {
	n := 0
	for i := range f.cells {
		if f.cells[i].Type == t {
			n++
		}
	}
	return n
}
