package systems

import (
	"math"

	"github.com/pthm-cable/sporefield/components"
)

// deadzoneAt reports whether (x, y) lies within radius cells of the grid
// centre. A radius of zero or less disables the deadzone.
func deadzoneAt(x, y, width, height int, radius float64) bool {
	if radius <= 0 {
		return false
	}
	dx := x - width/2
	dy := y - height/2
	return float64(dx*dx+dy*dy) <= radius*radius
}

// IsDeadzone reports whether (x, y) falls in the central exclusion zone for
// the current deadzone radius. Cell types are fixed at generation, so a live
// radius change only takes effect on the next Generate.
func (f *PlayingField) IsDeadzone(x, y int) bool {
	return deadzoneAt(x, y, f.width, f.height, f.values.PlayingFieldDeadzone)
}

func (f *PlayingField) inBounds(x, y int) bool {
	return x >= 0 && x < f.width && y >= 0 && y < f.height
}

// CellAtGridPosition returns the cell at (x, y), or nil when out of bounds.
func (f *PlayingField) CellAtGridPosition(x, y int) *Cell {
	if !f.inBounds(x, y) {
		return nil
	}
	return &f.cells[x*f.height+y]
}

// CellAtWorldPosition returns the cell whose square contains pos, or nil when
// pos lies outside the field.
func (f *PlayingField) CellAtWorldPosition(pos components.Position) *Cell {
	if len(f.cells) == 0 {
		return nil
	}
	s := f.Spacing()
	fx := math.Floor(float64(pos.X/s) + float64(f.width)/2)
	fy := math.Floor(float64(pos.Y/s) + float64(f.height)/2)
	// Written as a positive range check so NaN falls outside
	if !(fx >= 0 && fx < float64(f.width) && fy >= 0 && fy < float64(f.height)) {
		return nil
	}
	return &f.cells[int(fx)*f.height+int(fy)]
}

// DistanceToNearestOfType returns the grid distance from (x, y) to the closest
// other cell of type t, or +Inf if there is none.
func (f *PlayingField) DistanceToNearestOfType(x, y int, t SporeType) float64 {
	best := math.Inf(1)
	for i := range f.cells {
		c := &f.cells[i]
		if c.Type != t || (c.X == x && c.Y == y) {
			continue
		}
		dx := float64(c.X - x)
		dy := float64(c.Y - y)
		if d := math.Sqrt(dx*dx + dy*dy); d < best {
			best = d
		}
	}
	return best
}

// CountNeighboursOfType counts grown neighbours of c that hold type t.
// Ownership is not considered.
func (f *PlayingField) CountNeighboursOfType(c *Cell, t SporeType) int {
	n := 0
	for _, ni := range c.neighbours {
		if ni == noCell {
			continue
		}
		nb := &f.cells[ni]
		if nb.Type == t && nb.Size >= grownThreshold {
			n++
		}
	}
	return n
}

// NeighbourCount is CountNeighboursOfType by grid coordinate. Out of bounds
// positions have no neighbours.
func (f *PlayingField) NeighbourCount(x, y int, t SporeType) int {
	c := f.CellAtGridPosition(x, y)
	if c == nil {
		return 0
	}
	return f.CountNeighboursOfType(c, t)
}

// StackIndexFromNeighbours returns a stack index just above c and all of its
// neighbours, capped at 256.
func (f *PlayingField) StackIndexFromNeighbours(c *Cell) float32 {
	top := c.StackIndex
	for _, ni := range c.neighbours {
		if ni == noCell {
			continue
		}
		if z := f.cells[ni].StackIndex; z > top {
			top = z
		}
	}
	return min(top+stackStep, MaxStackIndex)
}

// CollectCellsAtRingDistance returns the in-bounds cells at Chebyshev distance
// d from (x, y). Distance 0 yields the cell itself.
func (f *PlayingField) CollectCellsAtRingDistance(x, y, d int, excludeDeadzone bool) []*Cell {
	idx := f.appendRing(nil, x, y, d, excludeDeadzone)
	out := make([]*Cell, len(idx))
	for i, ci := range idx {
		out[i] = &f.cells[ci]
	}
	return out
}

// appendRing appends the flat indices of the ring to dst. The order is the
// top edge left to right, the bottom edge left to right, then the left and
// right columns top to bottom without the corners.
func (f *PlayingField) appendRing(dst []int, x, y, d int, excludeDeadzone bool) []int {
	add := func(cx, cy int) {
		if !f.inBounds(cx, cy) {
			return
		}
		ci := cx*f.height + cy
		if excludeDeadzone && f.cells[ci].Type == SporeDeadzone {
			return
		}
		dst = append(dst, ci)
	}

	if d < 0 {
		return dst
	}
	if d == 0 {
		add(x, y)
		return dst
	}

	for cx := x - d; cx <= x+d; cx++ {
		add(cx, y-d)
	}
	for cx := x - d; cx <= x+d; cx++ {
		add(cx, y+d)
	}
	for cy := y - d + 1; cy <= y+d-1; cy++ {
		add(x-d, cy)
		add(x+d, cy)
	}
	return dst
}
