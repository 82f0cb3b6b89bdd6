package renderer

import (
	"sort"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/sporefield/camera"
	"github.com/pthm-cable/sporefield/systems"
)

// FieldRenderer draws the cell grid from the field's instance snapshot.
// Spores are drawn in stack index order so newer growth covers older growth.
type FieldRenderer struct {
	Palette Palette

	order []int // Instance indices sorted by stack index
}

// NewFieldRenderer creates a field renderer with the default palette.
func NewFieldRenderer() *FieldRenderer {
	return &FieldRenderer{Palette: DefaultPalette()}
}

// Draw renders the field. The draw order is only rebuilt when the snapshot
// changed.
func (r *FieldRenderer) Draw(field *systems.PlayingField, cam *camera.Camera, showGrid bool) {
	instances, changed := field.Instances()
	if changed || len(r.order) != len(instances) {
		r.sortInstances(instances)
	}

	spacing := field.Spacing()
	cellPx := spacing * cam.Zoom

	// Ground: deadzone and grid dots under everything else
	for i := range instances {
		inst := &instances[i]
		if !cam.IsVisible(inst.Position.X, inst.Position.Y, spacing) {
			continue
		}
		sx, sy := cam.WorldToScreen(inst.Position.X, inst.Position.Y)
		switch {
		case inst.Type == systems.SporeDeadzone:
			rl.DrawRectangleRec(rl.Rectangle{
				X: sx - cellPx/2, Y: sy - cellPx/2, Width: cellPx, Height: cellPx,
			}, r.Palette.Deadzone)
		case showGrid:
			rl.DrawCircle(int32(sx), int32(sy), max(cellPx*0.04, 1), r.Palette.Grid)
		}
	}

	for _, i := range r.order {
		inst := &instances[i]
		if inst.Type == systems.SporeEmpty || inst.Type == systems.SporeDeadzone {
			continue
		}
		if !cam.IsVisible(inst.Position.X, inst.Position.Y, spacing) {
			continue
		}
		sx, sy := cam.WorldToScreen(inst.Position.X, inst.Position.Y)
		radius := inst.Size * cellPx * 0.6
		color := r.Palette.SporeColor(inst.Type, inst.StackIndex)

		if inst.Type.IsPortal() {
			rl.DrawCircle(int32(sx), int32(sy), radius, color)
			rl.DrawCircleLines(int32(sx), int32(sy), radius*1.15, rl.RayWhite)
			continue
		}
		rl.DrawCircle(int32(sx), int32(sy), radius, color)
	}
}

func (r *FieldRenderer) sortInstances(instances []systems.InstanceData) {
	if cap(r.order) < len(instances) {
		r.order = make([]int, len(instances))
	}
	r.order = r.order[:len(instances)]
	for i := range r.order {
		r.order[i] = i
	}
	sort.SliceStable(r.order, func(a, b int) bool {
		return instances[r.order[a]].StackIndex < instances[r.order[b]].StackIndex
	})
}

// DrawBounds outlines the field rectangle.
func (r *FieldRenderer) DrawBounds(field *systems.PlayingField, cam *camera.Camera) {
	b := field.Bounds()
	x0, y0 := cam.WorldToScreen(b.Left, b.Top)
	x1, y1 := cam.WorldToScreen(b.Right, b.Bottom)
	rl.DrawRectangleLinesEx(rl.Rectangle{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}, 1, r.Palette.Grid)
}

// DrawHighlight outlines one cell, for the inspector and spawn tool cursor.
func (r *FieldRenderer) DrawHighlight(c *systems.Cell, spacing float32, cam *camera.Camera, color rl.Color) {
	if c == nil {
		return
	}
	cellPx := spacing * cam.Zoom
	sx, sy := cam.WorldToScreen(c.World.X, c.World.Y)
	rl.DrawRectangleLinesEx(rl.Rectangle{
		X: sx - cellPx/2, Y: sy - cellPx/2, Width: cellPx, Height: cellPx,
	}, 2, color)
}
