package systems

import "github.com/pthm-cable/sporefield/components"

// InstanceData is the per-cell data the renderer draws from.
type InstanceData struct {
	Position   components.Position // World position including jitter
	StackIndex float32
	Size       float32
	Type       SporeType
}

// Instances returns the render snapshot of every cell in storage order and
// whether anything changed since the previous call. The slice is reused
// between calls; do not hold on to it across ticks.
func (f *PlayingField) Instances() ([]InstanceData, bool) {
	changed := false
	if len(f.instances) != len(f.cells) {
		f.instances = make([]InstanceData, len(f.cells))
		changed = true
	}

	for i := range f.cells {
		c := &f.cells[i]
		inst := &f.instances[i]
		if !changed && inst.Size == c.Size && inst.Type == c.Type && inst.StackIndex == c.StackIndex {
			continue
		}
		inst.Position = components.Position{X: c.World.X + c.Offset.X, Y: c.World.Y + c.Offset.Y}
		inst.StackIndex = c.StackIndex
		inst.Size = c.Size
		inst.Type = c.Type
		changed = true
	}
	return f.instances, changed
}

// Lights appends the light sources of all portal cells to dst.
func (f *PlayingField) Lights(dst []components.LightSource) []components.LightSource {
	for i := range f.cells {
		if f.cells[i].HasLightSource() {
			dst = append(dst, f.cells[i].LightSource())
		}
	}
	return dst
}
