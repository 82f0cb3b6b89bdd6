package systems

import "log/slog"

// UpdateReport counts what changed during one Update call.
type UpdateReport struct {
	Spawned     int // Empty cells occupied by portal growth
	Grown       int // Existing spores grown one stage by portal growth
	TakenOver   int // Dead evil spores claimed by good portals
	Resurrected int // Dead evil spores that came back as evil
	Converted   int // Dead evil spores that turned good on expiry
}

// Add accumulates another report into r.
func (r *UpdateReport) Add(o UpdateReport) {
	r.Spawned += o.Spawned
	r.Grown += o.Grown
	r.TakenOver += o.TakenOver
	r.Resurrected += o.Resurrected
	r.Converted += o.Converted
}

// LogValue implements slog.LogValuer.
func (r UpdateReport) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("spawned", r.Spawned),
		slog.Int("grown", r.Grown),
		slog.Int("taken_over", r.TakenOver),
		slog.Int("resurrected", r.Resurrected),
		slog.Int("converted", r.Converted),
	)
}

// Update advances the simulation by dt seconds.
//
// The life cycle pass runs first over every cell, then each portal gets one
// growth attempt. Cells are visited x outer, y inner, and mutations are
// visible to cells visited later in the same pass.
func (f *PlayingField) Update(dt float32, phase Phase) UpdateReport {
	var report UpdateReport

	for i := range f.cells {
		c := &f.cells[i]
		switch c.Type {
		case SporeGood, SporeEvil:
			f.growSpore(c, dt, phase)
		case SporeEvilDead:
			f.decayDeadSpore(c, dt, &report)
		case SporeGoodPortal, SporeEvilPortal:
			c.Size = PortalSize
		}
	}

	for i := range f.cells {
		if f.cells[i].Type.IsPortal() {
			f.growPortal(i, dt, phase, &report)
		}
	}

	return report
}

// growSpore grows a living spore towards the configured maximum size.
func (f *PlayingField) growSpore(c *Cell, dt float32, phase Phase) {
	limit := min(float32(f.values.MaxSporeSize), SporeSizeMax)
	if c.Size >= limit {
		return
	}
	speed := f.values.GrowthSpeedSlow
	if phase.Favours(c.Type) {
		speed = f.values.GrowthSpeedFast
	}
	c.Size = min(c.Size+float32(speed)*dt, limit)
}

// decayDeadSpore counts down a dead evil spore. On expiry the cell turns good
// if good neighbours outnumber evil ones, otherwise it revives as evil.
func (f *PlayingField) decayDeadSpore(c *Cell, dt float32, report *UpdateReport) {
	c.DecayTimer -= dt * float32(f.values.EvilDeadSporeRessurectionSpeed)
	if c.DecayTimer > 0 {
		return
	}

	good := f.CountNeighboursOfType(c, SporeGood)
	evil := f.CountNeighboursOfType(c, SporeEvil)
	if good > evil {
		c.occupy(SporeGood, noCell)
		c.StackIndex = f.StackIndexFromNeighbours(c)
		report.Converted++
		return
	}

	c.Type = SporeEvil
	c.Size = min(c.Size, SporeSizeMax)
	c.owner = noCell
	report.Resurrected++
}
