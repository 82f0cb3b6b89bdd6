package systems

// growPortal runs one growth attempt for the portal at index pi.
//
// Rings around the portal are searched from distance 1 outwards. The first
// ring with any growable cell is used: the attempt succeeds with a chance
// that falls off with distance, and on success one candidate picked at random
// is occupied or grown. Beyond the first ring a candidate must touch a grown
// spore of the portal's faction so growth cannot jump gaps.
func (f *PlayingField) growPortal(pi int, dt float32, phase Phase, report *UpdateReport) {
	portal := &f.cells[pi]
	faction := portal.Type.Faction()

	speed := f.values.PortalGrowthSpeedSlow
	if phase.Favours(faction) {
		speed = f.values.PortalGrowthSpeedFast
	}
	factor := f.values.PortalGrowthFactorGood
	if faction == SporeEvil {
		factor = f.values.PortalGrowthFactorEvil
	}

	portal.PortalGrowTimer -= dt * float32(speed*factor)
	if portal.PortalGrowTimer > 0 {
		return
	}
	portal.PortalGrowTimer = float32(f.values.PortalGrowTimer)

	for d := 1; d <= f.field.MaxRingDistance; d++ {
		f.ring = f.appendRing(f.ring[:0], portal.X, portal.Y, d, true)
		f.candidates = f.candidates[:0]
		for _, ci := range f.ring {
			c := &f.cells[ci]
			if !f.growable(c, portal.Type) {
				continue
			}
			if d > 1 && f.CountNeighboursOfType(c, faction) == 0 {
				continue
			}
			f.candidates = append(f.candidates, ci)
		}
		if len(f.candidates) == 0 {
			continue
		}

		if f.rng.Float32()*100 > f.growthChance(d) {
			return
		}
		target := &f.cells[f.candidates[f.rng.Intn(len(f.candidates))]]
		f.applyGrowth(target, pi, faction, report)
		return
	}
}

// growthChance returns the percent chance of growing at ring distance d.
func (f *PlayingField) growthChance(d int) float32 {
	chance := 100 - float64(d-1)*f.field.GrowthChanceStep
	return float32(max(chance, f.field.GrowthChanceFloor))
}

// growable reports whether a portal of type portalType may change c.
// Spores of the portal's faction must still be able to grow; those at max
// size are skipped. Opposing spores and portals are never overgrown.
// Dead evil spores are the one exception to the max size filter: they sit at
// size 1.0, yet good portals may claim them. Evil portals leave them alone.
func (f *PlayingField) growable(c *Cell, portalType SporeType) bool {
	switch c.Type {
	case SporeEmpty:
		return true
	case SporeEvilDead:
		return portalType == SporeGoodPortal
	case SporeGood, SporeEvil:
		return c.Type == portalType.Faction() && c.CanGrow()
	}
	return false
}

func (f *PlayingField) applyGrowth(c *Cell, portal int, faction SporeType, report *UpdateReport) {
	switch c.Type {
	case SporeEmpty:
		c.occupy(faction, portal)
		report.Spawned++
	case SporeEvilDead:
		c.occupy(faction, portal)
		report.TakenOver++
	default:
		c.Grow()
		report.Grown++
	}
	c.StackIndex = f.StackIndexFromNeighbours(c)
}
