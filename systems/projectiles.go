package systems

import (
	"math"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/sporefield/components"
)

// Player shots leave the field once they are this far past the border,
// relative to the half extent.
const projectileBoundsMargin = 0.25

// ProjectileReport counts projectile events from one Update.
type ProjectileReport struct {
	SporesKilled   int // Evil spores hit by player shots
	SpawnersShot   int // Evil portal spawners destroyed by player shots
	PortalsSpawned int // Evil portals created by spawners
	Expired        int // Player shots that left the field
	SpawnerBounces int
}

type spawnerRef struct {
	e   ecs.Entity
	pos components.Position
	hit bool
}

// ProjectileSystem moves projectiles and resolves their contact with the
// playing field. Projectiles are ECS entities.
type ProjectileSystem struct {
	world  *ecs.World
	mapper *ecs.Map3[components.Position, components.Velocity, components.Projectile]
	filter *ecs.Filter3[components.Position, components.Velocity, components.Projectile]
	field  *PlayingField

	// Reused per update
	spawners []spawnerRef
	toRemove []ecs.Entity
}

// NewProjectileSystem creates a projectile system acting on field.
func NewProjectileSystem(w *ecs.World, field *PlayingField) *ProjectileSystem {
	return &ProjectileSystem{
		world:  w,
		mapper: ecs.NewMap3[components.Position, components.Velocity, components.Projectile](w),
		filter: ecs.NewFilter3[components.Position, components.Velocity, components.Projectile](w),
		field:  field,
	}
}

// Count returns the number of live projectiles.
func (s *ProjectileSystem) Count() int {
	n := 0
	query := s.filter.Query()
	for query.Next() {
		n++
	}
	return n
}

// CountByType returns the number of live projectiles of type t.
func (s *ProjectileSystem) CountByType(t components.ProjectileType) int {
	n := 0
	query := s.filter.Query()
	for query.Next() {
		_, _, proj := query.Get()
		if proj.Type == t {
			n++
		}
	}
	return n
}

// Spawn adds a projectile unless the projectile cap is reached.
func (s *ProjectileSystem) Spawn(t components.ProjectileType, pos components.Position, dir components.Velocity) (ecs.Entity, bool) {
	if s.Count() >= s.field.values.MaxNumProjectiles {
		return ecs.Entity{}, false
	}
	proj := components.Projectile{Type: t, Alive: true}
	e := s.mapper.NewEntity(&pos, &dir, &proj)
	return e, true
}

func (s *ProjectileSystem) speed(t components.ProjectileType) float32 {
	switch t {
	case components.ProjectilePlayer:
		return float32(s.field.values.PlayerProjectileSpeed)
	case components.ProjectileEvilPortalSpawn:
		return float32(s.field.values.EvilPortalSpawnerSpeed)
	}
	return 0
}

// Update advances all projectiles by dt seconds and removes the spent ones.
func (s *ProjectileSystem) Update(dt float32) ProjectileReport {
	var report ProjectileReport
	bounds := s.field.Bounds()
	values := s.field.values
	spawnerReach := float32(values.EvilSpawnerProjectileSize)

	// Evil spawners are collected up front so player shots can test against them
	s.spawners = s.spawners[:0]
	query := s.filter.Query()
	for query.Next() {
		pos, _, proj := query.Get()
		if proj.Type == components.ProjectileEvilPortalSpawn {
			s.spawners = append(s.spawners, spawnerRef{e: query.Entity(), pos: *pos})
		}
	}

	s.toRemove = s.toRemove[:0]
	query = s.filter.Query()
	for query.Next() {
		pos, vel, proj := query.Get()
		if !proj.Alive {
			s.toRemove = append(s.toRemove, query.Entity())
			continue
		}

		switch proj.Type {
		case components.ProjectilePlayer:
			speed := s.speed(proj.Type) * dt
			pos.X += vel.X * speed
			pos.Y += vel.Y * speed
			if !bounds.Inside(*pos, projectileBoundsMargin) {
				proj.Alive = false
				report.Expired++
				break
			}
			if s.shootSpawner(*pos, spawnerReach) {
				proj.Alive = false
				report.SpawnersShot++
				break
			}
			if s.field.KillSpore(s.field.CellAtWorldPosition(*pos)) {
				proj.Alive = false
				report.SporesKilled++
			}

		case components.ProjectileEvilPortalSpawn:
			if s.spawnerHit(query.Entity()) {
				proj.Alive = false
				break
			}
			if proj.Bounces >= 1 {
				c := s.field.CellAtWorldPosition(*pos)
				if c != nil && c.Type == SporeEvil {
					s.field.ConvertToPortal(c)
					proj.Alive = false
					report.PortalsSpawned++
					break
				}
			}
			speed := s.speed(proj.Type) * dt
			pos.X += vel.X * speed
			pos.Y += vel.Y * speed
			report.SpawnerBounces += bounce(pos, vel, proj, bounds)
		}

		if !proj.Alive {
			s.toRemove = append(s.toRemove, query.Entity())
		}
	}

	// Spawners shot after their own turn in the loop
	for _, sp := range s.spawners {
		if sp.hit {
			s.toRemove = append(s.toRemove, sp.e)
		}
	}

	for _, e := range s.toRemove {
		if s.world.Alive(e) {
			s.mapper.Remove(e)
		}
	}
	return report
}

// shootSpawner marks the first live evil spawner within reach of pos as hit.
func (s *ProjectileSystem) shootSpawner(pos components.Position, reach float32) bool {
	for i := range s.spawners {
		sp := &s.spawners[i]
		if sp.hit {
			continue
		}
		if distance(pos, sp.pos) < reach {
			sp.hit = true
			return true
		}
	}
	return false
}

func (s *ProjectileSystem) spawnerHit(e ecs.Entity) bool {
	for i := range s.spawners {
		if s.spawners[i].e == e {
			return s.spawners[i].hit
		}
	}
	return false
}

// bounce reflects vel off the bounds edges pos has crossed while moving
// outwards, and returns the number of reflections.
func bounce(pos *components.Position, vel *components.Velocity, proj *components.Projectile, b components.BoundingBox) int {
	n := 0
	if (pos.X <= b.Left && vel.X < 0) || (pos.X >= b.Right && vel.X > 0) {
		vel.X = -vel.X
		n++
	}
	if (pos.Y <= b.Top && vel.Y < 0) || (pos.Y >= b.Bottom && vel.Y > 0) {
		vel.Y = -vel.Y
		n++
	}
	proj.Bounces += int32(n)
	return n
}

// PickupNearest removes the nearest projectile of type t within reach of pos.
func (s *ProjectileSystem) PickupNearest(t components.ProjectileType, pos components.Position, reach float32) bool {
	var (
		best     ecs.Entity
		bestDist = float32(math.MaxFloat32)
		found    bool
	)
	query := s.filter.Query()
	for query.Next() {
		p, _, proj := query.Get()
		if proj.Type != t || !proj.Alive {
			continue
		}
		if d := distance(pos, *p); d < reach && d < bestDist {
			best, bestDist, found = query.Entity(), d, true
		}
	}
	if !found {
		return false
	}
	s.mapper.Remove(best)
	return true
}

// Clear removes every projectile.
func (s *ProjectileSystem) Clear() {
	s.toRemove = s.toRemove[:0]
	query := s.filter.Query()
	for query.Next() {
		s.toRemove = append(s.toRemove, query.Entity())
	}
	for _, e := range s.toRemove {
		s.mapper.Remove(e)
	}
}

// Each calls fn for every live projectile.
func (s *ProjectileSystem) Each(fn func(pos components.Position, proj components.Projectile)) {
	query := s.filter.Query()
	for query.Next() {
		pos, _, proj := query.Get()
		fn(*pos, *proj)
	}
}

// Lights appends one light per projectile to dst.
func (s *ProjectileSystem) Lights(dst []components.LightSource) []components.LightSource {
	query := s.filter.Query()
	for query.Next() {
		pos, _, proj := query.Get()
		light := components.LightSource{Position: *pos, Height: 0.5, Radius: 2}
		switch proj.Type {
		case components.ProjectilePlayer:
			light.Color = components.Color{R: 1, G: 1, B: 0.8}
		case components.ProjectileGoodPortalSpawn:
			light.Color = components.Color{R: 1, G: 0.7, B: 0.3}
			light.Radius = 3
		case components.ProjectileEvilPortalSpawn:
			light.Color = components.Color{R: 0.3, G: 0.3, B: 1}
			light.Radius = 3
		default:
			continue
		}
		dst = append(dst, light)
	}
	return dst
}

func distance(a, b components.Position) float32 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return float32(math.Sqrt(float64(dx*dx + dy*dy)))
}
