package systems

import (
	"testing"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/sporefield/components"
)

func newTestProjectiles(t *testing.T) (*ProjectileSystem, *PlayingField) {
	t.Helper()
	f, _ := emptyField(t, 5, 5)
	return NewProjectileSystem(ecs.NewWorld(), f), f
}

func TestPlayerShotKillsEvilSpore(t *testing.T) {
	s, f := newTestProjectiles(t)
	f.values.PlayerProjectileSpeed = float64(f.Spacing())
	f.values.EvilDeadSporeLife = 1

	target := setCell(t, f, 2, 2, SporeEvil, 0.75)
	start := f.CellAtGridPosition(1, 2).World
	if _, ok := s.Spawn(components.ProjectilePlayer, start, components.Velocity{X: 1}); !ok {
		t.Fatal("spawn failed")
	}

	r := s.Update(1)
	if r.SporesKilled != 1 {
		t.Fatalf("expected one kill, got %+v", r)
	}
	if target.Type != SporeEvilDead || target.DecayTimer != 1 {
		t.Errorf("expected dead spore, got %v decay %v", target.Type, target.DecayTimer)
	}
	if s.Count() != 0 {
		t.Errorf("expected the shot to be removed, %d left", s.Count())
	}
}

func TestPlayerShotIgnoresGoodSpores(t *testing.T) {
	s, f := newTestProjectiles(t)
	f.values.PlayerProjectileSpeed = 0.1

	good := setCell(t, f, 2, 2, SporeGood, 0.75)
	s.Spawn(components.ProjectilePlayer, good.World, components.Velocity{X: 1})

	s.Update(0.1)
	if good.Type != SporeGood || s.Count() != 1 {
		t.Errorf("expected shot to pass over good spore, type %v, %d shots", good.Type, s.Count())
	}
}

func TestPlayerShotExpiresOutsideField(t *testing.T) {
	s, f := newTestProjectiles(t)
	f.values.PlayerProjectileSpeed = 100

	s.Spawn(components.ProjectilePlayer, components.Position{}, components.Velocity{X: 1})
	r := s.Update(1)
	if r.Expired != 1 || s.Count() != 0 {
		t.Errorf("expected shot to expire, got %+v with %d left", r, s.Count())
	}
}

func TestPlayerShotDestroysEvilSpawner(t *testing.T) {
	s, f := newTestProjectiles(t)
	f.values.PlayerProjectileSpeed = 0.1
	f.values.EvilPortalSpawnerSpeed = 0
	f.values.EvilSpawnerProjectileSize = 0.25

	s.Spawn(components.ProjectileEvilPortalSpawn, components.Position{X: 0.2}, components.Velocity{X: 1, Y: 1})
	s.Spawn(components.ProjectilePlayer, components.Position{}, components.Velocity{X: 1})

	r := s.Update(1)
	if r.SpawnersShot != 1 {
		t.Fatalf("expected spawner shot, got %+v", r)
	}
	if s.Count() != 0 {
		t.Errorf("expected both projectiles removed, %d left", s.Count())
	}
}

func TestEvilSpawnerNeedsBounceToConvert(t *testing.T) {
	s, f := newTestProjectiles(t)
	f.values.EvilPortalSpawnerSpeed = 0.1

	evil := setCell(t, f, 4, 2, SporeEvil, 0.5)
	s.Spawn(components.ProjectileEvilPortalSpawn, evil.World, components.Velocity{X: 1})

	s.Update(1)
	if evil.Type != SporeEvil {
		t.Fatal("expected no conversion before the first bounce")
	}

	converted := false
	for i := 0; i < 40 && !converted; i++ {
		r := s.Update(1)
		converted = r.PortalsSpawned == 1
	}
	if !converted || evil.Type != SporeEvilPortal {
		t.Fatalf("expected conversion after bouncing, got %v", evil.Type)
	}
	if s.CountByType(components.ProjectileEvilPortalSpawn) != 0 {
		t.Error("expected the spawner to be used up")
	}
}

func TestEvilSpawnerBounces(t *testing.T) {
	s, f := newTestProjectiles(t)
	f.values.EvilPortalSpawnerSpeed = 1
	b := f.Bounds()

	s.Spawn(components.ProjectileEvilPortalSpawn, components.Position{X: b.Right - 0.5, Y: b.Bottom - 0.5}, components.Velocity{X: 1, Y: 1})
	r := s.Update(1)
	if r.SpawnerBounces != 2 {
		t.Fatalf("expected a corner bounce on both axes, got %+v", r)
	}

	s.Each(func(pos components.Position, proj components.Projectile) {
		if proj.Bounces != 2 {
			t.Errorf("expected 2 bounces recorded, got %d", proj.Bounces)
		}
	})

	// Travelling back inwards
	s.Update(1)
	s.Each(func(pos components.Position, _ components.Projectile) {
		if pos.X >= b.Right || pos.Y >= b.Bottom {
			t.Errorf("expected spawner back inside, got %+v", pos)
		}
	})
}

func TestSpawnRespectsCap(t *testing.T) {
	s, f := newTestProjectiles(t)
	f.values.MaxNumProjectiles = 2

	for i := 0; i < 2; i++ {
		if _, ok := s.Spawn(components.ProjectileGoodPortalSpawn, components.Position{}, components.Velocity{}); !ok {
			t.Fatalf("spawn %d failed", i)
		}
	}
	if _, ok := s.Spawn(components.ProjectilePlayer, components.Position{}, components.Velocity{}); ok {
		t.Error("expected spawn over the cap to fail")
	}
	if n := s.CountByType(components.ProjectileGoodPortalSpawn); n != 2 {
		t.Errorf("expected 2 good spawners, got %d", n)
	}
}

func TestPickupNearest(t *testing.T) {
	s, _ := newTestProjectiles(t)

	s.Spawn(components.ProjectileGoodPortalSpawn, components.Position{X: 1}, components.Velocity{})
	s.Spawn(components.ProjectileGoodPortalSpawn, components.Position{X: 0.2}, components.Velocity{})

	if s.PickupNearest(components.ProjectileGoodPortalSpawn, components.Position{X: 3}, 0.5) {
		t.Fatal("expected nothing in reach")
	}
	if !s.PickupNearest(components.ProjectileGoodPortalSpawn, components.Position{}, 2) {
		t.Fatal("expected a pickup")
	}

	remaining := 0
	s.Each(func(pos components.Position, _ components.Projectile) {
		remaining++
		if pos.X != 1 {
			t.Errorf("expected the farther spawner to remain, got %+v", pos)
		}
	})
	if remaining != 1 {
		t.Errorf("expected 1 remaining, got %d", remaining)
	}
}

func TestProjectileClearAndLights(t *testing.T) {
	s, _ := newTestProjectiles(t)
	s.Spawn(components.ProjectilePlayer, components.Position{}, components.Velocity{X: 1})
	s.Spawn(components.ProjectileEvilPortalSpawn, components.Position{}, components.Velocity{X: 1, Y: 1})

	if lights := s.Lights(nil); len(lights) != 2 {
		t.Errorf("expected 2 lights, got %d", len(lights))
	}

	s.Clear()
	if s.Count() != 0 {
		t.Errorf("expected no projectiles after Clear, got %d", s.Count())
	}
}
