package models

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/zeusync/skyloop/internal/core/content"
	"github.com/zeusync/skyloop/internal/core/geom"
)

func testModel() *content.ShipModel {
	laser := content.NewOutfit("Laser", "Guns", &content.Weapon{Velocity: 500, Lifetime: 10, Reload: 3, Radius: 2, ShieldDamage: 10, HullDamage: 10})
	missile := content.NewOutfit("Missile", "Ammunition", nil)
	launcher := content.NewOutfit("Launcher", "Secondary Weapons", &content.Weapon{Velocity: 300, Lifetime: 20, Reload: 0, Radius: 3, HullDamage: 50, Ammo: missile})
	return &content.ShipModel{
		Name:       "Sparrow",
		Radius:     10,
		MaxShields: 20,
		MaxHull:    100,
		Thrust:     100,
		Turn:       90,
		MaxSpeed:   50,
		Weapons:    []*content.Outfit{laser, launcher},
		Ammo:       map[*content.Outfit]int{missile: 2},
	}
}

func TestShip(t *testing.T) {
	gov := content.NewGovernment("Republic", "blue", false)

	t.Run("IDs are unique and never zero", func(t *testing.T) {
		a := NewShip("a", testModel(), gov)
		b := NewShip("b", testModel(), gov)
		require.NotEqual(t, NoShip, a.ID())
		require.NotEqual(t, a.ID(), b.ID())
	})

	t.Run("Steer clamps speed", func(t *testing.T) {
		s := NewShip("s", testModel(), gov)
		for range 100 {
			s.Steer(0, 1, 1)
		}
		require.InDelta(t, 50, s.Velocity().Length(), 1e-9)
		s.Steer(1, 0, 1)
		require.Equal(t, geom.NewAngle(90), s.Facing())
	})

	t.Run("Damage goes through shields first", func(t *testing.T) {
		s := NewShip("s", testModel(), gov)
		disabled, destroyed := s.TakeDamage(25, 999)
		require.False(t, disabled)
		require.False(t, destroyed)
		require.Equal(t, 0.0, s.Shields())
		require.Equal(t, 1.0, s.Hull())

		disabled, destroyed = s.TakeDamage(0, 90)
		require.True(t, disabled)
		require.False(t, destroyed)
		require.False(t, s.IsActive())

		disabled, destroyed = s.TakeDamage(0, 20)
		require.False(t, disabled, "disable is reported once")
		require.True(t, destroyed)
		require.True(t, s.IsDestroyed())
	})

	t.Run("Fire respects reload and ammo", func(t *testing.T) {
		s := NewShip("s", testModel(), gov)
		require.Empty(t, s.Fire(), "not armed")

		s.SetFiring(true)
		shots := s.Fire()
		require.Len(t, shots, 2)
		require.Equal(t, s.ID(), shots[0].Source())

		shots = s.Fire()
		require.Len(t, shots, 1, "laser reloading, launcher fires")
		missile := s.AmmoOutfits()[0]
		require.Equal(t, 0, s.Ammo(missile))

		require.Empty(t, s.Fire(), "laser still reloading, launcher empty")
		require.Empty(t, s.Fire())
		require.Len(t, s.Fire(), 1, "laser reloaded")
	})
}

func TestRegistry(t *testing.T) {
	gov := content.NewGovernment("Republic", "blue", false)

	t.Run("Resolution after removal is empty", func(t *testing.T) {
		r := NewRegistry()
		a := NewShip("a", testModel(), gov)
		b := NewShip("b", testModel(), gov)
		c := NewShip("c", testModel(), gov)
		r.AddShip(a)
		r.AddShip(b)
		r.AddShip(c)
		r.AddShip(a)
		require.Equal(t, 3, r.ShipCount())

		b.Depart()
		removed := r.Prune()
		require.Equal(t, []*Ship{b}, removed)
		require.Equal(t, []*Ship{a, c}, r.Ships(), "order is kept")

		_, ok := r.Ship(b.ID())
		require.False(t, ok)
		require.False(t, r.Alive(b.ID()))
		require.True(t, r.Alive(a.ID()))
		require.False(t, r.Alive(NoShip))
	})

	t.Run("Prune expires transient objects", func(t *testing.T) {
		r := NewRegistry()
		s := NewShip("a", testModel(), gov)
		s.SetFiring(true)
		for _, p := range s.Fire() {
			r.AddProjectile(p)
		}
		r.AddEffect(NewEffect("spark", geom.Point{}, geom.Point{}, 1))
		require.Len(t, r.Projectiles(), 2)

		r.Projectiles()[0].Consume()
		r.Effects()[0].Age()
		r.Prune()
		require.Len(t, r.Projectiles(), 1)
		require.Empty(t, r.Effects())
	})

	t.Run("Clear", func(t *testing.T) {
		r := NewRegistry()
		r.AddShip(NewShip("a", testModel(), gov))
		r.AsteroidField().Add(NewAsteroid(geom.Point{}, geom.Point{}, 5, 0))
		r.Clear()
		require.Zero(t, r.ShipCount())
		require.Empty(t, r.Asteroids())
	})
}

func TestAsteroidField(t *testing.T) {
	sys := &content.System{Name: "Sol", Radius: 100, Asteroids: []content.AsteroidBelt{{Count: 5, Radius: 4, Speed: 10}}}
	f := NewAsteroidField()
	f.Reset(sys, rand.New(rand.NewPCG(1, 2)))
	require.Equal(t, 5, f.Len())

	a := f.All()[0]
	a.Motion().Position = geom.P(150, -260)
	f.Wrap()
	require.InDelta(t, -50, a.Position().X, 1e-9)
	require.InDelta(t, -60, a.Position().Y, 1e-9)
}
