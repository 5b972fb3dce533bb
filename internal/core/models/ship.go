package models

import (
	"sync/atomic"

	"github.com/zeusync/skyloop/internal/core/content"
	"github.com/zeusync/skyloop/internal/core/geom"
)

// ShipID identifies a ship for the lifetime of the process. IDs are handed out
// from a single counter and never reused, so a stale ID can only ever resolve
// to "not found", never to a different ship.
type ShipID uint64

// NoShip is the zero ID; it never resolves.
const NoShip ShipID = 0

// DisableFraction is the share of maximum hull below which a ship is disabled.
const DisableFraction = 0.15

var lastShipID atomic.Uint64

func nextShipID() ShipID {
	return ShipID(lastShipID.Add(1))
}

// Motion is the kinematic state every simulated object shares.
type Motion struct {
	Position geom.Point
	Velocity geom.Point
	Facing   geom.Angle
	// Spin is in degrees per second.
	Spin float64
}

// Body is anything the physics integrator can move.
type Body interface {
	Motion() *Motion
}

type Ship struct {
	motion Motion

	id         ShipID
	name       string
	model      *content.ShipModel
	government *content.Government
	system     *content.System

	shields float64
	hull    float64
	ammo    map[*content.Outfit]int
	reload  []int

	target  ShipID
	parent  ShipID
	isYours bool
	firing  bool

	disabled  bool
	destroyed bool
	departed  bool
}

func NewShip(name string, model *content.ShipModel, gov *content.Government) *Ship {
	s := &Ship{
		id:         nextShipID(),
		name:       name,
		model:      model,
		government: gov,
		shields:    model.MaxShields,
		hull:       model.MaxHull,
		ammo:       make(map[*content.Outfit]int, len(model.Ammo)),
		reload:     make([]int, len(model.Weapons)),
	}
	for outfit, count := range model.Ammo {
		s.ammo[outfit] = count
	}
	return s
}

func (s *Ship) ID() ShipID                      { return s.id }
func (s *Ship) Name() string                    { return s.name }
func (s *Ship) Model() *content.ShipModel       { return s.model }
func (s *Ship) Government() *content.Government { return s.government }
func (s *Ship) System() *content.System         { return s.system }
func (s *Ship) Motion() *Motion                 { return &s.motion }
func (s *Ship) Position() geom.Point            { return s.motion.Position }
func (s *Ship) Velocity() geom.Point            { return s.motion.Velocity }
func (s *Ship) Facing() geom.Angle              { return s.motion.Facing }
func (s *Ship) Radius() float64                 { return s.model.Radius }
func (s *Ship) Target() ShipID                  { return s.target }
func (s *Ship) Parent() ShipID                  { return s.parent }
func (s *Ship) IsYours() bool                   { return s.isYours }
func (s *Ship) IsDisabled() bool                { return s.disabled }
func (s *Ship) IsDestroyed() bool               { return s.destroyed }
func (s *Ship) HasDeparted() bool               { return s.departed }

func (s *Ship) SetSystem(sys *content.System) { s.system = sys }
func (s *Ship) SetTarget(id ShipID)           { s.target = id }
func (s *Ship) SetParent(id ShipID)           { s.parent = id }
func (s *Ship) SetYours(yours bool)           { s.isYours = yours }
func (s *Ship) Depart()                       { s.departed = true }

// Place puts the ship at rest at a position and heading.
func (s *Ship) Place(at geom.Point, facing geom.Angle) {
	s.motion = Motion{Position: at, Facing: facing}
}

// Shields and Hull are fractions of the model's maximum in [0, 1].
func (s *Ship) Shields() float64 {
	if s.model.MaxShields <= 0 {
		return 0
	}
	return s.shields / s.model.MaxShields
}

func (s *Ship) Hull() float64 {
	return s.hull / s.model.MaxHull
}

// IsActive reports whether the ship can still act.
func (s *Ship) IsActive() bool {
	return !s.disabled && !s.destroyed && !s.departed
}

// Steer applies one step of control input: turn in [-1, 1] of the model's
// turn rate and thrust in [0, 1] of its acceleration.
func (s *Ship) Steer(turn, thrust float64, dt float64) {
	if !s.IsActive() {
		return
	}
	turn = min(max(turn, -1), 1)
	thrust = min(max(thrust, 0), 1)
	s.motion.Facing = s.motion.Facing.Rotate(turn * s.model.Turn * dt)
	s.motion.Velocity = s.motion.Velocity.Add(s.motion.Facing.Unit().Mul(thrust * s.model.Thrust * dt))
	if s.model.MaxSpeed > 0 {
		s.motion.Velocity = s.motion.Velocity.Clamp(s.model.MaxSpeed)
	}
}

// SetFiring arms or disarms the ship's weapons for the next Fire call.
func (s *Ship) SetFiring(firing bool) { s.firing = firing }

// Fire launches every loaded weapon if the ship is firing, and counts down
// reload timers either way.
func (s *Ship) Fire() []*Projectile {
	var out []*Projectile
	for i, outfit := range s.model.Weapons {
		if s.reload[i] > 0 {
			s.reload[i]--
			continue
		}
		if !s.firing || !s.IsActive() {
			continue
		}
		weapon := outfit.Weapon()
		if weapon.Ammo != nil {
			if s.ammo[weapon.Ammo] <= 0 {
				continue
			}
			s.ammo[weapon.Ammo]--
		}
		s.reload[i] = weapon.Reload
		out = append(out, newProjectile(s, weapon))
	}
	return out
}

// Ammo returns the remaining count of one ammunition outfit.
func (s *Ship) Ammo(outfit *content.Outfit) int { return s.ammo[outfit] }

// AmmoOutfits lists the ammunition outfits the ship carries.
func (s *Ship) AmmoOutfits() []*content.Outfit {
	out := make([]*content.Outfit, 0, len(s.ammo))
	for outfit := range s.ammo {
		out = append(out, outfit)
	}
	return out
}

// TakeDamage applies a hit. Shields absorb shield damage first; hull damage
// only lands once shields are down. The results report state changes caused
// by this hit alone.
func (s *Ship) TakeDamage(shieldDamage, hullDamage float64) (disabledNow, destroyedNow bool) {
	if s.destroyed {
		return false, false
	}
	if s.shields > 0 {
		s.shields = max(s.shields-shieldDamage, 0)
		return false, false
	}
	s.hull = max(s.hull-hullDamage, 0)
	if !s.disabled && s.hull < DisableFraction*s.model.MaxHull {
		s.disabled = true
		disabledNow = true
	}
	if s.hull <= 0 {
		s.destroyed = true
		destroyedNow = true
	}
	return disabledNow, destroyedNow
}
