package models

import (
	"github.com/zeusync/skyloop/internal/core/content"
	"github.com/zeusync/skyloop/internal/core/geom"
)

type Projectile struct {
	motion     Motion
	weapon     *content.Weapon
	source     ShipID
	government *content.Government
	lifetime   int
}

func newProjectile(from *Ship, weapon *content.Weapon) *Projectile {
	facing := from.motion.Facing
	return &Projectile{
		motion: Motion{
			Position: from.motion.Position.Add(facing.Unit().Mul(from.Radius())),
			Velocity: from.motion.Velocity.Add(facing.Unit().Mul(weapon.Velocity)),
			Facing:   facing,
		},
		weapon:     weapon,
		source:     from.id,
		government: from.government,
		lifetime:   weapon.Lifetime,
	}
}

func (p *Projectile) Motion() *Motion                 { return &p.motion }
func (p *Projectile) Position() geom.Point            { return p.motion.Position }
func (p *Projectile) Weapon() *content.Weapon         { return p.weapon }
func (p *Projectile) Source() ShipID                  { return p.source }
func (p *Projectile) Government() *content.Government { return p.government }
func (p *Projectile) Radius() float64                 { return p.weapon.Radius }
func (p *Projectile) Expired() bool                   { return p.lifetime <= 0 }

// Age counts down one step of lifetime.
func (p *Projectile) Age() { p.lifetime-- }

// Consume marks the projectile spent after an impact.
func (p *Projectile) Consume() { p.lifetime = 0 }

// Effect is a purely visual object such as an explosion.
type Effect struct {
	motion   Motion
	name     string
	lifetime int
}

func NewEffect(name string, at geom.Point, velocity geom.Point, lifetime int) *Effect {
	return &Effect{
		motion:   Motion{Position: at, Velocity: velocity},
		name:     name,
		lifetime: lifetime,
	}
}

func (e *Effect) Motion() *Motion      { return &e.motion }
func (e *Effect) Name() string         { return e.name }
func (e *Effect) Position() geom.Point { return e.motion.Position }
func (e *Effect) Expired() bool        { return e.lifetime <= 0 }
func (e *Effect) Age()                 { e.lifetime-- }
