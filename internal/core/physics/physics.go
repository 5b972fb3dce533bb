package physics

import (
	"math"

	"github.com/zeusync/skyloop/internal/core/geom"
	"github.com/zeusync/skyloop/internal/core/models"
)

// Impact is one projectile striking either a ship or an asteroid; exactly one
// of Ship and Asteroid is set.
type Impact struct {
	Projectile *models.Projectile
	Ship       *models.Ship
	Asteroid   *models.Asteroid
	Point      geom.Point
}

// Integrator is the default Newtonian integrator with circle collisions.
type Integrator struct{}

func NewIntegrator() *Integrator { return &Integrator{} }

// Integrate advances a body by dt seconds at constant velocity and spin.
func (Integrator) Integrate(body models.Body, dt float64) {
	m := body.Motion()
	m.Position = m.Position.Add(m.Velocity.Mul(dt))
	if m.Spin != 0 {
		m.Facing = m.Facing.Rotate(m.Spin * dt)
	}
}

// DetectCollisions pairs every live projectile with the closest object it
// overlaps. Projectiles never hit their source or ships of their own
// government, and destroyed or departed ships are skipped. Impacts are
// returned in projectile order.
func (Integrator) DetectCollisions(projectiles []*models.Projectile, ships []*models.Ship, asteroids []*models.Asteroid) []Impact {
	var impacts []Impact
	for _, p := range projectiles {
		if p.Expired() {
			continue
		}
		best := math.Inf(1)
		var hit Impact
		for _, s := range ships {
			if s.ID() == p.Source() || s.Government() == p.Government() || s.IsDestroyed() || s.HasDeparted() {
				continue
			}
			if d, ok := overlap(p, s.Position(), s.Radius()); ok && d < best {
				best = d
				hit = Impact{Projectile: p, Ship: s}
			}
		}
		for _, a := range asteroids {
			if d, ok := overlap(p, a.Position(), a.Radius()); ok && d < best {
				best = d
				hit = Impact{Projectile: p, Asteroid: a}
			}
		}
		if hit.Projectile != nil {
			hit.Point = p.Position()
			impacts = append(impacts, hit)
		}
	}
	return impacts
}

func overlap(p *models.Projectile, center geom.Point, radius float64) (float64, bool) {
	d := p.Position().Distance(center)
	return d, d <= radius+p.Radius()
}
