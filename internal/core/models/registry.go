package models

import "slices"

// View is the read-only face of the registry handed to collaborators. The
// pointers it returns must not be mutated through it.
type View interface {
	Ships() []*Ship
	Ship(id ShipID) (*Ship, bool)
	Projectiles() []*Projectile
	Effects() []*Effect
	Asteroids() []*Asteroid
}

var _ View = (*Registry)(nil)

// Registry owns the live simulation objects. It is not safe for concurrent
// use; the engine's step protocol decides who may touch it.
type Registry struct {
	ships       []*Ship
	byID        map[ShipID]*Ship
	projectiles []*Projectile
	effects     []*Effect
	asteroids   *AsteroidField
}

func NewRegistry() *Registry {
	return &Registry{
		byID:      make(map[ShipID]*Ship),
		asteroids: NewAsteroidField(),
	}
}

// AddShip appends a ship; adding the same ship twice is a no-op.
func (r *Registry) AddShip(s *Ship) {
	if _, ok := r.byID[s.id]; ok {
		return
	}
	r.ships = append(r.ships, s)
	r.byID[s.id] = s
}

func (r *Registry) Ships() []*Ship { return r.ships }

// Ship resolves an ID against the live set.
func (r *Registry) Ship(id ShipID) (*Ship, bool) {
	s, ok := r.byID[id]
	return s, ok
}

// Alive reports whether an ID still refers to a ship in the registry.
func (r *Registry) Alive(id ShipID) bool {
	_, ok := r.byID[id]
	return ok
}

func (r *Registry) ShipCount() int { return len(r.ships) }

func (r *Registry) AddProjectile(p *Projectile) { r.projectiles = append(r.projectiles, p) }
func (r *Registry) Projectiles() []*Projectile  { return r.projectiles }
func (r *Registry) AddEffect(e *Effect)         { r.effects = append(r.effects, e) }
func (r *Registry) Effects() []*Effect          { return r.effects }
func (r *Registry) Asteroids() []*Asteroid      { return r.asteroids.All() }
func (r *Registry) AsteroidField() *AsteroidField {
	return r.asteroids
}

// RemoveShips drops every ship matching the predicate, keeping the order of
// the rest, and returns the removed ships.
func (r *Registry) RemoveShips(match func(*Ship) bool) []*Ship {
	var removed []*Ship
	r.ships = slices.DeleteFunc(r.ships, func(s *Ship) bool {
		if !match(s) {
			return false
		}
		removed = append(removed, s)
		delete(r.byID, s.id)
		return true
	})
	return removed
}

// Prune removes destroyed or departed ships and expired projectiles and
// effects.
func (r *Registry) Prune() []*Ship {
	r.projectiles = slices.DeleteFunc(r.projectiles, (*Projectile).Expired)
	r.effects = slices.DeleteFunc(r.effects, (*Effect).Expired)
	return r.RemoveShips(func(s *Ship) bool { return s.destroyed || s.departed })
}

// ClearTransient drops projectiles and effects.
func (r *Registry) ClearTransient() {
	clear(r.projectiles)
	r.projectiles = r.projectiles[:0]
	clear(r.effects)
	r.effects = r.effects[:0]
}

// Clear empties the registry entirely.
func (r *Registry) Clear() {
	r.RemoveShips(func(*Ship) bool { return true })
	r.ClearTransient()
	r.asteroids.Reset(nil, nil)
}
