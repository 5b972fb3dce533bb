package ai

import (
	"math"
	"sync"

	"github.com/zeusync/skyloop/internal/core/content"
	"github.com/zeusync/skyloop/internal/core/geom"
	"github.com/zeusync/skyloop/internal/core/models"
)

// Intents is one ship's control input for a step.
type Intents struct {
	// Turn is in [-1, 1] of the ship's turn rate, Thrust in [0, 1].
	Turn   float64
	Thrust float64
	Fire   bool
	Target models.ShipID
}

// HelpRequest asks the ships of Faction to turn on Attacker. Allies are the
// ships the request reached when it was issued.
type HelpRequest struct {
	Faction  *content.Government
	Victim   models.ShipID
	Attacker *content.Government
	Allies   []models.ShipID
}

// Pilot is a simple pursuit pilot: keep the current target while it is a
// valid enemy, otherwise pick the closest enemy in sensor range, turn toward
// it and fire once lined up. Help requests add the attacker's government to
// the faction's enemies.
type Pilot struct {
	sensorRange float64
	fireCone    float64

	mu     sync.RWMutex
	orders map[content.GovernmentID]*content.Government
}

func NewPilot(sensorRange float64) *Pilot {
	return &Pilot{
		sensorRange: sensorRange,
		fireCone:    10,
		orders:      make(map[content.GovernmentID]*content.Government),
	}
}

// Decide is safe for concurrent use; it only reads the view.
func (p *Pilot) Decide(ship *models.Ship, view models.View) (Intents, error) {
	if !ship.IsActive() {
		return Intents{}, nil
	}
	target := p.pick(ship, view)
	if target == nil {
		// Coast to a stop.
		var in Intents
		if v := ship.Velocity(); v.Length() > 1 {
			in.Turn = steer(ship.Facing(), geom.AngleOf(v.Mul(-1)))
			in.Thrust = aligned(ship.Facing(), geom.AngleOf(v.Mul(-1)), p.fireCone)
		}
		return in, nil
	}

	offset := target.Position().Sub(ship.Position())
	heading := geom.AngleOf(offset)
	in := Intents{
		Target: target.ID(),
		Turn:   steer(ship.Facing(), heading),
	}
	if offset.Length() > 4*(ship.Radius()+target.Radius()) {
		in.Thrust = aligned(ship.Facing(), heading, 45)
	}
	in.Fire = math.Abs(ship.Facing().Toward(heading)) <= p.fireCone
	return in, nil
}

// RequestHelp records an order for the faction until Release.
func (p *Pilot) RequestHelp(req HelpRequest) {
	if req.Faction == nil || req.Attacker == nil {
		return
	}
	p.mu.Lock()
	p.orders[req.Faction.ID()] = req.Attacker
	p.mu.Unlock()
}

// Release drops the faction's standing order.
func (p *Pilot) Release(faction *content.Government) {
	p.mu.Lock()
	delete(p.orders, faction.ID())
	p.mu.Unlock()
}

// Order returns the government the faction was asked to attack.
func (p *Pilot) Order(faction *content.Government) (*content.Government, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	gov, ok := p.orders[faction.ID()]
	return gov, ok
}

func (p *Pilot) hostile(ship, other *models.Ship) bool {
	if other.ID() == ship.ID() || !other.IsActive() {
		return false
	}
	gov := ship.Government()
	if gov.IsEnemy(other.Government()) {
		return true
	}
	ordered, ok := p.Order(gov)
	return ok && ordered == other.Government()
}

func (p *Pilot) pick(ship *models.Ship, view models.View) *models.Ship {
	if current, ok := view.Ship(ship.Target()); ok && p.hostile(ship, current) {
		return current
	}
	var best *models.Ship
	bestDist := math.Inf(1)
	for _, other := range view.Ships() {
		if !p.hostile(ship, other) {
			continue
		}
		d := ship.Position().Distance(other.Position())
		if p.sensorRange > 0 && d > p.sensorRange {
			continue
		}
		if d < bestDist {
			best, bestDist = other, d
		}
	}
	return best
}

// steer returns a turn command that closes on the heading without
// overshooting much.
func steer(facing, heading geom.Angle) float64 {
	return min(max(facing.Toward(heading)/30, -1), 1)
}

func aligned(facing, heading geom.Angle, cone float64) float64 {
	if math.Abs(facing.Toward(heading)) <= cone {
		return 1
	}
	return 0
}
