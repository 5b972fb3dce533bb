package player

import (
	"sync"

	"github.com/zeusync/skyloop/internal/core/content"
	"github.com/zeusync/skyloop/internal/core/models"
)

// Player is the human side of the simulation: a government, a fleet whose
// first ship is the flagship, and the system the fleet is in.
type Player struct {
	government *content.Government
	ships      []*models.Ship

	mu       sync.RWMutex
	system   *content.System
	selected models.ShipID
}

func New(gov *content.Government, system *content.System, ships ...*models.Ship) *Player {
	return &Player{government: gov, system: system, ships: ships}
}

// FromStart builds the starting fleet described by the content.
func FromStart(start content.Start) *Player {
	ships := make([]*models.Ship, 0, len(start.Ships))
	for _, s := range start.Ships {
		ships = append(ships, models.NewShip(s.Name, s.Model, start.Government))
	}
	return New(start.Government, start.System, ships...)
}

func (p *Player) Government() *content.Government { return p.government }

// Ships returns the whole fleet, destroyed ships included.
func (p *Player) Ships() []*models.Ship { return p.ships }

// Flagship is the first ship of the fleet that still exists.
func (p *Player) Flagship() *models.Ship {
	for _, s := range p.ships {
		if !s.IsDestroyed() {
			return s
		}
	}
	return nil
}

func (p *Player) System() *content.System {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.system
}

// Travel moves the fleet to another system. The engine notices the change
// on its next Step.
func (p *Player) Travel(system *content.System) {
	p.mu.Lock()
	p.system = system
	p.mu.Unlock()
}

// Select records the ship the player clicked on.
func (p *Player) Select(id models.ShipID) {
	p.mu.Lock()
	p.selected = id
	p.mu.Unlock()
}

func (p *Player) Selected() models.ShipID {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.selected
}
