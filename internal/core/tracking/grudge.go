package tracking

import (
	"slices"

	"github.com/zeusync/skyloop/internal/core/content"
	"github.com/zeusync/skyloop/internal/core/models"
)

// Grudge is one outstanding request for help. Ship is held by ID only, so a
// grudge never keeps its ship alive and never resolves to a reused one.
type Grudge struct {
	Faction  *content.Government
	Ship     models.ShipID
	Attacker *content.Government
	Age      int
}

// GrudgeTracker holds at most one ask per faction.
type GrudgeTracker struct {
	expire int
	asks   map[content.GovernmentID]*Grudge
}

// NewGrudgeTracker creates a tracker whose asks lapse after expireSteps
// active steps; zero keeps them until their ship is gone.
func NewGrudgeTracker(expireSteps int) *GrudgeTracker {
	return &GrudgeTracker{
		expire: expireSteps,
		asks:   make(map[content.GovernmentID]*Grudge),
	}
}

// Ask records that ship, belonging to faction, wants help against attacker.
// It returns false if the faction already has a live ask; an ask whose ship
// is gone is replaced.
func (g *GrudgeTracker) Ask(faction *content.Government, ship models.ShipID, attacker *content.Government, r Resolver) bool {
	if _, ok := g.Lookup(faction, r); ok {
		return false
	}
	g.asks[faction.ID()] = &Grudge{Faction: faction, Ship: ship, Attacker: attacker}
	return true
}

// Lookup returns the live ask of a faction. A stale ask is removed and
// reported as absent.
func (g *GrudgeTracker) Lookup(faction *content.Government, r Resolver) (Grudge, bool) {
	ask, ok := g.asks[faction.ID()]
	if !ok {
		return Grudge{}, false
	}
	if !r.Alive(ask.Ship) {
		delete(g.asks, faction.ID())
		return Grudge{}, false
	}
	return *ask, true
}

// Advance ages every ask by one step and returns the factions whose asks
// lapsed.
func (g *GrudgeTracker) Advance() []*content.Government {
	var lapsed []*content.Government
	for id, ask := range g.asks {
		ask.Age++
		if g.expire > 0 && ask.Age >= g.expire {
			lapsed = append(lapsed, ask.Faction)
			delete(g.asks, id)
		}
	}
	sortGovernments(lapsed)
	return lapsed
}

// Settle removes every ask against attacker, returning the factions helped.
func (g *GrudgeTracker) Settle(attacker *content.Government) []*content.Government {
	var settled []*content.Government
	for id, ask := range g.asks {
		if ask.Attacker == attacker {
			settled = append(settled, ask.Faction)
			delete(g.asks, id)
		}
	}
	sortGovernments(settled)
	return settled
}

// Prune drops asks whose ship is gone.
func (g *GrudgeTracker) Prune(r Resolver) int {
	n := 0
	for id, ask := range g.asks {
		if !r.Alive(ask.Ship) {
			delete(g.asks, id)
			n++
		}
	}
	return n
}

func (g *GrudgeTracker) Len() int { return len(g.asks) }

func (g *GrudgeTracker) Reset() { clear(g.asks) }

func sortGovernments(govs []*content.Government) {
	slices.SortFunc(govs, func(a, b *content.Government) int {
		switch {
		case a.Name() < b.Name():
			return -1
		case a.Name() > b.Name():
			return 1
		default:
			return 0
		}
	})
}
