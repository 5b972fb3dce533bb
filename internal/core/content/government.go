package content

import (
	"github.com/cespare/xxhash/v2"
)

// GovernmentID is a stable hash of a government's name, used as a map key by
// anything that tracks per-faction state.
type GovernmentID uint64

func GovernmentIDOf(name string) GovernmentID {
	return GovernmentID(xxhash.Sum64String(name))
}

// Government is an immutable faction descriptor. Attitudes are filled in once
// by the catalog and never change afterwards.
type Government struct {
	id       GovernmentID
	name     string
	color    string
	isPlayer bool
	enemies  map[GovernmentID]struct{}
}

func NewGovernment(name, color string, isPlayer bool) *Government {
	return &Government{
		id:       GovernmentIDOf(name),
		name:     name,
		color:    color,
		isPlayer: isPlayer,
		enemies:  make(map[GovernmentID]struct{}),
	}
}

func (g *Government) ID() GovernmentID { return g.id }
func (g *Government) Name() string     { return g.name }
func (g *Government) Color() string    { return g.color }
func (g *Government) IsPlayer() bool   { return g.isPlayer }

// IsEnemy reports whether the two governments are hostile. A nil government
// is hostile to nobody.
func (g *Government) IsEnemy(other *Government) bool {
	if g == nil || other == nil || g == other {
		return false
	}
	_, hostile := g.enemies[other.id]
	return hostile
}

// declareWar is only called while a catalog is being built.
func declareWar(a, b *Government) {
	a.enemies[b.id] = struct{}{}
	b.enemies[a.id] = struct{}{}
}
