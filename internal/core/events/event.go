package events

import (
	"strings"

	"github.com/zeusync/skyloop/internal/core/content"
	"github.com/zeusync/skyloop/internal/core/models"
)

// Type is a bitmask; a single event can carry several flags, e.g. a hit that
// also provokes and disables its target.
type Type uint16

const (
	Hit Type = 1 << iota
	Provoke
	Disable
	Destroy

	None Type = 0
	All       = Hit | Provoke | Disable | Destroy
)

func (t Type) Has(flag Type) bool { return t&flag != 0 }

func (t Type) String() string {
	if t == None {
		return "none"
	}
	var parts []string
	for _, f := range []struct {
		flag Type
		name string
	}{{Hit, "hit"}, {Provoke, "provoke"}, {Disable, "disable"}, {Destroy, "destroy"}} {
		if t.Has(f.flag) {
			parts = append(parts, f.name)
		}
	}
	return strings.Join(parts, "|")
}

// Event records something one ship did to another during a step. Fields are
// copied at creation time so the record stays meaningful after either ship is
// gone.
type Event struct {
	typ       Type
	step      int
	actor     models.ShipID
	actorGov  *content.Government
	target    models.ShipID
	targetGov *content.Government
}

func New(typ Type, step int, actor models.ShipID, actorGov *content.Government, target *models.Ship) Event {
	return Event{
		typ:       typ,
		step:      step,
		actor:     actor,
		actorGov:  actorGov,
		target:    target.ID(),
		targetGov: target.Government(),
	}
}

func (e Event) Type() Type                           { return e.typ }
func (e Event) Step() int                            { return e.step }
func (e Event) Actor() models.ShipID                 { return e.actor }
func (e Event) ActorGovernment() *content.Government { return e.actorGov }
func (e Event) Target() models.ShipID                { return e.target }
func (e Event) TargetGovernment() *content.Government {
	return e.targetGov
}
