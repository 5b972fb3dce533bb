package server

import (
	"github.com/zeusync/skyloop/internal/core/buffer"
	"github.com/zeusync/skyloop/internal/core/events"
	"github.com/zeusync/skyloop/internal/core/geom"
	"github.com/zeusync/skyloop/internal/core/render"
)

const (
	typeFrame = "frame"
	typeEvent = "event"

	actionClick = "click"
)

var kindNames = [...]string{
	render.KindShip:       "ship",
	render.KindProjectile: "projectile",
	render.KindEffect:     "effect",
	render.KindAsteroid:   "asteroid",
}

type objectMessage struct {
	Kind     string     `json:"kind"`
	Position geom.Point `json:"position"`
	Facing   float64    `json:"facing"`
	Radius   float64    `json:"radius,omitempty"`
	Category string     `json:"category,omitempty"`
	Label    string     `json:"label,omitempty"`
}

type blipMessage struct {
	Offset   geom.Point `json:"offset"`
	Radius   float64    `json:"radius"`
	Category string     `json:"category"`
}

type targetMessage struct {
	Ship     uint64     `json:"ship"`
	Center   geom.Point `json:"center"`
	Radius   float64    `json:"radius"`
	Category string     `json:"category"`
}

type frameMessage struct {
	Type     string          `json:"type"`
	Step     int             `json:"step"`
	Load     float64         `json:"load"`
	Flash    float64         `json:"flash,omitempty"`
	Center   geom.Point      `json:"center"`
	HUD      buffer.HUD      `json:"hud"`
	Objects  []objectMessage `json:"objects"`
	Radar    []blipMessage   `json:"radar"`
	Targets  []targetMessage `json:"targets"`
	Escorts  []buffer.Escort `json:"escorts,omitempty"`
	Ammo     []buffer.Ammo   `json:"ammo,omitempty"`
	Messages []string        `json:"messages,omitempty"`
}

type eventMessage struct {
	Type   string `json:"type"`
	Kind   string `json:"kind"`
	Step   int    `json:"step"`
	Actor  uint64 `json:"actor"`
	Target uint64 `json:"target"`
}

// controlMessage is what spectators send. Only clicks are understood; X and
// Y are screen coordinates relative to the viewport centre.
type controlMessage struct {
	Action string  `json:"action"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
}

func newFrame(slot *buffer.Slot) frameMessage {
	f := frameMessage{
		Type:     typeFrame,
		Step:     slot.Step,
		Load:     slot.Load,
		Flash:    slot.Flash,
		Center:   slot.Viewport.Center,
		HUD:      slot.HUD,
		Objects:  make([]objectMessage, 0, len(slot.Drawables)),
		Radar:    make([]blipMessage, 0, len(slot.Radar.Blips)),
		Targets:  make([]targetMessage, 0, len(slot.Targets)),
		Escorts:  slot.Escorts,
		Ammo:     slot.Ammo,
		Messages: slot.Messages,
	}
	for _, d := range slot.Drawables {
		obj := objectMessage{
			Kind:     kindNames[d.Kind],
			Position: d.Position,
			Facing:   d.Facing.Degrees(),
			Radius:   d.Radius,
			Label:    d.Label,
		}
		if d.Kind == render.KindShip {
			obj.Category = d.Category.String()
		}
		f.Objects = append(f.Objects, obj)
	}
	for _, b := range slot.Radar.Blips {
		f.Radar = append(f.Radar, blipMessage{Offset: b.Offset, Radius: b.Radius, Category: b.Category.String()})
	}
	for _, t := range slot.Targets {
		f.Targets = append(f.Targets, targetMessage{
			Ship:     uint64(t.Ship),
			Center:   t.Center,
			Radius:   t.Radius,
			Category: t.Category.String(),
		})
	}
	return f
}

func newEvent(ev events.Event) eventMessage {
	return eventMessage{
		Type:   typeEvent,
		Kind:   ev.Type().String(),
		Step:   ev.Step(),
		Actor:  uint64(ev.Actor()),
		Target: uint64(ev.Target()),
	}
}
