package buffer

import (
	"github.com/zeusync/skyloop/internal/core/geom"
	"github.com/zeusync/skyloop/internal/core/models"
	"github.com/zeusync/skyloop/internal/core/render"
)

// Target is a clickable ship as it was drawn.
type Target struct {
	Center   geom.Point
	Facing   geom.Angle
	Radius   float64
	Category render.Category
	Ship     models.ShipID
}

// Status is the shield/hull ring drawn around a ship.
type Status struct {
	Position geom.Point
	Shields  float64
	Hull     float64
	Radius   float64
	IsEnemy  bool
}

// Escort is one row of the player's fleet panel.
type Escort struct {
	Name        string  `json:"name"`
	Model       string  `json:"model"`
	Shields     float64 `json:"shields"`
	Hull        float64 `json:"hull"`
	IsHere      bool    `json:"here"`
	IsDestroyed bool    `json:"destroyed"`
}

type Ammo struct {
	Outfit string `json:"outfit"`
	Count  int    `json:"count"`
}

// HUD is the text block shown next to the radar.
type HUD struct {
	System          string  `json:"system"`
	FlagshipShields float64 `json:"flagshipShields"`
	FlagshipHull    float64 `json:"flagshipHull"`
	TargetName      string  `json:"targetName,omitempty"`
	TargetGov       string  `json:"targetGov,omitempty"`
	TargetShields   float64 `json:"targetShields"`
	TargetHull      float64 `json:"targetHull"`
}

// Slot is everything the presentation side needs to draw one frame.
type Slot struct {
	Viewport  render.Viewport
	Drawables []render.Drawable
	Radar     render.Radar
	Targets   []Target
	Statuses  []Status
	Escorts   []Escort
	Ammo      []Ammo
	HUD       HUD
	Messages  []string

	Flash float64
	Step  int
	Load  float64
}

// Reset empties the slot for reuse, keeping allocated capacity.
func (s *Slot) Reset() {
	s.Viewport = render.Viewport{}
	s.Drawables = s.Drawables[:0]
	s.Radar = render.Radar{Blips: s.Radar.Blips[:0]}
	s.Targets = s.Targets[:0]
	s.Statuses = s.Statuses[:0]
	s.Escorts = s.Escorts[:0]
	s.Ammo = s.Ammo[:0]
	s.HUD = HUD{}
	s.Messages = s.Messages[:0]
	s.Flash = 0
	s.Step = 0
	s.Load = 0
}
