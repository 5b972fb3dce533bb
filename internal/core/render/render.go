package render

import (
	"github.com/zeusync/skyloop/internal/core/content"
	"github.com/zeusync/skyloop/internal/core/geom"
	"github.com/zeusync/skyloop/internal/core/models"
)

// Category decides how a ship is coloured on screen and on the radar.
type Category uint8

const (
	CategoryPlayer Category = iota
	CategoryFriendly
	CategoryUnfriendly
	CategoryHostile
	CategoryInactive
	CategorySelected
	CategoryAnomaly
)

func (c Category) String() string {
	switch c {
	case CategoryPlayer:
		return "player"
	case CategoryFriendly:
		return "friendly"
	case CategoryUnfriendly:
		return "unfriendly"
	case CategoryHostile:
		return "hostile"
	case CategoryInactive:
		return "inactive"
	case CategorySelected:
		return "selected"
	default:
		return "anomaly"
	}
}

// Viewport is the window into the world a frame is drawn for. Observer and
// Selected let the builder colour ships relative to the player.
type Viewport struct {
	Center   geom.Point
	Velocity geom.Point
	Width    float64
	Height   float64
	Observer *content.Government
	Selected models.ShipID
}

// ToScreen converts a world position to screen space, origin at the centre.
func (v Viewport) ToScreen(p geom.Point) geom.Point { return p.Sub(v.Center) }

// Contains reports whether a circle overlaps the viewport.
func (v Viewport) Contains(p geom.Point, radius float64) bool {
	s := v.ToScreen(p)
	return s.X+radius >= -v.Width/2 && s.X-radius <= v.Width/2 &&
		s.Y+radius >= -v.Height/2 && s.Y-radius <= v.Height/2
}

// Classify returns the category of a ship as seen by the viewport's observer.
func (v Viewport) Classify(s *models.Ship) Category {
	switch {
	case s.ID() == v.Selected:
		return CategorySelected
	case s.IsYours():
		return CategoryPlayer
	case !s.IsActive():
		return CategoryInactive
	case s.Government().IsEnemy(v.Observer):
		return CategoryHostile
	case s.Government() == v.Observer:
		return CategoryFriendly
	default:
		return CategoryUnfriendly
	}
}

type Kind uint8

const (
	KindShip Kind = iota
	KindProjectile
	KindEffect
	KindAsteroid
)

// Drawable is one object positioned in screen space.
type Drawable struct {
	Kind     Kind
	Position geom.Point
	Facing   geom.Angle
	Radius   float64
	Category Category
	Label    string
}

// Blip is a radar contact relative to the radar centre.
type Blip struct {
	Offset   geom.Point
	Radius   float64
	Category Category
}

type Radar struct {
	Range float64
	Blips []Blip
}
