package render

import (
	"github.com/zeusync/skyloop/internal/core/geom"
	"github.com/zeusync/skyloop/internal/core/models"
)

// Builder produces draw lists and radar contacts from the registry. It keeps
// no state between frames.
type Builder struct {
	RadarRange float64
}

func NewBuilder(radarRange float64) *Builder {
	return &Builder{RadarRange: radarRange}
}

// Build culls to the viewport for the draw list and to RadarRange for the
// radar. Draw order is asteroids, ships, projectiles, effects, each in
// registry order.
func (b *Builder) Build(view models.View, vp Viewport) ([]Drawable, Radar) {
	radar := Radar{Range: b.RadarRange}
	var list []Drawable

	for _, a := range view.Asteroids() {
		if vp.Contains(a.Position(), a.Radius()) {
			list = append(list, Drawable{
				Kind:     KindAsteroid,
				Position: vp.ToScreen(a.Position()),
				Facing:   a.Motion().Facing,
				Radius:   a.Radius(),
				Category: CategoryAnomaly,
			})
		}
		b.blip(&radar, vp, a.Position(), a.Radius(), CategoryAnomaly)
	}
	for _, s := range view.Ships() {
		category := vp.Classify(s)
		if vp.Contains(s.Position(), s.Radius()) {
			list = append(list, Drawable{
				Kind:     KindShip,
				Position: vp.ToScreen(s.Position()),
				Facing:   s.Facing(),
				Radius:   s.Radius(),
				Category: category,
				Label:    s.Name(),
			})
		}
		b.blip(&radar, vp, s.Position(), s.Radius(), category)
	}
	for _, p := range view.Projectiles() {
		if vp.Contains(p.Position(), p.Radius()) {
			list = append(list, Drawable{
				Kind:     KindProjectile,
				Position: vp.ToScreen(p.Position()),
				Facing:   p.Motion().Facing,
				Radius:   p.Radius(),
			})
		}
	}
	for _, e := range view.Effects() {
		if vp.Contains(e.Position(), 0) {
			list = append(list, Drawable{
				Kind:     KindEffect,
				Position: vp.ToScreen(e.Position()),
				Label:    e.Name(),
			})
		}
	}
	return list, radar
}

func (b *Builder) blip(radar *Radar, vp Viewport, at geom.Point, radius float64, category Category) {
	offset := at.Sub(vp.Center)
	if b.RadarRange > 0 && offset.Length() > b.RadarRange {
		return
	}
	radar.Blips = append(radar.Blips, Blip{Offset: offset, Radius: radius, Category: category})
}
