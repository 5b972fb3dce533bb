package engine

import (
	"github.com/zeusync/skyloop/internal/core/ai"
	"github.com/zeusync/skyloop/internal/core/buffer"
	"github.com/zeusync/skyloop/internal/core/content"
	"github.com/zeusync/skyloop/internal/core/events/bus"
	"github.com/zeusync/skyloop/internal/core/models"
	"github.com/zeusync/skyloop/internal/core/physics"
	"github.com/zeusync/skyloop/internal/core/render"
)

// Pilot makes the decisions of AI-controlled ships. Decide is called from
// several goroutines at once during a step and must only read the view.
type Pilot interface {
	Decide(ship *models.Ship, view models.View) (ai.Intents, error)
	RequestHelp(req ai.HelpRequest)
}

// releaser is implemented by pilots that keep standing orders.
type releaser interface {
	Release(faction *content.Government)
}

type Physics interface {
	Integrate(body models.Body, dt float64)
	DetectCollisions(projectiles []*models.Projectile, ships []*models.Ship, asteroids []*models.Asteroid) []physics.Impact
}

type DrawBuilder interface {
	Build(view models.View, vp render.Viewport) ([]render.Drawable, render.Radar)
}

// Renderer consumes a completed slot. The slot is only valid for the
// duration of the call.
type Renderer interface {
	Render(slot *buffer.Slot)
}

// RendererFunc adapts a function to Renderer.
type RendererFunc func(slot *buffer.Slot)

func (f RendererFunc) Render(slot *buffer.Slot) { f(slot) }

// Renderers fans one frame out to several renderers in order.
type Renderers []Renderer

func (rs Renderers) Render(slot *buffer.Slot) {
	for _, r := range rs {
		r.Render(slot)
	}
}

type Option func(*Engine)

func WithPilot(p Pilot) Option { return func(e *Engine) { e.pilot = p } }

func WithPhysics(p Physics) Option { return func(e *Engine) { e.physics = p } }

func WithDrawBuilder(b DrawBuilder) Option { return func(e *Engine) { e.builder = b } }

// WithEventBus shares a bus with other components; otherwise the engine
// creates its own.
func WithEventBus(b bus.EventBus) Option { return func(e *Engine) { e.bus = b } }
