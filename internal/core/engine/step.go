package engine

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/zeusync/skyloop/internal/core/ai"
	"github.com/zeusync/skyloop/internal/core/buffer"
	"github.com/zeusync/skyloop/internal/core/events"
	"github.com/zeusync/skyloop/internal/core/geom"
	"github.com/zeusync/skyloop/internal/core/models"
	"github.com/zeusync/skyloop/internal/core/observability/log"
	"github.com/zeusync/skyloop/internal/core/render"
	"github.com/zeusync/skyloop/pkg/concurrent"
)

const (
	sparkLifetime     = 6
	explosionLifetime = 30
	flashDecay        = 0.9
)

// calculateStep runs on the worker. The order of the phases is fixed: AI,
// movement, collisions, weapons and expiry, removal, forget tracking, then
// the write slot.
func (e *Engine) calculateStep() error {
	e.step++
	closed, err := e.perf.Measure(e.simulate)
	if err != nil {
		return err
	}
	if closed && e.perf.Load() > 1 {
		e.logger.Debug("simulation overloaded", log.Float64("load", e.perf.Load()), log.Int("step", e.step))
	}
	e.flash *= flashDecay
	if e.flash < 0.01 {
		e.flash = 0
	}
	return nil
}

func (e *Engine) simulate() error {
	dt := e.cfg.StepDuration().Seconds()
	flagship := e.player.Flagship()

	if err := e.decide(flagship, dt); err != nil {
		return err
	}
	e.move(dt)
	e.collide()
	e.fire()

	for _, s := range e.registry.Prune() {
		e.logger.Debug("ship removed", log.String("ship", s.Name()), log.Bool("destroyed", s.IsDestroyed()))
	}

	vp := e.viewport(flagship)
	e.updateForget(vp, flagship)
	e.fill(e.buffers.Write(), vp, flagship)
	return nil
}

// decide asks the pilot for every active ship except the flagship in
// parallel, then applies the intents in registry order.
func (e *Engine) decide(flagship *models.Ship, dt float64) error {
	controlled := slices.DeleteFunc(slices.Clone(e.registry.Ships()), func(s *models.Ship) bool {
		return s == flagship || !s.IsActive()
	})
	intents, err := concurrent.Map(context.Background(), controlled, e.cfg.Parallelism,
		func(_ context.Context, s *models.Ship) (in ai.Intents, err error) {
			// Pilots run on errgroup goroutines, out of reach of safeStep.
			defer func() {
				if r := recover(); r != nil {
					err = fmt.Errorf("%w: pilot: %v", ErrStepPanicked, r)
				}
			}()
			return e.pilot.Decide(s, e.registry)
		})
	if err != nil {
		return fmt.Errorf("pilot: %w", err)
	}
	for i, s := range controlled {
		in := intents[i]
		s.Steer(in.Turn, in.Thrust, dt)
		s.SetFiring(in.Fire)
		s.SetTarget(in.Target)
	}
	return nil
}

func (e *Engine) move(dt float64) {
	for _, s := range e.registry.Ships() {
		e.physics.Integrate(s, dt)
	}
	for _, p := range e.registry.Projectiles() {
		e.physics.Integrate(p, dt)
	}
	for _, fx := range e.registry.Effects() {
		e.physics.Integrate(fx, dt)
	}
	for _, a := range e.registry.Asteroids() {
		e.physics.Integrate(a, dt)
	}
	e.registry.AsteroidField().Wrap()
}

// collide applies every impact and queues one event per ship hit.
func (e *Engine) collide() {
	impacts := e.physics.DetectCollisions(e.registry.Projectiles(), e.registry.Ships(), e.registry.Asteroids())
	for _, im := range impacts {
		p := im.Projectile
		p.Consume()
		if im.Ship == nil {
			e.registry.AddEffect(models.NewEffect("spark", im.Point, geom.Point{}, sparkLifetime))
			continue
		}

		victim := im.Ship
		w := p.Weapon()
		disabled, destroyed := victim.TakeDamage(w.ShieldDamage, w.HullDamage)
		typ := events.Hit
		if p.Government() != victim.Government() {
			typ |= events.Provoke
		}
		if disabled {
			typ |= events.Disable
		}
		if destroyed {
			typ |= events.Destroy
			e.registry.AddEffect(models.NewEffect("explosion", victim.Position(), victim.Velocity(), explosionLifetime))
		}
		e.events.Add(events.New(typ, e.step, p.Source(), p.Government(), victim))
	}
}

func (e *Engine) fire() {
	for _, s := range e.registry.Ships() {
		for _, p := range s.Fire() {
			e.registry.AddProjectile(p)
		}
	}
	for _, p := range e.registry.Projectiles() {
		p.Age()
	}
	for _, fx := range e.registry.Effects() {
		fx.Age()
	}
}

func (e *Engine) viewport(flagship *models.Ship) render.Viewport {
	vp := render.Viewport{
		Width:    e.cfg.Viewport.Width,
		Height:   e.cfg.Viewport.Height,
		Observer: e.player.Government(),
	}
	if flagship != nil {
		vp.Center = flagship.Position()
		vp.Velocity = flagship.Velocity()
		vp.Selected = flagship.Target()
	}
	return vp
}

func targetOf(vp render.Viewport, s *models.Ship) buffer.Target {
	return buffer.Target{
		Center:   s.Position(),
		Facing:   s.Facing(),
		Radius:   s.Radius(),
		Category: vp.Classify(s),
		Ship:     s.ID(),
	}
}

// updateForget ages the tracker, then records which ships are on screen.
func (e *Engine) updateForget(vp render.Viewport, flagship *models.Ship) {
	for _, id := range e.forget.Tick() {
		e.logger.Debug("ship forgotten", log.Uint64("ship", uint64(id)))
	}
	for _, s := range e.registry.Ships() {
		if s == flagship {
			continue
		}
		e.forget.Observe(s.ID(), vp.Contains(s.Position(), s.Radius()), targetOf(vp, s))
	}
	e.forget.Prune(e.registry)
}

// fill rebuilds the write slot from the registry. Targets list ships on
// screen first, then ships remembered after leaving it.
func (e *Engine) fill(slot *buffer.Slot, vp render.Viewport, flagship *models.Ship) {
	slot.Reset()
	slot.Viewport = vp
	slot.Drawables, slot.Radar = e.builder.Build(e.registry, vp)

	gov := e.player.Government()
	for _, s := range e.registry.Ships() {
		if s == flagship || !vp.Contains(s.Position(), s.Radius()) {
			continue
		}
		slot.Targets = append(slot.Targets, targetOf(vp, s))
		slot.Statuses = append(slot.Statuses, buffer.Status{
			Position: vp.ToScreen(s.Position()),
			Shields:  s.Shields(),
			Hull:     s.Hull(),
			Radius:   s.Radius(),
			IsEnemy:  s.Government().IsEnemy(gov),
		})
	}
	e.forget.Each(func(_ models.ShipID, cached buffer.Target) {
		slot.Targets = append(slot.Targets, cached)
	})

	for _, s := range e.player.Ships() {
		if s == flagship {
			continue
		}
		slot.Escorts = append(slot.Escorts, buffer.Escort{
			Name:        s.Name(),
			Model:       s.Model().Name,
			Shields:     s.Shields(),
			Hull:        s.Hull(),
			IsHere:      !s.IsDestroyed() && s.System() == e.system,
			IsDestroyed: s.IsDestroyed(),
		})
	}

	if flagship != nil {
		for _, outfit := range flagship.AmmoOutfits() {
			slot.Ammo = append(slot.Ammo, buffer.Ammo{Outfit: outfit.Name(), Count: flagship.Ammo(outfit)})
		}
		slices.SortFunc(slot.Ammo, func(a, b buffer.Ammo) int { return strings.Compare(a.Outfit, b.Outfit) })

		slot.HUD.FlagshipShields = flagship.Shields()
		slot.HUD.FlagshipHull = flagship.Hull()
		if target, ok := e.registry.Ship(flagship.Target()); ok {
			slot.HUD.TargetName = target.Name()
			slot.HUD.TargetGov = target.Government().Name()
			slot.HUD.TargetShields = target.Shields()
			slot.HUD.TargetHull = target.Hull()
		}
	}
	if e.system != nil {
		slot.HUD.System = e.system.Name
	}
	slot.Messages = append(slot.Messages, e.messages...)
	slot.Flash = e.flash
	slot.Step = e.step
	slot.Load = e.perf.Load()
}
