package engine

import (
	"fmt"
	"math/rand/v2"
	"sync"

	"github.com/google/uuid"

	"github.com/zeusync/skyloop/internal/core/ai"
	"github.com/zeusync/skyloop/internal/core/buffer"
	"github.com/zeusync/skyloop/internal/core/config"
	"github.com/zeusync/skyloop/internal/core/content"
	"github.com/zeusync/skyloop/internal/core/events"
	"github.com/zeusync/skyloop/internal/core/events/bus"
	"github.com/zeusync/skyloop/internal/core/geom"
	"github.com/zeusync/skyloop/internal/core/models"
	"github.com/zeusync/skyloop/internal/core/observability/log"
	"github.com/zeusync/skyloop/internal/core/perf"
	"github.com/zeusync/skyloop/internal/core/physics"
	"github.com/zeusync/skyloop/internal/core/player"
	"github.com/zeusync/skyloop/internal/core/render"
	"github.com/zeusync/skyloop/internal/core/tracking"
)

// Engine advances the world one fixed step at a time on a background
// goroutine while the caller draws the previous step. The caller drives it
// with the cycle
//
//	Wait() -> Step(isActive) -> Draw(r) -> Go()
//
// Everything except Click and Draw must be called from one goroutine. While a
// step is in flight (between Go and Wait) the worker owns the registry,
// trackers and event queue; the caller may only Draw and Click.
type Engine struct {
	cfg     config.Engine
	logger  log.Log
	session uuid.UUID
	player  *player.Player

	pilot   Pilot
	physics Physics
	builder DrawBuilder
	bus     bus.EventBus

	registry *models.Registry
	buffers  *buffer.Double
	events   *events.Aggregator
	forget   *tracking.ForgetTracker[buffer.Target]
	grudges  *tracking.GrudgeTracker
	perf     *perf.Monitor
	rng      *rand.Rand

	system    *content.System
	step      int
	flash     float64
	messages  []string
	wasActive bool

	// Caller-side protocol state.
	placed  bool
	pending bool
	closed  bool
	failed  error

	goCh   chan struct{}
	doneCh chan error
	stopCh chan struct{}
	wg     sync.WaitGroup

	clickMu sync.Mutex
	click   *geom.Point
}

// New creates an engine and starts its worker. Collaborators default to the
// built-in pilot, physics and draw builder.
func New(cfg config.Engine, logger log.Log, p *player.Player, opts ...Option) *Engine {
	session := uuid.New()
	e := &Engine{
		cfg:       cfg,
		logger:    logger.With(log.String("component", "engine"), log.String("session", session.String())),
		session:   session,
		player:    p,
		registry:  models.NewRegistry(),
		buffers:   buffer.NewDouble(),
		events:    events.NewAggregator(),
		forget:    tracking.NewForgetTracker[buffer.Target](cfg.ForgetSteps),
		grudges:   tracking.NewGrudgeTracker(cfg.GrudgeSteps),
		perf:      perf.NewMonitor(cfg.StepDuration(), cfg.LoadWindow),
		rng:       rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^0x9e3779b97f4a7c15)),
		wasActive: true,
		goCh:      make(chan struct{}, 1),
		doneCh:    make(chan error, 1),
		stopCh:    make(chan struct{}),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.pilot == nil {
		e.pilot = ai.NewPilot(cfg.SensorRange)
	}
	if e.physics == nil {
		e.physics = physics.NewIntegrator()
	}
	if e.builder == nil {
		e.builder = render.NewBuilder(cfg.SensorRange)
	}
	if e.bus == nil {
		e.bus = bus.New()
	}

	e.wg.Add(1)
	go e.run()
	return e
}

// Session identifies this engine instance; every engine log line carries it.
func (e *Engine) Session() uuid.UUID { return e.session }

// Place fills the registry with the player's fleet and enters the player's
// system. It must run before the first Go.
func (e *Engine) Place() error {
	if err := e.callerReady(); err != nil {
		return err
	}
	e.registry.Clear()
	e.events.Reset()

	ships := e.player.Ships()
	sys := e.player.System()
	for i, s := range ships {
		if s.IsDestroyed() {
			continue
		}
		at := geom.Point{}
		if i > 0 {
			at = geom.NewAngle(float64(i) * 360 / float64(len(ships))).Unit().Mul(4 * s.Radius())
		}
		s.Place(at, 0)
		s.SetYours(true)
		s.SetSystem(sys)
		e.registry.AddShip(s)
	}
	e.system = nil
	e.enterSystem(sys)
	e.placed = true

	e.logger.Info("fleet placed", log.Int("ships", e.registry.ShipCount()))
	return nil
}

// Go releases the worker to compute the next step into the write slot.
func (e *Engine) Go() error {
	if err := e.callerReady(); err != nil {
		return err
	}
	if !e.placed {
		return ErrNotPlaced
	}
	e.pending = true
	e.goCh <- struct{}{}
	return nil
}

// Wait blocks until the step released by Go has finished. An error from the
// step is returned once and leaves the engine failed. With no step in flight
// it returns immediately.
func (e *Engine) Wait() error {
	if !e.pending {
		return nil
	}
	err := <-e.doneCh
	e.pending = false
	if err != nil {
		e.failed = err
		e.logger.Error("step failed", log.Int("step", e.step), log.Error(err))
		return err
	}
	return nil
}

// Step does the caller-side bookkeeping between two computed steps. When
// isActive is false the game is paused and grudges do not age.
func (e *Engine) Step(isActive bool) error {
	if err := e.callerReady(); err != nil {
		return err
	}
	if !e.placed {
		return ErrNotPlaced
	}
	if isActive != e.wasActive {
		e.logger.Info("activity changed", log.Bool("active", isActive), log.Int("step", e.step))
		e.wasActive = isActive
	}

	published := e.events.Publish()
	if len(published) > 0 {
		if err := e.bus.PublishBatch(published); err != nil {
			e.logger.Warn("event handler failed", log.Error(err))
		}
	}

	e.resolveClick()

	e.grudges.Prune(e.registry)
	if isActive {
		for _, faction := range e.grudges.Advance() {
			e.release(faction)
			e.logger.Debug("grudge lapsed", log.String("faction", faction.Name()))
		}
	}
	for _, ev := range published {
		if !ev.Type().Has(events.Provoke) {
			continue
		}
		e.settle(ev)
		e.doGrudge(ev)
	}

	if sys := e.player.System(); sys != e.system {
		e.enterSystem(sys)
	}
	return nil
}

// Draw hands the last completed slot to r. It never blocks on the worker.
func (e *Engine) Draw(r Renderer) {
	r.Render(e.buffers.Read())
}

// Click records a screen-space point to resolve on the next Step. Only the
// latest click is kept. Safe for concurrent use.
func (e *Engine) Click(p geom.Point) {
	e.clickMu.Lock()
	e.click = &p
	e.clickMu.Unlock()
}

// Events returns the batch published by the last Step: the events of the
// step before it. The slice is unchanged until the next Step.
func (e *Engine) Events() []events.Event {
	return e.events.Published()
}

// Messages returns the recent HUD messages, oldest first.
func (e *Engine) Messages() []string {
	return e.messages
}

// Subscribe forwards published events matching mask to handler. Handlers run
// inside Step.
func (e *Engine) Subscribe(mask events.Type, handler bus.EventHandler) (bus.Subscription, error) {
	return e.bus.Subscribe(mask, handler)
}

// Metrics reports step cost counters. Only valid while no step is in flight.
func (e *Engine) Metrics() perf.Metrics {
	return e.perf.Metrics()
}

// Close stops the worker after any in-flight step and waits for it to exit.
// The result of that step, if any, is returned.
func (e *Engine) Close() error {
	if e.closed {
		return nil
	}
	e.closed = true
	close(e.stopCh)
	e.wg.Wait()

	var err error
	if e.pending {
		err = <-e.doneCh
		e.pending = false
	}
	e.logger.Info("engine stopped", log.Int("steps", e.step))
	return err
}

func (e *Engine) callerReady() error {
	switch {
	case e.closed:
		return ErrEngineClosed
	case e.pending:
		return ErrStepPending
	case e.failed != nil:
		return fmt.Errorf("%w: %w", ErrEngineFailed, e.failed)
	}
	return nil
}

// run serves released steps until Close. A step released before Close is
// still computed and reported, whichever channel the select picks first.
func (e *Engine) run() {
	defer e.wg.Done()
	for {
		select {
		case <-e.stopCh:
			select {
			case <-e.goCh:
				e.doneCh <- e.compute()
			default:
			}
			return
		case <-e.goCh:
			e.doneCh <- e.compute()
		}
	}
}

func (e *Engine) compute() error {
	err := e.safeStep()
	if err == nil {
		e.buffers.Swap()
	}
	return err
}

func (e *Engine) safeStep() (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrStepPanicked, r)
		}
	}()
	return e.calculateStep()
}

func (e *Engine) post(msg string) {
	e.messages = append(e.messages, msg)
	if extra := len(e.messages) - e.cfg.MessageLimit; extra > 0 {
		e.messages = append(e.messages[:0:0], e.messages[extra:]...)
	}
}

func (e *Engine) release(faction *content.Government) {
	if r, ok := e.pilot.(releaser); ok {
		r.Release(faction)
	}
}
