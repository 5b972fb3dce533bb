package engine

import (
	"github.com/zeusync/skyloop/internal/core/buffer"
	"github.com/zeusync/skyloop/internal/core/geom"
	"github.com/zeusync/skyloop/internal/core/models"
	"github.com/zeusync/skyloop/internal/core/observability/log"
)

// resolveClick consumes the pending click against the readable slot. A hit
// becomes the flagship's target; a miss changes nothing.
func (e *Engine) resolveClick() {
	e.clickMu.Lock()
	click := e.click
	e.click = nil
	e.clickMu.Unlock()
	if click == nil {
		return
	}

	id, ok := pick(e.buffers.Read(), *click)
	if !ok || !e.registry.Alive(id) {
		return
	}
	if flagship := e.player.Flagship(); flagship != nil {
		flagship.SetTarget(id)
	}
	e.player.Select(id)

	fields := []log.Field{log.Uint64("ship", uint64(id))}
	if left, remembered := e.forget.Countdown(id); remembered {
		fields = append(fields, log.Int("forget_in", left))
	}
	e.logger.Debug("target selected", fields...)
}

// pick finds the target whose centre is closest to a screen point, among
// those whose radius contains it. On equal distance the later target wins.
func pick(slot *buffer.Slot, screen geom.Point) (models.ShipID, bool) {
	world := screen.Add(slot.Viewport.Center)
	found := false
	var best float64
	var id models.ShipID
	for _, t := range slot.Targets {
		d := world.Distance(t.Center)
		if d > t.Radius {
			continue
		}
		if !found || d <= best {
			found, best, id = true, d, t.Ship
		}
	}
	return id, found
}
