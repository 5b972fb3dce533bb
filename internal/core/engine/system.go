package engine

import (
	"fmt"

	"github.com/zeusync/skyloop/internal/core/content"
	"github.com/zeusync/skyloop/internal/core/geom"
	"github.com/zeusync/skyloop/internal/core/models"
	"github.com/zeusync/skyloop/internal/core/observability/log"
)

// enterSystem replaces everything but the player's fleet with the contents
// of sys.
func (e *Engine) enterSystem(sys *content.System) {
	e.registry.RemoveShips(func(s *models.Ship) bool { return !s.IsYours() })
	e.registry.ClearTransient()
	e.forget.Reset()
	e.grudges.Reset()
	e.registry.AsteroidField().Reset(sys, e.rng)

	for _, s := range e.registry.Ships() {
		s.SetSystem(sys)
	}
	e.system = sys
	if sys == nil {
		return
	}

	spawned := 0
	for _, fleet := range sys.Fleets {
		for i := range fleet.Count {
			name := fmt.Sprintf("%s %d", fleet.Model.Name, i+1)
			if len(fleet.Names) > 0 {
				name = fleet.Names[i%len(fleet.Names)]
			}
			s := models.NewShip(name, fleet.Model, fleet.Government)
			heading := geom.NewAngle(e.rng.Float64() * 360)
			distance := sys.Radius * (0.25 + 0.5*e.rng.Float64())
			s.Place(heading.Unit().Mul(distance), geom.NewAngle(e.rng.Float64()*360))
			s.SetSystem(sys)
			e.registry.AddShip(s)
			spawned++
		}
	}

	e.flash = 1
	e.post(fmt.Sprintf("Entering the %s system.", sys.Name))
	e.logger.Info("entered system",
		log.String("system", sys.Name),
		log.Int("ships", spawned),
		log.Int("asteroids", e.registry.AsteroidField().Len()))
}
