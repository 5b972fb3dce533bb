package engine

import (
	"fmt"

	"github.com/zeusync/skyloop/internal/core/ai"
	"github.com/zeusync/skyloop/internal/core/events"
	"github.com/zeusync/skyloop/internal/core/models"
	"github.com/zeusync/skyloop/internal/core/observability/log"
)

// doGrudge handles a provoked AI ship: unless an ally is already fighting
// the attacker, its faction asks for help once and the pilot is told to
// send the faction's ships after the attacker.
func (e *Engine) doGrudge(ev events.Event) {
	victim, ok := e.registry.Ship(ev.Target())
	if !ok || victim.IsYours() {
		return
	}
	faction := victim.Government()
	attacker := ev.ActorGovernment()
	// Asks go out to the player, who is never asked to help against itself.
	if attacker == nil || attacker == faction || faction == e.player.Government() || attacker == e.player.Government() {
		return
	}

	var allies []models.ShipID
	for _, s := range e.registry.Ships() {
		if s == victim || s.Government() != faction || !s.IsActive() {
			continue
		}
		if target, ok := e.registry.Ship(s.Target()); ok && target.Government() == attacker {
			return
		}
		allies = append(allies, s.ID())
	}

	if !e.grudges.Ask(faction, victim.ID(), attacker, e.registry) {
		return
	}
	e.pilot.RequestHelp(ai.HelpRequest{
		Faction:  faction,
		Victim:   victim.ID(),
		Attacker: attacker,
		Allies:   allies,
	})
	e.post(fmt.Sprintf("%s (%s): please assist us against the %s.", victim.Name(), faction.Name(), attacker.Name()))
	e.logger.Info("help requested",
		log.String("faction", faction.Name()),
		log.String("attacker", attacker.Name()),
		log.Int("allies", len(allies)))
}

// settle thanks the player when one of their ships fights a government that
// some faction asked help against.
func (e *Engine) settle(ev events.Event) {
	actor, ok := e.registry.Ship(ev.Actor())
	if !ok || !actor.IsYours() {
		return
	}
	for _, faction := range e.grudges.Settle(ev.TargetGovernment()) {
		e.release(faction)
		e.post(fmt.Sprintf("The %s thank you for your help.", faction.Name()))
		e.logger.Info("grudge settled", log.String("faction", faction.Name()))
	}
}
