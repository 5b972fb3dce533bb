package ai

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/zeusync/skyloop/internal/core/content"
	"github.com/zeusync/skyloop/internal/core/geom"
	"github.com/zeusync/skyloop/internal/core/models"
)

func setup() (*models.Registry, *content.Government, *content.Government, *content.ShipModel) {
	red := content.NewGovernment("Red", "red", false)
	blue := content.NewGovernment("Blue", "blue", false)
	model := &content.ShipModel{Name: "Sparrow", Radius: 10, MaxHull: 100, Turn: 180, Thrust: 50}
	return models.NewRegistry(), red, blue, model
}

func TestPilotDecide(t *testing.T) {
	t.Run("idle without enemies", func(t *testing.T) {
		r, red, blue, model := setup()
		a := models.NewShip("a", model, red)
		b := models.NewShip("b", model, blue)
		b.Place(geom.P(0, -100), 0)
		r.AddShip(a)
		r.AddShip(b)

		in, err := NewPilot(1000).Decide(a, r)
		require.NoError(t, err)
		require.Equal(t, Intents{}, in)
	})

	t.Run("help request makes the attacker hostile", func(t *testing.T) {
		r, red, blue, model := setup()
		a := models.NewShip("a", model, red)
		b := models.NewShip("b", model, blue)
		b.Place(geom.P(0, -500), 0)
		r.AddShip(a)
		r.AddShip(b)

		p := NewPilot(1000)
		p.RequestHelp(HelpRequest{Faction: red, Attacker: blue, Allies: []models.ShipID{a.ID()}})
		in, err := p.Decide(a, r)
		require.NoError(t, err)
		require.Equal(t, b.ID(), in.Target)
		require.True(t, in.Fire, "target is dead ahead")
		require.Equal(t, 1.0, in.Thrust)

		p.Release(red)
		in, err = p.Decide(a, r)
		require.NoError(t, err)
		require.Equal(t, models.NoShip, in.Target)
	})

	t.Run("out of sensor range", func(t *testing.T) {
		r, red, blue, model := setup()
		a := models.NewShip("a", model, red)
		b := models.NewShip("b", model, blue)
		b.Place(geom.P(5000, 0), 0)
		r.AddShip(a)
		r.AddShip(b)
		p := NewPilot(1000)
		p.RequestHelp(HelpRequest{Faction: red, Attacker: blue})
		in, err := p.Decide(a, r)
		require.NoError(t, err)
		require.Equal(t, models.NoShip, in.Target)
	})

	t.Run("turns toward a target behind", func(t *testing.T) {
		r, red, blue, model := setup()
		a := models.NewShip("a", model, red)
		b := models.NewShip("b", model, blue)
		b.Place(geom.P(100, 0), 0)
		r.AddShip(a)
		r.AddShip(b)
		p := NewPilot(0)
		p.RequestHelp(HelpRequest{Faction: red, Attacker: blue})
		in, err := p.Decide(a, r)
		require.NoError(t, err)
		require.Equal(t, 1.0, in.Turn, "90 degrees clockwise saturates the turn")
		require.False(t, in.Fire)
	})

	t.Run("concurrent decisions", func(t *testing.T) {
		r, red, blue, model := setup()
		for i := range 8 {
			s := models.NewShip("s", model, []*content.Government{red, blue}[i%2])
			s.Place(geom.P(float64(i*30), 0), 0)
			r.AddShip(s)
		}
		p := NewPilot(0)
		p.RequestHelp(HelpRequest{Faction: red, Attacker: blue})
		errs := make(chan error, r.ShipCount())
		var wg sync.WaitGroup
		for _, s := range r.Ships() {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := p.Decide(s, r)
				errs <- err
			}()
		}
		wg.Wait()
		close(errs)
		for err := range errs {
			require.NoError(t, err)
		}
	})
}
