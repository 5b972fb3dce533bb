package buffer

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/zeusync/skyloop/internal/core/render"
)

func TestDouble(t *testing.T) {
	t.Run("Write and Read never alias", func(t *testing.T) {
		d := NewDouble()
		for range 5 {
			require.NotSame(t, d.Write(), d.Read())
			d.Swap()
		}
	})

	t.Run("Swap publishes the written slot", func(t *testing.T) {
		d := NewDouble()
		w := d.Write()
		w.Step = 7
		d.Swap()
		require.Same(t, w, d.Read())
		require.Equal(t, 7, d.Read().Step)

		d.Write().Step = 8
		require.Equal(t, 7, d.Read().Step, "reader keeps the completed slot until the next swap")
		d.Swap()
		require.Equal(t, 8, d.Read().Step)
	})
}

func TestSlotReset(t *testing.T) {
	s := &Slot{
		Drawables: make([]render.Drawable, 3, 8),
		Targets:   []Target{{Radius: 1}},
		Ammo:      []Ammo{{Outfit: "Meteor", Count: 4}},
		HUD:       HUD{System: "Sol"},
		Flash:     0.5,
		Step:      12,
		Load:      0.3,
	}
	s.Reset()
	require.Empty(t, s.Drawables)
	require.Equal(t, 8, cap(s.Drawables))
	require.Empty(t, s.Targets)
	require.Empty(t, s.Ammo)
	require.Equal(t, HUD{}, s.HUD)
	require.Zero(t, s.Flash)
	require.Zero(t, s.Step)
	require.Zero(t, s.Load)
}
