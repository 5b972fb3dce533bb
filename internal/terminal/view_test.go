package terminal

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/require"

	"github.com/zeusync/skyloop/internal/core/buffer"
	"github.com/zeusync/skyloop/internal/core/geom"
	"github.com/zeusync/skyloop/internal/core/render"
)

func newScreen(t *testing.T) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	screen.SetSize(80, 24)
	t.Cleanup(screen.Fini)
	return screen
}

func rowText(screen tcell.Screen, x, y, n int) string {
	out := make([]rune, 0, n)
	for i := range n {
		r, _, _, _ := screen.GetContent(x+i, y)
		out = append(out, r)
	}
	return string(out)
}

func TestView(t *testing.T) {
	screen := newScreen(t)
	v := New(screen)

	slot := &buffer.Slot{
		Radar: render.Radar{
			Range: 1000,
			Blips: []render.Blip{
				{Offset: geom.P(500, 0), Category: render.CategoryHostile},
				{Offset: geom.P(-1000, -1000), Category: render.CategoryAnomaly},
				{Offset: geom.P(5000, 0), Category: render.CategoryFriendly},
			},
		},
		HUD:  buffer.HUD{System: "Sol", FlagshipShields: 1, FlagshipHull: 0.5, TargetName: "Rook", TargetGov: "Pirate"},
		Step: 42,
	}
	v.Render(slot)

	radarW := 80 - PanelWidth
	t.Run("radar", func(t *testing.T) {
		r, _, _, _ := screen.GetContent(radarW/2, 12)
		require.Equal(t, '^', r)

		r, _, style, _ := screen.GetContent(radarW*3/4, 12)
		require.Equal(t, 'x', r)
		require.Equal(t, categoryStyles[render.CategoryHostile], style)

		r, _, _, _ = screen.GetContent(0, 0)
		require.Equal(t, '*', r)
	})

	t.Run("panel", func(t *testing.T) {
		require.Equal(t, "Sol", rowText(screen, radarW+1, 0, 3))
		require.Equal(t, "step 42", rowText(screen, radarW+1, 1, 7))
		require.Equal(t, "target Rook", rowText(screen, radarW+1, 5, 11))
	})

	t.Run("click mapping", func(t *testing.T) {
		p, ok := v.ClickPoint(radarW*3/4, 12)
		require.True(t, ok)
		require.InDelta(t, 500, p.X, 1)
		require.InDelta(t, 0, p.Y, 1)

		_, ok = v.ClickPoint(radarW+2, 3)
		require.False(t, ok, "panel is not the radar")
	})
}
