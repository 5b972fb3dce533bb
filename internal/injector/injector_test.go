package injector

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zeusync/skyloop/internal/core/config"
	"github.com/zeusync/skyloop/internal/core/content"
)

func TestInitializeApp(t *testing.T) {
	t.Run("bundled content", func(t *testing.T) {
		cfg := config.Default()
		cfg.ContentPath = "../../configs/content.yaml"

		app, cleanup, err := InitializeApp(cfg)
		require.NoError(t, err)
		defer cleanup()

		require.Equal(t, "Sol", app.Player.System().Name)
		require.Equal(t, "Kestrel", app.Player.Flagship().Name())

		e := app.Engine
		require.NoError(t, e.Place())
		require.NoError(t, e.Go())
		require.NoError(t, e.Wait())
		require.NoError(t, e.Step(true))
		require.Equal(t, []string{"Entering the Sol system."}, e.Messages())
	})

	t.Run("missing content", func(t *testing.T) {
		cfg := config.Default()
		cfg.ContentPath = "does-not-exist.yaml"

		_, _, err := InitializeApp(cfg)
		require.Error(t, err)
	})
}

func TestProvidePlayer(t *testing.T) {
	catalog, err := content.LoadYAML(strings.NewReader(`
governments: [{name: Escort, player: true}]
systems: [{name: Sol}]
`))
	require.NoError(t, err)

	_, err = ProvidePlayer(catalog)
	require.ErrorIs(t, err, ErrNoStart)
}
