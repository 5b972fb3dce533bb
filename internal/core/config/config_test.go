package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/zeusync/skyloop/internal/core/observability/log"
)

func TestParse(t *testing.T) {
	t.Run("empty input gives defaults", func(t *testing.T) {
		cfg, err := Parse(strings.NewReader(""))
		require.NoError(t, err)
		require.Equal(t, Default(), cfg)
		require.Equal(t, time.Second/60, cfg.Engine.StepDuration())
	})

	t.Run("overlay", func(t *testing.T) {
		cfg, err := Parse(strings.NewReader(`
engine:
  forget_steps: 5
  viewport:
    width: 320
log:
  level: debug
spectator:
  enabled: true
  listen_addr: "127.0.0.1:0"
`))
		require.NoError(t, err)
		require.Equal(t, 5, cfg.Engine.ForgetSteps)
		require.Equal(t, 320.0, cfg.Engine.Viewport.Width)
		require.Equal(t, 900.0, cfg.Engine.Viewport.Height)
		require.Equal(t, 60, cfg.Engine.StepRate)
		require.Equal(t, log.LevelDebug, cfg.Log.Level)
		require.True(t, cfg.Spectator.Enabled)
		require.Equal(t, 16, cfg.Spectator.ClientBuffer)
	})

	t.Run("invalid", func(t *testing.T) {
		_, err := Parse(strings.NewReader("engine:\n  step_rate: 0\n"))
		require.ErrorIs(t, err, ErrInvalidConfig)
		require.ErrorContains(t, err, "step_rate")

		_, err = Parse(strings.NewReader("engine: [1"))
		require.Error(t, err)
	})
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "skyloop.yaml")
	require.NoError(t, os.WriteFile(path, []byte("content_path: other.yaml\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "other.yaml", cfg.ContentPath)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}
