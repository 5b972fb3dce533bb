package log

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestLogger(t *testing.T) {
	t.Run("Fields reach zap", func(t *testing.T) {
		core, logs := observer.New(zapcore.DebugLevel)
		logger := NewFromZap(zap.New(core), LevelDebug)

		logger.With(String("component", "engine")).Info("placed",
			Int("ships", 3),
			Float64("load", 0.25),
			Error(errors.New("boom")),
		)

		entries := logs.All()
		require.Len(t, entries, 1)
		fields := entries[0].ContextMap()
		require.Equal(t, "engine", fields["component"])
		require.EqualValues(t, 3, fields["ships"])
		require.Equal(t, 0.25, fields["load"])
		require.Equal(t, "boom", fields["error"])
	})

	t.Run("Level filtering is shared with children", func(t *testing.T) {
		core, logs := observer.New(zapcore.DebugLevel)
		logger := NewFromZap(zap.New(core), LevelInfo)
		child := logger.With(String("component", "child"))

		child.Debug("hidden")
		require.Equal(t, 0, logs.Len())

		logger.SetLevel(LevelDebug)
		require.Equal(t, LevelDebug, child.GetLevel())
		child.Debug("shown")
		require.Equal(t, 1, logs.Len())
	})

	t.Run("ParseLevel", func(t *testing.T) {
		for in, want := range map[string]Level{"debug": LevelDebug, "": LevelInfo, "WARN": LevelWarn, "error": LevelError} {
			got, err := ParseLevel(in)
			require.NoError(t, err)
			require.Equal(t, want, got)
		}
		_, err := ParseLevel("loud")
		require.Error(t, err)
	})

	t.Run("New builds from config", func(t *testing.T) {
		logger, err := New(Config{Level: LevelWarn, Encoding: "console", Development: true})
		require.NoError(t, err)
		require.Equal(t, LevelWarn, logger.GetLevel())
	})
}
