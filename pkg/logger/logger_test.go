package logger_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"filmorate/pkg/logger"
)

func TestNewLogger(t *testing.T) {
	t.Run("development logger", func(t *testing.T) {
		log, err := logger.NewLogger(logger.Development, "debug")
		require.NoError(t, err)
		require.NotNil(t, log)
	})

	t.Run("production logger", func(t *testing.T) {
		log, err := logger.NewLogger(logger.Production, "info")
		require.NoError(t, err)
		require.NotNil(t, log)
	})

	t.Run("invalid level", func(t *testing.T) {
		log, err := logger.NewLogger(logger.Development, "loud")
		require.Error(t, err)
		assert.Nil(t, log)
	})

	t.Run("empty level keeps defaults", func(t *testing.T) {
		log, err := logger.NewLogger(logger.Production, "")
		require.NoError(t, err)
		require.NotNil(t, log)
	})
}

func TestContext(t *testing.T) {
	log, err := logger.NewLogger(logger.Development, "debug")
	require.NoError(t, err)

	t.Run("logger round trip", func(t *testing.T) {
		ctx := logger.NewContext(context.Background(), log)
		got, err := logger.FromContext(ctx)
		require.NoError(t, err)
		assert.Same(t, log, got)
	})

	t.Run("missing logger", func(t *testing.T) {
		_, err := logger.FromContext(context.Background())
		require.ErrorIs(t, err, logger.ErrLoggerNotFound)
	})

	t.Run("Log falls back without panic", func(t *testing.T) {
		got := logger.Log(context.Background())
		require.NotNil(t, got)
	})
}

func TestRequestID(t *testing.T) {
	t.Run("explicit id", func(t *testing.T) {
		ctx := logger.NewRequestIDContext(context.Background(), "req-42")
		id, ok := logger.GetRequestID(ctx)
		require.True(t, ok)
		assert.Equal(t, "req-42", id)
	})

	t.Run("generated id", func(t *testing.T) {
		ctx := logger.NewRequestIDContext(context.Background(), "")
		id, ok := logger.GetRequestID(ctx)
		require.True(t, ok)
		assert.NotEmpty(t, id)
	})

	t.Run("absent id", func(t *testing.T) {
		_, ok := logger.GetRequestID(context.Background())
		assert.False(t, ok)
	})
}
