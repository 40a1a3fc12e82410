package logger_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yuvi55/unigrow/pkg/logger"
)

func TestError(t *testing.T) {
	err := errors.New("boom")
	attr := logger.Error(err)
	require.Equal(t, "error", attr.Key)
	assert.Equal(t, err, attr.Value.Any())

	empty := logger.Error(nil)
	assert.True(t, empty.Equal(slog.Attr{}))
}

func TestStringAttrs(t *testing.T) {
	assert.Equal(t, "user_id", logger.UserID("u1").Key)
	assert.Equal(t, "u1", logger.UserID("u1").Value.String())
	assert.Equal(t, "email", logger.Email("a@b.c").Key)
	assert.Equal(t, "provider", logger.Provider("google").Key)
	assert.Equal(t, "component", logger.Component("auth").Key)
	assert.Equal(t, "handler", logger.Handler("callback").Key)
}

func TestNew(t *testing.T) {
	t.Run("json format", func(t *testing.T) {
		var buf bytes.Buffer
		log := logger.New(logger.Config{Level: "info", Format: logger.FormatJSON}, logger.WithOutput(&buf))
		log.Info("hello", logger.UserID("u1"))
		assert.Contains(t, buf.String(), `"user_id":"u1"`)
	})

	t.Run("level filters records", func(t *testing.T) {
		var buf bytes.Buffer
		log := logger.New(logger.Config{Level: "error", Format: logger.FormatText}, logger.WithOutput(&buf))
		log.Info("dropped")
		assert.Empty(t, buf.String())
	})

	t.Run("service attr attached", func(t *testing.T) {
		var buf bytes.Buffer
		log := logger.New(logger.Config{Format: logger.FormatJSON}, logger.WithOutput(&buf), logger.WithService("unigrow"))
		log.Info("hello")
		assert.Contains(t, buf.String(), `"service":"unigrow"`)
	})
}

func TestNewDiscard(t *testing.T) {
	log := logger.NewDiscard()
	require.NotNil(t, log)
	assert.False(t, log.Enabled(context.Background(), slog.LevelError))
}
