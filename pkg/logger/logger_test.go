package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/conduit/pkg/logger"
)

type ctxKey struct{}

func requestIDExtractor(ctx context.Context) (slog.Attr, bool) {
	v, ok := ctx.Value(ctxKey{}).(string)
	if !ok {
		return slog.Attr{}, false
	}
	return slog.String("request_id", v), true
}

func TestNewWithConfig(t *testing.T) {
	t.Parallel()

	t.Run("json with extractor", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		log := logger.NewWithConfig(logger.Config{Output: &buf}, requestIDExtractor, nil)

		ctx := context.WithValue(context.Background(), ctxKey{}, "req-1")
		log.With("component", "movies").InfoContext(ctx, "created", "id", 7)

		var rec map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
		require.Equal(t, "created", rec["msg"])
		require.Equal(t, "req-1", rec["request_id"])
		require.Equal(t, "movies", rec["component"])
		require.EqualValues(t, 7, rec["id"])
	})

	t.Run("extractor miss adds nothing", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		log := logger.NewWithConfig(logger.Config{Output: &buf}, requestIDExtractor)
		log.Info("plain")
		require.NotContains(t, buf.String(), "request_id")
	})

	t.Run("text format and level", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		log := logger.NewWithConfig(logger.Config{Output: &buf, Format: "text", Level: slog.LevelWarn})
		log.Info("hidden")
		log.Warn("shown")
		require.NotContains(t, buf.String(), "hidden")
		require.Contains(t, buf.String(), "level=WARN msg=shown")
	})

	t.Run("extractor attrs follow groups", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		log := logger.NewWithConfig(logger.Config{Output: &buf, Format: "text"}, requestIDExtractor)
		ctx := context.WithValue(context.Background(), ctxKey{}, "req-2")
		log.WithGroup("http").InfoContext(ctx, "done", "status", 200)
		require.Contains(t, buf.String(), "http.status=200")
		require.Contains(t, buf.String(), "http.request_id=req-2")
	})
}

func TestDecorate_NoExtractors(t *testing.T) {
	t.Parallel()

	h := slog.NewTextHandler(&bytes.Buffer{}, nil)
	require.Same(t, h, logger.Decorate(h))
	require.Same(t, h, logger.Decorate(h, nil))
}

func TestNewNope(t *testing.T) {
	t.Parallel()

	log := logger.NewNope()
	require.False(t, log.Enabled(context.Background(), slog.LevelError))
}
