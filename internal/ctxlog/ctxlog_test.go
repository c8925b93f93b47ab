package ctxlog

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFromContext_ReturnsEmbeddedLogger(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	ctx := WithLogger(context.Background(), logger)

	// --- Act ---
	got := FromContext(ctx)
	got.Info("hello")

	// --- Assert ---
	require.Same(t, logger, got, "FromContext should return the exact logger stored in the context")
	require.Contains(t, buf.String(), "hello", "the returned logger should write to the buffer it was built with")
}

func TestFromContext_FallsBackToDefault(t *testing.T) {
	t.Parallel()

	// --- Act ---
	got := FromContext(context.Background())

	// --- Assert ---
	require.NotNil(t, got, "FromContext must never return nil")
	require.Same(t, slog.Default(), got, "a bare context should yield the process default logger")
}
