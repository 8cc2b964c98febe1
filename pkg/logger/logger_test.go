package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/samandr77/docflow/pkg/logger"
)

func TestNew_AddsContextAttributes(t *testing.T) {
	buf := new(bytes.Buffer)

	l, err := logger.New("debug", buf)
	require.NoError(t, err)

	ctx := logger.WithRequestID(context.Background(), "req-1")
	ctx = logger.WithUserID(ctx, "user-1")
	ctx = logger.WithScreen(ctx, "/approvals")

	l.With("component", "test").InfoContext(ctx, "hello")

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	require.Equal(t, "hello", record["msg"])
	require.Equal(t, "req-1", record["request_id"])
	require.Equal(t, "user-1", record["user_id"])
	require.Equal(t, "/approvals", record["screen"])
	require.Equal(t, "test", record["component"])
}

func TestNew_RespectsLevel(t *testing.T) {
	buf := new(bytes.Buffer)

	l, err := logger.New("warn", buf)
	require.NoError(t, err)

	l.Info("dropped")
	require.Empty(t, buf.String())

	l.Warn("kept")
	require.Contains(t, buf.String(), "kept")
}

func TestNew_InvalidLevel(t *testing.T) {
	_, err := logger.New("loud", new(bytes.Buffer))
	require.Error(t, err)
}

func TestRequestIDFromCtx(t *testing.T) {
	t.Parallel()

	require.Empty(t, logger.RequestIDFromCtx(context.Background()))
	require.Equal(t, "abc", logger.RequestIDFromCtx(logger.WithRequestID(context.Background(), "abc")))
}
