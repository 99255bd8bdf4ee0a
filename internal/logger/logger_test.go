package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/jwebster45206/cipher-engine/internal/config"
	"github.com/jwebster45206/cipher-engine/pkg/ciphers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Production(t *testing.T) {
	var buf bytes.Buffer
	log := New(&config.Config{Environment: "production", LogLevel: slog.LevelInfo}, &buf)

	WithRequestID(log, "abc").Info("hello")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "hello", entry["msg"])
	assert.Equal(t, "abc", entry["request_id"])
	assert.Equal(t, "cipher-engine", entry["service"])
}

func TestNew_Development(t *testing.T) {
	var buf bytes.Buffer
	log := New(&config.Config{Environment: "development", LogLevel: slog.LevelWarn}, &buf)

	log.Info("quiet")
	WithError(log, errors.New("boom")).Warn("loud")

	out := buf.String()
	assert.NotContains(t, out, "quiet")
	assert.True(t, strings.Contains(out, "msg=loud"))
	assert.Contains(t, out, "error=boom")
}

func TestContext(t *testing.T) {
	var buf bytes.Buffer
	fallback := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	reqLog := slog.New(slog.NewTextHandler(&buf, nil))

	assert.Same(t, fallback, FromContext(context.Background(), fallback))

	ctx := NewContext(context.Background(), reqLog)
	assert.Same(t, reqLog, FromContext(ctx, fallback))
}

func TestDomainAttributes(t *testing.T) {
	var buf bytes.Buffer
	log := New(&config.Config{Environment: "production", LogLevel: slog.LevelInfo}, &buf)
	id := uuid.MustParse("8f14e45f-ceea-467f-a8ab-1c2b3d4e5f60")

	WithChapter(WithCipher(WithProgress(log, id), ciphers.RailFence), 4).Info("attempt")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, id.String(), entry["progress_id"])
	assert.Equal(t, "railfence", entry["cipher"])
	assert.Equal(t, float64(4), entry["chapter"])
}
