package log

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestLogger_WritesTypedFields(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	logger := NewWithCore(core)

	logger.Debug("thread moved",
		Uint64("thread", 1),
		Int("x", -1),
		Bool("player", true),
		Duration("tick", 100*time.Millisecond),
		Error(errors.New("boom")),
	)

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "thread moved", entry.Message)
	ctx := entry.ContextMap()
	assert.Equal(t, uint64(1), ctx["thread"])
	assert.Equal(t, int64(-1), ctx["x"])
	assert.Equal(t, true, ctx["player"])
	assert.Equal(t, "boom", ctx["error"])
}

func TestLogger_SetLevelFilters(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	logger := NewWithCore(core)

	logger.SetLevel(LevelWarn)
	assert.Equal(t, LevelWarn, logger.GetLevel())

	logger.Debug("hidden")
	logger.Info("hidden")
	logger.Warn("shown")
	logger.Error("shown")
	assert.Equal(t, 2, logs.Len())
}

func TestLogger_WithAndContext(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	logger := NewWithCore(core)

	ctx := WithSession(context.Background(), "abc")
	logger.With(String("component", "loom")).WithContext(ctx).Info("started")

	require.Equal(t, 1, logs.Len())
	fields := logs.All()[0].ContextMap()
	assert.Equal(t, "loom", fields["component"])
	assert.Equal(t, "abc", fields["session"])

	_, ok := SessionFrom(context.Background())
	assert.False(t, ok)
}

func TestNew_FileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vitalis.log")
	logger, err := New(Options{Level: LevelDebug, Path: path, Encoding: "json"})
	require.NoError(t, err)

	logger.Info("session started", String("player", "Wanderer"))
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"session started"`)
	assert.Contains(t, string(data), `"player":"Wanderer"`)
}

func TestNew_EmptyPathDiscards(t *testing.T) {
	logger, err := New(Options{})
	require.NoError(t, err)
	assert.NotPanics(t, func() { logger.Error("nothing") })
}

func TestNew_BadEncoding(t *testing.T) {
	_, err := New(Options{Path: filepath.Join(t.TempDir(), "x.log"), Encoding: "xml"})
	assert.Error(t, err)
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    Level
		wantErr bool
	}{
		{"debug", LevelDebug, false},
		{"INFO", LevelInfo, false},
		{"", LevelInfo, false},
		{" warning ", LevelWarn, false},
		{"error", LevelError, false},
		{"loud", LevelInfo, true},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
		assert.Equal(t, got, mustParse(t, got.String()))
	}
}

func mustParse(t *testing.T, s string) Level {
	t.Helper()
	l, err := ParseLevel(s)
	require.NoError(t, err)
	return l
}
