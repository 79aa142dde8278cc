// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// captured redirects l into a buffer and returns the decoded entry after
// emit has logged exactly one line.
func captured(t *testing.T, l *Logger, emit func(*Logger)) map[string]any {
	t.Helper()
	var buf bytes.Buffer
	l.Logger = l.Output(&buf)
	emit(l)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	return entry
}

func TestNewLogger(t *testing.T) {
	entry := captured(t, NewLogger("catalog-server"), func(l *Logger) {
		l.Info().Msg("hello")
	})

	assert.Equal(t, "catalog-server", entry["role"])
	assert.Contains(t, entry, "time")
	assert.Equal(t, "func", zerolog.CallerFieldName)
	assert.Equal(t, zerolog.DebugLevel, zerolog.GlobalLevel())
}

func TestNewClientLogger_AppendsToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "client.log")

	NewClientLogger("catalog-client", path).Info().Msg("first")
	NewClientLogger("catalog-client", path).Info().Msg("second")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := bytes.Split(bytes.TrimSpace(data), []byte("\n"))
	require.Len(t, lines, 2)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(lines[1], &entry))
	assert.Equal(t, "catalog-client", entry["role"])
	assert.Equal(t, "second", entry["message"])
}

func TestNop_DiscardsOutput(t *testing.T) {
	var buf bytes.Buffer
	l := Nop()
	l.Logger = l.Output(&buf)

	l.Info().Msg("dropped")

	assert.Empty(t, buf.String())
}

func TestWithComponent(t *testing.T) {
	entry := captured(t, NewLogger("client"), func(l *Logger) {
		l.WithComponent("sync").Info().Msg("tick")
	})

	assert.Equal(t, "sync", entry["component"])
	assert.Equal(t, "client", entry["role"])
}

func TestGetChildLogger(t *testing.T) {
	parent := NewLogger("client")
	child := parent.GetChildLogger()
	assert.NotSame(t, parent, child)

	entry := captured(t, child, func(l *Logger) {
		l.UpdateContext(func(c zerolog.Context) zerolog.Context { return c.Str("trace_id", "t-1") })
		l.Info().Msg("child")
	})
	assert.Equal(t, "client", entry["role"])
	assert.Equal(t, "t-1", entry["trace_id"])

	parentEntry := captured(t, parent, func(l *Logger) { l.Info().Msg("parent") })
	assert.NotContains(t, parentEntry, "trace_id")
}

func TestFromContextAndRequest(t *testing.T) {
	var buf bytes.Buffer
	ctx := zerolog.New(&buf).With().Str("trace_id", "abc").Logger().WithContext(context.Background())

	FromContext(ctx).Info().Msg("ctx")
	req := httptest.NewRequest(http.MethodGet, "/local/status", nil).WithContext(ctx)
	FromRequest(req).Info().Msg("req")

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 2)
	for _, line := range lines {
		assert.Contains(t, string(line), `"trace_id":"abc"`)
	}
}

func TestFromContext_WithoutLoggerIsUsable(t *testing.T) {
	l := FromContext(context.Background())
	require.NotNil(t, l)
	assert.NotPanics(t, func() { l.Info().Msg("default") })

	require.NotNil(t, FromRequest(httptest.NewRequest(http.MethodGet, "/", nil)))
}
