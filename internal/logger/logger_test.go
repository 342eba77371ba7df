package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNew_DisabledDiscards tests that a disabled logger writes nothing.
func TestNew_DisabledDiscards(t *testing.T) {
	var out bytes.Buffer
	l := New(Options{Enabled: false, Output: &out})
	l.Error("dropped")
	assert.Empty(t, out.String())
}

// TestNew_TextRespectsLevel tests level filtering on the text handler.
func TestNew_TextRespectsLevel(t *testing.T) {
	var out bytes.Buffer
	l := New(Options{Enabled: true, Output: &out, Level: slog.LevelWarn})

	l.Info("below threshold")
	l.Warn("arena exhausted", "need", 128)

	s := out.String()
	assert.NotContains(t, s, "below threshold")
	assert.Contains(t, s, "arena exhausted")
	assert.Contains(t, s, "need=128")
}

// TestNew_JSON tests structured JSON output.
func TestNew_JSON(t *testing.T) {
	var out bytes.Buffer
	l := New(Options{Enabled: true, Output: &out, JSON: true})
	l.Info("grow", "bytes", 4096)

	var rec map[string]any
	require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(out.String())), &rec))
	assert.Equal(t, "grow", rec["msg"])
	assert.EqualValues(t, 4096, rec["bytes"])
}

// TestInit_ReplacesGlobal tests that Init swaps the package logger.
func TestInit_ReplacesGlobal(t *testing.T) {
	prev := L
	t.Cleanup(func() { L = prev })

	var out bytes.Buffer
	Init(Options{Enabled: true, Output: &out})
	L.Info("hello", "k", "v")
	assert.Contains(t, out.String(), "hello")
}
