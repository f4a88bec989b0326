package logger

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, ParseLevel("debug"))
	assert.Equal(t, zapcore.WarnLevel, ParseLevel("warn"))
	assert.Equal(t, zapcore.ErrorLevel, ParseLevel("error"))
	assert.Equal(t, zapcore.InfoLevel, ParseLevel("info"))
	assert.Equal(t, zapcore.InfoLevel, ParseLevel("verbose"))
}

func TestZapWrapper_FieldsAndErrors(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	log := NewZapAdapter(zap.New(core)).
		WithFields(map[string]interface{}{"activity": "Chess Club"}).
		WithError(errors.New("boom"))

	log.Warn("signup rejected", map[string]interface{}{
		"email": "test_student@example.com",
		"cause": errors.New("duplicate"),
	})

	entries := logs.All()
	require.Len(t, entries, 1)
	ctx := entries[0].ContextMap()
	assert.Equal(t, "signup rejected", entries[0].Message)
	assert.Equal(t, "Chess Club", ctx["activity"])
	assert.Equal(t, "boom", ctx["error"])
	assert.Equal(t, "duplicate", ctx["cause"])
	assert.Equal(t, "test_student@example.com", ctx["email"])
}

func TestNew_RespectsLevel(t *testing.T) {
	l := New("error", "json")
	assert.False(t, l.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, l.Core().Enabled(zapcore.ErrorLevel))
}

func TestNoOpLogger(t *testing.T) {
	log := NewNoOpLogger()
	log.Info("ignored", nil)
	assert.NoError(t, log.Sync())
}
