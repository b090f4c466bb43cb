package logsvc

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/AhmedMostafa129/Mahd/core"
	"github.com/AhmedMostafa129/Mahd/core/session"
)

func observed() (*ZapLogger, *observer.ObservedLogs) {
	c, logs := observer.New(zapcore.DebugLevel)
	return NewZapLoggerFrom(zap.New(c)), logs
}

func TestZapLogger_Fields(t *testing.T) {
	log, logs := observed()

	errBoom := errors.New("boom")
	user := session.Identity{UserID: "u1", Role: session.RoleInstructor}
	log.Warn("api request failed", "status", 502, errBoom, user, "dangling")

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, zapcore.WarnLevel, entry.Level)
	assert.Equal(t, "api request failed", entry.Message)

	ctx := entry.ContextMap()
	assert.EqualValues(t, 502, ctx["status"])
	assert.Equal(t, "boom", ctx["error"])
	assert.Equal(t, "u1", ctx["userId"])
	assert.Equal(t, "Instructor", ctx["role"])
	assert.Equal(t, "dangling", ctx["detail"])
}

func TestZapLogger_Levels(t *testing.T) {
	log, logs := observed()
	log.Debug("d")
	log.Info("i")
	log.Error("e")

	var levels []zapcore.Level
	for _, e := range logs.All() {
		levels = append(levels, e.Level)
	}
	assert.Equal(t, []zapcore.Level{zapcore.DebugLevel, zapcore.InfoLevel, zapcore.ErrorLevel}, levels)
}

func TestNew(t *testing.T) {
	conf := core.NewTestConfig()
	_, isZap := New(conf).(*ZapLogger)
	assert.True(t, isZap)

	conf.RollbarToken = "token"
	_, isZap = New(conf).(*ZapLogger)
	assert.True(t, isZap, "rollbar stays off in test mode")
}
