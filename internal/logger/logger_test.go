package logger_test

import (
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/straye-as/facility-api/internal/config"
	"github.com/straye-as/facility-api/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, logger.ParseLevel("debug"))
	assert.Equal(t, zapcore.WarnLevel, logger.ParseLevel("WARN"))
	assert.Equal(t, zapcore.InfoLevel, logger.ParseLevel(""))
	assert.Equal(t, zapcore.InfoLevel, logger.ParseLevel("verbose"))
}

func TestNewLogger(t *testing.T) {
	log, err := logger.NewLogger(
		&config.LoggingConfig{Level: "warn", Format: "json"},
		&config.AppConfig{Name: "facility-api", Environment: "development"},
	)
	require.NoError(t, err)

	assert.False(t, log.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, log.Core().Enabled(zapcore.WarnLevel))
}

func TestWithRequestAndUser(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	base := zap.New(core)
	userID := uuid.New()

	req := httptest.NewRequest("DELETE", "/api/v1/projects/abc", nil)
	log := logger.WithUser(logger.WithRequest(base, req, "req-1"), userID, "Beheerder")
	log.Info("deleted")

	require.Equal(t, 1, logs.Len())
	fields := logs.All()[0].ContextMap()
	assert.Equal(t, "DELETE", fields["method"])
	assert.Equal(t, "/api/v1/projects/abc", fields["path"])
	assert.Equal(t, "req-1", fields[logger.KeyRequestID])
	assert.Equal(t, userID.String(), fields[logger.KeyUserID])
	assert.Equal(t, "Beheerder", fields[logger.KeyActor])
}
