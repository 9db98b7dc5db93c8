package logger

import (
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/straye-as/facility-api/internal/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Field keys shared across request and audit log lines
const (
	KeyRequestID = "request_id"
	KeyUserID    = "user_id"
	KeyActor     = "actor"
)

// NewLogger builds the application logger. Deployed environments and the
// "json" format get the production encoder; everything else logs to the
// console with coloured levels.
func NewLogger(cfg *config.LoggingConfig, appCfg *config.AppConfig) (*zap.Logger, error) {
	zapCfg := baseConfig(cfg.Format, appCfg.Environment)
	zapCfg.Level = zap.NewAtomicLevelAt(ParseLevel(cfg.Level))
	zapCfg.EncoderConfig.TimeKey = "ts"
	zapCfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	zapCfg.InitialFields = map[string]interface{}{
		"service":     appCfg.Name,
		"environment": appCfg.Environment,
	}

	log, err := zapCfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	return log, nil
}

func baseConfig(format, environment string) zap.Config {
	if format == "json" || isDeployed(environment) {
		return zap.NewProductionConfig()
	}
	zapCfg := zap.NewDevelopmentConfig()
	zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	return zapCfg
}

func isDeployed(environment string) bool {
	return environment == "production" || environment == "staging"
}

// ParseLevel falls back to info for empty or unknown levels
func ParseLevel(level string) zapcore.Level {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return zapcore.InfoLevel
	}
	return lvl
}

// WithRequest tags a logger with the request line and its id
func WithRequest(log *zap.Logger, r *http.Request, requestID string) *zap.Logger {
	return log.With(
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.String(KeyRequestID, requestID),
	)
}

// WithUser tags a logger with the authenticated caller
func WithUser(log *zap.Logger, userID uuid.UUID, actor string) *zap.Logger {
	return log.With(
		zap.Stringer(KeyUserID, userID),
		zap.String(KeyActor, actor),
	)
}
