package bserve

import (
	"strings"

	"github.com/advdv/bresp"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewLogger creates a zap logger configured from the environment. It uses JSON encoding, the
// level is read from BR_LOG_LEVEL.
func NewLogger(env Environment) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(env.logLevel())
	cfg.EncoderConfig.TimeKey = "timestamp"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	logs, err := cfg.Build()
	if err != nil {
		return nil, err
	}

	return logs.With(zap.String("service", env.serviceName())), nil
}

// zapLogger reports response diagnostics through zap.
type zapLogger struct{ *zap.Logger }

func (l zapLogger) LogUnhandledServeError(err error) {
	l.Logger.Error("unhandled server error", zap.Error(err))
}

func (l zapLogger) LogDrainError(err error) {
	l.Logger.Error("error while draining response body", zap.Error(err))
}

func (l zapLogger) LogNotModifiedRepresentation(names []string) {
	l.Logger.Warn("representation headers in not modified response",
		zap.String("headers", strings.Join(names, ",")))
}

func (l zapLogger) LogNotModifiedMissingValidator() {
	l.Logger.Warn("not modified response without validator header")
}

func (l zapLogger) LogUnknownContentLength() {
	l.Logger.Debug("file response of unknown size")
}

func (l zapLogger) LogDeclinedHeaders(callSite string) {
	l.Logger.Warn("headers set on declined response", zap.String("caller", callSite))
}

func (l zapLogger) LogDeprecatedPermanent() {
	l.Logger.Warn("permanent redirect option is deprecated")
}

// NewResponseLogger adapts l to the [bresp.Logger] interface.
func NewResponseLogger(l *zap.Logger) bresp.Logger {
	return zapLogger{l.Named("bresp").Named("bserve")}
}
