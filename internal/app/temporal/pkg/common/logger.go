package common

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewLogger creates a new zap logger with appropriate configuration
func NewLogger(development bool) (*zap.Logger, error) {
	var config zap.Config

	if development {
		config = zap.NewDevelopmentConfig()
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		config = zap.NewProductionConfig()
	}

	return config.Build()
}

// MustNewLogger creates a new logger and panics if it fails
func MustNewLogger(development bool) *zap.Logger {
	logger, err := NewLogger(development)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	return logger
}

// ZapAdapter bridges a zap logger to the Temporal SDK logger interface.
type ZapAdapter struct {
	sugar *zap.SugaredLogger
}

// NewZapAdapter wraps the logger so the SDK's key-value calls land in zap.
// One caller frame is skipped so log lines point at the SDK call site.
func NewZapAdapter(logger *zap.Logger) *ZapAdapter {
	return &ZapAdapter{sugar: logger.WithOptions(zap.AddCallerSkip(1)).Sugar()}
}

func (a *ZapAdapter) Debug(msg string, keyvals ...interface{}) {
	a.sugar.Debugw(msg, keyvals...)
}

func (a *ZapAdapter) Info(msg string, keyvals ...interface{}) {
	a.sugar.Infow(msg, keyvals...)
}

func (a *ZapAdapter) Warn(msg string, keyvals ...interface{}) {
	a.sugar.Warnw(msg, keyvals...)
}

func (a *ZapAdapter) Error(msg string, keyvals ...interface{}) {
	a.sugar.Errorw(msg, keyvals...)
}
