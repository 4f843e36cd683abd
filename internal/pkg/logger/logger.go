package logger

import (
	"context"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var global = newSugared()

func newSugared() *zap.SugaredLogger {
	cfg := zap.NewProductionConfig()
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.DisableStacktrace = true

	l, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		// zap can only fail here on a bad config, which is static
		os.Exit(1)
	}

	return l.Sugar()
}

// ReplaceGlobal swaps the package logger, used by cmd binaries to install
// a logger built from their own config.
func ReplaceGlobal(l *zap.Logger) {
	global = l.WithOptions(zap.AddCallerSkip(1)).Sugar()
}

func Debugf(_ context.Context, format string, args ...interface{}) {
	global.Debugf(format, args...)
}

func Infof(_ context.Context, format string, args ...interface{}) {
	global.Infof(format, args...)
}

func Warnf(_ context.Context, format string, args ...interface{}) {
	global.Warnf(format, args...)
}

func Errorf(_ context.Context, format string, args ...interface{}) {
	global.Errorf(format, args...)
}

// Fatal logs err and exits. A nil err is ignored so it can wrap server
// shutdown returns directly.
func Fatal(_ context.Context, err error) {
	if err == nil {
		return
	}
	global.Fatal(err.Error())
}

func Sync() {
	_ = global.Sync()
}
