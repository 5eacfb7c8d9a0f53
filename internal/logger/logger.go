// Package logger builds the zap loggers used by the command line tools.
//
// Diagnostic logging goes to stderr through zap. Output meant for the user
// (reports, progress, backup results) is rendered by the ui package instead.
package logger

import (
	"io"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewWithOutput returns a console logger writing to w. Verbose enables debug
// output, otherwise only warnings and errors are written.
func NewWithOutput(verbose bool, w io.Writer) *zap.Logger {
	level := zapcore.WarnLevel
	if verbose {
		level = zapcore.DebugLevel
	}

	encoderCfg := zap.NewDevelopmentEncoderConfig()
	encoderCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	if !verbose {
		encoderCfg.TimeKey = ""
	}

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderCfg),
		zapcore.Lock(zapcore.AddSync(w)),
		level,
	)
	return zap.New(core)
}
