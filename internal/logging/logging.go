// Package logging builds the zap logger shared by the CLI and the acquirer.
package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Options selects the logger flavour.
type Options struct {
	// Debug switches to zap's development config (caller info, stack traces on warn).
	Debug bool

	// Verbose lowers the level to debug.
	Verbose bool

	// Quiet raises the level to error. It wins over Verbose.
	Quiet bool
}

// Level returns the minimum level implied by the options.
func (o Options) Level() zapcore.Level {
	switch {
	case o.Quiet:
		return zapcore.ErrorLevel
	case o.Verbose || o.Debug:
		return zapcore.DebugLevel
	default:
		return zapcore.InfoLevel
	}
}

// New builds a logger writing to stderr so stdout stays free for command output.
func New(opts Options) (*zap.Logger, error) {
	var cfg zap.Config
	if opts.Debug {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
		cfg.Encoding = "console"
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
		cfg.Sampling = nil
	}

	cfg.Level = zap.NewAtomicLevelAt(opts.Level())
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}

	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}
	return logger.Named("archivist"), nil
}
