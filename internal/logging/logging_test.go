package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestOptionsLevel(t *testing.T) {
	assert.Equal(t, zapcore.InfoLevel, Options{}.Level())
	assert.Equal(t, zapcore.DebugLevel, Options{Verbose: true}.Level())
	assert.Equal(t, zapcore.DebugLevel, Options{Debug: true}.Level())
	assert.Equal(t, zapcore.ErrorLevel, Options{Quiet: true, Verbose: true}.Level())
}

func TestNew(t *testing.T) {
	for _, opts := range []Options{{}, {Debug: true}, {Quiet: true}} {
		logger, err := New(opts)
		require.NoError(t, err)
		assert.True(t, logger.Core().Enabled(opts.Level()))
		if opts.Level() > zapcore.DebugLevel {
			assert.False(t, logger.Core().Enabled(zapcore.DebugLevel))
		}
	}
}
