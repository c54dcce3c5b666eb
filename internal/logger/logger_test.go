package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewLogger(t *testing.T) {
	t.Run("default level is info", func(t *testing.T) {
		log, err := NewLogger("")
		require.NoError(t, err)
		assert.True(t, log.Core().Enabled(zap.InfoLevel))
		assert.False(t, log.Core().Enabled(zap.DebugLevel))
	})

	t.Run("debug level", func(t *testing.T) {
		log, err := NewLogger("debug")
		require.NoError(t, err)
		assert.True(t, log.Core().Enabled(zap.DebugLevel))
	})

	t.Run("invalid level", func(t *testing.T) {
		_, err := NewLogger("loud")
		assert.Error(t, err)
	})
}

func TestNopLogger(t *testing.T) {
	log := NewNopLogger()
	child := log.Named("rawdata").With(zap.String("instrument", "EDOLLAR"))

	assert.NotPanics(t, func() {
		child.Info("ignored")
	})
	assert.NoError(t, (&Logger{}).Sync())
}
