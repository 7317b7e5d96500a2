package logging

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNewLogger(t *testing.T) {
	tests := []struct {
		name        string
		level       string
		environment string
		want        zapcore.Level
	}{
		{"defaults to info", "", "production", zapcore.InfoLevel},
		{"honours debug", "debug", "production", zapcore.DebugLevel},
		{"trims and lowercases", "  WARN ", "production", zapcore.WarnLevel},
		{"falls back on unknown level", "verbose", "production", zapcore.InfoLevel},
		{"development console logger", "error", "development", zapcore.ErrorLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, err := NewLogger(tt.level, tt.environment)
			require.NoError(t, err)
			require.NotNil(t, logger)

			assert.True(t, logger.Core().Enabled(tt.want))
			if tt.want > zapcore.DebugLevel {
				assert.False(t, logger.Core().Enabled(tt.want-1))
			}
		})
	}
}

func TestFromContext(t *testing.T) {
	t.Run("returns stored logger", func(t *testing.T) {
		logger := zap.NewExample()
		ctx := WithLogger(context.Background(), logger)

		assert.Same(t, logger, FromContext(ctx, nil))
	})

	t.Run("returns fallback when missing", func(t *testing.T) {
		fallback := zap.NewExample()

		assert.Same(t, fallback, FromContext(context.Background(), fallback))
	})

	t.Run("returns no-op logger without fallback", func(t *testing.T) {
		logger := FromContext(context.Background(), nil)

		require.NotNil(t, logger)
		assert.False(t, logger.Core().Enabled(zapcore.ErrorLevel))
	})
}
