package logger

import (
	"context"
	"log/slog"
	"testing"

	"github.com/retail-bank-ledger/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger(t *testing.T) {
	testCases := []struct {
		name              string
		logLevel          string
		format            string
		expectedSlogLevel slog.Level
	}{
		{"DebugLevel", "debug", "json", slog.LevelDebug},
		{"InfoLevel", "info", "json", slog.LevelInfo},
		{"WarnLevel", "warn", "text", slog.LevelWarn},
		{"ErrorLevel", "error", "json", slog.LevelError},
		{"DefaultToInfo", "unknown", "json", slog.LevelInfo},
		{"EmptyToInfo", "", "text", slog.LevelInfo},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := &config.Config{
				Logging: config.LoggingConfig{
					Level:  tc.logLevel,
					Format: tc.format,
				},
			}

			logger := NewLogger(cfg)
			require.NotNil(t, logger)

			assert.True(t, logger.Enabled(context.Background(), tc.expectedSlogLevel),
				"Logger should be enabled for level "+tc.expectedSlogLevel.String())

			if tc.expectedSlogLevel == slog.LevelDebug {
				assert.True(t, logger.Enabled(context.Background(), slog.LevelInfo),
					"Logger set to Debug should also enable Info")
			}
		})
	}
}
