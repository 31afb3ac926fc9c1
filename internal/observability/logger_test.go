package observability

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected zerolog.Level
	}{
		{"trace", zerolog.TraceLevel},
		{"debug", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"warn", zerolog.WarnLevel},
		{"warning", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"fatal", zerolog.FatalLevel},
		{"panic", zerolog.PanicLevel},
		{"INFO", zerolog.InfoLevel},
		{"unknown", zerolog.InfoLevel},
		{"", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, parseLevel(tt.input))
		})
	}
}

func TestNewLogger(t *testing.T) {
	t.Run("creates logger with configured level", func(t *testing.T) {
		logger := NewLogger(LoggingConfig{Level: "debug", Format: "json", Output: "stdout"})
		assert.Equal(t, zerolog.DebugLevel, logger.GetLevel())
	})

	t.Run("console format does not panic", func(t *testing.T) {
		logger := NewLogger(LoggingConfig{Level: "info", Format: "console", Output: "stderr"})
		logger.Info().Msg("console logger smoke test")
	})
}

func TestDefaultLoggingConfig(t *testing.T) {
	cfg := DefaultLoggingConfig()

	assert.Equal(t, "info", cfg.Level)
	assert.Equal(t, "json", cfg.Format)
	assert.Equal(t, "stdout", cfg.Output)
}

func TestLoggerContextHelpers(t *testing.T) {
	base := zerolog.Nop()

	// These are structural helpers; just verify they return usable loggers.
	reqLogger := WithRequestContext(base, "req-1", "POST", "/api/v1/imports")
	reqLogger.Info().Msg("ok")
	importLogger := WithImportContext(base, "run-1", "Allsanger")
	importLogger.Info().Msg("ok")
	mergeLogger := WithMergeContext(base, 2, 1)
	mergeLogger.Info().Msg("ok")
}
