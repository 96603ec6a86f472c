package logging

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"cascii/internal/config"
)

// NewFromConfig creates a logger using daemon config defaults. When
// debugLogs is set the configured level is lowered to debug, matching the
// user preference in the settings document.
func NewFromConfig(cfg *config.Config, debugLogs bool) (*slog.Logger, error) {
	if cfg == nil {
		return New(Options{Level: "info", Format: "console"})
	}

	level := cfg.Logging.Level
	if debugLogs {
		level = "debug"
	}

	outputPaths := []string{"stdout"}
	errorOutputs := []string{"stderr"}
	if cfg.Paths.LogDir != "" {
		if err := os.MkdirAll(cfg.Paths.LogDir, 0o755); err != nil {
			return nil, fmt.Errorf("ensure log directory: %w", err)
		}
		logPath := filepath.Join(cfg.Paths.LogDir, "cascii.log")
		outputPaths = append(outputPaths, logPath)
		errorOutputs = append(errorOutputs, logPath)
	}

	return New(Options{
		Level:            level,
		Format:           cfg.Logging.Format,
		OutputPaths:      outputPaths,
		ErrorOutputPaths: errorOutputs,
	})
}
