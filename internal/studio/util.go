package studio

import (
	"log/slog"
	"os"

	"cascii/internal/fileutil"
	"cascii/internal/logging"
)

func pathExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func randomSuffix() string {
	return fileutil.RandomSuffix(10)
}

// removeBestEffort deletes a disk artifact after its row is gone; failure
// only logs, the store remains the source of truth.
func removeBestEffort(logger *slog.Logger, path string) {
	if err := os.RemoveAll(path); err != nil {
		logger.Warn("artifact left behind",
			logging.String(logging.FieldPath, path),
			logging.Error(err),
		)
	}
}
