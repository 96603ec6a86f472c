// Package paths resolves the per-user application directories and the
// per-project directory tree. Resolution is a pure function of the
// environment; directory creation is idempotent and nothing here deletes.
package paths

import (
	"fmt"
	"os"
	"path/filepath"
)

const appDirName = "cascii_studio"

// SubdirKind names a project subdirectory.
type SubdirKind string

const (
	SubdirSource SubdirKind = "source"
	SubdirFrames SubdirKind = "frames"
	SubdirCuts   SubdirKind = "cuts"
	SubdirAudio  SubdirKind = "audio"
)

// AppConfigDir returns the per-user configuration directory for the
// application, falling back to the home directory when the OS config
// location cannot be resolved.
func AppConfigDir() string {
	base, err := os.UserConfigDir()
	if err != nil {
		if home, homeErr := os.UserHomeDir(); homeErr == nil {
			base = home
		} else {
			base = "."
		}
	}
	return filepath.Join(base, appDirName)
}

// MediaCacheDir returns the prepared-media cache directory.
func MediaCacheDir() string {
	return filepath.Join(AppConfigDir(), "media")
}

// DatabaseFile returns the metadata store location.
func DatabaseFile() string {
	return filepath.Join(AppConfigDir(), "projects.db")
}

// SettingsFile returns the user settings document location.
func SettingsFile() string {
	return filepath.Join(AppConfigDir(), "settings.json")
}

// DaemonConfigFile returns the daemon configuration file location.
func DaemonConfigFile() string {
	return filepath.Join(AppConfigDir(), "daemon.toml")
}

// ProjectRoot joins the configured output directory with a project's
// relative folder name.
func ProjectRoot(outputDir, projectPath string) string {
	return filepath.Join(outputDir, projectPath)
}

// ProjectSubdir returns one of a project's well-known subdirectories.
func ProjectSubdir(outputDir, projectPath string, kind SubdirKind) string {
	return filepath.Join(ProjectRoot(outputDir, projectPath), string(kind))
}

// EnsureDir creates dir (and parents) when missing.
func EnsureDir(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create directory %q: %w", dir, err)
	}
	return nil
}

// EnsureProjectTree creates a project root with all four subdirectories.
func EnsureProjectTree(outputDir, projectPath string) error {
	for _, kind := range []SubdirKind{SubdirSource, SubdirFrames, SubdirCuts, SubdirAudio} {
		if err := EnsureDir(ProjectSubdir(outputDir, projectPath, kind)); err != nil {
			return err
		}
	}
	return nil
}
