// Package settings persists the user preferences document. The document is
// a single JSON file; loads of an absent file create it with defaults, and
// every save rewrites the whole document.
package settings

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"cascii/internal/faults"
)

// Behavior selects how ingested files leave their original location.
type Behavior string

const (
	BehaviorMove Behavior = "move"
	BehaviorCopy Behavior = "copy"
)

// DeleteMode captures the soft/hard delete preference. It is persisted for
// the front-end but consumed by no pipeline.
type DeleteMode string

const (
	DeleteSoft DeleteMode = "soft"
	DeleteHard DeleteMode = "hard"
)

// FFmpegSource selects where the transcoder binaries come from.
type FFmpegSource string

const (
	FFmpegSystem  FFmpegSource = "system"
	FFmpegSidecar FFmpegSource = "sidecar"
)

// Settings is the persisted user preferences document.
type Settings struct {
	OutputDirectory     string       `json:"output_directory"`
	DefaultBehavior     Behavior     `json:"default_behavior"`
	DeleteMode          DeleteMode   `json:"delete_mode"`
	DebugLogs           bool         `json:"debug_logs"`
	LoopEnabled         bool         `json:"loop_enabled"`
	ColorFramesDefault  bool         `json:"color_frames_default"`
	ExtractAudioDefault bool         `json:"extract_audio_default"`
	FFmpegSource        FFmpegSource `json:"ffmpeg_source"`
}

// Default returns the settings used when no document exists yet.
func Default() Settings {
	return Settings{
		OutputDirectory:     defaultOutputDir(),
		DefaultBehavior:     BehaviorMove,
		DeleteMode:          DeleteSoft,
		DebugLogs:           true,
		LoopEnabled:         true,
		ColorFramesDefault:  true,
		ExtractAudioDefault: false,
		FFmpegSource:        FFmpegSystem,
	}
}

func defaultOutputDir() string {
	if home, err := os.UserHomeDir(); err == nil {
		documents := filepath.Join(home, "Documents")
		if info, statErr := os.Stat(documents); statErr == nil && info.IsDir() {
			return documents
		}
		return home
	}
	return "/"
}

// Service loads and saves the settings document at a fixed path.
type Service struct {
	path string
}

// NewService builds a settings service for the document at path.
func NewService(path string) *Service {
	return &Service{path: path}
}

// Load reads the settings document. An absent file is created with defaults;
// unrecognized or missing fields fall back to their defaults.
func (s *Service) Load() (Settings, error) {
	raw, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		defaults := Default()
		if saveErr := s.Save(defaults); saveErr != nil {
			return defaults, saveErr
		}
		return defaults, nil
	}
	if err != nil {
		return Default(), faults.Wrap(faults.ErrIO, "settings", "load", "read settings document", err)
	}

	loaded := Default()
	if err := json.Unmarshal(raw, &loaded); err != nil {
		// A damaged document falls back to defaults rather than blocking
		// the whole application.
		return Default(), nil
	}
	normalize(&loaded)
	return loaded, nil
}

// Save writes the whole settings document.
func (s *Service) Save(settings Settings) error {
	normalize(&settings)
	if dir := filepath.Dir(s.path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return faults.Wrap(faults.ErrIO, "settings", "save", "ensure settings directory", err)
		}
	}
	body, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return faults.Wrap(faults.ErrIO, "settings", "save", "encode settings document", err)
	}
	if err := os.WriteFile(s.path, body, 0o644); err != nil {
		return faults.Wrap(faults.ErrIO, "settings", "save", "write settings document", err)
	}
	return nil
}

func normalize(settings *Settings) {
	if settings.OutputDirectory == "" {
		settings.OutputDirectory = defaultOutputDir()
	}
	if settings.DefaultBehavior != BehaviorCopy {
		settings.DefaultBehavior = BehaviorMove
	}
	if settings.DeleteMode != DeleteHard {
		settings.DeleteMode = DeleteSoft
	}
	if settings.FFmpegSource != FFmpegSidecar {
		settings.FFmpegSource = FFmpegSystem
	}
}
