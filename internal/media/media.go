// Package media prepares user-selected files for display: it classifies
// them, stages a copy in the shared media cache, and reports basic
// attributes the front-end needs before any pipeline runs.
package media

import (
	"errors"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io/fs"
	"log/slog"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"cascii/internal/faults"
	"cascii/internal/fileutil"
	"cascii/internal/logging"
	"cascii/internal/paths"
)

// Kind classifies a prepared file.
type Kind string

const (
	KindImage   Kind = "image"
	KindVideo   Kind = "video"
	KindUnknown Kind = "unknown"
)

var imageExtensions = map[string]struct{}{
	".jpg": {}, ".jpeg": {}, ".png": {}, ".gif": {}, ".webp": {},
}

var videoExtensions = map[string]struct{}{
	".mp4": {}, ".mov": {}, ".avi": {}, ".webm": {}, ".mkv": {}, ".flv": {},
}

// mimeFallbacks covers extensions the host mime table may not know.
var mimeFallbacks = map[string]string{
	".webp": "image/webp",
	".mkv":  "video/x-matroska",
	".flv":  "video/x-flv",
	".mov":  "video/quicktime",
}

// KindForPath classifies a file by extension alone.
func KindForPath(path string) Kind {
	ext := strings.ToLower(filepath.Ext(path))
	if _, ok := imageExtensions[ext]; ok {
		return KindImage
	}
	if _, ok := videoExtensions[ext]; ok {
		return KindVideo
	}
	return KindUnknown
}

// MIMEForPath resolves a MIME type for the file extension, falling back to
// application/octet-stream.
func MIMEForPath(path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	if typ := mime.TypeByExtension(ext); typ != "" {
		if idx := strings.IndexByte(typ, ';'); idx >= 0 {
			typ = typ[:idx]
		}
		return typ
	}
	if typ, ok := mimeFallbacks[ext]; ok {
		return typ
	}
	return "application/octet-stream"
}

// Prepared describes a file staged in the media cache.
type Prepared struct {
	Path     string `json:"path"`
	MIMEType string `json:"mime_type"`
	Kind     Kind   `json:"kind"`
	Size     int64  `json:"size"`
	Width    int    `json:"width,omitempty"`
	Height   int    `json:"height,omitempty"`
}

// Preparer stages files into a cache directory keyed by base name. Files
// staged twice under the same name reuse the cached copy.
type Preparer struct {
	cacheDir string
	logger   *slog.Logger
}

// NewPreparer builds a preparer over the given cache directory.
func NewPreparer(cacheDir string, logger *slog.Logger) *Preparer {
	return &Preparer{
		cacheDir: cacheDir,
		logger:   logging.NewComponentLogger(logger, "media"),
	}
}

// Prepare stages path into the cache and reports its attributes. The source
// file is never modified; hard links are used when the filesystem allows.
func (p *Preparer) Prepare(path string) (Prepared, error) {
	source, err := filepath.Abs(strings.TrimSpace(path))
	if err != nil {
		return Prepared{}, faults.Wrap(faults.ErrInvalidInput, "media", "prepare", "resolve source path", err)
	}
	info, err := os.Stat(source)
	if errors.Is(err, fs.ErrNotExist) {
		return Prepared{}, faults.Wrap(faults.ErrNotFound, "media", "prepare", "source file does not exist", err)
	}
	if err != nil {
		return Prepared{}, faults.Wrap(faults.ErrIO, "media", "prepare", "stat source file", err)
	}
	if info.IsDir() {
		return Prepared{}, faults.Wrap(faults.ErrInvalidInput, "media", "prepare", "source is a directory", nil)
	}

	if err := paths.EnsureDir(p.cacheDir); err != nil {
		return Prepared{}, faults.Wrap(faults.ErrIO, "media", "prepare", "ensure cache directory", err)
	}

	target := filepath.Join(p.cacheDir, filepath.Base(source))
	if target != source {
		if _, statErr := os.Stat(target); errors.Is(statErr, fs.ErrNotExist) {
			if err := fileutil.LinkOrCopy(source, target); err != nil {
				return Prepared{}, faults.Wrap(faults.ErrIO, "media", "prepare", "stage file into cache", err)
			}
		}
	}

	prepared := Prepared{
		Path:     target,
		MIMEType: MIMEForPath(target),
		Kind:     KindForPath(target),
		Size:     info.Size(),
	}
	if prepared.Kind == KindImage {
		if width, height, ok := decodeDimensions(target); ok {
			prepared.Width = width
			prepared.Height = height
		}
	}

	p.logger.Debug("prepared media",
		logging.String(logging.FieldPath, prepared.Path),
		logging.String("kind", string(prepared.Kind)),
		logging.Int64("size", prepared.Size),
	)
	return prepared, nil
}

func decodeDimensions(path string) (int, int, bool) {
	file, err := os.Open(path)
	if err != nil {
		return 0, 0, false
	}
	defer file.Close()
	cfg, _, err := image.DecodeConfig(file)
	if err != nil {
		return 0, 0, false
	}
	return cfg.Width, cfg.Height, true
}
