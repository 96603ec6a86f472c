// Package studio is the workspace engine: it owns the pipelines that turn
// user media into projects, ASCII conversions, cuts, and audio extractions,
// keeping the metadata store and the on-disk tree consistent.
package studio

import (
	"context"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"cascii/internal/events"
	"cascii/internal/logging"
	"cascii/internal/media"
	"cascii/internal/paths"
	"cascii/internal/settings"
	"cascii/internal/store"
	"cascii/internal/transcoder"
)

// Transcoder is the subset of the binary-pair adapter the pipelines invoke.
// The concrete implementation shells out to ffmpeg/ffprobe; tests supply
// fakes.
type Transcoder interface {
	Duration(ctx context.Context, path string) float64
	ConvertToMP4(ctx context.Context, input, output string, progress transcoder.ProgressFunc) error
	ExtractAudio(ctx context.Context, input, output string) (dir string, size int64, duration float64, err error)
	CutVideo(ctx context.Context, input, output string, start, end float64) error
	ExtractFrames(ctx context.Context, input, dir string, fps int) error
}

// Engine wires the store, settings, transcoder, preparer, and event sink
// into the pipeline surface the front-end drives.
type Engine struct {
	store      *store.Store
	settings   *settings.Service
	transcoder Transcoder
	preparer   *media.Preparer
	sink       events.Sink
	logger     *slog.Logger
	sidecarDir string

	background sync.WaitGroup
}

// Options carries Engine construction dependencies.
type Options struct {
	Store      *store.Store
	Settings   *settings.Service
	Transcoder Transcoder
	Preparer   *media.Preparer
	Sink       events.Sink
	Logger     *slog.Logger
	SidecarDir string
}

// New builds an engine. Store, Settings, Transcoder, and Sink are required.
func New(opts Options) *Engine {
	return &Engine{
		store:      opts.Store,
		settings:   opts.Settings,
		transcoder: opts.Transcoder,
		preparer:   opts.Preparer,
		sink:       opts.Sink,
		logger:     logging.NewComponentLogger(opts.Logger, "studio"),
		sidecarDir: opts.SidecarDir,
	}
}

// Wait blocks until all fire-and-forget work has finished. The daemon calls
// it during shutdown; tests call it before asserting on events.
func (e *Engine) Wait() {
	e.background.Wait()
}

// Settings exposes the settings service for the command surface.
func (e *Engine) Settings() *settings.Service {
	return e.settings
}

// PrepareMedia stages a user-selected file into the shared media cache.
func (e *Engine) PrepareMedia(path string) (media.Prepared, error) {
	return e.preparer.Prepare(path)
}

// CheckSystemFFmpeg reports whether the PATH binary pair is usable.
func (e *Engine) CheckSystemFFmpeg(ctx context.Context) bool {
	return transcoder.CheckSystem(ctx)
}

// CheckSidecarFFmpeg reports whether a bundled binary pair can be located.
func (e *Engine) CheckSidecarFFmpeg(ctx context.Context) bool {
	return transcoder.CheckSidecar(ctx, e.sidecarDir)
}

// outputDir resolves the configured project output directory.
func (e *Engine) outputDir() (string, error) {
	loaded, err := e.settings.Load()
	if err != nil {
		return "", err
	}
	return loaded.OutputDirectory, nil
}

// projectRoot joins the output directory with the project folder.
func (e *Engine) projectRoot(project *store.Project) (string, error) {
	dir, err := e.outputDir()
	if err != nil {
		return "", err
	}
	return paths.ProjectRoot(dir, project.Path), nil
}

func (e *Engine) projectSubdir(project *store.Project, kind paths.SubdirKind) (string, error) {
	dir, err := e.outputDir()
	if err != nil {
		return "", err
	}
	return paths.ProjectSubdir(dir, project.Path, kind), nil
}

// refreshProjectTotals recomputes a project's aggregate size and frame count
// from the store and stamps last-modified.
func (e *Engine) refreshProjectTotals(ctx context.Context, projectID string) error {
	var size int64
	frames := 0

	sources, err := e.store.SourcesOfProject(ctx, projectID)
	if err != nil {
		return err
	}
	for _, source := range sources {
		size += source.Size
	}
	conversions, err := e.store.ConversionsOfProject(ctx, projectID)
	if err != nil {
		return err
	}
	for _, conversion := range conversions {
		size += conversion.TotalSize
		frames += conversion.FrameCount
	}
	cuts, err := e.store.CutsOfProject(ctx, projectID)
	if err != nil {
		return err
	}
	for _, cut := range cuts {
		size += cut.Size
	}
	extractions, err := e.store.AudioExtractionsOfProject(ctx, projectID)
	if err != nil {
		return err
	}
	for _, extraction := range extractions {
		size += extraction.Size
	}

	return e.store.UpdateProjectTotals(ctx, projectID, size, frames, nowStamp())
}

func nowStamp() string {
	return time.Now().UTC().Format(time.RFC3339)
}

// uniqueArtifactDir returns "{stem}_{tag}[{R10}]" under parent, retrying the
// random suffix on the unlikely collision.
func uniqueArtifactDir(parent, stem, tag string) (name, path string) {
	for {
		name = stem + "_" + tag + "[" + randomSuffix() + "]"
		path = filepath.Join(parent, name)
		if !pathExists(path) {
			return name, path
		}
	}
}
