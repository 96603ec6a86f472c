package studio

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"cascii/internal/events"
	"cascii/internal/faults"
	"cascii/internal/fileutil"
	"cascii/internal/logging"
	"cascii/internal/media"
	"cascii/internal/paths"
	"cascii/internal/settings"
	"cascii/internal/store"
	"cascii/internal/transcoder"
)

// AddSources ingests paths into an existing project. Per-file failures are
// reported on the event sink and do not abort the batch.
func (e *Engine) AddSources(ctx context.Context, projectID string, sourcePaths []string) error {
	project, err := e.store.GetProject(ctx, projectID)
	if err != nil {
		return err
	}
	e.ingestFiles(ctx, project, sourcePaths)
	if err := e.maybePromoteToAnimation(ctx, project); err != nil {
		return err
	}
	return e.refreshProjectTotals(ctx, projectID)
}

// ingestFiles normalizes each path into the project's source directory in
// input order, emitting the processing/converting/completed sequence per
// file.
func (e *Engine) ingestFiles(ctx context.Context, project *store.Project, sourcePaths []string) {
	for _, path := range sourcePaths {
		if err := e.ingestOne(ctx, project, path); err != nil {
			e.logger.Warn("source ingestion failed",
				logging.String(logging.FieldProjectID, project.ID),
				logging.String(logging.FieldPath, path),
				logging.Error(err),
			)
			e.sink.Publish(events.ChannelFileProgress, events.FileProgress{
				FileName: filepath.Base(path),
				Status:   events.StatusError,
				Message:  err.Error(),
			})
		}
	}
}

func (e *Engine) ingestOne(ctx context.Context, project *store.Project, path string) error {
	fileName := filepath.Base(path)
	e.sink.Publish(events.ChannelFileProgress, events.FileProgress{
		FileName: fileName,
		Status:   events.StatusProcessing,
		Message:  fmt.Sprintf("Processing %s...", fileName),
	})

	if !pathExists(path) {
		return faults.Wrap(faults.ErrNotFound, "studio", "add_sources", "source file does not exist", nil)
	}

	sourceDir, err := e.projectSubdir(project, paths.SubdirSource)
	if err != nil {
		return err
	}
	if err := paths.EnsureDir(sourceDir); err != nil {
		return faults.Wrap(faults.ErrIO, "studio", "add_sources", "create source directory", err)
	}

	contentType := classifySource(path)
	var destination string
	if contentType == store.SourceVideo && !isMP4(path) {
		destination = filepath.Join(sourceDir, fileutil.Stem(path)+".mp4")
		err = e.transcoder.ConvertToMP4(ctx, path, destination, func(progress transcoder.Progress) {
			e.sink.Publish(events.ChannelFileProgress, events.FileProgress{
				FileName:   fileName,
				Status:     events.StatusConverting,
				Message:    progress.Message,
				Percentage: events.Percent(progress.Percentage),
			})
		})
	} else {
		destination = filepath.Join(sourceDir, fileName)
		err = e.placeFile(path, destination)
	}
	if err != nil {
		return err
	}

	source := &store.SourceFile{
		ID:          uuid.NewString(),
		ContentType: contentType,
		ProjectID:   project.ID,
		DateAdded:   time.Now().UTC(),
		Size:        fileutil.FileSize(destination),
		FilePath:    destination,
	}
	if err := e.store.AddSource(ctx, source); err != nil {
		return err
	}

	e.sink.Publish(events.ChannelFileProgress, events.FileProgress{
		FileName:   fileName,
		Status:     events.StatusCompleted,
		Message:    fmt.Sprintf("Added %s", fileName),
		Percentage: events.Percent(100),
	})
	e.logger.Info("source added",
		logging.String(logging.FieldProjectID, project.ID),
		logging.String(logging.FieldSourceID, source.ID),
		logging.String(logging.FieldPath, destination),
	)
	return nil
}

// placeFile moves or copies path to destination per the default behavior
// setting.
func (e *Engine) placeFile(path, destination string) error {
	loaded, err := e.settings.Load()
	if err != nil {
		return err
	}
	if loaded.DefaultBehavior == settings.BehaviorCopy {
		if err := fileutil.CopyFile(path, destination); err != nil {
			return faults.Wrap(faults.ErrIO, "studio", "add_sources", "copy source file", err)
		}
		return nil
	}
	if err := fileutil.MoveFile(path, destination); err != nil {
		return faults.Wrap(faults.ErrIO, "studio", "add_sources", "move source file", err)
	}
	return nil
}

// maybePromoteToAnimation upgrades a project's type once it holds multiple
// sources or any video.
func (e *Engine) maybePromoteToAnimation(ctx context.Context, project *store.Project) error {
	if project.Type == store.ProjectAnimation {
		return nil
	}
	sources, err := e.store.SourcesOfProject(ctx, project.ID)
	if err != nil {
		return err
	}
	promote := len(sources) > 1
	for _, source := range sources {
		if source.ContentType == store.SourceVideo {
			promote = true
		}
	}
	if !promote {
		return nil
	}
	return e.store.SetProjectType(ctx, project.ID, store.ProjectAnimation)
}

func classifySource(path string) store.SourceType {
	if media.KindForPath(path) == media.KindVideo {
		return store.SourceVideo
	}
	return store.SourceImage
}

func isMP4(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".mp4")
}
