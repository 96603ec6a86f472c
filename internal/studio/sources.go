package studio

import (
	"context"

	"cascii/internal/store"
)

// ProjectSources lists a project's source files, oldest first.
func (e *Engine) ProjectSources(ctx context.Context, projectID string) ([]*store.SourceFile, error) {
	return e.store.SourcesOfProject(ctx, projectID)
}

// ProjectConversions lists a project's conversions, newest first.
func (e *Engine) ProjectConversions(ctx context.Context, projectID string) ([]*store.Conversion, error) {
	return e.store.ConversionsOfProject(ctx, projectID)
}

// ProjectCuts lists a project's video cuts.
func (e *Engine) ProjectCuts(ctx context.Context, projectID string) ([]*store.VideoCut, error) {
	return e.store.CutsOfProject(ctx, projectID)
}

// ProjectAudioExtractions lists a project's audio extractions.
func (e *Engine) ProjectAudioExtractions(ctx context.Context, projectID string) ([]*store.AudioExtraction, error) {
	return e.store.AudioExtractionsOfProject(ctx, projectID)
}

// ConversionByFolderPath fetches the conversion recorded for a folder, or
// nil when none exists.
func (e *Engine) ConversionByFolderPath(ctx context.Context, folderPath string) (*store.Conversion, error) {
	return e.store.ConversionByFolderPath(ctx, folderPath)
}

// DeleteSource removes the source row (cascading to dependents) and then
// best-effort removes the ingested file.
func (e *Engine) DeleteSource(ctx context.Context, id string) error {
	source, err := e.store.GetSource(ctx, id)
	if err != nil {
		return err
	}
	if err := e.store.DeleteSource(ctx, id); err != nil {
		return err
	}
	removeBestEffort(e.logger, source.FilePath)
	return e.refreshProjectTotals(ctx, source.ProjectID)
}

// DeleteAudioExtraction removes the extraction row and its folder.
func (e *Engine) DeleteAudioExtraction(ctx context.Context, id string) error {
	extraction, err := e.store.GetAudioExtraction(ctx, id)
	if err != nil {
		return err
	}
	if err := e.store.DeleteAudioExtraction(ctx, id); err != nil {
		return err
	}
	removeBestEffort(e.logger, extraction.FolderPath)
	return nil
}

// UpdateSourceCustomName sets a source's display name.
func (e *Engine) UpdateSourceCustomName(ctx context.Context, id, customName string) error {
	return e.store.UpdateSourceCustomName(ctx, id, customName)
}

// UpdateConversionCustomName sets a conversion's display name.
func (e *Engine) UpdateConversionCustomName(ctx context.Context, id, customName string) error {
	return e.store.UpdateConversionCustomName(ctx, id, customName)
}

// UpdateCutCustomName sets a cut's display name.
func (e *Engine) UpdateCutCustomName(ctx context.Context, id, customName string) error {
	return e.store.UpdateCutCustomName(ctx, id, customName)
}

// UpdateConversionFrameSpeed sets a conversion's playback rate.
func (e *Engine) UpdateConversionFrameSpeed(ctx context.Context, id string, frameSpeed int) error {
	return e.store.UpdateConversionFrameSpeed(ctx, id, frameSpeed)
}
