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
	"cascii/internal/paths"
	"cascii/internal/store"
)

// CutVideo trims [start,end) seconds of a source into the project's cuts
// directory and records the cut.
func (e *Engine) CutVideo(ctx context.Context, sourcePath, projectID, sourceFileID string, start, end float64) (*store.VideoCut, error) {
	if start >= end {
		return nil, faults.Wrap(faults.ErrInvalidInput, "studio", "cut_video", "start must be before end", nil)
	}
	if !pathExists(sourcePath) {
		return nil, faults.Wrap(faults.ErrNotFound, "studio", "cut_video", "source file does not exist", nil)
	}
	project, err := e.store.GetProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	cutsDir, err := e.projectSubdir(project, paths.SubdirCuts)
	if err != nil {
		return nil, err
	}
	if err := paths.EnsureDir(cutsDir); err != nil {
		return nil, faults.Wrap(faults.ErrIO, "studio", "cut_video", "create cuts directory", err)
	}

	id := uuid.NewString()
	fileName := fileutil.Stem(sourcePath) + "_cut_" + fileutil.First8(id) + ".mp4"
	output := filepath.Join(cutsDir, fileName)

	e.sink.Publish(events.ChannelCutProgress, events.FileProgress{
		FileName:   fileName,
		Status:     events.StatusProcessing,
		Message:    fmt.Sprintf("Cutting %s...", filepath.Base(sourcePath)),
		Percentage: events.Percent(0),
	})

	if err := e.transcoder.CutVideo(ctx, sourcePath, output, start, end); err != nil {
		e.sink.Publish(events.ChannelCutProgress, events.FileProgress{
			FileName: fileName,
			Status:   events.StatusError,
			Message:  err.Error(),
		})
		return nil, err
	}

	cut := &store.VideoCut{
		ID:           id,
		ProjectID:    projectID,
		SourceFileID: sourceFileID,
		FilePath:     output,
		Size:         fileutil.FileSize(output),
		Start:        start,
		End:          end,
		Duration:     end - start,
		CreationDate: time.Now().UTC(),
	}
	if err := e.store.AddCut(ctx, cut); err != nil {
		return nil, err
	}

	e.sink.Publish(events.ChannelCutProgress, events.FileProgress{
		FileName:   fileName,
		Status:     events.StatusCompleted,
		Message:    fmt.Sprintf("Cut saved as %s", fileName),
		Percentage: events.Percent(100),
	})
	e.logger.Info("video cut recorded",
		logging.String(logging.FieldProjectID, projectID),
		logging.String(logging.FieldCutID, cut.ID),
		logging.String(logging.FieldPath, output),
	)

	if err := e.refreshProjectTotals(ctx, projectID); err != nil {
		return nil, err
	}
	return cut, nil
}

// DeleteCut removes the cut row and then best-effort removes the MP4.
func (e *Engine) DeleteCut(ctx context.Context, id string) error {
	cut, err := e.store.GetCut(ctx, id)
	if err != nil {
		return err
	}
	if err := e.store.DeleteCut(ctx, id); err != nil {
		return err
	}
	removeBestEffort(e.logger, cut.FilePath)
	return nil
}

// CutFrames copies an inclusive index range of an existing conversion into
// a new sibling conversion, renumbering the frames from 1.
func (e *Engine) CutFrames(ctx context.Context, folderPath string, startIndex, endIndex int) (string, error) {
	if startIndex > endIndex {
		return "", faults.Wrap(faults.ErrInvalidInput, "studio", "cut_frames", "frame range is empty", nil)
	}
	original, err := e.store.ConversionByFolderPath(ctx, folderPath)
	if err != nil {
		return "", err
	}
	if original == nil {
		return "", faults.Wrap(faults.ErrNotFound, "studio", "cut_frames", "no conversion recorded for folder", nil)
	}

	frames, err := e.GetFrameFiles(folderPath)
	if err != nil {
		return "", err
	}
	var slice []FrameFile
	for _, frame := range frames {
		if frame.Index >= startIndex && frame.Index <= endIndex {
			slice = append(slice, frame)
		}
	}
	if len(slice) == 0 {
		return "", faults.Wrap(faults.ErrInvalidInput, "studio", "cut_frames", "frame range is empty", nil)
	}

	parent := filepath.Dir(folderPath)
	base := stripArtifactSuffix(filepath.Base(folderPath))
	folderName, destination := uniqueArtifactDir(parent, base, "ascii")
	if err := paths.EnsureDir(destination); err != nil {
		return "", faults.Wrap(faults.ErrIO, "studio", "cut_frames", "create slice directory", err)
	}

	var totalSize int64
	for i, frame := range slice {
		target := filepath.Join(destination, fileutil.FrameFileName(i+1))
		if err := fileutil.CopyFile(frame.Path, target); err != nil {
			return "", faults.Wrap(faults.ErrIO, "studio", "cut_frames", "copy frame file", err)
		}
		totalSize += fileutil.FileSize(target)

		// Color companions follow their frame when present.
		companion := strings.TrimSuffix(frame.Path, ".txt") + ".cframe"
		if pathExists(companion) {
			companionTarget := strings.TrimSuffix(target, ".txt") + ".cframe"
			if err := fileutil.CopyFile(companion, companionTarget); err != nil {
				return "", faults.Wrap(faults.ErrIO, "studio", "cut_frames", "copy color frame", err)
			}
			totalSize += fileutil.FileSize(companionTarget)
		}
	}

	customName := "Cut frames"
	if original.CustomName != "" {
		customName = original.CustomName + " (Cut)"
	}
	conversion := &store.Conversion{
		ID:           uuid.NewString(),
		FolderName:   folderName,
		FolderPath:   destination,
		FrameCount:   len(slice),
		SourceFileID: original.SourceFileID,
		ProjectID:    original.ProjectID,
		Settings:     original.Settings,
		CreationDate: time.Now().UTC(),
		TotalSize:    totalSize,
		CustomName:   customName,
	}
	if err := e.store.AddConversion(ctx, conversion); err != nil {
		return "", err
	}
	if err := e.refreshProjectTotals(ctx, original.ProjectID); err != nil {
		return "", err
	}

	e.logger.Info("frame slice recorded",
		logging.String(logging.FieldConversionID, conversion.ID),
		logging.Int("frame_count", len(slice)),
	)
	return fmt.Sprintf("Cut %d frames into %s", len(slice), folderName), nil
}

// stripArtifactSuffix removes a trailing _ascii[...] or _cut... decoration
// from a folder name so slices of slices do not stack suffixes.
func stripArtifactSuffix(name string) string {
	if idx := strings.LastIndex(name, "_ascii"); idx > 0 {
		return name[:idx]
	}
	if idx := strings.LastIndex(name, "_cut"); idx > 0 {
		return name[:idx]
	}
	return name
}
