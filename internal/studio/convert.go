package studio

import (
	"context"
	"fmt"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"cascii/internal/ascii"
	"cascii/internal/events"
	"cascii/internal/faults"
	"cascii/internal/fileutil"
	"cascii/internal/logging"
	"cascii/internal/paths"
	"cascii/internal/store"
)

// ConversionRequest carries the parameters of one ASCII conversion.
type ConversionRequest struct {
	FilePath     string  `json:"file_path"`
	Luminance    int     `json:"luminance"`
	FontRatio    float64 `json:"font_ratio"`
	Columns      int     `json:"columns"`
	FPS          int     `json:"fps,omitempty"`
	ProjectID    string  `json:"project_id"`
	SourceFileID string  `json:"source_file_id"`
	CustomName   string  `json:"custom_name,omitempty"`
	Color        bool    `json:"color"`
	ExtractAudio bool    `json:"extract_audio"`
}

// ConvertToASCII validates the request and returns immediately; the work
// continues on a background goroutine reporting through the event sink.
// Progress percentages are emitted only on strict increase; the terminal
// conversion-complete event fires exactly once.
func (e *Engine) ConvertToASCII(ctx context.Context, req ConversionRequest) (string, error) {
	if !pathExists(req.FilePath) {
		return "", faults.Wrap(faults.ErrNotFound, "studio", "convert_to_ascii", "source file does not exist", nil)
	}
	project, err := e.store.GetProject(ctx, req.ProjectID)
	if err != nil {
		return "", err
	}

	e.background.Add(1)
	go func() {
		defer e.background.Done()
		// Command contexts die with the RPC call; the conversion outlives it.
		e.runConversion(context.Background(), project, req)
	}()

	return "ASCII conversion started", nil
}

func (e *Engine) runConversion(ctx context.Context, project *store.Project, req ConversionRequest) {
	completed := false
	complete := func(success bool, message string) {
		if completed {
			return
		}
		completed = true
		e.sink.Publish(events.ChannelConversionComplete, events.ConversionComplete{
			SourceID: req.SourceFileID,
			Success:  success,
			Message:  message,
		})
	}
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("conversion worker panicked",
				logging.String(logging.FieldSourceID, req.SourceFileID),
				logging.Any("panic", r),
			)
			complete(false, fmt.Sprintf("Conversion failed: %v", r))
		}
	}()

	framesDir, err := e.projectSubdir(project, paths.SubdirFrames)
	if err != nil {
		complete(false, err.Error())
		return
	}
	stem := fileutil.Stem(req.FilePath)
	folderName, folderPath := uniqueArtifactDir(framesDir, stem, "ascii")
	if err := paths.EnsureDir(folderPath); err != nil {
		complete(false, fmt.Sprintf("Could not create output directory: %v", err))
		return
	}

	opts := ascii.NewOptions().
		WithColumns(req.Columns).
		WithFontRatio(req.FontRatio).
		WithLuminance(req.Luminance).
		WithFPS(req.FPS).
		WithColor(req.Color)

	isVideo := classifySource(req.FilePath) == store.SourceVideo
	if isVideo {
		err = e.convertVideoSource(ctx, req, folderPath, opts)
	} else {
		_, err = ascii.ConvertImageFile(req.FilePath, folderPath, stem, opts)
	}
	if err != nil {
		complete(false, fmt.Sprintf("Conversion failed: %v", err))
		return
	}

	frameCount, totalSize, err := countFrames(folderPath)
	if err != nil {
		complete(false, fmt.Sprintf("Conversion produced no readable frames: %v", err))
		return
	}

	conversion := &store.Conversion{
		ID:           uuid.NewString(),
		FolderName:   folderName,
		FolderPath:   folderPath,
		FrameCount:   frameCount,
		SourceFileID: req.SourceFileID,
		ProjectID:    req.ProjectID,
		Settings: store.ConversionSettings{
			Luminance:  req.Luminance,
			FontRatio:  req.FontRatio,
			Columns:    req.Columns,
			FPS:        req.FPS,
			FrameSpeed: req.FPS,
			Color:      req.Color,
		},
		CreationDate: time.Now().UTC(),
		TotalSize:    totalSize,
		CustomName:   req.CustomName,
	}
	if err := e.store.AddConversion(ctx, conversion); err != nil {
		complete(false, fmt.Sprintf("Could not record conversion: %v", err))
		return
	}

	if req.ExtractAudio && isVideo {
		if err := e.extractAudioSideChannel(ctx, project, req, stem); err != nil {
			e.logger.Warn("audio extraction failed",
				logging.String(logging.FieldSourceID, req.SourceFileID),
				logging.Error(err),
			)
		}
	}

	if err := e.refreshProjectTotals(ctx, req.ProjectID); err != nil {
		e.logger.Warn("project totals not refreshed",
			logging.String(logging.FieldProjectID, req.ProjectID),
			logging.Error(err),
		)
	}

	e.logger.Info("conversion finished",
		logging.String(logging.FieldSourceID, req.SourceFileID),
		logging.String(logging.FieldConversionID, conversion.ID),
		logging.Int("frame_count", frameCount),
	)
	complete(true, fmt.Sprintf("Converted %d frames", frameCount))
}

// convertVideoSource renders every sampled frame, throttling progress by
// strict integer-percent increase.
func (e *Engine) convertVideoSource(ctx context.Context, req ConversionRequest, folderPath string, opts ascii.Options) error {
	var lastPercent atomic.Int64
	lastPercent.Store(-1)

	_, err := ascii.ConvertVideo(ctx, e.transcoder, req.FilePath, folderPath, opts, func(completed, total int) {
		percent := int64(completed * 100 / total)
		for {
			previous := lastPercent.Load()
			if percent <= previous {
				return
			}
			if lastPercent.CompareAndSwap(previous, percent) {
				break
			}
		}
		e.sink.Publish(events.ChannelConversionProgress, events.ConversionProgress{
			SourceID:   req.SourceFileID,
			Percentage: int(percent),
		})
	})
	return err
}

func (e *Engine) extractAudioSideChannel(ctx context.Context, project *store.Project, req ConversionRequest, stem string) error {
	audioRoot, err := e.projectSubdir(project, paths.SubdirAudio)
	if err != nil {
		return err
	}
	folderName, folderPath := uniqueArtifactDir(audioRoot, stem, "audio")
	if err := paths.EnsureDir(folderPath); err != nil {
		return faults.Wrap(faults.ErrIO, "studio", "extract_audio", "create audio directory", err)
	}

	output := filepath.Join(folderPath, stem+".mp3")
	_, size, duration, err := e.transcoder.ExtractAudio(ctx, req.FilePath, output)
	if err != nil {
		return err
	}

	return e.store.AddAudioExtraction(ctx, &store.AudioExtraction{
		ID:                  uuid.NewString(),
		SourceFileID:        req.SourceFileID,
		ProjectID:           req.ProjectID,
		FolderName:          folderName,
		FolderPath:          folderPath,
		CreationDate:        time.Now().UTC(),
		Size:                size,
		AudioTrackBeginning: 0,
		AudioTrackEnd:       duration,
	})
}
