package ascii

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"cascii/internal/faults"
	"cascii/internal/fileutil"
)

// FrameExtractor produces still frames from a video into a directory.
type FrameExtractor interface {
	ExtractFrames(ctx context.Context, input, dir string, fps int) error
}

// ProgressFunc reports completed versus total frame counts during a video
// conversion. It is invoked from the conversion goroutine.
type ProgressFunc func(completed, total int)

// VideoResult summarizes a finished video conversion.
type VideoResult struct {
	FrameCount int
	TotalBytes int64
}

// ConvertVideo extracts stills from input and renders each one into outDir
// as frame_NNNN.txt (plus color companions when enabled). Extracted stills
// live in a temporary directory that is removed on return.
func ConvertVideo(ctx context.Context, extractor FrameExtractor, input, outDir string, opts Options, progress ProgressFunc) (VideoResult, error) {
	workDir, err := os.MkdirTemp("", "cascii-frames-*")
	if err != nil {
		return VideoResult{}, faults.Wrap(faults.ErrIO, "ascii", "convert_video", "create extraction directory", err)
	}
	defer os.RemoveAll(workDir)

	if err := extractor.ExtractFrames(ctx, input, workDir, opts.fps); err != nil {
		return VideoResult{}, err
	}

	stills, err := listStills(workDir)
	if err != nil {
		return VideoResult{}, err
	}
	if len(stills) == 0 {
		return VideoResult{}, faults.Wrap(faults.ErrTaskFailed, "ascii", "convert_video", "no frames extracted from video", nil)
	}

	var result VideoResult
	for i, still := range stills {
		img, err := decodePNG(still)
		if err != nil {
			return result, faults.Wrap(faults.ErrIO, "ascii", "convert_video", "decode extracted frame", err)
		}
		name := strings.TrimSuffix(fileutil.FrameFileName(i+1), ".txt")
		written, err := writeFrame(ConvertImage(img, opts), outDir, name)
		if err != nil {
			return result, err
		}
		result.FrameCount++
		result.TotalBytes += written
		if progress != nil {
			progress(i+1, len(stills))
		}
	}
	return result, nil
}

func listStills(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, faults.Wrap(faults.ErrIO, "ascii", "convert_video", "list extracted frames", err)
	}
	stills := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".png") {
			continue
		}
		stills = append(stills, filepath.Join(dir, entry.Name()))
	}
	sort.Strings(stills)
	return stills, nil
}
