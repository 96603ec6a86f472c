package studio

import (
	"context"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"cascii/internal/faults"
	"cascii/internal/logging"
)

// FrameFile is one text frame inside a conversion folder.
type FrameFile struct {
	Path  string `json:"path"`
	Name  string `json:"name"`
	Index int    `json:"index"`
}

var frameIndexPattern = regexp.MustCompile(`^frame_(\d+)\.txt$`)
var leadingDigits = regexp.MustCompile(`^(\d+)`)

// frameIndex extracts the ordering index from a frame file name. Names
// outside the frame_N convention fall back to any leading digits.
func frameIndex(name string) (int, bool) {
	if match := frameIndexPattern.FindStringSubmatch(name); match != nil {
		index, err := strconv.Atoi(match[1])
		return index, err == nil
	}
	if match := leadingDigits.FindStringSubmatch(name); match != nil {
		index, err := strconv.Atoi(match[1])
		return index, err == nil
	}
	return 0, false
}

// GetFrameFiles lists a conversion folder's text frames sorted by embedded
// numeric index.
func (e *Engine) GetFrameFiles(dir string) ([]FrameFile, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, faults.Wrap(faults.ErrNotFound, "studio", "get_frame_files", "conversion folder unreadable", err)
	}
	frames := make([]FrameFile, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".txt") {
			continue
		}
		index, ok := frameIndex(entry.Name())
		if !ok {
			continue
		}
		frames = append(frames, FrameFile{
			Path:  filepath.Join(dir, entry.Name()),
			Name:  entry.Name(),
			Index: index,
		})
	}
	sort.Slice(frames, func(i, j int) bool { return frames[i].Index < frames[j].Index })
	return frames, nil
}

// ReadFrameFile returns one frame's text content.
func (e *Engine) ReadFrameFile(path string) (string, error) {
	body, err := os.ReadFile(path)
	if err != nil {
		return "", faults.Wrap(faults.ErrNotFound, "studio", "read_frame_file", "frame file unreadable", err)
	}
	return string(body), nil
}

// DeleteFrameDirectory removes a conversion row by folder path and then
// best-effort removes the folder.
func (e *Engine) DeleteFrameDirectory(ctx context.Context, folderPath string) error {
	if err := e.store.DeleteConversionByFolderPath(ctx, folderPath); err != nil {
		return err
	}
	if err := os.RemoveAll(folderPath); err != nil {
		e.logger.Warn("conversion folder left behind",
			logging.String(logging.FieldPath, folderPath),
			logging.Error(err),
		)
	}
	return nil
}

// countFrames tallies the .txt frames in a conversion folder and sums their
// sizes along with any color companions.
func countFrames(dir string) (int, int64, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, 0, err
	}
	count := 0
	var total int64
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		switch {
		case strings.HasSuffix(entry.Name(), ".txt"):
			count++
			total += info.Size()
		case strings.HasSuffix(entry.Name(), ".cframe"):
			total += info.Size()
		}
	}
	return count, total, nil
}
