package transcoder

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"math"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"cascii/internal/faults"
	"cascii/internal/fileutil"
	"cascii/internal/logging"
)

// Progress describes one ffmpeg progress emission.
type Progress struct {
	FileName   string `json:"file_name"`
	Status     string `json:"status"`
	Message    string `json:"message"`
	Percentage int    `json:"percentage"`
}

// ProgressFunc receives progress emissions on the worker goroutine.
type ProgressFunc func(Progress)

// Transcoder runs the resolved binary pair.
type Transcoder struct {
	cfg    Config
	logger *slog.Logger
}

// New builds a transcoder over a resolved config.
func New(cfg Config, logger *slog.Logger) *Transcoder {
	return &Transcoder{
		cfg:    cfg,
		logger: logging.NewComponentLogger(logger, "transcoder"),
	}
}

// Config returns the resolved binary paths.
func (t *Transcoder) Config() Config {
	return t.cfg
}

// Duration probes the container duration in seconds. Failures yield 0.
func (t *Transcoder) Duration(ctx context.Context, path string) float64 {
	cmd := exec.CommandContext(ctx, t.cfg.FFprobe,
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		path,
	)
	output, err := cmd.Output()
	if err != nil {
		t.logger.Debug("duration probe failed",
			logging.String(logging.FieldPath, path),
			logging.Error(err),
		)
		return 0
	}
	seconds, err := strconv.ParseFloat(strings.TrimSpace(string(output)), 64)
	if err != nil || math.IsNaN(seconds) || seconds < 0 {
		return 0
	}
	return seconds
}

// ConvertToMP4 re-encodes input into an H.264/AAC MP4 at output, streaming
// percentage progress parsed from ffmpeg's -progress output.
func (t *Transcoder) ConvertToMP4(ctx context.Context, input, output string, progress ProgressFunc) error {
	duration := t.Duration(ctx, input)
	fileName := filepath.Base(input)

	cmd := exec.CommandContext(ctx, t.cfg.FFmpeg,
		"-i", input,
		"-c:v", "libx264",
		"-c:a", "aac",
		"-movflags", "+faststart",
		"-progress", "pipe:2",
		"-y", output,
	)
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return faults.Wrap(faults.ErrTranscodeFailed, "transcoder", "convert", "open stderr pipe", err)
	}
	if err := cmd.Start(); err != nil {
		return faults.Wrap(faults.ErrTranscodeFailed, "transcoder", "convert", "spawn ffmpeg", err)
	}

	sampler := logging.NewProgressSampler(10)
	scanner := bufio.NewScanner(stderr)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		micros, ok := parseOutTimeMicros(scanner.Text())
		if !ok {
			continue
		}
		pct := percentOf(micros, duration)
		if sampler.ShouldLog(float64(pct), "convert") {
			t.logger.Debug("conversion progress",
				logging.String(logging.FieldPath, output),
				logging.Int(logging.FieldPercent, pct),
			)
		}
		if progress != nil {
			progress(Progress{
				FileName:   fileName,
				Status:     "processing",
				Message:    fmt.Sprintf("Converting to MP4... %d%%", pct),
				Percentage: pct,
			})
		}
	}

	if err := cmd.Wait(); err != nil {
		return faults.Wrap(faults.ErrTranscodeFailed, "transcoder", "convert", "ffmpeg exited with failure", err)
	}
	return nil
}

// ExtractAudio writes the input's audio track as MP3 at output. It returns
// the output directory, the produced file size, and the audio duration in
// seconds.
func (t *Transcoder) ExtractAudio(ctx context.Context, input, output string) (string, int64, float64, error) {
	cmd := exec.CommandContext(ctx, t.cfg.FFmpeg,
		"-i", input,
		"-vn",
		"-acodec", "libmp3lame",
		"-q:a", "2",
		"-y", output,
	)
	if combined, err := cmd.CombinedOutput(); err != nil {
		return "", 0, 0, faults.Wrap(faults.ErrTranscodeFailed, "transcoder", "extract_audio",
			fmt.Sprintf("ffmpeg exited with failure: %s", lastLine(combined)), err)
	}

	size := fileutil.FileSize(output)
	duration := t.Duration(ctx, output)
	return filepath.Dir(output), size, duration, nil
}

// ExtractFrames decodes input into still PNGs under dir, sampled at fps
// frames per second (0 keeps the source rate). Stills are named so a
// lexical sort matches play order.
func (t *Transcoder) ExtractFrames(ctx context.Context, input, dir string, fps int) error {
	args := []string{"-i", input}
	if fps > 0 {
		args = append(args, "-vf", fmt.Sprintf("fps=%d", fps))
	}
	args = append(args, "-y", filepath.Join(dir, "still_%05d.png"))
	cmd := exec.CommandContext(ctx, t.cfg.FFmpeg, args...)
	if combined, err := cmd.CombinedOutput(); err != nil {
		return faults.Wrap(faults.ErrTranscodeFailed, "transcoder", "extract_frames",
			fmt.Sprintf("ffmpeg exited with failure: %s", lastLine(combined)), err)
	}
	return nil
}

// CutVideo writes the [start,end) seconds range of input to output using
// the same MP4 encode as ConvertToMP4.
func (t *Transcoder) CutVideo(ctx context.Context, input, output string, start, end float64) error {
	if start >= end {
		return faults.Wrap(faults.ErrInvalidInput, "transcoder", "cut", "start must be before end", nil)
	}
	cmd := exec.CommandContext(ctx, t.cfg.FFmpeg,
		"-ss", formatSeconds(start),
		"-i", input,
		"-t", formatSeconds(end-start),
		"-c:v", "libx264",
		"-c:a", "aac",
		"-movflags", "+faststart",
		"-avoid_negative_ts", "make_zero",
		"-y", output,
	)
	if combined, err := cmd.CombinedOutput(); err != nil {
		return faults.Wrap(faults.ErrTranscodeFailed, "transcoder", "cut",
			fmt.Sprintf("ffmpeg exited with failure: %s", lastLine(combined)), err)
	}
	return nil
}

// parseOutTimeMicros extracts the microsecond position from a progress line.
func parseOutTimeMicros(line string) (int64, bool) {
	const prefix = "out_time_ms="
	line = strings.TrimSpace(line)
	if !strings.HasPrefix(line, prefix) {
		return 0, false
	}
	value := strings.TrimSpace(strings.TrimPrefix(line, prefix))
	micros, err := strconv.ParseInt(value, 10, 64)
	if err != nil || micros < 0 {
		return 0, false
	}
	return micros, true
}

// percentOf converts a microsecond position to an integer percentage of the
// total duration, clamped to 99 so completion stays with the caller.
func percentOf(micros int64, durationSeconds float64) int {
	if durationSeconds <= 0 {
		return 0
	}
	pct := int(float64(micros) / 1e6 / durationSeconds * 100)
	if pct > 99 {
		pct = 99
	}
	if pct < 0 {
		pct = 0
	}
	return pct
}

func formatSeconds(seconds float64) string {
	return strconv.FormatFloat(seconds, 'f', 3, 64)
}

func lastLine(output []byte) string {
	lines := strings.Split(strings.TrimSpace(string(output)), "\n")
	if len(lines) == 0 {
		return ""
	}
	return strings.TrimSpace(lines[len(lines)-1])
}
