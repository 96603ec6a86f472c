package transcoder

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"cascii/internal/faults"
)

// Source selects where the binary pair comes from.
type Source string

const (
	SourceSystem  Source = "system"
	SourceSidecar Source = "sidecar"
)

// Config captures the resolved executable paths.
type Config struct {
	FFmpeg  string
	FFprobe string
	Source  Source
}

func binaryName(base string) string {
	if runtime.GOOS == "windows" {
		return base + ".exe"
	}
	return base
}

// Resolve locates the ffmpeg/ffprobe pair. The system source probes PATH
// and falls back to the sidecar search on any failure; the sidecar source
// searches sidecarDir, a binaries/ folder next to the executable, and three
// ancestor directories.
func Resolve(ctx context.Context, source Source, sidecarDir string) (Config, error) {
	if source == SourceSystem {
		if cfg, ok := resolveSystem(ctx); ok {
			return cfg, nil
		}
	}
	if cfg, ok := resolveSidecar(ctx, sidecarDir); ok {
		return cfg, nil
	}
	return Config{}, faults.Wrap(faults.ErrTranscodeFailed, "transcoder", "resolve", "ffmpeg/ffprobe pair not found", nil)
}

// CheckSystem reports whether both binaries are invokable on PATH.
func CheckSystem(ctx context.Context) bool {
	_, ok := resolveSystem(ctx)
	return ok
}

// CheckSidecar reports whether a bundled binary pair can be located.
func CheckSidecar(ctx context.Context, sidecarDir string) bool {
	_, ok := resolveSidecar(ctx, sidecarDir)
	return ok
}

func resolveSystem(ctx context.Context) (Config, bool) {
	ffmpeg, err := exec.LookPath(binaryName("ffmpeg"))
	if err != nil {
		return Config{}, false
	}
	ffprobe, err := exec.LookPath(binaryName("ffprobe"))
	if err != nil {
		return Config{}, false
	}
	if !invokable(ctx, ffmpeg) || !invokable(ctx, ffprobe) {
		return Config{}, false
	}
	return Config{FFmpeg: ffmpeg, FFprobe: ffprobe, Source: SourceSystem}, true
}

func resolveSidecar(ctx context.Context, sidecarDir string) (Config, bool) {
	for _, dir := range sidecarSearchDirs(sidecarDir) {
		ffmpeg := filepath.Join(dir, binaryName("ffmpeg"))
		ffprobe := filepath.Join(dir, binaryName("ffprobe"))
		if !isExecutableFile(ffmpeg) || !isExecutableFile(ffprobe) {
			continue
		}
		if !invokable(ctx, ffmpeg) || !invokable(ctx, ffprobe) {
			continue
		}
		return Config{FFmpeg: ffmpeg, FFprobe: ffprobe, Source: SourceSidecar}, true
	}
	return Config{}, false
}

func sidecarSearchDirs(sidecarDir string) []string {
	var dirs []string
	if strings.TrimSpace(sidecarDir) != "" {
		dirs = append(dirs, sidecarDir)
	}
	exe, err := os.Executable()
	if err != nil {
		return dirs
	}
	dir := filepath.Dir(exe)
	dirs = append(dirs, filepath.Join(dir, "binaries"))
	for i := 0; i < 3; i++ {
		dir = filepath.Dir(dir)
		dirs = append(dirs, dir)
	}
	return dirs
}

func isExecutableFile(path string) bool {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return false
	}
	if runtime.GOOS == "windows" {
		return true
	}
	return info.Mode()&0o111 != 0
}

func invokable(ctx context.Context, binary string) bool {
	cmd := exec.CommandContext(ctx, binary, "-version")
	cmd.Stdout = nil
	cmd.Stderr = nil
	return cmd.Run() == nil
}
