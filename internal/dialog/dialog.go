// Package dialog obtains user-selected paths through the desktop's native
// picker and opens directories in the system file manager. The daemon only
// needs paths back; rendering is delegated entirely to host tooling.
package dialog

import (
	"context"
	"errors"
	"log/slog"
	"os/exec"
	"runtime"
	"strings"

	"cascii/internal/faults"
	"cascii/internal/logging"
)

// Service is the picker abstraction the command surface consumes.
type Service interface {
	// PickDirectory returns a chosen directory, or a Dialog-Cancelled
	// error when the user dismisses the picker.
	PickDirectory(ctx context.Context) (string, error)
	// PickFiles returns chosen files; a dismissed picker yields an empty
	// slice and no error.
	PickFiles(ctx context.Context) ([]string, error)
}

// Native shells out to the host picker: zenity on Linux, osascript on
// macOS.
type Native struct {
	logger *slog.Logger
}

// NewNative builds the host-backed dialog service.
func NewNative(logger *slog.Logger) *Native {
	return &Native{logger: logging.NewComponentLogger(logger, "dialog")}
}

func (n *Native) PickDirectory(ctx context.Context) (string, error) {
	output, cancelled, err := n.run(ctx, directoryArgs())
	if err != nil {
		return "", err
	}
	if cancelled {
		return "", faults.Wrap(faults.ErrDialogCancelled, "dialog", "pick_directory", "directory selection cancelled", nil)
	}
	return strings.TrimSpace(output), nil
}

func (n *Native) PickFiles(ctx context.Context) ([]string, error) {
	output, cancelled, err := n.run(ctx, filesArgs())
	if err != nil {
		return nil, err
	}
	if cancelled {
		return nil, nil
	}
	var paths []string
	for _, line := range strings.Split(output, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			paths = append(paths, trimmed)
		}
	}
	return paths, nil
}

func (n *Native) run(ctx context.Context, argv []string) (string, bool, error) {
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	output, err := cmd.Output()
	if err == nil {
		return string(output), false, nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && exitErr.ExitCode() == 1 {
		// Picker convention for a dismissed dialog.
		return "", true, nil
	}
	n.logger.Warn("picker invocation failed",
		logging.String("command", argv[0]),
		logging.Error(err),
	)
	return "", false, faults.Wrap(faults.ErrIO, "dialog", "pick", "spawn host picker", err)
}

func directoryArgs() []string {
	if runtime.GOOS == "darwin" {
		return []string{"osascript", "-e", `POSIX path of (choose folder)`}
	}
	return []string{"zenity", "--file-selection", "--directory"}
}

func filesArgs() []string {
	if runtime.GOOS == "darwin" {
		return []string{"osascript", "-e", `set out to ""
repeat with f in (choose file with multiple selections allowed)
	set out to out & POSIX path of f & "\n"
end repeat
return out`}
	}
	return []string{"zenity", "--file-selection", "--multiple", "--separator=\n"}
}

// OpenDirectory reveals path in the desktop file manager.
func OpenDirectory(ctx context.Context, path string) error {
	var argv []string
	switch runtime.GOOS {
	case "darwin":
		argv = []string{"open", path}
	case "windows":
		argv = []string{"explorer", path}
	default:
		argv = []string{"xdg-open", path}
	}
	if err := exec.CommandContext(ctx, argv[0], argv[1:]...).Start(); err != nil {
		return faults.Wrap(faults.ErrIO, "dialog", "open_directory", "spawn file manager", err)
	}
	return nil
}
