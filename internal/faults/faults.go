// Package faults defines the error kinds shared by the workspace engine and
// its command surface. Kinds are sentinel errors matched with errors.Is;
// user-facing text is carried in the wrapped message.
package faults

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound marks a missing path or a missing row.
	ErrNotFound = errors.New("not found")
	// ErrInvalidInput marks a precondition failure on caller-supplied data.
	ErrInvalidInput = errors.New("invalid input")
	// ErrIO marks a filesystem read/write/rename/copy/link failure.
	ErrIO = errors.New("io error")
	// ErrSchema marks a metadata store open/prepare/query failure.
	ErrSchema = errors.New("schema error")
	// ErrTranscodeFailed marks a non-zero ffmpeg/ffprobe exit or spawn failure.
	ErrTranscodeFailed = errors.New("transcode failed")
	// ErrDialogCancelled marks a user-cancelled dialog where a value was required.
	ErrDialogCancelled = errors.New("dialog cancelled")
	// ErrTaskFailed marks a background worker that finished with an unexpected failure.
	ErrTaskFailed = errors.New("task failed")
)

// Wrap tags an error with a kind and component/operation context. The kind
// should be one of the exported sentinels above.
func Wrap(kind error, component, operation, message string, err error) error {
	detail := buildDetail(component, operation, message)
	if kind == nil {
		kind = ErrTaskFailed
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", kind, detail, err)
	}
	return fmt.Errorf("%w: %s", kind, detail)
}

func buildDetail(component, operation, message string) string {
	parts := make([]string, 0, 3)
	if component = strings.TrimSpace(component); component != "" {
		parts = append(parts, component)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "engine failure"
	}
	return strings.Join(parts, ": ")
}

// Kind returns the sentinel matched by err, or nil when the error carries no
// recognized kind.
func Kind(err error) error {
	for _, kind := range []error{
		ErrNotFound,
		ErrInvalidInput,
		ErrIO,
		ErrSchema,
		ErrTranscodeFailed,
		ErrDialogCancelled,
		ErrTaskFailed,
	} {
		if errors.Is(err, kind) {
			return kind
		}
	}
	return nil
}
