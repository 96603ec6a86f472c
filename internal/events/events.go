// Package events carries progress and completion messages from the
// pipelines to the front-end. Publishers never block; subscribers poll a
// sequence-numbered ring buffer, optionally waiting for new events.
package events

import (
	"encoding/json"
	"time"
)

// Channel names, stable across the command surface.
const (
	ChannelFileProgress       = "file-progress"
	ChannelConversionProgress = "conversion-progress"
	ChannelConversionComplete = "conversion-complete"
	ChannelCutProgress        = "cut-progress"
)

// File-progress statuses.
const (
	StatusProcessing = "processing"
	StatusConverting = "converting"
	StatusCompleted  = "completed"
	StatusError      = "error"
)

// Event is one published message. Payload holds the channel-specific body.
type Event struct {
	Seq     uint64          `json:"seq"`
	Channel string          `json:"channel"`
	Time    time.Time       `json:"time"`
	Payload json.RawMessage `json:"payload"`
}

// FileProgress reports per-file ingestion and cut activity. Percentage is
// omitted when the phase has no meaningful fraction.
type FileProgress struct {
	FileName   string `json:"file_name"`
	Status     string `json:"status"`
	Message    string `json:"message"`
	Percentage *int   `json:"percentage,omitempty"`
}

// ConversionProgress reports throttled ASCII conversion percentages.
type ConversionProgress struct {
	SourceID   string `json:"source_id"`
	Percentage int    `json:"percentage"`
}

// ConversionComplete is the terminal message of one conversion request.
type ConversionComplete struct {
	SourceID string `json:"source_id"`
	Success  bool   `json:"success"`
	Message  string `json:"message"`
}

// Sink accepts events from any goroutine.
type Sink interface {
	Publish(channel string, payload any)
}

// Percent returns a pointer suitable for FileProgress.Percentage.
func Percent(value int) *int {
	return &value
}
