package store

import "time"

// ProjectType distinguishes single-image projects from animated ones.
type ProjectType string

const (
	ProjectImage     ProjectType = "image"
	ProjectAnimation ProjectType = "animation"
)

// ParseProjectType maps a stored string back to a ProjectType, defaulting
// to image for unrecognized values.
func ParseProjectType(value string) ProjectType {
	if value == string(ProjectAnimation) {
		return ProjectAnimation
	}
	return ProjectImage
}

// SourceType classifies ingested media.
type SourceType string

const (
	SourceImage SourceType = "image"
	SourceVideo SourceType = "video"
)

// ParseSourceType maps a stored string back to a SourceType, defaulting to
// image for unrecognized values.
func ParseSourceType(value string) SourceType {
	if value == string(SourceVideo) {
		return SourceVideo
	}
	return SourceImage
}

// Project is a workspace directory plus its metadata row.
type Project struct {
	ID           string      `json:"id"`
	Name         string      `json:"project_name"`
	Type         ProjectType `json:"project_type"`
	Path         string      `json:"project_path"`
	Size         int64       `json:"size"`
	Frames       int         `json:"frames"`
	CreationDate time.Time   `json:"creation_date"`
	LastModified time.Time   `json:"last_modified"`
}

// SourceFile is a user-provided image or video normalized into a project's
// source directory.
type SourceFile struct {
	ID          string     `json:"id"`
	ContentType SourceType `json:"content_type"`
	ProjectID   string     `json:"project_id"`
	DateAdded   time.Time  `json:"date_added"`
	Size        int64      `json:"size"`
	FilePath    string     `json:"file_path"`
	CustomName  string     `json:"custom_name,omitempty"`
}

// ConversionSettings is the parameter record embedded in a conversion row.
type ConversionSettings struct {
	Luminance  int     `json:"luminance"`
	FontRatio  float64 `json:"font_ratio"`
	Columns    int     `json:"columns"`
	FPS        int     `json:"fps"`
	FrameSpeed int     `json:"frame_speed"`
	Color      bool    `json:"color"`
}

// Conversion is a folder of ASCII text frames derived from one source.
type Conversion struct {
	ID           string             `json:"id"`
	FolderName   string             `json:"folder_name"`
	FolderPath   string             `json:"folder_path"`
	FrameCount   int                `json:"frame_count"`
	SourceFileID string             `json:"source_file_id"`
	ProjectID    string             `json:"project_id"`
	Settings     ConversionSettings `json:"settings"`
	CreationDate time.Time          `json:"creation_date"`
	TotalSize    int64              `json:"total_size"`
	CustomName   string             `json:"custom_name,omitempty"`
}

// VideoCut is an MP4 trimmed from a source video.
type VideoCut struct {
	ID           string    `json:"id"`
	ProjectID    string    `json:"project_id"`
	SourceFileID string    `json:"source_file_id"`
	FilePath     string    `json:"file_path"`
	Size         int64     `json:"size"`
	Start        float64   `json:"start"`
	End          float64   `json:"end"`
	Duration     float64   `json:"duration"`
	CreationDate time.Time `json:"creation_date"`
	CustomName   string    `json:"custom_name,omitempty"`
}

// AudioExtraction is an MP3 track derived from a video source.
type AudioExtraction struct {
	ID                  string    `json:"id"`
	SourceFileID        string    `json:"source_file_id"`
	ProjectID           string    `json:"project_id"`
	FolderName          string    `json:"folder_name"`
	FolderPath          string    `json:"folder_path"`
	CreationDate        time.Time `json:"creation_date"`
	Size                int64     `json:"size"`
	AudioTrackBeginning float64   `json:"audio_track_beginning"`
	AudioTrackEnd       float64   `json:"audio_track_end"`
	CustomName          string    `json:"custom_name,omitempty"`
}
