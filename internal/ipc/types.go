package ipc

import (
	"cascii/internal/events"
	"cascii/internal/media"
	"cascii/internal/settings"
	"cascii/internal/store"
	"cascii/internal/studio"
)

// StatusRequest fetches daemon status.
type StatusRequest struct{}

// StatusResponse reports socket-level daemon status.
type StatusResponse struct {
	Running       bool   `json:"running"`
	PID           int    `json:"pid"`
	DatabasePath  string `json:"database_path"`
	SettingsPath  string `json:"settings_path"`
	SystemFFmpeg  bool   `json:"system_ffmpeg"`
	SidecarFFmpeg bool   `json:"sidecar_ffmpeg"`
}

// LoadSettingsRequest fetches the persisted settings document.
type LoadSettingsRequest struct{}

// LoadSettingsResponse carries the whole settings document.
type LoadSettingsResponse struct {
	Settings settings.Settings `json:"settings"`
}

// SaveSettingsRequest replaces the persisted settings document.
type SaveSettingsRequest struct {
	Settings settings.Settings `json:"settings"`
}

// SaveSettingsResponse acknowledges the write.
type SaveSettingsResponse struct {
	Saved bool `json:"saved"`
}

// PickDirectoryRequest opens the host directory picker.
type PickDirectoryRequest struct{}

// PickDirectoryResponse carries the chosen directory. Cancelled is set when
// the user dismissed the picker.
type PickDirectoryResponse struct {
	Path      string `json:"path"`
	Cancelled bool   `json:"cancelled"`
}

// PickFilesRequest opens the host multi-file picker.
type PickFilesRequest struct{}

// PickFilesResponse carries the chosen files; empty when dismissed.
type PickFilesResponse struct {
	Paths []string `json:"paths"`
}

// OpenDirectoryRequest reveals a path in the host file manager.
type OpenDirectoryRequest struct {
	Path string `json:"path"`
}

// OpenDirectoryResponse acknowledges the launch.
type OpenDirectoryResponse struct {
	Opened bool `json:"opened"`
}

// PrepareMediaRequest stages a file for front-end playback.
type PrepareMediaRequest struct {
	Path string `json:"path"`
}

// PrepareMediaResponse describes the staged file.
type PrepareMediaResponse struct {
	Media media.Prepared `json:"media"`
}

// CreateProjectRequest creates a project and ingests the given sources.
type CreateProjectRequest struct {
	Name        string   `json:"name"`
	SourcePaths []string `json:"source_paths"`
}

// CreateProjectResponse carries the created project row.
type CreateProjectResponse struct {
	Project store.Project `json:"project"`
}

// AddSourceFilesRequest ingests more sources into an existing project.
type AddSourceFilesRequest struct {
	ProjectID   string   `json:"project_id"`
	SourcePaths []string `json:"source_paths"`
}

// AddSourceFilesResponse acknowledges the batch. Per-file outcomes stream
// through the event tail.
type AddSourceFilesResponse struct {
	Accepted bool `json:"accepted"`
}

// ListProjectsRequest fetches every project.
type ListProjectsRequest struct{}

// ListProjectsResponse carries projects newest-first.
type ListProjectsResponse struct {
	Projects []store.Project `json:"projects"`
}

// GetProjectRequest fetches one project by id.
type GetProjectRequest struct {
	ID string `json:"id"`
}

// GetProjectResponse carries the project row.
type GetProjectResponse struct {
	Project store.Project `json:"project"`
}

// RenameProjectRequest changes a project's display name. The folder on disk
// keeps its original slug.
type RenameProjectRequest struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// RenameProjectResponse acknowledges the rename.
type RenameProjectResponse struct {
	Renamed bool `json:"renamed"`
}

// ProjectArtifactsRequest fetches rows owned by one project.
type ProjectArtifactsRequest struct {
	ProjectID string `json:"project_id"`
}

// ProjectSourcesResponse carries a project's source files.
type ProjectSourcesResponse struct {
	Sources []store.SourceFile `json:"sources"`
}

// ProjectConversionsResponse carries a project's conversions.
type ProjectConversionsResponse struct {
	Conversions []store.Conversion `json:"conversions"`
}

// ProjectCutsResponse carries a project's video cuts.
type ProjectCutsResponse struct {
	Cuts []store.VideoCut `json:"cuts"`
}

// ProjectAudioExtractionsResponse carries a project's audio extractions.
type ProjectAudioExtractionsResponse struct {
	Extractions []store.AudioExtraction `json:"extractions"`
}

// ConversionByFolderPathRequest resolves a conversion row from its folder.
type ConversionByFolderPathRequest struct {
	FolderPath string `json:"folder_path"`
}

// ConversionByFolderPathResponse carries the matching row; Found is false
// when no conversion is recorded for the folder.
type ConversionByFolderPathResponse struct {
	Found      bool             `json:"found"`
	Conversion store.Conversion `json:"conversion"`
}

// FrameFilesRequest lists the frames of a conversion folder.
type FrameFilesRequest struct {
	FolderPath string `json:"folder_path"`
}

// FrameFilesResponse carries frames sorted by index.
type FrameFilesResponse struct {
	Frames []studio.FrameFile `json:"frames"`
}

// ReadFrameFileRequest fetches one frame's text.
type ReadFrameFileRequest struct {
	Path string `json:"path"`
}

// ReadFrameFileResponse carries the frame text.
type ReadFrameFileResponse struct {
	Content string `json:"content"`
}

// ConvertToASCIIRequest starts a fire-and-forget conversion.
type ConvertToASCIIRequest struct {
	Request studio.ConversionRequest `json:"request"`
}

// ConvertToASCIIResponse acknowledges that the conversion started. Progress
// and completion stream through the event tail.
type ConvertToASCIIResponse struct {
	Message string `json:"message"`
}

// CutVideoRequest trims a source video into a new cut file.
type CutVideoRequest struct {
	FilePath     string  `json:"file_path"`
	ProjectID    string  `json:"project_id"`
	SourceFileID string  `json:"source_file_id"`
	Start        float64 `json:"start"`
	End          float64 `json:"end"`
}

// CutVideoResponse carries the recorded cut row.
type CutVideoResponse struct {
	Cut store.VideoCut `json:"cut"`
}

// CutFramesRequest slices an inclusive frame range into a new conversion.
type CutFramesRequest struct {
	FolderPath string `json:"folder_path"`
	StartIndex int    `json:"start_index"`
	EndIndex   int    `json:"end_index"`
}

// CutFramesResponse reports the slice outcome.
type CutFramesResponse struct {
	Message string `json:"message"`
}

// DeleteProjectRequest removes a project, its rows, and its directory.
type DeleteProjectRequest struct {
	ID string `json:"id"`
}

// DeleteSourceRequest removes a source row and its file.
type DeleteSourceRequest struct {
	ID string `json:"id"`
}

// DeleteFrameDirectoryRequest removes a conversion folder and its row.
type DeleteFrameDirectoryRequest struct {
	FolderPath string `json:"folder_path"`
}

// DeleteCutRequest removes a cut row and its file.
type DeleteCutRequest struct {
	ID string `json:"id"`
}

// DeleteAudioExtractionRequest removes an extraction row and its folder.
type DeleteAudioExtractionRequest struct {
	ID string `json:"id"`
}

// DeleteResponse acknowledges a removal.
type DeleteResponse struct {
	Deleted bool `json:"deleted"`
}

// UpdateCustomNameRequest sets a display name on a source, conversion, or
// cut row. An empty name clears it.
type UpdateCustomNameRequest struct {
	ID         string `json:"id"`
	CustomName string `json:"custom_name"`
}

// UpdateCustomNameResponse acknowledges the update.
type UpdateCustomNameResponse struct {
	Updated bool `json:"updated"`
}

// UpdateFrameSpeedRequest overrides a conversion's playback rate.
type UpdateFrameSpeedRequest struct {
	ID         string `json:"id"`
	FrameSpeed int    `json:"frame_speed"`
}

// UpdateFrameSpeedResponse acknowledges the update.
type UpdateFrameSpeedResponse struct {
	Updated bool `json:"updated"`
}

// CheckFFmpegRequest probes transcoder availability.
type CheckFFmpegRequest struct{}

// CheckFFmpegResponse reports whether the binary pair answered.
type CheckFFmpegResponse struct {
	Available bool `json:"available"`
}

// EventTailRequest fetches events after a sequence cursor. WaitMillis keeps
// the call parked until events arrive or the wait elapses.
type EventTailRequest struct {
	AfterSeq   uint64 `json:"after_seq"`
	WaitMillis int    `json:"wait_millis"`
}

// EventTailResponse returns pending events and the next cursor.
type EventTailResponse struct {
	Events  []events.Event `json:"events"`
	NextSeq uint64         `json:"next_seq"`
}
