package ipc

import (
	"net"
	"net/rpc"
	"net/rpc/jsonrpc"
	"time"

	"cascii/internal/settings"
	"cascii/internal/studio"
)

// Client provides RPC access to the daemon.
type Client struct {
	conn   net.Conn
	client *rpc.Client
}

// Dial connects to the IPC server at the given socket path.
func Dial(path string) (*Client, error) {
	conn, err := net.DialTimeout("unix", path, 2*time.Second)
	if err != nil {
		return nil, err
	}
	rpcClient := rpc.NewClientWithCodec(jsonrpc.NewClientCodec(conn))
	return &Client{conn: conn, client: rpcClient}, nil
}

// Close closes the underlying connection.
func (c *Client) Close() error {
	if c.client != nil {
		_ = c.client.Close()
	}
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}

// Status retrieves the daemon status.
func (c *Client) Status() (*StatusResponse, error) {
	var resp StatusResponse
	if err := c.client.Call("Cascii.Status", StatusRequest{}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// LoadSettings fetches the persisted settings document.
func (c *Client) LoadSettings() (*LoadSettingsResponse, error) {
	var resp LoadSettingsResponse
	if err := c.client.Call("Cascii.LoadSettings", LoadSettingsRequest{}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// SaveSettings replaces the persisted settings document.
func (c *Client) SaveSettings(doc settings.Settings) (*SaveSettingsResponse, error) {
	var resp SaveSettingsResponse
	if err := c.client.Call("Cascii.SaveSettings", SaveSettingsRequest{Settings: doc}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// PickDirectory opens the host directory picker.
func (c *Client) PickDirectory() (*PickDirectoryResponse, error) {
	var resp PickDirectoryResponse
	if err := c.client.Call("Cascii.PickDirectory", PickDirectoryRequest{}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// PickFiles opens the host multi-file picker.
func (c *Client) PickFiles() (*PickFilesResponse, error) {
	var resp PickFilesResponse
	if err := c.client.Call("Cascii.PickFiles", PickFilesRequest{}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// OpenDirectory reveals a path in the host file manager.
func (c *Client) OpenDirectory(path string) (*OpenDirectoryResponse, error) {
	var resp OpenDirectoryResponse
	if err := c.client.Call("Cascii.OpenDirectory", OpenDirectoryRequest{Path: path}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// PrepareMedia stages a file for front-end playback.
func (c *Client) PrepareMedia(path string) (*PrepareMediaResponse, error) {
	var resp PrepareMediaResponse
	if err := c.client.Call("Cascii.PrepareMedia", PrepareMediaRequest{Path: path}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// CreateProject creates a project and ingests the given sources.
func (c *Client) CreateProject(name string, sourcePaths []string) (*CreateProjectResponse, error) {
	var resp CreateProjectResponse
	req := CreateProjectRequest{Name: name, SourcePaths: sourcePaths}
	if err := c.client.Call("Cascii.CreateProject", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// AddSourceFiles ingests more sources into an existing project.
func (c *Client) AddSourceFiles(projectID string, sourcePaths []string) (*AddSourceFilesResponse, error) {
	var resp AddSourceFilesResponse
	req := AddSourceFilesRequest{ProjectID: projectID, SourcePaths: sourcePaths}
	if err := c.client.Call("Cascii.AddSourceFiles", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ListProjects fetches every project newest-first.
func (c *Client) ListProjects() (*ListProjectsResponse, error) {
	var resp ListProjectsResponse
	if err := c.client.Call("Cascii.ListProjects", ListProjectsRequest{}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetProject fetches one project by id.
func (c *Client) GetProject(id string) (*GetProjectResponse, error) {
	var resp GetProjectResponse
	if err := c.client.Call("Cascii.GetProject", GetProjectRequest{ID: id}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// RenameProject changes a project's display name.
func (c *Client) RenameProject(id, name string) (*RenameProjectResponse, error) {
	var resp RenameProjectResponse
	if err := c.client.Call("Cascii.RenameProject", RenameProjectRequest{ID: id, Name: name}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// OpenProjectDirectory reveals a project's folder in the host file manager.
func (c *Client) OpenProjectDirectory(id string) (*OpenDirectoryResponse, error) {
	var resp OpenDirectoryResponse
	if err := c.client.Call("Cascii.OpenProjectDirectory", GetProjectRequest{ID: id}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ProjectSources fetches a project's source files.
func (c *Client) ProjectSources(projectID string) (*ProjectSourcesResponse, error) {
	var resp ProjectSourcesResponse
	if err := c.client.Call("Cascii.ProjectSources", ProjectArtifactsRequest{ProjectID: projectID}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ProjectConversions fetches a project's conversions.
func (c *Client) ProjectConversions(projectID string) (*ProjectConversionsResponse, error) {
	var resp ProjectConversionsResponse
	if err := c.client.Call("Cascii.ProjectConversions", ProjectArtifactsRequest{ProjectID: projectID}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ProjectCuts fetches a project's video cuts.
func (c *Client) ProjectCuts(projectID string) (*ProjectCutsResponse, error) {
	var resp ProjectCutsResponse
	if err := c.client.Call("Cascii.ProjectCuts", ProjectArtifactsRequest{ProjectID: projectID}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ProjectAudioExtractions fetches a project's audio extractions.
func (c *Client) ProjectAudioExtractions(projectID string) (*ProjectAudioExtractionsResponse, error) {
	var resp ProjectAudioExtractionsResponse
	if err := c.client.Call("Cascii.ProjectAudioExtractions", ProjectArtifactsRequest{ProjectID: projectID}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ConversionByFolderPath resolves a conversion row from its folder.
func (c *Client) ConversionByFolderPath(folderPath string) (*ConversionByFolderPathResponse, error) {
	var resp ConversionByFolderPathResponse
	if err := c.client.Call("Cascii.ConversionByFolderPath", ConversionByFolderPathRequest{FolderPath: folderPath}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetFrameFiles lists the frames of a conversion folder.
func (c *Client) GetFrameFiles(folderPath string) (*FrameFilesResponse, error) {
	var resp FrameFilesResponse
	if err := c.client.Call("Cascii.GetFrameFiles", FrameFilesRequest{FolderPath: folderPath}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ReadFrameFile fetches one frame's text.
func (c *Client) ReadFrameFile(path string) (*ReadFrameFileResponse, error) {
	var resp ReadFrameFileResponse
	if err := c.client.Call("Cascii.ReadFrameFile", ReadFrameFileRequest{Path: path}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ConvertToASCII starts a fire-and-forget conversion.
func (c *Client) ConvertToASCII(req studio.ConversionRequest) (*ConvertToASCIIResponse, error) {
	var resp ConvertToASCIIResponse
	if err := c.client.Call("Cascii.ConvertToASCII", ConvertToASCIIRequest{Request: req}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// CutVideo trims a source video into a new cut file.
func (c *Client) CutVideo(req CutVideoRequest) (*CutVideoResponse, error) {
	var resp CutVideoResponse
	if err := c.client.Call("Cascii.CutVideo", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// CutFrames slices an inclusive frame range into a new conversion.
func (c *Client) CutFrames(folderPath string, startIndex, endIndex int) (*CutFramesResponse, error) {
	var resp CutFramesResponse
	req := CutFramesRequest{FolderPath: folderPath, StartIndex: startIndex, EndIndex: endIndex}
	if err := c.client.Call("Cascii.CutFrames", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// DeleteProject removes a project, its rows, and its directory.
func (c *Client) DeleteProject(id string) (*DeleteResponse, error) {
	var resp DeleteResponse
	if err := c.client.Call("Cascii.DeleteProject", DeleteProjectRequest{ID: id}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// DeleteSource removes a source row and its file.
func (c *Client) DeleteSource(id string) (*DeleteResponse, error) {
	var resp DeleteResponse
	if err := c.client.Call("Cascii.DeleteSource", DeleteSourceRequest{ID: id}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// DeleteFrameDirectory removes a conversion folder and its row.
func (c *Client) DeleteFrameDirectory(folderPath string) (*DeleteResponse, error) {
	var resp DeleteResponse
	if err := c.client.Call("Cascii.DeleteFrameDirectory", DeleteFrameDirectoryRequest{FolderPath: folderPath}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// DeleteCut removes a cut row and its file.
func (c *Client) DeleteCut(id string) (*DeleteResponse, error) {
	var resp DeleteResponse
	if err := c.client.Call("Cascii.DeleteCut", DeleteCutRequest{ID: id}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// DeleteAudioExtraction removes an extraction row and its folder.
func (c *Client) DeleteAudioExtraction(id string) (*DeleteResponse, error) {
	var resp DeleteResponse
	if err := c.client.Call("Cascii.DeleteAudioExtraction", DeleteAudioExtractionRequest{ID: id}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// UpdateSourceCustomName sets a source's display name.
func (c *Client) UpdateSourceCustomName(id, customName string) (*UpdateCustomNameResponse, error) {
	var resp UpdateCustomNameResponse
	req := UpdateCustomNameRequest{ID: id, CustomName: customName}
	if err := c.client.Call("Cascii.UpdateSourceCustomName", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// UpdateConversionCustomName sets a conversion's display name.
func (c *Client) UpdateConversionCustomName(id, customName string) (*UpdateCustomNameResponse, error) {
	var resp UpdateCustomNameResponse
	req := UpdateCustomNameRequest{ID: id, CustomName: customName}
	if err := c.client.Call("Cascii.UpdateConversionCustomName", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// UpdateCutCustomName sets a cut's display name.
func (c *Client) UpdateCutCustomName(id, customName string) (*UpdateCustomNameResponse, error) {
	var resp UpdateCustomNameResponse
	req := UpdateCustomNameRequest{ID: id, CustomName: customName}
	if err := c.client.Call("Cascii.UpdateCutCustomName", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// UpdateConversionFrameSpeed overrides a conversion's playback rate.
func (c *Client) UpdateConversionFrameSpeed(id string, frameSpeed int) (*UpdateFrameSpeedResponse, error) {
	var resp UpdateFrameSpeedResponse
	req := UpdateFrameSpeedRequest{ID: id, FrameSpeed: frameSpeed}
	if err := c.client.Call("Cascii.UpdateConversionFrameSpeed", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// CheckSystemFFmpeg probes the system transcoder binaries.
func (c *Client) CheckSystemFFmpeg() (*CheckFFmpegResponse, error) {
	var resp CheckFFmpegResponse
	if err := c.client.Call("Cascii.CheckSystemFFmpeg", CheckFFmpegRequest{}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// CheckSidecarFFmpeg probes the bundled transcoder binaries.
func (c *Client) CheckSidecarFFmpeg() (*CheckFFmpegResponse, error) {
	var resp CheckFFmpegResponse
	if err := c.client.Call("Cascii.CheckSidecarFFmpeg", CheckFFmpegRequest{}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// EventTail fetches events after a sequence cursor, parking up to the
// requested wait when none are pending.
func (c *Client) EventTail(afterSeq uint64, waitMillis int) (*EventTailResponse, error) {
	var resp EventTailResponse
	req := EventTailRequest{AfterSeq: afterSeq, WaitMillis: waitMillis}
	if err := c.client.Call("Cascii.EventTail", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
