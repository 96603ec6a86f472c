package ipc

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/rpc"
	"net/rpc/jsonrpc"
	"os"
	"sync"
	"time"

	"log/slog"

	"cascii/internal/dialog"
	"cascii/internal/events"
	"cascii/internal/faults"
	"cascii/internal/logging"
	"cascii/internal/store"
	"cascii/internal/studio"
)

const defaultMaxEventWait = 25 * time.Second

// ServerOptions carries IPC server construction dependencies.
type ServerOptions struct {
	SocketPath   string
	Engine       *studio.Engine
	Bus          *events.Bus
	Dialogs      dialog.Service
	Logger       *slog.Logger
	DatabasePath string
	SettingsPath string
	// MaxEventWait caps how long EventTail may park a poll.
	MaxEventWait time.Duration
}

// Server exposes the engine via JSON-RPC over a Unix domain socket.
type Server struct {
	path      string
	logger    *slog.Logger
	listener  net.Listener
	rpcServer *rpc.Server

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewServer configures the IPC server at the given socket path.
func NewServer(ctx context.Context, opts ServerOptions) (*Server, error) {
	if opts.Engine == nil {
		return nil, errors.New("ipc server requires engine")
	}
	if opts.Bus == nil {
		return nil, errors.New("ipc server requires event bus")
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.NewNop()
	}
	maxWait := opts.MaxEventWait
	if maxWait <= 0 {
		maxWait = defaultMaxEventWait
	}

	if err := os.RemoveAll(opts.SocketPath); err != nil {
		return nil, fmt.Errorf("remove existing socket: %w", err)
	}

	listener, err := net.Listen("unix", opts.SocketPath)
	if err != nil {
		return nil, fmt.Errorf("listen on socket: %w", err)
	}

	rpcServer := rpc.NewServer()
	srv := &service{
		engine:       opts.Engine,
		bus:          opts.Bus,
		dialogs:      opts.Dialogs,
		logger:       logger,
		ctx:          ctx,
		databasePath: opts.DatabasePath,
		settingsPath: opts.SettingsPath,
		maxEventWait: maxWait,
	}
	if err := rpcServer.RegisterName("Cascii", srv); err != nil {
		listener.Close()
		return nil, fmt.Errorf("register rpc service: %w", err)
	}

	serverCtx, cancel := context.WithCancel(ctx)
	return &Server{
		path:      opts.SocketPath,
		logger:    logger,
		listener:  listener,
		rpcServer: rpcServer,
		ctx:       serverCtx,
		cancel:    cancel,
	}, nil
}

// Serve starts accepting RPC connections until the context is canceled.
func (s *Server) Serve() {
	s.logger.Debug("IPC server listening", logging.String("socket", s.path))
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		for {
			conn, err := s.listener.Accept()
			if err != nil {
				select {
				case <-s.ctx.Done():
					return
				default:
				}
				s.logger.Warn("accept failed", logging.Error(err))
				continue
			}
			s.wg.Add(1)
			go func(c net.Conn) {
				defer s.wg.Done()
				s.rpcServer.ServeCodec(jsonrpc.NewServerCodec(c))
			}(conn)
		}
	}()
}

// Close stops the server and removes the socket file.
func (s *Server) Close() {
	s.cancel()
	if s.listener != nil {
		_ = s.listener.Close()
	}
	s.wg.Wait()
	if err := os.RemoveAll(s.path); err != nil {
		s.logger.Warn("failed to remove socket",
			logging.String("socket", s.path),
			logging.Error(err),
		)
	}
}

type service struct {
	engine       *studio.Engine
	bus          *events.Bus
	dialogs      dialog.Service
	logger       *slog.Logger
	ctx          context.Context
	databasePath string
	settingsPath string
	maxEventWait time.Duration
}

func (s *service) log() *slog.Logger {
	return s.logger.With(logging.String(logging.FieldComponent, "ipc"))
}

func (s *service) Status(_ StatusRequest, resp *StatusResponse) error {
	resp.Running = true
	resp.PID = os.Getpid()
	resp.DatabasePath = s.databasePath
	resp.SettingsPath = s.settingsPath
	resp.SystemFFmpeg = s.engine.CheckSystemFFmpeg(s.ctx)
	resp.SidecarFFmpeg = s.engine.CheckSidecarFFmpeg(s.ctx)
	return nil
}

func (s *service) LoadSettings(_ LoadSettingsRequest, resp *LoadSettingsResponse) error {
	loaded, err := s.engine.Settings().Load()
	if err != nil {
		return err
	}
	resp.Settings = loaded
	return nil
}

func (s *service) SaveSettings(req SaveSettingsRequest, resp *SaveSettingsResponse) error {
	if err := s.engine.Settings().Save(req.Settings); err != nil {
		return err
	}
	resp.Saved = true
	return nil
}

func (s *service) PickDirectory(_ PickDirectoryRequest, resp *PickDirectoryResponse) error {
	if s.dialogs == nil {
		return errors.New("no dialog service available")
	}
	path, err := s.dialogs.PickDirectory(s.ctx)
	if err != nil {
		if faults.Kind(err) == faults.ErrDialogCancelled {
			resp.Cancelled = true
			return nil
		}
		return err
	}
	resp.Path = path
	return nil
}

func (s *service) PickFiles(_ PickFilesRequest, resp *PickFilesResponse) error {
	if s.dialogs == nil {
		return errors.New("no dialog service available")
	}
	paths, err := s.dialogs.PickFiles(s.ctx)
	if err != nil {
		return err
	}
	resp.Paths = paths
	return nil
}

func (s *service) OpenDirectory(req OpenDirectoryRequest, resp *OpenDirectoryResponse) error {
	if err := s.engine.OpenDirectory(s.ctx, req.Path); err != nil {
		return err
	}
	resp.Opened = true
	return nil
}

func (s *service) PrepareMedia(req PrepareMediaRequest, resp *PrepareMediaResponse) error {
	prepared, err := s.engine.PrepareMedia(req.Path)
	if err != nil {
		return err
	}
	resp.Media = prepared
	return nil
}

func (s *service) CreateProject(req CreateProjectRequest, resp *CreateProjectResponse) error {
	s.log().Debug("create project requested",
		logging.String("name", req.Name),
		logging.Int("source_count", len(req.SourcePaths)),
	)
	project, err := s.engine.CreateProject(s.ctx, req.Name, req.SourcePaths)
	if err != nil {
		return err
	}
	resp.Project = *project
	return nil
}

func (s *service) AddSourceFiles(req AddSourceFilesRequest, resp *AddSourceFilesResponse) error {
	if err := s.engine.AddSources(s.ctx, req.ProjectID, req.SourcePaths); err != nil {
		return err
	}
	resp.Accepted = true
	return nil
}

func (s *service) ListProjects(_ ListProjectsRequest, resp *ListProjectsResponse) error {
	projects, err := s.engine.AllProjects(s.ctx)
	if err != nil {
		return err
	}
	resp.Projects = make([]store.Project, 0, len(projects))
	for _, project := range projects {
		resp.Projects = append(resp.Projects, *project)
	}
	return nil
}

func (s *service) GetProject(req GetProjectRequest, resp *GetProjectResponse) error {
	project, err := s.engine.GetProject(s.ctx, req.ID)
	if err != nil {
		return err
	}
	resp.Project = *project
	return nil
}

func (s *service) RenameProject(req RenameProjectRequest, resp *RenameProjectResponse) error {
	if err := s.engine.RenameProject(s.ctx, req.ID, req.Name); err != nil {
		return err
	}
	resp.Renamed = true
	return nil
}

func (s *service) OpenProjectDirectory(req GetProjectRequest, resp *OpenDirectoryResponse) error {
	if err := s.engine.OpenProjectDirectory(s.ctx, req.ID); err != nil {
		return err
	}
	resp.Opened = true
	return nil
}

func (s *service) ProjectSources(req ProjectArtifactsRequest, resp *ProjectSourcesResponse) error {
	sources, err := s.engine.ProjectSources(s.ctx, req.ProjectID)
	if err != nil {
		return err
	}
	resp.Sources = make([]store.SourceFile, 0, len(sources))
	for _, source := range sources {
		resp.Sources = append(resp.Sources, *source)
	}
	return nil
}

func (s *service) ProjectConversions(req ProjectArtifactsRequest, resp *ProjectConversionsResponse) error {
	conversions, err := s.engine.ProjectConversions(s.ctx, req.ProjectID)
	if err != nil {
		return err
	}
	resp.Conversions = make([]store.Conversion, 0, len(conversions))
	for _, conversion := range conversions {
		resp.Conversions = append(resp.Conversions, *conversion)
	}
	return nil
}

func (s *service) ProjectCuts(req ProjectArtifactsRequest, resp *ProjectCutsResponse) error {
	cuts, err := s.engine.ProjectCuts(s.ctx, req.ProjectID)
	if err != nil {
		return err
	}
	resp.Cuts = make([]store.VideoCut, 0, len(cuts))
	for _, cut := range cuts {
		resp.Cuts = append(resp.Cuts, *cut)
	}
	return nil
}

func (s *service) ProjectAudioExtractions(req ProjectArtifactsRequest, resp *ProjectAudioExtractionsResponse) error {
	extractions, err := s.engine.ProjectAudioExtractions(s.ctx, req.ProjectID)
	if err != nil {
		return err
	}
	resp.Extractions = make([]store.AudioExtraction, 0, len(extractions))
	for _, extraction := range extractions {
		resp.Extractions = append(resp.Extractions, *extraction)
	}
	return nil
}

func (s *service) ConversionByFolderPath(req ConversionByFolderPathRequest, resp *ConversionByFolderPathResponse) error {
	conversion, err := s.engine.ConversionByFolderPath(s.ctx, req.FolderPath)
	if err != nil {
		return err
	}
	if conversion == nil {
		resp.Found = false
		return nil
	}
	resp.Found = true
	resp.Conversion = *conversion
	return nil
}

func (s *service) GetFrameFiles(req FrameFilesRequest, resp *FrameFilesResponse) error {
	frames, err := s.engine.GetFrameFiles(req.FolderPath)
	if err != nil {
		return err
	}
	resp.Frames = frames
	return nil
}

func (s *service) ReadFrameFile(req ReadFrameFileRequest, resp *ReadFrameFileResponse) error {
	content, err := s.engine.ReadFrameFile(req.Path)
	if err != nil {
		return err
	}
	resp.Content = content
	return nil
}

func (s *service) ConvertToASCII(req ConvertToASCIIRequest, resp *ConvertToASCIIResponse) error {
	s.log().Debug("ascii conversion requested",
		logging.String(logging.FieldSourceID, req.Request.SourceFileID),
		logging.String(logging.FieldPath, req.Request.FilePath),
	)
	message, err := s.engine.ConvertToASCII(s.ctx, req.Request)
	if err != nil {
		return err
	}
	resp.Message = message
	return nil
}

func (s *service) CutVideo(req CutVideoRequest, resp *CutVideoResponse) error {
	cut, err := s.engine.CutVideo(s.ctx, req.FilePath, req.ProjectID, req.SourceFileID, req.Start, req.End)
	if err != nil {
		return err
	}
	resp.Cut = *cut
	return nil
}

func (s *service) CutFrames(req CutFramesRequest, resp *CutFramesResponse) error {
	message, err := s.engine.CutFrames(s.ctx, req.FolderPath, req.StartIndex, req.EndIndex)
	if err != nil {
		return err
	}
	resp.Message = message
	return nil
}

func (s *service) DeleteProject(req DeleteProjectRequest, resp *DeleteResponse) error {
	s.log().Debug("delete project requested", logging.String(logging.FieldProjectID, req.ID))
	if err := s.engine.DeleteProject(s.ctx, req.ID); err != nil {
		return err
	}
	resp.Deleted = true
	return nil
}

func (s *service) DeleteSource(req DeleteSourceRequest, resp *DeleteResponse) error {
	if err := s.engine.DeleteSource(s.ctx, req.ID); err != nil {
		return err
	}
	resp.Deleted = true
	return nil
}

func (s *service) DeleteFrameDirectory(req DeleteFrameDirectoryRequest, resp *DeleteResponse) error {
	if err := s.engine.DeleteFrameDirectory(s.ctx, req.FolderPath); err != nil {
		return err
	}
	resp.Deleted = true
	return nil
}

func (s *service) DeleteCut(req DeleteCutRequest, resp *DeleteResponse) error {
	if err := s.engine.DeleteCut(s.ctx, req.ID); err != nil {
		return err
	}
	resp.Deleted = true
	return nil
}

func (s *service) DeleteAudioExtraction(req DeleteAudioExtractionRequest, resp *DeleteResponse) error {
	if err := s.engine.DeleteAudioExtraction(s.ctx, req.ID); err != nil {
		return err
	}
	resp.Deleted = true
	return nil
}

func (s *service) UpdateSourceCustomName(req UpdateCustomNameRequest, resp *UpdateCustomNameResponse) error {
	if err := s.engine.UpdateSourceCustomName(s.ctx, req.ID, req.CustomName); err != nil {
		return err
	}
	resp.Updated = true
	return nil
}

func (s *service) UpdateConversionCustomName(req UpdateCustomNameRequest, resp *UpdateCustomNameResponse) error {
	if err := s.engine.UpdateConversionCustomName(s.ctx, req.ID, req.CustomName); err != nil {
		return err
	}
	resp.Updated = true
	return nil
}

func (s *service) UpdateCutCustomName(req UpdateCustomNameRequest, resp *UpdateCustomNameResponse) error {
	if err := s.engine.UpdateCutCustomName(s.ctx, req.ID, req.CustomName); err != nil {
		return err
	}
	resp.Updated = true
	return nil
}

func (s *service) UpdateConversionFrameSpeed(req UpdateFrameSpeedRequest, resp *UpdateFrameSpeedResponse) error {
	if err := s.engine.UpdateConversionFrameSpeed(s.ctx, req.ID, req.FrameSpeed); err != nil {
		return err
	}
	resp.Updated = true
	return nil
}

func (s *service) CheckSystemFFmpeg(_ CheckFFmpegRequest, resp *CheckFFmpegResponse) error {
	resp.Available = s.engine.CheckSystemFFmpeg(s.ctx)
	return nil
}

func (s *service) CheckSidecarFFmpeg(_ CheckFFmpegRequest, resp *CheckFFmpegResponse) error {
	resp.Available = s.engine.CheckSidecarFFmpeg(s.ctx)
	return nil
}

func (s *service) EventTail(req EventTailRequest, resp *EventTailResponse) error {
	wait := time.Duration(req.WaitMillis) * time.Millisecond
	if wait < 0 {
		wait = 0
	}
	if wait > s.maxEventWait {
		wait = s.maxEventWait
	}
	pending, cursor, err := s.bus.Tail(s.ctx, req.AfterSeq, wait)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			resp.NextSeq = cursor
			return nil
		}
		return err
	}
	resp.Events = pending
	resp.NextSeq = cursor
	return nil
}
