package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"
	"time"

	"github.com/gofrs/flock"
	"github.com/spf13/cobra"

	"cascii/internal/dialog"
	"cascii/internal/events"
	"cascii/internal/ipc"
	"cascii/internal/logging"
	"cascii/internal/media"
	"cascii/internal/settings"
	"cascii/internal/store"
	"cascii/internal/studio"
	"cascii/internal/transcoder"
)

func newServeCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the workspace daemon",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDaemon(ctx, cmd)
		},
	}
}

func runDaemon(ctx *commandContext, cmd *cobra.Command) error {
	signalCtx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, err := ctx.ensureConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	settingsService := settings.NewService(cfg.SettingsFile())
	doc, err := settingsService.Load()
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}

	logger, err := logging.NewFromConfig(cfg, doc.DebugLogs)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}

	lock := flock.New(cfg.LockFile())
	locked, err := lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	if !locked {
		return errors.New("another cascii daemon instance is already running")
	}
	defer lock.Unlock() //nolint:errcheck

	pidPath := filepath.Join(cfg.Paths.LogDir, "cascii.pid")
	if err := writePIDFile(pidPath); err != nil {
		return fmt.Errorf("write pid file: %w", err)
	}
	defer os.Remove(pidPath)

	st, err := store.Open(cfg.DatabaseFile())
	if err != nil {
		logger.Error("open metadata store", logging.Error(err))
		return err
	}
	defer st.Close()

	source := transcoder.SourceSystem
	if doc.FFmpegSource == settings.FFmpegSidecar {
		source = transcoder.SourceSidecar
	}
	binaries, err := transcoder.Resolve(signalCtx, source, cfg.Paths.SidecarDir)
	if err != nil {
		logger.Warn("ffmpeg/ffprobe pair not found; media operations will fail",
			logging.Error(err),
		)
	} else {
		logger.Info("transcoder resolved",
			logging.String("ffmpeg", binaries.FFmpeg),
			logging.String("source", string(binaries.Source)),
		)
	}

	bus := events.NewBus(cfg.Workflow.EventBufferSize, logger)
	engine := studio.New(studio.Options{
		Store:      st,
		Settings:   settingsService,
		Transcoder: transcoder.New(binaries, logger),
		Preparer:   media.NewPreparer(cfg.Paths.MediaCacheDir, logger),
		Sink:       bus,
		Logger:     logger,
		SidecarDir: cfg.Paths.SidecarDir,
	})

	server, err := ipc.NewServer(signalCtx, ipc.ServerOptions{
		SocketPath:   cfg.Paths.SocketPath,
		Engine:       engine,
		Bus:          bus,
		Dialogs:      dialog.NewNative(logger),
		Logger:       logger,
		DatabasePath: cfg.DatabaseFile(),
		SettingsPath: cfg.SettingsFile(),
		MaxEventWait: time.Duration(cfg.Workflow.EventPollMaxWaitMS) * time.Millisecond,
	})
	if err != nil {
		return fmt.Errorf("start IPC server: %w", err)
	}
	defer server.Close()
	server.Serve()

	logger.Info("cascii daemon started",
		logging.String("socket", cfg.Paths.SocketPath),
		logging.String("database", cfg.DatabaseFile()),
	)

	<-signalCtx.Done()
	logger.Info("cascii daemon shutting down")
	engine.Wait()
	return nil
}

func writePIDFile(path string) error {
	if path == "" {
		return nil
	}
	value := strconv.Itoa(os.Getpid()) + "\n"
	return os.WriteFile(path, []byte(value), 0o644)
}
