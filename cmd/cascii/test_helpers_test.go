package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"cascii/internal/events"
	"cascii/internal/ipc"
	"cascii/internal/logging"
	"cascii/internal/media"
	"cascii/internal/settings"
	"cascii/internal/store"
	"cascii/internal/studio"
	"cascii/internal/transcoder"
)

type stubTranscoder struct{}

func (stubTranscoder) Duration(context.Context, string) float64 { return 0 }

func (stubTranscoder) ConvertToMP4(_ context.Context, _, output string, _ transcoder.ProgressFunc) error {
	return os.WriteFile(output, []byte("mp4"), 0o644)
}

func (stubTranscoder) ExtractAudio(context.Context, string, string) (string, int64, float64, error) {
	return "", 0, 0, nil
}

func (stubTranscoder) CutVideo(_ context.Context, _, output string, _, _ float64) error {
	return os.WriteFile(output, []byte("cut"), 0o644)
}

func (stubTranscoder) ExtractFrames(context.Context, string, string, int) error { return nil }

type cliTestEnv struct {
	engine     *studio.Engine
	server     *ipc.Server
	socketPath string
	configPath string
	outputDir  string
}

func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	homeDir := filepath.Join(base, "home")
	if err := os.MkdirAll(homeDir, 0o755); err != nil {
		t.Fatalf("mkdir home: %v", err)
	}
	t.Setenv("HOME", homeDir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(homeDir, ".config"))

	dataDir := filepath.Join(base, "data")
	outputDir := filepath.Join(base, "output")
	for _, dir := range []string{dataDir, outputDir, filepath.Join(dataDir, "logs")} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			t.Fatalf("mkdir %s: %v", dir, err)
		}
	}

	socketPath := filepath.Join(base, "cli.sock")
	configPath := filepath.Join(base, "daemon.toml")
	writeTestConfig(t, configPath, dataDir, socketPath)

	st, err := store.Open(filepath.Join(dataDir, "projects.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}

	svc := settings.NewService(filepath.Join(dataDir, "settings.json"))
	doc := settings.Default()
	doc.OutputDirectory = outputDir
	if err := svc.Save(doc); err != nil {
		t.Fatalf("save settings: %v", err)
	}

	logger := logging.NewNop()
	bus := events.NewBus(64, logger)
	engine := studio.New(studio.Options{
		Store:      st,
		Settings:   svc,
		Transcoder: stubTranscoder{},
		Preparer:   media.NewPreparer(filepath.Join(dataDir, "media"), logger),
		Sink:       bus,
	})

	ctx, cancel := context.WithCancel(context.Background())
	srv, err := ipc.NewServer(ctx, ipc.ServerOptions{
		SocketPath:   socketPath,
		Engine:       engine,
		Bus:          bus,
		Logger:       logger,
		DatabasePath: filepath.Join(dataDir, "projects.db"),
		SettingsPath: filepath.Join(dataDir, "settings.json"),
	})
	if err != nil {
		t.Fatalf("ipc.NewServer: %v", err)
	}
	srv.Serve()

	t.Cleanup(func() {
		cancel()
		srv.Close()
		st.Close()
	})

	return &cliTestEnv{
		engine:     engine,
		server:     srv,
		socketPath: socketPath,
		configPath: configPath,
		outputDir:  outputDir,
	}
}

func runCLI(t *testing.T, args []string, socket, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	flags := []string{"--socket", socket}
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeTestConfig(t *testing.T, path, dataDir, socketPath string) {
	t.Helper()
	content := fmt.Sprintf(`[paths]
data_dir = %q
media_cache_dir = %q
log_dir = %q
socket_path = %q

[logging]
format = "console"
level = "info"
`,
		dataDir,
		filepath.Join(dataDir, "media"),
		filepath.Join(dataDir, "logs"),
		socketPath,
	)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func dialTestClient(env *cliTestEnv) (*ipc.Client, error) {
	return ipc.Dial(env.socketPath)
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}
