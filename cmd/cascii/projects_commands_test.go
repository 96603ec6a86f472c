package main

import (
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func TestProjectsListAndShow(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"projects"}, env.socketPath, env.configPath)
	if err != nil {
		t.Fatalf("projects: %v", err)
	}
	requireContains(t, out, "No projects")

	srcPath := filepath.Join(t.TempDir(), "a.png")
	file, err := os.Create(srcPath)
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(file, image.NewRGBA(image.Rect(0, 0, 4, 4))); err != nil {
		t.Fatal(err)
	}
	file.Close()

	client, err := dialTestClient(env)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer client.Close()
	created, err := client.CreateProject("CLI Demo", []string{srcPath})
	if err != nil {
		t.Fatalf("create project: %v", err)
	}

	out, _, err = runCLI(t, []string{"projects"}, env.socketPath, env.configPath)
	if err != nil {
		t.Fatalf("projects: %v", err)
	}
	requireContains(t, out, "CLI Demo")

	out, _, err = runCLI(t, []string{"projects", "show", created.Project.ID}, env.socketPath, env.configPath)
	if err != nil {
		t.Fatalf("projects show: %v", err)
	}
	requireContains(t, out, "CLI Demo")
	requireContains(t, out, "Sources (1)")

	out, _, err = runCLI(t, []string{"projects", "rename", created.Project.ID, "Renamed"}, env.socketPath, env.configPath)
	if err != nil {
		t.Fatalf("projects rename: %v", err)
	}
	requireContains(t, out, "Renamed project")

	out, _, err = runCLI(t, []string{"projects", "delete", created.Project.ID}, env.socketPath, env.configPath)
	if err != nil {
		t.Fatalf("projects delete: %v", err)
	}
	requireContains(t, out, "Deleted project")
}
