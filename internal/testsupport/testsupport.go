// Package testsupport provides shared fixtures for store and engine tests.
package testsupport

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"

	"cascii/internal/fileutil"
	"cascii/internal/store"
)

// MustOpenStore opens a metadata store inside a per-test temp directory and
// closes it when the test finishes.
func MustOpenStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.Open(filepath.Join(t.TempDir(), "projects.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = s.Close()
	})
	return s
}

// SeedProject inserts a minimal project row and returns it.
func SeedProject(t *testing.T, s *store.Store, name string, projectType store.ProjectType) *store.Project {
	t.Helper()
	now := time.Now().UTC()
	project := &store.Project{
		ID:           uuid.NewString(),
		Name:         name,
		Type:         projectType,
		Path:         fileutil.Slug(name) + "_" + fileutil.First8(uuid.NewString()),
		CreationDate: now,
		LastModified: now,
	}
	if err := s.CreateProject(context.Background(), project); err != nil {
		t.Fatalf("seed project: %v", err)
	}
	return project
}

// SeedSource inserts a source file row owned by project and returns it.
func SeedSource(t *testing.T, s *store.Store, project *store.Project, filePath string, contentType store.SourceType) *store.SourceFile {
	t.Helper()
	source := &store.SourceFile{
		ID:          uuid.NewString(),
		ContentType: contentType,
		ProjectID:   project.ID,
		DateAdded:   time.Now().UTC(),
		Size:        1024,
		FilePath:    filePath,
	}
	if err := s.AddSource(context.Background(), source); err != nil {
		t.Fatalf("seed source: %v", err)
	}
	return source
}

// SeedConversion inserts a conversion row owned by source and returns it.
func SeedConversion(t *testing.T, s *store.Store, source *store.SourceFile, folderPath string) *store.Conversion {
	t.Helper()
	conversion := &store.Conversion{
		ID:           uuid.NewString(),
		FolderName:   filepath.Base(folderPath),
		FolderPath:   folderPath,
		FrameCount:   10,
		SourceFileID: source.ID,
		ProjectID:    source.ProjectID,
		Settings: store.ConversionSettings{
			Luminance:  255,
			FontRatio:  0.5,
			Columns:    80,
			FPS:        24,
			FrameSpeed: 24,
		},
		CreationDate: time.Now().UTC(),
		TotalSize:    4096,
	}
	if err := s.AddConversion(context.Background(), conversion); err != nil {
		t.Fatalf("seed conversion: %v", err)
	}
	return conversion
}
