package store_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"cascii/internal/faults"
	"cascii/internal/store"
	"cascii/internal/testsupport"
)

func TestProjectRoundTrip(t *testing.T) {
	s := testsupport.MustOpenStore(t)
	ctx := context.Background()

	project := testsupport.SeedProject(t, s, "Pic", store.ProjectImage)

	fetched, err := s.GetProject(ctx, project.ID)
	if err != nil {
		t.Fatalf("GetProject failed: %v", err)
	}
	if fetched.Name != "Pic" || fetched.Type != store.ProjectImage {
		t.Fatalf("unexpected project: %#v", fetched)
	}
	if fetched.CreationDate.IsZero() || fetched.LastModified.IsZero() {
		t.Fatal("expected timestamps to round-trip")
	}
}

func TestGetProjectNotFound(t *testing.T) {
	s := testsupport.MustOpenStore(t)

	_, err := s.GetProject(context.Background(), uuid.NewString())
	if !errors.Is(err, faults.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestAllProjectsOrderedByLastModified(t *testing.T) {
	s := testsupport.MustOpenStore(t)
	ctx := context.Background()

	older := testsupport.SeedProject(t, s, "Older", store.ProjectImage)
	newer := testsupport.SeedProject(t, s, "Newer", store.ProjectAnimation)

	base := time.Now().UTC()
	if err := s.UpdateProjectTotals(ctx, older.ID, 1, 0, base.Add(-time.Hour).Format(time.RFC3339)); err != nil {
		t.Fatalf("UpdateProjectTotals failed: %v", err)
	}
	if err := s.UpdateProjectTotals(ctx, newer.ID, 2, 0, base.Format(time.RFC3339)); err != nil {
		t.Fatalf("UpdateProjectTotals failed: %v", err)
	}

	projects, err := s.AllProjects(ctx)
	if err != nil {
		t.Fatalf("AllProjects failed: %v", err)
	}
	if len(projects) != 2 {
		t.Fatalf("expected 2 projects, got %d", len(projects))
	}
	if projects[0].ID != newer.ID {
		t.Fatalf("expected most recently modified first, got %q", projects[0].Name)
	}
}

func TestSourcesOrderedByDateAdded(t *testing.T) {
	s := testsupport.MustOpenStore(t)
	ctx := context.Background()

	project := testsupport.SeedProject(t, s, "Mix", store.ProjectAnimation)

	first := &store.SourceFile{
		ID:          uuid.NewString(),
		ContentType: store.SourceImage,
		ProjectID:   project.ID,
		DateAdded:   time.Now().UTC().Add(-time.Minute),
		Size:        10,
		FilePath:    "/out/mix/source/a.png",
	}
	second := &store.SourceFile{
		ID:          uuid.NewString(),
		ContentType: store.SourceVideo,
		ProjectID:   project.ID,
		DateAdded:   time.Now().UTC(),
		Size:        20,
		FilePath:    "/out/mix/source/b.mp4",
	}
	if err := s.AddSource(ctx, second); err != nil {
		t.Fatalf("AddSource failed: %v", err)
	}
	if err := s.AddSource(ctx, first); err != nil {
		t.Fatalf("AddSource failed: %v", err)
	}

	sources, err := s.SourcesOfProject(ctx, project.ID)
	if err != nil {
		t.Fatalf("SourcesOfProject failed: %v", err)
	}
	if len(sources) != 2 {
		t.Fatalf("expected 2 sources, got %d", len(sources))
	}
	if sources[0].ID != first.ID {
		t.Fatal("expected oldest source first")
	}
}

func TestConversionSettingsRoundTrip(t *testing.T) {
	s := testsupport.MustOpenStore(t)
	ctx := context.Background()

	project := testsupport.SeedProject(t, s, "Conv", store.ProjectAnimation)
	source := testsupport.SeedSource(t, s, project, "/out/conv/source/b.mp4", store.SourceVideo)

	conversion := &store.Conversion{
		ID:           uuid.NewString(),
		FolderName:   "b_ascii[Ab12Cd34Ef]",
		FolderPath:   "/out/conv/frames/b_ascii[Ab12Cd34Ef]",
		FrameCount:   42,
		SourceFileID: source.ID,
		ProjectID:    project.ID,
		Settings: store.ConversionSettings{
			Luminance:  200,
			FontRatio:  0.45,
			Columns:    120,
			FPS:        30,
			FrameSpeed: 30,
			Color:      true,
		},
		CreationDate: time.Now().UTC(),
		TotalSize:    9001,
		CustomName:   "Hero shot",
	}
	if err := s.AddConversion(ctx, conversion); err != nil {
		t.Fatalf("AddConversion failed: %v", err)
	}

	fetched, err := s.GetConversion(ctx, conversion.ID)
	if err != nil {
		t.Fatalf("GetConversion failed: %v", err)
	}
	if fetched.Settings != conversion.Settings {
		t.Fatalf("settings mismatch: got %#v", fetched.Settings)
	}
	if fetched.CustomName != "Hero shot" {
		t.Fatalf("custom name mismatch: %q", fetched.CustomName)
	}

	byPath, err := s.ConversionByFolderPath(ctx, conversion.FolderPath)
	if err != nil {
		t.Fatalf("ConversionByFolderPath failed: %v", err)
	}
	if byPath == nil || byPath.ID != conversion.ID {
		t.Fatalf("expected lookup by folder path to match, got %#v", byPath)
	}

	missing, err := s.ConversionByFolderPath(ctx, "/nowhere")
	if err != nil {
		t.Fatalf("ConversionByFolderPath failed: %v", err)
	}
	if missing != nil {
		t.Fatal("expected nil for unregistered folder path")
	}
}

func TestUpdateConversionFrameSpeed(t *testing.T) {
	s := testsupport.MustOpenStore(t)
	ctx := context.Background()

	project := testsupport.SeedProject(t, s, "Speed", store.ProjectAnimation)
	source := testsupport.SeedSource(t, s, project, "/out/speed/source/b.mp4", store.SourceVideo)
	conversion := testsupport.SeedConversion(t, s, source, "/out/speed/frames/b_ascii[0000000000]")

	if err := s.UpdateConversionFrameSpeed(ctx, conversion.ID, 12); err != nil {
		t.Fatalf("UpdateConversionFrameSpeed failed: %v", err)
	}
	fetched, err := s.GetConversion(ctx, conversion.ID)
	if err != nil {
		t.Fatalf("GetConversion failed: %v", err)
	}
	if fetched.Settings.FrameSpeed != 12 {
		t.Fatalf("expected frame speed 12, got %d", fetched.Settings.FrameSpeed)
	}

	if err := s.UpdateConversionFrameSpeed(ctx, uuid.NewString(), 12); !errors.Is(err, faults.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown conversion, got %v", err)
	}
}

func TestDeleteProjectCascades(t *testing.T) {
	s := testsupport.MustOpenStore(t)
	ctx := context.Background()

	project := testsupport.SeedProject(t, s, "Doomed", store.ProjectAnimation)
	source := testsupport.SeedSource(t, s, project, "/out/doomed/source/b.mp4", store.SourceVideo)
	testsupport.SeedConversion(t, s, source, "/out/doomed/frames/b_ascii[1111111111]")

	cut := &store.VideoCut{
		ID:           uuid.NewString(),
		ProjectID:    project.ID,
		SourceFileID: source.ID,
		FilePath:     "/out/doomed/cuts/b_cut_00000000.mp4",
		Size:         77,
		Start:        1,
		End:          3,
		Duration:     2,
		CreationDate: time.Now().UTC(),
	}
	if err := s.AddCut(ctx, cut); err != nil {
		t.Fatalf("AddCut failed: %v", err)
	}
	extraction := &store.AudioExtraction{
		ID:            uuid.NewString(),
		SourceFileID:  source.ID,
		ProjectID:     project.ID,
		FolderName:    "b_audio[2222222222]",
		FolderPath:    "/out/doomed/audio/b_audio[2222222222]",
		CreationDate:  time.Now().UTC(),
		Size:          55,
		AudioTrackEnd: 12.5,
	}
	if err := s.AddAudioExtraction(ctx, extraction); err != nil {
		t.Fatalf("AddAudioExtraction failed: %v", err)
	}

	if err := s.DeleteProject(ctx, project.ID); err != nil {
		t.Fatalf("DeleteProject failed: %v", err)
	}

	if _, err := s.GetProject(ctx, project.ID); !errors.Is(err, faults.ErrNotFound) {
		t.Fatalf("expected project gone, got %v", err)
	}
	if sources, _ := s.SourcesOfProject(ctx, project.ID); len(sources) != 0 {
		t.Fatalf("expected sources cascade-deleted, found %d", len(sources))
	}
	if conversions, _ := s.ConversionsOfProject(ctx, project.ID); len(conversions) != 0 {
		t.Fatalf("expected conversions cascade-deleted, found %d", len(conversions))
	}
	if cuts, _ := s.CutsOfProject(ctx, project.ID); len(cuts) != 0 {
		t.Fatalf("expected cuts cascade-deleted, found %d", len(cuts))
	}
	if extractions, _ := s.AudioExtractionsOfProject(ctx, project.ID); len(extractions) != 0 {
		t.Fatalf("expected audio extractions cascade-deleted, found %d", len(extractions))
	}
}

func TestDeleteSourceCascadesDerivedArtifacts(t *testing.T) {
	s := testsupport.MustOpenStore(t)
	ctx := context.Background()

	project := testsupport.SeedProject(t, s, "Keep", store.ProjectAnimation)
	source := testsupport.SeedSource(t, s, project, "/out/keep/source/b.mp4", store.SourceVideo)
	testsupport.SeedConversion(t, s, source, "/out/keep/frames/b_ascii[3333333333]")

	if err := s.DeleteSource(ctx, source.ID); err != nil {
		t.Fatalf("DeleteSource failed: %v", err)
	}

	if _, err := s.GetProject(ctx, project.ID); err != nil {
		t.Fatalf("expected project to survive, got %v", err)
	}
	if conversions, _ := s.ConversionsOfProject(ctx, project.ID); len(conversions) != 0 {
		t.Fatalf("expected conversions cascade-deleted with source, found %d", len(conversions))
	}
}

func TestRenameProject(t *testing.T) {
	s := testsupport.MustOpenStore(t)
	ctx := context.Background()

	project := testsupport.SeedProject(t, s, "Before", store.ProjectImage)
	if err := s.RenameProject(ctx, project.ID, "After"); err != nil {
		t.Fatalf("RenameProject failed: %v", err)
	}
	fetched, err := s.GetProject(ctx, project.ID)
	if err != nil {
		t.Fatalf("GetProject failed: %v", err)
	}
	if fetched.Name != "After" {
		t.Fatalf("expected renamed project, got %q", fetched.Name)
	}
	if fetched.Path != project.Path {
		t.Fatal("expected folder name to stay fixed across rename")
	}

	if err := s.RenameProject(ctx, uuid.NewString(), "Ghost"); !errors.Is(err, faults.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
