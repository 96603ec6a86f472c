package studio_test

import (
	"context"
	"encoding/json"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"cascii/internal/events"
	"cascii/internal/faults"
	"cascii/internal/media"
	"cascii/internal/settings"
	"cascii/internal/store"
	"cascii/internal/studio"
	"cascii/internal/testsupport"
	"cascii/internal/transcoder"
)

// fakeTranscoder satisfies the engine's transcoder interface without
// spawning ffmpeg.
type fakeTranscoder struct {
	duration   float64
	frameCount int
	failMP4    bool
}

func (f *fakeTranscoder) Duration(context.Context, string) float64 {
	return f.duration
}

func (f *fakeTranscoder) ConvertToMP4(_ context.Context, input, output string, progress transcoder.ProgressFunc) error {
	if f.failMP4 {
		return faults.Wrap(faults.ErrTranscodeFailed, "transcoder", "convert", "simulated failure", nil)
	}
	if progress != nil {
		for _, pct := range []int{10, 50, 99} {
			progress(transcoder.Progress{
				FileName:   filepath.Base(input),
				Status:     "processing",
				Message:    fmt.Sprintf("Converting to MP4... %d%%", pct),
				Percentage: pct,
			})
		}
	}
	return os.WriteFile(output, []byte("mp4-bytes"), 0o644)
}

func (f *fakeTranscoder) ExtractAudio(_ context.Context, _, output string) (string, int64, float64, error) {
	if err := os.WriteFile(output, []byte("mp3-bytes"), 0o644); err != nil {
		return "", 0, 0, err
	}
	return filepath.Dir(output), int64(len("mp3-bytes")), f.duration, nil
}

func (f *fakeTranscoder) CutVideo(_ context.Context, _, output string, _, _ float64) error {
	return os.WriteFile(output, []byte("cut-bytes"), 0o644)
}

func (f *fakeTranscoder) ExtractFrames(_ context.Context, _, dir string, _ int) error {
	for i := 1; i <= f.frameCount; i++ {
		img := image.NewRGBA(image.Rect(0, 0, 4, 4))
		for y := 0; y < 4; y++ {
			for x := 0; x < 4; x++ {
				img.Set(x, y, color.RGBA{R: uint8(i * 20), G: uint8(i * 20), B: uint8(i * 20), A: 255})
			}
		}
		file, err := os.Create(filepath.Join(dir, fmt.Sprintf("still_%05d.png", i)))
		if err != nil {
			return err
		}
		if err := png.Encode(file, img); err != nil {
			file.Close()
			return err
		}
		file.Close()
	}
	return nil
}

type fixture struct {
	engine  *studio.Engine
	store   *store.Store
	sink    *events.Capture
	output  string
	fake    *fakeTranscoder
	context context.Context
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	st := testsupport.MustOpenStore(t)

	output := t.TempDir()
	svc := settings.NewService(filepath.Join(t.TempDir(), "settings.json"))
	loaded := settings.Default()
	loaded.OutputDirectory = output
	loaded.DefaultBehavior = settings.BehaviorCopy
	if err := svc.Save(loaded); err != nil {
		t.Fatal(err)
	}

	sink := events.NewCapture()
	fake := &fakeTranscoder{duration: 8, frameCount: 5}
	engine := studio.New(studio.Options{
		Store:      st,
		Settings:   svc,
		Transcoder: fake,
		Preparer:   media.NewPreparer(filepath.Join(t.TempDir(), "media"), nil),
		Sink:       sink,
	})
	return &fixture{
		engine:  engine,
		store:   st,
		sink:    sink,
		output:  output,
		fake:    fake,
		context: context.Background(),
	}
}

func (f *fixture) writePNG(t *testing.T, dir, name string) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 6, 6))
	file, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		t.Fatal(err)
	}
	defer file.Close()
	if err := png.Encode(file, img); err != nil {
		t.Fatal(err)
	}
	return file.Name()
}

func (f *fixture) writeStub(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("stub-"+name), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestCreateProjectImageOnly(t *testing.T) {
	f := newFixture(t)
	src := f.writePNG(t, t.TempDir(), "a.png")

	project, err := f.engine.CreateProject(f.context, "Pic", []string{src})
	if err != nil {
		t.Fatalf("CreateProject: %v", err)
	}
	if project.Type != store.ProjectImage {
		t.Fatalf("project type = %q, want image", project.Type)
	}
	if project.Frames != 0 {
		t.Fatalf("frames = %d, want 0 before any conversion", project.Frames)
	}
	if !strings.HasPrefix(project.Path, "pic_") {
		t.Fatalf("project path = %q", project.Path)
	}
	ingested := filepath.Join(f.output, project.Path, "source", "a.png")
	if _, err := os.Stat(ingested); err != nil {
		t.Fatalf("ingested file missing: %v", err)
	}

	progress := f.sink.OnChannel(events.ChannelFileProgress)
	if len(progress) != 2 {
		t.Fatalf("file-progress events = %d, want processing+completed", len(progress))
	}
	var first, last events.FileProgress
	if err := json.Unmarshal(progress[0].Payload, &first); err != nil {
		t.Fatal(err)
	}
	if err := json.Unmarshal(progress[1].Payload, &last); err != nil {
		t.Fatal(err)
	}
	if first.Status != events.StatusProcessing || last.Status != events.StatusCompleted {
		t.Fatalf("event order = %q then %q", first.Status, last.Status)
	}
}

func TestCreateProjectRejectsEmptyName(t *testing.T) {
	f := newFixture(t)
	if _, err := f.engine.CreateProject(f.context, "   ", nil); faults.Kind(err) != faults.ErrInvalidInput {
		t.Fatalf("err = %v, want invalid input", err)
	}
}

func TestCreateProjectMixedWithMKV(t *testing.T) {
	f := newFixture(t)
	dir := t.TempDir()
	pngPath := f.writePNG(t, dir, "a.png")
	mkv := f.writeStub(t, dir, "b.mkv")

	project, err := f.engine.CreateProject(f.context, "Mix", []string{pngPath, mkv})
	if err != nil {
		t.Fatalf("CreateProject: %v", err)
	}
	if project.Type != store.ProjectAnimation {
		t.Fatalf("project type = %q, want animation", project.Type)
	}

	sourceDir := filepath.Join(f.output, project.Path, "source")
	if _, err := os.Stat(filepath.Join(sourceDir, "b.mp4")); err != nil {
		t.Fatalf("converted mp4 missing: %v", err)
	}
	if _, err := os.Stat(filepath.Join(sourceDir, "b.mkv")); err == nil {
		t.Fatal("mkv should not be placed in source/")
	}

	sources, err := f.engine.ProjectSources(f.context, project.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(sources) != 2 {
		t.Fatalf("source rows = %d, want 2", len(sources))
	}
}

func TestAddSourcesContinuesPastFailures(t *testing.T) {
	f := newFixture(t)
	project, err := f.engine.CreateProject(f.context, "Recover", nil)
	if err != nil {
		t.Fatal(err)
	}

	good := f.writePNG(t, t.TempDir(), "ok.png")
	missing := filepath.Join(t.TempDir(), "gone.png")
	if err := f.engine.AddSources(f.context, project.ID, []string{missing, good}); err != nil {
		t.Fatalf("AddSources: %v", err)
	}

	sources, err := f.engine.ProjectSources(f.context, project.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(sources) != 1 {
		t.Fatalf("source rows = %d, want only the good file", len(sources))
	}

	sawError := false
	for _, event := range f.sink.OnChannel(events.ChannelFileProgress) {
		var payload events.FileProgress
		if err := json.Unmarshal(event.Payload, &payload); err != nil {
			t.Fatal(err)
		}
		if payload.FileName == "gone.png" && payload.Status == events.StatusError {
			sawError = true
		}
	}
	if !sawError {
		t.Fatal("missing per-file error event")
	}
}

func TestConvertToASCIIVideoRoundTrip(t *testing.T) {
	f := newFixture(t)
	mkv := f.writeStub(t, t.TempDir(), "b.mkv")
	project, err := f.engine.CreateProject(f.context, "Mix", []string{mkv})
	if err != nil {
		t.Fatal(err)
	}
	sources, err := f.engine.ProjectSources(f.context, project.ID)
	if err != nil || len(sources) != 1 {
		t.Fatalf("sources = %v err = %v", sources, err)
	}
	source := sources[0]

	ack, err := f.engine.ConvertToASCII(f.context, studio.ConversionRequest{
		FilePath:     source.FilePath,
		Luminance:    128,
		FontRatio:    0.45,
		Columns:      80,
		FPS:          24,
		ProjectID:    project.ID,
		SourceFileID: source.ID,
	})
	if err != nil {
		t.Fatalf("ConvertToASCII: %v", err)
	}
	if ack == "" {
		t.Fatal("expected acknowledgement string")
	}
	f.engine.Wait()

	completes := f.sink.OnChannel(events.ChannelConversionComplete)
	if len(completes) != 1 {
		t.Fatalf("conversion-complete events = %d, want exactly 1", len(completes))
	}
	var complete events.ConversionComplete
	if err := json.Unmarshal(completes[0].Payload, &complete); err != nil {
		t.Fatal(err)
	}
	if !complete.Success || complete.SourceID != source.ID {
		t.Fatalf("completion = %+v", complete)
	}

	conversions, err := f.engine.ProjectConversions(f.context, project.ID)
	if err != nil || len(conversions) != 1 {
		t.Fatalf("conversions = %v err = %v", conversions, err)
	}
	conversion := conversions[0]
	pattern := regexp.MustCompile(`^b_ascii\[[A-Za-z0-9]{10}\]$`)
	if !pattern.MatchString(conversion.FolderName) {
		t.Fatalf("folder name %q does not match convention", conversion.FolderName)
	}
	if conversion.FrameCount < 1 {
		t.Fatalf("frame count = %d", conversion.FrameCount)
	}

	frames, err := f.engine.GetFrameFiles(conversion.FolderPath)
	if err != nil {
		t.Fatal(err)
	}
	if len(frames) != conversion.FrameCount {
		t.Fatalf("on-disk frames = %d, row says %d", len(frames), conversion.FrameCount)
	}

	// Progress percentages must strictly increase.
	last := -1
	for _, event := range f.sink.OnChannel(events.ChannelConversionProgress) {
		var payload events.ConversionProgress
		if err := json.Unmarshal(event.Payload, &payload); err != nil {
			t.Fatal(err)
		}
		if payload.Percentage <= last {
			t.Fatalf("progress not strictly increasing: %d after %d", payload.Percentage, last)
		}
		last = payload.Percentage
	}
	if last != 100 {
		t.Fatalf("final progress = %d, want 100", last)
	}

	refreshed, err := f.engine.GetProject(f.context, project.ID)
	if err != nil {
		t.Fatal(err)
	}
	if refreshed.Frames != conversion.FrameCount {
		t.Fatalf("project frames = %d, want %d", refreshed.Frames, conversion.FrameCount)
	}
}

func TestConvertToASCIIWithAudioExtraction(t *testing.T) {
	f := newFixture(t)
	mkv := f.writeStub(t, t.TempDir(), "clip.mkv")
	project, err := f.engine.CreateProject(f.context, "Audio", []string{mkv})
	if err != nil {
		t.Fatal(err)
	}
	sources, _ := f.engine.ProjectSources(f.context, project.ID)
	source := sources[0]

	_, err = f.engine.ConvertToASCII(f.context, studio.ConversionRequest{
		FilePath:     source.FilePath,
		Luminance:    128,
		FontRatio:    0.45,
		Columns:      40,
		ProjectID:    project.ID,
		SourceFileID: source.ID,
		ExtractAudio: true,
	})
	if err != nil {
		t.Fatal(err)
	}
	f.engine.Wait()

	extractions, err := f.engine.ProjectAudioExtractions(f.context, project.ID)
	if err != nil || len(extractions) != 1 {
		t.Fatalf("extractions = %v err = %v", extractions, err)
	}
	extraction := extractions[0]
	if extraction.AudioTrackEnd != f.fake.duration {
		t.Fatalf("audio track end = %v, want probed duration %v", extraction.AudioTrackEnd, f.fake.duration)
	}
	entries, err := os.ReadDir(extraction.FolderPath)
	if err != nil {
		t.Fatal(err)
	}
	foundMP3 := false
	for _, entry := range entries {
		if strings.HasSuffix(entry.Name(), ".mp3") {
			foundMP3 = true
			info, _ := entry.Info()
			if info.Size() == 0 {
				t.Fatal("mp3 is empty")
			}
		}
	}
	if !foundMP3 {
		t.Fatal("no mp3 in extraction folder")
	}
}

func TestConvertToASCIIImageSource(t *testing.T) {
	f := newFixture(t)
	pngPath := f.writePNG(t, t.TempDir(), "single.png")
	project, err := f.engine.CreateProject(f.context, "Still", []string{pngPath})
	if err != nil {
		t.Fatal(err)
	}
	sources, _ := f.engine.ProjectSources(f.context, project.ID)
	source := sources[0]

	_, err = f.engine.ConvertToASCII(f.context, studio.ConversionRequest{
		FilePath:     source.FilePath,
		Luminance:    128,
		FontRatio:    0.45,
		Columns:      20,
		ProjectID:    project.ID,
		SourceFileID: source.ID,
	})
	if err != nil {
		t.Fatal(err)
	}
	f.engine.Wait()

	conversions, _ := f.engine.ProjectConversions(f.context, project.ID)
	if len(conversions) != 1 || conversions[0].FrameCount != 1 {
		t.Fatalf("image conversion rows = %+v", conversions)
	}
	if _, err := os.Stat(filepath.Join(conversions[0].FolderPath, "single.txt")); err != nil {
		t.Fatalf("single text frame missing: %v", err)
	}
}

func TestConvertToASCIIMissingSource(t *testing.T) {
	f := newFixture(t)
	_, err := f.engine.ConvertToASCII(f.context, studio.ConversionRequest{
		FilePath:  filepath.Join(t.TempDir(), "nope.mp4"),
		ProjectID: "any",
	})
	if faults.Kind(err) != faults.ErrNotFound {
		t.Fatalf("err = %v, want not found", err)
	}
}

func TestCutVideoRecordsRow(t *testing.T) {
	f := newFixture(t)
	mkv := f.writeStub(t, t.TempDir(), "movie.mkv")
	project, err := f.engine.CreateProject(f.context, "Cuts", []string{mkv})
	if err != nil {
		t.Fatal(err)
	}
	sources, _ := f.engine.ProjectSources(f.context, project.ID)
	source := sources[0]

	cut, err := f.engine.CutVideo(f.context, source.FilePath, project.ID, source.ID, 2, 7.5)
	if err != nil {
		t.Fatalf("CutVideo: %v", err)
	}
	if cut.Duration != 5.5 {
		t.Fatalf("duration = %v, want end-start", cut.Duration)
	}
	if !strings.Contains(filepath.Base(cut.FilePath), "_cut_") {
		t.Fatalf("cut file name = %q", cut.FilePath)
	}
	if _, err := os.Stat(cut.FilePath); err != nil {
		t.Fatalf("cut file missing: %v", err)
	}

	progress := f.sink.OnChannel(events.ChannelCutProgress)
	if len(progress) != 2 {
		t.Fatalf("cut-progress events = %d, want start+completion", len(progress))
	}
	var first, last events.FileProgress
	if err := json.Unmarshal(progress[0].Payload, &first); err != nil {
		t.Fatal(err)
	}
	if err := json.Unmarshal(progress[1].Payload, &last); err != nil {
		t.Fatal(err)
	}
	if first.Percentage == nil || *first.Percentage != 0 {
		t.Fatalf("first cut event percentage = %v", first.Percentage)
	}
	if last.Percentage == nil || *last.Percentage != 100 {
		t.Fatalf("last cut event percentage = %v", last.Percentage)
	}
}

func TestCutVideoRejectsInvertedRange(t *testing.T) {
	f := newFixture(t)
	if _, err := f.engine.CutVideo(f.context, "in.mp4", "p", "s", 9, 3); faults.Kind(err) != faults.ErrInvalidInput {
		t.Fatalf("err = %v, want invalid input", err)
	}
}

func TestCutFramesSliceAndRenumber(t *testing.T) {
	f := newFixture(t)
	project, err := f.engine.CreateProject(f.context, "Slice", nil)
	if err != nil {
		t.Fatal(err)
	}
	source := testsupport.SeedSource(t, f.store, project, "clip.mp4", store.SourceVideo)

	framesRoot := filepath.Join(f.output, project.Path, "frames")
	folderPath := filepath.Join(framesRoot, "clip_ascii[ABCDEFGHIJ]")
	if err := os.MkdirAll(folderPath, 0o755); err != nil {
		t.Fatal(err)
	}
	for i := 1; i <= 10; i++ {
		body := fmt.Sprintf("frame body %d", i)
		if err := os.WriteFile(filepath.Join(folderPath, fmt.Sprintf("frame_%04d.txt", i)), []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	testsupport.SeedConversion(t, f.store, source, folderPath)

	status, err := f.engine.CutFrames(f.context, folderPath, 2, 5)
	if err != nil {
		t.Fatalf("CutFrames: %v", err)
	}
	if status == "" {
		t.Fatal("expected status string")
	}

	conversions, err := f.engine.ProjectConversions(f.context, project.ID)
	if err != nil {
		t.Fatal(err)
	}
	var sliced *store.Conversion
	for _, conversion := range conversions {
		if conversion.FolderPath != folderPath {
			sliced = conversion
		}
	}
	if sliced == nil {
		t.Fatal("slice conversion row missing")
	}
	if sliced.FrameCount != 4 {
		t.Fatalf("slice frame count = %d, want 4", sliced.FrameCount)
	}
	if sliced.CustomName != "Cut frames" {
		t.Fatalf("custom name = %q", sliced.CustomName)
	}
	if !strings.HasPrefix(sliced.FolderName, "clip_ascii[") {
		t.Fatalf("slice folder name = %q", sliced.FolderName)
	}

	for i := 1; i <= 4; i++ {
		target := filepath.Join(sliced.FolderPath, fmt.Sprintf("frame_%04d.txt", i))
		body, err := os.ReadFile(target)
		if err != nil {
			t.Fatalf("slice frame missing: %v", err)
		}
		want := fmt.Sprintf("frame body %d", i+1)
		if string(body) != want {
			t.Fatalf("frame %d content = %q, want %q", i, body, want)
		}
	}
	if _, err := os.Stat(filepath.Join(sliced.FolderPath, "frame_0005.txt")); err == nil {
		t.Fatal("slice contains extra frame")
	}
}

func TestCutFramesCustomNameSuffix(t *testing.T) {
	f := newFixture(t)
	project, err := f.engine.CreateProject(f.context, "Named", nil)
	if err != nil {
		t.Fatal(err)
	}
	source := testsupport.SeedSource(t, f.store, project, "x.mp4", store.SourceVideo)

	folderPath := filepath.Join(f.output, project.Path, "frames", "x_ascii[0123456789]")
	if err := os.MkdirAll(folderPath, 0o755); err != nil {
		t.Fatal(err)
	}
	for i := 1; i <= 3; i++ {
		if err := os.WriteFile(filepath.Join(folderPath, fmt.Sprintf("frame_%04d.txt", i)), []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	conversion := testsupport.SeedConversion(t, f.store, source, folderPath)
	if err := f.engine.UpdateConversionCustomName(f.context, conversion.ID, "My Take"); err != nil {
		t.Fatal(err)
	}

	if _, err := f.engine.CutFrames(f.context, folderPath, 1, 2); err != nil {
		t.Fatal(err)
	}
	conversions, _ := f.engine.ProjectConversions(f.context, project.ID)
	found := false
	for _, row := range conversions {
		if row.CustomName == "My Take (Cut)" {
			found = true
		}
	}
	if !found {
		t.Fatal("expected custom name with (Cut) suffix")
	}
}

func TestCutFramesEmptyRange(t *testing.T) {
	f := newFixture(t)
	if _, err := f.engine.CutFrames(f.context, t.TempDir(), 5, 2); faults.Kind(err) != faults.ErrInvalidInput {
		t.Fatalf("err = %v, want invalid input", err)
	}
}

func TestDeleteProjectCascadesAndRemovesDirectory(t *testing.T) {
	f := newFixture(t)
	mkv := f.writeStub(t, t.TempDir(), "full.mkv")
	project, err := f.engine.CreateProject(f.context, "Doomed", []string{mkv})
	if err != nil {
		t.Fatal(err)
	}
	sources, _ := f.engine.ProjectSources(f.context, project.ID)
	source := sources[0]

	if _, err := f.engine.ConvertToASCII(f.context, studio.ConversionRequest{
		FilePath: source.FilePath, Luminance: 128, FontRatio: 0.45, Columns: 20,
		ProjectID: project.ID, SourceFileID: source.ID, ExtractAudio: true,
	}); err != nil {
		t.Fatal(err)
	}
	f.engine.Wait()
	if _, err := f.engine.CutVideo(f.context, source.FilePath, project.ID, source.ID, 0, 2); err != nil {
		t.Fatal(err)
	}

	root := filepath.Join(f.output, project.Path)
	if err := f.engine.DeleteProject(f.context, project.ID); err != nil {
		t.Fatalf("DeleteProject: %v", err)
	}
	if _, err := f.engine.GetProject(f.context, project.ID); faults.Kind(err) != faults.ErrNotFound {
		t.Fatalf("GetProject after delete = %v, want not found", err)
	}
	for name, count := range map[string]int{
		"sources":     len(mustSources(t, f, project.ID)),
		"conversions": len(mustConversions(t, f, project.ID)),
		"cuts":        len(mustCuts(t, f, project.ID)),
		"audio":       len(mustAudio(t, f, project.ID)),
	} {
		if count != 0 {
			t.Fatalf("%s rows remain after delete", name)
		}
	}
	if _, err := os.Stat(root); err == nil {
		t.Fatal("project directory still exists")
	}
}

func mustSources(t *testing.T, f *fixture, id string) []*store.SourceFile {
	t.Helper()
	rows, err := f.engine.ProjectSources(f.context, id)
	if err != nil {
		t.Fatal(err)
	}
	return rows
}

func mustConversions(t *testing.T, f *fixture, id string) []*store.Conversion {
	t.Helper()
	rows, err := f.engine.ProjectConversions(f.context, id)
	if err != nil {
		t.Fatal(err)
	}
	return rows
}

func mustCuts(t *testing.T, f *fixture, id string) []*store.VideoCut {
	t.Helper()
	rows, err := f.engine.ProjectCuts(f.context, id)
	if err != nil {
		t.Fatal(err)
	}
	return rows
}

func mustAudio(t *testing.T, f *fixture, id string) []*store.AudioExtraction {
	t.Helper()
	rows, err := f.engine.ProjectAudioExtractions(f.context, id)
	if err != nil {
		t.Fatal(err)
	}
	return rows
}

func TestDeleteSourceRemovesFileAndRow(t *testing.T) {
	f := newFixture(t)
	pngPath := f.writePNG(t, t.TempDir(), "gone.png")
	project, err := f.engine.CreateProject(f.context, "Trim", []string{pngPath})
	if err != nil {
		t.Fatal(err)
	}
	sources, _ := f.engine.ProjectSources(f.context, project.ID)
	source := sources[0]

	if err := f.engine.DeleteSource(f.context, source.ID); err != nil {
		t.Fatalf("DeleteSource: %v", err)
	}
	if _, err := os.Stat(source.FilePath); err == nil {
		t.Fatal("source file still on disk")
	}
	if rows := mustSources(t, f, project.ID); len(rows) != 0 {
		t.Fatal("source row remains")
	}
}

func TestRenameProjectKeepsFolder(t *testing.T) {
	f := newFixture(t)
	project, err := f.engine.CreateProject(f.context, "Before", nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := f.engine.RenameProject(f.context, project.ID, "After"); err != nil {
		t.Fatal(err)
	}
	renamed, err := f.engine.GetProject(f.context, project.ID)
	if err != nil {
		t.Fatal(err)
	}
	if renamed.Name != "After" {
		t.Fatalf("name = %q", renamed.Name)
	}
	if renamed.Path != project.Path {
		t.Fatalf("path changed: %q -> %q", project.Path, renamed.Path)
	}
}
