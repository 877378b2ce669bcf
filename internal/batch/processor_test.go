package batch

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"inkwell/internal/logging"
	"inkwell/internal/services"
)

// fakeDownloader records calls and writes an audio artifact unless told to fail.
type fakeDownloader struct {
	calls    []string
	cookies  []bool
	failURLs map[string]bool
}

func (d *fakeDownloader) DownloadAudio(_ context.Context, url, outputPath string, useCookies bool) error {
	d.calls = append(d.calls, url)
	d.cookies = append(d.cookies, useCookies)
	if d.failURLs[url] {
		return errors.New("exit status 1")
	}
	return os.WriteFile(outputPath, []byte("audio"), 0o644)
}

// fakeTranscriber records calls and writes a transcript artifact unless told to fail.
type fakeTranscriber struct {
	calls     []string
	failPaths map[string]bool
}

func (t *fakeTranscriber) Transcribe(_ context.Context, audioPath, outputPath string) error {
	t.calls = append(t.calls, audioPath)
	if t.failPaths[filepath.Base(audioPath)] {
		return errors.New("exit status 1")
	}
	return os.WriteFile(outputPath, []byte("transcript"), 0o644)
}

type testEnv struct {
	cfg         Config
	downloader  *fakeDownloader
	transcriber *fakeTranscriber
}

func newTestEnv(t *testing.T, manifestJSON string) *testEnv {
	t.Helper()
	base := t.TempDir()
	input := filepath.Join(base, "videos.json")
	if err := os.WriteFile(input, []byte(manifestJSON), 0o644); err != nil {
		t.Fatalf("write manifest: %v", err)
	}
	return &testEnv{
		cfg: Config{
			InputPath: input,
			OutputDir: filepath.Join(base, "transcripts"),
			AudioDir:  filepath.Join(base, "audio"),
		},
		downloader:  &fakeDownloader{failURLs: map[string]bool{}},
		transcriber: &fakeTranscriber{failPaths: map[string]bool{}},
	}
}

func (e *testEnv) run(t *testing.T) Summary {
	t.Helper()
	p := New(e.cfg, e.downloader, e.transcriber, logging.NewNop())
	summary, err := p.Run(context.Background())
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	return summary
}

const threeItemManifest = `[
	{"url": "u1", "title": "A"},
	{"url": null, "title": "B"},
	{"url": "u3", "title": "C"}
]`

func TestRunProcessesAllStages(t *testing.T) {
	env := newTestEnv(t, threeItemManifest)
	summary := env.run(t)

	if summary.Succeeded != 2 || summary.Failed != 0 || summary.Skipped != 1 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
	if summary.Total != 3 {
		t.Fatalf("expected total 3, got %d", summary.Total)
	}
	if len(env.downloader.calls) != 2 {
		t.Fatalf("expected 2 downloads, got %v", env.downloader.calls)
	}
	if len(env.transcriber.calls) != 2 {
		t.Fatalf("expected 2 transcriptions, got %v", env.transcriber.calls)
	}

	// The null-url item produced no artifacts under either name.
	for _, stem := range []string{"A", "C"} {
		audio := filepath.Join(env.cfg.AudioDir, stem+".mp3")
		transcript := filepath.Join(env.cfg.OutputDir, stem+".txt")
		if _, err := os.Stat(audio); err != nil {
			t.Fatalf("missing audio artifact for %s: %v", stem, err)
		}
		if _, err := os.Stat(transcript); err != nil {
			t.Fatalf("missing transcript artifact for %s: %v", stem, err)
		}
	}
	if _, err := os.Stat(filepath.Join(env.cfg.AudioDir, "B.mp3")); !os.IsNotExist(err) {
		t.Fatal("skipped item must not produce artifacts")
	}
}

func TestRunIsIdempotent(t *testing.T) {
	env := newTestEnv(t, threeItemManifest)
	first := env.run(t)
	if first.Failed != 0 {
		t.Fatalf("unexpected failures on first run: %+v", first)
	}

	// Second run with untouched artifacts: same counts, no tool invocations.
	env.downloader.calls = nil
	env.transcriber.calls = nil
	second := env.run(t)

	if second.Failed != 0 {
		t.Fatalf("expected zero failures on re-run, got %+v", second)
	}
	if second.Succeeded != first.Succeeded {
		t.Fatalf("expected same success count, got %d then %d", first.Succeeded, second.Succeeded)
	}
	if len(env.downloader.calls) != 0 {
		t.Fatalf("re-run must not download again, got %v", env.downloader.calls)
	}
	if len(env.transcriber.calls) != 0 {
		t.Fatalf("re-run must not transcribe again, got %v", env.transcriber.calls)
	}
}

func TestRunDownloadFailureAbandonsItem(t *testing.T) {
	env := newTestEnv(t, threeItemManifest)
	env.downloader.failURLs["u1"] = true

	summary := env.run(t)
	if summary.Failed != 1 || summary.Succeeded != 1 || summary.Skipped != 1 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
	// The failed item never reaches the transcriber.
	for _, call := range env.transcriber.calls {
		if filepath.Base(call) == "A.mp3" {
			t.Fatal("abandoned item must not be transcribed")
		}
	}
}

func TestRunSkipDownloadWithoutAudioFails(t *testing.T) {
	env := newTestEnv(t, `[{"url": "u1", "title": "A"}]`)
	env.cfg.SkipDownload = true

	summary := env.run(t)
	if summary.Failed != 1 || summary.Succeeded != 0 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
	if len(env.downloader.calls) != 0 {
		t.Fatal("download stage must be skipped entirely")
	}
	if len(env.transcriber.calls) != 0 {
		t.Fatal("missing audio must not invoke the transcriber")
	}
}

func TestRunSkipDownloadWithPreexistingAudio(t *testing.T) {
	env := newTestEnv(t, `[{"url": "u1", "title": "A"}]`)
	env.cfg.SkipDownload = true
	if err := os.MkdirAll(env.cfg.AudioDir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(env.cfg.AudioDir, "A.mp3"), []byte("audio"), 0o644); err != nil {
		t.Fatalf("write audio: %v", err)
	}

	summary := env.run(t)
	if summary.Succeeded != 1 || summary.Failed != 0 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
	if len(env.transcriber.calls) != 1 {
		t.Fatalf("expected one transcription, got %v", env.transcriber.calls)
	}
}

func TestRunSkipTranscribeCountsDownloadSuccess(t *testing.T) {
	env := newTestEnv(t, threeItemManifest)
	env.cfg.SkipTranscribe = true

	summary := env.run(t)
	if summary.Succeeded != 2 || summary.Failed != 0 || summary.Skipped != 1 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
	if len(env.transcriber.calls) != 0 {
		t.Fatal("transcribe stage must be skipped entirely")
	}
}

func TestRunRangeSelection(t *testing.T) {
	env := newTestEnv(t, `[
		{"url": "u1", "title": "A"},
		{"url": "u2", "title": "B"},
		{"url": "u3", "title": "C"},
		{"url": "u4", "title": "D"},
		{"url": "u5", "title": "E"}
	]`)
	env.cfg.Start = 2
	env.cfg.End = 2

	summary := env.run(t)
	if summary.Succeeded != 1 || summary.Failed != 0 || summary.Skipped != 0 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
	if len(env.downloader.calls) != 1 || env.downloader.calls[0] != "u2" {
		t.Fatalf("expected exactly item 2 to download, got %v", env.downloader.calls)
	}
}

func TestRunEndBeyondTotalClamps(t *testing.T) {
	env := newTestEnv(t, `[{"url": "u1", "title": "A"}, {"url": "u2", "title": "B"}]`)
	env.cfg.End = 99

	summary := env.run(t)
	if summary.Succeeded != 2 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
}

func TestRunPassesCookieRequest(t *testing.T) {
	env := newTestEnv(t, `[{"url": "u1", "title": "A"}]`)
	env.cfg.UseCookies = true

	env.run(t)
	if len(env.downloader.cookies) != 1 || !env.downloader.cookies[0] {
		t.Fatalf("expected cookie-based auth to be requested, got %v", env.downloader.cookies)
	}
}

func TestRunTranscribeFailureCounts(t *testing.T) {
	env := newTestEnv(t, `[{"url": "u1", "title": "A"}]`)
	env.transcriber.failPaths["A.mp3"] = true

	summary := env.run(t)
	if summary.Failed != 1 || summary.Succeeded != 0 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
}

func TestRunMissingManifestIsFatal(t *testing.T) {
	env := newTestEnv(t, `[]`)
	env.cfg.InputPath = filepath.Join(t.TempDir(), "absent.json")

	p := New(env.cfg, env.downloader, env.transcriber, logging.NewNop())
	_, err := p.Run(context.Background())
	if err == nil {
		t.Fatal("expected fatal error for missing manifest")
	}
	if !services.IsFatal(err) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}

func TestRunCollisionOverwrites(t *testing.T) {
	// Two titles that sanitize to the same stem: last writer wins, both count
	// as processed.
	env := newTestEnv(t, `[
		{"url": "u1", "title": "part 1/2"},
		{"url": "u2", "title": "part 1\\2"}
	]`)

	summary := env.run(t)
	if summary.Succeeded != 2 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
	entries, err := os.ReadDir(env.cfg.AudioDir)
	if err != nil {
		t.Fatalf("read audio dir: %v", err)
	}
	audioCount := 0
	for _, entry := range entries {
		if filepath.Ext(entry.Name()) == ".mp3" {
			audioCount++
		}
	}
	if audioCount != 1 {
		t.Fatalf("expected a single colliding audio artifact, got %d", audioCount)
	}
}

func TestRunSecondRunSeesCollisionArtifact(t *testing.T) {
	env := newTestEnv(t, `[
		{"url": "u1", "title": "same"},
		{"url": "u2", "title": "same"}
	]`)

	first := env.run(t)
	if first.Succeeded != 2 {
		t.Fatalf("unexpected first summary: %+v", first)
	}
	// The first item's artifact already exists by the time item 2 runs, so
	// item 2 skips its download stage entirely.
	if len(env.downloader.calls) != 1 {
		t.Fatalf("expected colliding item to reuse the artifact, got %d downloads", len(env.downloader.calls))
	}
}

func TestRunLogsCarryContextFields(t *testing.T) {
	env := newTestEnv(t, `[{"url": "u1", "title": "A"}]`)
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Level: "info", Format: "console", Writer: &buf})
	if err != nil {
		t.Fatalf("init logger: %v", err)
	}

	p := New(env.cfg, env.downloader, env.transcriber, logger)
	summary, err := p.Run(context.Background())
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	out := buf.String()
	for _, want := range []string{
		"run_id=" + summary.RunID,
		"item=1",
		"stage=download",
		"stage=transcribe",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %s in log output:\n%s", want, out)
		}
	}
}

func TestRunRedoesZeroByteArtifacts(t *testing.T) {
	env := newTestEnv(t, `[{"url": "u1", "title": "A"}]`)
	for _, dir := range []string{env.cfg.AudioDir, env.cfg.OutputDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
	}
	// A killed subprocess can leave empty artifacts behind. They must not
	// count as done.
	if err := os.WriteFile(filepath.Join(env.cfg.AudioDir, "A.mp3"), nil, 0o644); err != nil {
		t.Fatalf("write audio: %v", err)
	}
	if err := os.WriteFile(filepath.Join(env.cfg.OutputDir, "A.txt"), nil, 0o644); err != nil {
		t.Fatalf("write transcript: %v", err)
	}

	summary := env.run(t)
	if summary.Succeeded != 1 || summary.Failed != 0 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
	if len(env.downloader.calls) != 1 {
		t.Fatalf("zero-byte audio must be re-downloaded, got %v", env.downloader.calls)
	}
	if len(env.transcriber.calls) != 1 {
		t.Fatalf("zero-byte transcript must be re-transcribed, got %v", env.transcriber.calls)
	}
}

func TestRunContextCancellation(t *testing.T) {
	env := newTestEnv(t, threeItemManifest)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := New(env.cfg, env.downloader, env.transcriber, logging.NewNop())
	_, err := p.Run(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if len(env.downloader.calls) != 0 {
		t.Fatal("cancelled run must not invoke tools")
	}
}

func TestRunEmptyManifest(t *testing.T) {
	env := newTestEnv(t, `[]`)
	summary := env.run(t)
	if summary.Total != 0 || summary.Succeeded != 0 || summary.Failed != 0 || summary.Skipped != 0 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
}

func TestRunAssignsRunID(t *testing.T) {
	env := newTestEnv(t, `[]`)
	summary := env.run(t)
	if summary.RunID == "" {
		t.Fatal("expected run id to be assigned")
	}
	if summary.Elapsed < 0 {
		t.Fatalf("elapsed must not be negative, got %v", summary.Elapsed)
	}
}
