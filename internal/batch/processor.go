package batch

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"inkwell/internal/fileutil"
	"inkwell/internal/logging"
	"inkwell/internal/manifest"
	"inkwell/internal/services"
	"inkwell/internal/textutil"
)

// audioExt is the extension of downloaded audio artifacts.
const audioExt = ".mp3"

// lockFileName guards the artifact directories against concurrent batch runs.
const lockFileName = ".inkwell.lock"

// Config is the immutable run configuration, built once from flags and the
// config file at process start.
type Config struct {
	InputPath      string
	UseCookies     bool
	OutputDir      string // transcript artifacts
	AudioDir       string // audio artifacts
	SkipDownload   bool
	SkipTranscribe bool
	Start          int
	End            int
}

// Summary reports per-run outcome counts. Artifact files on disk are the only
// other state a run leaves behind.
type Summary struct {
	RunID     string
	Total     int
	Succeeded int
	Failed    int
	Skipped   int
	AudioDir  string
	OutputDir string
	Elapsed   time.Duration
}

// Downloader fetches the audio track of a URL to a target path.
type Downloader interface {
	DownloadAudio(ctx context.Context, url, outputPath string, useCookies bool) error
}

// Transcriber produces a text transcript of an audio file at a target path.
type Transcriber interface {
	Transcribe(ctx context.Context, audioPath, outputPath string) error
}

// Processor drives the sequential download/transcribe loop over a manifest.
type Processor struct {
	cfg         Config
	downloader  Downloader
	transcriber Transcriber
	logger      *slog.Logger
}

// New constructs a Processor. A nil logger falls back to the no-op logger.
func New(cfg Config, downloader Downloader, transcriber Transcriber, logger *slog.Logger) *Processor {
	return &Processor{
		cfg:         cfg,
		downloader:  downloader,
		transcriber: transcriber,
		logger:      logging.WithComponent(logger, "batch"),
	}
}

// Run processes every work item in the effective range, one at a time. Stage
// failures are counted and contained; only precondition problems return an
// error, and they do so before any item is touched.
//
// Artifact existence is the resumability ledger: a pre-existing audio file
// skips the download, a pre-existing transcript counts as success without
// invoking the transcriber. Re-running an interrupted batch is therefore
// cheap. No retries happen within a run.
func (p *Processor) Run(ctx context.Context) (Summary, error) {
	started := time.Now()
	summary := Summary{
		RunID:     uuid.NewString(),
		AudioDir:  p.cfg.AudioDir,
		OutputDir: p.cfg.OutputDir,
	}

	items, err := manifest.Load(p.cfg.InputPath)
	if err != nil {
		return summary, services.Wrap(services.ErrConfiguration, "preflight", "manifest", "", err)
	}
	summary.Total = len(items)

	if !p.cfg.SkipDownload && p.downloader == nil {
		return summary, services.Wrap(services.ErrConfiguration, "preflight", "downloader", "client required", nil)
	}
	if !p.cfg.SkipTranscribe && p.transcriber == nil {
		return summary, services.Wrap(services.ErrConfiguration, "preflight", "transcriber", "client required", nil)
	}

	for _, dir := range []string{p.cfg.AudioDir, p.cfg.OutputDir} {
		if err := fileutil.EnsureDir(dir); err != nil {
			return summary, services.Wrap(services.ErrConfiguration, "preflight", "directories", "", err)
		}
	}

	// One active batch per artifact tree. Two concurrent runs would race on
	// the same artifact paths.
	lock := flock.New(filepath.Join(p.cfg.AudioDir, lockFileName))
	locked, err := lock.TryLock()
	if err != nil {
		return summary, services.Wrap(services.ErrConfiguration, "preflight", "lock", "", err)
	}
	if !locked {
		return summary, services.Wrap(services.ErrConfiguration, "preflight", "lock", "another batch run is already active for this audio directory", nil)
	}
	defer func() {
		if unlockErr := lock.Unlock(); unlockErr != nil {
			p.logger.Warn("failed to release run lock", logging.Error(unlockErr))
		}
	}()

	start, stop := manifest.EffectiveRange(p.cfg.Start, p.cfg.End, len(items))

	ctx = services.WithRunID(ctx, summary.RunID)
	logger := logging.WithContext(ctx, p.logger)
	logger.Info("batch run starting",
		logging.String("input", p.cfg.InputPath),
		logging.Int("total", len(items)),
		logging.Int("start", start),
		logging.Int("end", stop),
	)

	// Sanitization is not injective: remember which item produced each stem
	// so a collision names both offenders.
	seen := make(map[string]int)

	for index := start; index <= stop; index++ {
		select {
		case <-ctx.Done():
			summary.Elapsed = time.Since(started)
			return summary, ctx.Err()
		default:
		}

		p.processItem(services.WithItemIndex(ctx, index), items[index-1], index, seen, &summary)
	}

	summary.Elapsed = time.Since(started)
	logger.Info("batch run finished",
		logging.Int("succeeded", summary.Succeeded),
		logging.Int("failed", summary.Failed),
		logging.Int("skipped", summary.Skipped),
		logging.Duration("elapsed", summary.Elapsed),
	)
	return summary, nil
}

func (p *Processor) processItem(ctx context.Context, item manifest.Item, index int, seen map[string]int, summary *Summary) {
	logger := logging.WithContext(ctx, p.logger)

	if item.Skip() {
		logger.Warn("manifest entry has no url; skipping", logging.String("title", item.Title))
		summary.Skipped++
		return
	}

	stem := textutil.SanitizeFileName(item.Title)
	if prev, ok := seen[stem]; ok {
		logger.Warn("sanitized title collides with an earlier item; artifacts will be overwritten",
			logging.String("stem", stem),
			logging.Int("earlier_item", prev),
		)
	} else {
		seen[stem] = index
	}

	audioPath := filepath.Join(p.cfg.AudioDir, stem+audioExt)
	transcriptPath := filepath.Join(p.cfg.OutputDir, stem+".txt")
	logger.Info("processing item", logging.String("title", item.Title), logging.String("url", item.URL))

	if !p.cfg.SkipDownload {
		if err := p.downloadStage(ctx, item.URL, audioPath); err != nil {
			logger.Error("download failed; item abandoned", logging.Error(err))
			summary.Failed++
			return
		}
	}

	if p.cfg.SkipTranscribe {
		// Nothing left that can fail for this item.
		summary.Succeeded++
		return
	}

	if !fileutil.NonEmptyFile(audioPath) {
		logger.Error("audio artifact missing; cannot transcribe",
			logging.String("audio", audioPath),
			logging.Bool("skip_download", p.cfg.SkipDownload),
		)
		summary.Failed++
		return
	}

	if fileutil.NonEmptyFile(transcriptPath) {
		logger.Info("transcript already exists; skipping transcription", logging.String("transcript", transcriptPath))
		summary.Succeeded++
		return
	}

	if err := p.transcribeStage(ctx, audioPath, transcriptPath); err != nil {
		logger.Error("transcription failed", logging.Error(err))
		summary.Failed++
		return
	}
	summary.Succeeded++
}

func (p *Processor) downloadStage(ctx context.Context, url, audioPath string) error {
	ctx = services.WithStage(ctx, "download")
	logger := logging.WithContext(ctx, p.logger)

	if fileutil.NonEmptyFile(audioPath) {
		logger.Info("audio already exists; skipping download", logging.String("audio", audioPath))
		return nil
	}

	if err := p.downloader.DownloadAudio(ctx, url, audioPath, p.cfg.UseCookies); err != nil {
		return services.Wrap(services.ErrExternalTool, "download", "", fmt.Sprintf("url %s", url), err)
	}
	logger.Info("audio downloaded", logging.String("audio", audioPath))
	return nil
}

func (p *Processor) transcribeStage(ctx context.Context, audioPath, transcriptPath string) error {
	ctx = services.WithStage(ctx, "transcribe")
	logger := logging.WithContext(ctx, p.logger)

	if err := p.transcriber.Transcribe(ctx, audioPath, transcriptPath); err != nil {
		return services.Wrap(services.ErrExternalTool, "transcribe", "", "", err)
	}
	logger.Info("transcript written", logging.String("transcript", transcriptPath))
	return nil
}
