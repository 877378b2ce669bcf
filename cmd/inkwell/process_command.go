package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"inkwell/internal/batch"
	"inkwell/internal/deps"
	"inkwell/internal/services/whisper"
	"inkwell/internal/services/ytdlp"
)

const defaultManifestName = "youtube_videos.json"

func newProcessCommand(ctx *commandContext) *cobra.Command {
	var (
		useCookies     bool
		outputDir      string
		audioDir       string
		model          string
		skipDownload   bool
		skipTranscribe bool
		startIndex     int
		endIndex       int
	)

	cmd := &cobra.Command{
		Use:   "process [manifest]",
		Short: "Download and transcribe every video listed in a manifest",
		Long: strings.TrimSpace(`
Process reads a JSON manifest of videos and runs each entry through the
download and transcription stages. Items whose artifacts already exist on
disk are skipped, so an interrupted run can be resumed by invoking the
same command again.

The run exits zero when the batch completes, even if individual items
failed; per-item results are reported in the summary. A non-zero exit
means the run itself could not start.`),
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			inputPath := defaultManifestName
			if len(args) == 1 && strings.TrimSpace(args[0]) != "" {
				inputPath = args[0]
			}

			resolvedAudioDir := cfg.Paths.AudioDir
			if strings.TrimSpace(audioDir) != "" {
				resolvedAudioDir = audioDir
			}
			resolvedOutputDir := cfg.Paths.TranscriptDir
			if strings.TrimSpace(outputDir) != "" {
				resolvedOutputDir = outputDir
			}

			logger, err := ctx.newLogger(cfg)
			if err != nil {
				return fmt.Errorf("init logger: %w", err)
			}

			downloaderBin, err := deps.Resolve(ytdlp.DefaultBinary, cfg.Downloader.BinaryPath)
			if err != nil {
				return err
			}
			transcriberBin, err := deps.Resolve(whisper.DefaultBinary, "")
			if err != nil {
				return err
			}

			resolvedModel := cfg.Transcriber.Model
			if strings.TrimSpace(model) != "" {
				resolvedModel = model
			}

			downloader := ytdlp.NewCLI(
				ytdlp.WithBinary(downloaderBin),
				ytdlp.WithCookiesFile(cfg.Downloader.CookiesFile),
			)
			transcriber := whisper.NewCLI(
				whisper.WithBinary(transcriberBin),
				whisper.WithModel(resolvedModel),
			)

			processor := batch.New(batch.Config{
				InputPath:      inputPath,
				UseCookies:     useCookies,
				OutputDir:      resolvedOutputDir,
				AudioDir:       resolvedAudioDir,
				SkipDownload:   skipDownload,
				SkipTranscribe: skipTranscribe,
				Start:          startIndex,
				End:            endIndex,
			}, downloader, transcriber, logger)

			summary, err := processor.Run(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderTable(
				[]string{"Total", "Succeeded", "Failed", "Skipped", "Elapsed"},
				[][]string{{
					strconv.Itoa(summary.Total),
					strconv.Itoa(summary.Succeeded),
					strconv.Itoa(summary.Failed),
					strconv.Itoa(summary.Skipped),
					summary.Elapsed.Round(time.Millisecond).String(),
				}},
				0, 1, 2, 3, 4,
			))
			fmt.Fprintf(out, "Audio: %s\n", summary.AudioDir)
			fmt.Fprintf(out, "Transcripts: %s\n", summary.OutputDir)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&useCookies, "cookies", "c", false, "Pass the configured cookies file to the downloader")
	cmd.Flags().StringVarP(&outputDir, "output-dir", "o", "", "Directory for transcript files (defaults to configured transcript_dir)")
	cmd.Flags().StringVarP(&audioDir, "audio-dir", "a", "", "Directory for downloaded audio (defaults to configured audio_dir)")
	cmd.Flags().StringVarP(&model, "model", "m", "", "Transcription model name (defaults to configured model)")
	cmd.Flags().BoolVar(&skipDownload, "skip-download", false, "Skip the download stage; transcribe existing audio only")
	cmd.Flags().BoolVar(&skipTranscribe, "skip-transcribe", false, "Skip the transcription stage; download audio only")
	cmd.Flags().IntVar(&startIndex, "start", 1, "First item to process (1-based, inclusive)")
	cmd.Flags().IntVar(&endIndex, "end", 0, "Last item to process (1-based, inclusive; 0 means the final item)")

	return cmd
}
