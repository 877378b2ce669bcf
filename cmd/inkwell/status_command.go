package main

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"inkwell/internal/fileutil"
	"inkwell/internal/manifest"
	"inkwell/internal/textutil"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	var (
		audioDir  string
		outputDir string
	)

	cmd := &cobra.Command{
		Use:   "status [manifest]",
		Short: "Report artifact coverage for a manifest",
		Long: strings.TrimSpace(`
Status inspects the artifact directories without running any tools and
reports, per manifest entry, whether its audio and transcript files exist.
Zero-byte files count as missing.`),
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

			items, err := manifest.Load(inputPath)
			if err != nil {
				return err
			}

			rows := make([][]string, 0, len(items))
			var downloaded, transcribed, pending int
			for i, item := range items {
				index := strconv.Itoa(i + 1)
				if item.Skip() {
					rows = append(rows, []string{index, item.Title, "-", "-"})
					continue
				}
				stem := textutil.SanitizeFileName(item.Title)
				hasAudio := fileutil.NonEmptyFile(filepath.Join(resolvedAudioDir, stem+".mp3"))
				hasTranscript := fileutil.NonEmptyFile(filepath.Join(resolvedOutputDir, stem+".txt"))
				if hasAudio {
					downloaded++
				}
				if hasTranscript {
					transcribed++
				}
				if !hasAudio || !hasTranscript {
					pending++
				}
				rows = append(rows, []string{index, item.Title, yesNo(hasAudio), yesNo(hasTranscript)})
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderTable([]string{"#", "Title", "Audio", "Transcript"}, rows, 0))
			fmt.Fprintf(out, "%d items: %d downloaded, %d transcribed, %d pending\n",
				len(items), downloaded, transcribed, pending)
			return nil
		},
	}

	cmd.Flags().StringVarP(&audioDir, "audio-dir", "a", "", "Directory holding downloaded audio (defaults to configured audio_dir)")
	cmd.Flags().StringVarP(&outputDir, "output-dir", "o", "", "Directory holding transcripts (defaults to configured transcript_dir)")

	return cmd
}
