package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"inkwell/internal/deps"
	"inkwell/internal/manifest"
	"inkwell/internal/services/ytdlp"
)

func newFetchCommand(ctx *commandContext) *cobra.Command {
	var (
		outputPath  string
		formatName  string
		cookiesFile string
		maxEntries  int
		showCount   int
	)

	cmd := &cobra.Command{
		Use:   "fetch <channel-or-playlist-url>",
		Short: "Build a manifest from a channel or playlist",
		Long: strings.TrimSpace(`
Fetch lists every video on a YouTube channel or playlist and writes the
result as a manifest for the process command. JSON output is what process
consumes; csv and txt are for spreadsheets and quick reading.`),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			format, err := manifest.ParseFormat(formatName)
			if err != nil {
				return err
			}

			target := strings.TrimSpace(outputPath)
			if target == "" {
				target = "youtube_videos." + format.Ext()
			}

			cookies := strings.TrimSpace(cookiesFile)
			if cookies == "" {
				cookies = cfg.Downloader.CookiesFile
			}

			binary, err := deps.Resolve(ytdlp.DefaultBinary, cfg.Downloader.BinaryPath)
			if err != nil {
				return err
			}

			client := ytdlp.NewCLI(ytdlp.WithBinary(binary))
			entries, err := client.ListEntries(cmd.Context(), args[0], ytdlp.ListOptions{
				CookiesFile: cookies,
				MaxEntries:  maxEntries,
			})
			if err != nil {
				return err
			}

			items := make([]manifest.Item, 0, len(entries))
			for _, entry := range entries {
				items = append(items, manifest.Item{URL: entry.URL, Title: entry.Title})
			}

			if err := manifest.Write(target, items, format); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Wrote %d videos to %s\n", len(items), target)

			if showCount > 0 && len(items) > 0 {
				preview := items
				if len(preview) > showCount {
					preview = preview[:showCount]
				}
				rows := make([][]string, 0, len(preview))
				for i, item := range preview {
					rows = append(rows, []string{strconv.Itoa(i + 1), item.Title, item.URL})
				}
				fmt.Fprintln(out, renderTable([]string{"#", "Title", "URL"}, rows, 0))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file (defaults to youtube_videos.<format>)")
	cmd.Flags().StringVar(&formatName, "format", "json", "Output format: json, csv, or txt")
	cmd.Flags().StringVar(&cookiesFile, "cookies-file", "", "Cookies file for listing private or membership videos")
	cmd.Flags().IntVar(&maxEntries, "max", 0, "Maximum number of videos to list (0 means all)")
	cmd.Flags().IntVar(&showCount, "show", 0, "Preview the first N entries after writing")

	return cmd
}
