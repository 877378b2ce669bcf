package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"inkwell/internal/preflight"
)

func newToolsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "tools",
		Short: "Check external tools and artifact directories",
		Long: strings.TrimSpace(`
Tools verifies that the external binaries a batch run shells out to are
resolvable and that the artifact directories are writable. It is the
fast way to diagnose a failing run without touching any videos.`),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if err := cfg.EnsureDirectories(); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)

			for _, line := range renderSectionHeader("External tools", colorize) {
				fmt.Fprintln(out, line)
			}
			allOK := true
			for _, status := range preflight.CheckTools(cfg) {
				kind := statusOK
				detail := status.Path
				if !status.Available {
					kind = statusError
					detail = status.Detail
					allOK = false
				}
				fmt.Fprintln(out, renderStatusLine(status.Name, kind, detail, colorize))
			}

			fmt.Fprintln(out)
			for _, line := range renderSectionHeader("Directories", colorize) {
				fmt.Fprintln(out, line)
			}
			checks := []preflight.Result{
				preflight.CheckDirectoryAccess("Audio dir", cfg.Paths.AudioDir),
				preflight.CheckDirectoryAccess("Transcript dir", cfg.Paths.TranscriptDir),
			}
			for _, result := range checks {
				kind := statusOK
				if !result.Passed {
					kind = statusError
					allOK = false
				}
				fmt.Fprintln(out, renderStatusLine(result.Name, kind, result.Detail, colorize))
			}

			fmt.Fprintln(out)
			if !allOK {
				return fmt.Errorf("one or more checks failed")
			}
			fmt.Fprintln(out, "All checks passed")
			return nil
		},
	}
}
