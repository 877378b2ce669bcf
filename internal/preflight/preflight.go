package preflight

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"

	"inkwell/internal/config"
	"inkwell/internal/deps"
	"inkwell/internal/services/whisper"
	"inkwell/internal/services/ytdlp"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// CheckDirectoryAccess verifies that the directory exists and is
// readable/writable.
func CheckDirectoryAccess(name, path string) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
}

// ToolRequirements lists the external tools a batch run needs. Both the
// processor preconditions and the tools command use this so the requirements
// live in one place.
func ToolRequirements(cfg *config.Config) []deps.Requirement {
	downloader := cfg.Downloader.BinaryPath
	if downloader == "" {
		downloader = ytdlp.DefaultBinary
	}
	return []deps.Requirement{
		{
			Name:        "Downloader",
			Command:     downloader,
			Description: "Required to fetch audio (yt-dlp)",
		},
		{
			Name:        "Transcriber",
			Command:     whisper.DefaultBinary,
			Description: "Required to produce transcripts (whisper-mps)",
		},
	}
}

// CheckTools evaluates the availability of all required external tools.
func CheckTools(cfg *config.Config) []deps.Status {
	return deps.CheckBinaries(ToolRequirements(cfg))
}
