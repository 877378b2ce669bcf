package ytdlp

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
)

var commandContext = exec.CommandContext

// DefaultBinary is the audio fetcher executable resolved on PATH when no
// override is configured.
const DefaultBinary = "yt-dlp"

const watchURLPrefix = "https://www.youtube.com/watch?v="

// Entry is one playlist or channel entry returned by flat enumeration.
type Entry struct {
	URL   string
	Title string
}

// ListOptions controls playlist enumeration.
type ListOptions struct {
	// CookiesFile is passed through for age-restricted or private content.
	CookiesFile string
	// MaxEntries limits enumeration; zero means no limit.
	MaxEntries int
}

// Option configures the CLI client.
type Option func(*CLI)

// WithBinary overrides the default binary name or path.
func WithBinary(binary string) Option {
	return func(c *CLI) {
		if binary != "" {
			c.binary = binary
		}
	}
}

// WithCookiesFile sets the cookies file passed when cookie-based
// authentication is requested.
func WithCookiesFile(path string) Option {
	return func(c *CLI) {
		c.cookiesFile = path
	}
}

// CLI wraps the yt-dlp command-line downloader.
type CLI struct {
	binary      string
	cookiesFile string
}

// NewCLI constructs a CLI client using defaults.
func NewCLI(opts ...Option) *CLI {
	cli := &CLI{binary: DefaultBinary}
	for _, opt := range opts {
		opt(cli)
	}
	return cli
}

// Binary returns the resolved executable name for logging and preflight.
func (c *CLI) Binary() string {
	return c.binary
}

// DownloadAudio extracts the audio track of url to outputPath. The output
// format follows the outputPath extension. A nonzero exit from the tool is
// the only failure signal; no output parsing happens here.
func (c *CLI) DownloadAudio(ctx context.Context, url, outputPath string, useCookies bool) error {
	if strings.TrimSpace(url) == "" {
		return errors.New("url required")
	}
	if strings.TrimSpace(outputPath) == "" {
		return errors.New("output path required")
	}

	args := []string{
		"-x",
		"--audio-format", audioFormatFor(outputPath),
		"--no-playlist",
		"--no-warnings",
		"-o", outputPath,
	}
	if useCookies && c.cookiesFile != "" {
		args = append(args, "--cookies", c.cookiesFile)
	}
	args = append(args, url)

	cmd := commandContext(ctx, c.binary, args...) //nolint:gosec
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("%s: %w: %s", c.binary, err, strings.TrimSpace(string(output)))
	}
	return nil
}

// ListEntries enumerates a channel or playlist without downloading anything.
// Each line of output is "id|title"; lines without a separator are ignored.
func (c *CLI) ListEntries(ctx context.Context, url string, opts ListOptions) ([]Entry, error) {
	if strings.TrimSpace(url) == "" {
		return nil, errors.New("url required")
	}

	args := []string{
		"--flat-playlist",
		"--print", "%(id)s|%(title)s",
		"--no-warnings",
	}
	if opts.CookiesFile != "" {
		args = append(args, "--cookies", opts.CookiesFile)
	}
	if opts.MaxEntries > 0 {
		args = append(args, "--playlist-end", strconv.Itoa(opts.MaxEntries))
	}
	args = append(args, url)

	cmd := commandContext(ctx, c.binary, args...) //nolint:gosec
	out, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return nil, fmt.Errorf("%s: %w: %s", c.binary, err, strings.TrimSpace(string(exitErr.Stderr)))
		}
		return nil, fmt.Errorf("%s: %w", c.binary, err)
	}

	var entries []Entry
	for _, line := range strings.SplitAfter(string(out), "\n") {
		id, title, found := strings.Cut(strings.TrimRight(line, "\n"), "|")
		if !found || strings.TrimSpace(id) == "" {
			continue
		}
		entries = append(entries, Entry{
			URL:   watchURLPrefix + strings.TrimSpace(id),
			Title: strings.TrimSpace(title),
		})
	}
	return entries, nil
}

// audioFormatFor derives the tool's audio format from the target extension.
func audioFormatFor(outputPath string) string {
	ext := strings.TrimPrefix(filepath.Ext(outputPath), ".")
	if ext == "" {
		return "mp3"
	}
	return ext
}
