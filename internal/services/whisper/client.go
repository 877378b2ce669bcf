package whisper

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

var commandContext = exec.CommandContext

const (
	// DefaultBinary is the transcriber executable, always resolved on PATH.
	DefaultBinary = "whisper-mps"
	// DefaultModel balances accuracy against load time for batch runs.
	DefaultModel = "large-v3"
)

// Option configures the CLI client.
type Option func(*CLI)

// WithBinary overrides the default binary name.
func WithBinary(binary string) Option {
	return func(c *CLI) {
		if binary != "" {
			c.binary = binary
		}
	}
}

// WithModel sets the model passed on every invocation.
func WithModel(model string) Option {
	return func(c *CLI) {
		if model != "" {
			c.model = model
		}
	}
}

// CLI wraps the whisper command-line transcriber.
type CLI struct {
	binary string
	model  string
}

// NewCLI constructs a CLI client using defaults.
func NewCLI(opts ...Option) *CLI {
	cli := &CLI{binary: DefaultBinary, model: DefaultModel}
	for _, opt := range opts {
		opt(cli)
	}
	return cli
}

// Binary returns the resolved executable name for logging and preflight.
func (c *CLI) Binary() string {
	return c.binary
}

// Model returns the configured model name for logging.
func (c *CLI) Model() string {
	return c.model
}

// Transcribe runs the transcriber over audioPath and asks it to write a text
// transcript to outputPath. Exit code zero with the output file in place is
// the success contract; the transcript content is never inspected here.
func (c *CLI) Transcribe(ctx context.Context, audioPath, outputPath string) error {
	if strings.TrimSpace(audioPath) == "" {
		return errors.New("audio path required")
	}
	if strings.TrimSpace(outputPath) == "" {
		return errors.New("output path required")
	}

	args := []string{
		"--file-name", audioPath,
		"--output-file-name", outputPath,
		"--model-name", c.model,
	}

	cmd := commandContext(ctx, c.binary, args...) //nolint:gosec
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("%s: %w: %s", c.binary, err, strings.TrimSpace(string(output)))
	}
	return nil
}
