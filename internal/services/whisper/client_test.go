package whisper

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
)

func TestNewCLIDefaults(t *testing.T) {
	cli := NewCLI()
	if cli.Binary() != DefaultBinary {
		t.Fatalf("unexpected default binary: %q", cli.Binary())
	}
	if cli.Model() != DefaultModel {
		t.Fatalf("unexpected default model: %q", cli.Model())
	}
}

func TestNewCLIOptions(t *testing.T) {
	cli := NewCLI(WithBinary("/opt/whisper"), WithModel("base"))
	if cli.binary != "/opt/whisper" {
		t.Fatalf("expected binary override, got %q", cli.binary)
	}
	if cli.model != "base" {
		t.Fatalf("expected model override, got %q", cli.model)
	}
}

func TestTranscribeRequiresPaths(t *testing.T) {
	cli := NewCLI()
	if err := cli.Transcribe(context.Background(), "", "/tmp/out.txt"); err == nil {
		t.Fatal("expected error when audio path is empty")
	}
	if err := cli.Transcribe(context.Background(), "/tmp/in.mp3", ""); err == nil {
		t.Fatal("expected error when output path is empty")
	}
}

func TestTranscribeArgs(t *testing.T) {
	capturedArgs := setHelperCommand(t, "success")

	cli := NewCLI(WithModel("large-v3"))
	dir := t.TempDir()
	audio := filepath.Join(dir, "Episode 1.mp3")
	out := filepath.Join(dir, "Episode 1.txt")
	if err := cli.Transcribe(context.Background(), audio, out); err != nil {
		t.Fatalf("Transcribe returned error: %v", err)
	}

	args := *capturedArgs
	assertFlagValue(t, args, "--file-name", audio)
	assertFlagValue(t, args, "--output-file-name", out)
	assertFlagValue(t, args, "--model-name", "large-v3")
}

func TestTranscribeFailure(t *testing.T) {
	setHelperCommand(t, "failure")

	cli := NewCLI()
	if err := cli.Transcribe(context.Background(), "/tmp/in.mp3", "/tmp/out.txt"); err == nil {
		t.Fatal("expected transcription failure error")
	}
}

func setHelperCommand(t *testing.T, mode string) *[]string {
	t.Helper()
	var captured []string
	original := commandContext
	commandContext = func(ctx context.Context, name string, args ...string) *exec.Cmd {
		captured = append([]string(nil), args...)
		cmd := exec.CommandContext(ctx, os.Args[0], "-test.run=TestHelperProcess")
		cmd.Env = append(os.Environ(), "GO_WANT_HELPER_PROCESS=1", fmt.Sprintf("WHISPER_HELPER_MODE=%s", mode))
		return cmd
	}
	t.Cleanup(func() {
		commandContext = original
	})
	return &captured
}

func TestHelperProcess(t *testing.T) {
	if os.Getenv("GO_WANT_HELPER_PROCESS") != "1" {
		return
	}

	switch os.Getenv("WHISPER_HELPER_MODE") {
	case "failure":
		fmt.Fprintln(os.Stderr, "model load failed")
		os.Exit(1)
	default:
		os.Exit(0)
	}
}

func assertFlagValue(t *testing.T, args []string, flag, want string) {
	t.Helper()
	for i, arg := range args {
		if arg == flag {
			if i+1 >= len(args) {
				t.Fatalf("%s flag present without accompanying value", flag)
			}
			if args[i+1] != want {
				t.Fatalf("expected %s value %q, got %q", flag, want, args[i+1])
			}
			return
		}
	}
	t.Fatalf("expected %s flag, got args %v", flag, args)
}
