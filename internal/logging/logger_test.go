package logging

import (
	"bytes"
	"strings"
	"testing"
)

func TestNewConsoleFormat(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Level: "info", Format: "console", Writer: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	logger = WithComponent(logger, "batch")
	logger.Info("download complete", String("title", "Some Video"), Int("item", 3))

	line := buf.String()
	if !strings.Contains(line, "INFO batch: download complete") {
		t.Fatalf("unexpected console line: %q", line)
	}
	if !strings.Contains(line, `title="Some Video"`) {
		t.Fatalf("expected quoted attr in line: %q", line)
	}
	if !strings.Contains(line, "item=3") {
		t.Fatalf("expected item attr in line: %q", line)
	}
}

func TestNewConsoleLevelFilter(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Level: "warn", Format: "console", Writer: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	logger.Info("hidden")
	logger.Warn("visible")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("info line should be filtered at warn level: %q", out)
	}
	if !strings.Contains(out, "visible") {
		t.Fatalf("warn line missing: %q", out)
	}
}

func TestNewJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Level: "info", Format: "json", Writer: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	logger.Info("transcribed", String("model", "large-v3"))

	line := buf.String()
	for _, want := range []string{`"msg":"transcribed"`, `"level":"info"`, `"model":"large-v3"`} {
		if !strings.Contains(line, want) {
			t.Fatalf("expected %s in json line: %q", want, line)
		}
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := New(Options{Format: "yaml"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestNewNopDiscards(t *testing.T) {
	logger := NewNop()
	logger.Error("should not panic", Error(nil))
}
