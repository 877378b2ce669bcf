package main

import (
	"bytes"
	"strings"
	"testing"
)

func TestRenderStatusLine(t *testing.T) {
	line := renderStatusLine("Downloader", statusOK, "/usr/local/bin/yt-dlp", false)
	if !strings.Contains(line, "Downloader:") {
		t.Fatalf("expected label in line: %q", line)
	}
	if !strings.Contains(line, "[OK] /usr/local/bin/yt-dlp") {
		t.Fatalf("expected verdict and detail in line: %q", line)
	}
	if strings.Contains(line, "\x1b[") {
		t.Fatalf("uncolored line must not carry ANSI codes: %q", line)
	}

	line = renderStatusLine("Audio dir", statusError, "does not exist", true)
	if !strings.HasPrefix(line, ansiRed) || !strings.HasSuffix(line, ansiReset) {
		t.Fatalf("expected red coloring for failed check: %q", line)
	}
	if !strings.Contains(line, "[ERROR] does not exist") {
		t.Fatalf("expected error verdict in line: %q", line)
	}
}

func TestRenderSectionHeader(t *testing.T) {
	lines := renderSectionHeader("External tools", false)
	if len(lines) != 2 {
		t.Fatalf("expected header and rule, got %v", lines)
	}
	if lines[0] != "== External tools ==" {
		t.Fatalf("unexpected header line: %q", lines[0])
	}
	if len(lines[1]) != len(lines[0]) {
		t.Fatalf("rule length must match the header, got %q under %q", lines[1], lines[0])
	}
}

func TestShouldColorizeNonFileWriter(t *testing.T) {
	if shouldColorize(&bytes.Buffer{}) {
		t.Fatal("a buffer is not a terminal")
	}
}

func TestRenderTablePadsShortRows(t *testing.T) {
	out := renderTable(
		[]string{"#", "Title", "Audio"},
		[][]string{{"1", "Only Title"}},
		0,
	)
	if !strings.Contains(out, "Only Title") {
		t.Fatalf("expected row content in table:\n%s", out)
	}
	if strings.Contains(out, "<nil>") {
		t.Fatalf("missing cells must render empty, not nil:\n%s", out)
	}

	if renderTable(nil, nil) != "" {
		t.Fatal("a table without headers renders nothing")
	}
}
