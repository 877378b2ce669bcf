// Package fileutil provides filesystem helpers shared by the pipeline stages.
// Artifact presence on disk is the pipeline's only resumability ledger, so
// the existence predicates here define what "already done" means.
package fileutil

import (
	"fmt"
	"os"
)

// EnsureDir creates dir (and parents) when absent.
func EnsureDir(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create directory %q: %w", dir, err)
	}
	return nil
}

// NonEmptyFile reports whether path names an existing regular file with at
// least one byte. An interrupted subprocess can leave a zero-byte artifact
// behind; treating it as done would silently skip real work on re-runs.
func NonEmptyFile(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular() && info.Size() > 0
}
