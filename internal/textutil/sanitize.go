package textutil

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// MaxFileNameLength caps sanitized filename stems. Long video titles routinely
// exceed filesystem component limits once an extension is appended.
const MaxFileNameLength = 200

// fileNameReplacer replaces filesystem-unsafe characters with safe alternatives.
var fileNameReplacer = strings.NewReplacer(
	"/", "-",
	"\\", "-",
	":", "-",
	"*", "-",
	"?", "",
	"\"", "",
	"<", "",
	">", "",
	"|", "",
)

// SanitizeFileName converts a title into a filesystem-safe filename stem.
// The input is NFC-normalized, unsafe characters are replaced or removed,
// runs of whitespace collapse to single spaces, and the result is truncated
// to MaxFileNameLength runes. Returns "untitled" when nothing survives.
//
// The mapping is not injective: distinct titles can sanitize to the same
// stem. Callers that derive artifact paths from the result should detect
// collisions themselves.
func SanitizeFileName(name string) string {
	name = norm.NFC.String(strings.TrimSpace(name))
	if name == "" {
		return "untitled"
	}
	name = fileNameReplacer.Replace(name)
	name = strings.Join(strings.Fields(name), " ")
	name = strings.TrimSpace(strings.Trim(name, "."))
	if name == "" {
		return "untitled"
	}
	if runes := []rune(name); len(runes) > MaxFileNameLength {
		name = strings.TrimSpace(string(runes[:MaxFileNameLength]))
	}
	return name
}
