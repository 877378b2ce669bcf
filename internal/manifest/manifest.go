package manifest

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// Item is one unit of work: a video to download and transcribe. Items are
// immutable once read; their 1-based position in the manifest is the index
// used in user-facing messages.
type Item struct {
	URL   string `json:"url"`
	Title string `json:"title"`
}

// Skip reports whether the item cannot be processed. A manifest entry whose
// url field is absent, empty, or JSON null is skipped with a warning rather
// than counted as a failure.
func (i Item) Skip() bool {
	return strings.TrimSpace(i.URL) == ""
}

// Load reads a JSON manifest: an ordered array of objects with url and title
// string fields. Null url values decode to empty strings and stay in the
// list so indices remain stable.
func Load(path string) ([]Item, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}

	var raw []struct {
		URL   *string `json:"url"`
		Title string  `json:"title"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse manifest %s: %w", path, err)
	}

	items := make([]Item, 0, len(raw))
	for _, entry := range raw {
		item := Item{Title: entry.Title}
		if entry.URL != nil {
			item.URL = strings.TrimSpace(*entry.URL)
		}
		items = append(items, item)
	}
	return items, nil
}

// EffectiveRange clamps a requested [start, end] selection to valid 1-based
// indices. end <= 0 means "through the last item". The returned range is
// inclusive; start > stop means nothing to process.
func EffectiveRange(start, end, total int) (int, int) {
	if start < 1 {
		start = 1
	}
	if end <= 0 || end > total {
		end = total
	}
	return start, end
}
