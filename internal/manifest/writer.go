package manifest

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"inkwell/internal/services"
)

// Format selects a manifest output encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
	FormatText Format = "txt"
)

// ParseFormat validates a user-supplied format name.
func ParseFormat(value string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(value))) {
	case FormatJSON, "":
		return FormatJSON, nil
	case FormatCSV:
		return FormatCSV, nil
	case FormatText:
		return FormatText, nil
	default:
		return "", fmt.Errorf("%w: manifest format: unsupported value %q", services.ErrValidation, value)
	}
}

// Ext returns the file extension for the format, without the dot.
func (f Format) Ext() string {
	return string(f)
}

// Write encodes items to path in the given format.
func Write(path string, items []Item, format Format) error {
	switch format {
	case FormatJSON:
		return writeJSON(path, items)
	case FormatCSV:
		return writeCSV(path, items)
	case FormatText:
		return writeText(path, items)
	default:
		return fmt.Errorf("%w: manifest format: unsupported value %q", services.ErrValidation, format)
	}
}

func writeJSON(path string, items []Item) error {
	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("encode manifest: %w", err)
	}
	data = append(data, '\n')
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}
	return nil
}

func writeCSV(path string, items []Item) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write([]string{"url", "title"}); err != nil {
		return fmt.Errorf("write manifest header: %w", err)
	}
	for _, item := range items {
		if err := writer.Write([]string{item.URL, item.Title}); err != nil {
			return fmt.Errorf("write manifest row: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("flush manifest: %w", err)
	}
	return file.Close()
}

func writeText(path string, items []Item) error {
	var b strings.Builder
	for _, item := range items {
		b.WriteString(item.Title)
		b.WriteByte('\n')
		b.WriteString(item.URL)
		b.WriteString("\n\n")
	}
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}
	return nil
}
