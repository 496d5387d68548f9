package clip

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/aokihara/cliptrim/internal/model"
)

// Formatter defines interface for output formatting
type Formatter interface {
	Format(record *model.VideoRecord) (string, error)
	FormatList(records []*model.VideoRecord) (string, error)
}

// NewFormatter returns the formatter for the given format name
func NewFormatter(format string) (Formatter, error) {
	switch format {
	case "text", "":
		return &TextFormatter{}, nil
	case "json":
		return &JSONFormatter{}, nil
	default:
		return nil, fmt.Errorf("unsupported format: %s (expected text or json)", format)
	}
}

// TextFormatter formats output as plain text
type TextFormatter struct{}

// Format formats one record as plain text
func (f *TextFormatter) Format(record *model.VideoRecord) (string, error) {
	var output strings.Builder

	output.WriteString(fmt.Sprintf("ID: %s\n", record.ID))
	output.WriteString(fmt.Sprintf("Title: %s\n", record.Title))
	if record.Description != "" {
		output.WriteString(fmt.Sprintf("Description: %s\n", record.Description))
	}
	output.WriteString(fmt.Sprintf("Duration: %.1fs\n", record.DurationSeconds))
	output.WriteString(fmt.Sprintf("Created: %s\n", record.CreatedAt.Format(time.RFC3339)))
	output.WriteString(fmt.Sprintf("File: %s\n", record.Locator))
	if record.ThumbnailLocator != "" {
		output.WriteString(fmt.Sprintf("Thumbnail: %s\n", record.ThumbnailLocator))
	}

	return output.String(), nil
}

// FormatList formats the library as plain text, one block per clip
func (f *TextFormatter) FormatList(records []*model.VideoRecord) (string, error) {
	var output strings.Builder

	output.WriteString(fmt.Sprintf("%d clip(s):\n\n", len(records)))
	for _, record := range records {
		output.WriteString(fmt.Sprintf("ID: %s\n", record.ID))
		output.WriteString(fmt.Sprintf("Title: %s\n", record.Title))
		output.WriteString(fmt.Sprintf("Duration: %.1fs\n", record.DurationSeconds))
		output.WriteString(fmt.Sprintf("Created: %s\n", record.CreatedAt.Format("2006-01-02 15:04:05")))
		if record.Description != "" {
			output.WriteString(fmt.Sprintf("Description: %s\n", truncateString(record.Description, 100)))
		}
		output.WriteString("---\n")
	}

	return output.String(), nil
}

// JSONFormatter formats output as JSON
type JSONFormatter struct{}

// Format formats one record as JSON
func (f *JSONFormatter) Format(record *model.VideoRecord) (string, error) {
	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal clip: %w", err)
	}
	return string(data) + "\n", nil
}

// FormatList formats the library as JSON
func (f *JSONFormatter) FormatList(records []*model.VideoRecord) (string, error) {
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal clips: %w", err)
	}
	return string(data) + "\n", nil
}

// truncateString truncates a string to the specified length
func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
