package comparison

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mwiater/promptlab/internal/util"
)

// FileExporter appends reports to a JSON array file and/or a Markdown file.
// Either path may be empty.
type FileExporter struct {
	JSONPath     string
	MarkdownPath string
}

// NewFileExporter returns nil when both paths are empty.
func NewFileExporter(jsonPath, markdownPath string) *FileExporter {
	jsonPath = strings.TrimSpace(jsonPath)
	markdownPath = strings.TrimSpace(markdownPath)
	if jsonPath == "" && markdownPath == "" {
		return nil
	}
	return &FileExporter{JSONPath: jsonPath, MarkdownPath: markdownPath}
}

// Export appends report to the configured files.
func (e *FileExporter) Export(report *Report) error {
	if e.JSONPath != "" {
		if err := appendJSON(e.JSONPath, report); err != nil {
			return fmt.Errorf("export json: %w", err)
		}
	}
	if e.MarkdownPath != "" {
		if err := appendMarkdown(e.MarkdownPath, report); err != nil {
			return fmt.Errorf("export markdown: %w", err)
		}
	}
	return nil
}

func appendJSON(path string, report *Report) error {
	var entries []json.RawMessage
	existing, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return err
	case len(strings.TrimSpace(string(existing))) > 0:
		if err := json.Unmarshal(existing, &entries); err != nil {
			return fmt.Errorf("%s is not a JSON array: %w", path, err)
		}
	}

	entry, err := json.Marshal(report)
	if err != nil {
		return err
	}
	entries = append(entries, entry)
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	if err := ensureDir(path); err != nil {
		return err
	}
	return util.WriteFile(path, append(data, '\n'))
}

func appendMarkdown(path string, report *Report) error {
	existing, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	var sb strings.Builder
	sb.Write(existing)
	if len(existing) > 0 {
		sb.WriteString("\n---\n\n")
	}
	sb.WriteString(report.Markdown())
	sb.WriteString("\n")
	if err := ensureDir(path); err != nil {
		return err
	}
	return util.WriteFile(path, []byte(sb.String()))
}

func ensureDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "" || dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}
