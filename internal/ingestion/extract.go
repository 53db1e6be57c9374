// Package ingestion turns uploaded groepsplan files into cleaned markdown text and prefilled upload fields.
package ingestion

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Format is the detected type of an uploaded file.
type Format string

// Supported formats
const (
	FormatMarkdown Format = "markdown"
	FormatText     Format = "text"
	FormatHTML     Format = "html"
	FormatXLSX     Format = "xlsx"
)

var formatsByExtension = map[string]Format{
	".md":       FormatMarkdown,
	".markdown": FormatMarkdown,
	".txt":      FormatText,
	".html":     FormatHTML,
	".htm":      FormatHTML,
	".xlsx":     FormatXLSX,
}

func supportedList() string {
	exts := make([]string, 0, len(formatsByExtension))
	for ext := range formatsByExtension {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return strings.Join(exts, ", ")
}

// DetectFormat returns the format for a filename, or an *UnsupportedFormatError.
func DetectFormat(filename string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	format, ok := formatsByExtension[ext]
	if !ok {
		return "", &UnsupportedFormatError{Filename: filename, Extension: ext}
	}
	return format, nil
}

// Extraction is the result of reading an uploaded document.
type Extraction struct {
	Title   string  `json:"title,omitempty"`
	Text    string  `json:"text"`
	Source  Source  `json:"source"`
	Prefill Prefill `json:"prefill"`
}

// Extract reads an uploaded file. The format is chosen by the filename extension.
func Extract(filename string, data []byte) (*Extraction, error) {
	format, err := DetectFormat(filename)
	if err != nil {
		return nil, err
	}

	var title, raw string
	switch format {
	case FormatMarkdown, FormatText:
		raw = string(data)
	case FormatHTML:
		title, raw, err = htmlToMarkdown(data)
	case FormatXLSX:
		raw, err = xlsxToMarkdown(data)
	}
	if err != nil {
		return nil, err
	}

	text := CleanText(raw)
	if text == "" {
		return nil, ErrEmptyDocument
	}

	return &Extraction{
		Title:   title,
		Text:    text,
		Source:  newSource(filename, format, data),
		Prefill: BuildPrefill(text),
	}, nil
}

// ExtractFile reads and extracts a file from disk.
func ExtractFile(path string) (*Extraction, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("file not found: %w", err)
		}
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return Extract(filepath.Base(path), data)
}
