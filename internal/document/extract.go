// Package document turns uploaded study material into the concatenated
// text the quiz generator consumes.
package document

import (
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"studyquiz/internal/domain"
)

// Source is one uploaded piece of study material after extraction.
type Source struct {
	Name string
	Text string
}

// Extractor turns an uploaded file into plain text. Rich formats (PDF
// and friends) plug in behind this interface; the pipeline downstream
// only ever sees the combined text.
type Extractor interface {
	Supports(filename string) bool
	Extract(filename string, data []byte) (string, error)
}

// PlainTextExtractor handles .txt and .md uploads.
type PlainTextExtractor struct{}

func (PlainTextExtractor) Supports(filename string) bool {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".txt", ".md", ".markdown":
		return true
	}
	return false
}

func (PlainTextExtractor) Extract(filename string, data []byte) (string, error) {
	if !utf8.Valid(data) {
		return "", domain.NewInvalidInputError(fmt.Sprintf("%s is not valid UTF-8 text", filename))
	}
	return string(data), nil
}

const sourceSeparator = "\n\n---\n\n"

// Combine concatenates extracted sources, each prefixed by a header
// naming its origin, joined by a separator.
func Combine(sources []Source) string {
	parts := make([]string, 0, len(sources))
	for _, src := range sources {
		parts = append(parts, fmt.Sprintf("=== Source: %s ===\n\n%s", src.Name, strings.TrimSpace(src.Text)))
	}
	return strings.Join(parts, sourceSeparator)
}

// File is a raw upload before extraction.
type File struct {
	Name string
	Data []byte
}

// ExtractAll runs each file through the first extractor that supports it
// and combines the results, preserving upload order. An unsupported file
// is an input error, not a transport failure.
func ExtractAll(extractors []Extractor, files []File) (string, error) {
	sources := make([]Source, 0, len(files))
	for _, file := range files {
		extracted := false
		for _, ex := range extractors {
			if !ex.Supports(file.Name) {
				continue
			}
			text, err := ex.Extract(file.Name, file.Data)
			if err != nil {
				return "", err
			}
			sources = append(sources, Source{Name: file.Name, Text: text})
			extracted = true
			break
		}
		if !extracted {
			return "", domain.NewInvalidInputError(fmt.Sprintf("unsupported file type: %s", file.Name))
		}
	}
	return Combine(sources), nil
}
