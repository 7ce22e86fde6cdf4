package ingestion

import (
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"
	"strings"
)

// Format is the detected input format of a document.
type Format string

// Supported formats. Anything unrecognized is read as text.
const (
	FormatText     Format = "text"
	FormatMarkdown Format = "markdown"
	FormatHTML     Format = "html"
)

// Document is a loaded input ready for analysis.
type Document struct {
	Name   string `json:"name"`
	Format Format `json:"format"`
	Text   string `json:"text"`
	Hash   string `json:"hash"` // SHA256 hex digest of Text
}

// DetectFormat infers the format from the file extension.
func DetectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm":
		return FormatHTML
	case ".md", ".markdown":
		return FormatMarkdown
	default:
		return FormatText
	}
}

// LoadDocument reads path and converts it to clean text according to its format.
func LoadDocument(path string) (*Document, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &Error{Message: "file not found: " + path, Cause: err}
		}
		return nil, &Error{Message: "failed to read file: " + path, Cause: err}
	}
	return NewDocument(filepath.Base(path), DetectFormat(path), string(content))
}

// NewDocument converts raw content of the given format into a Document.
func NewDocument(name string, format Format, raw string) (*Document, error) {
	text := raw
	if format == FormatHTML {
		converted, err := HTMLToText(raw)
		if err != nil {
			return nil, err
		}
		text = converted
	} else {
		text = CleanText(raw)
	}

	return &Document{
		Name:   name,
		Format: format,
		Text:   text,
		Hash:   computeHash(text),
	}, nil
}

// computeHash computes SHA256 hash of content and returns hex string
func computeHash(content string) string {
	hash := sha256.Sum256([]byte(content))
	return hex.EncodeToString(hash[:])
}
