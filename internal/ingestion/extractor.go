// Package ingestion turns uploaded documents and job posting URLs into plain text.
package ingestion

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"path/filepath"
	"strings"
)

var (
	// ErrUnsupportedType is returned when no extractor handles a document's kind.
	ErrUnsupportedType = errors.New("file type not supported")
	// ErrNoText is returned when a document decodes but yields no text.
	ErrNoText = errors.New("no text could be extracted")
)

// MaxDocumentBytes caps how much of an uploaded document is read.
const MaxDocumentBytes = 10 << 20

// Kind identifies a document format.
type Kind string

const (
	KindUnknown   Kind = ""
	KindPlainText Kind = "text"
	KindDocx      Kind = "docx"
	KindPdf       Kind = "pdf"
	KindHTML      Kind = "html"
)

// TextExtractor decodes one document format into text.
type TextExtractor interface {
	Extract(r io.Reader) (string, error)
}

// TextExtractorFunc adapts a function to TextExtractor.
type TextExtractorFunc func(r io.Reader) (string, error)

// Extract calls f(r).
func (f TextExtractorFunc) Extract(r io.Reader) (string, error) {
	return f(r)
}

// extractors is the dispatch table from kind to decoder.
var extractors = map[Kind]TextExtractor{
	KindPlainText: TextExtractorFunc(extractPlainText),
	KindDocx:      TextExtractorFunc(extractDocx),
	KindPdf:       TextExtractorFunc(extractPdf),
	KindHTML:      TextExtractorFunc(extractHTML),
}

var mimeKinds = map[string]Kind{
	"text/plain":      KindPlainText,
	"text/markdown":   KindPlainText,
	"text/html":       KindHTML,
	"application/pdf": KindPdf,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": KindDocx,
}

var extensionKinds = map[string]Kind{
	".txt":      KindPlainText,
	".text":     KindPlainText,
	".md":       KindPlainText,
	".markdown": KindPlainText,
	".docx":     KindDocx,
	".pdf":      KindPdf,
	".html":     KindHTML,
	".htm":      KindHTML,
}

// KindFromMIME resolves a Content-Type value, ignoring parameters.
func KindFromMIME(contentType string) (Kind, error) {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		mediaType = strings.TrimSpace(strings.ToLower(contentType))
	}
	if kind, ok := mimeKinds[mediaType]; ok {
		return kind, nil
	}
	return KindUnknown, fmt.Errorf("%w: %q", ErrUnsupportedType, contentType)
}

// KindFromFilename resolves a kind from a file extension.
func KindFromFilename(name string) (Kind, error) {
	ext := strings.ToLower(filepath.Ext(name))
	if kind, ok := extensionKinds[ext]; ok {
		return kind, nil
	}
	return KindUnknown, fmt.Errorf("%w: %q", ErrUnsupportedType, name)
}

// DetectKind prefers the filename extension and falls back to the MIME type.
func DetectKind(filename, contentType string) (Kind, error) {
	if kind, err := KindFromFilename(filename); err == nil {
		return kind, nil
	}
	if contentType != "" {
		return KindFromMIME(contentType)
	}
	return KindUnknown, fmt.Errorf("%w: %q", ErrUnsupportedType, filename)
}

// Extract decodes r as kind and returns the cleaned text. Documents that
// decode to nothing return ErrNoText; decoder failures wrap
// ErrContentExtractionFailed.
func Extract(kind Kind, r io.Reader) (string, error) {
	extractor, ok := extractors[kind]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedType, kind)
	}

	text, err := extractor.Extract(io.LimitReader(r, MaxDocumentBytes))
	if err != nil {
		return "", fmt.Errorf("%w: %s: %w", ErrContentExtractionFailed, kind, err)
	}

	text = CleanText(text)
	if strings.TrimSpace(text) == "" {
		return "", ErrNoText
	}
	return text, nil
}
