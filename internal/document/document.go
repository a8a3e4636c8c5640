package document

import (
	"path/filepath"
	"strings"
	"time"
)

// Engine identifies which extraction path produced a text blob.
type Engine string

const (
	// EngineNativeText means the text came straight from the PDF content stream.
	EngineNativeText Engine = "native-text"
	// EngineOCR means the text was recognized from rasterized pixels.
	EngineOCR Engine = "ocr"
)

// RawDocument is an uploaded receipt or invoice as handed over by the upload
// layer. It is input only and never mutated by the pipeline.
type RawDocument struct {
	Data      []byte
	MediaType string
	Filename  string
}

// IsPDF reports whether the document should be treated as a PDF, either by
// declared media type or by file extension.
func (d RawDocument) IsPDF() bool {
	if strings.EqualFold(strings.TrimSpace(d.MediaType), "application/pdf") {
		return true
	}
	return strings.EqualFold(filepath.Ext(d.Filename), ".pdf")
}

// mediaTypes maps the file extensions the pipeline understands to their
// declared media types.
var mediaTypes = map[string]string{
	".pdf":  "application/pdf",
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".gif":  "image/gif",
	".webp": "image/webp",
	".heic": "image/heic",
	".heif": "image/heif",
}

// MediaTypeFor infers the media type from a file extension. Unknown
// extensions return an empty type; the pipeline then relies on content
// sniffing during decode.
func MediaTypeFor(path string) string {
	return mediaTypes[strings.ToLower(filepath.Ext(path))]
}

// IsSupportedFile reports whether a file extension belongs to a format the
// pipeline can process.
func IsSupportedFile(path string) bool {
	_, ok := mediaTypes[strings.ToLower(filepath.Ext(path))]
	return ok
}

// ExtractedText is the aggregate output of text extraction and the sole input
// to field extraction. Text is never empty; an empty extraction is reported as
// ErrNoTextExtracted instead of an ExtractedText with an empty string.
type ExtractedText struct {
	Text       string
	Engine     Engine
	Confidence *float64 // 0-100, nil when no page reported one
}

// ExtractedFields is the pipeline's final structured record. Immutable once
// constructed; the persistence layer stores it as-is.
type ExtractedFields struct {
	AmountCents int64     `json:"amount_cents"`
	OccurredAt  time.Time `json:"occurred_at"` // always UTC
	Title       string    `json:"title"`       // <=120 runes

	// Provenance, persisted alongside the record for later review.
	RawText    string   `json:"raw_text"`
	Engine     Engine   `json:"ocr_engine"`
	Confidence *float64 `json:"ocr_confidence,omitempty"`
}
