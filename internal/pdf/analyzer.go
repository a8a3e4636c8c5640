// Package pdf handles the PDF half of text extraction: structural analysis,
// native content-stream text extraction, and page rasterization for the OCR
// fallback path.
package pdf

import (
	"fmt"

	"github.com/pdfcpu/pdfcpu/pkg/api"
)

// Info describes the structural properties of a PDF that the extraction
// coordinator needs before choosing a strategy.
type Info struct {
	PageCount int
}

// Analyze validates the PDF file and reads its page count. Invalid or
// unreadable files fail here so the rasterizer never runs on garbage input.
func Analyze(filename string) (*Info, error) {
	if err := api.ValidateFile(filename, nil); err != nil {
		return nil, fmt.Errorf("validating pdf %q: %w", filename, err)
	}

	count, err := api.PageCountFile(filename)
	if err != nil {
		return nil, fmt.Errorf("counting pdf pages in %q: %w", filename, err)
	}
	if count < 1 {
		return nil, fmt.Errorf("pdf %q has no pages", filename)
	}

	return &Info{PageCount: count}, nil
}
