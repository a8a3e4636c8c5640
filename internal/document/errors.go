package document

import (
	"errors"
	"fmt"
)

// Pipeline error taxonomy. Field extractors never fail; these cover the text
// extraction half of the pipeline.
var (
	// ErrNoTextExtracted means neither native extraction nor OCR yielded
	// non-empty text. Terminal for the pipeline; maps to "unprocessable input".
	ErrNoTextExtracted = errors.New("no text could be extracted from document")

	// ErrOCRTimeout means the OCR subprocess exceeded its time budget and was
	// killed. A hard failure, never retried.
	ErrOCRTimeout = errors.New("ocr subprocess timed out")

	// ErrRasterizationFailed means the PDF could not be converted to page
	// images. Treated as an OCR failure for the document.
	ErrRasterizationFailed = errors.New("pdf rasterization failed")
)

// OCRError describes a failed OCR worker invocation: a non-zero exit, an
// ok:false payload, or a payload that could not be parsed at all.
type OCRError struct {
	Code    string // worker-reported error code, e.g. OCR_FAIL, TESSDATA_MISSING
	Message string
	Err     error
}

func (e *OCRError) Error() string {
	switch {
	case e.Code != "" && e.Message != "":
		return fmt.Sprintf("ocr worker failed: %s: %s", e.Code, e.Message)
	case e.Code != "":
		return fmt.Sprintf("ocr worker failed: %s", e.Code)
	case e.Err != nil:
		return fmt.Sprintf("ocr worker failed: %v", e.Err)
	default:
		return "ocr worker failed"
	}
}

func (e *OCRError) Unwrap() error { return e.Err }
