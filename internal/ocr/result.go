// Package ocr runs optical character recognition out-of-process. The adapter
// side spawns a worker subprocess under a hard timeout and speaks a one-shot
// JSON protocol over the worker's stdout; the worker side wraps tesseract.
// Keeping recognition in a separate process isolates the host from native
// library crashes and memory spikes.
package ocr

// Payload is the single JSON object a worker emits on stdout.
type Payload struct {
	OK            bool     `json:"ok"`
	Text          string   `json:"text,omitempty"`
	AvgConfidence *float64 `json:"avg_confidence"`
	Error         string   `json:"error,omitempty"`
	Message       string   `json:"message,omitempty"`
}

// Worker error codes carried in Payload.Error.
const (
	CodeFileNotFound   = "FILE_NOT_FOUND"
	CodeTessdataMissing = "TESSDATA_MISSING"
	CodeOCRFail        = "OCR_FAIL"
)

// PageResult is the recognized text of one image or page. Confidence is the
// mean word confidence on a 0-100 scale, nil when the engine reported none.
type PageResult struct {
	Text       string
	Confidence *float64
}
