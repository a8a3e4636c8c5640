package ocr

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/otiai10/gosseract/v2"
)

// Worker exit codes, mirrored by the CLI subcommand.
const (
	ExitOK              = 0
	ExitOCRFail         = 1
	ExitFileNotFound    = 2
	ExitTessdataMissing = 3
)

// RunWorker is the worker-process entry point: recognize one image with
// tesseract and emit a single JSON payload on out. The returned value is the
// process exit code. All failures are still reported as a payload so the
// adapter never has to guess from a bare exit code.
func RunWorker(imagePath, tessdataDir, language string, out io.Writer) int {
	if language == "" {
		language = "por"
	}

	if imagePath == "" || !fileExists(imagePath) {
		emit(out, Payload{OK: false, Error: CodeFileNotFound, Message: imagePath})
		return ExitFileNotFound
	}
	trained := filepath.Join(tessdataDir, language+".traineddata")
	if tessdataDir == "" || !fileExists(trained) {
		emit(out, Payload{OK: false, Error: CodeTessdataMissing, Message: trained})
		return ExitTessdataMissing
	}

	result, err := recognizeFile(imagePath, tessdataDir, language)
	if err != nil {
		emit(out, Payload{OK: false, Error: CodeOCRFail, Message: err.Error()})
		return ExitOCRFail
	}

	emit(out, Payload{OK: true, Text: result.Text, AvgConfidence: result.Confidence})
	return ExitOK
}

func recognizeFile(imagePath, tessdataDir, language string) (PageResult, error) {
	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetTessdataPrefix(tessdataDir); err != nil {
		return PageResult{}, fmt.Errorf("set tessdata prefix: %w", err)
	}
	if err := client.SetLanguage(language); err != nil {
		return PageResult{}, fmt.Errorf("set language: %w", err)
	}
	if err := client.SetImage(imagePath); err != nil {
		return PageResult{}, fmt.Errorf("set image: %w", err)
	}

	// Tuning carried over from production receipt scanning: stable layout for
	// numbers and no glyphs that OCR noise tends to fabricate.
	vars := map[string]string{
		"preserve_interword_spaces": "1",
		"user_defined_dpi":          "300",
		"tessedit_char_blacklist":   `|=/\_~`,
	}
	for k, v := range vars {
		if err := client.SetVariable(gosseract.SettableVariable(k), v); err != nil {
			return PageResult{}, fmt.Errorf("set variable %s: %w", k, err)
		}
	}

	text, err := client.Text()
	if err != nil {
		return PageResult{}, fmt.Errorf("recognize: %w", err)
	}

	return PageResult{
		Text:       strings.TrimSpace(text),
		Confidence: wordConfidence(client),
	}, nil
}

// wordConfidence averages per-word confidences (0-100). Nil when tesseract
// found no words, so empty pages do not drag the document mean down.
func wordConfidence(client *gosseract.Client) *float64 {
	boxes, err := client.GetBoundingBoxes(gosseract.RIL_WORD)
	if err != nil || len(boxes) == 0 {
		return nil
	}
	var sum float64
	for _, b := range boxes {
		sum += b.Confidence
	}
	avg := sum / float64(len(boxes))
	return &avg
}

func emit(out io.Writer, p Payload) {
	enc := json.NewEncoder(out)
	if err := enc.Encode(p); err != nil {
		fmt.Fprintln(os.Stderr, "ocr worker: encoding payload:", err)
	}
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
