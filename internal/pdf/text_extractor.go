package pdf

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	dslipak "github.com/dslipak/pdf"
	ledongthuc "github.com/ledongthuc/pdf"
)

// ErrNoNativeText means the PDF parsed fine but carries no extractable text
// in its content streams (a scanned document, typically).
var ErrNoNativeText = errors.New("pdf contains no extractable text")

// ExtractNativeText pulls embedded text straight from the PDF content stream,
// without rendering pixels. Two parsers are tried in order because they choke
// on different malformed files; the first non-empty result wins. Returns
// ErrNoNativeText when both parsers succeed but yield only whitespace.
func ExtractNativeText(filename string) (string, error) {
	text, primaryErr := extractWithDslipak(filename)
	if primaryErr == nil && text != "" {
		return text, nil
	}

	text, fallbackErr := extractWithLedongthuc(filename)
	if fallbackErr == nil && text != "" {
		return text, nil
	}

	if primaryErr != nil && fallbackErr != nil {
		return "", fmt.Errorf("native text extraction failed: %w (fallback: %v)", primaryErr, fallbackErr)
	}
	return "", ErrNoNativeText
}

func extractWithDslipak(filename string) (text string, err error) {
	// The underlying parser panics on malformed xref tables.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("pdf parser panic: %v", r)
		}
	}()

	reader, err := dslipak.Open(filename)
	if err != nil {
		return "", fmt.Errorf("opening pdf: %w", err)
	}

	var sb strings.Builder
	for pageNum := 1; pageNum <= reader.NumPage(); pageNum++ {
		page := reader.Page(pageNum)
		if page.V.IsNull() {
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		if pageText != "" {
			sb.WriteString(pageText)
			sb.WriteString("\n")
		}
	}
	return strings.TrimSpace(sb.String()), nil
}

func extractWithLedongthuc(filename string) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("pdf parser panic: %v", r)
		}
	}()

	file, reader, err := ledongthuc.Open(filename)
	if err != nil {
		return "", fmt.Errorf("opening pdf: %w", err)
	}
	defer file.Close()

	plain, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("reading pdf text: %w", err)
	}

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return "", fmt.Errorf("reading pdf text: %w", err)
	}
	return strings.TrimSpace(buf.String()), nil
}
