package cmd

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/finapp-br/reciboscan/internal/document"
)

const (
	outputFormatText = "text"
	outputFormatJSON = "json"
)

// formatResult renders one extraction result in the requested output format.
func formatResult(file string, fields document.ExtractedFields, format string) (string, error) {
	switch format {
	case outputFormatJSON:
		obj := struct {
			File   string                   `json:"file"`
			Fields document.ExtractedFields `json:"fields"`
		}{File: file, Fields: fields}
		bts, err := json.MarshalIndent(obj, "", "  ")
		if err != nil {
			return "", fmt.Errorf("failed to marshal JSON: %w", err)
		}
		return string(bts), nil
	case outputFormatText:
		var b strings.Builder
		fmt.Fprintf(&b, "%s:\n", file)
		fmt.Fprintf(&b, "  amount:      R$ %d,%02d\n", fields.AmountCents/100, fields.AmountCents%100)
		fmt.Fprintf(&b, "  occurred at: %s\n", fields.OccurredAt.Format(time.RFC3339))
		fmt.Fprintf(&b, "  title:       %s\n", fields.Title)
		fmt.Fprintf(&b, "  engine:      %s", fields.Engine)
		if fields.Confidence != nil {
			fmt.Fprintf(&b, " (confidence %.1f)", *fields.Confidence)
		}
		return b.String(), nil
	default:
		return "", fmt.Errorf("invalid output format: %s (must be one of: text, json)", format)
	}
}
