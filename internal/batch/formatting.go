package batch

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/finapp-br/reciboscan/internal/document"
)

// formatResults renders the batch outcome in the specified format.
func formatResults(results []FileResult, format string) (string, error) {
	switch format {
	case "json":
		return formatJSON(results)
	case "text":
		return formatText(results), nil
	default:
		return "", fmt.Errorf("invalid output format: %s (must be one of: text, json)", format)
	}
}

type jsonDocument struct {
	File   string                    `json:"file"`
	Fields *document.ExtractedFields `json:"fields,omitempty"`
	Error  string                    `json:"error,omitempty"`
}

// formatJSON formats results as one JSON object with a per-file document list.
func formatJSON(results []FileResult) (string, error) {
	docs := make([]jsonDocument, len(results))
	for i, res := range results {
		docs[i] = jsonDocument{File: res.File}
		if res.Err != nil {
			docs[i].Error = res.Err.Error()
			continue
		}
		fields := res.Fields
		docs[i].Fields = &fields
	}

	bts, err := json.MarshalIndent(struct {
		Documents []jsonDocument `json:"documents"`
	}{Documents: docs}, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return string(bts), nil
}

// formatText formats results as plain text blocks.
func formatText(results []FileResult) string {
	var b strings.Builder
	for i, res := range results {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "# %s\n", res.File)
		if res.Err != nil {
			fmt.Fprintf(&b, "error: %v\n", res.Err)
			continue
		}
		fmt.Fprintf(&b, "amount:      R$ %d,%02d\n", res.Fields.AmountCents/100, res.Fields.AmountCents%100)
		fmt.Fprintf(&b, "occurred at: %s\n", res.Fields.OccurredAt.Format(time.RFC3339))
		fmt.Fprintf(&b, "title:       %s\n", res.Fields.Title)
		fmt.Fprintf(&b, "engine:      %s", res.Fields.Engine)
		if res.Fields.Confidence != nil {
			fmt.Fprintf(&b, " (confidence %.1f)", *res.Fields.Confidence)
		}
		b.WriteString("\n")
	}
	return b.String()
}
