package cmd

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/finapp-br/reciboscan/internal/document"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatResult_Text(t *testing.T) {
	conf := 87.5
	fields := document.ExtractedFields{
		AmountCents: 123456,
		OccurredAt:  time.Date(2025, 8, 3, 14, 32, 15, 0, time.UTC),
		Title:       "Supermercado Cometa Ltda",
		Engine:      document.EngineOCR,
		Confidence:  &conf,
	}

	out, err := formatResult("comprovante.pdf", fields, "text")
	require.NoError(t, err)

	assert.Contains(t, out, "comprovante.pdf:")
	assert.Contains(t, out, "R$ 1234,56")
	assert.Contains(t, out, "2025-08-03T14:32:15Z")
	assert.Contains(t, out, "Supermercado Cometa Ltda")
	assert.Contains(t, out, "ocr")
	assert.Contains(t, out, "87.5")
}

func TestFormatResult_JSON(t *testing.T) {
	fields := document.ExtractedFields{
		AmountCents: 500,
		OccurredAt:  time.Date(2025, 1, 2, 15, 0, 0, 0, time.UTC),
		Title:       "Padaria Central",
		Engine:      document.EngineNativeText,
	}

	out, err := formatResult("a.pdf", fields, "json")
	require.NoError(t, err)

	var decoded struct {
		File   string                   `json:"file"`
		Fields document.ExtractedFields `json:"fields"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, "a.pdf", decoded.File)
	assert.Equal(t, int64(500), decoded.Fields.AmountCents)
	assert.Equal(t, document.EngineNativeText, decoded.Fields.Engine)
	assert.Nil(t, decoded.Fields.Confidence)
}

func TestFormatResult_InvalidFormat(t *testing.T) {
	_, err := formatResult("a.pdf", document.ExtractedFields{}, "csv")
	assert.Error(t, err)
}
