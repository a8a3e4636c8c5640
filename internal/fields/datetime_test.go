package fields

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractDateTime_CombinedDateAndTime(t *testing.T) {
	got, ok := ExtractDateTime("Pago em 03/08/2025 às 11:32:15 via PIX")
	require.True(t, ok)
	// 11:32:15 in America/Sao_Paulo (UTC-3, no DST) is 14:32:15 UTC.
	assert.Equal(t, time.Date(2025, 8, 3, 14, 32, 15, 0, time.UTC), got)
}

func TestExtractDateTime_CombinedWithoutSeconds(t *testing.T) {
	got, ok := ExtractDateTime("03/08/2025 as 11:32")
	require.True(t, ok)
	assert.Equal(t, time.Date(2025, 8, 3, 14, 32, 0, 0, time.UTC), got)
}

func TestExtractDateTime_ConnectorOptional(t *testing.T) {
	got, ok := ExtractDateTime("03/08/2025 11:32")
	require.True(t, ok)
	assert.Equal(t, time.Date(2025, 8, 3, 14, 32, 0, 0, time.UTC), got)
}

func TestExtractDateTime_DateOnlyAnchorsAtNoon(t *testing.T) {
	got, ok := ExtractDateTime("Data do pagamento: 03/08/2025")
	require.True(t, ok)
	assert.Equal(t, time.Date(2025, 8, 3, 15, 0, 0, 0, time.UTC), got)
}

func TestExtractDateTime_StructuredBeatsNaturalLanguage(t *testing.T) {
	// Both a structured date and an NLP-parseable line are present; the
	// structured pattern must win.
	text := "2025-01-15\nVencimento 03/08/2025"
	got, ok := ExtractDateTime(text)
	require.True(t, ok)
	assert.Equal(t, time.Date(2025, 8, 3, 15, 0, 0, 0, time.UTC), got)
}

func TestExtractDateTime_NaturalLanguageFallback(t *testing.T) {
	got, ok := ExtractDateTime("Emitido em\n2025-08-03 11:32:15\nObrigado")
	require.True(t, ok)
	// NLP results are interpreted as reference-timezone wall-clock time.
	assert.Equal(t, time.Date(2025, 8, 3, 14, 32, 15, 0, time.UTC), got)
}

func TestExtractDateTime_NoMatch(t *testing.T) {
	_, ok := ExtractDateTime("Supermercado Cometa Ltda\nTotal R$ 10,00")
	assert.False(t, ok)
}

func TestExtractDateTime_EmptyText(t *testing.T) {
	_, ok := ExtractDateTime("")
	assert.False(t, ok)
}

func TestExtractDateTime_InvalidCalendarDateRejected(t *testing.T) {
	// 32/13 is no date; the invalid structured match must not shadow a later
	// valid one.
	got, ok := ExtractDateTime("ref 32/13/2025 às 11:00\npago 03/08/2025")
	require.True(t, ok)
	assert.Equal(t, time.Date(2025, 8, 3, 15, 0, 0, 0, time.UTC), got)
}

func TestExtractDateTime_InvalidTimeRejected(t *testing.T) {
	_, ok := ExtractDateTime("carimbo 03/08/2025 às 99:99")
	// The date-only pattern still matches the same token, anchored at noon.
	require.True(t, ok)
}

func TestWallClock_RejectsOverflowingComponents(t *testing.T) {
	_, ok := wallClock(2025, 13, 32, 0, 0, 0)
	assert.False(t, ok)

	_, ok = wallClock(2025, 2, 30, 0, 0, 0)
	assert.False(t, ok)

	got, ok := wallClock(2025, 8, 3, 12, 0, 0)
	require.True(t, ok)
	assert.Equal(t, time.UTC, got.Location())
}
