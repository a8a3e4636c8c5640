package fields

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractAmountCents_SingleToken(t *testing.T) {
	got := ExtractAmountCents("Total: R$ 1.234,56")
	assert.Equal(t, int64(123456), got)
}

func TestExtractAmountCents_NoMatch(t *testing.T) {
	assert.Equal(t, int64(0), ExtractAmountCents("Supermercado Cometa Ltda\nObrigado pela preferência"))
	assert.Equal(t, int64(0), ExtractAmountCents(""))
}

func TestExtractAmountCents_PrefersKeywordAndCurrencyContext(t *testing.T) {
	text := `CUPOM FISCAL
Item 1   45,90
Item 2   12,00
Subtotal 57,90
Total a pagar: R$ 57,90
Troco 2,10`
	assert.Equal(t, int64(5790), ExtractAmountCents(text))
}

func TestExtractAmountCents_LargeValuePenalized(t *testing.T) {
	// The CNPJ-like huge number is larger but penalized; the contextualized
	// total must win.
	text := `Documento 99.999.999,99
Total: R$ 150,00`
	assert.Equal(t, int64(15000), ExtractAmountCents(text))
}

func TestExtractAmountCents_LoneLargeCandidateStillWins(t *testing.T) {
	// A heavily penalized candidate is still returned when it is the only
	// one; extraction never fails.
	assert.Equal(t, int64(9999999), ExtractAmountCents("valor estranho 99.999,99"))
}

func TestExtractAmountCents_TieBreaksOnLargestCents(t *testing.T) {
	// Same score for both lines: no keywords, no currency, both in the head.
	text := "recibo 10,00\nxyz 25,00"
	assert.Equal(t, int64(2500), ExtractAmountCents(text))
}

func TestExtractAmountCents_MultipleMatchesPerLine(t *testing.T) {
	text := "Total R$ 35,50 (pago 40,00 troco 4,50)"
	assert.Equal(t, int64(4000), ExtractAmountCents(text))
}

func TestAmountCandidates_Scoring(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		wantScore int
	}{
		{"currency + keyword + head", "Total: R$ 10,00", 6},
		{"keyword + head", "valor 10,00", 3},
		{"head only", "loja x 10,00", 1},
		{"large value in head", "99.999,99", -2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			candidates := AmountCandidates(tt.text)
			require.Len(t, candidates, 1)
			assert.Equal(t, tt.wantScore, candidates[0].Score)
		})
	}
}

func TestAmountCandidates_HeadBonusStopsAtLineSeven(t *testing.T) {
	text := "a\nb\nc\nd\ne\nf\ng\nxyz 10,00"
	candidates := AmountCandidates(text)
	require.Len(t, candidates, 1)
	assert.Equal(t, 7, candidates[0].LineIndex)
	assert.Equal(t, 0, candidates[0].Score)
}

func TestAmountCandidates_ReorderingNonScoringLinesIsStable(t *testing.T) {
	// Shuffling lines that carry no candidates and don't affect keyword or
	// position scoring must not change the winner.
	original := "linha um\nlinha dois\nTotal: R$ 88,80\nrodapé"
	reordered := "linha dois\nlinha um\nTotal: R$ 88,80\nrodapé"
	assert.Equal(t, ExtractAmountCents(original), ExtractAmountCents(reordered))
}

func TestParseCentsBR(t *testing.T) {
	tests := []struct {
		token string
		want  int64
	}{
		{"1.234,56", 123456},
		{"12,34", 1234},
		{"0,99", 99},
		{"1.000.000,00", 100000000},
		{"R$ 5,00", 500},
	}
	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			got, ok := parseCentsBR(tt.token)
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRankAmountCandidates_Deterministic(t *testing.T) {
	candidates := []AmountCandidate{
		{Cents: 100, Score: 1, LineIndex: 0},
		{Cents: 300, Score: 2, LineIndex: 1},
		{Cents: 200, Score: 2, LineIndex: 2},
	}
	RankAmountCandidates(candidates)
	assert.Equal(t, int64(300), candidates[0].Cents)
	assert.Equal(t, int64(200), candidates[1].Cents)
	assert.Equal(t, int64(100), candidates[2].Cents)
}
