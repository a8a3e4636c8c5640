package fields

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractTitle_RecipientLabel(t *testing.T) {
	text := "Comprovante de transferência\nRecebedor\nSupermercado Cometa Ltda\nCPF 123"
	assert.Equal(t, "Supermercado Cometa Ltda", ExtractTitle(text, "upload.pdf"))
}

func TestExtractTitle_RecipientLabelCaseInsensitive(t *testing.T) {
	text := "RECEBEDOR\nFarmácia Central"
	assert.Equal(t, "Farmácia Central", ExtractTitle(text, "upload.pdf"))
}

func TestExtractTitle_BeneficiaryLabel(t *testing.T) {
	text := "Boleto bancário\nBeneficiário\nPadaria do Bairro ME\nVencimento 10/09/2026"
	assert.Equal(t, "Padaria do Bairro ME", ExtractTitle(text, "upload.pdf"))
}

func TestExtractTitle_DestinatarioLabel(t *testing.T) {
	text := "Dados do destinatário\nLoja das Tintas\n"
	assert.Equal(t, "Loja das Tintas", ExtractTitle(text, "upload.pdf"))
}

func TestExtractTitle_CompanyKeywordLine(t *testing.T) {
	text := "CUPOM FISCAL\nSupermercado Bom Preço\nCNPJ 12.345.678/0001-90"
	assert.Equal(t, "Supermercado Bom Preço", ExtractTitle(text, "upload.pdf"))
}

func TestExtractTitle_LegalSuffixIsWordBounded(t *testing.T) {
	// "me" inside an ordinary word must not mark the line as a company name;
	// the real Ltda line further down should win.
	text := "Pagamento efetuado\nComercial Andrade Ltda"
	assert.Equal(t, "Comercial Andrade Ltda", ExtractTitle(text, "upload.pdf"))
}

func TestExtractTitle_FallbackToFilename(t *testing.T) {
	text := "123\n456\n789"
	assert.Equal(t, "recibo-agosto.pdf", ExtractTitle(text, "recibo-agosto.pdf"))
}

func TestExtractTitle_LabelWithoutUsableNextLine(t *testing.T) {
	// Next line after the label has fewer than three letters; cascade moves on.
	text := "Recebedor\n12 34\nMercado União"
	assert.Equal(t, "Mercado União", ExtractTitle(text, "upload.pdf"))
}

func TestExtractTitle_TruncatesTo120Runes(t *testing.T) {
	long := strings.Repeat("ã", 200)
	text := "Recebedor\n" + long
	got := ExtractTitle(text, "upload.pdf")
	assert.Equal(t, 120, len([]rune(got)))

	// Fallback path truncates too.
	got = ExtractTitle("", strings.Repeat("x", 300))
	assert.Len(t, got, 120)
}

func TestExtractTitle_EmptyText(t *testing.T) {
	assert.Equal(t, "nota.pdf", ExtractTitle("", "nota.pdf"))
}

func TestFirstMeaningfulLine(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"skips noise labels", "CNPJ 12.345.678/0001-90\nMercearia Dois Irmãos", "Mercearia Dois Irmãos"},
		{"skips short lines", "ok\nLanchonete da Praça", "Lanchonete da Praça"},
		{"skips numeric lines", "123456\nRestaurante Sabor", "Restaurante Sabor"},
		{"empty when nothing qualifies", "123\nok", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FirstMeaningfulLine(tt.text))
		})
	}
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", Truncate("abc", 5))
	assert.Equal(t, "ab", Truncate("abc", 2))
	assert.Equal(t, "ãé", Truncate("ãéî", 2))
}
