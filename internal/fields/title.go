package fields

import (
	"regexp"
)

// TitleMaxLen is the hard cap on extracted titles, in runes.
const TitleMaxLen = 120

var (
	// recipientLabel marks the "Recebedor" label line on PIX and bank
	// transfer receipts; the recipient name follows on the next line.
	recipientLabel = regexp.MustCompile(`(?i)^recebedor\b`)

	// beneficiaryLabel covers the "Destinatário"/"Beneficiário" label
	// variants used by boleto and invoice layouts.
	beneficiaryLabel = regexp.MustCompile(`(?i)destinat|benefic`)

	// companyToken matches business-entity lines: legal-suffix words as whole
	// words, retail-category stems as substrings.
	companyToken = regexp.MustCompile(`(?i)(\b(ltda|me|epp)\b|comerc|supermerc|farm|padar|rest|loja|mercad)`)

	// nameRun requires at least three consecutive letters (accented included)
	// for a line to count as a plausible name.
	nameRun = regexp.MustCompile(`[A-Za-zÀ-ÿ]{3,}`)

	// noiseLabel marks document-metadata lines that never make a good title.
	noiseLabel = regexp.MustCompile(`(?i)^(cnpj|cpf|nota|nº|numero|número|documento|chave|coo|cupom|extrato|pagamento|debito|débito|credito|crédito)\b`)

	anyLetter = regexp.MustCompile(`[A-Za-zÀ-ÿ]`)
)

// ExtractTitle derives a short title/recipient for the receipt, cascading
// from the most to the least specific cue: a "Recebedor" label, then
// "Destinatário"/"Beneficiário" labels, then the first business-entity line,
// then the uploaded filename. Every stage truncates to 120 runes.
func ExtractTitle(text, fallback string) string {
	lines := splitLines(text)

	if name, ok := labelledNextLine(lines, recipientLabel); ok {
		return Truncate(name, TitleMaxLen)
	}
	if name, ok := labelledNextLine(lines, beneficiaryLabel); ok {
		return Truncate(name, TitleMaxLen)
	}
	for _, line := range lines {
		if companyToken.MatchString(line) {
			return Truncate(line, TitleMaxLen)
		}
	}
	return Truncate(fallback, TitleMaxLen)
}

// labelledNextLine finds the first line matching label and returns the line
// after it, provided that line looks like a name.
func labelledNextLine(lines []string, label *regexp.Regexp) (string, bool) {
	for i, line := range lines {
		if !label.MatchString(line) {
			continue
		}
		if i+1 < len(lines) && nameRun.MatchString(lines[i+1]) {
			return lines[i+1], true
		}
		return "", false
	}
	return "", false
}

// FirstMeaningfulLine returns the first line that could serve as a generic
// document title: at least four characters, contains a letter, and is not a
// document-metadata label. Returns "" when no line qualifies.
func FirstMeaningfulLine(text string) string {
	for _, line := range splitLines(text) {
		if len([]rune(line)) < 4 {
			continue
		}
		if noiseLabel.MatchString(line) || !anyLetter.MatchString(line) {
			continue
		}
		return Truncate(line, TitleMaxLen)
	}
	return ""
}
