package fields

import (
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

const (
	// maxPlausibleCents is the ceiling above which an amount is presumed to be
	// OCR noise (a CNPJ fragment, a barcode digit run) rather than a real
	// total: 20,000 BRL.
	maxPlausibleCents = 2_000_000

	// amountHeadLines is how many leading lines count as "near the top" of the
	// document, where totals on Brazilian payment receipts tend to appear.
	amountHeadLines = 7
)

// moneyPattern matches Brazilian-locale decimal amounts with an optional
// currency prefix: "R$ 1.234,56", "1234,56", "1234.56".
var (
	moneyPattern   = regexp.MustCompile(`(?:R\$\s*)?(\d{1,3}(?:\.\d{3})*,\d{2}|\d+\.\d{2}|\d+,\d{2})`)
	currencyMarker = regexp.MustCompile(`(?i)R\$`)
	amountKeywords = regexp.MustCompile(`(?i)(total|valor|pagar|pagamento|cobrança|cobranca)`)
	nonAmountChars = regexp.MustCompile(`[^\d,.]`)
)

// AmountCandidate is one monetary token found in the text, with the score
// used to rank it. Ephemeral; produced and consumed within extraction.
type AmountCandidate struct {
	Cents     int64
	Score     int
	LineIndex int
}

// ExtractAmountCents scans the text for monetary tokens and returns the most
// plausible amount in integer cents. Returns 0 when nothing matched; callers
// treat that as "needs manual correction", not as an error.
func ExtractAmountCents(text string) int64 {
	candidates := AmountCandidates(text)
	if len(candidates) == 0 {
		return 0
	}
	RankAmountCandidates(candidates)
	return candidates[0].Cents
}

// AmountCandidates finds every monetary token in the text and scores it by
// line context:
//
//	+3 explicit currency marker on the line
//	+2 amount keyword (total, valor, pagar, ...) on the line
//	+1 line is within the first 7 lines
//	-3 amount above 20,000 BRL (presumed OCR noise)
func AmountCandidates(text string) []AmountCandidate {
	var candidates []AmountCandidate
	for idx, line := range splitLines(text) {
		for _, match := range moneyPattern.FindAllStringSubmatch(line, -1) {
			cents, ok := parseCentsBR(match[1])
			if !ok {
				continue
			}
			score := 0
			if currencyMarker.MatchString(line) {
				score += 3
			}
			if amountKeywords.MatchString(line) {
				score += 2
			}
			if idx < amountHeadLines {
				score++
			}
			if cents > maxPlausibleCents {
				score -= 3
			}
			candidates = append(candidates, AmountCandidate{Cents: cents, Score: score, LineIndex: idx})
		}
	}
	return candidates
}

// RankAmountCandidates stable-sorts candidates by score descending, ties
// broken by largest cents value. Receipts usually foreground the grand total,
// which tends to be the largest number on the page.
func RankAmountCandidates(candidates []AmountCandidate) {
	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].Score != candidates[j].Score {
			return candidates[i].Score > candidates[j].Score
		}
		return candidates[i].Cents > candidates[j].Cents
	})
}

// parseCentsBR normalizes a Brazilian-formatted monetary token to integer
// cents: thousand separators dropped, decimal comma converted to a point.
func parseCentsBR(token string) (int64, bool) {
	norm := nonAmountChars.ReplaceAllString(token, "")
	norm = strings.ReplaceAll(norm, ".", "")
	norm = strings.ReplaceAll(norm, ",", ".")
	value, err := strconv.ParseFloat(norm, 64)
	if err != nil || math.IsInf(value, 0) || math.IsNaN(value) {
		return 0, false
	}
	return int64(math.Round(value * 100)), true
}
