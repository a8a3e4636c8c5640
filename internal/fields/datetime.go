package fields

import (
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/araddon/dateparse"
)

// ReferenceTimezone is the fixed civil timezone used to interpret
// locale-formatted wall-clock strings before converting to UTC.
const ReferenceTimezone = "America/Sao_Paulo"

var referenceLocation = sync.OnceValue(func() *time.Location {
	loc, err := time.LoadLocation(ReferenceTimezone)
	if err != nil {
		// São Paulo abolished DST in 2019; a fixed offset is equivalent for
		// any receipt date this pipeline will see.
		return time.FixedZone("-03", -3*60*60)
	}
	return loc
})

var (
	// dateTimePattern matches "DD/MM/YYYY às HH:MM[:SS]" with an optional,
	// case-insensitive connector.
	dateTimePattern = regexp.MustCompile(`(?i)(\d{2}/\d{2}/\d{4})\s*(?:às|as)?\s*(\d{2}:\d{2}(?::\d{2})?)`)
	datePattern     = regexp.MustCompile(`\d{2}/\d{2}/\d{4}`)
)

// ExtractDateTime resolves the document's timestamp as a UTC instant. The
// strategies form a strict cascade, first match wins: structured date+time,
// structured date-only (anchored at noon to minimize date-boundary drift),
// then a natural-language parse. Returns ok=false when nothing matched;
// callers substitute the current instant.
func ExtractDateTime(text string) (time.Time, bool) {
	if t, ok := matchDateTime(text); ok {
		return t, true
	}
	if t, ok := matchDateOnly(text); ok {
		return t, true
	}
	return matchNaturalLanguage(text)
}

// matchDateTime scans structured date+time tokens in document order and
// resolves the first calendar-valid one. Invalid tokens (OCR damage, "32/13")
// must not shadow a later valid match.
func matchDateTime(text string) (time.Time, bool) {
	for _, m := range dateTimePattern.FindAllStringSubmatch(text, -1) {
		day, month, year, ok := splitDateBR(m[1])
		if !ok {
			continue
		}

		parts := strings.Split(m[2], ":")
		hour, _ := strconv.Atoi(parts[0])
		minute, _ := strconv.Atoi(parts[1])
		second := 0
		if len(parts) == 3 {
			second, _ = strconv.Atoi(parts[2])
		}

		if t, ok := wallClock(year, month, day, hour, minute, second); ok {
			return t, true
		}
	}
	return time.Time{}, false
}

func matchDateOnly(text string) (time.Time, bool) {
	for _, m := range datePattern.FindAllString(text, -1) {
		day, month, year, ok := splitDateBR(m)
		if !ok {
			continue
		}
		// Noon keeps the civil date stable across the UTC conversion.
		if t, ok := wallClock(year, month, day, 12, 0, 0); ok {
			return t, true
		}
	}
	return time.Time{}, false
}

// matchNaturalLanguage tries a general date parser line by line, day-first as
// Brazilian convention demands. Structured patterns above take priority
// because a heuristic parser can misfire on stray numbers.
func matchNaturalLanguage(text string) (time.Time, bool) {
	for _, line := range splitLines(text) {
		parsed, err := dateparse.ParseIn(line, referenceLocation(),
			dateparse.PreferMonthFirst(false))
		if err != nil {
			continue
		}
		return parsed.UTC(), true
	}
	return time.Time{}, false
}

func splitDateBR(token string) (day, month, year int, ok bool) {
	parts := strings.Split(token, "/")
	if len(parts) != 3 {
		return 0, 0, 0, false
	}
	day, _ = strconv.Atoi(parts[0])
	month, _ = strconv.Atoi(parts[1])
	year, _ = strconv.Atoi(parts[2])
	return day, month, year, true
}

// wallClock builds an instant from wall-clock components in the reference
// timezone and converts it to UTC. Calendar-invalid components (day 32, hour
// 25) are rejected so the cascade can continue, since time.Date would
// silently normalize them into a different date.
func wallClock(year, month, day, hour, minute, second int) (time.Time, bool) {
	t := time.Date(year, time.Month(month), day, hour, minute, second, 0, referenceLocation())
	if t.Year() != year || t.Month() != time.Month(month) || t.Day() != day ||
		t.Hour() != hour || t.Minute() != minute || t.Second() != second {
		return time.Time{}, false
	}
	return t.UTC(), true
}
