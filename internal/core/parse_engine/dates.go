package parse_engine

import "regexp"

// One date matcher shared by every entry extractor and the formatter,
// so the pattern cannot drift between call sites. A date is a month or
// season name plus a 4-digit year, or a bare 4-digit year, optionally
// extended into a range whose right side may be another date or
// "Present"/"Current".
const (
	monthSeasonPattern = `(?:Jan(?:uary)?|Feb(?:ruary)?|Mar(?:ch)?|Apr(?:il)?|May|Jun(?:e)?|Jul(?:y)?|Aug(?:ust)?|Sep(?:t(?:ember)?)?|Oct(?:ober)?|Nov(?:ember)?|Dec(?:ember)?|Spring|Summer|Fall|Autumn|Winter)`
	datePointPattern   = `(?:` + monthSeasonPattern + `\.?\s+\d{4}|\d{4})`
)

var dateSpanRe = regexp.MustCompile(`(?i)` + datePointPattern +
	`(?:\s*[-–—]\s*(?:` + datePointPattern + `|Present|Current))?`)

// findDateSpan locates the first date-pattern match in s and returns
// its byte span.
func findDateSpan(s string) (start, end int, ok bool) {
	loc := dateSpanRe.FindStringIndex(s)
	if loc == nil {
		return 0, 0, false
	}
	return loc[0], loc[1], true
}

// extractDate returns the first date-pattern substring of s, or "".
func extractDate(s string) string {
	start, end, ok := findDateSpan(s)
	if !ok {
		return ""
	}
	return s[start:end]
}
