package parse_engine

import (
	"regexp"
	"strings"
	"unicode"
)

// Profile extraction is a five-way independent scoring pass: every line
// of the PROFILE section is scored against each field's scoring
// function, and each field independently keeps its highest-scoring line
// when that score is positive. Fields can appear in any order and a
// line may plausibly be more than one type, so the winners are chosen
// per field; one line winning several fields is accepted.

var (
	emailRe    = regexp.MustCompile(`[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}`)
	phoneRe    = regexp.MustCompile(`\+?\d[\d\s().\-]{6,}\d`)
	locationRe = regexp.MustCompile(`^[A-Za-z][A-Za-z .]*,\s*[A-Za-z]{2,}`)
	urlRe      = regexp.MustCompile(`(?i)(?:https?://|www\.)\S+|\b[a-z0-9\-]+\.(?:com|org|net|io|dev|me|edu)\b\S*`)
)

type profileScorer func(Line) int

// extractProfile scores every profile-section line against the five
// field scorers and picks the per-field argmax with a positive floor.
// Empty input yields an empty record.
func extractProfile(sec *Section) ProfileRecord {
	if sec == nil || len(sec.Lines) == 0 {
		return ProfileRecord{}
	}

	pick := func(score profileScorer) string {
		best := ""
		bestScore := 0
		for _, line := range sec.Lines {
			if s := score(line); s > bestScore {
				bestScore = s
				best = strings.TrimSpace(line.Text)
			}
		}
		return best
	}

	return ProfileRecord{
		Name:     pick(scoreName),
		Email:    pick(scoreEmail),
		Phone:    pick(scorePhone),
		Location: pick(scoreLocation),
		URL:      pick(scoreURL),
	}
}

func scoreName(line Line) int {
	text := strings.TrimSpace(line.Text)
	if text == "" {
		return 0
	}

	score := 0
	words := strings.Fields(text)
	if len(words) >= 2 && len(words) <= 4 {
		score += 3
	}
	if allLetters(text) {
		score += 2
	}
	if line.Bold {
		score += 2
	}
	if line.AllCaps {
		score += 1
	}
	// Contact-looking content strongly disqualifies a name.
	if strings.ContainsRune(text, '@') {
		score -= 5
	}
	if strings.ContainsAny(text, "0123456789") {
		score -= 5
	}
	return score
}

func scoreEmail(line Line) int {
	text := strings.TrimSpace(line.Text)
	score := 0
	if emailRe.MatchString(text) {
		score += 6
	} else if strings.ContainsRune(text, '@') {
		score += 1
	}
	if line.Bold {
		score -= 1
	}
	return score
}

func scorePhone(line Line) int {
	text := strings.TrimSpace(line.Text)
	score := 0
	if phoneRe.MatchString(text) {
		score += 5
	}
	if digitCount(text) >= 7 {
		score += 2
	}
	if strings.ContainsRune(text, '@') {
		score -= 3
	}
	if line.AllCaps {
		score -= 1
	}
	return score
}

func scoreLocation(line Line) int {
	text := strings.TrimSpace(line.Text)
	score := 0
	if locationRe.MatchString(text) {
		score += 5
	}
	if strings.ContainsRune(text, '@') {
		score -= 4
	}
	if urlRe.MatchString(text) {
		score -= 3
	}
	if digitCount(text) > 4 {
		score -= 2
	}
	return score
}

func scoreURL(line Line) int {
	text := strings.TrimSpace(line.Text)
	score := 0
	if urlRe.MatchString(text) {
		score += 5
	}
	if strings.Contains(strings.ToLower(text), "linkedin") ||
		strings.Contains(strings.ToLower(text), "github") {
		score += 2
	}
	if strings.ContainsRune(text, ' ') && !urlRe.MatchString(text) {
		score -= 2
	}
	return score
}

func allLetters(s string) bool {
	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsSpace(r) && r != '.' && r != '\'' && r != '-' {
			return false
		}
	}
	return true
}

func digitCount(s string) int {
	n := 0
	for _, r := range s {
		if unicode.IsDigit(r) {
			n++
		}
	}
	return n
}
