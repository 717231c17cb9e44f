package parse_engine

import (
	"regexp"
	"strings"
)

// Entry extraction consumes the subsections produced by the segmenter:
// one subsection maps to exactly one entry. The first line supplies the
// primary name (with any embedded date split off); subsequent lines are
// classified by ordered pattern checks. All extractors degrade to empty
// output on empty input.

var (
	degreeRe = regexp.MustCompile(`(?i)\b(bachelor|master|doctor|associate|diploma|b\.?\s?s\.?c?|m\.?\s?s\.?c?|b\.?\s?a|m\.?\s?a|b\.?\s?tech|m\.?\s?tech|b\.?\s?e|m\.?\s?e|ph\.?\s?d|mba)\b`)
	gpaRe    = regexp.MustCompile(`(?i)\b(?:c?gpa)\b[:\s]*([0-9](?:\.[0-9]{1,2})?)`)
)

func extractEducation(sec *Section) []EducationEntry {
	var entries []EducationEntry
	for _, sub := range subsectionsOf(sec) {
		if len(sub) == 0 {
			continue
		}

		name, date := splitLeadingDate(sub[0].Text)
		entry := EducationEntry{Name: name, Date: date}

		for _, line := range sub[1:] {
			text := strings.TrimSpace(line.Text)
			if text == "" {
				continue
			}
			switch {
			case gpaRe.MatchString(text):
				if entry.GPA == "" {
					entry.GPA = gpaRe.FindStringSubmatch(text)[1]
				}
			case degreeRe.MatchString(text):
				if entry.Degree == "" {
					entry.Degree = text
				}
			default:
				if d := extractDate(text); d != "" && entry.Date == "" {
					entry.Date = d
				} else if entry.Degree == "" {
					entry.Degree = text
				}
			}
		}

		entries = append(entries, entry)
	}
	return entries
}

// extractExperience handles both EXPERIENCE and VOLUNTEER sections; the
// two use the identical algorithm.
func extractExperience(sec *Section) []ExperienceEntry {
	var entries []ExperienceEntry
	for _, sub := range subsectionsOf(sec) {
		if len(sub) == 0 {
			continue
		}

		company, date := splitLeadingDate(sub[0].Text)
		entry := ExperienceEntry{Company: company, Date: date, Description: []string{}}

		seenBullet := false
		for _, line := range sub[1:] {
			text := strings.TrimSpace(line.Text)
			if text == "" {
				continue
			}

			if line.Bullet {
				seenBullet = true
				entry.Description = append(entry.Description, stripBullet(text))
				continue
			}

			if start, end, ok := findDateSpan(text); ok {
				if entry.Date == "" {
					entry.Date = text[start:end]
				}
				if rest := trimTrailingSeparators(text[:start]); rest != "" && entry.Title == "" && !seenBullet {
					entry.Title = rest
				}
				continue
			}

			if entry.Title == "" && !seenBullet {
				entry.Title = text
				continue
			}
			entry.Description = append(entry.Description, text)
		}

		entries = append(entries, entry)
	}
	return entries
}

func extractProjects(sec *Section) []ProjectEntry {
	var entries []ProjectEntry
	for _, sub := range subsectionsOf(sec) {
		if len(sub) == 0 {
			continue
		}

		name, date := splitLeadingDate(sub[0].Text)
		entry := ProjectEntry{Name: name, Date: date, Description: []string{}}

		seenBullet := false
		for _, line := range sub[1:] {
			text := strings.TrimSpace(line.Text)
			if text == "" {
				continue
			}

			if line.Bullet {
				seenBullet = true
				entry.Description = append(entry.Description, stripBullet(text))
				continue
			}

			if start, end, ok := findDateSpan(text); ok {
				if entry.Date == "" {
					entry.Date = text[start:end]
				}
				if rest := trimTrailingSeparators(text[:start]); rest != "" && entry.Technologies == "" && !seenBullet {
					entry.Technologies = rest
				}
				continue
			}

			if entry.Technologies == "" && !seenBullet {
				entry.Technologies = strings.TrimSpace(strings.TrimPrefix(text, "Technologies:"))
				continue
			}
			entry.Description = append(entry.Description, text)
		}

		entries = append(entries, entry)
	}
	return entries
}

// extractObjective concatenates every line of the objective section
// into one string.
func extractObjective(sec *Section) string {
	if sec == nil {
		return ""
	}
	parts := make([]string, 0, len(sec.Lines))
	for _, line := range sec.Lines {
		if text := strings.TrimSpace(line.Text); text != "" {
			parts = append(parts, text)
		}
	}
	return strings.Join(parts, " ")
}

// subsectionsOf returns the section's subsections, falling back to the
// whole line list as a single subsection when the segmenter produced
// none. Field extractors therefore have exactly one code path.
func subsectionsOf(sec *Section) []Subsection {
	if sec == nil {
		return nil
	}
	if len(sec.Subsections) > 0 {
		return sec.Subsections
	}
	if len(sec.Lines) == 0 {
		return nil
	}
	return []Subsection{Subsection(sec.Lines)}
}

// splitLeadingDate splits a title line into its name and any embedded
// date: "Acme Corp Jan 2020 - Present" → ("Acme Corp", "Jan 2020 - Present").
func splitLeadingDate(s string) (name, date string) {
	s = strings.TrimSpace(s)
	start, end, ok := findDateSpan(s)
	if !ok {
		return s, ""
	}
	return trimTrailingSeparators(s[:start]), s[start:end]
}

func trimTrailingSeparators(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimRight(s, ",|–—-")
	return strings.TrimSpace(s)
}

func stripBullet(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "•")
	s = strings.TrimPrefix(s, "-")
	return strings.TrimSpace(s)
}
