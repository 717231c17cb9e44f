package parse_engine

import (
	"sort"
	"strings"
	"unicode"
)

const (
	// Vertical gap treated as a blank-line separator between entries.
	subsectionGapTolerance = 15.0

	// A heading candidate matched by keyword must be short.
	maxHeadingWords = 4

	// Content before any detected heading belongs here.
	defaultSectionName = "PROFILE"
)

// sectionKeywords is the fixed heading vocabulary. A short line whose
// normalized text contains one of these is a heading candidate.
var sectionKeywords = []string{
	"WORK EXPERIENCE",
	"PROJECT EXPERIENCE",
	"TECHNICAL SKILLS",
	"COMMUNITY SERVICE",
	"EDUCATION",
	"EXPERIENCE",
	"EMPLOYMENT",
	"SKILLS",
	"PROFICIENCIES",
	"PROJECTS",
	"CERTIFICATIONS",
	"ACHIEVEMENTS",
	"HONORS",
	"AWARDS",
	"VOLUNTEERING",
	"VOLUNTEER",
	"PUBLICATIONS",
	"RESEARCH",
	"LANGUAGES",
	"INTERESTS",
	"ACTIVITIES",
	"OBJECTIVE",
	"SUMMARY",
	"PROFILE",
	"ABOUT",
}

// multiEntryKeywords marks section types whose content is a sequence of
// entries and therefore gets split into subsections.
var multiEntryKeywords = []string{
	"EDUCATION", "EXPERIENCE", "EMPLOYMENT", "VOLUNTEER", "PROJECT",
}

// segmentSections runs stage three: it folds the line sequence into
// named sections. A heading line is consumed as the section label and
// never appears as content. Multi-entry sections additionally get their
// lines grouped into subsections, one per entry; when no entry boundary
// is detected the whole section is a single subsection, so field
// extractors always see subsections.
func segmentSections(lines []Line) Sections {
	sections := Sections{}

	currentName := defaultSectionName
	for i, line := range lines {
		if name, ok := headingName(lines, i); ok {
			currentName = name
			if _, exists := sections[currentName]; !exists {
				sections[currentName] = &Section{Name: currentName}
			}
			continue
		}

		sec, exists := sections[currentName]
		if !exists {
			sec = &Section{Name: currentName}
			sections[currentName] = sec
		}
		sec.Lines = append(sec.Lines, line)
	}

	for _, sec := range sections {
		if isMultiEntry(sec.Name) {
			sec.Subsections = splitSubsections(sec.Lines)
		}
	}

	return sections
}

// headingName decides whether lines[i] is a section heading and, if so,
// returns the cleaned section name. Two ways to qualify: a bold
// all-caps single-fragment line, or a short keyword line that is bold
// or sits below a blank-line-sized gap.
func headingName(lines []Line, i int) (string, bool) {
	line := lines[i]
	trimmed := strings.TrimSpace(line.Text)
	if trimmed == "" {
		return "", false
	}

	if line.Bold && line.AllCaps && len(line.Fragments) == 1 {
		return cleanSectionName(trimmed), true
	}

	normalized := cleanSectionName(trimmed)
	if !containsAny(normalized, sectionKeywords) {
		return "", false
	}
	if len(strings.Fields(trimmed)) > maxHeadingWords {
		return "", false
	}
	if line.Bold || precededByGap(lines, i) {
		return cleanSectionName(trimmed), true
	}
	return "", false
}

// precededByGap reports whether the line sits below a vertical gap
// large enough to read as a blank line. Empty lines never survive
// fragment extraction, so the blank-line signal is positional.
func precededByGap(lines []Line, i int) bool {
	if i == 0 {
		return true
	}
	prev := lines[i-1]
	cur := lines[i]
	if prev.Page != cur.Page {
		return true
	}
	return prev.Y-cur.Y > subsectionGapTolerance
}

// splitSubsections groups a multi-entry section's lines into one group
// per entry. A subsection closes when the vertical gap to the next line
// exceeds the blank-line tolerance, or when a non-bold line is followed
// by a bold non-bullet line (a new entry's title). The last subsection
// always closes at end of section.
func splitSubsections(lines []Line) []Subsection {
	if len(lines) == 0 {
		return nil
	}

	var subs []Subsection
	current := Subsection{lines[0]}

	for i := 1; i < len(lines); i++ {
		prev := lines[i-1]
		next := lines[i]

		gap := prev.Page != next.Page || prev.Y-next.Y > subsectionGapTolerance
		newTitle := next.Bold && !prev.Bold && !next.Bullet

		if gap || newTitle {
			subs = append(subs, current)
			current = Subsection{next}
			continue
		}
		current = append(current, next)
	}
	subs = append(subs, current)

	return subs
}

// cleanSectionName uppercases and strips punctuation, collapsing runs
// of whitespace to single spaces.
func cleanSectionName(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(unicode.ToUpper(r))
		case unicode.IsSpace(r):
			b.WriteRune(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

func isMultiEntry(name string) bool {
	return containsAny(name, multiEntryKeywords)
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}

// find returns the first section, in deterministic name order, whose
// name contains one of the given keywords.
func (s Sections) find(keywords ...string) *Section {
	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, kw := range keywords {
		for _, name := range names {
			if strings.Contains(name, kw) {
				return s[name]
			}
		}
	}
	return nil
}
