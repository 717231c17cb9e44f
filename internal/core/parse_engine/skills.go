package parse_engine

import "strings"

// skillCategory names the accumulator buckets for the skills fold.
type skillCategory int

const (
	skillTechnical skillCategory = iota
	skillLanguages
	skillSoft
	skillOther
)

// extractSkills folds the skills section's lines into per-category
// lists. The current category is carried through the fold and switched
// by keyword lines; colon lines carry their own label. Duplicates are
// preserved as-is.
func extractSkills(sec *Section) SkillGroups {
	var groups SkillGroups
	if sec == nil {
		return groups
	}

	current := skillTechnical
	for _, line := range sec.Lines {
		text := strings.TrimSpace(line.Text)
		if text == "" {
			continue
		}

		if label, rest, found := strings.Cut(text, ":"); found {
			cat := categoryForLabel(label)
			appendSkills(&groups, cat, splitSkillList(rest))
			current = cat
			continue
		}

		if cat, ok := categoryKeyword(text); ok {
			current = cat
			continue
		}

		if !line.Bold {
			appendSkills(&groups, current, splitSkillList(text))
		}
	}

	return groups
}

// categoryForLabel maps a colon label ("Technical", "Spoken Languages",
// "Soft skills", "Frameworks", ...) to a bucket. Unknown labels land in
// Other.
func categoryForLabel(label string) skillCategory {
	if cat, ok := categoryKeyword(label); ok {
		return cat
	}
	return skillOther
}

func categoryKeyword(s string) (skillCategory, bool) {
	lower := strings.ToLower(s)
	switch {
	case strings.Contains(lower, "technical"):
		return skillTechnical, true
	case strings.Contains(lower, "language"):
		return skillLanguages, true
	case strings.Contains(lower, "soft"):
		return skillSoft, true
	}
	return skillOther, false
}

func splitSkillList(s string) []string {
	var skills []string
	for _, part := range strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == '|'
	}) {
		if part = strings.TrimSpace(part); part != "" {
			skills = append(skills, part)
		}
	}
	return skills
}

func appendSkills(groups *SkillGroups, cat skillCategory, skills []string) {
	switch cat {
	case skillTechnical:
		groups.Technical = append(groups.Technical, skills...)
	case skillLanguages:
		groups.Languages = append(groups.Languages, skills...)
	case skillSoft:
		groups.Soft = append(groups.Soft, skills...)
	default:
		groups.Other = append(groups.Other, skills...)
	}
}
