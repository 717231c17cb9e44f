package parse_engine

import "strings"

// extractAchievements groups achievement lines into entries keyed on
// bold-or-bulleted lines as entry starts. A date inside the title line
// is split off; following lines accumulate into a single space-joined
// prose description, not an itemized list.
func extractAchievements(sec *Section) []AchievementEntry {
	if sec == nil || len(sec.Lines) == 0 {
		return nil
	}

	var entries []AchievementEntry
	var current *AchievementEntry

	flush := func() {
		if current != nil {
			entries = append(entries, *current)
			current = nil
		}
	}

	for _, line := range sec.Lines {
		text := strings.TrimSpace(line.Text)
		if text == "" {
			continue
		}

		if line.Bold || line.Bullet {
			flush()
			title, date := splitLeadingDate(stripBullet(text))
			current = &AchievementEntry{Title: title, Date: date}
			continue
		}

		if current == nil {
			title, date := splitLeadingDate(text)
			current = &AchievementEntry{Title: title, Date: date}
			continue
		}

		if d := extractDate(text); d != "" && current.Date == "" {
			current.Date = d
			continue
		}

		if current.Description == "" {
			current.Description = text
		} else {
			current.Description += " " + text
		}
	}
	flush()

	return entries
}
