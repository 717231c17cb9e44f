package parse_engine

import (
	"regexp"
	"strings"
)

var (
	startDateRe = regexp.MustCompile(`(?i)` + monthSeasonPattern + `\.?\s+\d{4}`)
	dateRangeRe = regexp.MustCompile(`(?i)(` + datePointPattern + `)\s*[-–—]\s*(` + datePointPattern + `)`)
	presentRe   = regexp.MustCompile(`(?i)\b(present|current)\b`)
)

// formatResume maps the internal ResumeDocument to the external shape
// consumed by persistence and the email generator. Pure function:
// skills are flattened in fixed category order, project descriptions
// are joined, and each raw date is split into start/end substrings.
// Missing dates yield empty strings, never null.
func formatResume(doc *ResumeDocument) *FormattedResume {
	out := &FormattedResume{
		Name:         doc.Profile.Name,
		Email:        doc.Profile.Email,
		Phone:        doc.Profile.Phone,
		Location:     doc.Profile.Location,
		URL:          doc.Profile.URL,
		Objective:    doc.Profile.Objective,
		Skills:       flattenSkills(doc.Skills),
		Education:    make([]FormattedEducation, 0, len(doc.Education)),
		Experience:   make([]FormattedExperience, 0, len(doc.Experience)),
		Projects:     make([]FormattedProject, 0, len(doc.Projects)),
		Volunteer:    make([]FormattedExperience, 0, len(doc.Volunteer)),
		Achievements: make([]FormattedAchievement, 0, len(doc.Achievements)),
	}

	for _, e := range doc.Education {
		start, end := splitDateRange(e.Date)
		out.Education = append(out.Education, FormattedEducation{
			Name:      e.Name,
			Degree:    e.Degree,
			GPA:       e.GPA,
			Date:      e.Date,
			StartDate: start,
			EndDate:   end,
		})
	}

	for _, e := range doc.Experience {
		out.Experience = append(out.Experience, formatExperience(e))
	}
	for _, e := range doc.Volunteer {
		out.Volunteer = append(out.Volunteer, formatExperience(e))
	}

	for _, p := range doc.Projects {
		start, end := splitDateRange(p.Date)
		out.Projects = append(out.Projects, FormattedProject{
			Name:         p.Name,
			Technologies: p.Technologies,
			Date:         p.Date,
			StartDate:    start,
			EndDate:      end,
			Description:  strings.Join(p.Description, " "),
		})
	}

	for _, a := range doc.Achievements {
		out.Achievements = append(out.Achievements, FormattedAchievement{
			Title:       a.Title,
			Date:        a.Date,
			Description: a.Description,
		})
	}

	return out
}

func formatExperience(e ExperienceEntry) FormattedExperience {
	start, end := splitDateRange(e.Date)
	desc := e.Description
	if desc == nil {
		desc = []string{}
	}
	return FormattedExperience{
		Company:     e.Company,
		Title:       e.Title,
		Date:        e.Date,
		StartDate:   start,
		EndDate:     end,
		Description: desc,
	}
}

// flattenSkills joins the category lists in fixed order: technical,
// then languages, then soft, then other. No shuffling, no dedup.
func flattenSkills(groups SkillGroups) []string {
	out := make([]string, 0,
		len(groups.Technical)+len(groups.Languages)+len(groups.Soft)+len(groups.Other))
	out = append(out, groups.Technical...)
	out = append(out, groups.Languages...)
	out = append(out, groups.Soft...)
	out = append(out, groups.Other...)
	return out
}

// splitDateRange derives start/end substrings from a raw date field via
// two independent extractions: a month-or-season-plus-year match for
// the start, and for the end a Present/Current literal check followed
// by a two-sided range match.
func splitDateRange(date string) (start, end string) {
	if date == "" {
		return "", ""
	}

	start = startDateRe.FindString(date)

	if presentRe.MatchString(date) {
		end = "Present"
	} else if m := dateRangeRe.FindStringSubmatch(date); m != nil {
		end = m[2]
	}

	return start, end
}
