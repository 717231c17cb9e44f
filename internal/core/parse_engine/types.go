// Package parse_engine converts raw PDF text-layout primitives into a
// structured resume document without calling an LLM.
//
// The pipeline runs five stages, strictly forward:
//
//	fragments → lines → sections → field extraction → formatting
//
// Each stage consumes only the previous stage's output. One Pipeline
// invocation owns all of its intermediate data, so independent resumes
// can be parsed concurrently with no shared state.
package parse_engine

// TextFragment is a single positioned run of text emitted by the PDF
// reader, before any layout reconstruction. X1/X2 are horizontal
// extents on the page; Y is the baseline position (larger = higher on
// the page, PDF convention). Immutable after extraction.
type TextFragment struct {
	Text    string  `json:"text"`
	X1      float64 `json:"x1"`
	X2      float64 `json:"x2"`
	Y       float64 `json:"y"`
	Page    int     `json:"page"`
	Bold    bool    `json:"bold"`
	AllCaps bool    `json:"all_caps"`
}

// Line is one visual text row, built from fragments whose baselines
// coincide within tolerance. Fragments are kept sorted ascending by X1
// and the line's Y equals the first fragment's Y.
type Line struct {
	Text      string         `json:"text"`
	Fragments []TextFragment `json:"fragments"`
	Bold      bool           `json:"bold"`
	AllCaps   bool           `json:"all_caps"`
	Bullet    bool           `json:"bullet"`
	Y         float64        `json:"y"`
	Page      int            `json:"page"`
}

// Subsection is one entry (one job, one degree, one project) within a
// multi-entry section.
type Subsection []Line

// Section is a named contiguous run of lines under one resume heading.
// For multi-entry section types (education, experience, volunteer,
// projects) the segmenter also populates Subsections; Lines always
// holds the full content either way, heading excluded.
type Section struct {
	Name        string       `json:"name"`
	Lines       []Line       `json:"lines"`
	Subsections []Subsection `json:"subsections,omitempty"`
}

// Sections maps a cleaned heading name (uppercased, punctuation
// stripped) to its section. Content before the first detected heading
// lands in "PROFILE".
type Sections map[string]*Section

// ProfileRecord holds the header-area contact fields. Every field is
// best-effort; absence is an empty string.
type ProfileRecord struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Location string `json:"location"`
	URL      string `json:"url"`
}

// EducationEntry is one degree or school.
type EducationEntry struct {
	Name   string `json:"name"`
	Degree string `json:"degree"`
	Date   string `json:"date"`
	GPA    string `json:"gpa"`
}

// ExperienceEntry is one job. Volunteer entries use the same shape.
type ExperienceEntry struct {
	Company     string   `json:"company"`
	Title       string   `json:"title"`
	Date        string   `json:"date"`
	Description []string `json:"description"`
}

// ProjectEntry is one project.
type ProjectEntry struct {
	Name         string   `json:"name"`
	Date         string   `json:"date"`
	Technologies string   `json:"technologies"`
	Description  []string `json:"description"`
}

// AchievementEntry is one award or honor. Description is prose, not a
// bullet list.
type AchievementEntry struct {
	Title       string `json:"title"`
	Date        string `json:"date"`
	Description string `json:"description"`
}

// SkillGroups accumulates skills per category, in extraction order and
// without de-duplication.
type SkillGroups struct {
	Technical []string `json:"technical"`
	Languages []string `json:"languages"`
	Soft      []string `json:"soft"`
	Other     []string `json:"other"`
}

// ResumeDocument is the structured output of the pipeline, constructed
// once per parse and never mutated afterwards.
type ResumeDocument struct {
	Profile      ResumeProfile      `json:"profile"`
	Education    []EducationEntry   `json:"education"`
	Experience   []ExperienceEntry  `json:"experience"`
	Skills       SkillGroups        `json:"skills"`
	Projects     []ProjectEntry     `json:"projects"`
	Volunteer    []ExperienceEntry  `json:"volunteer"`
	Achievements []AchievementEntry `json:"achievements"`
}

// ResumeProfile pairs the scored contact fields with the objective
// text.
type ResumeProfile struct {
	ProfileRecord
	Objective string `json:"objective"`
}

// FormattedResume is the external-facing shape handed to persistence
// and the email generator. Dates are split into start/end substrings;
// skills are flattened into one ordered list; project descriptions are
// joined into single strings. Missing values are empty strings, never
// null.
type FormattedResume struct {
	Name         string                 `json:"name"`
	Email        string                 `json:"email"`
	Phone        string                 `json:"phone"`
	Location     string                 `json:"location"`
	URL          string                 `json:"url"`
	Objective    string                 `json:"objective"`
	Skills       []string               `json:"skills"`
	Education    []FormattedEducation   `json:"education"`
	Experience   []FormattedExperience  `json:"experience"`
	Projects     []FormattedProject     `json:"projects"`
	Volunteer    []FormattedExperience  `json:"volunteer"`
	Achievements []FormattedAchievement `json:"achievements"`
}

// FormattedEducation is one education entry in the external shape.
type FormattedEducation struct {
	Name      string `json:"name"`
	Degree    string `json:"degree"`
	GPA       string `json:"gpa"`
	Date      string `json:"date"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

// FormattedExperience is one experience or volunteer entry in the
// external shape.
type FormattedExperience struct {
	Company     string   `json:"company"`
	Title       string   `json:"title"`
	Date        string   `json:"date"`
	StartDate   string   `json:"start_date"`
	EndDate     string   `json:"end_date"`
	Description []string `json:"description"`
}

// FormattedProject is one project entry in the external shape.
type FormattedProject struct {
	Name         string `json:"name"`
	Technologies string `json:"technologies"`
	Date         string `json:"date"`
	StartDate    string `json:"start_date"`
	EndDate      string `json:"end_date"`
	Description  string `json:"description"`
}

// FormattedAchievement is one achievement entry in the external shape.
type FormattedAchievement struct {
	Title       string `json:"title"`
	Date        string `json:"date"`
	Description string `json:"description"`
}
