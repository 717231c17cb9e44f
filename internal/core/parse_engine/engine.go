package parse_engine

import (
	"log/slog"
	"sort"
	"strings"
)

// Config tunes a Pipeline.
//
// MinChars: minimum extracted characters for a document to be treated
// as a plausible resume; 0 disables the gate. Checked only at the
// text-extraction boundary, never inside the later stages.
// Logger: structured logger for stage summaries; defaults to
// slog.Default().
type Config struct {
	MinChars int
	Logger   *slog.Logger
}

func (c *Config) defaults() {
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
}

// Pipeline is the resume structuring engine. One Parse call is one
// synchronous run of all five stages; a Pipeline holds no per-run
// state, so a single instance serves concurrent parses.
type Pipeline struct {
	cfg    Config
	logger *slog.Logger
}

// New creates a Pipeline with the given configuration.
func New(cfg Config) *Pipeline {
	cfg.defaults()
	return &Pipeline{cfg: cfg, logger: cfg.Logger}
}

// Parse structures a resume from PDF bytes. Stage one (and only stage
// one) can fail: EmptyDocumentError when no text is extractable,
// TooShortError when the text is implausibly small. Stages two through
// five always produce a best-effort document.
func (p *Pipeline) Parse(data []byte) (*ResumeDocument, error) {
	src, err := newPDFSource(data)
	if err != nil {
		return nil, err
	}
	return p.ParseSource(src)
}

// ParseSource structures a resume from any DocumentSource.
func (p *Pipeline) ParseSource(src DocumentSource) (*ResumeDocument, error) {
	fragments, err := extractFragments(src)
	if err != nil {
		return nil, err
	}
	if err := p.checkLength(fragments); err != nil {
		return nil, err
	}
	return p.structure(fragments), nil
}

// ParseText structures a resume from already-extracted raw text (the
// lenient entry path). Each non-empty input line becomes one synthetic
// fragment; blank input lines widen the vertical gap so that heading
// and entry separation keep working without font information.
func (p *Pipeline) ParseText(text string) (*ResumeDocument, error) {
	fragments := syntheticFragments(text)
	if len(fragments) == 0 {
		return nil, &EmptyDocumentError{Pages: 1}
	}
	if err := p.checkLength(fragments); err != nil {
		return nil, err
	}
	return p.structure(fragments), nil
}

func (p *Pipeline) checkLength(fragments []TextFragment) error {
	if p.cfg.MinChars <= 0 {
		return nil
	}
	chars := 0
	for _, f := range fragments {
		chars += len(f.Text)
	}
	if chars < p.cfg.MinChars {
		return &TooShortError{Chars: chars, Min: p.cfg.MinChars}
	}
	return nil
}

// structure runs stages two through five. Pure over its input; never
// fails.
func (p *Pipeline) structure(fragments []TextFragment) *ResumeDocument {
	lines := reconstructLines(fragments)
	sections := segmentSections(lines)

	doc := &ResumeDocument{
		Profile: ResumeProfile{
			ProfileRecord: extractProfile(sections.find(defaultSectionName)),
			Objective:     extractObjective(sections.find("OBJECTIVE", "SUMMARY", "ABOUT")),
		},
		Education:    extractEducation(sections.find("EDUCATION")),
		Experience:   extractExperience(findExperience(sections)),
		Skills:       extractSkills(sections.find("SKILLS", "PROFICIENCIES")),
		Projects:     extractProjects(sections.find("PROJECT")),
		Volunteer:    extractExperience(sections.find("VOLUNTEER", "COMMUNITY SERVICE")),
		Achievements: extractAchievements(sections.find("ACHIEVEMENTS", "HONORS", "AWARDS")),
	}

	p.logger.Debug("resume structured",
		"sections", len(sections),
		"lines", len(lines),
		"education", len(doc.Education),
		"experience", len(doc.Experience),
		"projects", len(doc.Projects),
		"skills", len(flattenSkills(doc.Skills)),
	)

	return doc
}

// Format maps a structured document to the external-facing shape.
// Exposed separately from Parse so callers can keep the internal
// document for matching while persisting the formatted view.
func Format(doc *ResumeDocument) *FormattedResume {
	return formatResume(doc)
}

// findExperience locates the work-experience section while skipping
// sections that merely contain the word (PROJECT EXPERIENCE, VOLUNTEER
// EXPERIENCE).
func findExperience(sections Sections) *Section {
	names := make([]string, 0, len(sections))
	for name := range sections {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if strings.Contains(name, "PROJECT") || strings.Contains(name, "VOLUNTEER") {
			continue
		}
		if strings.Contains(name, "EXPERIENCE") ||
			strings.Contains(name, "EMPLOYMENT") ||
			strings.Contains(name, "WORK") {
			return sections[name]
		}
	}
	return nil
}

// syntheticFragments turns raw text lines into positioned fragments.
// Lines step down ten units apart: close enough to stay below the
// blank-line tolerance, far enough apart to never merge. A blank input
// line still consumes a step, so the following line reads as sitting
// below a gap.
func syntheticFragments(text string) []TextFragment {
	const lineStep = 10.0

	var fragments []TextFragment
	y := 1000.0
	for _, raw := range strings.Split(text, "\n") {
		y -= lineStep
		line := strings.TrimSpace(raw)
		if line == "" {
			y -= lineStep
			continue
		}
		fragments = append(fragments, TextFragment{
			Text:    line,
			X1:      0,
			X2:      float64(len(line)) * charWidthDefault,
			Y:       y,
			Page:    1,
			AllCaps: isAllCaps(line),
		})
	}
	return fragments
}
