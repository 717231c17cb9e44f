package parse_engine

import (
	"testing"
)

// mkLine builds a single-fragment line at the given baseline.
func mkLine(text string, y float64, bold bool) Line {
	f := frag(text, 0, float64(len(text))*charWidthDefault, y, bold)
	return organizeLine([]TextFragment{f})
}

func TestSegmentSectionsBoldCapsHeading(t *testing.T) {
	lines := []Line{
		mkLine("John Smith", 700, true),
		mkLine("SKILLS", 680, true),
		mkLine("Technical: Python, Go", 670, false),
	}

	sections := segmentSections(lines)

	skills, ok := sections["SKILLS"]
	if !ok {
		t.Fatalf("SKILLS section missing; got %v", sectionNames(sections))
	}
	if len(skills.Lines) != 1 || skills.Lines[0].Text != "Technical: Python, Go" {
		t.Errorf("SKILLS content = %v", skills.Lines)
	}

	profile, ok := sections["PROFILE"]
	if !ok {
		t.Fatal("pre-heading content should land in PROFILE")
	}
	if len(profile.Lines) != 1 || profile.Lines[0].Text != "John Smith" {
		t.Errorf("PROFILE content = %v", profile.Lines)
	}
}

func TestSegmentSectionsKeywordHeadingNeedsGapOrBold(t *testing.T) {
	// "Education" mid-paragraph with no gap and no bold is content.
	lines := []Line{
		mkLine("I value my", 700, false),
		mkLine("Education", 690, false),
		mkLine("above all", 680, false),
	}
	sections := segmentSections(lines)
	if _, ok := sections["EDUCATION"]; ok {
		t.Error("non-bold keyword without a gap must not become a heading")
	}
	if len(sections["PROFILE"].Lines) != 3 {
		t.Errorf("PROFILE lines = %d, want 3", len(sections["PROFILE"].Lines))
	}

	// The same keyword below a blank-line-sized gap is a heading.
	lines = []Line{
		mkLine("John Smith", 700, false),
		mkLine("Education", 680, false), // gap of 20 > tolerance
		mkLine("MIT", 670, false),
	}
	sections = segmentSections(lines)
	edu, ok := sections["EDUCATION"]
	if !ok {
		t.Fatalf("gap-preceded keyword should become a heading; got %v", sectionNames(sections))
	}
	if len(edu.Lines) != 1 || edu.Lines[0].Text != "MIT" {
		t.Errorf("EDUCATION content = %v", edu.Lines)
	}
}

func TestHeadingLineNeverAppearsAsContent(t *testing.T) {
	lines := []Line{
		mkLine("EXPERIENCE", 700, true),
		mkLine("Acme Corp", 690, false),
	}
	sections := segmentSections(lines)
	for _, sec := range sections {
		for _, line := range sec.Lines {
			if line.Text == "EXPERIENCE" {
				t.Error("heading line leaked into section content")
			}
		}
	}
}

func TestSegmentSectionsLongKeywordLineIsContent(t *testing.T) {
	lines := []Line{
		mkLine("SUMMARY", 700, true),
		mkLine("Five years of work experience building distributed systems", 690, false),
	}
	sections := segmentSections(lines)
	if _, ok := sections["EXPERIENCE"]; ok {
		t.Error("long keyword-containing line must not become a heading")
	}
}

func TestSplitSubsectionsGapBoundary(t *testing.T) {
	lines := []Line{
		mkLine("Acme Corp Jan 2020 - Present", 700, false),
		mkLine("• Built services", 690, false),
		mkLine("Globex 2018 - 2020", 670, false), // gap of 20
		mkLine("• Maintained things", 660, false),
	}

	subs := splitSubsections(lines)
	if len(subs) != 2 {
		t.Fatalf("got %d subsections, want 2", len(subs))
	}
	if subs[0][0].Text != "Acme Corp Jan 2020 - Present" {
		t.Errorf("sub 0 starts with %q", subs[0][0].Text)
	}
	if subs[1][0].Text != "Globex 2018 - 2020" {
		t.Errorf("sub 1 starts with %q", subs[1][0].Text)
	}
}

func TestSplitSubsectionsBoldTitleBoundary(t *testing.T) {
	lines := []Line{
		mkLine("Acme Corp", 700, true),
		mkLine("Engineer, Jan 2020 - Present", 690, false),
		mkLine("Globex", 680, true), // bold after non-bold, no gap
		mkLine("Intern, 2019", 670, false),
	}

	subs := splitSubsections(lines)
	if len(subs) != 2 {
		t.Fatalf("got %d subsections, want 2", len(subs))
	}
	if subs[1][0].Text != "Globex" {
		t.Errorf("sub 1 starts with %q", subs[1][0].Text)
	}
}

func TestSplitSubsectionsBoldBulletDoesNotSplit(t *testing.T) {
	lines := []Line{
		mkLine("Acme Corp", 700, true),
		mkLine("Engineer", 690, false),
		mkLine("• Led the team", 680, true), // bold bullet stays inside
	}

	subs := splitSubsections(lines)
	if len(subs) != 1 {
		t.Fatalf("got %d subsections, want 1", len(subs))
	}
}

func TestCleanSectionName(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Education", "EDUCATION"},
		{"  Work   Experience:  ", "WORK EXPERIENCE"},
		{"• Skills •", "SKILLS"},
		{"ACHIEVEMENTS & AWARDS", "ACHIEVEMENTS AWARDS"},
	}
	for _, tt := range tests {
		if got := cleanSectionName(tt.in); got != tt.want {
			t.Errorf("cleanSectionName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSectionsFindDeterministic(t *testing.T) {
	sections := Sections{
		"WORK EXPERIENCE":    {Name: "WORK EXPERIENCE"},
		"PROJECT EXPERIENCE": {Name: "PROJECT EXPERIENCE"},
	}

	// Same input must always pick the same section.
	first := sections.find("EXPERIENCE")
	for i := 0; i < 20; i++ {
		if got := sections.find("EXPERIENCE"); got != first {
			t.Fatal("find is not deterministic across calls")
		}
	}
	if first.Name != "PROJECT EXPERIENCE" {
		t.Errorf("find picked %q, want alphabetically first match", first.Name)
	}
}

func TestMultiEntrySectionsAlwaysHaveSubsections(t *testing.T) {
	lines := []Line{
		mkLine("EDUCATION", 700, true),
		mkLine("MIT 2020", 690, false),
		mkLine("SKILLS", 670, true),
		mkLine("Go, Python", 660, false),
	}
	sections := segmentSections(lines)

	edu := sections["EDUCATION"]
	if edu == nil || len(edu.Subsections) == 0 {
		t.Fatal("multi-entry section must carry subsections")
	}
	skills := sections["SKILLS"]
	if skills == nil {
		t.Fatal("SKILLS missing")
	}
	if len(skills.Subsections) != 0 {
		t.Error("single-entry section should not carry subsections")
	}
}

func TestSegmentSectionsCoversEveryLineOnce(t *testing.T) {
	lines := []Line{
		mkLine("John Smith", 700, false),
		mkLine("EDUCATION", 680, true),
		mkLine("MIT 2020", 670, false),
		mkLine("EXPERIENCE", 650, true),
		mkLine("Acme Corp", 640, false),
		mkLine("• Built things", 630, false),
	}
	sections := segmentSections(lines)

	headings := map[string]bool{"EDUCATION": true, "EXPERIENCE": true}
	seen := map[string]int{}
	for _, sec := range sections {
		for _, line := range sec.Lines {
			seen[line.Text]++
		}
	}

	for _, line := range lines {
		if headings[line.Text] {
			continue
		}
		if seen[line.Text] != 1 {
			t.Errorf("line %q appears %d times across sections, want 1", line.Text, seen[line.Text])
		}
	}
}

func sectionNames(s Sections) []string {
	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}
	return names
}
