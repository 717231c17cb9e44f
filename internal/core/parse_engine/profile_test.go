package parse_engine

import "testing"

func profileSection(lines ...Line) *Section {
	return &Section{Name: defaultSectionName, Lines: lines}
}

func TestExtractProfileTypicalHeader(t *testing.T) {
	sec := profileSection(
		mkLine("John Smith", 700, true),
		mkLine("john.smith@example.com", 690, false),
		mkLine("+1 (555) 123-4567", 680, false),
		mkLine("Boston, MA", 670, false),
		mkLine("github.com/jsmith", 660, false),
	)

	p := extractProfile(sec)

	if p.Name != "John Smith" {
		t.Errorf("Name = %q", p.Name)
	}
	if p.Email != "john.smith@example.com" {
		t.Errorf("Email = %q", p.Email)
	}
	if p.Phone != "+1 (555) 123-4567" {
		t.Errorf("Phone = %q", p.Phone)
	}
	if p.Location != "Boston, MA" {
		t.Errorf("Location = %q", p.Location)
	}
	if p.URL != "github.com/jsmith" {
		t.Errorf("URL = %q", p.URL)
	}
}

func TestExtractProfileFieldsInAnyOrder(t *testing.T) {
	sec := profileSection(
		mkLine("boston@example.org", 700, false),
		mkLine("Jane Doe", 690, true),
	)

	p := extractProfile(sec)
	if p.Name != "Jane Doe" {
		t.Errorf("Name = %q, want %q", p.Name, "Jane Doe")
	}
	if p.Email != "boston@example.org" {
		t.Errorf("Email = %q", p.Email)
	}
}

func TestExtractProfileNoPositiveScoreLeavesFieldEmpty(t *testing.T) {
	sec := profileSection(
		mkLine("lorem ipsum dolor sit amet consectetur", 700, false),
	)

	p := extractProfile(sec)
	if p.Email != "" || p.Phone != "" || p.URL != "" {
		t.Errorf("contact fields should be empty, got %+v", p)
	}
}

func TestExtractProfileEmpty(t *testing.T) {
	if p := extractProfile(nil); p != (ProfileRecord{}) {
		t.Errorf("nil section: got %+v", p)
	}
	if p := extractProfile(&Section{}); p != (ProfileRecord{}) {
		t.Errorf("empty section: got %+v", p)
	}
}

func TestScoreNamePenalizesContactContent(t *testing.T) {
	name := mkLine("John Smith", 700, false)
	email := mkLine("john@example.com", 700, false)
	phone := mkLine("555 123 4567", 700, false)

	if scoreName(name) <= scoreName(email) {
		t.Error("email-bearing line outranked a plain name")
	}
	if scoreName(name) <= scoreName(phone) {
		t.Error("digit-bearing line outranked a plain name")
	}
}
