package parse_engine

import "testing"

func TestExtractDate(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Jan 2020 - Present", "Jan 2020 - Present"},
		{"January 2020 – March 2022", "January 2020 – March 2022"},
		{"Software Engineer, Sept. 2019 - Current", "Sept. 2019 - Current"},
		{"Summer 2021", "Summer 2021"},
		{"2018 - 2020", "2018 - 2020"},
		{"Graduated 2020", "2020"},
		{"no dates here", ""},
		{"Fall 2019", "Fall 2019"},
	}
	for _, tt := range tests {
		if got := extractDate(tt.in); got != tt.want {
			t.Errorf("extractDate(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSplitLeadingDate(t *testing.T) {
	tests := []struct {
		in, name, date string
	}{
		{"Acme Corp Jan 2020 - Present", "Acme Corp", "Jan 2020 - Present"},
		{"MIT 2020", "MIT", "2020"},
		{"Globex, 2018 - 2020", "Globex", "2018 - 2020"},
		{"Stark Industries", "Stark Industries", ""},
		{"Initech — May 2021", "Initech", "May 2021"},
	}
	for _, tt := range tests {
		name, date := splitLeadingDate(tt.in)
		if name != tt.name || date != tt.date {
			t.Errorf("splitLeadingDate(%q) = (%q, %q), want (%q, %q)",
				tt.in, name, date, tt.name, tt.date)
		}
	}
}
