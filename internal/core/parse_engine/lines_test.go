package parse_engine

import "testing"

func frag(text string, x1, x2, y float64, bold bool) TextFragment {
	return TextFragment{
		Text:    text,
		X1:      x1,
		X2:      x2,
		Y:       y,
		Page:    1,
		Bold:    bold,
		AllCaps: isAllCaps(text),
	}
}

func TestReconstructLinesMergeAtThreshold(t *testing.T) {
	// Both fragments are 5 units per char, so the merge threshold is
	// 0.8*5 = 4. A gap of exactly 4 merges; anything wider stays split.
	mergeable := []TextFragment{
		frag("abcd", 0, 20, 700, false),
		frag("efgh", 24, 44, 700, false),
	}
	lines := reconstructLines(mergeable)
	if len(lines) != 1 {
		t.Fatalf("got %d lines, want 1", len(lines))
	}
	if lines[0].Text != "abcdefgh" {
		t.Errorf("merged text = %q, want %q", lines[0].Text, "abcdefgh")
	}
	if len(lines[0].Fragments) != 1 {
		t.Errorf("got %d fragments after merge, want 1", len(lines[0].Fragments))
	}

	split := []TextFragment{
		frag("abcd", 0, 20, 700, false),
		frag("efgh", 24.5, 44.5, 700, false),
	}
	lines = reconstructLines(split)
	if len(lines) != 1 {
		t.Fatalf("got %d lines, want 1", len(lines))
	}
	if lines[0].Text != "abcd efgh" {
		t.Errorf("split text = %q, want %q", lines[0].Text, "abcd efgh")
	}
	if len(lines[0].Fragments) != 2 {
		t.Errorf("got %d fragments, want 2", len(lines[0].Fragments))
	}
}

func TestReconstructLinesYTolerance(t *testing.T) {
	frags := []TextFragment{
		frag("first", 0, 25, 700, false),
		frag("wobbly", 100, 130, 696, false), // within 5 units, same line
		frag("second", 0, 30, 680, false),
	}

	lines := reconstructLines(frags)
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	if lines[0].Text != "first wobbly" {
		t.Errorf("line 0 = %q, want %q", lines[0].Text, "first wobbly")
	}
	if lines[1].Text != "second" {
		t.Errorf("line 1 = %q, want %q", lines[1].Text, "second")
	}
}

func TestOrganizeLineSortsByX(t *testing.T) {
	frags := []TextFragment{
		frag("world", 100, 125, 700, false),
		frag("hello", 0, 25, 700, false),
	}
	line := organizeLine(frags)
	if line.Text != "hello world" {
		t.Errorf("text = %q, want %q", line.Text, "hello world")
	}
}

func TestOrganizeLineBoldAndBullet(t *testing.T) {
	allBold := organizeLine([]TextFragment{
		frag("ACME", 0, 22, 700, true),
		frag("CORP", 30, 52, 700, true),
	})
	if !allBold.Bold {
		t.Error("line of all-bold fragments should be bold")
	}

	mixed := organizeLine([]TextFragment{
		frag("ACME", 0, 22, 700, true),
		frag("engineer", 30, 70, 700, false),
	})
	if mixed.Bold {
		t.Error("mixed-weight line should not be bold")
	}

	bullet := organizeLine([]TextFragment{
		frag("• Built the thing", 0, 85, 700, false),
	})
	if !bullet.Bullet {
		t.Error("bullet glyph not detected")
	}

	dash := organizeLine([]TextFragment{
		frag("- Shipped the other thing", 0, 125, 700, false),
	})
	if !dash.Bullet {
		t.Error("hyphen bullet not detected")
	}
}

func TestAverageCharWidthFallback(t *testing.T) {
	// All-bold input has no non-bold fragments to average over.
	frags := []TextFragment{
		frag("BOLD", 0, 22, 700, true),
	}
	if got := averageCharWidth(frags); got != charWidthDefault {
		t.Errorf("fallback width = %f, want %f", got, charWidthDefault)
	}

	frags = []TextFragment{
		frag("abcd", 0, 24, 700, false), // 6 per char
	}
	if got := averageCharWidth(frags); got != 6.0 {
		t.Errorf("width = %f, want 6.0", got)
	}
}
