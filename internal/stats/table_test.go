package stats

import "testing"

func TestFormatTableAlignsColumns(t *testing.T) {
	headers := []string{"#", "Phase", "Length"}
	rows := [][]string{
		{"1", "Get Ready", "0:05"},
		{"10", "Round 3/3", "12:00"},
	}
	rightAlign := map[int]bool{0: true, 2: true}

	lines := formatTable(headers, rows, rightAlign)
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if lines[0] != " # Phase     Length" {
		t.Fatalf("unexpected header line: %q", lines[0])
	}
	if lines[1] != " 1 Get Ready   0:05" {
		t.Fatalf("unexpected row line: %q", lines[1])
	}
	if lines[2] != "10 Round 3/3  12:00" {
		t.Fatalf("unexpected row line: %q", lines[2])
	}
}

func TestFormatTableTrimsTrailingPadding(t *testing.T) {
	lines := formatTable([]string{"Status", "Date"}, [][]string{{"done", "x"}}, nil)
	if lines[1] != "done   x" {
		t.Fatalf("unexpected row line: %q", lines[1])
	}
	lines = formatTable([]string{"Date", "Status"}, [][]string{{"x", "ok"}}, nil)
	if lines[1] != "x    ok" {
		t.Fatalf("unexpected row line: %q", lines[1])
	}
}

func TestDisplayWidthCountsWideRunes(t *testing.T) {
	if got := displayWidth("休息"); got != 4 {
		t.Fatalf("displayWidth = %d, want 4", got)
	}
}
