package stats

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/verte-zerg/rounds/internal/model"
)

func TestFormatClock(t *testing.T) {
	tests := map[int]string{
		0:   "0:00",
		9:   "0:09",
		60:  "1:00",
		180: "3:00",
		725: "12:05",
		-3:  "0:00",
	}
	for in, want := range tests {
		if got := FormatClock(in); got != want {
			t.Fatalf("FormatClock(%d) = %q, want %q", in, got, want)
		}
	}
}

func TestFormatTotal(t *testing.T) {
	tests := []struct {
		seconds int
		want    string
	}{
		{seconds: 45, want: "45 Seconds"},
		{seconds: 5 + 3*180 + 2*60, want: "11 Minutes"},
		{seconds: 3600, want: "1h 0m"},
		{seconds: 3600 + 5*60 + 30, want: "1h 5m"},
	}
	for _, tt := range tests {
		if got := FormatTotal(tt.seconds); got != tt.want {
			t.Fatalf("FormatTotal(%d) = %q, want %q", tt.seconds, got, tt.want)
		}
	}
}

func TestDescribeWorkout(t *testing.T) {
	w := model.Workout{RoundSeconds: 180, RestSeconds: 60, Rounds: 3}
	if got := DescribeWorkout(w); got != "3 x 3:00, rest 1:00" {
		t.Fatalf("DescribeWorkout = %q", got)
	}
	w.Rounds = 1
	if got := DescribeWorkout(w); got != "1 x 3:00" {
		t.Fatalf("DescribeWorkout = %q", got)
	}
}

func sampleRecords() []model.SessionRecord {
	start := time.Date(2026, 3, 1, 18, 0, 0, 0, time.UTC)
	w := model.Workout{WarmupSeconds: 5, RoundSeconds: 180, RestSeconds: 60, Rounds: 3}
	return []model.SessionRecord{
		{StartedAt: start, Workout: w, RoundsCompleted: 3, Completed: true, CountedSeconds: 665},
		{StartedAt: start.Add(24 * time.Hour), Workout: w, RoundsCompleted: 1, Skips: 2, CountedSeconds: 200},
	}
}

func TestSummarize(t *testing.T) {
	sum := Summarize(sampleRecords())
	want := model.HistorySummary{Sessions: 2, Completed: 1, Rounds: 4, CountedSeconds: 865, LongestSeconds: 665}
	if sum != want {
		t.Fatalf("Summarize = %+v, want %+v", sum, want)
	}
}

func TestRenderSummary(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderSummary(&buf, sampleRecords()); err != nil {
		t.Fatalf("RenderSummary: %v", err)
	}
	out := buf.String()
	for _, needle := range []string{"Workouts: 2 (1 completed)", "Rounds: 4", "Training time: 14 Minutes", "Longest: 11:05"} {
		if !strings.Contains(out, needle) {
			t.Fatalf("summary missing %q:\n%s", needle, out)
		}
	}

	buf.Reset()
	if err := RenderSummary(&buf, nil); err != nil {
		t.Fatalf("RenderSummary: %v", err)
	}
	if !strings.Contains(buf.String(), "No workouts found.") {
		t.Fatalf("expected empty message, got %q", buf.String())
	}
}

func TestHistoryRow(t *testing.T) {
	row := HistoryRow(sampleRecords()[1])
	if row[2] != "1/3" || row[3] != "3:20" || row[4] != "stopped (2 skipped)" {
		t.Fatalf("unexpected row: %q", row)
	}
}

func TestRenderHistory(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderHistory(&buf, sampleRecords()); err != nil {
		t.Fatalf("RenderHistory: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header and 2 rows, got %d lines", len(lines))
	}
	if !strings.HasPrefix(lines[0], "Date") || !strings.Contains(lines[1], "3 x 3:00, rest 1:00") {
		t.Fatalf("unexpected history output:\n%s", buf.String())
	}
}

func TestSparkline(t *testing.T) {
	if got := Sparkline([]float64{1, 1, 1}); got != "+++" {
		t.Fatalf("flat sparkline = %q", got)
	}
	got := Sparkline([]float64{0, 10})
	if got != " @" {
		t.Fatalf("sparkline = %q", got)
	}
}
