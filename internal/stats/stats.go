// Package stats contains workout figures and plain-text reporting.
package stats

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/verte-zerg/rounds/internal/model"
)

const sparkChars = " .:-=+*#%@"

// FormatClock renders seconds as m:ss.
func FormatClock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}

// FormatTotal renders a workout length the way the settings screen
// shows it: "1h 5m" from one hour up, "12 Minutes" below.
func FormatTotal(seconds int) string {
	if seconds < 60 {
		return fmt.Sprintf("%d Seconds", max(seconds, 0))
	}
	minutes := seconds / 60
	if hours := minutes / 60; hours > 0 {
		return fmt.Sprintf("%dh %dm", hours, minutes%60)
	}
	return fmt.Sprintf("%d Minutes", minutes)
}

// DescribeWorkout renders a compact plan, e.g. "3 x 3:00, rest 1:00".
func DescribeWorkout(w model.Workout) string {
	desc := fmt.Sprintf("%d x %s", w.Rounds, FormatClock(w.RoundSeconds))
	if w.Rounds > 1 {
		desc += ", rest " + FormatClock(w.RestSeconds)
	}
	return desc
}

// Summarize aggregates session records.
func Summarize(records []model.SessionRecord) model.HistorySummary {
	var sum model.HistorySummary
	for _, r := range records {
		sum.Sessions++
		if r.Completed {
			sum.Completed++
		}
		sum.Rounds += r.RoundsCompleted
		sum.CountedSeconds += r.CountedSeconds
		if r.CountedSeconds > sum.LongestSeconds {
			sum.LongestSeconds = r.CountedSeconds
		}
	}
	return sum
}

// Sparkline renders a single-line ASCII sparkline for the values.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	minVal := values[0]
	maxVal := values[0]
	for _, v := range values[1:] {
		minVal = math.Min(minVal, v)
		maxVal = math.Max(maxVal, v)
	}
	if math.Abs(maxVal-minVal) < 1e-9 {
		return strings.Repeat(string(sparkChars[len(sparkChars)/2]), len(values))
	}
	var b strings.Builder
	for _, v := range values {
		pos := (v - minVal) / (maxVal - minVal)
		idx := int(math.Round(pos * float64(len(sparkChars)-1)))
		idx = min(max(idx, 0), len(sparkChars)-1)
		b.WriteByte(sparkChars[idx])
	}
	return b.String()
}

// RenderSummary prints totals for the given sessions.
func RenderSummary(w io.Writer, records []model.SessionRecord) error {
	if len(records) == 0 {
		_, err := fmt.Fprintln(w, "No workouts found.")
		return err
	}
	sum := Summarize(records)
	minutes := make([]float64, len(records))
	for i, r := range records {
		minutes[i] = float64(r.CountedSeconds) / 60
	}
	lines := []string{
		"Summary",
		fmt.Sprintf("Workouts: %d (%d completed)", sum.Sessions, sum.Completed),
		fmt.Sprintf("Rounds: %d", sum.Rounds),
		fmt.Sprintf("Training time: %s", FormatTotal(sum.CountedSeconds)),
		fmt.Sprintf("Longest: %s", FormatClock(sum.LongestSeconds)),
		fmt.Sprintf("Trend: %s", Sparkline(minutes)),
		"",
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// RenderHistory prints one row per session.
func RenderHistory(w io.Writer, records []model.SessionRecord) error {
	if len(records) == 0 {
		return nil
	}
	headers := HistoryHeaders()
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, HistoryRow(r))
	}
	rightAlign := map[int]bool{2: true, 3: true}
	for _, line := range formatTable(headers, rows, rightAlign) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// HistoryHeaders returns the column titles used for session listings.
func HistoryHeaders() []string {
	return []string{"Date", "Plan", "Rounds", "Time", "Status"}
}

// HistoryRow formats one session for a listing.
func HistoryRow(r model.SessionRecord) []string {
	status := "stopped"
	if r.Completed {
		status = "done"
	}
	if r.Skips > 0 {
		status += fmt.Sprintf(" (%d skipped)", r.Skips)
	}
	return []string{
		r.StartedAt.Local().Format("2006-01-02 15:04"),
		DescribeWorkout(r.Workout),
		fmt.Sprintf("%d/%d", r.RoundsCompleted, r.Workout.Rounds),
		FormatClock(r.CountedSeconds),
		status,
	}
}
