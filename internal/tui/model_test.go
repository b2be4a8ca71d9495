package tui

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/rounds/internal/model"
	"github.com/verte-zerg/rounds/internal/sequencer"
	"github.com/verte-zerg/rounds/internal/store"
)

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newTestModel(t *testing.T, w model.Workout, st *store.Store, opts Options) *Model {
	t.Helper()
	m, err := NewModel(w, st, opts)
	if err != nil {
		t.Fatalf("NewModel: %v", err)
	}
	return m
}

func tick(m *Model) tea.Cmd {
	_, cmd := m.Update(tickMsg{gen: m.gen})
	return cmd
}

func TestNewModelRejectsInvalidWorkout(t *testing.T) {
	if _, err := NewModel(model.Workout{Rounds: 3}, nil, Options{}); err == nil {
		t.Fatalf("expected error for zero round length")
	}
}

func TestSettingsAdjustClampsValues(t *testing.T) {
	m := newTestModel(t, model.Workout{WarmupSeconds: 5, RoundSeconds: 180, RestSeconds: 15, Rounds: 1}, nil, Options{})

	m.Update(keyRunes("-"))
	if m.Workout().Rounds != 1 {
		t.Fatalf("rounds went below 1: %d", m.Workout().Rounds)
	}
	m.Update(keyRunes("+"))
	if m.Workout().Rounds != 2 {
		t.Fatalf("rounds = %d, want 2", m.Workout().Rounds)
	}

	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	if m.Workout().RestSeconds != 0 {
		t.Fatalf("rest = %d, want 0", m.Workout().RestSeconds)
	}

	m.Update(tea.KeyMsg{Type: tea.KeyUp})
	m.Update(tea.KeyMsg{Type: tea.KeyRight})
	if m.Workout().RoundSeconds != 195 {
		t.Fatalf("round = %d, want 195", m.Workout().RoundSeconds)
	}
}

func TestSettingsViewShowsTotal(t *testing.T) {
	m := newTestModel(t, model.Workout{WarmupSeconds: 5, RoundSeconds: 180, RestSeconds: 60, Rounds: 3}, nil, Options{})
	view := m.View()
	for _, needle := range []string{"Workout Settings", "Number of Rounds", "Total Training Length", "11 Minutes"} {
		if !strings.Contains(view, needle) {
			t.Fatalf("settings view missing %q:\n%s", needle, view)
		}
	}
}

func TestStartWorkoutSchedulesTicks(t *testing.T) {
	m := newTestModel(t, model.Workout{WarmupSeconds: 5, RoundSeconds: 10, Rounds: 1}, nil, Options{Autostart: true})
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatalf("expected tick command after start")
	}
	if m.screen != screenTraining || !m.seq.Running() {
		t.Fatalf("expected running training screen")
	}
	if cmd := tick(m); cmd == nil {
		t.Fatalf("expected next tick to be scheduled")
	}
	if m.seq.Remaining() != 4 {
		t.Fatalf("remaining = %d, want 4", m.seq.Remaining())
	}
	if !strings.Contains(m.View(), "Get Ready") {
		t.Fatalf("training view missing phase label")
	}
}

func TestStaleTickIgnoredAfterPause(t *testing.T) {
	m := newTestModel(t, model.Workout{WarmupSeconds: 5, RoundSeconds: 10, Rounds: 1}, nil, Options{Autostart: true, StartNow: true})
	m.Init()
	stale := m.gen

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	if cmd != nil {
		t.Fatalf("pausing should not schedule ticks")
	}
	m.Update(tickMsg{gen: stale})
	if m.seq.Remaining() != 5 || m.seq.Running() {
		t.Fatalf("stale tick applied: remaining=%d running=%v", m.seq.Remaining(), m.seq.Running())
	}
	if !strings.Contains(m.View(), "Paused") {
		t.Fatalf("expected paused indicator")
	}

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	if cmd == nil || !m.seq.Running() {
		t.Fatalf("resume should schedule a tick")
	}
}

func TestSkipToFinishPersistsSession(t *testing.T) {
	st, err := store.Open(filepath.Join(t.TempDir(), "rounds.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})

	w := model.Workout{WarmupSeconds: 5, RoundSeconds: 10, RestSeconds: 5, Rounds: 2}
	m := newTestModel(t, w, st, Options{Autostart: true, StartNow: true})
	m.Init()
	tick(m)

	var cmd tea.Cmd
	for i := 0; i < 4; i++ {
		_, cmd = m.Update(keyRunes("n"))
	}
	if !m.seq.Finished() || !m.completed {
		t.Fatalf("expected finished workout, phase %v", m.seq.Phase())
	}
	if cmd == nil {
		t.Fatalf("expected delayed return to settings")
	}
	if !strings.Contains(m.View(), "Workout complete") {
		t.Fatalf("expected completion notice")
	}

	m.Update(leaveTrainingMsg{gen: m.gen})
	if m.screen != screenSettings {
		t.Fatalf("expected settings screen after completion")
	}

	sessions, err := st.ListSessions(context.Background(), model.HistoryConfig{})
	if err != nil {
		t.Fatalf("list sessions: %v", err)
	}
	if len(sessions) != 1 {
		t.Fatalf("expected 1 saved session, got %d", len(sessions))
	}
	rec := sessions[0]
	if !rec.Completed || rec.Skips != 4 || rec.CountedSeconds != 1 || rec.RoundsCompleted != 2 {
		t.Fatalf("unexpected record: %+v", rec)
	}
}

func TestFinishByTicks(t *testing.T) {
	w := model.Workout{RoundSeconds: 2, RestSeconds: 0, Rounds: 2}
	m := newTestModel(t, w, nil, Options{Autostart: true, StartNow: true})
	m.Init()
	for i := 0; i < w.TotalSeconds()-1; i++ {
		if cmd := tick(m); cmd == nil {
			t.Fatalf("tick %d did not schedule the next one", i+1)
		}
	}
	tick(m)
	if !m.seq.Finished() || !m.completed {
		t.Fatalf("expected finished after %d ticks", w.TotalSeconds())
	}
	before := m.seq.Elapsed()
	m.Update(tickMsg{gen: m.gen - 1})
	if m.seq.Elapsed() != before {
		t.Fatalf("tick after finish changed state")
	}
}

func TestQuitConfirmation(t *testing.T) {
	m := newTestModel(t, model.Workout{RoundSeconds: 30, Rounds: 2}, nil, Options{Autostart: true, ConfirmQuit: true, StartNow: true})
	m.Init()

	m.Update(keyRunes("q"))
	if !m.confirm || !strings.Contains(m.View(), "Quit workout?") {
		t.Fatalf("expected confirmation dialog")
	}
	m.Update(keyRunes("c"))
	if m.confirm || m.screen != screenTraining {
		t.Fatalf("continue should close the dialog")
	}

	m.Update(keyRunes("q"))
	m.Update(keyRunes("q"))
	if m.screen != screenSettings || m.seq.Running() {
		t.Fatalf("quit should stop the workout and return to settings")
	}
}

func TestResetRestartsWorkout(t *testing.T) {
	m := newTestModel(t, model.Workout{WarmupSeconds: 5, RoundSeconds: 30, Rounds: 2}, nil, Options{Autostart: true, StartNow: true})
	m.Init()
	m.Update(keyRunes("n"))
	tick(m)
	_, cmd := m.Update(keyRunes("r"))
	if cmd == nil {
		t.Fatalf("reset with autostart should schedule a tick")
	}
	if m.seq.Phase() != (sequencer.Phase{Kind: sequencer.Warmup}) || m.seq.Remaining() != 5 || m.skips != 0 {
		t.Fatalf("reset = %v/%d skips=%d", m.seq.Phase(), m.seq.Remaining(), m.skips)
	}
}

func TestFooterShowsErrors(t *testing.T) {
	m := newTestModel(t, model.Workout{RoundSeconds: 30, Rounds: 1}, nil, Options{})
	m.errMsg = "boom"
	if out := m.renderFooter(); !strings.Contains(out, "boom") || !strings.Contains(out, "Start: enter") {
		t.Fatalf("unexpected footer: %q", out)
	}
}
