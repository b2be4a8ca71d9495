// Package tui provides the Bubble Tea workout interface.
package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/rounds/internal/model"
	"github.com/verte-zerg/rounds/internal/sequencer"
	"github.com/verte-zerg/rounds/internal/store"
)

type screen int

const (
	screenSettings screen = iota
	screenTraining
)

// finishDelay is how long the completion notice stays up before the
// settings screen returns.
const finishDelay = time.Second

// Options controls host behavior around the sequencer.
type Options struct {
	Autostart   bool
	ConfirmQuit bool
	StartNow    bool
}

type tickMsg struct {
	gen int
}

type leaveTrainingMsg struct {
	gen int
}

// Model implements the Bubble Tea workout UI.
type Model struct {
	workout model.Workout
	store   *store.Store
	opts    Options

	width  int
	height int

	screen   screen
	selected int

	seq       *sequencer.Sequencer
	gen       int
	confirm   bool
	completed bool

	startedAt time.Time
	skips     int

	errMsg string
	now    func() time.Time
}

// NewModel constructs a workout TUI model. st may be nil to disable
// history.
func NewModel(workout model.Workout, st *store.Store, opts Options) (*Model, error) {
	seq, err := sequencer.New(workout)
	if err != nil {
		return nil, err
	}
	m := &Model{
		workout: workout,
		store:   st,
		opts:    opts,
		seq:     seq,
		now:     time.Now,
	}
	seq.Subscribe(m.onEvent)
	return m, nil
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	if m.opts.StartNow {
		return m.beginWorkout()
	}
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tickMsg:
		return m, m.handleTick(msg)
	case leaveTrainingMsg:
		if msg.gen == m.gen && m.screen == screenTraining {
			m.screen = screenSettings
		}
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			if m.screen == screenTraining && !m.completed {
				m.saveSession()
			}
			return m, tea.Quit
		}
		if m.screen == screenSettings {
			return m.updateSettings(msg)
		}
		return m.updateTraining(msg)
	}
	return m, nil
}

// View implements tea.Model.
func (m *Model) View() string {
	var body string
	if m.screen == screenSettings {
		body = m.renderSettings()
	} else {
		body = m.renderTraining()
	}
	footer := m.renderFooter()
	if m.width == 0 || m.height == 0 {
		return body + "\n\n" + footer
	}
	if m.height < 3 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, body)
	}
	main := lipgloss.Place(m.width, m.height-1, lipgloss.Center, lipgloss.Center, body)
	footerLine := lipgloss.Place(m.width, 1, lipgloss.Center, lipgloss.Center, footer)
	return main + "\n" + footerLine
}

// Workout returns the plan currently selected on the settings screen.
func (m *Model) Workout() model.Workout {
	return m.workout
}

func (m *Model) onEvent(ev sequencer.Event) {
	if ev.Type == sequencer.Completed {
		m.completed = true
	}
}

func (m *Model) beginWorkout() tea.Cmd {
	if err := m.seq.Reconfigure(m.workout, m.opts.Autostart); err != nil {
		m.errMsg = err.Error()
		return nil
	}
	m.screen = screenTraining
	m.confirm = false
	m.completed = false
	m.startedAt = m.now()
	m.skips = 0
	m.errMsg = ""
	return m.restartTicks()
}

// restartTicks invalidates any tick in flight and schedules a new one
// when the sequencer is running.
func (m *Model) restartTicks() tea.Cmd {
	m.gen++
	if !m.seq.Running() {
		return nil
	}
	return m.scheduleTick()
}

func (m *Model) scheduleTick() tea.Cmd {
	gen := m.gen
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return tickMsg{gen: gen}
	})
}

func (m *Model) handleTick(msg tickMsg) tea.Cmd {
	if msg.gen != m.gen || m.screen != screenTraining {
		return nil
	}
	m.seq.Tick()
	if cmd := m.afterTransition(); cmd != nil {
		return cmd
	}
	if m.seq.Running() {
		return m.scheduleTick()
	}
	return nil
}

// afterTransition reacts to a finished workout: it persists the session
// and leaves the training screen after a short delay.
func (m *Model) afterTransition() tea.Cmd {
	if !m.completed || !m.seq.Finished() {
		return nil
	}
	m.confirm = false
	m.saveSession()
	m.gen++
	gen := m.gen
	return tea.Tick(finishDelay, func(time.Time) tea.Msg {
		return leaveTrainingMsg{gen: gen}
	})
}

func (m *Model) saveSession() {
	if m.store == nil {
		return
	}
	if !m.seq.Finished() && m.seq.Elapsed() == 0 {
		return
	}
	rec := model.SessionRecord{
		StartedAt:       m.startedAt,
		EndedAt:         m.now(),
		Workout:         m.seq.Config(),
		RoundsCompleted: m.seq.RoundsCompleted(),
		Completed:       m.seq.Finished(),
		Skips:           m.skips,
		CountedSeconds:  m.seq.Elapsed(),
	}
	if _, err := m.store.InsertSession(context.Background(), rec); err != nil {
		m.errMsg = "failed to save session: " + err.Error()
	}
}
