package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/rounds/internal/sequencer"
	"github.com/verte-zerg/rounds/internal/stats"
)

var phaseColors = map[sequencer.Kind]lipgloss.Color{
	sequencer.Warmup:   lipgloss.Color("#EB981C"),
	sequencer.Active:   lipgloss.Color("#E74C3C"),
	sequencer.Rest:     lipgloss.Color("#3498DB"),
	sequencer.Finished: lipgloss.Color("#2ECC71"),
}

var (
	chipStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFFFF")).Bold(true).Padding(0, 2)
	clockStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F0F0F0")).
			Bold(true).
			Padding(1, 4).
			Border(lipgloss.RoundedBorder(), true)
	pausedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	footerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	modalStyle  = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#C89A3A")).
			Padding(1, 2)
)

func (m *Model) updateTraining(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.completed {
		if msg.String() == "q" || msg.String() == "esc" || msg.String() == "enter" {
			m.gen++
			m.screen = screenSettings
		}
		return m, nil
	}
	if m.confirm {
		switch msg.String() {
		case "q", "y", "enter":
			return m, m.leaveTraining()
		case "c", "n", "esc":
			m.confirm = false
		}
		return m, nil
	}
	switch msg.String() {
	case " ", "p":
		m.seq.Toggle()
		return m, m.restartTicks()
	case "n", "right", "tab":
		m.skips++
		m.seq.Skip()
		if cmd := m.afterTransition(); cmd != nil {
			return m, cmd
		}
		return m, nil
	case "r":
		m.seq.Reset(m.opts.Autostart)
		m.startedAt = m.now()
		m.skips = 0
		return m, m.restartTicks()
	case "q", "esc":
		if m.opts.ConfirmQuit {
			m.confirm = true
			return m, nil
		}
		return m, m.leaveTraining()
	}
	return m, nil
}

func (m *Model) leaveTraining() tea.Cmd {
	m.seq.Pause()
	m.saveSession()
	m.gen++
	m.confirm = false
	m.screen = screenSettings
	return nil
}

func (m *Model) phaseColor() lipgloss.Color {
	return phaseColors[m.seq.Phase().Kind]
}

func (m *Model) renderTraining() string {
	if m.confirm {
		return modalStyle.Render("Quit workout?\n\n[c] Continue   [q] Quit")
	}
	label := m.seq.Label()
	if m.seq.Finished() {
		label = "Workout complete"
	}
	chip := chipStyle.Background(m.phaseColor()).Render(label)
	clock := clockStyle.BorderForeground(m.phaseColor()).Render(stats.FormatClock(m.seq.Remaining()))

	status := "Elapsed " + stats.FormatClock(m.seq.Elapsed()) + " of " + stats.FormatClock(m.seq.Config().TotalSeconds())
	if !m.seq.Running() && !m.seq.Finished() {
		status = "Paused · " + status
	}
	return lipgloss.JoinVertical(lipgloss.Center, chip, "", clock, "", pausedStyle.Render(status))
}

func (m *Model) renderFooter() string {
	var help string
	switch {
	case m.screen == screenSettings:
		help = "Select: up/down  Adjust: left/right  Start: enter  Quit: q"
	case m.completed:
		help = "Back: enter"
	case m.confirm:
		help = "Continue: c  Quit: q"
	default:
		help = strings.Join([]string{"Pause/Resume: space", "Skip: n", "Reset: r", "Quit: q"}, "  ")
	}
	footer := footerStyle.Render(help)
	if m.errMsg != "" {
		footer += "  " + errorStyle.Render(m.errMsg)
	}
	return footer
}
