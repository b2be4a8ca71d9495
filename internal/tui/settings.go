package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/rounds/internal/model"
	"github.com/verte-zerg/rounds/internal/stats"
)

type setting struct {
	title string
	step  int
	min   int
	max   int
	field func(*model.Workout) *int
	show  func(int) string
}

var settings = []setting{
	{
		title: "Number of Rounds",
		step:  1,
		min:   1,
		max:   99,
		field: func(w *model.Workout) *int { return &w.Rounds },
		show:  func(v int) string { return fmt.Sprintf("%d", v) },
	},
	{
		title: "Round Duration",
		step:  15,
		min:   15,
		max:   60 * 60,
		field: func(w *model.Workout) *int { return &w.RoundSeconds },
		show:  stats.FormatClock,
	},
	{
		title: "Rest Duration",
		step:  15,
		min:   0,
		max:   60 * 60,
		field: func(w *model.Workout) *int { return &w.RestSeconds },
		show:  stats.FormatClock,
	},
	{
		title: "Get Ready",
		step:  5,
		min:   0,
		max:   10 * 60,
		field: func(w *model.Workout) *int { return &w.WarmupSeconds },
		show:  stats.FormatClock,
	},
}

var (
	titleStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	settingStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#B0B0B0"))
	selectedStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true)
	totalStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	settingsPanelStyle = lipgloss.NewStyle().
				Padding(1, 3).
				Border(lipgloss.RoundedBorder(), true).
				BorderForeground(lipgloss.Color("#4A4A4A"))
)

func (m *Model) updateSettings(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc":
		return m, tea.Quit
	case "up", "k":
		m.selected = (m.selected + len(settings) - 1) % len(settings)
	case "down", "j", "tab":
		m.selected = (m.selected + 1) % len(settings)
	case "left", "h", "-":
		m.adjust(-1)
	case "right", "l", "+", "=":
		m.adjust(1)
	case "enter", " ":
		return m, m.beginWorkout()
	}
	return m, nil
}

func (m *Model) adjust(direction int) {
	s := settings[m.selected]
	v := s.field(&m.workout)
	*v = min(max(*v+direction*s.step, s.min), s.max)
}

func (m *Model) renderSettings() string {
	lines := []string{titleStyle.Render("Workout Settings"), ""}
	for i, s := range settings {
		value := s.show(*s.field(&m.workout))
		line := fmt.Sprintf("%-18s  < %5s >", s.title, value)
		if i == m.selected {
			lines = append(lines, selectedStyle.Render("> "+line))
		} else {
			lines = append(lines, settingStyle.Render("  "+line))
		}
	}
	lines = append(lines, "", totalStyle.Render("Total Training Length  "+stats.FormatTotal(m.workout.TotalSeconds())))
	return settingsPanelStyle.Render(strings.Join(lines, "\n"))
}
