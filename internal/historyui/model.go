// Package historyui provides the Bubble Tea workout history browser.
package historyui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/rounds/internal/model"
	"github.com/verte-zerg/rounds/internal/stats"
	"github.com/verte-zerg/rounds/internal/store"
)

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	cardStyle   = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#4A4A4A"))
	cardTitleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	cardValueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	tableMutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#B8B8B8"))
)

var columnWidths = []int{16, 22, 6, 6, 20}

// Model implements the Bubble Tea history UI.
type Model struct {
	store *store.Store
	cfg   model.HistoryConfig

	report stats.Report
	errMsg string
	table  table.Model

	width  int
	height int
}

// NewModel constructs a history UI model.
func NewModel(st *store.Store, cfg model.HistoryConfig) *Model {
	m := &Model{
		store: st,
		cfg:   cfg,
		table: table.New(table.WithFocused(true)),
	}
	m.table.SetStyles(tableStyles())
	m.refresh()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateLayout()
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			return m, tea.Quit
		case "c":
			m.cfg.CompletedOnly = !m.cfg.CompletedOnly
			m.refresh()
			return m, nil
		}
		var cmd tea.Cmd
		m.table, cmd = m.table.Update(msg)
		return m, cmd
	}
	return m, nil
}

// View implements tea.Model.
func (m *Model) View() string {
	parts := []string{m.renderCards(), ""}
	if len(m.report.Sessions) == 0 {
		parts = append(parts, "No workouts found.")
	} else {
		parts = append(parts, tableMutedStyle.Render(m.table.View()))
	}
	parts = append(parts, "", m.renderFooter())
	return strings.Join(parts, "\n")
}

func (m *Model) refresh() {
	report, err := stats.BuildReport(context.Background(), m.store, m.cfg)
	if err != nil {
		m.errMsg = err.Error()
		m.report = stats.Report{}
		m.table.SetRows(nil)
		return
	}
	m.errMsg = ""
	m.report = report
	m.table.SetColumns(buildColumns())
	m.table.SetRows(buildRows(report.Sessions))
	m.table.GotoTop()
}

func (m *Model) updateLayout() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	cardsHeight := lipgloss.Height(m.renderCards())
	m.table.SetWidth(m.width)
	m.table.SetHeight(max(1, m.height-cardsHeight-3))
}

func (m *Model) renderCards() string {
	sum := m.report.Summary
	cards := []string{
		metricCard("Workouts", fmt.Sprintf("%d", sum.Sessions)),
		metricCard("Completed", fmt.Sprintf("%d", sum.Completed)),
		metricCard("Rounds", fmt.Sprintf("%d", sum.Rounds)),
		metricCard("Training", stats.FormatTotal(sum.CountedSeconds)),
	}
	if m.width > 0 && m.width < 60 {
		return strings.Join(cards, "\n")
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cards...)
}

func (m *Model) renderFooter() string {
	filter := "all"
	if m.cfg.CompletedOnly {
		filter = "completed"
	}
	help := headerStyle.Render(fmt.Sprintf("Showing: %s  Toggle completed: c  Scroll: up/down  Quit: q", filter))
	if m.errMsg != "" {
		return help + "\n" + errorStyle.Render(m.errMsg)
	}
	return help
}

func metricCard(label, value string) string {
	content := fmt.Sprintf("%s\n%s", cardTitleStyle.Render(label), cardValueStyle.Render(value))
	return cardStyle.Render(content)
}

func buildColumns() []table.Column {
	headers := stats.HistoryHeaders()
	cols := make([]table.Column, len(headers))
	for i, title := range headers {
		cols[i] = table.Column{Title: title, Width: columnWidths[i]}
	}
	return cols
}

// buildRows lists the newest session first.
func buildRows(sessions []model.SessionRecord) []table.Row {
	rows := make([]table.Row, 0, len(sessions))
	for i := len(sessions) - 1; i >= 0; i-- {
		rows = append(rows, table.Row(stats.HistoryRow(sessions[i])))
	}
	return rows
}

func tableStyles() table.Styles {
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(lipgloss.Color("#4A4A4A")).
		Foreground(lipgloss.Color("#C0C0C0")).
		Bold(true).
		PaddingLeft(0)
	styles.Cell = styles.Cell.PaddingLeft(0)
	styles.Selected = styles.Cell.
		Foreground(lipgloss.Color("#F0F0F0")).
		Bold(true)
	return styles
}
