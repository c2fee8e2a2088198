package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/gameline/internal/model"
	"github.com/sadopc/gameline/internal/stats"
	"github.com/sadopc/gameline/internal/timeline"
	"github.com/sadopc/gameline/internal/tracker"
)

type timelineModel struct {
	tracker *tracker.Tracker
	width   int
	height  int

	kpis    stats.KPIs
	profile model.UserProfile
	groups  []timeline.YearGroup
	titles  map[string]string // game ID -> title

	offset int // first visible line of the history
}

func newTimelineModel(t *tracker.Tracker) timelineModel {
	return timelineModel{tracker: t}
}

func (m *timelineModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

type timelineDataMsg struct {
	kpis    stats.KPIs
	profile model.UserProfile
	groups  []timeline.YearGroup
	titles  map[string]string
}

func (m timelineModel) refresh() tea.Cmd {
	return func() tea.Msg {
		titles := make(map[string]string)
		for _, g := range m.tracker.Games() {
			titles[g.ID] = g.Title
		}
		return timelineDataMsg{
			kpis:    m.tracker.KPIs(),
			profile: m.tracker.Profile(),
			groups:  timeline.GroupByYear(m.tracker.Timeline()),
			titles:  titles,
		}
	}
}

func (m timelineModel) update(msg tea.Msg) (timelineModel, tea.Cmd) {
	switch msg := msg.(type) {
	case timelineDataMsg:
		m.kpis = msg.kpis
		m.profile = msg.profile
		m.groups = msg.groups
		m.titles = msg.titles
		if last := m.lineCount() - 1; m.offset > last {
			m.offset = 0
		}
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Up):
			if m.offset > 0 {
				m.offset--
			}
		case key.Matches(msg, keys.Down):
			if m.offset < m.lineCount()-1 {
				m.offset++
			}
		}
	}
	return m, nil
}

func (m timelineModel) view() string {
	if m.width < 20 {
		return "Terminal too small"
	}
	w := m.width - 4
	kpiPanel := m.renderKPIs(w)
	historyHeight := m.height - lipgloss.Height(kpiPanel) - 4
	return lipgloss.JoinVertical(lipgloss.Left, kpiPanel, m.renderHistory(w, historyHeight))
}

func (m timelineModel) renderKPIs(w int) string {
	name := m.profile.Name
	if name == "" {
		name = "player"
	}
	greeting := titleStyle.Render("Hello, " + name)

	pct := 0
	if m.kpis.AchievementsTotal > 0 {
		pct = m.kpis.AchievementsUnlocked * 100 / m.kpis.AchievementsTotal
	}
	line := fmt.Sprintf("%s %s   %s %s   %s %s",
		kpiStyle.Render(fmt.Sprintf("%d", m.kpis.Completed)), mutedStyle.Render("completed"),
		kpiStyle.Render(fmt.Sprintf("%d", m.kpis.Total)), mutedStyle.Render("in library"),
		goldStyle.Render(fmt.Sprintf("%d/%d", m.kpis.AchievementsUnlocked, m.kpis.AchievementsTotal)),
		mutedStyle.Render(fmt.Sprintf("achievements (%d%%)", pct)),
	)
	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, greeting, line))
}

// lines flattens the year groups into rendered rows.
func (m timelineModel) lines() []string {
	var out []string
	for _, g := range m.groups {
		out = append(out, highlightStyle.Bold(true).Render(g.Year))
		for _, e := range g.Entries {
			out = append(out, m.renderEntry(e))
		}
	}
	return out
}

func (m timelineModel) lineCount() int {
	n := 0
	for _, g := range m.groups {
		n += 1 + len(g.Entries)
	}
	return n
}

func (m timelineModel) renderEntry(e timeline.Entry) string {
	date := mutedStyle.Render(fmt.Sprintf("  %-6s ", formatDate(e.Date)))
	if e.Achievement != nil {
		return date + goldStyle.Render("★ Achievement  ") + titleStyle.Render(e.Achievement.Title)
	}
	ev := e.Event
	title, ok := m.titles[ev.GameID]
	if !ok {
		title = "Unknown game"
	}
	label := eventStyle(ev.Type).Render(fmt.Sprintf("● %-12s ", ev.Type.Label()))
	row := date + label + normalItemStyle.Render(title)
	if ev.PlatformID != "" {
		row += mutedStyle.Render("  " + model.PlatformName(ev.PlatformID))
	}
	if ev.Note != "" {
		row += subtitleStyle.Render("  \"" + truncate(ev.Note, 40) + "\"")
	}
	return row
}

func (m timelineModel) renderHistory(w, h int) string {
	title := titleStyle.Render("Timeline")
	if len(m.groups) == 0 {
		content := lipgloss.JoinVertical(lipgloss.Left,
			title,
			"",
			mutedStyle.Render("Nothing here yet. Press 2 and then n to add your first game."),
		)
		return panelStyle.Width(w).Render(content)
	}

	visible := h - 4
	if visible < 3 {
		visible = 3
	}
	lines := m.lines()
	start := m.offset
	if start > len(lines) {
		start = len(lines)
	}
	end := start + visible
	if end > len(lines) {
		end = len(lines)
	}

	rows := []string{title, ""}
	rows = append(rows, lines[start:end]...)
	if end < len(lines) {
		rows = append(rows, mutedStyle.Render(fmt.Sprintf("  … %d more", len(lines)-end)))
	}
	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
