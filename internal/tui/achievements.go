package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/gameline/internal/model"
	"github.com/sadopc/gameline/internal/tracker"
)

type achievementsModel struct {
	tracker *tracker.Tracker
	width   int
	height  int

	achievements []model.Achievement
	cursor       int
}

func newAchievementsModel(t *tracker.Tracker) achievementsModel {
	return achievementsModel{tracker: t}
}

func (m *achievementsModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

type achievementsDataMsg struct {
	achievements []model.Achievement
}

func (m achievementsModel) refresh() tea.Cmd {
	return func() tea.Msg {
		return achievementsDataMsg{achievements: m.tracker.Achievements()}
	}
}

func (m achievementsModel) update(msg tea.Msg) (achievementsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case achievementsDataMsg:
		m.achievements = msg.achievements
		if m.cursor >= len(m.achievements) {
			m.cursor = max(0, len(m.achievements)-1)
		}
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, keys.Down):
			if m.cursor < len(m.achievements)-1 {
				m.cursor++
			}
		}
	}
	return m, nil
}

func (m achievementsModel) unlocked() int {
	n := 0
	for _, a := range m.achievements {
		if a.Unlocked {
			n++
		}
	}
	return n
}

func (m achievementsModel) view() string {
	w := m.width - 4

	header := titleStyle.Render("Achievements") + "  " +
		goldStyle.Render(fmt.Sprintf("%d/%d unlocked", m.unlocked(), len(m.achievements)))

	rows := []string{header, ""}

	// Each achievement takes two lines.
	visible := (m.height - 8) / 2
	if visible < 2 {
		visible = 2
	}
	start := 0
	if m.cursor >= visible {
		start = m.cursor - visible + 1
	}
	end := min(start+visible, len(m.achievements))

	for i := start; i < end; i++ {
		rows = append(rows, m.renderAchievement(m.achievements[i], i == m.cursor, w)...)
	}

	rows = append(rows, "", mutedStyle.Render("  ↑/↓: scroll"))
	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func (m achievementsModel) renderAchievement(a model.Achievement, selected bool, w int) []string {
	title, desc := a.Display()

	cursor := "  "
	if selected {
		cursor = "> "
	}

	badge := mutedStyle.Render("○")
	titleStyled := normalItemStyle.Render(title)
	if a.Unlocked {
		badge = goldStyle.Render("★")
		titleStyled = highlightStyle.Render(title)
	}
	if selected {
		titleStyled = selectedItemStyle.Render(title)
	}

	right := ""
	switch {
	case a.Unlocked && a.UnlockedDate != "":
		right = successStyle.Render("Unlocked " + formatUnlockDate(a.UnlockedDate))
	case a.Kind == model.KindProgressive && !(a.IsSecret && !a.Unlocked):
		right = progressBar(a.Progress(), a.Target, 12)
	}

	first := cursor + badge + " " + titleStyled
	gap := w - 6 - lipgloss.Width(first) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return []string{
		first + strings.Repeat(" ", gap) + right,
		"    " + mutedStyle.Render(truncate(desc, w-8)),
	}
}

// formatUnlockDate shows the day part of an unlock timestamp.
func formatUnlockDate(s string) string {
	if d, ok := model.ParseDay(s); ok {
		return d.Time().Format("Jan 02, 2006")
	}
	return s
}
