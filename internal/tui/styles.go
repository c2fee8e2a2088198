package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/gameline/internal/model"
)

// Color palette
var (
	colorPrimary   = lipgloss.Color("#6C63FF")
	colorSecondary = lipgloss.Color("#2EC4B6")
	colorAccent    = lipgloss.Color("#FF6B6B")
	colorMuted     = lipgloss.Color("#666666")
	colorSuccess   = lipgloss.Color("#2ECC71")
	colorWarning   = lipgloss.Color("#F39C12")
	colorError     = lipgloss.Color("#E74C3C")
	colorFg        = lipgloss.Color("#C0CAF5")
	colorSubtle    = lipgloss.Color("#414868")
	colorHighlight = lipgloss.Color("#7AA2F7")
	colorGold      = lipgloss.Color("#F1C40F")
)

// Bucket colors, shared by the stats chart and the status badges.
var (
	colorPlatinum = colorGold
	colorFinished = colorSuccess
	colorDropped  = colorError
	colorStarted  = colorHighlight
	colorPaused   = colorWarning
)

// Styles
var (
	// Tabs
	activeTabStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary).
			Border(lipgloss.NormalBorder(), false, false, true, false).
			BorderForeground(colorPrimary).
			Padding(0, 2)

	inactiveTabStyle = lipgloss.NewStyle().
				Foreground(colorMuted).
				Padding(0, 2)

	// Panels
	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorSubtle).
			Padding(1, 2)

	activePanelStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(colorPrimary).
				Padding(1, 2)

	// KPI numbers
	kpiStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary)

	// Achievement toast
	toastStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorGold)

	// Text
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorFg)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	accentStyle = lipgloss.NewStyle().
			Foreground(colorAccent)

	successStyle = lipgloss.NewStyle().
			Foreground(colorSuccess)

	warningStyle = lipgloss.NewStyle().
			Foreground(colorWarning)

	errorStyle = lipgloss.NewStyle().
			Foreground(colorError)

	mutedStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	highlightStyle = lipgloss.NewStyle().
			Foreground(colorHighlight)

	goldStyle = lipgloss.NewStyle().
			Foreground(colorGold)

	// Header/footer
	headerStyle = lipgloss.NewStyle().
			Padding(0, 1)

	footerStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			Padding(0, 1)

	// List items
	selectedItemStyle = lipgloss.NewStyle().
				Foreground(colorPrimary).
				Bold(true)

	normalItemStyle = lipgloss.NewStyle().
			Foreground(colorFg)
)

func statusStyle(s model.GameStatus) lipgloss.Style {
	switch s {
	case model.StatusCompleted:
		return lipgloss.NewStyle().Foreground(colorFinished)
	case model.StatusDropped:
		return lipgloss.NewStyle().Foreground(colorDropped)
	case model.StatusPaused:
		return lipgloss.NewStyle().Foreground(colorPaused)
	default:
		return lipgloss.NewStyle().Foreground(colorStarted)
	}
}

func eventStyle(t model.EventType) lipgloss.Style {
	switch t {
	case model.EventFinish:
		return lipgloss.NewStyle().Foreground(colorFinished)
	case model.EventDrop:
		return lipgloss.NewStyle().Foreground(colorDropped)
	case model.EventPause:
		return lipgloss.NewStyle().Foreground(colorPaused)
	case model.EventReplay:
		return lipgloss.NewStyle().Foreground(colorSecondary)
	default:
		return lipgloss.NewStyle().Foreground(colorStarted)
	}
}
