package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/gameline/internal/export"
	"github.com/sadopc/gameline/internal/lookup"
	"github.com/sadopc/gameline/internal/tracker"
)

// toastTicks is how many ticks an achievement toast stays in the footer.
const toastTicks = 3

// Options carries the settings the TUI takes from the config file.
type Options struct {
	// ExportDir receives exported files; empty means the home directory.
	ExportDir string
	// RawgAPIKey is used when the in-app settings have no key.
	RawgAPIKey string
}

// App is the root Bubble Tea model.
type App struct {
	tracker  *tracker.Tracker
	notifier *Notifier
	opts     Options
	width    int
	height   int

	activeView    viewState
	showHelp      bool
	exportPicking bool
	exportCursor  int

	timeline     timelineModel
	library      libraryModel
	stats        statsModel
	achievements achievementsModel
	settings     settingsModel

	help      help.Model
	status    string
	statusErr bool
	toast     string
	toastLeft int
}

func NewApp(t *tracker.Tracker, c *lookup.Client, n *Notifier, opts Options) App {
	h := help.New()
	h.ShowAll = false

	return App{
		tracker:      t,
		notifier:     n,
		opts:         opts,
		activeView:   viewTimeline,
		timeline:     newTimelineModel(t),
		library:      newLibraryModel(t, c, opts.RawgAPIKey),
		stats:        newStatsModel(t),
		achievements: newAchievementsModel(t),
		settings:     newSettingsModel(t),
		help:         h,
	}
}

func (a App) Init() tea.Cmd {
	return tea.Batch(
		a.refreshAll(),
		tickCmd(),
	)
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		contentHeight := a.height - 4 // header + footer
		a.timeline.setSize(a.width, contentHeight)
		a.library.setSize(a.width, contentHeight)
		a.stats.setSize(a.width, contentHeight)
		a.achievements.setSize(a.width, contentHeight)
		a.settings.setSize(a.width, contentHeight)
		return a, nil

	case tea.KeyMsg:
		// Export picker
		if a.exportPicking {
			return a.updateExportPicker(msg)
		}

		// If a child view is capturing input (e.g. form), delegate first.
		if a.isFormActive() {
			return a.updateActiveView(msg)
		}

		switch {
		case key.Matches(msg, keys.Export):
			a.exportPicking = true
			a.exportCursor = 0
			return a, nil
		case key.Matches(msg, keys.Quit):
			return a, tea.Quit
		case key.Matches(msg, keys.Help):
			a.showHelp = !a.showHelp
			a.help.ShowAll = a.showHelp
			return a, nil
		case key.Matches(msg, keys.Tab1):
			return a.switchTo(viewTimeline)
		case key.Matches(msg, keys.Tab2):
			return a.switchTo(viewLibrary)
		case key.Matches(msg, keys.Tab3):
			return a.switchTo(viewStats)
		case key.Matches(msg, keys.Tab4):
			return a.switchTo(viewAchievements)
		case key.Matches(msg, keys.Tab5):
			return a.switchTo(viewSettings)
		case key.Matches(msg, keys.Tab):
			return a.switchTo((a.activeView + 1) % viewState(len(viewNames)))
		}

	case tickMsg:
		a.advanceToast()
		return a, tickCmd()

	case statusMsg:
		a.status = msg.text
		a.statusErr = msg.isError
		return a, nil

	case mutationMsg:
		if msg.err != nil {
			a.status = msg.err.Error()
			a.statusErr = true
			return a, nil
		}
		a.status = msg.text
		a.statusErr = false
		if a.toast == "" {
			a.advanceToast()
		}
		return a, a.refreshAll()

	case exportDoneMsg:
		a.status = "Exported to " + msg.path
		a.statusErr = false
		a.exportPicking = false
		return a, nil

	// Data replies go to their view even when it is not active.
	case timelineDataMsg:
		var cmd tea.Cmd
		a.timeline, cmd = a.timeline.update(msg)
		return a, cmd
	case libraryDataMsg, searchResultsMsg:
		var cmd tea.Cmd
		a.library, cmd = a.library.update(msg)
		return a, cmd
	case statsDataMsg:
		var cmd tea.Cmd
		a.stats, cmd = a.stats.update(msg)
		return a, cmd
	case achievementsDataMsg:
		var cmd tea.Cmd
		a.achievements, cmd = a.achievements.update(msg)
		return a, cmd
	case settingsDataMsg:
		var cmd tea.Cmd
		a.settings, cmd = a.settings.update(msg)
		return a, cmd
	}

	return a.updateActiveView(msg)
}

func (a App) switchTo(v viewState) (tea.Model, tea.Cmd) {
	a.activeView = v
	return a, a.refreshCurrentView()
}

// advanceToast counts the current toast down and shows the next pending
// achievement once it expires.
func (a *App) advanceToast() {
	if a.toastLeft > 0 {
		a.toastLeft--
		if a.toastLeft > 0 {
			return
		}
		a.toast = ""
	}
	if a.notifier == nil {
		return
	}
	if note, ok := a.notifier.Next(); ok {
		a.toast = "🏆 " + note.Title
		a.toastLeft = toastTicks
	}
}

func (a App) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.activeView {
	case viewTimeline:
		a.timeline, cmd = a.timeline.update(msg)
	case viewLibrary:
		a.library, cmd = a.library.update(msg)
	case viewStats:
		a.stats, cmd = a.stats.update(msg)
	case viewAchievements:
		a.achievements, cmd = a.achievements.update(msg)
	case viewSettings:
		a.settings, cmd = a.settings.update(msg)
	}
	return a, cmd
}

func (a App) isFormActive() bool {
	switch a.activeView {
	case viewLibrary:
		return a.library.capturing()
	case viewSettings:
		return a.settings.formActive
	}
	return false
}

func (a App) refreshCurrentView() tea.Cmd {
	switch a.activeView {
	case viewTimeline:
		return a.timeline.refresh()
	case viewLibrary:
		return a.library.refresh()
	case viewStats:
		return a.stats.refresh()
	case viewAchievements:
		return a.achievements.refresh()
	case viewSettings:
		return a.settings.refresh()
	}
	return nil
}

func (a App) refreshAll() tea.Cmd {
	return tea.Batch(
		a.timeline.refresh(),
		a.library.refresh(),
		a.stats.refresh(),
		a.achievements.refresh(),
		a.settings.refresh(),
	)
}

func (a App) View() string {
	if a.width == 0 {
		return "Loading..."
	}

	header := a.renderHeader()
	footer := a.renderFooter()

	var content string
	switch a.activeView {
	case viewTimeline:
		content = a.timeline.view()
	case viewLibrary:
		content = a.library.view()
	case viewStats:
		content = a.stats.view()
	case viewAchievements:
		content = a.achievements.view()
	case viewSettings:
		content = a.settings.view()
	}

	// Calculate available height for content
	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := a.height - headerHeight - footerHeight
	if contentHeight < 1 {
		contentHeight = 1
	}

	// Show export picker overlay
	if a.exportPicking {
		content = a.renderExportPicker()
	}

	content = lipgloss.NewStyle().
		Width(a.width).
		Height(contentHeight).
		Render(content)

	return lipgloss.JoinVertical(lipgloss.Left, header, content, footer)
}

func (a App) renderHeader() string {
	var tabs []string
	for i, name := range viewNames {
		if viewState(i) == a.activeView {
			tabs = append(tabs, activeTabStyle.Render(name))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(name))
		}
	}

	tabRow := lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...)

	title := lipgloss.NewStyle().Bold(true).Foreground(colorPrimary).Render("gameline")
	gap := a.width - lipgloss.Width(title) - lipgloss.Width(tabRow) - 4
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return headerStyle.Render(
		lipgloss.JoinHorizontal(lipgloss.Bottom, title, spacer, tabRow),
	)
}

func (a App) renderFooter() string {
	helpView := a.help.View(keys)

	status := ""
	if a.status != "" {
		if a.statusErr {
			status = errorStyle.Render(" " + a.status)
		} else {
			status = mutedStyle.Render(" " + a.status)
		}
	}

	toast := ""
	if a.toast != "" {
		toast = toastStyle.Render(a.toast) + " "
	}

	left := footerStyle.Render(helpView)
	right := toast + status

	gap := a.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return lipgloss.JoinHorizontal(lipgloss.Bottom, left, spacer, right)
}

func (a App) renderExportPicker() string {
	title := titleStyle.Render("Export Format")
	formats := []string{"CSV (timeline events)", "JSON (full backup)"}
	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")
	for i, f := range formats {
		cursor := "  "
		style := normalItemStyle
		if i == a.exportCursor {
			cursor = "> "
			style = selectedItemStyle
		}
		rows = append(rows, style.Render(cursor+f))
	}
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  enter: export  esc: cancel"))

	w := a.width - 4
	return activePanelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (a App) updateExportPicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if a.exportCursor > 0 {
			a.exportCursor--
		}
	case key.Matches(msg, keys.Down):
		if a.exportCursor < 1 {
			a.exportCursor++
		}
	case key.Matches(msg, keys.Enter):
		a.exportPicking = false
		return a, a.doExport(a.exportCursor)
	case key.Matches(msg, keys.Back):
		a.exportPicking = false
	}
	return a, nil
}

func (a App) exportDir() (string, error) {
	dir := a.opts.ExportDir
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		dir = home
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	return dir, nil
}

func (a App) doExport(format int) tea.Cmd {
	return func() tea.Msg {
		dir, err := a.exportDir()
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Export error: %v", err), isError: true}
		}

		now := time.Now()
		var path string
		if format == 0 {
			path = filepath.Join(dir, export.EventsFileName(now))
			if err := export.ToCSV(a.tracker.Events(), a.tracker.Games(), path); err != nil {
				return statusMsg{text: fmt.Sprintf("CSV error: %v", err), isError: true}
			}
		} else {
			path = filepath.Join(dir, export.BackupFileName(now))
			b := export.NewBackup(a.tracker.Profile(), a.tracker.Settings(), a.tracker.Games(),
				a.tracker.Events(), a.tracker.Achievements(), now)
			if err := export.ToJSON(b, path); err != nil {
				return statusMsg{text: fmt.Sprintf("JSON error: %v", err), isError: true}
			}
		}

		return exportDoneMsg{path: path}
	}
}
