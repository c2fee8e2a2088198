package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/gameline/internal/model"
	"github.com/sadopc/gameline/internal/tracker"
)

type settingsModel struct {
	tracker *tracker.Tracker
	width   int
	height  int

	profile  model.UserProfile
	settings model.AppSettings

	formActive bool
	form       *huh.Form
	resetting  bool

	// Form values as pointers (survive value copies)
	name      *string
	avatar    *string
	apiKey    *string
	platforms *[]string
	confirm   *bool
}

func newSettingsModel(t *tracker.Tracker) settingsModel {
	name, avatar, apiKey := "", "", ""
	var platforms []string
	confirm := false
	return settingsModel{
		tracker:   t,
		name:      &name,
		avatar:    &avatar,
		apiKey:    &apiKey,
		platforms: &platforms,
		confirm:   &confirm,
	}
}

func (s *settingsModel) setSize(w, h int) {
	s.width = w
	s.height = h
}

type settingsDataMsg struct {
	profile  model.UserProfile
	settings model.AppSettings
}

func (s settingsModel) refresh() tea.Cmd {
	return func() tea.Msg {
		return settingsDataMsg{profile: s.tracker.Profile(), settings: s.tracker.Settings()}
	}
}

func (s settingsModel) update(msg tea.Msg) (settingsModel, tea.Cmd) {
	if msg, ok := msg.(settingsDataMsg); ok {
		s.profile = msg.profile
		s.settings = msg.settings
		return s, nil
	}
	if s.formActive && s.form != nil {
		return s.updateForm(msg)
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, keys.Enter), key.Matches(msg, keys.New):
			return s.showForm()
		case key.Matches(msg, keys.Reset):
			return s.showResetForm()
		}
	}
	return s, nil
}

func (s settingsModel) showForm() (settingsModel, tea.Cmd) {
	*s.name = s.profile.Name
	*s.avatar = s.profile.Avatar
	*s.apiKey = s.settings.RawgAPIKey
	*s.platforms = append([]string{}, s.settings.ActivePlatforms...)

	options := make([]huh.Option[string], len(model.Platforms))
	for i, p := range model.Platforms {
		options[i] = huh.NewOption(p.Name, p.ID).Selected(s.settings.IsActive(p.ID))
	}

	s.resetting = false
	s.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Name").Value(s.name),
			huh.NewInput().Title("Avatar URL").Value(s.avatar),
		).Title("Profile"),
		huh.NewGroup(
			huh.NewInput().Title("RAWG API key").
				Description("Leave empty to search the demo catalog").
				EchoMode(huh.EchoModePassword).
				Value(s.apiKey),
			huh.NewMultiSelect[string]().Title("Active platforms").
				Description("Offered first when finishing or dropping a game").
				Options(options...).
				Height(12).
				Value(s.platforms),
		).Title("Library"),
	).WithShowHelp(true).WithShowErrors(true)

	s.formActive = true
	return s, s.form.Init()
}

func (s settingsModel) showResetForm() (settingsModel, tea.Cmd) {
	*s.confirm = false
	s.resetting = true
	s.form = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Erase every game, event and achievement?").
				Description("This cannot be undone. Export a backup first.").
				Affirmative("Erase").
				Negative("Cancel").
				Value(s.confirm),
		),
	).WithShowHelp(true)

	s.formActive = true
	return s, s.form.Init()
}

func (s settingsModel) updateForm(msg tea.Msg) (settingsModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			s.formActive = false
			s.form = nil
			return s, nil
		}
	}

	form, cmd := s.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		s.form = f
	}

	if s.form.State == huh.StateCompleted {
		s.formActive = false
		s.form = nil
		if s.resetting {
			if !*s.confirm {
				return s, nil
			}
			return s, s.resetCmd()
		}
		return s, s.saveCmd()
	}

	return s, cmd
}

func (s settingsModel) saveCmd() tea.Cmd {
	profile := model.UserProfile{Name: strings.TrimSpace(*s.name), Avatar: strings.TrimSpace(*s.avatar)}
	settings := model.AppSettings{
		ActivePlatforms: append([]string{}, *s.platforms...),
		RawgAPIKey:      strings.TrimSpace(*s.apiKey),
	}
	return func() tea.Msg {
		if err := s.tracker.UpdateProfile(profile); err != nil {
			return mutationMsg{err: err}
		}
		if err := s.tracker.UpdateSettings(settings); err != nil {
			return mutationMsg{err: err}
		}
		return mutationMsg{text: "Settings saved"}
	}
}

func (s settingsModel) resetCmd() tea.Cmd {
	return func() tea.Msg {
		if err := s.tracker.Reset(); err != nil {
			return mutationMsg{err: err}
		}
		return mutationMsg{text: "All data erased"}
	}
}

func (s settingsModel) view() string {
	w := s.width - 4

	if s.formActive && s.form != nil {
		title := titleStyle.Render("Settings")
		if s.resetting {
			title = errorStyle.Bold(true).Render("Reset")
		}
		return panelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, title, "", s.form.View()),
		)
	}

	title := titleStyle.Render("Settings")
	hint := mutedStyle.Render("Press enter to edit settings, R to erase all data")

	name := s.profile.Name
	if name == "" {
		name = mutedStyle.Render("(not set)")
	}

	var rows []string
	rows = append(rows, title, "")
	rows = append(rows, settingRow("Name", highlightStyle.Render(name)))
	rows = append(rows, settingRow("Avatar", highlightStyle.Render(truncate(s.profile.Avatar, w-32))))
	rows = append(rows, settingRow("RAWG API key", highlightStyle.Render(maskKey(s.settings.RawgAPIKey))))
	rows = append(rows, settingRow("Active platforms",
		highlightStyle.Render(fmt.Sprintf("%d", len(s.settings.ActivePlatforms)))))

	for _, line := range wrapNames(s.settings.ActivePlatforms, w-8) {
		rows = append(rows, "    "+mutedStyle.Render(line))
	}

	rows = append(rows, "", hint)

	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func settingRow(label, value string) string {
	return fmt.Sprintf("  %s %s", lipgloss.NewStyle().Width(24).Render(label), value)
}

// maskKey keeps the last four characters of an API key visible.
func maskKey(k string) string {
	if k == "" {
		return "demo mode"
	}
	if len(k) <= 4 {
		return strings.Repeat("•", len(k))
	}
	return strings.Repeat("•", 8) + k[len(k)-4:]
}

// wrapNames lays platform names out in lines no wider than width.
func wrapNames(ids []string, width int) []string {
	var lines []string
	var cur string
	for _, id := range ids {
		name := model.PlatformName(id)
		switch {
		case cur == "":
			cur = name
		case len(cur)+2+len(name) > width:
			lines = append(lines, cur)
			cur = name
		default:
			cur += ", " + name
		}
	}
	if cur != "" {
		lines = append(lines, cur)
	}
	return lines
}
