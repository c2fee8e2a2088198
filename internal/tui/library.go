package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/gameline/internal/library"
	"github.com/sadopc/gameline/internal/lookup"
	"github.com/sadopc/gameline/internal/model"
	"github.com/sadopc/gameline/internal/tracker"
)

const (
	formSearch = "search"
	formGame   = "game"
	formFinish = "finish"
	formDrop   = "drop"
	formFilter = "filter"
)

// formValues backs every huh form of the library view. It lives behind a
// pointer so the values survive value copies of the model.
type formValues struct {
	Query string

	Title      string
	Cover      string
	Genres     string
	Platforms  []string
	SeriesID   string
	Status     model.GameStatus
	Perception model.Perception
	Comment    string

	GameID   string
	Date     string
	Platform string
	Full     bool
	Rating   int // 0 means no rating
	Note     string

	FilterStatus   model.GameStatus
	FilterPlatform string
	FilterOnly100  bool
}

type libraryModel struct {
	tracker  *tracker.Tracker
	lookup   *lookup.Client
	fallback string // API key used when the settings have none
	width    int
	height   int

	games    []model.Game
	filtered []model.Game
	filter   library.Filter
	cursor   int

	search    textinput.Model
	searching bool

	candidates []lookup.Candidate
	picking    bool
	pickCursor int

	formActive bool
	form       *huh.Form
	formType   string
	fv         *formValues
}

func newLibraryModel(t *tracker.Tracker, c *lookup.Client, fallbackKey string) libraryModel {
	ti := textinput.New()
	ti.Placeholder = "Search by title"
	ti.Prompt = "/ "
	ti.CharLimit = 80
	return libraryModel{
		tracker:  t,
		lookup:   c,
		fallback: fallbackKey,
		search:   ti,
		fv:       &formValues{},
	}
}

func (l *libraryModel) setSize(w, h int) {
	l.width = w
	l.height = h
	l.search.Width = w - 12
}

// capturing reports whether the view is consuming raw key input.
func (l libraryModel) capturing() bool {
	return l.formActive || l.searching || l.picking
}

type libraryDataMsg struct {
	games []model.Game
}

func (l libraryModel) refresh() tea.Cmd {
	return func() tea.Msg {
		return libraryDataMsg{games: l.tracker.Games()}
	}
}

func (l *libraryModel) applyFilter() {
	l.filter.Search = strings.TrimSpace(l.search.Value())
	l.filtered = library.Apply(l.games, l.filter)
	if l.cursor >= len(l.filtered) {
		l.cursor = max(0, len(l.filtered)-1)
	}
}

func (l libraryModel) selected() (model.Game, bool) {
	if l.cursor < 0 || l.cursor >= len(l.filtered) {
		return model.Game{}, false
	}
	return l.filtered[l.cursor], true
}

func (l libraryModel) update(msg tea.Msg) (libraryModel, tea.Cmd) {
	if msg, ok := msg.(libraryDataMsg); ok {
		l.games = msg.games
		l.applyFilter()
		return l, nil
	}
	if l.formActive && l.form != nil {
		return l.updateForm(msg)
	}

	switch msg := msg.(type) {
	case searchResultsMsg:
		return l.showCandidates(msg)

	case tea.KeyMsg:
		if l.searching {
			return l.updateSearch(msg)
		}
		if l.picking {
			return l.updatePicker(msg)
		}
		return l.updateList(msg)
	}
	return l, nil
}

func (l libraryModel) updateSearch(msg tea.KeyMsg) (libraryModel, tea.Cmd) {
	switch msg.String() {
	case "esc":
		l.searching = false
		l.search.Blur()
		l.search.SetValue("")
		l.applyFilter()
		return l, nil
	case "enter":
		l.searching = false
		l.search.Blur()
		return l, nil
	}
	var cmd tea.Cmd
	l.search, cmd = l.search.Update(msg)
	l.applyFilter()
	return l, cmd
}

func (l libraryModel) updateList(msg tea.KeyMsg) (libraryModel, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if l.cursor > 0 {
			l.cursor--
		}
	case key.Matches(msg, keys.Down):
		if l.cursor < len(l.filtered)-1 {
			l.cursor++
		}
	case key.Matches(msg, keys.Search):
		l.searching = true
		return l, l.search.Focus()
	case key.Matches(msg, keys.Only100):
		l.filter.Only100 = !l.filter.Only100
		l.applyFilter()
	case key.Matches(msg, keys.Filter):
		return l.showFilterForm()
	case key.Matches(msg, keys.Back):
		l.filter = library.Filter{}
		l.search.SetValue("")
		l.applyFilter()
	case key.Matches(msg, keys.New):
		return l.showSearchForm()
	case key.Matches(msg, keys.Finish):
		if g, ok := l.selected(); ok {
			return l.showFinishForm(g)
		}
	case key.Matches(msg, keys.Drop):
		if g, ok := l.selected(); ok {
			return l.showDropForm(g)
		}
	case key.Matches(msg, keys.Pause):
		if g, ok := l.selected(); ok {
			return l, l.mutate(fmt.Sprintf("Paused %s", g.Title), func() error {
				return l.tracker.PauseGame(g.ID, "")
			})
		}
	case key.Matches(msg, keys.Replay):
		if g, ok := l.selected(); ok {
			return l, l.mutate(fmt.Sprintf("Playing %s again", g.Title), func() error {
				return l.tracker.ReplayGame(g.ID, "")
			})
		}
	}
	return l, nil
}

// mutate runs fn against the tracker and reports the outcome.
func (l libraryModel) mutate(success string, fn func() error) tea.Cmd {
	return func() tea.Msg {
		if err := fn(); err != nil {
			return mutationMsg{err: err}
		}
		return mutationMsg{text: success}
	}
}

// --- Add game ---

func (l libraryModel) showSearchForm() (libraryModel, tea.Cmd) {
	*l.fv = formValues{}
	l.formType = formSearch
	l.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Game title").
				Description("Searched on RAWG, or in the demo catalog without an API key").
				Value(&l.fv.Query).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return errors.New("title is required")
					}
					return nil
				}),
		),
	).WithShowHelp(true).WithShowErrors(true)

	l.formActive = true
	return l, l.form.Init()
}

func (l libraryModel) apiKey() string {
	if k := strings.TrimSpace(l.tracker.Settings().RawgAPIKey); k != "" {
		return k
	}
	return l.fallback
}

func (l libraryModel) searchCmd(query string) tea.Cmd {
	apiKey := l.apiKey()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		candidates, err := l.lookup.Search(ctx, query, apiKey)
		return searchResultsMsg{query: query, candidates: candidates, err: err}
	}
}

func (l libraryModel) showCandidates(msg searchResultsMsg) (libraryModel, tea.Cmd) {
	if msg.err != nil {
		var apiErr *lookup.APIError
		text := fmt.Sprintf("Search failed: %v", msg.err)
		if errors.As(msg.err, &apiErr) {
			text = fmt.Sprintf("RAWG returned %d; check your API key", apiErr.Status)
		}
		l.fv.Title = msg.query
		next, cmd := l.showGameForm()
		return next, tea.Batch(cmd, func() tea.Msg { return statusMsg{text: text, isError: true} })
	}
	l.candidates = msg.candidates
	l.picking = true
	l.pickCursor = 0
	return l, nil
}

func (l libraryModel) updatePicker(msg tea.KeyMsg) (libraryModel, tea.Cmd) {
	// The last row enters the game by hand.
	last := len(l.candidates)
	switch {
	case key.Matches(msg, keys.Up):
		if l.pickCursor > 0 {
			l.pickCursor--
		}
	case key.Matches(msg, keys.Down):
		if l.pickCursor < last {
			l.pickCursor++
		}
	case key.Matches(msg, keys.Enter):
		l.picking = false
		if l.pickCursor < last {
			l.prefill(l.candidates[l.pickCursor])
		} else {
			l.fv.Title = l.fv.Query
		}
		return l.showGameForm()
	case key.Matches(msg, keys.Back):
		l.picking = false
		l.candidates = nil
	}
	return l, nil
}

func (l libraryModel) prefill(c lookup.Candidate) {
	l.fv.Title = c.Name
	l.fv.Cover = c.Cover
	l.fv.Genres = strings.Join(c.Genres, ", ")
	l.fv.Platforms = c.PlatformIDs()
}

func (l libraryModel) showGameForm() (libraryModel, tea.Cmd) {
	if l.fv.Status == "" {
		l.fv.Status = model.StatusPlaying
	}
	if l.fv.Perception == "" {
		l.fv.Perception = model.PerceptionLike
	}
	l.formType = formGame

	platformOptions := make([]huh.Option[string], len(model.Platforms))
	for i, p := range model.Platforms {
		platformOptions[i] = huh.NewOption(p.Name, p.ID).Selected(containsID(l.fv.Platforms, p.ID))
	}
	seriesOptions := []huh.Option[string]{huh.NewOption("None", "")}
	for _, s := range model.SeriesCatalog {
		seriesOptions = append(seriesOptions, huh.NewOption(s.Name, s.ID))
	}
	statusOptions := make([]huh.Option[model.GameStatus], len(model.Statuses))
	for i, s := range model.Statuses {
		statusOptions[i] = huh.NewOption(s.Label(), s)
	}

	l.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Title").Value(&l.fv.Title).Validate(func(s string) error {
				if strings.TrimSpace(s) == "" {
					return errors.New("title is required")
				}
				return nil
			}),
			huh.NewInput().Title("Genres (comma-separated)").Value(&l.fv.Genres),
			huh.NewSelect[model.GameStatus]().Title("Status").Options(statusOptions...).Value(&l.fv.Status),
			huh.NewSelect[model.Perception]().Title("How was it?").
				Options(
					huh.NewOption("Liked it", model.PerceptionLike),
					huh.NewOption("It was ok", model.PerceptionNeutral),
					huh.NewOption("Didn't like it", model.PerceptionDislike),
				).Value(&l.fv.Perception),
		).Title("Game"),
		huh.NewGroup(
			huh.NewMultiSelect[string]().Title("Platforms").
				Options(platformOptions...).
				Height(12).
				Value(&l.fv.Platforms).
				Validate(func(v []string) error {
					if len(v) == 0 {
						return errors.New("pick at least one platform")
					}
					return nil
				}),
			huh.NewSelect[string]().Title("Series").Options(seriesOptions...).Value(&l.fv.SeriesID),
			huh.NewText().Title("Comment").Value(&l.fv.Comment),
		).Title("Details"),
	).WithShowHelp(true).WithShowErrors(true)

	l.formActive = true
	return l, l.form.Init()
}

func (l libraryModel) addGameCmd() tea.Cmd {
	in := tracker.NewGame{
		Title:       l.fv.Title,
		Cover:       l.fv.Cover,
		Genres:      splitList(l.fv.Genres),
		PlatformIDs: append([]string{}, l.fv.Platforms...),
		SeriesID:    l.fv.SeriesID,
		Status:      l.fv.Status,
		Perception:  l.fv.Perception,
		Comment:     strings.TrimSpace(l.fv.Comment),
	}
	return func() tea.Msg {
		g, err := l.tracker.AddGame(in)
		if err != nil {
			return mutationMsg{err: err}
		}
		return mutationMsg{text: fmt.Sprintf("Added %s", g.Title)}
	}
}

// --- Finish / drop ---

func ratingOptions() []huh.Option[int] {
	opts := []huh.Option[int]{huh.NewOption("No rating", 0)}
	for r := 1; r <= 5; r++ {
		opts = append(opts, huh.NewOption(formatRating(&r), r))
	}
	return opts
}

func (l libraryModel) showFinishForm(g model.Game) (libraryModel, tea.Cmd) {
	if !tracker.CanApply(g, model.EventFinish) {
		return l, func() tea.Msg {
			return statusMsg{text: fmt.Sprintf("%s is already %s", g.Title, strings.ToLower(g.Status.Label())), isError: true}
		}
	}
	*l.fv = formValues{
		GameID:   g.ID,
		Date:     model.Today(time.Now()),
		Platform: l.tracker.DefaultPlatform(g),
		Full:     g.CompletionType == model.CompletionFull,
	}
	if g.Rating != nil {
		l.fv.Rating = *g.Rating
	}
	l.formType = formFinish

	platformOptions := make([]huh.Option[string], 0, len(g.PlatformIDs))
	for _, id := range g.PlatformIDs {
		platformOptions = append(platformOptions, huh.NewOption(model.PlatformName(id), id))
	}

	l.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Finished on (YYYY-MM-DD)").Value(&l.fv.Date).Validate(func(s string) error {
				if _, ok := model.ParseDay(s); !ok {
					return errors.New("use the YYYY-MM-DD format")
				}
				return nil
			}),
			huh.NewSelect[string]().Title("Platform").Options(platformOptions...).Value(&l.fv.Platform),
			huh.NewConfirm().Title("Completed at 100%?").Value(&l.fv.Full),
			huh.NewSelect[int]().Title("Rating").Options(ratingOptions()...).Value(&l.fv.Rating),
			huh.NewText().Title("Final thoughts").Value(&l.fv.Note),
		).Title(g.Title),
	).WithShowHelp(true).WithShowErrors(true)

	l.formActive = true
	return l, l.form.Init()
}

func (l libraryModel) showDropForm(g model.Game) (libraryModel, tea.Cmd) {
	if !tracker.CanApply(g, model.EventDrop) {
		return l, func() tea.Msg {
			return statusMsg{text: "Only games being played or paused can be dropped", isError: true}
		}
	}
	*l.fv = formValues{GameID: g.ID, Platform: l.tracker.DefaultPlatform(g)}
	if g.Rating != nil {
		l.fv.Rating = *g.Rating
	}
	l.formType = formDrop

	l.form = huh.NewForm(
		huh.NewGroup(
			huh.NewText().Title("Why are you dropping it?").Value(&l.fv.Note),
			huh.NewSelect[int]().Title("Rating").Options(ratingOptions()...).Value(&l.fv.Rating),
		).Title(g.Title),
	).WithShowHelp(true).WithShowErrors(true)

	l.formActive = true
	return l, l.form.Init()
}

func (l libraryModel) rating() *int {
	if l.fv.Rating == 0 {
		return nil
	}
	r := l.fv.Rating
	return &r
}

// --- Filters ---

func (l libraryModel) showFilterForm() (libraryModel, tea.Cmd) {
	l.fv.FilterStatus = l.filter.Status
	l.fv.FilterPlatform = l.filter.PlatformID
	l.fv.FilterOnly100 = l.filter.Only100
	l.formType = formFilter

	statusOptions := []huh.Option[model.GameStatus]{huh.NewOption("All", model.GameStatus(""))}
	for _, s := range model.Statuses {
		statusOptions = append(statusOptions, huh.NewOption(s.Label(), s))
	}
	platformOptions := []huh.Option[string]{huh.NewOption("All", "")}
	seen := make(map[string]bool)
	for _, g := range l.games {
		for _, id := range g.PlatformIDs {
			if !seen[id] {
				seen[id] = true
				platformOptions = append(platformOptions, huh.NewOption(model.PlatformName(id), id))
			}
		}
	}

	l.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[model.GameStatus]().Title("Status").Options(statusOptions...).Value(&l.fv.FilterStatus),
			huh.NewSelect[string]().Title("Platform").Options(platformOptions...).Value(&l.fv.FilterPlatform),
			huh.NewConfirm().Title("Only games completed at 100%?").Value(&l.fv.FilterOnly100),
		).Title("Filters"),
	).WithShowHelp(true).WithShowErrors(true)

	l.formActive = true
	return l, l.form.Init()
}

// --- Form plumbing ---

func (l libraryModel) updateForm(msg tea.Msg) (libraryModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			l.formActive = false
			l.form = nil
			return l, nil
		}
	}

	form, cmd := l.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		l.form = f
	}

	if l.form.State == huh.StateCompleted {
		l.formActive = false
		l.form = nil
		switch l.formType {
		case formSearch:
			return l, l.searchCmd(strings.TrimSpace(l.fv.Query))
		case formGame:
			return l, l.addGameCmd()
		case formFinish:
			in := tracker.FinishInput{
				GameID:     l.fv.GameID,
				Date:       l.fv.Date,
				PlatformID: l.fv.Platform,
				Full:       l.fv.Full,
				Rating:     l.rating(),
				Note:       l.fv.Note,
			}
			return l, l.mutate("Game finished", func() error { return l.tracker.FinishGame(in) })
		case formDrop:
			in := tracker.DropInput{
				GameID:     l.fv.GameID,
				PlatformID: l.fv.Platform,
				Rating:     l.rating(),
				Reason:     l.fv.Note,
			}
			return l, l.mutate("Game dropped", func() error { return l.tracker.DropGame(in) })
		case formFilter:
			l.filter.Status = l.fv.FilterStatus
			l.filter.PlatformID = l.fv.FilterPlatform
			l.filter.Only100 = l.fv.FilterOnly100
			l.applyFilter()
			return l, nil
		}
	}

	return l, cmd
}

// --- Rendering ---

func (l libraryModel) view() string {
	w := l.width - 4
	if l.formActive && l.form != nil {
		titles := map[string]string{
			formSearch: "Add Game",
			formGame:   "Add Game",
			formFinish: "Finish Game",
			formDrop:   "Drop Game",
			formFilter: "Filter Library",
		}
		content := lipgloss.JoinVertical(lipgloss.Left, titleStyle.Render(titles[l.formType]), "", l.form.View())
		return panelStyle.Width(w).Render(content)
	}
	if l.picking {
		return l.renderPicker(w)
	}
	return l.renderList(w)
}

func (l libraryModel) renderPicker(w int) string {
	rows := []string{titleStyle.Render("Select Game"), ""}
	for i, c := range l.candidates {
		cursor := "  "
		style := normalItemStyle
		if i == l.pickCursor {
			cursor = "> "
			style = selectedItemStyle
		}
		detail := mutedStyle.Render("  " + strings.Join(c.Genres, ", "))
		rows = append(rows, style.Render(cursor+c.Name)+detail)
	}
	cursor, style := "  ", mutedStyle
	if l.pickCursor == len(l.candidates) {
		cursor, style = "> ", selectedItemStyle
	}
	rows = append(rows, style.Render(cursor+"Enter details manually"))
	rows = append(rows, "", mutedStyle.Render("  enter: select  esc: cancel"))
	return activePanelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func (l libraryModel) filterSummary() string {
	var parts []string
	if l.filter.Status != "" {
		parts = append(parts, l.filter.Status.Label())
	}
	if l.filter.PlatformID != "" {
		parts = append(parts, model.PlatformName(l.filter.PlatformID))
	}
	if l.filter.Only100 {
		parts = append(parts, "100%")
	}
	if len(parts) == 0 {
		return ""
	}
	return accentStyle.Render(fmt.Sprintf("  [%d filters: %s]", l.filter.Active(), strings.Join(parts, ", ")))
}

func (l libraryModel) renderList(w int) string {
	title := titleStyle.Render("Library") + mutedStyle.Render(fmt.Sprintf("  %d/%d", len(l.filtered), len(l.games))) + l.filterSummary()

	rows := []string{title}
	if l.searching || l.search.Value() != "" {
		rows = append(rows, l.search.View())
	}
	rows = append(rows, "")

	if len(l.games) == 0 {
		rows = append(rows, mutedStyle.Render("No games yet. Press n to add one."))
		return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
	}

	if len(l.filtered) == 0 {
		rows = append(rows, mutedStyle.Render("No games match."))
		if l.filter.Search != "" {
			if s := library.Suggest(l.games, l.filter.Search, 3); len(s) > 0 {
				rows = append(rows, mutedStyle.Render("Did you mean: ")+highlightStyle.Render(strings.Join(s, ", "))+mutedStyle.Render("?"))
			}
		}
		rows = append(rows, "", mutedStyle.Render("  esc: clear filters"))
		return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
	}

	rows = append(rows, mutedStyle.Render(fmt.Sprintf("  %-11s %-32s %-28s %s", "Status", "Title", "Platforms", "Rating")))

	visible := l.height - 12
	if visible < 3 {
		visible = 3
	}
	start := 0
	if l.cursor >= visible {
		start = l.cursor - visible + 1
	}
	end := min(start+visible, len(l.filtered))

	for i := start; i < end; i++ {
		g := l.filtered[i]
		cursor := "  "
		style := normalItemStyle
		if i == l.cursor {
			cursor = "> "
			style = selectedItemStyle
		}
		status := statusStyle(g.Status).Render(fmt.Sprintf("%-11s", g.Status.Label()))
		name := truncate(g.Title, 32)
		if g.Platinum() {
			name = truncate(g.Title, 29) + " ✦"
		}
		row := cursor + status + " " + style.Render(fmt.Sprintf("%-32s", name)) + " " +
			mutedStyle.Render(fmt.Sprintf("%-28s", truncate(platformNames(g.PlatformIDs), 28))) + " " +
			goldStyle.Render(formatRating(g.Rating))
		rows = append(rows, row)
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  n: add  f: finish  x: drop  p: pause  r: replay  /: search  s: filters  o: 100%"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func containsID(list []string, id string) bool {
	for _, v := range list {
		if v == id {
			return true
		}
	}
	return false
}
