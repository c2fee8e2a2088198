package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/gameline/internal/model"
	"github.com/sadopc/gameline/internal/stats"
	"github.com/sadopc/gameline/internal/tracker"
)

var statsModes = []stats.Mode{stats.ModeMonthly, stats.ModeYearly, stats.ModeGlobal}

type statsModel struct {
	tracker *tracker.Tracker
	now     func() time.Time
	width   int
	height  int

	scope  stats.Scope
	report stats.Report

	chart barchart.Model
}

func newStatsModel(t *tracker.Tracker) statsModel {
	return statsModel{
		tracker: t,
		now:     time.Now,
		scope:   stats.ScopeFor(stats.ModeMonthly, time.Now()),
		chart:   barchart.New(60, 10),
	}
}

func (s *statsModel) setSize(w, h int) {
	s.width = w
	s.height = h
	s.buildChart()
}

type statsDataMsg struct {
	report stats.Report
}

func (s statsModel) refresh() tea.Cmd {
	scope := s.scope
	return func() tea.Msg {
		return statsDataMsg{report: s.tracker.Stats(scope)}
	}
}

func (s statsModel) update(msg tea.Msg) (statsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case statsDataMsg:
		// Drop replies for a scope the user already navigated away from.
		if msg.report.Scope != s.scope {
			return s, nil
		}
		s.report = msg.report
		s.buildChart()
		return s, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Left):
			if s.scope.Mode == stats.ModeGlobal {
				return s, nil
			}
			s.scope = s.scope.Prev()
			return s, s.refresh()
		case key.Matches(msg, keys.Right):
			if s.scope.Mode == stats.ModeGlobal {
				return s, nil
			}
			s.scope = s.scope.Next()
			return s, s.refresh()
		case key.Matches(msg, keys.Mode):
			next := statsModes[(int(s.scope.Mode)+1)%len(statsModes)]
			s.scope = s.scope.WithMode(next, s.now())
			return s, s.refresh()
		}
	}
	return s, nil
}

func (s *statsModel) buildChart() {
	chartWidth := s.width - 8
	if chartWidth < 20 {
		chartWidth = 20
	}
	chartHeight := 10
	if s.height > 34 {
		chartHeight = 14
	}

	s.chart = barchart.New(chartWidth, chartHeight)

	d := s.report.Distribution
	buckets := []struct {
		label string
		value int
		color lipgloss.Color
	}{
		{"Platinum", d.Platinum, colorPlatinum},
		{"Finished", d.Finished, colorFinished},
		{"Dropped", d.Dropped, colorDropped},
		{"Started", d.Started, colorStarted},
	}

	bars := make([]barchart.BarData, 0, len(buckets))
	for _, b := range buckets {
		bars = append(bars, barchart.BarData{
			Label: b.label,
			Values: []barchart.BarValue{{
				Name:  b.label,
				Value: float64(b.value),
				Style: lipgloss.NewStyle().Foreground(b.color),
			}},
		})
	}

	s.chart.PushAll(bars)
	s.chart.Draw()
}

func (s statsModel) view() string {
	w := s.width - 4

	var tabs []string
	for _, m := range statsModes {
		if m == s.scope.Mode {
			tabs = append(tabs, activeTabStyle.Render(m.String()))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(m.String()))
		}
	}
	modeTabs := lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...)

	header := lipgloss.JoinHorizontal(lipgloss.Bottom,
		titleStyle.Render("Stats"), "  ", modeTabs, "  ", subtitleStyle.Render(s.scope.Label()),
	)

	nav := mutedStyle.Render("  ←/→: previous/next period  m: switch mode")
	if s.scope.Mode == stats.ModeGlobal {
		nav = mutedStyle.Render("  m: switch mode")
	}

	if s.report.Empty() {
		return panelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left,
				header, "", mutedStyle.Render("  No activity in this period."), "", nav,
			),
		)
	}

	rankings := lipgloss.JoinHorizontal(lipgloss.Top,
		renderRanking("Top Platforms", s.report.Platforms, model.PlatformName, w/2),
		renderRanking("Top Genres", s.report.Genres, nil, w/2),
	)

	return panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			header, "",
			s.renderSummary(),
			"",
			s.chart.View(),
			"",
			rankings,
			"",
			nav,
		),
	)
}

func (s statsModel) renderSummary() string {
	d := s.report.Distribution
	item := func(label string, n int, c lipgloss.Color) string {
		dot := lipgloss.NewStyle().Foreground(c).Render("●")
		return fmt.Sprintf("%s %s %d", dot, label, n)
	}
	return "  " + strings.Join([]string{
		highlightStyle.Render(fmt.Sprintf("%d games", d.TotalUnique)),
		item("Platinum", d.Platinum, colorPlatinum),
		item("Finished", d.Finished, colorFinished),
		item("Dropped", d.Dropped, colorDropped),
		item("Started", d.Started, colorStarted),
	}, "  ")
}

// renderRanking lists entries with a bar scaled against the leader. name maps
// keys to display names; nil shows keys as they are.
func renderRanking(title string, entries []stats.Ranked, name func(string) string, width int) string {
	rows := []string{subtitleStyle.Render(title)}
	if len(entries) == 0 {
		rows = append(rows, mutedStyle.Render("  None"))
		return lipgloss.NewStyle().Width(width).Render(strings.Join(rows, "\n"))
	}
	leader := entries[0].Count
	for i, r := range entries {
		label := r.Key
		if name != nil {
			label = name(r.Key)
		}
		rows = append(rows, fmt.Sprintf("  %d. %-18s %s", i+1, truncate(label, 18), progressBar(r.Count, leader, 10)))
	}
	return lipgloss.NewStyle().Width(width).Render(strings.Join(rows, "\n"))
}
