package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/sadopc/gameline/internal/lookup"
	"github.com/sadopc/gameline/internal/model"
)

// viewState represents the currently active view.
type viewState int

const (
	viewTimeline viewState = iota
	viewLibrary
	viewStats
	viewAchievements
	viewSettings
)

var viewNames = []string{"Timeline", "Library", "Stats", "Achievements", "Settings"}

// --- Messages ---

// mutationMsg reports the outcome of a tracker mutation; on success every
// view reloads.
type mutationMsg struct {
	text string
	err  error
}

type statusMsg struct {
	text    string
	isError bool
}

type tickMsg time.Time

type exportDoneMsg struct {
	path string
}

type searchResultsMsg struct {
	query      string
	candidates []lookup.Candidate
	err        error
}

// --- Helpers ---

// formatDate renders an event date as "Apr 15".
func formatDate(date string) string {
	d, ok := model.ParseDay(date)
	if !ok {
		return date
	}
	return d.Time().Format("Jan 02")
}

func platformNames(ids []string) string {
	names := make([]string, 0, len(ids))
	for _, id := range ids {
		names = append(names, model.PlatformName(id))
	}
	return strings.Join(names, ", ")
}

func formatRating(r *int) string {
	if r == nil {
		return ""
	}
	return strings.Repeat("★", *r) + strings.Repeat("☆", 5-*r)
}

// progressBar draws value/target as a fixed-width bar.
func progressBar(value, target, width int) string {
	if target <= 0 || width <= 0 {
		return ""
	}
	filled := value * width / target
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	return successStyle.Render(strings.Repeat("█", filled)) +
		mutedStyle.Render(strings.Repeat("░", width-filled)) +
		mutedStyle.Render(fmt.Sprintf(" %d/%d", value, target))
}

func truncate(s string, n int) string {
	r := []rune(s)
	if n <= 0 || len(r) <= n {
		return s
	}
	if n == 1 {
		return "…"
	}
	return string(r[:n-1]) + "…"
}
