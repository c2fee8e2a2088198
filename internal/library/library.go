package library

import (
	"strings"

	"github.com/sadopc/gameline/internal/model"
	"github.com/schollz/closestmatch"
)

// Filter narrows the library. Zero values match everything.
type Filter struct {
	Search     string
	Status     model.GameStatus
	PlatformID string
	Only100    bool
}

// Active counts the filters besides the search term.
func (f Filter) Active() int {
	n := 0
	if f.Status != "" {
		n++
	}
	if f.PlatformID != "" {
		n++
	}
	if f.Only100 {
		n++
	}
	return n
}

func (f Filter) Match(g model.Game) bool {
	if f.Search != "" && !strings.Contains(strings.ToLower(g.Title), strings.ToLower(f.Search)) {
		return false
	}
	if f.Status != "" && g.Status != f.Status {
		return false
	}
	if f.PlatformID != "" && !contains(g.PlatformIDs, f.PlatformID) {
		return false
	}
	if f.Only100 && !g.Platinum() {
		return false
	}
	return true
}

// Apply returns the games matching f, preserving order.
func Apply(games []model.Game, f Filter) []model.Game {
	var out []model.Game
	for _, g := range games {
		if f.Match(g) {
			out = append(out, g)
		}
	}
	return out
}

// bagSizes are the substring lengths closestmatch indexes titles with.
var bagSizes = []int{2, 3}

// Suggest returns up to n titles close to query, for "did you mean" hints
// when a search finds nothing.
func Suggest(games []model.Game, query string, n int) []string {
	query = strings.TrimSpace(query)
	if query == "" || len(games) == 0 || n <= 0 {
		return nil
	}
	titles := make([]string, 0, len(games))
	seen := make(map[string]bool)
	for _, g := range games {
		if g.Title == "" || seen[g.Title] {
			continue
		}
		seen[g.Title] = true
		titles = append(titles, g.Title)
	}
	if len(titles) == 0 {
		return nil
	}
	cm := closestmatch.New(titles, bagSizes)
	var out []string
	for _, t := range cm.ClosestN(query, n) {
		if t != "" {
			out = append(out, t)
		}
	}
	return out
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
