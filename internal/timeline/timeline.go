// Package timeline builds the merged, display-ordered history of events and
// unlocked achievements.
package timeline

import (
	"sort"
	"strings"

	"github.com/sadopc/gameline/internal/model"
)

// KindAchievement marks a virtual entry for an unlocked achievement.
const KindAchievement model.EventType = "achievement"

type Entry struct {
	ID          string
	Date        string // YYYY-MM-DD
	Type        model.EventType
	Event       *model.TimelineEvent
	Achievement *model.Achievement
}

type YearGroup struct {
	Year    string
	Entries []Entry
}

// priority orders same-day entries; higher comes first.
func priority(t model.EventType) int {
	switch t {
	case KindAchievement:
		return 6
	case model.EventFinish:
		return 5
	case model.EventReplay:
		return 4
	case model.EventStart:
		return 3
	case model.EventDrop:
		return 2
	case model.EventPause:
		return 1
	}
	return 0
}

// Build merges events with unlocked achievements, newest first.
func Build(events []model.TimelineEvent, achievements []model.Achievement) []Entry {
	entries := make([]Entry, 0, len(events))
	for i := range events {
		e := events[i]
		entries = append(entries, Entry{ID: e.ID, Date: datePart(e.Date), Type: e.Type, Event: &e})
	}
	for i := range achievements {
		a := achievements[i]
		if !a.Unlocked || a.UnlockedDate == "" {
			continue
		}
		entries = append(entries, Entry{ID: "ach-" + a.ID, Date: datePart(a.UnlockedDate), Type: KindAchievement, Achievement: &a})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.Date != b.Date {
			return a.Date > b.Date
		}
		if pa, pb := priority(a.Type), priority(b.Type); pa != pb {
			return pa > pb
		}
		return a.ID > b.ID
	})
	return entries
}

// GroupByYear splits entries by year, newest year first. Entries must already
// be ordered by Build.
func GroupByYear(entries []Entry) []YearGroup {
	var groups []YearGroup
	idx := make(map[string]int)
	for _, e := range entries {
		y, _, _ := strings.Cut(e.Date, "-")
		i, ok := idx[y]
		if !ok {
			i = len(groups)
			idx[y] = i
			groups = append(groups, YearGroup{Year: y})
		}
		groups[i].Entries = append(groups[i].Entries, e)
	}
	sort.SliceStable(groups, func(i, j int) bool { return groups[i].Year > groups[j].Year })
	return groups
}

func datePart(s string) string {
	if d, ok := model.ParseDay(s); ok {
		return d.String()
	}
	return s
}
