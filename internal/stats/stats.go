package stats

import (
	"sort"

	"github.com/sadopc/gameline/internal/model"
)

// TopN is the number of entries kept in each ranking.
const TopN = 5

// Distribution classifies every game with in-scope activity into exactly one
// bucket: Platinum > Finished > Dropped > Started.
type Distribution struct {
	Platinum    int
	Finished    int
	Dropped     int
	Started     int
	TotalUnique int
}

type Ranked struct {
	Key   string
	Count int
}

type Report struct {
	Scope        Scope
	Distribution Distribution
	Platforms    []Ranked // keyed by platform ID
	Genres       []Ranked
	EventCount   int
}

// Empty reports whether the scope had no events at all.
func (r Report) Empty() bool { return r.EventCount == 0 }

// Compute derives the status distribution and rankings for scope. Period
// state comes from events only; the game's current status is never read.
func Compute(games []model.Game, events []model.TimelineEvent, scope Scope) Report {
	byID := make(map[string]*model.Game, len(games))
	for i := range games {
		byID[games[i].ID] = &games[i]
	}

	var inScope []model.TimelineEvent
	for _, e := range events {
		if scope.Contains(e) {
			inScope = append(inScope, e)
		}
	}

	// Distinct games in first-seen order, with the event types seen for each.
	var order []string
	types := make(map[string]map[model.EventType]bool)
	for _, e := range inScope {
		seen, ok := types[e.GameID]
		if !ok {
			seen = make(map[model.EventType]bool)
			types[e.GameID] = seen
			order = append(order, e.GameID)
		}
		seen[e.Type] = true
	}

	var dist Distribution
	for _, id := range order {
		seen := types[id]
		switch {
		case seen[model.EventFinish]:
			if g := byID[id]; g != nil && g.CompletionType == model.CompletionFull {
				dist.Platinum++
			} else {
				dist.Finished++
			}
		case seen[model.EventDrop]:
			dist.Dropped++
		default:
			dist.Started++
		}
	}
	dist.TotalUnique = len(order)

	platforms := newCounter()
	for _, e := range inScope {
		if e.PlatformID != "" {
			platforms.add(e.PlatformID)
		}
	}

	genres := newCounter()
	for _, id := range order {
		g := byID[id]
		if g == nil {
			continue
		}
		for _, genre := range g.Genres {
			genres.add(genre)
		}
	}

	return Report{
		Scope:        scope,
		Distribution: dist,
		Platforms:    platforms.top(TopN),
		Genres:       genres.top(TopN),
		EventCount:   len(inScope),
	}
}

// counter tallies keys and remembers first-seen order for stable ties.
type counter struct {
	idx  map[string]int
	list []Ranked
}

func newCounter() *counter {
	return &counter{idx: make(map[string]int)}
}

func (c *counter) add(key string) {
	i, ok := c.idx[key]
	if !ok {
		i = len(c.list)
		c.idx[key] = i
		c.list = append(c.list, Ranked{Key: key})
	}
	c.list[i].Count++
}

func (c *counter) top(n int) []Ranked {
	out := make([]Ranked, len(c.list))
	copy(out, c.list)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	if len(out) > n {
		out = out[:n]
	}
	return out
}

// KPIs are the global quick stats shown on the timeline.
type KPIs struct {
	Completed            int
	Total                int
	AchievementsUnlocked int
	AchievementsTotal    int
}

func Summarize(games []model.Game, achievements []model.Achievement) KPIs {
	k := KPIs{Total: len(games), AchievementsTotal: len(achievements)}
	for _, g := range games {
		if g.Status == model.StatusCompleted {
			k.Completed++
		}
	}
	for _, a := range achievements {
		if a.Unlocked {
			k.AchievementsUnlocked++
		}
	}
	return k
}
