package achievement

import (
	"time"

	"github.com/sadopc/gameline/internal/model"
)

// Notification is pushed to the user once per newly unlocked achievement.
type Notification struct {
	AchievementID string
	Title         string
	Description   string
	Icon          string
}

// Result is the outcome of one evaluation pass.
type Result struct {
	Achievements  []model.Achievement
	Notifications []Notification
	// Changed is true when any unlock flag or counter differs from the input.
	Changed bool
}

// facts are the aggregates every rule reads from. They are recomputed from
// scratch on each pass.
type facts struct {
	games             int
	completed         int
	anyPlatinum       bool
	anySeries         bool
	maxSeriesComplete int
	seen              map[model.EventType]bool
	maxMonth          int
	maxYear           int
	finishYears       int
	maxFinishesOnGame int
}

func collect(games []model.Game, events []model.TimelineEvent) facts {
	f := facts{games: len(games), seen: make(map[model.EventType]bool)}

	known := make(map[string]bool, len(games))
	series := make(map[string]int)
	for _, g := range games {
		known[g.ID] = true
		if g.SeriesID != "" {
			f.anySeries = true
		}
		if g.Status != model.StatusCompleted {
			continue
		}
		f.completed++
		if g.CompletionType == model.CompletionFull {
			f.anyPlatinum = true
		}
		if g.SeriesID != "" {
			series[g.SeriesID]++
		}
	}
	for _, n := range series {
		f.maxSeriesComplete = max(f.maxSeriesComplete, n)
	}

	type monthKey struct {
		year  int
		month time.Month
	}
	byMonth := make(map[monthKey]int)
	byYear := make(map[int]int)
	perGame := make(map[string]int)
	for _, e := range events {
		f.seen[e.Type] = true
		if e.Type != model.EventFinish {
			continue
		}
		if known[e.GameID] {
			perGame[e.GameID]++
		}
		d, ok := model.ParseDay(e.Date)
		if !ok {
			continue
		}
		byMonth[monthKey{d.Year, d.Month}]++
		byYear[d.Year]++
	}
	for _, n := range byMonth {
		f.maxMonth = max(f.maxMonth, n)
	}
	for _, n := range byYear {
		f.maxYear = max(f.maxYear, n)
	}
	f.finishYears = len(byYear)
	for _, n := range perGame {
		f.maxFinishesOnGame = max(f.maxFinishesOnGame, n)
	}
	return f
}

type rule struct {
	metric    func(facts) int  // progressive
	predicate func(facts) bool // boolean
}

func completedGames(f facts) int { return f.completed }

func finishedInMonth(n int) func(facts) bool {
	return func(f facts) bool { return f.maxMonth >= n }
}

func finishedInYear(n int) func(facts) bool {
	return func(f facts) bool { return f.maxYear >= n }
}

var rules = map[string]rule{
	FirstGameAdded:        {predicate: func(f facts) bool { return f.games > 0 }},
	FirstGameStarted:      {predicate: func(f facts) bool { return f.seen[model.EventStart] }},
	FirstGameCompleted:    {predicate: func(f facts) bool { return f.seen[model.EventFinish] }},
	FirstGameCompleted100: {predicate: func(f facts) bool { return f.anyPlatinum }},
	FirstReplayCompleted:  {predicate: func(f facts) bool { return f.maxFinishesOnGame >= 2 }},
	Complete3Games:        {metric: completedGames},
	Complete5Games:        {metric: completedGames},
	Complete10Games:       {metric: completedGames},
	Complete20Games:       {metric: completedGames},
	Complete50Games:       {metric: completedGames},
	Complete100Games:      {metric: completedGames},
	Complete365Games:      {metric: completedGames},
	Complete1000Games:     {metric: completedGames},
	Complete3GamesMonth:   {predicate: finishedInMonth(3)},
	Complete10GamesMonth:  {predicate: finishedInMonth(10)},
	Complete30GamesMonth:  {predicate: finishedInMonth(30)},
	Complete10GamesYear:   {predicate: finishedInYear(10)},
	Complete25GamesYear:   {predicate: finishedInYear(25)},
	Complete50GamesYear:   {predicate: finishedInYear(50)},
	FirstSeriesRegistered: {predicate: func(f facts) bool { return f.anySeries }},
	Complete3SameSeries:   {metric: func(f facts) int { return f.maxSeriesComplete }},
	Complete10SameSeries:  {metric: func(f facts) int { return f.maxSeriesComplete }},
	FirstGameAbandoned:    {predicate: func(f facts) bool { return f.seen[model.EventDrop] }},
	ReplaySameGame5Times:  {predicate: func(f facts) bool { return f.maxFinishesOnGame >= 5 }},
	GamelineMaster: {predicate: func(f facts) bool {
		for _, t := range model.EventTypes {
			if !f.seen[t] {
				return false
			}
		}
		return f.finishYears >= 5
	}},
}

// Evaluate runs every rule against the catalog and event log and returns the
// updated achievement state. It never mutates its inputs. Achievements that
// are not present in state cannot be unlocked.
func Evaluate(games []model.Game, events []model.TimelineEvent, state []model.Achievement, now time.Time) Result {
	f := collect(games, events)
	ev := newPass(state, now)

	for i := range ev.out {
		a := &ev.out[i]
		r, ok := rules[a.ID]
		if !ok {
			continue
		}
		switch {
		case r.metric != nil:
			v := r.metric(f)
			if a.CurrentValue != v {
				a.CurrentValue = v
				ev.changed = true
			}
			if a.Target > 0 && v >= a.Target {
				ev.unlock(i)
			}
		case r.predicate != nil:
			if r.predicate(f) {
				ev.unlock(i)
			}
		}
	}

	// The completionist rule reads the outcome of every other rule.
	if i := ev.index(UnlockAll); i >= 0 {
		all := true
		for j, a := range ev.out {
			if j != i && !a.Unlocked {
				all = false
				break
			}
		}
		if all {
			ev.unlock(i)
		}
	}

	return ev.result()
}

// Welcome unlocks the first-access achievement. It is independent of the
// catalog and meant to run once when the application starts.
func Welcome(state []model.Achievement, now time.Time) Result {
	ev := newPass(state, now)
	if i := ev.index(FirstAccess); i >= 0 {
		ev.unlock(i)
	}
	return ev.result()
}

type pass struct {
	out     []model.Achievement
	notes   []Notification
	changed bool
	stamp   string
}

func newPass(state []model.Achievement, now time.Time) *pass {
	out := make([]model.Achievement, len(state))
	copy(out, state)
	return &pass{out: out, stamp: now.UTC().Format(time.RFC3339)}
}

func (p *pass) index(id string) int {
	for i := range p.out {
		if p.out[i].ID == id {
			return i
		}
	}
	return -1
}

func (p *pass) unlock(i int) {
	a := &p.out[i]
	if a.Unlocked {
		return
	}
	a.Unlocked = true
	a.UnlockedDate = p.stamp
	p.changed = true
	p.notes = append(p.notes, Notification{
		AchievementID: a.ID,
		Title:         a.Title,
		Description:   a.Description,
		Icon:          a.Icon,
	})
}

func (p *pass) result() Result {
	return Result{Achievements: p.out, Notifications: p.notes, Changed: p.changed}
}
