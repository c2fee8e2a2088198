package tracker

import (
	"github.com/sadopc/gameline/internal/model"
	"github.com/sadopc/gameline/internal/stats"
	"github.com/sadopc/gameline/internal/timeline"
)

func (t *Tracker) Games() []model.Game {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]model.Game, len(t.games))
	copy(out, t.games)
	return out
}

// Game returns the game with the given ID.
func (t *Tracker) Game(id string) (model.Game, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if i := t.indexOf(id); i >= 0 {
		return t.games[i], true
	}
	return model.Game{}, false
}

// Events returns the timeline events, newest recorded first.
func (t *Tracker) Events() []model.TimelineEvent {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]model.TimelineEvent, len(t.events))
	copy(out, t.events)
	return out
}

func (t *Tracker) Achievements() []model.Achievement {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]model.Achievement, len(t.achievements))
	copy(out, t.achievements)
	return out
}

func (t *Tracker) Profile() model.UserProfile {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.profile
}

func (t *Tracker) Settings() model.AppSettings {
	t.mu.Lock()
	defer t.mu.Unlock()
	s := t.settings
	s.ActivePlatforms = append([]string{}, t.settings.ActivePlatforms...)
	return s
}

func (t *Tracker) Stats(scope stats.Scope) stats.Report {
	t.mu.Lock()
	defer t.mu.Unlock()
	return stats.Compute(t.games, t.events, scope)
}

// Timeline merges events and unlocked achievements, newest first.
func (t *Tracker) Timeline() []timeline.Entry {
	t.mu.Lock()
	defer t.mu.Unlock()
	return timeline.Build(t.events, t.achievements)
}

func (t *Tracker) KPIs() stats.KPIs {
	t.mu.Lock()
	defer t.mu.Unlock()
	return stats.Summarize(t.games, t.achievements)
}

// Candidates returns the games an event of type et may be recorded for.
func (t *Tracker) Candidates(et model.EventType) []model.Game {
	t.mu.Lock()
	defer t.mu.Unlock()
	var out []model.Game
	for _, g := range t.games {
		if CanApply(g, et) {
			out = append(out, g)
		}
	}
	return out
}

// DefaultPlatform is the platform an event for g is recorded on when none
// is chosen.
func (t *Tracker) DefaultPlatform(g model.Game) string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.eventPlatform(g)
}
