package tracker

import (
	"fmt"
	"strings"

	"github.com/sadopc/gameline/internal/model"
)

// NewGame is the input of AddGame.
type NewGame struct {
	Title       string
	Cover       string
	Genres      []string
	PlatformIDs []string
	SeriesID    string
	Status      model.GameStatus
	Perception  model.Perception
	Comment     string
}

type FinishInput struct {
	GameID     string
	Date       string // YYYY-MM-DD; today when empty
	PlatformID string // defaults to the game's active platform
	Full       bool   // completed at 100%
	Rating     *int
	Note       string
}

type DropInput struct {
	GameID     string
	PlatformID string
	Rating     *int
	Reason     string
}

// transitions lists the statuses each lifecycle event may start from.
var transitions = map[model.EventType][]model.GameStatus{
	model.EventFinish: {model.StatusPlaying, model.StatusPaused, model.StatusDropped},
	model.EventDrop:   {model.StatusPlaying, model.StatusPaused},
	model.EventPause:  {model.StatusPlaying},
	model.EventReplay: {model.StatusCompleted, model.StatusDropped, model.StatusPaused},
}

// CanApply reports whether an event of type et may be recorded for g.
func CanApply(g model.Game, et model.EventType) bool {
	for _, s := range transitions[et] {
		if g.Status == s {
			return true
		}
	}
	return false
}

// AddGame saves a new game at the top of the library and records its
// initial event.
func (t *Tracker) AddGame(in NewGame) (model.Game, error) {
	in.Title = strings.TrimSpace(in.Title)
	if in.Title == "" {
		return model.Game{}, fmt.Errorf("add game: %w: title is required", ErrInvalidGame)
	}
	if len(in.PlatformIDs) == 0 {
		return model.Game{}, fmt.Errorf("add game: %w: at least one platform is required", ErrInvalidGame)
	}
	if in.Status == "" {
		in.Status = model.StatusPlaying
	}
	if in.Perception == "" {
		in.Perception = model.PerceptionLike
	}

	g := model.Game{
		ID:             t.newID(),
		Title:          in.Title,
		Cover:          in.Cover,
		Genres:         append([]string{}, in.Genres...),
		PlatformIDs:    append([]string{}, in.PlatformIDs...),
		SeriesID:       in.SeriesID,
		Status:         in.Status,
		Perception:     in.Perception,
		GeneralComment: in.Comment,
		PlayAgain:      in.Perception == model.PerceptionLike,
	}
	if g.Status == model.StatusCompleted {
		g.CompletionType = model.CompletionNormal
	}

	t.mu.Lock()
	ev := model.TimelineEvent{
		ID:         t.newID(),
		Date:       model.Today(t.now()),
		Type:       model.InitialEvent(g.Status),
		GameID:     g.ID,
		PlatformID: g.PrimaryPlatform(),
	}
	games := append([]model.Game{g}, t.games...)
	events := append([]model.TimelineEvent{ev}, t.events...)
	notes, err := t.commit(games, events)
	t.mu.Unlock()
	if err != nil {
		return model.Game{}, fmt.Errorf("add game: %w", err)
	}

	t.log.Info("game added", "id", g.ID, "title", g.Title, "status", g.Status)
	t.notify(notes)
	return g, nil
}

func (t *Tracker) FinishGame(in FinishInput) error {
	if err := checkRating(in.Rating); err != nil {
		return fmt.Errorf("finish game: %w", err)
	}
	if in.Date != "" {
		if _, ok := model.ParseDay(in.Date); !ok {
			return fmt.Errorf("finish game: invalid date %q", in.Date)
		}
	}
	return t.transition(in.GameID, model.EventFinish, in.Date, in.PlatformID, in.Note, func(g *model.Game) {
		g.Status = model.StatusCompleted
		// A 100% completion is never downgraded by a later normal finish.
		if in.Full {
			g.CompletionType = model.CompletionFull
		} else if g.CompletionType == model.CompletionNone {
			g.CompletionType = model.CompletionNormal
		}
		if in.Rating != nil {
			r := *in.Rating
			g.Rating = &r
		}
	})
}

func (t *Tracker) DropGame(in DropInput) error {
	if err := checkRating(in.Rating); err != nil {
		return fmt.Errorf("drop game: %w", err)
	}
	return t.transition(in.GameID, model.EventDrop, "", in.PlatformID, in.Reason, func(g *model.Game) {
		g.Status = model.StatusDropped
		if in.Rating != nil {
			r := *in.Rating
			g.Rating = &r
		}
	})
}

func (t *Tracker) PauseGame(id, note string) error {
	return t.transition(id, model.EventPause, "", "", note, func(g *model.Game) {
		g.Status = model.StatusPaused
	})
}

// ReplayGame puts a finished, dropped or paused game back into play.
func (t *Tracker) ReplayGame(id, note string) error {
	return t.transition(id, model.EventReplay, "", "", note, func(g *model.Game) {
		g.Status = model.StatusPlaying
	})
}

func (t *Tracker) transition(id string, et model.EventType, date, platformID, note string, apply func(*model.Game)) error {
	t.mu.Lock()
	idx := t.indexOf(id)
	if idx < 0 {
		t.mu.Unlock()
		return fmt.Errorf("%s %q: %w", et, id, ErrGameNotFound)
	}
	g := t.games[idx]
	if !CanApply(g, et) {
		t.mu.Unlock()
		return fmt.Errorf("%s %q from %s: %w", et, id, g.Status, ErrInvalidTransition)
	}
	apply(&g)

	if date == "" {
		date = model.Today(t.now())
	}
	if platformID == "" {
		platformID = t.eventPlatform(g)
	}
	ev := model.TimelineEvent{
		ID:         t.newID(),
		Date:       date,
		Type:       et,
		GameID:     g.ID,
		PlatformID: platformID,
		Note:       strings.TrimSpace(note),
	}

	games := make([]model.Game, len(t.games))
	copy(games, t.games)
	games[idx] = g
	events := append([]model.TimelineEvent{ev}, t.events...)
	notes, err := t.commit(games, events)
	t.mu.Unlock()
	if err != nil {
		return fmt.Errorf("%s %q: %w", et, id, err)
	}

	t.log.Info("game updated", "id", g.ID, "event", et, "status", g.Status)
	t.notify(notes)
	return nil
}

// eventPlatform picks the first of the game's platforms that is active in
// the settings, falling back to its first platform.
func (t *Tracker) eventPlatform(g model.Game) string {
	for _, id := range g.PlatformIDs {
		if t.settings.IsActive(id) {
			return id
		}
	}
	return g.PrimaryPlatform()
}

func (t *Tracker) indexOf(id string) int {
	for i, g := range t.games {
		if g.ID == id {
			return i
		}
	}
	return -1
}

func checkRating(r *int) error {
	if r != nil && (*r < 1 || *r > 5) {
		return ErrInvalidRating
	}
	return nil
}
