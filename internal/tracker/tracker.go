// Package tracker owns the in-memory snapshot of the library and applies
// every mutation to it: it records timeline events, re-evaluates
// achievements, persists the result and forwards unlock notifications.
package tracker

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/sadopc/gameline/internal/achievement"
	"github.com/sadopc/gameline/internal/model"
)

var (
	ErrGameNotFound      = errors.New("game not found")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrInvalidGame       = errors.New("invalid game")
	ErrInvalidRating     = errors.New("rating must be between 1 and 5")
)

// Store is the durable side of the tracker.
type Store interface {
	LoadGames() ([]model.Game, error)
	LoadEvents() ([]model.TimelineEvent, error)
	LoadAchievements() ([]model.Achievement, error)
	SaveAchievements([]model.Achievement) error
	// SaveSnapshot writes games, events and, when non-nil, achievements
	// together or not at all.
	SaveSnapshot([]model.Game, []model.TimelineEvent, []model.Achievement) error
	LoadProfile() (model.UserProfile, error)
	SaveProfile(model.UserProfile) error
	LoadSettings() (model.AppSettings, error)
	SaveSettings(model.AppSettings) error
	Reset() error
}

// Sink receives achievement unlocks in the order they happened.
type Sink interface {
	Notify(achievement.Notification)
}

type nopSink struct{}

func (nopSink) Notify(achievement.Notification) {}

type Option func(*Tracker)

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(t *Tracker) { t.now = now }
}

func WithLogger(l *slog.Logger) Option {
	return func(t *Tracker) { t.log = l }
}

// newV7 returns time-ordered IDs, so same-day timeline entries sort in the
// order they were recorded.
func newV7() string {
	return uuid.Must(uuid.NewV7()).String()
}

// WithIDs overrides the generator used for game and event IDs.
func WithIDs(next func() string) Option {
	return func(t *Tracker) { t.newID = next }
}

type Tracker struct {
	store Store
	sink  Sink
	log   *slog.Logger
	now   func() time.Time
	newID func() string

	mu           sync.Mutex
	games        []model.Game
	events       []model.TimelineEvent
	achievements []model.Achievement
	profile      model.UserProfile
	settings     model.AppSettings
}

// New loads the persisted snapshot and brings achievements up to date.
func New(st Store, sink Sink, opts ...Option) (*Tracker, error) {
	if sink == nil {
		sink = nopSink{}
	}
	t := &Tracker{
		store: st,
		sink:  sink,
		log:   slog.Default(),
		now:   time.Now,
		newID: newV7,
	}
	for _, opt := range opts {
		opt(t)
	}
	if err := t.load(); err != nil {
		return nil, err
	}
	return t, nil
}

func (t *Tracker) load() error {
	t.mu.Lock()
	notes, err := t.reload()
	t.mu.Unlock()
	if err != nil {
		return err
	}
	t.notify(notes)
	return nil
}

// reload replaces the snapshot with the stored collections and brings
// achievements up to date. Callers hold t.mu.
func (t *Tracker) reload() ([]achievement.Notification, error) {
	games, err := t.store.LoadGames()
	if err != nil {
		return nil, fmt.Errorf("load games: %w", err)
	}
	events, err := t.store.LoadEvents()
	if err != nil {
		return nil, fmt.Errorf("load events: %w", err)
	}
	achievements, err := t.store.LoadAchievements()
	if err != nil {
		return nil, fmt.Errorf("load achievements: %w", err)
	}
	profile, err := t.store.LoadProfile()
	if err != nil {
		return nil, fmt.Errorf("load profile: %w", err)
	}
	settings, err := t.store.LoadSettings()
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}

	now := t.now()
	welcome := achievement.Welcome(achievements, now)
	res := achievement.Evaluate(games, events, welcome.Achievements, now)
	notes := append(welcome.Notifications, res.Notifications...)
	if welcome.Changed || res.Changed {
		if err := t.store.SaveAchievements(res.Achievements); err != nil {
			return nil, fmt.Errorf("save achievements: %w", err)
		}
	}
	t.games, t.events, t.profile, t.settings = games, events, profile, settings
	t.achievements = res.Achievements

	t.log.Info("library loaded", "games", len(games), "events", len(events), "unlocked", len(notes))
	return notes, nil
}

func (t *Tracker) notify(notes []achievement.Notification) {
	for _, n := range notes {
		t.log.Info("achievement unlocked", "id", n.AchievementID)
		t.sink.Notify(n)
	}
}

// commit evaluates achievements against the new collections, persists
// them in one write and swaps them in. Callers hold t.mu.
func (t *Tracker) commit(games []model.Game, events []model.TimelineEvent) ([]achievement.Notification, error) {
	res := achievement.Evaluate(games, events, t.achievements, t.now())
	var changed []model.Achievement
	if res.Changed {
		changed = res.Achievements
	}
	if err := t.store.SaveSnapshot(games, events, changed); err != nil {
		return nil, fmt.Errorf("save snapshot: %w", err)
	}
	t.games, t.events, t.achievements = games, events, res.Achievements
	return res.Notifications, nil
}

// Reset wipes every stored collection and starts over from defaults.
func (t *Tracker) Reset() error {
	t.mu.Lock()
	if err := t.store.Reset(); err != nil {
		t.mu.Unlock()
		return fmt.Errorf("reset: %w", err)
	}
	t.log.Warn("library reset")
	notes, err := t.reload()
	t.mu.Unlock()
	if err != nil {
		return err
	}
	t.notify(notes)
	return nil
}

func (t *Tracker) UpdateProfile(p model.UserProfile) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if p.Avatar == "" {
		p.Avatar = model.DefaultAvatar
	}
	if err := t.store.SaveProfile(p); err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	t.profile = p
	return nil
}

func (t *Tracker) UpdateSettings(s model.AppSettings) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	s.ActivePlatforms = append([]string{}, s.ActivePlatforms...)
	if err := t.store.SaveSettings(s); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	t.settings = s
	return nil
}
