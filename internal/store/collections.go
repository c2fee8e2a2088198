package store

import (
	"encoding/json"
	"fmt"

	"github.com/sadopc/gameline/internal/achievement"
	"github.com/sadopc/gameline/internal/model"
)

// loadJSON decodes the value under key into v. It reports false when the
// key is absent or the value cannot be decoded; decode failures are logged.
func (s *Store) loadJSON(key string, v any) (bool, error) {
	data, err := s.Load(key)
	if err != nil {
		return false, err
	}
	if data == nil {
		return false, nil
	}
	if err := json.Unmarshal(data, v); err != nil {
		s.log.Warn("discarding unreadable collection", "key", key, "err", err)
		return false, nil
	}
	return true, nil
}

func (s *Store) saveJSON(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %q: %w", key, err)
	}
	return s.Save(key, data)
}

func (s *Store) LoadGames() ([]model.Game, error) {
	var games []model.Game
	if ok, err := s.loadJSON(KeyGames, &games); err != nil || !ok {
		return []model.Game{}, err
	}
	if games == nil {
		games = []model.Game{}
	}
	return games, nil
}

func (s *Store) SaveGames(games []model.Game) error {
	if games == nil {
		games = []model.Game{}
	}
	return s.saveJSON(KeyGames, games)
}

func (s *Store) LoadEvents() ([]model.TimelineEvent, error) {
	var events []model.TimelineEvent
	if ok, err := s.loadJSON(KeyEvents, &events); err != nil || !ok {
		return []model.TimelineEvent{}, err
	}
	if events == nil {
		events = []model.TimelineEvent{}
	}
	return events, nil
}

func (s *Store) SaveEvents(events []model.TimelineEvent) error {
	if events == nil {
		events = []model.TimelineEvent{}
	}
	return s.saveJSON(KeyEvents, events)
}

// SaveSnapshot persists the games and events, plus the achievements when
// they are non-nil, in a single transaction.
func (s *Store) SaveSnapshot(games []model.Game, events []model.TimelineEvent, achievements []model.Achievement) error {
	if games == nil {
		games = []model.Game{}
	}
	if events == nil {
		events = []model.TimelineEvent{}
	}
	values := make(map[string][]byte, 3)
	encode := func(key string, v any) error {
		data, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("encode %q: %w", key, err)
		}
		values[key] = data
		return nil
	}
	if err := encode(KeyGames, games); err != nil {
		return err
	}
	if err := encode(KeyEvents, events); err != nil {
		return err
	}
	if achievements != nil {
		if err := encode(KeyAchievements, achievements); err != nil {
			return err
		}
	}
	return s.SaveAll(values)
}

// LoadAchievements returns the catalog with any saved progress overlaid.
func (s *Store) LoadAchievements() ([]model.Achievement, error) {
	var saved []model.Achievement
	if _, err := s.loadJSON(KeyAchievements, &saved); err != nil {
		return achievement.Catalog(), err
	}
	return achievement.Merge(saved), nil
}

func (s *Store) SaveAchievements(achievements []model.Achievement) error {
	return s.saveJSON(KeyAchievements, achievements)
}

func (s *Store) LoadProfile() (model.UserProfile, error) {
	var p model.UserProfile
	if ok, err := s.loadJSON(KeyProfile, &p); err != nil || !ok {
		return model.DefaultProfile(), err
	}
	return p, nil
}

func (s *Store) SaveProfile(p model.UserProfile) error {
	return s.saveJSON(KeyProfile, p)
}

func (s *Store) LoadSettings() (model.AppSettings, error) {
	var st model.AppSettings
	if ok, err := s.loadJSON(KeySettings, &st); err != nil || !ok {
		return model.DefaultSettings(), err
	}
	if st.ActivePlatforms == nil {
		st.ActivePlatforms = model.DefaultSettings().ActivePlatforms
	}
	return st, nil
}

func (s *Store) SaveSettings(st model.AppSettings) error {
	return s.saveJSON(KeySettings, st)
}
