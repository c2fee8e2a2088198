package export

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/sadopc/gameline/internal/model"
)

// BackupVersion is written into every backup file.
const BackupVersion = "1.0"

// Backup is the full-library JSON document.
type Backup struct {
	Version      string                `json:"version"`
	Timestamp    string                `json:"timestamp"`
	UserProfile  model.UserProfile     `json:"userProfile"`
	Settings     model.AppSettings     `json:"settings"`
	Games        []model.Game          `json:"games"`
	Events       []model.TimelineEvent `json:"events"`
	Achievements []model.Achievement   `json:"achievements"`
}

// NewBackup stamps the collections with the current version and time.
func NewBackup(profile model.UserProfile, settings model.AppSettings, games []model.Game,
	events []model.TimelineEvent, achievements []model.Achievement, now time.Time) Backup {
	if games == nil {
		games = []model.Game{}
	}
	if events == nil {
		events = []model.TimelineEvent{}
	}
	if achievements == nil {
		achievements = []model.Achievement{}
	}
	return Backup{
		Version:      BackupVersion,
		Timestamp:    now.UTC().Format(time.RFC3339),
		UserProfile:  profile,
		Settings:     settings,
		Games:        games,
		Events:       events,
		Achievements: achievements,
	}
}

// BackupFileName returns the conventional file name for a backup taken at now.
func BackupFileName(now time.Time) string {
	return fmt.Sprintf("gameline_backup_%s.json", now.Format(model.DateLayout))
}

func ToJSON(b Backup, path string) error {
	data, err := json.MarshalIndent(b, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write json file: %w", err)
	}
	return nil
}
