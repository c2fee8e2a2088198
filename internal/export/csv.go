package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"time"

	"github.com/sadopc/gameline/internal/model"
)

// EventsFileName returns the conventional file name for an events export.
func EventsFileName(now time.Time) string {
	return fmt.Sprintf("gameline_events_%s.csv", now.Format(model.DateLayout))
}

// ToCSV writes one row per timeline event.
func ToCSV(events []model.TimelineEvent, games []model.Game, path string) error {
	titles := make(map[string]string, len(games))
	for _, g := range games {
		titles[g.ID] = g.Title
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write([]string{"ID", "Date", "Type", "Game", "Platform", "Note"}); err != nil {
		return err
	}

	for _, e := range events {
		title, ok := titles[e.GameID]
		if !ok {
			title = "Unknown"
		}
		row := []string{
			e.ID,
			e.Date,
			string(e.Type),
			title,
			platformName(e.PlatformID),
			e.Note,
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

func platformName(id string) string {
	if id == "" {
		return ""
	}
	return model.PlatformName(id)
}
