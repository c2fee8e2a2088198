package export

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/sadopc/gameline/internal/model"
)

var exportTime = time.Date(2024, time.April, 15, 9, 30, 0, 0, time.UTC)

func sampleData() ([]model.TimelineEvent, []model.Game) {
	rating := 5
	games := []model.Game{
		{ID: "g1", Title: "Hades", PlatformIDs: []string{"switch"}, Status: model.StatusCompleted, CompletionType: model.CompletionFull, Rating: &rating},
		{ID: "g2", Title: "Celeste", PlatformIDs: []string{"pc_windows"}, Status: model.StatusPlaying},
	}
	events := []model.TimelineEvent{
		{ID: "e3", Date: "2024-04-10", Type: model.EventFinish, GameID: "g1", PlatformID: "switch", Note: "finally"},
		{ID: "e2", Date: "2024-04-02", Type: model.EventStart, GameID: "g2", PlatformID: "pc_windows"},
		{ID: "e1", Date: "2024-03-01", Type: model.EventStart, GameID: "g1"},
	}
	return events, games
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("invalid CSV: %v", err)
	}
	return records
}

// ============================================================
// CSV
// ============================================================

func TestToCSV(t *testing.T) {
	events, games := sampleData()
	path := filepath.Join(t.TempDir(), "test.csv")

	if err := ToCSV(events, games, path); err != nil {
		t.Fatalf("ToCSV: %v", err)
	}

	records := readCSV(t, path)
	// header + 3 data rows
	if len(records) != 4 {
		t.Fatalf("expected 4 rows (1 header + 3 data), got %d", len(records))
	}

	expectedHeader := []string{"ID", "Date", "Type", "Game", "Platform", "Note"}
	for i, h := range expectedHeader {
		if records[0][i] != h {
			t.Fatalf("header[%d] = %q, want %q", i, records[0][i], h)
		}
	}

	row := records[1]
	want := []string{"e3", "2024-04-10", "finish", "Hades", "Nintendo Switch", "finally"}
	for i := range want {
		if row[i] != want[i] {
			t.Fatalf("row[%d] = %q, want %q", i, row[i], want[i])
		}
	}

	// Event without a platform keeps the column empty.
	if records[3][4] != "" {
		t.Fatalf("expected empty platform, got %q", records[3][4])
	}
}

func TestToCSVEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")

	if err := ToCSV(nil, nil, path); err != nil {
		t.Fatal(err)
	}
	if records := readCSV(t, path); len(records) != 1 {
		t.Fatalf("expected 1 row (header only), got %d", len(records))
	}
}

func TestToCSVUnknownGame(t *testing.T) {
	events := []model.TimelineEvent{
		{ID: "e1", Date: "2024-01-01", Type: model.EventDrop, GameID: "deleted", PlatformID: "gizmondo"},
	}
	path := filepath.Join(t.TempDir(), "unknown.csv")

	if err := ToCSV(events, nil, path); err != nil {
		t.Fatal(err)
	}
	records := readCSV(t, path)
	if records[1][3] != "Unknown" {
		t.Fatalf("expected 'Unknown' for missing game, got %q", records[1][3])
	}
	if records[1][4] != "Other" {
		t.Fatalf("expected 'Other' for unknown platform, got %q", records[1][4])
	}
}

func TestToCSVBadPath(t *testing.T) {
	if err := ToCSV(nil, nil, "/nonexistent/dir/file.csv"); err == nil {
		t.Fatal("expected error for bad path")
	}
}

func TestToCSVSpecialCharacters(t *testing.T) {
	games := []model.Game{{ID: "g1", Title: `Game "Special"`}}
	events := []model.TimelineEvent{
		{ID: "e1", Date: "2024-01-01", Type: model.EventFinish, GameID: "g1", Note: `note with "quotes" and, commas`},
	}
	path := filepath.Join(t.TempDir(), "special.csv")

	if err := ToCSV(events, games, path); err != nil {
		t.Fatal(err)
	}
	records := readCSV(t, path)
	if records[1][3] != `Game "Special"` {
		t.Fatalf("title mangled: %q", records[1][3])
	}
	if records[1][5] != `note with "quotes" and, commas` {
		t.Fatalf("note mangled: %q", records[1][5])
	}
}

// ============================================================
// JSON
// ============================================================

func sampleBackup() Backup {
	events, games := sampleData()
	achievements := []model.Achievement{
		{ID: "first_access", Title: "Welcome", Unlocked: true, UnlockedDate: "2024-01-01T00:00:00Z", Kind: model.KindBoolean},
	}
	return NewBackup(
		model.UserProfile{Name: "Eden", Avatar: model.DefaultAvatar},
		model.DefaultSettings(),
		games, events, achievements, exportTime,
	)
}

func TestToJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.json")

	if err := ToJSON(sampleBackup(), path); err != nil {
		t.Fatalf("ToJSON: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	var result Backup
	if err := json.Unmarshal(data, &result); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}

	if result.Version != "1.0" {
		t.Fatalf("version = %q, want 1.0", result.Version)
	}
	if result.Timestamp != "2024-04-15T09:30:00Z" {
		t.Fatalf("timestamp = %q", result.Timestamp)
	}
	if result.UserProfile.Name != "Eden" {
		t.Fatalf("profile = %+v", result.UserProfile)
	}
	if len(result.Games) != 2 || len(result.Events) != 3 || len(result.Achievements) != 1 {
		t.Fatalf("unexpected sizes: %d games, %d events, %d achievements",
			len(result.Games), len(result.Events), len(result.Achievements))
	}
	if g := result.Games[0]; !g.Platinum() || g.Rating == nil || *g.Rating != 5 {
		t.Fatalf("game mangled: %+v", g)
	}
}

func TestToJSONFieldNames(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fields.json")
	ToJSON(sampleBackup(), path)

	data, _ := os.ReadFile(path)
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{"version", "timestamp", "userProfile", "settings", "games", "events", "achievements"} {
		if _, ok := raw[key]; !ok {
			t.Fatalf("missing top-level key %q", key)
		}
	}
	for _, key := range []string{`"platformIds"`, `"gameId"`, `"activePlatforms"`, `"unlockedDate"`} {
		if !strings.Contains(string(data), key) {
			t.Fatalf("expected %s in backup", key)
		}
	}
}

func TestToJSONEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.json")
	b := NewBackup(model.DefaultProfile(), model.DefaultSettings(), nil, nil, nil, exportTime)

	if err := ToJSON(b, path); err != nil {
		t.Fatal(err)
	}

	data, _ := os.ReadFile(path)
	// Empty collections are arrays, never null.
	if strings.Contains(string(data), "null") {
		t.Fatalf("expected empty arrays, got %s", data)
	}
}

func TestToJSONBadPath(t *testing.T) {
	if err := ToJSON(sampleBackup(), "/nonexistent/dir/file.json"); err == nil {
		t.Fatal("expected error for bad path")
	}
}

func TestToJSONPrettyPrinted(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pretty.json")
	ToJSON(sampleBackup(), path)

	data, _ := os.ReadFile(path)
	if !strings.Contains(string(data), "\n  \"version\"") {
		t.Fatal("JSON should be indented with two spaces")
	}
}

// ============================================================
// File names
// ============================================================

func TestFileNames(t *testing.T) {
	if got := BackupFileName(exportTime); got != "gameline_backup_2024-04-15.json" {
		t.Fatalf("BackupFileName = %q", got)
	}
	if got := EventsFileName(exportTime); got != "gameline_events_2024-04-15.csv" {
		t.Fatalf("EventsFileName = %q", got)
	}
}
