package store

import (
	"bytes"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sadopc/gameline/internal/achievement"
	"github.com/sadopc/gameline/internal/model"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewMemory()
	if err != nil {
		t.Fatalf("new memory store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// ============================================================
// Store initialization
// ============================================================

func TestNewMemory(t *testing.T) {
	s, err := NewMemory()
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	var version int
	s.db.QueryRow("PRAGMA user_version").Scan(&version)
	if version != 1 {
		t.Fatalf("expected user_version 1, got %d", version)
	}
}

func TestNewWithPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "gameline.db")
	s, err := New(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Save(KeyProfile, []byte(`{"name":"Eden"}`)); err != nil {
		t.Fatal(err)
	}
	s.Close()

	// Reopen: data survives and migration is not rerun.
	s2, err := New(path)
	if err != nil {
		t.Fatal(err)
	}
	defer s2.Close()
	p, err := s2.LoadProfile()
	if err != nil {
		t.Fatal(err)
	}
	if p.Name != "Eden" {
		t.Fatalf("expected persisted profile, got %+v", p)
	}
}

func TestDefaultDBPath(t *testing.T) {
	path, err := DefaultDBPath()
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasSuffix(path, filepath.Join("gameline", "gameline.db")) {
		t.Fatalf("unexpected path %q", path)
	}
}

// ============================================================
// Key/value
// ============================================================

func TestLoadMissing(t *testing.T) {
	s := newTestStore(t)
	data, err := s.Load("nope")
	if err != nil {
		t.Fatal(err)
	}
	if data != nil {
		t.Fatalf("expected nil, got %q", data)
	}
}

func TestSaveOverwrites(t *testing.T) {
	s := newTestStore(t)
	if err := s.Save("k", []byte("one")); err != nil {
		t.Fatal(err)
	}
	if err := s.Save("k", []byte("two")); err != nil {
		t.Fatal(err)
	}
	data, _ := s.Load("k")
	if string(data) != "two" {
		t.Fatalf("expected two, got %q", data)
	}
	keys, _ := s.Keys()
	if len(keys) != 1 {
		t.Fatalf("expected 1 key, got %v", keys)
	}
}

func TestDeleteAndKeys(t *testing.T) {
	s := newTestStore(t)
	s.Save("b", []byte("2"))
	s.Save("a", []byte("1"))

	keys, err := s.Keys()
	if err != nil {
		t.Fatal(err)
	}
	if len(keys) != 2 || keys[0] != "a" || keys[1] != "b" {
		t.Fatalf("expected [a b], got %v", keys)
	}

	if err := s.Delete("a"); err != nil {
		t.Fatal(err)
	}
	if data, _ := s.Load("a"); data != nil {
		t.Fatal("expected a deleted")
	}
	// Deleting a missing key is not an error.
	if err := s.Delete("a"); err != nil {
		t.Fatal(err)
	}
}

func TestEntries(t *testing.T) {
	s := newTestStore(t)
	s.Save("k", []byte("v"))
	entries, err := s.Entries()
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || string(entries[0].Value) != "v" {
		t.Fatalf("unexpected entries %+v", entries)
	}
	if entries[0].UpdatedAt.IsZero() {
		t.Fatal("expected updated_at")
	}
}

func TestReset(t *testing.T) {
	s := newTestStore(t)
	s.Save("a", []byte("1"))
	s.Save("b", []byte("2"))
	if err := s.Reset(); err != nil {
		t.Fatal(err)
	}
	keys, _ := s.Keys()
	if len(keys) != 0 {
		t.Fatalf("expected empty store, got %v", keys)
	}
}

func TestSaveAll(t *testing.T) {
	s := newTestStore(t)
	s.Save("a", []byte("old"))
	if err := s.SaveAll(map[string][]byte{"a": []byte("1"), "b": []byte("2")}); err != nil {
		t.Fatal(err)
	}
	for k, want := range map[string]string{"a": "1", "b": "2"} {
		got, _ := s.Load(k)
		if string(got) != want {
			t.Fatalf("%s = %q, want %q", k, got, want)
		}
	}
}

// ============================================================
// Collections
// ============================================================

func TestCollectionDefaults(t *testing.T) {
	s := newTestStore(t)

	games, err := s.LoadGames()
	if err != nil || games == nil || len(games) != 0 {
		t.Fatalf("games = %v, %v", games, err)
	}
	events, err := s.LoadEvents()
	if err != nil || events == nil || len(events) != 0 {
		t.Fatalf("events = %v, %v", events, err)
	}
	ach, err := s.LoadAchievements()
	if err != nil || len(ach) != len(achievement.Catalog()) {
		t.Fatalf("achievements = %d, %v", len(ach), err)
	}
	p, _ := s.LoadProfile()
	if p.Avatar != model.DefaultAvatar {
		t.Fatalf("profile = %+v", p)
	}
	st, _ := s.LoadSettings()
	if len(st.ActivePlatforms) != len(model.DefaultActivePlatforms) {
		t.Fatalf("settings = %+v", st)
	}
}

func TestGamesRoundTrip(t *testing.T) {
	s := newTestStore(t)
	rating := 9
	in := []model.Game{{
		ID: "g1", Title: "Hades", PlatformIDs: []string{"switch"}, Genres: []string{"Roguelike"},
		Status: model.StatusCompleted, CompletionType: model.CompletionFull, Rating: &rating,
	}}
	if err := s.SaveGames(in); err != nil {
		t.Fatal(err)
	}
	out, err := s.LoadGames()
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 1 || out[0].Title != "Hades" || out[0].Rating == nil || *out[0].Rating != 9 {
		t.Fatalf("unexpected games %+v", out)
	}
	if !out[0].Platinum() {
		t.Fatal("expected completion type to survive")
	}
}

func TestSaveNilCollections(t *testing.T) {
	s := newTestStore(t)
	s.SaveGames(nil)
	s.SaveEvents(nil)
	data, _ := s.Load(KeyGames)
	if string(data) != "[]" {
		t.Fatalf("expected [], got %q", data)
	}
	data, _ = s.Load(KeyEvents)
	if string(data) != "[]" {
		t.Fatalf("expected [], got %q", data)
	}
}

func TestAchievementsMergedOnLoad(t *testing.T) {
	s := newTestStore(t)
	saved := []model.Achievement{
		{ID: achievement.FirstAccess, Unlocked: true, UnlockedDate: "2024-01-01T00:00:00Z"},
		{ID: "retired_achievement", Unlocked: true},
	}
	if err := s.SaveAchievements(saved); err != nil {
		t.Fatal(err)
	}
	out, err := s.LoadAchievements()
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != len(achievement.Catalog()) {
		t.Fatalf("expected catalog size, got %d", len(out))
	}
	for _, a := range out {
		if a.ID == "retired_achievement" {
			t.Fatal("unknown id should be dropped")
		}
		if a.ID == achievement.FirstAccess && (!a.Unlocked || a.Title == "") {
			t.Fatalf("expected merged first access, got %+v", a)
		}
	}
}

func TestMalformedFallsBackAndLogs(t *testing.T) {
	s := newTestStore(t)
	var buf bytes.Buffer
	s.SetLogger(slog.New(slog.NewTextHandler(&buf, nil)))

	s.Save(KeyGames, []byte("{not json"))
	s.Save(KeySettings, []byte("[1,2]"))

	games, err := s.LoadGames()
	if err != nil {
		t.Fatalf("malformed data should not error: %v", err)
	}
	if len(games) != 0 {
		t.Fatalf("expected empty games, got %v", games)
	}
	st, err := s.LoadSettings()
	if err != nil {
		t.Fatal(err)
	}
	if len(st.ActivePlatforms) != len(model.DefaultActivePlatforms) {
		t.Fatalf("expected default settings, got %+v", st)
	}
	if !strings.Contains(buf.String(), KeyGames) || !strings.Contains(buf.String(), KeySettings) {
		t.Fatalf("expected warnings for both keys, got %q", buf.String())
	}
}

func TestSettingsRoundTrip(t *testing.T) {
	s := newTestStore(t)
	in := model.AppSettings{ActivePlatforms: []string{"ps5"}, RawgAPIKey: "abc"}
	if err := s.SaveSettings(in); err != nil {
		t.Fatal(err)
	}
	out, _ := s.LoadSettings()
	if len(out.ActivePlatforms) != 1 || out.ActivePlatforms[0] != "ps5" || out.RawgAPIKey != "abc" {
		t.Fatalf("unexpected settings %+v", out)
	}
}

func TestSaveSnapshot(t *testing.T) {
	s := newTestStore(t)
	games := []model.Game{{ID: "g1", Title: "Zelda"}}
	events := []model.TimelineEvent{{ID: "e1", GameID: "g1", Type: model.EventStart, Date: "2024-04-15"}}

	if err := s.SaveSnapshot(games, events, nil); err != nil {
		t.Fatal(err)
	}
	if raw, _ := s.Load(KeyAchievements); raw != nil {
		t.Fatal("nil achievements should not be written")
	}
	gotGames, _ := s.LoadGames()
	gotEvents, _ := s.LoadEvents()
	if len(gotGames) != 1 || len(gotEvents) != 1 {
		t.Fatalf("expected 1 game and 1 event, got %d and %d", len(gotGames), len(gotEvents))
	}

	ach := achievement.Catalog()
	ach[0].Unlocked = true
	if err := s.SaveSnapshot(games, events, ach); err != nil {
		t.Fatal(err)
	}
	loaded, _ := s.LoadAchievements()
	if !loaded[0].Unlocked {
		t.Fatal("achievements should be written when given")
	}
}

func TestSaveSnapshotIsAtomic(t *testing.T) {
	s := newTestStore(t)
	// Fail the write of the games key, which comes after events in key order.
	_, err := s.db.Exec(`CREATE TRIGGER fail_games BEFORE INSERT ON kv
		WHEN NEW.key = 'gl_games'
		BEGIN SELECT RAISE(ABORT, 'disk full'); END`)
	if err != nil {
		t.Fatal(err)
	}

	games := []model.Game{{ID: "g1", Title: "Zelda"}}
	events := []model.TimelineEvent{{ID: "e1", GameID: "g1", Type: model.EventStart, Date: "2024-04-15"}}
	if err := s.SaveSnapshot(games, events, achievement.Catalog()); err == nil {
		t.Fatal("expected save error")
	}

	keys, _ := s.Keys()
	if len(keys) != 0 {
		t.Fatalf("failed snapshot should write nothing, got keys %v", keys)
	}
}
