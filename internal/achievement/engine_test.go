package achievement

import (
	"fmt"
	"testing"
	"time"

	"github.com/sadopc/gameline/internal/model"
)

var testNow = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func completedGame(id string) model.Game {
	return model.Game{ID: id, Title: id, Status: model.StatusCompleted, CompletionType: model.CompletionNormal, PlatformIDs: []string{"ps5"}}
}

func finish(id, gameID, date string) model.TimelineEvent {
	return model.TimelineEvent{ID: id, Date: date, Type: model.EventFinish, GameID: gameID}
}

func find(t *testing.T, list []model.Achievement, id string) model.Achievement {
	t.Helper()
	for _, a := range list {
		if a.ID == id {
			return a
		}
	}
	t.Fatalf("achievement %q not found", id)
	return model.Achievement{}
}

func notified(notes []Notification, id string) int {
	n := 0
	for _, note := range notes {
		if note.AchievementID == id {
			n++
		}
	}
	return n
}

// ============================================================
// Catalog
// ============================================================

func TestCatalogLockedAndUnique(t *testing.T) {
	cat := Catalog()
	if len(cat) != 27 {
		t.Fatalf("catalog size = %d, want 27", len(cat))
	}
	seen := make(map[string]bool)
	for _, a := range cat {
		if seen[a.ID] {
			t.Fatalf("duplicate id %q", a.ID)
		}
		seen[a.ID] = true
		if a.Unlocked || a.UnlockedDate != "" {
			t.Fatalf("%q should start locked", a.ID)
		}
		if a.Kind == model.KindProgressive && a.Target <= 0 {
			t.Fatalf("%q is progressive without a target", a.ID)
		}
	}
}

func TestCatalogReturnsCopy(t *testing.T) {
	a := Catalog()
	a[0].Unlocked = true
	if Catalog()[0].Unlocked {
		t.Fatal("Catalog must return a fresh copy")
	}
}

func TestEveryRuleHasCatalogEntry(t *testing.T) {
	ids := make(map[string]bool)
	for _, a := range Catalog() {
		ids[a.ID] = true
	}
	for id := range rules {
		if !ids[id] {
			t.Fatalf("rule %q has no catalog entry", id)
		}
	}
}

func TestMergeKeepsProgress(t *testing.T) {
	saved := []model.Achievement{
		{ID: Complete5Games, Title: "old title", Unlocked: false, CurrentValue: 4},
		{ID: FirstAccess, Unlocked: true, UnlockedDate: "2023-01-01T00:00:00Z"},
		{ID: "retired_achievement", Unlocked: true},
	}
	merged := Merge(saved)
	if len(merged) != len(Catalog()) {
		t.Fatalf("merged size = %d", len(merged))
	}

	c5 := find(t, merged, Complete5Games)
	if c5.CurrentValue != 4 {
		t.Fatalf("CurrentValue = %d, want 4", c5.CurrentValue)
	}
	if c5.Title != "Steady pace" {
		t.Fatalf("catalog title should win, got %q", c5.Title)
	}

	fa := find(t, merged, FirstAccess)
	if !fa.Unlocked || fa.UnlockedDate != "2023-01-01T00:00:00Z" {
		t.Fatalf("first access state lost: %+v", fa)
	}
	for _, a := range merged {
		if a.ID == "retired_achievement" {
			t.Fatal("unknown saved ids should be dropped")
		}
	}
}

// ============================================================
// Evaluate
// ============================================================

func TestEvaluateEmpty(t *testing.T) {
	res := Evaluate(nil, nil, Catalog(), testNow)
	if len(res.Notifications) != 0 {
		t.Fatalf("expected no notifications, got %d", len(res.Notifications))
	}
	if res.Changed {
		t.Fatal("empty data should not change state")
	}
}

func TestEvaluateThreeFinishesInMonth(t *testing.T) {
	games := []model.Game{completedGame("g1"), completedGame("g2"), completedGame("g3")}
	events := []model.TimelineEvent{
		finish("e1", "g1", "2024-04-02"),
		finish("e2", "g2", "2024-04-10"),
		finish("e3", "g3", "2024-04-28"),
	}

	res := Evaluate(games, events, Catalog(), testNow)

	if !find(t, res.Achievements, Complete3GamesMonth).Unlocked {
		t.Fatal("complete_3_games_month should unlock")
	}
	if n := notified(res.Notifications, Complete3GamesMonth); n != 1 {
		t.Fatalf("complete_3_games_month notified %d times, want 1", n)
	}
	if !find(t, res.Achievements, Complete3Games).Unlocked {
		t.Fatal("complete_3_games should unlock from global status")
	}
	if find(t, res.Achievements, Complete5Games).CurrentValue != 3 {
		t.Fatal("complete_5_games should track 3")
	}
	if find(t, res.Achievements, Complete5Games).Unlocked {
		t.Fatal("complete_5_games should stay locked")
	}
	if find(t, res.Achievements, FirstGameCompleted100).Unlocked {
		t.Fatal("no 100% game: platinum should stay locked")
	}
	if !res.Changed {
		t.Fatal("Changed should be true")
	}
}

func TestEvaluateMonthBucketsSplit(t *testing.T) {
	games := []model.Game{completedGame("g1"), completedGame("g2"), completedGame("g3")}
	events := []model.TimelineEvent{
		finish("e1", "g1", "2024-03-31"),
		finish("e2", "g2", "2024-04-01"),
		finish("e3", "g3", "2023-04-15"),
	}
	res := Evaluate(games, events, Catalog(), testNow)
	if find(t, res.Achievements, Complete3GamesMonth).Unlocked {
		t.Fatal("finishes in different months must not be combined")
	}
}

func TestEvaluateYearBucket(t *testing.T) {
	var games []model.Game
	var events []model.TimelineEvent
	for i := 0; i < 10; i++ {
		id := fmt.Sprintf("g%d", i)
		games = append(games, completedGame(id))
		events = append(events, finish("e"+id, id, fmt.Sprintf("2022-%02d-10T18:25:43.511Z", i+1)))
	}
	res := Evaluate(games, events, Catalog(), testNow)
	if !find(t, res.Achievements, Complete10GamesYear).Unlocked {
		t.Fatal("10 finishes in 2022 should unlock complete_10_games_year")
	}
	if find(t, res.Achievements, Complete3GamesMonth).Unlocked {
		t.Fatal("one finish per month should not unlock the monthly badge")
	}
	if !find(t, res.Achievements, Complete10Games).Unlocked {
		t.Fatal("complete_10_games should unlock")
	}
}

func TestEvaluateIdempotent(t *testing.T) {
	games := []model.Game{completedGame("g1")}
	events := []model.TimelineEvent{
		{ID: "e0", Date: "2024-04-01", Type: model.EventStart, GameID: "g1"},
		finish("e1", "g1", "2024-04-15"),
	}
	first := Evaluate(games, events, Catalog(), testNow)
	if len(first.Notifications) == 0 {
		t.Fatal("first pass should notify")
	}

	later := testNow.Add(48 * time.Hour)
	second := Evaluate(games, events, first.Achievements, later)
	if len(second.Notifications) != 0 {
		t.Fatalf("second pass notified %d times", len(second.Notifications))
	}
	if second.Changed {
		t.Fatal("second pass should not change state")
	}
	for i := range first.Achievements {
		if first.Achievements[i] != second.Achievements[i] {
			t.Fatalf("state drifted for %q", first.Achievements[i].ID)
		}
	}
}

func TestEvaluateMonotonic(t *testing.T) {
	games := []model.Game{completedGame("g1"), completedGame("g2"), completedGame("g3")}
	res := Evaluate(games, nil, Catalog(), testNow)
	c3 := find(t, res.Achievements, Complete3Games)
	if !c3.Unlocked {
		t.Fatal("complete_3_games should unlock")
	}

	// Games later leave Completed: the achievement stays earned.
	for i := range games {
		games[i].Status = model.StatusDropped
	}
	res2 := Evaluate(games, nil, res.Achievements, testNow.Add(time.Hour))
	again := find(t, res2.Achievements, Complete3Games)
	if !again.Unlocked {
		t.Fatal("achievements must never re-lock")
	}
	if again.UnlockedDate != c3.UnlockedDate {
		t.Fatalf("UnlockedDate changed: %q -> %q", c3.UnlockedDate, again.UnlockedDate)
	}
	if again.CurrentValue != 0 {
		t.Fatalf("counter should still be recorded, got %d", again.CurrentValue)
	}
	if !res2.Changed {
		t.Fatal("counter change should be reported")
	}
}

func TestEvaluateDoesNotMutateInput(t *testing.T) {
	state := Catalog()
	Evaluate([]model.Game{completedGame("g1")}, nil, state, testNow)
	for _, a := range state {
		if a.Unlocked || a.CurrentValue != 0 {
			t.Fatalf("input mutated: %+v", a)
		}
	}
}

func TestEvaluateUnlockedDateStamp(t *testing.T) {
	res := Evaluate([]model.Game{completedGame("g1")}, nil, Catalog(), testNow)
	a := find(t, res.Achievements, FirstGameAdded)
	if a.UnlockedDate != "2024-05-01T12:00:00Z" {
		t.Fatalf("UnlockedDate = %q", a.UnlockedDate)
	}
}

func TestEvaluateProgressiveClamp(t *testing.T) {
	var games []model.Game
	for i := 0; i < 7; i++ {
		games = append(games, completedGame(fmt.Sprintf("g%d", i)))
	}
	res := Evaluate(games, nil, Catalog(), testNow)
	c3 := find(t, res.Achievements, Complete3Games)
	if !c3.Unlocked {
		t.Fatal("should unlock")
	}
	if c3.Progress() != 3 {
		t.Fatalf("Progress() = %d, want clamp to 3", c3.Progress())
	}
	if c3.CurrentValue != 7 {
		t.Fatalf("raw value = %d, want 7", c3.CurrentValue)
	}
}

func TestEvaluateFirsts(t *testing.T) {
	games := []model.Game{
		{ID: "g1", Status: model.StatusCompleted, CompletionType: model.CompletionFull},
		{ID: "g2", Status: model.StatusDropped},
	}
	events := []model.TimelineEvent{
		{ID: "e1", Date: "2024-01-01", Type: model.EventStart, GameID: "g1"},
		{ID: "e2", Date: "2024-01-05", Type: model.EventDrop, GameID: "g2"},
	}
	res := Evaluate(games, events, Catalog(), testNow)

	tests := []struct {
		id   string
		want bool
	}{
		{FirstGameAdded, true},
		{FirstGameStarted, true},
		{FirstGameCompleted, false}, // no finish event yet
		{FirstGameCompleted100, true},
		{FirstGameAbandoned, true},
		{FirstAccess, false},
	}
	for _, tt := range tests {
		if got := find(t, res.Achievements, tt.id).Unlocked; got != tt.want {
			t.Errorf("%s unlocked = %v, want %v", tt.id, got, tt.want)
		}
	}
}

func TestEvaluateNotificationOrder(t *testing.T) {
	games := []model.Game{completedGame("g1")}
	events := []model.TimelineEvent{finish("e1", "g1", "2024-04-01")}
	res := Evaluate(games, events, Catalog(), testNow)

	order := make(map[string]int)
	for i, a := range Catalog() {
		order[a.ID] = i
	}
	for i := 1; i < len(res.Notifications); i++ {
		if order[res.Notifications[i-1].AchievementID] > order[res.Notifications[i].AchievementID] {
			t.Fatal("notifications should follow catalog order")
		}
	}
	first := res.Notifications[0]
	if first.Title == "" || first.Description == "" {
		t.Fatalf("notification missing text: %+v", first)
	}
}

func TestEvaluateReplays(t *testing.T) {
	games := []model.Game{completedGame("g1")}
	var events []model.TimelineEvent
	for i := 0; i < 5; i++ {
		events = append(events, finish(fmt.Sprintf("e%d", i), "g1", fmt.Sprintf("20%02d-06-01", 10+i)))
	}

	res := Evaluate(games, events[:2], Catalog(), testNow)
	if !find(t, res.Achievements, FirstReplayCompleted).Unlocked {
		t.Fatal("two finishes of one game should unlock first_replay_completed")
	}
	if find(t, res.Achievements, ReplaySameGame5Times).Unlocked {
		t.Fatal("two finishes should not unlock the five-times badge")
	}

	res = Evaluate(games, events, res.Achievements, testNow)
	if !find(t, res.Achievements, ReplaySameGame5Times).Unlocked {
		t.Fatal("five finishes should unlock replay_same_game_5_times")
	}
}

func TestEvaluateSeries(t *testing.T) {
	games := []model.Game{
		{ID: "z1", SeriesID: "zelda", Status: model.StatusCompleted},
		{ID: "z2", SeriesID: "zelda", Status: model.StatusCompleted},
		{ID: "z3", SeriesID: "zelda", Status: model.StatusPlaying},
		{ID: "s1", SeriesID: "souls", Status: model.StatusCompleted},
	}
	res := Evaluate(games, nil, Catalog(), testNow)
	if !find(t, res.Achievements, FirstSeriesRegistered).Unlocked {
		t.Fatal("first_series_registered should unlock")
	}
	same := find(t, res.Achievements, Complete3SameSeries)
	if same.Unlocked || same.CurrentValue != 2 {
		t.Fatalf("same-series progress = %d (unlocked %v), want 2 locked", same.CurrentValue, same.Unlocked)
	}

	games[2].Status = model.StatusCompleted
	res = Evaluate(games, nil, res.Achievements, testNow)
	if !find(t, res.Achievements, Complete3SameSeries).Unlocked {
		t.Fatal("three completed zelda games should unlock")
	}
}

func TestEvaluateDanglingEvents(t *testing.T) {
	events := []model.TimelineEvent{
		finish("e1", "ghost", "2024-04-01"),
		finish("e2", "ghost", "2024-04-02"),
		finish("e3", "ghost", "2024-04-03"),
		{ID: "e4", Date: "not a date", Type: model.EventFinish, GameID: "ghost"},
	}
	res := Evaluate(nil, events, Catalog(), testNow)
	if find(t, res.Achievements, FirstReplayCompleted).Unlocked {
		t.Fatal("per-game rules must skip events of unknown games")
	}
	if !find(t, res.Achievements, Complete3GamesMonth).Unlocked {
		t.Fatal("period buckets count finish events regardless of the game")
	}
	if !find(t, res.Achievements, FirstGameCompleted).Unlocked {
		t.Fatal("existential check counts any finish event")
	}
}

func TestEvaluatePartialState(t *testing.T) {
	state := []model.Achievement{{ID: "unknown"}, {ID: FirstGameAdded, Kind: model.KindBoolean}}
	res := Evaluate([]model.Game{completedGame("g1")}, nil, state, testNow)
	if len(res.Achievements) != 2 {
		t.Fatalf("len = %d, want 2", len(res.Achievements))
	}
	if !res.Achievements[1].Unlocked {
		t.Fatal("known rule should still be evaluated")
	}
	if res.Achievements[0].Unlocked {
		t.Fatal("unknown entries are left alone")
	}
}

func TestEvaluateUnlockAll(t *testing.T) {
	state := Catalog()
	for i := range state {
		if state[i].ID != UnlockAll && state[i].ID != GamelineMaster {
			state[i].Unlocked = true
			state[i].UnlockedDate = "2020-01-01T00:00:00Z"
		}
	}
	res := Evaluate(nil, nil, state, testNow)
	if find(t, res.Achievements, UnlockAll).Unlocked {
		t.Fatal("completionist needs every other achievement")
	}

	games := []model.Game{completedGame("g1")}
	events := []model.TimelineEvent{
		{ID: "a", Date: "2020-01-01", Type: model.EventStart, GameID: "g1"},
		{ID: "b", Date: "2020-01-02", Type: model.EventPause, GameID: "g1"},
		{ID: "c", Date: "2020-01-03", Type: model.EventDrop, GameID: "g1"},
		{ID: "d", Date: "2020-01-04", Type: model.EventReplay, GameID: "g1"},
		finish("f1", "g1", "2020-02-01"),
		finish("f2", "g1", "2021-02-01"),
		finish("f3", "g1", "2022-02-01"),
		finish("f4", "g1", "2023-02-01"),
		finish("f5", "g1", "2024-02-01"),
	}
	res = Evaluate(games, events, res.Achievements, testNow)
	if !find(t, res.Achievements, GamelineMaster).Unlocked {
		t.Fatal("gimeline_master should unlock")
	}
	if !find(t, res.Achievements, UnlockAll).Unlocked {
		t.Fatal("completionist should unlock in the same pass")
	}
	last := res.Notifications[len(res.Notifications)-1]
	if last.AchievementID != UnlockAll {
		t.Fatalf("completionist should be notified last, got %q", last.AchievementID)
	}
}

// ============================================================
// Welcome
// ============================================================

func TestWelcome(t *testing.T) {
	res := Welcome(Catalog(), testNow)
	if !find(t, res.Achievements, FirstAccess).Unlocked {
		t.Fatal("first_access should unlock")
	}
	if len(res.Notifications) != 1 || res.Notifications[0].AchievementID != FirstAccess {
		t.Fatalf("unexpected notifications: %+v", res.Notifications)
	}

	again := Welcome(res.Achievements, testNow.Add(time.Hour))
	if again.Changed || len(again.Notifications) != 0 {
		t.Fatal("welcome must only fire once")
	}
}
