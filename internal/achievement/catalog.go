package achievement

import "github.com/sadopc/gameline/internal/model"

// Achievement IDs. These are persisted and must never change.
const (
	FirstAccess           = "first_access"
	FirstGameAdded        = "first_game_added"
	FirstGameStarted      = "first_game_started"
	FirstGameCompleted    = "first_game_completed"
	FirstGameCompleted100 = "first_game_completed_100"
	FirstReplayCompleted  = "first_replay_completed"
	Complete3Games        = "complete_3_games"
	Complete5Games        = "complete_5_games"
	Complete10Games       = "complete_10_games"
	Complete20Games       = "complete_20_games"
	Complete50Games       = "complete_50_games"
	Complete100Games      = "complete_100_games"
	Complete365Games      = "complete_365_games"
	Complete1000Games     = "complete_1000_games"
	Complete3GamesMonth   = "complete_3_games_month"
	Complete10GamesMonth  = "complete_10_games_month"
	Complete30GamesMonth  = "complete_30_games_month"
	Complete10GamesYear   = "complete_10_games_year"
	Complete25GamesYear   = "complete_25_games_year"
	Complete50GamesYear   = "complete_50_games_year"
	FirstSeriesRegistered = "first_series_registered"
	Complete3SameSeries   = "complete_3_games_same_series"
	Complete10SameSeries  = "complete_10_games_same_series"
	FirstGameAbandoned    = "first_game_abandoned"
	ReplaySameGame5Times  = "replay_same_game_5_times"
	UnlockAll             = "unlock_100_achievements"
	GamelineMaster        = "gimeline_master"
)

func boolean(id, title, desc, icon string, secret bool) model.Achievement {
	return model.Achievement{ID: id, Title: title, Description: desc, Icon: icon, IsSecret: secret, Kind: model.KindBoolean}
}

func progressive(id string, target int, title, desc, icon string, secret bool) model.Achievement {
	return model.Achievement{ID: id, Title: title, Description: desc, Icon: icon, IsSecret: secret, Kind: model.KindProgressive, Target: target}
}

var definitions = []model.Achievement{
	boolean(FirstAccess, "Welcome to GameLine", "Opened GameLine for the first time.", "Sparkles", false),
	boolean(FirstGameAdded, "First entry on the timeline", "Added the first game to GameLine.", "Gamepad2", false),
	boolean(FirstGameStarted, "Press Start", "Started the first game.", "Play", false),
	boolean(FirstGameCompleted, "Until the final credits", "Finished a game for the first time.", "Flag", false),
	boolean(FirstGameCompleted100, "You never forget your first platinum", "Finished a game at 100% for the first time.", "Trophy", false),
	boolean(FirstReplayCompleted, "One more time, with feeling", "Finished a game for the second time.", "Repeat", false),
	progressive(Complete3Games, 3, "Warming up", "Finished 3 games in total.", "Layers", false),
	progressive(Complete5Games, 5, "Steady pace", "Finished 5 games in total.", "Layers", false),
	progressive(Complete10Games, 10, "Timeline in motion", "Finished 10 games in total.", "Layers", false),
	progressive(Complete20Games, 20, "It's a habit now", "Finished 20 games in total.", "Layers", false),
	progressive(Complete50Games, 50, "Respectable collection", "Finished 50 games in total.", "Layers", false),
	progressive(Complete100Games, 100, "Extensive timeline", "Finished 100 games in total.", "Layers", false),
	progressive(Complete365Games, 365, "One a day", "Finished 365 games in total.", "Calendar", true),
	progressive(Complete1000Games, 1000, "GameLine legend", "Finished 1000 games in total.", "Crown", true),
	boolean(Complete3GamesMonth, "Productive month", "Finished 3 games in the same month.", "CalendarCheck", false),
	boolean(Complete10GamesMonth, "Monthly marathon", "Finished 10 games in the same month.", "Calendar", false),
	boolean(Complete30GamesMonth, "A month for the history books", "Finished 30 games in a single month.", "Calendar", true),
	boolean(Complete10GamesYear, "Consistent year", "Finished 10 games in the same year.", "Calendar", false),
	boolean(Complete25GamesYear, "Productive year", "Finished 25 games in the same year.", "Calendar", false),
	boolean(Complete50GamesYear, "Legendary year", "Finished 50 games in the same year.", "Crown", true),
	boolean(FirstSeriesRegistered, "This is only the beginning of the saga", "Registered the first game series.", "Library", false),
	progressive(Complete3SameSeries, 3, "Saga marathon", "Finished 3 games of the same series.", "Library", false),
	progressive(Complete10SameSeries, 10, "Declared fan", "Finished 10 games of the same series.", "Heart", true),
	boolean(FirstGameAbandoned, "Not every game is for everyone", "Dropped a game for the first time.", "XCircle", false),
	boolean(ReplaySameGame5Times, "This one lives in my heart", "Finished the same game 5 times.", "Heart", true),
	boolean(UnlockAll, "GameLine completionist", "Unlocked every GameLine achievement.", "Crown", true),
	boolean(GamelineMaster, "GameLine master", "Built a complete timeline of your gaming life.", "Infinity", true),
}

// Catalog returns a fresh, fully locked copy of every predefined achievement.
func Catalog() []model.Achievement {
	out := make([]model.Achievement, len(definitions))
	copy(out, definitions)
	return out
}

// Merge overlays saved per-user state onto the fixed catalog. Catalog text
// always wins; saved entries whose ID is no longer in the catalog are dropped.
func Merge(saved []model.Achievement) []model.Achievement {
	byID := make(map[string]model.Achievement, len(saved))
	for _, a := range saved {
		byID[a.ID] = a
	}
	out := Catalog()
	for i := range out {
		s, ok := byID[out[i].ID]
		if !ok {
			continue
		}
		out[i].Unlocked = s.Unlocked
		out[i].UnlockedDate = s.UnlockedDate
		out[i].CurrentValue = s.CurrentValue
	}
	return out
}
