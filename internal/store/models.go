package store

import "time"

// Keys of the persisted collections.
const (
	KeyGames        = "gl_games"
	KeyEvents       = "gl_events"
	KeyAchievements = "gl_achievements"
	KeyProfile      = "gl_profile"
	KeySettings     = "gl_settings"
)

// CollectionKeys lists every collection key in load order.
var CollectionKeys = []string{KeyGames, KeyEvents, KeyAchievements, KeyProfile, KeySettings}

// Entry is one row of the kv table.
type Entry struct {
	Key       string
	Value     []byte
	UpdatedAt time.Time
}
