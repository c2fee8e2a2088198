package model

type GameStatus string

const (
	StatusPlaying   GameStatus = "playing"
	StatusPaused    GameStatus = "paused"
	StatusDropped   GameStatus = "dropped"
	StatusCompleted GameStatus = "completed"
)

var Statuses = []GameStatus{StatusPlaying, StatusPaused, StatusDropped, StatusCompleted}

func (s GameStatus) Label() string {
	switch s {
	case StatusPlaying:
		return "Playing"
	case StatusPaused:
		return "Paused"
	case StatusDropped:
		return "Dropped"
	case StatusCompleted:
		return "Completed"
	}
	return string(s)
}

type Perception string

const (
	PerceptionLike    Perception = "like"
	PerceptionNeutral Perception = "neutral"
	PerceptionDislike Perception = "dislike"
)

type CompletionType string

const (
	CompletionNone   CompletionType = ""
	CompletionNormal CompletionType = "Normal"
	CompletionFull   CompletionType = "100%"
)

type EventType string

const (
	EventStart  EventType = "start"
	EventFinish EventType = "finish"
	EventReplay EventType = "replay"
	EventPause  EventType = "pause"
	EventDrop   EventType = "drop"
)

var EventTypes = []EventType{EventStart, EventFinish, EventReplay, EventPause, EventDrop}

func (t EventType) Label() string {
	switch t {
	case EventStart:
		return "Started"
	case EventFinish:
		return "Finished"
	case EventReplay:
		return "Replayed"
	case EventPause:
		return "Paused"
	case EventDrop:
		return "Dropped"
	}
	return string(t)
}

// InitialEvent is the event recorded when a game is first saved with status s.
func InitialEvent(s GameStatus) EventType {
	switch s {
	case StatusCompleted:
		return EventFinish
	case StatusDropped:
		return EventDrop
	case StatusPaused:
		return EventPause
	default:
		return EventStart
	}
}

type Game struct {
	ID             string         `json:"id"`
	Title          string         `json:"title"`
	Cover          string         `json:"cover"`
	Genres         []string       `json:"genres"`
	PlatformIDs    []string       `json:"platformIds"`
	SeriesID       string         `json:"seriesId,omitempty"`
	Status         GameStatus     `json:"status"`
	Perception     Perception     `json:"perception"`
	Rating         *int           `json:"rating,omitempty"`
	GeneralComment string         `json:"generalComment,omitempty"`
	PlayAgain      bool           `json:"playAgain"`
	CompletionType CompletionType `json:"completionType,omitempty"`
}

// Platinum reports whether the game is completed at 100%.
func (g Game) Platinum() bool {
	return g.Status == StatusCompleted && g.CompletionType == CompletionFull
}

// PrimaryPlatform returns the first platform, or "" if none.
func (g Game) PrimaryPlatform() string {
	if len(g.PlatformIDs) == 0 {
		return ""
	}
	return g.PlatformIDs[0]
}

type TimelineEvent struct {
	ID         string    `json:"id"`
	Date       string    `json:"date"` // YYYY-MM-DD or RFC 3339
	Type       EventType `json:"type"`
	GameID     string    `json:"gameId"`
	PlatformID string    `json:"platformId,omitempty"`
	Note       string    `json:"note,omitempty"`
}

type AchievementKind string

const (
	KindBoolean     AchievementKind = "boolean"
	KindProgressive AchievementKind = "progressive"
)

type Achievement struct {
	ID           string          `json:"id"`
	Title        string          `json:"title"`
	Description  string          `json:"description"`
	Icon         string          `json:"icon"`
	Unlocked     bool            `json:"unlocked"`
	UnlockedDate string          `json:"unlockedDate,omitempty"`
	IsSecret     bool            `json:"isSecret"`
	Kind         AchievementKind `json:"type"`
	Target       int             `json:"metric,omitempty"`
	CurrentValue int             `json:"currentValue,omitempty"`
}

// Progress returns CurrentValue clamped to [0, Target].
func (a Achievement) Progress() int {
	v := a.CurrentValue
	if v < 0 {
		return 0
	}
	if a.Target > 0 && v > a.Target {
		return a.Target
	}
	return v
}

// Display hides the title and description of locked secret achievements.
func (a Achievement) Display() (title, description string) {
	if a.IsSecret && !a.Unlocked {
		return "Secret achievement", "Keep playing to reveal it."
	}
	return a.Title, a.Description
}

type UserProfile struct {
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
}

type AppSettings struct {
	ActivePlatforms []string `json:"activePlatforms"`
	RawgAPIKey      string   `json:"rawgApiKey,omitempty"`
}

// IsActive reports whether platformID is enabled in the settings.
func (s AppSettings) IsActive(platformID string) bool {
	for _, id := range s.ActivePlatforms {
		if id == platformID {
			return true
		}
	}
	return false
}
