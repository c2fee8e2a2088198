package model

type PlatformCategory string

const (
	CategoryConsole  PlatformCategory = "Console"
	CategoryHandheld PlatformCategory = "Handheld"
	CategoryPC       PlatformCategory = "Computer"
	CategoryMobile   PlatformCategory = "Mobile"
	CategoryArcade   PlatformCategory = "Arcade/Other"
)

type Platform struct {
	ID       string
	Name     string
	Category PlatformCategory
	Brand    string // sony, microsoft, nintendo, sega, pc, mobile, other
}

// Platforms lists every known platform in display order.
var Platforms = []Platform{
	{"ps1", "PlayStation", CategoryConsole, "sony"},
	{"ps2", "PlayStation 2", CategoryConsole, "sony"},
	{"ps3", "PlayStation 3", CategoryConsole, "sony"},
	{"ps4", "PlayStation 4", CategoryConsole, "sony"},
	{"ps5", "PlayStation 5", CategoryConsole, "sony"},
	{"psp", "PSP", CategoryHandheld, "sony"},
	{"psvita", "PS Vita", CategoryHandheld, "sony"},

	{"xbox", "Xbox", CategoryConsole, "microsoft"},
	{"xbox_360", "Xbox 360", CategoryConsole, "microsoft"},
	{"xbox_one", "Xbox One", CategoryConsole, "microsoft"},
	{"xbox_series", "Xbox Series X|S", CategoryConsole, "microsoft"},

	{"nes", "NES", CategoryConsole, "nintendo"},
	{"snes", "SNES", CategoryConsole, "nintendo"},
	{"n64", "Nintendo 64", CategoryConsole, "nintendo"},
	{"gamecube", "GameCube", CategoryConsole, "nintendo"},
	{"wii", "Wii", CategoryConsole, "nintendo"},
	{"wiiu", "Wii U", CategoryConsole, "nintendo"},
	{"switch", "Nintendo Switch", CategoryHandheld, "nintendo"},
	{"gb", "Game Boy", CategoryHandheld, "nintendo"},
	{"gbc", "Game Boy Color", CategoryHandheld, "nintendo"},
	{"gba", "Game Boy Advance", CategoryHandheld, "nintendo"},
	{"ds", "Nintendo DS", CategoryHandheld, "nintendo"},
	{"3ds", "Nintendo 3DS", CategoryHandheld, "nintendo"},

	{"pc_windows", "PC (Windows)", CategoryPC, "pc"},
	{"mac", "Mac", CategoryPC, "pc"},
	{"linux", "Linux", CategoryPC, "pc"},

	{"ios", "iOS", CategoryMobile, "mobile"},
	{"android", "Android", CategoryMobile, "mobile"},

	{"arcade", "Arcade", CategoryArcade, "other"},
	{"megadrive", "Mega Drive", CategoryConsole, "sega"},
	{"dreamcast", "Dreamcast", CategoryConsole, "sega"},
}

var platformIndex = func() map[string]Platform {
	m := make(map[string]Platform, len(Platforms))
	for _, p := range Platforms {
		m[p.ID] = p
	}
	return m
}()

// LookupPlatform returns the platform with the given ID.
func LookupPlatform(id string) (Platform, bool) {
	p, ok := platformIndex[id]
	return p, ok
}

// PlatformName returns the display name for id, or "Other" if unknown.
func PlatformName(id string) string {
	if p, ok := platformIndex[id]; ok {
		return p.Name
	}
	return "Other"
}

// DefaultActivePlatforms is the platform filter a fresh install starts with.
var DefaultActivePlatforms = []string{
	"ios",
	"mac",
	"pc_windows",
	"ps1", "ps2", "ps5", "psvita",
	"xbox_one", "xbox_series",
	"switch", "gba",
}

type Series struct {
	ID          string
	Name        string
	Description string
}

var SeriesCatalog = []Series{
	{"zelda", "The Legend of Zelda", "An epic fantasy series."},
	{"souls", "Dark Souls", "Challenging action RPG."},
}

func LookupSeries(id string) (Series, bool) {
	for _, s := range SeriesCatalog {
		if s.ID == id {
			return s, true
		}
	}
	return Series{}, false
}

// DefaultAvatar is used until the user picks one.
const DefaultAvatar = "https://api.dicebear.com/9.x/adventurer/svg?seed=Eden"

// DefaultSettings returns the settings of a fresh install.
func DefaultSettings() AppSettings {
	active := make([]string, len(DefaultActivePlatforms))
	copy(active, DefaultActivePlatforms)
	return AppSettings{ActivePlatforms: active}
}

func DefaultProfile() UserProfile {
	return UserProfile{Avatar: DefaultAvatar}
}
