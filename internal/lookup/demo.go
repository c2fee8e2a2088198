package lookup

import "strings"

// CustomID marks the synthetic candidate built from an unmatched query.
const CustomID = 999

var demoCatalog = []Candidate{
	{
		ID:     1,
		Name:   "God of War Ragnarök",
		Cover:  "https://media.rawg.io/media/games/511/5118aff5091cb3efec399c808f8c598f.jpg",
		Genres: []string{"Action", "Adventure"},
		Platforms: []CandidatePlatform{
			{Name: "PlayStation 5", Slug: "playstation5"},
			{Name: "PlayStation 4", Slug: "playstation4"},
		},
	},
	{
		ID:        2,
		Name:      "Hades II",
		Cover:     "https://media.rawg.io/media/games/1f4/1f47a270b8f241e4676b14d39ec620f7.jpg",
		Genres:    []string{"Roguelike", "Action"},
		Platforms: []CandidatePlatform{{Name: "PC", Slug: "pc"}},
	},
	{
		ID:        3,
		Name:      "Super Mario Wonder",
		Cover:     "https://media.rawg.io/media/games/e74/e74458058b35e01c1ae3feeb70a3b725.jpg",
		Genres:    []string{"Platformer"},
		Platforms: []CandidatePlatform{{Name: "Nintendo Switch", Slug: "nintendo-switch"}},
	},
	{
		ID:        4,
		Name:      "Final Fantasy VII Rebirth",
		Cover:     "https://media.rawg.io/media/games/e1f/e1ffbea1e1d5f0d3dc9e255fa783fb43.jpg",
		Genres:    []string{"RPG"},
		Platforms: []CandidatePlatform{{Name: "PlayStation 5", Slug: "playstation5"}},
	},
}

func searchDemo(query string) []Candidate {
	q := strings.ToLower(query)
	out := []Candidate{}
	for _, c := range demoCatalog {
		if strings.Contains(strings.ToLower(c.Name), q) {
			out = append(out, c)
		}
	}
	if len(out) == 0 && len(query) > 2 {
		out = append(out, Candidate{
			ID:     CustomID,
			Name:   query,
			Cover:  "https://picsum.photos/400/600",
			Genres: []string{"Custom"},
		})
	}
	return out
}
