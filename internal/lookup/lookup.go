// Package lookup searches game metadata on RAWG, falling back to a small
// built-in catalog when no API key is configured.
package lookup

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	DefaultBaseURL = "https://api.rawg.io/api"
	pageSize       = 6
)

type CandidatePlatform struct {
	Name string
	Slug string
}

// Candidate is one search hit, ready to prefill the add-game form.
type Candidate struct {
	ID        int
	Name      string
	Cover     string
	Genres    []string
	Platforms []CandidatePlatform
}

// PlatformIDs maps the candidate's RAWG platforms onto known platform IDs,
// dropping the ones with no match.
func (c Candidate) PlatformIDs() []string {
	var out []string
	seen := make(map[string]bool)
	for _, p := range c.Platforms {
		id, ok := slugToPlatform[p.Slug]
		if !ok || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}

var slugToPlatform = map[string]string{
	"playstation":      "ps1",
	"playstation1":     "ps1",
	"playstation2":     "ps2",
	"playstation3":     "ps3",
	"playstation4":     "ps4",
	"playstation5":     "ps5",
	"psp":              "psp",
	"ps-vita":          "psvita",
	"xbox-old":         "xbox",
	"xbox360":          "xbox_360",
	"xbox-one":         "xbox_one",
	"xbox-series-x":    "xbox_series",
	"nes":              "nes",
	"snes":             "snes",
	"nintendo-64":      "n64",
	"gamecube":         "gamecube",
	"wii":              "wii",
	"wii-u":            "wiiu",
	"nintendo-switch":  "switch",
	"game-boy":         "gb",
	"game-boy-color":   "gbc",
	"game-boy-advance": "gba",
	"nintendo-ds":      "ds",
	"nintendo-3ds":     "3ds",
	"pc":               "pc_windows",
	"macos":            "mac",
	"linux":            "linux",
	"ios":              "ios",
	"android":          "android",
	"genesis":          "megadrive",
	"sega-dreamcast":   "dreamcast",
	"dreamcast":        "dreamcast",
}

// APIError is returned when RAWG answers with a non-2xx status.
type APIError struct {
	Status int
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("RAWG API error: %d %s", e.Status, http.StatusText(e.Status))
}

type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a client against baseURL ("" means DefaultBaseURL).
func New(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return NewWithClient(baseURL, &http.Client{Timeout: timeout})
}

// NewWithClient creates a client with a custom HTTP client (for testing).
func NewWithClient(baseURL string, httpClient *http.Client) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), httpClient: httpClient}
}

// Search looks up games by name. Without an API key it searches the demo
// catalog instead of the network.
func (c *Client) Search(ctx context.Context, query, apiKey string) ([]Candidate, error) {
	if query == "" {
		return []Candidate{}, nil
	}
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return searchDemo(query), nil
	}

	params := url.Values{}
	params.Set("key", apiKey)
	params.Set("search", query)
	params.Set("page_size", fmt.Sprint(pageSize))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/games?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search %q: %w", query, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, &APIError{Status: resp.StatusCode, Body: string(body)}
	}

	var page rawgPage
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	out := make([]Candidate, 0, len(page.Results))
	for _, r := range page.Results {
		out = append(out, r.candidate())
	}
	return out, nil
}

type rawgPage struct {
	Results []rawgGame `json:"results"`
}

type rawgGame struct {
	ID              int    `json:"id"`
	Name            string `json:"name"`
	BackgroundImage string `json:"background_image"`
	Genres          []struct {
		Name string `json:"name"`
	} `json:"genres"`
	Platforms []struct {
		Platform struct {
			Name string `json:"name"`
			Slug string `json:"slug"`
		} `json:"platform"`
	} `json:"platforms"`
}

func (r rawgGame) candidate() Candidate {
	c := Candidate{
		ID:     r.ID,
		Name:   r.Name,
		Cover:  r.BackgroundImage,
		Genres: []string{},
	}
	for _, g := range r.Genres {
		c.Genres = append(c.Genres, g.Name)
	}
	for _, p := range r.Platforms {
		c.Platforms = append(c.Platforms, CandidatePlatform{Name: p.Platform.Name, Slug: p.Platform.Slug})
	}
	return c
}
