package lookup

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

// ============================================================
// RAWG
// ============================================================

func TestSearchRAWG(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/games" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("key") != "secret" || q.Get("search") != "zelda breath" || q.Get("page_size") != "6" {
			t.Errorf("unexpected query %s", r.URL.RawQuery)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"results":[{"id":22511,"name":"The Legend of Zelda: Breath of the Wild",
			"background_image":"https://img/botw.jpg",
			"genres":[{"name":"Action"},{"name":"Adventure"}],
			"platforms":[{"platform":{"name":"Nintendo Switch","slug":"nintendo-switch"}},
			             {"platform":{"name":"Wii U","slug":"wii-u"}},
			             {"platform":{"name":"Stadia","slug":"stadia"}}]}]}`))
	}))
	defer server.Close()

	c := NewWithClient(server.URL, server.Client())
	got, err := c.Search(context.Background(), "zelda breath", "  secret ")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 result, got %d", len(got))
	}
	g := got[0]
	if g.ID != 22511 || g.Cover != "https://img/botw.jpg" || len(g.Genres) != 2 {
		t.Fatalf("unexpected candidate %+v", g)
	}
	ids := g.PlatformIDs()
	if len(ids) != 2 || ids[0] != "switch" || ids[1] != "wiiu" {
		t.Fatalf("expected [switch wiiu], got %v", ids)
	}
}

func TestSearchRAWGError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad key", http.StatusUnauthorized)
	}))
	defer server.Close()

	c := NewWithClient(server.URL, server.Client())
	_, err := c.Search(context.Background(), "hades", "wrong")
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %v", err)
	}
	if apiErr.Status != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", apiErr.Status)
	}
}

func TestSearchRAWGEmptyResults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	got, err := NewWithClient(server.URL, server.Client()).Search(context.Background(), "x", "k")
	if err != nil {
		t.Fatal(err)
	}
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty slice, got %v", got)
	}
}

func TestSearchCancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"results":[]}`))
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := NewWithClient(server.URL, server.Client()).Search(ctx, "hades", "k"); err == nil {
		t.Fatal("expected error for cancelled context")
	}
}

// ============================================================
// Demo mode
// ============================================================

func TestSearchEmptyQuery(t *testing.T) {
	got, err := New("", 0).Search(context.Background(), "", "key")
	if err != nil || len(got) != 0 {
		t.Fatalf("expected no results, got %v, %v", got, err)
	}
}

func TestSearchDemo(t *testing.T) {
	c := New("http://unused.invalid", 0)
	tests := []struct {
		query string
		want  []int
	}{
		{"hades", []int{2}},
		{"HADES", []int{2}},
		{"playstation", []int{CustomID}},
		{"a", []int{1, 2, 3, 4}},
		{"ragnar", []int{1}},
		{"zz", nil},
		{"Outer Wilds", []int{CustomID}},
	}
	for _, tt := range tests {
		got, err := c.Search(context.Background(), tt.query, "")
		if err != nil {
			t.Fatalf("%q: %v", tt.query, err)
		}
		if len(got) != len(tt.want) {
			t.Fatalf("%q: got %d results, want %d", tt.query, len(got), len(tt.want))
		}
		for i := range got {
			if got[i].ID != tt.want[i] {
				t.Fatalf("%q: result %d id %d, want %d", tt.query, i, got[i].ID, tt.want[i])
			}
		}
	}
}

func TestSearchDemoCustom(t *testing.T) {
	got, _ := New("", 0).Search(context.Background(), "Outer Wilds", "")
	if len(got) != 1 {
		t.Fatalf("expected custom candidate, got %v", got)
	}
	c := got[0]
	if c.Name != "Outer Wilds" || len(c.Genres) != 1 || c.Genres[0] != "Custom" || len(c.PlatformIDs()) != 0 {
		t.Fatalf("unexpected custom candidate %+v", c)
	}
}
