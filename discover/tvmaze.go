package discover

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/alorle/iptv-deck/internal/httpx"
)

const tvmazeAPIBase = "https://api.tvmaze.com"

// tvmazeMaxItems caps the number of items kept per shelf
const tvmazeMaxItems = 20

// tvmazeImage carries the poster URLs TVMaze attaches to a show
type tvmazeImage struct {
	Medium   string `json:"medium"`
	Original string `json:"original"`
}

// tvmazeRating wraps the average rating, which may be absent
type tvmazeRating struct {
	Average float64 `json:"average"`
}

// tvmazeShow is a show payload from the TVMaze API
type tvmazeShow struct {
	ID        int64         `json:"id"`
	Name      string        `json:"name"`
	Genres    []string      `json:"genres"`
	Premiered string        `json:"premiered"`
	Rating    *tvmazeRating `json:"rating"`
	Image     *tvmazeImage  `json:"image"`
	Summary   string        `json:"summary"`
}

// tvmazeScheduleEntry wraps a show airing in the schedule feed
type tvmazeScheduleEntry struct {
	Show tvmazeShow `json:"show"`
}

// tvmazeSearchResult wraps a show in the search feed
type tvmazeSearchResult struct {
	Score float64    `json:"score"`
	Show  tvmazeShow `json:"show"`
}

// TVMazeClient talks to the public TVMaze API, which needs no key
type TVMazeClient struct {
	http    *httpx.Client
	baseURL string
}

// NewTVMazeClient creates a TVMaze client with the given timeout
func NewTVMazeClient(timeout time.Duration) *TVMazeClient {
	return &TVMazeClient{
		http:    httpx.New(timeout),
		baseURL: tvmazeAPIBase,
	}
}

// WithBaseURL overrides the API base URL; used by tests
func (c *TVMazeClient) WithBaseURL(baseURL string) *TVMazeClient {
	c.baseURL = baseURL
	return c
}

func (c *TVMazeClient) get(endpoint string, out interface{}) error {
	return c.http.GetJSON(c.baseURL+"/"+endpoint, nil, out)
}

// stripTags removes the simple HTML markup TVMaze embeds in summaries
func stripTags(s string) string {
	var b strings.Builder
	inTag := false
	for _, r := range s {
		switch {
		case r == '<':
			inTag = true
		case r == '>':
			inTag = false
		case !inTag:
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}

func itemFromShow(show tvmazeShow) Item {
	item := Item{
		ID:       show.ID,
		Title:    show.Name,
		Overview: stripTags(show.Summary),
		Kind:     KindShow,
		Genres:   show.Genres,
	}
	if show.Rating != nil {
		item.Rating = show.Rating.Average
	}
	if show.Image != nil {
		item.PosterURL = show.Image.Medium
		if item.PosterURL == "" {
			item.PosterURL = show.Image.Original
		}
	}
	if len(show.Premiered) >= 4 {
		fmt.Sscanf(show.Premiered[:4], "%d", &item.Year)
	}
	return item
}

// AiringToday returns today's schedule, deduplicated by show
func (c *TVMazeClient) AiringToday() ([]Item, error) {
	var entries []tvmazeScheduleEntry
	if err := c.get("schedule", &entries); err != nil {
		return nil, err
	}

	seen := make(map[int64]struct{})
	var items []Item
	for _, e := range entries {
		if _, ok := seen[e.Show.ID]; ok {
			continue
		}
		seen[e.Show.ID] = struct{}{}
		items = append(items, itemFromShow(e.Show))
		if len(items) >= tvmazeMaxItems {
			break
		}
	}
	return items, nil
}

// Popular approximates a popularity shelf via search, sorted by rating.
// TVMaze has no direct popularity endpoint.
func (c *TVMazeClient) Popular() ([]Item, error) {
	items, err := c.search("the")
	if err != nil {
		return nil, err
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Rating > items[j].Rating
	})
	return capItems(items), nil
}

// TopRated returns highly rated shows from search results
func (c *TVMazeClient) TopRated() ([]Item, error) {
	items, err := c.search("best")
	if err != nil {
		return nil, err
	}

	var rated []Item
	for _, item := range items {
		if item.Rating >= 7.0 {
			rated = append(rated, item)
		}
	}
	sort.SliceStable(rated, func(i, j int) bool {
		return rated[i].Rating > rated[j].Rating
	})
	return capItems(rated), nil
}

// ByGenre returns shows matching a TVMaze genre
func (c *TVMazeClient) ByGenre(genre string) ([]Item, error) {
	items, err := c.search(genre)
	if err != nil {
		return nil, err
	}

	var matched []Item
	for _, item := range items {
		for _, g := range item.Genres {
			if strings.EqualFold(g, genre) {
				matched = append(matched, item)
				break
			}
		}
	}
	return capItems(matched), nil
}

// ByCategory dispatches to the right endpoint for a show category
func (c *TVMazeClient) ByCategory(category ShowCategory) ([]Item, error) {
	switch category {
	case AiringToday:
		return c.AiringToday()
	case PopularSearch:
		return c.Popular()
	case TopRated:
		return c.TopRated()
	default:
		if genre := category.Genre(); genre != "" {
			return c.ByGenre(genre)
		}
		return nil, fmt.Errorf("unknown show category: %d", category)
	}
}

func (c *TVMazeClient) search(query string) ([]Item, error) {
	var results []tvmazeSearchResult
	if err := c.get("search/shows?q="+query, &results); err != nil {
		return nil, err
	}

	items := make([]Item, 0, len(results))
	for _, r := range results {
		items = append(items, itemFromShow(r.Show))
	}
	return items, nil
}

func capItems(items []Item) []Item {
	if len(items) > tvmazeMaxItems {
		return items[:tvmazeMaxItems]
	}
	return items
}
