package discover

import (
	"fmt"
	"time"

	"github.com/alorle/iptv-deck/internal/httpx"
)

const traktAPIBase = "https://api.trakt.tv"

// DefaultTraktLimit caps the number of items fetched per shelf
const DefaultTraktLimit = 20

// traktIDs carries the cross-service identifiers Trakt attaches to
// shows and movies
type traktIDs struct {
	Trakt int64  `json:"trakt"`
	IMDB  string `json:"imdb"`
	TMDB  int64  `json:"tmdb"`
}

// traktMedia is the shared shape of Trakt show and movie payloads
type traktMedia struct {
	Title    string   `json:"title"`
	Year     int      `json:"year"`
	IDs      traktIDs `json:"ids"`
	Overview string   `json:"overview"`
	Rating   float64  `json:"rating"`
	Votes    int64    `json:"votes"`
	Genres   []string `json:"genres"`
}

// traktTrendingEntry wraps trending results, which nest the media under
// a watcher count
type traktTrendingEntry struct {
	Watchers int64       `json:"watchers"`
	Show     *traktMedia `json:"show"`
	Movie    *traktMedia `json:"movie"`
}

// traktAnticipatedEntry wraps anticipated results, nested under a list count
type traktAnticipatedEntry struct {
	ListCount int64       `json:"list_count"`
	Show      *traktMedia `json:"show"`
	Movie     *traktMedia `json:"movie"`
}

// TraktClient talks to the public Trakt API
type TraktClient struct {
	http     *httpx.Client
	baseURL  string
	clientID string
}

// NewTraktClient creates a client authenticated with the given API key
func NewTraktClient(clientID string, timeout time.Duration) *TraktClient {
	return &TraktClient{
		http:     httpx.New(timeout),
		baseURL:  traktAPIBase,
		clientID: clientID,
	}
}

// WithBaseURL overrides the API base URL; used by tests
func (c *TraktClient) WithBaseURL(baseURL string) *TraktClient {
	c.baseURL = baseURL
	return c
}

func (c *TraktClient) headers() map[string]string {
	return map[string]string{
		"Content-Type":      "application/json",
		"trakt-api-version": "2",
		"trakt-api-key":     c.clientID,
	}
}

func (c *TraktClient) get(endpoint string, limit int, out interface{}) error {
	url := fmt.Sprintf("%s%s?extended=full&limit=%d", c.baseURL, endpoint, limit)
	return c.http.GetJSON(url, c.headers(), out)
}

// media returns whichever of show/movie is populated
func pickMedia(show, movie *traktMedia) *traktMedia {
	if movie != nil {
		return movie
	}
	return show
}

func itemFromMedia(m *traktMedia, kind Kind, watchers int64) Item {
	return Item{
		ID:       m.IDs.Trakt,
		Title:    m.Title,
		Year:     m.Year,
		Overview: m.Overview,
		Rating:   m.Rating,
		Votes:    m.Votes,
		Kind:     kind,
		Watchers: watchers,
		Genres:   m.Genres,
		IMDBID:   m.IDs.IMDB,
		TMDBID:   m.IDs.TMDB,
	}
}

// Trending fetches the trending shelf for shows or movies
func (c *TraktClient) Trending(category Category, limit int) ([]Item, error) {
	var entries []traktTrendingEntry
	if err := c.get(category.Endpoint(), limit, &entries); err != nil {
		return nil, err
	}

	kind := KindShow
	if category.IsMovie() {
		kind = KindMovie
	}

	items := make([]Item, 0, len(entries))
	for _, e := range entries {
		m := pickMedia(e.Show, e.Movie)
		if m == nil {
			continue
		}
		items = append(items, itemFromMedia(m, kind, e.Watchers))
	}
	return items, nil
}

// Popular fetches the popular shelf, which Trakt returns as a flat
// media list
func (c *TraktClient) Popular(category Category, limit int) ([]Item, error) {
	var entries []traktMedia
	if err := c.get(category.Endpoint(), limit, &entries); err != nil {
		return nil, err
	}

	kind := KindShow
	if category.IsMovie() {
		kind = KindMovie
	}

	items := make([]Item, 0, len(entries))
	for i := range entries {
		items = append(items, itemFromMedia(&entries[i], kind, 0))
	}
	return items, nil
}

// Anticipated fetches the anticipated shelf
func (c *TraktClient) Anticipated(category Category, limit int) ([]Item, error) {
	var entries []traktAnticipatedEntry
	if err := c.get(category.Endpoint(), limit, &entries); err != nil {
		return nil, err
	}

	kind := KindShow
	if category.IsMovie() {
		kind = KindMovie
	}

	items := make([]Item, 0, len(entries))
	for _, e := range entries {
		m := pickMedia(e.Show, e.Movie)
		if m == nil {
			continue
		}
		items = append(items, itemFromMedia(m, kind, 0))
	}
	return items, nil
}

// ByCategory dispatches to the right endpoint for a discovery category
func (c *TraktClient) ByCategory(category Category, limit int) ([]Item, error) {
	if limit <= 0 {
		limit = DefaultTraktLimit
	}

	switch category {
	case TrendingShows, TrendingMovies:
		return c.Trending(category, limit)
	case PopularShows, PopularMovies:
		return c.Popular(category, limit)
	case AnticipatedShows, AnticipatedMovies:
		return c.Anticipated(category, limit)
	default:
		return nil, fmt.Errorf("unknown discovery category: %d", category)
	}
}
