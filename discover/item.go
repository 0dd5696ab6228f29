// Package discover provides the remote discovery sources behind the
// content-discovery caches: Trakt for trending/popular/anticipated
// shows and movies, TVMaze for schedule and genre browsing.
package discover

// Kind distinguishes shows from movies in discovery results
type Kind int

const (
	// KindShow is episodic TV content
	KindShow Kind = iota
	// KindMovie is feature-length content
	KindMovie
)

func (k Kind) String() string {
	if k == KindMovie {
		return "movie"
	}
	return "show"
}

// Item is a unified discovery result across sources
type Item struct {
	ID        int64
	Title     string
	Year      int
	Overview  string
	Rating    float64
	Votes     int64
	PosterURL string
	Kind      Kind
	// Watchers is only populated for trending results
	Watchers int64
	Genres   []string
	IMDBID   string
	TMDBID   int64
}
