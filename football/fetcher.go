package football

import "errors"

// ErrNoDatabase is returned when no fixtures database is configured
var ErrNoDatabase = errors.New("fixtures database not found; run the fixtures scraper first")

// Fetcher adapts a Store to the cache fetcher contract
type Fetcher struct {
	store *Store
}

// NewFetcher creates a fetcher over the given store, which may be nil
// when no database was found at startup
func NewFetcher(store *Store) *Fetcher {
	return &Fetcher{store: store}
}

// Fetch implements cache.Fetcher
func (f *Fetcher) Fetch(category Category) ([]Fixture, error) {
	if f.store == nil {
		return nil, ErrNoDatabase
	}

	switch category {
	case Today:
		return f.store.Today()
	case Tomorrow:
		return f.store.Tomorrow()
	case ThisWeek:
		return f.store.ThisWeek()
	default:
		if competition, ok := category.CompetitionFilter(); ok {
			return f.store.ByCompetition(competition)
		}
		return f.store.Upcoming()
	}
}
