package discover

// TraktFetcher adapts a TraktClient to the cache fetcher contract
type TraktFetcher struct {
	client *TraktClient
	limit  int
}

// NewTraktFetcher creates a fetcher pulling up to limit items per shelf
func NewTraktFetcher(client *TraktClient, limit int) *TraktFetcher {
	if limit <= 0 {
		limit = DefaultTraktLimit
	}
	return &TraktFetcher{client: client, limit: limit}
}

// Fetch implements cache.Fetcher
func (f *TraktFetcher) Fetch(category Category) ([]Item, error) {
	return f.client.ByCategory(category, f.limit)
}

// TVMazeFetcher adapts a TVMazeClient to the cache fetcher contract
type TVMazeFetcher struct {
	client *TVMazeClient
}

// NewTVMazeFetcher creates a fetcher over the given client
func NewTVMazeFetcher(client *TVMazeClient) *TVMazeFetcher {
	return &TVMazeFetcher{client: client}
}

// Fetch implements cache.Fetcher
func (f *TVMazeFetcher) Fetch(category ShowCategory) ([]Item, error) {
	return f.client.ByCategory(category)
}
