package discover

// Category identifies one Trakt discovery shelf
type Category int

const (
	TrendingShows Category = iota
	TrendingMovies
	PopularShows
	PopularMovies
	AnticipatedShows
	AnticipatedMovies
)

// Categories returns every Trakt discovery category in display order
func Categories() []Category {
	return []Category{
		TrendingShows,
		TrendingMovies,
		PopularShows,
		PopularMovies,
		AnticipatedShows,
		AnticipatedMovies,
	}
}

// DisplayName returns the shelf title shown in the UI
func (c Category) DisplayName() string {
	switch c {
	case TrendingShows:
		return "Trending Shows"
	case TrendingMovies:
		return "Trending Movies"
	case PopularShows:
		return "Popular Shows"
	case PopularMovies:
		return "Popular Movies"
	case AnticipatedShows:
		return "Anticipated Shows"
	case AnticipatedMovies:
		return "Anticipated Movies"
	default:
		return "Unknown"
	}
}

// Endpoint returns the Trakt API path for the category
func (c Category) Endpoint() string {
	switch c {
	case TrendingShows:
		return "/shows/trending"
	case TrendingMovies:
		return "/movies/trending"
	case PopularShows:
		return "/shows/popular"
	case PopularMovies:
		return "/movies/popular"
	case AnticipatedShows:
		return "/shows/anticipated"
	case AnticipatedMovies:
		return "/movies/anticipated"
	default:
		return ""
	}
}

// IsMovie reports whether the category holds movie results
func (c Category) IsMovie() bool {
	switch c {
	case TrendingMovies, PopularMovies, AnticipatedMovies:
		return true
	default:
		return false
	}
}

// ShowCategory identifies one TVMaze discovery shelf
type ShowCategory int

const (
	AiringToday ShowCategory = iota
	PopularSearch
	TopRated
	SciFi
	Drama
	Comedy
	Action
)

// ShowCategories returns every TVMaze discovery category in display order
func ShowCategories() []ShowCategory {
	return []ShowCategory{
		AiringToday,
		PopularSearch,
		TopRated,
		SciFi,
		Drama,
		Comedy,
		Action,
	}
}

// DisplayName returns the shelf title shown in the UI
func (c ShowCategory) DisplayName() string {
	switch c {
	case AiringToday:
		return "Airing Today"
	case PopularSearch:
		return "Popular Shows"
	case TopRated:
		return "Top Rated"
	case SciFi:
		return "Sci-Fi"
	case Drama:
		return "Drama"
	case Comedy:
		return "Comedy"
	case Action:
		return "Action"
	default:
		return "Unknown"
	}
}

// Genre returns the TVMaze genre filter for genre shelves, or ""
func (c ShowCategory) Genre() string {
	switch c {
	case SciFi:
		return "Science-Fiction"
	case Drama:
		return "Drama"
	case Comedy:
		return "Comedy"
	case Action:
		return "Action"
	default:
		return ""
	}
}
