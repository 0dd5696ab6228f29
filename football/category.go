package football

// Category identifies one fixtures shelf
type Category int

const (
	Today Category = iota
	Tomorrow
	ThisWeek
	Upcoming
	ChampionsLeague
	PremierLeague
	LaLiga
)

// Categories returns every fixtures category in display order
func Categories() []Category {
	return []Category{
		Today,
		Tomorrow,
		ThisWeek,
		Upcoming,
		ChampionsLeague,
		PremierLeague,
		LaLiga,
	}
}

// DisplayName returns the shelf title shown in the UI
func (c Category) DisplayName() string {
	switch c {
	case Today:
		return "Today"
	case Tomorrow:
		return "Tomorrow"
	case ThisWeek:
		return "This Week"
	case Upcoming:
		return "All Upcoming"
	case ChampionsLeague:
		return "Champions League"
	case PremierLeague:
		return "Premier League"
	case LaLiga:
		return "La Liga"
	default:
		return "Unknown"
	}
}

// CompetitionFilter returns the competition substring for league shelves
func (c Category) CompetitionFilter() (string, bool) {
	switch c {
	case ChampionsLeague:
		return "Champions League", true
	case PremierLeague:
		return "Premier League", true
	case LaLiga:
		return "La Liga", true
	default:
		return "", false
	}
}
