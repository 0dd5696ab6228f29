// Package football reads upcoming match fixtures and their broadcasters
// from the SQLite database produced by the fixtures scraper.
package football

import (
	"fmt"
	"sort"
)

// Broadcaster names a channel carrying a fixture in one country
type Broadcaster struct {
	Country string
	Channel string
}

// Fixture is one scheduled match
type Fixture struct {
	ID           int64
	HomeTeam     string
	AwayTeam     string
	Competition  string
	Date         string // YYYY-MM-DD
	Time         string // HH:MM, may be empty
	Venue        string
	Broadcasters []Broadcaster
}

// MatchTitle returns the "Home vs Away" display title
func (f Fixture) MatchTitle() string {
	return fmt.Sprintf("%s vs %s", f.HomeTeam, f.AwayTeam)
}

// DisplayTime returns the kickoff time, or TBD when unknown
func (f Fixture) DisplayTime() string {
	if f.Time == "" {
		return "TBD"
	}
	return f.Time
}

// AllChannelNames returns every broadcasting channel name
func (f Fixture) AllChannelNames() []string {
	names := make([]string, 0, len(f.Broadcasters))
	for _, b := range f.Broadcasters {
		names = append(names, b.Channel)
	}
	return names
}

// ChannelsByCountry groups broadcasting channels by country
func (f Fixture) ChannelsByCountry() map[string][]string {
	grouped := make(map[string][]string)
	for _, b := range f.Broadcasters {
		grouped[b.Country] = append(grouped[b.Country], b.Channel)
	}
	return grouped
}

// Stats summarizes the fixtures database
type Stats struct {
	TotalFixtures     int64
	UpcomingFixtures  int64
	TotalBroadcasters int64
	Competitions      []string
	MinDate           string
	MaxDate           string
}

// CompetitionList returns the competitions sorted alphabetically
func (s Stats) CompetitionList() []string {
	competitions := make([]string, len(s.Competitions))
	copy(competitions, s.Competitions)
	sort.Strings(competitions)
	return competitions
}
