package football

import (
	"database/sql"
	"fmt"
	"os"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// dateLayout is the fixture date format used by the scraper database
const dateLayout = "2006-01-02"

// Store queries fixtures from the scraper's SQLite database
type Store struct {
	db   *sql.DB
	path string
	now  func() time.Time
}

// Open opens the fixtures database at the given path.
// A missing file is an error: the scraper has to run first.
func Open(path string) (*Store, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("fixtures database not found at %s: %w", path, err)
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open fixtures database: %w", err)
	}

	return &Store{db: db, path: path, now: time.Now}, nil
}

// Close releases the underlying database handle
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database location for display
func (s *Store) Path() string {
	return s.path
}

// queryFixtures runs a filtered fixtures query and loads broadcasters
// for each returned fixture
func (s *Store) queryFixtures(where string, args ...interface{}) ([]Fixture, error) {
	query := `SELECT id, home_team, away_team, competition, fixture_date, fixture_time, venue
		FROM fixtures ` + where + `
		ORDER BY fixture_date ASC, fixture_time ASC`

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("fixtures query failed: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var fixtures []Fixture
	for rows.Next() {
		var f Fixture
		var fixtureTime, venue sql.NullString
		if err := rows.Scan(&f.ID, &f.HomeTeam, &f.AwayTeam, &f.Competition, &f.Date, &fixtureTime, &venue); err != nil {
			return nil, fmt.Errorf("failed to scan fixture: %w", err)
		}
		f.Time = fixtureTime.String
		f.Venue = venue.String
		fixtures = append(fixtures, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("fixtures query failed: %w", err)
	}

	for i := range fixtures {
		broadcasters, err := s.broadcastersFor(fixtures[i].ID)
		if err != nil {
			return nil, err
		}
		fixtures[i].Broadcasters = broadcasters
	}

	return fixtures, nil
}

func (s *Store) broadcastersFor(fixtureID int64) ([]Broadcaster, error) {
	rows, err := s.db.Query(
		`SELECT country, channel FROM broadcasters WHERE fixture_id = ? ORDER BY country, channel`,
		fixtureID,
	)
	if err != nil {
		return nil, fmt.Errorf("broadcasters query failed: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var broadcasters []Broadcaster
	for rows.Next() {
		var b Broadcaster
		if err := rows.Scan(&b.Country, &b.Channel); err != nil {
			return nil, fmt.Errorf("failed to scan broadcaster: %w", err)
		}
		broadcasters = append(broadcasters, b)
	}
	return broadcasters, rows.Err()
}

// Today returns fixtures scheduled for the current date
func (s *Store) Today() ([]Fixture, error) {
	today := s.now().Format(dateLayout)
	return s.queryFixtures("WHERE fixture_date = ?", today)
}

// Tomorrow returns fixtures scheduled for the next day
func (s *Store) Tomorrow() ([]Fixture, error) {
	tomorrow := s.now().AddDate(0, 0, 1).Format(dateLayout)
	return s.queryFixtures("WHERE fixture_date = ?", tomorrow)
}

// ThisWeek returns fixtures in the next seven days
func (s *Store) ThisWeek() ([]Fixture, error) {
	today := s.now().Format(dateLayout)
	weekLater := s.now().AddDate(0, 0, 7).Format(dateLayout)
	return s.queryFixtures("WHERE fixture_date >= ? AND fixture_date <= ?", today, weekLater)
}

// Upcoming returns all fixtures from today onwards
func (s *Store) Upcoming() ([]Fixture, error) {
	today := s.now().Format(dateLayout)
	return s.queryFixtures("WHERE fixture_date >= ?", today)
}

// ByCompetition returns upcoming fixtures whose competition matches the
// given substring
func (s *Store) ByCompetition(competition string) ([]Fixture, error) {
	today := s.now().Format(dateLayout)
	return s.queryFixtures(
		"WHERE fixture_date >= ? AND competition LIKE ?",
		today, "%"+competition+"%",
	)
}

// Stats summarizes the database contents
func (s *Store) Stats() (Stats, error) {
	var stats Stats
	today := s.now().Format(dateLayout)

	if err := s.db.QueryRow(`SELECT COUNT(*) FROM fixtures`).Scan(&stats.TotalFixtures); err != nil {
		return stats, fmt.Errorf("stats query failed: %w", err)
	}
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM broadcasters`).Scan(&stats.TotalBroadcasters); err != nil {
		return stats, fmt.Errorf("stats query failed: %w", err)
	}
	if err := s.db.QueryRow(
		`SELECT COUNT(*) FROM fixtures WHERE fixture_date >= ?`, today,
	).Scan(&stats.UpcomingFixtures); err != nil {
		return stats, fmt.Errorf("stats query failed: %w", err)
	}

	rows, err := s.db.Query(
		`SELECT DISTINCT competition FROM fixtures WHERE fixture_date >= ? ORDER BY competition`, today,
	)
	if err != nil {
		return stats, fmt.Errorf("stats query failed: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()
	for rows.Next() {
		var competition string
		if err := rows.Scan(&competition); err != nil {
			return stats, fmt.Errorf("failed to scan competition: %w", err)
		}
		stats.Competitions = append(stats.Competitions, competition)
	}
	if err := rows.Err(); err != nil {
		return stats, fmt.Errorf("stats query failed: %w", err)
	}

	var minDate, maxDate sql.NullString
	if err := s.db.QueryRow(
		`SELECT MIN(fixture_date), MAX(fixture_date) FROM fixtures WHERE fixture_date >= ?`, today,
	).Scan(&minDate, &maxDate); err != nil {
		return stats, fmt.Errorf("stats query failed: %w", err)
	}
	stats.MinDate = minDate.String
	stats.MaxDate = maxDate.String

	return stats, nil
}
