package mcgen

import (
	"database/sql"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

const dayLayout = "2006-01-02"

// Store wraps a SQLite database holding generation counts. Only counts per
// day, background and output type are kept; titles and texts never are.
type Store struct {
	db *sql.DB
}

// Totals summarises all recorded generations.
type Totals struct {
	Total     int
	Downloads int
}

// NewStore opens (or creates) the SQLite database at path, ensures the data
// directory exists, and runs schema migrations.
func NewStore(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	// Pragmas go in the DSN so every pooled connection gets them. WAL lets
	// the dashboard read while requests write; busy_timeout makes writers
	// wait instead of failing with SQLITE_BUSY.
	dsn := path + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(4)
	s := &Store{db: db}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) ensureSchema() error {
	_, err := s.db.Exec(`
CREATE TABLE IF NOT EXISTS generations (
    day TEXT NOT NULL,
    background TEXT NOT NULL,
    output TEXT NOT NULL,
    count INTEGER NOT NULL DEFAULT 0,
    PRIMARY KEY (day, background, output)
);
`)
	return err
}

// RecordGeneration counts one served image.
func (s *Store) RecordGeneration(at time.Time, background string, output OutputType) error {
	_, err := s.db.Exec(`INSERT INTO generations (day, background, output, count) VALUES (?, ?, ?, 1)
ON CONFLICT (day, background, output) DO UPDATE SET count = count + 1`,
		at.UTC().Format(dayLayout), background, output.label())
	return err
}

// Totals returns the number of images served overall and as downloads.
func (s *Store) Totals() (Totals, error) {
	var t Totals
	err := s.db.QueryRow(`SELECT COALESCE(SUM(count), 0), COALESCE(SUM(CASE WHEN output = 'download' THEN count ELSE 0 END), 0) FROM generations`).
		Scan(&t.Total, &t.Downloads)
	return t, err
}

// BackgroundStats returns counts per background, most used first.
func (s *Store) BackgroundStats() ([]BackgroundStat, error) {
	rows, err := s.db.Query(`SELECT background, SUM(count) AS n FROM generations GROUP BY background ORDER BY n DESC, background ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stats []BackgroundStat
	for rows.Next() {
		var st BackgroundStat
		if err := rows.Scan(&st.Background, &st.Count); err != nil {
			return nil, err
		}
		stats = append(stats, st)
	}
	return stats, rows.Err()
}

// DailyStats returns counts per day for the last days days, newest first.
func (s *Store) DailyStats(days int) ([]DailyStat, error) {
	since := time.Now().UTC().AddDate(0, 0, -days+1).Format(dayLayout)
	rows, err := s.db.Query(`SELECT day, SUM(count) FROM generations WHERE day >= ? GROUP BY day ORDER BY day DESC`, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stats []DailyStat
	for rows.Next() {
		var st DailyStat
		if err := rows.Scan(&st.Day, &st.Count); err != nil {
			return nil, err
		}
		stats = append(stats, st)
	}
	return stats, rows.Err()
}
