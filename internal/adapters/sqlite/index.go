package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/JakobGM/quelf/internal/ports"
)

const schemaVersion = "1"

// Index implements ports.AnalyticsIndex using SQLite
type Index struct {
	db     *sql.DB
	dbPath string
}

// Ensure Index implements AnalyticsIndex
var _ ports.AnalyticsIndex = (*Index)(nil)

// NewIndex creates a new SQLite index
func NewIndex() *Index {
	return &Index{}
}

// Open initializes the index at the given database path
func (idx *Index) Open(dbPath string) error {
	// Expand ~ in path
	if len(dbPath) > 0 && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}
	idx.dbPath = dbPath

	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return fmt.Errorf("failed to create index directory: %w", err)
	}

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_journal_mode=WAL")
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	idx.db = db

	// Performance pragmas + schema in single batch (reduces round-trips)
	_, err = db.Exec(`
		PRAGMA synchronous = NORMAL;
		PRAGMA cache_size = -64000;
		PRAGMA temp_store = MEMORY;
		PRAGMA busy_timeout = 5000;

		CREATE TABLE IF NOT EXISTS sessions (
			id INTEGER PRIMARY KEY,
			start TEXT,
			stop TEXT,
			weekday INTEGER,
			time_in_bed_seconds REAL,
			sleep_quality REAL,
			steps INTEGER,
			wakeup_mood TEXT
		);
		CREATE TABLE IF NOT EXISTS time_entries (
			id INTEGER PRIMARY KEY,
			description TEXT,
			project TEXT,
			start TEXT,
			stop TEXT,
			duration_seconds REAL,
			tags TEXT
		);
		CREATE TABLE IF NOT EXISTS meta (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_sessions_start ON sessions(start);
		CREATE INDEX IF NOT EXISTS idx_sessions_weekday ON sessions(weekday);
		CREATE INDEX IF NOT EXISTS idx_time_entries_project ON time_entries(project);
	`)
	if err != nil {
		db.Close()
		return fmt.Errorf("failed to setup database: %w", err)
	}

	if err := idx.updateMeta(); err != nil {
		db.Close()
		return fmt.Errorf("failed to update metadata: %w", err)
	}

	return nil
}

// Close closes the database connection
func (idx *Index) Close() error {
	if idx.db != nil {
		return idx.db.Close()
	}
	return nil
}

// updateMeta records the schema version
func (idx *Index) updateMeta() error {
	_, err := idx.db.Exec(`
		INSERT OR REPLACE INTO meta (key, value) VALUES ('schema_version', ?)
	`, schemaVersion)
	return err
}

// NightCount returns the number of indexed sleep sessions
func (idx *Index) NightCount() (int, error) {
	var count int
	err := idx.db.QueryRow(`SELECT COUNT(*) FROM sessions`).Scan(&count)
	return count, err
}

// AverageTimeInBed returns the mean time in bed in hours across all
// indexed sessions. Sessions without a known time in bed are excluded.
func (idx *Index) AverageTimeInBed() (float64, error) {
	var avg sql.NullFloat64
	err := idx.db.QueryRow(`
		SELECT AVG(time_in_bed_seconds) / 3600.0 FROM sessions
	`).Scan(&avg)
	if err != nil {
		return 0, err
	}
	return avg.Float64, nil
}

// WeekdaySummary aggregates the indexed sessions per weekday, ordered
// Monday first. Sessions without a start time carry no weekday and are
// excluded.
func (idx *Index) WeekdaySummary() ([]ports.WeekdayRow, error) {
	rows, err := idx.db.Query(`
		SELECT weekday,
		       COUNT(*),
		       AVG(time_in_bed_seconds) / 3600.0,
		       AVG(time_in_bed_seconds * sleep_quality) / 3600.0,
		       AVG(steps),
		       AVG(sleep_quality)
		FROM sessions
		WHERE weekday IS NOT NULL
		GROUP BY weekday
		ORDER BY (weekday + 6) % 7
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var summary []ports.WeekdayRow
	for rows.Next() {
		var weekday, nights int
		var inBed, slept, steps, rating sql.NullFloat64
		if err := rows.Scan(&weekday, &nights, &inBed, &slept, &steps, &rating); err != nil {
			return nil, err
		}
		summary = append(summary, ports.WeekdayRow{
			Weekday:   time.Weekday(weekday).String(),
			Nights:    nights,
			AvgInBed:  inBed.Float64,
			AvgSlept:  slept.Float64,
			AvgSteps:  steps.Float64,
			AvgRating: rating.Float64,
		})
	}

	return summary, rows.Err()
}
