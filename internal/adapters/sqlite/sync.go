package sqlite

import (
	"fmt"
	"strings"
	"time"

	"github.com/JakobGM/quelf/internal/domain"
)

// ReplaceSessions rebuilds the sessions table from the given rows. The
// whole rebuild runs in one transaction, so readers never observe a
// half-filled table.
func (idx *Index) ReplaceSessions(records []domain.SleepRecord) (int, error) {
	tx, err := idx.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM sessions`); err != nil {
		return 0, fmt.Errorf("failed to clear sessions: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO sessions (id, start, stop, weekday, time_in_bed_seconds, sleep_quality, steps, wakeup_mood)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, record := range records {
		_, err := stmt.Exec(
			record.ID,
			nullTime(record.Start),
			nullTime(record.Stop),
			nullWeekday(record.Start),
			nullSeconds(record.TimeInBed),
			nullFloat(record.Quality),
			nullInt(record.Steps),
			nullString(record.WakeupMood),
		)
		if err != nil {
			return 0, fmt.Errorf("failed to insert session %d: %w", record.ID, err)
		}
	}

	if _, err := tx.Exec(`INSERT OR REPLACE INTO meta (key, value) VALUES ('last_sync_time', ?)`,
		time.Now().Unix()); err != nil {
		return 0, fmt.Errorf("failed to record sync time: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit: %w", err)
	}

	return len(records), nil
}

// InsertTimeEntries upserts time-tracking rows. Entries keep their
// upstream ids, so re-syncing an overlapping period overwrites instead
// of duplicating.
func (idx *Index) InsertTimeEntries(entries []domain.TimeEntry) (int, error) {
	tx, err := idx.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT OR REPLACE INTO time_entries (id, description, project, start, stop, duration_seconds, tags)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, entry := range entries {
		_, err := stmt.Exec(
			entry.ID,
			entry.Description,
			entry.Project,
			entryTime(entry.Start),
			entryTime(entry.Stop),
			entry.Duration.Seconds(),
			strings.Join(entry.Tags, ","),
		)
		if err != nil {
			return 0, fmt.Errorf("failed to insert time entry %d: %w", entry.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit: %w", err)
	}

	return len(entries), nil
}

// Nullable column helpers: flattened records carry absent fields as nil
// pointers, which must reach the driver as NULL rather than zero values.

func nullTime(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return t.Format(time.RFC3339)
}

func nullWeekday(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return int(t.Weekday())
}

func nullSeconds(d *time.Duration) interface{} {
	if d == nil {
		return nil
	}
	return d.Seconds()
}

func nullFloat(f *float64) interface{} {
	if f == nil {
		return nil
	}
	return *f
}

func nullInt(i *int) interface{} {
	if i == nil {
		return nil
	}
	return *i
}

func nullString(s *string) interface{} {
	if s == nil {
		return nil
	}
	return *s
}

func entryTime(t time.Time) interface{} {
	if t.IsZero() {
		return nil
	}
	return t.Format(time.RFC3339)
}
