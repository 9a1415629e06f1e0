package sqlite

import (
	"math"
	"path/filepath"
	"testing"
	"time"

	"github.com/JakobGM/quelf/internal/domain"
)

func openTestIndex(t *testing.T) *Index {
	t.Helper()
	idx := NewIndex()
	if err := idx.Open(filepath.Join(t.TempDir(), "quelf.db")); err != nil {
		t.Fatalf("failed to open index: %v", err)
	}
	t.Cleanup(func() {
		if err := idx.Close(); err != nil {
			t.Errorf("failed to close index: %v", err)
		}
	})
	return idx
}

// dateWithWeekday returns a start time in August 2026 falling on the
// given weekday.
func dateWithWeekday(weekday time.Weekday) time.Time {
	d := time.Date(2026, 8, 3, 23, 0, 0, 0, time.UTC)
	for d.Weekday() != weekday {
		d = d.AddDate(0, 0, 1)
	}
	return d
}

func record(id int, start time.Time, hoursInBed, quality float64, steps int) domain.SleepRecord {
	stop := start.Add(time.Duration(hoursInBed * float64(time.Hour)))
	inBed := stop.Sub(start)
	return domain.SleepRecord{
		ID:        id,
		Start:     &start,
		Stop:      &stop,
		TimeInBed: &inBed,
		Quality:   &quality,
		Steps:     &steps,
	}
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}

func TestOpenEmptyIndex(t *testing.T) {
	idx := openTestIndex(t)

	count, err := idx.NightCount()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 0 {
		t.Errorf("expected empty index, got %d nights", count)
	}

	avg, err := idx.AverageTimeInBed()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if avg != 0 {
		t.Errorf("expected zero average, got %v", avg)
	}
}

func TestReplaceSessions(t *testing.T) {
	idx := openTestIndex(t)

	monday := dateWithWeekday(time.Monday)
	records := []domain.SleepRecord{
		record(10, monday, 8, 0.8, 9000),
		record(11, monday.AddDate(0, 0, 1), 6, 0.6, 4000),
	}

	n, err := idx.ReplaceSessions(records)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 2 {
		t.Errorf("expected 2 stored, got %d", n)
	}

	count, err := idx.NightCount()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 2 {
		t.Errorf("expected 2 nights, got %d", count)
	}

	avg, err := idx.AverageTimeInBed()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !almostEqual(avg, 7) {
		t.Errorf("expected 7h average, got %v", avg)
	}

	// A second replace is a full rebuild, not an append.
	if _, err := idx.ReplaceSessions(records[:1]); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	count, _ = idx.NightCount()
	if count != 1 {
		t.Errorf("expected 1 night after rebuild, got %d", count)
	}
}

func TestReplaceSessionsWithMissingFields(t *testing.T) {
	idx := openTestIndex(t)

	// A session that never parsed start/stop still counts as a night,
	// but contributes to no average.
	bare := domain.SleepRecord{ID: 42}
	if _, err := idx.ReplaceSessions([]domain.SleepRecord{bare}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	count, _ := idx.NightCount()
	if count != 1 {
		t.Errorf("expected 1 night, got %d", count)
	}

	avg, err := idx.AverageTimeInBed()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if avg != 0 {
		t.Errorf("expected zero average, got %v", avg)
	}

	summary, err := idx.WeekdaySummary()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(summary) != 0 {
		t.Errorf("weekday summary included a session without a start: %+v", summary)
	}
}

func TestWeekdaySummary(t *testing.T) {
	idx := openTestIndex(t)

	monday := dateWithWeekday(time.Monday)
	sunday := dateWithWeekday(time.Sunday)
	records := []domain.SleepRecord{
		record(1, monday, 8, 0.8, 9000),
		record(2, monday.AddDate(0, 0, 7), 6, 0.6, 5000),
		record(3, sunday, 9, 0.9, 1000),
	}
	if _, err := idx.ReplaceSessions(records); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	summary, err := idx.WeekdaySummary()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(summary) != 2 {
		t.Fatalf("expected 2 weekday rows, got %d", len(summary))
	}

	// Monday sorts before Sunday.
	mon := summary[0]
	if mon.Weekday != "Monday" {
		t.Fatalf("first row is %q, want Monday", mon.Weekday)
	}
	if mon.Nights != 2 {
		t.Errorf("expected 2 Monday nights, got %d", mon.Nights)
	}
	if !almostEqual(mon.AvgInBed, 7) {
		t.Errorf("Monday average in bed %v, want 7", mon.AvgInBed)
	}
	// (8*0.8 + 6*0.6) / 2 = 5.0 quality-weighted hours.
	if !almostEqual(mon.AvgSlept, 5) {
		t.Errorf("Monday average slept %v, want 5", mon.AvgSlept)
	}
	if !almostEqual(mon.AvgSteps, 7000) {
		t.Errorf("Monday average steps %v, want 7000", mon.AvgSteps)
	}
	if !almostEqual(mon.AvgRating, 0.7) {
		t.Errorf("Monday average rating %v, want 0.7", mon.AvgRating)
	}

	sun := summary[1]
	if sun.Weekday != "Sunday" || sun.Nights != 1 {
		t.Errorf("second row %+v, want one Sunday night", sun)
	}
}

func TestInsertTimeEntries(t *testing.T) {
	idx := openTestIndex(t)

	entries := []domain.TimeEntry{
		{
			ID:          1,
			Description: "thesis writing",
			Project:     "Studies",
			Start:       time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC),
			Stop:        time.Date(2026, 8, 1, 11, 0, 0, 0, time.UTC),
			Duration:    2 * time.Hour,
			Tags:        []string{"deep-work", "writing"},
		},
		{ID: 2, Description: "emails", Project: "Work", Duration: 30 * time.Minute},
	}

	n, err := idx.InsertTimeEntries(entries)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 2 {
		t.Errorf("expected 2 written, got %d", n)
	}

	// Re-inserting the same period overwrites by id.
	if _, err := idx.InsertTimeEntries(entries); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var count int
	if err := idx.db.QueryRow(`SELECT COUNT(*) FROM time_entries`).Scan(&count); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 2 {
		t.Errorf("expected 2 rows after re-insert, got %d", count)
	}

	var tags string
	if err := idx.db.QueryRow(`SELECT tags FROM time_entries WHERE id = 1`).Scan(&tags); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tags != "deep-work,writing" {
		t.Errorf("tags stored as %q", tags)
	}
}

func TestReopenKeepsData(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "quelf.db")

	idx := NewIndex()
	if err := idx.Open(dbPath); err != nil {
		t.Fatalf("failed to open index: %v", err)
	}
	monday := dateWithWeekday(time.Monday)
	if _, err := idx.ReplaceSessions([]domain.SleepRecord{record(1, monday, 8, 0.8, 100)}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := idx.Close(); err != nil {
		t.Fatalf("failed to close index: %v", err)
	}

	reopened := NewIndex()
	if err := reopened.Open(dbPath); err != nil {
		t.Fatalf("failed to reopen index: %v", err)
	}
	defer reopened.Close()

	count, err := reopened.NightCount()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 1 {
		t.Errorf("expected 1 night after reopen, got %d", count)
	}
}

// BenchmarkReplaceSessions benchmarks a full rebuild (DB already open)
func BenchmarkReplaceSessions(b *testing.B) {
	idx := NewIndex()
	if err := idx.Open(filepath.Join(b.TempDir(), "bench.db")); err != nil {
		b.Fatalf("failed to open index: %v", err)
	}
	defer func() {
		if err := idx.Close(); err != nil {
			b.Fatalf("failed to close index: %v", err)
		}
	}()

	records := make([]domain.SleepRecord, 0, 1000)
	start := time.Date(2023, 1, 1, 23, 0, 0, 0, time.UTC)
	for i := 0; i < 1000; i++ {
		records = append(records, record(i+1, start.AddDate(0, 0, i), 7.5, 0.75, 8000))
	}

	b.ResetTimer()
	for b.Loop() {
		if _, err := idx.ReplaceSessions(records); err != nil {
			b.Fatalf("rebuild failed: %v", err)
		}
	}
}
