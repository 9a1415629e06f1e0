package ports

import "github.com/JakobGM/quelf/internal/domain"

// WeekdayRow is one row of the per-weekday aggregation.
type WeekdayRow struct {
	Weekday   string
	Nights    int
	AvgInBed  float64 // hours
	AvgSlept  float64 // hours, quality-weighted time in bed
	AvgSteps  float64
	AvgRating float64 // sleep quality, 0..1
}

// AnalyticsIndex is the tabular sink: flattened rows in a queryable store
// for downstream analysis.
type AnalyticsIndex interface {
	// Lifecycle
	Open(dbPath string) error
	Close() error

	// ReplaceSessions rebuilds the sessions table from the given rows and
	// returns the number stored.
	ReplaceSessions(records []domain.SleepRecord) (int, error)

	// InsertTimeEntries upserts time-tracking rows and returns the number
	// written.
	InsertTimeEntries(entries []domain.TimeEntry) (int, error)

	// Aggregations over the sessions table.
	NightCount() (int, error)
	AverageTimeInBed() (float64, error) // hours
	WeekdaySummary() ([]WeekdayRow, error)
}
