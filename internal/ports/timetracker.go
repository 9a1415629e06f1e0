package ports

import (
	"context"
	"time"

	"github.com/JakobGM/quelf/internal/domain"
)

// TimeTracker is an authenticated handle on the time-tracking reports API.
type TimeTracker interface {
	// Summary aggregates the tracked time between since and until.
	Summary(ctx context.Context, since, until time.Time) (domain.TimeSummary, error)

	// Entries returns every detailed entry between since and until,
	// walking the report's pages internally.
	Entries(ctx context.Context, since, until time.Time) ([]domain.TimeEntry, error)
}
