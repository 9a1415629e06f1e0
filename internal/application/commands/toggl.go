package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/JakobGM/quelf/internal/application"
	"github.com/JakobGM/quelf/internal/domain"
	"github.com/JakobGM/quelf/internal/ports"
)

// TogglSummaryResult contains the aggregated tracked time for a period
type TogglSummaryResult struct {
	Summary domain.TimeSummary
	Since   time.Time
	Until   time.Time
	Message string
}

// TogglSummaryCommand reports tracked time between two dates
type TogglSummaryCommand struct {
	tracker ports.TimeTracker
	Since   time.Time
	Until   time.Time
}

// NewTogglSummaryCommand creates a new TogglSummaryCommand
func NewTogglSummaryCommand(tracker ports.TimeTracker, since, until time.Time) *TogglSummaryCommand {
	return &TogglSummaryCommand{
		tracker: tracker,
		Since:   since,
		Until:   until,
	}
}

// Validate checks if the summary period is valid
func (c *TogglSummaryCommand) Validate() error {
	return validatePeriod(c.Since, c.Until)
}

// Execute runs the summary command
func (c *TogglSummaryCommand) Execute(ctx context.Context) (*TogglSummaryResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	summary, err := c.tracker.Summary(ctx, c.Since, c.Until)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch summary: %w", err)
	}

	return &TogglSummaryResult{
		Summary: summary,
		Since:   c.Since,
		Until:   c.Until,
		Message: fmt.Sprintf("Tracked %s across %d entries", summary.Total, summary.EntryCount),
	}, nil
}

// TogglSyncResult contains the result of a time entry sync
type TogglSyncResult struct {
	Written int
	Message string
}

// TogglSyncCommand stores detailed time entries in the analytics database
type TogglSyncCommand struct {
	tracker      ports.TimeTracker
	index        ports.AnalyticsIndex
	DatabasePath string
	Since        time.Time
	Until        time.Time
}

// NewTogglSyncCommand creates a new TogglSyncCommand
func NewTogglSyncCommand(tracker ports.TimeTracker, index ports.AnalyticsIndex, databasePath string, since, until time.Time) *TogglSyncCommand {
	return &TogglSyncCommand{
		tracker:      tracker,
		index:        index,
		DatabasePath: databasePath,
		Since:        since,
		Until:        until,
	}
}

// Validate checks if the sync operation is valid
func (c *TogglSyncCommand) Validate() error {
	if c.DatabasePath == "" {
		return &application.ValidationError{
			Field:   "databasePath",
			Message: "database path is required",
		}
	}
	return validatePeriod(c.Since, c.Until)
}

// Execute runs the time entry sync command
func (c *TogglSyncCommand) Execute(ctx context.Context) (*TogglSyncResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	entries, err := c.tracker.Entries(ctx, c.Since, c.Until)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch time entries: %w", err)
	}

	if err := c.index.Open(c.DatabasePath); err != nil {
		return nil, fmt.Errorf("failed to open analytics database: %w", err)
	}
	defer c.index.Close()

	written, err := c.index.InsertTimeEntries(entries)
	if err != nil {
		return nil, fmt.Errorf("failed to store time entries: %w", err)
	}

	return &TogglSyncResult{
		Written: written,
		Message: fmt.Sprintf("Stored %d time entries", written),
	}, nil
}

// validatePeriod checks a since/until pair
func validatePeriod(since, until time.Time) error {
	if since.IsZero() {
		return &application.ValidationError{
			Field:   "since",
			Message: "start of period is required",
		}
	}
	if until.IsZero() {
		return &application.ValidationError{
			Field:   "until",
			Message: "end of period is required",
		}
	}
	if until.Before(since) {
		return &application.ValidationError{
			Field:   "until",
			Message: "period ends before it starts",
		}
	}
	return nil
}
