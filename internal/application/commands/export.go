package commands

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/JakobGM/quelf/internal/application"
	"github.com/JakobGM/quelf/internal/domain"
	"github.com/JakobGM/quelf/internal/ports"
)

// csvHeader is the column layout of the CSV projection.
var csvHeader = []string{
	"id", "start", "stop", "time_in_bed_seconds", "sleep_quality", "steps", "wakeup_mood",
}

// ExportCSVResult contains the result of a CSV export
type ExportCSVResult struct {
	Rows    int
	Message string
}

// ExportCSVCommand writes the cached sessions as CSV, in cache order
type ExportCSVCommand struct {
	store ports.SessionStore
	out   io.Writer
}

// NewExportCSVCommand creates a new ExportCSVCommand
func NewExportCSVCommand(store ports.SessionStore, out io.Writer) *ExportCSVCommand {
	return &ExportCSVCommand{
		store: store,
		out:   out,
	}
}

// Execute runs the CSV export command
func (c *ExportCSVCommand) Execute(ctx context.Context) (*ExportCSVResult, error) {
	records := domain.FlattenSessions(c.store.Sessions())

	w := csv.NewWriter(c.out)
	if err := w.Write(csvHeader); err != nil {
		return nil, fmt.Errorf("failed to write header: %w", err)
	}
	for _, record := range records {
		if err := w.Write(csvRow(record)); err != nil {
			return nil, fmt.Errorf("failed to write session %d: %w", record.ID, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush output: %w", err)
	}

	return &ExportCSVResult{
		Rows:    len(records),
		Message: fmt.Sprintf("Wrote %d sessions", len(records)),
	}, nil
}

// csvRow renders one flattened record. Absent fields become empty cells.
func csvRow(record domain.SleepRecord) []string {
	row := []string{strconv.Itoa(record.ID), "", "", "", "", "", ""}
	if record.Start != nil {
		row[1] = record.Start.Format(time.RFC3339)
	}
	if record.Stop != nil {
		row[2] = record.Stop.Format(time.RFC3339)
	}
	if record.TimeInBed != nil {
		row[3] = strconv.FormatFloat(record.TimeInBed.Seconds(), 'f', 0, 64)
	}
	if record.Quality != nil {
		row[4] = strconv.FormatFloat(*record.Quality, 'f', -1, 64)
	}
	if record.Steps != nil {
		row[5] = strconv.Itoa(*record.Steps)
	}
	if record.WakeupMood != nil {
		row[6] = *record.WakeupMood
	}
	return row
}

// ExportSQLiteResult contains the result of an analytics rebuild
type ExportSQLiteResult struct {
	Sessions     int
	DatabasePath string
	Message      string
}

// ExportSQLiteCommand rebuilds the analytics database from the cache
type ExportSQLiteCommand struct {
	store        ports.SessionStore
	index        ports.AnalyticsIndex
	DatabasePath string
}

// NewExportSQLiteCommand creates a new ExportSQLiteCommand
func NewExportSQLiteCommand(store ports.SessionStore, index ports.AnalyticsIndex, databasePath string) *ExportSQLiteCommand {
	return &ExportSQLiteCommand{
		store:        store,
		index:        index,
		DatabasePath: databasePath,
	}
}

// Validate checks if the export operation is valid
func (c *ExportSQLiteCommand) Validate() error {
	if c.DatabasePath == "" {
		return &application.ValidationError{
			Field:   "databasePath",
			Message: "database path is required",
		}
	}
	return nil
}

// Execute runs the SQLite export command
func (c *ExportSQLiteCommand) Execute(ctx context.Context) (*ExportSQLiteResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	if err := c.index.Open(c.DatabasePath); err != nil {
		return nil, fmt.Errorf("failed to open analytics database: %w", err)
	}
	defer c.index.Close()

	records := domain.FlattenSessions(c.store.Sessions())
	stored, err := c.index.ReplaceSessions(records)
	if err != nil {
		return nil, fmt.Errorf("failed to rebuild sessions table: %w", err)
	}

	return &ExportSQLiteResult{
		Sessions:     stored,
		DatabasePath: c.DatabasePath,
		Message:      fmt.Sprintf("Indexed %d sessions into %s", stored, c.DatabasePath),
	}, nil
}
