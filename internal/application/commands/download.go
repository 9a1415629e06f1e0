package commands

import (
	"context"
	"fmt"
	"sort"

	"github.com/JakobGM/quelf/internal/application"
	"github.com/JakobGM/quelf/internal/ports"
)

// DownloadResult contains the result of an export download
type DownloadResult struct {
	ZipPath     string
	RecordsPath string
	Message     string
}

// DownloadCommand downloads the account's full export archive, and
// optionally extracts it
type DownloadCommand struct {
	source  ports.ExportSource
	ZipPath string
	Unzip   bool
	DestDir string
}

// NewDownloadCommand creates a new DownloadCommand
func NewDownloadCommand(source ports.ExportSource, zipPath string) *DownloadCommand {
	return &DownloadCommand{
		source:  source,
		ZipPath: zipPath,
	}
}

// WithUnzip makes the command extract the archive into destDir
func (c *DownloadCommand) WithUnzip(destDir string) *DownloadCommand {
	c.Unzip = true
	c.DestDir = destDir
	return c
}

// Validate checks if the download operation is valid
func (c *DownloadCommand) Validate() error {
	if c.ZipPath == "" {
		return &application.ValidationError{
			Field:   "zipPath",
			Message: "archive path is required",
		}
	}
	if c.Unzip && c.DestDir == "" {
		return &application.ValidationError{
			Field:   "destDir",
			Message: "extraction directory is required",
		}
	}
	return nil
}

// Execute runs the download command
func (c *DownloadCommand) Execute(ctx context.Context) (*DownloadResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	if err := c.source.DownloadExport(ctx, c.ZipPath); err != nil {
		return nil, fmt.Errorf("failed to download export: %w", err)
	}

	result := &DownloadResult{
		ZipPath: c.ZipPath,
		Message: fmt.Sprintf("Downloaded export to %s", c.ZipPath),
	}

	if c.Unzip {
		recordsPath, err := c.source.UnzipExport(c.ZipPath, c.DestDir)
		if err != nil {
			return nil, fmt.Errorf("failed to extract export: %w", err)
		}
		result.RecordsPath = recordsPath
		result.Message = fmt.Sprintf("Downloaded and extracted export to %s", recordsPath)
	}

	return result, nil
}

// ImportResult contains the result of a cache import
type ImportResult struct {
	Imported int
	Skipped  int
	Message  string
}

// ImportCommand seeds the session cache from an extracted export file.
// Only ids not yet cached are inserted, in ascending order, so the
// newest marker ends on the newest imported session.
type ImportCommand struct {
	store       ports.SessionStore
	source      ports.ExportSource
	RecordsPath string
}

// NewImportCommand creates a new ImportCommand
func NewImportCommand(store ports.SessionStore, source ports.ExportSource, recordsPath string) *ImportCommand {
	return &ImportCommand{
		store:       store,
		source:      source,
		RecordsPath: recordsPath,
	}
}

// Validate checks if the import operation is valid
func (c *ImportCommand) Validate() error {
	if c.RecordsPath == "" {
		return &application.ValidationError{
			Field:   "recordsPath",
			Message: "records file path is required",
		}
	}
	return nil
}

// Execute runs the import command
func (c *ImportCommand) Execute(ctx context.Context) (*ImportResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	sessions, err := c.source.ReadExport(c.RecordsPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read export: %w", err)
	}

	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].ID < sessions[j].ID
	})

	result := &ImportResult{}
	for _, session := range sessions {
		if c.store.Contains(session.ID) {
			result.Skipped++
			continue
		}
		if err := c.store.Insert(session); err != nil {
			return nil, fmt.Errorf("failed to import session %d: %w", session.ID, err)
		}
		result.Imported++
	}

	result.Message = fmt.Sprintf("Imported %d sessions (%d already cached)",
		result.Imported, result.Skipped)
	return result, nil
}
