package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/JakobGM/quelf/internal/domain"
)

// Walker is the part of the session walker the commands drive.
type Walker interface {
	Run(ctx context.Context) (domain.WalkStats, error)
	FetchByRelation(ctx context.Context, id int, dir domain.Direction) (domain.Session, error)
}

// SyncResult contains the result of a sync run
type SyncResult struct {
	Stats   domain.WalkStats
	Message string
}

// SyncCommand fetches every remote session that is not yet cached
type SyncCommand struct {
	walker Walker
}

// NewSyncCommand creates a new SyncCommand
func NewSyncCommand(walker Walker) *SyncCommand {
	return &SyncCommand{walker: walker}
}

// Execute runs the sync command
func (c *SyncCommand) Execute(ctx context.Context) (*SyncResult, error) {
	stats, err := c.walker.Run(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to sync sessions: %w", err)
	}

	message := fmt.Sprintf("Fetched %d new sessions (%d total cached) in %s",
		stats.Fetched, stats.Total(), stats.Duration.Round(time.Millisecond))
	if stats.Fetched == 0 {
		message = fmt.Sprintf("Cache is up to date (%d sessions)", stats.Total())
	}

	return &SyncResult{Stats: stats, Message: message}, nil
}
