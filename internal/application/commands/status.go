package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/JakobGM/quelf/internal/domain"
	"github.com/JakobGM/quelf/internal/ports"
)

// StatusResult describes the local session cache
type StatusResult struct {
	Path        string
	Sessions    int
	FirstID     int
	NewestID    int
	FirstStart  *time.Time
	NewestStart *time.Time
	Message     string
}

// StatusCommand reports the state of the session cache
type StatusCommand struct {
	store ports.SessionStore
}

// NewStatusCommand creates a new StatusCommand
func NewStatusCommand(store ports.SessionStore) *StatusCommand {
	return &StatusCommand{store: store}
}

// Execute runs the status command
func (c *StatusCommand) Execute(ctx context.Context) (*StatusResult, error) {
	result := &StatusResult{
		Path:     c.store.Path(),
		Sessions: c.store.Size(),
	}

	if result.Sessions == 0 {
		result.Message = fmt.Sprintf("Cache at %s is empty", result.Path)
		return result, nil
	}

	if first, ok := c.store.First(); ok {
		result.FirstID = first.ID
		result.FirstStart = domain.FlattenSession(first).Start
	}
	if newest, ok := c.store.Newest(); ok {
		result.NewestID = newest.ID
		result.NewestStart = domain.FlattenSession(newest).Start
	}

	result.Message = fmt.Sprintf("%d sessions cached at %s (ids %d..%d)",
		result.Sessions, result.Path, result.FirstID, result.NewestID)
	return result, nil
}
