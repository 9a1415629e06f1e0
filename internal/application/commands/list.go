package commands

import (
	"context"

	"github.com/JakobGM/quelf/internal/application"
	"github.com/JakobGM/quelf/internal/domain"
	"github.com/JakobGM/quelf/internal/ports"
)

// ListSessionsCommand lists cached sessions, newest first
type ListSessionsCommand struct {
	store ports.SessionStore
	Limit int
}

// NewListSessionsCommand creates a new ListSessionsCommand. A limit of
// zero lists everything.
func NewListSessionsCommand(store ports.SessionStore, limit int) *ListSessionsCommand {
	return &ListSessionsCommand{
		store: store,
		Limit: limit,
	}
}

// Validate checks if the list operation is valid
func (c *ListSessionsCommand) Validate() error {
	if c.Limit < 0 {
		return &application.ValidationError{
			Field:   "limit",
			Message: "limit cannot be negative",
		}
	}
	return nil
}

// Execute runs the list sessions command
func (c *ListSessionsCommand) Execute(ctx context.Context) ([]domain.SleepRecord, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	records := domain.FlattenSessions(c.store.Sessions())

	// Cached order is oldest first; listings read better newest first.
	for i, j := 0, len(records)-1; i < j; i, j = i+1, j-1 {
		records[i], records[j] = records[j], records[i]
	}

	if c.Limit > 0 && len(records) > c.Limit {
		records = records[:c.Limit]
	}
	return records, nil
}
