package commands

import (
	"context"

	"github.com/JakobGM/quelf/internal/application"
	"github.com/JakobGM/quelf/internal/domain"
	"github.com/JakobGM/quelf/internal/ports"
)

// ShowSessionResult carries one session in raw and flattened form
type ShowSessionResult struct {
	Session domain.Session
	Record  domain.SleepRecord
}

// ShowSessionCommand resolves a single session by id. It reads from the
// cache; with a walker attached it falls back to the remote service for
// ids that are not cached yet.
type ShowSessionCommand struct {
	store  ports.SessionStore
	walker Walker
	ID     int
}

// NewShowSessionCommand creates a new ShowSessionCommand
func NewShowSessionCommand(store ports.SessionStore, id int) *ShowSessionCommand {
	return &ShowSessionCommand{
		store: store,
		ID:    id,
	}
}

// WithRemoteFallback attaches a walker used when the id is not cached
func (c *ShowSessionCommand) WithRemoteFallback(walker Walker) *ShowSessionCommand {
	c.walker = walker
	return c
}

// Validate checks if the show operation is valid
func (c *ShowSessionCommand) Validate() error {
	if c.ID <= 0 {
		return &application.ValidationError{
			Field:   "id",
			Message: "session id must be positive",
		}
	}
	return nil
}

// Execute runs the show session command
func (c *ShowSessionCommand) Execute(ctx context.Context) (*ShowSessionResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	var session domain.Session
	var err error
	if c.walker != nil {
		session, err = c.walker.FetchByRelation(ctx, c.ID, domain.DirectionExact)
	} else {
		session, err = c.store.Get(c.ID)
	}
	if err != nil {
		return nil, err
	}

	return &ShowSessionResult{
		Session: session,
		Record:  domain.FlattenSession(session),
	}, nil
}
