package ports

import "github.com/JakobGM/quelf/internal/domain"

// SessionStore is the durable local cache of fetched sessions plus the
// first/newest insertion markers. Implementations persist synchronously on
// every insert; the backing file is the source of truth across restarts.
type SessionStore interface {
	// Contains reports whether the id is cached. O(1).
	Contains(id int) bool

	// Get returns the cached session for id.
	// Fails with application.ErrNotFound when absent.
	Get(id int) (domain.Session, error)

	// Insert adds a genuinely new session and persists the whole cache
	// before returning. The newest marker always moves to the inserted id;
	// the first marker is set only once. Inserting an id that is already
	// present fails with application.ErrDuplicateSession and leaves the
	// cache unchanged.
	Insert(session domain.Session) error

	// First returns the first session ever inserted, if any.
	First() (domain.Session, bool)

	// Newest returns the most recently inserted session, if any.
	Newest() (domain.Session, bool)

	// Size returns the number of cached sessions.
	Size() int

	// Sessions returns every cached session in insertion order. Consumers
	// needing chronological order must sort on a payload timestamp
	// themselves.
	Sessions() []domain.Session

	// Path returns the location of the backing file.
	Path() string
}
