package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/JakobGM/quelf/internal/domain"
	"github.com/JakobGM/quelf/internal/ports"
)

// WalkProgress is called after every session persisted during a walk.
// The expected count is an estimate derived from the session id span and
// may overshoot when identifiers are sparse, so the walk can finish
// before done reaches it.
type WalkProgress func(done, expected int, s domain.Session)

// SessionWalker brings the local session store up to date with the
// remote history. Sessions form a chain ordered by ascending id, and
// the remote only answers point queries (an exact id, or the neighbour
// of an id), so the walker advances one session at a time from the
// newest cached entry until it reaches the newest remote one. Every
// fetched session is persisted before the walk advances, which makes
// an interrupted run resumable at no extra cost.
type SessionWalker struct {
	store    ports.SessionStore
	source   ports.SessionSource
	logger   *slog.Logger
	progress WalkProgress
}

// WalkerOption configures a SessionWalker.
type WalkerOption func(*SessionWalker)

// WithLogger replaces the default logger.
func WithLogger(logger *slog.Logger) WalkerOption {
	return func(w *SessionWalker) {
		w.logger = logger
	}
}

// WithProgress registers a callback invoked after each persisted session.
func WithProgress(fn WalkProgress) WalkerOption {
	return func(w *SessionWalker) {
		w.progress = fn
	}
}

// NewSessionWalker creates a walker over the given store and source.
func NewSessionWalker(store ports.SessionStore, source ports.SessionSource, opts ...WalkerOption) *SessionWalker {
	w := &SessionWalker{
		store:  store,
		source: source,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Run fetches every session recorded upstream that is not yet in the
// store. An empty store is seeded with the oldest remote session, after
// which the walk repeatedly asks for the session following the newest
// cached one. Sessions already cached are never fetched again, so a
// run over an up-to-date store costs a single bounds request.
//
// A partial walk is not rolled back: every session fetched before an
// error is already persisted, and the next run continues from there.
func (w *SessionWalker) Run(ctx context.Context) (stats domain.WalkStats, err error) {
	start := time.Now()
	defer func() {
		stats.Duration = time.Since(start)
	}()

	stats.AlreadyCached = w.store.Size()

	bounds, err := w.source.Bounds(ctx)
	if err != nil {
		return stats, fmt.Errorf("resolving session bounds: %w", err)
	}
	if bounds.Empty() {
		w.logger.Info("no sessions recorded upstream")
		return stats, nil
	}
	bounds = bounds.Normalize()
	expected := w.remaining(bounds)

	w.logger.Debug("resolved session bounds",
		slog.Int("oldest", bounds.OldestID),
		slog.Int("newest", bounds.NewestID),
		slog.Int("cached", stats.AlreadyCached),
	)

	if w.store.Size() == 0 {
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		seed, err := w.fetch(ctx, bounds.OldestID, domain.DirectionExact)
		if err != nil {
			return stats, err
		}
		if err := w.store.Insert(seed); err != nil {
			return stats, err
		}
		stats.Fetched++
		w.report(stats.Fetched, expected, seed)
	}

	for {
		newest, ok := w.store.Newest()
		if !ok {
			return stats, fmt.Errorf("store has no newest session after seeding")
		}
		if newest.ID >= bounds.NewestID {
			break
		}
		if err := ctx.Err(); err != nil {
			return stats, err
		}

		next, err := w.fetch(ctx, newest.ID, domain.DirectionNext)
		if err != nil {
			return stats, err
		}
		if w.store.Contains(next.ID) {
			return stats, fmt.Errorf("session %d following %d is already cached: %w",
				next.ID, newest.ID, ErrStaleBounds)
		}
		if err := w.store.Insert(next); err != nil {
			return stats, err
		}
		stats.Fetched++
		w.report(stats.Fetched, expected, next)
	}

	w.logger.Info("session walk complete",
		slog.Int("fetched", stats.Fetched),
		slog.Int("total", stats.Total()),
		slog.Duration("duration", time.Since(start)),
	)
	return stats, nil
}

// FetchByRelation resolves a single session. Exact lookups are served
// from the store when possible and only fall through to the remote on
// a miss. Neighbour lookups always query the remote, since the store
// cannot answer adjacency. Any session obtained remotely is persisted,
// unless it is already present.
func (w *SessionWalker) FetchByRelation(ctx context.Context, id int, dir domain.Direction) (domain.Session, error) {
	if dir == domain.DirectionExact {
		s, err := w.store.Get(id)
		if err == nil {
			return s, nil
		}
		if !errors.Is(err, ErrNotFound) {
			return domain.Session{}, err
		}
	}

	s, err := w.fetch(ctx, id, dir)
	if err != nil {
		return domain.Session{}, err
	}
	if !w.store.Contains(s.ID) {
		if err := w.store.Insert(s); err != nil {
			return domain.Session{}, err
		}
	}
	return s, nil
}

func (w *SessionWalker) fetch(ctx context.Context, id int, dir domain.Direction) (domain.Session, error) {
	s, err := w.source.FetchSession(ctx, id, dir)
	if err != nil {
		if dir == domain.DirectionExact {
			return domain.Session{}, fmt.Errorf("fetching session %d: %w", id, err)
		}
		return domain.Session{}, fmt.Errorf("fetching %s session of %d: %w", dir, id, err)
	}
	w.logger.Debug("fetched session", slog.Int("id", s.ID), slog.String("direction", dir.String()))
	return s, nil
}

// remaining estimates how many sessions the walk still has to fetch,
// assuming densely ascending ids. Sparse ids make this an upper bound.
func (w *SessionWalker) remaining(bounds domain.WalkBounds) int {
	if newest, ok := w.store.Newest(); ok {
		if newest.ID >= bounds.NewestID {
			return 0
		}
		return bounds.NewestID - newest.ID
	}
	return bounds.NewestID - bounds.OldestID + 1
}

func (w *SessionWalker) report(done, expected int, s domain.Session) {
	if w.progress != nil {
		w.progress(done, expected, s)
	}
}
