package commands

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/JakobGM/quelf/internal/application"
	"github.com/JakobGM/quelf/internal/domain"
	"github.com/JakobGM/quelf/internal/ports"
)

// In-memory stand-ins for the ports the commands drive.

type fakeStore struct {
	path  string
	order []int
	byID  map[int]domain.Session
}

func newFakeStore(sessions ...domain.Session) *fakeStore {
	s := &fakeStore{path: "/tmp/sleepsessions.json", byID: make(map[int]domain.Session)}
	for _, sess := range sessions {
		s.Insert(sess)
	}
	return s
}

func (s *fakeStore) Contains(id int) bool {
	_, ok := s.byID[id]
	return ok
}

func (s *fakeStore) Get(id int) (domain.Session, error) {
	sess, ok := s.byID[id]
	if !ok {
		return domain.Session{}, fmt.Errorf("session %d: %w", id, application.ErrNotFound)
	}
	return sess, nil
}

func (s *fakeStore) Insert(sess domain.Session) error {
	if s.Contains(sess.ID) {
		return &application.DuplicateSessionError{ID: sess.ID}
	}
	s.order = append(s.order, sess.ID)
	s.byID[sess.ID] = sess
	return nil
}

func (s *fakeStore) First() (domain.Session, bool) {
	if len(s.order) == 0 {
		return domain.Session{}, false
	}
	return s.byID[s.order[0]], true
}

func (s *fakeStore) Newest() (domain.Session, bool) {
	if len(s.order) == 0 {
		return domain.Session{}, false
	}
	return s.byID[s.order[len(s.order)-1]], true
}

func (s *fakeStore) Size() int { return len(s.order) }

func (s *fakeStore) Sessions() []domain.Session {
	out := make([]domain.Session, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.byID[id])
	}
	return out
}

func (s *fakeStore) Path() string { return s.path }

func sleepSession(id int, payload string) domain.Session {
	return domain.Session{ID: id, Raw: []byte(payload)}
}

type fakeWalker struct {
	stats   domain.WalkStats
	runErr  error
	fetched map[int]domain.Session
	calls   []string
}

func (w *fakeWalker) Run(ctx context.Context) (domain.WalkStats, error) {
	w.calls = append(w.calls, "run")
	return w.stats, w.runErr
}

func (w *fakeWalker) FetchByRelation(ctx context.Context, id int, dir domain.Direction) (domain.Session, error) {
	w.calls = append(w.calls, fmt.Sprintf("%s %d", dir, id))
	s, ok := w.fetched[id]
	if !ok {
		return domain.Session{}, fmt.Errorf("session %d: %w", id, application.ErrNotFound)
	}
	return s, nil
}

type fakeIndex struct {
	opened   string
	closed   bool
	sessions []domain.SleepRecord
	entries  []domain.TimeEntry
}

func (f *fakeIndex) Open(dbPath string) error { f.opened = dbPath; return nil }
func (f *fakeIndex) Close() error             { f.closed = true; return nil }

func (f *fakeIndex) ReplaceSessions(records []domain.SleepRecord) (int, error) {
	f.sessions = records
	return len(records), nil
}

func (f *fakeIndex) InsertTimeEntries(entries []domain.TimeEntry) (int, error) {
	f.entries = append(f.entries, entries...)
	return len(entries), nil
}

func (f *fakeIndex) NightCount() (int, error)          { return len(f.sessions), nil }
func (f *fakeIndex) AverageTimeInBed() (float64, error) { return 0, nil }
func (f *fakeIndex) WeekdaySummary() ([]ports.WeekdayRow, error) {
	return nil, nil
}

type fakeTracker struct {
	summary domain.TimeSummary
	entries []domain.TimeEntry
	err     error
}

func (f *fakeTracker) Summary(ctx context.Context, since, until time.Time) (domain.TimeSummary, error) {
	return f.summary, f.err
}

func (f *fakeTracker) Entries(ctx context.Context, since, until time.Time) ([]domain.TimeEntry, error) {
	return f.entries, f.err
}

type fakeExport struct {
	downloaded  string
	unzipped    string
	recordsPath string
	sessions    []domain.Session
	err         error
}

func (f *fakeExport) DownloadExport(ctx context.Context, zipPath string) error {
	f.downloaded = zipPath
	return f.err
}

func (f *fakeExport) UnzipExport(zipPath, destDir string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.unzipped = destDir
	return f.recordsPath, nil
}

func (f *fakeExport) ReadExport(jsonPath string) ([]domain.Session, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.sessions, nil
}

func contains(s, substr string) bool {
	return strings.Contains(s, substr)
}
