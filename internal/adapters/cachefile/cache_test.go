package cachefile

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/JakobGM/quelf/internal/application"
	"github.com/JakobGM/quelf/internal/domain"
)

func testCache(t *testing.T) *Cache {
	t.Helper()
	c, err := Load(filepath.Join(t.TempDir(), "sleepsessions.json"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return c
}

func session(id int, raw string) domain.Session {
	return domain.Session{ID: id, Raw: []byte(raw)}
}

func TestLoadCreatesMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "cache.json")

	c, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Size() != 0 {
		t.Errorf("expected empty cache, got %d sessions", c.Size())
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("cache file was not created: %v", err)
	}
}

func TestInsertAndGet(t *testing.T) {
	c := testCache(t)

	if err := c.Insert(session(24, `{"id": 24, "sleep_quality": 0.5}`)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !c.Contains(24) {
		t.Error("expected cache to contain 24")
	}
	if c.Contains(25) {
		t.Error("cache claims to contain 25")
	}

	got, err := c.Get(24)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(got.Raw) != `{"id": 24, "sleep_quality": 0.5}` {
		t.Errorf("payload mangled: %s", got.Raw)
	}

	_, err = c.Get(99)
	if !errors.Is(err, application.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestInsertDuplicateLeavesCacheUnchanged(t *testing.T) {
	c := testCache(t)

	if err := c.Insert(session(10, `{"id": 10, "v": 1}`)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	err := c.Insert(session(10, `{"id": 10, "v": 2}`))
	if !errors.Is(err, application.ErrDuplicateSession) {
		t.Fatalf("expected ErrDuplicateSession, got %v", err)
	}

	if c.Size() != 1 {
		t.Errorf("expected size 1 after rejected insert, got %d", c.Size())
	}
	got, _ := c.Get(10)
	if string(got.Raw) != `{"id": 10, "v": 1}` {
		t.Errorf("original payload was replaced: %s", got.Raw)
	}
}

func TestFirstAndNewestMarkers(t *testing.T) {
	c := testCache(t)

	if _, ok := c.First(); ok {
		t.Error("empty cache reported a first session")
	}
	if _, ok := c.Newest(); ok {
		t.Error("empty cache reported a newest session")
	}

	c.Insert(session(10, `{"id": 10}`))
	first, _ := c.First()
	newest, _ := c.Newest()
	if first.ID != 10 || newest.ID != 10 {
		t.Errorf("after one insert: first=%d newest=%d", first.ID, newest.ID)
	}

	c.Insert(session(11, `{"id": 11}`))
	c.Insert(session(12, `{"id": 12}`))
	first, _ = c.First()
	newest, _ = c.Newest()
	if first.ID != 10 {
		t.Errorf("first marker moved to %d", first.ID)
	}
	if newest.ID != 12 {
		t.Errorf("expected newest 12, got %d", newest.ID)
	}
}

func TestSizeMatchesInsertCount(t *testing.T) {
	c := testCache(t)
	ids := []int{5, 9, 2, 14, 3}
	for i, id := range ids {
		if err := c.Insert(session(id, `{"id": 1}`)); err != nil {
			t.Fatalf("insert %d: %v", id, err)
		}
		if c.Size() != i+1 {
			t.Errorf("after %d inserts size is %d", i+1, c.Size())
		}
	}
}

func TestSessionsReturnsInsertionOrder(t *testing.T) {
	c := testCache(t)
	if got := c.Sessions(); len(got) != 0 {
		t.Errorf("empty cache returned %d sessions", len(got))
	}

	ids := []int{30, 10, 20}
	for _, id := range ids {
		c.Insert(session(id, `{"id": 1}`))
	}

	got := c.Sessions()
	if len(got) != len(ids) {
		t.Fatalf("expected %d sessions, got %d", len(ids), len(got))
	}
	for i, s := range got {
		if s.ID != ids[i] {
			t.Errorf("position %d: expected %d, got %d", i, ids[i], s.ID)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.json")
	c, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	c.Insert(session(24, `{"id": 24, "mood_wakeup": "-"}`))
	c.Insert(session(1, `{"id": 1, "nested": {"deep": [1, 2, 3]}}`))
	c.Insert(session(7, `{"id": 7}`))

	reloaded, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if diff := cmp.Diff(c.Sessions(), reloaded.Sessions()); diff != "" {
		t.Errorf("sessions differ after reload (-want +got):\n%s", diff)
	}

	first, _ := reloaded.First()
	newest, _ := reloaded.Newest()
	if first.ID != 24 {
		t.Errorf("expected first 24, got %d", first.ID)
	}
	if newest.ID != 7 {
		t.Errorf("expected newest 7, got %d", newest.ID)
	}
}

func TestPersistedShape(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.json")
	c, _ := Load(path)
	c.Insert(session(24, `{"id": 24}`))
	c.Insert(session(25, `{"id": 25}`))

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var got struct {
		First   int                        `json:"first_session_id"`
		Newest  int                        `json:"newest_session_id"`
		Records map[string]json.RawMessage `json:"records"`
	}
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("cache file is not valid JSON: %v", err)
	}
	if got.First != 24 || got.Newest != 25 {
		t.Errorf("markers: first=%d newest=%d", got.First, got.Newest)
	}
	if len(got.Records) != 2 {
		t.Errorf("expected 2 records, got %d", len(got.Records))
	}
	if string(got.Records["24"]) != `{"id": 24}` {
		t.Errorf("record 24 = %s", got.Records["24"])
	}
}

func TestLoadLegacyFlatShape(t *testing.T) {
	tests := []struct {
		name       string
		content    string
		wantSize   int
		wantFirst  int
		wantNewest int
	}{
		{
			name:       "markers inlined",
			content:    `{"24": {"id": 24}, "1": {"id": 1}, "first_session_id": 24, "newest_session_id": 1}`,
			wantSize:   2,
			wantFirst:  24,
			wantNewest: 1,
		},
		{
			name:       "no markers",
			content:    `{"12": {"id": 12}, "10": {"id": 10}, "11": {"id": 11}}`,
			wantSize:   3,
			wantFirst:  10,
			wantNewest: 12,
		},
		{
			name:     "empty object",
			content:  `{}`,
			wantSize: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "cache.json")
			if err := os.WriteFile(path, []byte(tt.content), 0644); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			c, err := Load(path)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if c.Size() != tt.wantSize {
				t.Errorf("expected %d sessions, got %d", tt.wantSize, c.Size())
			}
			if tt.wantSize == 0 {
				return
			}
			first, _ := c.First()
			newest, _ := c.Newest()
			if first.ID != tt.wantFirst {
				t.Errorf("expected first %d, got %d", tt.wantFirst, first.ID)
			}
			if newest.ID != tt.wantNewest {
				t.Errorf("expected newest %d, got %d", tt.wantNewest, newest.ID)
			}
		})
	}
}

func TestLoadCorruptFile(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "not json", content: `this is not json`},
		{name: "json array", content: `[1, 2, 3]`},
		{name: "non-numeric record key", content: `{"abc": {"id": 1}}`},
		{name: "records not an object", content: `{"records": [1, 2]}`},
		{name: "marker without partner", content: `{"first_session_id": 2, "2": {"id": 2}}`},
		{name: "marker not a cached id", content: `{"first_session_id": 9, "newest_session_id": 2, "2": {"id": 2}}`},
		{name: "unexpected field in current shape", content: `{"records": {}, "extra": 1}`},
		{name: "non-integer marker", content: `{"records": {"2": {}}, "first_session_id": "x", "newest_session_id": 2}`},
		{name: "truncated", content: `{"records": {"2":`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "cache.json")
			if err := os.WriteFile(path, []byte(tt.content), 0644); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			_, err := Load(path)
			if !errors.Is(err, application.ErrCorruptCache) {
				t.Errorf("expected ErrCorruptCache, got %v", err)
			}
		})
	}
}

func TestReloadAcrossRestarts(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.json")

	c, _ := Load(path)
	c.Insert(session(10, `{"id": 10}`))
	c.Insert(session(11, `{"id": 11}`))

	// Second process: resume and extend.
	c2, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c2.Size() != 2 {
		t.Fatalf("expected 2 sessions after reload, got %d", c2.Size())
	}
	if err := c2.Insert(session(12, `{"id": 12}`)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	c3, _ := Load(path)
	newest, _ := c3.Newest()
	if newest.ID != 12 {
		t.Errorf("expected newest 12 after third load, got %d", newest.ID)
	}
	first, _ := c3.First()
	if first.ID != 10 {
		t.Errorf("expected first 10 after third load, got %d", first.ID)
	}
}
