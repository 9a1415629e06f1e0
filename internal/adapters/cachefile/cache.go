package cachefile

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/natefinch/atomic"
	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/JakobGM/quelf/internal/application"
	"github.com/JakobGM/quelf/internal/domain"
	"github.com/JakobGM/quelf/internal/ports"
)

// Marker keys persisted alongside the records. The names predate this
// implementation and must not change: existing cache files use them.
const (
	firstKey  = "first_session_id"
	newestKey = "newest_session_id"
)

// Cache implements ports.SessionStore as a write-through JSON file. Every
// insert rewrites the whole file atomically (temp file + rename), so a
// crash mid-write never leaves an unparsable cache behind. Sessions are
// kept and persisted in insertion order.
type Cache struct {
	path     string
	order    []int
	byID     map[int]domain.Session
	firstID  *int
	newestID *int
}

// Ensure Cache implements SessionStore
var _ ports.SessionStore = (*Cache)(nil)

// cacheFile is the persisted shape.
type cacheFile struct {
	First   *int                                            `json:"first_session_id,omitempty"`
	Newest  *int                                            `json:"newest_session_id,omitempty"`
	Records *orderedmap.OrderedMap[string, json.RawMessage] `json:"records"`
}

// Load opens the cache at path. A missing file yields an empty cache whose
// state is persisted immediately; a file that exists but does not parse
// into a known shape fails with application.ErrCorruptCache. Both the
// current shape (explicit first/newest markers plus a records object) and
// the legacy flat shape (a bare id→payload object, markers optionally
// inlined) are accepted.
func Load(path string) (*Cache, error) {
	c := &Cache{
		path: path,
		byID: make(map[int]domain.Session),
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			if err := c.persist(); err != nil {
				return nil, fmt.Errorf("failed to initialize cache file: %w", err)
			}
			return c, nil
		}
		return nil, fmt.Errorf("failed to read cache file: %w", err)
	}

	if err := c.parse(data); err != nil {
		return nil, err
	}
	return c, nil
}

// parse interprets a cache document and populates the in-memory state.
func (c *Cache) parse(data []byte) error {
	doc := orderedmap.New[string, json.RawMessage]()
	if err := json.Unmarshal(data, &doc); err != nil {
		return c.corrupt("not a JSON object")
	}

	if _, isCurrent := doc.Get("records"); isCurrent {
		return c.parseCurrent(doc)
	}
	return c.parseLegacy(doc)
}

// parseCurrent handles the explicit-marker shape. Only the three known
// top-level fields are allowed.
func (c *Cache) parseCurrent(doc *orderedmap.OrderedMap[string, json.RawMessage]) error {
	for pair := doc.Oldest(); pair != nil; pair = pair.Next() {
		switch pair.Key {
		case firstKey:
			id, err := parseMarker(pair.Value)
			if err != nil {
				return c.corrupt(fmt.Sprintf("invalid %s: %v", firstKey, err))
			}
			c.firstID = &id
		case newestKey:
			id, err := parseMarker(pair.Value)
			if err != nil {
				return c.corrupt(fmt.Sprintf("invalid %s: %v", newestKey, err))
			}
			c.newestID = &id
		case "records":
			records := orderedmap.New[string, json.RawMessage]()
			if err := json.Unmarshal(pair.Value, &records); err != nil {
				return c.corrupt("records is not an object")
			}
			if err := c.loadRecords(records); err != nil {
				return err
			}
		default:
			return c.corrupt(fmt.Sprintf("unexpected field %q", pair.Key))
		}
	}
	return c.checkMarkers()
}

// parseLegacy handles the flat shape written by early versions: record ids
// as top-level keys, markers optionally inlined next to them.
func (c *Cache) parseLegacy(doc *orderedmap.OrderedMap[string, json.RawMessage]) error {
	records := orderedmap.New[string, json.RawMessage]()
	for pair := doc.Oldest(); pair != nil; pair = pair.Next() {
		switch pair.Key {
		case firstKey:
			id, err := parseMarker(pair.Value)
			if err != nil {
				return c.corrupt(fmt.Sprintf("invalid %s: %v", firstKey, err))
			}
			c.firstID = &id
		case newestKey:
			id, err := parseMarker(pair.Value)
			if err != nil {
				return c.corrupt(fmt.Sprintf("invalid %s: %v", newestKey, err))
			}
			c.newestID = &id
		default:
			records.Set(pair.Key, pair.Value)
		}
	}
	if err := c.loadRecords(records); err != nil {
		return err
	}

	// Marker-less legacy files predate the markers entirely. Ids ascend
	// chronologically, so the smallest cached id was inserted first and
	// the largest last.
	if c.firstID == nil && c.newestID == nil && len(c.order) > 0 {
		first, newest := c.order[0], c.order[0]
		for _, id := range c.order[1:] {
			if id < first {
				first = id
			}
			if id > newest {
				newest = id
			}
		}
		c.firstID = &first
		c.newestID = &newest
	}
	return c.checkMarkers()
}

func (c *Cache) loadRecords(records *orderedmap.OrderedMap[string, json.RawMessage]) error {
	for pair := records.Oldest(); pair != nil; pair = pair.Next() {
		id, err := strconv.Atoi(pair.Key)
		if err != nil || id <= 0 {
			return c.corrupt(fmt.Sprintf("record key %q is not a session id", pair.Key))
		}
		if _, dup := c.byID[id]; dup {
			return c.corrupt(fmt.Sprintf("session %d appears twice", id))
		}
		c.order = append(c.order, id)
		c.byID[id] = domain.Session{ID: id, Raw: pair.Value}
	}
	return nil
}

// checkMarkers enforces the marker invariant: both unset on an empty
// cache, both present as record keys otherwise.
func (c *Cache) checkMarkers() error {
	if (c.firstID == nil) != (c.newestID == nil) {
		return c.corrupt("first/newest markers must come in pairs")
	}
	if c.firstID == nil {
		if len(c.order) > 0 {
			return c.corrupt("records present but markers missing")
		}
		return nil
	}
	if _, ok := c.byID[*c.firstID]; !ok {
		return c.corrupt(fmt.Sprintf("%s %d is not a cached session", firstKey, *c.firstID))
	}
	if _, ok := c.byID[*c.newestID]; !ok {
		return c.corrupt(fmt.Sprintf("%s %d is not a cached session", newestKey, *c.newestID))
	}
	return nil
}

func (c *Cache) corrupt(reason string) error {
	return &application.CorruptCacheError{Path: c.path, Reason: reason}
}

func parseMarker(raw json.RawMessage) (int, error) {
	var id int
	if err := json.Unmarshal(raw, &id); err != nil {
		return 0, fmt.Errorf("not an integer")
	}
	if id <= 0 {
		return 0, fmt.Errorf("not a positive session id")
	}
	return id, nil
}

// Contains reports whether the id is cached.
func (c *Cache) Contains(id int) bool {
	_, ok := c.byID[id]
	return ok
}

// Get returns the cached session for id.
func (c *Cache) Get(id int) (domain.Session, error) {
	session, ok := c.byID[id]
	if !ok {
		return domain.Session{}, fmt.Errorf("session %d: %w", id, application.ErrNotFound)
	}
	return session, nil
}

// Insert adds a new session and synchronously persists the whole cache.
// The newest marker always moves to the inserted id; the first marker is
// set only by the first insert ever.
func (c *Cache) Insert(session domain.Session) error {
	if session.ID <= 0 {
		return &application.ValidationError{
			Field:   "id",
			Message: fmt.Sprintf("session id must be positive, got %d", session.ID),
		}
	}
	if _, dup := c.byID[session.ID]; dup {
		return &application.DuplicateSessionError{ID: session.ID}
	}

	prevNewest := c.newestID
	id := session.ID
	c.order = append(c.order, id)
	c.byID[id] = session
	c.newestID = &id
	if c.firstID == nil {
		c.firstID = &id
	}

	if err := c.persist(); err != nil {
		// Roll back so memory keeps matching the file.
		c.order = c.order[:len(c.order)-1]
		delete(c.byID, id)
		c.newestID = prevNewest
		if prevNewest == nil {
			c.firstID = nil
		}
		return fmt.Errorf("failed to persist cache: %w", err)
	}
	return nil
}

// First returns the first session ever inserted into this cache.
func (c *Cache) First() (domain.Session, bool) {
	if c.firstID == nil {
		return domain.Session{}, false
	}
	return c.byID[*c.firstID], true
}

// Newest returns the most recently inserted session.
func (c *Cache) Newest() (domain.Session, bool) {
	if c.newestID == nil {
		return domain.Session{}, false
	}
	return c.byID[*c.newestID], true
}

// Size returns the number of cached sessions.
func (c *Cache) Size() int {
	return len(c.order)
}

// Sessions returns all cached sessions in insertion order.
func (c *Cache) Sessions() []domain.Session {
	sessions := make([]domain.Session, 0, len(c.order))
	for _, id := range c.order {
		sessions = append(sessions, c.byID[id])
	}
	return sessions
}

// Path returns the location of the backing file.
func (c *Cache) Path() string {
	return c.path
}

// persist rewrites the backing file from the in-memory state. The write
// goes to a temp file first and is renamed into place.
func (c *Cache) persist() error {
	records := orderedmap.New[string, json.RawMessage]()
	for _, id := range c.order {
		records.Set(strconv.Itoa(id), json.RawMessage(c.byID[id].Raw))
	}

	data, err := json.Marshal(cacheFile{
		First:   c.firstID,
		Newest:  c.newestID,
		Records: records,
	})
	if err != nil {
		return fmt.Errorf("failed to encode cache: %w", err)
	}

	if dir := filepath.Dir(c.path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create cache directory: %w", err)
		}
	}
	if err := atomic.WriteFile(c.path, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("failed to write cache file: %w", err)
	}
	return nil
}
