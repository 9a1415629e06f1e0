package domain

import (
	"encoding/json"
	"fmt"

	"github.com/buger/jsonparser"
)

// Session is one unit of remote sleep data: a unique integer identifier
// plus the payload exactly as the service returned it. The payload is
// treated as opaque everywhere except the tabular projection; field access
// is optimistic and never enforces a schema.
type Session struct {
	ID  int
	Raw []byte // original JSON object from the service
}

// ParseSession builds a Session from a raw JSON response body.
// The body must be a well-formed JSON object carrying an integer "id"
// member: the payload is persisted verbatim, so a lenient parse here
// would let a truncated body poison the cache file.
func ParseSession(raw []byte) (Session, error) {
	if !json.Valid(raw) {
		return Session{}, fmt.Errorf("session payload is not valid JSON")
	}
	id, err := jsonparser.GetInt(raw, "id")
	if err != nil {
		return Session{}, fmt.Errorf("session payload has no integer id: %w", err)
	}

	body := make([]byte, len(raw))
	copy(body, raw)

	return Session{ID: int(id), Raw: body}, nil
}

// StringField returns the named top-level payload field as a string.
// The second return is false when the field is absent or not a string.
func (s Session) StringField(name string) (string, bool) {
	value, err := jsonparser.GetString(s.Raw, name)
	if err != nil {
		return "", false
	}
	return value, true
}

// FloatField returns the named top-level payload field as a float.
// The second return is false when the field is absent or not numeric.
func (s Session) FloatField(name string) (float64, bool) {
	value, err := jsonparser.GetFloat(s.Raw, name)
	if err != nil {
		return 0, false
	}
	return value, true
}

// IntField returns the named top-level payload field as an integer.
// The second return is false when the field is absent or not numeric.
func (s Session) IntField(name string) (int64, bool) {
	value, err := jsonparser.GetInt(s.Raw, name)
	if err != nil {
		return 0, false
	}
	return value, true
}
