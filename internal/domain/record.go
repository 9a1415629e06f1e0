package domain

import (
	"strings"
	"time"
)

// Payload timestamp layouts seen in SleepSecure responses and exports.
// The export writes local wall-clock times without a zone; newer endpoints
// return RFC 3339.
var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
}

// SleepRecord is the flattened tabular projection of one session. Every
// field except ID is optional: the service sometimes emits a placeholder
// string (for example "-") instead of omitting a value, and both cases
// flatten to nil.
type SleepRecord struct {
	ID         int
	Start      *time.Time
	Stop       *time.Time
	TimeInBed  *time.Duration // Stop - Start, when both are present
	Quality    *float64       // sleep_quality, 0..1
	Steps      *int
	WakeupMood *string // mood_wakeup
}

// FlattenSession projects a session payload onto a SleepRecord. It never
// fails: fields that are missing, malformed, or placeholders stay nil so
// that one cached session always yields exactly one row.
func FlattenSession(s Session) SleepRecord {
	rec := SleepRecord{ID: s.ID}

	rec.Start = timeField(s, "start")
	rec.Stop = timeField(s, "stop")
	if rec.Start != nil && rec.Stop != nil {
		d := rec.Stop.Sub(*rec.Start)
		rec.TimeInBed = &d
	}

	if quality, ok := s.FloatField("sleep_quality"); ok {
		rec.Quality = &quality
	}
	if steps, ok := s.IntField("steps"); ok {
		n := int(steps)
		rec.Steps = &n
	}
	if mood, ok := s.StringField("mood_wakeup"); ok && !isPlaceholder(mood) {
		rec.WakeupMood = &mood
	}

	return rec
}

// FlattenSessions projects every session in order, one row per session.
func FlattenSessions(sessions []Session) []SleepRecord {
	records := make([]SleepRecord, 0, len(sessions))
	for _, s := range sessions {
		records = append(records, FlattenSession(s))
	}
	return records
}

func timeField(s Session, name string) *time.Time {
	value, ok := s.StringField(name)
	if !ok || isPlaceholder(value) {
		return nil
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return &t
		}
	}
	return nil
}

// isPlaceholder reports whether a string value is one of the stand-ins the
// service uses for "no data" instead of omitting the field.
func isPlaceholder(value string) bool {
	switch strings.TrimSpace(value) {
	case "", "-", "--", "n/a", "N/A":
		return true
	}
	return false
}
