package domain

import (
	"testing"
)

func TestParseSession(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantID  int
		wantErr bool
	}{
		{
			name:   "valid session",
			raw:    `{"id": 1024, "start": "2018-01-02 23:11:32"}`,
			wantID: 1024,
		},
		{
			name:   "id only",
			raw:    `{"id": 7}`,
			wantID: 7,
		},
		{
			name:    "missing id",
			raw:     `{"start": "2018-01-02 23:11:32"}`,
			wantErr: true,
		},
		{
			name:    "non-integer id",
			raw:     `{"id": "abc"}`,
			wantErr: true,
		},
		{
			name:    "empty body",
			raw:     ``,
			wantErr: true,
		},
		{
			name:    "html error page",
			raw:     `<html><body>login required</body></html>`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := ParseSession([]byte(tt.raw))

			if tt.wantErr {
				if err == nil {
					t.Errorf("expected error, got session %d", s.ID)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if s.ID != tt.wantID {
				t.Errorf("expected id %d, got %d", tt.wantID, s.ID)
			}
			if string(s.Raw) != tt.raw {
				t.Errorf("payload not preserved: %q", s.Raw)
			}
		})
	}
}

func TestParseSessionCopiesPayload(t *testing.T) {
	raw := []byte(`{"id": 3}`)
	s, err := ParseSession(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	raw[0] = 'x'
	if string(s.Raw) != `{"id": 3}` {
		t.Errorf("session payload aliases caller buffer: %q", s.Raw)
	}
}

func TestSessionFieldAccess(t *testing.T) {
	s := Session{
		ID:  9,
		Raw: []byte(`{"id": 9, "sleep_quality": 0.73, "steps": 8042, "mood_wakeup": "good"}`),
	}

	if v, ok := s.FloatField("sleep_quality"); !ok || v != 0.73 {
		t.Errorf("FloatField(sleep_quality) = %v, %v", v, ok)
	}
	if v, ok := s.IntField("steps"); !ok || v != 8042 {
		t.Errorf("IntField(steps) = %v, %v", v, ok)
	}
	if v, ok := s.StringField("mood_wakeup"); !ok || v != "good" {
		t.Errorf("StringField(mood_wakeup) = %v, %v", v, ok)
	}

	if _, ok := s.FloatField("absent"); ok {
		t.Error("FloatField reported a value for an absent field")
	}
	if _, ok := s.StringField("steps"); ok {
		t.Error("StringField reported a value for a numeric field")
	}
}
