package domain

import (
	"testing"
	"time"
)

func TestFlattenSession(t *testing.T) {
	tests := []struct {
		name        string
		raw         string
		wantStart   string
		wantStop    string
		wantInBed   time.Duration
		wantQuality *float64
		wantSteps   *int
		wantMood    *string
	}{
		{
			name: "complete payload",
			raw: `{"id": 1, "start": "2018-01-02 23:11:32", "stop": "2018-01-03 07:01:12",` +
				` "sleep_quality": 0.81, "steps": 9120, "mood_wakeup": "good"}`,
			wantStart:   "2018-01-02 23:11:32",
			wantStop:    "2018-01-03 07:01:12",
			wantInBed:   7*time.Hour + 49*time.Minute + 40*time.Second,
			wantQuality: floatPtr(0.81),
			wantSteps:   intPtr(9120),
			wantMood:    strPtr("good"),
		},
		{
			name:      "rfc3339 timestamps",
			raw:       `{"id": 2, "start": "2020-05-01T22:30:00Z", "stop": "2020-05-02T06:30:00Z"}`,
			wantStart: "2020-05-01 22:30:00",
			wantStop:  "2020-05-02 06:30:00",
			wantInBed: 8 * time.Hour,
		},
		{
			name: "placeholder mood and missing steps",
			raw:  `{"id": 3, "start": "2018-01-02 23:11:32", "stop": "2018-01-03 07:01:12", "mood_wakeup": "-"}`,
			wantStart: "2018-01-02 23:11:32",
			wantStop:  "2018-01-03 07:01:12",
			wantInBed: 7*time.Hour + 49*time.Minute + 40*time.Second,
		},
		{
			name: "bare id",
			raw:  `{"id": 4}`,
		},
		{
			name:      "unparsable stop",
			raw:       `{"id": 5, "start": "2018-01-02 23:11:32", "stop": "yesterday"}`,
			wantStart: "2018-01-02 23:11:32",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := ParseSession([]byte(tt.raw))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			rec := FlattenSession(s)
			if rec.ID != s.ID {
				t.Errorf("expected id %d, got %d", s.ID, rec.ID)
			}

			checkTime(t, "Start", rec.Start, tt.wantStart)
			checkTime(t, "Stop", rec.Stop, tt.wantStop)

			if tt.wantInBed == 0 {
				if rec.TimeInBed != nil {
					t.Errorf("expected nil TimeInBed, got %v", *rec.TimeInBed)
				}
			} else if rec.TimeInBed == nil || *rec.TimeInBed != tt.wantInBed {
				t.Errorf("expected TimeInBed %v, got %v", tt.wantInBed, rec.TimeInBed)
			}

			if !equalPtr(rec.Quality, tt.wantQuality) {
				t.Errorf("expected Quality %v, got %v", tt.wantQuality, rec.Quality)
			}
			if !equalPtr(rec.Steps, tt.wantSteps) {
				t.Errorf("expected Steps %v, got %v", tt.wantSteps, rec.Steps)
			}
			if !equalPtr(rec.WakeupMood, tt.wantMood) {
				t.Errorf("expected WakeupMood %v, got %v", tt.wantMood, rec.WakeupMood)
			}
		})
	}
}

func TestFlattenSessionsKeepsOrderAndCount(t *testing.T) {
	sessions := []Session{
		{ID: 12, Raw: []byte(`{"id": 12}`)},
		{ID: 10, Raw: []byte(`{"id": 10}`)},
		{ID: 11, Raw: []byte(`{"id": 11}`)},
	}

	records := FlattenSessions(sessions)
	if len(records) != len(sessions) {
		t.Fatalf("expected %d records, got %d", len(sessions), len(records))
	}
	for i, rec := range records {
		if rec.ID != sessions[i].ID {
			t.Errorf("record %d: expected id %d, got %d", i, sessions[i].ID, rec.ID)
		}
	}
}

func checkTime(t *testing.T, field string, got *time.Time, want string) {
	t.Helper()
	if want == "" {
		if got != nil {
			t.Errorf("expected nil %s, got %v", field, got)
		}
		return
	}
	if got == nil {
		t.Errorf("expected %s %s, got nil", field, want)
		return
	}
	if got.Format("2006-01-02 15:04:05") != want {
		t.Errorf("expected %s %s, got %v", field, want, got)
	}
}

func equalPtr[T comparable](got, want *T) bool {
	if got == nil || want == nil {
		return got == nil && want == nil
	}
	return *got == *want
}

func floatPtr(v float64) *float64 { return &v }
func intPtr(v int) *int           { return &v }
func strPtr(v string) *string     { return &v }
