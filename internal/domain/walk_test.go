package domain

import "testing"

func TestWalkBoundsNormalize(t *testing.T) {
	tests := []struct {
		name       string
		bounds     WalkBounds
		wantOldest int
		wantNewest int
	}{
		{
			name:       "already ordered",
			bounds:     WalkBounds{OldestID: 10, NewestID: 12},
			wantOldest: 10,
			wantNewest: 12,
		},
		{
			name:       "swapped",
			bounds:     WalkBounds{OldestID: 12, NewestID: 10},
			wantOldest: 10,
			wantNewest: 12,
		},
		{
			name:       "single session",
			bounds:     WalkBounds{OldestID: 7, NewestID: 7},
			wantOldest: 7,
			wantNewest: 7,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.bounds.Normalize()
			if got.OldestID != tt.wantOldest || got.NewestID != tt.wantNewest {
				t.Errorf("expected {%d %d}, got {%d %d}",
					tt.wantOldest, tt.wantNewest, got.OldestID, got.NewestID)
			}
		})
	}
}

func TestWalkBoundsEmpty(t *testing.T) {
	if !(WalkBounds{}).Empty() {
		t.Error("zero bounds should be empty")
	}
	if (WalkBounds{OldestID: 1, NewestID: 1}).Empty() {
		t.Error("populated bounds should not be empty")
	}
}

func TestWalkStatsTotal(t *testing.T) {
	stats := WalkStats{Fetched: 3, AlreadyCached: 4}
	if stats.Total() != 7 {
		t.Errorf("expected total 7, got %d", stats.Total())
	}
}
