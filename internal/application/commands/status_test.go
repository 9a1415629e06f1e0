package commands

import (
	"context"
	"testing"
	"time"
)

func TestStatusCommand_ExecuteEmptyCache(t *testing.T) {
	store := newFakeStore()
	cmd := NewStatusCommand(store)

	result, err := cmd.Execute(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Sessions != 0 {
		t.Errorf("expected 0 sessions, got %d", result.Sessions)
	}
	if result.Path != store.Path() {
		t.Errorf("expected path %q, got %q", store.Path(), result.Path)
	}
	if !contains(result.Message, "is empty") {
		t.Errorf("expected empty cache message, got %q", result.Message)
	}
}

func TestStatusCommand_ExecutePopulatedCache(t *testing.T) {
	store := newFakeStore(
		sleepSession(10, `{"id": 10, "start": "2026-08-01T23:10:00Z"}`),
		sleepSession(11, `{"id": 11, "start": "2026-08-02T22:55:00Z"}`),
		sleepSession(12, `{"id": 12, "start": "2026-08-03T23:30:00Z"}`),
	)
	cmd := NewStatusCommand(store)

	result, err := cmd.Execute(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Sessions != 3 {
		t.Errorf("expected 3 sessions, got %d", result.Sessions)
	}
	if result.FirstID != 10 {
		t.Errorf("expected first id 10, got %d", result.FirstID)
	}
	if result.NewestID != 12 {
		t.Errorf("expected newest id 12, got %d", result.NewestID)
	}

	wantFirst := time.Date(2026, 8, 1, 23, 10, 0, 0, time.UTC)
	if result.FirstStart == nil || !result.FirstStart.Equal(wantFirst) {
		t.Errorf("expected first start %v, got %v", wantFirst, result.FirstStart)
	}
	wantNewest := time.Date(2026, 8, 3, 23, 30, 0, 0, time.UTC)
	if result.NewestStart == nil || !result.NewestStart.Equal(wantNewest) {
		t.Errorf("expected newest start %v, got %v", wantNewest, result.NewestStart)
	}

	if !contains(result.Message, "3 sessions cached") {
		t.Errorf("expected session count in message, got %q", result.Message)
	}
	if !contains(result.Message, "ids 10..12") {
		t.Errorf("expected id range in message, got %q", result.Message)
	}
}

func TestStatusCommand_ExecuteSessionWithoutStart(t *testing.T) {
	store := newFakeStore(sleepSession(5, `{"id": 5}`))
	cmd := NewStatusCommand(store)

	result, err := cmd.Execute(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.FirstStart != nil {
		t.Errorf("expected nil first start, got %v", result.FirstStart)
	}
	if result.NewestStart != nil {
		t.Errorf("expected nil newest start, got %v", result.NewestStart)
	}
}
