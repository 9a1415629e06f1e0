package domain

import "time"

// Direction selects how a remote session is addressed: by its exact id, or
// relative to a known id.
type Direction int

const (
	DirectionExact Direction = iota
	DirectionNext
	DirectionPrevious
)

func (d Direction) String() string {
	switch d {
	case DirectionExact:
		return "exact"
	case DirectionNext:
		return "next"
	case DirectionPrevious:
		return "previous"
	default:
		return "unknown"
	}
}

// WalkBounds are the externally supplied boundary markers of a walk: the
// oldest and newest session ids known to the remote service at query time.
// They are fetched fresh each run and never cached.
type WalkBounds struct {
	OldestID int
	NewestID int
}

// Empty reports whether the remote history had no sessions at all.
func (b WalkBounds) Empty() bool {
	return b.OldestID == 0 && b.NewestID == 0
}

// Normalize orders the bounds so that OldestID <= NewestID. Session ids
// ascend chronologically, so whichever extracted id is smaller is the
// chronologically oldest regardless of the order the service listed them.
func (b WalkBounds) Normalize() WalkBounds {
	if b.OldestID > b.NewestID {
		return WalkBounds{OldestID: b.NewestID, NewestID: b.OldestID}
	}
	return b
}

// WalkStats summarizes a completed walk.
type WalkStats struct {
	Fetched       int // sessions retrieved from the remote service
	AlreadyCached int // sessions the cache already held at start
	Duration      time.Duration
}

// Total returns the cache population after the walk.
func (s WalkStats) Total() int {
	return s.Fetched + s.AlreadyCached
}
