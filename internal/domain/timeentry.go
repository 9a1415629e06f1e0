package domain

import "time"

// TimeEntry is one flattened time-tracking entry from the Toggl detailed
// report.
type TimeEntry struct {
	ID          int64
	Description string
	Project     string
	Start       time.Time
	Stop        time.Time
	Duration    time.Duration
	Tags        []string
}

// ProjectTime is the total tracked time for one project.
type ProjectTime struct {
	Project string
	Total   time.Duration
}

// TimeSummary is the aggregated view of a reporting period.
type TimeSummary struct {
	Total      time.Duration
	ByProject  []ProjectTime
	EntryCount int
}
