package domain

import "time"

// Worklog is a fully resolved create-worklog request.
type Worklog struct {
	Worker     string
	Date       time.Time
	TaskKey    string
	Duration   time.Duration
	Attributes []WorkAttribute
}

// JournalRecord is a worklog the tracker accepted, kept locally.
type JournalRecord struct {
	ID        string
	Worker    string
	Date      time.Time
	TaskKey   string
	Seconds   int64
	CreatedAt time.Time
}
