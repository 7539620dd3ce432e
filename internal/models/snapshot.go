package models

import "time"

// Snapshot is a persisted analysis run. The full Analytics object is
// stored as JSON in Payload; the remaining columns are listing metadata.
type Snapshot struct {
	ID            uint   `gorm:"primaryKey;autoIncrement"`
	Label         string `gorm:"size:128"`
	SourceFile    string `gorm:"size:512"`
	IncludeMedia  bool
	TotalMessages int
	MediaMessages int
	Participants  int
	RangeStart    time.Time
	RangeEnd      time.Time
	Payload       string `gorm:"type:text"`
	CreatedAt     time.Time
}
