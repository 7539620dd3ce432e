package models

import "time"

// DateRange is the span covered by a parsed chat.
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Analytics is the root aggregate produced by a parse run. Callers treat
// it as read-only; re-running the parse builds a fresh instance.
//
// Timestamps marshal as RFC 3339 strings, so a serialized Analytics
// round-trips through JSON (the snapshot store and --json export rely
// on this).
type Analytics struct {
	Participants  []Participant `json:"participants"`
	Messages      []Message     `json:"messages"`
	MonthStats    []MonthStats  `json:"monthYearStats"`
	DateRange     DateRange     `json:"dateRange"`
	TotalMessages int           `json:"totalMessages"`
	MediaMessages int           `json:"mediaMessagesCount"`
	LineErrors    []LineError   `json:"parseErrors,omitempty"`
}
