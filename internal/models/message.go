package models

import "time"

// Message is a single parsed chat message. Content may span multiple
// physical lines; everything else is derived from the header line.
type Message struct {
	Date      string    `json:"date"`      // original date token, e.g. "10/3/25"
	Time      string    `json:"time"`      // original time token, e.g. "9:41 PM"
	Sender    string    `json:"sender"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"` // marshals as RFC 3339
	Hour      int       `json:"hour"`      // 0-23, local to the export
	MonthYear string    `json:"monthYear"` // "Oct 2025" grouping key
}

// Participant is a chat member derived from the message sequence.
type Participant struct {
	Name         string `json:"name"`
	MessageCount int    `json:"messageCount"`
	Color        string `json:"color"` // display color, assigned first-seen
}

// LineError records a header line whose date/time tokens did not resolve
// to a valid instant. The message is dropped; parsing continues.
type LineError struct {
	Line   int    `json:"line"`
	Reason string `json:"reason"`
}
