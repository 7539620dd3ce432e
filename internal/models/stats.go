package models

// MonthStats holds all per-participant aggregates for one calendar month.
type MonthStats struct {
	MonthYear                string                       `json:"monthYear"`
	MessageFrequency         map[string]int               `json:"messageFrequency"`
	AverageResponseTime      map[string]float64           `json:"averageResponseTime"` // minutes
	ActiveHours              map[int]int                  `json:"activeHours"`
	ActiveHoursByParticipant map[string]map[int]int       `json:"activeHoursByParticipant"`
	LongestUnanswered        map[string]float64           `json:"longestTimeWithoutAnswering"` // minutes
	LongestGapContext        map[string]LongestGapContext `json:"longestGapContext"`
}

// LongestGapContext is the conversation snippet captured around a
// participant's longest unanswered gap within a month.
type LongestGapContext struct {
	GapMinutes          float64   `json:"gapMinutes"`
	LastMessageReceived Message   `json:"lastMessageReceived"`
	FirstResponseSent   Message   `json:"firstResponseSent"`
	ConversationBefore  []Message `json:"conversationBefore"` // up to 3 messages before the gap
	ConversationAfter   []Message `json:"conversationAfter"`  // response plus up to 3 following
}

// Totals aggregates the same metric families as MonthStats across the
// whole message sequence, for summary display.
type Totals struct {
	Frequency                map[string]int         `json:"frequency"`
	ActiveHours              map[int]int            `json:"activeHours"`
	ActiveHoursByParticipant map[string]map[int]int `json:"activeHoursByParticipant"`
	AverageResponseTime      map[string]float64     `json:"averageResponseTime"` // minutes
	LongestUnanswered        map[string]float64     `json:"longestTimeWithoutAnswering"`
}
