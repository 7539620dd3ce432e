// Package sessions partitions a chronological message sequence into
// conversational episodes separated by long inactivity gaps.
package sessions

import (
	"time"

	"github.com/kdelaney/ghostline/internal/models"
)

// DefaultDeadGapMinutes is the inactivity threshold beyond which two
// consecutive messages belong to different conversations.
const DefaultDeadGapMinutes = 8 * 60

// Session is a contiguous run of messages with no internal gap exceeding
// the dead-gap threshold.
type Session struct {
	ID                  int       `json:"sessionId"`
	StartIndex          int       `json:"startIndex"`
	EndIndex            int       `json:"endIndex"`
	Starter             string    `json:"starter"`
	StartedAt           time.Time `json:"startedAt"`
	MonthYear           string    `json:"monthYear"`
	PrecedingGapMinutes *float64  `json:"precedingGapMinutes"` // nil for the first session
}

// Build walks a chronologically ordered message sequence and closes a
// session whenever the gap to the next message strictly exceeds
// deadGapMinutes. The returned mapping gives the owning session ID for
// every message index; sessions exactly partition [0, len(msgs)).
func Build(msgs []models.Message, deadGapMinutes float64) ([]Session, []int) {
	if len(msgs) == 0 {
		return nil, nil
	}

	threshold := time.Duration(deadGapMinutes * float64(time.Minute))
	messageToSession := make([]int, len(msgs))
	var out []Session

	id := 0
	start := 0
	for i := 1; i < len(msgs); i++ {
		gap := msgs[i].Timestamp.Sub(msgs[i-1].Timestamp)
		if gap > threshold {
			out = append(out, makeSession(msgs, id, start, i-1))
			id++
			start = i
		}
		messageToSession[i] = id
	}
	out = append(out, makeSession(msgs, id, start, len(msgs)-1))

	return out, messageToSession
}

func makeSession(msgs []models.Message, id, start, end int) Session {
	first := msgs[start]

	var preceding *float64
	if start > 0 {
		gap := first.Timestamp.Sub(msgs[start-1].Timestamp).Minutes()
		preceding = &gap
	}

	return Session{
		ID:                  id,
		StartIndex:          start,
		EndIndex:            end,
		Starter:             first.Sender,
		StartedAt:           first.Timestamp,
		MonthYear:           first.MonthYear,
		PrecedingGapMinutes: preceding,
	}
}

// StartsByMonth groups session counts by month and starter, for
// conversation-initiative statistics.
func StartsByMonth(sess []Session) map[string]map[string]int {
	byMonth := make(map[string]map[string]int)
	for _, s := range sess {
		if byMonth[s.MonthYear] == nil {
			byMonth[s.MonthYear] = make(map[string]int)
		}
		byMonth[s.MonthYear][s.Starter]++
	}
	return byMonth
}

// StartsBySender counts how many sessions each participant started.
func StartsBySender(sess []Session) map[string]int {
	bySender := make(map[string]int)
	for _, s := range sess {
		bySender[s.Starter]++
	}
	return bySender
}
