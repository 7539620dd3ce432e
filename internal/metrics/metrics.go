// Package metrics computes per-month, per-participant statistics over a
// parsed message sequence: volume, response latency, active hours, and
// the longest unanswered gaps with surrounding context.
package metrics

import (
	"sort"
	"time"

	"github.com/kdelaney/ghostline/internal/models"
)

const (
	maxResponseGap = 24 * time.Hour
	maxUnanswered  = 7 * 24 * 60 // minutes
)

// Aggregate computes one MonthStats per calendar month present in msgs,
// sorted chronologically by parsed month, not lexicographically.
//
// Frequency and active-hour counts include every retained message;
// response-time and longest-gap metrics only consider consecutive pairs
// from different senders within their thresholds. The asymmetry is
// deliberate: raw volume versus conversational responsiveness.
func Aggregate(msgs []models.Message) []models.MonthStats {
	frequency := make(map[string]map[string]int)
	responseTimes := make(map[string]map[string][]float64)
	activeHours := make(map[string]map[int]int)
	activeHoursBy := make(map[string]map[string]map[int]int)
	longestGaps := make(map[string]map[string]float64)
	gapContexts := make(map[string]map[string]models.LongestGapContext)

	for _, m := range msgs {
		if frequency[m.MonthYear] == nil {
			frequency[m.MonthYear] = make(map[string]int)
		}
		frequency[m.MonthYear][m.Sender]++

		if activeHours[m.MonthYear] == nil {
			activeHours[m.MonthYear] = make(map[int]int)
		}
		activeHours[m.MonthYear][m.Hour]++

		if activeHoursBy[m.MonthYear] == nil {
			activeHoursBy[m.MonthYear] = make(map[string]map[int]int)
		}
		if activeHoursBy[m.MonthYear][m.Sender] == nil {
			activeHoursBy[m.MonthYear][m.Sender] = make(map[int]int)
		}
		activeHoursBy[m.MonthYear][m.Sender][m.Hour]++
	}

	for i := 1; i < len(msgs); i++ {
		prev, curr := msgs[i-1], msgs[i]
		if prev.Sender == curr.Sender {
			continue
		}

		diff := curr.Timestamp.Sub(prev.Timestamp)

		// Response time: a reply within 24 hours.
		if diff > 0 && diff <= maxResponseGap {
			if responseTimes[curr.MonthYear] == nil {
				responseTimes[curr.MonthYear] = make(map[string][]float64)
			}
			responseTimes[curr.MonthYear][curr.Sender] = append(
				responseTimes[curr.MonthYear][curr.Sender], diff.Minutes())
		}

		// Longest unanswered gap: up to 7 days. Larger gaps are dead
		// conversations, not slow answers.
		gapMinutes := diff.Minutes()
		if gapMinutes > 0 && gapMinutes <= maxUnanswered {
			if longestGaps[curr.MonthYear] == nil {
				longestGaps[curr.MonthYear] = make(map[string]float64)
			}
			if gapContexts[curr.MonthYear] == nil {
				gapContexts[curr.MonthYear] = make(map[string]models.LongestGapContext)
			}
			if gapMinutes > longestGaps[curr.MonthYear][curr.Sender] {
				longestGaps[curr.MonthYear][curr.Sender] = gapMinutes
				gapContexts[curr.MonthYear][curr.Sender] = captureContext(msgs, i, gapMinutes)
			}
		}
	}

	months := make([]string, 0, len(frequency))
	for my := range frequency {
		months = append(months, my)
	}
	sort.Slice(months, func(a, b int) bool {
		return monthTime(months[a]).Before(monthTime(months[b]))
	})

	stats := make([]models.MonthStats, len(months))
	for i, my := range months {
		stats[i] = models.MonthStats{
			MonthYear:                my,
			MessageFrequency:         frequency[my],
			AverageResponseTime:      averages(responseTimes[my]),
			ActiveHours:              activeHours[my],
			ActiveHoursByParticipant: activeHoursBy[my],
			LongestUnanswered:        orEmpty(longestGaps[my]),
			LongestGapContext:        orEmptyContext(gapContexts[my]),
		}
	}
	return stats
}

// captureContext snapshots the conversation around the gap that ends at
// message index i: up to 3 messages before the gap, and the response
// plus up to 3 following.
func captureContext(msgs []models.Message, i int, gapMinutes float64) models.LongestGapContext {
	before := max(0, i-3)
	after := min(len(msgs), i+4)

	return models.LongestGapContext{
		GapMinutes:          gapMinutes,
		LastMessageReceived: msgs[i-1],
		FirstResponseSent:   msgs[i],
		ConversationBefore:  append([]models.Message(nil), msgs[before:i]...),
		ConversationAfter:   append([]models.Message(nil), msgs[i:after]...),
	}
}

// monthTime parses an "Oct 2025" bucket key back into a sortable time.
func monthTime(monthYear string) time.Time {
	t, err := time.Parse("Jan 2006", monthYear)
	if err != nil {
		return time.Time{}
	}
	return t
}

func averages(bySender map[string][]float64) map[string]float64 {
	out := make(map[string]float64)
	for sender, times := range bySender {
		if len(times) == 0 {
			continue
		}
		var sum float64
		for _, t := range times {
			sum += t
		}
		out[sender] = sum / float64(len(times))
	}
	return out
}

func orEmpty(m map[string]float64) map[string]float64 {
	if m == nil {
		return map[string]float64{}
	}
	return m
}

func orEmptyContext(m map[string]models.LongestGapContext) map[string]models.LongestGapContext {
	if m == nil {
		return map[string]models.LongestGapContext{}
	}
	return m
}
