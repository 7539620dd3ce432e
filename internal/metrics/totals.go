package metrics

import (
	"github.com/kdelaney/ghostline/internal/models"
)

// Totals aggregates the same metric families as Aggregate across the
// entire message sequence, without monthly bucketing. Adjacency and
// threshold rules are identical.
func Totals(msgs []models.Message) models.Totals {
	t := models.Totals{
		Frequency:                make(map[string]int),
		ActiveHours:              make(map[int]int),
		ActiveHoursByParticipant: make(map[string]map[int]int),
		AverageResponseTime:      make(map[string]float64),
		LongestUnanswered:        make(map[string]float64),
	}

	for _, m := range msgs {
		t.Frequency[m.Sender]++
		t.ActiveHours[m.Hour]++
		if t.ActiveHoursByParticipant[m.Sender] == nil {
			t.ActiveHoursByParticipant[m.Sender] = make(map[int]int)
		}
		t.ActiveHoursByParticipant[m.Sender][m.Hour]++
	}

	responseTimes := make(map[string][]float64)
	for i := 1; i < len(msgs); i++ {
		prev, curr := msgs[i-1], msgs[i]
		if prev.Sender == curr.Sender {
			continue
		}

		diff := curr.Timestamp.Sub(prev.Timestamp)
		if diff > 0 && diff <= maxResponseGap {
			responseTimes[curr.Sender] = append(responseTimes[curr.Sender], diff.Minutes())
		}

		gapMinutes := diff.Minutes()
		if gapMinutes > 0 && gapMinutes <= maxUnanswered && gapMinutes > t.LongestUnanswered[curr.Sender] {
			t.LongestUnanswered[curr.Sender] = gapMinutes
		}
	}
	t.AverageResponseTime = averages(responseTimes)

	return t
}
