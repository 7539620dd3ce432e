package chatparse

import "github.com/kdelaney/ghostline/internal/models"

// palette is the fixed set of display colors, assigned to participants
// in first-seen order and cycled when exhausted.
var palette = []string{
	"#3b82f6", "#10b981", "#f59e0b", "#ef4444",
	"#8b5cf6", "#ec4899", "#06b6d4", "#84cc16",
}

// detectParticipants builds the participant list from the final message
// sequence, counting messages per sender.
func detectParticipants(msgs []models.Message) []models.Participant {
	counts := make(map[string]int)
	var order []string

	for _, m := range msgs {
		if _, seen := counts[m.Sender]; !seen {
			order = append(order, m.Sender)
		}
		counts[m.Sender]++
	}

	participants := make([]models.Participant, len(order))
	for i, name := range order {
		participants[i] = models.Participant{
			Name:         name,
			MessageCount: counts[name],
			Color:        palette[i%len(palette)],
		}
	}
	return participants
}
