package ghosting

import (
	"fmt"
	"math"
)

type insightInputs struct {
	frequencyDrop        float64
	responseTimeIncrease float64
	gapIncrease          float64
	starterImbalance     float64
	recentCount          int
	recentAvg            float64
	previousAvg          float64
	longestGap           float64
	avgGap               float64
	recentShare          float64
	previousShare        float64
	twoParty             bool
}

// buildInsights renders the factor values as ordered human-readable
// observations, strongest wording first within each family.
func buildInsights(in insightInputs) []string {
	var insights []string

	switch {
	case in.frequencyDrop > 50:
		insights = append(insights, fmt.Sprintf(
			"Message frequency dropped significantly: %d%% fewer messages in the last 30 days",
			round(in.frequencyDrop)))
	case in.frequencyDrop > 30:
		insights = append(insights, fmt.Sprintf(
			"Message frequency declining: %d%% fewer messages recently",
			round(in.frequencyDrop)))
	case in.frequencyDrop > 0:
		insights = append(insights, fmt.Sprintf(
			"Slight decrease in message frequency (%d%%)", round(in.frequencyDrop)))
	default:
		insights = append(insights, "Message frequency stable or increasing")
	}

	switch {
	case in.responseTimeIncrease > 100:
		insights = append(insights, fmt.Sprintf(
			"Response times more than doubled: now averaging %s (was %s)",
			formatMinutes(in.recentAvg), formatMinutes(in.previousAvg)))
	case in.responseTimeIncrease > 50:
		insights = append(insights, fmt.Sprintf(
			"Response times significantly slower: %d%% increase", round(in.responseTimeIncrease)))
	case in.responseTimeIncrease > 20:
		insights = append(insights, fmt.Sprintf(
			"Response times moderately slower: %d%% increase", round(in.responseTimeIncrease)))
	default:
		insights = append(insights, "Response times relatively stable")
	}

	switch {
	case in.gapIncrease > 200:
		insights = append(insights, fmt.Sprintf(
			"Longest recent gap is %s (avg: %s), a major delay",
			formatMinutes(in.longestGap), formatMinutes(in.avgGap)))
	case in.gapIncrease > 100:
		insights = append(insights, fmt.Sprintf(
			"Recent gaps much longer than usual: %s vs typical %s",
			formatMinutes(in.longestGap), formatMinutes(in.avgGap)))
	case in.gapIncrease > 50:
		insights = append(insights, fmt.Sprintf(
			"Conversation gaps increasing: longest gap %s", formatMinutes(in.longestGap)))
	}

	if in.recentCount < 5 {
		insights = append(insights,
			"Very few messages in last 30 days, limited data for analysis")
	}

	if !in.twoParty {
		insights = append(insights,
			"Conversation-starter analysis is not available for group chats")
		return insights
	}

	switch {
	case in.starterImbalance > 60:
		insights = append(insights, fmt.Sprintf(
			"Rarely starts conversations anymore: started %d%% of recent conversations, down from %d%%",
			round(in.recentShare*100), round(in.previousShare*100)))
	case in.starterImbalance > 30:
		insights = append(insights, fmt.Sprintf(
			"Starting fewer conversations: %d%% of recent conversations vs %d%% before",
			round(in.recentShare*100), round(in.previousShare*100)))
	default:
		insights = append(insights, "Conversation starting is roughly balanced")
	}

	return insights
}

func round(v float64) int {
	return int(math.Round(v))
}

// formatMinutes renders a minute count at a human scale.
func formatMinutes(minutes float64) string {
	switch {
	case minutes < 60:
		return fmt.Sprintf("%d min", round(minutes))
	case minutes < 24*60:
		hours := round(minutes / 60)
		return fmt.Sprintf("%d hour%s", hours, plural(hours))
	default:
		days := round(minutes / (24 * 60))
		return fmt.Sprintf("%d day%s", days, plural(days))
	}
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
