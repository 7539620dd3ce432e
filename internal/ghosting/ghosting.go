// Package ghosting estimates how likely it is that a participant is
// disengaging from the chat, by comparing a trailing 30-day window
// against the 30 days before it.
package ghosting

import (
	"math"
	"sort"
	"time"

	"github.com/kdelaney/ghostline/internal/models"
	"github.com/kdelaney/ghostline/internal/sessions"
)

const (
	windowDays     = 30
	maxResponseMin = 24 * 60
	maxGapMin      = 7 * 24 * 60
)

// Risk tiers for the overall score.
const (
	RiskLow    = "low"
	RiskMedium = "medium"
	RiskHigh   = "high"
)

// Factors holds the weighted sub-scores, each 0-100.
type Factors struct {
	FrequencyDrop        int `json:"frequencyDrop"`
	ResponseTimeIncrease int `json:"responseTimeIncrease"`
	GapIncrease          int `json:"gapIncrease"`
	StarterImbalance     int `json:"starterImbalance"` // two-party chats only
}

// RawData carries the comparison numbers behind each factor.
type RawData struct {
	RecentCount                int     `json:"recent30DaysCount"`
	PreviousCount              int     `json:"previous30DaysCount"`
	RecentAvgResponseMinutes   int     `json:"recentAvgResponseMinutes"`
	PreviousAvgResponseMinutes int     `json:"previousAvgResponseMinutes"`
	LongestGapRecentMinutes    int     `json:"longestGapRecentMinutes"`
	AvgGapHistoricalMinutes    int     `json:"avgGapHistoricalMinutes"`
	RecentStarterShare         float64 `json:"recentStarterShare"`
	PreviousStarterShare       float64 `json:"previousStarterShare"`
}

// Score is the disengagement estimate for one participant.
type Score struct {
	Participant string   `json:"participant"`
	Overall     int      `json:"overallScore"` // 0-100
	Factors     Factors  `json:"factors"`
	Risk        string   `json:"risk"`
	Insights    []string `json:"insights"`
	Raw         RawData  `json:"rawData"`
}

// Compute scores target against the other participants at the reference
// instant now. All pairwise factors only consider message pairs inside
// the same conversation session, so a reply after a dead gap never reads
// as a slow response.
//
// now is explicit to keep the computation pure; callers pass the wall
// clock or a fixed instant for reproducible runs.
func Compute(msgs []models.Message, target string, others []string, now time.Time) Score {
	sorted := append([]models.Message(nil), msgs...)
	sort.Slice(sorted, func(a, b int) bool {
		return sorted[a].Timestamp.Before(sorted[b].Timestamp)
	})

	sess, toSession := sessions.Build(sorted, sessions.DefaultDeadGapMinutes)

	recentFrom := now.AddDate(0, 0, -windowDays)
	previousFrom := now.AddDate(0, 0, -2*windowDays)
	inRecent := func(ts time.Time) bool {
		return !ts.Before(recentFrom) && !ts.After(now)
	}
	inPrevious := func(ts time.Time) bool {
		return !ts.Before(previousFrom) && ts.Before(recentFrom)
	}

	otherSet := make(map[string]bool, len(others))
	for _, o := range others {
		otherSet[o] = true
	}

	// Factor 1: message frequency drop.
	recentCount, previousCount := 0, 0
	for _, m := range sorted {
		if m.Sender != target {
			continue
		}
		switch {
		case inRecent(m.Timestamp):
			recentCount++
		case inPrevious(m.Timestamp):
			previousCount++
		}
	}
	frequencyDrop := 0.0
	if previousCount > 0 {
		frequencyDrop = math.Max(0,
			float64(previousCount-recentCount)/float64(previousCount)*100)
	}

	// Factors 2 and 3: response latency and unanswered gaps, restricted
	// to within-session replies from the target to one of the others.
	var recentResponses, previousResponses, historicalGaps []float64
	longestRecentGap := 0.0

	for i := 1; i < len(sorted); i++ {
		prev, curr := sorted[i-1], sorted[i]
		if toSession[i] != toSession[i-1] {
			continue
		}
		if curr.Sender != target || !otherSet[prev.Sender] || prev.Sender == target {
			continue
		}

		gap := curr.Timestamp.Sub(prev.Timestamp).Minutes()

		if gap <= maxResponseMin {
			historicalGaps = append(historicalGaps, gap)
			switch {
			case inRecent(curr.Timestamp):
				recentResponses = append(recentResponses, gap)
			case inPrevious(curr.Timestamp):
				previousResponses = append(previousResponses, gap)
			}
		}

		if gap <= maxGapMin && inRecent(curr.Timestamp) && gap > longestRecentGap {
			longestRecentGap = gap
		}
	}

	recentAvg := mean(recentResponses)
	previousAvg := mean(previousResponses)
	responseTimeIncrease := 0.0
	if previousAvg > 0 {
		responseTimeIncrease = clamp((recentAvg-previousAvg)/previousAvg*100, 0, 100)
	}

	avgHistoricalGap := mean(historicalGaps)
	gapIncrease := 0.0
	if avgHistoricalGap > 0 {
		gapIncrease = clamp((longestRecentGap-avgHistoricalGap)/avgHistoricalGap*100, 0, 100)
	}

	// Factor 4: starter imbalance, only meaningful one-on-one.
	twoParty := len(others) == 1
	starterImbalance := 0.0
	recentShare, previousShare := 0.5, 0.5
	if twoParty {
		recentShare = starterShare(sess, target, inRecent)
		previousShare = starterShare(sess, target, inPrevious)
		starterImbalance = clamp(
			math.Max(0, previousShare-recentShare)*200*0.6+
				math.Max(0, 0.5-recentShare)*200*0.4,
			0, 100)
	}

	var overall float64
	if twoParty {
		overall = frequencyDrop*0.25 + responseTimeIncrease*0.30 +
			gapIncrease*0.30 + starterImbalance*0.15
	} else {
		overall = frequencyDrop*0.30 + responseTimeIncrease*0.35 + gapIncrease*0.35
	}
	overallScore := int(math.Round(overall))

	risk := RiskLow
	switch {
	case overallScore > 60:
		risk = RiskHigh
	case overallScore > 30:
		risk = RiskMedium
	}

	score := Score{
		Participant: target,
		Overall:     overallScore,
		Factors: Factors{
			FrequencyDrop:        int(math.Round(frequencyDrop)),
			ResponseTimeIncrease: int(math.Round(responseTimeIncrease)),
			GapIncrease:          int(math.Round(gapIncrease)),
			StarterImbalance:     int(math.Round(starterImbalance)),
		},
		Risk: risk,
		Raw: RawData{
			RecentCount:                recentCount,
			PreviousCount:              previousCount,
			RecentAvgResponseMinutes:   int(math.Round(recentAvg)),
			PreviousAvgResponseMinutes: int(math.Round(previousAvg)),
			LongestGapRecentMinutes:    int(math.Round(longestRecentGap)),
			AvgGapHistoricalMinutes:    int(math.Round(avgHistoricalGap)),
			RecentStarterShare:         recentShare,
			PreviousStarterShare:       previousShare,
		},
	}
	score.Insights = buildInsights(insightInputs{
		frequencyDrop:        frequencyDrop,
		responseTimeIncrease: responseTimeIncrease,
		gapIncrease:          gapIncrease,
		starterImbalance:     starterImbalance,
		recentCount:          recentCount,
		recentAvg:            recentAvg,
		previousAvg:          previousAvg,
		longestGap:           longestRecentGap,
		avgGap:               avgHistoricalGap,
		recentShare:          recentShare,
		previousShare:        previousShare,
		twoParty:             twoParty,
	})
	return score
}

// ComputeAll scores every participant against the rest of the chat.
func ComputeAll(msgs []models.Message, participants []string, now time.Time) []Score {
	scores := make([]Score, len(participants))
	for i, p := range participants {
		others := make([]string, 0, len(participants)-1)
		for _, o := range participants {
			if o != p {
				others = append(others, o)
			}
		}
		scores[i] = Compute(msgs, p, others, now)
	}
	return scores
}

// starterShare returns the fraction of in-window sessions started by
// target, or 0.5 when the window contains no sessions.
func starterShare(sess []sessions.Session, target string, inWindow func(time.Time) bool) float64 {
	total, started := 0, 0
	for _, s := range sess {
		if !inWindow(s.StartedAt) {
			continue
		}
		total++
		if s.Starter == target {
			started++
		}
	}
	if total == 0 {
		return 0.5
	}
	return float64(started) / float64(total)
}

func mean(vals []float64) float64 {
	if len(vals) == 0 {
		return 0
	}
	var sum float64
	for _, v := range vals {
		sum += v
	}
	return sum / float64(len(vals))
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(hi, math.Max(lo, v))
}
