package ghosting

import (
	"strings"
	"testing"
)

func hasInsight(insights []string, substr string) bool {
	for _, in := range insights {
		if strings.Contains(in, substr) {
			return true
		}
	}
	return false
}

func TestBuildInsights_StableBaseline(t *testing.T) {
	got := buildInsights(insightInputs{
		recentCount: 20,
		twoParty:    true,
	})

	if !hasInsight(got, "Message frequency stable or increasing") {
		t.Errorf("insights = %v, want stable frequency line", got)
	}
	if !hasInsight(got, "Response times relatively stable") {
		t.Errorf("insights = %v, want stable response line", got)
	}
	if !hasInsight(got, "roughly balanced") {
		t.Errorf("insights = %v, want balanced starter line", got)
	}
	if hasInsight(got, "limited data") {
		t.Errorf("insights = %v, no low-data warning expected with 20 recent messages", got)
	}
}

func TestBuildInsights_FrequencyBands(t *testing.T) {
	tests := []struct {
		name string
		drop float64
		want string
	}{
		{"significant", 72, "dropped significantly: 72% fewer"},
		{"declining", 40, "declining: 40% fewer"},
		{"slight", 12, "Slight decrease in message frequency (12%)"},
		{"stable", 0, "stable or increasing"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := buildInsights(insightInputs{
				frequencyDrop: tt.drop,
				recentCount:   20,
				twoParty:      true,
			})
			if !hasInsight(got, tt.want) {
				t.Errorf("insights = %v, want line containing %q", got, tt.want)
			}
		})
	}
}

func TestBuildInsights_ResponseDoubled(t *testing.T) {
	got := buildInsights(insightInputs{
		responseTimeIncrease: 150,
		recentAvg:            90,
		previousAvg:          30,
		recentCount:          20,
		twoParty:             true,
	})
	if !hasInsight(got, "more than doubled: now averaging 2 hours (was 30 min)") {
		t.Errorf("insights = %v, want doubled-response line with formatted durations", got)
	}
}

func TestBuildInsights_GapBands(t *testing.T) {
	got := buildInsights(insightInputs{
		gapIncrease: 250,
		longestGap:  3 * 24 * 60,
		avgGap:      45,
		recentCount: 20,
		twoParty:    true,
	})
	if !hasInsight(got, "Longest recent gap is 3 days (avg: 45 min)") {
		t.Errorf("insights = %v, want major-gap line", got)
	}

	got = buildInsights(insightInputs{
		gapIncrease: 30,
		recentCount: 20,
		twoParty:    true,
	})
	if hasInsight(got, "gap") {
		t.Errorf("insights = %v, no gap line expected below the 50 threshold", got)
	}
}

func TestBuildInsights_LowData(t *testing.T) {
	got := buildInsights(insightInputs{
		recentCount: 3,
		twoParty:    true,
	})
	if !hasInsight(got, "Very few messages in last 30 days") {
		t.Errorf("insights = %v, want low-data warning", got)
	}
}

func TestBuildInsights_StarterBands(t *testing.T) {
	got := buildInsights(insightInputs{
		starterImbalance: 70,
		recentShare:      0.1,
		previousShare:    0.6,
		recentCount:      20,
		twoParty:         true,
	})
	if !hasInsight(got, "Rarely starts conversations anymore: started 10% of recent conversations, down from 60%") {
		t.Errorf("insights = %v, want strong starter line", got)
	}

	got = buildInsights(insightInputs{
		starterImbalance: 45,
		recentShare:      0.3,
		previousShare:    0.5,
		recentCount:      20,
		twoParty:         true,
	})
	if !hasInsight(got, "Starting fewer conversations: 30% of recent conversations vs 50% before") {
		t.Errorf("insights = %v, want moderate starter line", got)
	}
}

func TestBuildInsights_GroupChat(t *testing.T) {
	got := buildInsights(insightInputs{
		recentCount: 20,
		twoParty:    false,
	})
	if !hasInsight(got, "not available for group chats") {
		t.Errorf("insights = %v, want group-chat note", got)
	}
	if hasInsight(got, "balanced") {
		t.Errorf("insights = %v, starter lines must be absent for group chats", got)
	}
}

func TestFormatMinutes(t *testing.T) {
	tests := []struct {
		minutes float64
		want    string
	}{
		{5, "5 min"},
		{59, "59 min"},
		{60, "1 hour"},
		{150, "3 hours"},
		{24 * 60, "1 day"},
		{3 * 24 * 60, "3 days"},
	}
	for _, tt := range tests {
		if got := formatMinutes(tt.minutes); got != tt.want {
			t.Errorf("formatMinutes(%v) = %q, want %q", tt.minutes, got, tt.want)
		}
	}
}
