// Package chatparse turns a raw WhatsApp chat export into structured
// analytics: parsed messages, detected participants, and monthly metrics.
package chatparse

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/kdelaney/ghostline/internal/metrics"
	"github.com/kdelaney/ghostline/internal/models"
)

// NoMessagesError is returned when zero messages survive filtering.
// Callers surface it to the user; there is no partial analytics object.
// MediaMessages still reports how many media placeholders were seen, so
// the caller can suggest re-running with media included.
type NoMessagesError struct {
	MediaMessages int
}

func (e *NoMessagesError) Error() string {
	return "chatparse: no valid messages found: check the file format"
}

// headerRe matches a message-starting line:
//
//	M/D/YYYY, H:MM AM - Sender: Content
//
// The time may use a narrow no-break space (U+202F) before the AM/PM
// marker, which newer exports do.
var headerRe = regexp.MustCompile(`^(\d{1,2}/\d{1,2}/\d{2,4}),\s+(\d{1,2}:\d{2}[\s\x{202F}]?(?i:[AP]M))\s-\s([^:]+):\s(.+)`)

// mediaRe matches the placeholder WhatsApp writes for omitted attachments.
var mediaRe = regexp.MustCompile(`(?i)<Media omitted>`)

// systemRes match group-management and service notices. These are always
// dropped, regardless of the media setting.
var systemRes = []*regexp.Regexp{
	regexp.MustCompile(`(?i)joined using this group's invite link`),
	regexp.MustCompile(`(?i)left`),
	regexp.MustCompile(`(?i)added`),
	regexp.MustCompile(`(?i)removed`),
	regexp.MustCompile(`(?i)changed the subject to`),
	regexp.MustCompile(`(?i)changed this group's icon`),
	regexp.MustCompile(`(?i)changed the group description`),
	regexp.MustCompile(`(?i)Messages and calls are end-to-end encrypted`),
	regexp.MustCompile(`(?i)This message was deleted`),
	regexp.MustCompile(`(?i)You deleted this message`),
}

func isSystemContent(content string) bool {
	for _, re := range systemRes {
		if re.MatchString(content) {
			return true
		}
	}
	return false
}

// Parse scans raw export text and returns the full analytics aggregate.
// Lines that match the header pattern open a new message; lines that
// don't are continuations of the open message, or are discarded when no
// message is open. Media placeholders always increment the media counter
// and are kept only when includeMedia is set.
//
// Parse is a pure function of its inputs: re-running it with a different
// includeMedia value rebuilds everything from scratch.
func Parse(raw string, includeMedia bool) (*models.Analytics, error) {
	lines := strings.Split(raw, "\n")

	var (
		msgs     []models.Message
		lineErrs []models.LineError
		current  *models.Message
	)
	mediaCount := 0

	flush := func() {
		if current != nil && current.Sender != "" {
			msgs = append(msgs, *current)
		}
		current = nil
	}

	for i, rawLine := range lines {
		line := strings.TrimSpace(rawLine)
		if line == "" {
			continue
		}

		m := headerRe.FindStringSubmatch(line)
		if m == nil {
			// Continuation of a multi-line message. Orphan lines (no
			// open message) are export headers or footers; drop them.
			if current != nil {
				current.Content += "\n" + line
			}
			continue
		}

		flush()

		dateTok, timeTok, sender, content := m[1], m[2], strings.TrimSpace(m[3]), m[4]

		ts, ok := parseDateTime(dateTok, timeTok)
		if !ok {
			lineErrs = append(lineErrs, models.LineError{
				Line:   i + 1,
				Reason: fmt.Sprintf("failed to parse date/time %q, %q", dateTok, timeTok),
			})
			continue
		}

		if mediaRe.MatchString(content) {
			mediaCount++
			if !includeMedia {
				continue
			}
		}
		if isSystemContent(content) {
			continue
		}

		current = &models.Message{
			Date:      dateTok,
			Time:      timeTok,
			Sender:    sender,
			Content:   content,
			Timestamp: ts,
			Hour:      ts.Hour(),
			MonthYear: monthYear(ts),
		}
	}
	flush()

	if len(msgs) == 0 {
		return nil, &NoMessagesError{MediaMessages: mediaCount}
	}

	return &models.Analytics{
		Participants: detectParticipants(msgs),
		Messages:     msgs,
		MonthStats:   metrics.Aggregate(msgs),
		DateRange: models.DateRange{
			Start: msgs[0].Timestamp,
			End:   msgs[len(msgs)-1].Timestamp,
		},
		TotalMessages: len(msgs),
		MediaMessages: mediaCount,
		LineErrors:    lineErrs,
	}, nil
}
