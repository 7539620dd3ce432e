package chatparse

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var timeRe = regexp.MustCompile(`(\d{1,2}):(\d{2})\s*((?i:[AP]M))`)

// parseDateTime derives an absolute timestamp from the header's date and
// time tokens. Two-digit years are interpreted as 2000+year. Out-of-range
// day-of-month values normalize forward the way calendar arithmetic does.
func parseDateTime(dateTok, timeTok string) (time.Time, bool) {
	clean := strings.TrimSpace(strings.ReplaceAll(timeTok, "\u202f", " "))

	parts := strings.Split(dateTok, "/")
	if len(parts) != 3 {
		return time.Time{}, false
	}
	month, err1 := strconv.Atoi(parts[0])
	day, err2 := strconv.Atoi(parts[1])
	year, err3 := strconv.Atoi(parts[2])
	if err1 != nil || err2 != nil || err3 != nil {
		return time.Time{}, false
	}
	if year < 100 {
		year += 2000
	}

	tm := timeRe.FindStringSubmatch(clean)
	if tm == nil {
		return time.Time{}, false
	}
	hours, _ := strconv.Atoi(tm[1])
	minutes, _ := strconv.Atoi(tm[2])

	// 12-hour to 24-hour: 12 AM is hour 0, 12 PM stays 12.
	switch strings.ToUpper(tm[3]) {
	case "PM":
		if hours != 12 {
			hours += 12
		}
	case "AM":
		if hours == 12 {
			hours = 0
		}
	}

	return time.Date(year, time.Month(month), day, hours, minutes, 0, 0, time.Local), true
}

// monthYear formats a timestamp as the "Oct 2025" bucket key used for
// all monthly grouping.
func monthYear(ts time.Time) string {
	return ts.Format("Jan 2006")
}
