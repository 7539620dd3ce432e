package chatparse

import (
	"testing"
	"time"
)

func TestParseDateTime_MeridiemConversion(t *testing.T) {
	tests := []struct {
		name     string
		timeTok  string
		wantHour int
	}{
		{"morning", "9:00 AM", 9},
		{"afternoon", "1:30 PM", 13},
		{"midnight", "12:00 AM", 0},
		{"noon", "12:00 PM", 12},
		{"late evening", "11:59 PM", 23},
		{"lowercase", "9:00 am", 9},
		{"narrow no-break space", "9:00\u202fAM", 9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts, ok := parseDateTime("1/5/24", tt.timeTok)
			if !ok {
				t.Fatalf("parseDateTime(%q) ok = false", tt.timeTok)
			}
			if ts.Hour() != tt.wantHour {
				t.Errorf("Hour = %d, want %d", ts.Hour(), tt.wantHour)
			}
		})
	}
}

func TestParseDateTime_TwoDigitYear(t *testing.T) {
	ts, ok := parseDateTime("3/15/24", "9:00 AM")
	if !ok {
		t.Fatal("parseDateTime() ok = false")
	}
	if ts.Year() != 2024 {
		t.Errorf("Year = %d, want 2024", ts.Year())
	}
}

func TestParseDateTime_FourDigitYear(t *testing.T) {
	ts, ok := parseDateTime("3/15/2024", "9:00 AM")
	if !ok {
		t.Fatal("parseDateTime() ok = false")
	}
	if ts.Year() != 2024 {
		t.Errorf("Year = %d, want 2024", ts.Year())
	}
	if ts.Month() != time.March {
		t.Errorf("Month = %v, want March", ts.Month())
	}
	if ts.Day() != 15 {
		t.Errorf("Day = %d, want 15", ts.Day())
	}
}

func TestParseDateTime_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		dateTok string
		timeTok string
	}{
		{"missing date part", "3/15", "9:00 AM"},
		{"non-numeric date", "x/y/z", "9:00 AM"},
		{"no meridiem", "3/15/24", "9:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, ok := parseDateTime(tt.dateTok, tt.timeTok); ok {
				t.Errorf("parseDateTime(%q, %q) ok = true, want false", tt.dateTok, tt.timeTok)
			}
		})
	}
}

func TestMonthYear(t *testing.T) {
	ts := time.Date(2025, time.October, 7, 14, 30, 0, 0, time.Local)
	if got := monthYear(ts); got != "Oct 2025" {
		t.Errorf("monthYear() = %q, want %q", got, "Oct 2025")
	}
}
