package timeparse

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// DisplayLayout is the layout used when showing timestamps to users.
const DisplayLayout = "2006-01-02 15:04 -07"

// ErrInvalidDateTime is returned when a timestamp matches none of the accepted forms.
var ErrInvalidDateTime = errors.New("invalid date/time")

// Layouts carrying their own offset.
var offsetLayouts = []string{
	"2006-01-02T15:04 -07:00",
	"2006-01-02 15:04 -07:00",
	"2006-01-02T15:04:05 -07:00",
	"2006-01-02 15:04:05 -07:00",
	time.RFC3339,
}

// Layouts interpreted in the location of now.
var localLayouts = []string{
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// Bare times of day, placed on the date of now.
var clockLayouts = []string{
	"15:04",
	"15h04",
	"15:04:05",
}

// ParseTimestamp parses s relative to now.
//
// Accepted forms are "now", a full date and time with or without an offset,
// a bare time of day, and a bare time of day prefixed with "yesterday@",
// "yst@", "tomorrow@" or "tmrw@".
func ParseTimestamp(s string, now time.Time) (time.Time, error) {
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, "now") {
		return now, nil
	}

	if prefix, rest, ok := strings.Cut(s, "@"); ok {
		if strings.Contains(rest, "@") {
			return time.Time{}, fmt.Errorf("%w: %q has more than one '@'", ErrInvalidDateTime, s)
		}
		var days int
		switch strings.ToLower(strings.TrimSpace(prefix)) {
		case "yesterday", "yst":
			days = -1
		case "tomorrow", "tmrw":
			days = 1
		default:
			return time.Time{}, fmt.Errorf("%w: unknown day %q", ErrInvalidDateTime, prefix)
		}
		return parseClock(strings.TrimSpace(rest), now.AddDate(0, 0, days))
	}

	for _, layout := range offsetLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, s, now.Location()); err == nil {
			return t, nil
		}
	}
	return parseClock(s, now)
}

func parseClock(s string, day time.Time) (time.Time, error) {
	for _, layout := range clockLayouts {
		t, err := time.Parse(layout, s)
		if err != nil {
			continue
		}
		y, m, d := day.Date()
		return time.Date(y, m, d, t.Hour(), t.Minute(), t.Second(), 0, day.Location()), nil
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDateTime, s)
}

// Format renders t in DisplayLayout.
func Format(t time.Time) string {
	return t.Format(DisplayLayout)
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
