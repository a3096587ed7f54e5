package timeparse

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrInvalidFilter is returned for textual timestamp or duration filters that cannot be parsed.
var ErrInvalidFilter = errors.New("invalid filter")

// TimestampKind selects the range a TimestampFilter covers.
type TimestampKind int

const (
	KindToday TimestampKind = iota
	KindTomorrow
	KindYesterday
	KindThisWeek
	KindDays
	KindThisMonth
	KindThisYear
	KindStarting
	KindBefore
)

// TimestampFilter matches timestamps inside a half-open range resolved
// against the current time at evaluation.
type TimestampFilter struct {
	Kind TimestampKind
	Days int       // KindDays
	At   time.Time // KindStarting, KindBefore
}

func Today() TimestampFilter     { return TimestampFilter{Kind: KindToday} }
func Tomorrow() TimestampFilter  { return TimestampFilter{Kind: KindTomorrow} }
func Yesterday() TimestampFilter { return TimestampFilter{Kind: KindYesterday} }
func ThisWeek() TimestampFilter  { return TimestampFilter{Kind: KindThisWeek} }
func ThisMonth() TimestampFilter { return TimestampFilter{Kind: KindThisMonth} }
func ThisYear() TimestampFilter  { return TimestampFilter{Kind: KindThisYear} }

// Days covers the n days leading up to now: [now - n days, now).
func Days(n int) TimestampFilter { return TimestampFilter{Kind: KindDays, Days: n} }

// Starting covers [t, ∞).
func Starting(t time.Time) TimestampFilter { return TimestampFilter{Kind: KindStarting, At: t} }

// Before covers (-∞, t).
func Before(t time.Time) TimestampFilter { return TimestampFilter{Kind: KindBefore, At: t} }

// Range returns the bounds of f at now. A zero bound is unbounded.
func (f TimestampFilter) Range(now time.Time) (start, end time.Time) {
	day := startOfDay(now)
	switch f.Kind {
	case KindToday:
		return day, day.AddDate(0, 0, 1)
	case KindTomorrow:
		return day.AddDate(0, 0, 1), day.AddDate(0, 0, 2)
	case KindYesterday:
		return day.AddDate(0, 0, -1), day
	case KindThisWeek:
		// Weeks start on Monday.
		monday := day.AddDate(0, 0, -((int(now.Weekday()) + 6) % 7))
		return monday, monday.AddDate(0, 0, 7)
	case KindDays:
		return now.AddDate(0, 0, -f.Days), now
	case KindThisMonth:
		y, m, _ := now.Date()
		first := time.Date(y, m, 1, 0, 0, 0, 0, now.Location())
		return first, first.AddDate(0, 1, 0)
	case KindThisYear:
		first := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location())
		return first, first.AddDate(1, 0, 0)
	case KindStarting:
		return f.At, time.Time{}
	case KindBefore:
		return time.Time{}, f.At
	}
	return now, now
}

// Matches reports whether t lies in the range of f at now.
func (f TimestampFilter) Matches(t, now time.Time) bool {
	start, end := f.Range(now)
	if f.Kind != KindBefore && t.Before(start) {
		return false
	}
	if f.Kind != KindStarting && !t.Before(end) {
		return false
	}
	return true
}

func (f TimestampFilter) String() string {
	switch f.Kind {
	case KindToday:
		return "today"
	case KindTomorrow:
		return "tomorrow"
	case KindYesterday:
		return "yesterday"
	case KindThisWeek:
		return "this-week"
	case KindDays:
		return fmt.Sprintf("%d days", f.Days)
	case KindThisMonth:
		return "this-month"
	case KindThisYear:
		return "this-year"
	case KindStarting:
		return "from " + f.At.Format("2006-01-02 15:04:05 -07:00")
	case KindBefore:
		return "before " + f.At.Format("2006-01-02 15:04:05 -07:00")
	}
	return fmt.Sprintf("TimestampKind(%d)", int(f.Kind))
}

// ParseTimestampFilter parses the textual form of a TimestampFilter:
// "today", "tomorrow", "yesterday", "this-week", "this-month", "this-year",
// "<n> days", "from <timestamp>" or "before <timestamp>". Timestamps are
// resolved against now.
func ParseTimestampFilter(s string, now time.Time) (TimestampFilter, error) {
	s = strings.TrimSpace(s)
	keyword, rest, _ := strings.Cut(s, " ")
	rest = strings.TrimSpace(rest)

	simple := func(f TimestampFilter) (TimestampFilter, error) {
		if rest != "" {
			return TimestampFilter{}, fmt.Errorf("%w: unexpected %q after %q", ErrInvalidFilter, rest, keyword)
		}
		return f, nil
	}

	switch strings.ToLower(keyword) {
	case "today":
		return simple(Today())
	case "tomorrow", "tmrw":
		return simple(Tomorrow())
	case "yesterday", "yst":
		return simple(Yesterday())
	case "week", "this-week":
		return simple(ThisWeek())
	case "month", "this-month":
		return simple(ThisMonth())
	case "year", "this-year":
		return simple(ThisYear())
	case "from", "starting", "start":
		t, err := ParseTimestamp(rest, now)
		if err != nil {
			return TimestampFilter{}, fmt.Errorf("%w: %q: %w", ErrInvalidFilter, s, err)
		}
		return Starting(t), nil
	case "to", "before", "ending":
		t, err := ParseTimestamp(rest, now)
		if err != nil {
			return TimestampFilter{}, fmt.Errorf("%w: %q: %w", ErrInvalidFilter, s, err)
		}
		return Before(t), nil
	}

	if n, err := strconv.Atoi(keyword); err == nil && n >= 0 {
		switch strings.ToLower(rest) {
		case "day", "days":
			return Days(n), nil
		}
	}
	return TimestampFilter{}, fmt.Errorf("%w: %q", ErrInvalidFilter, s)
}

// Comparison is the operator of a DurationFilter.
type Comparison int

const (
	Equal Comparison = iota
	Less
	LessOrEqual
	Greater
	GreaterOrEqual
)

func (c Comparison) String() string {
	switch c {
	case Less:
		return "<"
	case LessOrEqual:
		return "<="
	case Greater:
		return ">"
	case GreaterOrEqual:
		return ">="
	}
	return "="
}

// DurationFilter compares a duration against a fixed value.
type DurationFilter struct {
	Op    Comparison
	Value Duration
}

func (f DurationFilter) Matches(d Duration) bool {
	switch f.Op {
	case Less:
		return d < f.Value
	case LessOrEqual:
		return d <= f.Value
	case Greater:
		return d > f.Value
	case GreaterOrEqual:
		return d >= f.Value
	}
	return d == f.Value
}

func (f DurationFilter) String() string {
	return f.Op.String() + " " + f.Value.String()
}

// Longest operators first so "<=" is not read as "<".
var operators = []struct {
	token string
	op    Comparison
}{
	{"<=", LessOrEqual},
	{">=", GreaterOrEqual},
	{"==", Equal},
	{"<", Less},
	{">", Greater},
	{"=", Equal},
}

// ParseDurationFilter parses "<op> <duration>", e.g. "<= 1h30m". A missing
// operator means equality.
func ParseDurationFilter(s string) (DurationFilter, error) {
	s = strings.TrimSpace(s)
	op, rest := Equal, s
	for _, o := range operators {
		if strings.HasPrefix(s, o.token) {
			op, rest = o.op, s[len(o.token):]
			break
		}
	}
	d, err := ParseDuration(rest)
	if err != nil {
		return DurationFilter{}, fmt.Errorf("%w: %q: %w", ErrInvalidFilter, s, err)
	}
	return DurationFilter{Op: op, Value: d}, nil
}
