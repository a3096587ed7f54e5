package timeparse

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

var (
	ErrDurationMustStartWithNumber = errors.New("duration must start with a number")
	ErrInvalidDurationUnit         = errors.New("invalid duration unit")
	ErrDurationOutOfRange          = errors.New("duration out of range")
)

// Duration is a span of time written as amount/unit pairs, e.g. "1d 4h 12m".
// It is stored on disk in that display form.
type Duration time.Duration

const (
	Second = Duration(time.Second)
	Minute = 60 * Second
	Hour   = 60 * Minute
	Day    = 24 * Hour
	Week   = 7 * Day
)

var units = []struct {
	suffix byte
	size   Duration
}{
	{'w', Week},
	{'d', Day},
	{'h', Hour},
	{'m', Minute},
	{'s', Second},
}

func unitSize(c byte) (Duration, bool) {
	if 'A' <= c && c <= 'Z' {
		c += 'a' - 'A'
	}
	for _, u := range units {
		if u.suffix == c {
			return u.size, true
		}
	}
	return 0, false
}

func isDigit(c byte) bool { return '0' <= c && c <= '9' }

func isSpace(c byte) bool { return c == ' ' || c == '\t' }

// lookupUnit resolves a whole unit token; only single-letter units exist.
func lookupUnit(unit string) (Duration, bool) {
	if len(unit) != 1 {
		return 0, false
	}
	return unitSize(unit[0])
}

// ParseDuration parses a sequence of <amount><unit> components where unit
// is one of w, d, h, m, s. Whitespace between components is ignored.
func ParseDuration(s string) (Duration, error) {
	s = strings.TrimSpace(s)
	if s == "" || !isDigit(s[0]) {
		return 0, fmt.Errorf("%w: %q", ErrDurationMustStartWithNumber, s)
	}

	var (
		total     Duration
		amount    int64
		hasAmount bool
	)
	for i := 0; i < len(s); {
		c := s[i]
		switch {
		case isDigit(c):
			if amount > (math.MaxInt64-int64(c-'0'))/10 {
				return 0, fmt.Errorf("%w: %q", ErrDurationOutOfRange, s)
			}
			amount = amount*10 + int64(c-'0')
			hasAmount = true
			i++
		case isSpace(c):
			i++
		default:
			start := i
			for i < len(s) && !isDigit(s[i]) && !isSpace(s[i]) {
				i++
			}
			unit := s[start:i]
			if !hasAmount {
				return 0, fmt.Errorf("%w: unit %q at offset %d has no amount", ErrInvalidDurationUnit, unit, start)
			}
			size, ok := lookupUnit(unit)
			if !ok {
				return 0, fmt.Errorf("%w: %q in %q", ErrInvalidDurationUnit, unit, s)
			}
			if amount > int64(math.MaxInt64/size) {
				return 0, fmt.Errorf("%w: %q", ErrDurationOutOfRange, s)
			}
			part := Duration(amount) * size
			if total > math.MaxInt64-part {
				return 0, fmt.Errorf("%w: %q", ErrDurationOutOfRange, s)
			}
			total += part
			amount, hasAmount = 0, false
		}
	}
	if hasAmount {
		return 0, fmt.Errorf("%w: %q ends without a unit", ErrInvalidDurationUnit, s)
	}
	return total, nil
}

// Std converts d to a time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

// Seconds returns d in whole seconds.
func (d Duration) Seconds() int64 { return int64(d / Second) }

// String renders d with the largest units first, omitting zero components.
// Sub-second precision is dropped.
func (d Duration) String() string {
	if d < 0 {
		return "-" + (-d).String()
	}
	var parts []string
	rem := d
	for _, u := range units {
		if n := rem / u.size; n > 0 {
			parts = append(parts, strconv.FormatInt(int64(n), 10)+string(u.suffix))
			rem -= n * u.size
		}
	}
	if len(parts) == 0 {
		return "0s"
	}
	return strings.Join(parts, " ")
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
