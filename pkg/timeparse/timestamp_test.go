package timeparse

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var minus4 = time.FixedZone("", -4*60*60)

func testNow() time.Time {
	return time.Date(2021, 11, 4, 17, 0, 0, 0, minus4)
}

func TestParseTimestamp(t *testing.T) {
	now := testNow()
	tests := []struct {
		in   string
		want time.Time
	}{
		{"now", now},
		{"NOW", now},
		{"2021-11-04 12:43:23 +02:00", time.Date(2021, 11, 4, 12, 43, 23, 0, time.FixedZone("", 2*60*60))},
		{"2021-11-04T12:43 +02:00", time.Date(2021, 11, 4, 12, 43, 0, 0, time.FixedZone("", 2*60*60))},
		{"2021-11-01T09:30", time.Date(2021, 11, 1, 9, 30, 0, 0, minus4)},
		{"2021-11-01 09:30:15", time.Date(2021, 11, 1, 9, 30, 15, 0, minus4)},
		{"2021-11-01T09:30:15Z", time.Date(2021, 11, 1, 9, 30, 15, 0, time.UTC)},
		{"10:23:44", time.Date(2021, 11, 4, 10, 23, 44, 0, minus4)},
		{"10:23", time.Date(2021, 11, 4, 10, 23, 0, 0, minus4)},
		{"10h23", time.Date(2021, 11, 4, 10, 23, 0, 0, minus4)},
		{"yesterday@10:00", time.Date(2021, 11, 3, 10, 0, 0, 0, minus4)},
		{"yst@10:00", time.Date(2021, 11, 3, 10, 0, 0, 0, minus4)},
		{"tomorrow@08h15", time.Date(2021, 11, 5, 8, 15, 0, 0, minus4)},
		{"tmrw@ 23:59:59", time.Date(2021, 11, 5, 23, 59, 59, 0, minus4)},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseTimestamp(tt.in, now)
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "want %s, got %s", tt.want, got)
		})
	}
}

func TestParseTimestampErrors(t *testing.T) {
	now := testNow()
	for _, in := range []string{
		"",
		"garbage",
		"2021-13-01 10:00",
		"someday@10:00",
		"yesterday@10:00@11:00",
		"yesterday@2021-11-01 10:00",
		"25:00",
	} {
		_, err := ParseTimestamp(in, now)
		assert.ErrorIs(t, err, ErrInvalidDateTime, "input %q", in)
	}
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "2021-11-04 17:00 -04", Format(testNow()))
}
