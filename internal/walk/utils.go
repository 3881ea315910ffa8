package dirmeta

import (
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

// Layouts used by the local time helpers.
const (
	dateLayout = "Monday, 2 January, 2006"
	time24     = "15:04:05"
	time12     = "3:04 PM"
)

// DateTimeString is a timestamp split into a date and a time of day.
type DateTimeString struct {
	Date string `json:"date"`
	Time string `json:"time"`
}

// String joins date and time with a single space.
func (d DateTimeString) String() string {
	return d.Date + " " + d.Time
}

// FormatBytes renders a byte count, e.g. "15 B" or "4.2 MB".
func FormatBytes(n uint64) string {
	return humanize.Bytes(n)
}

// Local24h renders t in local time with a 24 hour clock.
func Local24h(t time.Time) DateTimeString {
	local := t.Local()
	return DateTimeString{
		Date: local.Format(dateLayout),
		Time: local.Format(time24),
	}
}

// LocalAmPm renders t in local time with a 12 hour clock.
func LocalAmPm(t time.Time) DateTimeString {
	local := t.Local()
	return DateTimeString{
		Date: local.Format(dateLayout),
		Time: local.Format(time12),
	}
}

// DurationSince returns later-earlier, or false if earlier is after later.
func DurationSince(earlier, later time.Time) (time.Duration, bool) {
	if earlier.After(later) {
		return 0, false
	}
	return later.Sub(earlier), true
}

// ElapsedSinceEpoch returns the time between the Unix epoch and t.
func ElapsedSinceEpoch(t time.Time) (time.Duration, bool) {
	return DurationSince(time.Unix(0, 0), t)
}

// HumanElapsed describes how long ago t was, e.g. "3 minutes ago".
// It reports false for timestamps in the future.
func HumanElapsed(t time.Time) (string, bool) {
	return humanElapsedAt(t, time.Now())
}

func humanElapsedAt(t, now time.Time) (string, bool) {
	if _, ok := DurationSince(t, now); !ok {
		return "", false
	}
	return humanize.RelTime(t, now, "ago", "from now"), true
}

// HumanBetween describes the distance between two timestamps without a label,
// e.g. "2 hours". It reports false if earlier is after later.
func HumanBetween(earlier, later time.Time) (string, bool) {
	if _, ok := DurationSince(earlier, later); !ok {
		return "", false
	}
	return strings.TrimSpace(humanize.RelTime(earlier, later, "", "")), true
}
