package booking

import (
	"strings"
	"time"
)

// bucketFormat is the fixed-precision instant form bucket values take when
// the timestamp parsed. Millisecond precision, always UTC.
const bucketFormat = "2006-01-02T15:04:05.000Z"

// directLayouts are tried against the whole raw string first.
//
//nolint:gochecknoglobals // Static layout table
var directLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"02/01/2006 15:04:05",
	"02/01/2006 15:04",
	"2006-01-02",
	"02/01/2006",
}

// parseTimestamp runs the ordered parser strategies over one raw upstream
// timestamp. Each strategy reports success or failure; the first success
// wins and nothing panics on garbage input.
func parseTimestamp(raw string) (time.Time, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}, false
	}

	// Strategy 1: direct parse of the whole string.
	for _, layout := range directLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}

	// Strategy 2: split date and time, detect the date separator,
	// rebuild an ISO-like string, and parse that.
	if t, ok := parseSplit(s); ok {
		return t, true
	}

	return time.Time{}, false
}

// parseSplit handles "DD/MM/YYYY [time]" and "YYYY-MM-DD [time]" shapes
// whose time component defeats the direct layouts.
func parseSplit(s string) (time.Time, bool) {
	parts := strings.Fields(s)
	datePart := parts[0]

	timePart := "00:00:00"
	if len(parts) > 1 {
		timePart = parts[1]
	}
	// HH:MM gets a seconds component so one layout covers both.
	if strings.Count(timePart, ":") == 1 {
		timePart += ":00"
	}

	var date time.Time
	var err error
	switch {
	case strings.Contains(datePart, "/"):
		// Slash dates are day first.
		date, err = time.Parse("02/01/2006", datePart)
	case strings.Contains(datePart, "-"):
		date, err = time.Parse("2006-01-02", datePart)
	default:
		return time.Time{}, false
	}
	if err != nil {
		return time.Time{}, false
	}

	combined := date.Format("2006-01-02") + "T" + timePart
	t, err := time.Parse("2006-01-02T15:04:05", combined)
	if err != nil {
		return time.Time{}, false
	}
	return t.UTC(), true
}

// BucketTime quantizes a raw timestamp down to the nearest window boundary
// and returns it as a fixed-precision UTC instant string.
//
// Unparseable input is returned unchanged: the raw string still works as a
// stable, opaque bucket identity, so grouping stays internally consistent
// instead of failing the request.
func BucketTime(raw string, window time.Duration) string {
	t, ok := parseTimestamp(raw)
	if !ok {
		return raw
	}
	if window <= 0 {
		window = DefaultWindow
	}

	ms := t.UnixMilli()
	ms -= ms % window.Milliseconds()
	return time.UnixMilli(ms).UTC().Format(bucketFormat)
}

// SameDay reports whether the raw timestamp falls on the given calendar
// day. Only day/month/year take part; the time component is ignored.
// Unparseable timestamps never match a day.
func SameDay(raw string, day time.Time) bool {
	t, ok := parseTimestamp(raw)
	if !ok {
		return false
	}
	y1, m1, d1 := t.Date()
	y2, m2, d2 := day.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
