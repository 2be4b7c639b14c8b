package timefmt

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Canonical time-of-day handling for attendance records. The portal accepts
// whatever the browser hands it (24-hour, 12-hour with AM/PM, with or without
// seconds) and stores everything as zero-padded HH:MM:SS.

var (
	canonicalRegex = regexp.MustCompile(`^(\d{1,2}):(\d{2}):(\d{2})$`)
	shortRegex     = regexp.MustCompile(`^(\d{1,2}):(\d{2})$`)
	amPmRegex      = regexp.MustCompile(`(?i)^(\d{1,2}):(\d{2})(?::(\d{2}))?\s*(AM|PM)$`)
)

// Layouts tried as a last resort for inputs like full datetimes pasted into
// the time field. Only the time-of-day is kept.
var fallbackLayouts = []string{
	time.RFC3339,
	time.RFC3339Nano,
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"15.04.05",
	"15.04",
}

// Normalize converts a raw time string to canonical HH:MM:SS (24-hour,
// zero-padded). The second return value is false when no supported form
// matches. Normalize is idempotent over its own output.
func Normalize(raw string) (string, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "", false
	}

	if m := canonicalRegex.FindStringSubmatch(s); m != nil {
		return buildCanonical(m[1], m[2], m[3])
	}

	if m := shortRegex.FindStringSubmatch(s); m != nil {
		return buildCanonical(m[1], m[2], "00")
	}

	if m := amPmRegex.FindStringSubmatch(s); m != nil {
		hours, _ := strconv.Atoi(m[1])
		if hours < 1 || hours > 12 {
			return "", false
		}
		isPM := strings.EqualFold(m[4], "PM")
		if isPM && hours < 12 {
			hours += 12
		}
		if !isPM && hours == 12 {
			hours = 0
		}
		sec := m[3]
		if sec == "" {
			sec = "00"
		}
		return buildCanonical(strconv.Itoa(hours), m[2], sec)
	}

	for _, layout := range fallbackLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("15:04:05"), true
		}
	}

	return "", false
}

func buildCanonical(h, m, s string) (string, bool) {
	hours, err := strconv.Atoi(h)
	if err != nil || hours > 23 {
		return "", false
	}
	minutes, err := strconv.Atoi(m)
	if err != nil || minutes > 59 {
		return "", false
	}
	seconds, err := strconv.Atoi(s)
	if err != nil || seconds > 59 {
		return "", false
	}
	return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds), true
}

// Duration returns the elapsed time between two time-of-day strings as
// "<H>h <M>m", flooring to whole minutes. A check-out earlier than the
// check-in is taken to be on the next day. Returns "-" when either side
// cannot be normalized.
func Duration(start, end string) string {
	startCanonical, ok := Normalize(start)
	if !ok {
		return "-"
	}
	endCanonical, ok := Normalize(end)
	if !ok {
		return "-"
	}

	diff := secondsOfDay(endCanonical) - secondsOfDay(startCanonical)
	if diff < 0 {
		diff += 24 * 60 * 60
	}

	hours := diff / 3600
	minutes := (diff % 3600) / 60
	return fmt.Sprintf("%dh %dm", hours, minutes)
}

// secondsOfDay assumes a canonical HH:MM:SS input.
func secondsOfDay(canonical string) int {
	h, _ := strconv.Atoi(canonical[0:2])
	m, _ := strconv.Atoi(canonical[3:5])
	s, _ := strconv.Atoi(canonical[6:8])
	return h*3600 + m*60 + s
}
