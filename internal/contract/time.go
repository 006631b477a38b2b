package contract

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// DateTimeFormat is the default date time representation.
var DateTimeFormat = time.RFC3339

// relativeTimeRe captures "N [units] ago", e.g. "2 weeks ago".
var relativeTimeRe = regexp.MustCompile(`^(\d+)\s+(year|month|week|day|hour|minute)s?\s+ago$`)

// spanRe captures "N [units]", e.g. "7 days".
var spanRe = regexp.MustCompile(`^(\d+)\s+(year|month|week|day|hour|minute)s?$`)

// ParseRelativeTime converts strings like "2 weeks ago" into an instant before now.
func ParseRelativeTime(s string, now time.Time) (time.Time, error) {
	s = strings.Join(strings.Fields(strings.ToLower(s)), " ")
	matches := relativeTimeRe.FindStringSubmatch(s)
	if len(matches) == 0 {
		return time.Time{}, fmt.Errorf("invalid relative time format: %s", s)
	}

	value, err := strconv.Atoi(matches[1])
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid relative time value: %s", matches[1])
	}

	switch matches[2] {
	case "year":
		return now.AddDate(-value, 0, 0), nil
	case "month":
		return now.AddDate(0, -value, 0), nil
	case "week":
		return now.AddDate(0, 0, -7*value), nil
	case "day":
		return now.AddDate(0, 0, -value), nil
	case "hour":
		return now.Add(time.Duration(-value) * time.Hour), nil
	default:
		return now.Add(time.Duration(-value) * time.Minute), nil
	}
}

// ParseInstant accepts an absolute RFC 3339 timestamp or a relative "N units ago".
// An empty string yields the zero time.
func ParseInstant(s string, now time.Time) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(DateTimeFormat, s)
	if err == nil {
		return t, nil
	}
	t, relErr := ParseRelativeTime(s, now)
	if relErr != nil {
		return time.Time{}, fmt.Errorf("invalid instant '%s'. Expected absolute ISO8601 or 'N [units] ago': %v", s, err)
	}
	return t, nil
}

// ParseSpan converts strings like "7 days" or "168h" into a positive duration.
// Go duration syntax is tried first. Months count as 30 days and years as 365.
func ParseSpan(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if d, err := time.ParseDuration(s); err == nil {
		if d <= 0 {
			return 0, errors.New("span must be positive")
		}
		return d, nil
	}

	s = strings.Join(strings.Fields(strings.ToLower(s)), " ")
	matches := spanRe.FindStringSubmatch(s)
	if len(matches) == 0 {
		return 0, fmt.Errorf("invalid span format: %s", s)
	}
	value, err := strconv.Atoi(matches[1])
	if err != nil {
		return 0, fmt.Errorf("invalid span value: %s", matches[1])
	}

	const day = 24 * time.Hour
	units := map[string]time.Duration{
		"year":   365 * day,
		"month":  30 * day,
		"week":   7 * day,
		"day":    day,
		"hour":   time.Hour,
		"minute": time.Minute,
	}
	d := time.Duration(value) * units[matches[2]]
	if d <= 0 {
		return 0, errors.New("span must be positive")
	}
	return d, nil
}
