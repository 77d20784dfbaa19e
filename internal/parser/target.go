// Package parser turns user input into countdown targets.
package parser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/markusmobius/go-dateparser"

	"github.com/manav03panchal/countdown/internal/errors"
)

// relativeRegex matches relative expressions like "+90m", "+12h", "+76d".
var relativeRegex = regexp.MustCompile(`^\+(\d+)([smhdw])$`)

// absoluteLayouts are tried before natural language parsing.
var absoluteLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
}

// ParseTarget parses a target expression relative to now.
// Supports formats like:
//   - "+76d", "+12h", "+2w" (relative)
//   - "2026-12-31T18:00:00Z" (RFC 3339)
//   - "next friday 9am", "31 december 2026" (natural language)
//
// A target at or before now is rejected with ErrTargetInPast unless
// allowPast is set. A clock time earlier today is moved to tomorrow.
func ParseTarget(input string, now time.Time, allowPast bool) (time.Time, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return time.Time{}, errors.NewUserErrorWithField("target", input,
			"target is required", errors.Suggestions[errors.ErrInvalidTarget])
	}

	if match := relativeRegex.FindStringSubmatch(input); match != nil {
		return parseRelative(input, match[1], match[2], now)
	}

	for _, layout := range absoluteLayouts {
		if t, err := time.ParseInLocation(layout, input, now.Location()); err == nil {
			return checkFuture(input, t, now, allowPast)
		}
	}

	cfg := &dateparser.Configuration{
		CurrentTime:         now,
		PreferredDateSource: dateparser.Future,
	}
	result, err := dateparser.Parse(cfg, input)
	if err != nil || result.Time.IsZero() {
		return time.Time{}, errors.InvalidValue(errors.ErrInvalidTarget, "target", input)
	}

	t := result.Time
	if !t.After(now) && !allowPast && isSameDay(t, now) {
		t = t.AddDate(0, 0, 1)
	}
	return checkFuture(input, t, now, allowPast)
}

// ParseTargetArgs joins command arguments into one expression.
func ParseTargetArgs(args []string, now time.Time, allowPast bool) (time.Time, error) {
	return ParseTarget(strings.Join(args, " "), now, allowPast)
}

func parseRelative(input, numStr, unit string, now time.Time) (time.Time, error) {
	num, err := strconv.Atoi(numStr)
	if err != nil || num <= 0 {
		return time.Time{}, errors.InvalidValue(errors.ErrInvalidTarget, "target", input)
	}

	var d time.Duration
	switch unit {
	case "s":
		d = time.Duration(num) * time.Second
	case "m":
		d = time.Duration(num) * time.Minute
	case "h":
		d = time.Duration(num) * time.Hour
	case "d":
		d = time.Duration(num) * 24 * time.Hour
	case "w":
		d = time.Duration(num) * 7 * 24 * time.Hour
	}
	return now.Add(d), nil
}

func checkFuture(input string, t, now time.Time, allowPast bool) (time.Time, error) {
	if !allowPast && !t.After(now) {
		return time.Time{}, errors.InvalidValue(errors.ErrTargetInPast, "target", input)
	}
	return t, nil
}

func isSameDay(t1, t2 time.Time) bool {
	y1, m1, d1 := t1.Date()
	y2, m2, d2 := t2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// FormatTarget formats a target for display relative to now.
func FormatTarget(t, now time.Time) string {
	t = t.In(now.Location())
	diff := t.Sub(now)

	var datePart string
	switch {
	case isSameDay(t, now):
		datePart = "Today"
	case isSameDay(t, now.AddDate(0, 0, 1)):
		datePart = "Tomorrow"
	case diff > 0 && diff < 7*24*time.Hour:
		datePart = t.Format("Monday")
	case t.Year() == now.Year():
		datePart = t.Format("Mon, Jan 2")
	default:
		datePart = t.Format("Mon, Jan 2 2006")
	}

	return fmt.Sprintf("%s at %s", datePart, t.Format("3:04 PM"))
}

// FormatTimeUntil describes the distance from now to t in words.
func FormatTimeUntil(t, now time.Time) string {
	diff := t.Sub(now)
	if diff < 0 {
		return "reached " + formatSpan(-diff) + " ago"
	}
	if diff < time.Minute {
		return "less than a minute"
	}
	return "in " + formatSpan(diff)
}

func formatSpan(d time.Duration) string {
	switch {
	case d < time.Minute:
		return plural(int(d.Seconds()), "second")
	case d < time.Hour:
		return plural(int(d.Minutes()), "minute")
	case d < 24*time.Hour:
		hours := int(d.Hours())
		mins := int(d.Minutes()) % 60
		if mins > 0 {
			return plural(hours, "hour") + " " + plural(mins, "minute")
		}
		return plural(hours, "hour")
	default:
		days := int(d.Hours() / 24)
		hours := int(d.Hours()) % 24
		if hours > 0 && days < 7 {
			return plural(days, "day") + " " + plural(hours, "hour")
		}
		return plural(days, "day")
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return "1 " + unit
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
