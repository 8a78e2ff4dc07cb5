package journal

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// monthsByName maps lowercase English month names to their calendar month.
var monthsByName = map[string]time.Month{
	"january":   time.January,
	"february":  time.February,
	"march":     time.March,
	"april":     time.April,
	"may":       time.May,
	"june":      time.June,
	"july":      time.July,
	"august":    time.August,
	"september": time.September,
	"october":   time.October,
	"november":  time.November,
	"december":  time.December,
}

// monthDays holds the length of each month in a non-leap year.
var monthDays = [12]int{31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

var (
	lastNUnitsRe = regexp.MustCompile(`^last (\d+) (day|days|week|weeks|month|months)`)
	monthNameRe  = regexp.MustCompile(`^(january|february|march|april|may|june|july|august|september|october|november|december)(?:\s+(\d{4}))?`)
	isoDateRe    = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})`)
)

// ResolveTimeRange converts a natural-language time expression into an
// inclusive [start, end] timestamp pair relative to now. It never fails:
// unrecognized input falls back to the trailing 7-day window ending today.
// start <= end always holds.
//
// All boundaries are computed in now's location; the module's policy is local
// wall-clock time, so "today" and "this week" follow the observer's clock.
// End boundaries sit on the last nanosecond of their day.
//
// Recognized forms, first match wins: today; yesterday; this/current week
// (Monday through end of *today*); last N days/weeks/months (month ~ 30
// days); last week (the previous Monday-Sunday week); last month (previous
// calendar month); last year; this/current month; this/current year; a month
// name with optional 4-digit year; an ISO date YYYY-MM-DD.
func ResolveTimeRange(expression string, now time.Time) (time.Time, time.Time) {
	expr := strings.ToLower(strings.TrimSpace(expression))

	switch expr {
	case "today":
		return startOfDay(now), endOfDay(now)
	case "yesterday":
		y := now.AddDate(0, 0, -1)
		return startOfDay(y), endOfDay(y)
	case "this week", "current week":
		// Monday of the current week through end of today, not end of week.
		start := startOfDay(now.AddDate(0, 0, -weekdayIndex(now)))
		return start, endOfDay(now)
	}

	if m := lastNUnitsRe.FindStringSubmatch(expr); m != nil {
		count, _ := strconv.Atoi(m[1])
		var start time.Time
		switch {
		case strings.HasPrefix(m[2], "day"):
			start = now.AddDate(0, 0, -count)
		case strings.HasPrefix(m[2], "week"):
			start = now.AddDate(0, 0, -count*7)
		default: // months, approximated as 30 days each
			start = now.AddDate(0, 0, -count*30)
		}
		return startOfDay(start), endOfDay(now)
	}

	switch expr {
	case "last week":
		// The Monday-Sunday week immediately preceding the current week.
		end := now.AddDate(0, 0, -(weekdayIndex(now) + 1))
		start := end.AddDate(0, 0, -6)
		return startOfDay(start), endOfDay(end)
	case "last month":
		firstOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		end := firstOfMonth.AddDate(0, 0, -1)
		start := time.Date(end.Year(), end.Month(), 1, 0, 0, 0, 0, now.Location())
		return start, endOfDay(end)
	case "last year":
		start := time.Date(now.Year()-1, time.January, 1, 0, 0, 0, 0, now.Location())
		end := time.Date(now.Year()-1, time.December, 31, 0, 0, 0, 0, now.Location())
		return start, endOfDay(end)
	case "this month", "current month":
		start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		return start, endOfDay(now)
	case "this year", "current year":
		start := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location())
		return start, endOfDay(now)
	}

	if m := monthNameRe.FindStringSubmatch(expr); m != nil {
		month := monthsByName[m[1]]
		year := now.Year()
		if m[2] != "" {
			year, _ = strconv.Atoi(m[2])
		}
		start := time.Date(year, month, 1, 0, 0, 0, 0, now.Location())
		end := time.Date(year, month, daysInMonth(year, month), 0, 0, 0, 0, now.Location())
		return start, endOfDay(end)
	}

	if m := isoDateRe.FindStringSubmatch(expr); m != nil {
		year, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		day, _ := strconv.Atoi(m[3])
		d := time.Date(year, time.Month(month), day, 0, 0, 0, 0, now.Location())
		return startOfDay(d), endOfDay(d)
	}

	// Unrecognized: trailing 7-day window ending today.
	return startOfDay(now.AddDate(0, 0, -7)), endOfDay(now)
}

// weekdayIndex numbers days Monday=0 through Sunday=6.
func weekdayIndex(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// endOfDay returns the last representable instant of t's day.
func endOfDay(t time.Time) time.Time {
	return startOfDay(t).AddDate(0, 0, 1).Add(-time.Nanosecond)
}

// daysInMonth returns the length of the month, accounting for leap-year
// February (divisible by 4 and either not by 100 or by 400).
func daysInMonth(year int, month time.Month) int {
	if month == time.February && isLeapYear(year) {
		return 29
	}
	return monthDays[month-1]
}

func isLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}
