// README: Date range resolver; maps a date expression token to concrete calendar bounds.
package assist

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var yearToken = regexp.MustCompile(`^\d{4}$`)

const dayLayout = "2006-01-02"

// ResolveDateRange maps a date expression token to inclusive calendar
// bounds. Rules are tried in order: bare 4-digit year, "<date> to <date>"
// literal range, then the named relative vocabulary. An empty or
// unrecognized token resolves to nil, meaning no date filter. Relative
// tokens are anchored to the current wall clock.
func ResolveDateRange(token string) *DateRange {
	return resolveDateRangeAt(token, time.Now())
}

func resolveDateRangeAt(token string, now time.Time) *DateRange {
	if token == "" {
		return nil
	}

	if yearToken.MatchString(token) {
		year, _ := strconv.Atoi(token)
		start := time.Date(year, time.January, 1, 0, 0, 0, 0, now.Location())
		return &DateRange{Start: start, End: endOfDay(time.Date(year, time.December, 31, 0, 0, 0, 0, now.Location()))}
	}

	if strings.Contains(token, " to ") {
		parts := strings.SplitN(token, " to ", 2)
		from, errFrom := time.ParseInLocation(dayLayout, strings.TrimSpace(parts[0]), now.Location())
		to, errTo := time.ParseInLocation(dayLayout, strings.TrimSpace(parts[1]), now.Location())
		if errFrom == nil && errTo == nil {
			// No start<=end check: a reversed range simply matches nothing downstream.
			return &DateRange{Start: startOfDay(from), End: endOfDay(to)}
		}
		// Unparseable sides fall through to the named vocabulary.
	}

	switch strings.ToLower(token) {
	case "yesterday":
		d := now.AddDate(0, 0, -1)
		return &DateRange{Start: startOfDay(d), End: endOfDay(d)}
	case "today":
		return &DateRange{Start: startOfDay(now), End: endOfDay(now)}
	case "tomorrow":
		d := now.AddDate(0, 0, 1)
		return &DateRange{Start: startOfDay(d), End: endOfDay(d)}

	case "last_week":
		return weekOf(now.AddDate(0, 0, -7))
	case "this_week":
		return weekOf(now)
	case "next_week":
		return weekOf(now.AddDate(0, 0, 7))

	case "last_month":
		return monthOf(firstOfMonth(now).AddDate(0, -1, 0))
	case "this_month":
		return monthOf(now)
	case "next_month":
		return monthOf(firstOfMonth(now).AddDate(0, 1, 0))

	case "last_year":
		return yearOf(now.AddDate(-1, 0, 0))
	case "this_year":
		return yearOf(now)
	case "next_year":
		return yearOf(now.AddDate(1, 0, 0))
	}

	// Unrecognized tokens mean "no date filter", not an error.
	return nil
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 999000000, t.Location())
}

func firstOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// weekOf returns the calendar week containing t. Weeks run Sunday
// through Saturday, matching the booking dashboard's calendar.
func weekOf(t time.Time) *DateRange {
	start := startOfDay(t.AddDate(0, 0, -int(t.Weekday())))
	return &DateRange{Start: start, End: endOfDay(start.AddDate(0, 0, 6))}
}

func monthOf(t time.Time) *DateRange {
	start := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	return &DateRange{Start: start, End: endOfDay(start.AddDate(0, 1, -1))}
}

func yearOf(t time.Time) *DateRange {
	start := time.Date(t.Year(), time.January, 1, 0, 0, 0, 0, t.Location())
	return &DateRange{Start: start, End: endOfDay(time.Date(t.Year(), time.December, 31, 0, 0, 0, 0, t.Location()))}
}
