// Package workdays implements the working-day calendar arithmetic used for
// clue deadlines. Saturdays and Sundays are excluded; there is no holiday
// calendar.
package workdays

import "time"

// isWorkday reports whether the date falls on Monday through Friday.
func isWorkday(date time.Time) bool {
	weekday := date.Weekday()
	return weekday != time.Saturday && weekday != time.Sunday
}

// Midnight strips the time-of-day from date in its location.
func Midnight(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
}

// CountBetween counts the working days in the inclusive range [start, end].
// The caller guarantees start <= end. When start equals end, the result is 1
// if that day is a weekday and 0 otherwise.
func CountBetween(start, end time.Time) int {
	count := 0
	current := Midnight(start)
	end = Midnight(end)
	for !current.After(end) {
		if isWorkday(current) {
			count++
		}
		current = current.AddDate(0, 0, 1)
	}
	return count
}

// Add returns the date reached by stepping forward one calendar day at a time
// from start, counting a step only when the landed-on day is a weekday, until
// n weekday-steps have been counted. start itself is never counted. For n == 0
// the start date is returned unchanged regardless of its weekday.
func Add(start time.Time, n int) time.Time {
	date := start
	daysAdded := 0
	for daysAdded < n {
		date = date.AddDate(0, 0, 1)
		if isWorkday(date) {
			daysAdded++
		}
	}
	return date
}

// Until returns the number of working days from today until deadline. Both
// dates are normalized to midnight before comparison. A past deadline yields
// the overdue magnitude as a negative count. Note that a deadline equal to
// today counts today itself and yields 1, not 0; the urgency thresholds in
// Classify account for that.
func Until(today, deadline time.Time) int {
	today = Midnight(today)
	deadline = Midnight(deadline)

	if deadline.Before(today) {
		return -CountBetween(deadline, today)
	}
	return CountBetween(today, deadline)
}

// Urgency classifies how close a deadline is in working days.
type Urgency string

const (
	// Overdue means the deadline has already passed.
	Overdue Urgency = "overdue"
	// Urgent means at most two working days remain.
	Urgent Urgency = "urgent"
	// Normal means more than two working days remain.
	Normal Urgency = "normal"
)

// urgentThreshold is the highest days-left value still treated as urgent.
const urgentThreshold = 2

// Classify maps a days-left value from Until to an Urgency.
func Classify(daysLeft int) Urgency {
	switch {
	case daysLeft < 0:
		return Overdue
	case daysLeft <= urgentThreshold:
		return Urgent
	default:
		return Normal
	}
}
